// Command byteqctl is a thin exerciser CLI over the byteq embedded API,
// used for integration tests and manual smoke-testing rather than as a
// supported end-user tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ashm-dev/byteq/internal/logger"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "byteqctl",
	Short: "Exercise the byteq comparison engine from the command line",
}

func main() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	cobra.OnInitialize(func() {
		if verbose {
			logger.SetLevel(logger.LevelDebug)
		}
	})

	rootCmd.AddCommand(compareCmd, compareDirCmd, compareArchiveCmd, compareDirURLsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
