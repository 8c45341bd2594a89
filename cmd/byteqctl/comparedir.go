package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ashm-dev/byteq"
	"github.com/ashm-dev/byteq/internal/config"
)

var compareDirOpts config.DirOptions

var compareDirCmd = &cobra.Command{
	Use:   "compare-dir <dirA> <dirB>",
	Short: "Compare two directory trees for structural and byte equality",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := byteq.CompareDir(context.Background(), args[0], args[1], compareDirOpts)
		if err != nil {
			return err
		}
		return printDiff(res)
	},
}

func init() {
	config.RegisterDirFlags(compareDirCmd.Flags(), &compareDirOpts)
}

func printDiff(res *byteq.DiffResult) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		return fmt.Errorf("encode diff result: %w", err)
	}
	return nil
}
