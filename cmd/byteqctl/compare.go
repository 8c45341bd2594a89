package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ashm-dev/byteq"
	"github.com/ashm-dev/byteq/internal/config"
)

var compareOpts config.CompareOptions

var compareCmd = &cobra.Command{
	Use:   "compare <sourceA> <sourceB>",
	Short: "Compare two files or URLs for byte equality",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := byteq.Compare(context.Background(), args[0], args[1], compareOpts)
		if err != nil {
			return err
		}
		if v == byteq.Equal {
			fmt.Println("equal")
		} else {
			fmt.Println("different")
		}
		return nil
	},
}

func init() {
	config.RegisterCompareFlags(compareCmd.Flags(), &compareOpts)
}
