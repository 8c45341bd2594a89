package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/ashm-dev/byteq"
	"github.com/ashm-dev/byteq/internal/config"
)

var compareArchiveOpts config.ArchiveOptions

var compareArchiveCmd = &cobra.Command{
	Use:   "compare-archive <pathA> <pathB>",
	Short: "Compare two archives (tar/tar.gz/zip) member-by-member",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := byteq.CompareArchive(context.Background(), args[0], args[1], compareArchiveOpts)
		if err != nil {
			return err
		}
		return printDiff(res)
	},
}

func init() {
	config.RegisterArchiveFlags(compareArchiveCmd.Flags(), &compareArchiveOpts)
}
