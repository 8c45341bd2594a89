package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/ashm-dev/byteq"
	"github.com/ashm-dev/byteq/internal/config"
)

var compareDirURLsOpts config.DirOptions

var compareDirURLsCmd = &cobra.Command{
	Use:   "compare-dir-urls <dir> <url-map.json>",
	Short: "Compare a local directory against a relative-path to URL map",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[1])
		if err != nil {
			return err
		}
		urlMap := map[string]string{}
		if err := json.Unmarshal(data, &urlMap); err != nil {
			return err
		}

		res, err := byteq.CompareDirURLs(context.Background(), args[0], urlMap, compareDirURLsOpts)
		if err != nil {
			return err
		}
		return printDiff(res)
	},
}

func init() {
	config.RegisterDirFlags(compareDirURLsCmd.Flags(), &compareDirURLsOpts)
}
