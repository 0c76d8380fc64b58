package main

import (
	"github.com/spf13/cobra"

	"dcrhub/internal/config"
	"dcrhub/internal/logger"
	"dcrhub/internal/state"
	"dcrhub/internal/tui"
)

var browseFilters filterFlags

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Filter results interactively in the terminal",
	RunE: func(cmd *cobra.Command, _ []string) error {
		src, err := sourceURL(browseFilters.source, config.SourceResults)
		if err != nil {
			return err
		}

		// stderr shares the terminal with the UI.
		quiet := logger.NewNop()

		sess := newSession(quiet)
		bridge := &tui.Bridge{}

		synchronizer := state.New(sess, src, bridge, quiet).WithDebounce(cfg.Filter.GetDebounce())
		defer synchronizer.Close()

		return tui.Run(cmd.Context(), bridge, synchronizer, pageURL(browseFilters.page), browseFilters.state())
	},
}

func init() {
	browseFilters.register(browseCmd)
	rootCmd.AddCommand(browseCmd)
}
