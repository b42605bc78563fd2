package main

import (
	"github.com/Zuo-Peng/karte/internal/search"
	"github.com/Zuo-Peng/karte/internal/tui"
	"github.com/spf13/cobra"
)

func listCmd(g *globals) *cobra.Command {
	var opts search.Options

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Browse all entries, newest first",
		Long:  `Opens a TUI panel over all indexed entries (newest date first). Type to filter by department, doctor or content.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := g.openIndex()
			if err != nil {
				return err
			}
			defer db.Close()

			return tui.RunList(db, opts)
		},
	}

	addFilterFlags(cmd, &opts, 0)
	return cmd
}
