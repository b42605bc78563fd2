package main

import (
	"github.com/Zuo-Peng/karte/internal/index"
	"github.com/Zuo-Peng/karte/internal/open"
	"github.com/spf13/cobra"
)

func openCmd(g *globals) *cobra.Command {
	var hitEntryID int

	cmd := &cobra.Command{
		Use:   "open <chartKey>",
		Short: "Open the chart file in $EDITOR at the entry's line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			db, err := index.OpenDB(cfg.DBPath)
			if err != nil {
				return err
			}
			defer db.Close()

			return open.OpenChart(db, args[0], hitEntryID)
		},
	}

	cmd.Flags().IntVar(&hitEntryID, "hit", -1, "Entry ID to jump to")

	return cmd
}
