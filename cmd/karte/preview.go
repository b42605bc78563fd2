package main

import (
	"fmt"

	"github.com/Zuo-Peng/karte/internal/index"
	"github.com/Zuo-Peng/karte/internal/render"
	"github.com/spf13/cobra"
)

func previewCmd(g *globals) *cobra.Command {
	var opts render.Options

	cmd := &cobra.Command{
		Use:   "preview <chartKey>",
		Short: "Print a chart with context around a hit entry",
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

			out, _, err := render.RenderChart(db, args[0], opts)
			if err != nil {
				return err
			}
			fmt.Print(out)
			return nil
		},
	}

	cmd.Flags().IntVar(&opts.HitEntryID, "hit", -1, "Entry ID to highlight")
	cmd.Flags().IntVar(&opts.Context, "context", 10, "Entries before/after hit to show")
	cmd.Flags().StringVar(&opts.Query, "query", "", "Search query for keyword highlighting")
	cmd.Flags().BoolVar(&opts.NoColor, "no-color", false, "Plain output")

	return cmd
}
