package main

import (
	"fmt"

	"github.com/Zuo-Peng/karte/internal/index"
	"github.com/spf13/cobra"
)

func indexCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "index",
		Short: "Scan and index chart files under the chart root",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			log := g.logger(cfg)

			db, err := index.OpenDB(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			defer db.Close()

			log.Info().Str("root", cfg.ChartRoot).Strs("ext", cfg.ChartExts).Msg("scanning")

			stats, err := index.IndexAll(db, cfg.ChartRoot, cfg.ChartExts, log)
			if err != nil {
				return fmt.Errorf("index: %w", err)
			}

			log.Info().
				Int("scanned", stats.Scanned).
				Int("updated", stats.Updated).
				Int("skipped", stats.Skipped).
				Int("empty", stats.Empty).
				Int("pruned", stats.Pruned).
				Int("errors", stats.Errors).
				Msg("done")
			return nil
		},
	}
}
