package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Zuo-Peng/karte/internal/server"
	"github.com/spf13/cobra"
)

func serveCmd(g *globals) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the parsing API over HTTP",
		Long: `Start a local JSON API:
  POST /api/chart/parse     chart text -> {"entries": [...]}
  POST /api/summary/parse   summary text -> {"cleaned": ..., "sections": {...}}
  POST /api/input/check     chart text -> {"length": n, "ok": bool, "status": ...}
  GET  /healthz`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			log := g.logger(cfg)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return server.Run(ctx, server.New(cfg, log), cfg.Server.Addr, log)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config)")

	return cmd
}
