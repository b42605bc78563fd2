package main

import (
	"fmt"

	"github.com/Zuo-Peng/karte/internal/export"
	"github.com/Zuo-Peng/karte/internal/render"
	"github.com/Zuo-Peng/karte/internal/summary"
	"github.com/spf13/cobra"
)

func summaryCmd(g *globals) *cobra.Command {
	var asJSON, raw bool

	cmd := &cobra.Command{
		Use:   "summary <file|->",
		Short: "Clean generated discharge summary text and split it into sections",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}

			text, err := readInput(args[0])
			if err != nil {
				return err
			}

			cleaned := summary.Clean(text)
			if raw {
				fmt.Fprint(cmd.OutOrStdout(), cleaned)
				return nil
			}

			sections := cfg.Layout().Parse(cleaned)
			if asJSON {
				return export.WriteSectionsJSON(cmd.OutOrStdout(), sections)
			}

			fmt.Fprint(cmd.OutOrStdout(), render.RenderSections(sections, render.Options{
				Width:   terminalWidth(),
				NoColor: !stdoutIsTerminal(),
			}))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print sections as a JSON object")
	cmd.Flags().BoolVar(&raw, "raw", false, "Print only the cleaned text")

	return cmd
}
