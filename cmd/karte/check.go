package main

import (
	"fmt"

	"github.com/Zuo-Peng/karte/internal/chart"
	"github.com/spf13/cobra"
)

func checkCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "check <file|->",
		Short: "Check chart text length against the configured bounds",
		Long: `Count the characters of the trimmed input and compare them with
min_input_chars and max_input_chars. Exits non-zero unless the input fits.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}

			text, err := readInput(args[0])
			if err != nil {
				return err
			}

			res := chart.CheckInput(text, cfg.MinInputChars, cfg.MaxInputChars)
			fmt.Fprintf(cmd.OutOrStdout(), "length=%d min=%d max=%d status=%s\n",
				res.Length, cfg.MinInputChars, cfg.MaxInputChars, res.Status)
			if !res.OK() {
				return fmt.Errorf("input rejected: %s", res.Status)
			}
			return nil
		},
	}
}
