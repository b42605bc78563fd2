package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/Zuo-Peng/karte/internal/chart"
	"github.com/Zuo-Peng/karte/internal/export"
	"github.com/Zuo-Peng/karte/internal/index"
	"github.com/spf13/cobra"
)

func parseCmd(g *globals) *cobra.Command {
	var format, out string
	var all bool

	cmd := &cobra.Command{
		Use:   "parse [file|-]...",
		Short: "Split chart text into dated, attributed SOAP entries",
		Long: `Parse chart notes and print one record per SOAP entry.

JSON output is a single array across all inputs. Parquet output needs --out
and adds a chart_key column so several charts can share one file. With --all
every indexed chart is exported instead of the named files.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if all == (len(args) > 0) {
				return fmt.Errorf("give either chart files or --all")
			}
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			log := g.logger(cfg)

			inputs := fileInputs(args)
			if all {
				_, db, err := g.openIndex()
				if err != nil {
					return err
				}
				defer db.Close()
				if inputs, err = indexedInputs(db); err != nil {
					return err
				}
			}

			switch format {
			case "json":
				var entries []chart.Entry
				for _, in := range inputs {
					key, es, err := in()
					if err != nil {
						return err
					}
					log.Debug().Str("chart", key).Int("entries", len(es)).Msg("parsed")
					entries = append(entries, es...)
				}
				w := os.Stdout
				if out != "" && out != "-" {
					f, err := os.Create(out)
					if err != nil {
						return fmt.Errorf("create %s: %w", out, err)
					}
					defer f.Close()
					w = f
				}
				return export.WriteJSON(w, entries)

			case "parquet":
				if out == "" || out == "-" {
					return fmt.Errorf("--format parquet needs --out <file>")
				}
				pw, err := export.NewParquetWriter(out)
				if err != nil {
					return err
				}
				for _, in := range inputs {
					key, entries, err := in()
					if err != nil {
						pw.Close()
						return err
					}
					if err := pw.Write(key, entries...); err != nil {
						pw.Close()
						return err
					}
				}
				if err := pw.Close(); err != nil {
					return err
				}
				log.Info().Str("out", out).Int("rows", pw.Count()).Msg("wrote parquet")
				return nil

			default:
				return fmt.Errorf("unknown format %q (json|parquet)", format)
			}
		},
	}

	cmd.Flags().StringVar(&format, "format", "json", "Output format (json|parquet)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default stdout for json)")
	cmd.Flags().BoolVar(&all, "all", false, "Export every indexed chart")

	return cmd
}

// input yields one chart's key and entries.
type input func() (string, []chart.Entry, error)

func fileInputs(args []string) []input {
	inputs := make([]input, len(args))
	for i, arg := range args {
		arg := arg
		inputs[i] = func() (string, []chart.Entry, error) { return parseArg(arg) }
	}
	return inputs
}

// indexedInputs reads every indexed chart back from the index, in key order.
func indexedInputs(db *index.DB) ([]input, error) {
	keys, err := db.AllChartKeys()
	if err != nil {
		return nil, err
	}
	sorted := make([]string, 0, len(keys))
	for k := range keys {
		sorted = append(sorted, k)
	}
	sort.Strings(sorted)

	inputs := make([]input, len(sorted))
	for i, key := range sorted {
		key := key
		inputs[i] = func() (string, []chart.Entry, error) {
			rows, err := db.GetEntries(key)
			if err != nil {
				return "", nil, err
			}
			entries := make([]chart.Entry, len(rows))
			for j, r := range rows {
				entries[j] = r.ToEntry()
			}
			return key, entries, nil
		}
	}
	return inputs, nil
}

// parseArg parses one input and returns its chart key with the entries.
func parseArg(arg string) (string, []chart.Entry, error) {
	if arg == "-" {
		text, err := readInput(arg)
		if err != nil {
			return "", nil, err
		}
		return "chart:stdin", chart.Parse(text), nil
	}
	abs, err := filepath.Abs(arg)
	if err != nil {
		return "", nil, err
	}
	res, err := chart.ParseFile(abs, filepath.Dir(abs))
	if err != nil {
		return "", nil, err
	}
	return res.Meta.ChartKey, res.Entries, nil
}
