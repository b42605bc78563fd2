package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/Zuo-Peng/karte/internal/search"
	"github.com/Zuo-Peng/karte/internal/tui"
	"github.com/spf13/cobra"
)

const (
	sColorReset   = "\033[0m"
	sColorBoldRed = "\033[1;31m"
	sColorDim     = "\033[2m"
)

func colorizeSnippet(snippet string) string {
	snippet = strings.ReplaceAll(snippet, ">>>", sColorBoldRed)
	snippet = strings.ReplaceAll(snippet, "<<<", sColorReset)
	return snippet
}

var tsvCleaner = strings.NewReplacer("\t", " ", "\n", " ")

func searchCmd(g *globals) *cobra.Command {
	var opts search.Options

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search indexed chart entries",
		Long: `Search chart entries. Queries with kanji or kana use substring matching,
others go through FTS5. Output is TSV for fzf integration:
  chartKey, entryId, date, section, department, doctor, snippet

Example:
  karte search 発熱 | fzf --ansi --delimiter='\t' --with-nth=3.. \
    --preview 'karte preview {1} --hit {2} --context 5 --query {q}' \
    --bind 'enter:execute(karte open {1} --hit {2})'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := g.openIndex()
			if err != nil {
				return err
			}
			defer db.Close()

			if stdoutIsTerminal() {
				return tui.Run(db, args[0], opts)
			}

			opts.Query = args[0]
			results, err := search.Search(db, opts)
			if err != nil {
				return err
			}
			if len(results) == 0 {
				fmt.Fprintln(os.Stderr, "No results found.")
				return nil
			}

			for _, r := range results {
				// chartKey and entryId stay plain for fzf {1} {2}
				fmt.Printf("%s\t%d\t%s%s%s\t%s\t%s\t%s\t%s\n",
					r.ChartKey,
					r.EntryID,
					sColorDim, r.Date, sColorReset,
					r.SOAPSection,
					tsvCleaner.Replace(r.Department),
					tsvCleaner.Replace(r.Doctor),
					colorizeSnippet(tsvCleaner.Replace(r.Snippet)),
				)
			}
			return nil
		},
	}

	addFilterFlags(cmd, &opts, 100)
	return cmd
}

func addFilterFlags(cmd *cobra.Command, opts *search.Options, limit int) {
	cmd.Flags().StringVar(&opts.Section, "section", "", "Filter by SOAP section (S/O/A/P/F)")
	cmd.Flags().StringVar(&opts.Department, "department", "", "Filter by department")
	cmd.Flags().StringVar(&opts.Doctor, "doctor", "", "Filter by doctor (substring)")
	cmd.Flags().StringVar(&opts.Since, "since", "", "Only entries dated on or after (YYYY/MM/DD)")
	cmd.Flags().IntVar(&opts.Limit, "limit", limit, "Max results")
}
