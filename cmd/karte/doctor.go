package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/Zuo-Peng/karte/internal/index"
	"github.com/Zuo-Peng/karte/internal/scan"
	"github.com/spf13/cobra"
)

func doctorCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Self-check: verify chart root, DB, FTS5, layout, and show stats",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}

			fmt.Println("=== Chart Root ===")
			checkDir("Charts", cfg.ChartRoot)
			fmt.Printf("  Extensions: %s\n", strings.Join(cfg.ChartExts, ", "))

			fmt.Println("\n=== File Scan ===")
			files, err := scan.ScanRoot(cfg.ChartRoot, cfg.ChartExts)
			if err != nil {
				fmt.Printf("  scan error: %v\n", err)
			} else {
				var total int64
				for _, f := range files {
					total += f.Size
				}
				fmt.Printf("  Chart files: %d (%.1f KB)\n", len(files), float64(total)/1024)
			}

			fmt.Println("\n=== Summary Layout ===")
			layout := cfg.Layout()
			fmt.Printf("  Sections: %s\n", strings.Join(layout.Keys, ", "))
			for _, a := range layout.Aliases {
				fmt.Printf("  Alias:    %s -> %s\n", a.Label, a.Key)
			}
			fmt.Printf("  Input bounds: %d..%d chars\n", cfg.MinInputChars, cfg.MaxInputChars)

			fmt.Println("\n=== Database ===")
			fmt.Printf("  Path: %s\n", cfg.DBPath)
			if _, err := os.Stat(cfg.DBPath); os.IsNotExist(err) {
				fmt.Println("  Status: NOT FOUND (run 'karte index' first)")
				return nil
			}

			db, err := index.OpenDB(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			defer db.Close()

			chartCount, err := db.ChartCount()
			if err != nil {
				return fmt.Errorf("count charts: %w", err)
			}
			entryCount, err := db.EntryCount()
			if err != nil {
				return fmt.Errorf("count entries: %w", err)
			}
			fmt.Printf("  Charts:  %d\n", chartCount)
			fmt.Printf("  Entries: %d\n", entryCount)

			fmt.Println("\n=== FTS5 ===")
			ftsCount, err := db.FTSCount()
			if err != nil {
				fmt.Printf("  FTS5 error: %v\n", err)
			} else {
				fmt.Printf("  FTS5 entries: %d\n", ftsCount)
				if ftsCount == entryCount {
					fmt.Println("  Status: OK (synced)")
				} else {
					fmt.Printf("  Status: MISMATCH (entries=%d, fts=%d)\n", entryCount, ftsCount)
				}
			}

			if info, err := os.Stat(cfg.DBPath); err == nil {
				fmt.Printf("\n=== DB Size: %.1f MB ===\n", float64(info.Size())/1024/1024)
			}
			return nil
		},
	}
}

func checkDir(name, path string) {
	if info, err := os.Stat(path); err != nil {
		fmt.Printf("  %s: %s (NOT FOUND)\n", name, path)
	} else if !info.IsDir() {
		fmt.Printf("  %s: %s (NOT A DIRECTORY)\n", name, path)
	} else {
		fmt.Printf("  %s: %s (OK)\n", name, path)
	}
}
