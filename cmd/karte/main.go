package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Zuo-Peng/karte/internal/config"
	"github.com/Zuo-Peng/karte/internal/index"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var version = "dev"

// globals holds the persistent flags shared by every subcommand.
type globals struct {
	configPath string
	verbose    bool
}

func main() {
	g := &globals{}

	rootCmd := &cobra.Command{
		Use:          "karte",
		Short:        "Segment Japanese chart notes and discharge summaries",
		Version:      version,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&g.configPath, "config", "", "Config file (default ~/.config/karte/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "Debug logging")

	rootCmd.AddCommand(parseCmd(g))
	rootCmd.AddCommand(summaryCmd(g))
	rootCmd.AddCommand(checkCmd(g))
	rootCmd.AddCommand(indexCmd(g))
	rootCmd.AddCommand(searchCmd(g))
	rootCmd.AddCommand(listCmd(g))
	rootCmd.AddCommand(previewCmd(g))
	rootCmd.AddCommand(openCmd(g))
	rootCmd.AddCommand(doctorCmd(g))
	rootCmd.AddCommand(serveCmd(g))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func (g *globals) loadConfig() (*config.Config, error) {
	if g.configPath != "" {
		return config.LoadFile(g.configPath)
	}
	return config.Load()
}

// logger writes human-readable events to stderr so stdout stays clean for
// JSON and TSV output.
func (g *globals) logger(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil || cfg.LogLevel == "" {
		level = zerolog.InfoLevel
	}
	if g.verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}

// openIndex loads config, opens the index and brings it up to date.
func (g *globals) openIndex() (*config.Config, *index.DB, error) {
	cfg, err := g.loadConfig()
	if err != nil {
		return nil, nil, err
	}
	db, err := index.OpenDB(cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}
	if _, err := index.IndexAll(db, cfg.ChartRoot, cfg.ChartExts, g.logger(cfg)); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("update index: %w", err)
	}
	return cfg, db, nil
}

// readInput reads a file argument, or stdin for "-".
func readInput(arg string) (string, error) {
	var (
		b   []byte
		err error
	)
	if arg == "-" {
		b, err = io.ReadAll(os.Stdin)
	} else {
		b, err = os.ReadFile(arg)
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", arg, err)
	}
	return string(b), nil
}

func stdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// terminalWidth falls back to no wrapping when stdout is not a terminal.
func terminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 0
	}
	return w
}
