package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Zuo-Peng/karte/internal/config"
	"github.com/Zuo-Peng/karte/internal/index"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArg(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ward", "p1.txt")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	body := "2025/04/18(金)（入院 1 日目）\n内科　　波部　孝弘　　国保　　12:41\nS >\n咳\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	key, entries, err := parseArg(path)
	require.NoError(t, err)
	assert.Equal(t, "chart:p1", key)
	require.Len(t, entries, 1)
	assert.Equal(t, "咳", entries[0].Content)

	_, _, err = parseArg(filepath.Join(dir, "missing.txt"))
	assert.Error(t, err)
}

func TestLoggerLevel(t *testing.T) {
	cases := []struct {
		level   string
		verbose bool
		want    zerolog.Level
	}{
		{"info", false, zerolog.InfoLevel},
		{"WARN", false, zerolog.WarnLevel},
		{"", false, zerolog.InfoLevel},
		{"bogus", false, zerolog.InfoLevel},
		{"warn", true, zerolog.DebugLevel},
	}
	for _, tc := range cases {
		g := &globals{verbose: tc.verbose}
		log := g.logger(&config.Config{LogLevel: tc.level})
		assert.Equal(t, tc.want, log.GetLevel(), tc.level)
	}
}

func TestLoadConfigFromFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("min_input_chars = 7\n"), 0o644))

	g := &globals{configPath: path}
	cfg, err := g.loadConfig()
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.MinInputChars)
}

func TestIndexedInputs(t *testing.T) {
	dir := t.TempDir()
	root := filepath.Join(dir, "charts")
	require.NoError(t, os.MkdirAll(root, 0o755))
	body := "2025/04/18(金)（入院 1 日目）\n内科　　波部　孝弘　　国保　　12:41\nS >\n咳\nO >\n所見\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, "b.txt"), []byte(body), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte(body), 0o644))

	db, err := index.OpenDB(filepath.Join(dir, "karte.db"))
	require.NoError(t, err)
	defer db.Close()
	_, err = index.IndexAll(db, root, []string{".txt"}, zerolog.Nop())
	require.NoError(t, err)

	inputs, err := indexedInputs(db)
	require.NoError(t, err)
	require.Len(t, inputs, 2)

	key, entries, err := inputs[0]()
	require.NoError(t, err)
	assert.Equal(t, "chart:a", key)
	require.Len(t, entries, 2)
	assert.Equal(t, "波部　孝弘", entries[0].Doctor)
	assert.Equal(t, "所見", entries[1].Content)
	assert.Equal(t, 5, entries[1].Line)
}
