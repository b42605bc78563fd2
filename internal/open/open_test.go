package open

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Zuo-Peng/karte/internal/index"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocate(t *testing.T) {
	dir := t.TempDir()
	root := filepath.Join(dir, "charts")
	require.NoError(t, os.MkdirAll(root, 0o755))
	path := filepath.Join(root, "a.txt")
	body := "2025/04/18(金)（入院 1 日目）\n内科　　波部　孝弘　　国保　　12:41\nS >\n咳\n\nO >\n所見\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	db, err := index.OpenDB(filepath.Join(dir, "karte.db"))
	require.NoError(t, err)
	defer db.Close()
	_, err = index.IndexAll(db, root, []string{".txt"}, zerolog.Nop())
	require.NoError(t, err)

	file, line, err := Locate(db, "chart:a", 1)
	require.NoError(t, err)
	assert.Equal(t, path, file)
	assert.Equal(t, 6, line)

	_, line, err = Locate(db, "chart:a", -1)
	require.NoError(t, err)
	assert.Equal(t, 1, line)

	_, _, err = Locate(db, "chart:zzz", 0)
	assert.ErrorIs(t, err, index.ErrChartNotFound)

	require.NoError(t, os.Remove(path))
	_, _, err = Locate(db, "chart:a", 0)
	assert.Error(t, err)
}

func TestEditorCommand(t *testing.T) {
	cases := []struct {
		editor string
		want   []string
	}{
		{"nvim", []string{"nvim", "+12", "/x.txt"}},
		{"code", []string{"code", "--goto", "/x.txt:12"}},
		{"less", []string{"less", "+12", "/x.txt"}},
		{"nano", []string{"nano", "/x.txt"}},
	}
	for _, tc := range cases {
		t.Run(tc.editor, func(t *testing.T) {
			cmd := EditorCommand(tc.editor, "/x.txt", 12)
			assert.Equal(t, tc.want, cmd.Args)
		})
	}
}
