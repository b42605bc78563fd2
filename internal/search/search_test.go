package search

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Zuo-Peng/karte/internal/index"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chartA = `2025/04/18(金)　（入院 71 日目）
内科　　波部　孝弘　　国保　　12:41
S >
fever and cough since yesterday
A >
発熱は改善傾向
2025/04/20(日)　（入院 73 日目）
外科　　山田　花子　　社保　　09:00
P >
fever resolved, plan discharge
`

func setupDB(t *testing.T) *index.DB {
	t.Helper()
	dir := t.TempDir()
	root := filepath.Join(dir, "charts")
	require.NoError(t, os.MkdirAll(root, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte(chartA), 0o644))

	db, err := index.OpenDB(filepath.Join(dir, "karte.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = index.IndexAll(db, root, []string{".txt"}, zerolog.Nop())
	require.NoError(t, err)
	return db
}

func TestSearch_FTS(t *testing.T) {
	db := setupDB(t)

	results, err := Search(db, Options{Query: "fever"})
	require.NoError(t, err)
	require.Len(t, results, 2)
	for _, r := range results {
		assert.Equal(t, "chart:a", r.ChartKey)
		assert.Contains(t, r.Snippet, ">>>fever<<<")
	}

	results, err = Search(db, Options{Query: "fever", Section: "P"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 2, results[0].EntryID)
	assert.Equal(t, "外科", results[0].Department)

	results, err = Search(db, Options{Query: "fever", Since: "2025/04/19"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "2025/04/20(日)", results[0].Date)
}

func TestSearch_CJK(t *testing.T) {
	db := setupDB(t)

	results, err := Search(db, Options{Query: "発熱"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "A", results[0].SOAPSection)
	assert.Equal(t, "波部　孝弘", results[0].Doctor)
	assert.Equal(t, ">>>発熱<<<は改善傾向", results[0].Snippet)

	results, err = Search(db, Options{Query: "発熱", Doctor: "山田"})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearch_EmptyQuery(t *testing.T) {
	db := setupDB(t)

	results, err := Search(db, Options{Query: "  "})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestListAll(t *testing.T) {
	db := setupDB(t)

	results, err := ListAll(db, Options{})
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "2025/04/20(日)", results[0].Date)
	assert.False(t, strings.Contains(results[0].Snippet, ">>>"))

	results, err = ListAll(db, Options{Query: "内科"})
	require.NoError(t, err)
	assert.Len(t, results, 2)

	results, err = ListAll(db, Options{Department: "外科"})
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestMakeSnippet(t *testing.T) {
	text := strings.Repeat("あ", 40) + "咳嗽" + strings.Repeat("い", 40)

	got := makeSnippet(text, "咳嗽", 5)
	assert.Equal(t, "...あああああ>>>咳嗽<<<いいいいい...", got)

	got = makeSnippet("short", "missing", 5)
	assert.Equal(t, "short", got)

	got = makeSnippet(strings.Repeat("x", 20), "", 5)
	assert.Equal(t, strings.Repeat("x", 10)+"...", got)
}

func TestContainsCJK(t *testing.T) {
	assert.True(t, containsCJK("発熱"))
	assert.True(t, containsCJK("せき"))
	assert.True(t, containsCJK("カルテ"))
	assert.False(t, containsCJK("fever"))
}
