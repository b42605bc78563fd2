package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Zuo-Peng/karte/internal/index"
	"github.com/Zuo-Peng/karte/internal/summary"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chartA = `2025/04/18(金)　（入院 71 日目）
内科　　波部　孝弘　　国保　　12:41
S >
咳が続く
A >
経過良好
2025/04/19(土)　（入院 72 日目）
内科　　波部　孝弘　　国保　　09:00
P >
抗菌薬継続
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

func TestRenderChart(t *testing.T) {
	db := setupDB(t)

	out, hitLine, err := RenderChart(db, "chart:a", Options{HitEntryID: 1, NoColor: true})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	assert.Equal(t, []string{
		"--- chart:a [2025/04/18(金) .. 2025/04/19(土)] ---",
		"== 2025/04/18(金) 入院 71 日目 ==",
		"内科  波部　孝弘  国保  12:41",
		"S >",
		"  咳が続く",
		">> A > <<",
		"  経過良好",
		"== 2025/04/19(土) 入院 72 日目 ==",
		"内科  波部　孝弘  国保  09:00",
		"P >",
		"  抗菌薬継続",
	}, lines)
	assert.Equal(t, 5, hitLine)
}

func TestRenderChart_Window(t *testing.T) {
	db := setupDB(t)

	out, hitLine, err := RenderChart(db, "chart:a", Options{HitEntryID: 2, Context: 1, NoColor: true})
	require.NoError(t, err)
	assert.Contains(t, out, "... (1 entries before) ...")
	assert.NotContains(t, out, "咳が続く")
	assert.Greater(t, hitLine, 0)
}

func TestRenderChart_NotFound(t *testing.T) {
	db := setupDB(t)

	_, _, err := RenderChart(db, "chart:missing", Options{})
	assert.ErrorIs(t, err, index.ErrChartNotFound)
}

func TestRenderSections(t *testing.T) {
	s := summary.Parse("入院期間:1月1日～1月10日\n現病歴:発熱\n咳嗽")

	out := RenderSections(s, Options{NoColor: true})

	assert.True(t, strings.HasPrefix(out, "【入院期間】\n  1月1日～1月10日\n\n【現病歴】\n  発熱\n  咳嗽\n\n【入院時検査】\n  (なし)\n"))
	assert.Contains(t, out, "【禁忌/アレルギー】\n  (なし)\n")
}

func TestWrapLine(t *testing.T) {
	assert.Equal(t, []string{"ab", "cd", "e"}, wrapLine("abcde", 2))
	assert.Equal(t, []string{"あい", "う"}, wrapLine("あいう", 4))
	assert.Equal(t, []string{"あ", "い"}, wrapLine("あい", 1))
	assert.Equal(t, []string{""}, wrapLine("", 10))
	assert.Equal(t, []string{"\033[1mab", "c\033[0m"}, wrapLine("\033[1mabc\033[0m", 2))
}

func TestHighlightKeywords(t *testing.T) {
	got := highlightKeywords("Fever and fever", "fever AND")
	assert.Equal(t, colorBoldRed+"Fever"+colorReset+" and "+colorBoldRed+"fever"+colorReset, got)
	assert.Equal(t, "text", highlightKeywords("text", ""))
}
