package export

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/Zuo-Peng/karte/internal/chart"
	"github.com/Zuo-Peng/karte/internal/summary"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var entries = chart.Parse("2025/04/18(金)　（入院 71 日目）\n内科　　波部　孝弘　　国保　　12:41\nA >\n経過良好 <安定>\nP >\n継続")

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, entries))

	out := buf.String()
	assert.Contains(t, out, `"doctor": "波部　孝弘"`)
	assert.Contains(t, out, `"content": "経過良好 <安定>"`)
	assert.NotContains(t, out, `"Line"`)

	var decoded []map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	keys := make([]string, 0, len(decoded[0]))
	for k := range decoded[0] {
		keys = append(keys, k)
	}
	assert.ElementsMatch(t, []string{
		"date", "days_in_hospital", "department", "doctor",
		"insurance", "time", "soap_section", "content",
	}, keys)
	assert.Equal(t, float64(71), decoded[0]["days_in_hospital"])
}

func TestWriteJSON_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestWriteSectionsJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSectionsJSON(&buf, summary.Parse("現病歴:発熱")))

	var decoded map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "発熱", decoded["現病歴"])
	assert.Len(t, decoded, 6)
}

func TestParquetWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "entries.parquet")

	w, err := NewParquetWriter(path)
	require.NoError(t, err)
	require.NoError(t, w.Write("chart:a", entries...))
	assert.Equal(t, 2, w.Count())
	require.NoError(t, w.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	reader := parquet.NewGenericReader[EntryRow](f)
	defer reader.Close()
	assert.Equal(t, int64(2), reader.NumRows())

	rows := make([]EntryRow, 2)
	n, _ := reader.Read(rows)
	require.Equal(t, 2, n)
	assert.Equal(t, "chart:a", rows[0].ChartKey)
	assert.Equal(t, "A", rows[0].SOAPSection)
	assert.Equal(t, int32(71), rows[0].DaysInHospital)
	assert.Equal(t, "継続", rows[1].Content)
}
