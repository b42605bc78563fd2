package export

import (
	"fmt"
	"os"

	"github.com/Zuo-Peng/karte/internal/chart"
	"github.com/parquet-go/parquet-go"
)

const flushInterval = 100_000

// EntryRow is the columnar form of a chart entry.
type EntryRow struct {
	ChartKey       string `parquet:"chart_key,dict"`
	Date           string `parquet:"date,dict"`
	DaysInHospital int32  `parquet:"days_in_hospital"`
	Department     string `parquet:"department,dict"`
	Doctor         string `parquet:"doctor,dict"`
	Insurance      string `parquet:"insurance,dict"`
	Time           string `parquet:"time"`
	SOAPSection    string `parquet:"soap_section,dict"`
	Content        string `parquet:"content"`
}

// ParquetWriter writes entry rows to a Parquet file.
type ParquetWriter struct {
	file   *os.File
	writer *parquet.GenericWriter[EntryRow]
	count  int
}

// NewParquetWriter creates a new Parquet writer for entry rows.
func NewParquetWriter(path string) (*ParquetWriter, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create entry parquet: %w", err)
	}
	writer := parquet.NewGenericWriter[EntryRow](file,
		parquet.Compression(&parquet.Snappy),
	)
	return &ParquetWriter{file: file, writer: writer}, nil
}

// Write writes the entries of one chart.
func (w *ParquetWriter) Write(chartKey string, entries ...chart.Entry) error {
	for _, e := range entries {
		row := EntryRow{
			ChartKey:       chartKey,
			Date:           e.Date,
			DaysInHospital: int32(e.DaysInHospital),
			Department:     e.Department,
			Doctor:         e.Doctor,
			Insurance:      e.Insurance,
			Time:           e.Time,
			SOAPSection:    e.SOAPSection,
			Content:        e.Content,
		}
		if _, err := w.writer.Write([]EntryRow{row}); err != nil {
			return fmt.Errorf("write entry row: %w", err)
		}
		w.count++
		if w.count%flushInterval == 0 {
			if err := w.writer.Flush(); err != nil {
				return fmt.Errorf("flush entries: %w", err)
			}
		}
	}
	return nil
}

// Close flushes and closes the writer.
func (w *ParquetWriter) Close() error {
	if err := w.writer.Close(); err != nil {
		w.file.Close()
		return fmt.Errorf("close entry writer: %w", err)
	}
	return w.file.Close()
}

// Count returns the number of rows written.
func (w *ParquetWriter) Count() int { return w.count }
