// Package export serialises parsed chart entries and summary sections for
// downstream tools.
package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/Zuo-Peng/karte/internal/chart"
	"github.com/Zuo-Peng/karte/internal/summary"
)

// WriteJSON writes entries as an indented JSON array. Non-ASCII text is
// written as-is and an empty list is written as [].
func WriteJSON(w io.Writer, entries []chart.Entry) error {
	if entries == nil {
		entries = []chart.Entry{}
	}
	return writeIndented(w, entries)
}

// WriteSectionsJSON writes the sections as one JSON object in layout order.
func WriteSectionsJSON(w io.Writer, s *summary.Sections) error {
	return writeIndented(w, s)
}

func writeIndented(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
