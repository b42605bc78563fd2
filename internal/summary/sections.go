package summary

import (
	"bytes"
	"encoding/json"
)

// Sections maps each canonical key of a layout to its text. Every key is
// present; iteration and JSON encoding follow the layout order.
type Sections struct {
	keys   []string
	values map[string]string
}

func newSections(keys []string) *Sections {
	s := &Sections{
		keys:   append([]string(nil), keys...),
		values: make(map[string]string, len(keys)),
	}
	for _, k := range keys {
		s.values[k] = ""
	}
	return s
}

func (s *Sections) Keys() []string {
	return append([]string(nil), s.keys...)
}

// Get returns the text of a section and whether the key belongs to the layout.
func (s *Sections) Get(key string) (string, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Value returns the text of a section, "" for unknown keys.
func (s *Sections) Value(key string) string {
	return s.values[key]
}

// Each calls fn for every section in layout order.
func (s *Sections) Each(fn func(key, value string)) {
	for _, k := range s.keys {
		fn(k, s.values[k])
	}
}

// Map returns a copy as a plain map.
func (s *Sections) Map() map[string]string {
	m := make(map[string]string, len(s.values))
	for k, v := range s.values {
		m[k] = v
	}
	return m
}

// MarshalJSON encodes the sections as an object with keys in layout order.
func (s *Sections) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range s.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeJSONString(&buf, k); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := writeJSONString(&buf, s.values[k]); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeJSONString(buf *bytes.Buffer, s string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	// Encode appends a newline
	buf.Truncate(buf.Len() - 1)
	return nil
}
