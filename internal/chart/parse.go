// Package chart segments line-oriented chart dumps into dated, attributed,
// SOAP-tagged entries.
package chart

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

const maxLineSize = 10 * 1024 * 1024 // 10MB
const maxSummarySize = 200

// Parse scans text line by line and returns its entries in source order.
// Lines that match no recognised shape are dropped; Parse never fails.
func Parse(text string) []Entry {
	var s scanner
	for i, line := range strings.Split(text, "\n") {
		s.feed(i+1, line)
	}
	return s.finish()
}

// ParseFile parses a chart file. Keys are derived from the path relative to
// root, so the same file always maps to the same chart key.
func ParseFile(filePath, root string) (*ParseResult, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}

	result := &ParseResult{
		Meta: ChartMeta{
			ChartKey: ChartKey(filePath, root),
			FilePath: filePath,
			Mtime:    info.ModTime(),
			Size:     info.Size(),
		},
	}

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var s scanner
	lineNum := 0
	for sc.Scan() {
		lineNum++
		s.feed(lineNum, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	result.Entries = s.finish()

	if n := len(result.Entries); n > 0 {
		result.Meta.FirstDate = result.Entries[0].Date
		result.Meta.LastDate = result.Entries[n-1].Date
		result.Meta.Summary = summarize(result.Entries[0].Content)
	}
	return result, nil
}

// ChartKey derives the stable key for a chart file under root.
func ChartKey(filePath, root string) string {
	rel, err := filepath.Rel(root, filePath)
	if err != nil {
		rel = filePath
	}
	return "chart:" + strings.TrimSuffix(filepath.ToSlash(rel), filepath.Ext(rel))
}

func summarize(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) <= maxSummarySize {
		return s
	}
	cut := maxSummarySize
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
