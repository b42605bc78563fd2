package render

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Zuo-Peng/karte/internal/index"
	"github.com/mattn/go-runewidth"
)

const (
	colorReset   = "\033[0m"
	colorS       = "\033[1;34m" // bold blue
	colorO       = "\033[1;36m" // bold cyan
	colorA       = "\033[1;32m" // bold green
	colorP       = "\033[1;33m" // bold yellow
	colorF       = "\033[1;35m" // bold magenta
	colorDim     = "\033[2m"
	colorHit     = "\033[43m"   // yellow background
	colorBoldRed = "\033[1;31m" // bold red for keyword highlights
)

type Options struct {
	HitEntryID int
	Context    int    // entries before/after hit to show
	Width      int    // wrap width (0 = no wrap)
	Query      string // search query for keyword highlighting
	NoColor    bool
}

// fts5Operators are FTS5 operators that should not be highlighted as keywords.
var fts5Operators = map[string]bool{
	"AND": true, "OR": true, "NOT": true, "NEAR": true,
	"and": true, "or": true, "not": true, "near": true,
}

func sectionColor(tag string) string {
	switch tag {
	case "S":
		return colorS
	case "O":
		return colorO
	case "A":
		return colorA
	case "P":
		return colorP
	case "F":
		return colorF
	default:
		return colorDim
	}
}

// highlightKeywords wraps case-insensitive matches of query terms in bold red ANSI codes.
func highlightKeywords(text, query string) string {
	if query == "" {
		return text
	}
	var filtered []string
	for _, t := range strings.Fields(query) {
		if !fts5Operators[t] {
			filtered = append(filtered, t)
		}
	}
	for _, term := range filtered {
		lower := strings.ToLower(term)
		i := 0
		for i < len(text) {
			rest := text[i:]
			restLower := strings.ToLower(rest)
			if len(restLower) != len(rest) {
				restLower = rest
			}
			idx := strings.Index(restLower, lower)
			if idx < 0 {
				break
			}
			pos := i + idx
			orig := text[pos : pos+len(term)]
			replacement := colorBoldRed + orig + colorReset
			text = text[:pos] + replacement + text[pos+len(term):]
			i = pos + len(replacement)
		}
	}
	return text
}

// indentLines prepends each line of text with the given prefix.
func indentLines(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}

// wrapLine breaks a single line into multiple lines that fit within maxWidth
// visible columns, skipping ANSI escape sequences when measuring width.
// Full-width characters count as two columns.
func wrapLine(line string, maxWidth int) []string {
	if maxWidth <= 0 {
		return []string{line}
	}

	var result []string
	var cur strings.Builder
	visW := 0

	i := 0
	for i < len(line) {
		// check for ANSI escape sequence: ESC[ ... m
		if i+1 < len(line) && line[i] == '\033' && line[i+1] == '[' {
			j := i + 2
			for j < len(line) && line[j] != 'm' {
				j++
			}
			if j < len(line) {
				j++ // include 'm'
			}
			cur.WriteString(line[i:j])
			i = j
			continue
		}

		r, size := utf8.DecodeRuneInString(line[i:])
		rw := runewidth.RuneWidth(r)

		if visW+rw > maxWidth && visW > 0 {
			result = append(result, cur.String())
			cur.Reset()
			visW = 0
		}

		cur.WriteRune(r)
		visW += rw
		i += size
	}

	if cur.Len() > 0 {
		result = append(result, cur.String())
	}

	if len(result) == 0 {
		return []string{""}
	}
	return result
}

var ansiStripper = strings.NewReplacer(
	colorReset, "", colorS, "", colorO, "", colorA, "", colorP, "", colorF, "",
	colorDim, "", colorHit, "", colorBoldRed, "",
)

// RenderChart renders a chart's entries and returns the content,
// the 0-based line number of the hit entry header (-1 if no hit), and any error.
func RenderChart(db *index.DB, chartKey string, opts Options) (string, int, error) {
	if opts.Context == 0 {
		opts.Context = 10
	}
	if opts.Context < 0 {
		opts.Context = 1000000 // no limit
	}

	c, err := db.GetChartByKey(chartKey)
	if err != nil {
		return "", -1, fmt.Errorf("get chart: %w", err)
	}

	entries, hitIdx, startPos, totalCount, err := db.GetEntriesWindow(chartKey, opts.HitEntryID, opts.Context)
	if err != nil {
		return "", -1, fmt.Errorf("get entries: %w", err)
	}

	if totalCount == 0 {
		return "(empty chart)", -1, nil
	}

	skipAfter := totalCount - startPos - len(entries)

	var b strings.Builder
	hitLine := -1
	lineCount := 0
	wrapW := opts.Width

	writeLine := func(s string) {
		if opts.NoColor {
			s = ansiStripper.Replace(s)
		}
		for _, wl := range wrapLine(s, wrapW) {
			b.WriteString(wl)
			b.WriteString("\n")
			lineCount++
		}
	}

	writeLine(fmt.Sprintf("%s--- %s [%s .. %s] ---%s", colorDim, c.ChartKey, c.FirstDate, c.LastDate, colorReset))

	if startPos > 0 {
		writeLine(fmt.Sprintf("%s... (%d entries before) ...%s", colorDim, startPos, colorReset))
	}

	lastDate := ""
	lastAttr := ""
	for i, e := range entries {
		if e.Date != lastDate {
			writeLine(fmt.Sprintf("%s== %s 入院 %d 日目 ==%s", colorDim, e.Date, e.DaysInHospital, colorReset))
			lastDate = e.Date
			lastAttr = ""
		}
		attr := strings.Join([]string{e.Department, e.Doctor, e.Insurance, e.Time}, "  ")
		if attr != lastAttr {
			writeLine(fmt.Sprintf("%s%s%s", colorDim, attr, colorReset))
			lastAttr = attr
		}

		if i == hitIdx {
			hitLine = lineCount
			writeLine(fmt.Sprintf("%s>> %s > <<%s", colorHit, e.SOAPSection, colorReset))
		} else {
			color := sectionColor(e.SOAPSection)
			writeLine(fmt.Sprintf("%s%s >%s", color, e.SOAPSection, colorReset))
		}

		text := highlightKeywords(e.Content, opts.Query)
		text = indentLines(text, "  ")
		for _, tl := range strings.Split(text, "\n") {
			writeLine(tl)
		}
	}

	if skipAfter > 0 {
		writeLine(fmt.Sprintf("%s... (%d entries after) ...%s", colorDim, skipAfter, colorReset))
	}

	return b.String(), hitLine, nil
}
