package render

import (
	"fmt"
	"strings"

	"github.com/Zuo-Peng/karte/internal/summary"
)

const emptySection = "(なし)"

// RenderSections renders a section map in layout order, one labelled block
// per section. Empty sections get a dimmed placeholder.
func RenderSections(s *summary.Sections, opts Options) string {
	var b strings.Builder
	writeLine := func(line string) {
		if opts.NoColor {
			line = ansiStripper.Replace(line)
		}
		for _, wl := range wrapLine(line, opts.Width) {
			b.WriteString(wl)
			b.WriteString("\n")
		}
	}

	first := true
	s.Each(func(key, value string) {
		if !first {
			writeLine("")
		}
		first = false

		writeLine(fmt.Sprintf("%s【%s】%s", colorA, key, colorReset))
		if value == "" {
			writeLine(fmt.Sprintf("  %s%s%s", colorDim, emptySection, colorReset))
			return
		}
		text := highlightKeywords(value, opts.Query)
		for _, line := range strings.Split(indentLines(text, "  "), "\n") {
			writeLine(line)
		}
	})
	return b.String()
}
