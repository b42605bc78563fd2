package summary

import (
	"strings"
)

// Parse splits cleaned summary text into the layout's sections.
//
// A line containing a label anywhere opens that label's section; the rest of
// the line (label and an adjacent colon removed) replaces the section's text.
// Lines without a label continue the open section. Lines before the first
// label are dropped. Labels are tried in layout order and the first one found
// wins, so a label that is a substring of another must be declared after it.
func (l Layout) Parse(text string) *Sections {
	sections := newSections(l.Keys)
	labels := l.labels()

	current := ""
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if key, rest, ok := matchLabel(labels, line); ok {
			current = key
			sections.values[key] = rest
			continue
		}

		if current == "" {
			continue
		}
		if v := sections.values[current]; v != "" {
			sections.values[current] = v + "\n" + line
		} else {
			sections.values[current] = line
		}
	}
	return sections
}

// Parse splits text with DefaultLayout.
func Parse(text string) *Sections {
	return DefaultLayout().Parse(text)
}

func matchLabel(labels []label, line string) (key, rest string, ok bool) {
	for _, lb := range labels {
		idx := strings.Index(line, lb.text)
		if idx < 0 {
			continue
		}
		before := trimColonSuffix(line[:idx])
		after := trimColonPrefix(line[idx+len(lb.text):])
		return lb.key, strings.TrimSpace(before + after), true
	}
	return "", "", false
}

func trimColonPrefix(s string) string {
	for _, c := range []string{":", "："} {
		if strings.HasPrefix(s, c) {
			return s[len(c):]
		}
	}
	return s
}

func trimColonSuffix(s string) string {
	for _, c := range []string{":", "："} {
		if strings.HasSuffix(s, c) {
			return s[:len(s)-len(c)]
		}
	}
	return s
}
