package tui

import (
	"fmt"
	"strings"

	"github.com/Zuo-Peng/karte/internal/search"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// linesPerItem is the number of terminal lines each result occupies.
const linesPerItem = 2

func (m model) renderList(width, height int) string {
	if len(m.results) == 0 {
		return lipgloss.NewStyle().
			Foreground(colorDim).
			Width(width).
			Height(height).
			Align(lipgloss.Center, lipgloss.Center).
			Render("No entries")
	}

	var lines []string
	for i := m.listOffset; i < len(m.results); i++ {
		if len(lines)+linesPerItem > height {
			break
		}
		lines = append(lines, formatResultLine(m.results[i], width, i == m.cursor)...)
	}

	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

// formatResultLine formats one entry as two lines:
//
//	line 1: [>] date  S  department/doctor
//	line 2:    snippet (dimmed)
func formatResultLine(r search.Result, width int, selected bool) []string {
	// "2025/04/18(金)" -> "04/18"
	date := r.Date
	if len(date) >= 10 {
		date = date[5:10]
	}

	who := r.Department
	if r.Doctor != "" {
		who += "/" + r.Doctor
	}
	whoMax := width - 2 - 6 - 2 - 1
	if whoMax < 0 {
		whoMax = 0
	}
	if runewidth.StringWidth(who) > whoMax {
		who = runewidth.Truncate(who, whoMax, "")
	}

	line1 := fmt.Sprintf("%s %s %s", date, sectionTag(r.SOAPSection), who)
	if selected {
		line1 = styleListSelected.Render("> ") + line1
	} else {
		line1 = "  " + line1
	}

	snippet := strings.NewReplacer("\n", " ", "\t", " ", ">>>", "", "<<<", "").Replace(r.Snippet)
	snippetMax := width - 4
	if snippetMax < 0 {
		snippetMax = 0
	}
	if runewidth.StringWidth(snippet) > snippetMax {
		snippet = runewidth.Truncate(snippet, snippetMax, "")
	}
	line2 := "    " + styleSnippet.Render(snippet)

	return []string{line1, line2}
}

// adjustListScroll keeps the cursor visible within the list viewport.
func (m *model) adjustListScroll(listHeight int) {
	visibleItems := listHeight / linesPerItem
	if visibleItems < 1 {
		visibleItems = 1
	}
	if m.cursor < m.listOffset {
		m.listOffset = m.cursor
	}
	if m.cursor >= m.listOffset+visibleItems {
		m.listOffset = m.cursor - visibleItems + 1
	}
}
