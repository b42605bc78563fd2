package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary   = lipgloss.Color("12")  // bright blue
	colorDim       = lipgloss.Color("240") // gray
	colorHighlight = lipgloss.Color("11")  // bright yellow
	colorBorder    = lipgloss.Color("238") // dark gray

	styleInput = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	styleListSelected = lipgloss.NewStyle().
				Foreground(colorHighlight).
				Bold(true)

	styleSnippet = lipgloss.NewStyle().
			Foreground(colorDim)

	// one colour per SOAP tag, same hues as the plain-text renderer
	sectionStyles = map[string]lipgloss.Style{
		"S": lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
		"O": lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		"A": lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		"P": lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		"F": lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true),
	}

	stylePanelBorder = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorBorder)

	styleActiveBorder = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorPrimary)

	styleStatusBar = lipgloss.NewStyle().
			Foreground(colorDim).
			Padding(0, 1)
)

func sectionTag(tag string) string {
	if s, ok := sectionStyles[tag]; ok {
		return s.Render(tag)
	}
	return tag
}
