package tui

import (
	"fmt"

	"github.com/Zuo-Peng/karte/internal/index"
	"github.com/Zuo-Peng/karte/internal/render"
	"github.com/Zuo-Peng/karte/internal/search"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

type previewRenderedMsg struct {
	key     string
	content string
	hitLine int
	err     error
}

// loadPreviewCmd renders the whole chart around the entry off the UI loop.
func loadPreviewCmd(db *index.DB, r search.Result, query string, width int) tea.Cmd {
	return func() tea.Msg {
		content, hitLine, err := render.RenderChart(db, r.ChartKey, render.Options{
			HitEntryID: r.EntryID,
			Context:    -1,
			Width:      width,
			Query:      query,
		})
		return previewRenderedMsg{
			key:     previewCacheKey(r),
			content: content,
			hitLine: hitLine,
			err:     err,
		}
	}
}

func previewCacheKey(r search.Result) string {
	return fmt.Sprintf("%s:%d", r.ChartKey, r.EntryID)
}

func newViewport(width, height int) viewport.Model {
	vp := viewport.New(width, height)
	vp.Style = stylePanelBorder
	return vp
}
