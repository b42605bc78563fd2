// Package tui is the interactive browser over indexed chart entries.
package tui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/Zuo-Peng/karte/internal/index"
	"github.com/Zuo-Peng/karte/internal/search"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const debounceDelay = 200 * time.Millisecond

// sectionCycle is the order the section filter steps through; "" is all.
var sectionCycle = []string{"", "S", "O", "A", "P", "F"}

// clipboardWrite is swapped out in tests.
var clipboardWrite = clipboard.WriteAll

type tuiMode int

const (
	modeSearch tuiMode = iota
	modeList
)

type searchResultMsg struct {
	query   string
	section string
	results []search.Result
	err     error
}

type debounceTickMsg struct {
	query string
}

type model struct {
	db          *index.DB
	searchOpts  search.Options
	mode        tuiMode
	query       string
	results     []search.Result
	cursor      int
	listOffset  int
	filterInput textinput.Model
	preview     viewport.Model
	previewKey  string
	width       int
	height      int
	ready       bool
	quitting    bool
	picked      *search.Result
}

func newModel(db *index.DB, mode tuiMode, query string, opts search.Options) model {
	ti := textinput.New()
	ti.Placeholder = "Search..."
	if mode == modeList {
		ti.Placeholder = "Filter..."
	}
	ti.Focus()
	ti.SetValue(query)
	ti.Prompt = "> "
	ti.PromptStyle = styleInputPrompt
	ti.TextStyle = styleInput
	ti.CharLimit = 256

	return model{
		db:          db,
		searchOpts:  opts,
		mode:        mode,
		query:       query,
		filterInput: ti,
		preview:     viewport.New(0, 0),
	}
}

// Run starts the search TUI and blocks until it exits. A picked entry's
// content is copied to the clipboard.
func Run(db *index.DB, query string, opts search.Options) error {
	return run(newModel(db, modeSearch, query, opts))
}

// RunList starts the TUI over all entries, newest first.
func RunList(db *index.DB, opts search.Options) error {
	return run(newModel(db, modeList, "", opts))
}

func run(m model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}

	fm := finalModel.(model)
	if fm.picked != nil {
		return copyEntry(fm.db, *fm.picked, os.Stdout)
	}
	return nil
}

// copyEntry puts the entry's content on the clipboard, or prints it when
// no clipboard is available.
func copyEntry(db *index.DB, r search.Result, w io.Writer) error {
	entries, err := db.GetEntries(r.ChartKey)
	if err != nil {
		return fmt.Errorf("get entries: %w", err)
	}
	for _, e := range entries {
		if e.EntryID != r.EntryID {
			continue
		}
		if err := clipboardWrite(e.Content); err != nil {
			fmt.Fprintln(w, e.Content)
			return nil
		}
		fmt.Fprintf(w, "Copied %s > entry (%s %s) to clipboard\n", e.SOAPSection, e.Date, e.Time)
		return nil
	}
	return fmt.Errorf("%w: %s entry %d", index.ErrChartNotFound, r.ChartKey, r.EntryID)
}

func (m model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.mode == modeList || m.query != "" {
		cmds = append(cmds, m.fetch(m.query))
	}
	return tea.Batch(cmds...)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.preview = newViewport(m.previewWidth(), m.panelHeight())
		m.previewKey = ""
		return m, m.loadCurrentPreview()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, keys.Enter):
			if m.cursor < len(m.results) {
				r := m.results[m.cursor]
				m.picked = &r
				m.quitting = true
				return m, tea.Quit
			}
			return m, nil

		case key.Matches(msg, keys.Section):
			m.searchOpts.Section = nextSection(m.searchOpts.Section)
			return m, m.fetch(m.query)

		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
				m.adjustListScroll(m.panelHeight())
				cmds = append(cmds, m.loadCurrentPreview())
			}
			return m, tea.Batch(cmds...)

		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.results)-1 {
				m.cursor++
				m.adjustListScroll(m.panelHeight())
				cmds = append(cmds, m.loadCurrentPreview())
			}
			return m, tea.Batch(cmds...)

		case key.Matches(msg, keys.PreviewUp):
			m.preview.LineUp(m.panelHeight() / 2)
			return m, nil

		case key.Matches(msg, keys.PreviewDn):
			m.preview.LineDown(m.panelHeight() / 2)
			return m, nil

		case key.Matches(msg, keys.PageUp):
			m.preview.LineUp(m.panelHeight())
			return m, nil

		case key.Matches(msg, keys.PageDown):
			m.preview.LineDown(m.panelHeight())
			return m, nil
		}

		var tiCmd tea.Cmd
		m.filterInput, tiCmd = m.filterInput.Update(msg)
		cmds = append(cmds, tiCmd)

		if q := m.filterInput.Value(); q != m.query {
			m.query = q
			cmds = append(cmds, scheduleDebounce(q))
		}
		return m, tea.Batch(cmds...)

	case tea.MouseMsg:
		if !m.ready || len(m.results) == 0 {
			return m, nil
		}
		return m.handleMouse(msg)

	case debounceTickMsg:
		if msg.query == m.query {
			return m, m.fetch(msg.query)
		}
		return m, nil

	case searchResultMsg:
		if msg.query != m.query || msg.section != m.searchOpts.Section {
			return m, nil // stale
		}
		m.cursor = 0
		m.listOffset = 0
		m.previewKey = ""
		if msg.err != nil {
			m.results = nil
			m.preview.SetContent("Error: " + msg.err.Error())
			return m, nil
		}
		m.results = msg.results
		if len(m.results) == 0 {
			m.preview.SetContent("")
			return m, nil
		}
		return m, m.loadCurrentPreview()

	case previewRenderedMsg:
		if msg.key == m.previewKey {
			return m, nil
		}
		if m.cursor < len(m.results) && previewCacheKey(m.results[m.cursor]) != msg.key {
			return m, nil // stale
		}
		if msg.err != nil {
			m.preview.SetContent("Preview error: " + msg.err.Error())
		} else {
			m.preview.SetContent(msg.content)
			if msg.hitLine > 0 {
				m.preview.SetYOffset(msg.hitLine)
			} else {
				m.preview.GotoTop()
			}
		}
		m.previewKey = msg.key
		return m, nil
	}

	return m, nil
}

func (m model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	region, itemIdx := m.hitTest(msg.X, msg.Y)

	switch {
	case region == regionList && msg.Button == tea.MouseButtonWheelUp:
		if m.listOffset > 0 {
			m.listOffset--
		}

	case region == regionList && msg.Button == tea.MouseButtonWheelDown:
		maxOffset := len(m.results) - m.panelHeight()/linesPerItem
		if maxOffset < 0 {
			maxOffset = 0
		}
		if m.listOffset < maxOffset {
			m.listOffset++
		}

	case region == regionList && msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress:
		if itemIdx >= 0 && itemIdx < len(m.results) && m.cursor != itemIdx {
			m.cursor = itemIdx
			m.adjustListScroll(m.panelHeight())
			return m, m.loadCurrentPreview()
		}

	case region == regionPreview && (msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown):
		var cmd tea.Cmd
		m.preview, cmd = m.preview.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) View() string {
	if m.quitting || !m.ready {
		return ""
	}

	listW := m.listWidth()
	previewW := m.previewWidth()
	panelH := m.panelHeight()

	listPanel := stylePanelBorder.
		Width(listW).
		Height(panelH).
		Render(m.renderList(listW, panelH))

	m.preview.Width = previewW
	m.preview.Height = panelH
	previewPanel := styleActiveBorder.
		Width(previewW).
		Height(panelH).
		Render(m.preview.View())

	panels := lipgloss.JoinHorizontal(lipgloss.Top, listPanel, previewPanel)
	return lipgloss.JoinVertical(lipgloss.Left, m.filterInput.View(), panels, m.statusBar())
}

func (m model) listWidth() int {
	if m.width <= 0 {
		return 40
	}
	w := m.width*40/100 - 4
	if w < 20 {
		w = 20
	}
	return w
}

func (m model) previewWidth() int {
	if m.width <= 0 {
		return 60
	}
	w := m.width*60/100 - 4
	if w < 20 {
		w = 20
	}
	return w
}

// panelHeight leaves room for the input row, the status bar and borders.
func (m model) panelHeight() int {
	if m.height <= 0 {
		return 20
	}
	h := m.height - 6
	if h < 5 {
		h = 5
	}
	return h
}

type mouseRegion int

const (
	regionNone mouseRegion = iota
	regionList
	regionPreview
)

// hitTest maps terminal coordinates to a panel region and list item index.
func (m model) hitTest(x, y int) (mouseRegion, int) {
	contentYStart := 2 // input row + top border
	contentYEnd := contentYStart + m.panelHeight() - 1
	if y < contentYStart || y > contentYEnd {
		return regionNone, -1
	}

	lw := m.listWidth()
	if x >= 1 && x <= lw {
		return regionList, m.listOffset + (y-contentYStart)/linesPerItem
	}
	if x > lw+2 {
		return regionPreview, -1
	}
	return regionNone, -1
}

func (m model) statusBar() string {
	section := m.searchOpts.Section
	if section == "" {
		section = "all"
	}
	parts := []string{
		fmt.Sprintf("%d entries", len(m.results)),
		"section " + section + " (tab)",
		"click/up/dn navigate",
		"scroll/C-u/C-d preview",
		"Enter copy entry",
		"Esc quit",
	}
	return styleStatusBar.Render(strings.Join(parts, " | "))
}

func nextSection(cur string) string {
	for i, s := range sectionCycle {
		if s == cur {
			return sectionCycle[(i+1)%len(sectionCycle)]
		}
	}
	return sectionCycle[0]
}

// fetch runs the query for the current mode. List mode with an empty
// filter lists everything; search mode with an empty query clears.
func (m model) fetch(query string) tea.Cmd {
	db := m.db
	opts := m.searchOpts
	opts.Query = query
	mode := m.mode
	return func() tea.Msg {
		msg := searchResultMsg{query: query, section: opts.Section}
		switch {
		case mode == modeList:
			msg.results, msg.err = search.ListAll(db, opts)
		case strings.TrimSpace(query) != "":
			msg.results, msg.err = search.Search(db, opts)
		}
		return msg
	}
}

func scheduleDebounce(query string) tea.Cmd {
	return tea.Tick(debounceDelay, func(time.Time) tea.Msg {
		return debounceTickMsg{query: query}
	})
}

func (m model) loadCurrentPreview() tea.Cmd {
	if m.cursor >= len(m.results) {
		return nil
	}
	r := m.results[m.cursor]
	if previewCacheKey(r) == m.previewKey {
		return nil
	}
	return loadPreviewCmd(m.db, r, m.query, m.previewWidth())
}
