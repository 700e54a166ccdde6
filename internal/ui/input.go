package ui

import (
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/threadnav/topic-browser/internal/logging/events"
)

func (m *Model) updateFilterCursorModel(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.filterCursor, cmd = m.filterCursor.Update(msg)
	return cmd
}

func (m *Model) noteFilterCursorChange(before int) {
	if before != m.browse.QueryCursorPos() {
		m.filterCursorDirty = true
	}
}

func (m *Model) handleTextInput(msg tea.KeyMsg) bool {
	if m.loading {
		return false
	}
	b := m.browse
	switch msg.String() {
	case "ctrl+u":
		if b.Query == "" {
			return false
		}
		before := b.QueryCursorPos()
		b.ResetFilterInput()
		m.noteFilterCursorChange(before)
		m.forceClearInfo()
		m.errMsg = ""
		events.Filter.Cleared()
		m.syncViewport()
		return true
	case "ctrl+w":
		before := b.QueryCursorPos()
		if !b.DeleteQueryWordBackward() {
			return false
		}
		m.noteFilterCursorChange(before)
		m.forceClearInfo()
		m.errMsg = ""
		events.Filter.Backspace(b.Query, b.VisibleCount())
		m.syncViewport()
		return true
	case "ctrl+a":
		before := b.QueryCursorPos()
		if !b.MoveQueryCursorStart() {
			return false
		}
		m.noteFilterCursorChange(before)
		events.Filter.Cursor(b.QueryCursor)
		return true
	case "ctrl+e":
		before := b.QueryCursorPos()
		if !b.MoveQueryCursorEnd() {
			return false
		}
		m.noteFilterCursorChange(before)
		events.Filter.Cursor(b.QueryCursor)
		return true
	}
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyCtrlH:
		return m.removeFilterRune()
	case tea.KeyRunes:
		if msg.Alt {
			return false
		}
		if len(msg.Runes) == 0 {
			return false
		}
		for _, r := range msg.Runes {
			if unicode.IsControl(r) {
				return false
			}
			if unicode.IsSpace(r) {
				// allow the dedicated space handler to manage spaces
				return false
			}
		}
		return m.appendToFilter(string(msg.Runes))
	case tea.KeySpace:
		return m.appendToFilter(" ")
	case tea.KeyLeft:
		before := m.browse.QueryCursorPos()
		if !m.browse.MoveQueryCursorRuneBackward() {
			return false
		}
		m.noteFilterCursorChange(before)
		events.Filter.Cursor(m.browse.QueryCursor)
		return true
	case tea.KeyRight:
		before := m.browse.QueryCursorPos()
		if !m.browse.MoveQueryCursorRuneForward() {
			return false
		}
		m.noteFilterCursorChange(before)
		events.Filter.Cursor(m.browse.QueryCursor)
		return true
	}
	return false
}

func (m *Model) appendToFilter(text string) bool {
	if text == "" {
		return false
	}
	before := m.browse.QueryCursorPos()
	if !m.browse.InsertQueryText(text) {
		return false
	}
	m.noteFilterCursorChange(before)
	m.forceClearInfo()
	m.errMsg = ""
	events.Filter.Append(m.browse.Query, m.browse.VisibleCount())
	m.syncViewport()
	return true
}

func (m *Model) removeFilterRune() bool {
	before := m.browse.QueryCursorPos()
	if !m.browse.DeleteQueryRuneBackward() {
		return false
	}
	m.noteFilterCursorChange(before)
	m.forceClearInfo()
	m.errMsg = ""
	events.Filter.Backspace(m.browse.Query, m.browse.VisibleCount())
	m.syncViewport()
	return true
}

func (m *Model) filterPrompt() string {
	render := func(style *lipgloss.Style, value string) string {
		if style == nil || value == "" {
			return value
		}
		return style.Render(value)
	}
	if styles.Cursor != nil {
		m.filterCursor.Style = styles.Cursor.Copy()
	}
	if styles.Filter != nil {
		m.filterCursor.TextStyle = styles.Filter.Copy()
	} else {
		m.filterCursor.TextStyle = lipgloss.Style{}
	}
	prompt := "» "
	if styles.FilterPrompt != nil {
		prompt = styles.FilterPrompt.Render(prompt)
	}
	text := m.browse.Query
	if text == "" {
		placeholder := "(filter discussion topics)"
		runes := []rune(placeholder)
		var caretRune string
		var rest string
		if len(runes) > 0 {
			caretRune = string(runes[0])
			rest = string(runes[1:])
		}
		if styles.FilterPlaceholder != nil {
			m.filterCursor.TextStyle = styles.FilterPlaceholder.Copy()
		}
		caret := m.renderFilterCursor(caretRune)
		return prompt + caret + render(styles.FilterPlaceholder, rest)
	}
	runes := []rune(text)
	pos := m.browse.QueryCursorPos()
	if pos < 0 {
		pos = 0
	}
	if pos > len(runes) {
		pos = len(runes)
	}
	before := render(styles.Filter, string(runes[:pos]))
	var caretRune string
	if pos < len(runes) {
		caretRune = string(runes[pos])
	} else {
		caretRune = " "
	}
	caret := m.renderFilterCursor(caretRune)
	var after string
	if pos < len(runes) {
		after = render(styles.Filter, string(runes[pos+1:]))
	}
	return prompt + before + caret + after
}

func (m *Model) renderFilterCursor(char string) string {
	if char == "" {
		char = " "
	}
	m.filterCursor.SetChar(char)

	base := m.filterCursor.TextStyle.Copy()
	base = base.Inline(true)

	if m.filterCursor.Blink {
		return base.Render(char)
	}

	if styles.Cursor != nil {
		cursorStyle := styles.Cursor.Copy().Inline(true)
		base = base.Inherit(cursorStyle).Blink(false)
		return base.Render(char)
	}

	return base.Reverse(true).Render(char)
}
