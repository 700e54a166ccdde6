package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/threadnav/topic-browser/internal/logging/events"
	"github.com/threadnav/topic-browser/internal/topic"
)

// handleEscapeKey cancels the browse interaction: the filter is cleared,
// navigation resets, and the selection is forced back to the "all" node.
// A second escape with nothing to clear quits.
func (m *Model) handleEscapeKey() tea.Cmd {
	b := m.browse
	if b.Query == "" && b.Cursor < 0 && len(b.Selected) == 0 {
		return tea.Quit
	}
	before := b.QueryCursorPos()
	b.ResetFilterInput()
	b.ClearSelection()
	m.noteFilterCursorChange(before)
	m.lastBreadcrumb = nil
	m.errMsg = ""
	m.forceClearInfo()
	events.UI.BrowseCancelled()
	m.syncViewport()
	return m.startRetrieval(m.controller.SelectAll())
}

// handleEnterKey commits the active node. Commits only fire while the filter
// input is non-empty and a node is active; otherwise Enter is a no-op.
func (m *Model) handleEnterKey() tea.Cmd {
	if m.loading {
		return nil
	}
	b := m.browse
	if b.Query == "" {
		return nil
	}
	node := b.CurrentNode()
	if node == nil {
		return nil
	}
	targets := []*topic.Node{node}
	if node.Kind == topic.KindCategory {
		if marked := b.SelectedNodes(); len(marked) > 0 {
			targets = marked
		}
	}
	crumb := topic.Breadcrumb(b.Tree, node.ID)
	events.UI.TopicSelected(node.ID, crumb)
	m.lastBreadcrumb = crumb
	before := b.QueryCursorPos()
	b.ResetFilterInput()
	b.ClearSelection()
	m.noteFilterCursorChange(before)
	m.errMsg = ""
	m.forceClearInfo()
	m.syncViewport()
	switch node.Kind {
	case topic.KindAll:
		return m.startRetrieval(m.controller.SelectAll())
	case topic.KindFollowing:
		return m.startRetrieval(m.controller.SelectFollowed())
	default:
		return m.startRetrieval(m.controller.SelectTopics(targets))
	}
}

func (m *Model) moveCursorUp() {
	if m.browse.MoveCursorUp() {
		events.UI.BrowseCursor(m.browse.Cursor, m.browse.SelectedID)
	}
	m.syncViewport()
}

func (m *Model) moveCursorDown() {
	if m.browse.MoveCursorDown() {
		events.UI.BrowseCursor(m.browse.Cursor, m.browse.SelectedID)
	}
	m.syncViewport()
}

func (m *Model) syncViewport() {
	m.browse.EnsureCursorVisible(m.maxVisibleItems())
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if m.mode != ModeBrowse {
		return nil
	}
	if keyMsg.Type == tea.KeyTab {
		m.browse.ToggleCurrentSelection()
		return nil
	}
	if m.handleTextInput(keyMsg) {
		return nil
	}
	switch keyMsg.String() {
	case "ctrl+c":
		return tea.Quit
	case "esc":
		return m.handleEscapeKey()
	case "enter":
		return m.handleEnterKey()
	case "up":
		m.moveCursorUp()
	case "down":
		m.moveCursorDown()
	case "pgdown":
		return m.loadMore()
	case "ctrl+r":
		return m.retry()
	case "ctrl+s":
		m.openSearchForm()
	}
	return nil
}
