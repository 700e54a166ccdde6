package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/threadnav/topic-browser/internal/logging/events"
	"github.com/threadnav/topic-browser/internal/retrieval"
	"github.com/threadnav/topic-browser/internal/ui/command"
)

// startRetrieval marks the model busy and schedules the request through the
// command bus.
func (m *Model) startRetrieval(req retrieval.Request) tea.Cmd {
	m.loading = true
	m.pendingMode = m.controller.Mode().String()
	m.alertMsg = ""
	return m.bus.Fetch(m.pendingMode, req)
}

func (m *Model) loadMore() tea.Cmd {
	req, ok := m.controller.LoadMore()
	if !ok {
		return nil
	}
	return m.startRetrieval(req)
}

func (m *Model) retry() tea.Cmd {
	req, ok := m.controller.Retry()
	if !ok {
		return nil
	}
	return m.startRetrieval(req)
}

func (m *Model) handleRetrievalResultMsg(msg tea.Msg) tea.Cmd {
	resultMsg, ok := msg.(command.ResultMsg)
	if !ok {
		return nil
	}
	res := resultMsg.Result
	switch m.controller.Apply(res) {
	case retrieval.OutcomeStale:
		events.Retrieval.Stale(res.Generation, res.Page)
		return nil
	case retrieval.OutcomeFailed:
		m.loading = m.controller.InFlight()
		m.pendingMode = ""
		m.errMsg = ""
		// The existing threads were re-rendered as fallback content, which
		// counts as a completed page load for listeners.
		events.UI.ThreadsRendered(len(m.controller.Threads()), m.controller.PrevLastThreadID())
		return nil
	}
	m.loading = m.controller.InFlight()
	m.pendingMode = ""
	m.errMsg = ""
	m.alertMsg = ""
	events.Retrieval.Applied(m.controller.Mode().String(), res.Generation, res.Page, len(res.Data.Threads))
	events.UI.ThreadsRendered(len(m.controller.Threads()), m.controller.PrevLastThreadID())
	m.anchorThreadFocus()
	if corrected := res.Data.CorrectedText; corrected != "" && m.verbose {
		m.setInfo("Showing results for \"" + corrected + "\"")
	}
	return nil
}

// anchorThreadFocus moves thread-panel focus to the row after the thread
// that was last before this page applied, or to the first row.
func (m *Model) anchorThreadFocus() {
	count := len(m.threads.Entries())
	if count == 0 {
		m.threadFocus = -1
		return
	}
	m.threadFocus = 0
	if idx := m.threads.IndexOf(m.controller.PrevLastThreadID()); idx >= 0 {
		m.threadFocus = idx + 1
		if m.threadFocus > count-1 {
			m.threadFocus = count - 1
		}
	}
}
