package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/threadnav/topic-browser/internal/backend"
	"github.com/threadnav/topic-browser/internal/logging/events"
	"github.com/threadnav/topic-browser/internal/topic"
)

func waitForBackendEvent(w *backend.Watcher) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-w.Events()
		if !ok {
			return backendDoneMsg{}
		}
		return backendEventMsg{event: evt}
	}
}

type backendEventMsg struct {
	event backend.Event
}

type backendDoneMsg struct{}

func (m *Model) handleBackendEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(backendEventMsg)
	if !ok {
		return nil
	}
	m.applyBackendEvent(eventMsg.event)
	if m.backend != nil {
		return waitForBackendEvent(m.backend)
	}
	return nil
}

func (m *Model) handleBackendDoneMsg(msg tea.Msg) tea.Cmd {
	m.backend = nil
	return nil
}

// applyBackendEvent folds a catalog poll result into the topic store and
// rebuilds the browse tree when the snapshot changed. The current query
// survives the rebuild; cursor and marks reset with the new projection.
func (m *Model) applyBackendEvent(evt backend.Event) {
	if evt.Err != nil {
		m.backendLastErr = evt.Err.Error()
		return
	}
	m.backendLastErr = ""
	res := m.dispatcher.Handle(evt)
	if !res.TopicsUpdated {
		return
	}
	snapshot := m.topics.Snapshot()
	tree := topic.BuildTree(snapshot)
	m.browse.SetTree(tree)
	m.syncViewport()
	events.App.CatalogRebuilt(snapshot.CourseID, len(m.browse.Rows))
}
