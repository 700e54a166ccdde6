package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/threadnav/topic-browser/internal/backend"
	"github.com/threadnav/topic-browser/internal/forum"
	"github.com/threadnav/topic-browser/internal/testutil"
)

const integrationTopicsJSON = `{"categories":[
	{"name":"General","id":"10","entries":[{"id":"11","name":"Announcements"}]}
]}`

const integrationThreadsJSON = `{"collection":[
	{"id":"th-1","title":"Welcome to the course","username":"staff","comments_count":7}
],"page":0,"num_pages":1}`

// Drives the model against a real forum client and catalog watcher backed by
// a stub HTTP server.
func TestModelAgainstStubForum(t *testing.T) {
	server := testutil.StartForumServer(t, integrationTopicsJSON, integrationThreadsJSON)
	client := forum.NewClient(server.URL(), "demo")
	watcher := backend.NewWatcher(client, 50*time.Millisecond)
	defer watcher.Stop()

	m := NewModel(Options{
		Client:   client,
		Watcher:  watcher,
		PageSize: 20,
		Width:    100,
		Height:   30,
	})
	m.filterCursor.SetMode(cursor.CursorStatic)
	h := NewHarness(m)

	select {
	case evt := <-watcher.Events():
		h.Send(backendEventMsg{event: evt})
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for the initial catalog event")
	}

	if m.Browse().VisibleCount() != 4 {
		t.Fatalf("expected all/following/general/announcements rows, got %d", m.Browse().VisibleCount())
	}
	if server.TopicsCalls() == 0 {
		t.Fatalf("watcher should have polled the topics endpoint")
	}

	h.Send(keyRunes("general"))
	h.Send(tea.KeyMsg{Type: tea.KeyDown})
	h.Send(tea.KeyMsg{Type: tea.KeyEnter})

	if server.ThreadsCalls() == 0 {
		t.Fatalf("commit should have fetched threads")
	}
	entries := m.Threads().Entries()
	if len(entries) != 1 || entries[0].ID != "th-1" {
		t.Fatalf("unexpected threads: %+v", entries)
	}
	if !strings.Contains(h.View(), "Welcome to the course") {
		t.Fatalf("view should show the fetched thread")
	}
}
