package ui

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/threadnav/topic-browser/internal/backend"
	"github.com/threadnav/topic-browser/internal/forum"
)

type scriptedFetcher struct {
	mu      sync.Mutex
	queries []forum.ThreadQuery
	fail    bool
	page    func(q forum.ThreadQuery) forum.ThreadPage
}

func (f *scriptedFetcher) FetchThreads(ctx context.Context, q forum.ThreadQuery) (forum.ThreadPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, q)
	if f.fail {
		return forum.ThreadPage{}, errors.New("forum unavailable")
	}
	if f.page != nil {
		return f.page(q), nil
	}
	return forum.ThreadPage{
		Threads:  []forum.Thread{{ID: "th-" + q.Mode, Title: "Thread for " + q.Mode}},
		Page:     q.Page,
		NumPages: 1,
	}, nil
}

func (f *scriptedFetcher) lastQuery(t *testing.T) forum.ThreadQuery {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.queries) == 0 {
		t.Fatalf("no queries recorded")
	}
	return f.queries[len(f.queries)-1]
}

func (f *scriptedFetcher) queryCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queries)
}

func testSnapshot() forum.TopicSnapshot {
	return forum.TopicSnapshot{
		CourseID: "demo",
		Categories: []forum.Category{
			{
				ID:   "1",
				Name: "A",
				Entries: []forum.Entry{
					{ID: "2", Name: "A1", Cohorted: true},
				},
			},
			{ID: "3", Name: "B"},
		},
	}
}

func newTestModel(t *testing.T, fetcher *scriptedFetcher) (*Model, *Harness) {
	t.Helper()
	m := NewModel(Options{
		Client:   fetcher,
		UserID:   "42",
		SortKey:  "activity",
		PageSize: 20,
		Width:    100,
		Height:   30,
	})
	m.filterCursor.SetMode(cursor.CursorStatic)
	m.applyBackendEvent(backend.Event{Kind: backend.KindTopics, Data: testSnapshot()})
	return m, NewHarness(m)
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestCatalogEventRebuildsTree(t *testing.T) {
	m, _ := newTestModel(t, &scriptedFetcher{})
	if got := m.Browse().VisibleCount(); got != 5 {
		t.Fatalf("expected 5 visible rows after catalog load, got %d", got)
	}
	if m.Browse().Cursor != -1 {
		t.Fatalf("cursor should be idle after rebuild, got %d", m.Browse().Cursor)
	}
}

func TestEnterWithoutQueryIsNoOp(t *testing.T) {
	fetcher := &scriptedFetcher{}
	m, h := newTestModel(t, fetcher)
	h.Send(tea.KeyMsg{Type: tea.KeyDown})
	h.Send(tea.KeyMsg{Type: tea.KeyEnter})
	if fetcher.queryCount() != 0 {
		t.Fatalf("commit with empty query must not fetch, got %d queries", fetcher.queryCount())
	}
	if m.Browse().Cursor != 0 {
		t.Fatalf("cursor should stay put, got %d", m.Browse().Cursor)
	}
}

func TestFilterCommitFetchesSubtree(t *testing.T) {
	fetcher := &scriptedFetcher{}
	m, h := newTestModel(t, fetcher)
	h.Send(keyRunes("a"))
	if got := m.Browse().VisibleCount(); got != 3 {
		t.Fatalf("query \"a\" should reveal 3 rows, got %d", got)
	}
	h.Send(tea.KeyMsg{Type: tea.KeyDown})
	h.Send(tea.KeyMsg{Type: tea.KeyDown})
	if m.Browse().SelectedID != "1" {
		t.Fatalf("expected cursor on category 1, got %q", m.Browse().SelectedID)
	}
	h.Send(tea.KeyMsg{Type: tea.KeyEnter})
	q := fetcher.lastQuery(t)
	if q.Mode != "commentables" {
		t.Fatalf("expected commentables query, got %q", q.Mode)
	}
	if q.CommentableIDs != "1,2" {
		t.Fatalf("expected subtree ids 1,2, got %q", q.CommentableIDs)
	}
	if m.Browse().Query != "" || m.Browse().Cursor != -1 {
		t.Fatalf("commit must reset filter input and navigation, got query=%q cursor=%d", m.Browse().Query, m.Browse().Cursor)
	}
	if len(m.Threads().Entries()) != 1 {
		t.Fatalf("expected rendered threads after commit, got %d", len(m.Threads().Entries()))
	}
}

func TestCursorMovementDisablesRefilter(t *testing.T) {
	m, h := newTestModel(t, &scriptedFetcher{})
	h.Send(keyRunes("a"))
	h.Send(tea.KeyMsg{Type: tea.KeyDown})
	if m.Browse().FilterEnabled {
		t.Fatalf("keyboard navigation should disable filtering")
	}
	h.Send(keyRunes("1"))
	if !m.Browse().FilterEnabled {
		t.Fatalf("query edit should re-enable filtering")
	}
	if got := m.Browse().VisibleCount(); got != 2 {
		t.Fatalf("query \"a1\" should reveal a1 and its ancestor, got %d rows", got)
	}
}

func TestEscapeClearsAndSelectsAll(t *testing.T) {
	fetcher := &scriptedFetcher{}
	m, h := newTestModel(t, fetcher)
	h.Send(keyRunes("a"))
	h.Send(tea.KeyMsg{Type: tea.KeyDown})
	h.Send(tea.KeyMsg{Type: tea.KeyEscape})
	if m.Browse().Query != "" {
		t.Fatalf("escape should clear the filter, got %q", m.Browse().Query)
	}
	if m.Browse().Cursor != -1 || m.Browse().SelectedID != "" {
		t.Fatalf("escape should reset navigation, got cursor=%d id=%q", m.Browse().Cursor, m.Browse().SelectedID)
	}
	q := fetcher.lastQuery(t)
	if q.Mode != "all" {
		t.Fatalf("escape should force the all selection, got mode %q", q.Mode)
	}
}

func TestTabMarksCategoriesForCompositeCommit(t *testing.T) {
	fetcher := &scriptedFetcher{}
	m, h := newTestModel(t, fetcher)
	h.Send(keyRunes("a"))
	h.Send(tea.KeyMsg{Type: tea.KeyDown}) // All
	h.Send(tea.KeyMsg{Type: tea.KeyDown}) // A
	h.Send(tea.KeyMsg{Type: tea.KeyTab})
	h.Send(tea.KeyMsg{Type: tea.KeyDown}) // A1
	h.Send(tea.KeyMsg{Type: tea.KeyTab})
	if got := len(m.Browse().SelectedNodes()); got != 2 {
		t.Fatalf("expected two marked nodes, got %d", got)
	}
	h.Send(tea.KeyMsg{Type: tea.KeyEnter})
	q := fetcher.lastQuery(t)
	if q.Mode != "commentables" || q.CommentableIDs != "1,2" {
		t.Fatalf("composite commit should union marked subtrees, got %q %q", q.Mode, q.CommentableIDs)
	}
	if len(m.Browse().SelectedNodes()) != 0 {
		t.Fatalf("commit should clear marks")
	}
}

func TestFetchFailureRaisesAlertAndRetries(t *testing.T) {
	fetcher := &scriptedFetcher{fail: true}
	m, h := newTestModel(t, fetcher)
	h.Send(keyRunes("b"))
	h.Send(tea.KeyMsg{Type: tea.KeyDown})
	h.Send(tea.KeyMsg{Type: tea.KeyEnter})
	if m.alertMsg == "" {
		t.Fatalf("failed fetch should raise an alert")
	}
	if m.Controller().Mode().String() != "commentables" {
		t.Fatalf("failure must not change the session mode")
	}
	failedQueries := fetcher.queryCount()
	fetcher.mu.Lock()
	fetcher.fail = false
	fetcher.mu.Unlock()
	h.Send(tea.KeyMsg{Type: tea.KeyCtrlR})
	if fetcher.queryCount() != failedQueries+1 {
		t.Fatalf("retry should re-issue exactly one query")
	}
	if m.alertMsg != "" {
		t.Fatalf("successful retry should clear the alert, got %q", m.alertMsg)
	}
	q := fetcher.lastQuery(t)
	if q.Page != 0 || q.Mode != "commentables" {
		t.Fatalf("retry must repeat the failed page, got mode=%q page=%d", q.Mode, q.Page)
	}
}

func TestLoadMoreAppendsNextPage(t *testing.T) {
	fetcher := &scriptedFetcher{page: func(q forum.ThreadQuery) forum.ThreadPage {
		return forum.ThreadPage{
			Threads:  []forum.Thread{{ID: "page-" + string(rune('0'+q.Page)), Title: "T"}},
			Page:     q.Page,
			NumPages: 2,
		}
	}}
	m, h := newTestModel(t, fetcher)
	h.Send(keyRunes("b"))
	h.Send(tea.KeyMsg{Type: tea.KeyDown})
	h.Send(tea.KeyMsg{Type: tea.KeyEnter})
	if len(m.Threads().Entries()) != 1 {
		t.Fatalf("expected one thread after first page, got %d", len(m.Threads().Entries()))
	}
	h.Send(tea.KeyMsg{Type: tea.KeyPgDown})
	entries := m.Threads().Entries()
	if len(entries) != 2 {
		t.Fatalf("expected appended page, got %d threads", len(entries))
	}
	if m.Controller().Session().CurrentPage != 1 {
		t.Fatalf("expected current page 1, got %d", m.Controller().Session().CurrentPage)
	}
	// Exhausted: a further load-more must not fetch.
	before := fetcher.queryCount()
	h.Send(tea.KeyMsg{Type: tea.KeyPgDown})
	if fetcher.queryCount() != before {
		t.Fatalf("load-more past the last page must not fetch")
	}
}

func TestThreadFocusContinuesAfterPreviousLastItem(t *testing.T) {
	fetcher := &scriptedFetcher{page: func(q forum.ThreadQuery) forum.ThreadPage {
		first := string(rune('a' + 2*q.Page))
		second := string(rune('a' + 2*q.Page + 1))
		return forum.ThreadPage{
			Threads:  []forum.Thread{{ID: first, Title: "T " + first}, {ID: second, Title: "T " + second}},
			Page:     q.Page,
			NumPages: 2,
		}
	}}
	m, h := newTestModel(t, fetcher)
	h.Send(keyRunes("b"))
	h.Send(tea.KeyMsg{Type: tea.KeyDown})
	h.Send(tea.KeyMsg{Type: tea.KeyEnter})
	if m.threadFocus != 0 {
		t.Fatalf("expected focus on the first row after the initial page, got %d", m.threadFocus)
	}
	h.Send(tea.KeyMsg{Type: tea.KeyPgDown})
	if m.threadFocus != 2 {
		t.Fatalf("expected focus on the row after the previously last item, got %d", m.threadFocus)
	}
}

func TestSearchFormRunsSearchSession(t *testing.T) {
	fetcher := &scriptedFetcher{}
	m, h := newTestModel(t, fetcher)
	h.Send(tea.KeyMsg{Type: tea.KeyCtrlS})
	if m.mode != ModeSearchForm {
		t.Fatalf("ctrl+s should open the search form")
	}
	h.Send(keyRunes("grading"))
	h.Send(tea.KeyMsg{Type: tea.KeyEnter})
	if m.mode != ModeBrowse {
		t.Fatalf("submit should return to browse mode")
	}
	q := fetcher.lastQuery(t)
	if q.Mode != "search" || q.SearchText != "grading" {
		t.Fatalf("expected search query, got mode=%q text=%q", q.Mode, q.SearchText)
	}
}

func TestSearchFormEscapeKeepsSession(t *testing.T) {
	fetcher := &scriptedFetcher{}
	m, h := newTestModel(t, fetcher)
	h.Send(tea.KeyMsg{Type: tea.KeyCtrlS})
	h.Send(tea.KeyMsg{Type: tea.KeyEscape})
	if m.mode != ModeBrowse {
		t.Fatalf("escape should close the search form")
	}
	if fetcher.queryCount() != 0 {
		t.Fatalf("cancelled search must not fetch")
	}
}
