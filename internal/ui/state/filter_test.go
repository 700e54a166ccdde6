package state

import (
	"testing"

	"github.com/threadnav/topic-browser/internal/forum"
	"github.com/threadnav/topic-browser/internal/topic"
)

func newTestBrowse() *Browse {
	tree := topic.BuildTree(forum.TopicSnapshot{
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
	})
	return NewBrowse(tree)
}

func visibleTitles(b *Browse) []string {
	titles := make([]string, len(b.Visible))
	for i, row := range b.Visible {
		titles[i] = row.Node.Title
	}
	return titles
}

func TestEmptyQueryShowsEverythingAndNothingActive(t *testing.T) {
	b := newTestBrowse()
	if got := len(b.Visible); got != 5 {
		t.Fatalf("expected 5 visible rows, got %d (%v)", got, visibleTitles(b))
	}
	if b.Cursor != -1 || b.SelectedID != "" {
		t.Fatalf("expected idle navigation, got %d/%q", b.Cursor, b.SelectedID)
	}
}

func TestConjunctiveTermsRevealAncestorsOfMatch(t *testing.T) {
	b := newTestBrowse()
	b.SetQuery("a 1", 3)
	got := visibleTitles(b)
	if len(got) != 2 || got[0] != "A" || got[1] != "A1" {
		t.Fatalf("expected [A A1], got %v", got)
	}
	if b.IsVisible("3") {
		t.Fatal("expected B to be filtered out")
	}
}

func TestMatchOnCategoryRevealsDescendants(t *testing.T) {
	b := newTestBrowse()
	b.SetQuery("a", 1)
	// "a" matches the All selector and the whole A subtree; B stays hidden.
	got := visibleTitles(b)
	want := []string{"All", "A", "A1"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
	b.SetQuery("A1", 2)
	got = visibleTitles(b)
	if len(got) != 2 || got[0] != "A" || got[1] != "A1" {
		t.Fatalf("expected match plus ancestor, got %v", got)
	}
}

func TestQueryWithNoMatchesYieldsEmptyProjection(t *testing.T) {
	b := newTestBrowse()
	b.SetQuery("zzz", 3)
	if len(b.Visible) != 0 {
		t.Fatalf("expected no visible rows, got %v", visibleTitles(b))
	}
	if b.MoveCursorDown() || b.MoveCursorUp() {
		t.Fatal("expected cursor moves to be no-ops over an empty projection")
	}
	if b.Cursor != -1 {
		t.Fatalf("expected cursor to stay idle, got %d", b.Cursor)
	}
}

func TestRefilterSkippedWhileDisabled(t *testing.T) {
	b := newTestBrowse()
	b.SetQuery("A1", 2)
	b.MoveCursorDown()
	if b.FilterEnabled {
		t.Fatal("expected cursor movement to disable filtering")
	}
	before := len(b.Visible)
	b.refilter()
	if len(b.Visible) != before {
		t.Fatal("expected disabled refilter to leave projection untouched")
	}
	// Re-enabling must produce the same projection the disabled passes skipped.
	b.SetQuery("A1", 2)
	if got := visibleTitles(b); len(got) != 2 {
		t.Fatalf("expected identical projection after re-enable, got %v", got)
	}
}

func TestResetFilterInputClearsNavigationPairTogether(t *testing.T) {
	b := newTestBrowse()
	b.SetQuery("A1", 2)
	b.MoveCursorDown()
	if b.Cursor != 0 || b.SelectedID == "" {
		t.Fatalf("expected active selection, got %d/%q", b.Cursor, b.SelectedID)
	}
	b.ResetFilterInput()
	if b.Query != "" || b.Cursor != -1 || b.SelectedID != "" {
		t.Fatalf("expected full reset, got %q %d %q", b.Query, b.Cursor, b.SelectedID)
	}
	if !b.FilterEnabled {
		t.Fatal("expected filtering re-enabled after reset")
	}
	if len(b.Visible) != 5 {
		t.Fatalf("expected full visibility restored, got %v", visibleTitles(b))
	}
}

func TestQueryEditing(t *testing.T) {
	b := newTestBrowse()
	if !b.InsertQueryText("ab") {
		t.Fatal("expected insert to succeed")
	}
	if b.Query != "ab" || b.QueryCursor != 2 {
		t.Fatalf("unexpected query state %q/%d", b.Query, b.QueryCursor)
	}
	b.QueryCursor = 1
	if !b.InsertQueryText("z") {
		t.Fatal("expected insert in middle to succeed")
	}
	if b.Query != "azb" || b.QueryCursor != 2 {
		t.Fatalf("unexpected query state %q/%d", b.Query, b.QueryCursor)
	}
	if !b.DeleteQueryRuneBackward() {
		t.Fatal("expected rune deletion to succeed")
	}
	if b.Query != "ab" || b.QueryCursor != 1 {
		t.Fatalf("unexpected query state after delete %q/%d", b.Query, b.QueryCursor)
	}
	b.SetQuery("abc def", 7)
	if !b.DeleteQueryWordBackward() {
		t.Fatal("expected word deletion to succeed")
	}
	if b.Query != "abc " {
		t.Fatalf("expected trailing word removed, got %q", b.Query)
	}
	b.SetQuery("abc", 0)
	if b.DeleteQueryRuneBackward() {
		t.Fatal("expected delete at start to fail")
	}
	if !b.MoveQueryCursorEnd() || b.QueryCursor != 3 {
		t.Fatalf("expected cursor at end, got %d", b.QueryCursor)
	}
	if !b.MoveQueryCursorRuneBackward() || b.QueryCursor != 2 {
		t.Fatalf("expected cursor at 2, got %d", b.QueryCursor)
	}
	if !b.MoveQueryCursorStart() || b.QueryCursor != 0 {
		t.Fatalf("expected cursor at 0, got %d", b.QueryCursor)
	}
	if !b.MoveQueryCursorRuneForward() || b.QueryCursor != 1 {
		t.Fatalf("expected cursor at 1, got %d", b.QueryCursor)
	}
}

func TestSetTreeRebuildPreservesQueryAndDropsStaleMarks(t *testing.T) {
	b := newTestBrowse()
	b.SetQuery("A1", 2)
	b.MoveCursorDown()
	b.MoveCursorDown()
	b.ToggleCurrentSelection()
	if !b.IsSelected("2") {
		t.Fatal("expected A1 marked")
	}
	replacement := topic.BuildTree(forum.TopicSnapshot{
		Categories: []forum.Category{{ID: "9", Name: "C"}},
	})
	b.SetTree(replacement)
	if b.IsSelected("2") {
		t.Fatal("expected stale mark dropped after rebuild")
	}
	if b.Cursor != -1 {
		t.Fatalf("expected navigation reset after rebuild, got %d", b.Cursor)
	}
	if b.Query != "A1" {
		t.Fatalf("expected query preserved, got %q", b.Query)
	}
}
