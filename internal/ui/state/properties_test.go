package state

import (
	"strings"
	"testing"

	"pgregory.net/rapid"

	"github.com/threadnav/topic-browser/internal/topic"
)

// genTree produces a small random topic tree with unique ids.
func genTree(t *rapid.T) *topic.Node {
	root := topic.NewRoot()
	nextID := 0
	titles := rapid.SliceOfN(rapid.StringMatching(`[a-c]{1,3}`), 1, 12).Draw(t, "titles")
	parents := []*topic.Node{root}
	for _, title := range titles {
		nextID++
		node := &topic.Node{
			ID:    "n" + strings.Repeat("i", nextID),
			Title: title,
			Kind:  topic.KindCategory,
		}
		parent := rapid.SampledFrom(parents).Draw(t, "parent")
		parent.Children = append(parent.Children, node)
		parents = append(parents, node)
	}
	return root
}

// TestVisibilityClosureProperty checks the defining filter policy: a node is
// visible iff some node matching every term lies on its ancestor-or-self or
// descendant-or-self axis.
func TestVisibilityClosureProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		tree := genTree(rt)
		rows := topic.Flatten(tree)
		b := NewBrowse(tree)
		query := rapid.StringMatching(`[a-c ]{0,6}`).Draw(rt, "query")
		b.SetQuery(query, len(query))

		terms := strings.Fields(strings.ToLower(query))
		matches := func(id string) bool {
			path, _ := topic.PathText(tree, id)
			for _, term := range terms {
				if !strings.Contains(path, term) {
					return false
				}
			}
			return true
		}
		ancestors := topic.Ancestors(tree)
		related := func(id string) bool {
			if matches(id) {
				return true
			}
			for _, anc := range ancestors[id] {
				if matches(anc) {
					return true
				}
			}
			for _, row := range rows {
				if !matches(row.Node.ID) {
					continue
				}
				for _, anc := range ancestors[row.Node.ID] {
					if anc == id {
						return true
					}
				}
			}
			return false
		}

		if len(terms) == 0 {
			if len(b.Visible) != len(rows) {
				rt.Fatalf("empty query must reveal all %d rows, got %d", len(rows), len(b.Visible))
			}
			if b.Cursor != -1 {
				rt.Fatalf("empty query must not force an active node, got %d", b.Cursor)
			}
			return
		}
		for _, row := range rows {
			want := related(row.Node.ID)
			if got := b.IsVisible(row.Node.ID); got != want {
				rt.Fatalf("node %s (%q): visible=%v, closure says %v (query %q)",
					row.Node.ID, row.Node.Title, got, want, query)
			}
		}
	})
}

// TestCursorBoundsProperty drives arbitrary bursts of cursor and query
// operations and checks the index invariant after each step.
func TestCursorBoundsProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		b := NewBrowse(genTree(rt))
		ops := rapid.SliceOfN(rapid.IntRange(0, 3), 0, 40).Draw(rt, "ops")
		for _, op := range ops {
			switch op {
			case 0:
				b.MoveCursorDown()
			case 1:
				b.MoveCursorUp()
			case 2:
				q := rapid.StringMatching(`[a-c]{0,3}`).Draw(rt, "q")
				b.SetQuery(q, len(q))
			case 3:
				b.ResetFilterInput()
			}
			if b.Cursor < -1 || b.Cursor > len(b.Visible)-1 {
				rt.Fatalf("cursor %d out of bounds for %d visible rows", b.Cursor, len(b.Visible))
			}
			if b.Cursor >= 0 && b.Visible[b.Cursor].Node.ID != b.SelectedID {
				rt.Fatalf("cursor/id pair out of sync: %d vs %q", b.Cursor, b.SelectedID)
			}
			if b.Cursor == -1 && b.SelectedID != "" {
				rt.Fatalf("idle cursor with lingering id %q", b.SelectedID)
			}
		}
	})
}
