package state

import (
	"github.com/threadnav/topic-browser/internal/topic"
)

// Browse holds the filter and navigation state for one topic tree. The tree
// itself is immutable between SetTree calls; everything else is derived from
// the query and the keyboard cursor.
//
// Cursor indexes into Visible, the depth-first flattened projection of the
// nodes the current query reveals. Cursor and SelectedID always change
// together: -1/"" when idle, otherwise Cursor points at the row whose node id
// is SelectedID.
type Browse struct {
	Tree    *topic.Node
	Rows    []topic.Row
	Visible []topic.Row

	Query         string
	QueryCursor   int
	FilterEnabled bool

	Cursor     int
	SelectedID string

	Selected       map[string]struct{}
	ViewportOffset int

	visibleIDs map[string]struct{}
	paths      map[string]string
}

// NewBrowse constructs browse state over the given tree with an empty query:
// every node visible, nothing active.
func NewBrowse(tree *topic.Node) *Browse {
	b := &Browse{
		Cursor:        -1,
		FilterEnabled: true,
		Selected:      make(map[string]struct{}),
	}
	b.SetTree(tree)
	return b
}

// SetTree swaps in a freshly rebuilt tree, re-derives the projection for the
// current query, and resets navigation. Selections that no longer resolve to
// a node are dropped.
func (b *Browse) SetTree(tree *topic.Node) {
	b.Tree = tree
	b.Rows = topic.Flatten(tree)
	b.paths = pathIndex(tree, b.Rows)
	b.CleanupSelections()
	b.resetSelection()
	b.FilterEnabled = true
	b.refilter()
}

// IndexOf returns the position of the node id in the visible projection.
func (b *Browse) IndexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, row := range b.Visible {
		if row.Node.ID == id {
			return i
		}
	}
	return -1
}

// NodeAt returns the visible node at the given index, or nil out of range.
func (b *Browse) NodeAt(i int) *topic.Node {
	if i < 0 || i >= len(b.Visible) {
		return nil
	}
	return b.Visible[i].Node
}

// CurrentNode returns the active node, or nil while idle.
func (b *Browse) CurrentNode() *topic.Node {
	return b.NodeAt(b.Cursor)
}

// IsVisible reports whether the node id survives the current filter.
func (b *Browse) IsVisible(id string) bool {
	_, ok := b.visibleIDs[id]
	return ok
}

// VisibleCount returns the length of the visible projection.
func (b *Browse) VisibleCount() int {
	return len(b.Visible)
}

func (b *Browse) resetSelection() {
	b.Cursor = -1
	b.SelectedID = ""
	b.ViewportOffset = 0
}
