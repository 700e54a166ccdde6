package state

import (
	"strings"
	"unicode"

	"github.com/threadnav/topic-browser/internal/topic"
)

// SetQuery replaces the filter text and cursor, re-enables filtering, and
// recomputes the visible projection. Changing the query always drops the
// active selection; the next arrow key starts from the top again.
func (b *Browse) SetQuery(query string, cursor int) {
	runes := []rune(query)
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(runes) {
		cursor = len(runes)
	}
	changed := query != b.Query
	b.Query = query
	b.QueryCursor = cursor
	b.FilterEnabled = true
	if changed {
		b.resetSelection()
	}
	b.refilter()
}

// ResetFilterInput clears the query and the navigation pair together and
// restores full visibility. This is the single reset path shared by commit
// and cancel.
func (b *Browse) ResetFilterInput() {
	b.Query = ""
	b.QueryCursor = 0
	b.FilterEnabled = true
	b.resetSelection()
	b.refilter()
}

// refilter recomputes the visible projection from the current query. Skipped
// entirely while filtering is disabled (keyboard navigation bursts) so the
// visible set stays stable between arrow keys; the next enabled pass produces
// the same result it would have anyway.
func (b *Browse) refilter() {
	if !b.FilterEnabled {
		return
	}
	ids := VisibleIDs(b.Tree, b.paths, b.Query)
	b.visibleIDs = ids
	visible := make([]topic.Row, 0, len(b.Rows))
	for _, row := range b.Rows {
		if _, ok := ids[row.Node.ID]; ok {
			visible = append(visible, row)
		}
	}
	b.Visible = visible
	if b.Cursor >= len(b.Visible) {
		b.resetSelection()
	}
}

// VisibleIDs computes the set of node ids revealed by the query. Every term
// (whitespace-split, lower-cased) must occur as a substring of a node's path
// text for the node to match; a match reveals itself, all its ancestors, and
// all its descendants. An empty query reveals everything.
func VisibleIDs(tree *topic.Node, paths map[string]string, query string) map[string]struct{} {
	visible := make(map[string]struct{}, len(paths))
	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 {
		for id := range paths {
			visible[id] = struct{}{}
		}
		return visible
	}
	matches := func(id string) bool {
		path := paths[id]
		for _, term := range terms {
			if !strings.Contains(path, term) {
				return false
			}
		}
		return true
	}
	if tree == nil {
		return visible
	}
	// reveal carries "some ancestor-or-self matched" downward; the return
	// value carries "some descendant-or-self matched" upward.
	var walk func(n *topic.Node, reveal bool) bool
	walk = func(n *topic.Node, reveal bool) bool {
		matched := matches(n.ID)
		reveal = reveal || matched
		anyBelow := matched
		for _, child := range n.Children {
			if walk(child, reveal) {
				anyBelow = true
			}
		}
		if reveal || anyBelow {
			visible[n.ID] = struct{}{}
		}
		return anyBelow
	}
	for _, child := range tree.Children {
		walk(child, false)
	}
	return visible
}

// pathIndex precomputes each node's lower-cased path text once per rebuild.
func pathIndex(tree *topic.Node, rows []topic.Row) map[string]string {
	paths := make(map[string]string, len(rows))
	for _, row := range rows {
		if path, ok := topic.PathText(tree, row.Node.ID); ok {
			paths[row.Node.ID] = path
		}
	}
	return paths
}

// QueryCursorPos returns the rune offset of the query cursor, clamped.
func (b *Browse) QueryCursorPos() int {
	runes := []rune(b.Query)
	if b.QueryCursor < 0 {
		return 0
	}
	if b.QueryCursor > len(runes) {
		return len(runes)
	}
	return b.QueryCursor
}

// InsertQueryText inserts text at the query cursor.
func (b *Browse) InsertQueryText(text string) bool {
	if text == "" {
		return false
	}
	insert := []rune(text)
	runes := []rune(b.Query)
	pos := b.QueryCursorPos()
	updated := make([]rune, 0, len(runes)+len(insert))
	updated = append(updated, runes[:pos]...)
	updated = append(updated, insert...)
	updated = append(updated, runes[pos:]...)
	b.SetQuery(string(updated), pos+len(insert))
	return true
}

// DeleteQueryRuneBackward deletes one rune before the query cursor.
func (b *Browse) DeleteQueryRuneBackward() bool {
	runes := []rune(b.Query)
	pos := b.QueryCursorPos()
	if pos == 0 || len(runes) == 0 {
		return false
	}
	updated := append(runes[:pos-1], runes[pos:]...)
	b.SetQuery(string(updated), pos-1)
	return true
}

// DeleteQueryWordBackward deletes the word preceding the query cursor.
func (b *Browse) DeleteQueryWordBackward() bool {
	runes := []rune(b.Query)
	pos := b.QueryCursorPos()
	if pos == 0 || len(runes) == 0 {
		return false
	}
	i := pos
	for i > 0 && unicode.IsSpace(runes[i-1]) {
		i--
	}
	for i > 0 && !unicode.IsSpace(runes[i-1]) {
		i--
	}
	updated := append(runes[:i], runes[pos:]...)
	b.SetQuery(string(updated), i)
	return true
}

// MoveQueryCursorStart moves the query cursor to the start.
func (b *Browse) MoveQueryCursorStart() bool {
	if b.QueryCursorPos() == 0 {
		return false
	}
	b.QueryCursor = 0
	return true
}

// MoveQueryCursorEnd moves the query cursor to the end.
func (b *Browse) MoveQueryCursorEnd() bool {
	end := len([]rune(b.Query))
	if b.QueryCursorPos() == end {
		return false
	}
	b.QueryCursor = end
	return true
}

// MoveQueryCursorRuneBackward moves the query cursor one rune backward.
func (b *Browse) MoveQueryCursorRuneBackward() bool {
	if b.QueryCursorPos() == 0 {
		return false
	}
	b.QueryCursor = b.QueryCursorPos() - 1
	return true
}

// MoveQueryCursorRuneForward moves the query cursor one rune forward.
func (b *Browse) MoveQueryCursorRuneForward() bool {
	runes := []rune(b.Query)
	pos := b.QueryCursorPos()
	if pos >= len(runes) {
		return false
	}
	b.QueryCursor = pos + 1
	return true
}
