package state

import "github.com/threadnav/topic-browser/internal/topic"

// CleanupSelections drops marks whose nodes vanished in a tree rebuild.
func (b *Browse) CleanupSelections() {
	if len(b.Selected) == 0 {
		return
	}
	valid := make(map[string]struct{}, len(b.Rows))
	for _, row := range b.Rows {
		valid[row.Node.ID] = struct{}{}
	}
	for id := range b.Selected {
		if _, ok := valid[id]; !ok {
			delete(b.Selected, id)
		}
	}
}

// IsSelected reports whether the node id is marked.
func (b *Browse) IsSelected(id string) bool {
	if b.Selected == nil {
		return false
	}
	_, ok := b.Selected[id]
	return ok
}

// ToggleCurrentSelection marks or unmarks the node under the cursor. Only
// category nodes can be marked; the synthetic selectors always act alone.
func (b *Browse) ToggleCurrentSelection() {
	node := b.CurrentNode()
	if node == nil || node.Kind != topic.KindCategory {
		return
	}
	if b.Selected == nil {
		b.Selected = make(map[string]struct{})
	}
	if _, ok := b.Selected[node.ID]; ok {
		delete(b.Selected, node.ID)
	} else {
		b.Selected[node.ID] = struct{}{}
	}
}

// ClearSelection unmarks everything.
func (b *Browse) ClearSelection() {
	for id := range b.Selected {
		delete(b.Selected, id)
	}
}

// SelectedNodes returns the marked nodes in visible display order.
func (b *Browse) SelectedNodes() []*topic.Node {
	if len(b.Selected) == 0 {
		return nil
	}
	nodes := make([]*topic.Node, 0, len(b.Selected))
	for _, row := range b.Visible {
		if b.IsSelected(row.Node.ID) {
			nodes = append(nodes, row.Node)
		}
	}
	return nodes
}
