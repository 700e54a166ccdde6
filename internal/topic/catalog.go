package topic

import "github.com/threadnav/topic-browser/internal/forum"

// BuildTree converts a catalog snapshot into a fresh topic tree. The tree is
// rebuilt wholesale on every snapshot; the previous tree is discarded.
func BuildTree(snapshot forum.TopicSnapshot) *Node {
	root := NewRoot()
	for _, cat := range snapshot.Categories {
		root.Children = append(root.Children, categoryNode(cat, ""))
	}
	return root
}

func categoryNode(cat forum.Category, parentPath string) *Node {
	path := cat.Name
	if parentPath != "" {
		path = parentPath + "/" + cat.Name
	}
	node := &Node{
		Title: cat.Name,
		Kind:  KindCategory,
		ID:    cat.ID,
	}
	// Branches without a catalog id still need a stable identity for
	// navigation and visibility tracking. The full path keeps same-named
	// branches under different parents distinct.
	if node.ID == "" {
		node.ID = "category:" + path
	}
	cohortedAll := true
	for _, sub := range cat.Subcategories {
		child := categoryNode(sub, path)
		node.Children = append(node.Children, child)
		cohortedAll = cohortedAll && child.Cohorted
	}
	for _, entry := range cat.Entries {
		node.Children = append(node.Children, &Node{
			ID:       entry.ID,
			Title:    entry.Name,
			Kind:     KindCategory,
			Cohorted: entry.Cohorted,
		})
		cohortedAll = cohortedAll && entry.Cohorted
	}
	// A branch counts as cohorted when the catalog says so, or when every
	// child underneath it is.
	node.Cohorted = cat.Cohorted || (len(node.Children) > 0 && cohortedAll)
	return node
}
