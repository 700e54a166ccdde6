package topic

import "strings"

// Kind distinguishes the synthetic selector nodes from real category nodes.
type Kind int

const (
	KindAll Kind = iota
	KindFollowing
	KindCategory
)

// RootTitle names the synthetic root node. It never appears in breadcrumbs.
const RootTitle = "All Discussions"

// Well-known ids for the synthetic selector nodes.
const (
	AllID       = "#all"
	FollowingID = "#following"
)

// Node is one entry in the topic tree. For category nodes the ID doubles as
// the discussion (commentable) id used by thread queries. The tree is
// immutable between catalog rebuilds.
type Node struct {
	ID       string
	Title    string
	Kind     Kind
	Cohorted bool
	Children []*Node
}

// Row pairs a node with its depth in the flattened projection.
type Row struct {
	Node  *Node
	Depth int
}

// NewRoot builds an empty tree containing only the synthetic root with its
// "all" and "following" children.
func NewRoot() *Node {
	return &Node{
		ID:    "#root",
		Title: RootTitle,
		Kind:  KindCategory,
		Children: []*Node{
			{ID: AllID, Title: "All", Kind: KindAll},
			{ID: FollowingID, Title: "Following", Kind: KindFollowing},
		},
	}
}

// Flatten returns the depth-first projection of the tree, root excluded.
// Ordering is deterministic: children appear in catalog order, each subtree
// fully before its next sibling.
func Flatten(root *Node) []Row {
	if root == nil {
		return nil
	}
	rows := make([]Row, 0, 16)
	var walk func(n *Node, depth int)
	walk = func(n *Node, depth int) {
		rows = append(rows, Row{Node: n, Depth: depth})
		for _, child := range n.Children {
			walk(child, depth+1)
		}
	}
	for _, child := range root.Children {
		walk(child, 0)
	}
	return rows
}

// Find locates a node by id anywhere in the tree, including the root.
func Find(root *Node, id string) *Node {
	if root == nil || id == "" {
		return nil
	}
	if root.ID == id {
		return root
	}
	for _, child := range root.Children {
		if found := Find(child, id); found != nil {
			return found
		}
	}
	return nil
}

// PathText returns the lower-cased "/"-joined title chain down to the node
// with the given id. The synthetic root is omitted, matching breadcrumbs: the
// chain starts at the top-level category. The second return is false when the
// id is not present in the tree.
func PathText(root *Node, id string) (string, bool) {
	titles, ok := pathTitles(root, id)
	if !ok {
		return "", false
	}
	if len(titles) > 0 && titles[0] == RootTitle {
		titles = titles[1:]
	}
	for i, title := range titles {
		titles[i] = strings.ToLower(title)
	}
	return strings.Join(titles, " / "), true
}

// Breadcrumb returns the root-to-leaf title chain for the node, omitting the
// synthetic root title.
func Breadcrumb(root *Node, id string) []string {
	titles, ok := pathTitles(root, id)
	if !ok {
		return nil
	}
	if len(titles) > 0 && titles[0] == RootTitle {
		titles = titles[1:]
	}
	return titles
}

func pathTitles(root *Node, id string) ([]string, bool) {
	if root == nil {
		return nil, false
	}
	if root.ID == id {
		return []string{root.Title}, true
	}
	for _, child := range root.Children {
		if titles, ok := pathTitles(child, id); ok {
			return append([]string{root.Title}, titles...), true
		}
	}
	return nil, false
}

// SubtreeIDs collects the discussion ids of the node and every descendant,
// depth-first. Synthetic selector nodes and branches without a catalog id
// contribute nothing.
func SubtreeIDs(n *Node) []string {
	if n == nil {
		return nil
	}
	ids := make([]string, 0, 4)
	var walk func(n *Node)
	walk = func(n *Node) {
		if n.Kind == KindCategory && n.ID != "" && !strings.HasPrefix(n.ID, "category:") {
			ids = append(ids, n.ID)
		}
		for _, child := range n.Children {
			walk(child)
		}
	}
	walk(n)
	return ids
}

// Ancestors maps every node id to the chain of its ancestor ids, root
// excluded. Computed once per tree rebuild and shared by the filter.
func Ancestors(root *Node) map[string][]string {
	out := make(map[string][]string)
	if root == nil {
		return out
	}
	var walk func(n *Node, chain []string)
	walk = func(n *Node, chain []string) {
		out[n.ID] = append([]string(nil), chain...)
		next := append(chain, n.ID)
		for _, child := range n.Children {
			walk(child, next)
		}
	}
	for _, child := range root.Children {
		walk(child, nil)
	}
	return out
}
