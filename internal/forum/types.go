package forum

// Category is one nested level of the course topic catalog. Subcategories
// preserve the catalog's ordering; entries are the leaf discussion targets.
type Category struct {
	ID            string
	Name          string
	Cohorted      bool
	Subcategories []Category
	Entries       []Entry
}

// Entry is a leaf discussion target within a category.
type Entry struct {
	ID       string
	Name     string
	Cohorted bool
}

// TopicSnapshot is one complete read of the course topic catalog.
type TopicSnapshot struct {
	CourseID   string
	Categories []Category
}

// Thread is a single discussion thread as returned by the threads endpoint.
// Only the fields the browser renders are decoded.
type Thread struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	CommentableID string `json:"commentable_id"`
	Username      string `json:"username"`
	CommentsCount int    `json:"comments_count"`
	UpdatedAt     string `json:"updated_at"`
	Pinned        bool   `json:"pinned"`
	Following     bool   `json:"subscribed"`
}

// ThreadPage is one page of a paginated thread query.
type ThreadPage struct {
	Threads       []Thread `json:"collection"`
	Page          int      `json:"page"`
	NumPages      int      `json:"num_pages"`
	CorrectedText string   `json:"corrected_text"`
}
