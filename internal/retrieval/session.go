package retrieval

// Session is the state of one retrieval episode. It is reset wholesale on
// every mode transition and advanced only by successfully applied pages.
type Session struct {
	Mode          Mode
	DiscussionIDs []string
	SearchText    string
	GroupID       string
	CurrentPage   int
	SortKey       string
}

// reset reinitialises the session for a new mode, keeping the sort key and
// group scope that outlive individual selections.
func (s *Session) reset(mode Mode) {
	s.Mode = mode
	s.DiscussionIDs = nil
	s.SearchText = ""
	s.CurrentPage = 0
}
