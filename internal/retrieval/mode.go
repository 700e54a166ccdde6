package retrieval

// Mode selects which thread-retrieval strategy is active.
type Mode int

const (
	ModeAll Mode = iota
	ModeFollowed
	ModeCommentables
	ModeSearch
)

func (m Mode) String() string {
	switch m {
	case ModeFollowed:
		return "followed"
	case ModeCommentables:
		return "commentables"
	case ModeSearch:
		return "search"
	default:
		return "all"
	}
}
