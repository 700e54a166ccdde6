package state

import "github.com/threadnav/topic-browser/internal/forum"

// ThreadStore holds the rendered thread list for the content pane.
type ThreadStore interface {
	Entries() []forum.Thread
	SetEntries([]forum.Thread)
	IndexOf(id string) int
}

type threadStore struct {
	entries []forum.Thread
}

func NewThreadStore() ThreadStore {
	return &threadStore{}
}

func (s *threadStore) Entries() []forum.Thread {
	return cloneThreads(s.entries)
}

func (s *threadStore) SetEntries(entries []forum.Thread) {
	s.entries = cloneThreads(entries)
}

func (s *threadStore) IndexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, entry := range s.entries {
		if entry.ID == id {
			return i
		}
	}
	return -1
}

func cloneThreads(entries []forum.Thread) []forum.Thread {
	if len(entries) == 0 {
		return nil
	}
	dup := make([]forum.Thread, len(entries))
	copy(dup, entries)
	return dup
}
