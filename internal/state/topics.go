package state

import "github.com/threadnav/topic-browser/internal/forum"

// TopicStore holds the most recent topic catalog snapshot.
type TopicStore interface {
	Snapshot() forum.TopicSnapshot
	SetSnapshot(forum.TopicSnapshot)
	Loaded() bool
}

type topicStore struct {
	snapshot forum.TopicSnapshot
	loaded   bool
}

func NewTopicStore() TopicStore {
	return &topicStore{}
}

func (s *topicStore) Snapshot() forum.TopicSnapshot {
	return s.snapshot
}

func (s *topicStore) SetSnapshot(snapshot forum.TopicSnapshot) {
	s.snapshot = snapshot
	s.loaded = true
}

func (s *topicStore) Loaded() bool {
	return s.loaded
}
