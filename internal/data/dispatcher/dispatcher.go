package dispatcher

import (
	"github.com/threadnav/topic-browser/internal/backend"
	"github.com/threadnav/topic-browser/internal/forum"
	"github.com/threadnav/topic-browser/internal/state"
)

// Result reports which stores an event updated.
type Result struct {
	TopicsUpdated bool
}

// Dispatcher routes backend events into the data stores.
type Dispatcher struct {
	topics state.TopicStore
}

func New(topics state.TopicStore) *Dispatcher {
	return &Dispatcher{topics: topics}
}

func (d *Dispatcher) Handle(evt backend.Event) Result {
	var res Result
	if evt.Err != nil {
		return res
	}
	switch evt.Kind {
	case backend.KindTopics:
		if snapshot, ok := evt.Data.(forum.TopicSnapshot); ok {
			d.topics.SetSnapshot(snapshot)
			res.TopicsUpdated = true
		}
	}
	return res
}
