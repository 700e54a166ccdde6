package backend

import (
	"context"
	"sync"
	"time"

	"github.com/threadnav/topic-browser/internal/forum"
)

// Kind represents the type of data emitted by the backend watcher.
type Kind int

const (
	KindTopics Kind = iota
)

// Event conveys updated data or an error from a backend poll.
type Event struct {
	Kind Kind
	Data interface{}
	Err  error
}

// TopicFetcher reads the topic catalog; satisfied by *forum.Client.
type TopicFetcher interface {
	FetchTopics(ctx context.Context) (forum.TopicSnapshot, error)
}

// Watcher polls the forum topic catalog at a fixed interval so the tree can
// be rebuilt wholesale when the catalog changes.
type Watcher struct {
	fetcher  TopicFetcher
	interval time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup
}

// NewWatcher creates a backend watcher that polls the catalog every interval.
func NewWatcher(fetcher TopicFetcher, interval time.Duration) *Watcher {
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		fetcher:  fetcher,
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 16),
	}

	w.startTopicPoller()

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w
}

// Events returns a channel of backend events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop cancels the watcher. The poller exits after its current fetch
// completes; use Wait if a clean drain is required (e.g. in tests).
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until the poller goroutine has exited and the events channel
// is closed. Call after Stop when a clean shutdown is required.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) startTopicPoller() {
	throttle := newThrottle(250 * time.Millisecond)
	w.wg.Add(1)
	go w.poll(KindTopics, func(ctx context.Context) (interface{}, error) {
		throttle.wait()
		return w.fetcher.FetchTopics(ctx)
	})
}

func (w *Watcher) poll(kind Kind, fetch func(context.Context) (interface{}, error)) {
	defer w.wg.Done()

	emit := func() bool {
		data, err := fetch(w.ctx)
		evt := Event{Kind: kind, Data: data, Err: err}
		select {
		case <-w.ctx.Done():
			return false
		case w.events <- evt:
			return true
		}
	}

	if !emit() {
		return
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			if !emit() {
				return
			}
		}
	}
}
