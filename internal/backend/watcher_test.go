package backend

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/threadnav/topic-browser/internal/forum"
)

type stubFetcher struct {
	calls    atomic.Int64
	snapshot forum.TopicSnapshot
	err      error
}

func (s *stubFetcher) FetchTopics(context.Context) (forum.TopicSnapshot, error) {
	s.calls.Add(1)
	return s.snapshot, s.err
}

func TestWatcherEmitsInitialSnapshot(t *testing.T) {
	fetcher := &stubFetcher{snapshot: forum.TopicSnapshot{CourseID: "c1"}}
	w := NewWatcher(fetcher, time.Hour)
	defer func() {
		w.Stop()
		w.Wait()
	}()

	select {
	case evt := <-w.Events():
		if evt.Kind != KindTopics || evt.Err != nil {
			t.Fatalf("unexpected event %#v", evt)
		}
		snapshot, ok := evt.Data.(forum.TopicSnapshot)
		if !ok || snapshot.CourseID != "c1" {
			t.Fatalf("unexpected payload %#v", evt.Data)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for initial event")
	}
}

func TestWatcherPropagatesFetchErrors(t *testing.T) {
	fetcher := &stubFetcher{err: errors.New("offline")}
	w := NewWatcher(fetcher, time.Hour)
	defer func() {
		w.Stop()
		w.Wait()
	}()

	select {
	case evt := <-w.Events():
		if evt.Err == nil {
			t.Fatalf("expected error event, got %#v", evt)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for error event")
	}
}

func TestThrottleSpacesCalls(t *testing.T) {
	th := newThrottle(20 * time.Millisecond)
	start := time.Now()
	th.wait()
	th.wait()
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Fatalf("expected second call delayed, elapsed %v", elapsed)
	}
	// Zero spacing never blocks.
	free := newThrottle(0)
	done := time.Now()
	free.wait()
	if time.Since(done) > 10*time.Millisecond {
		t.Fatal("expected unthrottled wait to return immediately")
	}
}
