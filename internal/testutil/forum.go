package testutil

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
)

// ForumServer is a canned forum API backed by httptest, serving one
// topic catalog and one thread collection for every query.
type ForumServer struct {
	Server       *httptest.Server
	TopicsJSON   string
	ThreadsJSON  string
	topicsCalls  atomic.Int64
	threadsCalls atomic.Int64
}

// StartForumServer boots a stub forum API. The caller owns the returned
// server; Close is registered as a test cleanup.
func StartForumServer(t *testing.T, topicsJSON, threadsJSON string) *ForumServer {
	t.Helper()
	fs := &ForumServer{TopicsJSON: topicsJSON, ThreadsJSON: threadsJSON}
	fs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasSuffix(r.URL.Path, "/topics"):
			fs.topicsCalls.Add(1)
			fmt.Fprint(w, fs.TopicsJSON)
		default:
			fs.threadsCalls.Add(1)
			fmt.Fprint(w, fs.ThreadsJSON)
		}
	}))
	t.Cleanup(fs.Server.Close)
	return fs
}

// URL returns the base URL of the stub server.
func (f *ForumServer) URL() string { return f.Server.URL }

// TopicsCalls reports how many topic catalog requests were served.
func (f *ForumServer) TopicsCalls() int64 { return f.topicsCalls.Load() }

// ThreadsCalls reports how many thread requests were served.
func (f *ForumServer) ThreadsCalls() int64 { return f.threadsCalls.Load() }
