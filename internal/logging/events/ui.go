package events

import "github.com/threadnav/topic-browser/internal/logging"

type UITracer struct{}

type FilterTracer struct{}

type RetrievalTracer struct{}

var (
	UI        = UITracer{}
	Filter    = FilterTracer{}
	Retrieval = RetrievalTracer{}
)

func (UITracer) BrowseCursor(cursor int, nodeID string) {
	logging.Trace("browse.cursor", map[string]interface{}{"cursor": cursor, "node": nodeID})
}

func (UITracer) TopicSelected(nodeID string, breadcrumb []string) {
	logging.Trace("topic.selected", map[string]interface{}{"node": nodeID, "breadcrumb": breadcrumb})
}

func (UITracer) BrowseCancelled() {
	logging.Trace("browse.cancel", nil)
}

func (UITracer) ThreadsRendered(count int, focus string) {
	logging.Trace("threads.rendered", map[string]interface{}{"count": count, "focus": focus})
}

func (FilterTracer) Cleared() {
	logging.Trace("filter.clear", nil)
}

func (FilterTracer) Append(query string, visible int) {
	logging.Trace("filter.append", map[string]interface{}{"query": query, "visible": visible})
}

func (FilterTracer) Backspace(query string, visible int) {
	logging.Trace("filter.backspace", map[string]interface{}{"query": query, "visible": visible})
}

func (FilterTracer) Cursor(pos int) {
	logging.Trace("filter.cursor", map[string]interface{}{"cursor": pos})
}

func (RetrievalTracer) Request(mode string, generation uint64, page int) {
	logging.Trace("retrieval.request", map[string]interface{}{"mode": mode, "generation": generation, "page": page})
}

func (RetrievalTracer) Applied(mode string, generation uint64, page, threads int) {
	logging.Trace("retrieval.applied", map[string]interface{}{"mode": mode, "generation": generation, "page": page, "threads": threads})
}

func (RetrievalTracer) Stale(generation uint64, page int) {
	logging.Trace("retrieval.stale", map[string]interface{}{"generation": generation, "page": page})
}

func (RetrievalTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("retrieval.error", map[string]interface{}{"error": err.Error()})
}
