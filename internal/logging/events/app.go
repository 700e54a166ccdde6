package events

import "github.com/threadnav/topic-browser/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) CatalogRebuilt(course string, nodes int) {
	logging.Trace("app.catalog-rebuilt", map[string]interface{}{"course": course, "nodes": nodes})
}
