// Package ui contains the Bubble Tea program that powers the topic browser.
// The Model type focuses on message orchestration, while dedicated helpers
// own filter input, cursor navigation, rendering, and the bridge to the
// catalog watcher and the retrieval controller.
//
// Layout: the filterable topic tree occupies the left column and the threads
// of the current selection render in a bordered panel on the right; both sit
// above a shared status line and filter prompt. Narrow terminals fall back
// to a single stacked column.
package ui
