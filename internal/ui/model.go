package ui

import (
	"context"
	"reflect"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/threadnav/topic-browser/internal/backend"
	"github.com/threadnav/topic-browser/internal/data/dispatcher"
	"github.com/threadnav/topic-browser/internal/forum"
	"github.com/threadnav/topic-browser/internal/retrieval"
	"github.com/threadnav/topic-browser/internal/state"
	"github.com/threadnav/topic-browser/internal/theme"
	"github.com/threadnav/topic-browser/internal/topic"
	"github.com/threadnav/topic-browser/internal/ui/command"
	uistate "github.com/threadnav/topic-browser/internal/ui/state"
)

type Mode int

const (
	ModeBrowse Mode = iota
	ModeSearchForm
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Options collects the dependencies NewModel needs.
type Options struct {
	Client     retrieval.Fetcher
	Watcher    *backend.Watcher
	UserID     string
	GroupID    string
	SortKey    string
	PageSize   int
	Width      int
	Height     int
	ShowFooter bool
	Verbose    bool
}

// Model implements the Bubble Tea model for the topic browser: a filterable
// topic tree on the left and the threads of the current selection on the
// right.
type Model struct {
	browse     *uistate.Browse
	controller *retrieval.Controller
	bus        *command.Bus
	dispatcher *dispatcher.Dispatcher
	topics     state.TopicStore
	threads    state.ThreadStore

	backend        *backend.Watcher
	backendLastErr string

	loading     bool
	pendingMode string
	errMsg      string
	alertMsg    string
	infoMsg     string
	infoExpire  time.Time

	// threadFocus is the focused row of the thread panel, re-anchored once
	// per applied page: the row after the previously-last thread, or the
	// first row. -1 while the panel is empty.
	threadFocus int

	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool
	verbose     bool

	mode           Mode
	searchForm     *searchForm
	lastBreadcrumb []string

	filterCursor      cursor.Model
	filterCursorDirty bool

	handlers map[reflect.Type]msgHandler
}

// NewModel initialises the UI state with an empty catalog and an idle
// retrieval session.
func NewModel(opts Options) *Model {
	topics := state.NewTopicStore()
	threads := state.NewThreadStore()
	m := &Model{
		browse:     uistate.NewBrowse(topic.NewRoot()),
		dispatcher: dispatcher.New(topics),
		topics:     topics,
		threads:    threads,
		backend:    opts.Watcher,
		showFooter: opts.ShowFooter,
		verbose:    opts.Verbose,
		mode:       ModeBrowse,

		threadFocus: -1,
	}
	m.controller = retrieval.NewController(opts.Client, m, m, opts.UserID, opts.GroupID, opts.SortKey, opts.PageSize)
	m.bus = command.New(context.Background(), m.controller)
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	c := cursor.New()
	if styles.Cursor != nil {
		c.Style = styles.Cursor.Copy()
	}
	if styles.Filter != nil {
		c.TextStyle = styles.Filter.Copy()
	}
	c.SetChar(" ")
	m.filterCursor = c
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{}
	if m.backend != nil {
		cmds = append(cmds, waitForBackendEvent(m.backend))
	}
	if cmd := m.filterCursor.Focus(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	cmds = append(cmds, m.startRetrieval(m.controller.SelectAll()))
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if cmd := m.updateFilterCursorModel(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if m.mode == ModeSearchForm {
		if handled, cmd := m.handleSearchForm(msg); handled {
			if cmd != nil {
				cmds = append(cmds, cmd)
			}
			return m, m.finishUpdate(cmds)
		}
	}

	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
		return m, m.finishUpdate(cmds)
	}

	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(command.ResultMsg{}): m.handleRetrievalResultMsg,
		reflect.TypeOf(backendEventMsg{}):   m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):    m.handleBackendDoneMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if m.filterCursorDirty {
		m.filterCursorDirty = false
		m.filterCursor.Blink = false
		if cmd := m.filterCursor.BlinkCmd(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// RenderThreads implements retrieval.Renderer. The controller calls it
// synchronously from Apply, on success and on failure alike.
func (m *Model) RenderThreads(threads []forum.Thread) {
	m.threads.SetEntries(threads)
}

// Alert implements retrieval.AlertSink.
func (m *Model) Alert(title, message string) {
	m.alertMsg = title + ": " + message
}

// Browse exposes the filter/navigation state, mainly for tests.
func (m *Model) Browse() *uistate.Browse { return m.browse }

// Controller exposes the retrieval state machine, mainly for tests.
func (m *Model) Controller() *retrieval.Controller { return m.controller }

// Threads exposes the rendered thread store.
func (m *Model) Threads() state.ThreadStore { return m.threads }
