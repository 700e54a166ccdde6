package retrieval

import (
	"context"
	"strings"

	"github.com/threadnav/topic-browser/internal/forum"
	"github.com/threadnav/topic-browser/internal/topic"
)

// Fetcher is the external paginated-fetch service.
type Fetcher interface {
	FetchThreads(ctx context.Context, q forum.ThreadQuery) (forum.ThreadPage, error)
}

// Renderer redraws the thread list whenever it changes, including on failure
// when the existing items are redisplayed.
type Renderer interface {
	RenderThreads(threads []forum.Thread)
}

// AlertSink surfaces non-blocking user-visible alerts.
type AlertSink interface {
	Alert(title, message string)
}

// Request is one generation-tagged page fetch to hand to the fetch service.
type Request struct {
	Generation uint64
	Page       int
	Query      forum.ThreadQuery
}

// Result is the response to a Request, tagged with the same generation.
type Result struct {
	Generation uint64
	Page       int
	Data       forum.ThreadPage
	Err        error
}

// Outcome reports what Apply did with a Result.
type Outcome int

const (
	OutcomeApplied Outcome = iota
	OutcomeStale
	OutcomeFailed
)

const alertTitle = "Sorry"
const alertBody = "We had trouble loading more threads. Try again."

// Controller is the retrieval-mode state machine. Every topic selection or
// search starts a new session with a fresh generation; responses carrying an
// older generation are discarded so a late page from an abandoned session can
// never corrupt the current one. At most one request per session is in
// flight, which keeps pages applied in increasing order.
type Controller struct {
	fetcher  Fetcher
	renderer Renderer
	alerts   AlertSink

	userID  string
	perPage int

	session       Session
	generation    uint64
	inFlight      bool
	requestedPage int
	pageApplied   bool
	failed        bool

	threads       []forum.Thread
	numPages      int
	prevLastID    string
	cohortControl bool
}

// NewController builds a controller starting in "all" mode with an empty
// thread collection.
func NewController(fetcher Fetcher, renderer Renderer, alerts AlertSink, userID, groupID, sortKey string, perPage int) *Controller {
	c := &Controller{
		fetcher:  fetcher,
		renderer: renderer,
		alerts:   alerts,
		userID:   userID,
		perPage:  perPage,
	}
	c.session.GroupID = groupID
	c.session.SortKey = sortKey
	return c
}

// Session exposes a copy of the current retrieval session.
func (c *Controller) Session() Session {
	s := c.session
	s.DiscussionIDs = append([]string(nil), c.session.DiscussionIDs...)
	return s
}

// Mode returns the active retrieval mode.
func (c *Controller) Mode() Mode { return c.session.Mode }

// Threads returns the loaded thread collection.
func (c *Controller) Threads() []forum.Thread { return c.threads }

// InFlight reports whether a page fetch is pending.
func (c *Controller) InFlight() bool { return c.inFlight }

// CohortControlVisible reports whether the cohort-filter control should show.
func (c *Controller) CohortControlVisible() bool { return c.cohortControl }

// PrevLastThreadID returns the id of the thread that was last in the
// collection before the most recent applied page, for focus continuation.
// Empty when the collection was empty or freshly reset.
func (c *Controller) PrevLastThreadID() string { return c.prevLastID }

// HasMorePages reports whether a further page is known to exist.
func (c *Controller) HasMorePages() bool {
	return c.numPages == 0 || c.session.CurrentPage+1 < c.numPages
}

// SelectAll switches to "all" mode and requests the first page.
func (c *Controller) SelectAll() Request {
	c.beginSession(ModeAll)
	c.cohortControl = false
	return c.pageRequest(0)
}

// SelectFollowed switches to followed mode for the configured user.
func (c *Controller) SelectFollowed() Request {
	c.beginSession(ModeFollowed)
	c.cohortControl = false
	return c.pageRequest(0)
}

// SelectTopics switches to commentables mode over the given category nodes.
// The discussion ids are the depth-first union of every selected subtree.
// The cohort-filter control follows the node's flag only for single-node
// selections; composite selections hide it.
func (c *Controller) SelectTopics(nodes []*topic.Node) Request {
	c.beginSession(ModeCommentables)
	seen := make(map[string]struct{})
	for _, node := range nodes {
		for _, id := range topic.SubtreeIDs(node) {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			c.session.DiscussionIDs = append(c.session.DiscussionIDs, id)
		}
	}
	c.cohortControl = len(nodes) == 1 && nodes[0].Cohorted
	return c.pageRequest(0)
}

// Search switches to search mode with the given query text.
func (c *Controller) Search(text string) Request {
	c.beginSession(ModeSearch)
	c.session.SearchText = text
	c.cohortControl = false
	return c.pageRequest(0)
}

// LoadMore requests the next page of the current session. Returns false when
// a fetch is already pending or no further page exists; load-more is
// serialized so a page can never be applied twice. Until a page has been
// applied the next page is still page zero, so an initial failure never
// skips the first page.
func (c *Controller) LoadMore() (Request, bool) {
	if c.inFlight || !c.HasMorePages() {
		return Request{}, false
	}
	page := 0
	if c.pageApplied {
		page = c.session.CurrentPage + 1
	}
	c.inFlight = true
	return c.pageRequest(page), true
}

// Retry re-requests the page that last failed, with identical session state.
// Returns false while a fetch is pending or when the last fetch succeeded.
func (c *Controller) Retry() (Request, bool) {
	if c.inFlight || !c.failed {
		return Request{}, false
	}
	c.inFlight = true
	return c.pageRequest(c.requestedPage), true
}

func (c *Controller) beginSession(mode Mode) {
	c.generation++
	c.session.reset(mode)
	c.threads = nil
	c.numPages = 0
	c.prevLastID = ""
	c.pageApplied = false
	c.failed = false
	c.inFlight = true
}

func (c *Controller) pageRequest(page int) Request {
	c.requestedPage = page
	q := forum.ThreadQuery{
		Mode:    c.session.Mode.String(),
		Page:    page,
		PerPage: c.perPage,
		SortKey: c.session.SortKey,
		GroupID: c.session.GroupID,
	}
	switch c.session.Mode {
	case ModeSearch:
		q.SearchText = c.session.SearchText
	case ModeFollowed:
		q.UserID = c.userID
		q.GroupID = ""
	case ModeCommentables:
		q.CommentableIDs = strings.Join(c.session.DiscussionIDs, ",")
	}
	return Request{Generation: c.generation, Page: q.Page, Query: q}
}

// Run executes a request against the fetch service and pairs the response
// with the request's generation tag.
func (c *Controller) Run(ctx context.Context, req Request) Result {
	data, err := c.fetcher.FetchThreads(ctx, req.Query)
	return Result{Generation: req.Generation, Page: req.Page, Data: data, Err: err}
}

// Apply folds a fetch result into the controller. Stale generations are
// dropped without side effects. Failures leave the session untouched and
// retryable: the existing threads are re-rendered and exactly one alert is
// raised. Successful pages replace the collection for page zero and append
// otherwise, then advance CurrentPage.
func (c *Controller) Apply(res Result) Outcome {
	if res.Generation != c.generation {
		return OutcomeStale
	}
	c.inFlight = false
	if res.Err != nil {
		c.failed = true
		c.renderer.RenderThreads(c.threads)
		c.alerts.Alert(alertTitle, alertBody)
		return OutcomeFailed
	}
	c.failed = false
	c.pageApplied = true
	if res.Page == 0 {
		c.prevLastID = ""
		c.threads = append([]forum.Thread(nil), res.Data.Threads...)
	} else {
		if len(c.threads) > 0 {
			c.prevLastID = c.threads[len(c.threads)-1].ID
		} else {
			c.prevLastID = ""
		}
		c.threads = append(c.threads, res.Data.Threads...)
	}
	c.session.CurrentPage = res.Page
	if res.Data.NumPages > 0 {
		c.numPages = res.Data.NumPages
	}
	c.renderer.RenderThreads(c.threads)
	return OutcomeApplied
}
