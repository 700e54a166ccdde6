package forum

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"
)

// ThreadQuery describes one paginated thread request. Mode selects the
// endpoint; the remaining fields become query parameters where set.
type ThreadQuery struct {
	Mode           string
	CommentableIDs string
	SearchText     string
	UserID         string
	GroupID        string
	Page           int
	PerPage        int
	SortKey        string
}

// Client talks to the forum HTTP API.
type Client struct {
	baseURL  string
	courseID string
	http     *http.Client
}

// NewClient builds a forum client for the given API base URL and course.
func NewClient(baseURL, courseID string) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		courseID: courseID,
		http:     &http.Client{Timeout: 15 * time.Second},
	}
}

// topicPayload mirrors the nested JSON shape of the topics endpoint.
type topicPayload struct {
	Name          string         `json:"name"`
	ID            string         `json:"id"`
	Cohorted      bool           `json:"is_cohorted"`
	Subcategories []topicPayload `json:"subcategories"`
	Entries       []entryPayload `json:"entries"`
}

type entryPayload struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Cohorted bool   `json:"is_cohorted"`
}

// FetchTopics reads the complete topic catalog for the course.
func (c *Client) FetchTopics(ctx context.Context) (TopicSnapshot, error) {
	endpoint := fmt.Sprintf("%s/courses/%s/topics", c.baseURL, url.PathEscape(c.courseID))
	var payload struct {
		Categories []topicPayload `json:"categories"`
	}
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		return TopicSnapshot{}, fmt.Errorf("fetch topics: %w", err)
	}
	snapshot := TopicSnapshot{CourseID: c.courseID}
	for _, cat := range payload.Categories {
		snapshot.Categories = append(snapshot.Categories, categoryFromPayload(cat))
	}
	return snapshot, nil
}

func categoryFromPayload(p topicPayload) Category {
	cat := Category{ID: p.ID, Name: p.Name, Cohorted: p.Cohorted}
	for _, sub := range p.Subcategories {
		cat.Subcategories = append(cat.Subcategories, categoryFromPayload(sub))
	}
	for _, entry := range p.Entries {
		cat.Entries = append(cat.Entries, Entry{ID: entry.ID, Name: entry.Name, Cohorted: entry.Cohorted})
	}
	return cat
}

// FetchThreads runs one paginated thread query and decodes the page.
func (c *Client) FetchThreads(ctx context.Context, q ThreadQuery) (ThreadPage, error) {
	endpoint, params := c.threadRequest(q)
	u := endpoint + "?" + params.Encode()
	var page ThreadPage
	if err := c.getJSON(ctx, u, &page); err != nil {
		return ThreadPage{}, fmt.Errorf("fetch threads (%s page %d): %w", q.Mode, q.Page, err)
	}
	return page, nil
}

func (c *Client) threadRequest(q ThreadQuery) (string, url.Values) {
	params := url.Values{}
	params.Set("course_id", c.courseID)
	params.Set("page", strconv.Itoa(q.Page))
	if q.PerPage > 0 {
		params.Set("per_page", strconv.Itoa(q.PerPage))
	}
	if q.SortKey != "" {
		params.Set("sort_key", q.SortKey)
	}
	if q.GroupID != "" {
		params.Set("group_id", q.GroupID)
	}
	switch q.Mode {
	case "search":
		params.Set("text", q.SearchText)
		return fmt.Sprintf("%s/search/threads", c.baseURL), params
	case "followed":
		return fmt.Sprintf("%s/users/%s/subscribed_threads", c.baseURL, url.PathEscape(q.UserID)), params
	case "commentables":
		params.Set("commentable_ids", q.CommentableIDs)
	}
	return fmt.Sprintf("%s/courses/%s/threads", c.baseURL, url.PathEscape(c.courseID)), params
}

func (c *Client) getJSON(ctx context.Context, rawURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
