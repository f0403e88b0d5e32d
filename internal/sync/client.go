package sync

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// TagRecord is a tag as the upstream feed serves it.
type TagRecord struct {
	ID  int64  `json:"id"`
	Tag string `json:"tag"`
}

// ResourceRecord is a resource as the upstream feed serves it. AppliedTags
// carries the external IDs of the tags attached upstream.
type ResourceRecord struct {
	ID          int64      `json:"id"`
	Author      string     `json:"author"`
	Name        string     `json:"name"`
	URL         string     `json:"url"`
	CreatedAt   *time.Time `json:"createdAt"`
	AppliedTags []int64    `json:"appliedTags"`
}

// Client fetches the tag and resource feeds over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient constructs a feed client. The timeout bounds each fetch so a
// stalled upstream cannot block a sync run indefinitely.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// FetchTags pulls the tag feed.
func (c *Client) FetchTags(ctx context.Context) ([]TagRecord, error) {
	var out []TagRecord
	if err := c.get(ctx, "/tags/", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FetchResources pulls the resource feed.
func (c *Client) FetchResources(ctx context.Context) ([]ResourceRecord, error) {
	var out []ResourceRecord
	if err := c.get(ctx, "/resources/", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) get(ctx context.Context, path string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build feed request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("fetch %s: unexpected status %d", path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode %s feed: %w", path, err)
	}
	return nil
}
