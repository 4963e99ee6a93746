package remoteok

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const DefaultURL = "https://remoteok.com/api"

// RemoteOK rejects requests without a user agent
const userAgent = "Mozilla/5.0 (compatible; JobRadarBot/1.0)"

// Client fetches the current job list from the RemoteOK API.
type Client struct {
	url     string
	timeout time.Duration
	hc      *http.Client
}

func NewClient(url string, timeout time.Duration) *Client {
	if url == "" {
		url = DefaultURL
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		url:     url,
		timeout: timeout,
		hc:      &http.Client{Timeout: timeout},
	}
}

// Fetch returns all job postings currently listed by the API. The first
// element of the response array is API metadata, not a job, and is dropped.
func (c *Client) Fetch(ctx context.Context) ([]Job, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch jobs: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch jobs: unexpected status %s", resp.Status)
	}

	var records []Job
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode jobs payload: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("invalid response format from %s", c.url)
	}

	return records[1:], nil
}
