package arxiv

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const DefaultBaseURL = "https://export.arxiv.org/api/query"

const fetchTimeout = 30 * time.Second

// Client fetches raw Atom search results from the arXiv export API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	maxResults int
}

func NewClient(httpClient *http.Client, baseURL, userAgent string, maxResults int) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		userAgent:  userAgent,
		maxResults: maxResults,
	}
}

// Fetch issues a single bounded-timeout search request ordered by
// submission date descending. Transport errors and non-2xx statuses are
// returned as errors; callers treat them as "no papers", not as fatal.
func (c *Client) Fetch(ctx context.Context, query string) ([]byte, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	params := url.Values{}
	params.Set("search_query", query)
	params.Set("sortBy", "submittedDate")
	params.Set("sortOrder", "descending")
	params.Set("max_results", strconv.Itoa(c.maxResults))

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch papers: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}
