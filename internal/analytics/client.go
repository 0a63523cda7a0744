package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Client reads the reporting view. The source authenticates with a
// publishable key carried in the query string; there is no bearer token and
// no write access.
type Client struct {
	baseURL string
	key     string
	http    *http.Client
}

func NewClient(baseURL, key string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		key:     key,
		http:    &http.Client{Timeout: timeout},
	}
}

// Records fetches every flattened order line, newest first.
func (c *Client) Records(ctx context.Context) ([]Record, error) {
	q := url.Values{}
	q.Set("select", "*")
	q.Set("apikey", c.key)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("analytics source: status %d", resp.StatusCode)
	}

	var records []Record
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode analytics records: %w", err)
	}
	SortByDateDesc(records)
	return records, nil
}
