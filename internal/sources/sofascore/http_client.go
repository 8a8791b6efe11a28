package sofascore

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.sofascore.com/api/v1"
const defaultTimeout = 8 * time.Second

// UserAgent mimics a desktop browser; the public API rejects obviously
// non-browser clients.
const UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36"

type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	baseURL = strings.TrimSuffix(baseURL, "/")
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// GetLiveEvents возвращает текущие live-матчи настольного тенниса.
// GET /sport/table-tennis/events/live
func (c *Client) GetLiveEvents(ctx context.Context) (*EventsResponse, error) {
	u := fmt.Sprintf("%s/sport/table-tennis/events/live", c.baseURL)
	return c.getEvents(ctx, u)
}

// GetScheduledEvents возвращает матчи на указанную дату.
// GET /sport/table-tennis/scheduled-events/{YYYY-MM-DD}
func (c *Client) GetScheduledEvents(ctx context.Context, date string) (*EventsResponse, error) {
	u := fmt.Sprintf("%s/sport/table-tennis/scheduled-events/%s", c.baseURL, date)
	return c.getEvents(ctx, u)
}

func (c *Client) getEvents(ctx context.Context, url string) (*EventsResponse, error) {
	body, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}
	defer body.Close()
	var out EventsResponse
	if err := json.NewDecoder(body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode events: %w", err)
	}
	return &out, nil
}

func (c *Client) get(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Referer", "https://www.sofascore.com/")
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}
	return resp.Body, nil
}
