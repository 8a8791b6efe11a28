package apisports

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultBaseURL = "https://table-tennis.api-sports.io"
const defaultTimeout = 15 * time.Second
const apiHost = "table-tennis.api-sports.io"

type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	baseURL = strings.TrimSuffix(baseURL, "/")
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

// GetLiveGames возвращает все live-матчи.
// GET /games?live=all
func (c *Client) GetLiveGames(ctx context.Context) (*GamesResponse, error) {
	return c.getGames(ctx, url.Values{"live": {"all"}})
}

// GetGamesByDate возвращает матчи на дату.
// GET /games?date=YYYY-MM-DD
func (c *Client) GetGamesByDate(ctx context.Context, date string) (*GamesResponse, error) {
	return c.getGames(ctx, url.Values{"date": {date}})
}

func (c *Client) getGames(ctx context.Context, params url.Values) (*GamesResponse, error) {
	u := fmt.Sprintf("%s/games?%s", c.baseURL, params.Encode())
	body, err := c.get(ctx, u)
	if err != nil {
		return nil, err
	}
	defer body.Close()
	var out GamesResponse
	if err := json.NewDecoder(body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode games: %w", err)
	}
	return &out, nil
}

func (c *Client) get(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("x-rapidapi-key", c.apiKey)
	req.Header.Set("x-rapidapi-host", apiHost)
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
