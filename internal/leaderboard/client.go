package leaderboard

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/vovakirdan/stack-top/internal/config"
)

// ErrUnexpectedStatus is returned when the store answers with a non-2xx status.
var ErrUnexpectedStatus = errors.New("leaderboard: unexpected status")

// Client calls the leaderboard HTTP API for one game id.
type Client struct {
	baseURL string
	gameID  string
	http    *http.Client
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.http = hc }
}

// NewClient creates a client from the leaderboard configuration.
func NewClient(cfg config.LeaderboardConfig, opts ...ClientOption) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		gameID:  cfg.GameID,
		http:    &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GameID returns the game id scores are filed under.
func (c *Client) GameID() string {
	return c.gameID
}

// Fetch returns the board in server order with display defaults applied.
func (c *Client) Fetch(ctx context.Context) ([]Entry, error) {
	u := c.baseURL + "/lb?gameid=" + url.QueryEscape(c.gameID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: fetch: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var rows []wireEntry
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("leaderboard: decode board: %w", err)
	}

	entries := make([]Entry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, row.entry())
	}
	return entries, nil
}

// Submit posts a finished game. It does not retry.
func (c *Client) Submit(ctx context.Context, s Score) error {
	body, err := json.Marshal(submitRequest{
		GameID: c.gameID,
		Player: s.Player,
		Value:  s.Value,
		Addi:   s.Info,
	})
	if err != nil {
		return fmt.Errorf("leaderboard: encode score: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/score", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("leaderboard: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("leaderboard: submit: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	return checkStatus(resp)
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: %s", ErrUnexpectedStatus, resp.Status)
	}
	return nil
}
