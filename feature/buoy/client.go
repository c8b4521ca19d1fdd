package buoy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Client talks to the buoy tracking platform API.
type Client struct {
	baseURL  string
	token    string
	pageSize int
	httpc    *http.Client
	logger   *zap.Logger
}

// NewClient creates a platform client from the configuration.
func NewClient(cfg Config, logger *zap.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("buoy base URL is required")
	}

	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	timeoutDuration := time.Duration(timeout) * time.Second

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeoutDuration,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeoutDuration,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: timeoutDuration,
	}

	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = 1000
	}

	return &Client{
		baseURL:  strings.TrimSuffix(cfg.BaseURL, "/"),
		token:    cfg.Token,
		pageSize: pageSize,
		httpc: &http.Client{
			Transport: transport,
			Timeout:   timeoutDuration,
		},
		logger: logger,
	}, nil
}

// ListGears fetches the full ropeless-buoy gear collection, following
// pagination to the end.
func (c *Client) ListGears(ctx context.Context) ([]Gear, error) {
	var gears []Gear

	next := c.gearURL(time.Time{}, "")
	for next != "" {
		results, nextURL, err := c.fetchGearPage(ctx, next)
		if err != nil {
			return nil, err
		}
		gears = append(gears, results...)
		next = nextURL
	}

	c.logger.Debug("Buoy gear listing completed", zap.Int("gears", len(gears)))
	return gears, nil
}

// StreamGears returns a lazy single-pass stream of gear records updated
// after since and matching the given lifecycle state. Pages are fetched on
// demand; cancelling the context stops further fetches. A fetch failure is
// delivered as the final item with Err set.
func (c *Client) StreamGears(ctx context.Context, since time.Time, state string) <-chan GearItem {
	items := make(chan GearItem)

	go func() {
		defer close(items)

		next := c.gearURL(since, state)
		for next != "" {
			results, nextURL, err := c.fetchGearPage(ctx, next)
			if err != nil {
				select {
				case items <- GearItem{Err: err}:
				case <-ctx.Done():
				}
				return
			}

			for _, gear := range results {
				select {
				case items <- GearItem{Gear: gear}:
				case <-ctx.Done():
					return
				}
			}
			next = nextURL
		}
	}()

	return items
}

// CreateEvents posts one batch of state-change events to the platform.
func (c *Client) CreateEvents(ctx context.Context, events []Event) error {
	if len(events) == 0 {
		return nil
	}

	payload, err := json.Marshal(events)
	if err != nil {
		return fmt.Errorf("failed to encode events: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/events/", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build buoy request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("buoy event request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("buoy event request returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	c.logger.Debug("Buoy events accepted", zap.Int("events", len(events)))
	return nil
}

// Ping verifies the configured token with a minimal gear request.
func (c *Client) Ping(ctx context.Context) error {
	params := url.Values{}
	params.Set("source_type", SourceType)
	params.Set("page_size", "1")

	if _, _, err := c.fetchGearPage(ctx, c.baseURL+"/gear/?"+params.Encode()); err != nil {
		return fmt.Errorf("buoy connectivity check failed: %w", err)
	}
	return nil
}

func (c *Client) gearURL(since time.Time, state string) string {
	params := url.Values{}
	params.Set("source_type", SourceType)
	params.Set("page_size", strconv.Itoa(c.pageSize))
	if !since.IsZero() {
		params.Set("updated_after", since.UTC().Format(time.RFC3339))
	}
	if state != "" {
		params.Set("state", state)
	}
	return c.baseURL + "/gear/?" + params.Encode()
}

// fetchGearPage fetches one page of the gear listing and returns its
// results plus the URL of the next page, empty when this was the last.
func (c *Client) fetchGearPage(ctx context.Context, rawURL string) ([]Gear, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to build buoy request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("buoy gear request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, "", fmt.Errorf("buoy gear request returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	// Both envelope fields must be present; their absence means the
	// response is malformed, not that there is no data.
	var out struct {
		Data *struct {
			Results *[]Gear `json:"results"`
			Next    string  `json:"next"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, "", fmt.Errorf("failed to decode buoy gear response: %w", err)
	}
	if out.Data == nil || out.Data.Results == nil {
		return nil, "", fmt.Errorf("buoy gear response missing results field")
	}

	return *out.Data.Results, out.Data.Next, nil
}
