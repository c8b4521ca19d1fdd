package hub

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// The hub versions its endpoints independently: searches speak 0.1 while
// uploads speak 0.
const (
	searchFormatVersion = 0.1
	uploadFormatVersion = 0
)

// UploadResult is the hub's accounting for one upload call.
type UploadResult struct {
	// TrapCount is how many traps the hub accepted.
	TrapCount int `json:"trap_count"`
	// FailedSets lists the identifiers of sets the hub rejected.
	FailedSets []string `json:"failed_sets"`
}

// Client talks to the external gear hub API.
type Client struct {
	baseURL string
	apiKey  string
	maxSets int
	httpc   *http.Client
	limiter *rate.Limiter
	logger  *zap.Logger
}

// NewClient creates a hub client from the configuration.
func NewClient(cfg Config, logger *zap.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("hub base URL is required")
	}

	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	timeoutDuration := time.Duration(timeout) * time.Second

	// Strict transport timeouts; a stalled hub must not hang a sync pass.
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

	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 4
	}

	maxSets := cfg.MaxSets
	if maxSets <= 0 {
		maxSets = 1000
	}

	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		maxSets: maxSets,
		httpc: &http.Client{
			Transport: transport,
			Timeout:   timeoutDuration,
		},
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
		logger:  logger,
	}, nil
}

// SearchHub fetches every gear set the hub has updated since the given time.
func (c *Client) SearchHub(ctx context.Context, since time.Time) ([]GearSet, error) {
	body := map[string]any{
		"format_version":     searchFormatVersion,
		"api_key":            c.apiKey,
		"max_sets":           c.maxSets,
		"start_datetime_utc": since.UTC().Format(time.RFC3339),
	}

	// The sets field must be present even when empty; its absence means
	// the response is malformed, not that there is no data.
	var out struct {
		Sets *[]GearSet `json:"sets"`
	}
	if err := c.post(ctx, "/search_hub/", body, &out); err != nil {
		return nil, err
	}
	if out.Sets == nil {
		return nil, fmt.Errorf("hub search response missing sets field")
	}

	c.logger.Debug("Hub search completed",
		zap.Time("since", since),
		zap.Int("sets", len(*out.Sets)),
	)
	return *out.Sets, nil
}

// SearchOwn fetches the gear sets this API key owns. trapID and status are
// optional filters; empty values are not sent.
func (c *Client) SearchOwn(ctx context.Context, trapID, status string) ([]GearSet, error) {
	body := map[string]any{
		"format_version": searchFormatVersion,
		"api_key":        c.apiKey,
	}
	if trapID != "" {
		body["trap_id"] = trapID
	}
	if status != "" {
		body["status"] = status
	}

	var out struct {
		Sets *[]GearSet `json:"sets"`
	}
	if err := c.post(ctx, "/search_own/", body, &out); err != nil {
		return nil, err
	}
	if out.Sets == nil {
		return nil, fmt.Errorf("hub search response missing sets field")
	}
	return *out.Sets, nil
}

// UploadDeployments pushes local deployment state to the hub in one call
// and returns the hub's accounting of accepted traps and rejected sets.
func (c *Client) UploadDeployments(ctx context.Context, sets []GearSet) (*UploadResult, error) {
	body := map[string]any{
		"format_version": uploadFormatVersion,
		"api_key":        c.apiKey,
		"sets":           sets,
	}

	var out struct {
		Result UploadResult `json:"result"`
	}
	if err := c.post(ctx, "/upload_deployments/", body, &out); err != nil {
		return nil, err
	}

	c.logger.Debug("Hub upload completed",
		zap.Int("sets", len(sets)),
		zap.Int("trap_count", out.Result.TrapCount),
		zap.Int("failed_sets", len(out.Result.FailedSets)),
	)
	return &out.Result, nil
}

// ValidateCredentials verifies the configured API key with a minimal
// owned-gear search.
func (c *Client) ValidateCredentials(ctx context.Context) error {
	if _, err := c.SearchOwn(ctx, "", ""); err != nil {
		return fmt.Errorf("hub credential check failed: %w", err)
	}
	return nil
}

// post sends a JSON body to the hub and decodes the JSON response into out.
func (c *Client) post(ctx context.Context, path string, body, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter aborted: %w", err)
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode hub request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build hub request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("hub request %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("hub request %s returned status %d: %s", path, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode hub response from %s: %w", path, err)
	}
	return nil
}
