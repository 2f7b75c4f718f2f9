// Package omdb looks up movie display metadata from the OMDb API.
package omdb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/cinemood/cinemood-server/internal/ratelimit"
)

const (
	// DefaultBaseURL is the public OMDb endpoint.
	DefaultBaseURL = "https://www.omdbapi.com/"

	defaultTimeout = 5 * time.Second
	defaultRPS     = 5.0
	defaultBurst   = 5

	// Consecutive failures before the breaker opens.
	breakerTrip    = 5
	breakerTimeout = 30 * time.Second

	limiterKey = "omdb"
)

// Config configures a Client.
type Config struct {
	APIKey            string
	BaseURL           string
	Timeout           time.Duration
	RequestsPerSecond float64
	Logger            *slog.Logger
}

// Client is a rate-limited OMDb client guarded by a circuit breaker.
type Client struct {
	http    *http.Client
	limiter *ratelimit.KeyedRateLimiter
	breaker *gobreaker.CircuitBreaker[*Details]
	logger  *slog.Logger

	apiKey  string
	baseURL string
}

// New creates a client. A client without an API key is valid but every
// lookup fails with ErrMissingAPIKey.
func New(cfg Config) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = defaultRPS
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &Client{
		http:    &http.Client{Timeout: timeout},
		limiter: ratelimit.New(rps, defaultBurst),
		logger:  logger,
		apiKey:  strings.TrimSpace(cfg.APIKey),
		baseURL: baseURL,
	}

	c.breaker = gobreaker.NewCircuitBreaker[*Details](gobreaker.Settings{
		Name:        "omdb",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     breakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerTrip
		},
		// A title OMDb does not know is an answer, not an outage.
		IsSuccessful: func(err error) bool {
			return err == nil ||
				errors.Is(err, ErrNotFound) ||
				errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state change",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	})

	return c
}

// Enabled reports whether an API key is configured.
func (c *Client) Enabled() bool {
	return c.apiKey != ""
}

// State returns the breaker state: "closed", "half-open" or "open".
func (c *Client) State() string {
	return c.breaker.State().String()
}

// Close releases resources held by the client.
func (c *Client) Close() {
	c.limiter.Stop()
}

// LookupTitle fetches details for an exact title. Missing fields are
// filled with display defaults. Returns ErrNotFound when OMDb has no match.
func (c *Client) LookupTitle(ctx context.Context, title string) (*Details, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, wrapError("lookup", title, ErrEmptyTitle)
	}
	if !c.Enabled() {
		return nil, wrapError("lookup", title, ErrMissingAPIKey)
	}

	if err := c.limiter.Wait(ctx, limiterKey); err != nil {
		return nil, wrapError("lookup", title, fmt.Errorf("rate limit wait: %w", err))
	}

	details, err := c.breaker.Execute(func() (*Details, error) {
		return c.fetch(ctx, title)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, wrapError("lookup", title, fmt.Errorf("%w: %w", ErrUnavailable, err))
	}
	if err != nil {
		return nil, wrapError("lookup", title, err)
	}
	return details, nil
}

func (c *Client) fetch(ctx context.Context, title string) (*Details, error) {
	query := url.Values{}
	query.Set("apikey", c.apiKey)
	query.Set("t", title)

	body, err := c.doRequest(ctx, c.baseURL+"?"+query.Encode())
	if err != nil {
		return nil, err
	}

	var raw rawMovie
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	if raw.Response != responseTrue {
		switch {
		case raw.Error == errMsgMovieNotFound, strings.Contains(strings.ToLower(raw.Error), "not found"):
			return nil, ErrNotFound
		case strings.Contains(strings.ToLower(raw.Error), "api key"):
			return nil, ErrUnauthorized
		case strings.Contains(strings.ToLower(raw.Error), "limit"):
			return nil, ErrRateLimited
		default:
			return nil, fmt.Errorf("omdb error: %s", raw.Error)
		}
	}

	return raw.toDetails(title), nil
}

func (c *Client) doRequest(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "CineMood/1.0")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return body, nil
	case resp.StatusCode == http.StatusUnauthorized:
		// OMDb answers a bad key with 401 and a JSON body.
		return nil, ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, ErrRateLimited
	case resp.StatusCode >= 500:
		return nil, ErrServer
	default:
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}
}
