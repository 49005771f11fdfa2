package hockeylive

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	domaingames "github.com/preston-bernstein/hockey-pool-service/internal/domain/games"
	"github.com/preston-bernstein/hockey-pool-service/internal/providers"
)

// Config controls how the client reaches the schedule API.
type Config struct {
	URL        string
	APIKey     string
	HTTPClient *http.Client
	Timeout    time.Duration
	// Timezone is the zone date and time labels are rendered in.
	Timezone string
}

// Client fetches the tournament schedule and normalizes every game.
type Client struct {
	url        string
	apiKey     string
	httpClient httpDoer
	now        func() time.Time
	loc        *time.Location
}

// NewClient constructs a client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		url:        normalizeURL(cfg.URL),
		apiKey:     cfg.APIKey,
		httpClient: resolveHTTPClient(cfg.HTTPClient, cfg.Timeout),
		now:        time.Now,
		loc:        resolveLocation(cfg.Timezone),
	}
}

// FetchGames retrieves the full schedule in one request.
func (c *Client) FetchGames(ctx context.Context) ([]domaingames.Game, error) {
	req, err := c.buildRequest(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("hockeylive: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, &providers.RateLimitError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"), c.now()),
			Remaining:  resp.Header.Get("X-RateLimit-Remaining"),
			Message:    "hockeylive: rate limited",
		}
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("hockeylive: unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("hockeylive: read body: %w", err)
	}
	records, err := extractGames(body)
	if err != nil {
		return nil, fmt.Errorf("hockeylive: %w", err)
	}

	games := make([]domaingames.Game, 0, len(records))
	for _, rec := range records {
		games = append(games, mapGame(decodeRecord(rec), c.loc))
	}
	return games, nil
}

func (c *Client) buildRequest(ctx context.Context) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("hockeylive: build request: %w", err)
	}
	if c.apiKey != "" {
		q := req.URL.Query()
		q.Set(apiKeyParam, c.apiKey)
		req.URL.RawQuery = q.Encode()
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}
