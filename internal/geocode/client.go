// Package geocode provides a client for the Nominatim geocoding API.
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pawmatch/pawmatch/internal/api/middleware"
	"github.com/pawmatch/pawmatch/internal/provider/resilience"
)

const (
	// DefaultBaseURL is the base URL for the public Nominatim instance.
	DefaultBaseURL = "https://nominatim.openstreetmap.org"

	// ProviderName identifies this provider.
	ProviderName = "nominatim"

	// defaultUserAgent is sent when no user agent is configured. Nominatim
	// rejects requests without one.
	defaultUserAgent = "pawmatch-api"
)

// ErrNoResults is returned when the query matches no known location.
var ErrNoResults = errors.New("no geocoding results")

// ClientConfig holds configuration for the Nominatim client.
type ClientConfig struct {
	// BaseURL is the API base URL (defaults to DefaultBaseURL).
	BaseURL string

	// HTTPClient is the HTTP client to use (must implement HTTPDoer).
	// If nil, a default resilient client will be created.
	HTTPClient HTTPDoer

	// UserAgent identifies the application to the API.
	UserAgent string

	// Timeout for individual API requests (default: 10s).
	Timeout time.Duration

	// Metrics records provider request metrics. If nil, a default
	// instance is created.
	Metrics *middleware.ProviderMetrics

	// Registry tracks provider health (optional). Only consulted when the
	// default resilient client is created.
	Registry *resilience.Registry
}

// HTTPDoer abstracts HTTP request execution.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is a Nominatim geocoding client.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient HTTPDoer
	metrics    *middleware.ProviderMetrics
}

// NewClient creates a new Nominatim client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = 10 * time.Second
		}
		clientCfg := resilience.ClientConfig{
			Name:            ProviderName,
			Timeout:         timeout,
			MaxRetries:      3,
			InitialInterval: 200 * time.Millisecond,
			MaxInterval:     5 * time.Second,
		}
		if cfg.Registry != nil {
			clientCfg.Registry = cfg.Registry
		}
		httpClient = resilience.NewClient(clientCfg)
	}

	metrics := cfg.Metrics
	if metrics == nil {
		metrics, _ = middleware.NewProviderMetrics(ProviderName)
	}

	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		userAgent:  userAgent,
		httpClient: httpClient,
		metrics:    metrics,
	}
}

// searchResult is a single entry from the Nominatim search endpoint.
// Coordinates are returned as strings.
type searchResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Geocode resolves a free-text location to coordinates. Returns ErrNoResults
// when the query matches nothing.
func (c *Client) Geocode(ctx context.Context, location string) (float64, float64, error) {
	start := time.Now()
	lat, lon, err := c.search(ctx, location)
	if c.metrics != nil {
		c.metrics.RecordRequest(ProviderName, "search", time.Since(start), err)
	}
	return lat, lon, err
}

func (c *Client) search(ctx context.Context, location string) (float64, float64, error) {
	endpoint := fmt.Sprintf("%s/search?q=%s&format=json&limit=1", c.baseURL, url.QueryEscape(location))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return 0, 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, 0, fmt.Errorf("geocode %q: %w", location, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, 0, fmt.Errorf("unexpected status %d from search endpoint", resp.StatusCode)
	}

	var results []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return 0, 0, fmt.Errorf("decode search response: %w", err)
	}

	if len(results) == 0 {
		return 0, 0, ErrNoResults
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("parse latitude %q: %w", results[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("parse longitude %q: %w", results[0].Lon, err)
	}

	return lat, lon, nil
}
