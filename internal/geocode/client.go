// Package geocode talks to a Nominatim-compatible geocoding service. The
// upstream is best-effort: every call carries a bounded timeout and
// failures surface as errors, never hangs. Results are cached in memory
// because the upstream rate-limits aggressively.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"
)

const (
	cacheTTL = 1 * time.Hour
	// Shorter TTL for empty results so newly indexed places show up sooner.
	noResultsCacheTTL = 15 * time.Minute
)

// Result is one geocoding match.
type Result struct {
	DisplayName string
	Lat         float64
	Lng         float64
	Class       string
	Type        string
}

// nominatimResult mirrors the upstream JSON, which encodes coordinates as
// strings.
type nominatimResult struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	Class       string `json:"class"`
	Type        string `json:"type"`
}

type cacheEntry struct {
	results []Result
	expires time.Time
}

// Client is a forward/reverse geocoding client with an in-memory TTL cache.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.Mutex
	cache map[string]cacheEntry
}

// NewClient creates a geocoding client. timeout bounds every request.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		cache:      make(map[string]cacheEntry),
	}
}

// Search resolves free-text queries to candidate coordinates.
func (c *Client) Search(ctx context.Context, query string) ([]Result, error) {
	key := "search:" + query
	if results, ok := c.cached(key); ok {
		return results, nil
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", "5")

	var raw []nominatimResult
	if err := c.get(ctx, "/search", params, &raw); err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(raw))
	for _, r := range raw {
		res, err := r.toResult()
		if err != nil {
			continue
		}
		results = append(results, res)
	}

	c.store(key, results)
	return results, nil
}

// Reverse resolves coordinates to the nearest known address. Returns
// (nil, nil) when the upstream knows nothing about the area.
func (c *Client) Reverse(ctx context.Context, lat, lng float64) (*Result, error) {
	key := fmt.Sprintf("reverse:%.6f,%.6f", lat, lng)
	if results, ok := c.cached(key); ok {
		if len(results) == 0 {
			return nil, nil
		}
		r := results[0]
		return &r, nil
	}

	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(lng, 'f', -1, 64))
	params.Set("format", "json")

	var raw nominatimResult
	if err := c.get(ctx, "/reverse", params, &raw); err != nil {
		return nil, err
	}

	if raw.DisplayName == "" {
		c.store(key, []Result{})
		return nil, nil
	}

	res, err := raw.toResult()
	if err != nil {
		return nil, fmt.Errorf("geocode: malformed upstream response: %w", err)
	}

	c.store(key, []Result{res})
	return &res, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("geocode: failed to build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("geocode: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("geocode: upstream returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("geocode: failed to decode response: %w", err)
	}
	return nil
}

func (c *Client) cached(key string) ([]Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.cache[key]
	if !ok || time.Now().After(entry.expires) {
		return nil, false
	}
	return entry.results, true
}

func (c *Client) store(key string, results []Result) {
	ttl := cacheTTL
	if len(results) == 0 {
		ttl = noResultsCacheTTL
	}
	c.mu.Lock()
	c.cache[key] = cacheEntry{results: results, expires: time.Now().Add(ttl)}
	c.mu.Unlock()
}

func (r nominatimResult) toResult() (Result, error) {
	lat, err := strconv.ParseFloat(r.Lat, 64)
	if err != nil {
		return Result{}, fmt.Errorf("invalid latitude %q", r.Lat)
	}
	lng, err := strconv.ParseFloat(r.Lon, 64)
	if err != nil {
		return Result{}, fmt.Errorf("invalid longitude %q", r.Lon)
	}
	return Result{
		DisplayName: r.DisplayName,
		Lat:         lat,
		Lng:         lng,
		Class:       r.Class,
		Type:        r.Type,
	}, nil
}
