package viewport

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ohmegaloceros-boop/freefoodfinder/internal/models"
)

// Fetcher pulls the location set for a viewport from the API. Each fetch
// is tagged with an issue sequence; a response that arrives after a newer
// request was issued is discarded, so a slow early fetch can never
// overwrite fresher markers.
type Fetcher struct {
	baseURL    string
	httpClient *http.Client

	mu      sync.Mutex
	seq     uint64
	results []models.Location
}

// NewFetcher creates a fetcher against the given API base URL.
func NewFetcher(baseURL string, timeout time.Duration) *Fetcher {
	return &Fetcher{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Fetch requests locations for the given bounds and optional type filter
// (empty string means all types). The returned bool reports whether the
// response was applied or discarded as stale.
func (f *Fetcher) Fetch(ctx context.Context, b models.Bounds, typeParam string) (bool, error) {
	f.mu.Lock()
	f.seq++
	tag := f.seq
	f.mu.Unlock()

	locations, err := f.get(ctx, b, typeParam)
	if err != nil {
		return false, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if tag < f.seq {
		// A newer request was issued while this one was in flight.
		return false, nil
	}
	f.results = locations
	return true, nil
}

// Results returns a copy of the most recently applied location set.
func (f *Fetcher) Results() []models.Location {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Location, len(f.results))
	copy(out, f.results)
	return out
}

// Visible applies a local category filter to the current results. This
// mirrors the server-side filter so toggling a category re-filters
// instantly without a round trip.
func (f *Fetcher) Visible(filter models.TypeFilter) []models.Location {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Location, 0, len(f.results))
	for _, loc := range f.results {
		if filter.Visible(loc.Type) {
			out = append(out, loc)
		}
	}
	return out
}

// Run consumes debounced bounds until ctx is cancelled or the channel
// closes, fetching each emission. Fetch errors are logged and skipped;
// the next emission retries naturally.
func (f *Fetcher) Run(ctx context.Context, bounds <-chan models.Bounds, typeParam string) {
	for {
		select {
		case <-ctx.Done():
			return
		case b, ok := <-bounds:
			if !ok {
				return
			}
			go func(b models.Bounds) {
				if _, err := f.Fetch(ctx, b, typeParam); err != nil {
					log.Warn().Err(err).Msg("viewport fetch failed")
				}
			}(b)
		}
	}
}

func (f *Fetcher) get(ctx context.Context, b models.Bounds, typeParam string) ([]models.Location, error) {
	params := url.Values{}
	params.Set("bounds", encodeBounds(b))
	if typeParam != "" {
		params.Set("type", typeParam)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.baseURL+"/api/locations?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("viewport: failed to build request: %w", err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("viewport: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("viewport: server returned status %d", resp.StatusCode)
	}

	var locations []models.Location
	if err := json.NewDecoder(resp.Body).Decode(&locations); err != nil {
		return nil, fmt.Errorf("viewport: failed to decode response: %w", err)
	}
	return locations, nil
}

func encodeBounds(b models.Bounds) string {
	parts := []float64{b.North, b.South, b.East, b.West}
	s := ""
	for i, v := range parts {
		if i > 0 {
			s += ","
		}
		s += strconv.FormatFloat(v, 'f', -1, 64)
	}
	return s
}
