package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const searchJSON = `[
	{"display_name": "Denver, Colorado, USA", "lat": "39.7392", "lon": "-104.9903", "class": "place", "type": "city"},
	{"display_name": "Denver, Iowa, USA", "lat": "bogus", "lon": "-92.3374", "class": "place", "type": "city"}
]`

func TestClient_Search(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "denver", r.URL.Query().Get("q"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		w.Write([]byte(searchJSON))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)

	results, err := c.Search(context.Background(), "denver")
	require.NoError(t, err)

	// The record with the unparsable latitude is skipped.
	require.Len(t, results, 1)
	assert.Equal(t, "Denver, Colorado, USA", results[0].DisplayName)
	assert.InDelta(t, 39.7392, results[0].Lat, 1e-9)
	assert.InDelta(t, -104.9903, results[0].Lng, 1e-9)

	// Second identical query is served from cache.
	_, err = c.Search(context.Background(), "denver")
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_Reverse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reverse", r.URL.Path)
		w.Write([]byte(`{"display_name": "123 Main St, Denver", "lat": "39.7", "lon": "-104.9"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)

	res, err := c.Reverse(context.Background(), 39.7, -104.9)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, "123 Main St, Denver", res.DisplayName)
}

func TestClient_Reverse_NothingNearby(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)

	res, err := c.Reverse(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestClient_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)

	_, err := c.Search(context.Background(), "denver")
	assert.Error(t, err)
}

func TestClient_TimeoutBounded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 20*time.Millisecond)

	start := time.Now()
	_, err := c.Search(context.Background(), "denver")
	assert.Error(t, err)
	assert.Less(t, time.Since(start), 150*time.Millisecond)
}
