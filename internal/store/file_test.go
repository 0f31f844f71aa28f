package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ohmegaloceros-boop/freefoodfinder/internal/models"
)

var testLocations = []models.Location{
	{
		ID:          "fb-1",
		Name:        "Denver Food Bank",
		Type:        models.TypeFoodBank,
		Coordinates: models.Coordinates{Lat: 39.5, Lng: -105.0},
		Address:     "123 Main St",
		City:        "Denver",
	},
	{
		ID:          "box-1",
		Name:        "Seattle Food Box",
		Type:        models.TypeFoodBox,
		Coordinates: models.Coordinates{Lat: 47.6, Lng: -122.3},
		City:        "Seattle",
	},
	{
		ID:          "fridge-1",
		Name:        "Cap Hill Fridge",
		Type:        models.TypeCommunityFridge,
		Coordinates: models.Coordinates{Lat: 39.73, Lng: -104.97},
		City:        "Denver",
	},
}

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	dir := t.TempDir()

	data, err := json.Marshal(testLocations)
	require.NoError(t, err)
	locPath := filepath.Join(dir, "locations.json")
	require.NoError(t, os.WriteFile(locPath, data, 0o644))

	s, err := NewFileStore(locPath, filepath.Join(dir, "submissions.json"))
	require.NoError(t, err)
	return s
}

func typePtr(t models.LocationType) *models.LocationType { return &t }

func TestFileStore_List(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	denver := models.Bounds{North: 40, South: 39, East: -104, West: -106}

	tests := []struct {
		name        string
		filter      ListFilter
		expectedIDs []string
	}{
		{
			name:        "no filter returns everything in file order",
			filter:      ListFilter{},
			expectedIDs: []string{"fb-1", "box-1", "fridge-1"},
		},
		{
			name:        "type filter",
			filter:      ListFilter{Type: typePtr(models.TypeFoodBank)},
			expectedIDs: []string{"fb-1"},
		},
		{
			name:        "bounds filter",
			filter:      ListFilter{Bounds: &denver},
			expectedIDs: []string{"fb-1", "fridge-1"},
		},
		{
			name: "type and bounds compose with AND",
			filter: ListFilter{
				Type:   typePtr(models.TypeCommunityFridge),
				Bounds: &denver,
			},
			expectedIDs: []string{"fridge-1"},
		},
		{
			name:        "no matches yields empty slice",
			filter:      ListFilter{Type: typePtr(models.TypeFoodBank), Bounds: &models.Bounds{North: 48, South: 47, East: -122, West: -123}},
			expectedIDs: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			locs, err := s.List(ctx, tt.filter)
			require.NoError(t, err)

			ids := make([]string, 0, len(locs))
			for _, loc := range locs {
				ids = append(ids, loc.ID)
			}
			assert.Equal(t, tt.expectedIDs, ids)
		})
	}
}

func TestFileStore_List_DefensiveCopy(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	locs, err := s.List(ctx, ListFilter{})
	require.NoError(t, err)
	locs[0].Name = "mutated"

	again, err := s.List(ctx, ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, "Denver Food Bank", again[0].Name)
}

func TestFileStore_GetByID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	loc, err := s.GetByID(ctx, "box-1")
	require.NoError(t, err)
	assert.Equal(t, "Seattle Food Box", loc.Name)

	_, err = s.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNewFileStore_DropsInvalidCoordinates(t *testing.T) {
	dir := t.TempDir()
	locPath := filepath.Join(dir, "locations.json")

	raw := `[
		{"id": "good", "name": "Good", "type": "foodbank", "coordinates": {"lat": 39.5, "lng": -105.0}},
		{"id": "bad", "name": "Bad", "type": "foodbank", "coordinates": {"lat": 999, "lng": -105.0}}
	]`
	require.NoError(t, os.WriteFile(locPath, []byte(raw), 0o644))

	s, err := NewFileStore(locPath, filepath.Join(dir, "submissions.json"))
	require.NoError(t, err)

	locs, err := s.List(context.Background(), ListFilter{})
	require.NoError(t, err)
	require.Len(t, locs, 1)
	assert.Equal(t, "good", locs[0].ID)
}

func TestNewFileStore_MissingLocationsFile(t *testing.T) {
	dir := t.TempDir()
	_, err := NewFileStore(filepath.Join(dir, "nope.json"), filepath.Join(dir, "submissions.json"))
	assert.Error(t, err)
}

func newSubmission(id string) models.Submission {
	return models.Submission{
		Location: models.Location{
			ID:          id,
			Name:        "New Fridge",
			Type:        models.TypeCommunityFridge,
			Coordinates: models.Coordinates{Lat: 39.7, Lng: -104.9},
		},
		SubmittedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		Status:      models.StatusPending,
	}
}

func TestFileStore_AppendAndList(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	subs, err := s.ListSubmissions(ctx)
	require.NoError(t, err)
	assert.Empty(t, subs)

	require.NoError(t, s.Append(ctx, newSubmission("sub-1")))
	require.NoError(t, s.Append(ctx, newSubmission("sub-2")))

	subs, err = s.ListSubmissions(ctx)
	require.NoError(t, err)
	require.Len(t, subs, 2)
	assert.Equal(t, "sub-1", subs[0].ID)
	assert.Equal(t, "sub-2", subs[1].ID)
	assert.Equal(t, models.StatusPending, subs[0].Status)
	assert.False(t, subs[0].SubmittedAt.IsZero())
}

func TestFileStore_Append_Concurrent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sub := newSubmission("sub-" + string(rune('a'+i)))
			assert.NoError(t, s.Append(ctx, sub))
		}(i)
	}
	wg.Wait()

	subs, err := s.ListSubmissions(ctx)
	require.NoError(t, err)
	assert.Len(t, subs, n)
}
