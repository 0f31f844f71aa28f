package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/ohmegaloceros-boop/freefoodfinder/internal/models"
)

// FileStore serves locations from a JSON array file loaded at startup and
// appends submissions to a second JSON file. Locations are immutable for
// the process lifetime; submission appends are serialized by a mutex and
// written via temp-file-then-rename so a failed write never truncates the
// existing queue.
type FileStore struct {
	locations []models.Location

	mu              sync.Mutex
	submissionsPath string
}

// NewFileStore loads the locations file and validates every record.
// Records with malformed coordinates are dropped at load, never served.
// A missing submissions file is treated as an empty queue.
func NewFileStore(locationsPath, submissionsPath string) (*FileStore, error) {
	data, err := os.ReadFile(locationsPath)
	if err != nil {
		return nil, fmt.Errorf("store: failed to read locations file: %w", err)
	}

	var raw []models.Location
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("store: failed to parse locations file: %w", err)
	}

	locations := make([]models.Location, 0, len(raw))
	dropped := 0
	for _, loc := range raw {
		if !loc.Coordinates.Valid() {
			dropped++
			continue
		}
		locations = append(locations, loc)
	}
	if dropped > 0 {
		log.Warn().Int("dropped", dropped).Str("file", locationsPath).
			Msg("skipped location records with invalid coordinates")
	}

	return &FileStore{
		locations:       locations,
		submissionsPath: submissionsPath,
	}, nil
}

// List returns a newly built slice of all locations matching the filter,
// in file order.
func (s *FileStore) List(ctx context.Context, filter ListFilter) ([]models.Location, error) {
	results := make([]models.Location, 0, len(s.locations))
	for _, loc := range s.locations {
		if filter.Matches(loc) {
			results = append(results, loc)
		}
	}
	return results, nil
}

// GetByID looks up a single location. Returns ErrNotFound when absent.
func (s *FileStore) GetByID(ctx context.Context, id string) (*models.Location, error) {
	for i := range s.locations {
		if s.locations[i].ID == id {
			loc := s.locations[i]
			return &loc, nil
		}
	}
	return nil, ErrNotFound
}

// Append adds one submission to the persisted queue. The read-modify-write
// cycle runs under the store mutex so concurrent submissions cannot
// overwrite each other.
func (s *FileStore) Append(ctx context.Context, sub models.Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	subs, err := s.readSubmissions()
	if err != nil {
		return err
	}
	subs = append(subs, sub)

	return s.writeSubmissions(subs)
}

// ListSubmissions returns the persisted queue in append order.
func (s *FileStore) ListSubmissions(ctx context.Context) ([]models.Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readSubmissions()
}

func (s *FileStore) readSubmissions() ([]models.Submission, error) {
	data, err := os.ReadFile(s.submissionsPath)
	if err != nil {
		if os.IsNotExist(err) {
			return []models.Submission{}, nil
		}
		return nil, fmt.Errorf("store: failed to read submissions file: %w", err)
	}

	var subs []models.Submission
	if err := json.Unmarshal(data, &subs); err != nil {
		return nil, fmt.Errorf("store: failed to parse submissions file: %w", err)
	}
	return subs, nil
}

func (s *FileStore) writeSubmissions(subs []models.Submission) error {
	data, err := json.MarshalIndent(subs, "", "  ")
	if err != nil {
		return fmt.Errorf("store: failed to encode submissions: %w", err)
	}

	dir := filepath.Dir(s.submissionsPath)
	tmp, err := os.CreateTemp(dir, ".submissions-*.json")
	if err != nil {
		return fmt.Errorf("store: failed to create temp file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("store: failed to write submissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("store: failed to close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.submissionsPath); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("store: failed to replace submissions file: %w", err)
	}
	return nil
}
