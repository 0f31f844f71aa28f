package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ohmegaloceros-boop/freefoodfinder/internal/models"
)

// PostgresStore implements the same contracts as FileStore over a Postgres
// pool. Listing preserves insertion order by sorting on the serial row id,
// and bounding-box filtering uses the same inclusive-edge semantics as
// models.Bounds.Contains.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore creates a Postgres-backed store.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

const locationColumns = `id, name, type, lat, lng, address, city, state, zip_code, hours, phone, description`

// List returns locations matching the filter in insertion order.
func (s *PostgresStore) List(ctx context.Context, filter ListFilter) ([]models.Location, error) {
	sql := `SELECT ` + locationColumns + ` FROM locations`
	var (
		conds []string
		args  []interface{}
	)

	if filter.Type != nil {
		args = append(args, string(*filter.Type))
		conds = append(conds, "type = $"+strconv.Itoa(len(args)))
	}
	if filter.Bounds != nil {
		b := *filter.Bounds
		args = append(args, b.South, b.North, b.West, b.East)
		n := len(args)
		conds = append(conds,
			fmt.Sprintf("lat BETWEEN $%d AND $%d", n-3, n-2),
			fmt.Sprintf("lng BETWEEN $%d AND $%d", n-1, n),
		)
	}

	for i, c := range conds {
		if i == 0 {
			sql += " WHERE " + c
		} else {
			sql += " AND " + c
		}
	}
	sql += " ORDER BY row_id"

	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("store: failed to query locations: %w", err)
	}
	defer rows.Close()

	locations := make([]models.Location, 0)
	for rows.Next() {
		loc, err := scanLocation(rows)
		if err != nil {
			return nil, err
		}
		locations = append(locations, loc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: error iterating rows: %w", err)
	}

	return locations, nil
}

// GetByID looks up a single location. Returns ErrNotFound when absent.
func (s *PostgresStore) GetByID(ctx context.Context, id string) (*models.Location, error) {
	row := s.db.QueryRow(ctx, `SELECT `+locationColumns+` FROM locations WHERE id = $1`, id)
	loc, err := scanLocation(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &loc, nil
}

// Append inserts one submission. Row-level inserts need no extra locking.
func (s *PostgresStore) Append(ctx context.Context, sub models.Submission) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO submissions
			(id, name, type, lat, lng, address, city, state, zip_code,
			 hours, phone, description, submitter_email, submitted_at, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		sub.ID, sub.Name, string(sub.Type), sub.Coordinates.Lat, sub.Coordinates.Lng,
		sub.Address, sub.City, sub.State, sub.ZipCode,
		sub.Hours, sub.Phone, sub.Description,
		sub.SubmitterEmail, sub.SubmittedAt, string(sub.Status),
	)
	if err != nil {
		return fmt.Errorf("store: failed to insert submission: %w", err)
	}
	return nil
}

// ListSubmissions returns the queue in append order.
func (s *PostgresStore) ListSubmissions(ctx context.Context) ([]models.Submission, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, name, type, lat, lng, address, city, state, zip_code,
		       hours, phone, description, submitter_email, submitted_at, status
		FROM submissions ORDER BY row_id`)
	if err != nil {
		return nil, fmt.Errorf("store: failed to query submissions: %w", err)
	}
	defer rows.Close()

	subs := make([]models.Submission, 0)
	for rows.Next() {
		var (
			sub     models.Submission
			locType string
			status  string
		)
		err := rows.Scan(
			&sub.ID, &sub.Name, &locType,
			&sub.Coordinates.Lat, &sub.Coordinates.Lng,
			&sub.Address, &sub.City, &sub.State, &sub.ZipCode,
			&sub.Hours, &sub.Phone, &sub.Description,
			&sub.SubmitterEmail, &sub.SubmittedAt, &status,
		)
		if err != nil {
			return nil, fmt.Errorf("store: failed to scan submission: %w", err)
		}
		sub.Type = models.LocationType(locType)
		sub.Status = models.SubmissionStatus(status)
		subs = append(subs, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: error iterating rows: %w", err)
	}

	return subs, nil
}

func scanLocation(row pgx.Row) (models.Location, error) {
	var (
		loc     models.Location
		locType string
	)
	err := row.Scan(
		&loc.ID, &loc.Name, &locType,
		&loc.Coordinates.Lat, &loc.Coordinates.Lng,
		&loc.Address, &loc.City, &loc.State, &loc.ZipCode,
		&loc.Hours, &loc.Phone, &loc.Description,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Location{}, err
		}
		return models.Location{}, fmt.Errorf("store: failed to scan location: %w", err)
	}
	loc.Type = models.LocationType(locType)
	return loc, nil
}
