package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/ohmegaloceros-boop/freefoodfinder/internal/config"
	"github.com/ohmegaloceros-boop/freefoodfinder/internal/models"
)

// rawLocation accepts both the canonical shape and legacy records that
// carry lat/lng at the root instead of a coordinates object.
type rawLocation struct {
	models.Location
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

func main() {
	out := flag.String("out", "data/all-locations.json", "Path to the canonical locations file")
	useDB := flag.Bool("db", false, "Load the merged result into Postgres instead of writing the file")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Println("Error: at least one input file is required")
		fmt.Println("Usage: importer [--out file] [--db] <input.json> [input.json ...]")
		os.Exit(1)
	}

	var merged []models.Location
	skipped := 0
	for _, path := range flag.Args() {
		locations, dropped, err := loadFile(path)
		if err != nil {
			fmt.Printf("Error reading %s: %v\n", path, err)
			os.Exit(1)
		}
		fmt.Printf("Loaded %d locations from %s (%d skipped)\n", len(locations), path, dropped)
		merged = append(merged, locations...)
		skipped += dropped
	}

	fmt.Printf("Merged %d locations total (%d skipped for invalid coordinates)\n", len(merged), skipped)

	if *useDB {
		cfg, err := config.LoadConfig("configs")
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			os.Exit(1)
		}
		if err := loadIntoDatabase(cfg.DBSource, merged); err != nil {
			fmt.Printf("Error loading into database: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Successfully imported %d records into Postgres\n", len(merged))
	} else {
		if err := writeCanonical(*out, merged); err != nil {
			fmt.Printf("Error writing %s: %v\n", *out, err)
			os.Exit(1)
		}
		fmt.Printf("Successfully wrote %s\n", *out)
	}

	printCityStats(merged)
}

func loadFile(path string) ([]models.Location, int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open file: %w", err)
	}

	var raw []rawLocation
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, 0, fmt.Errorf("failed to parse JSON: %w", err)
	}

	locations := make([]models.Location, 0, len(raw))
	dropped := 0
	for _, r := range raw {
		loc := r.Location

		// Legacy records keep coordinates at the root.
		if !loc.Coordinates.Valid() && r.Lat != nil && r.Lng != nil {
			loc.Coordinates = models.Coordinates{Lat: *r.Lat, Lng: *r.Lng}
		}
		if !loc.Coordinates.Valid() || !loc.Type.Valid() || loc.Name == "" {
			dropped++
			continue
		}
		if loc.ID == "" {
			loc.ID = uuid.NewString()
		}
		locations = append(locations, loc)
	}

	return locations, dropped, nil
}

func writeCanonical(path string, locations []models.Location) error {
	data, err := json.MarshalIndent(locations, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode locations: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".locations-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write locations: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace locations file: %w", err)
	}
	return nil
}

func loadIntoDatabase(dbSource string, locations []models.Location) error {
	ctx := context.Background()
	conn, err := pgx.Connect(ctx, dbSource)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer conn.Close(ctx)

	if err := createTablesIfNotExist(ctx, conn); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}

	_, err = conn.CopyFrom(
		ctx,
		pgx.Identifier{"locations"},
		[]string{"id", "name", "type", "lat", "lng", "address", "city", "state", "zip_code", "hours", "phone", "description"},
		pgx.CopyFromSlice(len(locations), func(i int) ([]interface{}, error) {
			loc := locations[i]
			return []interface{}{
				loc.ID, loc.Name, string(loc.Type),
				loc.Coordinates.Lat, loc.Coordinates.Lng,
				loc.Address, loc.City, loc.State, loc.ZipCode,
				loc.Hours, loc.Phone, loc.Description,
			}, nil
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to copy records: %w", err)
	}

	var count int
	if err := conn.QueryRow(ctx, "SELECT COUNT(*) FROM locations").Scan(&count); err != nil {
		return fmt.Errorf("failed to verify import: %w", err)
	}
	if count < len(locations) {
		return fmt.Errorf("record count mismatch: expected at least %d, got %d", len(locations), count)
	}

	return nil
}

func createTablesIfNotExist(ctx context.Context, conn *pgx.Conn) error {
	query := `
	CREATE TABLE IF NOT EXISTS locations (
		row_id BIGSERIAL PRIMARY KEY,
		id TEXT UNIQUE NOT NULL,
		name TEXT NOT NULL,
		type TEXT NOT NULL,
		lat DOUBLE PRECISION NOT NULL,
		lng DOUBLE PRECISION NOT NULL,
		address TEXT NOT NULL DEFAULT '',
		city TEXT NOT NULL DEFAULT '',
		state TEXT NOT NULL DEFAULT '',
		zip_code TEXT NOT NULL DEFAULT '',
		hours TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT ''
	);
	CREATE TABLE IF NOT EXISTS submissions (
		row_id BIGSERIAL PRIMARY KEY,
		id TEXT UNIQUE NOT NULL,
		name TEXT NOT NULL,
		type TEXT NOT NULL,
		lat DOUBLE PRECISION NOT NULL,
		lng DOUBLE PRECISION NOT NULL,
		address TEXT NOT NULL DEFAULT '',
		city TEXT NOT NULL DEFAULT '',
		state TEXT NOT NULL DEFAULT '',
		zip_code TEXT NOT NULL DEFAULT '',
		hours TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		submitter_email TEXT NOT NULL DEFAULT '',
		submitted_at TIMESTAMPTZ NOT NULL,
		status TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS locations_lat_lng_idx ON locations (lat, lng);
	`
	_, err := conn.Exec(ctx, query)
	return err
}

func printCityStats(locations []models.Location) {
	cities := make(map[string]int)
	for _, loc := range locations {
		city := loc.City
		if city == "" {
			city = "(unknown)"
		}
		cities[city]++
	}

	names := make([]string, 0, len(cities))
	for city := range cities {
		names = append(names, city)
	}
	sort.Strings(names)

	fmt.Println("\nLocations by city:")
	for _, city := range names {
		fmt.Printf("  %s: %d\n", city, cities[city])
	}
}
