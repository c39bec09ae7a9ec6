package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	_ "modernc.org/sqlite"

	"github.com/mr1hm/go-wildfire-watch/internal/models"
)

// SQLiteStore keeps the catalog in an in-memory SQLite database. It is seeded
// once when opened and only read afterwards; nothing outlives the process.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(ctx context.Context, seed *Seed) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}
	// every connection to :memory: is a separate database
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("error while pinging database: %w", err)
	}

	s := &SQLiteStore{
		db: db,
	}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("error while migrating database: %w", err)
	}
	if err := s.load(ctx, seed); err != nil {
		db.Close()
		return nil, fmt.Errorf("error while seeding database: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) migrate(ctx context.Context) error {
	schema := `
		CREATE TABLE IF NOT EXISTS countries (
			position INTEGER PRIMARY KEY,
			name TEXT NOT NULL UNIQUE
		);

		CREATE TABLE IF NOT EXISTS severities (
			rank INTEGER PRIMARY KEY,
			label TEXT NOT NULL UNIQUE
		);

		CREATE TABLE IF NOT EXISTS wildfires (
			position INTEGER NOT NULL,
			id INTEGER PRIMARY KEY,
			country TEXT NOT NULL,
			severity TEXT NOT NULL REFERENCES severities(label),
			date TEXT NOT NULL,
			location TEXT NOT NULL DEFAULT '',
			reported_at TEXT NOT NULL DEFAULT '',
			latitude REAL NOT NULL DEFAULT 0,
			longitude REAL NOT NULL DEFAULT 0,
			magnitude REAL
		);

		CREATE INDEX IF NOT EXISTS idx_wildfires_position ON wildfires(position);
	`

	_, err := s.db.ExecContext(ctx, schema)
	return err
}

func (s *SQLiteStore) load(ctx context.Context, seed *Seed) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for i, name := range seed.Countries {
		if _, err := tx.ExecContext(ctx, `INSERT INTO countries (position, name) VALUES (?, ?)`, i, name); err != nil {
			return fmt.Errorf("insert country %q: %w", name, err)
		}
	}

	for i, sev := range models.Severities() {
		if _, err := tx.ExecContext(ctx, `INSERT INTO severities (rank, label) VALUES (?, ?)`, i, string(sev)); err != nil {
			return fmt.Errorf("insert severity %q: %w", sev, err)
		}
	}

	for i, w := range seed.Wildfires {
		var reportedAt string
		if !w.ReportedAt.IsZero() {
			reportedAt = w.ReportedAt.UTC().Format(time.RFC3339)
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO wildfires (position, id, country, severity, date, location, reported_at, latitude, longitude, magnitude)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			i, w.ID, w.Country, string(w.Severity), w.Date.String(), w.Location, reportedAt,
			w.Latitude, w.Longitude, w.Magnitude,
		)
		if err != nil {
			return fmt.Errorf("insert wildfire %d: %w", w.ID, err)
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) Countries(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM countries ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("error querying countries: %w", err)
	}
	defer rows.Close()

	countries := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("error scanning country: %w", err)
		}
		countries = append(countries, name)
	}
	return countries, rows.Err()
}

func (s *SQLiteStore) Severities(ctx context.Context) ([]models.Severity, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT label FROM severities ORDER BY rank`)
	if err != nil {
		return nil, fmt.Errorf("error querying severities: %w", err)
	}
	defer rows.Close()

	severities := []models.Severity{}
	for rows.Next() {
		var label string
		if err := rows.Scan(&label); err != nil {
			return nil, fmt.Errorf("error scanning severity: %w", err)
		}
		severities = append(severities, models.Severity(label))
	}
	return severities, rows.Err()
}

const wildfireColumns = `id, country, severity, date, location, reported_at, latitude, longitude, magnitude`

func (s *SQLiteStore) Wildfires(ctx context.Context) ([]models.Wildfire, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+wildfireColumns+` FROM wildfires ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("error querying wildfires: %w", err)
	}
	defer rows.Close()

	wildfires := []models.Wildfire{}
	for rows.Next() {
		w, err := scanWildfire(rows)
		if err != nil {
			return nil, err
		}
		wildfires = append(wildfires, *w)
	}
	return wildfires, rows.Err()
}

func (s *SQLiteStore) WildfireByID(ctx context.Context, id int) (*models.Wildfire, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+wildfireColumns+` FROM wildfires WHERE id = ?`, id)
	w, err := scanWildfire(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("wildfire %d: %w", id, ErrNotFound)
	}
	return w, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanWildfire(sc scanner) (*models.Wildfire, error) {
	var (
		w          models.Wildfire
		severity   string
		date       string
		reportedAt string
		magnitude  sql.NullFloat64
	)
	err := sc.Scan(&w.ID, &w.Country, &severity, &date, &w.Location, &reportedAt, &w.Latitude, &w.Longitude, &magnitude)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("error scanning wildfire: %w", err)
	}

	w.Severity = models.Severity(severity)
	if w.Date, err = civil.ParseDate(date); err != nil {
		return nil, fmt.Errorf("wildfire %d has invalid date %q: %w", w.ID, date, err)
	}
	if reportedAt != "" {
		if w.ReportedAt, err = time.Parse(time.RFC3339, reportedAt); err != nil {
			return nil, fmt.Errorf("wildfire %d has invalid reported_at %q: %w", w.ID, reportedAt, err)
		}
	}
	if magnitude.Valid {
		m := magnitude.Float64
		w.Magnitude = &m
	}

	return &w, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
