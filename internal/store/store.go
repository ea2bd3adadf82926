package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"studyplan/internal/models"

	_ "github.com/mattn/go-sqlite3" // sqlite3 driver
	"github.com/rs/zerolog"
)

var ErrNotFound = errors.New("record not found")

// Store persists commitments, absences and preferences in SQLite.
type Store struct {
	db     *sql.DB
	logger *zerolog.Logger
}

// New opens the database at path, creating the file and tables as needed.
func New(path string, logger *zerolog.Logger) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	dsn := path + "?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	s := &Store{db: db, logger: logger}
	if err := s.createTables(); err != nil {
		return nil, fmt.Errorf("create tables: %w", err)
	}

	logger.Info().Str("path", path).Msg("store initialized")
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

func (s *Store) createTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS commitments (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			label TEXT NOT NULL,
			days TEXT NOT NULL,
			start_time TEXT NOT NULL,
			end_time TEXT NOT NULL,
			valid_from TEXT NOT NULL DEFAULT '',
			valid_until TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS absences (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			label TEXT NOT NULL,
			start_date TEXT NOT NULL,
			end_date TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS preferences (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			data TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
	}

	for _, q := range queries {
		if _, err := s.db.Exec(q); err != nil {
			return err
		}
	}
	return nil
}

// CreateCommitment validates and inserts a commitment, returning its ID.
func (s *Store) CreateCommitment(ctx context.Context, c *models.Commitment) (int64, error) {
	if err := c.Validate(); err != nil {
		return 0, err
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO commitments (label, days, start_time, end_time, valid_from, valid_until)
		VALUES (?, ?, ?, ?, ?, ?)`,
		c.Label, strings.Join(c.Days, ","), c.Start, c.End, c.ValidFrom, c.ValidUntil,
	)
	if err != nil {
		return 0, fmt.Errorf("insert commitment: %w", err)
	}
	return res.LastInsertId()
}

// ListCommitments returns all commitments ordered by insertion.
func (s *Store) ListCommitments(ctx context.Context) ([]models.Commitment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, label, days, start_time, end_time, valid_from, valid_until
		FROM commitments ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("list commitments: %w", err)
	}
	defer rows.Close()

	var out []models.Commitment
	for rows.Next() {
		var c models.Commitment
		var days string
		if err := rows.Scan(&c.ID, &c.Label, &days, &c.Start, &c.End, &c.ValidFrom, &c.ValidUntil); err != nil {
			return nil, err
		}
		c.Days = strings.Split(days, ",")
		out = append(out, c)
	}
	return out, rows.Err()
}

// DeleteCommitment removes a commitment by ID.
func (s *Store) DeleteCommitment(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM commitments WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete commitment: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateAbsence validates and inserts an absence, returning its ID.
func (s *Store) CreateAbsence(ctx context.Context, a *models.Absence) (int64, error) {
	if err := a.Validate(); err != nil {
		return 0, err
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO absences (label, start_date, end_date, description)
		VALUES (?, ?, ?, ?)`,
		a.Label, a.StartDate, a.EndDate, a.Description,
	)
	if err != nil {
		return 0, fmt.Errorf("insert absence: %w", err)
	}
	return res.LastInsertId()
}

// ListAbsences returns all absences ordered by start date.
func (s *Store) ListAbsences(ctx context.Context) ([]models.Absence, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, label, start_date, end_date, description
		FROM absences ORDER BY start_date, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("list absences: %w", err)
	}
	defer rows.Close()

	var out []models.Absence
	for rows.Next() {
		var a models.Absence
		if err := rows.Scan(&a.ID, &a.Label, &a.StartDate, &a.EndDate, &a.Description); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// DeleteAbsence removes an absence by ID.
func (s *Store) DeleteAbsence(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM absences WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete absence: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// GetPreferences returns the stored preferences, or the defaults when
// none have been saved yet.
func (s *Store) GetPreferences(ctx context.Context) (models.Preferences, error) {
	var data string
	err := s.db.QueryRowContext(ctx, "SELECT data FROM preferences WHERE id = 1").Scan(&data)
	if err == sql.ErrNoRows {
		return models.DefaultPreferences(), nil
	}
	if err != nil {
		return models.Preferences{}, fmt.Errorf("get preferences: %w", err)
	}

	var p models.Preferences
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return models.Preferences{}, fmt.Errorf("decode preferences: %w", err)
	}
	return p, nil
}

// SetPreferences validates and stores the preferences, replacing any
// previous value.
func (s *Store) SetPreferences(ctx context.Context, p *models.Preferences) error {
	if err := p.Validate(); err != nil {
		return err
	}

	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO preferences (id, data, updated_at) VALUES (1, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET data = excluded.data, updated_at = CURRENT_TIMESTAMP`,
		string(data),
	)
	if err != nil {
		return fmt.Errorf("set preferences: %w", err)
	}
	return nil
}
