package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/intelligrit/attraction-scout/internal/model"
	"github.com/klauspost/compress/zstd"
	_ "modernc.org/sqlite"
)

var newRunID = uuid.NewV7

// Store keeps the lookup history in SQLite. It is an audit log only; the
// result cache never reads from it.
type Store struct {
	DB      *sql.DB
	DataDir string

	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

// New opens (or creates) the history database in the given data directory.
func New(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	dbPath := filepath.Join(dataDir, "attraction-scout.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	enc, err := zstd.NewWriter(nil)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating zstd encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating zstd decoder: %w", err)
	}

	s := &Store{DB: db, DataDir: dataDir, encoder: enc, decoder: dec}
	if err := s.migrate(); err != nil {
		s.Close()
		return nil, fmt.Errorf("migrating schema: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	s.decoder.Close()
	return s.DB.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS lookups (
			id TEXT PRIMARY KEY,
			city_key TEXT NOT NULL,
			city TEXT NOT NULL,
			fetched_at DATETIME NOT NULL,
			record_count INTEGER NOT NULL,
			records BLOB NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_lookups_city ON lookups(city_key, fetched_at DESC)`,
	}

	for _, stmt := range stmts {
		if _, err := s.DB.Exec(stmt); err != nil {
			return fmt.Errorf("executing migration: %w", err)
		}
	}
	return nil
}

// WriteLookup appends a completed run. A missing ID is filled with a new
// UUIDv7.
func (s *Store) WriteLookup(run *model.LookupRun) error {
	if run.ID == "" {
		id, err := newRunID()
		if err != nil {
			return fmt.Errorf("generating run id: %w", err)
		}
		run.ID = id.String()
	}

	raw, err := json.Marshal(run.Attractions)
	if err != nil {
		return fmt.Errorf("encoding attractions: %w", err)
	}
	blob := s.encoder.EncodeAll(raw, nil)

	_, err = s.DB.Exec("INSERT INTO lookups (id, city_key, city, fetched_at, record_count, records) VALUES (?, ?, ?, ?, ?, ?)",
		run.ID, run.CityKey, run.City, run.FetchedAt.UTC(), len(run.Attractions), blob)
	if err != nil {
		return fmt.Errorf("inserting lookup %s: %w", run.ID, err)
	}
	return nil
}

// ReadLookups returns up to limit runs, newest first. An empty cityKey
// matches every city.
func (s *Store) ReadLookups(cityKey string, limit int) ([]model.LookupRun, error) {
	if limit <= 0 {
		limit = 10
	}

	query := "SELECT id, city_key, city, fetched_at, records FROM lookups"
	var args []any
	if cityKey != "" {
		query += " WHERE city_key = ?"
		args = append(args, cityKey)
	}
	query += " ORDER BY fetched_at DESC, id DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying lookups: %w", err)
	}
	defer rows.Close()

	var runs []model.LookupRun
	for rows.Next() {
		var run model.LookupRun
		var fetchedAt time.Time
		var blob []byte
		if err := rows.Scan(&run.ID, &run.CityKey, &run.City, &fetchedAt, &blob); err != nil {
			return nil, fmt.Errorf("scanning lookup: %w", err)
		}
		run.FetchedAt = fetchedAt

		raw, err := s.decoder.DecodeAll(blob, nil)
		if err != nil {
			return nil, fmt.Errorf("decompressing lookup %s: %w", run.ID, err)
		}
		if err := json.Unmarshal(raw, &run.Attractions); err != nil {
			return nil, fmt.Errorf("decoding lookup %s: %w", run.ID, err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// LookupCount returns the number of recorded runs.
func (s *Store) LookupCount() int {
	var n int
	s.DB.QueryRow("SELECT COUNT(*) FROM lookups").Scan(&n)
	return n
}

// CityCounts returns the number of recorded runs per city key.
func (s *Store) CityCounts() map[string]int {
	m := make(map[string]int)
	rows, err := s.DB.Query("SELECT city_key, COUNT(*) FROM lookups GROUP BY city_key ORDER BY city_key")
	if err != nil {
		return m
	}
	defer rows.Close()
	for rows.Next() {
		var key string
		var cnt int
		rows.Scan(&key, &cnt)
		m[key] = cnt
	}
	return m
}
