// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store keeps a local audit log of parsed orders in SQLite.
package store

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/dme-engine/pkg/types"
)

const dbFile = "orders.db"

// Store manages the order log SQLite database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// SavedOrder is one row of the order log.
type SavedOrder struct {
	ID        string
	Record    types.OrderRecord
	NoteSHA   string
	Submitted bool
	CreatedAt time.Time
}

// NewStore opens or creates the order log at cfg.DataDir/orders.db and
// creates the schema if it does not exist.
func NewStore(cfg types.StoreConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(cfg.DataDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS orders (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			device TEXT NOT NULL,
			patient_name TEXT NOT NULL,
			dob TEXT NOT NULL,
			diagnosis TEXT NOT NULL,
			ordering_provider TEXT NOT NULL,
			qualifier TEXT NOT NULL DEFAULT '',
			liters TEXT,
			mask_type TEXT,
			add_ons TEXT,
			usage TEXT,
			note_sha TEXT NOT NULL,
			submitted INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_device ON orders(device)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// NoteSHA returns the stable identifier for a note's text: the first 12 hex
// characters of its SHA-256. Re-parsing the same note upserts the same row.
func NoteSHA(note string) string {
	h := sha256.Sum256([]byte(note))
	return fmt.Sprintf("%x", h)[:12]
}

func nullable(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// Save upserts one parsed record, keyed by the note hash, and returns the
// row id. Absent optional fields round-trip as SQL NULLs.
func (s *Store) Save(ctx context.Context, rec *types.OrderRecord, noteSHA string, submitted bool) (string, error) {
	id := NoteSHA(noteSHA + string(rec.Device))

	var addOns sql.NullString
	if rec.AddOns != nil {
		data, err := json.Marshal(rec.AddOns)
		if err != nil {
			return "", fmt.Errorf("marshaling add-ons: %w", err)
		}
		addOns = sql.NullString{String: string(data), Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO orders (
			id, device, patient_name, dob, diagnosis, ordering_provider,
			qualifier, liters, mask_type, add_ons, usage, note_sha,
			submitted, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			device = excluded.device,
			patient_name = excluded.patient_name,
			dob = excluded.dob,
			diagnosis = excluded.diagnosis,
			ordering_provider = excluded.ordering_provider,
			qualifier = excluded.qualifier,
			liters = excluded.liters,
			mask_type = excluded.mask_type,
			add_ons = excluded.add_ons,
			usage = excluded.usage,
			submitted = excluded.submitted,
			created_at = excluded.created_at`,
		id, string(rec.Device), rec.PatientName, rec.DOB, rec.Diagnosis,
		rec.OrderingProvider, rec.Qualifier, nullable(rec.Liters),
		nullable(rec.MaskType), addOns, nullable(rec.Usage), noteSHA,
		submitted, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return "", fmt.Errorf("saving order %s: %w", id, err)
	}
	return id, nil
}

// List returns the most recent orders, newest first. A limit of 0 uses the
// configured default.
func (s *Store) List(ctx context.Context, limit int) ([]SavedOrder, error) {
	if limit <= 0 {
		limit = s.maxResults
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, device, patient_name, dob, diagnosis, ordering_provider,
			qualifier, liters, mask_type, add_ons, usage, note_sha,
			submitted, created_at
		FROM orders
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying orders: %w", err)
	}
	defer rows.Close()

	var orders []SavedOrder
	for rows.Next() {
		var (
			o                        SavedOrder
			device                   string
			liters, maskType         sql.NullString
			addOns, usage, createdAt sql.NullString
		)
		if err := rows.Scan(
			&o.ID, &device, &o.Record.PatientName, &o.Record.DOB,
			&o.Record.Diagnosis, &o.Record.OrderingProvider,
			&o.Record.Qualifier, &liters, &maskType, &addOns, &usage,
			&o.NoteSHA, &o.Submitted, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("scanning order: %w", err)
		}

		o.Record.Device = types.Device(device)
		if liters.Valid {
			o.Record.Liters = &liters.String
		}
		if maskType.Valid {
			o.Record.MaskType = &maskType.String
		}
		if usage.Valid {
			o.Record.Usage = &usage.String
		}
		if addOns.Valid {
			if err := json.Unmarshal([]byte(addOns.String), &o.Record.AddOns); err != nil {
				return nil, fmt.Errorf("unmarshaling add-ons for %s: %w", o.ID, err)
			}
		}
		if createdAt.Valid {
			if t, err := time.Parse(time.RFC3339Nano, createdAt.String); err == nil {
				o.CreatedAt = t
			}
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}
