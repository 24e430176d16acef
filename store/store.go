// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// Collections
const (
	Photos = "photos"
	Notes  = "notes"
	Songs  = "songs"
)

var ErrNotFound = errors.New("record not found")

// Record is one stored item. Data holds the collection-specific JSON payload.
type Record struct {
	ID         string          `json:"id"`
	Collection string          `json:"collection"`
	Data       json.RawMessage `json:"data"`
	CreatedAt  time.Time       `json:"created_at"`
}

// Decode unmarshals the record payload into v.
func (r Record) Decode(v any) error {
	if err := json.Unmarshal(r.Data, v); err != nil {
		return fmt.Errorf("decode %s record %s: %w", r.Collection, r.ID, err)
	}
	return nil
}

// NewRecord encodes v as the payload of a new record in collection.
func NewRecord(collection string, v any) (Record, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return Record{}, fmt.Errorf("encode %s record: %w", collection, err)
	}
	return Record{Collection: collection, Data: data}, nil
}

// ListStore is the remote list storage the site keeps its photos, notes and
// songs in.
type ListStore interface {
	List(ctx context.Context, collection string) ([]Record, error)
	Get(ctx context.Context, collection, id string) (Record, error)
	Insert(ctx context.Context, rec Record) (Record, error)
	Delete(ctx context.Context, collection, id string) error
	DeleteAll(ctx context.Context, collection string) error
}

// SQLStore keeps records in the record table.
type SQLStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db, now: time.Now}
}

// List returns the records of a collection, oldest first.
func (s *SQLStore) List(ctx context.Context, collection string) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, collection, data, created_at
		FROM record
		WHERE collection = $1
		ORDER BY created_at, id
	`, collection)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", collection, err)
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", collection, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list %s: %w", collection, err)
	}
	return records, nil
}

func (s *SQLStore) Get(ctx context.Context, collection, id string) (Record, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, collection, data, created_at
		FROM record
		WHERE collection = $1 AND id = $2
	`, collection, id)

	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, fmt.Errorf("get %s/%s: %w", collection, id, err)
	}
	return rec, nil
}

// Insert stores rec, assigning an ID and creation time when they are unset.
func (s *SQLStore) Insert(ctx context.Context, rec Record) (Record, error) {
	if rec.Collection == "" {
		return Record{}, errors.New("insert: collection required")
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = s.now()
	}
	rec.CreatedAt = rec.CreatedAt.UTC()
	if len(rec.Data) == 0 {
		rec.Data = json.RawMessage("{}")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO record (id, collection, data, created_at)
		VALUES ($1, $2, $3, $4)
	`, rec.ID, rec.Collection, string(rec.Data), rec.CreatedAt)
	if err != nil {
		return Record{}, fmt.Errorf("insert %s: %w", rec.Collection, err)
	}
	return rec, nil
}

func (s *SQLStore) Delete(ctx context.Context, collection, id string) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM record WHERE collection = $1 AND id = $2
	`, collection, id)
	if err != nil {
		return fmt.Errorf("delete %s/%s: %w", collection, id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete %s/%s: %w", collection, id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAll empties a collection.
func (s *SQLStore) DeleteAll(ctx context.Context, collection string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM record WHERE collection = $1`, collection); err != nil {
		return fmt.Errorf("delete all %s: %w", collection, err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner) (Record, error) {
	var (
		rec  Record
		data string
	)
	if err := sc.Scan(&rec.ID, &rec.Collection, &data, &rec.CreatedAt); err != nil {
		return Record{}, err
	}
	rec.Data = json.RawMessage(data)
	return rec, nil
}
