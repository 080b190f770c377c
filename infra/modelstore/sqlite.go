package modelstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/kilianp07/auslib/core/library"
)

// SQLite persists objects in a SQLite database.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens or creates the database at path and ensures schema.
func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	schema := `CREATE TABLE IF NOT EXISTS objects (
        id TEXT PRIMARY KEY,
        kind TEXT NOT NULL,
        name TEXT NOT NULL,
        payload TEXT NOT NULL,
        UNIQUE(kind, name)
    );`
	if _, err := db.Exec(schema); err != nil {
		if cerr := db.Close(); cerr != nil {
			return nil, fmt.Errorf("close db: %v (schema err: %w)", cerr, err)
		}
		return nil, err
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) Add(ctx context.Context, kind library.Kind, name string, payload any) (library.Handle, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return library.Handle{}, fmt.Errorf("encode %s %q: %w", kind, name, err)
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return library.Handle{}, err
	}
	defer func() { _ = tx.Rollback() }()

	var exists int
	err = tx.QueryRowContext(ctx,
		`SELECT 1 FROM objects WHERE kind = ? AND name = ?`, string(kind), name).Scan(&exists)
	switch {
	case err == nil:
		return library.Handle{}, ErrDuplicateName
	case !errors.Is(err, sql.ErrNoRows):
		return library.Handle{}, err
	}

	h := library.Handle{ID: uuid.New(), Kind: kind, Name: name}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO objects (id, kind, name, payload) VALUES (?, ?, ?, ?)`,
		h.ID.String(), string(kind), name, string(b)); err != nil {
		return library.Handle{}, err
	}
	if err := tx.Commit(); err != nil {
		return library.Handle{}, err
	}
	return h, nil
}

func (s *SQLite) Lookup(ctx context.Context, kind library.Kind, name string) (library.Handle, error) {
	var id string
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM objects WHERE kind = ? AND name = ?`, string(kind), name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return library.Handle{}, ErrNotFound
	}
	if err != nil {
		return library.Handle{}, err
	}
	return handle(id, kind, name)
}

// List returns the handles of kind ordered by name.
func (s *SQLite) List(ctx context.Context, kind library.Kind) ([]library.Handle, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name FROM objects WHERE kind = ? ORDER BY name`, string(kind))
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var res []library.Handle
	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		h, err := handle(id, kind, name)
		if err != nil {
			return nil, err
		}
		res = append(res, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *SQLite) Decode(ctx context.Context, kind library.Kind, name string, out any) error {
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM objects WHERE kind = ? AND name = ?`, string(kind), name).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(data), out); err != nil {
		return fmt.Errorf("unmarshal %s %q: %w", kind, name, err)
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLite) Close() error { return s.db.Close() }

func handle(id string, kind library.Kind, name string) (library.Handle, error) {
	u, err := uuid.Parse(id)
	if err != nil {
		return library.Handle{}, fmt.Errorf("object %s %q: bad id: %w", kind, name, err)
	}
	return library.Handle{ID: u, Kind: kind, Name: name}, nil
}
