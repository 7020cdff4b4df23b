// Package pg persists table snapshots in Postgres as versioned JSONB rows.
// The version column carries the optimistic-conflict semantics the stateless
// runtime relies on: two concurrent submissions for one table race on the
// version-guarded update and exactly one wins.
package pg

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"lebdeal/internal/domain"
	"lebdeal/internal/ports"
)

//go:embed schema.sql
var schema embed.FS

type DB struct{ *pgxpool.Pool }

func Open(dsn string) (*DB, error) {
	p, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		return nil, err
	}
	return &DB{p}, nil
}

func (db *DB) Close(ctx context.Context)      { db.Pool.Close() }
func (db *DB) Ping(ctx context.Context) error { return db.Pool.Ping(ctx) }

func Migrate(ctx context.Context, db *DB) error {
	sqlBytes, err := schema.ReadFile("schema.sql")
	if err != nil {
		return err
	}
	_, err = db.Exec(ctx, string(sqlBytes))
	return err
}

// Store implements ports.TableStore on a pgx pool.
type Store struct {
	db *DB
}

func NewStore(db *DB) *Store {
	return &Store{db: db}
}

func (s *Store) Create(ctx context.Context, tableID string, table domain.TableState) error {
	state, err := json.Marshal(table)
	if err != nil {
		return fmt.Errorf("marshal table %s: %w", tableID, err)
	}
	tag, err := s.db.Exec(ctx, `
        INSERT INTO tables(id, state)
        VALUES ($1, $2)
        ON CONFLICT (id) DO NOTHING
    `, tableID, state)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ports.ErrConflict
	}
	return nil
}

func (s *Store) Load(ctx context.Context, tableID string) (ports.VersionedTable, error) {
	var version int64
	var state []byte
	err := s.db.QueryRow(ctx, `
        SELECT version, state FROM tables WHERE id = $1
    `, tableID).Scan(&version, &state)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ports.VersionedTable{}, ports.ErrNotFound
		}
		return ports.VersionedTable{}, err
	}
	var table domain.TableState
	if err := json.Unmarshal(state, &table); err != nil {
		return ports.VersionedTable{}, fmt.Errorf("unmarshal table %s: %w", tableID, err)
	}
	return ports.VersionedTable{Table: table, Version: version}, nil
}

func (s *Store) Store(ctx context.Context, tableID string, table domain.TableState, expected int64) (int64, error) {
	state, err := json.Marshal(table)
	if err != nil {
		return 0, fmt.Errorf("marshal table %s: %w", tableID, err)
	}
	var version int64
	err = s.db.QueryRow(ctx, `
        UPDATE tables
           SET state = $2,
               version = version + 1,
               updated_at = now()
         WHERE id = $1 AND version = $3
        RETURNING version
    `, tableID, state, expected).Scan(&version)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Row missing or version moved on; distinguish for the caller.
			var exists bool
			if probeErr := s.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM tables WHERE id = $1)`, tableID).Scan(&exists); probeErr != nil {
				return 0, probeErr
			}
			if !exists {
				return 0, ports.ErrNotFound
			}
			return 0, ports.ErrConflict
		}
		return 0, err
	}
	return version, nil
}
