package ports

import (
	"context"
	"errors"

	"lebdeal/internal/domain"
)

var (
	// ErrConflict reports that the expected version no longer matches; the
	// caller re-reads and retries, surfaced to players as a stale-state
	// rejection.
	ErrConflict = errors.New("table version conflict")
	// ErrNotFound reports an unknown table ID.
	ErrNotFound = errors.New("table not found")
)

// VersionedTable pairs a snapshot with its optimistic version.
type VersionedTable struct {
	Table   domain.TableState
	Version int64
}

// TableStore is the persistence boundary of the stateless runtime: an opaque
// keyed read/write with optimistic-conflict semantics. The engine does not
// depend on any particular storage technology behind it.
type TableStore interface {
	Create(ctx context.Context, tableID string, table domain.TableState) error
	Load(ctx context.Context, tableID string) (VersionedTable, error)
	// Store persists the successor snapshot if the stored version still
	// equals expected, returning the new version. ErrConflict means a
	// concurrent submission won.
	Store(ctx context.Context, tableID string, table domain.TableState, expected int64) (int64, error)
}
