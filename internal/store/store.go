// Package store persists audit records. Records are write-once: the only
// operations are Append and read-only queries.
package store

import (
	"context"
	"fmt"

	"github.com/tracker-tv/phi-guard/models"
)

type Store interface {
	Append(ctx context.Context, rec models.AuditRecord) error
	// ListByRepo returns up to limit records for repo, oldest first.
	ListByRepo(ctx context.Context, repo string, limit int) ([]models.AuditRecord, error)
	// HasLedgerHash reports whether a record was persisted for the ledger
	// entry with the given entry hash.
	HasLedgerHash(ctx context.Context, hash string) (bool, error)
}

type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
