// Package ledger keeps one hash-linked chain of audit results per repository.
//
// Each entry hashes its timestamp, the hash of the canonical audit result and
// the previous entry's hash, so rewriting any entry breaks every later link.
// Backends only have to provide an atomic compare-and-swap on the chain head;
// Append refreshes the head and retries when another writer won the race.
package ledger

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/tracker-tv/phi-guard/models"
	"go.uber.org/zap"
)

// GenesisHash is the previous_hash of the first entry of every chain.
const GenesisHash = "genesis"

// ErrWriteConflict is returned by a Backend when the chain head moved between
// reading it and writing the new entry.
var ErrWriteConflict = errors.New("ledger write conflict")

type Backend interface {
	// Head returns the newest entry of scope, or nil for an empty chain.
	Head(ctx context.Context, scope string) (*models.LedgerEntry, error)
	// Put appends e if e.PreviousHash is still the head of e.Scope,
	// otherwise it returns ErrWriteConflict.
	Put(ctx context.Context, e models.LedgerEntry) error
	Entries(ctx context.Context, scope string) ([]models.LedgerEntry, error)
	Scopes(ctx context.Context) ([]string, error)
}

type Ledger struct {
	backend    Backend
	maxRetries int
	log        *zap.Logger
	now        func() time.Time
	onConflict func()
}

func New(backend Backend, maxRetries int, log *zap.Logger) *Ledger {
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &Ledger{
		backend:    backend,
		maxRetries: maxRetries,
		log:        log,
		now:        time.Now,
	}
}

// OnConflict registers fn to be called every time an append loses the race
// for the chain head.
func (l *Ledger) OnConflict(fn func()) {
	l.onConflict = fn
}

// DataHash hashes the canonical JSON encoding of result.
func DataHash(result models.AuditResult) (string, error) {
	data, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("encoding audit result: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

func EntryHash(timestamp, dataHash, previousHash string) string {
	sum := sha256.Sum256([]byte(timestamp + dataHash + previousHash))
	return hex.EncodeToString(sum[:])
}

// Append links result to the head of scope's chain.
func (l *Ledger) Append(ctx context.Context, scope string, result models.AuditResult) (models.LedgerEntry, error) {
	dataHash, err := DataHash(result)
	if err != nil {
		return models.LedgerEntry{}, err
	}

	for attempt := 1; attempt <= l.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return models.LedgerEntry{}, err
		}

		head, err := l.backend.Head(ctx, scope)
		if err != nil {
			return models.LedgerEntry{}, fmt.Errorf("reading head of %s: %w", scope, err)
		}

		entry := l.newEntry(scope, head, dataHash)
		err = l.backend.Put(ctx, entry)
		if err == nil {
			return entry, nil
		}
		if !errors.Is(err, ErrWriteConflict) {
			return models.LedgerEntry{}, fmt.Errorf("writing entry to %s: %w", scope, err)
		}

		if l.onConflict != nil {
			l.onConflict()
		}
		l.log.Warn("ledger head moved, retrying",
			zap.String("scope", scope),
			zap.Int("attempt", attempt),
			zap.String("stale_previous_hash", entry.PreviousHash),
		)
	}

	return models.LedgerEntry{}, fmt.Errorf("appending to %s after %d attempts: %w", scope, l.maxRetries, ErrWriteConflict)
}

func (l *Ledger) newEntry(scope string, head *models.LedgerEntry, dataHash string) models.LedgerEntry {
	prev := GenesisHash
	var seq uint64
	if head != nil {
		prev = head.EntryHash
		seq = head.Seq + 1
	}

	ts := l.now().UTC().Format(time.RFC3339Nano)
	return models.LedgerEntry{
		Scope:        scope,
		Seq:          seq,
		Timestamp:    ts,
		DataHash:     dataHash,
		PreviousHash: prev,
		EntryHash:    EntryHash(ts, dataHash, prev),
	}
}

func (l *Ledger) Entries(ctx context.Context, scope string) ([]models.LedgerEntry, error) {
	return l.backend.Entries(ctx, scope)
}

func (l *Ledger) Scopes(ctx context.Context) ([]string, error) {
	return l.backend.Scopes(ctx)
}

// VerifyScope loads scope's chain and checks it with Verify.
func (l *Ledger) VerifyScope(ctx context.Context, scope string) ([]models.LedgerEntry, error) {
	entries, err := l.backend.Entries(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", scope, err)
	}
	return entries, Verify(entries)
}
