package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/tracker-tv/phi-guard/models"
	"go.uber.org/zap"
)

// BadgerBackend stores chains in an embedded badger database. Heads live
// under head/<scope>, entries under entry/<scope>/<zero-padded seq> so that
// a prefix scan returns them in chain order.
type BadgerBackend struct {
	db *badger.DB
}

// OpenBadger opens (or creates) the ledger database at path. An empty path
// opens an in-memory database.
func OpenBadger(path string, log *zap.Logger) (*BadgerBackend, error) {
	opts := badger.DefaultOptions(path).WithLogger(&badgerLogger{log.Sugar()})
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening ledger at %q: %w", path, err)
	}
	return &BadgerBackend{db: db}, nil
}

func (b *BadgerBackend) Close() error {
	return b.db.Close()
}

func headKey(scope string) []byte {
	return []byte("head/" + url.PathEscape(scope))
}

func entryPrefix(scope string) []byte {
	return []byte("entry/" + url.PathEscape(scope) + "/")
}

func entryKey(scope string, seq uint64) []byte {
	return append(entryPrefix(scope), fmt.Sprintf("%020d", seq)...)
}

func (b *BadgerBackend) Head(_ context.Context, scope string) (*models.LedgerEntry, error) {
	var head *models.LedgerEntry
	err := b.db.View(func(txn *badger.Txn) error {
		var err error
		head, err = getHead(txn, scope)
		return err
	})
	return head, err
}

func getHead(txn *badger.Txn, scope string) (*models.LedgerEntry, error) {
	item, err := txn.Get(headKey(scope))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var head models.LedgerEntry
	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, &head)
	})
	if err != nil {
		return nil, err
	}
	return &head, nil
}

func (b *BadgerBackend) Put(_ context.Context, e models.LedgerEntry) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}

	err = b.db.Update(func(txn *badger.Txn) error {
		head, err := getHead(txn, e.Scope)
		if err != nil {
			return err
		}
		expectedPrev, expectedSeq := GenesisHash, uint64(0)
		if head != nil {
			expectedPrev, expectedSeq = head.EntryHash, head.Seq+1
		}
		if e.PreviousHash != expectedPrev || e.Seq != expectedSeq {
			return ErrWriteConflict
		}
		if err := txn.Set(entryKey(e.Scope, e.Seq), data); err != nil {
			return err
		}
		return txn.Set(headKey(e.Scope), data)
	})
	if errors.Is(err, badger.ErrConflict) {
		return ErrWriteConflict
	}
	return err
}

func (b *BadgerBackend) Entries(_ context.Context, scope string) ([]models.LedgerEntry, error) {
	var entries []models.LedgerEntry
	prefix := entryPrefix(scope)

	err := b.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var e models.LedgerEntry
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &e)
			})
			if err != nil {
				return fmt.Errorf("decoding %s: %w", it.Item().Key(), err)
			}
			entries = append(entries, e)
		}
		return nil
	})
	return entries, err
}

func (b *BadgerBackend) Scopes(_ context.Context) ([]string, error) {
	var scopes []string
	prefix := []byte("head/")

	err := b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			scope, err := url.PathUnescape(strings.TrimPrefix(string(it.Item().Key()), "head/"))
			if err != nil {
				return err
			}
			scopes = append(scopes, scope)
		}
		return nil
	})
	return scopes, err
}

// badgerLogger routes badger's internal logging through zap.
type badgerLogger struct {
	s *zap.SugaredLogger
}

func (l *badgerLogger) Errorf(f string, v ...interface{})   { l.s.Errorf(f, v...) }
func (l *badgerLogger) Warningf(f string, v ...interface{}) { l.s.Warnf(f, v...) }
func (l *badgerLogger) Infof(f string, v ...interface{})    { l.s.Debugf(f, v...) }
func (l *badgerLogger) Debugf(f string, v ...interface{})   { l.s.Debugf(f, v...) }
