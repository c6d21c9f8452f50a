package ledger

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tracker-tv/phi-guard/models"
	"go.uber.org/zap"
)

func result(score int) models.AuditResult {
	status := models.StatusClean
	if score > 30 {
		status = models.StatusViolation
	}
	return models.AuditResult{
		Status:    status,
		RiskScore: score,
		Findings: []models.Finding{
			{Category: models.CategoryPHILogging, Severity: models.SeverityHigh, Message: "PHI", Line: 3, Source: models.SourceScanner},
		},
	}
}

type backendCase struct {
	name string
	open func(t *testing.T) Backend
}

func backends() []backendCase {
	return []backendCase{
		{"memory", func(t *testing.T) Backend { return NewMemoryBackend() }},
		{"badger", func(t *testing.T) Backend {
			b, err := OpenBadger("", zap.NewNop())
			require.NoError(t, err)
			t.Cleanup(func() { _ = b.Close() })
			return b
		}},
	}
}

func TestAppend_LinksEntries(t *testing.T) {
	for _, bc := range backends() {
		t.Run(bc.name, func(t *testing.T) {
			ctx := context.Background()
			l := New(bc.open(t), 3, zap.NewNop())

			a, err := l.Append(ctx, "org/repo", result(40))
			require.NoError(t, err)
			b, err := l.Append(ctx, "org/repo", result(10))
			require.NoError(t, err)

			assert.Equal(t, GenesisHash, a.PreviousHash)
			assert.Equal(t, uint64(0), a.Seq)
			assert.Equal(t, a.EntryHash, b.PreviousHash)
			assert.Equal(t, uint64(1), b.Seq)

			entries, err := l.VerifyScope(ctx, "org/repo")
			require.NoError(t, err)
			assert.Len(t, entries, 2)
		})
	}
}

func TestAppend_ChainIntegrity(t *testing.T) {
	for _, bc := range backends() {
		t.Run(bc.name, func(t *testing.T) {
			ctx := context.Background()
			l := New(bc.open(t), 3, zap.NewNop())

			for i := 0; i < 25; i++ {
				_, err := l.Append(ctx, "org/repo", result(i*4))
				require.NoError(t, err)
			}

			entries, err := l.Entries(ctx, "org/repo")
			require.NoError(t, err)
			require.Len(t, entries, 25)

			assert.Equal(t, GenesisHash, entries[0].PreviousHash)
			for i, e := range entries {
				assert.Equal(t, EntryHash(e.Timestamp, e.DataHash, e.PreviousHash), e.EntryHash)
				if i > 0 {
					assert.Equal(t, entries[i-1].EntryHash, e.PreviousHash)
				}
			}
			assert.NoError(t, Verify(entries))
		})
	}
}

func TestAppend_PerRepositoryScope(t *testing.T) {
	for _, bc := range backends() {
		t.Run(bc.name, func(t *testing.T) {
			ctx := context.Background()
			l := New(bc.open(t), 3, zap.NewNop())

			a1, err := l.Append(ctx, "org/alpha", result(40))
			require.NoError(t, err)
			b1, err := l.Append(ctx, "org/beta", result(40))
			require.NoError(t, err)
			a2, err := l.Append(ctx, "org/alpha", result(0))
			require.NoError(t, err)

			assert.Equal(t, GenesisHash, a1.PreviousHash)
			assert.Equal(t, GenesisHash, b1.PreviousHash)
			assert.Equal(t, a1.EntryHash, a2.PreviousHash)

			scopes, err := l.Scopes(ctx)
			require.NoError(t, err)
			assert.ElementsMatch(t, []string{"org/alpha", "org/beta"}, scopes)

			beta, err := l.VerifyScope(ctx, "org/beta")
			require.NoError(t, err)
			assert.Len(t, beta, 1)
		})
	}
}

func TestAppend_ConcurrentNeverForks(t *testing.T) {
	for _, bc := range backends() {
		t.Run(bc.name, func(t *testing.T) {
			ctx := context.Background()
			l := New(bc.open(t), 100, zap.NewNop())

			const writers = 16
			var wg sync.WaitGroup
			errs := make(chan error, writers)
			for i := 0; i < writers; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					_, err := l.Append(ctx, "org/repo", result(i))
					errs <- err
				}(i)
			}
			wg.Wait()
			close(errs)

			for err := range errs {
				assert.NoError(t, err)
			}

			entries, err := l.VerifyScope(ctx, "org/repo")
			require.NoError(t, err)
			assert.Len(t, entries, writers)
		})
	}
}

// Run A produces H_A, run B links to it, and rewriting A's data hash breaks
// verification.
func TestVerify_DetectsCorruptedDataHash(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend()
	l := New(backend, 3, zap.NewNop())

	runA, err := l.Append(ctx, "org/repo", result(40))
	require.NoError(t, err)
	runB, err := l.Append(ctx, "org/repo", result(0))
	require.NoError(t, err)
	require.Equal(t, runA.EntryHash, runB.PreviousHash)

	_, err = l.VerifyScope(ctx, "org/repo")
	require.NoError(t, err)

	otherHash, err := DataHash(result(99))
	require.NoError(t, err)
	backend.chains["org/repo"][0].DataHash = otherHash

	_, err = l.VerifyScope(ctx, "org/repo")

	var tamper *TamperError
	require.ErrorAs(t, err, &tamper)
	assert.Equal(t, 0, tamper.Index)
	assert.Equal(t, "org/repo", tamper.Scope)
}

func TestVerify_DetectsBrokenLink(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend()
	l := New(backend, 3, zap.NewNop())

	for i := 0; i < 3; i++ {
		_, err := l.Append(ctx, "org/repo", result(i))
		require.NoError(t, err)
	}

	// A consistent-looking entry whose previous_hash points elsewhere.
	e := backend.chains["org/repo"][2]
	e.PreviousHash = backend.chains["org/repo"][0].EntryHash
	e.EntryHash = EntryHash(e.Timestamp, e.DataHash, e.PreviousHash)
	backend.chains["org/repo"][2] = e

	err := Verify(backend.chains["org/repo"])

	var tamper *TamperError
	require.ErrorAs(t, err, &tamper)
	assert.Equal(t, 2, tamper.Index)
	assert.Contains(t, tamper.Error(), "previous hash")
}

func TestVerify_RequiresGenesis(t *testing.T) {
	ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC).Format(time.RFC3339Nano)
	e := models.LedgerEntry{Scope: "org/repo", Timestamp: ts, DataHash: "d", PreviousHash: "not-genesis"}
	e.EntryHash = EntryHash(e.Timestamp, e.DataHash, e.PreviousHash)

	err := Verify([]models.LedgerEntry{e})

	var tamper *TamperError
	require.ErrorAs(t, err, &tamper)
	assert.Contains(t, tamper.Reason, "genesis")
}

func TestVerify_Empty(t *testing.T) {
	assert.NoError(t, Verify(nil))
}

func TestDataHash_Deterministic(t *testing.T) {
	h1, err := DataHash(result(40))
	require.NoError(t, err)
	h2, err := DataHash(result(40))
	require.NoError(t, err)
	h3, err := DataHash(result(41))
	require.NoError(t, err)

	assert.Equal(t, h1, h2)
	assert.NotEqual(t, h1, h3)
	assert.Len(t, h1, 64)
}

func TestEntryHash_TimestampCaptured(t *testing.T) {
	fixed := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	l := New(NewMemoryBackend(), 1, zap.NewNop())
	l.now = func() time.Time { return fixed }

	e, err := l.Append(context.Background(), "org/repo", result(0))

	require.NoError(t, err)
	assert.Equal(t, fixed.Format(time.RFC3339Nano), e.Timestamp)
	assert.Equal(t, EntryHash(e.Timestamp, e.DataHash, GenesisHash), e.EntryHash)
}

type conflictingBackend struct {
	*MemoryBackend
	puts int
}

func (c *conflictingBackend) Put(ctx context.Context, e models.LedgerEntry) error {
	c.puts++
	return ErrWriteConflict
}

func TestAppend_BoundedRetry(t *testing.T) {
	backend := &conflictingBackend{MemoryBackend: NewMemoryBackend()}
	l := New(backend, 3, zap.NewNop())
	conflicts := 0
	l.OnConflict(func() { conflicts++ })

	_, err := l.Append(context.Background(), "org/repo", result(0))

	assert.ErrorIs(t, err, ErrWriteConflict)
	assert.Equal(t, 3, backend.puts)
	assert.Equal(t, 3, conflicts)
}

type failingBackend struct {
	*MemoryBackend
}

func (f *failingBackend) Put(context.Context, models.LedgerEntry) error {
	return errors.New("disk full")
}

func TestAppend_BackendErrorNotRetried(t *testing.T) {
	l := New(&failingBackend{NewMemoryBackend()}, 5, zap.NewNop())

	_, err := l.Append(context.Background(), "org/repo", result(0))

	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrWriteConflict)
	assert.Contains(t, err.Error(), "disk full")
}

func TestMemoryBackend_RejectsStaleHead(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryBackend()
	l := New(m, 1, zap.NewNop())
	_, err := l.Append(ctx, "org/repo", result(0))
	require.NoError(t, err)

	stale := models.LedgerEntry{Scope: "org/repo", Seq: 0, PreviousHash: GenesisHash}

	assert.ErrorIs(t, m.Put(ctx, stale), ErrWriteConflict)
}

func TestBadgerBackend_Reopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	b, err := OpenBadger(dir, zap.NewNop())
	require.NoError(t, err)
	l := New(b, 3, zap.NewNop())
	for i := 0; i < 3; i++ {
		_, err := l.Append(ctx, fmt.Sprintf("org/repo-%d", i%2), result(i))
		require.NoError(t, err)
	}
	require.NoError(t, b.Close())

	b, err = OpenBadger(dir, zap.NewNop())
	require.NoError(t, err)
	defer b.Close()
	l = New(b, 3, zap.NewNop())

	entries, err := l.VerifyScope(ctx, "org/repo-0")
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	next, err := l.Append(ctx, "org/repo-0", result(0))
	require.NoError(t, err)
	assert.Equal(t, entries[1].EntryHash, next.PreviousHash)
}
