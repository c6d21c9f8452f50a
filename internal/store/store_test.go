package store

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tracker-tv/phi-guard/models"
	"go.uber.org/zap"
)

func record(id, repo, hash string) models.AuditRecord {
	return models.AuditRecord{
		ID:         id,
		RepoName:   repo,
		PRNumber:   7,
		Status:     models.StatusViolation,
		RiskScore:  40,
		Report:     "report",
		LedgerHash: hash,
		CreatedAt:  time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC),
	}
}

func TestMemoryStore_AppendPreservesOrder(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.Append(ctx, record("1", "org/a", "h1")))
	require.NoError(t, s.Append(ctx, record("2", "org/b", "h2")))
	require.NoError(t, s.Append(ctx, record("3", "org/a", "h3")))

	recs, err := s.ListByRepo(ctx, "org/a", 0)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "1", recs[0].ID)
	assert.Equal(t, "3", recs[1].ID)

	limited, err := s.ListByRepo(ctx, "org/a", 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestMemoryStore_WriteOnce(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.Append(ctx, record("1", "org/a", "h1")))

	err := s.Append(ctx, record("1", "org/a", "h9"))

	var perr *PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "append", perr.Op)

	recs, _ := s.ListByRepo(ctx, "org/a", 0)
	assert.Len(t, recs, 1)
	assert.Equal(t, "h1", recs[0].LedgerHash)
}

func TestMemoryStore_HasLedgerHash(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.Append(ctx, record("1", "org/a", "h1")))

	ok, err := s.HasLedgerHash(ctx, "h1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.HasLedgerHash(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func newMock(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return &PostgresStore{DB: db, Log: zap.NewNop()}, mock
}

func TestPostgresStore_Append(t *testing.T) {
	s, mock := newMock(t)
	rec := record("5b7c1c8e-6f3a-4a53-9b64-2f1c3f1f2a10", "org/a", "h1")

	mock.ExpectExec("INSERT INTO audit_records").
		WithArgs(rec.ID, rec.RepoName, rec.PRNumber, "VIOLATION", rec.RiskScore, rec.Report, rec.LedgerHash, rec.CreatedAt).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := s.Append(context.Background(), rec)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_AppendError(t *testing.T) {
	s, mock := newMock(t)

	mock.ExpectExec("INSERT INTO audit_records").
		WillReturnError(errors.New("connection reset"))

	err := s.Append(context.Background(), record("1", "org/a", "h1"))

	var perr *PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.Contains(t, err.Error(), "connection reset")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ListByRepo(t *testing.T) {
	s, mock := newMock(t)
	created := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"id", "repo_name", "pr_number", "status", "risk_score", "report", "ledger_hash", "created_at"}).
		AddRow("1", "org/a", 7, "CLEAN", 20, "ok", "h1", created).
		AddRow("2", "org/a", 8, "VIOLATION", 40, "bad", "h2", created)

	mock.ExpectQuery(regexp.QuoteMeta("FROM audit_records WHERE repo_name = $1 ORDER BY seq")).
		WithArgs("org/a", 100).
		WillReturnRows(rows)

	recs, err := s.ListByRepo(context.Background(), "org/a", 0)

	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, models.StatusClean, recs[0].Status)
	assert.Equal(t, models.StatusViolation, recs[1].Status)
	assert.Equal(t, 8, recs[1].PRNumber)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_HasLedgerHash(t *testing.T) {
	s, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
		WithArgs("h1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := s.HasLedgerHash(context.Background(), "h1")

	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_EnsureSchema(t *testing.T) {
	s, mock := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS audit_records")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, s.EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
