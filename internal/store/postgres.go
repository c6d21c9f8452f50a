package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/tracker-tv/phi-guard/internal/logger"
	"github.com/tracker-tv/phi-guard/models"
	"go.uber.org/zap"
)

const schema = `CREATE TABLE IF NOT EXISTS audit_records (
	seq         BIGSERIAL PRIMARY KEY,
	id          UUID NOT NULL UNIQUE,
	repo_name   TEXT NOT NULL,
	pr_number   INTEGER NOT NULL,
	status      TEXT NOT NULL,
	risk_score  INTEGER NOT NULL,
	report      TEXT NOT NULL,
	ledger_hash TEXT NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS audit_records_repo_idx ON audit_records (repo_name, seq);
CREATE INDEX IF NOT EXISTS audit_records_ledger_idx ON audit_records (ledger_hash)`

// PostgresStore keeps records in an insert-only table; seq preserves
// insertion order.
type PostgresStore struct {
	DB  *sql.DB
	Log *zap.Logger
}

// OpenPostgres connects with lib/pq and validates the connection with Ping.
func OpenPostgres(ctx context.Context, dsn string, log *zap.Logger) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open conn: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return &PostgresStore{DB: db, Log: log}, nil
}

func (p *PostgresStore) Close() error {
	return p.DB.Close()
}

func (p *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := p.DB.ExecContext(ctx, schema); err != nil {
		return &PersistenceError{Op: "schema", Err: err}
	}
	return nil
}

func (p *PostgresStore) Append(ctx context.Context, rec models.AuditRecord) error {
	defer logger.Trace(p.Log, "PostgresStore.Append", time.Now())

	const query = `INSERT INTO audit_records (
		id, repo_name, pr_number, status, risk_score, report, ledger_hash, created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := p.DB.ExecContext(ctx, query,
		rec.ID,
		rec.RepoName,
		rec.PRNumber,
		string(rec.Status),
		rec.RiskScore,
		rec.Report,
		rec.LedgerHash,
		rec.CreatedAt,
	)
	if err != nil {
		return &PersistenceError{Op: "append", Err: err}
	}
	return nil
}

func (p *PostgresStore) ListByRepo(ctx context.Context, repo string, limit int) ([]models.AuditRecord, error) {
	const query = `SELECT id, repo_name, pr_number, status, risk_score, report, ledger_hash, created_at
		FROM audit_records WHERE repo_name = $1 ORDER BY seq LIMIT $2`

	if limit <= 0 {
		limit = 100
	}
	rows, err := p.DB.QueryContext(ctx, query, repo, limit)
	if err != nil {
		return nil, &PersistenceError{Op: "list", Err: err}
	}
	defer rows.Close()

	var out []models.AuditRecord
	for rows.Next() {
		var r models.AuditRecord
		var status string
		if err := rows.Scan(&r.ID, &r.RepoName, &r.PRNumber, &status, &r.RiskScore, &r.Report, &r.LedgerHash, &r.CreatedAt); err != nil {
			return nil, &PersistenceError{Op: "list", Err: err}
		}
		r.Status = models.Status(status)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, &PersistenceError{Op: "list", Err: err}
	}
	return out, nil
}

func (p *PostgresStore) HasLedgerHash(ctx context.Context, hash string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM audit_records WHERE ledger_hash = $1)`

	var ok bool
	if err := p.DB.QueryRowContext(ctx, query, hash).Scan(&ok); err != nil {
		return false, &PersistenceError{Op: "lookup", Err: err}
	}
	return ok, nil
}
