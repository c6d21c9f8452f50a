package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tracker-tv/phi-guard/internal/ledger"
	"github.com/tracker-tv/phi-guard/internal/metrics"
	"github.com/tracker-tv/phi-guard/internal/notify"
	"github.com/tracker-tv/phi-guard/internal/reviewer"
	"github.com/tracker-tv/phi-guard/internal/risk"
	"github.com/tracker-tv/phi-guard/internal/scanner"
	"github.com/tracker-tv/phi-guard/internal/staticanalysis"
	"github.com/tracker-tv/phi-guard/internal/store"
	"github.com/tracker-tv/phi-guard/models"
	"go.uber.org/zap"
)

// AuditOutcome is everything one run produced.
type AuditOutcome struct {
	Result    models.AuditResult
	Entry     models.LedgerEntry
	Record    models.AuditRecord
	Published bool
}

type AuditService interface {
	Audit(ctx context.Context, req models.AuditRequest) (*AuditOutcome, error)
}

// AuditDeps wires the pipeline. Reviewer, Analyzer and Notifier are
// optional. When Rules is set it chooses the scanner per pull request and
// Scanner is unused.
type AuditDeps struct {
	Context    ContextService
	Scanner    *scanner.Scanner
	Rules      RulesService
	Reviewer   reviewer.Reviewer
	Analyzer   staticanalysis.Analyzer
	Aggregator *risk.Aggregator
	Ledger     *ledger.Ledger
	Store      store.Store
	Notifier   notify.Notifier
	Publisher  Publisher
	Metrics    *metrics.Metrics
	Log        *zap.Logger
}

type auditService struct {
	AuditDeps
	now func() time.Time
}

func NewAuditService(deps AuditDeps) AuditService {
	if deps.Notifier == nil {
		deps.Notifier = notify.Noop{}
	}
	deps.Ledger.OnConflict(deps.Metrics.LedgerConflicts.Inc)
	return &auditService{AuditDeps: deps, now: time.Now}
}

// Audit runs fetch, analysis, aggregation, ledger append, persistence,
// notification and publication for one pull request. Failures up to and
// including persistence abort the run; later ones are only logged.
func (s *auditService) Audit(ctx context.Context, req models.AuditRequest) (*AuditOutcome, error) {
	start := s.now()
	log := s.Log.With(
		zap.String("delivery", req.DeliveryID),
		zap.String("repo", req.FullName()),
		zap.Int("pr", req.Number),
	)

	audit, err := s.Context.Fetch(ctx, req)
	if err != nil {
		s.Metrics.StageFailures.WithLabelValues("fetch").Inc()
		return nil, err
	}

	findings, degraded := s.analyze(ctx, log, audit)

	result := s.Aggregator.Aggregate(findings)
	result.ReviewerDegraded = degraded

	entry, err := s.Ledger.Append(ctx, audit.FullName(), result)
	if err != nil {
		s.Metrics.StageFailures.WithLabelValues("ledger").Inc()
		return nil, fmt.Errorf("appending ledger entry: %w", err)
	}
	s.checkPredecessor(ctx, log, entry)

	report := RenderReport(result, entry)
	record := models.AuditRecord{
		ID:         uuid.NewString(),
		RepoName:   audit.FullName(),
		PRNumber:   audit.Number,
		Status:     result.Status,
		RiskScore:  result.RiskScore,
		Report:     report,
		LedgerHash: entry.EntryHash,
		CreatedAt:  s.now().UTC(),
	}
	if err := s.Store.Append(ctx, record); err != nil {
		s.Metrics.StageFailures.WithLabelValues("persist").Inc()
		log.Error("ledger entry has no persisted record",
			zap.String("entry_hash", entry.EntryHash), zap.Error(err))
		return nil, err
	}

	outcome := &AuditOutcome{Result: result, Entry: entry, Record: record}

	if err := s.Notifier.Notify(ctx, notify.Verdict{
		DeliveryID: req.DeliveryID,
		RecordID:   record.ID,
		Repo:       record.RepoName,
		PRNumber:   record.PRNumber,
		Status:     result.Status,
		RiskScore:  result.RiskScore,
		Findings:   len(result.Findings),
		LedgerHash: entry.EntryHash,
	}); err != nil {
		s.Metrics.StageFailures.WithLabelValues("notify").Inc()
		log.Warn("verdict notification failed", zap.Error(err))
	}

	if err := s.Publisher.Publish(ctx, audit, result, report); err != nil {
		s.Metrics.StageFailures.WithLabelValues("publish").Inc()
		log.Error("review not published", zap.Error(err))
	} else {
		outcome.Published = true
	}

	s.Metrics.Audits.WithLabelValues(string(result.Status)).Inc()
	s.Metrics.AuditDuration.Observe(s.now().Sub(start).Seconds())
	log.Info("audit finished",
		zap.String("status", string(result.Status)),
		zap.Int("risk_score", result.RiskScore),
		zap.Int("findings", len(result.Findings)),
		zap.Int("changed_files", len(audit.Files)),
		zap.Bool("reviewer_degraded", degraded),
		zap.String("entry_hash", entry.EntryHash),
	)
	return outcome, nil
}

// analyze runs the scanner, the reviewer and the static analyzer in
// parallel. Every stage failure is absorbed here, so there is no error to
// return. Findings keep that source order whatever finishes first.
func (s *auditService) analyze(ctx context.Context, log *zap.Logger, audit *models.AuditContext) ([]models.Finding, bool) {
	var (
		scanned, reviewed, analyzed []models.Finding
		degraded                    bool
		wg                          sync.WaitGroup
	)

	wg.Go(func() {
		sc := s.Scanner
		if s.Rules != nil {
			sc = s.Rules.ScannerFor(ctx, audit)
		}
		scanned = sc.Scan(audit.Diff)
	})

	if s.Reviewer != nil {
		wg.Go(func() {
			review, err := s.Reviewer.Review(ctx, audit)
			if err != nil {
				degraded = true
				s.Metrics.ReviewerDegraded.Inc()
				s.Metrics.StageFailures.WithLabelValues("reviewer").Inc()
				log.Warn("reviewer unavailable, using deterministic findings only", zap.Error(err))
				return
			}
			if review.Degraded {
				degraded = true
				s.Metrics.ReviewerDegraded.Inc()
			}
			reviewed = review.Findings
		})
	}

	if s.Analyzer != nil {
		wg.Go(func() {
			found, err := s.Analyzer.Analyze(ctx, audit)
			if err != nil {
				s.Metrics.StageFailures.WithLabelValues("static_analysis").Inc()
				log.Warn("static analysis failed", zap.Error(err))
				return
			}
			analyzed = found
		})
	}

	wg.Wait()

	findings := make([]models.Finding, 0, len(scanned)+len(reviewed)+len(analyzed))
	findings = append(findings, scanned...)
	findings = append(findings, reviewed...)
	findings = append(findings, analyzed...)
	return findings, degraded
}

// checkPredecessor reports a gap when the entry's predecessor was never
// persisted, which happens when an earlier run crashed between the ledger
// append and the store write. A concurrent run for the same repository that
// has not persisted yet is reported too.
func (s *auditService) checkPredecessor(ctx context.Context, log *zap.Logger, entry models.LedgerEntry) {
	if entry.PreviousHash == ledger.GenesisHash {
		return
	}
	ok, err := s.Store.HasLedgerHash(ctx, entry.PreviousHash)
	if err != nil {
		log.Warn("could not check ledger predecessor", zap.Error(err))
		return
	}
	if !ok {
		s.Metrics.ChainGaps.Inc()
		log.Error("ledger predecessor has no persisted record",
			zap.String("previous_hash", entry.PreviousHash),
			zap.Uint64("seq", entry.Seq),
		)
	}
}
