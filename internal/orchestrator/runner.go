package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"github.com/tracker-tv/phi-guard/internal/service"
	"github.com/tracker-tv/phi-guard/models"
	"go.uber.org/zap"
)

// Runner audits pull requests one after another, outside the webhook path.
type Runner struct {
	audits service.AuditService
	log    *zap.Logger
}

func NewRunner(audits service.AuditService, log *zap.Logger) *Runner {
	return &Runner{audits: audits, log: log}
}

// Run audits every request in order. A failed audit does not stop the
// others; all failures are joined into the returned error.
func (r *Runner) Run(ctx context.Context, reqs []models.AuditRequest) ([]*service.AuditOutcome, error) {
	outcomes := make([]*service.AuditOutcome, 0, len(reqs))
	var errs []error

	for _, req := range reqs {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		out, err := r.audits.Audit(ctx, req)
		if err != nil {
			r.log.Error("audit failed",
				zap.String("repo", req.FullName()),
				zap.Int("pr", req.Number),
				zap.Error(err),
			)
			errs = append(errs, fmt.Errorf("%s#%d: %w", req.FullName(), req.Number, err))
			continue
		}
		outcomes = append(outcomes, out)
	}

	return outcomes, errors.Join(errs...)
}
