package orchestrator

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tracker-tv/phi-guard/internal/service"
	serviceMocks "github.com/tracker-tv/phi-guard/internal/service/mocks"
	"github.com/tracker-tv/phi-guard/models"
	"go.uber.org/zap"
)

func TestRunner_AuditsInOrder(t *testing.T) {
	first := models.AuditRequest{Owner: "clinic", Repo: "ehr", Number: 1}
	second := models.AuditRequest{Owner: "clinic", Repo: "billing", Number: 2}

	auditSvc := serviceMocks.NewMockAuditService(t)
	auditSvc.
		EXPECT().
		Audit(context.Background(), first).
		Once().
		Return(&service.AuditOutcome{Result: models.AuditResult{Status: models.StatusViolation}}, nil)
	auditSvc.
		EXPECT().
		Audit(context.Background(), second).
		Once().
		Return(&service.AuditOutcome{Result: models.AuditResult{Status: models.StatusClean}}, nil)

	outcomes, err := NewRunner(auditSvc, zap.NewNop()).Run(context.Background(), []models.AuditRequest{first, second})

	require.NoError(t, err)
	require.Len(t, outcomes, 2)
	assert.Equal(t, models.StatusViolation, outcomes[0].Result.Status)
	assert.Equal(t, models.StatusClean, outcomes[1].Result.Status)
}

func TestRunner_ContinuesAfterFailure(t *testing.T) {
	broken := models.AuditRequest{Owner: "clinic", Repo: "ehr", Number: 1}
	fine := models.AuditRequest{Owner: "clinic", Repo: "ehr", Number: 2}
	fetchErr := errors.New("404 Not Found")

	auditSvc := serviceMocks.NewMockAuditService(t)
	auditSvc.EXPECT().Audit(context.Background(), broken).Once().Return(nil, fetchErr)
	auditSvc.EXPECT().Audit(context.Background(), fine).Once().Return(&service.AuditOutcome{}, nil)

	outcomes, err := NewRunner(auditSvc, zap.NewNop()).Run(context.Background(), []models.AuditRequest{broken, fine})

	assert.ErrorIs(t, err, fetchErr)
	assert.Contains(t, err.Error(), "clinic/ehr#1")
	assert.Len(t, outcomes, 1)
}

func TestRunner_StopsWhenCancelled(t *testing.T) {
	auditSvc := serviceMocks.NewMockAuditService(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outcomes, err := NewRunner(auditSvc, zap.NewNop()).Run(ctx, []models.AuditRequest{req})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, outcomes)
}
