package reviewer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tracker-tv/phi-guard/models"
	"go.uber.org/zap"
)

type fakeModel struct {
	answer string
	err    error
	delay  time.Duration
	user   string
}

func (f *fakeModel) Complete(ctx context.Context, system, user string) (string, error) {
	f.user = user
	if f.delay > 0 {
		// Ignores ctx on purpose: the adapter must still return on time.
		time.Sleep(f.delay)
	}
	return f.answer, f.err
}

var auditCtx = &models.AuditContext{
	Owner:       "clinic",
	Repo:        "ehr",
	Number:      7,
	Title:       "Add vitals endpoint",
	Description: "Stores heart rate readings",
	Diff:        "+println!(\"{}\", patient.heart_rate);",
	Files:       []string{"src/vitals.rs", "src/api.rs"},
}

func newAdapter(m Model, timeout time.Duration) *Adapter {
	return NewAdapter(m, timeout, zap.NewNop())
}

func TestReview_Structured(t *testing.T) {
	m := &fakeModel{answer: `{"status":"VIOLATION","risk_score":80,"issues":[
		{"category":"PHI_LOGGING","severity":"HIGH","message":"heart rate printed"},
		{"category":"consent_missing","severity":"low","message":"no consent check"},
		{"category":"SEMGREP_POLICY","severity":"weird","message":"policy hit"}
	]}`}

	review, err := newAdapter(m, time.Second).Review(context.Background(), auditCtx)

	require.NoError(t, err)
	assert.False(t, review.Degraded)
	require.Len(t, review.Findings, 3)

	assert.Equal(t, models.CategoryPHILogging, review.Findings[0].Category)
	assert.Equal(t, models.SeverityHigh, review.Findings[0].Severity)
	assert.Equal(t, models.SourceReviewer, review.Findings[0].Source)
	assert.Empty(t, review.Findings[0].Label)

	assert.Equal(t, models.CategoryOther, review.Findings[1].Category)
	assert.Equal(t, "consent_missing", review.Findings[1].Label)
	assert.Equal(t, models.SeverityLow, review.Findings[1].Severity)

	assert.Equal(t, models.CategoryStaticAnalysis, review.Findings[2].Category)
	assert.Equal(t, models.SeverityMedium, review.Findings[2].Severity)
}

func TestReview_PromptCarriesPullRequestContext(t *testing.T) {
	m := &fakeModel{answer: `{"status":"CLEAN","risk_score":0,"issues":[]}`}

	_, err := newAdapter(m, time.Second).Review(context.Background(), auditCtx)

	require.NoError(t, err)
	assert.Contains(t, m.user, "PR Title: Add vitals endpoint")
	assert.Contains(t, m.user, "PR Description: Stores heart rate readings")
	assert.Contains(t, m.user, "Changed Files: src/vitals.rs, src/api.rs")
	assert.Contains(t, m.user, auditCtx.Diff)
}

func TestUserPrompt_WithoutFiles(t *testing.T) {
	prompt := UserPrompt(&models.AuditContext{Title: "t", Description: "d", Diff: "+x"})

	assert.NotContains(t, prompt, "Changed Files")
	assert.Equal(t, "PR Title: t\nPR Description: d\n\nDiff Content:\n+x", prompt)
}

func TestReview_CleanHasNoFindings(t *testing.T) {
	m := &fakeModel{answer: "```json\n{\"status\":\"CLEAN\",\"risk_score\":0,\"issues\":[]}\n```"}

	review, err := newAdapter(m, time.Second).Review(context.Background(), auditCtx)

	require.NoError(t, err)
	assert.Empty(t, review.Findings)
}

func TestReview_ViolationWithoutIssues(t *testing.T) {
	m := &fakeModel{answer: `{"status":"VIOLATION","risk_score":50}`}

	review, err := newAdapter(m, time.Second).Review(context.Background(), auditCtx)

	require.NoError(t, err)
	require.Len(t, review.Findings, 1)
	assert.Equal(t, VerdictLabel, review.Findings[0].Label)
	assert.Equal(t, models.SeverityHigh, review.Findings[0].Severity)
}

func TestReview_FreeText(t *testing.T) {
	tests := []struct {
		name     string
		answer   string
		findings int
	}{
		{"sentinel", "Found a privacy violation: the diff logs the patient name.", 1},
		{"no sentinel", "Looks fine to me.", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			review, err := newAdapter(&fakeModel{answer: tt.answer}, time.Second).Review(context.Background(), auditCtx)

			require.NoError(t, err)
			assert.True(t, review.Degraded)
			require.Len(t, review.Findings, tt.findings)
			if tt.findings == 1 {
				assert.Equal(t, models.CategoryOther, review.Findings[0].Category)
				assert.Equal(t, models.SeverityHigh, review.Findings[0].Severity)
				assert.Equal(t, UnstructuredLabel, review.Findings[0].Label)
			}
		})
	}
}

func TestReview_Failures(t *testing.T) {
	tests := []struct {
		name  string
		model *fakeModel
	}{
		{"transport error", &fakeModel{err: errors.New("connection refused")}},
		{"empty answer", &fakeModel{answer: "   "}},
		{"malformed json", &fakeModel{answer: `{"status":`}},
		{"score out of range", &fakeModel{answer: `{"status":"CLEAN","risk_score":400}`}},
		{"issue without message", &fakeModel{answer: `{"status":"VIOLATION","issues":[{"category":"PHI_LOGGING"}]}`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			review, err := newAdapter(tt.model, time.Second).Review(context.Background(), auditCtx)

			assert.ErrorIs(t, err, ErrReviewer)
			assert.Empty(t, review.Findings)
		})
	}
}

func TestReview_Timeout(t *testing.T) {
	m := &fakeModel{answer: `{"status":"CLEAN"}`, delay: 500 * time.Millisecond}

	start := time.Now()
	_, err := newAdapter(m, 20*time.Millisecond).Review(context.Background(), auditCtx)

	assert.ErrorIs(t, err, ErrReviewer)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 400*time.Millisecond)
}
