// Package reviewer asks an external language model for contextual findings
// and turns its answer into models.Finding values.
package reviewer

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/tracker-tv/phi-guard/models"
	"go.uber.org/zap"
)

// ErrReviewer wraps every reviewer failure. Callers degrade to the
// deterministic findings instead of failing the audit.
var ErrReviewer = errors.New("reviewer failed")

const (
	// UnstructuredLabel tags the finding raised from a free-text answer.
	UnstructuredLabel = "reviewer-unstructured"
	// VerdictLabel tags the finding raised when the reviewer reports a
	// violation without listing issues.
	VerdictLabel = "reviewer-verdict"

	sentinel = "VIOLATION"
)

//go:embed prompts/system.txt
var systemPrompt string

// Model is a chat completion backend.
type Model interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

type Reviewer interface {
	Review(ctx context.Context, audit *models.AuditContext) (Review, error)
}

type Review struct {
	Findings []models.Finding
	// Degraded is set when the answer was free text instead of the
	// structured format.
	Degraded bool
}

type response struct {
	Status    string  `json:"status" validate:"omitempty,oneof=CLEAN VIOLATION clean violation"`
	RiskScore int     `json:"risk_score" validate:"gte=0,lte=100"`
	Issues    []issue `json:"issues" validate:"dive"`
}

type issue struct {
	Category string `json:"category" validate:"required"`
	Severity string `json:"severity"`
	Message  string `json:"message" validate:"required"`
}

type Adapter struct {
	model    Model
	timeout  time.Duration
	validate *validator.Validate
	log      *zap.Logger
}

func NewAdapter(model Model, timeout time.Duration, log *zap.Logger) *Adapter {
	return &Adapter{
		model:    model,
		timeout:  timeout,
		validate: validator.New(),
		log:      log,
	}
}

type completion struct {
	text string
	err  error
}

// Review asks the model about audit and never takes longer than the
// adapter's timeout, even if the model ignores ctx.
func (a *Adapter) Review(ctx context.Context, audit *models.AuditContext) (Review, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	done := make(chan completion, 1)
	go func() {
		text, err := a.model.Complete(ctx, systemPrompt, UserPrompt(audit))
		done <- completion{text: text, err: err}
	}()

	select {
	case <-ctx.Done():
		return Review{}, fmt.Errorf("%w: %w", ErrReviewer, ctx.Err())
	case c := <-done:
		if c.err != nil {
			return Review{}, fmt.Errorf("%w: %w", ErrReviewer, c.err)
		}
		return a.Parse(c.text)
	}
}

// UserPrompt renders the pull request for the model. The changed-file list
// is omitted when the diff could not be split into files.
func UserPrompt(audit *models.AuditContext) string {
	var b strings.Builder
	fmt.Fprintf(&b, "PR Title: %s\nPR Description: %s\n", audit.Title, audit.Description)
	if len(audit.Files) > 0 {
		fmt.Fprintf(&b, "Changed Files: %s\n", strings.Join(audit.Files, ", "))
	}
	fmt.Fprintf(&b, "\nDiff Content:\n%s", audit.Diff)
	return b.String()
}

// Parse converts a raw model answer into findings.
func (a *Adapter) Parse(raw string) (Review, error) {
	text := stripFence(strings.TrimSpace(raw))
	if text == "" {
		return Review{}, fmt.Errorf("%w: empty answer", ErrReviewer)
	}

	if !strings.HasPrefix(text, "{") {
		a.log.Warn("reviewer answered in free text")
		review := Review{Findings: []models.Finding{}, Degraded: true}
		if strings.Contains(strings.ToUpper(text), sentinel) {
			review.Findings = append(review.Findings, models.Finding{
				Category: models.CategoryOther,
				Severity: models.SeverityHigh,
				Message:  "Reviewer reported a violation without structured details",
				Source:   models.SourceReviewer,
				Label:    UnstructuredLabel,
			})
		}
		return review, nil
	}

	var resp response
	if err := json.Unmarshal([]byte(text), &resp); err != nil {
		return Review{}, fmt.Errorf("%w: malformed answer: %w", ErrReviewer, err)
	}
	if err := a.validate.Struct(resp); err != nil {
		return Review{}, fmt.Errorf("%w: invalid answer: %w", ErrReviewer, err)
	}

	findings := make([]models.Finding, 0, len(resp.Issues))
	for _, is := range resp.Issues {
		f := models.Finding{
			Message: is.Message,
			Source:  models.SourceReviewer,
		}
		var ok bool
		if f.Category, ok = models.ParseCategory(is.Category); !ok {
			f.Label = is.Category
		}
		f.Severity, _ = models.ParseSeverity(is.Severity)
		findings = append(findings, f)
	}

	if len(findings) == 0 && strings.EqualFold(resp.Status, sentinel) {
		findings = append(findings, models.Finding{
			Category: models.CategoryOther,
			Severity: models.SeverityHigh,
			Message:  "Reviewer reported a violation without listing issues",
			Source:   models.SourceReviewer,
			Label:    VerdictLabel,
		})
	}
	return Review{Findings: findings}, nil
}

func stripFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
