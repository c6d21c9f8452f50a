package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tracker-tv/phi-guard/internal/github"
	"github.com/tracker-tv/phi-guard/internal/logger"
	"github.com/tracker-tv/phi-guard/models"
	"go.uber.org/zap"
)

type PublishError struct {
	Repo   string
	Number int
	Err    error
}

func (e *PublishError) Error() string {
	return fmt.Sprintf("publishing review on %s #%d: %v", e.Repo, e.Number, e.Err)
}

func (e *PublishError) Unwrap() error {
	return e.Err
}

type Publisher interface {
	Publish(ctx context.Context, audit *models.AuditContext, result models.AuditResult, report string) error
}

type publisher struct {
	gh  github.Client
	log *zap.Logger
}

func NewPublisher(ghClient github.Client, log *zap.Logger) Publisher {
	return &publisher{gh: ghClient, log: log}
}

// Publish posts report as a review: changes are requested on a violation,
// otherwise the report is a plain comment.
func (p *publisher) Publish(ctx context.Context, audit *models.AuditContext, result models.AuditResult, report string) error {
	defer logger.Trace(p.log, "Publish", time.Now())

	event := github.ReviewEventComment
	if result.Status == models.StatusViolation {
		event = github.ReviewEventRequestChanges
	}

	if _, err := p.gh.CreateReview(ctx, audit.Owner, audit.Repo, audit.Number, report, event); err != nil {
		return &PublishError{Repo: audit.FullName(), Number: audit.Number, Err: err}
	}
	return nil
}

// RenderReport formats the audit outcome as the markdown body of the review.
func RenderReport(result models.AuditResult, entry models.LedgerEntry) string {
	var b strings.Builder

	icon := "✅"
	if result.Status == models.StatusViolation {
		icon = "🚫"
	}
	fmt.Fprintf(&b, "## %s PHI audit: %s\n\n", icon, result.Status)
	fmt.Fprintf(&b, "**Risk score:** %d/100\n\n", result.RiskScore)

	if len(result.Findings) == 0 {
		b.WriteString("No findings.\n")
	} else {
		b.WriteString("| Severity | Category | Line | Source | Message |\n")
		b.WriteString("|---|---|---|---|---|\n")
		for _, f := range result.Findings {
			line := "-"
			if f.Line > 0 {
				line = fmt.Sprint(f.Line)
			}
			category := string(f.Category)
			if f.Label != "" {
				category += " (" + f.Label + ")"
			}
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
				f.Severity, category, line, f.Source, escapeCell(f.Message))
		}
	}

	if result.ReviewerDegraded {
		b.WriteString("\n> The contextual reviewer was unavailable or answered without structure; only deterministic findings are complete.\n")
	}

	if entry.EntryHash != "" {
		fmt.Fprintf(&b, "\n<sub>Ledger entry `%s` (previous `%s`)</sub>\n", entry.EntryHash, entry.PreviousHash)
	}
	return b.String()
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
