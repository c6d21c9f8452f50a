// Package staticanalysis runs an external static analyzer over the code a
// pull request adds.
package staticanalysis

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/tracker-tv/phi-guard/internal/logger"
	"github.com/tracker-tv/phi-guard/models"
	"go.uber.org/zap"
)

type Analyzer interface {
	Analyze(ctx context.Context, audit *models.AuditContext) ([]models.Finding, error)
}

type runFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

func execRun(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// Semgrep writes the added lines of a diff into a scratch tree, runs semgrep
// on it and maps results back to new-file line numbers.
type Semgrep struct {
	path   string
	config string
	log    *zap.Logger
	run    runFunc
}

func NewSemgrep(path, config string, log *zap.Logger) *Semgrep {
	return &Semgrep{path: path, config: config, log: log, run: execRun}
}

type semgrepOutput struct {
	Results []struct {
		CheckID string `json:"check_id"`
		Path    string `json:"path"`
		Start   struct {
			Line int `json:"line"`
		} `json:"start"`
		Extra struct {
			Message string `json:"message"`
		} `json:"extra"`
	} `json:"results"`
	Errors []json.RawMessage `json:"errors"`
}

func (s *Semgrep) Analyze(ctx context.Context, audit *models.AuditContext) ([]models.Finding, error) {
	defer logger.Trace(s.log, "Semgrep", time.Now())

	files, err := AddedLines(audit.Diff)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return []models.Finding{}, nil
	}

	dir, err := os.MkdirTemp("", "phiguard-semgrep-")
	if err != nil {
		return nil, fmt.Errorf("creating scratch dir: %w", err)
	}
	defer os.RemoveAll(dir)

	byPath := make(map[string]AddedFile, len(files))
	for _, f := range files {
		if !filepath.IsLocal(f.Path) {
			s.log.Warn("skipping non-local diff path", zap.String("path", f.Path))
			continue
		}
		target := filepath.Join(dir, filepath.FromSlash(f.Path))
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return nil, fmt.Errorf("creating %s: %w", f.Path, err)
		}
		if err := os.WriteFile(target, []byte(strings.Join(f.Lines, "\n")+"\n"), 0o600); err != nil {
			return nil, fmt.Errorf("writing %s: %w", f.Path, err)
		}
		byPath[f.Path] = f
	}

	out, runErr := s.run(ctx, s.path, "--config", s.config, "--json", "--quiet", "--metrics=off", dir)
	var parsed semgrepOutput
	if err := json.Unmarshal(out, &parsed); err != nil {
		if runErr != nil {
			return nil, fmt.Errorf("running semgrep: %w", runErr)
		}
		return nil, fmt.Errorf("decoding semgrep output: %w", err)
	}
	if len(parsed.Errors) > 0 {
		s.log.Warn("semgrep reported errors", zap.Int("count", len(parsed.Errors)))
	}

	findings := make([]models.Finding, 0, len(parsed.Results))
	for _, r := range parsed.Results {
		rel, err := filepath.Rel(dir, r.Path)
		if err != nil {
			rel = r.Path
		}
		rel = filepath.ToSlash(rel)

		line := 0
		if f, ok := byPath[rel]; ok && r.Start.Line >= 1 && r.Start.Line <= len(f.LineNumbers) {
			line = f.LineNumbers[r.Start.Line-1]
		}

		findings = append(findings, models.Finding{
			Category: models.CategoryStaticAnalysis,
			Severity: models.SeverityHigh,
			Message:  fmt.Sprintf("%s: %s (%s:%d)", r.CheckID, strings.TrimSpace(r.Extra.Message), rel, line),
			Line:     line,
			Source:   models.SourceStaticAnalysis,
			Label:    r.CheckID,
		})
	}
	return findings, nil
}
