package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tracker-tv/phi-guard/internal/github"
	"github.com/tracker-tv/phi-guard/internal/logger"
	"github.com/tracker-tv/phi-guard/internal/policy"
	"github.com/tracker-tv/phi-guard/internal/scanner"
	"github.com/tracker-tv/phi-guard/models"
	"go.uber.org/zap"
)

// RulesPath is where a repository keeps its extra scanner rules.
const RulesPath = ".github/phiguard-rules.json"

// RulesService picks the scanner for one pull request: the base rule pack,
// extended by the repository's own rules when it has valid ones.
type RulesService interface {
	ScannerFor(ctx context.Context, audit *models.AuditContext) *scanner.Scanner
}

type rulesService struct {
	gh       github.Client
	base     []models.Rule
	fallback *scanner.Scanner
	log      *zap.Logger
}

func NewRulesService(ghClient github.Client, base []models.Rule, log *zap.Logger) (RulesService, error) {
	fallback, err := scanner.New(base)
	if err != nil {
		return nil, fmt.Errorf("building base scanner: %w", err)
	}
	return &rulesService{gh: ghClient, base: base, fallback: fallback, log: log}, nil
}

// ScannerFor never fails: any problem with the repository rules is logged
// and the base scanner is used. Rules are read from the base branch, never
// from the pull request head.
func (s *rulesService) ScannerFor(ctx context.Context, audit *models.AuditContext) *scanner.Scanner {
	defer logger.Trace(s.log, "LoadRepositoryRules", time.Now())

	if audit.BaseRef == "" {
		return s.fallback
	}
	log := s.log.With(zap.String("repo", audit.FullName()), zap.String("ref", audit.BaseRef))

	content, err := s.gh.GetFileContent(ctx, audit.Owner, audit.Repo, RulesPath, audit.BaseRef)
	if err != nil {
		if errors.Is(err, github.ErrNotFound) {
			return s.fallback
		}
		log.Warn("could not load repository rules", zap.Error(err))
		return s.fallback
	}

	extra, err := policy.FromJSON([]byte(content))
	if err != nil {
		log.Warn("ignoring invalid repository rules", zap.String("path", RulesPath), zap.Error(err))
		return s.fallback
	}
	rules, err := s.merge(extra)
	if err != nil {
		log.Warn("ignoring invalid repository rules", zap.String("path", RulesPath), zap.Error(err))
		return s.fallback
	}
	sc, err := scanner.New(rules)
	if err != nil {
		log.Warn("ignoring invalid repository rules", zap.String("path", RulesPath), zap.Error(err))
		return s.fallback
	}

	log.Debug("repository rules loaded", zap.Int("extra_rules", len(extra)))
	return sc
}

// merge appends extra after the base pack. Extra rules may not reuse a
// base rule id.
func (s *rulesService) merge(extra []models.Rule) ([]models.Rule, error) {
	seen := make(map[string]struct{}, len(s.base)+len(extra))
	for _, r := range s.base {
		seen[r.ID] = struct{}{}
	}
	for _, r := range extra {
		if _, ok := seen[r.ID]; ok {
			return nil, fmt.Errorf("duplicate rule id %s", r.ID)
		}
		seen[r.ID] = struct{}{}
	}

	rules := make([]models.Rule, 0, len(s.base)+len(extra))
	rules = append(rules, s.base...)
	return append(rules, extra...), nil
}
