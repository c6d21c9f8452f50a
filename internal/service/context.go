package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	gh "github.com/google/go-github/v80/github"
	"github.com/sourcegraph/go-diff/diff"
	"github.com/tracker-tv/phi-guard/internal/github"
	"github.com/tracker-tv/phi-guard/internal/logger"
	"github.com/tracker-tv/phi-guard/models"
	"go.uber.org/zap"
)

type FetchError struct {
	Repo   string
	Number int
	Op     string
	// RateLimitReset is set when GitHub refused the call for rate limiting.
	RateLimitReset time.Time
	Err            error
}

func (e *FetchError) Error() string {
	msg := fmt.Sprintf("fetching %s #%d: %s", e.Repo, e.Number, e.Op)
	if !e.RateLimitReset.IsZero() {
		msg += fmt.Sprintf(" (rate limited until %s)", e.RateLimitReset.Format(time.RFC3339))
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

type ContextService interface {
	Fetch(ctx context.Context, req models.AuditRequest) (*models.AuditContext, error)
}

type contextService struct {
	gh  github.Client
	log *zap.Logger
}

func NewContextService(ghClient github.Client, log *zap.Logger) ContextService {
	return &contextService{gh: ghClient, log: log}
}

// Fetch loads the pull request metadata and diff. It does not retry.
func (s *contextService) Fetch(ctx context.Context, req models.AuditRequest) (*models.AuditContext, error) {
	defer logger.Trace(s.log, "FetchContext", time.Now())

	pr, err := s.gh.GetPullRequest(ctx, req.Owner, req.Repo, req.Number)
	if err != nil {
		return nil, newFetchError(req, "get pull request", err)
	}

	raw, err := s.gh.GetDiff(ctx, req.Owner, req.Repo, req.Number)
	if err != nil {
		return nil, newFetchError(req, "get diff", err)
	}
	if strings.TrimSpace(raw) == "" {
		return nil, newFetchError(req, "get diff", errors.New("empty diff"))
	}

	baseRef := pr.GetBase().GetRef()
	if baseRef == "" {
		baseRef = req.BaseBranch
	}

	owner, repo := canonicalRepo(pr, req)

	return &models.AuditContext{
		Owner:       owner,
		Repo:        repo,
		Number:      req.Number,
		BaseRef:     baseRef,
		Title:       pr.GetTitle(),
		Description: pr.GetBody(),
		Diff:        raw,
		Files:       s.changedFiles(raw),
	}, nil
}

func (s *contextService) changedFiles(raw string) []string {
	fileDiffs, err := diff.NewMultiFileDiffReader(strings.NewReader(raw)).ReadAllFiles()
	if err != nil {
		s.log.Warn("could not list changed files", zap.Error(err))
		return []string{}
	}

	files := make([]string, 0, len(fileDiffs))
	for _, fd := range fileDiffs {
		name := fd.NewName
		if name == "/dev/null" {
			name = fd.OrigName
		}
		name = strings.TrimPrefix(strings.TrimPrefix(name, "a/"), "b/")
		if name != "" {
			files = append(files, name)
		}
	}
	return files
}

// canonicalRepo returns the repository name as GitHub spells it, so that
// requests differing only in case share one ledger chain.
func canonicalRepo(pr *gh.PullRequest, req models.AuditRequest) (string, string) {
	owner, repo, ok := strings.Cut(pr.GetBase().GetRepo().GetFullName(), "/")
	if !ok || owner == "" || repo == "" {
		return req.Owner, req.Repo
	}
	return owner, repo
}

func newFetchError(req models.AuditRequest, op string, err error) *FetchError {
	fe := &FetchError{Repo: req.FullName(), Number: req.Number, Op: op, Err: err}

	var rle *gh.RateLimitError
	if errors.As(err, &rle) {
		fe.RateLimitReset = rle.Rate.Reset.Time
	}
	var arle *gh.AbuseRateLimitError
	if errors.As(err, &arle) && arle.RetryAfter != nil {
		fe.RateLimitReset = time.Now().Add(*arle.RetryAfter)
	}
	return fe
}
