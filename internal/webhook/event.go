package webhook

import (
	"encoding/json"
	"errors"
	"fmt"

	gh "github.com/google/go-github/v80/github"
	"github.com/tracker-tv/phi-guard/models"
)

const eventPullRequest = "pull_request"

// ErrIgnored marks a well-formed delivery that does not start an audit.
var ErrIgnored = errors.New("event ignored")

type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed event: %s: %v", e.Reason, e.Err)
	}
	return "malformed event: " + e.Reason
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

var auditedActions = map[string]bool{
	"opened":      true,
	"synchronize": true,
	"reopened":    true,
}

// DecodeEvent turns a pull_request delivery into an audit request.
func DecodeEvent(eventType string, body []byte) (*models.AuditRequest, error) {
	if eventType == "" {
		return nil, &ParseError{Reason: "missing event type"}
	}
	if eventType != eventPullRequest {
		return nil, fmt.Errorf("%w: event %q", ErrIgnored, eventType)
	}

	var event gh.PullRequestEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return nil, &ParseError{Reason: "invalid json", Err: err}
	}

	action := event.GetAction()
	if !auditedActions[action] {
		return nil, fmt.Errorf("%w: action %q", ErrIgnored, action)
	}

	req := &models.AuditRequest{
		Owner:          event.GetRepo().GetOwner().GetLogin(),
		Repo:           event.GetRepo().GetName(),
		Number:         event.GetNumber(),
		Action:         action,
		BaseBranch:     event.GetPullRequest().GetBase().GetRef(),
		HeadSHA:        event.GetPullRequest().GetHead().GetSHA(),
		InstallationID: event.GetInstallation().GetID(),
	}
	if req.Number == 0 {
		req.Number = event.GetPullRequest().GetNumber()
	}

	switch {
	case req.Owner == "" || req.Repo == "":
		return nil, &ParseError{Reason: "missing repository"}
	case req.Number <= 0:
		return nil, &ParseError{Reason: "missing pull request number"}
	case req.BaseBranch == "":
		return nil, &ParseError{Reason: "missing base branch"}
	}
	return req, nil
}
