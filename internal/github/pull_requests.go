package github

import (
	"context"

	gh "github.com/google/go-github/v80/github"
)

func (c *client) GetPullRequest(ctx context.Context, owner, repo string, number int) (*gh.PullRequest, error) {
	pr, _, err := c.pullRequests.Get(ctx, owner, repo, number)
	return pr, err
}

// GetDiff returns the unified diff of the pull request.
func (c *client) GetDiff(ctx context.Context, owner, repo string, number int) (string, error) {
	diff, _, err := c.pullRequests.GetRaw(ctx, owner, repo, number, gh.RawOptions{Type: gh.Diff})
	return diff, err
}

func (c *client) CreateReview(ctx context.Context, owner, repo string, number int, body, event string) (*gh.PullRequestReview, error) {
	review := &gh.PullRequestReviewRequest{
		Body:  gh.Ptr(body),
		Event: gh.Ptr(event),
	}
	created, _, err := c.pullRequests.CreateReview(ctx, owner, repo, number, review)
	return created, err
}
