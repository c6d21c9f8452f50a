package github

import (
	"context"
	"net/http"

	gh "github.com/google/go-github/v80/github"
)

// Review events accepted by CreateReview.
const (
	ReviewEventRequestChanges = "REQUEST_CHANGES"
	ReviewEventComment        = "COMMENT"
)

type PullRequestsAdapter interface {
	Get(ctx context.Context, owner, repo string, number int) (*gh.PullRequest, *gh.Response, error)
	GetRaw(ctx context.Context, owner, repo string, number int, opts gh.RawOptions) (string, *gh.Response, error)
	CreateReview(ctx context.Context, owner, repo string, number int, review *gh.PullRequestReviewRequest) (*gh.PullRequestReview, *gh.Response, error)
}

type RepositoriesAdapter interface {
	GetContents(ctx context.Context, owner, repo, path string, opts *gh.RepositoryContentGetOptions) (*gh.RepositoryContent, []*gh.RepositoryContent, *gh.Response, error)
}

type Client interface {
	GetPullRequest(ctx context.Context, owner, repo string, number int) (*gh.PullRequest, error)
	GetDiff(ctx context.Context, owner, repo string, number int) (string, error)
	GetFileContent(ctx context.Context, owner, repo, path, ref string) (string, error)
	CreateReview(ctx context.Context, owner, repo string, number int, body, event string) (*gh.PullRequestReview, error)
}

type client struct {
	github       *gh.Client
	pullRequests PullRequestsAdapter
	repositories RepositoriesAdapter
}

type authTransport struct {
	token string
	base  http.RoundTripper
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("Authorization", "Bearer "+t.token)
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(req)
}

func newHTTPClient(token string) *http.Client {
	if token == "" {
		return nil
	}
	return &http.Client{Transport: &authTransport{token: token}}
}

func New(token string) Client {
	return wrap(gh.NewClient(newHTTPClient(token)))
}

// NewEnterprise targets a GitHub Enterprise (or test) API at baseURL.
func NewEnterprise(token, baseURL string) (Client, error) {
	c, err := gh.NewClient(newHTTPClient(token)).WithEnterpriseURLs(baseURL, baseURL)
	if err != nil {
		return nil, err
	}
	return wrap(c), nil
}

func wrap(c *gh.Client) *client {
	return &client{
		github:       c,
		pullRequests: c.PullRequests,
		repositories: c.Repositories,
	}
}
