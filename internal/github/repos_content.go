package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	gh "github.com/google/go-github/v80/github"
)

var ErrNotFound = errors.New("not found")

// GetFileContent returns the decoded content of a single file at ref.
// A missing file yields ErrNotFound; a directory at path is an error.
func (c *client) GetFileContent(ctx context.Context, owner, repo, path, ref string) (string, error) {
	opts := &gh.RepositoryContentGetOptions{Ref: ref}
	file, dir, resp, err := c.repositories.GetContents(ctx, owner, repo, path, opts)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return "", fmt.Errorf("%s@%s: %w", path, ref, ErrNotFound)
		}
		return "", err
	}
	if file == nil {
		if dir != nil {
			return "", fmt.Errorf("%s is a directory", path)
		}
		return "", fmt.Errorf("%s@%s: %w", path, ref, ErrNotFound)
	}
	return file.GetContent()
}
