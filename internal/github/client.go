// Package github wraps the GitHub API client used to report how far an
// ingested digest has fallen behind its source repository.
package github

import (
	"context"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"
	"github.com/google/go-github/v81/github"
)

// Client wraps the GitHub API client with rate limiting support.
type Client struct {
	*github.Client
}

// NewClient creates a new GitHub client with optional authentication and
// rate limiting. If GITHUB_TOKEN is set the client is authenticated for
// higher rate limits; secondary (abuse) limits are waited out automatically.
func NewClient(ctx context.Context) (*Client, error) {
	rateLimiter, err := github_ratelimit.NewRateLimitWaiterClient(nil)
	if err != nil {
		return nil, err
	}

	ghClient := github.NewClient(rateLimiter)
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		ghClient = ghClient.WithAuthToken(token)
	}

	return &Client{Client: ghClient}, nil
}

// CommitsSince counts commits on ref (empty for the default branch) newer
// than since. more is true when the count was capped at one page (100).
func (c *Client) CommitsSince(ctx context.Context, owner, repo, ref string, since time.Time) (count int, more bool, err error) {
	opts := &github.CommitsListOptions{
		SHA:         ref,
		Since:       since,
		ListOptions: github.ListOptions{PerPage: 100},
	}
	commits, resp, err := c.Repositories.ListCommits(ctx, owner, repo, opts)
	if err != nil {
		return 0, false, err
	}
	return len(commits), resp.NextPage != 0, nil
}

// ParseRepoURL extracts owner and repo from a github.com URL. ok is false
// for anything else (other hosts, local paths, short names).
func ParseRepoURL(source string) (owner, repo string, ok bool) {
	u, err := url.Parse(source)
	if err != nil || u.Host != "github.com" {
		return "", "", false
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], strings.TrimSuffix(parts[1], ".git"), true
}
