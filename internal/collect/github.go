// Package collect gathers external signals (development activity, notes)
// that feed the health scorer and reports.
package collect

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/go-github/github"
	"github.com/huangsam/compass/internal/contract"
	"github.com/huangsam/compass/schema"
)

// listPageSize is the per-page size for GitHub list calls.
const listPageSize = 100

// GitHubSource collects commit, pull request, and closed issue counts from
// the GitHub API.
type GitHubSource struct {
	client *github.Client
}

var _ contract.ActivitySource = &GitHubSource{} // Compile-time check

// tokenTransport injects a bearer token into every request.
type tokenTransport struct {
	token string
	base  http.RoundTripper
}

// RoundTrip implements http.RoundTripper.
func (t *tokenTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	clone.Header.Set("Authorization", "Bearer "+t.token)
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(clone)
}

// NewGitHubSource returns a source authenticated with the given token.
// An empty token falls back to unauthenticated access, which is subject to
// much lower rate limits.
func NewGitHubSource(token string) *GitHubSource {
	var httpClient *http.Client
	if token != "" {
		httpClient = &http.Client{Transport: &tokenTransport{token: token}}
	}
	return &GitHubSource{client: github.NewClient(httpClient)}
}

// NewGitHubSourceWithClient returns a source backed by a preconfigured
// client, used by tests to point at a fake server.
func NewGitHubSourceWithClient(client *github.Client) *GitHubSource {
	return &GitHubSource{client: client}
}

// FetchActivity aggregates activity across the given owner/repo slugs since
// the given time. Counts are summed over all repos; a failure on any repo
// fails the whole fetch so partial counts never masquerade as low activity.
func (s *GitHubSource) FetchActivity(ctx context.Context, repos []string, since time.Time) (*schema.ActivityCounts, error) {
	total := &schema.ActivityCounts{}

	for _, slug := range repos {
		owner, repo, err := splitRepoSlug(slug)
		if err != nil {
			return nil, err
		}

		commits, err := s.countCommits(ctx, owner, repo, since)
		if err != nil {
			return nil, fmt.Errorf("commits for %s: %w", slug, err)
		}
		total.Commits += commits

		pulls, err := s.countMergedPulls(ctx, owner, repo, since)
		if err != nil {
			return nil, fmt.Errorf("pull requests for %s: %w", slug, err)
		}
		total.PullRequests += pulls

		issues, err := s.countClosedIssues(ctx, owner, repo, since)
		if err != nil {
			return nil, fmt.Errorf("issues for %s: %w", slug, err)
		}
		total.ClosedIssues += issues
	}

	return total, nil
}

// countCommits counts default-branch commits since the given time.
func (s *GitHubSource) countCommits(ctx context.Context, owner, repo string, since time.Time) (int, error) {
	opts := &github.CommitsListOptions{
		Since:       since,
		ListOptions: github.ListOptions{PerPage: listPageSize},
	}

	count := 0
	for {
		commits, resp, err := s.client.Repositories.ListCommits(ctx, owner, repo, opts)
		if err != nil {
			return 0, err
		}
		count += len(commits)
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return count, nil
}

// countMergedPulls counts pull requests merged since the given time. The API
// has no merged-since filter, so closed PRs are listed newest-updated first
// and filtered client-side; pagination stops once updates predate the window.
func (s *GitHubSource) countMergedPulls(ctx context.Context, owner, repo string, since time.Time) (int, error) {
	opts := &github.PullRequestListOptions{
		State:       "closed",
		Sort:        "updated",
		Direction:   "desc",
		ListOptions: github.ListOptions{PerPage: listPageSize},
	}

	count := 0
	for {
		pulls, resp, err := s.client.PullRequests.List(ctx, owner, repo, opts)
		if err != nil {
			return 0, err
		}
		exhausted := false
		for _, pr := range pulls {
			if pr.GetUpdatedAt().Before(since) {
				exhausted = true
				break
			}
			if merged := pr.GetMergedAt(); !merged.IsZero() && !merged.Before(since) {
				count++
			}
		}
		if exhausted || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return count, nil
}

// countClosedIssues counts issues closed since the given time, excluding
// pull requests (the issues API returns both).
func (s *GitHubSource) countClosedIssues(ctx context.Context, owner, repo string, since time.Time) (int, error) {
	opts := &github.IssueListByRepoOptions{
		State:       "closed",
		Since:       since,
		ListOptions: github.ListOptions{PerPage: listPageSize},
	}

	count := 0
	for {
		issues, resp, err := s.client.Issues.ListByRepo(ctx, owner, repo, opts)
		if err != nil {
			return 0, err
		}
		for _, issue := range issues {
			if issue.IsPullRequest() {
				continue
			}
			if closed := issue.GetClosedAt(); !closed.IsZero() && !closed.Before(since) {
				count++
			}
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return count, nil
}

// splitRepoSlug splits "owner/repo" into its parts.
func splitRepoSlug(slug string) (string, string, error) {
	parts := strings.Split(slug, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repo slug %q. expected owner/repo", slug)
	}
	return parts[0], parts[1], nil
}
