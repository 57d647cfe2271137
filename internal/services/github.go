package services

import (
    "context"
    "fmt"
    "strings"
    "sync"
    "time"

    "github.com/Abhishek-0673/autonomize-activity-monitor/internal/domain"
    "github.com/Abhishek-0673/autonomize-activity-monitor/internal/query"
    "github.com/rs/zerolog"
)

type GitHubClient interface {
    ListCommits(ctx context.Context, owner, repo string) ([]any, error)
    SearchPullRequests(ctx context.Context, username, repo string) (map[string]any, error)
    ListRecentRepos(ctx context.Context, username string) ([]any, error)
}

// GitHubService normalizes, date-filters and paginates GitHub data for one
// user against the configured repository.
type GitHubService struct {
    client   GitHubClient
    repoName string
    log      zerolog.Logger
    now      func() time.Time
}

func NewGitHubService(client GitHubClient, repoName string, log zerolog.Logger) *GitHubService {
    return &GitHubService{client: client, repoName: repoName, log: log, now: time.Now}
}

// UserCommits fetches all commits for the configured repo, filters them by
// date and slices locally. A relative period and explicit since/until bounds
// are both accepted; explicit bounds are resolved last and overwrite the side
// they name, so callers should supply one or the other, not both.
func (s *GitHubService) UserCommits(ctx context.Context, username string, limit, offset int, period domain.Period, since, until *time.Time) domain.Envelope {
    if strings.TrimSpace(username) == "" {
        return domain.Fail("No GitHub username configured for this user.", "")
    }
    raw, err := s.client.ListCommits(ctx, username, s.repoName)
    if err != nil {
        s.log.Error().Err(err).Str("username", username).Msg("github commits fetch failed")
        return domain.Fail(fmt.Sprintf("Failed to fetch commits for %s.", username), err.Error())
    }

    from, to := query.ResolveRange(period, s.now())
    if since != nil { t := since.UTC(); from = &t }
    if until != nil { t := until.UTC(); to = &t }

    filtered := filterCommitsByDate(raw, from, to)
    total := len(filtered)
    page := slicePage(filtered, limit, offset)

    commits := make([]domain.Commit, 0, len(page))
    for _, it := range page {
        im := asMap(it)
        commit := asMap(im["commit"])
        commits = append(commits, domain.Commit{
            Repo:      username + "/" + s.repoName,
            Message:   toStr(commit["message"]),
            Timestamp: toStr(asMap(commit["author"])["date"]),
            URL:       toStr(im["html_url"]),
            SHA:       toStr(im["sha"]),
        })
    }

    meta := domain.CommitMeta{
        Meta:  domain.Meta{Total: total, Limit: limit, Offset: offset, Returned: len(commits)},
        Since: isoOrNil(from),
        Until: isoOrNil(to),
    }
    if period != domain.PeriodNone && period != "" {
        p := string(period)
        meta.Period = &p
    }
    return domain.OK(fmt.Sprintf("Found %d commit(s) for %s.", total, username), commits, meta)
}

// filterCommitsByDate keeps commits whose author date T satisfies
// since <= T <= until, comparing in UTC. Naive upstream timestamps are
// assumed UTC; commits without a timestamp are dropped when a bound is set.
func filterCommitsByDate(items []any, since, until *time.Time) []any {
    if since == nil && until == nil { return items }
    filtered := make([]any, 0, len(items))
    for _, it := range items {
        im := asMap(it)
        ts := parseTimeUTC(asMap(asMap(im["commit"])["author"])["date"])
        if ts == nil { continue }
        if since != nil && ts.Before(*since) { continue }
        if until != nil && ts.After(*until) { continue }
        filtered = append(filtered, it)
    }
    return filtered
}

func isoOrNil(t *time.Time) *string {
    if t == nil { return nil }
    s := t.UTC().Format(time.RFC3339)
    return &s
}

// UserPullRequests fetches the user's authored PRs for the configured repo
// and slices locally.
func (s *GitHubService) UserPullRequests(ctx context.Context, username string, limit, offset int) domain.Envelope {
    if strings.TrimSpace(username) == "" {
        return domain.Fail("No GitHub username configured for this user.", "")
    }
    raw, err := s.client.SearchPullRequests(ctx, username, s.repoName)
    if err != nil {
        s.log.Error().Err(err).Str("username", username).Msg("github prs fetch failed")
        return domain.Fail(fmt.Sprintf("Failed to fetch pull requests for %s.", username), err.Error())
    }

    items := asSlice(raw["items"])
    total := len(items)
    page := slicePage(items, limit, offset)

    prs := make([]domain.PullRequest, 0, len(page))
    for _, it := range page {
        im := asMap(it)
        prs = append(prs, domain.PullRequest{
            Title: toStr(im["title"]),
            URL:   toStr(im["html_url"]),
            Repo:  username + "/" + s.repoName,
        })
    }
    return domain.OK(fmt.Sprintf("Found %d pull request(s) for %s.", total, username), prs, domain.Meta{
        Total:    total,
        Limit:    limit,
        Offset:   offset,
        Returned: len(prs),
    })
}

// RecentRepos fetches the user's repositories sorted by most recent push and
// slices locally.
func (s *GitHubService) RecentRepos(ctx context.Context, username string, limit, offset int) domain.Envelope {
    if strings.TrimSpace(username) == "" {
        return domain.Fail("No GitHub username configured for this user.", "")
    }
    raw, err := s.client.ListRecentRepos(ctx, username)
    if err != nil {
        s.log.Error().Err(err).Str("username", username).Msg("github repos fetch failed")
        return domain.Fail(fmt.Sprintf("Failed to fetch repositories for %s.", username), err.Error())
    }

    total := len(raw)
    page := slicePage(raw, limit, offset)

    repos := make([]domain.Repo, 0, len(page))
    for _, it := range page {
        im := asMap(it)
        repos = append(repos, domain.Repo{
            Name:        toStr(im["name"]),
            FullName:    toStr(im["full_name"]),
            URL:         toStr(im["html_url"]),
            Description: toStr(im["description"]),
            LastPushed:  toStr(im["pushed_at"]),
            Stars:       toInt(im["stargazers_count"]),
            Forks:       toInt(im["forks_count"]),
        })
    }
    return domain.OK(fmt.Sprintf("Found %d repositor%s for %s.", total, iesOrY(total), username), repos, domain.Meta{
        Total:    total,
        Limit:    limit,
        Offset:   offset,
        Returned: len(repos),
    })
}

func iesOrY(n int) string {
    if n == 1 { return "y" }
    return "ies"
}

// UserActivity fuses commits, PRs and recent repos into one envelope. The
// three sub-fetches are independent and run concurrently; each failure stays
// inside its own nested envelope.
func (s *GitHubService) UserActivity(ctx context.Context, username string, limit, offset int, period domain.Period) domain.Envelope {
    var act domain.GitHubActivity
    var wg sync.WaitGroup
    wg.Add(3)
    go func() { defer wg.Done(); act.Commits = s.UserCommits(ctx, username, limit, offset, period, nil, nil) }()
    go func() { defer wg.Done(); act.PRs = s.UserPullRequests(ctx, username, limit, offset) }()
    go func() { defer wg.Done(); act.RecentRepos = s.RecentRepos(ctx, username, limit, offset) }()
    wg.Wait()

    return domain.OK(fmt.Sprintf("GitHub activity for %s.", username), act, domain.PageMeta{Limit: limit, Offset: offset})
}
