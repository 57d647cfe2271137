package services

import (
    "testing"

    "github.com/Abhishek-0673/autonomize-activity-monitor/internal/domain"
)

func activityEnvelope(commits, prs, repos int) domain.Envelope {
    act := domain.GitHubActivity{
        Commits:     domain.OK("", []domain.Commit{}, domain.CommitMeta{Meta: domain.Meta{Total: commits}}),
        PRs:         domain.OK("", []domain.PullRequest{}, domain.Meta{Total: prs}),
        RecentRepos: domain.OK("", []domain.Repo{}, domain.Meta{Total: repos}),
    }
    return domain.OK("", act, domain.PageMeta{})
}

func TestSummarize_Counts(t *testing.T) {
    jira := domain.OK("", []domain.Issue{}, domain.Meta{Total: 3})
    got := Summarize("abhishek", jira, activityEnvelope(5, 1, 2))
    want := "Summary: In the recent period, abhishek has 3 active JIRA issues, made 5 recent commits, opened 1 pull request, and worked in 2 active repositories."
    if got != want { t.Fatalf("got %q\nwant %q", got, want) }
}

func TestSummarize_AllZero(t *testing.T) {
    jira := domain.OK("", []domain.Issue{}, domain.Meta{})
    got := Summarize("dana", jira, activityEnvelope(0, 0, 0))
    want := "Summary: In the recent period, dana has No active JIRA issues, made No recent commits, opened No pull requests, and worked in No active repositories."
    if got != want { t.Fatalf("got %q\nwant %q", got, want) }
}

func TestSummarize_SingularRepository(t *testing.T) {
    jira := domain.OK("", []domain.Issue{}, domain.Meta{Total: 1})
    got := Summarize("dana", jira, activityEnvelope(1, 0, 1))
    want := "Summary: In the recent period, dana has 1 active JIRA issue, made 1 recent commit, opened No pull requests, and worked in 1 active repository."
    if got != want { t.Fatalf("got %q\nwant %q", got, want) }
}

// Failed or malformed envelopes degrade to zero counts, never to a panic or
// a missing summary.
func TestSummarize_DegradesToZero(t *testing.T) {
    jira := domain.Fail("Failed to fetch issues for dana.", "boom")
    github := domain.Fail("token expired", "401")
    got := Summarize("dana", jira, github)
    want := "Summary: In the recent period, dana has No active JIRA issues, made No recent commits, opened No pull requests, and worked in No active repositories."
    if got != want { t.Fatalf("got %q\nwant %q", got, want) }

    // github payload that is not a fusion shape counts as zero too
    odd := domain.OK("", map[string]any{"surprise": true}, domain.Meta{Total: 9})
    if Summarize("dana", jira, odd) != want { t.Fatal("non-fusion github payload must count as zero") }
}

func TestSummarize_Deterministic(t *testing.T) {
    jira := domain.OK("", []domain.Issue{}, domain.Meta{Total: 2})
    gh := activityEnvelope(4, 2, 1)
    if Summarize("abhishek", jira, gh) != Summarize("abhishek", jira, gh) {
        t.Fatal("identical inputs produced different summaries")
    }
}

func TestPluralize(t *testing.T) {
    cases := []struct {
        n    int
        noun string
        want string
    }{
        {0, "recent commit", "No recent commits"},
        {1, "recent commit", "1 recent commit"},
        {4, "recent commit", "4 recent commits"},
        {0, "active repository", "No active repositories"},
        {2, "active repository", "2 active repositories"},
    }
    for _, c := range cases {
        if got := pluralize(c.n, c.noun); got != c.want {
            t.Fatalf("pluralize(%d, %q) = %q, want %q", c.n, c.noun, got, c.want)
        }
    }
}
