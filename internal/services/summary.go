package services

import (
    "fmt"
    "strings"

    "github.com/Abhishek-0673/autonomize-activity-monitor/internal/domain"
)

// Summarize renders a deterministic, human-readable digest of the two
// sources' totals. Pure function, no I/O: identical inputs always produce
// the identical string. Missing or malformed nested structure counts as zero
// instead of failing.
func Summarize(user string, jira, github domain.Envelope) string {
    jiraCount := domain.EnvelopeTotal(jira)

    var commitCount, prCount, repoCount int
    if github.Data != nil {
        if act, ok := github.Data.Items.(domain.GitHubActivity); ok {
            commitCount = domain.EnvelopeTotal(act.Commits)
            prCount = domain.EnvelopeTotal(act.PRs)
            repoCount = domain.EnvelopeTotal(act.RecentRepos)
        }
    }

    parts := []string{
        "has " + pluralize(jiraCount, "active JIRA issue"),
        "made " + pluralize(commitCount, "recent commit"),
        "opened " + pluralize(prCount, "pull request"),
        "worked in " + pluralize(repoCount, "active repository"),
    }

    return fmt.Sprintf("Summary: In the recent period, %s %s, and %s.",
        user, strings.Join(parts[:len(parts)-1], ", "), parts[len(parts)-1])
}

// pluralize renders "No X" / "1 X" / "N Xs", with the y→ies rule for nouns
// like "repository".
func pluralize(n int, noun string) string {
    if n == 1 { return "1 " + noun }
    plural := noun + "s"
    if strings.HasSuffix(noun, "y") { plural = strings.TrimSuffix(noun, "y") + "ies" }
    if n == 0 { return "No " + plural }
    return fmt.Sprintf("%d %s", n, plural)
}
