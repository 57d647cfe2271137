package services

import (
    "context"
    "fmt"
    "sync"

    "github.com/Abhishek-0673/autonomize-activity-monitor/internal/domain"
    "github.com/Abhishek-0673/autonomize-activity-monitor/internal/query"
    "github.com/rs/zerolog"
)

type jiraSource interface {
    UserIssues(ctx context.Context, accountID string, limit, offset int) domain.Envelope
}

type githubSource interface {
    UserActivity(ctx context.Context, username string, limit, offset int, period domain.Period) domain.Envelope
}

type intentDetector interface {
    Detect(ctx context.Context, question string) domain.Intent
}

type userResolver interface {
    Resolve(name string) *domain.Identity
}

// AISummarizer paraphrases the deterministic summary for display. Optional;
// any failure falls back to the deterministic text.
type AISummarizer interface {
    SummarizeActivity(ctx context.Context, user string, jira, github any) (string, error)
}

// ActivityService is the end-to-end orchestrator: parse the question,
// resolve the person, classify intent and period, fetch both sources, and
// shape one response.
type ActivityService struct {
    users   userResolver
    intents intentDetector
    jira    jiraSource
    github  githubSource
    ai      AISummarizer
    log     zerolog.Logger
}

func NewActivityService(users userResolver, intents intentDetector, jira jiraSource, github githubSource, ai AISummarizer, log zerolog.Logger) *ActivityService {
    return &ActivityService{users: users, intents: intents, jira: jira, github: github, ai: ai, log: log}
}

func intentMessage(intent domain.Intent, user string) string {
    switch intent {
    case domain.IntentJiraIssues:
        return fmt.Sprintf("JIRA issues for %s", user)
    case domain.IntentGitHubCommits:
        return fmt.Sprintf("Recent commits by %s", user)
    case domain.IntentGitHubPRs:
        return fmt.Sprintf("Pull requests by %s", user)
    case domain.IntentGitHubRepos:
        return fmt.Sprintf("Repository activity for %s", user)
    }
    return fmt.Sprintf("Activity summary for %s", user)
}

// githubPart extracts one sub-envelope from the fusion envelope, degrading
// to an empty envelope when the fusion itself failed.
func githubPart(github domain.Envelope, pick func(domain.GitHubActivity) domain.Envelope) domain.Envelope {
    if github.Data != nil {
        if act, ok := github.Data.Items.(domain.GitHubActivity); ok { return pick(act) }
    }
    return github
}

// Activity answers a free-text question about a team member. Both sources
// are always fetched regardless of intent so the summary stays accurate; the
// intent only selects which subset becomes the primary payload. Per-source
// failures stay inside their nested envelopes and never abort the other
// source or the overall response.
func (s *ActivityService) Activity(ctx context.Context, question string, limit, offset int, withAI bool) domain.Envelope {
    user := query.ExtractUser(question, s.users)
    if user == "" {
        return domain.Fail("Could not identify the user from your question.", "")
    }

    ids := s.users.Resolve(user)
    if ids == nil {
        // informational, not an error: the name is known but unconfigured
        return domain.OK(fmt.Sprintf("No accountId configured for '%s'.", user), map[string]any{}, map[string]any{})
    }

    intent := s.intents.Detect(ctx, question)
    period := query.DetectPeriod(question)
    s.log.Info().Str("user", user).Str("intent", string(intent)).Str("period", string(period)).Msg("activity: classified")

    // Both fetches are independent; run them concurrently and wait for both.
    var jiraRes, githubRes domain.Envelope
    var wg sync.WaitGroup
    wg.Add(2)
    go func() { defer wg.Done(); jiraRes = s.jira.UserIssues(ctx, ids.JiraAccountID, limit, offset) }()
    go func() { defer wg.Done(); githubRes = s.github.UserActivity(ctx, ids.GitHubUsername, limit, offset, period) }()
    wg.Wait()

    summary := Summarize(user, jiraRes, githubRes)

    builders := map[domain.Intent]func() map[string]any{
        domain.IntentJiraIssues: func() map[string]any {
            return map[string]any{"jira": jiraRes}
        },
        domain.IntentGitHubCommits: func() map[string]any {
            return map[string]any{"commits": githubPart(githubRes, func(a domain.GitHubActivity) domain.Envelope { return a.Commits }), "github": githubRes}
        },
        domain.IntentGitHubPRs: func() map[string]any {
            return map[string]any{"prs": githubPart(githubRes, func(a domain.GitHubActivity) domain.Envelope { return a.PRs }), "github": githubRes}
        },
        domain.IntentGitHubRepos: func() map[string]any {
            return map[string]any{"repos": githubPart(githubRes, func(a domain.GitHubActivity) domain.Envelope { return a.RecentRepos }), "github": githubRes}
        },
    }

    var items map[string]any
    if build, ok := builders[intent]; ok {
        items = build()
    } else {
        items = map[string]any{"jira": jiraRes, "github": githubRes}
    }
    items["summary"] = summary

    if withAI && s.ai != nil {
        if text, err := s.ai.SummarizeActivity(ctx, user, jiraRes, githubRes); err == nil && text != "" {
            items["ai_summary"] = text
        } else if err != nil {
            s.log.Warn().Err(err).Msg("ai summary failed; keeping deterministic summary")
        }
    }

    return domain.OK(intentMessage(intent, user), items, domain.PageMeta{Limit: limit, Offset: offset})
}
