package query

import (
    "context"
    "regexp"
    "strings"

    "github.com/Abhishek-0673/autonomize-activity-monitor/internal/domain"
    "github.com/rs/zerolog"
)

// FallbackClassifier is the external capability consulted when every
// deterministic layer fails. It may error; callers then use the default.
type FallbackClassifier interface {
    ClassifyIntent(ctx context.Context, text string) (string, error)
}

var (
    // Domain signals: do these words put the question in a tracker's
    // vocabulary at all? A signal alone never picks a sub-intent.
    jiraSignalRe   = regexp.MustCompile(`\b(jira|tickets?|issues?|assigned)\b`)
    githubSignalRe = regexp.MustCompile(`\b(github|commits?|prs?|pull requests?|repos?|pushed)\b`)

    // Specific keywords that pin a sub-intent inside a single domain.
    jiraIssuesRe = regexp.MustCompile(`\b(tickets?|issues?|assigned)\b`)
    ghCommitsRe  = regexp.MustCompile(`\bcommits?\b`)
    ghPRsRe      = regexp.MustCompile(`\b(prs?|pull requests?|pulls?)\b`)
    ghReposRe    = regexp.MustCompile(`\b(repos?|repositor(?:y|ies)|pushed|contribut(?:ed|ions?))\b`)

    generalActivityRe = regexp.MustCompile(`\b(activity|status|update|progress|summary|working on)\b|what\s+is\s+\w+\s+doing`)
)

// Fixed priority order for the full keyword-table pass.
var intentTable = []struct {
    intent domain.Intent
    re     *regexp.Regexp
}{
    {domain.IntentJiraIssues, regexp.MustCompile(`\b(jira|tickets?|issues?|assigned)\b`)},
    {domain.IntentGitHubCommits, ghCommitsRe},
    {domain.IntentGitHubPRs, ghPRsRe},
    {domain.IntentGitHubRepos, ghReposRe},
    {domain.IntentFullActivity, generalActivityRe},
}

var validIntents = map[string]domain.Intent{
    string(domain.IntentJiraIssues):    domain.IntentJiraIssues,
    string(domain.IntentGitHubCommits): domain.IntentGitHubCommits,
    string(domain.IntentGitHubPRs):     domain.IntentGitHubPRs,
    string(domain.IntentGitHubRepos):   domain.IntentGitHubRepos,
    string(domain.IntentFullActivity):  domain.IntentFullActivity,
}

type Classifier struct {
    fallback FallbackClassifier
    log      zerolog.Logger
}

func NewClassifier(fallback FallbackClassifier, log zerolog.Logger) *Classifier {
    return &Classifier{fallback: fallback, log: log}
}

// Detect classifies the question. Layers 1-4 are pure and deterministic;
// only the final fallback may do I/O, and it runs at most once, only when
// nothing else matched.
func (c *Classifier) Detect(ctx context.Context, question string) domain.Intent {
    q := strings.ToLower(question)

    jiraHit := jiraSignalRe.MatchString(q)
    githubHit := githubSignalRe.MatchString(q)

    // Exactly one domain plus a keyword that uniquely pins its sub-intent.
    // A bare domain mention ("anything in jira?") falls through to the table.
    if jiraHit && !githubHit {
        if jiraIssuesRe.MatchString(q) { return domain.IntentJiraIssues }
    }
    if githubHit && !jiraHit {
        if in, ok := uniqueGitHubIntent(q); ok { return in }
    }

    // No tracker vocabulary at all: general activity phrasing short-circuits.
    if !jiraHit && !githubHit && generalActivityRe.MatchString(q) {
        return domain.IntentFullActivity
    }

    for _, row := range intentTable {
        if row.re.MatchString(q) { return row.intent }
    }

    return c.classifyWithFallback(ctx, question)
}

// uniqueGitHubIntent reports the sub-intent when exactly one GitHub keyword
// category matches.
func uniqueGitHubIntent(q string) (domain.Intent, bool) {
    var hits []domain.Intent
    if ghCommitsRe.MatchString(q) { hits = append(hits, domain.IntentGitHubCommits) }
    if ghPRsRe.MatchString(q) { hits = append(hits, domain.IntentGitHubPRs) }
    if ghReposRe.MatchString(q) { hits = append(hits, domain.IntentGitHubRepos) }
    if len(hits) == 1 { return hits[0], true }
    return "", false
}

func (c *Classifier) classifyWithFallback(ctx context.Context, question string) domain.Intent {
    if c.fallback == nil { return domain.IntentFullActivity }
    label, err := c.fallback.ClassifyIntent(ctx, question)
    if err != nil {
        c.log.Warn().Err(err).Msg("intent fallback failed; defaulting to FULL_ACTIVITY")
        return domain.IntentFullActivity
    }
    if in, ok := validIntents[strings.TrimSpace(label)]; ok { return in }
    return domain.IntentFullActivity
}
