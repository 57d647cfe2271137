package domain

// Intent is the classified category of what a question is asking for.
type Intent string

const (
    IntentJiraIssues    Intent = "JIRA_ISSUES"
    IntentGitHubCommits Intent = "GITHUB_COMMITS"
    IntentGitHubPRs     Intent = "GITHUB_PRS"
    IntentGitHubRepos   Intent = "GITHUB_REPOS"
    IntentFullActivity  Intent = "FULL_ACTIVITY"
)

// Period is a relative date-range keyword detected in a question.
type Period string

const (
    PeriodToday     Period = "today"
    PeriodYesterday Period = "yesterday"
    PeriodThisWeek  Period = "this_week"
    PeriodLastWeek  Period = "last_week"
    PeriodThisMonth Period = "this_month"
    PeriodLastMonth Period = "last_month"
    PeriodNone      Period = "none"
)

// Identity maps a display name to per-tracker account identifiers.
// The table is built once at startup and read-only afterwards.
type Identity struct {
    DisplayName    string `json:"display_name"`
    JiraAccountID  string `json:"jira"`
    GitHubUsername string `json:"github"`
}

// Issue is the normalized Jira list item.
type Issue struct {
    Key     string `json:"key"`
    Summary string `json:"summary"`
    Status  string `json:"status"`
    Updated string `json:"updated"`
}

// ChangelogEntry is one flattened field transition from an issue's history.
type ChangelogEntry struct {
    Field   string `json:"field"`
    From    string `json:"from"`
    To      string `json:"to"`
    Created string `json:"created"`
}

// IssueDetails is the normalized single-issue record.
type IssueDetails struct {
    IssueKey    string           `json:"issue_key"`
    Summary     string           `json:"summary"`
    Description string           `json:"description"`
    Status      string           `json:"status"`
    Priority    string           `json:"priority"`
    Assignee    string           `json:"assignee"`
    Reporter    string           `json:"reporter"`
    Labels      []string         `json:"labels"`
    IssueType   string           `json:"issue_type"`
    Created     string           `json:"created"`
    Updated     string           `json:"updated"`
    Attachments []any            `json:"attachments"`
    Changelog   []ChangelogEntry `json:"changelog"`
}

// Commit is the normalized GitHub commit record.
type Commit struct {
    Repo      string `json:"repo"`
    Message   string `json:"message"`
    Timestamp string `json:"timestamp"`
    URL       string `json:"url"`
    SHA       string `json:"sha"`
}

// PullRequest is the normalized GitHub pull request record.
type PullRequest struct {
    Title string `json:"title"`
    URL   string `json:"url"`
    Repo  string `json:"repo"`
}

// Repo is the normalized GitHub repository record.
type Repo struct {
    Name        string `json:"name"`
    FullName    string `json:"full_name"`
    URL         string `json:"url"`
    Description string `json:"description"`
    LastPushed  string `json:"last_pushed"`
    Stars       int    `json:"stars"`
    Forks       int    `json:"forks"`
}

// GitHubActivity fuses the three GitHub sub-sources. Each member is a full
// envelope so callers can inspect per-source failures independently.
type GitHubActivity struct {
    Commits     Envelope `json:"commits"`
    PRs         Envelope `json:"prs"`
    RecentRepos Envelope `json:"recent_repos"`
}
