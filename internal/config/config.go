package config

import (
    "encoding/json"
    "log"
    "os"
    "strconv"
    "strings"
    "time"

    "github.com/Abhishek-0673/autonomize-activity-monitor/internal/domain"
)

type Config struct {
    AppEnv   string
    TZ       string
    HTTPAddr string

    JiraBaseURL  string
    JiraEmail    string
    JiraAPIToken string
    JiraProject  string

    GitHubBaseURL string
    GitHubToken   string
    GitHubRepo    string
    GitHubRPS     float64

    OpenAIKey     string
    OpenAIModel   string
    OpenAITimeout time.Duration

    HTTPTimeout time.Duration

    TeamFile string
    Team     []domain.Identity
}

func getenv(key, def string) string {
    v := os.Getenv(key)
    if v == "" { return def }
    return v
}

func dur(key string, def time.Duration) time.Duration {
    v := os.Getenv(key)
    if v == "" { return def }
    d, err := time.ParseDuration(v)
    if err != nil { return def }
    return d
}

func flt(key string, def float64) float64 {
    v := os.Getenv(key)
    if v == "" { return def }
    f, err := strconv.ParseFloat(v, 64)
    if err != nil { return def }
    return f
}

// parseTeam reads "name:jiraAccountId:githubUsername" triples from a csv.
// Empty tracker ids are kept: the consuming adapter decides what an
// unconfigured id means for its tracker.
func parseTeam(csv string) []domain.Identity {
    if csv == "" { return nil }
    parts := strings.Split(csv, ",")
    out := make([]domain.Identity, 0, len(parts))
    for _, p := range parts {
        p = strings.TrimSpace(p)
        if p == "" { continue }
        f := strings.SplitN(p, ":", 3)
        id := domain.Identity{DisplayName: strings.ToLower(strings.TrimSpace(f[0]))}
        if len(f) > 1 { id.JiraAccountID = strings.TrimSpace(f[1]) }
        if len(f) > 2 { id.GitHubUsername = strings.TrimSpace(f[2]) }
        if id.DisplayName != "" { out = append(out, id) }
    }
    return out
}

func Load() Config {
    cfg := Config{
        AppEnv:   getenv("APP_ENV", "dev"),
        TZ:       getenv("APP_TZ", "UTC"),
        HTTPAddr: getenv("HTTP_ADDR", ":8080"),

        JiraBaseURL:  getenv("JIRA_BASE_URL", ""),
        JiraEmail:    getenv("JIRA_EMAIL", ""),
        JiraAPIToken: getenv("JIRA_API_TOKEN", ""),
        JiraProject:  getenv("JIRA_PROJECT", "SCRUM"),

        GitHubBaseURL: getenv("GITHUB_API_HOST_URL", "https://api.github.com"),
        GitHubToken:   getenv("GITHUB_TOKEN", ""),
        GitHubRepo:    getenv("GITHUB_REPO_NAME", "autonomize-activity-monitor"),
        GitHubRPS:     flt("GITHUB_RPS", 5),

        OpenAIKey:     getenv("OPENAI_API_KEY", ""),
        OpenAIModel:   getenv("OPENAI_MODEL", "gpt-4o-mini"),
        OpenAITimeout: dur("OPENAI_TIMEOUT", 15*time.Second),

        HTTPTimeout: dur("HTTP_TIMEOUT", 15*time.Second),

        TeamFile: getenv("TEAM_FILE", ""),
        Team:     parseTeam(getenv("TEAM_MEMBERS", "")),
    }

    // set global timezone if available
    if loc, err := time.LoadLocation(cfg.TZ); err == nil {
        time.Local = loc
    } else {
        log.Printf("warning: cannot load TZ %s: %v", cfg.TZ, err)
    }

    // Optional: load the team map from a JSON file, overriding TEAM_MEMBERS
    if cfg.TeamFile != "" {
        if data, err := os.ReadFile(cfg.TeamFile); err == nil {
            var team []domain.Identity
            if err := json.Unmarshal(data, &team); err == nil && len(team) > 0 {
                for i := range team { team[i].DisplayName = strings.ToLower(strings.TrimSpace(team[i].DisplayName)) }
                cfg.Team = team
            }
        } else {
            log.Printf("warning: cannot read TEAM_FILE %s: %v", cfg.TeamFile, err)
        }
    }
    return cfg
}
