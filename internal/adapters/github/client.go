package github

import (
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "io"
    "net/http"
    "net/url"
    "strings"

    "github.com/Abhishek-0673/autonomize-activity-monitor/internal/config"
    "github.com/rs/zerolog"
    "golang.org/x/time/rate"
)

// Client talks to the GitHub REST API. Requests are paced with a local
// limiter to stay clear of GitHub's secondary rate limits.
type Client struct {
    baseURL string
    token   string
    http    *http.Client
    lim     *rate.Limiter
    log     zerolog.Logger
}

func NewClient(cfg config.Config, log zerolog.Logger) *Client {
    rps := cfg.GitHubRPS
    if rps <= 0 { rps = 5 }
    return &Client{
        baseURL: strings.TrimRight(cfg.GitHubBaseURL, "/"),
        token:   cfg.GitHubToken,
        http:    &http.Client{ Timeout: cfg.HTTPTimeout },
        lim:     rate.NewLimiter(rate.Limit(rps), 1),
        log:     log,
    }
}

// getJSON issues a paced GET and decodes the body into out (a *[]any or
// *map[string]any depending on the endpoint).
func (c *Client) getJSON(ctx context.Context, u string, out any) error {
    if err := c.lim.Wait(ctx); err != nil { return err }
    req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
    if err != nil { return err }
    req.Header.Set("Accept", "application/vnd.github+json")
    req.Header.Set("User-Agent", "activity-monitor")
    if c.token != "" { req.Header.Set("Authorization", "token "+c.token) }
    resp, err := c.http.Do(req)
    if err != nil { return err }
    defer resp.Body.Close()
    if resp.StatusCode >= 400 {
        var e struct{ Message string `json:"message"` }
        b, _ := io.ReadAll(resp.Body)
        if json.Unmarshal(b, &e) == nil && e.Message != "" {
            return fmt.Errorf("github api status=%d: %s", resp.StatusCode, e.Message)
        }
        return fmt.Errorf("github api status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(b)))
    }
    return json.NewDecoder(resp.Body).Decode(out)
}

// ListCommits fetches commits for owner/repo, newest first.
func (c *Client) ListCommits(ctx context.Context, owner, repo string) ([]any, error) {
    if owner == "" || repo == "" { return nil, errors.New("github: empty owner or repo") }
    q := url.Values{}
    q.Set("per_page", "100")
    u := fmt.Sprintf("%s/repos/%s/%s/commits?%s", c.baseURL, url.PathEscape(owner), url.PathEscape(repo), q.Encode())
    var out []any
    if err := c.getJSON(ctx, u, &out); err != nil { return nil, err }
    return out, nil
}

// SearchPullRequests finds PRs authored by the user in owner/repo, newest
// first, via the issue search endpoint.
func (c *Client) SearchPullRequests(ctx context.Context, username, repo string) (map[string]any, error) {
    if username == "" { return nil, errors.New("github: empty username") }
    q := url.Values{}
    q.Set("q", fmt.Sprintf("author:%s repo:%s/%s type:pr", username, username, repo))
    q.Set("sort", "created")
    q.Set("order", "desc")
    u := c.baseURL + "/search/issues?" + q.Encode()
    var out map[string]any
    if err := c.getJSON(ctx, u, &out); err != nil { return nil, err }
    return out, nil
}

// ListRecentRepos fetches the user's repositories sorted by most recent push.
func (c *Client) ListRecentRepos(ctx context.Context, username string) ([]any, error) {
    if username == "" { return nil, errors.New("github: empty username") }
    q := url.Values{}
    q.Set("sort", "pushed")
    q.Set("direction", "desc")
    q.Set("per_page", "100")
    u := fmt.Sprintf("%s/users/%s/repos?%s", c.baseURL, url.PathEscape(username), q.Encode())
    c.log.Info().Str("username", username).Msg("github: fetching recent repos")
    var out []any
    if err := c.getJSON(ctx, u, &out); err != nil { return nil, err }
    return out, nil
}
