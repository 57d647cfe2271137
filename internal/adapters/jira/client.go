package jira

import (
    "bytes"
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "io"
    "net/http"
    "net/url"
    "strings"
    "time"

    "github.com/Abhishek-0673/autonomize-activity-monitor/internal/config"
    "github.com/rs/zerolog"
)

// Client talks to the Jira Cloud REST API (v3). It returns decoded JSON and
// typed errors; all normalization happens in the service layer.
type Client struct {
    baseURL string
    email   string
    token   string
    project string
    http    *http.Client
    log     zerolog.Logger
}

func NewClient(cfg config.Config, log zerolog.Logger) *Client {
    return &Client{
        baseURL: cfg.JiraBaseURL,
        email:   cfg.JiraEmail,
        token:   cfg.JiraAPIToken,
        project: cfg.JiraProject,
        http:    &http.Client{ Timeout: cfg.HTTPTimeout },
        log:     log,
    }
}

func (c *Client) apiURL(path string, q url.Values) string {
    base := strings.TrimRight(c.baseURL, "/")
    if !strings.HasPrefix(path, "/") { path = "/" + path }
    u := base + path
    if len(q) > 0 { u = u + "?" + q.Encode() }
    return u
}

func (c *Client) doJSON(ctx context.Context, method, u string, body any) (map[string]any, error) {
    if c.baseURL == "" { return nil, errors.New("jira: empty baseURL") }
    var payload []byte
    if body != nil {
        b, err := json.Marshal(body)
        if err != nil { return nil, err }
        payload = b
    }
    var lastErr error
    for attempt := 0; attempt < 3; attempt++ {
        var r io.Reader
        if payload != nil { r = bytes.NewReader(payload) }
        req, err := http.NewRequestWithContext(ctx, method, u, r)
        if err != nil { return nil, err }
        req.Header.Set("Accept", "application/json")
        if payload != nil { req.Header.Set("Content-Type", "application/json") }
        if c.email != "" && c.token != "" { req.SetBasicAuth(c.email, c.token) }
        resp, err := c.http.Do(req)
        if err != nil {
            lastErr = err
        } else {
            out, done, err := readResponse(resp)
            if done { return out, err }
            lastErr = err
        }
        // backoff before retrying 429/5xx or transport errors
        time.Sleep(time.Duration(300*(1<<attempt)) * time.Millisecond)
    }
    return nil, lastErr
}

// readResponse decodes the body; done=false means the status is retryable.
func readResponse(resp *http.Response) (map[string]any, bool, error) {
    defer resp.Body.Close()
    if resp.StatusCode >= 300 {
        b, _ := io.ReadAll(resp.Body)
        err := fmt.Errorf("jira api status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(b)))
        if resp.StatusCode == 429 || resp.StatusCode >= 500 { return nil, false, err }
        return nil, true, err
    }
    var out map[string]any
    if err := json.NewDecoder(resp.Body).Decode(&out); err != nil { return nil, true, err }
    return out, true, nil
}

// SearchAssignedIssues fetches the open issues assigned to the account id as
// one unpaginated call; the service slices locally.
func (c *Client) SearchAssignedIssues(ctx context.Context, accountID string) (map[string]any, error) {
    if accountID == "" { return nil, errors.New("jira: empty account id") }
    jql := fmt.Sprintf("project = %s AND assignee = %s AND statusCategory != Done ORDER BY updated DESC", c.project, accountID)
    body := map[string]any{
        "jql":        jql,
        "maxResults": 100,
        "fields":     []string{"summary", "status", "updated"},
    }
    c.log.Info().Str("account_id", accountID).Msg("jira: fetching assigned issues")
    return c.doJSON(ctx, http.MethodPost, c.apiURL("/rest/api/3/search/jql", nil), body)
}

// GetIssue fetches a single issue with full fields and its changelog.
func (c *Client) GetIssue(ctx context.Context, key string) (map[string]any, error) {
    if key == "" { return nil, errors.New("jira: empty issue key") }
    q := url.Values{}
    q.Set("expand", "changelog")
    return c.doJSON(ctx, http.MethodGet, c.apiURL("/rest/api/3/issue/"+url.PathEscape(key), q), nil)
}
