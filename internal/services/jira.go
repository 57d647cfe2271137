package services

import (
    "context"
    "fmt"
    "strings"
    "time"

    "github.com/Abhishek-0673/autonomize-activity-monitor/internal/domain"
    "github.com/rs/zerolog"
)

type JiraClient interface {
    SearchAssignedIssues(ctx context.Context, accountID string) (map[string]any, error)
    GetIssue(ctx context.Context, key string) (map[string]any, error)
}

type NameResolver interface {
    ResolveReverse(jiraID string) string
}

// JiraService normalizes and paginates Jira data for one user.
type JiraService struct {
    client JiraClient
    names  NameResolver
    log    zerolog.Logger
}

func NewJiraService(client JiraClient, names NameResolver, log zerolog.Logger) *JiraService {
    return &JiraService{client: client, names: names, log: log}
}

// UserIssues fetches the user's open issues as one unpaginated upstream call
// and slices locally. An empty account id means the user is not configured
// for Jira; that is informational, not an upstream fault.
func (s *JiraService) UserIssues(ctx context.Context, accountID string, limit, offset int) domain.Envelope {
    member := s.names.ResolveReverse(accountID)
    if member == "" { member = "This user" }
    if strings.TrimSpace(accountID) == "" {
        return domain.Fail("No Jira account configured for this user.", "")
    }

    raw, err := s.client.SearchAssignedIssues(ctx, accountID)
    if err != nil {
        s.log.Error().Err(err).Str("account_id", accountID).Msg("jira fetch failed")
        return domain.Fail(fmt.Sprintf("Failed to fetch issues for %s.", member), err.Error())
    }

    var issues []domain.Issue
    for _, it := range asSlice(raw["issues"]) {
        im := asMap(it)
        if im == nil { continue }
        fields := asMap(im["fields"])
        issues = append(issues, domain.Issue{
            Key:     toStr(im["key"]),
            Summary: toStr(fields["summary"]),
            Status:  toStr(asMap(fields["status"])["name"]),
            Updated: toStr(fields["updated"]),
        })
    }

    total := len(issues)
    if total == 0 {
        return domain.OK(fmt.Sprintf("No active issues found for %s.", member),
            []domain.Issue{}, domain.Meta{Total: 0, Limit: limit, Offset: offset})
    }
    page := slicePage(issues, limit, offset)
    return domain.OK(fmt.Sprintf("%s has %d active issue(s).", member, total), page, domain.Meta{
        Total:    total,
        Limit:    limit,
        Offset:   offset,
        Returned: len(page),
    })
}

// IssueDetails normalizes a single issue's fields and change history into one
// flat record. Both the flat changelog array and the nested
// {histories:[{items:[...]}]} upstream shape collapse to the same flat list.
func (s *JiraService) IssueDetails(ctx context.Context, issueKey string) domain.Envelope {
    raw, err := s.client.GetIssue(ctx, issueKey)
    if err != nil {
        s.log.Error().Err(err).Str("issue", issueKey).Msg("jira issue fetch failed")
        return domain.Fail(fmt.Sprintf("Failed to fetch issue %s.", issueKey), err.Error())
    }

    fields := asMap(raw["fields"])
    if fields == nil { fields = raw }

    details := domain.IssueDetails{
        IssueKey:    toStr(raw["key"]),
        Summary:     toStr(fields["summary"]),
        Description: flattenDescription(fields["description"]),
        Status:      toStr(asMap(fields["status"])["name"]),
        Priority:    toStr(asMap(fields["priority"])["name"]),
        Assignee:    toStr(asMap(fields["assignee"])["displayName"]),
        Reporter:    toStr(asMap(fields["reporter"])["displayName"]),
        Labels:      toStrings(fields["labels"]),
        IssueType:   toStr(asMap(fields["issuetype"])["name"]),
        Created:     toStr(fields["created"]),
        Updated:     toStr(fields["updated"]),
        Attachments: asSlice(fields["attachment"]),
        Changelog:   normalizeChangelog(raw, fields),
    }
    if details.Attachments == nil { details.Attachments = []any{} }

    return domain.OK(fmt.Sprintf("Issue %s details retrieved.", issueKey), details, domain.Meta{})
}

func normalizeChangelog(raw, fields map[string]any) []domain.ChangelogEntry {
    src := raw["changelog"]
    if src == nil { src = fields["changelog"] }
    out := []domain.ChangelogEntry{}
    switch v := src.(type) {
    case []any:
        // already-flat entries
        for _, c0 := range v {
            c := asMap(c0)
            if c == nil { continue }
            out = append(out, domain.ChangelogEntry{
                Field:   toStr(c["field"]),
                From:    toStr(c["from"]),
                To:      toStr(c["to"]),
                Created: toStr(c["created"]),
            })
        }
    case map[string]any:
        for _, h0 := range asSlice(v["histories"]) {
            h := asMap(h0)
            if h == nil { continue }
            created := toStr(h["created"])
            for _, it0 := range asSlice(h["items"]) {
                item := asMap(it0)
                if item == nil { continue }
                out = append(out, domain.ChangelogEntry{
                    Field:   toStr(item["field"]),
                    From:    toStr(item["fromString"]),
                    To:      toStr(item["toString"]),
                    Created: created,
                })
            }
        }
    }
    return out
}

// flattenDescription reduces an Atlassian rich-text document to plain text.
// Plain strings pass through unchanged.
func flattenDescription(desc any) string {
    switch v := desc.(type) {
    case string:
        return v
    case map[string]any:
        if toStr(v["type"]) != "doc" { return "" }
        var parts []string
        for _, b0 := range asSlice(v["content"]) {
            block := asMap(b0)
            if block == nil || toStr(block["type"]) != "paragraph" { continue }
            for _, i0 := range asSlice(block["content"]) {
                if t := toStr(asMap(i0)["text"]); t != "" { parts = append(parts, t) }
            }
        }
        return strings.Join(parts, " ")
    }
    return ""
}

// ---- shared map/slice plumbing ----

func asMap(v any) map[string]any {
    m, _ := v.(map[string]any)
    return m
}

func asSlice(v any) []any {
    s, _ := v.([]any)
    return s
}

func toStr(v any) string {
    if v == nil { return "" }
    if s, ok := v.(string); ok { return s }
    return fmt.Sprintf("%v", v)
}

func toStrings(v any) []string {
    out := []string{}
    for _, x := range asSlice(v) {
        if s, ok := x.(string); ok { out = append(out, s) }
    }
    return out
}

func toInt(v any) int {
    switch n := v.(type) {
    case float64: return int(n)
    case int: return n
    }
    return 0
}

// slicePage applies offset/limit over the full list so that
// returned == min(limit, max(0, total-offset)).
func slicePage[T any](items []T, limit, offset int) []T {
    if offset < 0 { offset = 0 }
    if offset >= len(items) { return []T{} }
    end := offset + limit
    if limit <= 0 || end > len(items) { end = len(items) }
    return items[offset:end]
}

// parseTimeUTC parses upstream timestamps; naive values are assumed UTC.
func parseTimeUTC(v any) *time.Time {
    s, _ := v.(string)
    if s == "" { return nil }
    layouts := []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05.000-0700", "2006-01-02T15:04:05-0700", "2006-01-02T15:04:05"}
    for _, l := range layouts {
        if t, err := time.Parse(l, s); err == nil {
            tt := t.UTC(); return &tt
        }
    }
    return nil
}
