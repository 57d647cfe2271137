package identity

import (
    "strings"

    "github.com/Abhishek-0673/autonomize-activity-monitor/internal/domain"
)

// Resolver holds the static name → tracker-ids table. It is built once at
// startup and never mutated afterwards, so concurrent reads are safe.
type Resolver struct {
    byName map[string]domain.Identity
    names  []string
}

func NewResolver(team []domain.Identity) *Resolver {
    r := &Resolver{byName: make(map[string]domain.Identity, len(team))}
    for _, id := range team {
        key := strings.ToLower(strings.TrimSpace(id.DisplayName))
        if key == "" { continue }
        id.DisplayName = key
        if _, dup := r.byName[key]; !dup { r.names = append(r.names, key) }
        r.byName[key] = id
    }
    return r
}

// Resolve looks up a display name, case-insensitive and whitespace-trimmed.
// Unknown names return nil: "user not found" is a normal outcome, not a
// fault. An identity with an empty tracker id is still returned; the
// consuming adapter decides what an unconfigured id means.
func (r *Resolver) Resolve(name string) *domain.Identity {
    id, ok := r.byName[strings.ToLower(strings.TrimSpace(name))]
    if !ok { return nil }
    return &id
}

// ResolveReverse scans the table for a Jira account id and returns the
// canonical display name. Used only to personalize messages.
func (r *Resolver) ResolveReverse(jiraID string) string {
    if jiraID == "" { return "" }
    for _, name := range r.names {
        if r.byName[name].JiraAccountID == jiraID { return name }
    }
    return ""
}
