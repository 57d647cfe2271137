package query

import (
    "regexp"

    "github.com/Abhishek-0673/autonomize-activity-monitor/internal/domain"
)

type resolver interface {
    Resolve(name string) *domain.Identity
}

var wordRe = regexp.MustCompile(`[A-Za-z]+`)

// ExtractUser tokenizes the question into case-folded alphabetic words and
// returns the first one the resolver recognizes as a known name. First match
// in order of appearance wins: when a sentence mentions several known people,
// only the first is honored.
func ExtractUser(question string, r resolver) string {
    for _, w := range wordRe.FindAllString(question, -1) {
        if id := r.Resolve(w); id != nil { return id.DisplayName }
    }
    return ""
}
