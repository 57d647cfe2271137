package http

import (
    "context"
    "encoding/json"
    "net/http"
    "net/http/httptest"
    "strings"
    "testing"

    "github.com/gin-gonic/gin"
    "github.com/rs/zerolog"

    "github.com/Abhishek-0673/autonomize-activity-monitor/internal/config"
    "github.com/Abhishek-0673/autonomize-activity-monitor/internal/domain"
)

type recordedCall struct {
    question      string
    limit, offset int
    withAI        bool
    period        domain.Period
}

type fakeActivity struct{ last recordedCall }

func (f *fakeActivity) Activity(ctx context.Context, question string, limit, offset int, withAI bool) domain.Envelope {
    f.last = recordedCall{question: question, limit: limit, offset: offset, withAI: withAI}
    return domain.OK("ok", map[string]any{}, domain.PageMeta{Limit: limit, Offset: offset})
}

type fakeJira struct{ last recordedCall }

func (f *fakeJira) UserIssues(ctx context.Context, accountID string, limit, offset int) domain.Envelope {
    f.last = recordedCall{question: accountID, limit: limit, offset: offset}
    return domain.OK("ok", []domain.Issue{}, domain.Meta{Limit: limit, Offset: offset})
}

func (f *fakeJira) IssueDetails(ctx context.Context, issueKey string) domain.Envelope {
    f.last = recordedCall{question: issueKey}
    return domain.OK("ok", domain.IssueDetails{IssueKey: issueKey}, domain.Meta{})
}

type fakeGitHub struct{ last recordedCall }

func (f *fakeGitHub) UserActivity(ctx context.Context, username string, limit, offset int, period domain.Period) domain.Envelope {
    f.last = recordedCall{question: username, limit: limit, offset: offset, period: period}
    return domain.OK("ok", domain.GitHubActivity{}, domain.PageMeta{Limit: limit, Offset: offset})
}

type fakeResolver map[string]domain.Identity

func (f fakeResolver) Resolve(name string) *domain.Identity {
    if id, ok := f[name]; ok { return &id }
    return nil
}

func newTestRouter() (*gin.Engine, *fakeActivity, *fakeJira, *fakeGitHub) {
    gin.SetMode(gin.TestMode)
    activity := &fakeActivity{}
    jira := &fakeJira{}
    github := &fakeGitHub{}
    users := fakeResolver{"abhishek": {DisplayName: "abhishek", JiraAccountID: "acc-1"}}
    r := NewRouter(config.Config{AppEnv: "dev"}, zerolog.Nop(), activity, jira, github, users)
    return r, activity, jira, github
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
    var rd *strings.Reader
    if body == "" { rd = strings.NewReader("") } else { rd = strings.NewReader(body) }
    req := httptest.NewRequest(method, path, rd)
    if body != "" { req.Header.Set("Content-Type", "application/json") }
    w := httptest.NewRecorder()
    r.ServeHTTP(w, req)
    return w
}

func TestHealthz(t *testing.T) {
    r, _, _, _ := newTestRouter()
    w := do(r, http.MethodGet, "/healthz", "")
    if w.Code != http.StatusOK { t.Fatalf("status = %d", w.Code) }
}

func TestActivity_BadBodyIs400(t *testing.T) {
    r, _, _, _ := newTestRouter()
    w := do(r, http.MethodPost, "/api/v1/activity", `{"limit": 5}`)
    if w.Code != http.StatusBadRequest { t.Fatalf("status = %d, want 400", w.Code) }
    var env domain.Envelope
    if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil { t.Fatal(err) }
    if env.Success { t.Fatal("success=true for missing question") }
}

func TestActivity_ClampsLimitAndDefaults(t *testing.T) {
    r, activity, _, _ := newTestRouter()

    w := do(r, http.MethodPost, "/api/v1/activity", `{"question":"what is abhishek doing","limit":500,"offset":-3}`)
    if w.Code != http.StatusOK { t.Fatalf("status = %d", w.Code) }
    if activity.last.limit != 50 { t.Fatalf("limit = %d, want clamp to 50", activity.last.limit) }
    if activity.last.offset != 0 { t.Fatalf("offset = %d, want floor 0", activity.last.offset) }

    do(r, http.MethodPost, "/api/v1/activity", `{"question":"what is abhishek doing"}`)
    if activity.last.limit != 5 { t.Fatalf("default limit = %d, want 5", activity.last.limit) }
    if activity.last.withAI { t.Fatal("withAI set without ?ai=1") }

    do(r, http.MethodPost, "/api/v1/activity?ai=1", `{"question":"what is abhishek doing"}`)
    if !activity.last.withAI { t.Fatal("?ai=1 not propagated") }
}

func TestJiraUserIssues_ResolvesAccountID(t *testing.T) {
    r, _, jira, _ := newTestRouter()
    w := do(r, http.MethodGet, "/api/v1/jira/users/abhishek/issues?limit=3&offset=6", "")
    if w.Code != http.StatusOK { t.Fatalf("status = %d", w.Code) }
    if jira.last.question != "acc-1" { t.Fatalf("account id = %q", jira.last.question) }
    if jira.last.limit != 3 || jira.last.offset != 6 { t.Fatalf("call = %+v", jira.last) }
}

func TestJiraUserIssues_UnknownUser(t *testing.T) {
    r, _, jira, _ := newTestRouter()
    w := do(r, http.MethodGet, "/api/v1/jira/users/ghost/issues", "")
    if w.Code != http.StatusOK { t.Fatalf("status = %d, want 200 with failure envelope", w.Code) }
    var env domain.Envelope
    if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil { t.Fatal(err) }
    if env.Success { t.Fatal("success=true for unknown user") }
    if env.Message != "No accountId configured for 'ghost'." { t.Fatalf("message = %q", env.Message) }
    if jira.last.question != "" { t.Fatal("service called for unknown user") }
}

func TestGitHubActivity_PageTranslatesToOffset(t *testing.T) {
    r, _, _, github := newTestRouter()
    do(r, http.MethodGet, "/api/v1/github/abhialien?page=3&limit=5", "")
    if github.last.offset != 10 { t.Fatalf("offset = %d, want (3-1)*5", github.last.offset) }

    // explicit offset wins over page
    do(r, http.MethodGet, "/api/v1/github/abhialien?page=3&offset=7&limit=5", "")
    if github.last.offset != 7 { t.Fatalf("offset = %d, want explicit 7", github.last.offset) }
}

func TestGitHubActivity_PeriodValidation(t *testing.T) {
    r, _, _, github := newTestRouter()

    do(r, http.MethodGet, "/api/v1/github/abhialien?period=last_week", "")
    if github.last.period != domain.PeriodLastWeek { t.Fatalf("period = %q", github.last.period) }

    w := do(r, http.MethodGet, "/api/v1/github/abhialien?period=fortnight", "")
    if w.Code != http.StatusBadRequest { t.Fatalf("status = %d, want 400 for unknown period", w.Code) }

    do(r, http.MethodGet, "/api/v1/github/abhialien", "")
    if github.last.period != domain.PeriodNone { t.Fatalf("period = %q, want none", github.last.period) }
}
