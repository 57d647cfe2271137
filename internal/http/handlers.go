package http

import (
    "context"
    "net/http"
    "strconv"

    "github.com/gin-gonic/gin"
    "github.com/rs/zerolog"

    "github.com/Abhishek-0673/autonomize-activity-monitor/internal/config"
    "github.com/Abhishek-0673/autonomize-activity-monitor/internal/domain"
)

type activityService interface {
    Activity(ctx context.Context, question string, limit, offset int, withAI bool) domain.Envelope
}

type jiraService interface {
    UserIssues(ctx context.Context, accountID string, limit, offset int) domain.Envelope
    IssueDetails(ctx context.Context, issueKey string) domain.Envelope
}

type githubService interface {
    UserActivity(ctx context.Context, username string, limit, offset int, period domain.Period) domain.Envelope
}

type userResolver interface {
    Resolve(name string) *domain.Identity
}

type Handlers struct {
    cfg      config.Config
    log      zerolog.Logger
    activity activityService
    jira     jiraService
    github   githubService
    users    userResolver
}

func NewHandlers(cfg config.Config, log zerolog.Logger, activity activityService, jira jiraService, github githubService, users userResolver) *Handlers {
    return &Handlers{cfg: cfg, log: log, activity: activity, jira: jira, github: github, users: users}
}

func (h *Handlers) Healthz(c *gin.Context) {
    c.JSON(http.StatusOK, gin.H{"ok": true})
}

// clampLimit bounds the page size to [1,50].
func clampLimit(v, def int) int {
    if v == 0 { v = def }
    if v < 1 { return 1 }
    if v > 50 { return 50 }
    return v
}

func intQuery(c *gin.Context, key string, def int) int {
    v := c.Query(key)
    if v == "" { return def }
    n, err := strconv.Atoi(v)
    if err != nil { return def }
    return n
}

// Activity answers POST /api/v1/activity. The envelope always comes back
// with HTTP 200; success/failure lives inside it.
func (h *Handlers) Activity(c *gin.Context) {
    var req struct {
        Question string `json:"question" binding:"required"`
        Limit    int    `json:"limit"`
        Offset   int    `json:"offset"`
    }
    if err := c.ShouldBindJSON(&req); err != nil {
        c.JSON(http.StatusBadRequest, domain.Fail("Invalid request body.", err.Error()))
        return
    }
    limit := clampLimit(req.Limit, 5)
    offset := req.Offset
    if offset < 0 { offset = 0 }
    withAI := c.Query("ai") == "1"

    res := h.activity.Activity(c.Request.Context(), req.Question, limit, offset, withAI)
    c.JSON(http.StatusOK, res)
}

// JiraUserIssues answers GET /api/v1/jira/users/:username/issues.
func (h *Handlers) JiraUserIssues(c *gin.Context) {
    name := c.Param("username")
    ids := h.users.Resolve(name)
    if ids == nil {
        c.JSON(http.StatusOK, domain.Fail("No accountId configured for '"+name+"'.", ""))
        return
    }
    limit := clampLimit(intQuery(c, "limit", 10), 10)
    offset := intQuery(c, "offset", 0)
    if offset < 0 { offset = 0 }
    c.JSON(http.StatusOK, h.jira.UserIssues(c.Request.Context(), ids.JiraAccountID, limit, offset))
}

// JiraIssueDetails answers GET /api/v1/jira/issues/:key.
func (h *Handlers) JiraIssueDetails(c *gin.Context) {
    c.JSON(http.StatusOK, h.jira.IssueDetails(c.Request.Context(), c.Param("key")))
}

// GitHubActivity answers GET /api/v1/github/:username. Pagination accepts
// either offset or page (page = offset/limit + 1).
func (h *Handlers) GitHubActivity(c *gin.Context) {
    username := c.Param("username")
    limit := clampLimit(intQuery(c, "limit", 5), 5)
    offset := intQuery(c, "offset", 0)
    if page := intQuery(c, "page", 0); page > 0 && offset == 0 {
        offset = (page - 1) * limit
    }
    if offset < 0 { offset = 0 }

    period := domain.PeriodNone
    if p := c.Query("period"); p != "" {
        switch domain.Period(p) {
        case domain.PeriodToday, domain.PeriodYesterday, domain.PeriodThisWeek, domain.PeriodLastWeek, domain.PeriodThisMonth, domain.PeriodLastMonth:
            period = domain.Period(p)
        default:
            c.JSON(http.StatusBadRequest, domain.Fail("Unknown period '"+p+"'.", ""))
            return
        }
    }
    c.JSON(http.StatusOK, h.github.UserActivity(c.Request.Context(), username, limit, offset, period))
}
