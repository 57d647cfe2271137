package http

import (
    "github.com/gin-gonic/gin"
    "github.com/rs/zerolog"

    "github.com/Abhishek-0673/autonomize-activity-monitor/internal/config"
)

func NewRouter(cfg config.Config, log zerolog.Logger, activity activityService, jira jiraService, github githubService, users userResolver) *gin.Engine {
    if cfg.AppEnv != "dev" { gin.SetMode(gin.ReleaseMode) }
    r := gin.New()
    r.Use(gin.Recovery())
    r.Use(func(c *gin.Context){
        c.Next()
        log.Info().Str("m", c.Request.Method).Str("p", c.FullPath()).Int("s", c.Writer.Status()).Msg("http")
    })

    h := NewHandlers(cfg, log, activity, jira, github, users)

    r.GET("/healthz", h.Healthz)
    v1 := r.Group("/api/v1")
    v1.POST("/activity", h.Activity)
    v1.GET("/jira/users/:username/issues", h.JiraUserIssues)
    v1.GET("/jira/issues/:key", h.JiraIssueDetails)
    v1.GET("/github/:username", h.GitHubActivity)

    return r
}
