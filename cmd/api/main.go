package main

import (
    "os"
    "os/signal"
    "syscall"
    "time"

    "github.com/Abhishek-0673/autonomize-activity-monitor/internal/adapters/github"
    "github.com/Abhishek-0673/autonomize-activity-monitor/internal/adapters/jira"
    "github.com/Abhishek-0673/autonomize-activity-monitor/internal/adapters/openai"
    "github.com/Abhishek-0673/autonomize-activity-monitor/internal/config"
    httpapi "github.com/Abhishek-0673/autonomize-activity-monitor/internal/http"
    "github.com/Abhishek-0673/autonomize-activity-monitor/internal/identity"
    "github.com/Abhishek-0673/autonomize-activity-monitor/internal/logger"
    "github.com/Abhishek-0673/autonomize-activity-monitor/internal/query"
    "github.com/Abhishek-0673/autonomize-activity-monitor/internal/services"
)

func main() {
    cfg := config.Load()
    log := logger.New(cfg)

    // Identity table: read-only after this point
    resolver := identity.NewResolver(cfg.Team)
    if len(cfg.Team) == 0 {
        log.Warn().Msg("no team members configured; set TEAM_MEMBERS or TEAM_FILE")
    }

    // Adapters
    jc := jira.NewClient(cfg, log)
    gh := github.NewClient(cfg, log)
    llm := openai.NewClient(cfg, log)

    // Services
    intents := query.NewClassifier(llm, log)
    jiraSvc := services.NewJiraService(jc, resolver, log)
    githubSvc := services.NewGitHubService(gh, cfg.GitHubRepo, log)
    activitySvc := services.NewActivityService(resolver, intents, jiraSvc, githubSvc, llm, log)

    router := httpapi.NewRouter(cfg, log, activitySvc, jiraSvc, githubSvc, resolver)

    errCh := make(chan error, 1)
    go func() { errCh <- router.Run(cfg.HTTPAddr) }()
    log.Info().Str("addr", cfg.HTTPAddr).Msg("listening")

    sigCh := make(chan os.Signal, 1)
    signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

    select {
    case <-sigCh:
        log.Info().Msg("shutting down...")
    case err := <-errCh:
        if err != nil { log.Error().Err(err).Msg("http server error") }
    }

    time.Sleep(500 * time.Millisecond)
}
