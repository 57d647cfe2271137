package openai

import (
    "context"
    "encoding/json"
    "errors"
    "strings"

    openai "github.com/openai/openai-go/v2"
    "github.com/openai/openai-go/v2/option"
    "github.com/openai/openai-go/v2/shared"
    "github.com/rs/zerolog"

    "github.com/Abhishek-0673/autonomize-activity-monitor/internal/config"
)

type Client struct {
    key   string
    model string
    cli   openai.Client
    log   zerolog.Logger
}

func NewClient(cfg config.Config, log zerolog.Logger) *Client {
    model := cfg.OpenAIModel
    if strings.TrimSpace(model) == "" { model = "gpt-4o-mini" }
    cli := openai.NewClient(option.WithAPIKey(cfg.OpenAIKey), option.WithRequestTimeout(cfg.OpenAITimeout))
    return &Client{ key: cfg.OpenAIKey, model: model, cli: cli, log: log }
}

const classifyPrompt = `Classify the user's question into one of the following intents:

- JIRA_ISSUES
- GITHUB_COMMITS
- GITHUB_PRS
- GITHUB_REPOS
- FULL_ACTIVITY

Return ONLY the intent name.

Question:
`

// ClassifyIntent asks the model for an intent label when keyword rules fail.
// Callers treat any error as "use the default intent".
func (c *Client) ClassifyIntent(ctx context.Context, text string) (string, error) {
    if strings.TrimSpace(c.key) == "" { return "", errors.New("openai: missing key") }
    c.log.Info().Str("model", c.model).Msg("openai ClassifyIntent call")
    params := openai.ChatCompletionNewParams{
        Model: shared.ChatModel(c.model),
        Messages: []openai.ChatCompletionMessageParamUnion{
            openai.UserMessage(classifyPrompt + text),
        },
        MaxTokens: openai.Int(5),
    }
    resp, err := c.cli.Chat.Completions.New(ctx, params)
    if err != nil { return "", err }
    if len(resp.Choices) == 0 { return "", errors.New("openai: no choices") }
    return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

const summarySystem = "You generate extremely short and safe summaries."

const summaryRules = `You generate extremely short bullet summaries for workload/activity.

STRICT RULES:
- Keep summary under 4-5 bullet points.
- Bullets must be very short, max 1 line each.
- NO repo names, NO commit messages, NO descriptions.
- NO dates, NO timestamps.
- NO sensitive details of any kind.
- Only summarize counts and high-level activity.
`

// SummarizeActivity paraphrases the deterministic summary for display. The
// core contract never depends on it: any failure falls back to the
// deterministic text.
func (c *Client) SummarizeActivity(ctx context.Context, user string, jira, github any) (string, error) {
    if strings.TrimSpace(c.key) == "" { return "", errors.New("openai: missing key") }
    c.log.Info().Str("model", c.model).Str("user", user).Msg("openai SummarizeActivity call")
    payload := map[string]any{"user": user, "jira": jira, "github": github}
    userContent := ""
    if b, err := json.Marshal(payload); err == nil { userContent = string(b) }
    params := openai.ChatCompletionNewParams{
        Model: shared.ChatModel(c.model),
        Messages: []openai.ChatCompletionMessageParamUnion{
            openai.SystemMessage(summarySystem),
            openai.UserMessage(summaryRules + "\nData:\n" + userContent),
        },
        MaxTokens: openai.Int(150),
    }
    resp, err := c.cli.Chat.Completions.New(ctx, params)
    if err != nil { return "", err }
    if len(resp.Choices) == 0 { return "", errors.New("openai: no choices") }
    return resp.Choices[0].Message.Content, nil
}
