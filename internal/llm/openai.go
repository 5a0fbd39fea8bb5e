package llm

import (
	_ "embed"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"tvenergy/internal/logger"
	"tvenergy/internal/models"
)

//go:embed system_prompt.txt
var systemPrompt string

// ErrNoResponse is returned when the completion carries no choices.
var ErrNoResponse = errors.New("no response from OpenAI")

// Narrator writes a Markdown commentary on the chart datasets.
type Narrator interface {
	Narrate(ctx context.Context, data *models.Datasets) (string, error)
}

// OpenAIClient handles OpenAI API interactions
type OpenAIClient struct {
	client  *openai.Client
	model   string
	timeout time.Duration
	log     *logger.Logger
}

// NewOpenAIClient creates a new OpenAI client
func NewOpenAIClient(apiKey, model string) *OpenAIClient {
	return NewOpenAIClientWithConfig(openai.DefaultConfig(apiKey), model)
}

// NewOpenAIClientWithConfig creates a client with a custom configuration,
// e.g. a different base URL.
func NewOpenAIClientWithConfig(cfg openai.ClientConfig, model string) *OpenAIClient {
	return &OpenAIClient{
		client:  openai.NewClientWithConfig(cfg),
		model:   model,
		timeout: 60 * time.Second,
		log:     logger.Component("llm"),
	}
}

// Narrate asks the model for a commentary on data
func (c *OpenAIClient) Narrate(ctx context.Context, data *models.Datasets) (string, error) {
	if data == nil {
		return "", fmt.Errorf("datasets are required for narration")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: GetSystemPrompt()},
			{Role: openai.ChatMessageRoleUser, Content: BuildPrompt(data)},
		},
		MaxTokens:   800,
		Temperature: 0.3,
	})
	if err != nil {
		c.log.Error("OpenAI API error", err, map[string]interface{}{"model": c.model})
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrNoResponse
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	c.log.Info("Narrative generated", map[string]interface{}{
		"model":    c.model,
		"chars":    len(text),
		"duration": time.Since(start).String(),
	})
	return text, nil
}

// GetSystemPrompt returns the system prompt sent with every request
func GetSystemPrompt() string {
	return strings.TrimSpace(systemPrompt)
}

// BuildPrompt lists the validated datasets as JSON, one section per chart.
// Charts that failed to load are named so the model does not guess.
func BuildPrompt(data *models.Datasets) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## TV energy datasets (generated %s)\n\n", data.GeneratedAt.Format("2006-01-02 15:04 UTC"))

	section := func(title string, v interface{}, empty bool) {
		if empty {
			return
		}
		fmt.Fprintf(&b, "### %s\n```json\n", title)
		if raw, err := json.MarshalIndent(v, "", "  "); err == nil {
			b.Write(raw)
		} else {
			fmt.Fprintf(&b, "error marshaling %s", strings.ToLower(title))
		}
		b.WriteString("\n```\n\n")
	}
	section("55-inch TVs: average power by screen technology (W)", data.Bar, len(data.Bar) == 0)
	section("All sizes: average yearly consumption by screen technology (kWh/year)", data.Donut, len(data.Donut) == 0)
	section("Electricity spot prices by state ($/MWh)", data.Line.Series, len(data.Line.Series) == 0)
	section("Individual models: consumption, star rating and screen size", data.Scatter, len(data.Scatter) == 0)

	if len(data.Errors) > 0 {
		b.WriteString("### Unavailable datasets\n")
		for _, chart := range []string{"bar", "donut", "line", "scatter"} {
			if msg, ok := data.Errors[chart]; ok {
				fmt.Fprintf(&b, "- %s: %s\n", chart, msg)
			}
		}
		b.WriteString("\n")
	}

	b.WriteString("Write the commentary now.")
	return b.String()
}

// StaticNarrator returns fixed text, used in mockup mode.
type StaticNarrator struct {
	Text string
}

// Narrate returns the fixed text.
func (s StaticNarrator) Narrate(ctx context.Context, _ *models.Datasets) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return s.Text, nil
}
