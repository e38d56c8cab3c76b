package subagent

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net"
	"os"
	"strings"
	"text/template"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const (
	maxRetries     = 3
	initialBackoff = 1 * time.Second

	// defaultModelName names the model used for code review, question
	// resolution, and reflection, overridable via ANTHROPIC_MODEL.
	defaultModelName = "claude-sonnet-4-5"
)

// errAPIKeyRequired is returned when no API key can be found.
var errAPIKeyRequired = errors.New("subagent: ANTHROPIC_API_KEY not set")

// AnthropicClient is the production SubAgent, backed by
// github.com/anthropics/anthropic-sdk-go.
type AnthropicClient struct {
	client        anthropic.Client
	model         anthropic.Model
	reviewTmpl    *template.Template
	maxRetries    int
	initialBackoff time.Duration
}

// NewAnthropicClient builds a client using ANTHROPIC_API_KEY from the
// environment. Returns errAPIKeyRequired if unset.
func NewAnthropicClient() (*AnthropicClient, error) {
	apiKey := os.Getenv("ANTHROPIC_API_KEY")
	if apiKey == "" {
		return nil, errAPIKeyRequired
	}

	tmpl, err := template.New("review").Parse(reviewPromptTemplate)
	if err != nil {
		return nil, fmt.Errorf("subagent: parse review template: %w", err)
	}

	modelName := os.Getenv("ANTHROPIC_MODEL")
	if modelName == "" {
		modelName = defaultModelName
	}

	return &AnthropicClient{
		client:         anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:          anthropic.Model(modelName),
		reviewTmpl:     tmpl,
		maxRetries:     maxRetries,
		initialBackoff: initialBackoff,
	}, nil
}

// ReviewCode submits the diff and optional review guide to the model
// and parses its APPROVED/REJECTED verdict line plus feedback.
func (c *AnthropicClient) ReviewCode(ctx context.Context, in ReviewInput) (ReviewResult, error) {
	prompt, err := c.renderReviewPrompt(in)
	if err != nil {
		return ReviewResult{}, fmt.Errorf("subagent: render review prompt: %w", err)
	}

	text, err := c.callWithRetry(ctx, prompt)
	if err != nil {
		return ReviewResult{}, err
	}

	return parseReviewResponse(text), nil
}

// DecideOnQuestion submits a blocking question for resolution.
func (c *AnthropicClient) DecideOnQuestion(ctx context.Context, q Question) (Answer, error) {
	prompt := fmt.Sprintf("Answer the following question concisely, using the context given.\n\nQuestion: %s\n\nContext:\n%s", q.Text, q.Context)
	text, err := c.callWithRetry(ctx, prompt)
	if err != nil {
		return Answer{}, err
	}
	return Answer{Text: strings.TrimSpace(text)}, nil
}

// ReflectOnWork asks the model for a short closing reflection on a
// session's notes.
func (c *AnthropicClient) ReflectOnWork(ctx context.Context, in ReflectionInput) (Reflection, error) {
	prompt := fmt.Sprintf("Summarize what was learned in this work session in 2-3 sentences.\n\nSummary: %s\n\nNotes:\n%s",
		in.Summary, strings.Join(in.Notes, "\n"))
	text, err := c.callWithRetry(ctx, prompt)
	if err != nil {
		return Reflection{}, err
	}
	return Reflection{Text: strings.TrimSpace(text)}, nil
}

func (c *AnthropicClient) callWithRetry(ctx context.Context, prompt string) (string, error) {
	params := anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: 1024,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := c.initialBackoff * time.Duration(math.Pow(2, float64(attempt-1)))
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}

		message, err := c.client.Messages.New(ctx, params)
		if err == nil {
			if len(message.Content) == 0 {
				return "", fmt.Errorf("subagent: empty response")
			}
			block := message.Content[0]
			if block.Type != "text" {
				return "", fmt.Errorf("subagent: unexpected response block type %q", block.Type)
			}
			return block.Text, nil
		}

		lastErr = err
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if !isRetryable(err) {
			return "", fmt.Errorf("subagent: non-retryable error: %w", err)
		}
	}

	return "", fmt.Errorf("subagent: failed after %d attempts: %w", c.maxRetries+1, lastErr)
}

func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 429 || apiErr.StatusCode >= 500
	}
	return false
}

func (c *AnthropicClient) renderReviewPrompt(in ReviewInput) (string, error) {
	var b strings.Builder
	if err := c.reviewTmpl.Execute(&b, in); err != nil {
		return "", err
	}
	return b.String(), nil
}

// parseReviewResponse reads the model's first line as a verdict
// ("APPROVED" or "REJECTED", case-insensitive) and treats the rest as
// feedback. An unrecognized verdict line is treated conservatively as
// not approved.
func parseReviewResponse(text string) ReviewResult {
	lines := strings.SplitN(strings.TrimSpace(text), "\n", 2)
	verdict := strings.ToUpper(strings.TrimSpace(lines[0]))
	feedback := ""
	if len(lines) > 1 {
		feedback = strings.TrimSpace(lines[1])
	}
	return ReviewResult{
		Approved: strings.HasPrefix(verdict, "APPROVED"),
		Feedback: feedback,
	}
}

const reviewPromptTemplate = `You are reviewing a pending commit for a software project. Examine the diff below and decide whether it is safe and reasonable to commit.

{{if .ReviewGuide}}Project review guidelines:
{{.ReviewGuide}}

{{end}}Staged files:
{{range .StagedFiles}}- {{.}}
{{end}}

Diff:
{{.Diff}}

Respond with a first line of exactly "APPROVED" or "REJECTED", followed by a blank line and any feedback for the author. If approved but you have non-trivial feedback, still answer APPROVED and put the feedback on the following lines.`
