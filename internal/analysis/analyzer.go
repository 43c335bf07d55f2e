// Package analysis runs the optional LLM formatting pass over translated
// passages: poetry environment detection and divine-name tagging. The pass
// is strictly cosmetic; every failure mode returns the input unchanged.
package analysis

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

//go:embed prompt.tmpl
var analysisPrompt string

const defaultModel = "gpt-4o"

// Config holds configuration for the analyzer.
type Config struct {
	APIKey     string
	BaseURL    string        // Optional (tests)
	Model      string        // "gpt-4o" (default)
	Timeout    time.Duration // Per-request deadline
	Attempts   uint          // Total attempts, including the first
	HTTPClient *http.Client  // Optional (tests)
	Logger     *slog.Logger
}

// Analyzer applies the formatting pass via a chat-completion API.
type Analyzer struct {
	client   openai.Client
	model    string
	attempts uint
	logger   *slog.Logger
}

// New creates an analyzer. A nil return means analysis is disabled (no API
// key configured); callers treat a nil Analyzer as a pass-through.
func New(cfg Config) *Analyzer {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.Attempts == 0 {
		cfg.Attempts = 2
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithHTTPClient(httpClient),
		option.WithMaxRetries(0), // retry-go owns the retry policy
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &Analyzer{
		client:   openai.NewClient(opts...),
		model:    cfg.Model,
		attempts: cfg.Attempts,
		logger:   cfg.Logger,
	}
}

// Analyze returns text with poetry environments and \name tags applied.
// Any failure or empty model response yields the input unchanged.
func (a *Analyzer) Analyze(ctx context.Context, text, reference string) string {
	if a == nil {
		return text
	}

	a.logger.Info("analyzing scripture formatting", "reference", reference)

	prompt := fmt.Sprintf("%s\nReference: %s\n\n%s", analysisPrompt, reference, text)

	var result string
	err := retry.Do(
		func() error {
			resp, err := a.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
				Model: openai.ChatModel(a.model),
				Messages: []openai.ChatCompletionMessageParamUnion{
					openai.UserMessage(prompt),
				},
				MaxTokens: openai.Int(4096),
			})
			if err != nil {
				return err
			}
			if len(resp.Choices) == 0 {
				return fmt.Errorf("empty completion response")
			}
			result = strings.TrimSpace(resp.Choices[0].Message.Content)
			if result == "" {
				return fmt.Errorf("empty completion content")
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(a.attempts),
		retry.Delay(time.Second),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		a.logger.Warn("scripture analysis failed, using untransformed text",
			"reference", reference, "error", err)
		return text
	}

	hasPoetry := strings.Contains(result, `\begin{poetry}`)
	hasName := strings.Contains(result, `\name{`)
	a.logger.Info("scripture analysis complete",
		"reference", reference, "poetry", hasPoetry, "name_tags", hasName)
	return result
}
