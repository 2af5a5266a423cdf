package ollama

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/procurelens/procurelens/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
)

// Generator implements ai.Generator using the Ollama completion API.
type Generator struct {
	llm    *ollama.LLM
	logger *slog.Logger
}

// newGenerator is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newGenerator(config *ai.Config) (*Generator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := ollama.New(
		ollama.WithServerURL(config.Host),
		ollama.WithModel(config.LLMModel),
		ollama.WithRunnerNumCtx(config.ContextWindow),
		ollama.WithHTTPClient(&http.Client{Timeout: config.RequestTimeout}),
	)
	if err != nil {
		return nil, err
	}

	return &Generator{
		llm:    client,
		logger: slog.Default().With("component", "ollama-generator"),
	}, nil
}

// NewGenerator creates a new generator using the provided configuration.
//
// Returns ai.Generator interface to enforce abstraction.
func NewGenerator(config *ai.Config) (ai.Generator, error) {
	return newGenerator(config)
}

// GenerateText sends the prompt to the model and returns the completion.
// The call blocks until the model responds or the configured request
// timeout elapses.
func (g *Generator) GenerateText(ctx context.Context, prompt string) (string, error) {
	g.logger.Debug("generating completion", "promptLength", len(prompt))

	start := time.Now()
	out, err := llms.GenerateFromSinglePrompt(ctx, g.llm, prompt)
	if err != nil {
		g.logger.Error("failed to generate completion", "err", err)
		return "", err
	}

	g.logger.Debug("completion generated", "duration", time.Since(start), "length", len(out))
	return out, nil
}
