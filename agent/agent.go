// Copyright 2026 Procurelens Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package agent

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/procurelens/procurelens/ai"
	"github.com/procurelens/procurelens/core"
	"github.com/procurelens/procurelens/vectorstore"
)

// Agent answers analysis queries for a single role. It retrieves the
// most relevant documents, builds a role-framed prompt, and generates a
// bullet-point summary.
type Agent struct {
	role      Role
	index     *vectorstore.Index
	generator ai.Generator
	logger    *slog.Logger
	topK      int
}

// Option configures an Agent.
type Option func(*Agent) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(a *Agent) error {
		if logger == nil {
			logger = slog.Default()
		}
		a.logger = logger
		return nil
	}
}

// WithTopK overrides how many document chunks are retrieved per query.
// Default is vectorstore.DefaultTopK.
func WithTopK(topK int) Option {
	return func(a *Agent) error {
		if topK > 0 {
			a.topK = topK
		}
		return nil
	}
}

// New creates an agent for the given role.
func New(role Role, index *vectorstore.Index, generator ai.Generator, opts ...Option) (*Agent, error) {
	if index == nil {
		return nil, ErrIndexRequired
	}
	if generator == nil {
		return nil, ErrGeneratorRequired
	}

	a := &Agent{
		role:      role,
		index:     index,
		generator: generator,
		logger:    slog.Default(),
		topK:      vectorstore.DefaultTopK,
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}

	return a, nil
}

// Role returns the agent's role descriptor.
func (a *Agent) Role() Role {
	return a.role
}

// Run answers the query for this agent's role.
func (a *Agent) Run(ctx context.Context, query string) (string, error) {
	return a.RunWithMonitor(ctx, query, nil)
}

// RunWithMonitor answers the query with monitoring. The monitor receives
// callbacks at each stage of the retrieval and generation process.
func (a *Agent) RunWithMonitor(ctx context.Context, query string, monitor AnalysisMonitor) (string, error) {
	// Use noop monitor if none provided
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	monitor.Start(a.role, query)
	a.logger.InfoContext(ctx, "agent starting query", "agent", a.role.Name, "query", query)

	chunks, err := a.index.Retrieve(ctx, query, a.topK)
	if err != nil {
		return "", fmt.Errorf("retrieving context for %q: %w", a.role.Name, err)
	}
	monitor.AfterRetrieval(chunks)
	for _, chunk := range chunks {
		a.logger.DebugContext(ctx, "retrieved chunk", "agent", a.role.Name, "score", chunk.Score)
	}

	prompt := a.buildPrompt(query, chunks)
	monitor.BeforeGeneration(prompt)

	start := time.Now()
	answer, err := a.generator.GenerateText(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("generating answer for %q: %w", a.role.Name, err)
	}

	a.logger.InfoContext(ctx, "agent query finished",
		"agent", a.role.Name,
		"chunks", len(chunks),
		"duration", time.Since(start))

	monitor.Finish(answer)
	return answer, nil
}

// buildPrompt assembles the shared prompt template around the role's
// persona and focus. Retrieved chunks are joined into a single context
// block so the model answers from the data, not prior knowledge.
func (a *Agent) buildPrompt(query string, chunks []core.ScoredChunk) string {
	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Text
	}
	contextBlock := strings.Join(texts, "\n\n")

	var b strings.Builder
	fmt.Fprintf(&b, "You are the %s. %s\n", a.role.Name, a.role.Description)
	b.WriteString("Context information is below.\n")
	b.WriteString("---------------------\n")
	b.WriteString(contextBlock)
	b.WriteString("\n---------------------\n")
	fmt.Fprintf(&b, "Given the context information and not prior knowledge, %s\n", a.role.Focus)
	b.WriteString("Provide a concise summary with bullet points.\n")
	fmt.Fprintf(&b, "Query: %s\n", query)
	b.WriteString("Answer: ")
	return b.String()
}
