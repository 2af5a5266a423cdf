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
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/procurelens/procurelens/ai"
	"github.com/procurelens/procurelens/vectorstore"
)

// DefaultWorkers bounds how many agents run concurrently. Each agent
// drives its own LLM generation, so the batch stays deliberately narrow
// to avoid saturating the model server.
const DefaultWorkers = 2

// Task pairs a role with the query it should answer.
type Task struct {
	RoleKey string
	Query   string
}

// DefaultTasks returns the standard full-portfolio analysis batch: one
// task per built-in role.
func DefaultTasks() []Task {
	return []Task{
		{RoleKey: SpendAnalysis.Key, Query: "Analyze spend patterns, identifying anomalies and opportunities."},
		{RoleKey: RiskMonitoring.Key, Query: "Identify high-risk suppliers and potential supply chain disruptions."},
		{RoleKey: SupplierIntelligence.Key, Query: "Provide a detailed analysis of top suppliers and their performance."},
		{RoleKey: ContractIntelligence.Key, Query: "Review contracts for expiry and compliance risks."},
		{RoleKey: POAutomation.Key, Query: "Analyze Purchase Orders for delays and price discrepancies."},
		{RoleKey: CompliancePolicy.Key, Query: "Check for policy violations and budget adherence."},
	}
}

// TaskProgressFunc receives a notification each time a task completes.
type TaskProgressFunc func(completed, total int, roleKey string)

// Analyzer runs a batch of analysis agents concurrently over a shared
// index and reports results keyed by role.
type Analyzer struct {
	index     *vectorstore.Index
	generator ai.Generator
	pool      *ants.Pool
	logger    *slog.Logger
	progress  TaskProgressFunc
}

// AnalyzerOption configures an Analyzer.
type AnalyzerOption func(*Analyzer) error

// WithAnalyzerLogger sets a custom logger.
// Default is slog.Default().
func WithAnalyzerLogger(logger *slog.Logger) AnalyzerOption {
	return func(a *Analyzer) error {
		if logger == nil {
			logger = slog.Default()
		}
		a.logger = logger
		return nil
	}
}

// WithTaskProgress sets a callback invoked as tasks complete.
func WithTaskProgress(fn TaskProgressFunc) AnalyzerOption {
	return func(a *Analyzer) error {
		a.progress = fn
		return nil
	}
}

// WithWorkers resizes the worker pool. Values below 1 are ignored.
func WithWorkers(size int) AnalyzerOption {
	return func(a *Analyzer) error {
		if size < 1 {
			return nil
		}
		a.pool.Tune(size)
		return nil
	}
}

// NewAnalyzer creates an analyzer over the given index and generator.
// Call Release when done to free the worker pool.
func NewAnalyzer(index *vectorstore.Index, generator ai.Generator, opts ...AnalyzerOption) (*Analyzer, error) {
	if index == nil {
		return nil, ErrIndexRequired
	}
	if generator == nil {
		return nil, ErrGeneratorRequired
	}

	pool, err := ants.NewPool(DefaultWorkers)
	if err != nil {
		return nil, err
	}

	a := &Analyzer{
		index:     index,
		generator: generator,
		pool:      pool,
		logger:    slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if optErr := opt(a); optErr != nil {
			a.Release()
			return nil, optErr
		}
	}

	return a, nil
}

// Release frees the worker pool. The analyzer must not be used afterwards.
func (a *Analyzer) Release() {
	if a.pool != nil {
		a.pool.Release()
	}
}

// RunAll executes every task concurrently and returns the results keyed by
// role key. A failing task never aborts the batch: its result slot carries
// an inline failure message instead, so partial batches remain usable.
func (a *Analyzer) RunAll(ctx context.Context, tasks []Task) (map[string]string, error) {
	if len(tasks) == 0 {
		return nil, ErrNoTasks
	}

	start := time.Now()
	a.logger.InfoContext(ctx, "analysis batch starting", "tasks", len(tasks), "workers", a.pool.Cap())

	var (
		mu        sync.Mutex
		wg        sync.WaitGroup
		completed int
	)
	results := make(map[string]string, len(tasks))

	record := func(roleKey, result string) {
		mu.Lock()
		defer mu.Unlock()
		results[roleKey] = result
		completed++
		if a.progress != nil {
			a.progress(completed, len(tasks), roleKey)
		}
	}

	for _, task := range tasks {
		wg.Add(1)
		task := task
		err := a.pool.Submit(func() {
			defer wg.Done()
			record(task.RoleKey, a.runTask(ctx, task))
		})
		if err != nil {
			// Pool rejected the submission, account for the task inline.
			wg.Done()
			record(task.RoleKey, fmt.Sprintf("analysis failed: %v", err))
		}
	}

	wg.Wait()

	a.logger.InfoContext(ctx, "analysis batch finished",
		"tasks", len(tasks),
		"duration", time.Since(start))

	return results, nil
}

func (a *Analyzer) runTask(ctx context.Context, task Task) string {
	role, ok := RoleByKey(task.RoleKey)
	if !ok {
		a.logger.WarnContext(ctx, "unknown role in task batch", "role", task.RoleKey)
		return fmt.Sprintf("analysis failed: %v: %q", ErrUnknownRole, task.RoleKey)
	}

	worker, err := New(role, a.index, a.generator, WithLogger(a.logger))
	if err != nil {
		return fmt.Sprintf("analysis failed: %v", err)
	}

	answer, err := worker.Run(ctx, task.Query)
	if err != nil {
		a.logger.ErrorContext(ctx, "agent task failed", "role", role.Name, "error", err)
		return fmt.Sprintf("analysis failed: %v", err)
	}

	return answer
}

// Summary assembles the executive summary from a completed batch. It joins
// the spend and risk reports under fixed markdown headings; roles missing
// from the results render as empty sections.
func Summary(results map[string]string) string {
	return fmt.Sprintf("### Financial Overview\n%s\n\n### Risk Overview\n%s",
		results[SpendAnalysis.Key], results[RiskMonitoring.Key])
}
