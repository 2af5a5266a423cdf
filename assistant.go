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


package procurelens

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/procurelens/procurelens/agent"
	"github.com/procurelens/procurelens/ai"
	"github.com/procurelens/procurelens/ai/ollama"
	"github.com/procurelens/procurelens/blobstore"
	badgerblob "github.com/procurelens/procurelens/blobstore/badger"
	"github.com/procurelens/procurelens/ingestion"
	"github.com/procurelens/procurelens/vectorstore"
	"github.com/procurelens/procurelens/vectorstore/memory"
)

// Assistant is the top-level entry point. It wires together file storage,
// the vector index gateway, and the AI provider, and hands out the
// ingestion pipeline and analysis agents that operate over them.
type Assistant struct {
	files    blobstore.FileStore
	gateway  *vectorstore.Gateway
	provider ai.Provider
	logger   *slog.Logger
}

// AssistantOption configures an Assistant.
type AssistantOption func(*assistantOptions)

// StoreOpener opens a vector store backend using the assistant's embedder.
// It runs lazily, on first index use.
type StoreOpener func(ctx context.Context, embedder ai.Embedder) (vectorstore.Store, error)

type assistantOptions struct {
	aiConfig  *ai.Config
	fileStore blobstore.FileStore
	openStore StoreOpener
	provider  ai.Provider
	logger    *slog.Logger
}

// WithAIConfig sets the AI provider configuration.
func WithAIConfig(config *ai.Config) AssistantOption {
	return func(o *assistantOptions) {
		o.aiConfig = config
	}
}

// WithFileStore overrides the default badger-backed file store, e.g. with
// the MinIO client for bucket-backed deployments.
func WithFileStore(files blobstore.FileStore) AssistantOption {
	return func(o *assistantOptions) {
		o.fileStore = files
	}
}

// WithVectorStore overrides how the vector store is opened, e.g. with the
// Postgres pgvector backend. The store is opened lazily on first index use.
func WithVectorStore(open StoreOpener) AssistantOption {
	return func(o *assistantOptions) {
		o.openStore = open
	}
}

// WithProvider replaces the default Ollama provider, e.g. with a mock in
// tests.
func WithProvider(provider ai.Provider) AssistantOption {
	return func(o *assistantOptions) {
		o.provider = provider
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) AssistantOption {
	return func(o *assistantOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// NewAssistant creates an assistant rooted at filePath. The default wiring
// stores uploaded files in a local badger database under filePath, keeps
// vectors in process memory, and talks to a local Ollama server.
func NewAssistant(filePath string, opts ...AssistantOption) (*Assistant, error) {
	// Apply options
	options := &assistantOptions{
		aiConfig: ai.DefaultConfig(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}

	// Create AI provider
	provider := options.provider
	if provider == nil {
		p, err := ollama.NewProvider(options.aiConfig)
		if err != nil {
			return nil, err
		}
		provider = p
	}

	// Open file store
	files := options.fileStore
	if files == nil {
		fs, err := badgerblob.OpenStore(filePath, false)
		if err != nil {
			provider.Close()
			return nil, err
		}
		files = fs
	}

	// The vector store opens lazily behind the gateway on first use.
	open := options.openStore
	if open == nil {
		open = func(_ context.Context, embedder ai.Embedder) (vectorstore.Store, error) {
			return memory.NewStore(embedder)
		}
	}

	gateway, err := vectorstore.NewGateway(func(ctx context.Context) (vectorstore.Store, error) {
		return open(ctx, provider.Embedder())
	}, vectorstore.WithGatewayLogger(options.logger))
	if err != nil {
		files.Close()
		provider.Close()
		return nil, err
	}

	return &Assistant{
		files:    files,
		gateway:  gateway,
		provider: provider,
		logger:   options.logger,
	}, nil
}

// Close releases every underlying resource.
func (a *Assistant) Close() error {
	// Close AI provider first
	if err := a.provider.Close(); err != nil {
		a.logger.Error("error closing AI provider", "err", err)
	}

	if err := a.gateway.Close(); err != nil {
		a.logger.Error("error closing vector index", "err", err)
		return err
	}

	if err := a.files.Close(); err != nil {
		a.logger.Error("error closing file store", "err", err)
		return err
	}
	return nil
}

// FileStore exposes the raw upload storage.
func (a *Assistant) FileStore() blobstore.FileStore {
	return a.files
}

// Provider exposes the AI provider.
func (a *Assistant) Provider() ai.Provider {
	return a.provider
}

// Index returns the shared vector index, opening the backing store on
// first call.
func (a *Assistant) Index(ctx context.Context) (*vectorstore.Index, error) {
	return a.gateway.Index(ctx)
}

// NewIngestionPipeline creates an ingestion pipeline bound to the
// assistant's file store and index.
func (a *Assistant) NewIngestionPipeline(ctx context.Context, opts ...ingestion.PipelineOption) (*ingestion.Pipeline, error) {
	index, err := a.gateway.Index(ctx)
	if err != nil {
		return nil, err
	}
	return ingestion.NewPipeline(a.files, index, opts...)
}

// NewAgent creates an analysis agent for the given role.
func (a *Assistant) NewAgent(ctx context.Context, role agent.Role, opts ...agent.Option) (*agent.Agent, error) {
	index, err := a.gateway.Index(ctx)
	if err != nil {
		return nil, err
	}
	return agent.New(role, index, a.provider.Generator(), opts...)
}

// NewAnalyzer creates a parallel analysis orchestrator over the
// assistant's index.
func (a *Assistant) NewAnalyzer(ctx context.Context, opts ...agent.AnalyzerOption) (*agent.Analyzer, error) {
	index, err := a.gateway.Index(ctx)
	if err != nil {
		return nil, err
	}
	return agent.NewAnalyzer(index, a.provider.Generator(), opts...)
}

// Files lists the names of every uploaded file.
func (a *Assistant) Files(ctx context.Context) ([]string, error) {
	return a.files.List(ctx)
}

// RemoveFile deletes an uploaded file and every indexed document derived
// from it.
func (a *Assistant) RemoveFile(ctx context.Context, name string) error {
	if err := a.files.Delete(ctx, name); err != nil {
		return fmt.Errorf("deleting file %q: %w", name, err)
	}

	index, err := a.gateway.Index(ctx)
	if err != nil {
		return err
	}

	deleted, err := index.DeleteBySource(ctx, name)
	if err != nil {
		return fmt.Errorf("deleting indexed documents for %q: %w", name, err)
	}

	a.logger.InfoContext(ctx, "file removed", "file", name, "documents", deleted)
	return nil
}

// Reindex rebuilds the index from every stored file. Useful after
// switching embedding models, where stale vectors no longer match the
// query embedding space.
func (a *Assistant) Reindex(ctx context.Context) error {
	pipeline, err := a.NewIngestionPipeline(ctx, ingestion.WithReplaceExisting(),
		ingestion.WithPipelineLogger(a.logger))
	if err != nil {
		return err
	}

	names, err := a.files.List(ctx)
	if err != nil {
		return fmt.Errorf("listing files: %w", err)
	}

	for _, name := range names {
		content, err := a.files.Get(ctx, name)
		if err != nil {
			return fmt.Errorf("reading file %q: %w", name, err)
		}
		if _, err := pipeline.Process(ctx, content, name); err != nil {
			return fmt.Errorf("reindexing %q: %w", name, err)
		}
	}

	a.logger.InfoContext(ctx, "reindex complete", "files", len(names))
	return nil
}
