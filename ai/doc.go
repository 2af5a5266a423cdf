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


// Package ai provides abstractions for the model services used by Procurelens.
//
// This package defines interfaces for AI operations — text embeddings and
// prompt completion — so that the ingestion pipeline and query agents depend
// on abstractions rather than concrete implementations.
//
// # Design Principles
//
// The package is designed around three key interfaces:
//
//   - Embedder: Generates vector embeddings from text
//   - Generator: Produces completions from rendered prompts
//   - Provider: Aggregates both services for convenient initialization
//
// # Implementation Packages
//
// The ai package includes two implementation sub-packages:
//
//   - ai/ollama: Production implementation backed by a local Ollama server
//   - ai/mock: Test doubles for unit testing without a model server
//
// Production constructors (ollama.NewProvider) return INTERFACE types to
// enforce abstraction; mock constructors return CONCRETE types so tests can
// inject behavior and assert call counts.
//
// # Usage Example
//
//	cfg := ai.DefaultConfig()
//	provider, err := ollama.NewProvider(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	vec, err := provider.Embedder().EmbedText(ctx, "Supplier: Acme (ID: S001)")
//	out, err := provider.Generator().GenerateText(ctx, prompt)
package ai
