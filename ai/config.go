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


package ai

import (
	"errors"
	"strings"
	"time"
)

// Config holds configuration for AI service providers.
type Config struct {
	// Host is the base URL of the model server.
	// Example: "http://localhost:11434" for a local Ollama instance.
	Host string

	// LLMModel is the model identifier to use for text generation.
	// Example: "llama3.2:3b"
	LLMModel string

	// EmbeddingModel is the model identifier to use for text embeddings.
	// Example: "bge-m3:567m"
	EmbeddingModel string

	// RequestTimeout bounds a single round trip to the model server.
	// Local-model inference is slow; the default is deliberately generous.
	// Default: 5 minutes.
	RequestTimeout time.Duration

	// ContextWindow is the token context size requested from the model runner.
	// Default: 4096.
	ContextWindow int
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithHost sets the model server base URL.
func WithHost(host string) ConfigOption {
	return func(c *Config) {
		c.Host = host
	}
}

// WithLLMModel sets the text generation model identifier.
func WithLLMModel(model string) ConfigOption {
	return func(c *Config) {
		c.LLMModel = model
	}
}

// WithEmbeddingModel sets the embedding model identifier.
func WithEmbeddingModel(model string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingModel = model
	}
}

// WithRequestTimeout sets the per-request timeout for model calls.
func WithRequestTimeout(timeout time.Duration) ConfigOption {
	return func(c *Config) {
		c.RequestTimeout = timeout
	}
}

// WithContextWindow sets the model runner context size in tokens.
func WithContextWindow(tokens int) ConfigOption {
	return func(c *Config) {
		c.ContextWindow = tokens
	}
}

// DefaultConfig returns a Config with sensible defaults for a local Ollama server.
func DefaultConfig() *Config {
	return &Config{
		Host:           "http://localhost:11434",
		LLMModel:       "llama3.2:3b",
		EmbeddingModel: "bge-m3:567m",
		RequestTimeout: 5 * time.Minute,
		ContextWindow:  4096,
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
// This is the recommended way to create a Config with custom settings.
//
// Example:
//
//	cfg := ai.NewConfig(
//	    ai.WithHost("http://ollama.internal:11434"),
//	    ai.WithLLMModel("qwen2.5:7b"),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form.
// Trailing slashes on the host are stripped so URL joining stays predictable.
func (c *Config) Normalize() {
	c.Host = strings.TrimSuffix(c.Host, "/")
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if c.Host == "" {
		return errors.New("ai config: Host is required")
	}
	if c.LLMModel == "" {
		return errors.New("ai config: LLMModel is required")
	}
	if c.EmbeddingModel == "" {
		return errors.New("ai config: EmbeddingModel is required")
	}
	if c.RequestTimeout <= 0 {
		return errors.New("ai config: RequestTimeout must be positive")
	}
	if c.ContextWindow <= 0 {
		return errors.New("ai config: ContextWindow must be positive")
	}
	return nil
}
