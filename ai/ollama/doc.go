// Package ollama provides ai.Provider implementations backed by a local
// Ollama server. Text generation goes through the completion API with the
// configured context window and request timeout; embeddings go through the
// embeddings API wrapped in a langchaingo embedder.
package ollama
