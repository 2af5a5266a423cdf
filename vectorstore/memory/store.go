package memory

import (
	"context"
	"log/slog"
	"math"
	"sort"
	"sync"

	"github.com/procurelens/procurelens/ai"
	"github.com/procurelens/procurelens/core"
	"github.com/procurelens/procurelens/vectorstore"
)

// Store is an in-process vector store. It keeps documents and their
// embeddings in a map and answers queries with a full cosine-similarity
// scan. Intended for tests and embedded setups without a database; the
// collection does not survive a process restart.
type Store struct {
	embedder ai.Embedder
	logger   *slog.Logger

	mu   sync.RWMutex
	docs map[core.ID]entry
}

type entry struct {
	doc    core.RowDocument
	vector []float32
}

var _ vectorstore.Store = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
	}
}

// NewStore creates an empty in-memory store using the given embedder.
func NewStore(embedder ai.Embedder, opts ...Option) (*Store, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	s := &Store{
		embedder: embedder,
		logger:   slog.Default().With("component", "memory-store"),
		docs:     make(map[core.ID]entry),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// AddDocuments embeds and stores the documents. A document whose ID is
// already present is overwritten.
func (s *Store) AddDocuments(ctx context.Context, docs []core.RowDocument) error {
	if len(docs) == 0 {
		return nil
	}

	texts := make([]string, len(docs))
	for i, doc := range docs {
		texts[i] = doc.Text
	}

	vectors, err := s.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return err
	}
	if len(vectors) != len(docs) {
		return ErrEmbeddingCountMismatch
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, doc := range docs {
		s.docs[doc.Id] = entry{doc: doc, vector: vectors[i]}
	}

	s.logger.Debug("documents stored", "count", len(docs), "total", len(s.docs))
	return nil
}

// Search embeds the query and scans all stored documents, returning the
// topK highest-scoring chunks in descending score order.
func (s *Store) Search(ctx context.Context, query string, topK int) ([]core.ScoredChunk, error) {
	queryVec, err := s.embedder.EmbedText(ctx, query)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	chunks := make([]core.ScoredChunk, 0, len(s.docs))
	for _, e := range s.docs {
		chunks = append(chunks, core.ScoredChunk{
			Text:     e.doc.Text,
			Metadata: e.doc.Metadata,
			Score:    cosineSimilarity(queryVec, e.vector),
		})
	}
	s.mu.RUnlock()

	sort.SliceStable(chunks, func(i, j int) bool {
		return chunks[i].Score > chunks[j].Score
	})

	if len(chunks) > topK {
		chunks = chunks[:topK]
	}
	return chunks, nil
}

// DeleteBySource removes every document whose source metadata equals source.
func (s *Store) DeleteBySource(ctx context.Context, source string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed int64
	for id, e := range s.docs {
		if e.doc.Metadata[core.MetaSource] == source {
			delete(s.docs, id)
			removed++
		}
	}

	s.logger.Debug("documents deleted by source", "source", source, "removed", removed)
	return removed, nil
}

// Count reports the number of stored documents.
func (s *Store) Count(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.docs)), nil
}

// Close is a no-op for the in-memory store.
func (s *Store) Close() error {
	return nil
}

// cosineSimilarity computes the cosine of the angle between two vectors.
// Mismatched lengths and zero vectors score 0.
func cosineSimilarity(a, b []float32) float32 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}
