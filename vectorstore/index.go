package vectorstore

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/procurelens/procurelens/core"
)

// DefaultTopK is the number of chunks retrieved for a query when the caller
// does not ask for a specific count.
const DefaultTopK = 4

// Index is the shared queryable wrapper around a vector store. Retrieval
// takes a shared lock and mutation takes an exclusive lock, making the
// no-concurrent-ingest-and-query invariant explicit instead of assumed.
//
// All components in a process must share one Index; the Gateway guarantees
// that by construction.
type Index struct {
	store  Store
	mu     sync.RWMutex
	logger *slog.Logger
}

func newIndex(store Store, logger *slog.Logger) *Index {
	return &Index{
		store:  store,
		logger: logger,
	}
}

// NewIndex wraps an already opened store in an Index. Production code goes
// through a Gateway; this constructor exists for tests and embedded setups
// that manage the store lifecycle themselves.
func NewIndex(store Store, opts ...IndexOption) (*Index, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}

	ix := newIndex(store, slog.Default())
	for _, opt := range opts {
		opt(ix)
	}
	return ix, nil
}

// IndexOption configures an Index.
type IndexOption func(*Index)

// WithIndexLogger sets a custom logger.
// Default is slog.Default().
func WithIndexLogger(logger *slog.Logger) IndexOption {
	return func(ix *Index) {
		if logger == nil {
			logger = slog.Default()
		}
		ix.logger = logger
	}
}

// Add embeds and stores the given documents under an exclusive lock.
func (ix *Index) Add(ctx context.Context, docs []core.RowDocument) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	return ix.store.AddDocuments(ctx, docs)
}

// DeleteBySource removes every document whose source metadata equals source,
// under an exclusive lock. Returns the number of documents removed.
func (ix *Index) DeleteBySource(ctx context.Context, source string) (int64, error) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	return ix.store.DeleteBySource(ctx, source)
}

// Retrieve returns up to topK chunks ranked by similarity to the query.
// A topK of zero or less falls back to DefaultTopK. Safe for concurrent use.
func (ix *Index) Retrieve(ctx context.Context, query string, topK int) ([]core.ScoredChunk, error) {
	if topK <= 0 {
		topK = DefaultTopK
	}

	ix.mu.RLock()
	defer ix.mu.RUnlock()

	start := time.Now()
	chunks, err := ix.store.Search(ctx, query, topK)
	if err != nil {
		ix.logger.Error("retrieval failed", "query", query, "err", err)
		return nil, err
	}

	ix.logger.Debug("retrieved context", "query", query, "hits", len(chunks), "duration", time.Since(start))
	return chunks, nil
}

// Count reports the number of stored documents. Safe for concurrent use.
func (ix *Index) Count(ctx context.Context) (int64, error) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	return ix.store.Count(ctx)
}
