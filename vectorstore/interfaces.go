package vectorstore

import (
	"context"

	"github.com/procurelens/procurelens/core"
)

// Store is the vector-store collaborator contract: a named collection that
// supports upsert-by-document, similarity search returning ranked chunks,
// and delete-by-source-metadata. Implementations must be safe for
// concurrent readers; writers are serialized by the Index wrapper.
type Store interface {
	// AddDocuments embeds and stores the given documents. Documents with an
	// ID already present in the collection are overwritten, not duplicated.
	AddDocuments(ctx context.Context, docs []core.RowDocument) error

	// Search returns up to topK stored chunks ranked by similarity to the
	// query, highest score first. Ordering between equal scores is whatever
	// the backend produces and is not contractual.
	Search(ctx context.Context, query string, topK int) ([]core.ScoredChunk, error)

	// DeleteBySource removes every document whose source metadata equals
	// source and reports how many were removed.
	DeleteBySource(ctx context.Context, source string) (int64, error)

	// Count reports the number of stored documents.
	Count(ctx context.Context) (int64, error)

	// Close releases the backend connection.
	Close() error
}

// OpenFunc connects to a vector store backend, creating the collection if it
// does not exist. The Gateway invokes it at most once per process.
type OpenFunc func(ctx context.Context) (Store, error)
