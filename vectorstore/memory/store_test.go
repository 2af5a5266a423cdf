package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/procurelens/procurelens/ai/mock"
	"github.com/procurelens/procurelens/core"
)

func doc(id core.ID, text, source string) core.RowDocument {
	return core.RowDocument{
		Id:   id,
		Text: text,
		Metadata: map[string]string{
			core.MetaSource: source,
		},
	}
}

func TestNewStore(t *testing.T) {
	t.Run("requires an embedder", func(t *testing.T) {
		_, err := NewStore(nil)
		assert.ErrorIs(t, err, ErrEmbedderRequired)
	})
}

func TestStoreAddDocuments(t *testing.T) {
	ctx := context.Background()

	t.Run("stores a batch", func(t *testing.T) {
		store, err := NewStore(mock.NewMockEmbedder())
		require.NoError(t, err)

		require.NoError(t, store.AddDocuments(ctx, []core.RowDocument{
			doc(1, "alpha", "a.csv"),
			doc(2, "beta", "a.csv"),
		}))

		count, err := store.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})

	t.Run("same id overwrites instead of duplicating", func(t *testing.T) {
		store, err := NewStore(mock.NewMockEmbedder())
		require.NoError(t, err)

		require.NoError(t, store.AddDocuments(ctx, []core.RowDocument{doc(1, "alpha", "a.csv")}))
		require.NoError(t, store.AddDocuments(ctx, []core.RowDocument{doc(1, "alpha updated", "a.csv")}))

		count, err := store.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("empty batch is a no-op", func(t *testing.T) {
		embedder := mock.NewMockEmbedder()
		store, err := NewStore(embedder)
		require.NoError(t, err)

		require.NoError(t, store.AddDocuments(ctx, nil))
		assert.Equal(t, 0, embedder.CallCount())
	})

	t.Run("propagates embedding errors", func(t *testing.T) {
		embedder := mock.NewMockEmbedder()
		embedder.EmbedTextsFunc = func(context.Context, []string) ([][]float32, error) {
			return nil, errors.New("embedding service down")
		}

		store, err := NewStore(embedder)
		require.NoError(t, err)

		err = store.AddDocuments(ctx, []core.RowDocument{doc(1, "alpha", "a.csv")})
		assert.ErrorContains(t, err, "embedding service down")
	})

	t.Run("rejects a vector count mismatch", func(t *testing.T) {
		embedder := mock.NewMockEmbedder()
		embedder.EmbedTextsFunc = func(_ context.Context, texts []string) ([][]float32, error) {
			return make([][]float32, len(texts)+1), nil
		}

		store, err := NewStore(embedder)
		require.NoError(t, err)

		err = store.AddDocuments(ctx, []core.RowDocument{doc(1, "alpha", "a.csv")})
		assert.ErrorIs(t, err, ErrEmbeddingCountMismatch)
	})
}

func TestStoreSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("identical text scores highest", func(t *testing.T) {
		store, err := NewStore(mock.NewMockEmbedder())
		require.NoError(t, err)

		require.NoError(t, store.AddDocuments(ctx, []core.RowDocument{
			doc(1, "supplier risk assessment for Globex", "a.csv"),
			doc(2, "monthly spend by category", "a.csv"),
			doc(3, "contract expiry calendar", "a.csv"),
		}))

		chunks, err := store.Search(ctx, "supplier risk assessment for Globex", 3)
		require.NoError(t, err)
		require.Len(t, chunks, 3)

		assert.Equal(t, "supplier risk assessment for Globex", chunks[0].Text)
		assert.InDelta(t, 1.0, float64(chunks[0].Score), 1e-5)
		for i := 1; i < len(chunks); i++ {
			assert.LessOrEqual(t, chunks[i].Score, chunks[i-1].Score)
		}
	})

	t.Run("truncates to topK", func(t *testing.T) {
		store, err := NewStore(mock.NewMockEmbedder())
		require.NoError(t, err)

		require.NoError(t, store.AddDocuments(ctx, []core.RowDocument{
			doc(1, "alpha", "a.csv"),
			doc(2, "beta", "a.csv"),
			doc(3, "gamma", "a.csv"),
		}))

		chunks, err := store.Search(ctx, "alpha", 2)
		require.NoError(t, err)
		assert.Len(t, chunks, 2)
	})

	t.Run("empty store yields no chunks", func(t *testing.T) {
		store, err := NewStore(mock.NewMockEmbedder())
		require.NoError(t, err)

		chunks, err := store.Search(ctx, "anything", 4)
		require.NoError(t, err)
		assert.Empty(t, chunks)
	})
}

func TestStoreDeleteBySource(t *testing.T) {
	ctx := context.Background()

	store, err := NewStore(mock.NewMockEmbedder())
	require.NoError(t, err)

	require.NoError(t, store.AddDocuments(ctx, []core.RowDocument{
		doc(1, "alpha", "a.csv"),
		doc(2, "beta", "b.csv"),
		doc(3, "gamma", "a.csv"),
	}))

	removed, err := store.DeleteBySource(ctx, "a.csv")
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	removed, err = store.DeleteBySource(ctx, "a.csv")
	require.NoError(t, err)
	assert.Equal(t, int64(0), removed)

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestCosineSimilarity(t *testing.T) {
	t.Run("parallel vectors score one", func(t *testing.T) {
		assert.InDelta(t, 1.0, float64(cosineSimilarity([]float32{1, 2, 3}, []float32{2, 4, 6})), 1e-6)
	})

	t.Run("orthogonal vectors score zero", func(t *testing.T) {
		assert.InDelta(t, 0.0, float64(cosineSimilarity([]float32{1, 0}, []float32{0, 1})), 1e-6)
	})

	t.Run("mismatched lengths score zero", func(t *testing.T) {
		assert.Equal(t, float32(0), cosineSimilarity([]float32{1, 2}, []float32{1}))
	})

	t.Run("zero vectors score zero", func(t *testing.T) {
		assert.Equal(t, float32(0), cosineSimilarity([]float32{0, 0}, []float32{1, 1}))
	})
}
