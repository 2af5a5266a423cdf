package vectorstore

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/procurelens/procurelens/core"
)

func newFakeIndex(t *testing.T, store *fakeStore) *Index {
	t.Helper()

	index, err := NewIndex(store)
	require.NoError(t, err)
	return index
}

func TestNewIndex(t *testing.T) {
	t.Run("requires a store", func(t *testing.T) {
		_, err := NewIndex(nil)
		assert.ErrorIs(t, err, ErrStoreRequired)
	})
}

func TestIndexRetrieve(t *testing.T) {
	ctx := context.Background()

	docs := []core.RowDocument{
		{Id: 1, Text: "alpha", Metadata: map[string]string{core.MetaSource: "a.csv"}},
		{Id: 2, Text: "beta", Metadata: map[string]string{core.MetaSource: "a.csv"}},
		{Id: 3, Text: "gamma", Metadata: map[string]string{core.MetaSource: "b.csv"}},
		{Id: 4, Text: "delta", Metadata: map[string]string{core.MetaSource: "b.csv"}},
		{Id: 5, Text: "epsilon", Metadata: map[string]string{core.MetaSource: "b.csv"}},
	}

	t.Run("zero topk falls back to the default", func(t *testing.T) {
		store := &fakeStore{}
		index := newFakeIndex(t, store)
		require.NoError(t, index.Add(ctx, docs))

		chunks, err := index.Retrieve(ctx, "anything", 0)
		require.NoError(t, err)
		assert.Len(t, chunks, DefaultTopK)
	})

	t.Run("explicit topk is honored", func(t *testing.T) {
		store := &fakeStore{}
		index := newFakeIndex(t, store)
		require.NoError(t, index.Add(ctx, docs))

		chunks, err := index.Retrieve(ctx, "anything", 2)
		require.NoError(t, err)
		assert.Len(t, chunks, 2)
	})

	t.Run("propagates store errors", func(t *testing.T) {
		store := &fakeStore{searchErr: errors.New("backend down")}
		index := newFakeIndex(t, store)

		_, err := index.Retrieve(ctx, "anything", 1)
		assert.ErrorContains(t, err, "backend down")
	})
}

func TestIndexDeleteBySource(t *testing.T) {
	ctx := context.Background()

	store := &fakeStore{}
	index := newFakeIndex(t, store)
	require.NoError(t, index.Add(ctx, []core.RowDocument{
		{Id: 1, Text: "alpha", Metadata: map[string]string{core.MetaSource: "a.csv"}},
		{Id: 2, Text: "beta", Metadata: map[string]string{core.MetaSource: "b.csv"}},
		{Id: 3, Text: "gamma", Metadata: map[string]string{core.MetaSource: "a.csv"}},
	}))

	deleted, err := index.DeleteBySource(ctx, "a.csv")
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	count, err := index.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
