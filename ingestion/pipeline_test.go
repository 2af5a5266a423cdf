package ingestion

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/procurelens/procurelens/ai/mock"
	"github.com/procurelens/procurelens/vectorstore"
	"github.com/procurelens/procurelens/vectorstore/memory"
)

const sampleCSV = "SupplierName,SupplierID,ItemName,SupplierRiskLevel\n" +
	"Acme Industrial,SUP-001,Steel Bolts,Low\n" +
	"Globex,SUP-002,Pallets,High\n" +
	"Initech,SUP-003,Printers,Medium\n"

type fakeFileStore struct {
	files     map[string][]byte
	uploadErr error
}

func newFakeFileStore() *fakeFileStore {
	return &fakeFileStore{files: make(map[string][]byte)}
}

func (f *fakeFileStore) Upload(_ context.Context, name string, content []byte) error {
	if f.uploadErr != nil {
		return f.uploadErr
	}
	f.files[name] = content
	return nil
}

func (f *fakeFileStore) List(_ context.Context) ([]string, error) {
	names := make([]string, 0, len(f.files))
	for name := range f.files {
		names = append(names, name)
	}
	return names, nil
}

func (f *fakeFileStore) Get(_ context.Context, name string) ([]byte, error) {
	return f.files[name], nil
}

func (f *fakeFileStore) Delete(_ context.Context, name string) error {
	delete(f.files, name)
	return nil
}

func (f *fakeFileStore) Close() error { return nil }

func newTestIndex(t *testing.T) *vectorstore.Index {
	t.Helper()

	store, err := memory.NewStore(mock.NewMockEmbedder())
	require.NoError(t, err)

	index, err := vectorstore.NewIndex(store)
	require.NoError(t, err)

	return index
}

func TestNewPipeline(t *testing.T) {
	t.Run("requires file store", func(t *testing.T) {
		_, err := NewPipeline(nil, newTestIndex(t))
		assert.ErrorIs(t, err, ErrFileStoreRequired)
	})

	t.Run("requires index", func(t *testing.T) {
		_, err := NewPipeline(newFakeFileStore(), nil)
		assert.ErrorIs(t, err, ErrIndexRequired)
	})
}

func TestPipelineProcess(t *testing.T) {
	ctx := context.Background()

	t.Run("ingests a valid file", func(t *testing.T) {
		files := newFakeFileStore()
		index := newTestIndex(t)

		pipeline, err := NewPipeline(files, index)
		require.NoError(t, err)

		result, err := pipeline.Process(ctx, []byte(sampleCSV), "suppliers.csv")
		require.NoError(t, err)

		assert.Equal(t, 3, result.Records)
		assert.Equal(t, "Successfully processed 3 records.", result.Message)
		assert.Contains(t, files.files, "suppliers.csv")

		count, err := index.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(3), count)
	})

	t.Run("reports monotonic progress from upload to done", func(t *testing.T) {
		var fractions []float64
		pipeline, err := NewPipeline(newFakeFileStore(), newTestIndex(t),
			WithProgress(func(fraction float64, _ string) {
				fractions = append(fractions, fraction)
			}))
		require.NoError(t, err)

		_, err = pipeline.Process(ctx, []byte(sampleCSV), "suppliers.csv")
		require.NoError(t, err)

		require.NotEmpty(t, fractions)
		assert.Equal(t, 0.1, fractions[0])
		assert.Equal(t, 1.0, fractions[len(fractions)-1])
		for i := 1; i < len(fractions); i++ {
			assert.GreaterOrEqual(t, fractions[i], fractions[i-1])
		}
	})

	t.Run("rejects malformed csv with display message", func(t *testing.T) {
		pipeline, err := NewPipeline(newFakeFileStore(), newTestIndex(t))
		require.NoError(t, err)

		malformed := "SupplierName,SupplierID\n\"unterminated,SUP-001\n"
		result, err := pipeline.Process(ctx, []byte(malformed), "bad.csv")

		assert.ErrorIs(t, err, ErrInvalidCSV)
		require.NotNil(t, result)
		assert.Equal(t, "Invalid CSV format", result.Message)
	})

	t.Run("handles a header-only file", func(t *testing.T) {
		pipeline, err := NewPipeline(newFakeFileStore(), newTestIndex(t))
		require.NoError(t, err)

		result, err := pipeline.Process(ctx, []byte("SupplierName,SupplierID\n"), "empty.csv")
		require.NoError(t, err)

		assert.Equal(t, 0, result.Records)
		assert.Equal(t, "Successfully processed 0 records.", result.Message)
	})

	t.Run("surfaces upload failures", func(t *testing.T) {
		files := newFakeFileStore()
		files.uploadErr = errors.New("bucket unavailable")

		pipeline, err := NewPipeline(files, newTestIndex(t))
		require.NoError(t, err)

		result, err := pipeline.Process(ctx, []byte(sampleCSV), "suppliers.csv")

		require.Error(t, err)
		require.NotNil(t, result)
		assert.Contains(t, result.Message, "bucket unavailable")
	})

	t.Run("replace existing drops stale rows from the same source", func(t *testing.T) {
		index := newTestIndex(t)
		pipeline, err := NewPipeline(newFakeFileStore(), index, WithReplaceExisting())
		require.NoError(t, err)

		_, err = pipeline.Process(ctx, []byte(sampleCSV), "suppliers.csv")
		require.NoError(t, err)

		shorter := "SupplierName,SupplierID\nAcme Industrial,SUP-001\n"
		result, err := pipeline.Process(ctx, []byte(shorter), "suppliers.csv")
		require.NoError(t, err)
		assert.Equal(t, 1, result.Records)

		count, err := index.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("without replace stale rows linger", func(t *testing.T) {
		index := newTestIndex(t)
		pipeline, err := NewPipeline(newFakeFileStore(), index)
		require.NoError(t, err)

		_, err = pipeline.Process(ctx, []byte(sampleCSV), "suppliers.csv")
		require.NoError(t, err)

		shorter := "SupplierName,SupplierID\nAcme Industrial,SUP-001\n"
		_, err = pipeline.Process(ctx, []byte(shorter), "suppliers.csv")
		require.NoError(t, err)

		count, err := index.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(4), count)
	})
}
