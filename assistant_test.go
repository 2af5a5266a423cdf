package procurelens

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/procurelens/procurelens/agent"
	"github.com/procurelens/procurelens/ai/mock"
)

const suppliersCSV = "SupplierName,SupplierID,ItemCategory,SupplierRiskLevel\n" +
	"Acme Industrial,SUP-001,Fasteners,Low\n" +
	"Globex,SUP-002,Logistics,High\n"

func newTestAssistant(t *testing.T) *Assistant {
	t.Helper()

	assistant, err := NewAssistant(t.TempDir(), WithProvider(mock.NewMockProvider()))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, assistant.Close())
	})

	return assistant
}

func TestAssistantIngestAndQuery(t *testing.T) {
	ctx := context.Background()
	assistant := newTestAssistant(t)

	pipeline, err := assistant.NewIngestionPipeline(ctx)
	require.NoError(t, err)

	result, err := pipeline.Process(ctx, []byte(suppliersCSV), "suppliers.csv")
	require.NoError(t, err)
	assert.Equal(t, 2, result.Records)

	t.Run("index counts the ingested rows", func(t *testing.T) {
		index, err := assistant.Index(ctx)
		require.NoError(t, err)

		count, err := index.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})

	t.Run("file listing includes the upload", func(t *testing.T) {
		names, err := assistant.Files(ctx)
		require.NoError(t, err)
		assert.Contains(t, names, "suppliers.csv")
	})

	t.Run("agent answers over the ingested data", func(t *testing.T) {
		riskAgent, err := assistant.NewAgent(ctx, agent.RiskMonitoring)
		require.NoError(t, err)

		answer, err := riskAgent.Run(ctx, "Which suppliers are risky?")
		require.NoError(t, err)
		assert.Equal(t, "mock completion", answer)
	})

	t.Run("analyzer runs the default batch", func(t *testing.T) {
		analyzer, err := assistant.NewAnalyzer(ctx)
		require.NoError(t, err)
		defer analyzer.Release()

		results, err := analyzer.RunAll(ctx, agent.DefaultTasks())
		require.NoError(t, err)
		assert.Len(t, results, 6)

		summary := agent.Summary(results)
		assert.Contains(t, summary, "### Financial Overview")
		assert.Contains(t, summary, "### Risk Overview")
	})
}

func TestAssistantRemoveFile(t *testing.T) {
	ctx := context.Background()
	assistant := newTestAssistant(t)

	pipeline, err := assistant.NewIngestionPipeline(ctx)
	require.NoError(t, err)

	_, err = pipeline.Process(ctx, []byte(suppliersCSV), "suppliers.csv")
	require.NoError(t, err)

	require.NoError(t, assistant.RemoveFile(ctx, "suppliers.csv"))

	names, err := assistant.Files(ctx)
	require.NoError(t, err)
	assert.NotContains(t, names, "suppliers.csv")

	index, err := assistant.Index(ctx)
	require.NoError(t, err)
	count, err := index.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestAssistantReindex(t *testing.T) {
	ctx := context.Background()
	assistant := newTestAssistant(t)

	pipeline, err := assistant.NewIngestionPipeline(ctx)
	require.NoError(t, err)

	_, err = pipeline.Process(ctx, []byte(suppliersCSV), "suppliers.csv")
	require.NoError(t, err)

	require.NoError(t, assistant.Reindex(ctx))

	index, err := assistant.Index(ctx)
	require.NoError(t, err)
	count, err := index.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
