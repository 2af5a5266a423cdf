package agent

import "github.com/procurelens/procurelens/core"

// AnalysisMonitor provides hooks to observe an agent's query pipeline.
// Implement this interface to track retrieval and generation steps.
type AnalysisMonitor interface {
	Start(role Role, query string)
	AfterRetrieval(chunks []core.ScoredChunk)
	BeforeGeneration(prompt string)
	Finish(answer string)
}

// noopMonitor is a no-op implementation of AnalysisMonitor
type noopMonitor struct{}

var _ AnalysisMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ Role, _ string)              {}
func (n *noopMonitor) AfterRetrieval(_ []core.ScoredChunk) {}
func (n *noopMonitor) BeforeGeneration(_ string)           {}
func (n *noopMonitor) Finish(_ string)                     {}
