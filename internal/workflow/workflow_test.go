package workflow

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quoteforge/quoteforge/internal/config"
)

const testWorkflowYAML = `name: Daily Quotes
description: Fetch quotes and turn them into scheduled shorts
output: output
steps:
  - name: Fetch quotes
    module: fetchquotes
    parameters:
      count: 10
  - name: Narrate quotes
    module: synthesizevoice
    parameters:
      input: ${output}/quotes.yaml
  - name: Generate backgrounds
    module: generatebackground
    parameters:
      input: ${output}/quotes.yaml
`

func writeWorkflowFile(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "workflow.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testWorkflowYAML), 0644))
	return path
}

func TestTopologicalSortOrdersSequentially(t *testing.T) {
	graph := NewWorkflowGraph()
	first := graph.AddNode(Step{Name: "first"})
	second := graph.AddNode(Step{Name: "second"})
	third := graph.AddNode(Step{Name: "third"})

	require.NoError(t, graph.AddEdge(first.ID, second.ID))
	require.NoError(t, graph.AddEdge(second.ID, third.ID))

	order, err := graph.TopologicalSort()
	require.NoError(t, err)
	assert.Equal(t, []string{first.ID, second.ID, third.ID}, order)
}

func TestTopologicalSortDetectsCycle(t *testing.T) {
	graph := NewWorkflowGraph()
	first := graph.AddNode(Step{Name: "first"})
	second := graph.AddNode(Step{Name: "second"})

	require.NoError(t, graph.AddEdge(first.ID, second.ID))
	require.NoError(t, graph.AddEdge(second.ID, first.ID))

	_, err := graph.TopologicalSort()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cycle")
}

func TestLoadFromFile(t *testing.T) {
	tempDir := t.TempDir()
	workflowPath := writeWorkflowFile(t, tempDir)
	outputDir := filepath.Join(tempDir, "out")

	inputConfig, err := config.NewInputConfig("", outputDir, workflowPath, false, "")
	require.NoError(t, err)

	wf, err := LoadFromFile(inputConfig)
	require.NoError(t, err)

	assert.Equal(t, "Daily Quotes", wf.Name)
	assert.Equal(t, outputDir, wf.Output)
	require.Len(t, wf.Steps, 3)
	assert.Equal(t, "fetchquotes", wf.Steps[0].Module)
}

func TestLoadFromFileDeckOverride(t *testing.T) {
	tempDir := t.TempDir()
	workflowPath := writeWorkflowFile(t, tempDir)
	outputDir := filepath.Join(tempDir, "out")

	// An existing deck file is pushed into every deck-consuming step
	deckPath := filepath.Join(tempDir, "existing-quotes.yaml")
	require.NoError(t, os.WriteFile(deckPath, []byte("quotes: []"), 0644))

	inputConfig, err := config.NewInputConfig(deckPath, outputDir, workflowPath, false, "")
	require.NoError(t, err)

	wf, err := LoadFromFile(inputConfig)
	require.NoError(t, err)

	assert.Equal(t, deckPath, wf.Steps[1].Parameters["input"])
	assert.Equal(t, deckPath, wf.Steps[2].Parameters["input"])
	// The fetch step takes no deck input and keeps its own parameters
	assert.NotContains(t, wf.Steps[0].Parameters, "input")
}

func TestResolveStepParams(t *testing.T) {
	wf := &Workflow{Output: "/tmp/run"}

	params := wf.resolveStepParams(Step{
		Name:   "step",
		Module: "composevideo",
		Parameters: map[string]interface{}{
			"input":     "${output}/quotes.yaml",
			"audioPath": "audio",
			"fps":       24,
			"voice":     "alloy",
		},
	})

	assert.Equal(t, "/tmp/run/quotes.yaml", params["input"])
	assert.Equal(t, "./audio", params["audioPath"])
	assert.Equal(t, 24, params["fps"])
	assert.Equal(t, "alloy", params["voice"])
}

func TestSaveAndLoadWorkflowState(t *testing.T) {
	tempDir := t.TempDir()

	wf := &Workflow{Name: "Daily Quotes"}
	graph := NewWorkflowGraph()
	node := graph.AddNode(Step{Name: "Fetch quotes", Module: "fetchquotes"})
	node.Status = NodeStatusComplete
	node.Outputs = map[string]string{"quotes": "/tmp/run/quotes.yaml"}

	state := &WorkflowState{
		ID:     "state-id",
		Name:   "Daily Quotes",
		Graph:  graph,
		Status: WorkflowStatusComplete,
	}

	statePath := filepath.Join(tempDir, "Daily_Quotes.state.yaml")
	require.NoError(t, wf.SaveWorkflowState(state, statePath))

	loaded, err := wf.LoadWorkflowState(statePath)
	require.NoError(t, err)
	assert.Equal(t, "state-id", loaded.ID)
	assert.Equal(t, WorkflowStatusComplete, loaded.Status)

	restored, exists := loaded.Graph.Nodes[node.ID]
	require.True(t, exists)
	assert.Equal(t, NodeStatusComplete, restored.Status)
	assert.Equal(t, "/tmp/run/quotes.yaml", restored.Outputs["quotes"])
}
