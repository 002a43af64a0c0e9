package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steveyegge/dna/internal/cascade"
	"github.com/steveyegge/dna/internal/frontier"
	"github.com/steveyegge/dna/internal/graph"
	"github.com/steveyegge/dna/internal/types"
)

func testGraph() *graph.Graph {
	return graph.FromNodes(map[string]*types.Decision{
		"DEC-001": {
			ID: "DEC-001", Title: "Ship the parser", Level: 2,
			State: types.StateCommitted, Scope: types.ScopeConstitution,
		},
		"DEC-002": {
			ID: "DEC-002", Title: "Adopt streaming", Level: 3,
			State: types.StateSuggested, Scope: types.ScopeProject,
			DependsOn: types.DepRefs([]string{"DEC-001"}),
		},
	})
}

func TestDiffSorted(t *testing.T) {
	got := diffSorted([]string{"b", "a", "c"}, []string{"c"})
	assert.Equal(t, []string{"a", "b"}, got)

	assert.Empty(t, diffSorted(nil, []string{"x"}))
	assert.Empty(t, diffSorted([]string{"x"}, []string{"x"}))
}

func TestStakesTag(t *testing.T) {
	assert.Equal(t, "", stakesTag(""))
	assert.Equal(t, " [high]", stakesTag("high"))
}

func TestShortCommit(t *testing.T) {
	assert.Equal(t, "abc", shortCommit("abc"))
	assert.Equal(t, "0123456789ab", shortCommit("0123456789abcdef"))
}

func TestApplyField(t *testing.T) {
	node := &types.Decision{
		ID: "DEC-001", Title: "Old title", Level: 2,
		State:     types.StateSuggested,
		DependsOn: types.DepRefs([]string{"DEC-002"}),
	}

	old, next := applyField(node, "state", "committed")
	assert.Equal(t, "suggested", old)
	assert.Equal(t, "committed", next)
	assert.Equal(t, types.StateCommitted, node.State)

	old, next = applyField(node, "depends_on", "")
	assert.Equal(t, "DEC-002", old)
	assert.Equal(t, "[]", next)
	assert.Empty(t, node.Deps())

	old, next = applyField(node, "level", "3")
	assert.Equal(t, "2", old)
	assert.Equal(t, "3", next)
	assert.Equal(t, 3, node.Level)

	old, next = applyField(node, "title", "New title")
	assert.Equal(t, "Old title", old)
	assert.Equal(t, "New title", next)
}

func TestCascadeMarkdownReport(t *testing.T) {
	g := testGraph()
	rep, err := cascade.Downstream(g, "DEC-001")
	require.NoError(t, err)

	md := cascadeMarkdownReport(g, rep)
	assert.Contains(t, md, "### Cascade: DEC-001 — Ship the parser")
	assert.Contains(t, md, "**1 decisions** need review across 1 wave(s).")
	assert.Contains(t, md, "#### Wave 1")
	assert.Contains(t, md, "| DEC-002 | Adopt streaming | suggested | depends on DEC-001 [cross-dir] |")
}

func TestCascadeMarkdownReportNoDependents(t *testing.T) {
	g := testGraph()
	rep, err := cascade.Downstream(g, "DEC-002")
	require.NoError(t, err)

	md := cascadeMarkdownReport(g, rep)
	assert.Contains(t, md, "No downstream dependents.")
}

func TestFrontierMarkdownReport(t *testing.T) {
	g := testGraph()
	rep := frontier.Analyze(g, 10)

	md := frontierMarkdownReport(rep, 10)
	assert.Contains(t, md, "# Decision Frontier")
	assert.Contains(t, md, "## Committable Now")
	assert.Contains(t, md, "| DEC-002 | Adopt streaming | L3 |")
	assert.Contains(t, md, "None — all suggested decisions are committable.")
	assert.Contains(t, md, "## High-Weight Nodes (top 10)")

	// Level gap rows cover every level even when empty.
	for _, row := range []string{"| L1 |", "| L2 |", "| L3 |", "| L4 |"} {
		assert.True(t, strings.Contains(md, row), "missing row %s", row)
	}
}
