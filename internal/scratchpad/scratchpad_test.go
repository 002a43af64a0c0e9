package scratchpad

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steveyegge/dna/internal/graph"
	"github.com/steveyegge/dna/internal/types"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore(filepath.Join(t.TempDir(), ".dna"))
	s.now = func() time.Time { return time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC) }
	return s
}

func testGraph(ids ...string) *graph.Graph {
	m := make(map[string]*types.Decision, len(ids))
	for _, id := range ids {
		m[id] = &types.Decision{ID: id, Level: 2, State: types.StateSuggested, Scope: types.ScopeProject}
	}
	return graph.FromNodes(m)
}

func TestLoadEmpty(t *testing.T) {
	s := testStore(t)
	entries, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestAddAllocatesSequentialIDs(t *testing.T) {
	s := testStore(t)

	e1, err := s.Add(TypeIdea, "try event sourcing", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "SP-001", e1.ID)
	assert.Equal(t, "2026-04-01", e1.Created)

	e2, err := s.Add(TypeQuestion, "who owns rollout", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "SP-002", e2.ID)

	entries, err := s.Load()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.True(t, entries[0].Active())
}

func TestNextIDSkipsGaps(t *testing.T) {
	entries := []Entry{{ID: "SP-001"}, {ID: "SP-007"}, {ID: "bogus"}}
	assert.Equal(t, "SP-008", NextID(entries))
}

func TestAddValidation(t *testing.T) {
	s := testStore(t)

	_, err := s.Add("musing", "x", nil, nil)
	require.Error(t, err)
	assert.Equal(t, "invalid type 'musing' (must be one of: concern, constraint, idea, question)", err.Error())

	_, err = s.Add(TypeIdea, "  ", nil, nil)
	require.Error(t, err)

	_, err = s.Add(TypeIdea, "x", []string{"DEC-009"}, testGraph("DEC-001"))
	require.Error(t, err)
	assert.Equal(t, "linked decision DEC-009 not found in graph", err.Error())

	e, err := s.Add(TypeIdea, "x", []string{"DEC-001"}, testGraph("DEC-001"))
	require.NoError(t, err)
	assert.Equal(t, []string{"DEC-001"}, e.Links)
}

func TestMature(t *testing.T) {
	s := testStore(t)
	g := testGraph("DEC-001")

	e, err := s.Add(TypeConcern, "latency budget unclear", nil, nil)
	require.NoError(t, err)

	_, err = s.Mature("SP-099", "DEC-001", g)
	require.Error(t, err)
	assert.Equal(t, "SP-099 not found in scratchpad", err.Error())

	_, err = s.Mature(e.ID, "DEC-050", g)
	require.Error(t, err)
	assert.Equal(t, "DEC-050 not found in graph", err.Error())

	matured, err := s.Mature(e.ID, "DEC-001", g)
	require.NoError(t, err)
	assert.Equal(t, "DEC-001", matured.MaturedTo)

	// A second mature is rejected.
	_, err = s.Mature(e.ID, "DEC-001", g)
	require.Error(t, err)
	assert.Equal(t, "SP-001 already matured to DEC-001", err.Error())
}

func TestPartitionAndSummary(t *testing.T) {
	entries := []Entry{
		{ID: "SP-001", Type: TypeIdea},
		{ID: "SP-002", Type: TypeIdea},
		{ID: "SP-003", Type: TypeQuestion},
		{ID: "SP-004", Type: TypeConcern, MaturedTo: "DEC-001"},
	}

	active, matured := Partition(entries, "")
	assert.Len(t, active, 3)
	assert.Len(t, matured, 1)

	ideas, _ := Partition(entries, TypeIdea)
	assert.Len(t, ideas, 2)

	assert.Equal(t, "3 active — 2 idea(s), 1 question(s)", Summary(entries))
	assert.Equal(t, "", Summary([]Entry{{ID: "SP-001", MaturedTo: "DEC-001"}}))
}

func TestSaveIsAtomic(t *testing.T) {
	s := testStore(t)
	_, err := s.Add(TypeIdea, "x", nil, nil)
	require.NoError(t, err)

	_, err = os.Stat(s.path() + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file must not linger")
}
