package graph

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/steveyegge/dna/internal/types"
)

func writeRecord(t *testing.T, dir, id, content string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0750); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	path := filepath.Join(dir, id+".md")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func record(id string, level int, state string, deps ...string) string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("id: " + id + "\n")
	b.WriteString("title: Test " + id + "\n")
	b.WriteString("date: 2026-01-15\n")
	b.WriteString("level: ")
	b.WriteString(map[int]string{1: "1", 2: "2", 3: "3", 4: "4"}[level])
	b.WriteString("\n")
	b.WriteString("state: " + state + "\n")
	if len(deps) == 0 {
		b.WriteString("depends_on: []\n")
	} else {
		b.WriteString("depends_on:\n")
		for _, d := range deps {
			b.WriteString("  - " + d + "\n")
		}
	}
	b.WriteString("---\n\nbody\n")
	return b.String()
}

func TestLoadAssignsScopes(t *testing.T) {
	root := t.TempDir()
	constDir := filepath.Join(root, "constitution")
	projDir := filepath.Join(root, "dna")

	writeRecord(t, constDir, "DEC-001", record("DEC-001", 1, "committed"))
	writeRecord(t, projDir, "DEC-002", record("DEC-002", 2, "suggested", "DEC-001"))

	g, err := Load(constDir, projDir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if g.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", g.Len())
	}
	if got := g.Get("DEC-001").Scope; got != types.ScopeConstitution {
		t.Errorf("DEC-001 scope = %q, want constitution", got)
	}
	if got := g.Get("DEC-002").Scope; got != types.ScopeProject {
		t.Errorf("DEC-002 scope = %q, want project", got)
	}
}

func TestLoadCollisionIsFatal(t *testing.T) {
	root := t.TempDir()
	constDir := filepath.Join(root, "constitution")
	projDir := filepath.Join(root, "dna")

	writeRecord(t, constDir, "DEC-001", record("DEC-001", 1, "committed"))
	writeRecord(t, projDir, "DEC-001", record("DEC-001", 2, "suggested"))

	_, err := Load(constDir, projDir)
	if err == nil {
		t.Fatal("Load succeeded, want ID collision error")
	}
	if !strings.Contains(err.Error(), "ID collision") {
		t.Errorf("error = %v, want ID collision", err)
	}
}

func TestLoadMissingConstitutionDir(t *testing.T) {
	root := t.TempDir()
	projDir := filepath.Join(root, "dna")
	writeRecord(t, projDir, "DEC-001", record("DEC-001", 1, "committed"))

	g, err := Load(filepath.Join(root, "does-not-exist"), projDir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if g.Len() != 1 {
		t.Errorf("Len() = %d, want 1", g.Len())
	}
}

func TestLoadSkipsNonRecords(t *testing.T) {
	root := t.TempDir()
	projDir := filepath.Join(root, "dna")
	writeRecord(t, projDir, "DEC-001", record("DEC-001", 1, "committed"))
	writeRecord(t, projDir, "DEC-002", "no frontmatter here\n")

	g, err := Load("", projDir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if g.Len() != 1 {
		t.Errorf("Len() = %d, want 1 (fenceless file skipped)", g.Len())
	}
}

func testGraph() *Graph {
	nodes := map[string]*types.Decision{
		"DEC-001": {ID: "DEC-001", Title: "Root", Level: 1, State: types.StateCommitted, Scope: types.ScopeProject},
		"DEC-002": {ID: "DEC-002", Title: "Mid", Level: 2, State: types.StateSuggested, Scope: types.ScopeProject,
			DependsOn: types.DepRefs([]string{"DEC-001"})},
		"DEC-003": {ID: "DEC-003", Title: "Leaf", Level: 3, State: types.StateSuggested, Scope: types.ScopeProject,
			DependsOn: types.DepRefs([]string{"DEC-001", "DEC-002"})},
	}
	return FromNodes(nodes)
}

func TestDependents(t *testing.T) {
	g := testGraph()

	got := g.Dependents("DEC-001")
	want := []string{"DEC-002", "DEC-003"}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("Dependents(DEC-001) = %v, want %v", got, want)
	}

	if got := g.Dependents("DEC-003"); len(got) != 0 {
		t.Errorf("Dependents(DEC-003) = %v, want none", got)
	}
}

func TestAdjacencySkip(t *testing.T) {
	g := testGraph()

	adj := g.Adjacency("DEC-003")
	if _, ok := adj["DEC-003"]; ok {
		t.Error("Adjacency(skip=DEC-003) still contains DEC-003 edges")
	}
	if len(adj["DEC-002"]) != 1 || adj["DEC-002"][0] != "DEC-001" {
		t.Errorf("Adjacency DEC-002 = %v, want [DEC-001]", adj["DEC-002"])
	}
}

func TestSearch(t *testing.T) {
	g := testGraph()
	g.Nodes["DEC-002"].Body = "\n## Decision\n\nWe choose sqlite for storage.\n\n## Reasoning\n\nBoring wins.\n"

	results := g.Search([]string{"sqlite"})
	if len(results) != 1 {
		t.Fatalf("Search(sqlite) = %d results, want 1", len(results))
	}
	r := results[0]
	if r.ID != "DEC-002" {
		t.Errorf("result ID = %q, want DEC-002", r.ID)
	}
	if len(r.MatchedSections) != 1 || r.MatchedSections[0] != "Decision" {
		t.Errorf("MatchedSections = %v, want [Decision]", r.MatchedSections)
	}

	// Title matches report "title".
	results = g.Search([]string{"leaf"})
	if len(results) != 1 || results[0].ID != "DEC-003" {
		t.Fatalf("Search(leaf) = %v", results)
	}
	if len(results[0].MatchedSections) != 1 || results[0].MatchedSections[0] != "title" {
		t.Errorf("MatchedSections = %v, want [title]", results[0].MatchedSections)
	}
}

func TestLoadSkipsMalformedRecords(t *testing.T) {
	root := t.TempDir()
	projDir := filepath.Join(root, "dna")

	writeRecord(t, projDir, "DEC-001", record("DEC-001", 2, "committed"))
	// Frontmatter that fails to decode.
	writeRecord(t, projDir, "DEC-002", "---\nid: [unclosed\n---\n\nbody\n")
	// Empty frontmatter block.
	writeRecord(t, projDir, "DEC-003", "---\n---\n\nbody\n")

	g, err := Load("", projDir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if g.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", g.Len())
	}
	if g.Get("DEC-001") == nil {
		t.Error("DEC-001 missing from graph")
	}
}
