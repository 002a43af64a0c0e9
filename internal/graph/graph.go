// Package graph builds the in-memory decision graph from record files.
//
// A graph is loaded fresh on every invocation from two partitions: the
// upstream constitution directory and the project directory. Edges are
// derived views over the node mapping, never stored.
package graph

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/steveyegge/dna/internal/frontmatter"
	"github.com/steveyegge/dna/internal/types"
)

// Graph is the identity-keyed node mapping for one invocation. It is
// immutable for the duration of a run; mutations happen through record
// files and a fresh load.
type Graph struct {
	Nodes map[string]*types.Decision
}

// New creates an empty graph. Mostly useful for tests.
func New() *Graph {
	return &Graph{Nodes: make(map[string]*types.Decision)}
}

// FromNodes wraps an existing node mapping in a Graph.
func FromNodes(nodes map[string]*types.Decision) *Graph {
	return &Graph{Nodes: nodes}
}

// Load reads all decision records from the constitution and project
// partitions into a single graph. The constitution partition loads first;
// within each partition files load in sorted order. An ID present in both
// partitions is the one fatal condition in the system.
func Load(constitutionDir, projectDir string) (*Graph, error) {
	g := New()

	partitions := []struct {
		scope types.Scope
		dir   string
	}{
		{types.ScopeConstitution, constitutionDir},
		{types.ScopeProject, projectDir},
	}

	for _, p := range partitions {
		if p.dir == "" {
			continue
		}
		if info, err := os.Stat(p.dir); err != nil || !info.IsDir() {
			// The constitution partition is optional; a project partition
			// that does not exist yet just loads zero nodes.
			continue
		}

		paths, err := filepath.Glob(filepath.Join(p.dir, "DEC-*.md"))
		if err != nil {
			return nil, fmt.Errorf("scanning %s: %w", p.dir, err)
		}
		sort.Strings(paths)

		for _, path := range paths {
			d, _, err := frontmatter.ParseFile(path)
			if err != nil || d == nil || d.ID == "" {
				// Unparseable or not a decision record; skip rather than
				// fail the load. The ID collision below is the only fatal
				// condition.
				continue
			}
			if existing, ok := g.Nodes[d.ID]; ok {
				return nil, fmt.Errorf("ID collision: %s exists in both %s and %s",
					d.ID, existing.Scope, p.scope)
			}
			d.Scope = p.scope
			g.Nodes[d.ID] = d
		}
	}

	return g, nil
}

// Get returns the node for id, or nil when absent.
func (g *Graph) Get(id string) *types.Decision {
	return g.Nodes[id]
}

// Len returns the node count.
func (g *Graph) Len() int {
	return len(g.Nodes)
}

// SortedIDs returns all node IDs in ascending order.
func (g *Graph) SortedIDs() []string {
	return types.SortedIDs(g.Nodes)
}

// Dependents returns the IDs of all nodes whose depends_on includes id,
// sorted ascending. This is the reverse-edge view, computed on demand.
func (g *Graph) Dependents(id string) []string {
	var out []string
	for nid, n := range g.Nodes {
		if n.DependsDirectlyOn(id) {
			out = append(out, nid)
		}
	}
	sort.Strings(out)
	return out
}

// ReverseAdjacency builds the full dependents view: dep ID to the set of
// node IDs depending on it. Dangling references are excluded.
func (g *Graph) ReverseAdjacency() map[string][]string {
	rev := make(map[string][]string)
	for nid, n := range g.Nodes {
		for _, dep := range n.Deps() {
			if _, ok := g.Nodes[dep]; ok {
				rev[dep] = append(rev[dep], nid)
			}
		}
	}
	for dep := range rev {
		sort.Strings(rev[dep])
	}
	return rev
}

// Adjacency builds the forward-edge view restricted to existing nodes.
// The skip ID, when non-empty, has its outgoing edges omitted; the
// incremental cycle checks use that to drop a node's old edges before
// substituting proposed ones.
func (g *Graph) Adjacency(skip string) map[string][]string {
	adj := make(map[string][]string)
	for nid, n := range g.Nodes {
		if nid == skip {
			continue
		}
		for _, dep := range n.Deps() {
			if _, ok := g.Nodes[dep]; ok {
				adj[nid] = append(adj[nid], dep)
			}
		}
	}
	return adj
}
