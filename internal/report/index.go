// Package report generates the derived markdown artifacts: per-partition
// INDEX.md files and the repository HEALTH.md.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/steveyegge/dna/internal/frontmatter"
	"github.com/steveyegge/dna/internal/graph"
	"github.com/steveyegge/dna/internal/types"
)

// IndexResult describes one written index file.
type IndexResult struct {
	Path  string
	Count int
}

// WriteIndexes regenerates INDEX.md in each partition directory. The
// constitution index is only written when the directory exists and holds
// nodes; the project index is always written.
func WriteIndexes(g *graph.Graph, constitutionDir, projectDir string) ([]IndexResult, error) {
	constitution := make(map[string]*types.Decision)
	project := make(map[string]*types.Decision)
	for id, n := range g.Nodes {
		if n.Scope == types.ScopeConstitution {
			constitution[id] = n
		} else {
			project[id] = n
		}
	}

	var results []IndexResult

	if info, err := os.Stat(constitutionDir); err == nil && info.IsDir() && len(constitution) > 0 {
		path := filepath.Join(constitutionDir, "INDEX.md")
		if err := frontmatter.WriteFile(path, []byte(IndexContent(constitution, "Constitution Index"))); err != nil {
			return nil, err
		}
		results = append(results, IndexResult{Path: path, Count: len(constitution)})
	}

	path := filepath.Join(projectDir, "INDEX.md")
	if err := frontmatter.WriteFile(path, []byte(IndexContent(project, "DNA Index"))); err != nil {
		return nil, err
	}
	results = append(results, IndexResult{Path: path, Count: len(project)})

	return results, nil
}

// IndexContent renders the index table for one partition.
func IndexContent(nodes map[string]*types.Decision, title string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	b.WriteString("Derived index. Regenerate via `dna index`. Do not edit directly.\n\n")
	fmt.Fprintf(&b, "**Total:** %d decisions\n\n", len(nodes))
	b.WriteString("| ID | Title | Level | State | Stakes | Depends On |\n")
	b.WriteString("|----|-------|-------|-------|--------|------------|\n")

	for _, nid := range types.SortedIDs(nodes) {
		n := nodes[nid]
		deps := strings.Join(n.Deps(), ", ")
		if deps == "" {
			deps = "—"
		}
		title := strings.ReplaceAll(n.Title, "|", "\\|")
		level := ""
		if n.Level != 0 {
			level = fmt.Sprintf("%d", n.Level)
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n", nid, title, level, n.State, n.Stakes, deps)
	}

	return b.String()
}
