// Package validation implements graph-wide validation and pre-mutation
// checks for decision records.
//
// Validate runs every check over the whole graph and reports all findings;
// no check short-circuits another. Errors are violations that make the
// graph unsafe to mutate; warnings are hygiene findings.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/steveyegge/dna/internal/configfile"
	"github.com/steveyegge/dna/internal/graph"
	"github.com/steveyegge/dna/internal/types"
)

// Result collects the findings of a validation pass.
type Result struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (r *Result) errorf(format string, args ...interface{}) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Result) warnf(format string, args ...interface{}) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// OK reports whether the pass found no errors (warnings are allowed).
func (r *Result) OK() bool {
	return len(r.Errors) == 0
}

var sectionPatterns = compileSectionPatterns()

func compileSectionPatterns() map[string]*regexp.Regexp {
	m := make(map[string]*regexp.Regexp, len(types.RequiredSections))
	for _, s := range types.RequiredSections {
		m[s] = regexp.MustCompile(`(?m)^## ` + s + `[ \t]*$`)
	}
	return m
}

// Validate runs every structural, semantic, and body-content check over the
// graph. cfg may be nil, in which case the config-driven body lints are
// skipped.
func Validate(g *graph.Graph, cfg *configfile.Config) *Result {
	res := &Result{}
	ids := g.SortedIDs()

	// Per-node field and reference checks.
	for _, nid := range ids {
		n := g.Nodes[nid]

		if !strings.HasPrefix(nid, types.IDPrefix) {
			res.errorf("%s: ID must start with DEC-", nid)
		}

		if n.Title == "" {
			res.warnf("%s: missing title", nid)
		}
		if n.Date == "" {
			res.warnf("%s: missing date", nid)
		}

		if n.Level == 0 {
			res.errorf("%s: missing level", nid)
		} else if !types.ValidLevel(n.Level) {
			res.errorf("%s: invalid level '%d' (must be 1-4)", nid, n.Level)
		}

		if n.State != "" && !n.State.IsValid() {
			res.errorf("%s: invalid state '%s' (must be suggested/committed/superseded)", nid, n.State)
		} else if n.State == "" {
			res.warnf("%s: missing state", nid)
		}

		if n.Stakes != "" && !n.Stakes.IsValid() {
			res.errorf("%s: invalid stakes '%s' (must be high/medium/low)", nid, n.Stakes)
		}

		for _, depID := range n.Deps() {
			if g.Get(depID) == nil {
				res.errorf("%s: depends_on references non-existent %s", nid, depID)
			}
		}

		for _, section := range types.RequiredSections {
			if !sectionPatterns[section].MatchString(n.Body) {
				res.warnf("%s: missing required section ## %s", nid, section)
			}
		}
	}

	detectCycles(g, res)

	// Orphans: no upstream deps and no downstream dependents.
	for _, nid := range ids {
		if len(g.Nodes[nid].Deps()) == 0 && len(g.Dependents(nid)) == 0 {
			res.warnf("%s: orphan (no upstream or downstream edges)", nid)
		}
	}

	// Level ordering: dependencies should sit at the same or lower level
	// number.
	for _, nid := range ids {
		n := g.Nodes[nid]
		if n.Level == 0 {
			continue
		}
		for _, depID := range n.Deps() {
			dep := g.Get(depID)
			if dep != nil && dep.Level != 0 && dep.Level > n.Level {
				res.warnf("%s (level %d): depends on %s (level %d) — level inversion", nid, n.Level, depID, dep.Level)
			}
		}
	}

	// Iron rule: a constitution node may never depend on a project node.
	for _, nid := range ids {
		n := g.Nodes[nid]
		if n.Scope != types.ScopeConstitution {
			continue
		}
		for _, depID := range n.Deps() {
			if dep := g.Get(depID); dep != nil && dep.Scope == types.ScopeProject {
				res.errorf("%s: constitution depends on project %s (iron rule violation)", nid, depID)
			}
		}
	}

	// State health: a committed node resting on non-committed upstream.
	for _, nid := range ids {
		n := g.Nodes[nid]
		if n.State != types.StateCommitted {
			continue
		}
		for _, depID := range n.Deps() {
			dep := g.Get(depID)
			if dep == nil {
				continue
			}
			switch dep.State {
			case types.StateSuperseded:
				res.errorf("%s: committed but upstream %s is superseded", nid, depID)
			case types.StateSuggested:
				res.errorf("%s: committed but upstream %s is still suggested", nid, depID)
			}
		}
	}

	lintBodies(g, cfg, res)

	// Strict upstream check: L2+ nodes with no deps, unless the plain
	// orphan check already flagged them.
	for _, nid := range ids {
		n := g.Nodes[nid]
		if n.Level >= 2 && len(n.Deps()) == 0 && len(g.Dependents(nid)) > 0 {
			res.warnf("%s [missing-dep]: no depends_on — L%d decisions should have upstream dependencies", nid, n.Level)
		}
	}

	return res
}

const (
	white = iota
	gray
	black
)

// detectCycles runs a three-color depth-first search with an explicit work
// stack and reports the first cycle found in each component as the exact
// node path.
func detectCycles(g *graph.Graph, res *Result) {
	adj := g.Adjacency("")
	color := make(map[string]int, g.Len())

	type frame struct {
		id   string
		next int
	}

	for _, root := range g.SortedIDs() {
		if color[root] != white {
			continue
		}
		color[root] = gray
		stack := []*frame{{id: root}}
		path := []string{root}

		for len(stack) > 0 {
			f := stack[len(stack)-1]
			children := adj[f.id]
			if f.next < len(children) {
				v := children[f.next]
				f.next++
				switch color[v] {
				case gray:
					start := 0
					for i, p := range path {
						if p == v {
							start = i
							break
						}
					}
					cycle := append(append([]string{}, path[start:]...), v)
					res.errorf("Cycle detected: %s", strings.Join(cycle, " → "))
					// One cycle per component: finish this traversal.
					for _, p := range path {
						color[p] = black
					}
					stack = nil
					path = nil
				case white:
					color[v] = gray
					stack = append(stack, &frame{id: v})
					path = append(path, v)
				}
				continue
			}
			color[f.id] = black
			stack = stack[:len(stack)-1]
			path = path[:len(path)-1]
		}
	}
}

// reaches reports whether target is reachable from start following the
// forward (dependency) edges in adj.
func reaches(adj map[string][]string, start, target string) bool {
	visited := make(map[string]bool)
	stack := []string{start}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur == target {
			return true
		}
		if visited[cur] {
			continue
		}
		visited[cur] = true
		stack = append(stack, adj[cur]...)
	}
	return false
}
