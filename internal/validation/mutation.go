package validation

import (
	"strconv"
	"strings"

	"github.com/steveyegge/dna/internal/graph"
	"github.com/steveyegge/dna/internal/types"
)

// ForCreate pre-validates a node that does not exist yet against the
// current graph. targetScope is the partition the node would be written
// into. The incremental cycle check only runs when earlier checks found no
// errors, so it never reasons about a node that is already invalid.
func ForCreate(d *types.Decision, g *graph.Graph, targetScope types.Scope) *Result {
	res := &Result{}
	nid := d.ID

	if !types.ValidID(nid) {
		res.errorf("%s: ID must match DEC-NNN (3 digits)", nid)
	}

	if existing := g.Get(nid); existing != nil {
		res.errorf("%s: ID already exists at %s", nid, existing.FilePath)
	}

	if !types.ValidLevel(d.Level) {
		res.errorf("%s: invalid level '%d' (must be 1-4)", nid, d.Level)
	}

	state := d.State
	if state == "" {
		state = types.StateSuggested
	}
	if !state.IsValid() {
		res.errorf("%s: invalid state '%s' (must be suggested/committed/superseded)", nid, state)
	}

	if d.Stakes != "" && !d.Stakes.IsValid() {
		res.errorf("%s: invalid stakes '%s' (must be high/medium/low)", nid, d.Stakes)
	}

	deps := d.Deps()
	for _, depID := range deps {
		dep := g.Get(depID)
		switch {
		case dep == nil:
			res.errorf("%s: depends_on references non-existent %s", nid, depID)
		case depID == nid:
			res.errorf("%s: self-dependency", nid)
		default:
			if dep.Level != 0 && d.Level != 0 && dep.Level > d.Level {
				res.warnf("%s (level %d): depends on %s (level %d) — level inversion", nid, d.Level, depID, dep.Level)
			}
		}
	}

	if targetScope == types.ScopeConstitution {
		for _, depID := range deps {
			if dep := g.Get(depID); dep != nil && dep.Scope == types.ScopeProject {
				res.errorf("%s: constitution depends on project %s (iron rule violation)", nid, depID)
			}
		}
	}

	if state == types.StateCommitted {
		for _, depID := range deps {
			dep := g.Get(depID)
			if dep == nil {
				continue
			}
			depState := string(dep.State)
			if depState == "" {
				depState = "unknown"
			}
			if dep.State != types.StateCommitted {
				res.errorf("%s: cannot create as committed — upstream %s is '%s'", nid, depID, depState)
			}
		}
	}

	if len(deps) > 0 && res.OK() {
		adj := g.Adjacency("")
		adj[nid] = deps
		for _, depID := range deps {
			if reaches(adj, depID, nid) {
				res.errorf("%s: adding this node would create a cycle through %s", nid, depID)
			}
		}
	}

	return res
}

// ForSet pre-validates a single-field update on an existing node. value is
// the raw string from the command line; for depends_on it is a
// comma-separated ID list.
func ForSet(g *graph.Graph, nid, field, value string) *Result {
	res := &Result{}

	node := g.Get(nid)
	if node == nil {
		res.errorf("%s: not found in graph", nid)
		return res
	}

	switch field {
	case "state":
		oldState := node.State
		if oldState == "" {
			oldState = types.StateSuggested
		}
		newState := types.State(value)
		if !oldState.CanTransition(newState) {
			res.errorf("%s: Illegal state transition: %s → %s", nid, oldState, newState)
		}
		if newState == types.StateCommitted && res.OK() {
			for _, depID := range node.Deps() {
				dep := g.Get(depID)
				if dep == nil {
					continue
				}
				depState := string(dep.State)
				if depState == "" {
					depState = "unknown"
				}
				if dep.State != types.StateCommitted {
					res.errorf("%s: cannot commit — upstream %s is '%s'", nid, depID, depState)
				}
			}
		}

	case "depends_on":
		deps := ParseDeps(value)
		for _, depID := range deps {
			dep := g.Get(depID)
			switch {
			case dep == nil:
				res.errorf("%s: depends_on references non-existent %s", nid, depID)
			case depID == nid:
				res.errorf("%s: self-dependency", nid)
			default:
				if dep.Level != 0 && node.Level != 0 && dep.Level > node.Level {
					res.warnf("%s (level %d): depends on %s (level %d) — level inversion", nid, node.Level, depID, dep.Level)
				}
			}
		}

		if node.Scope == types.ScopeConstitution {
			for _, depID := range deps {
				if dep := g.Get(depID); dep != nil && dep.Scope == types.ScopeProject {
					res.errorf("%s: constitution depends on project %s (iron rule violation)", nid, depID)
				}
			}
		}

		if len(deps) > 0 && res.OK() {
			// Drop the node's current edges before adding the proposed
			// ones, or a dep the node already has would look like a cycle.
			adj := g.Adjacency(nid)
			adj[nid] = deps
			for _, depID := range deps {
				if reaches(adj, depID, nid) {
					res.errorf("%s: this change would create a cycle through %s", nid, depID)
				}
			}
		}

	case "level":
		level, err := strconv.Atoi(value)
		if err != nil || !types.ValidLevel(level) {
			res.errorf("%s: invalid level '%s' (must be 1-4)", nid, value)
			break
		}
		for _, depID := range node.Deps() {
			if dep := g.Get(depID); dep != nil && dep.Level != 0 && dep.Level > level {
				res.warnf("%s (level %d): depends on %s (level %d) — level inversion", nid, level, depID, dep.Level)
			}
		}

	case "stakes":
		if !types.Stakes(value).IsValid() {
			res.errorf("%s: invalid stakes '%s' (must be high/medium/low)", nid, value)
		}

	case "title":
		if strings.TrimSpace(value) == "" {
			res.errorf("%s: title cannot be empty", nid)
		}

	default:
		res.errorf("Unknown field: %s (valid: state, depends_on, level, stakes, title)", field)
	}

	return res
}

// ParseDeps splits a comma-separated dependency list, trimming whitespace
// and dropping empty entries.
func ParseDeps(value string) []string {
	var deps []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			deps = append(deps, p)
		}
	}
	return deps
}
