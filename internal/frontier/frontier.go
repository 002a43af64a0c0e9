// Package frontier answers "what should we decide next": which suggested
// decisions are committable now, which are blocked and on what, where the
// level coverage is thin, and which nodes carry the most downstream weight.
package frontier

import (
	"sort"

	"github.com/steveyegge/dna/internal/graph"
	"github.com/steveyegge/dna/internal/types"
)

// Entry is one suggested decision on the frontier. Blockers and
// CriticalPath are only populated for blocked entries.
type Entry struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	Level            int      `json:"level"`
	Stakes           string   `json:"stakes,omitempty"`
	Scope            string   `json:"scope"`
	DownstreamWeight int      `json:"downstream_weight"`
	DownstreamIDs    []string `json:"downstream_ids"`

	Blockers           []string `json:"blockers,omitempty"`
	CriticalPath       []string `json:"critical_path,omitempty"`
	CriticalPathLength int      `json:"critical_path_length,omitempty"`
}

// LevelGap is the per-level state breakdown.
type LevelGap struct {
	Level      int      `json:"level"`
	LevelName  string   `json:"level_name"`
	Committed  int      `json:"committed"`
	Suggested  int      `json:"suggested"`
	Superseded int      `json:"superseded"`
	Total      int      `json:"total"`
	Flags      []string `json:"flags"`
}

// HighWeight is a node ranked by transitive downstream dependents.
type HighWeight struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	Level            int      `json:"level"`
	State            string   `json:"state"`
	Stakes           string   `json:"stakes,omitempty"`
	Scope            string   `json:"scope"`
	DownstreamWeight int      `json:"downstream_weight"`
	DirectDependents []string `json:"direct_dependents"`
}

// Summary totals the frontier analysis.
type Summary struct {
	TotalDecisions   int `json:"total_decisions"`
	Suggested        int `json:"suggested"`
	CommittableCount int `json:"committable_count"`
	BlockedCount     int `json:"blocked_count"`
	LevelGapCount    int `json:"level_gap_count"`
}

// Report is the full frontier analysis.
type Report struct {
	CommittableNow []Entry      `json:"committable_now"`
	Blocked        []Entry      `json:"blocked"`
	LevelGaps      []LevelGap   `json:"level_gaps"`
	HighWeight     []HighWeight `json:"high_weight"`
	Summary        Summary      `json:"summary"`
}

// Analyze computes the frontier. topN bounds the high-weight section.
func Analyze(g *graph.Graph, topN int) *Report {
	downstream := TransitiveDownstream(g)
	rep := &Report{}

	for _, nid := range g.SortedIDs() {
		n := g.Nodes[nid]
		if n.State != types.StateSuggested {
			continue
		}

		var uncommitted []string
		for _, depID := range n.Deps() {
			if dep := g.Get(depID); dep != nil && dep.State != types.StateCommitted {
				uncommitted = append(uncommitted, depID)
			}
		}

		entry := Entry{
			ID:               nid,
			Title:            n.Title,
			Level:            n.Level,
			Stakes:           string(n.Stakes),
			Scope:            string(n.Scope),
			DownstreamWeight: len(downstream[nid]),
			DownstreamIDs:    downstream[nid],
		}

		if len(uncommitted) == 0 {
			rep.CommittableNow = append(rep.CommittableNow, entry)
		} else {
			entry.Blockers = uncommitted
			entry.CriticalPath = CriticalPath(g, nid)
			entry.CriticalPathLength = len(entry.CriticalPath)
			rep.Blocked = append(rep.Blocked, entry)
		}
	}

	// Committable: heaviest first, then lower levels first.
	sort.SliceStable(rep.CommittableNow, func(i, j int) bool {
		a, b := rep.CommittableNow[i], rep.CommittableNow[j]
		if a.DownstreamWeight != b.DownstreamWeight {
			return a.DownstreamWeight > b.DownstreamWeight
		}
		return levelOr99(a.Level) < levelOr99(b.Level)
	})

	// Blocked: shortest critical path first, then heaviest.
	sort.SliceStable(rep.Blocked, func(i, j int) bool {
		a, b := rep.Blocked[i], rep.Blocked[j]
		if a.CriticalPathLength != b.CriticalPathLength {
			return a.CriticalPathLength < b.CriticalPathLength
		}
		return a.DownstreamWeight > b.DownstreamWeight
	})

	rep.LevelGaps = levelGaps(g)

	for _, nid := range g.SortedIDs() {
		n := g.Nodes[nid]
		state := string(n.State)
		if state == "" {
			state = "unknown"
		}
		rep.HighWeight = append(rep.HighWeight, HighWeight{
			ID:               nid,
			Title:            n.Title,
			Level:            n.Level,
			State:            state,
			Stakes:           string(n.Stakes),
			Scope:            string(n.Scope),
			DownstreamWeight: len(downstream[nid]),
			DirectDependents: g.Dependents(nid),
		})
	}
	sort.SliceStable(rep.HighWeight, func(i, j int) bool {
		return rep.HighWeight[i].DownstreamWeight > rep.HighWeight[j].DownstreamWeight
	})
	if len(rep.HighWeight) > topN {
		rep.HighWeight = rep.HighWeight[:topN]
	}

	suggested := 0
	for _, n := range g.Nodes {
		if n.State == types.StateSuggested {
			suggested++
		}
	}
	flagged := 0
	for _, lg := range rep.LevelGaps {
		if len(lg.Flags) > 0 {
			flagged++
		}
	}
	rep.Summary = Summary{
		TotalDecisions:   g.Len(),
		Suggested:        suggested,
		CommittableCount: len(rep.CommittableNow),
		BlockedCount:     len(rep.Blocked),
		LevelGapCount:    flagged,
	}

	return rep
}

// TransitiveDownstream walks the reverse adjacency from every node and
// returns all transitively dependent IDs per node, sorted.
func TransitiveDownstream(g *graph.Graph) map[string][]string {
	reverse := g.ReverseAdjacency()
	result := make(map[string][]string, g.Len())

	for _, nid := range g.SortedIDs() {
		visited := make(map[string]bool)
		queue := append([]string{}, reverse[nid]...)
		for len(queue) > 0 {
			current := queue[0]
			queue = queue[1:]
			if visited[current] {
				continue
			}
			visited[current] = true
			for _, next := range reverse[current] {
				if !visited[next] {
					queue = append(queue, next)
				}
			}
		}
		ids := make([]string, 0, len(visited))
		for id := range visited {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		result[nid] = ids
	}
	return result
}

// CriticalPath finds the longest chain of non-committed upstream decisions
// blocking target. It returns the chain from the deepest ancestor toward
// target, excluding target itself; committing the chain in order unblocks
// the target.
func CriticalPath(g *graph.Graph, target string) []string {
	visited := map[string]bool{target: true}
	depth := map[string]int{target: 0}
	parent := make(map[string]string)
	var discovered []string

	queue := []string{target}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		n := g.Get(current)
		if n == nil {
			continue
		}
		for _, depID := range n.Deps() {
			dep := g.Get(depID)
			if dep == nil || visited[depID] || dep.State == types.StateCommitted {
				continue
			}
			visited[depID] = true
			depth[depID] = depth[current] + 1
			parent[depID] = current
			discovered = append(discovered, depID)
			queue = append(queue, depID)
		}
	}

	if len(parent) == 0 {
		// No chain beyond the node itself: fall back to direct
		// non-committed deps.
		var direct []string
		if n := g.Get(target); n != nil {
			for _, depID := range n.Deps() {
				if dep := g.Get(depID); dep != nil && dep.State != types.StateCommitted {
					direct = append(direct, depID)
				}
			}
		}
		return direct
	}

	deepest := discovered[0]
	for _, id := range discovered {
		if depth[id] > depth[deepest] {
			deepest = id
		}
	}

	var path []string
	for current := deepest; current != target; current = parent[current] {
		path = append(path, current)
	}
	return path
}

func levelGaps(g *graph.Graph) []LevelGap {
	gaps := make([]LevelGap, 0, types.MaxLevel)
	for lvl := types.MinLevel; lvl <= types.MaxLevel; lvl++ {
		gap := LevelGap{Level: lvl, LevelName: types.LevelName(lvl), Flags: []string{}}
		for _, n := range g.Nodes {
			if n.Level != lvl {
				continue
			}
			switch n.State {
			case types.StateCommitted:
				gap.Committed++
			case types.StateSuggested:
				gap.Suggested++
			case types.StateSuperseded:
				gap.Superseded++
			}
		}
		gap.Total = gap.Committed + gap.Suggested + gap.Superseded
		if gap.Suggested > gap.Committed {
			gap.Flags = append(gap.Flags, "more suggested than committed")
		}
		if gap.Committed == 0 && gap.Total > 0 {
			gap.Flags = append(gap.Flags, "no committed decisions")
		}
		gaps = append(gaps, gap)
	}
	return gaps
}

func levelOr99(level int) int {
	if level == 0 {
		return 99
	}
	return level
}
