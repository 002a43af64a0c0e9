// Package manifest produces the deterministic skeletons used to compile
// the human and agent contracts from the decision graph.
package manifest

import (
	"strconv"

	"github.com/steveyegge/dna/internal/graph"
	"github.com/steveyegge/dna/internal/types"
)

// NodeSummary is the compact node form embedded in manifests.
type NodeSummary struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Level  int    `json:"level"`
	State  string `json:"state"`
	Stakes string `json:"stakes,omitempty"`
}

// Counts totals the graph by state and level.
type Counts struct {
	Total      int            `json:"total"`
	Committed  int            `json:"committed"`
	Suggested  int            `json:"suggested"`
	Superseded int            `json:"superseded"`
	ByLevel    map[string]int `json:"by_level"`
}

// LevelEntry groups one level's decisions in the human manifest.
type LevelEntry struct {
	Name      string        `json:"name"`
	Committed []NodeSummary `json:"committed"`
	Suggested []NodeSummary `json:"suggested,omitempty"`
}

// HumanManifest groups decisions by level for the human contract.
type HumanManifest struct {
	Target string                `json:"target"`
	Levels map[string]LevelEntry `json:"levels"`
	Counts Counts                `json:"counts"`
}

// AgentManifest classifies decisions for the agent contract.
type AgentManifest struct {
	Target       string        `json:"target"`
	Constitution []NodeSummary `json:"constitution"`
	HighStakes   []NodeSummary `json:"high_stakes"`
	AllCommitted []NodeSummary `json:"all_committed"`
	AllSuggested []NodeSummary `json:"all_suggested"`
	Counts       Counts        `json:"counts"`
}

func summarize(n *types.Decision) NodeSummary {
	state := string(n.State)
	if state == "" {
		state = "unknown"
	}
	return NodeSummary{
		ID:     n.ID,
		Title:  n.Title,
		Level:  n.Level,
		State:  state,
		Stakes: string(n.Stakes),
	}
}

// CountGraph computes the shared count block.
func CountGraph(g *graph.Graph) Counts {
	counts := Counts{Total: g.Len(), ByLevel: make(map[string]int)}
	for _, n := range g.Nodes {
		counts.ByLevel[strconv.Itoa(n.Level)]++
		switch n.State {
		case types.StateCommitted:
			counts.Committed++
		case types.StateSuggested:
			counts.Suggested++
		case types.StateSuperseded:
			counts.Superseded++
		}
	}
	return counts
}

// Human builds the level-grouped manifest.
func Human(g *graph.Graph) *HumanManifest {
	m := &HumanManifest{
		Target: "human",
		Levels: make(map[string]LevelEntry, types.MaxLevel),
		Counts: CountGraph(g),
	}

	for lvl := types.MinLevel; lvl <= types.MaxLevel; lvl++ {
		entry := LevelEntry{Name: types.LevelName(lvl), Committed: []NodeSummary{}}
		for _, nid := range g.SortedIDs() {
			n := g.Nodes[nid]
			if n.Level != lvl {
				continue
			}
			switch n.State {
			case types.StateCommitted:
				entry.Committed = append(entry.Committed, summarize(n))
			case types.StateSuggested:
				entry.Suggested = append(entry.Suggested, summarize(n))
			}
		}
		m.Levels[strconv.Itoa(lvl)] = entry
	}
	return m
}

// Agent builds the classified manifest.
func Agent(g *graph.Graph) *AgentManifest {
	m := &AgentManifest{
		Target:       "agent",
		Constitution: []NodeSummary{},
		HighStakes:   []NodeSummary{},
		AllCommitted: []NodeSummary{},
		AllSuggested: []NodeSummary{},
		Counts:       CountGraph(g),
	}

	for _, nid := range g.SortedIDs() {
		n := g.Nodes[nid]
		s := summarize(n)

		if n.Scope == types.ScopeConstitution {
			m.Constitution = append(m.Constitution, s)
		}
		if n.Stakes == types.StakesHigh {
			m.HighStakes = append(m.HighStakes, s)
		}
		switch n.State {
		case types.StateCommitted:
			m.AllCommitted = append(m.AllCommitted, s)
		case types.StateSuggested:
			m.AllSuggested = append(m.AllSuggested, s)
		}
	}
	return m
}
