// Package cascade computes change-propagation waves through the decision
// graph. A change to one decision ripples to its dependents (downstream) or
// exposes what constrains it (upstream); both directions report discrete
// waves so reviewers can work outward in order.
package cascade

import (
	"fmt"
	"sort"

	"github.com/steveyegge/dna/internal/graph"
	"github.com/steveyegge/dna/internal/types"
)

// Effect is one affected node within a wave. A node can appear twice in the
// same wave when two nodes from the previous wave both point at it; each
// occurrence carries its own reason.
type Effect struct {
	Node         string `json:"node"`
	CurrentState string `json:"current_state"`
	Reason       string `json:"reason"`
	CrossScope   bool   `json:"cross_directory,omitempty"`
}

// Wave groups the effects discovered at the same distance from the start.
type Wave struct {
	Wave    int      `json:"wave"`
	Effects []Effect `json:"effects"`
}

// Summary totals a cascade. TotalAffected counts effect occurrences;
// UniqueAffected counts distinct nodes.
type Summary struct {
	TotalAffected  int `json:"total_affected"`
	UniqueAffected int `json:"unique_affected"`
	WaveCount      int `json:"wave_count"`
}

// Report is the full result of a cascade computation.
type Report struct {
	StartNode string  `json:"start_node"`
	Direction string  `json:"direction,omitempty"`
	Waves     []Wave  `json:"waves"`
	Summary   Summary `json:"summary"`
}

// Downstream walks dependents outward from start in breadth-first waves.
// Each node is visited once, at the earliest wave it is reachable.
func Downstream(g *graph.Graph, start string) (*Report, error) {
	if g.Get(start) == nil {
		return nil, fmt.Errorf("%s not found in graph", start)
	}

	rep := &Report{StartNode: start}
	visited := make(map[string]bool)
	changed := map[string]bool{start: true}
	waveNum := 0

	for len(changed) > 0 {
		waveNum++
		var effects []Effect
		next := make(map[string]bool)

		for _, nid := range sortedKeys(changed) {
			if visited[nid] {
				continue
			}
			visited[nid] = true
			n := g.Get(nid)

			for _, depID := range g.Dependents(nid) {
				if visited[depID] {
					continue
				}
				dep := g.Get(depID)
				effects = append(effects, Effect{
					Node:         depID,
					CurrentState: stateOf(dep),
					Reason:       fmt.Sprintf("depends on %s", nid),
					CrossScope:   n.Scope != dep.Scope,
				})
				next[depID] = true
			}
		}

		if len(effects) > 0 {
			rep.Waves = append(rep.Waves, Wave{Wave: waveNum, Effects: effects})
		}
		changed = next
	}

	rep.Summary = summarize(rep.Waves)
	return rep, nil
}

// Upstream walks dependencies inward from start, reporting what constrains
// it wave by wave.
func Upstream(g *graph.Graph, start string) (*Report, error) {
	if g.Get(start) == nil {
		return nil, fmt.Errorf("%s not found in graph", start)
	}

	rep := &Report{StartNode: start, Direction: "upstream"}
	visited := make(map[string]bool)
	current := map[string]bool{start: true}
	waveNum := 0

	for len(current) > 0 {
		waveNum++
		var effects []Effect
		next := make(map[string]bool)

		for _, nid := range sortedKeys(current) {
			if visited[nid] {
				continue
			}
			visited[nid] = true
			n := g.Get(nid)

			for _, depID := range n.Deps() {
				dep := g.Get(depID)
				if dep == nil || visited[depID] {
					continue
				}
				effects = append(effects, Effect{
					Node:         depID,
					CurrentState: stateOf(dep),
					Reason:       fmt.Sprintf("%s depends on this", nid),
					CrossScope:   n.Scope != dep.Scope,
				})
				next[depID] = true
			}
		}

		if len(effects) > 0 {
			rep.Waves = append(rep.Waves, Wave{Wave: waveNum, Effects: effects})
		}
		current = next
	}

	rep.Summary = summarize(rep.Waves)
	return rep, nil
}

func summarize(waves []Wave) Summary {
	total := 0
	unique := make(map[string]bool)
	for _, w := range waves {
		total += len(w.Effects)
		for _, e := range w.Effects {
			unique[e.Node] = true
		}
	}
	return Summary{
		TotalAffected:  total,
		UniqueAffected: len(unique),
		WaveCount:      len(waves),
	}
}

func stateOf(d *types.Decision) string {
	if d.State == "" {
		return "unknown"
	}
	return string(d.State)
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
