// Package dna provides a minimal public API for working with a decision
// graph programmatically.
//
// Most tooling should shell out to the dna CLI. This package exports only
// the essential types and functions for Go-based extensions that want to
// load, validate or analyze a graph directly.
package dna

import (
	"github.com/steveyegge/dna/internal/cascade"
	"github.com/steveyegge/dna/internal/configfile"
	"github.com/steveyegge/dna/internal/frontier"
	"github.com/steveyegge/dna/internal/graph"
	"github.com/steveyegge/dna/internal/types"
	"github.com/steveyegge/dna/internal/validation"
)

// Core types for working with decisions
type (
	Decision = types.Decision
	State    = types.State
	Stakes   = types.Stakes
	Scope    = types.Scope
	Graph    = graph.Graph
)

// State constants
const (
	StateSuggested  = types.StateSuggested
	StateCommitted  = types.StateCommitted
	StateSuperseded = types.StateSuperseded
)

// Stakes constants
const (
	StakesHigh   = types.StakesHigh
	StakesMedium = types.StakesMedium
	StakesLow    = types.StakesLow
)

// Load reads every decision record under the two partition directories.
func Load(constitutionDir, projectDir string) (*Graph, error) {
	return graph.Load(constitutionDir, projectDir)
}

// Validate runs the whole-graph validation pass. cfg may be nil to skip
// the config-driven lints.
func Validate(g *Graph, cfg *configfile.Config) *validation.Result {
	return validation.Validate(g, cfg)
}

// Cascade computes the downstream review propagation from a state change.
func Cascade(g *Graph, start string) (*cascade.Report, error) {
	return cascade.Downstream(g, start)
}

// Frontier analyzes which suggested decisions are ready to commit.
func Frontier(g *Graph, topN int) *frontier.Report {
	return frontier.Analyze(g, topN)
}
