package main

import (
	"github.com/steveyegge/dna/internal/configfile"
	"github.com/steveyegge/dna/internal/graph"
)

// mustLoadGraph loads both partitions or exits. Every subcommand goes
// through here so the load rules stay in one place.
func mustLoadGraph() *graph.Graph {
	g, err := graph.Load(constitutionDir(), projectDir())
	if err != nil {
		FatalError("%v", err)
	}
	return g
}

// mustLoadLintConfig loads .dna/config.json or exits. A missing file is
// fine and returns nil.
func mustLoadLintConfig() *configfile.Config {
	cfg, err := configfile.Load(dnaDir())
	if err != nil {
		FatalErrorWithHint(err.Error(), "check the JSON syntax in .dna/config.json")
	}
	return cfg
}
