package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/steveyegge/dna/internal/report"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Regenerate derived INDEX.md files per directory",
	Args:  cobra.NoArgs,
	Run:   runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
}

func runIndex(_ *cobra.Command, _ []string) {
	g := mustLoadGraph()

	results, err := report.WriteIndexes(g, constitutionDir(), projectDir())
	if err != nil {
		FatalError("%v", err)
	}

	if jsonOutput {
		type entry struct {
			Path  string `json:"path"`
			Count int    `json:"count"`
		}
		out := make([]entry, 0, len(results))
		for _, r := range results {
			out = append(out, entry{Path: r.Path, Count: r.Count})
		}
		outputJSON(map[string]interface{}{"indexes": out})
		return
	}

	for _, r := range results {
		dir := filepath.Base(filepath.Dir(r.Path))
		fmt.Printf("%s/INDEX.md: %d decisions\n", dir, r.Count)
	}
}
