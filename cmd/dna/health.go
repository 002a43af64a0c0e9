package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/steveyegge/dna/internal/report"
	"github.com/steveyegge/dna/internal/validation"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Regenerate HEALTH.md from current graph state",
	Long: `Health rewrites HEALTH.md with node counts, state and level summaries,
and flagged items from a fresh validation pass. Anything under the
"## Manual Flags" heading in the existing file is carried forward.`,
	Args: cobra.NoArgs,
	Run:  runHealth,
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

func runHealth(_ *cobra.Command, _ []string) {
	g := mustLoadGraph()
	cfg := mustLoadLintConfig()
	res := validation.Validate(g, cfg)

	healthPath := filepath.Join(rootDir, "HEALTH.md")
	hr, err := report.WriteHealth(g, res, healthPath, time.Now())
	if err != nil {
		FatalError("%v", err)
	}

	if jsonOutput {
		outputJSON(map[string]int{"decisions": hr.Total, "flagged": hr.Flagged})
		return
	}
	fmt.Printf("HEALTH.md updated: %d decisions, %d flagged items\n", hr.Total, hr.Flagged)
}
