package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/steveyegge/dna/internal/manifest"
)

var manifestTarget string

var manifestCmd = &cobra.Command{
	Use:     "compile-manifest",
	Aliases: []string{"manifest"},
	Short:   "Produce deterministic skeletons for contract compilation",
	Long: `Compile-manifest emits the human contract (decisions grouped by level)
and the agent contract (decisions classified by scope, stakes and state).
With --target only the named manifest is produced.`,
	Args: cobra.NoArgs,
	Run:  runManifest,
}

func init() {
	manifestCmd.Flags().StringVar(&manifestTarget, "target", "", "manifest target (human or agent)")
	rootCmd.AddCommand(manifestCmd)
}

func runManifest(_ *cobra.Command, _ []string) {
	if manifestTarget != "" && manifestTarget != "human" && manifestTarget != "agent" {
		FatalError("--target must be 'human' or 'agent', got '%s'", manifestTarget)
	}

	g := mustLoadGraph()

	targets := []string{"human", "agent"}
	if manifestTarget != "" {
		targets = []string{manifestTarget}
	}

	for _, t := range targets {
		switch t {
		case "human":
			m := manifest.Human(g)
			if jsonOutput {
				outputJSON(m)
			} else {
				printHumanManifest(m)
			}
		case "agent":
			m := manifest.Agent(g)
			if jsonOutput {
				outputJSON(m)
			} else {
				printAgentManifest(m)
			}
		}
	}
}

func printHumanManifest(m *manifest.HumanManifest) {
	fmt.Println("# Compile Manifest — Human Contract")
	fmt.Println()
	for lvl := 1; lvl <= 4; lvl++ {
		entry := m.Levels[strconv.Itoa(lvl)]
		fmt.Printf("## %s (Level %d)\n", entry.Name, lvl)
		fmt.Println()
		for _, d := range entry.Committed {
			fmt.Printf("  - %s: %s%s\n", d.ID, d.Title, stakesTag(d.Stakes))
		}
		if len(entry.Suggested) > 0 {
			fmt.Println("  Suggested:")
			for _, d := range entry.Suggested {
				fmt.Printf("  - %s: %s%s\n", d.ID, d.Title, stakesTag(d.Stakes))
			}
		}
		fmt.Println()
	}
	printManifestTotals(m.Counts)
}

func printAgentManifest(m *manifest.AgentManifest) {
	fmt.Println("# Compile Manifest — Agent Contract")
	fmt.Println()
	fmt.Printf("## Constitution (%d decisions)\n", len(m.Constitution))
	for _, d := range m.Constitution {
		fmt.Printf("  - %s: %s [%s]\n", d.ID, d.Title, d.State)
	}
	fmt.Println()
	fmt.Printf("## High Stakes (%d decisions)\n", len(m.HighStakes))
	for _, d := range m.HighStakes {
		fmt.Printf("  - %s: %s [%s]\n", d.ID, d.Title, d.State)
	}
	fmt.Println()
	fmt.Printf("## All Committed (%d decisions)\n", len(m.AllCommitted))
	for _, d := range m.AllCommitted {
		fmt.Printf("  - %s: %s%s\n", d.ID, d.Title, stakesTag(d.Stakes))
	}
	fmt.Println()
	if len(m.AllSuggested) > 0 {
		fmt.Printf("## All Suggested (%d decisions)\n", len(m.AllSuggested))
		for _, d := range m.AllSuggested {
			fmt.Printf("  - %s: %s%s\n", d.ID, d.Title, stakesTag(d.Stakes))
		}
		fmt.Println()
	}
	printManifestTotals(m.Counts)
}

func stakesTag(stakes string) string {
	if stakes == "" {
		return ""
	}
	return fmt.Sprintf(" [%s]", stakes)
}

func printManifestTotals(c manifest.Counts) {
	fmt.Printf("Total: %d decisions (%d committed, %d suggested)\n",
		c.Total, c.Committed, c.Suggested)
}
