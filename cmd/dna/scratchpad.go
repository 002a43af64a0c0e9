package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/steveyegge/dna/internal/graph"
	"github.com/steveyegge/dna/internal/scratchpad"
	"github.com/steveyegge/dna/internal/ui"
	"github.com/steveyegge/dna/internal/validation"
)

var (
	spAddType  string
	spAddLinks string
	spListType string
)

var scratchpadCmd = &cobra.Command{
	Use:   "scratchpad",
	Short: "Manage pre-decision jottings",
	Long: `Scratchpad holds ideas, constraints, questions and concerns that are
not yet decisions. Entries live in .dna/scratchpad.json and graduate to
decisions via mature.`,
}

var spAddCmd = &cobra.Command{
	Use:   `add --type TYPE "content"`,
	Short: "Add a scratchpad entry",
	Args:  cobra.ExactArgs(1),
	Run:   runScratchpadAdd,
}

var spListCmd = &cobra.Command{
	Use:   "list",
	Short: "List scratchpad entries",
	Args:  cobra.NoArgs,
	Run:   runScratchpadList,
}

var spMatureCmd = &cobra.Command{
	Use:   "mature SP-NNN DEC-NNN",
	Short: "Graduate a scratchpad entry to a decision",
	Args:  cobra.ExactArgs(2),
	Run:   runScratchpadMature,
}

var spSummaryCmd = &cobra.Command{
	Use:   "scratchpad-summary",
	Short: "One-line count of active scratchpad entries",
	Args:  cobra.NoArgs,
	Run:   runScratchpadSummary,
}

func init() {
	spAddCmd.Flags().StringVar(&spAddType, "type", "", "entry type (idea, constraint, question, concern)")
	spAddCmd.Flags().StringVar(&spAddLinks, "links", "", "comma-separated decision IDs this entry relates to")
	_ = spAddCmd.MarkFlagRequired("type")
	spListCmd.Flags().StringVar(&spListType, "type", "", "only list entries of this type")

	scratchpadCmd.AddCommand(spAddCmd, spListCmd, spMatureCmd)
	rootCmd.AddCommand(scratchpadCmd, spSummaryCmd)
}

func runScratchpadAdd(_ *cobra.Command, args []string) {
	content := args[0]
	links := validation.ParseDeps(spAddLinks)

	// The graph is only needed to verify links.
	var g *graph.Graph
	if len(links) > 0 {
		g = mustLoadGraph()
	}

	store := scratchpad.NewStore(dnaDir())
	entry, err := store.Add(scratchpad.EntryType(spAddType), content, links, g)
	if err != nil {
		FatalError("%v", err)
	}

	if jsonOutput {
		outputJSON(entry)
		return
	}
	linkDisplay := ""
	if len(entry.Links) > 0 {
		linkDisplay = fmt.Sprintf(" (links: %s)", strings.Join(entry.Links, ", "))
	}
	fmt.Printf("Added %s [%s]: %s%s\n", entry.ID, entry.Type, entry.Content, linkDisplay)
}

func runScratchpadList(_ *cobra.Command, _ []string) {
	store := scratchpad.NewStore(dnaDir())
	entries, err := store.Load()
	if err != nil {
		FatalError("%v", err)
	}

	active, matured := scratchpad.Partition(entries, scratchpad.EntryType(spListType))

	if jsonOutput {
		if active == nil {
			active = []scratchpad.Entry{}
		}
		if matured == nil {
			matured = []scratchpad.Entry{}
		}
		outputJSON(map[string][]scratchpad.Entry{"active": active, "matured": matured})
		return
	}

	if len(active) == 0 && len(matured) == 0 {
		fmt.Println("Scratchpad is empty.")
		return
	}

	if len(active) > 0 {
		fmt.Printf("Active (%d):\n", len(active))
		fmt.Printf("%-10s %-12s %-12s Content\n", "ID", "Type", "Created")
		fmt.Println(strings.Repeat("-", 70))
		for _, e := range active {
			links := ""
			if len(e.Links) > 0 {
				links = fmt.Sprintf(" → %s", strings.Join(e.Links, ", "))
			}
			fmt.Printf("%-10s %-12s %-12s %s%s\n", e.ID, e.Type, e.Created, e.Content, links)
		}
	}

	if len(matured) > 0 {
		fmt.Printf("\nMatured (%d):\n", len(matured))
		for _, e := range matured {
			fmt.Println(ui.RenderMuted(fmt.Sprintf("  %s [%s] → %s", e.ID, e.Type, e.MaturedTo)))
		}
	}
}

func runScratchpadMature(_ *cobra.Command, args []string) {
	spID, decID := args[0], args[1]

	g := mustLoadGraph()
	store := scratchpad.NewStore(dnaDir())
	entry, err := store.Mature(spID, decID, g)
	if err != nil {
		FatalError("%v", err)
	}

	if jsonOutput {
		outputJSON(entry)
		return
	}
	fmt.Printf("Matured %s [%s] → %s\n", entry.ID, entry.Type, entry.MaturedTo)
}

func runScratchpadSummary(_ *cobra.Command, _ []string) {
	store := scratchpad.NewStore(dnaDir())
	entries, err := store.Load()
	if err != nil {
		FatalError("%v", err)
	}
	if summary := scratchpad.Summary(entries); summary != "" {
		fmt.Printf("Scratchpad: %s\n", summary)
	}
}
