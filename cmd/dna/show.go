package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/steveyegge/dna/internal/types"
	"github.com/steveyegge/dna/internal/ui"
)

var showCmd = &cobra.Command{
	Use:   "show DEC-NNN",
	Short: "Display one decision with rendered body",
	Args:  cobra.ExactArgs(1),
	Run:   runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(_ *cobra.Command, args []string) {
	nid := args[0]

	g := mustLoadGraph()
	node := g.Get(nid)
	if node == nil {
		FatalError("%s not found in graph", nid)
	}

	if jsonOutput {
		outputJSON(map[string]interface{}{
			"id":         node.ID,
			"title":      node.Title,
			"date":       node.Date,
			"level":      node.Level,
			"state":      node.State,
			"stakes":     node.Stakes,
			"depends_on": node.Deps(),
			"scope":      node.Scope,
			"body":       node.Body,
		})
		return
	}

	state := string(node.State)
	if state == "" {
		state = "unknown"
	}
	header := fmt.Sprintf("%s: %s", node.ID, node.Title)
	if ui.ShouldUseColor() {
		header = ui.CategoryStyle.Render(header)
	}
	fmt.Println(header)
	fmt.Printf("Level %d (%s) · %s", node.Level, types.LevelName(node.Level),
		ui.StateStyle(state).Render(state))
	if node.Stakes != "" {
		fmt.Printf(" · stakes: %s", node.Stakes)
	}
	fmt.Println()
	fmt.Printf("Depends on: %s\n", types.FormatDeps(node.Deps()))
	fmt.Println()
	fmt.Print(ui.RenderMarkdown(node.Body))
}
