package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/steveyegge/dna/internal/cascade"
	"github.com/steveyegge/dna/internal/graph"
	"github.com/steveyegge/dna/internal/ui"
)

var (
	cascadeReverse  bool
	cascadeMarkdown bool
)

var cascadeCmd = &cobra.Command{
	Use:   "cascade DEC-NNN",
	Short: "Show which decisions a change would ripple to",
	Long: `Cascade walks the graph outward from a changed decision in breadth-first
waves. The default direction is downstream (who depends on this); --reverse
walks upstream (what this rests on).`,
	Args: cobra.ExactArgs(1),
	Run:  runCascade,
}

func init() {
	cascadeCmd.Flags().BoolVar(&cascadeReverse, "reverse", false, "Walk upstream dependencies instead of downstream dependents")
	cascadeCmd.Flags().BoolVar(&cascadeMarkdown, "markdown", false, "Emit a markdown report")
	rootCmd.AddCommand(cascadeCmd)
}

func runCascade(_ *cobra.Command, args []string) {
	g := mustLoadGraph()
	start := args[0]

	var rep *cascade.Report
	var err error
	if cascadeReverse {
		rep, err = cascade.Upstream(g, start)
	} else {
		rep, err = cascade.Downstream(g, start)
	}
	if err != nil {
		FatalError("%v", err)
	}

	if jsonOutput {
		if cascadeMarkdown {
			WarnError("--markdown is ignored with --json")
		}
		outputJSON(rep)
		return
	}
	if cascadeMarkdown {
		fmt.Print(ui.RenderMarkdown(cascadeMarkdownReport(g, rep)))
		return
	}
	printCascadeTable(rep)
}

func cascadeMarkdownReport(g *graph.Graph, rep *cascade.Report) string {
	var b strings.Builder
	title := g.Get(rep.StartNode).Title
	if title == "" {
		title = "(no title)"
	}

	heading := "Cascade"
	empty := "No downstream dependents."
	if rep.Direction == "upstream" {
		heading = "Upstream"
		empty = "No upstream dependencies."
	}

	fmt.Fprintf(&b, "### %s: %s — %s\n\n", heading, rep.StartNode, title)
	if len(rep.Waves) == 0 {
		b.WriteString(empty + "\n")
		return b.String()
	}

	if rep.Direction == "upstream" {
		fmt.Fprintf(&b, "**%d upstream decisions** across %d wave(s).\n\n", rep.Summary.UniqueAffected, rep.Summary.WaveCount)
	} else {
		fmt.Fprintf(&b, "**%d decisions** need review across %d wave(s).\n\n", rep.Summary.TotalAffected, rep.Summary.WaveCount)
	}

	for _, w := range rep.Waves {
		fmt.Fprintf(&b, "#### Wave %d\n\n", w.Wave)
		b.WriteString("| Node | Title | State | Reason |\n")
		b.WriteString("|------|-------|-------|--------|\n")
		for _, e := range w.Effects {
			nodeTitle := "?"
			if n := g.Get(e.Node); n != nil {
				nodeTitle = n.Title
			}
			cross := ""
			if e.CrossScope {
				cross = " [cross-dir]"
			}
			fmt.Fprintf(&b, "| %s | %s | %s | %s%s |\n", e.Node, nodeTitle, e.CurrentState, e.Reason, cross)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func printCascadeTable(rep *cascade.Report) {
	if len(rep.Waves) == 0 {
		if rep.Direction == "upstream" {
			fmt.Printf("No upstream dependencies for %s.\n", rep.StartNode)
		} else {
			fmt.Printf("No downstream dependents for %s.\n", rep.StartNode)
		}
		return
	}

	for _, w := range rep.Waves {
		fmt.Printf("\n=== Wave %d ===\n", w.Wave)
		fmt.Printf("%-12s %-14s Reason\n", "Node", "State")
		fmt.Println(strings.Repeat("-", 60))
		for _, e := range w.Effects {
			cross := ""
			if e.CrossScope {
				cross = " [cross-dir]"
			}
			fmt.Printf("%-12s %-14s %s%s\n", e.Node, e.CurrentState, e.Reason, cross)
		}
	}

	if rep.Direction == "upstream" {
		fmt.Printf("\nTotal: %d upstream decisions across %d wave(s).\n", rep.Summary.UniqueAffected, rep.Summary.WaveCount)
	} else {
		fmt.Printf("\nTotal: %d decisions need review across %d wave(s).\n", rep.Summary.TotalAffected, rep.Summary.WaveCount)
	}
}
