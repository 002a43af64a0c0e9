package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/steveyegge/dna/internal/config"
	"github.com/steveyegge/dna/internal/frontier"
	"github.com/steveyegge/dna/internal/ui"
)

var (
	frontierTop      int
	frontierMarkdown bool
)

var frontierCmd = &cobra.Command{
	Use:   "frontier",
	Short: "Show what to decide next",
	Long: `Frontier partitions the suggested decisions into committable-now and
blocked, shows per-level coverage gaps, and ranks nodes by transitive
downstream weight.`,
	Args: cobra.NoArgs,
	Run:  runFrontier,
}

func init() {
	frontierCmd.Flags().IntVar(&frontierTop, "top", 0, "High-weight section size (default from config)")
	frontierCmd.Flags().BoolVar(&frontierMarkdown, "markdown", false, "Emit a markdown report")
	rootCmd.AddCommand(frontierCmd)
}

type frontierOutput struct {
	Frontier struct {
		CommittableNow []frontier.Entry      `json:"committable_now"`
		Blocked        []frontier.Entry      `json:"blocked"`
		LevelGaps      []frontier.LevelGap   `json:"level_gaps"`
		HighWeight     []frontier.HighWeight `json:"high_weight"`
	} `json:"frontier"`
	Summary frontier.Summary `json:"summary"`
}

func runFrontier(_ *cobra.Command, _ []string) {
	g := mustLoadGraph()
	topN := frontierTop
	if topN <= 0 {
		topN = config.GetInt("frontier-top")
	}
	rep := frontier.Analyze(g, topN)

	if jsonOutput {
		if frontierMarkdown {
			WarnError("--markdown is ignored with --json")
		}
		var out frontierOutput
		out.Frontier.CommittableNow = rep.CommittableNow
		out.Frontier.Blocked = rep.Blocked
		out.Frontier.LevelGaps = rep.LevelGaps
		out.Frontier.HighWeight = rep.HighWeight
		out.Summary = rep.Summary
		outputJSON(out)
		return
	}

	md := frontierMarkdownReport(rep, topN)
	if frontierMarkdown {
		fmt.Print(md)
		return
	}
	fmt.Print(ui.RenderMarkdown(md))
}

func frontierMarkdownReport(rep *frontier.Report, topN int) string {
	var b strings.Builder
	b.WriteString("# Decision Frontier\n\n")
	fmt.Fprintf(&b, "**%d decisions** — %d suggested, %d committable, %d blocked\n\n",
		rep.Summary.TotalDecisions, rep.Summary.Suggested, rep.Summary.CommittableCount, rep.Summary.BlockedCount)

	b.WriteString("## Committable Now\n\n")
	if len(rep.CommittableNow) > 0 {
		b.WriteString("| ID | Title | Level | Stakes | Downstream |\n")
		b.WriteString("|----|-------|-------|--------|------------|\n")
		for _, c := range rep.CommittableNow {
			stakes := c.Stakes
			if stakes == "" {
				stakes = "—"
			}
			fmt.Fprintf(&b, "| %s | %s | L%d | %s | %d |\n", c.ID, c.Title, c.Level, stakes, c.DownstreamWeight)
		}
	} else {
		b.WriteString("None — all suggested decisions have uncommitted upstream.\n")
	}
	b.WriteString("\n")

	b.WriteString("## Blocked\n\n")
	if len(rep.Blocked) > 0 {
		b.WriteString("| ID | Title | Level | Blockers | Critical Path |\n")
		b.WriteString("|----|-------|-------|----------|---------------|\n")
		for _, blocked := range rep.Blocked {
			cp := "—"
			if len(blocked.CriticalPath) > 0 {
				cp = strings.Join(blocked.CriticalPath, " → ") + " → " + blocked.ID
			}
			fmt.Fprintf(&b, "| %s | %s | L%d | %s | %s |\n",
				blocked.ID, blocked.Title, blocked.Level, strings.Join(blocked.Blockers, ", "), cp)
		}
	} else {
		b.WriteString("None — all suggested decisions are committable.\n")
	}
	b.WriteString("\n")

	b.WriteString("## Level Gaps\n\n")
	b.WriteString("| Level | Name | Committed | Suggested | Flags |\n")
	b.WriteString("|-------|------|-----------|-----------|-------|\n")
	for _, lg := range rep.LevelGaps {
		flags := "—"
		if len(lg.Flags) > 0 {
			flags = strings.Join(lg.Flags, ", ")
		}
		fmt.Fprintf(&b, "| L%d | %s | %d | %d | %s |\n", lg.Level, lg.LevelName, lg.Committed, lg.Suggested, flags)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "## High-Weight Nodes (top %d)\n\n", topN)
	b.WriteString("| ID | Title | Level | State | Downstream |\n")
	b.WriteString("|----|-------|-------|-------|------------|\n")
	for _, hw := range rep.HighWeight {
		fmt.Fprintf(&b, "| %s | %s | L%d | %s | %d |\n", hw.ID, hw.Title, hw.Level, hw.State, hw.DownstreamWeight)
	}
	b.WriteString("\n")
	return b.String()
}
