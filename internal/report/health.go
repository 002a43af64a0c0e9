package report

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/steveyegge/dna/internal/frontmatter"
	"github.com/steveyegge/dna/internal/graph"
	"github.com/steveyegge/dna/internal/types"
	"github.com/steveyegge/dna/internal/validation"
)

var manualFlagsRe = regexp.MustCompile(`(?ms)^## Manual Flags\s*\n(.*?)(?:^## |\z)`)

// ReadManualFlags extracts the ## Manual Flags section from an existing
// HEALTH.md so regeneration preserves hand-written notes.
func ReadManualFlags(healthPath string) string {
	data, err := os.ReadFile(healthPath) // #nosec G304 - repo-root artifact
	if err != nil {
		return ""
	}
	if m := manualFlagsRe.FindSubmatch(data); m != nil {
		return strings.TrimSpace(string(m[1]))
	}
	return ""
}

// HealthResult summarizes a health regeneration.
type HealthResult struct {
	Total   int
	Flagged int
}

// WriteHealth regenerates HEALTH.md from the graph and a validation pass,
// carrying forward any manual flags already in the file.
func WriteHealth(g *graph.Graph, res *validation.Result, healthPath string, now time.Time) (*HealthResult, error) {
	manualFlags := ReadManualFlags(healthPath)
	content, flagged := HealthContent(g, res, manualFlags, now)
	if err := frontmatter.WriteFile(healthPath, []byte(content)); err != nil {
		return nil, err
	}
	return &HealthResult{Total: g.Len(), Flagged: flagged}, nil
}

// HealthContent renders HEALTH.md and returns it with the flagged-item
// count.
func HealthContent(g *graph.Graph, res *validation.Result, manualFlags string, now time.Time) (string, int) {
	constitution := make(map[string]*types.Decision)
	project := make(map[string]*types.Decision)
	for id, n := range g.Nodes {
		if n.Scope == types.ScopeConstitution {
			constitution[id] = n
		} else {
			project[id] = n
		}
	}

	today := now.Format("2006-01-02")
	var b strings.Builder
	b.WriteString("# System Health\n\n")
	fmt.Fprintf(&b, "Last updated: %s\n\n", today)
	b.WriteString("## Node Counts\n\n")

	if len(constitution) > 0 {
		b.WriteString("### Constitution\n")
		fmt.Fprintf(&b, "- Decisions: %d — %s\n", len(constitution), stateSummary(constitution))
		fmt.Fprintf(&b, "- Levels: %s\n\n", levelSummary(constitution))
		b.WriteString("### DNA\n")
	} else {
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "- Decisions: %d — %s\n", len(project), stateSummary(project))
	fmt.Fprintf(&b, "- Levels: %s\n", levelSummary(project))
	fmt.Fprintf(&b, "- **Total: %d decisions**\n\n", g.Len())

	var flagged []string
	for _, state := range []types.State{types.StateSuggested, types.StateSuperseded} {
		var ids []string
		for id, n := range g.Nodes {
			if n.State == state {
				ids = append(ids, id)
			}
		}
		if len(ids) > 0 {
			sort.Strings(ids)
			flagged = append(flagged, fmt.Sprintf("%d decisions at `%s` (%s)", len(ids), state, strings.Join(ids, ", ")))
		}
	}
	if len(res.Errors) > 0 {
		flagged = append(flagged, fmt.Sprintf("%d validation error(s) — run `dna validate` for details", len(res.Errors)))
	}

	b.WriteString("## Flagged Items\n\n")
	if len(flagged) > 0 {
		for _, item := range flagged {
			fmt.Fprintf(&b, "- %s\n", item)
		}
	} else {
		b.WriteString("- No issues found.\n")
	}
	b.WriteString("\n")

	if manualFlags != "" {
		b.WriteString("## Manual Flags\n\n")
		b.WriteString(manualFlags)
		b.WriteString("\n\n")
	}

	b.WriteString("## Last Session\n\n")
	fmt.Fprintf(&b, "%s — Health regenerated by dna\n", today)

	return b.String(), len(flagged)
}

func stateSummary(nodes map[string]*types.Decision) string {
	states := make(map[string]int)
	for _, n := range nodes {
		s := string(n.State)
		if s == "" {
			s = "unknown"
		}
		states[s]++
	}
	names := make([]string, 0, len(states))
	for s := range states {
		names = append(names, s)
	}
	sort.Strings(names)
	var parts []string
	for _, s := range names {
		if states[s] == len(nodes) {
			parts = append(parts, fmt.Sprintf("all `%s`", s))
		} else {
			parts = append(parts, fmt.Sprintf("%d `%s`", states[s], s))
		}
	}
	if len(parts) == 0 {
		return "—"
	}
	return strings.Join(parts, ", ")
}

func levelSummary(nodes map[string]*types.Decision) string {
	levels := make(map[int]int)
	for _, n := range nodes {
		levels[n.Level]++
	}
	keys := make([]int, 0, len(levels))
	for l := range levels {
		keys = append(keys, l)
	}
	sort.Ints(keys)
	var parts []string
	for _, l := range keys {
		parts = append(parts, fmt.Sprintf("L%d: %d", l, levels[l]))
	}
	return strings.Join(parts, ", ")
}
