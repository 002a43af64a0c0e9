package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/steveyegge/dna/internal/graph"
)

var searchCmd = &cobra.Command{
	Use:   "search TERM [TERM...]",
	Short: "Search decision titles and bodies",
	Long: `Search matches decisions by title and body content. Terms are
case-insensitive and OR-matched. Each result lists the sections that
contained a term.`,
	Args: cobra.MinimumNArgs(1),
	Run:  runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

func runSearch(_ *cobra.Command, args []string) {
	terms := make([]string, 0, len(args))
	for _, a := range args {
		terms = append(terms, strings.ToLower(a))
	}

	g := mustLoadGraph()
	results := g.Search(terms)

	if jsonOutput {
		if results == nil {
			results = []graph.SearchResult{}
		}
		outputJSON(map[string]interface{}{
			"query":   terms,
			"count":   len(results),
			"results": results,
		})
		return
	}

	query := strings.Join(terms, " ")
	if len(results) == 0 {
		fmt.Printf("No decisions match: %s\n", query)
		return
	}

	fmt.Printf("Found %d decision(s) matching: %s\n", len(results), query)
	fmt.Println()
	fmt.Printf("%-12s %-7s %-12s %-30s Title\n", "ID", "Level", "State", "Sections")
	fmt.Println(strings.Repeat("-", 90))
	for _, r := range results {
		sections := "—"
		if len(r.MatchedSections) > 0 {
			sections = strings.Join(r.MatchedSections, ", ")
		}
		fmt.Printf("%-12s L%-6d %-12s %-30s %s\n", r.ID, r.Level, r.State, sections, r.Title)
	}
}
