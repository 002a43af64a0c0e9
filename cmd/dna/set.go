package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/steveyegge/dna/internal/frontmatter"
	"github.com/steveyegge/dna/internal/types"
	"github.com/steveyegge/dna/internal/validation"
)

var setCmd = &cobra.Command{
	Use:   "set DEC-NNN field value",
	Short: "Update one frontmatter field with pre-validation",
	Long: `Set updates a single frontmatter field. The change is validated against
the whole graph first; nothing is written when validation fails.

Fields: state, depends_on, level, stakes, title.
Clear dependencies with: dna set DEC-NNN depends_on []`,
	Args: cobra.MinimumNArgs(3),
	Run:  runSet,
}

func init() {
	rootCmd.AddCommand(setCmd)
}

func runSet(_ *cobra.Command, args []string) {
	nid := args[0]
	field := args[1]

	g := mustLoadGraph()
	node := g.Get(nid)
	if node == nil {
		FatalError("%s not found in graph", nid)
	}

	// Title may span multiple words; depends_on accepts [] to clear.
	value := args[2]
	if field == "title" {
		value = strings.Join(args[2:], " ")
	}
	if field == "depends_on" && value == "[]" {
		value = ""
	}

	res := validation.ForSet(g, nid, field, value)
	for _, w := range res.Warnings {
		fmt.Fprintf(os.Stderr, "WARNING: %s\n", w)
	}
	if !res.OK() {
		for _, e := range res.Errors {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", e)
		}
		os.Exit(1)
	}

	oldDisplay, newDisplay := applyField(node, field, value)

	if err := frontmatter.WriteFile(node.FilePath, frontmatter.Serialize(node, node.Body)); err != nil {
		FatalError("%v", err)
	}

	if jsonOutput {
		outputJSON(map[string]string{
			"id":    nid,
			"field": field,
			"old":   oldDisplay,
			"new":   newDisplay,
		})
		return
	}
	fmt.Printf("%s: %s %s → %s\n", nid, field, oldDisplay, newDisplay)
}

// applyField mutates the in-memory node and returns display strings for
// the old and new values. The field and value were already validated.
func applyField(node *types.Decision, field, value string) (oldDisplay, newDisplay string) {
	switch field {
	case "state":
		oldDisplay, newDisplay = string(node.State), value
		node.State = types.State(value)
	case "depends_on":
		deps := validation.ParseDeps(value)
		oldDisplay = types.FormatDeps(node.Deps())
		newDisplay = types.FormatDeps(deps)
		node.DependsOn = types.DepRefs(deps)
	case "level":
		level, _ := strconv.Atoi(value)
		oldDisplay, newDisplay = strconv.Itoa(node.Level), value
		node.Level = level
	case "stakes":
		oldDisplay, newDisplay = string(node.Stakes), value
		node.Stakes = types.Stakes(value)
	case "title":
		oldDisplay, newDisplay = node.Title, value
		node.Title = value
	}
	return oldDisplay, newDisplay
}
