package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/steveyegge/dna/internal/frontmatter"
	"github.com/steveyegge/dna/internal/graph"
	"github.com/steveyegge/dna/internal/validation"
)

var editCmd = &cobra.Command{
	Use:   `edit DEC-NNN "old text" "new text"`,
	Short: "Replace body text with a pre/post validation delta",
	Long: `Edit replaces one unique occurrence of old text in a decision's body.
Frontmatter is never touched. The whole graph is validated before and after
the edit, and any warnings resolved or introduced by the change are reported.`,
	Args: cobra.ExactArgs(3),
	Run:  runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)
}

func runEdit(_ *cobra.Command, args []string) {
	nid, oldText, newText := args[0], args[1], args[2]

	g := mustLoadGraph()
	node := g.Get(nid)
	if node == nil {
		FatalError("%s not found in graph", nid)
	}

	d, body, err := frontmatter.ParseFile(node.FilePath)
	if err != nil {
		FatalError("could not parse frontmatter from %s", node.FilePath)
	}

	if !strings.Contains(body, oldText) {
		FatalError("old text not found in body of %s", nid)
	}
	if n := strings.Count(body, oldText); n > 1 {
		FatalError("old text matches %d locations in %s body — must be unique", n, nid)
	}

	cfg := mustLoadLintConfig()
	pre := validation.Validate(g, cfg)

	newBody := strings.Replace(body, oldText, newText, 1)
	if err := frontmatter.WriteFile(node.FilePath, frontmatter.Serialize(d, newBody)); err != nil {
		FatalError("%v", err)
	}

	after, err := graph.Load(constitutionDir(), projectDir())
	if err != nil {
		FatalError("%v", err)
	}
	post := validation.Validate(after, cfg)

	resolved := diffSorted(pre.Warnings, post.Warnings)
	introduced := diffSorted(post.Warnings, pre.Warnings)
	newErrors := diffSorted(post.Errors, pre.Errors)

	fmt.Printf("%s: body edited (%d chars → %d chars)\n", nid, len(oldText), len(newText))

	if len(resolved) > 0 {
		fmt.Printf("  Resolved %d warning(s):\n", len(resolved))
		for _, w := range resolved {
			fmt.Printf("    - %s\n", w)
		}
	}
	if len(introduced) > 0 {
		fmt.Printf("  Introduced %d new warning(s):\n", len(introduced))
		for _, w := range introduced {
			fmt.Printf("    + %s\n", w)
		}
	}
	if len(newErrors) > 0 {
		fmt.Printf("  INTRODUCED %d new ERROR(s):\n", len(newErrors))
		for _, e := range newErrors {
			fmt.Printf("    ! %s\n", e)
		}
		os.Exit(1)
	}
	if len(introduced) == 0 {
		fmt.Println("  No new issues introduced.")
	}
}

// diffSorted returns the elements of a that are absent from b, sorted.
func diffSorted(a, b []string) []string {
	seen := make(map[string]bool, len(b))
	for _, s := range b {
		seen[s] = true
	}
	var out []string
	for _, s := range a {
		if !seen[s] {
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}
