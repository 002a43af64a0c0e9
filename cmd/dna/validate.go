package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/steveyegge/dna/internal/ui"
	"github.com/steveyegge/dna/internal/validation"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate every decision record and the graph between them",
	Long: `Validate runs all structural, semantic, and body-content checks over the
whole graph and reports every finding. Errors exit 1; warnings do not.`,
	Args: cobra.NoArgs,
	Run:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

type validateOutput struct {
	Decisions int      `json:"decisions"`
	Errors    []string `json:"errors"`
	Warnings  []string `json:"warnings"`
}

func runValidate(_ *cobra.Command, _ []string) {
	g := mustLoadGraph()
	cfg := mustLoadLintConfig()
	res := validation.Validate(g, cfg)

	errors := append([]string{}, res.Errors...)
	warnings := append([]string{}, res.Warnings...)
	sort.Strings(errors)
	sort.Strings(warnings)

	if jsonOutput {
		out := validateOutput{Decisions: g.Len(), Errors: errors, Warnings: warnings}
		outputJSON(out)
		if len(errors) > 0 {
			os.Exit(1)
		}
		return
	}

	if len(errors) > 0 {
		fmt.Printf("%s (%d):\n", ui.RenderFail(ui.IconFail+" ERRORS"), len(errors))
		for _, e := range errors {
			fmt.Printf("  %s\n", e)
		}
	}
	if len(warnings) > 0 {
		if len(errors) > 0 {
			fmt.Println()
		}
		fmt.Printf("%s (%d):\n", ui.RenderWarn(ui.IconWarn+" WARNINGS"), len(warnings))
		for _, w := range warnings {
			fmt.Printf("  %s\n", w)
		}
	}
	if len(errors) == 0 && len(warnings) == 0 {
		fmt.Printf("%s: %d decisions, 0 errors, 0 warnings.\n",
			ui.RenderPass(ui.IconPass+" Validation passed"), g.Len())
	}

	if len(errors) > 0 {
		os.Exit(1)
	}
}
