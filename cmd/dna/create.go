package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/steveyegge/dna/internal/frontmatter"
	"github.com/steveyegge/dna/internal/timeparsing"
	"github.com/steveyegge/dna/internal/types"
	"github.com/steveyegge/dna/internal/validation"
)

// scaffoldBody is the empty section skeleton new decisions start with.
const scaffoldBody = "\n## Decision\n\n\n## Reasoning\n\n\n## Assumptions\n\n\n## Tradeoffs\n"

var (
	createTitle        string
	createLevel        int
	createState        string
	createStakes       string
	createDependsOn    string
	createDate         string
	createConstitution bool
)

var createCmd = &cobra.Command{
	Use:   "create DEC-NNN",
	Short: "Create a new decision record",
	Long: `Create writes a new decision file with validated frontmatter and an
empty section scaffold. Nothing is written when pre-validation finds
errors.

With no arguments and no flags, an interactive form collects the fields
instead.`,
	Args: cobra.MaximumNArgs(1),
	Run:  runCreate,
}

func init() {
	createCmd.Flags().StringVar(&createTitle, "title", "", "Decision title (required)")
	createCmd.Flags().IntVar(&createLevel, "level", 0, "Decision level 1-4 (required)")
	createCmd.Flags().StringVar(&createState, "state", "suggested", "Initial state")
	createCmd.Flags().StringVar(&createStakes, "stakes", "", "Stakes (high/medium/low)")
	createCmd.Flags().StringVar(&createDependsOn, "depends-on", "", "Comma-separated upstream decision IDs")
	createCmd.Flags().StringVar(&createDate, "date", "", "Decision date (YYYY-MM-DD, +1d, tomorrow; default today)")
	createCmd.Flags().BoolVar(&createConstitution, "constitution", false, "Create in the constitution partition")
	rootCmd.AddCommand(createCmd)
}

func runCreate(cmd *cobra.Command, args []string) {
	if len(args) == 0 {
		if cmd.Flags().Changed("title") || cmd.Flags().Changed("level") {
			FatalError("create requires a DEC-NNN argument when flags are given")
		}
		runCreateForm(cmd, nil)
		return
	}
	if createTitle == "" {
		FatalError("--title is required")
	}
	if createLevel == 0 {
		FatalError("--level is required")
	}

	date := time.Now().Format("2006-01-02")
	if createDate != "" {
		parsed, err := timeparsing.ParseDate(createDate, time.Now())
		if err != nil {
			FatalError("%v", err)
		}
		date = parsed
	}

	d := &types.Decision{
		ID:        args[0],
		Title:     createTitle,
		Date:      date,
		Level:     createLevel,
		State:     types.State(createState),
		Stakes:    types.Stakes(createStakes),
		DependsOn: types.DepRefs(validation.ParseDeps(createDependsOn)),
	}
	createDecision(d, createConstitution)
}

// createDecision pre-validates and writes a new record. Shared by the flag
// and interactive form paths.
func createDecision(d *types.Decision, constitution bool) {
	targetScope := types.ScopeProject
	targetDir := projectDir()
	if constitution {
		targetScope = types.ScopeConstitution
		targetDir = constitutionDir()
	}

	g := mustLoadGraph()
	res := validation.ForCreate(d, g, targetScope)

	for _, w := range res.Warnings {
		fmt.Fprintf(os.Stderr, "WARNING: %s\n", w)
	}
	if !res.OK() {
		for _, e := range res.Errors {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", e)
		}
		os.Exit(1)
	}

	path := filepath.Join(targetDir, d.ID+".md")
	if err := frontmatter.WriteFile(path, frontmatter.Serialize(d, scaffoldBody)); err != nil {
		FatalError("%v", err)
	}

	if jsonOutput {
		outputJSON(map[string]interface{}{
			"id":    d.ID,
			"level": d.Level,
			"state": d.State,
			"path":  path,
		})
		return
	}
	green := color.New(color.FgGreen).SprintFunc()
	fmt.Printf("%s %s (level %d, %s) in %s/\n", green("Created"), d.ID, d.Level, d.State, filepath.Base(targetDir))
}
