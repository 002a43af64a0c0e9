package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/steveyegge/dna/internal/types"
	"github.com/steveyegge/dna/internal/validation"
)

var createFormCmd = &cobra.Command{
	Use:   "create-form",
	Short: "Create a new decision using an interactive form",
	Long: `Create a new decision using an interactive terminal form.

Keyboard navigation:
  - Tab/Shift+Tab: Move between fields
  - Enter: Submit the form (on the last field)
  - Ctrl+C: Cancel and exit
  - Arrow keys: Navigate within select fields`,
	Args: cobra.NoArgs,
	Run:  runCreateForm,
}

func init() {
	rootCmd.AddCommand(createFormCmd)
}

func runCreateForm(_ *cobra.Command, _ []string) {
	var (
		id           string
		title        string
		levelStr     string
		state        string
		stakes       string
		depsInput    string
		constitution bool
	)

	levelOptions := make([]huh.Option[string], 0, types.MaxLevel)
	for lvl := types.MinLevel; lvl <= types.MaxLevel; lvl++ {
		levelOptions = append(levelOptions,
			huh.NewOption(fmt.Sprintf("L%d - %s", lvl, types.LevelName(lvl)), strconv.Itoa(lvl)))
	}

	stateOptions := []huh.Option[string]{
		huh.NewOption("Suggested (default)", "suggested"),
		huh.NewOption("Committed", "committed"),
	}

	stakesOptions := []huh.Option[string]{
		huh.NewOption("None", ""),
		huh.NewOption("High", "high"),
		huh.NewOption("Medium", "medium"),
		huh.NewOption("Low", "low"),
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("ID").
				Description("Decision ID in DEC-NNN form").
				Placeholder("DEC-042").
				Value(&id).
				Validate(func(s string) error {
					if !types.ValidID(strings.TrimSpace(s)) {
						return fmt.Errorf("ID must match DEC-NNN (3 digits)")
					}
					return nil
				}),

			huh.NewInput().
				Title("Title").
				Description("One-line summary of the decision").
				Placeholder("e.g., Store decisions as markdown with frontmatter").
				Value(&title).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("title is required")
					}
					return nil
				}),

			huh.NewSelect[string]().
				Title("Level").
				Description("How foundational is this decision?").
				Options(levelOptions...).
				Value(&levelStr),

			huh.NewSelect[string]().
				Title("State").
				Options(stateOptions...).
				Value(&state),

			huh.NewSelect[string]().
				Title("Stakes").
				Options(stakesOptions...).
				Value(&stakes),

			huh.NewInput().
				Title("Depends on").
				Description("Comma-separated decision IDs (optional)").
				Placeholder("DEC-001, DEC-003").
				Value(&depsInput),

			huh.NewConfirm().
				Title("Constitution partition?").
				Description("Constitution decisions may never depend on project decisions").
				Value(&constitution),
		),
	)

	if err := form.Run(); err != nil {
		FatalError("%v", err)
	}

	level, err := strconv.Atoi(levelStr)
	if err != nil {
		FatalError("invalid level '%s'", levelStr)
	}

	d := &types.Decision{
		ID:        strings.TrimSpace(id),
		Title:     strings.TrimSpace(title),
		Date:      time.Now().Format("2006-01-02"),
		Level:     level,
		State:     types.State(state),
		Stakes:    types.Stakes(stakes),
		DependsOn: types.DepRefs(validation.ParseDeps(depsInput)),
	}
	createDecision(d, constitution)
}
