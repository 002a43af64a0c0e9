// Command dna manages a repository's decision graph: markdown decision
// records with YAML frontmatter, split across a constitution/ partition for
// upstream decisions and a dna/ partition for project decisions.
package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/steveyegge/dna/internal/config"
)

var (
	jsonOutput  bool
	quietFlag   bool
	verboseFlag bool
	rootDir     string
)

var rootCmd = &cobra.Command{
	Use:   "dna",
	Short: "Decision graph tooling",
	Long: `dna manages markdown decision records and the dependency graph they form.

Decisions live in two partitions: constitution/ holds upstream identity
decisions, dna/ holds project decisions. Every command validates before it
mutates.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Initialize(); err != nil {
			return err
		}
		// Explicit flags override config file and environment.
		if cmd.Flags().Changed("json") {
			config.Set("json", jsonOutput)
		}
		if cmd.Flags().Changed("quiet") {
			config.Set("quiet", quietFlag)
		}
		if cmd.Flags().Changed("verbose") {
			config.Set("verbose", verboseFlag)
		}
		jsonOutput = config.GetBool("json")
		quietFlag = config.GetBool("quiet")
		verboseFlag = config.GetBool("verbose")
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "Suppress non-essential output (errors only)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&rootDir, "dir", ".", "Repository root containing the decision partitions")
}

// constitutionDir returns the upstream partition path.
func constitutionDir() string {
	return filepath.Join(rootDir, config.GetString("constitution-dir"))
}

// projectDir returns the project partition path.
func projectDir() string {
	return filepath.Join(rootDir, config.GetString("project-dir"))
}

// dnaDir returns the tool state directory (.dna).
func dnaDir() string {
	return filepath.Join(rootDir, ".dna")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		FatalError("%v", err)
	}
	_ = os.Stdout.Sync()
}
