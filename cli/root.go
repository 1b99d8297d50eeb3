// ABOUTME: Root cobra command and process exit handling
// ABOUTME: Global --json and --quiet flags shared by every subcommand
package cli

import (
	"errors"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	jsonOutput bool
	quiet      bool
)

var rootCmd = &cobra.Command{
	Use:   "fu",
	Short: "git-based CRM",
	Long: `fork-you is a git-based CRM.

Records live as one JSON file each under a project-local .forkyou/
directory, meant to be committed alongside your source. Commands can
run from any subdirectory of the project.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress human output")
}

// exitError signals that a command already reported its failure and the
// process should exit with the given code.
type exitError struct {
	code int
}

func (e *exitError) Error() string { return "exit" }

// Execute runs the CLI and exits the process on failure. Validation and
// not-found failures have already been reported by the command; anything
// else is unexpected and gets the fatal path.
func Execute(version string) {
	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		var ee *exitError
		if errors.As(err, &ee) {
			os.Exit(ee.code)
		}
		log.Error("Fatal error", "err", err)
		os.Exit(1)
	}
}
