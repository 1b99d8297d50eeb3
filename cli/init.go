// ABOUTME: init subcommand
// ABOUTME: Creates the .forkyou data directory in the current directory
package cli

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/harperreed/forkyou/store"
)

func init() {
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create .forkyou/ in the current directory",
	Args:  cobra.NoArgs,
	RunE:  runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}

	dir := filepath.Join(cwd, store.RootDirName)
	if _, err := os.Stat(dir); err == nil {
		return emit(map[string]any{"message": "already initialized", "path": dir}, func() {
			printInfo("Already initialized")
		})
	}

	root, err := store.Init(cwd)
	if err != nil {
		return err
	}
	return emit(map[string]any{"path": root}, func() {
		printSuccess("Initialized fork-you in %s", root)
	})
}
