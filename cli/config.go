// ABOUTME: config subcommand
// ABOUTME: Shows and sets the ordered pipeline stage list
package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harperreed/forkyou/store"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configStagesCmd = &cobra.Command{
	Use:   "stages",
	Short: "Show or set pipeline stages",
	Args:  cobra.NoArgs,
	RunE:  runConfigStages,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configStagesCmd)
	configStagesCmd.Flags().String("set", "", "Comma-separated stage list (at least 2)")
}

func runConfigStages(cmd *cobra.Command, args []string) error {
	root, err := projectRoot()
	if err != nil {
		return err
	}
	cfg, err := store.ReadConfig(root)
	if err != nil {
		return err
	}

	if !cmd.Flags().Changed("set") {
		return emit(map[string]any{"stages": cfg.Stages}, func() {
			fmt.Println()
			fmt.Printf("  %s\n\n", bold("Pipeline Stages"))
			for i, stage := range cfg.Stages {
				fmt.Printf("  %s %s\n", dim(fmt.Sprintf("%d.", i+1)), stage)
			}
			fmt.Println()
		})
	}

	raw, _ := cmd.Flags().GetString("set")
	var stages []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			stages = append(stages, s)
		}
	}
	if len(stages) < 2 {
		return fail("too_few_stages", nil, "At least 2 stages required")
	}

	cfg.Stages = stages
	if err := store.WriteConfig(root, cfg); err != nil {
		return err
	}
	return emit(map[string]any{"stages": cfg.Stages}, func() {
		printSuccess("Stages updated: %s", strings.Join(stages, " → "))
	})
}
