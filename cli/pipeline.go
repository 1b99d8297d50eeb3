// ABOUTME: pipeline subcommand
// ABOUTME: Per-stage deal counts, totals, and weighted forecast
package cli

import (
	"fmt"
	"math"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harperreed/forkyou/db"
	"github.com/harperreed/forkyou/store"
)

func init() {
	rootCmd.AddCommand(pipelineCmd)
}

var pipelineCmd = &cobra.Command{
	Use:   "pipeline",
	Short: "Show pipeline summary",
	Args:  cobra.NoArgs,
	RunE:  runPipeline,
}

func runPipeline(cmd *cobra.Command, args []string) error {
	root, err := projectRoot()
	if err != nil {
		return err
	}
	cfg, err := store.ReadConfig(root)
	if err != nil {
		return err
	}
	database, err := db.Build(root)
	if err != nil {
		return err
	}
	defer database.Close()

	summary, err := db.Pipeline(database, cfg)
	if err != nil {
		return err
	}

	return emit(map[string]any{
		"stages":        summary.Stages,
		"totalDeals":    summary.TotalDeals,
		"totalValue":    summary.TotalValue,
		"totalWeighted": summary.TotalWeighted,
		"currency":      summary.Currency,
	}, func() {
		if summary.TotalDeals == 0 {
			printInfo("No deals in pipeline")
			return
		}
		fmt.Println()
		fmt.Printf("  %s\n\n", bold("Pipeline"))
		for _, s := range summary.Stages {
			if s.Count == 0 {
				fmt.Printf("  %s  %s\n", dim(padStage(s.Stage)), dim("—"))
				continue
			}
			bar := strings.Repeat("█", int(math.Max(1, float64(s.Count*2))))
			line := fmt.Sprintf("  %s  %s %d deal(s)  %s", padStage(s.Stage), bar, s.Count, formatValue(s.Total))
			if s.Weighted > 0 {
				line += dim(fmt.Sprintf("  weighted: %s", formatValue(math.Round(s.Weighted))))
			}
			fmt.Println(line)
		}
		fmt.Println()
		total := fmt.Sprintf("  %s %d deal(s)  %s", bold("Total:"), summary.TotalDeals, formatValue(summary.TotalValue))
		if summary.TotalWeighted > 0 {
			total += dim(fmt.Sprintf("  weighted: %s", formatValue(math.Round(summary.TotalWeighted))))
		}
		fmt.Println(total)
		fmt.Println()
	})
}

func padStage(stage string) string {
	return fmt.Sprintf("%-16s", stage)
}
