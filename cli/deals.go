// ABOUTME: Deal CLI commands
// ABOUTME: add/list/show/edit/move/rm/search with stage validation
package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/harperreed/forkyou/db"
	"github.com/harperreed/forkyou/models"
	"github.com/harperreed/forkyou/store"
)

var dealCmd = &cobra.Command{
	Use:   "deal",
	Short: "Manage deals",
}

var dealAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a deal",
	Args:  cobra.NoArgs,
	RunE:  runDealAdd,
}

var dealListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all deals grouped by pipeline stage",
	Args:  cobra.NoArgs,
	RunE:  runDealList,
}

var dealShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a deal with recent activity",
	Args:  cobra.ExactArgs(1),
	RunE:  runDealShow,
}

var dealEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a deal (only provided flags change)",
	Args:  cobra.ExactArgs(1),
	RunE:  runDealEdit,
}

var dealMoveCmd = &cobra.Command{
	Use:   "move <id> <stage>",
	Short: "Move a deal to another pipeline stage",
	Args:  cobra.ExactArgs(2),
	RunE:  runDealMove,
}

var dealRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Remove a deal",
	Args:  cobra.ExactArgs(1),
	RunE:  runDealRm,
}

var dealSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search deals by title or stage",
	Args:  cobra.ExactArgs(1),
	RunE:  runDealSearch,
}

func init() {
	rootCmd.AddCommand(dealCmd)
	dealCmd.AddCommand(dealAddCmd, dealListCmd, dealShowCmd, dealEditCmd,
		dealMoveCmd, dealRmCmd, dealSearchCmd)

	for _, cmd := range []*cobra.Command{dealAddCmd, dealEditCmd} {
		cmd.Flags().String("title", "", "Deal title")
		cmd.Flags().String("company", "", "Company ID or name")
		cmd.Flags().StringArray("contact", nil, "Contact ID (repeatable)")
		cmd.Flags().String("stage", "", "Pipeline stage")
		cmd.Flags().Float64("value", 0, "Deal value")
		cmd.Flags().String("currency", "", "Currency code")
		cmd.Flags().Float64("probability", 0, "Win probability %")
		cmd.Flags().String("close-date", "", "Expected close date")
		cmd.Flags().StringArray("custom", nil, "Custom field as key=value (repeatable)")
	}
}

func failInvalidStage(stage string, cfg models.Config) error {
	return fail("invalid_stage", map[string]any{"stage": stage, "valid": cfg.Stages},
		fmt.Sprintf("Invalid stage: %s. Valid: %s", stage, strings.Join(cfg.Stages, ", ")))
}

func runDealAdd(cmd *cobra.Command, args []string) error {
	root, err := projectRoot()
	if err != nil {
		return err
	}
	flags := cmd.Flags()

	title, _ := flags.GetString("title")
	if title == "" {
		return fail("missing_title", nil, "--title is required")
	}

	cfg, err := store.ReadConfig(root)
	if err != nil {
		return err
	}

	var company string
	if v, _ := flags.GetString("company"); v != "" {
		if company, err = resolveCompany(root, v); err != nil {
			return err
		}
	}

	stage, _ := flags.GetString("stage")
	if stage == "" && len(cfg.Stages) > 0 {
		stage = cfg.Stages[0]
	}
	if !cfg.HasStage(stage) {
		return failInvalidStage(stage, cfg)
	}

	pairs, _ := flags.GetStringArray("custom")
	custom, err := parseCustomFlags(pairs)
	if err != nil {
		return err
	}

	contacts, _ := flags.GetStringArray("contact")
	if contacts == nil {
		contacts = []string{}
	}
	currency, _ := flags.GetString("currency")
	if currency == "" {
		currency = cfg.Currency
	}
	closeDate, _ := flags.GetString("close-date")

	now := time.Now().UTC()
	deal := models.Deal{
		ID:        store.NewID(),
		Title:     title,
		Company:   company,
		Contacts:  contacts,
		Stage:     stage,
		Currency:  currency,
		CloseDate: closeDate,
		Custom:    custom,
		Created:   now,
		Updated:   now,
	}
	if flags.Changed("value") {
		v, _ := flags.GetFloat64("value")
		deal.Value = &v
	}
	if flags.Changed("probability") {
		p, _ := flags.GetFloat64("probability")
		deal.Probability = &p
	}

	if err := store.WriteRecord(root, store.Deals, deal.ID, deal); err != nil {
		return err
	}
	return emit(map[string]any{"deal": deal}, func() {
		printSuccess("Deal added: %s (%s) [%s]", deal.Title, deal.ID, deal.Stage)
	})
}

func runDealList(cmd *cobra.Command, args []string) error {
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

	deals, err := db.ListDeals(database, cfg)
	if err != nil {
		return err
	}
	if deals == nil {
		deals = []models.Deal{}
	}
	return emit(map[string]any{"deals": deals}, func() {
		if len(deals) == 0 {
			printInfo("No deals yet")
			return
		}
		for _, stage := range cfg.Stages {
			var stageDeals []models.Deal
			var total float64
			for _, d := range deals {
				if d.Stage == stage {
					stageDeals = append(stageDeals, d)
					if d.Value != nil {
						total += *d.Value
					}
				}
			}
			if len(stageDeals) == 0 {
				continue
			}
			header := "\n  " + bold(stage)
			if total > 0 {
				header += dim("  " + formatValue(total))
			}
			fmt.Println(header)
			for _, d := range stageDeals {
				line := fmt.Sprintf("    %s  %s", dim(d.ID), d.Title)
				if d.Value != nil {
					line += "  " + formatValue(*d.Value)
				}
				fmt.Println(line)
			}
		}
		printInfo("\n  %d deal(s)", len(deals))
	})
}

func runDealShow(cmd *cobra.Command, args []string) error {
	root, err := projectRoot()
	if err != nil {
		return err
	}
	id := args[0]

	deal, err := store.ReadOne[models.Deal](root, store.Deals, id)
	if err != nil {
		return err
	}
	if deal == nil {
		return fail("not_found", map[string]any{"id": id}, fmt.Sprintf("Deal not found: %s", id))
	}

	database, err := db.Build(root)
	if err != nil {
		return err
	}
	defer database.Close()

	activities, err := db.DealActivities(database, id, recentActivityLimit)
	if err != nil {
		return err
	}
	if activities == nil {
		activities = []db.ActivitySummary{}
	}

	return emit(map[string]any{"deal": deal, "activities": activities}, func() {
		fmt.Println()
		fmt.Printf("  %s  %s\n", bold(deal.Title), dim(deal.ID))
		fmt.Printf("  Stage:       %s\n", deal.Stage)
		if deal.Value != nil {
			fmt.Printf("  Value:       %s %s\n", formatValue(*deal.Value), deal.Currency)
		}
		if deal.Probability != nil {
			fmt.Printf("  Probability: %.0f%%\n", *deal.Probability)
		}
		if deal.CloseDate != "" {
			fmt.Printf("  Close date:  %s\n", deal.CloseDate)
		}
		if deal.Company != "" {
			fmt.Printf("  Company:     %s\n", deal.Company)
		}
		if len(deal.Contacts) > 0 {
			fmt.Printf("  Contacts:    %s\n", strings.Join(deal.Contacts, ", "))
		}
		for k, v := range deal.Custom {
			fmt.Printf("  %s: %s\n", k, v)
		}
		printActivityBlock(activities)
		fmt.Println()
	})
}

func runDealEdit(cmd *cobra.Command, args []string) error {
	root, err := projectRoot()
	if err != nil {
		return err
	}
	id := args[0]
	flags := cmd.Flags()

	deal, err := store.ReadOne[models.Deal](root, store.Deals, id)
	if err != nil {
		return err
	}
	if deal == nil {
		return fail("not_found", map[string]any{"id": id}, fmt.Sprintf("Deal not found: %s", id))
	}

	if flags.Changed("stage") {
		stage, _ := flags.GetString("stage")
		cfg, err := store.ReadConfig(root)
		if err != nil {
			return err
		}
		if !cfg.HasStage(stage) {
			return failInvalidStage(stage, cfg)
		}
		deal.Stage = stage
	}
	if flags.Changed("title") {
		deal.Title, _ = flags.GetString("title")
	}
	if v, _ := flags.GetString("company"); flags.Changed("company") && v != "" {
		if deal.Company, err = resolveCompany(root, v); err != nil {
			return err
		}
	}
	if flags.Changed("contact") {
		deal.Contacts, _ = flags.GetStringArray("contact")
	}
	if flags.Changed("value") {
		v, _ := flags.GetFloat64("value")
		deal.Value = &v
	}
	if flags.Changed("currency") {
		deal.Currency, _ = flags.GetString("currency")
	}
	if flags.Changed("probability") {
		p, _ := flags.GetFloat64("probability")
		deal.Probability = &p
	}
	if flags.Changed("close-date") {
		deal.CloseDate, _ = flags.GetString("close-date")
	}
	if flags.Changed("custom") {
		pairs, _ := flags.GetStringArray("custom")
		custom, err := parseCustomFlags(pairs)
		if err != nil {
			return err
		}
		if deal.Custom == nil {
			deal.Custom = map[string]string{}
		}
		for k, v := range custom {
			deal.Custom[k] = v
		}
	}
	deal.Updated = time.Now().UTC()

	if err := store.WriteRecord(root, store.Deals, deal.ID, deal); err != nil {
		return err
	}
	return emit(map[string]any{"deal": deal}, func() {
		printSuccess("Deal updated: %s (%s)", deal.Title, deal.ID)
	})
}

func runDealMove(cmd *cobra.Command, args []string) error {
	root, err := projectRoot()
	if err != nil {
		return err
	}
	id, stage := args[0], args[1]

	deal, err := store.ReadOne[models.Deal](root, store.Deals, id)
	if err != nil {
		return err
	}
	if deal == nil {
		return fail("not_found", map[string]any{"id": id}, fmt.Sprintf("Deal not found: %s", id))
	}

	cfg, err := store.ReadConfig(root)
	if err != nil {
		return err
	}
	if !cfg.HasStage(stage) {
		return failInvalidStage(stage, cfg)
	}

	previous := deal.Stage
	deal.Stage = stage
	deal.Updated = time.Now().UTC()
	if err := store.WriteRecord(root, store.Deals, deal.ID, deal); err != nil {
		return err
	}
	return emit(map[string]any{"deal": deal, "previousStage": previous}, func() {
		printSuccess("%s: %s → %s", deal.Title, previous, stage)
	})
}

func runDealRm(cmd *cobra.Command, args []string) error {
	root, err := projectRoot()
	if err != nil {
		return err
	}
	id := args[0]

	deleted, err := store.DeleteRecord(root, store.Deals, id)
	if err != nil {
		return err
	}
	if !deleted {
		return fail("not_found", map[string]any{"id": id}, fmt.Sprintf("Deal not found: %s", id))
	}
	return emit(map[string]any{"id": id}, func() {
		printSuccess("Deal removed: %s", id)
	})
}

func runDealSearch(cmd *cobra.Command, args []string) error {
	root, err := projectRoot()
	if err != nil {
		return err
	}
	query := args[0]

	database, err := db.Build(root)
	if err != nil {
		return err
	}
	defer database.Close()

	results, err := db.SearchDeals(database, query)
	if err != nil {
		return err
	}
	if results == nil {
		results = []models.Deal{}
	}
	return emit(map[string]any{"query": query, "results": results}, func() {
		if len(results) == 0 {
			printInfo("No deals matching %q", query)
			return
		}
		for _, d := range results {
			line := fmt.Sprintf("  %s  %s  %s", dim(d.ID), bold(d.Title), dim(d.Stage))
			if d.Value != nil {
				line += "  " + formatValue(*d.Value)
			}
			fmt.Println(line)
		}
		printInfo("\n  %d result(s)", len(results))
	})
}
