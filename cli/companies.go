// ABOUTME: Company CLI commands
// ABOUTME: add/list/show/edit/rm/search for companies
package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/harperreed/forkyou/db"
	"github.com/harperreed/forkyou/models"
	"github.com/harperreed/forkyou/store"
)

var companyCmd = &cobra.Command{
	Use:   "company",
	Short: "Manage companies",
}

var companyAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a company",
	Args:  cobra.NoArgs,
	RunE:  runCompanyAdd,
}

var companyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all companies",
	Args:  cobra.NoArgs,
	RunE:  runCompanyList,
}

var companyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a company with its contacts and deals",
	Args:  cobra.ExactArgs(1),
	RunE:  runCompanyShow,
}

var companyEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a company (only provided flags change)",
	Args:  cobra.ExactArgs(1),
	RunE:  runCompanyEdit,
}

var companyRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Remove a company",
	Args:  cobra.ExactArgs(1),
	RunE:  runCompanyRm,
}

var companySearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search companies by name, domain, or industry",
	Args:  cobra.ExactArgs(1),
	RunE:  runCompanySearch,
}

func init() {
	rootCmd.AddCommand(companyCmd)
	companyCmd.AddCommand(companyAddCmd, companyListCmd, companyShowCmd,
		companyEditCmd, companyRmCmd, companySearchCmd)

	for _, cmd := range []*cobra.Command{companyAddCmd, companyEditCmd} {
		cmd.Flags().String("name", "", "Company name")
		cmd.Flags().String("domain", "", "Company domain")
		cmd.Flags().String("industry", "", "Industry")
		cmd.Flags().String("size", "", "Company size")
		cmd.Flags().StringArray("custom", nil, "Custom field as key=value (repeatable)")
	}
}

func runCompanyAdd(cmd *cobra.Command, args []string) error {
	root, err := projectRoot()
	if err != nil {
		return err
	}
	flags := cmd.Flags()

	name, _ := flags.GetString("name")
	if name == "" {
		return fail("missing_name", nil, "--name is required")
	}

	pairs, _ := flags.GetStringArray("custom")
	custom, err := parseCustomFlags(pairs)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	domain, _ := flags.GetString("domain")
	industry, _ := flags.GetString("industry")
	size, _ := flags.GetString("size")
	company := models.Company{
		ID:       store.NewID(),
		Name:     name,
		Domain:   domain,
		Industry: industry,
		Size:     size,
		Custom:   custom,
		Created:  now,
		Updated:  now,
	}

	if err := store.WriteRecord(root, store.Companies, company.ID, company); err != nil {
		return err
	}
	return emit(map[string]any{"company": company}, func() {
		printSuccess("Company added: %s (%s)", company.Name, company.ID)
	})
}

func runCompanyList(cmd *cobra.Command, args []string) error {
	root, err := projectRoot()
	if err != nil {
		return err
	}
	database, err := db.Build(root)
	if err != nil {
		return err
	}
	defer database.Close()

	companies, err := db.ListCompanies(database)
	if err != nil {
		return err
	}
	if companies == nil {
		companies = []models.Company{}
	}
	return emit(map[string]any{"companies": companies}, func() {
		if len(companies) == 0 {
			printInfo("No companies yet")
			return
		}
		printCompanyLines(companies)
		printInfo("\n  %d company(ies)", len(companies))
	})
}

func runCompanyShow(cmd *cobra.Command, args []string) error {
	root, err := projectRoot()
	if err != nil {
		return err
	}
	id := args[0]

	company, err := store.ReadOne[models.Company](root, store.Companies, id)
	if err != nil {
		return err
	}
	if company == nil {
		return fail("not_found", map[string]any{"id": id}, fmt.Sprintf("Company not found: %s", id))
	}

	database, err := db.Build(root)
	if err != nil {
		return err
	}
	defer database.Close()

	contacts, err := db.CompanyContacts(database, id)
	if err != nil {
		return err
	}
	deals, err := db.CompanyDeals(database, id)
	if err != nil {
		return err
	}
	if contacts == nil {
		contacts = []db.ContactSummary{}
	}
	if deals == nil {
		deals = []db.DealSummary{}
	}

	return emit(map[string]any{"company": company, "contacts": contacts, "deals": deals}, func() {
		fmt.Println()
		fmt.Printf("  %s  %s\n", bold(company.Name), dim(company.ID))
		if company.Domain != "" {
			fmt.Printf("  Domain:   %s\n", company.Domain)
		}
		if company.Industry != "" {
			fmt.Printf("  Industry: %s\n", company.Industry)
		}
		if company.Size != "" {
			fmt.Printf("  Size:     %s\n", company.Size)
		}
		for k, v := range company.Custom {
			fmt.Printf("  %s: %s\n", k, v)
		}
		if len(contacts) > 0 {
			fmt.Printf("\n  %s\n", bold("Contacts"))
			for _, c := range contacts {
				line := fmt.Sprintf("    %s  %s", dim(c.ID), c.Name)
				if c.Role != "" {
					line += "  " + dim("("+c.Role+")")
				}
				fmt.Println(line)
			}
		}
		if len(deals) > 0 {
			fmt.Printf("\n  %s\n", bold("Deals"))
			for _, d := range deals {
				line := fmt.Sprintf("    %s  %s  %s", dim(d.ID), d.Title, dim(d.Stage))
				if d.Value != nil {
					line += "  " + formatValue(*d.Value)
				}
				fmt.Println(line)
			}
		}
		fmt.Println()
	})
}

func runCompanyEdit(cmd *cobra.Command, args []string) error {
	root, err := projectRoot()
	if err != nil {
		return err
	}
	id := args[0]
	flags := cmd.Flags()

	company, err := store.ReadOne[models.Company](root, store.Companies, id)
	if err != nil {
		return err
	}
	if company == nil {
		return fail("not_found", map[string]any{"id": id}, fmt.Sprintf("Company not found: %s", id))
	}

	if flags.Changed("name") {
		company.Name, _ = flags.GetString("name")
	}
	if flags.Changed("domain") {
		company.Domain, _ = flags.GetString("domain")
	}
	if flags.Changed("industry") {
		company.Industry, _ = flags.GetString("industry")
	}
	if flags.Changed("size") {
		company.Size, _ = flags.GetString("size")
	}
	if flags.Changed("custom") {
		pairs, _ := flags.GetStringArray("custom")
		custom, err := parseCustomFlags(pairs)
		if err != nil {
			return err
		}
		if company.Custom == nil {
			company.Custom = map[string]string{}
		}
		for k, v := range custom {
			company.Custom[k] = v
		}
	}
	company.Updated = time.Now().UTC()

	if err := store.WriteRecord(root, store.Companies, company.ID, company); err != nil {
		return err
	}
	return emit(map[string]any{"company": company}, func() {
		printSuccess("Company updated: %s (%s)", company.Name, company.ID)
	})
}

func runCompanyRm(cmd *cobra.Command, args []string) error {
	root, err := projectRoot()
	if err != nil {
		return err
	}
	id := args[0]

	deleted, err := store.DeleteRecord(root, store.Companies, id)
	if err != nil {
		return err
	}
	if !deleted {
		return fail("not_found", map[string]any{"id": id}, fmt.Sprintf("Company not found: %s", id))
	}
	return emit(map[string]any{"id": id}, func() {
		printSuccess("Company removed: %s", id)
	})
}

func runCompanySearch(cmd *cobra.Command, args []string) error {
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

	results, err := db.SearchCompanies(database, query)
	if err != nil {
		return err
	}
	if results == nil {
		results = []models.Company{}
	}
	return emit(map[string]any{"query": query, "results": results}, func() {
		if len(results) == 0 {
			printInfo("No companies matching %q", query)
			return
		}
		printCompanyLines(results)
		printInfo("\n  %d result(s)", len(results))
	})
}

func printCompanyLines(companies []models.Company) {
	for _, c := range companies {
		line := fmt.Sprintf("  %s  %s", dim(c.ID), bold(c.Name))
		if c.Domain != "" {
			line += "  " + dim(c.Domain)
		}
		if c.Industry != "" {
			line += "  " + dim("("+c.Industry+")")
		}
		fmt.Println(line)
	}
}
