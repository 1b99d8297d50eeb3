// ABOUTME: Contact CLI commands
// ABOUTME: add/list/show/edit/rm/search for contacts
package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/harperreed/forkyou/db"
	"github.com/harperreed/forkyou/models"
	"github.com/harperreed/forkyou/store"
)

// recentActivityLimit caps the activity history attached to show views.
const recentActivityLimit = 10

var contactCmd = &cobra.Command{
	Use:   "contact",
	Short: "Manage contacts",
}

var contactAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a contact",
	Args:  cobra.NoArgs,
	RunE:  runContactAdd,
}

var contactListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all contacts",
	Args:  cobra.NoArgs,
	RunE:  runContactList,
}

var contactShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a contact with related deals and activities",
	Args:  cobra.ExactArgs(1),
	RunE:  runContactShow,
}

var contactEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a contact (only provided flags change)",
	Args:  cobra.ExactArgs(1),
	RunE:  runContactEdit,
}

var contactRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Remove a contact",
	Args:  cobra.ExactArgs(1),
	RunE:  runContactRm,
}

var contactSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search contacts by name, email, or role",
	Args:  cobra.ExactArgs(1),
	RunE:  runContactSearch,
}

func init() {
	rootCmd.AddCommand(contactCmd)
	contactCmd.AddCommand(contactAddCmd, contactListCmd, contactShowCmd,
		contactEditCmd, contactRmCmd, contactSearchCmd)

	for _, cmd := range []*cobra.Command{contactAddCmd, contactEditCmd} {
		cmd.Flags().String("name", "", "Contact name")
		cmd.Flags().String("email", "", "Email address")
		cmd.Flags().String("phone", "", "Phone number")
		cmd.Flags().String("company", "", "Company ID or name")
		cmd.Flags().String("role", "", "Role / job title")
		cmd.Flags().StringArray("custom", nil, "Custom field as key=value (repeatable)")
	}
}

func runContactAdd(cmd *cobra.Command, args []string) error {
	root, err := projectRoot()
	if err != nil {
		return err
	}
	flags := cmd.Flags()

	name, _ := flags.GetString("name")
	if name == "" {
		return fail("missing_name", nil, "--name is required")
	}

	var company string
	if v, _ := flags.GetString("company"); v != "" {
		if company, err = resolveCompany(root, v); err != nil {
			return err
		}
	}

	pairs, _ := flags.GetStringArray("custom")
	custom, err := parseCustomFlags(pairs)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	email, _ := flags.GetString("email")
	phone, _ := flags.GetString("phone")
	role, _ := flags.GetString("role")
	contact := models.Contact{
		ID:      store.NewID(),
		Name:    name,
		Email:   email,
		Phone:   phone,
		Company: company,
		Role:    role,
		Custom:  custom,
		Created: now,
		Updated: now,
	}

	if err := store.WriteRecord(root, store.Contacts, contact.ID, contact); err != nil {
		return err
	}
	return emit(map[string]any{"contact": contact}, func() {
		printSuccess("Contact added: %s (%s)", contact.Name, contact.ID)
	})
}

func runContactList(cmd *cobra.Command, args []string) error {
	root, err := projectRoot()
	if err != nil {
		return err
	}
	database, err := db.Build(root)
	if err != nil {
		return err
	}
	defer database.Close()

	contacts, err := db.ListContacts(database)
	if err != nil {
		return err
	}
	if contacts == nil {
		contacts = []models.Contact{}
	}
	return emit(map[string]any{"contacts": contacts}, func() {
		if len(contacts) == 0 {
			printInfo("No contacts yet")
			return
		}
		printContactLines(contacts)
		printInfo("\n  %d contact(s)", len(contacts))
	})
}

func runContactShow(cmd *cobra.Command, args []string) error {
	root, err := projectRoot()
	if err != nil {
		return err
	}
	id := args[0]

	contact, err := store.ReadOne[models.Contact](root, store.Contacts, id)
	if err != nil {
		return err
	}
	if contact == nil {
		return fail("not_found", map[string]any{"id": id}, fmt.Sprintf("Contact not found: %s", id))
	}

	database, err := db.Build(root)
	if err != nil {
		return err
	}
	defer database.Close()

	deals, err := db.ContactDeals(database, id)
	if err != nil {
		return err
	}
	activities, err := db.ContactActivities(database, id, recentActivityLimit)
	if err != nil {
		return err
	}
	if deals == nil {
		deals = []db.DealSummary{}
	}
	if activities == nil {
		activities = []db.ActivitySummary{}
	}

	return emit(map[string]any{"contact": contact, "deals": deals, "activities": activities}, func() {
		fmt.Println()
		fmt.Printf("  %s  %s\n", bold(contact.Name), dim(contact.ID))
		if contact.Email != "" {
			fmt.Printf("  Email: %s\n", contact.Email)
		}
		if contact.Phone != "" {
			fmt.Printf("  Phone: %s\n", contact.Phone)
		}
		if contact.Role != "" {
			fmt.Printf("  Role:  %s\n", contact.Role)
		}
		if contact.Company != "" {
			fmt.Printf("  Company: %s\n", contact.Company)
		}
		for k, v := range contact.Custom {
			fmt.Printf("  %s: %s\n", k, v)
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
		printActivityBlock(activities)
		fmt.Println()
	})
}

func runContactEdit(cmd *cobra.Command, args []string) error {
	root, err := projectRoot()
	if err != nil {
		return err
	}
	id := args[0]
	flags := cmd.Flags()

	contact, err := store.ReadOne[models.Contact](root, store.Contacts, id)
	if err != nil {
		return err
	}
	if contact == nil {
		return fail("not_found", map[string]any{"id": id}, fmt.Sprintf("Contact not found: %s", id))
	}

	if flags.Changed("name") {
		contact.Name, _ = flags.GetString("name")
	}
	if flags.Changed("email") {
		contact.Email, _ = flags.GetString("email")
	}
	if flags.Changed("phone") {
		contact.Phone, _ = flags.GetString("phone")
	}
	if flags.Changed("role") {
		contact.Role, _ = flags.GetString("role")
	}
	if v, _ := flags.GetString("company"); flags.Changed("company") && v != "" {
		if contact.Company, err = resolveCompany(root, v); err != nil {
			return err
		}
	}
	if flags.Changed("custom") {
		pairs, _ := flags.GetStringArray("custom")
		custom, err := parseCustomFlags(pairs)
		if err != nil {
			return err
		}
		if contact.Custom == nil {
			contact.Custom = map[string]string{}
		}
		for k, v := range custom {
			contact.Custom[k] = v
		}
	}
	contact.Updated = time.Now().UTC()

	if err := store.WriteRecord(root, store.Contacts, contact.ID, contact); err != nil {
		return err
	}
	return emit(map[string]any{"contact": contact}, func() {
		printSuccess("Contact updated: %s (%s)", contact.Name, contact.ID)
	})
}

func runContactRm(cmd *cobra.Command, args []string) error {
	root, err := projectRoot()
	if err != nil {
		return err
	}
	id := args[0]

	deleted, err := store.DeleteRecord(root, store.Contacts, id)
	if err != nil {
		return err
	}
	if !deleted {
		return fail("not_found", map[string]any{"id": id}, fmt.Sprintf("Contact not found: %s", id))
	}
	return emit(map[string]any{"id": id}, func() {
		printSuccess("Contact removed: %s", id)
	})
}

func runContactSearch(cmd *cobra.Command, args []string) error {
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

	results, err := db.SearchContacts(database, query)
	if err != nil {
		return err
	}
	if results == nil {
		results = []models.Contact{}
	}
	return emit(map[string]any{"query": query, "results": results}, func() {
		if len(results) == 0 {
			printInfo("No contacts matching %q", query)
			return
		}
		printContactLines(results)
		printInfo("\n  %d result(s)", len(results))
	})
}

func printContactLines(contacts []models.Contact) {
	for _, c := range contacts {
		line := fmt.Sprintf("  %s  %s", dim(c.ID), bold(c.Name))
		if c.Email != "" {
			line += "  " + dim(c.Email)
		}
		if c.Role != "" {
			line += "  " + dim("("+c.Role+")")
		}
		fmt.Println(line)
	}
}

func printActivityBlock(activities []db.ActivitySummary) {
	if len(activities) == 0 {
		return
	}
	fmt.Printf("\n  %s\n", bold("Recent Activity"))
	for _, a := range activities {
		fmt.Printf("    %s  %s  %s\n", dim(a.Date), a.Type, a.Subject)
	}
}
