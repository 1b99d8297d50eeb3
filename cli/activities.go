// ABOUTME: Activity CLI commands
// ABOUTME: add/list/show/rm for logged calls, emails, meetings, and notes
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

var activityCmd = &cobra.Command{
	Use:   "activity",
	Short: "Log and review activities",
}

var activityAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Log an activity",
	Args:  cobra.NoArgs,
	RunE:  runActivityAdd,
}

var activityListCmd = &cobra.Command{
	Use:   "list",
	Short: "List activities, most recent first",
	Args:  cobra.NoArgs,
	RunE:  runActivityList,
}

var activityShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show an activity",
	Args:  cobra.ExactArgs(1),
	RunE:  runActivityShow,
}

var activityRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Remove an activity",
	Args:  cobra.ExactArgs(1),
	RunE:  runActivityRm,
}

func init() {
	rootCmd.AddCommand(activityCmd)
	activityCmd.AddCommand(activityAddCmd, activityListCmd, activityShowCmd, activityRmCmd)

	activityAddCmd.Flags().String("type", "", "Activity type: call, email, meeting, or note")
	activityAddCmd.Flags().String("subject", "", "Activity subject")
	activityAddCmd.Flags().String("body", "", "Activity body")
	activityAddCmd.Flags().String("contact", "", "Contact ID")
	activityAddCmd.Flags().String("deal", "", "Deal ID")
	activityAddCmd.Flags().String("company", "", "Company ID or name")
	activityAddCmd.Flags().String("date", "", "Activity date (defaults to now)")
}

func runActivityAdd(cmd *cobra.Command, args []string) error {
	root, err := projectRoot()
	if err != nil {
		return err
	}
	flags := cmd.Flags()

	actType, _ := flags.GetString("type")
	if !models.ValidActivityType(actType) {
		return fail("invalid_type", map[string]any{"type": actType, "valid": models.ActivityTypes},
			fmt.Sprintf("Invalid type: %s. Valid: %s", actType, strings.Join(models.ActivityTypes, ", ")))
	}
	subject, _ := flags.GetString("subject")
	if subject == "" {
		return fail("missing_subject", nil, "--subject is required")
	}

	var company string
	if v, _ := flags.GetString("company"); v != "" {
		if company, err = resolveCompany(root, v); err != nil {
			return err
		}
	}

	now := time.Now().UTC()
	date, _ := flags.GetString("date")
	if date == "" {
		date = now.Format(time.RFC3339)
	}
	body, _ := flags.GetString("body")
	contact, _ := flags.GetString("contact")
	deal, _ := flags.GetString("deal")

	activity := models.Activity{
		ID:      store.NewID(),
		Type:    actType,
		Subject: subject,
		Body:    body,
		Contact: contact,
		Deal:    deal,
		Company: company,
		Date:    date,
		Created: now,
		Updated: now,
	}

	if err := store.WriteRecord(root, store.Activities, activity.ID, activity); err != nil {
		return err
	}
	return emit(map[string]any{"activity": activity}, func() {
		printSuccess("Activity logged: %s %q (%s)", activity.Type, activity.Subject, activity.ID)
	})
}

func runActivityList(cmd *cobra.Command, args []string) error {
	root, err := projectRoot()
	if err != nil {
		return err
	}
	database, err := db.Build(root)
	if err != nil {
		return err
	}
	defer database.Close()

	activities, err := db.ListActivities(database)
	if err != nil {
		return err
	}
	if activities == nil {
		activities = []models.Activity{}
	}
	return emit(map[string]any{"activities": activities}, func() {
		if len(activities) == 0 {
			printInfo("No activities yet")
			return
		}
		for _, a := range activities {
			fmt.Printf("  %s  %s  %s  %s\n", dim(a.ID), dim(a.Date), a.Type, bold(a.Subject))
		}
		printInfo("\n  %d activity(ies)", len(activities))
	})
}

func runActivityShow(cmd *cobra.Command, args []string) error {
	root, err := projectRoot()
	if err != nil {
		return err
	}
	id := args[0]

	activity, err := store.ReadOne[models.Activity](root, store.Activities, id)
	if err != nil {
		return err
	}
	if activity == nil {
		return fail("not_found", map[string]any{"id": id}, fmt.Sprintf("Activity not found: %s", id))
	}

	return emit(map[string]any{"activity": activity}, func() {
		fmt.Println()
		fmt.Printf("  %s  %s\n", bold(activity.Subject), dim(activity.ID))
		fmt.Printf("  Type: %s\n", activity.Type)
		fmt.Printf("  Date: %s\n", activity.Date)
		if activity.Body != "" {
			fmt.Printf("  %s\n", activity.Body)
		}
		if activity.Contact != "" {
			fmt.Printf("  Contact: %s\n", activity.Contact)
		}
		if activity.Deal != "" {
			fmt.Printf("  Deal:    %s\n", activity.Deal)
		}
		if activity.Company != "" {
			fmt.Printf("  Company: %s\n", activity.Company)
		}
		fmt.Println()
	})
}

func runActivityRm(cmd *cobra.Command, args []string) error {
	root, err := projectRoot()
	if err != nil {
		return err
	}
	id := args[0]

	deleted, err := store.DeleteRecord(root, store.Activities, id)
	if err != nil {
		return err
	}
	if !deleted {
		return fail("not_found", map[string]any{"id": id}, fmt.Sprintf("Activity not found: %s", id))
	}
	return emit(map[string]any{"id": id}, func() {
		printSuccess("Activity removed: %s", id)
	})
}
