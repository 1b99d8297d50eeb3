// ABOUTME: Task CLI commands
// ABOUTME: add/list/done/rm with pending-first ordering
package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/harperreed/forkyou/db"
	"github.com/harperreed/forkyou/models"
	"github.com/harperreed/forkyou/store"
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage tasks",
}

var taskAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a task",
	Args:  cobra.NoArgs,
	RunE:  runTaskAdd,
}

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks, pending first",
	Args:  cobra.NoArgs,
	RunE:  runTaskList,
}

var taskDoneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Mark a task as done",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskDone,
}

var taskRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Remove a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskRm,
}

func init() {
	rootCmd.AddCommand(taskCmd)
	taskCmd.AddCommand(taskAddCmd, taskListCmd, taskDoneCmd, taskRmCmd)

	taskAddCmd.Flags().String("title", "", "Task title")
	taskAddCmd.Flags().String("contact", "", "Contact ID")
	taskAddCmd.Flags().String("deal", "", "Deal ID")
	taskAddCmd.Flags().String("company", "", "Company ID or name")
	taskAddCmd.Flags().String("due", "", "Due date")
}

func runTaskAdd(cmd *cobra.Command, args []string) error {
	root, err := projectRoot()
	if err != nil {
		return err
	}
	flags := cmd.Flags()

	title, _ := flags.GetString("title")
	if title == "" {
		return fail("missing_title", nil, "--title is required")
	}

	var company string
	if v, _ := flags.GetString("company"); v != "" {
		if company, err = resolveCompany(root, v); err != nil {
			return err
		}
	}

	now := time.Now().UTC()
	contact, _ := flags.GetString("contact")
	deal, _ := flags.GetString("deal")
	due, _ := flags.GetString("due")
	task := models.Task{
		ID:      store.NewID(),
		Title:   title,
		Contact: contact,
		Deal:    deal,
		Company: company,
		Due:     due,
		Done:    false,
		Created: now,
		Updated: now,
	}

	if err := store.WriteRecord(root, store.Tasks, task.ID, task); err != nil {
		return err
	}
	return emit(map[string]any{"task": task}, func() {
		msg := fmt.Sprintf("Task added: %s (%s)", task.Title, task.ID)
		if task.Due != "" {
			msg += " due " + task.Due
		}
		printSuccess("%s", msg)
	})
}

func runTaskList(cmd *cobra.Command, args []string) error {
	root, err := projectRoot()
	if err != nil {
		return err
	}
	database, err := db.Build(root)
	if err != nil {
		return err
	}
	defer database.Close()

	tasks, err := db.ListTasks(database)
	if err != nil {
		return err
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	return emit(map[string]any{"tasks": tasks}, func() {
		if len(tasks) == 0 {
			printInfo("No tasks yet")
			return
		}
		var pending, completed int
		for _, t := range tasks {
			if t.Done {
				completed++
				continue
			}
			pending++
			line := fmt.Sprintf("  ○ %s", bold(t.Title))
			if t.Due != "" {
				line += dim(" due " + t.Due)
			}
			fmt.Println(line + "  " + dim(t.ID))
		}
		if completed > 0 {
			fmt.Println()
			for _, t := range tasks {
				if t.Done {
					fmt.Printf("  %s %s  %s\n", dim("●"), dim(t.Title), dim(t.ID))
				}
			}
		}
		printInfo("\n  %d pending, %d done", pending, completed)
	})
}

func runTaskDone(cmd *cobra.Command, args []string) error {
	root, err := projectRoot()
	if err != nil {
		return err
	}
	id := args[0]

	task, err := store.ReadOne[models.Task](root, store.Tasks, id)
	if err != nil {
		return err
	}
	if task == nil {
		return fail("not_found", map[string]any{"id": id}, fmt.Sprintf("Task not found: %s", id))
	}

	task.Done = true
	task.Updated = time.Now().UTC()
	if err := store.WriteRecord(root, store.Tasks, task.ID, task); err != nil {
		return err
	}
	return emit(map[string]any{"task": task}, func() {
		printSuccess("Task done: %s (%s)", task.Title, task.ID)
	})
}

func runTaskRm(cmd *cobra.Command, args []string) error {
	root, err := projectRoot()
	if err != nil {
		return err
	}
	id := args[0]

	deleted, err := store.DeleteRecord(root, store.Tasks, id)
	if err != nil {
		return err
	}
	if !deleted {
		return fail("not_found", map[string]any{"id": id}, fmt.Sprintf("Task not found: %s", id))
	}
	return emit(map[string]any{"id": id}, func() {
		printSuccess("Task removed: %s", id)
	})
}
