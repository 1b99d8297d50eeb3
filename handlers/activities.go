// ABOUTME: Activity and task MCP tool handlers
// ABOUTME: Implements log_activity, add_task, and complete_task tools
package handlers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/forkyou/models"
	"github.com/harperreed/forkyou/resolve"
	"github.com/harperreed/forkyou/store"
)

type ActivityHandlers struct {
	root string
}

func NewActivityHandlers(root string) *ActivityHandlers {
	return &ActivityHandlers{root: root}
}

type LogActivityInput struct {
	Type    string `json:"type" jsonschema:"Activity type: call, email, meeting, or note (required)"`
	Subject string `json:"subject" jsonschema:"Activity subject (required)"`
	Body    string `json:"body,omitempty" jsonschema:"Activity body"`
	Contact string `json:"contact,omitempty" jsonschema:"Contact ID"`
	Deal    string `json:"deal,omitempty" jsonschema:"Deal ID"`
	Company string `json:"company,omitempty" jsonschema:"Company ID or name"`
	Date    string `json:"date,omitempty" jsonschema:"Activity date (defaults to now)"`
}

type ActivityOutput struct {
	Activity models.Activity `json:"activity"`
}

func (h *ActivityHandlers) LogActivity(_ context.Context, request *mcp.CallToolRequest, input LogActivityInput) (*mcp.CallToolResult, ActivityOutput, error) {
	if !models.ValidActivityType(input.Type) {
		return nil, ActivityOutput{}, fmt.Errorf("invalid type %q; valid: %s", input.Type, strings.Join(models.ActivityTypes, ", "))
	}
	if input.Subject == "" {
		return nil, ActivityOutput{}, fmt.Errorf("subject is required")
	}

	var company string
	if input.Company != "" {
		id, err := resolve.CompanyID(h.root, input.Company)
		if err != nil {
			return nil, ActivityOutput{}, err
		}
		company = id
	}

	now := time.Now().UTC()
	date := input.Date
	if date == "" {
		date = now.Format(time.RFC3339)
	}
	activity := models.Activity{
		ID:      store.NewID(),
		Type:    input.Type,
		Subject: input.Subject,
		Body:    input.Body,
		Contact: input.Contact,
		Deal:    input.Deal,
		Company: company,
		Date:    date,
		Created: now,
		Updated: now,
	}
	if err := store.WriteRecord(h.root, store.Activities, activity.ID, activity); err != nil {
		return nil, ActivityOutput{}, fmt.Errorf("failed to log activity: %w", err)
	}
	return nil, ActivityOutput{Activity: activity}, nil
}

type AddTaskInput struct {
	Title   string `json:"title" jsonschema:"Task title (required)"`
	Contact string `json:"contact,omitempty" jsonschema:"Contact ID"`
	Deal    string `json:"deal,omitempty" jsonschema:"Deal ID"`
	Company string `json:"company,omitempty" jsonschema:"Company ID or name"`
	Due     string `json:"due,omitempty" jsonschema:"Due date"`
}

type TaskOutput struct {
	Task models.Task `json:"task"`
}

func (h *ActivityHandlers) AddTask(_ context.Context, request *mcp.CallToolRequest, input AddTaskInput) (*mcp.CallToolResult, TaskOutput, error) {
	if input.Title == "" {
		return nil, TaskOutput{}, fmt.Errorf("title is required")
	}

	var company string
	if input.Company != "" {
		id, err := resolve.CompanyID(h.root, input.Company)
		if err != nil {
			return nil, TaskOutput{}, err
		}
		company = id
	}

	now := time.Now().UTC()
	task := models.Task{
		ID:      store.NewID(),
		Title:   input.Title,
		Contact: input.Contact,
		Deal:    input.Deal,
		Company: company,
		Due:     input.Due,
		Done:    false,
		Created: now,
		Updated: now,
	}
	if err := store.WriteRecord(h.root, store.Tasks, task.ID, task); err != nil {
		return nil, TaskOutput{}, fmt.Errorf("failed to create task: %w", err)
	}
	return nil, TaskOutput{Task: task}, nil
}

type CompleteTaskInput struct {
	ID string `json:"id" jsonschema:"Task ID (required)"`
}

func (h *ActivityHandlers) CompleteTask(_ context.Context, request *mcp.CallToolRequest, input CompleteTaskInput) (*mcp.CallToolResult, TaskOutput, error) {
	if input.ID == "" {
		return nil, TaskOutput{}, fmt.Errorf("id is required")
	}

	task, err := store.ReadOne[models.Task](h.root, store.Tasks, input.ID)
	if err != nil {
		return nil, TaskOutput{}, err
	}
	if task == nil {
		return nil, TaskOutput{}, fmt.Errorf("task not found: %s", input.ID)
	}

	task.Done = true
	task.Updated = time.Now().UTC()
	if err := store.WriteRecord(h.root, store.Tasks, task.ID, *task); err != nil {
		return nil, TaskOutput{}, fmt.Errorf("failed to update task: %w", err)
	}
	return nil, TaskOutput{Task: *task}, nil
}
