// ABOUTME: Tests for activity and task MCP tool handlers
// ABOUTME: Validates activity logging and the task lifecycle
package handlers

import (
	"context"
	"testing"

	"github.com/harperreed/forkyou/models"
	"github.com/harperreed/forkyou/store"
)

func TestLogActivityHandler(t *testing.T) {
	root := setupRoot(t)
	handler := NewActivityHandlers(root)

	_, out, err := handler.LogActivity(context.Background(), nil, LogActivityInput{
		Type:    "call",
		Subject: "Intro call",
		Body:    "Discussed pricing",
	})
	if err != nil {
		t.Fatalf("LogActivity failed: %v", err)
	}

	if out.Activity.Type != "call" {
		t.Errorf("Expected type 'call', got %q", out.Activity.Type)
	}
	if out.Activity.Date == "" {
		t.Error("Expected date to default to now")
	}
}

func TestLogActivityRejectsInvalidType(t *testing.T) {
	handler := NewActivityHandlers(setupRoot(t))

	_, _, err := handler.LogActivity(context.Background(), nil, LogActivityInput{
		Type:    "telegram",
		Subject: "Hello",
	})
	if err == nil {
		t.Fatal("Expected error for invalid type")
	}
}

func TestLogActivityRequiresSubject(t *testing.T) {
	handler := NewActivityHandlers(setupRoot(t))

	_, _, err := handler.LogActivity(context.Background(), nil, LogActivityInput{Type: "note"})
	if err == nil {
		t.Fatal("Expected error for missing subject")
	}
}

func TestAddTaskAndCompleteTask(t *testing.T) {
	root := setupRoot(t)
	handler := NewActivityHandlers(root)
	ctx := context.Background()

	_, created, err := handler.AddTask(ctx, nil, AddTaskInput{
		Title: "Follow up",
		Due:   "2026-10-01",
	})
	if err != nil {
		t.Fatalf("AddTask failed: %v", err)
	}
	if created.Task.Done {
		t.Error("New task should not be done")
	}

	_, completed, err := handler.CompleteTask(ctx, nil, CompleteTaskInput{ID: created.Task.ID})
	if err != nil {
		t.Fatalf("CompleteTask failed: %v", err)
	}
	if !completed.Task.Done {
		t.Error("Expected task to be done")
	}

	stored, err := store.ReadOne[models.Task](root, store.Tasks, created.Task.ID)
	if err != nil {
		t.Fatalf("ReadOne failed: %v", err)
	}
	if stored == nil || !stored.Done {
		t.Error("Completion was not persisted")
	}
}

func TestCompleteTaskNotFound(t *testing.T) {
	handler := NewActivityHandlers(setupRoot(t))

	_, _, err := handler.CompleteTask(context.Background(), nil, CompleteTaskInput{ID: "missing99"})
	if err == nil {
		t.Fatal("Expected error for unknown task")
	}
}
