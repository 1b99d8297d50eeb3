// ABOUTME: Tests for contact MCP tool handlers
// ABOUTME: Validates tool input/output and error handling
package handlers

import (
	"context"
	"testing"

	"github.com/harperreed/forkyou/store"
)

func setupRoot(t *testing.T) string {
	t.Helper()
	root, err := store.Init(t.TempDir())
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	return root
}

func TestAddContactHandler(t *testing.T) {
	root := setupRoot(t)
	handler := NewContactHandlers(root)

	_, out, err := handler.AddContact(context.Background(), nil, AddContactInput{
		Name:  "John Doe",
		Email: "john@example.com",
		Phone: "555-1234",
	})
	if err != nil {
		t.Fatalf("AddContact failed: %v", err)
	}

	if out.Contact.Name != "John Doe" {
		t.Errorf("Expected name 'John Doe', got %v", out.Contact.Name)
	}
	if out.Contact.Email != "john@example.com" {
		t.Errorf("Expected email 'john@example.com', got %v", out.Contact.Email)
	}
	if out.Contact.ID == "" {
		t.Error("ID was not set")
	}
}

func TestAddContactRequiresName(t *testing.T) {
	handler := NewContactHandlers(setupRoot(t))

	_, _, err := handler.AddContact(context.Background(), nil, AddContactInput{Email: "no@name.com"})
	if err == nil {
		t.Fatal("Expected error for missing name")
	}
}

func TestAddContactWithCompanyName(t *testing.T) {
	root := setupRoot(t)

	companyHandler := NewCompanyHandlers(root)
	_, companyOut, err := companyHandler.AddCompany(context.Background(), nil, AddCompanyInput{Name: "Acme Corp"})
	if err != nil {
		t.Fatalf("AddCompany failed: %v", err)
	}

	handler := NewContactHandlers(root)
	_, out, err := handler.AddContact(context.Background(), nil, AddContactInput{
		Name:    "Jane Smith",
		Email:   "jane@acme.com",
		Company: "Acme Corp",
	})
	if err != nil {
		t.Fatalf("AddContact failed: %v", err)
	}

	if out.Contact.Company != companyOut.Company.ID {
		t.Errorf("Expected company reference %q, got %q", companyOut.Company.ID, out.Contact.Company)
	}
}

func TestAddContactWithUnknownCompany(t *testing.T) {
	handler := NewContactHandlers(setupRoot(t))

	_, _, err := handler.AddContact(context.Background(), nil, AddContactInput{
		Name:    "Jane Smith",
		Company: "Nobody Inc",
	})
	if err == nil {
		t.Fatal("Expected error for unknown company")
	}
}

func TestFindContactsHandler(t *testing.T) {
	root := setupRoot(t)
	handler := NewContactHandlers(root)
	ctx := context.Background()

	for _, name := range []string{"Ada Lovelace", "Grace Hopper"} {
		if _, _, err := handler.AddContact(ctx, nil, AddContactInput{Name: name}); err != nil {
			t.Fatalf("AddContact failed: %v", err)
		}
	}

	_, all, err := handler.FindContacts(ctx, nil, FindContactsInput{})
	if err != nil {
		t.Fatalf("FindContacts failed: %v", err)
	}
	if len(all.Contacts) != 2 {
		t.Errorf("Expected 2 contacts, got %d", len(all.Contacts))
	}

	_, filtered, err := handler.FindContacts(ctx, nil, FindContactsInput{Query: "lovelace"})
	if err != nil {
		t.Fatalf("FindContacts failed: %v", err)
	}
	if len(filtered.Contacts) != 1 || filtered.Contacts[0].Name != "Ada Lovelace" {
		t.Errorf("Expected [Ada Lovelace], got %v", filtered.Contacts)
	}

	_, none, err := handler.FindContacts(ctx, nil, FindContactsInput{Query: "nobody"})
	if err != nil {
		t.Fatalf("FindContacts failed: %v", err)
	}
	if none.Contacts == nil {
		t.Error("Expected empty slice, got nil")
	}
}

func TestUpdateContactHandler(t *testing.T) {
	root := setupRoot(t)
	handler := NewContactHandlers(root)
	ctx := context.Background()

	_, created, err := handler.AddContact(ctx, nil, AddContactInput{Name: "John Doe", Phone: "555-1234"})
	if err != nil {
		t.Fatalf("AddContact failed: %v", err)
	}

	_, updated, err := handler.UpdateContact(ctx, nil, UpdateContactInput{
		ID:    created.Contact.ID,
		Email: "john@new.example.com",
	})
	if err != nil {
		t.Fatalf("UpdateContact failed: %v", err)
	}

	if updated.Contact.Email != "john@new.example.com" {
		t.Errorf("Expected updated email, got %q", updated.Contact.Email)
	}
	if updated.Contact.Phone != "555-1234" {
		t.Errorf("Expected phone preserved, got %q", updated.Contact.Phone)
	}
}

func TestUpdateContactNotFound(t *testing.T) {
	handler := NewContactHandlers(setupRoot(t))

	_, _, err := handler.UpdateContact(context.Background(), nil, UpdateContactInput{ID: "missing99"})
	if err == nil {
		t.Fatal("Expected error for unknown contact")
	}
}
