// ABOUTME: Tests for contact CLI commands
// ABOUTME: Covers edit merge semantics for company references
package cli

import (
	"testing"
	"time"

	"github.com/harperreed/forkyou/models"
	"github.com/harperreed/forkyou/store"
)

func TestContactEditEmptyCompanyLeavesFieldUnchanged(t *testing.T) {
	root := initProject(t)
	now := time.Now().UTC()

	company := models.Company{ID: "acme1234", Name: "Acme", Created: now, Updated: now}
	if err := store.WriteRecord(root, store.Companies, company.ID, company); err != nil {
		t.Fatalf("WriteRecord failed: %v", err)
	}
	contact := models.Contact{ID: "ada12345", Name: "Ada", Company: company.ID, Created: now, Updated: now}
	if err := store.WriteRecord(root, store.Contacts, contact.ID, contact); err != nil {
		t.Fatalf("WriteRecord failed: %v", err)
	}

	if err := runCLI(t, "contact", "edit", contact.ID, "--company", "", "--role", "CTO"); err != nil {
		t.Fatalf("contact edit failed: %v", err)
	}

	got, err := store.ReadOne[models.Contact](root, store.Contacts, contact.ID)
	if err != nil {
		t.Fatalf("ReadOne failed: %v", err)
	}
	if got.Company != company.ID {
		t.Errorf("Expected company %q unchanged, got %q", company.ID, got.Company)
	}
	if got.Role != "CTO" {
		t.Errorf("Expected role updated, got %q", got.Role)
	}
}
