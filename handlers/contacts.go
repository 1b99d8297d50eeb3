// ABOUTME: Contact MCP tool handlers
// ABOUTME: Implements add_contact, find_contacts, and update_contact tools
package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/forkyou/db"
	"github.com/harperreed/forkyou/models"
	"github.com/harperreed/forkyou/resolve"
	"github.com/harperreed/forkyou/store"
)

type ContactHandlers struct {
	root string
}

func NewContactHandlers(root string) *ContactHandlers {
	return &ContactHandlers{root: root}
}

type AddContactInput struct {
	Name    string `json:"name" jsonschema:"Contact name (required)"`
	Email   string `json:"email,omitempty" jsonschema:"Contact email address"`
	Phone   string `json:"phone,omitempty" jsonschema:"Contact phone number"`
	Company string `json:"company,omitempty" jsonschema:"Company ID or name"`
	Role    string `json:"role,omitempty" jsonschema:"Role or job title"`
}

type ContactOutput struct {
	Contact models.Contact `json:"contact"`
}

func (h *ContactHandlers) AddContact(_ context.Context, request *mcp.CallToolRequest, input AddContactInput) (*mcp.CallToolResult, ContactOutput, error) {
	if input.Name == "" {
		return nil, ContactOutput{}, fmt.Errorf("name is required")
	}

	var company string
	if input.Company != "" {
		id, err := resolve.CompanyID(h.root, input.Company)
		if err != nil {
			return nil, ContactOutput{}, err
		}
		company = id
	}

	now := time.Now().UTC()
	contact := models.Contact{
		ID:      store.NewID(),
		Name:    input.Name,
		Email:   input.Email,
		Phone:   input.Phone,
		Company: company,
		Role:    input.Role,
		Created: now,
		Updated: now,
	}
	if err := store.WriteRecord(h.root, store.Contacts, contact.ID, contact); err != nil {
		return nil, ContactOutput{}, fmt.Errorf("failed to create contact: %w", err)
	}
	return nil, ContactOutput{Contact: contact}, nil
}

type FindContactsInput struct {
	Query string `json:"query,omitempty" jsonschema:"Search query (searches name, email, and role); empty lists all contacts"`
}

type FindContactsOutput struct {
	Contacts []models.Contact `json:"contacts"`
}

func (h *ContactHandlers) FindContacts(_ context.Context, request *mcp.CallToolRequest, input FindContactsInput) (*mcp.CallToolResult, FindContactsOutput, error) {
	database, err := db.Build(h.root)
	if err != nil {
		return nil, FindContactsOutput{}, err
	}
	defer database.Close()

	var contacts []models.Contact
	if input.Query == "" {
		contacts, err = db.ListContacts(database)
	} else {
		contacts, err = db.SearchContacts(database, input.Query)
	}
	if err != nil {
		return nil, FindContactsOutput{}, fmt.Errorf("failed to find contacts: %w", err)
	}
	if contacts == nil {
		contacts = []models.Contact{}
	}
	return nil, FindContactsOutput{Contacts: contacts}, nil
}

type UpdateContactInput struct {
	ID      string `json:"id" jsonschema:"Contact ID (required)"`
	Name    string `json:"name,omitempty" jsonschema:"Updated contact name"`
	Email   string `json:"email,omitempty" jsonschema:"Updated email address"`
	Phone   string `json:"phone,omitempty" jsonschema:"Updated phone number"`
	Company string `json:"company,omitempty" jsonschema:"Updated company ID or name"`
	Role    string `json:"role,omitempty" jsonschema:"Updated role"`
}

func (h *ContactHandlers) UpdateContact(_ context.Context, request *mcp.CallToolRequest, input UpdateContactInput) (*mcp.CallToolResult, ContactOutput, error) {
	if input.ID == "" {
		return nil, ContactOutput{}, fmt.Errorf("id is required")
	}

	contact, err := store.ReadOne[models.Contact](h.root, store.Contacts, input.ID)
	if err != nil {
		return nil, ContactOutput{}, err
	}
	if contact == nil {
		return nil, ContactOutput{}, fmt.Errorf("contact not found: %s", input.ID)
	}

	if input.Name != "" {
		contact.Name = input.Name
	}
	if input.Email != "" {
		contact.Email = input.Email
	}
	if input.Phone != "" {
		contact.Phone = input.Phone
	}
	if input.Role != "" {
		contact.Role = input.Role
	}
	if input.Company != "" {
		id, err := resolve.CompanyID(h.root, input.Company)
		if err != nil {
			return nil, ContactOutput{}, err
		}
		contact.Company = id
	}
	contact.Updated = time.Now().UTC()

	if err := store.WriteRecord(h.root, store.Contacts, contact.ID, contact); err != nil {
		return nil, ContactOutput{}, fmt.Errorf("failed to update contact: %w", err)
	}
	return nil, ContactOutput{Contact: *contact}, nil
}
