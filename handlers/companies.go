// ABOUTME: Company MCP tool handlers
// ABOUTME: Implements add_company and find_companies tools
package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/forkyou/db"
	"github.com/harperreed/forkyou/models"
	"github.com/harperreed/forkyou/store"
)

type CompanyHandlers struct {
	root string
}

func NewCompanyHandlers(root string) *CompanyHandlers {
	return &CompanyHandlers{root: root}
}

type AddCompanyInput struct {
	Name     string `json:"name" jsonschema:"Company name (required)"`
	Domain   string `json:"domain,omitempty" jsonschema:"Company domain (e.g. acme.com)"`
	Industry string `json:"industry,omitempty" jsonschema:"Industry"`
	Size     string `json:"size,omitempty" jsonschema:"Company size"`
}

type CompanyOutput struct {
	Company models.Company `json:"company"`
}

func (h *CompanyHandlers) AddCompany(_ context.Context, request *mcp.CallToolRequest, input AddCompanyInput) (*mcp.CallToolResult, CompanyOutput, error) {
	if input.Name == "" {
		return nil, CompanyOutput{}, fmt.Errorf("name is required")
	}

	now := time.Now().UTC()
	company := models.Company{
		ID:       store.NewID(),
		Name:     input.Name,
		Domain:   input.Domain,
		Industry: input.Industry,
		Size:     input.Size,
		Created:  now,
		Updated:  now,
	}
	if err := store.WriteRecord(h.root, store.Companies, company.ID, company); err != nil {
		return nil, CompanyOutput{}, fmt.Errorf("failed to create company: %w", err)
	}
	return nil, CompanyOutput{Company: company}, nil
}

type FindCompaniesInput struct {
	Query string `json:"query,omitempty" jsonschema:"Search query (searches name, domain, and industry); empty lists all companies"`
}

type FindCompaniesOutput struct {
	Companies []models.Company `json:"companies"`
}

func (h *CompanyHandlers) FindCompanies(_ context.Context, request *mcp.CallToolRequest, input FindCompaniesInput) (*mcp.CallToolResult, FindCompaniesOutput, error) {
	database, err := db.Build(h.root)
	if err != nil {
		return nil, FindCompaniesOutput{}, err
	}
	defer database.Close()

	var companies []models.Company
	if input.Query == "" {
		companies, err = db.ListCompanies(database)
	} else {
		companies, err = db.SearchCompanies(database, input.Query)
	}
	if err != nil {
		return nil, FindCompaniesOutput{}, fmt.Errorf("failed to find companies: %w", err)
	}
	if companies == nil {
		companies = []models.Company{}
	}
	return nil, FindCompaniesOutput{Companies: companies}, nil
}
