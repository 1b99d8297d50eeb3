// ABOUTME: Deal MCP tool handlers
// ABOUTME: Implements create_deal, move_deal_stage, and pipeline_summary tools
package handlers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/forkyou/db"
	"github.com/harperreed/forkyou/models"
	"github.com/harperreed/forkyou/resolve"
	"github.com/harperreed/forkyou/store"
)

type DealHandlers struct {
	root string
}

func NewDealHandlers(root string) *DealHandlers {
	return &DealHandlers{root: root}
}

type CreateDealInput struct {
	Title       string   `json:"title" jsonschema:"Deal title (required)"`
	Company     string   `json:"company,omitempty" jsonschema:"Company ID or name"`
	Contacts    []string `json:"contacts,omitempty" jsonschema:"Contact IDs linked to the deal"`
	Stage       string   `json:"stage,omitempty" jsonschema:"Pipeline stage (defaults to the first configured stage)"`
	Value       *float64 `json:"value,omitempty" jsonschema:"Deal value"`
	Currency    string   `json:"currency,omitempty" jsonschema:"Currency code"`
	Probability *float64 `json:"probability,omitempty" jsonschema:"Win probability percent (0-100)"`
	CloseDate   string   `json:"closeDate,omitempty" jsonschema:"Expected close date"`
}

type DealOutput struct {
	Deal models.Deal `json:"deal"`
}

func (h *DealHandlers) CreateDeal(_ context.Context, request *mcp.CallToolRequest, input CreateDealInput) (*mcp.CallToolResult, DealOutput, error) {
	if input.Title == "" {
		return nil, DealOutput{}, fmt.Errorf("title is required")
	}

	cfg, err := store.ReadConfig(h.root)
	if err != nil {
		return nil, DealOutput{}, err
	}

	var company string
	if input.Company != "" {
		if company, err = resolve.CompanyID(h.root, input.Company); err != nil {
			return nil, DealOutput{}, err
		}
	}

	stage := input.Stage
	if stage == "" && len(cfg.Stages) > 0 {
		stage = cfg.Stages[0]
	}
	if !cfg.HasStage(stage) {
		return nil, DealOutput{}, fmt.Errorf("invalid stage %q; valid: %s", stage, strings.Join(cfg.Stages, ", "))
	}

	contacts := input.Contacts
	if contacts == nil {
		contacts = []string{}
	}
	currency := input.Currency
	if currency == "" {
		currency = cfg.Currency
	}

	now := time.Now().UTC()
	deal := models.Deal{
		ID:          store.NewID(),
		Title:       input.Title,
		Company:     company,
		Contacts:    contacts,
		Stage:       stage,
		Value:       input.Value,
		Currency:    currency,
		Probability: input.Probability,
		CloseDate:   input.CloseDate,
		Created:     now,
		Updated:     now,
	}
	if err := store.WriteRecord(h.root, store.Deals, deal.ID, deal); err != nil {
		return nil, DealOutput{}, fmt.Errorf("failed to create deal: %w", err)
	}
	return nil, DealOutput{Deal: deal}, nil
}

type MoveDealStageInput struct {
	ID    string `json:"id" jsonschema:"Deal ID (required)"`
	Stage string `json:"stage" jsonschema:"Target pipeline stage (required)"`
}

type MoveDealStageOutput struct {
	Deal          models.Deal `json:"deal"`
	PreviousStage string      `json:"previousStage"`
}

func (h *DealHandlers) MoveDealStage(_ context.Context, request *mcp.CallToolRequest, input MoveDealStageInput) (*mcp.CallToolResult, MoveDealStageOutput, error) {
	if input.ID == "" {
		return nil, MoveDealStageOutput{}, fmt.Errorf("id is required")
	}

	deal, err := store.ReadOne[models.Deal](h.root, store.Deals, input.ID)
	if err != nil {
		return nil, MoveDealStageOutput{}, err
	}
	if deal == nil {
		return nil, MoveDealStageOutput{}, fmt.Errorf("deal not found: %s", input.ID)
	}

	cfg, err := store.ReadConfig(h.root)
	if err != nil {
		return nil, MoveDealStageOutput{}, err
	}
	if !cfg.HasStage(input.Stage) {
		return nil, MoveDealStageOutput{}, fmt.Errorf("invalid stage %q; valid: %s", input.Stage, strings.Join(cfg.Stages, ", "))
	}

	previous := deal.Stage
	deal.Stage = input.Stage
	deal.Updated = time.Now().UTC()
	if err := store.WriteRecord(h.root, store.Deals, deal.ID, deal); err != nil {
		return nil, MoveDealStageOutput{}, fmt.Errorf("failed to update deal: %w", err)
	}
	return nil, MoveDealStageOutput{Deal: *deal, PreviousStage: previous}, nil
}

type PipelineSummaryInput struct{}

func (h *DealHandlers) PipelineSummary(_ context.Context, request *mcp.CallToolRequest, input PipelineSummaryInput) (*mcp.CallToolResult, db.PipelineSummary, error) {
	cfg, err := store.ReadConfig(h.root)
	if err != nil {
		return nil, db.PipelineSummary{}, err
	}
	database, err := db.Build(h.root)
	if err != nil {
		return nil, db.PipelineSummary{}, err
	}
	defer database.Close()

	summary, err := db.Pipeline(database, cfg)
	if err != nil {
		return nil, db.PipelineSummary{}, fmt.Errorf("failed to compute pipeline: %w", err)
	}
	return nil, *summary, nil
}
