// ABOUTME: Pipeline summary aggregation
// ABOUTME: Per-stage deal counts, totals, and probability-weighted totals
package db

import (
	"database/sql"
	"fmt"

	"github.com/harperreed/forkyou/models"
)

// StageSummary aggregates the deals currently in one pipeline stage.
type StageSummary struct {
	Stage    string  `json:"stage"`
	Count    int     `json:"count"`
	Total    float64 `json:"total"`
	Weighted float64 `json:"weighted"`
}

// PipelineSummary covers every configured stage in configured order,
// plus grand totals across all of them.
type PipelineSummary struct {
	Stages        []StageSummary `json:"stages"`
	TotalDeals    int            `json:"totalDeals"`
	TotalValue    float64        `json:"totalValue"`
	TotalWeighted float64        `json:"totalWeighted"`
	Currency      string         `json:"currency"`
}

// Pipeline computes the per-stage summary. A deal with no value
// contributes 0 to the stage total; a deal with no probability
// contributes 0 to the weighted total. Stages with no deals appear
// with zero counts; deals in unconfigured stages are ignored.
func Pipeline(db *sql.DB, cfg models.Config) (*PipelineSummary, error) {
	rows, err := db.Query(`
		SELECT stage, COUNT(*), COALESCE(SUM(value), 0), COALESCE(SUM(value * probability / 100.0), 0)
		FROM deals GROUP BY stage
	`)
	if err != nil {
		return nil, fmt.Errorf("querying pipeline: %w", err)
	}
	defer rows.Close()

	byStage := make(map[string]StageSummary)
	for rows.Next() {
		var s StageSummary
		if err := rows.Scan(&s.Stage, &s.Count, &s.Total, &s.Weighted); err != nil {
			return nil, fmt.Errorf("scanning stage summary: %w", err)
		}
		byStage[s.Stage] = s
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	summary := &PipelineSummary{Currency: cfg.Currency}
	for _, stage := range cfg.Stages {
		s := byStage[stage]
		s.Stage = stage
		summary.Stages = append(summary.Stages, s)
		summary.TotalDeals += s.Count
		summary.TotalValue += s.Total
		summary.TotalWeighted += s.Weighted
	}
	return summary, nil
}
