// ABOUTME: Deal projection queries
// ABOUTME: Stage-ordered listing, search, and per-deal related lookups
package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/harperreed/forkyou/models"
)

// DealSummary is the abbreviated deal row attached to contact and
// company views.
type DealSummary struct {
	ID    string   `json:"id"`
	Title string   `json:"title"`
	Stage string   `json:"stage"`
	Value *float64 `json:"value,omitempty"`
}

// ListDeals returns all deals grouped by pipeline stage in the order
// the stages are configured, then alphabetically by title within a
// stage. Deals holding stages no longer in the configuration sort last.
func ListDeals(db *sql.DB, cfg models.Config) ([]models.Deal, error) {
	deals, err := queryDeals(db, `SELECT `+dealColumns+` FROM deals ORDER BY title`)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(deals, func(i, j int) bool {
		return cfg.StageRank(deals[i].Stage) < cfg.StageRank(deals[j].Stage)
	})
	return deals, nil
}

// SearchDeals returns deals whose title or stage contains query,
// case-insensitively, sorted by title.
func SearchDeals(db *sql.DB, query string) ([]models.Deal, error) {
	pattern := "%" + strings.ToLower(query) + "%"
	return queryDeals(db, `
		SELECT `+dealColumns+` FROM deals
		WHERE LOWER(title) LIKE ? OR LOWER(stage) LIKE ?
		ORDER BY title
	`, pattern, pattern)
}

// ContactDeals returns the deals whose contact list contains contactID.
func ContactDeals(db *sql.DB, contactID string) ([]DealSummary, error) {
	return queryDealSummaries(db, `
		SELECT id, title, stage, value FROM deals WHERE contacts LIKE ? ORDER BY title
	`, "%"+contactID+"%")
}

// DealActivities returns the most recent activities linked to a deal,
// newest first.
func DealActivities(db *sql.DB, dealID string, limit int) ([]ActivitySummary, error) {
	return queryActivitySummaries(db, `
		SELECT id, type, subject, date FROM activities
		WHERE deal = ? ORDER BY date DESC LIMIT ?
	`, dealID, limit)
}

const dealColumns = "id, title, company, contacts, stage, value, currency, probability, close_date, custom, created, updated"

func queryDeals(db *sql.DB, query string, args ...any) ([]models.Deal, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying deals: %w", err)
	}
	defer rows.Close()

	var deals []models.Deal
	for rows.Next() {
		var d models.Deal
		var company, currency, closeDate, custom sql.NullString
		var contacts, created, updated string
		var value, probability sql.NullFloat64

		err := rows.Scan(&d.ID, &d.Title, &company, &contacts, &d.Stage, &value,
			&currency, &probability, &closeDate, &custom, &created, &updated)
		if err != nil {
			return nil, fmt.Errorf("scanning deal: %w", err)
		}
		d.Company = company.String
		if err := json.Unmarshal([]byte(contacts), &d.Contacts); err != nil {
			return nil, fmt.Errorf("parsing deal contacts: %w", err)
		}
		if d.Contacts == nil {
			d.Contacts = []string{}
		}
		if value.Valid {
			v := value.Float64
			d.Value = &v
		}
		d.Currency = currency.String
		if probability.Valid {
			p := probability.Float64
			d.Probability = &p
		}
		d.CloseDate = closeDate.String
		if custom.Valid {
			if err := json.Unmarshal([]byte(custom.String), &d.Custom); err != nil {
				return nil, fmt.Errorf("parsing deal custom fields: %w", err)
			}
		}
		d.Created = parseTime(created)
		d.Updated = parseTime(updated)
		deals = append(deals, d)
	}
	return deals, rows.Err()
}

func queryDealSummaries(db *sql.DB, query string, args ...any) ([]DealSummary, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying deal summaries: %w", err)
	}
	defer rows.Close()

	var deals []DealSummary
	for rows.Next() {
		var d DealSummary
		var value sql.NullFloat64
		if err := rows.Scan(&d.ID, &d.Title, &d.Stage, &value); err != nil {
			return nil, fmt.Errorf("scanning deal summary: %w", err)
		}
		if value.Valid {
			v := value.Float64
			d.Value = &v
		}
		deals = append(deals, d)
	}
	return deals, rows.Err()
}
