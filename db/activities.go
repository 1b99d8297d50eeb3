// ABOUTME: Activity projection queries
// ABOUTME: Date-descending listing and shared activity summary scanning
package db

import (
	"database/sql"
	"fmt"

	"github.com/harperreed/forkyou/models"
)

// ActivitySummary is the abbreviated activity row attached to contact
// and deal views.
type ActivitySummary struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Subject string `json:"subject"`
	Date    string `json:"date"`
}

// ListActivities returns all activities sorted by date, most recent first.
func ListActivities(db *sql.DB) ([]models.Activity, error) {
	rows, err := db.Query(`
		SELECT id, type, subject, body, contact, deal, company, date, created, updated
		FROM activities ORDER BY date DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying activities: %w", err)
	}
	defer rows.Close()

	var activities []models.Activity
	for rows.Next() {
		var a models.Activity
		var body, contact, deal, company sql.NullString
		var created, updated string

		err := rows.Scan(&a.ID, &a.Type, &a.Subject, &body, &contact, &deal, &company,
			&a.Date, &created, &updated)
		if err != nil {
			return nil, fmt.Errorf("scanning activity: %w", err)
		}
		a.Body = body.String
		a.Contact = contact.String
		a.Deal = deal.String
		a.Company = company.String
		a.Created = parseTime(created)
		a.Updated = parseTime(updated)
		activities = append(activities, a)
	}
	return activities, rows.Err()
}

func queryActivitySummaries(db *sql.DB, query string, args ...any) ([]ActivitySummary, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying activity summaries: %w", err)
	}
	defer rows.Close()

	var activities []ActivitySummary
	for rows.Next() {
		var a ActivitySummary
		if err := rows.Scan(&a.ID, &a.Type, &a.Subject, &a.Date); err != nil {
			return nil, fmt.Errorf("scanning activity summary: %w", err)
		}
		activities = append(activities, a)
	}
	return activities, rows.Err()
}
