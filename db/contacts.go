// ABOUTME: Contact projection queries
// ABOUTME: List, search, and per-contact related-record lookups
package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/harperreed/forkyou/models"
)

// ContactSummary is the abbreviated contact row attached to company views.
type ContactSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Role  string `json:"role,omitempty"`
	Email string `json:"email,omitempty"`
}

// ListContacts returns all contacts sorted alphabetically by name.
func ListContacts(db *sql.DB) ([]models.Contact, error) {
	return queryContacts(db, `SELECT `+contactColumns+` FROM contacts ORDER BY name`)
}

// SearchContacts returns contacts whose name, email, or role contains
// query, case-insensitively, sorted by name.
func SearchContacts(db *sql.DB, query string) ([]models.Contact, error) {
	pattern := "%" + strings.ToLower(query) + "%"
	return queryContacts(db, `
		SELECT `+contactColumns+` FROM contacts
		WHERE LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(role) LIKE ?
		ORDER BY name
	`, pattern, pattern, pattern)
}

// ContactActivities returns the most recent activities linked to a
// contact, newest first.
func ContactActivities(db *sql.DB, contactID string, limit int) ([]ActivitySummary, error) {
	return queryActivitySummaries(db, `
		SELECT id, type, subject, date FROM activities
		WHERE contact = ? ORDER BY date DESC LIMIT ?
	`, contactID, limit)
}

const contactColumns = "id, name, email, phone, company, role, custom, created, updated"

func queryContacts(db *sql.DB, query string, args ...any) ([]models.Contact, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying contacts: %w", err)
	}
	defer rows.Close()

	var contacts []models.Contact
	for rows.Next() {
		var c models.Contact
		var email, phone, company, role, custom sql.NullString
		var created, updated string

		if err := rows.Scan(&c.ID, &c.Name, &email, &phone, &company, &role, &custom, &created, &updated); err != nil {
			return nil, fmt.Errorf("scanning contact: %w", err)
		}
		c.Email = email.String
		c.Phone = phone.String
		c.Company = company.String
		c.Role = role.String
		if custom.Valid {
			if err := json.Unmarshal([]byte(custom.String), &c.Custom); err != nil {
				return nil, fmt.Errorf("parsing contact custom fields: %w", err)
			}
		}
		c.Created = parseTime(created)
		c.Updated = parseTime(updated)
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}
