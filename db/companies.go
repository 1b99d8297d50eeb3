// ABOUTME: Company projection queries
// ABOUTME: List, search, and per-company related-record lookups
package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/harperreed/forkyou/models"
)

// ListCompanies returns all companies sorted alphabetically by name.
func ListCompanies(db *sql.DB) ([]models.Company, error) {
	return queryCompanies(db, `SELECT `+companyColumns+` FROM companies ORDER BY name`)
}

// SearchCompanies returns companies whose name, domain, or industry
// contains query, case-insensitively, sorted by name.
func SearchCompanies(db *sql.DB, query string) ([]models.Company, error) {
	pattern := "%" + strings.ToLower(query) + "%"
	return queryCompanies(db, `
		SELECT `+companyColumns+` FROM companies
		WHERE LOWER(name) LIKE ? OR LOWER(domain) LIKE ? OR LOWER(industry) LIKE ?
		ORDER BY name
	`, pattern, pattern, pattern)
}

// CompanyContacts returns the contacts whose company reference equals
// companyID.
func CompanyContacts(db *sql.DB, companyID string) ([]ContactSummary, error) {
	rows, err := db.Query(`
		SELECT id, name, role, email FROM contacts WHERE company = ? ORDER BY name
	`, companyID)
	if err != nil {
		return nil, fmt.Errorf("querying company contacts: %w", err)
	}
	defer rows.Close()

	var contacts []ContactSummary
	for rows.Next() {
		var c ContactSummary
		var role, email sql.NullString
		if err := rows.Scan(&c.ID, &c.Name, &role, &email); err != nil {
			return nil, fmt.Errorf("scanning contact summary: %w", err)
		}
		c.Role = role.String
		c.Email = email.String
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

// CompanyDeals returns the deals whose company reference equals companyID.
func CompanyDeals(db *sql.DB, companyID string) ([]DealSummary, error) {
	return queryDealSummaries(db, `
		SELECT id, title, stage, value FROM deals WHERE company = ? ORDER BY title
	`, companyID)
}

const companyColumns = "id, name, domain, industry, size, custom, created, updated"

func queryCompanies(db *sql.DB, query string, args ...any) ([]models.Company, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying companies: %w", err)
	}
	defer rows.Close()

	var companies []models.Company
	for rows.Next() {
		var c models.Company
		var domain, industry, size, custom sql.NullString
		var created, updated string

		if err := rows.Scan(&c.ID, &c.Name, &domain, &industry, &size, &custom, &created, &updated); err != nil {
			return nil, fmt.Errorf("scanning company: %w", err)
		}
		c.Domain = domain.String
		c.Industry = industry.String
		c.Size = size.String
		if custom.Valid {
			if err := json.Unmarshal([]byte(custom.String), &c.Custom); err != nil {
				return nil, fmt.Errorf("parsing company custom fields: %w", err)
			}
		}
		c.Created = parseTime(created)
		c.Updated = parseTime(updated)
		companies = append(companies, c)
	}
	return companies, rows.Err()
}
