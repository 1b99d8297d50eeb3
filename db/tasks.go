// ABOUTME: Task projection queries
// ABOUTME: Lists tasks with pending-first, due-date-ascending ordering
package db

import (
	"database/sql"
	"fmt"

	"github.com/harperreed/forkyou/models"
)

// ListTasks returns all tasks: unfinished before finished, then by due
// date ascending (missing due dates sort earliest), then by creation
// time descending.
func ListTasks(db *sql.DB) ([]models.Task, error) {
	// SQLite sorts NULLs first in ASC order, which gives missing due
	// dates the "earliest" position.
	rows, err := db.Query(`
		SELECT id, title, contact, deal, company, due, done, created, updated
		FROM tasks ORDER BY done ASC, due ASC, created DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying tasks: %w", err)
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var t models.Task
		var contact, deal, company, due sql.NullString
		var done int
		var created, updated string

		err := rows.Scan(&t.ID, &t.Title, &contact, &deal, &company, &due, &done, &created, &updated)
		if err != nil {
			return nil, fmt.Errorf("scanning task: %w", err)
		}
		t.Contact = contact.String
		t.Deal = deal.String
		t.Company = company.String
		t.Due = due.String
		t.Done = done != 0
		t.Created = parseTime(created)
		t.Updated = parseTime(updated)
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}
