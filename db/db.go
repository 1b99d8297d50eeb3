// ABOUTME: Ephemeral in-memory query projection over the record store
// ABOUTME: Rebuilds a SQLite snapshot from JSON files for each invocation
package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/harperreed/forkyou/models"
	"github.com/harperreed/forkyou/store"
)

// Build loads every collection from the store into a fresh in-memory
// SQLite database. The projection is read-only working memory for one
// command; callers close it when done and nothing is persisted.
func Build(root string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening projection: %w", err)
	}
	// A :memory: database exists per connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing projection schema: %w", err)
	}

	loaders := []func(*sql.DB, string) error{
		loadContacts,
		loadCompanies,
		loadDeals,
		loadActivities,
		loadTasks,
	}
	for _, load := range loaders {
		if err := load(db, root); err != nil {
			db.Close()
			return nil, err
		}
	}
	return db, nil
}

func loadContacts(db *sql.DB, root string) error {
	contacts, err := store.ReadAll[models.Contact](root, store.Contacts)
	if err != nil {
		return err
	}
	stmt, err := db.Prepare(`
		INSERT INTO contacts (id, name, email, phone, company, role, custom, created, updated)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing contact insert: %w", err)
	}
	defer stmt.Close()

	for _, c := range contacts {
		_, err := stmt.Exec(c.ID, c.Name, nullString(c.Email), nullString(c.Phone),
			nullString(c.Company), nullString(c.Role), customJSON(c.Custom),
			timeText(c.Created), timeText(c.Updated))
		if err != nil {
			return fmt.Errorf("loading contact %s: %w", c.ID, err)
		}
	}
	return nil
}

func loadCompanies(db *sql.DB, root string) error {
	companies, err := store.ReadAll[models.Company](root, store.Companies)
	if err != nil {
		return err
	}
	stmt, err := db.Prepare(`
		INSERT INTO companies (id, name, domain, industry, size, custom, created, updated)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing company insert: %w", err)
	}
	defer stmt.Close()

	for _, c := range companies {
		_, err := stmt.Exec(c.ID, c.Name, nullString(c.Domain), nullString(c.Industry),
			nullString(c.Size), customJSON(c.Custom), timeText(c.Created), timeText(c.Updated))
		if err != nil {
			return fmt.Errorf("loading company %s: %w", c.ID, err)
		}
	}
	return nil
}

func loadDeals(db *sql.DB, root string) error {
	deals, err := store.ReadAll[models.Deal](root, store.Deals)
	if err != nil {
		return err
	}
	stmt, err := db.Prepare(`
		INSERT INTO deals (id, title, company, contacts, stage, value, currency, probability, close_date, custom, created, updated)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing deal insert: %w", err)
	}
	defer stmt.Close()

	for _, d := range deals {
		contacts, err := json.Marshal(d.Contacts)
		if err != nil {
			return fmt.Errorf("encoding deal contacts: %w", err)
		}
		_, err = stmt.Exec(d.ID, d.Title, nullString(d.Company), string(contacts), d.Stage,
			d.Value, nullString(d.Currency), d.Probability, nullString(d.CloseDate),
			customJSON(d.Custom), timeText(d.Created), timeText(d.Updated))
		if err != nil {
			return fmt.Errorf("loading deal %s: %w", d.ID, err)
		}
	}
	return nil
}

func loadActivities(db *sql.DB, root string) error {
	activities, err := store.ReadAll[models.Activity](root, store.Activities)
	if err != nil {
		return err
	}
	stmt, err := db.Prepare(`
		INSERT INTO activities (id, type, subject, body, contact, deal, company, date, created, updated)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing activity insert: %w", err)
	}
	defer stmt.Close()

	for _, a := range activities {
		_, err := stmt.Exec(a.ID, a.Type, a.Subject, nullString(a.Body), nullString(a.Contact),
			nullString(a.Deal), nullString(a.Company), a.Date, timeText(a.Created), timeText(a.Updated))
		if err != nil {
			return fmt.Errorf("loading activity %s: %w", a.ID, err)
		}
	}
	return nil
}

func loadTasks(db *sql.DB, root string) error {
	tasks, err := store.ReadAll[models.Task](root, store.Tasks)
	if err != nil {
		return err
	}
	stmt, err := db.Prepare(`
		INSERT INTO tasks (id, title, contact, deal, company, due, done, created, updated)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing task insert: %w", err)
	}
	defer stmt.Close()

	for _, t := range tasks {
		done := 0
		if t.Done {
			done = 1
		}
		_, err := stmt.Exec(t.ID, t.Title, nullString(t.Contact), nullString(t.Deal),
			nullString(t.Company), nullString(t.Due), done, timeText(t.Created), timeText(t.Updated))
		if err != nil {
			return fmt.Errorf("loading task %s: %w", t.ID, err)
		}
	}
	return nil
}

// timeText formats timestamps so that lexical order matches time order.
func timeText(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func customJSON(m map[string]string) any {
	if len(m) == 0 {
		return nil
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil
	}
	return string(data)
}
