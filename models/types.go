// ABOUTME: Data models for CRM entities
// ABOUTME: Defines Contact, Company, Deal, Activity, Task, and Config structs
package models

import "time"

type Contact struct {
	ID      string            `json:"id"`
	Name    string            `json:"name"`
	Email   string            `json:"email,omitempty"`
	Phone   string            `json:"phone,omitempty"`
	Company string            `json:"company,omitempty"` // company id
	Role    string            `json:"role,omitempty"`
	Custom  map[string]string `json:"custom,omitempty"`
	Created time.Time         `json:"created"`
	Updated time.Time         `json:"updated"`
}

type Company struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	Domain   string            `json:"domain,omitempty"`
	Industry string            `json:"industry,omitempty"`
	Size     string            `json:"size,omitempty"`
	Custom   map[string]string `json:"custom,omitempty"`
	Created  time.Time         `json:"created"`
	Updated  time.Time         `json:"updated"`
}

type Deal struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Company     string            `json:"company,omitempty"` // company id
	Contacts    []string          `json:"contacts"`          // contact ids, order-preserving
	Stage       string            `json:"stage"`
	Value       *float64          `json:"value,omitempty"`
	Currency    string            `json:"currency,omitempty"`
	Probability *float64          `json:"probability,omitempty"` // 0-100
	CloseDate   string            `json:"closeDate,omitempty"`
	Custom      map[string]string `json:"custom,omitempty"`
	Created     time.Time         `json:"created"`
	Updated     time.Time         `json:"updated"`
}

type Activity struct {
	ID      string    `json:"id"`
	Type    string    `json:"type"`
	Subject string    `json:"subject"`
	Body    string    `json:"body,omitempty"`
	Contact string    `json:"contact,omitempty"` // contact id
	Deal    string    `json:"deal,omitempty"`    // deal id
	Company string    `json:"company,omitempty"` // company id
	Date    string    `json:"date"`
	Created time.Time `json:"created"`
	Updated time.Time `json:"updated"`
}

type Task struct {
	ID      string    `json:"id"`
	Title   string    `json:"title"`
	Contact string    `json:"contact,omitempty"` // contact id
	Deal    string    `json:"deal,omitempty"`    // deal id
	Company string    `json:"company,omitempty"` // company id
	Due     string    `json:"due,omitempty"`
	Done    bool      `json:"done"`
	Created time.Time `json:"created"`
	Updated time.Time `json:"updated"`
}

// Config is the singleton pipeline configuration stored in config.json.
type Config struct {
	Stages   []string `json:"stages"`
	Currency string   `json:"currency"`
}

// Activity type constants.
const (
	ActivityCall    = "call"
	ActivityEmail   = "email"
	ActivityMeeting = "meeting"
	ActivityNote    = "note"
)

// ActivityTypes lists the valid activity types in display order.
var ActivityTypes = []string{ActivityCall, ActivityEmail, ActivityMeeting, ActivityNote}

// ValidActivityType reports whether t is a recognized activity type.
func ValidActivityType(t string) bool {
	for _, v := range ActivityTypes {
		if v == t {
			return true
		}
	}
	return false
}

// DefaultConfig returns the out-of-the-box pipeline configuration.
func DefaultConfig() Config {
	return Config{
		Stages: []string{
			"lead",
			"qualified",
			"proposal",
			"negotiation",
			"closed-won",
			"closed-lost",
		},
		Currency: "USD",
	}
}

// HasStage reports whether stage is a member of the configured stage list.
func (c Config) HasStage(stage string) bool {
	for _, s := range c.Stages {
		if s == stage {
			return true
		}
	}
	return false
}

// StageRank returns the position of stage in the configured order, or
// len(Stages) for stages that are no longer configured.
func (c Config) StageRank(stage string) int {
	for i, s := range c.Stages {
		if s == stage {
			return i
		}
	}
	return len(c.Stages)
}
