// ABOUTME: Tests for CRM data models
// ABOUTME: Validates config helpers and JSON wire-format round trips
package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "USD", cfg.Currency)
	require.Len(t, cfg.Stages, 6)
	assert.Equal(t, "lead", cfg.Stages[0])
	assert.Equal(t, "closed-lost", cfg.Stages[5])
}

func TestConfig_HasStage(t *testing.T) {
	cfg := Config{Stages: []string{"a", "b"}}

	assert.True(t, cfg.HasStage("a"))
	assert.False(t, cfg.HasStage("c"))
	assert.False(t, cfg.HasStage(""))
}

func TestConfig_StageRank(t *testing.T) {
	cfg := Config{Stages: []string{"lead", "won"}}

	assert.Equal(t, 0, cfg.StageRank("lead"))
	assert.Equal(t, 1, cfg.StageRank("won"))
	// Unconfigured stages sort after every configured one.
	assert.Equal(t, 2, cfg.StageRank("legacy-stage"))
}

func TestValidActivityType(t *testing.T) {
	for _, v := range []string{"call", "email", "meeting", "note"} {
		assert.True(t, ValidActivityType(v), v)
	}
	assert.False(t, ValidActivityType("fax"))
	assert.False(t, ValidActivityType(""))
}

func TestContact_JSONRoundTrip(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	contact := Contact{
		ID:      "abc23456",
		Name:    "Ada Lovelace",
		Email:   "ada@example.com",
		Company: "cmp23456",
		Custom: map[string]string{
			"twitter":  "@ada",
			"quote":    `said "hello" \ goodbye`,
			"newlines": "line1\nline2",
		},
		Created: now,
		Updated: now,
	}

	data, err := json.Marshal(contact)
	require.NoError(t, err)

	var decoded Contact
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, contact.ID, decoded.ID)
	assert.Equal(t, contact.Name, decoded.Name)
	assert.Equal(t, contact.Email, decoded.Email)
	assert.Equal(t, contact.Company, decoded.Company)
	assert.Equal(t, contact.Custom, decoded.Custom)
	assert.True(t, decoded.Created.Equal(contact.Created))
	assert.True(t, decoded.Updated.Equal(contact.Updated))
}

func TestDeal_JSONOmitsMissingValue(t *testing.T) {
	deal := Deal{ID: "d", Title: "No numbers yet", Contacts: []string{}, Stage: "lead"}

	data, err := json.Marshal(deal)
	require.NoError(t, err)

	assert.NotContains(t, string(data), `"value"`)
	assert.NotContains(t, string(data), `"probability"`)
	assert.Contains(t, string(data), `"contacts":[]`)
}
