// ABOUTME: Tests for company reference resolution
// ABOUTME: Covers id precedence, case-insensitive names, and ambiguity
package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/forkyou/models"
	"github.com/harperreed/forkyou/store"
)

func seedCompany(t *testing.T, root, id, name string) {
	t.Helper()
	require.NoError(t, store.WriteRecord(root, store.Companies, id, models.Company{ID: id, Name: name}))
}

func TestCompanyID_ByID(t *testing.T) {
	root, err := store.Init(t.TempDir())
	require.NoError(t, err)
	seedCompany(t, root, "abc12345", "Acme")

	id, err := CompanyID(root, "abc12345")
	require.NoError(t, err)
	assert.Equal(t, "abc12345", id)
}

func TestCompanyID_ByNameCaseInsensitive(t *testing.T) {
	root, err := store.Init(t.TempDir())
	require.NoError(t, err)
	seedCompany(t, root, "abc12345", "Acme Corp")

	for _, value := range []string{"Acme Corp", "acme corp", "ACME CORP"} {
		id, err := CompanyID(root, value)
		require.NoError(t, err, value)
		assert.Equal(t, "abc12345", id)
	}
}

func TestCompanyID_IDWinsOverName(t *testing.T) {
	root, err := store.Init(t.TempDir())
	require.NoError(t, err)
	// A company whose name equals another company's id.
	seedCompany(t, root, "abc12345", "Acme")
	seedCompany(t, root, "def67890", "abc12345")

	id, err := CompanyID(root, "abc12345")
	require.NoError(t, err)
	assert.Equal(t, "abc12345", id)
}

func TestCompanyID_NotFound(t *testing.T) {
	root, err := store.Init(t.TempDir())
	require.NoError(t, err)
	seedCompany(t, root, "abc12345", "Acme")

	_, err = CompanyID(root, "Nobody Inc")
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "Nobody Inc", notFound.Value)
}

func TestCompanyID_Ambiguous(t *testing.T) {
	root, err := store.Init(t.TempDir())
	require.NoError(t, err)
	seedCompany(t, root, "abc12345", "Acme")
	seedCompany(t, root, "def67890", "ACME")

	_, err = CompanyID(root, "acme")
	var ambiguous *AmbiguousError
	require.ErrorAs(t, err, &ambiguous)
	assert.Len(t, ambiguous.Matches, 2)
	assert.Contains(t, err.Error(), "abc12345")
	assert.Contains(t, err.Error(), "def67890")
}
