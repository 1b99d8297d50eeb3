// ABOUTME: Company reference resolution for id-or-name arguments
// ABOUTME: Collapses a user-supplied company reference to a canonical id
package resolve

import (
	"fmt"
	"strings"

	"github.com/harperreed/forkyou/models"
	"github.com/harperreed/forkyou/store"
)

// NotFoundError reports that no company matched the supplied reference.
type NotFoundError struct {
	Value string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no company found matching %q; run: fu company list", e.Value)
}

// AmbiguousError reports that multiple companies share the supplied
// name. Matches holds every candidate so callers can list them.
type AmbiguousError struct {
	Value   string
	Matches []models.Company
}

func (e *AmbiguousError) Error() string {
	pairs := make([]string, len(e.Matches))
	for i, c := range e.Matches {
		pairs[i] = fmt.Sprintf("%s (%s)", c.Name, c.ID)
	}
	return fmt.Sprintf("multiple companies match %q: %s; use an ID instead",
		e.Value, strings.Join(pairs, ", "))
}

// CompanyID resolves a company reference that may be either an id or a
// display name. An existing id wins even if it happens to equal another
// company's name. Name matching is a case-insensitive exact match.
func CompanyID(root, value string) (string, error) {
	byID, err := store.ReadOne[models.Company](root, store.Companies, value)
	if err != nil {
		return "", err
	}
	if byID != nil {
		return value, nil
	}

	all, err := store.ReadAll[models.Company](root, store.Companies)
	if err != nil {
		return "", err
	}
	var matches []models.Company
	for _, c := range all {
		if strings.EqualFold(c.Name, value) {
			matches = append(matches, c)
		}
	}

	switch len(matches) {
	case 1:
		return matches[0].ID, nil
	case 0:
		return "", &NotFoundError{Value: value}
	default:
		return "", &AmbiguousError{Value: value, Matches: matches}
	}
}
