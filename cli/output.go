// ABOUTME: Output envelope and terminal styling helpers
// ABOUTME: JSON envelopes on --json, lipgloss-styled text otherwise
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/forkyou/resolve"
)

var (
	boldStyle    = lipgloss.NewStyle().Bold(true)
	dimStyle     = lipgloss.NewStyle().Faint(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

func bold(s string) string { return boldStyle.Render(s) }
func dim(s string) string  { return dimStyle.Render(s) }

// emit reports a successful command. In JSON mode payload is printed
// with success:true folded in; otherwise human runs unless quiet.
func emit(payload map[string]any, human func()) error {
	if jsonOutput {
		if payload == nil {
			payload = map[string]any{}
		}
		payload["success"] = true
		return printJSON(payload)
	}
	if !quiet && human != nil {
		human()
	}
	return nil
}

// fail reports a command failure (validation, not-found, resolution)
// and returns an error that makes the process exit non-zero. context
// keys are merged into the JSON envelope.
func fail(code string, context map[string]any, humanMsg string) error {
	if jsonOutput {
		payload := map[string]any{"success": false, "error": code}
		for k, v := range context {
			payload[k] = v
		}
		if err := printJSON(payload); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(os.Stderr, errorStyle.Render("✗ ")+humanMsg)
	}
	return &exitError{code: 1}
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printSuccess(format string, args ...any) {
	fmt.Println(successStyle.Render("✓ ") + fmt.Sprintf(format, args...))
}

func printInfo(format string, args ...any) {
	fmt.Println(dim(fmt.Sprintf(format, args...)))
}

// resolveCompany maps a resolver failure onto the output contract.
func resolveCompany(root, value string) (string, error) {
	id, err := resolve.CompanyID(root, value)
	if err == nil {
		return id, nil
	}

	var notFound *resolve.NotFoundError
	if errors.As(err, &notFound) {
		return "", fail("company_not_found", map[string]any{"value": value}, err.Error())
	}
	var ambiguous *resolve.AmbiguousError
	if errors.As(err, &ambiguous) {
		matches := make([]map[string]string, len(ambiguous.Matches))
		for i, c := range ambiguous.Matches {
			matches[i] = map[string]string{"id": c.ID, "name": c.Name}
		}
		return "", fail("ambiguous_company", map[string]any{"value": value, "matches": matches}, err.Error())
	}
	return "", err
}

// formatValue renders a monetary amount for human output.
func formatValue(v float64) string {
	return fmt.Sprintf("$%.0f", v)
}
