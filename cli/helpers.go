// ABOUTME: Shared command helpers
// ABOUTME: Project root resolution and custom-field flag parsing
package cli

import (
	"fmt"
	"strings"

	"github.com/harperreed/forkyou/store"
)

// projectRoot resolves the data root once per invocation. Commands run
// from any subdirectory of a project; outside one they fail cleanly.
func projectRoot() (string, error) {
	root, err := store.Root()
	if err != nil {
		return "", fail("not_initialized", nil, "Not a fu project. Run: fu init")
	}
	return root, nil
}

// parseCustomFlags turns repeated key=value arguments into a map.
func parseCustomFlags(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	custom := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fail("invalid_custom", map[string]any{"value": pair},
				fmt.Sprintf("Invalid custom field %q; expected key=value", pair))
		}
		custom[key] = value
	}
	return custom, nil
}
