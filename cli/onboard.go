// ABOUTME: onboard subcommand
// ABOUTME: Injects agent usage instructions into CLAUDE.md or AGENTS.md
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

const onboardMarker = "<fork-you>"

const onboardInstructions = `<fork-you>
Use ` + "`fu`" + ` for CRM operations. Data is stored in ` + "`.forkyou/`" + ` as JSON files (one per record), tracked by git.

<commands>
- ` + "`fu contact add --name <n> [--email <e>] [--phone <p>] [--company <id>] [--role <r>]`" + `
- ` + "`fu contact list`" + ` / ` + "`fu contact show <id>`" + ` / ` + "`fu contact search <query>`" + `
- ` + "`fu contact edit <id> --name <n> --email <e> ...`" + `
- ` + "`fu contact rm <id>`" + `
- ` + "`fu company add --name <n> [--domain <d>] [--industry <i>] [--size <s>]`" + `
- ` + "`fu company list`" + ` / ` + "`fu company show <id>`" + ` / ` + "`fu company search <query>`" + `
- ` + "`fu deal add --title <t> [--company <id>] [--contact <id>]... [--stage <s>] [--value <v>] [--probability <p>] [--close-date <d>]`" + `
- ` + "`fu deal list`" + ` / ` + "`fu deal show <id>`" + ` / ` + "`fu deal search <query>`" + `
- ` + "`fu deal move <id> <stage>`" + `
- ` + "`fu activity add --type <call|email|meeting|note> --subject <s> [--body <b>] [--contact <id>] [--deal <id>] [--company <id>]`" + `
- ` + "`fu activity list`" + ` / ` + "`fu activity show <id>`" + `
- ` + "`fu task add --title <t> [--contact <id>] [--deal <id>] [--due <date>]`" + `
- ` + "`fu task list`" + ` / ` + "`fu task done <id>`" + `
- ` + "`fu pipeline`" + ` - Show pipeline summary
- ` + "`fu config stages`" + ` - Show/set pipeline stages
</commands>

<rules>
- ALWAYS use ` + "`--json`" + ` flag to get structured output for parsing
- IDs are short strings (e.g. "abc23456") — use them to link contacts, companies, deals
- When creating a deal, link it to a company and contacts by their IDs
- When logging activities, link them to the relevant contact and/or deal
- Pipeline stages default to: lead, qualified, proposal, negotiation, closed-won, closed-lost
- All data lives in ` + "`.forkyou/`" + ` and should be committed to git
</rules>
</fork-you>`

func init() {
	rootCmd.AddCommand(onboardCmd)
}

var onboardCmd = &cobra.Command{
	Use:   "onboard",
	Short: "Add agent instructions to CLAUDE.md or AGENTS.md",
	Args:  cobra.NoArgs,
	RunE:  runOnboard,
}

func runOnboard(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}

	// Prefer an existing CLAUDE.md, then an existing AGENTS.md, then
	// fall back to creating CLAUDE.md.
	claudeMd := filepath.Join(cwd, "CLAUDE.md")
	agentsMd := filepath.Join(cwd, "AGENTS.md")
	target := claudeMd
	if _, err := os.Stat(claudeMd); os.IsNotExist(err) {
		if _, err := os.Stat(agentsMd); err == nil {
			target = agentsMd
		}
	}

	var existing string
	if data, err := os.ReadFile(target); err == nil {
		existing = string(data)
	}

	if strings.Contains(existing, onboardMarker) {
		return emit(map[string]any{"file": target, "message": "already_onboarded"}, func() {
			printSuccess("Already onboarded (%s)", target)
		})
	}

	content := onboardInstructions + "\n"
	if existing != "" {
		content = strings.TrimRight(existing, "\n") + "\n\n" + content
	}
	if err := os.WriteFile(target, []byte(content), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", target, err)
	}

	return emit(map[string]any{"file": target}, func() {
		printSuccess("Added fork-you instructions to %s", target)
	})
}
