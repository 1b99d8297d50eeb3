// ABOUTME: Entry point for the fork-you CRM CLI
// ABOUTME: Loads .env then hands off to the cobra command tree
package main

import (
	"github.com/joho/godotenv"

	"github.com/harperreed/forkyou/cli"
)

const version = "0.1.0"

func main() {
	// Optional per-project overrides (e.g. FORKYOU_ROOT); absence is fine.
	_ = godotenv.Load()

	cli.Execute(version)
}
