package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aghanem007/quickbooks-financial-reporting/internal/config"
)

const envExample = `# QuickBooks Online API credentials.
# Copy to .env (or export directly) and fill in the app values from the
# Intuit developer dashboard.
QB_CLIENT_ID=
QB_CLIENT_SECRET=
QB_REFRESH_TOKEN=
QB_REALM_ID=
# Optional: seed access token; a fresh one is minted when absent.
QB_ACCESS_TOKEN=
# sandbox or production.
QB_ENV=sandbox
`

func newInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a reporting workspace",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(absDir)
		},
	}

	return cmd
}

func runInit(dir string) error {
	// Create directory structure.
	dirs := []string{
		"reports",
		"logs",
	}
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	// Write the default cash flow rules, unless a previous init left a
	// file the user may have edited.
	rulesPath := filepath.Join(dir, "cashflow.yaml")
	if _, err := os.Stat(rulesPath); os.IsNotExist(err) {
		if err := config.SaveRules(rulesPath, config.DefaultRules()); err != nil {
			return fmt.Errorf("writing cash flow rules: %w", err)
		}
	}

	// Write .env.example.
	if err := os.WriteFile(filepath.Join(dir, ".env.example"), []byte(envExample), 0o644); err != nil {
		return fmt.Errorf("writing .env.example: %w", err)
	}

	// Write .gitignore.
	gitignore := "reports/\nlogs/\n.env\n"
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(gitignore), 0o644); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}

	fmt.Printf("Initialized reporting workspace at %s\n", dir)
	return nil
}
