package cmd

import (
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/domgen/am"
	"github.com/teranos/domgen/check"
	"github.com/teranos/domgen/errors"
)

// CheckCmd checks if committed declaration files are up to date
var CheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Check if generated declarations are up to date",
	Long: `Check if the declaration files in the output directory match what the
current inputs produce.

This command generates into a temporary directory and compares the result
byte for byte with the output directory, printing a line diff for every
stale file.

Exit codes:
  0 - Declarations are up to date
  1 - Declarations are out of date, or the check failed

Examples:
  domgen check                    # Check every configured flavor
  domgen check --flavor worker    # Check only the worker file`,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	pterm.Info.Println("Checking generated declarations...")
	result, err := Check(cfg)
	if err != nil {
		return err
	}

	if result.UpToDate {
		pterm.Success.Println("Declarations are up to date")
		return nil
	}

	pterm.Error.Println("Declarations are out of date")
	for _, d := range result.Differences {
		if d.Missing {
			pterm.Warning.Printfln("%s is missing", d.File)
			continue
		}
		pterm.Info.Printfln("%s differs:", d.File)
		pterm.Println(d.Diff)
	}
	return errors.WithHint(errors.New("declarations are out of date"), "run 'domgen' to regenerate them")
}

// Check regenerates every configured flavor into a temporary directory and
// compares it with the configured output directory
func Check(cfg *am.Config) (*check.Result, error) {
	tempDir, err := os.MkdirTemp("", "domgen-check-*")
	if err != nil {
		return nil, errors.Wrap(err, "failed to create temp directory")
	}
	defer os.RemoveAll(tempDir)

	if _, err := Generate(cfg, tempDir); err != nil {
		return nil, err
	}
	return check.CompareDirectories(tempDir, cfg.Resolve(cfg.Output.Dir))
}
