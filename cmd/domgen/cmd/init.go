package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/domgen/am"
)

var initForce bool

// InitCmd writes a default configuration file
var InitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a default domgen.toml",
	Long: `Write a configuration file holding every default value.

An existing file is only replaced with --force; the previous contents are
kept as rotating .back1 to .back3 backups.

Examples:
  domgen init                     # Write ./domgen.toml
  domgen init config/domgen.toml  # Write to a specific path
  domgen init --force             # Overwrite an existing file`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := am.ConfigFileName
		if len(args) == 1 {
			path = args[0]
		}

		cfg, err := am.Default()
		if err != nil {
			return err
		}
		if err := am.Write(path, cfg, initForce); err != nil {
			return err
		}
		pterm.Success.Printfln("Wrote %s", path)
		return nil
	},
}

func init() {
	InitCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing config file")
}
