package cmd

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/teranos/domgen/am"
	"github.com/teranos/domgen/errors"
	"github.com/teranos/domgen/logger"
)

var (
	configPath  string
	flavorNames []string
	outputDir   string
	watchInputs bool
	jsonLogs    bool
)

// RootCmd generates declaration files for the configured flavors
var RootCmd = &cobra.Command{
	Use:   "domgen",
	Short: "Generate TypeScript declaration files for browser and worker APIs",
	Long: `Generate TypeScript declaration files from a JSON description of the
browser API surface.

One file is written per flavor:
  web    - browser window APIs (dom.generated.d.ts)
  worker - web worker APIs (webworker.generated.d.ts)
  all    - everything, unfiltered (dom.all.generated.d.ts)

Inputs and output file names come from domgen.toml, searched from the
working directory upwards, and from DOMGEN_* environment variables.

Examples:
  domgen                          # Generate every configured flavor
  domgen --flavor web             # Only the web flavor
  domgen --output out/            # Write to out/ instead of output.dir
  domgen --watch                  # Regenerate whenever an input changes
  domgen check                    # Verify committed output is up to date
  domgen init                     # Write a default domgen.toml`,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
	RunE:              runGenerate,
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: domgen.toml searched upwards)")
	RootCmd.PersistentFlags().StringSliceVarP(&flavorNames, "flavor", "f", nil, "Flavors to generate: web, worker, all (default: flavors from config)")
	RootCmd.PersistentFlags().StringVarP(&outputDir, "output", "o", "", "Output directory (default: output.dir from config)")
	RootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv)")
	RootCmd.PersistentFlags().BoolVar(&jsonLogs, "json-logs", false, "Emit structured JSON logs")
	RootCmd.Flags().BoolVarP(&watchInputs, "watch", "w", false, "Watch input files and regenerate on change")

	RootCmd.AddCommand(CheckCmd)
	RootCmd.AddCommand(InitCmd)
	RootCmd.AddCommand(VersionCmd)
}

func setupLogging(cmd *cobra.Command, args []string) error {
	verbosity, _ := cmd.Flags().GetCount("verbose")
	if err := logger.Initialize(jsonLogs, verbosity); err != nil {
		return errors.Wrap(err, "failed to initialize logger")
	}
	return nil
}

// loadConfig loads the configuration and applies command line overrides
func loadConfig(cmd *cobra.Command) (*am.Config, error) {
	var cfg *am.Config
	var err error
	if configPath != "" {
		cfg, err = am.LoadFromFile(configPath)
	} else {
		cfg, err = am.Load()
	}
	if err != nil {
		return nil, err
	}

	if outputDir != "" {
		abs, err := filepath.Abs(outputDir)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to resolve output directory %s", outputDir)
		}
		cfg.Output.Dir = abs
	}
	if len(flavorNames) > 0 {
		cfg.Flavors = flavorNames
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}

	logger.SetTheme(cfg.GetLogTheme())
	if cfg.Log.JSON && !jsonLogs {
		verbosity, _ := cmd.Flags().GetCount("verbose")
		if err := logger.Initialize(true, verbosity); err != nil {
			return nil, errors.Wrap(err, "failed to initialize logger")
		}
	}
	return cfg, nil
}
