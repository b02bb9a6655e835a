package am

import (
	"github.com/spf13/viper"
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	// Input defaults
	v.SetDefault("input.schema", "inputfiles/browser.webidl.json")
	v.SetDefault("input.patches", []string{})
	v.SetDefault("input.tables", "")

	// Output defaults
	v.SetDefault("output.dir", "generated")
	v.SetDefault("output.web", "dom.generated.d.ts")
	v.SetDefault("output.worker", "webworker.generated.d.ts")
	v.SetDefault("output.all", "dom.all.generated.d.ts")

	v.SetDefault("flavors", []string{"web", "worker", "all"})

	// Log defaults
	v.SetDefault("log.json", false)
	v.SetDefault("log.theme", "everforest")
}

// Default returns the default configuration, as written by domgen init
func Default() (*Config, error) {
	v := viper.New()
	SetDefaults(v)
	return LoadWithViper(v)
}

// GetLogTheme returns the log theme (default: everforest)
func (c *Config) GetLogTheme() string {
	if c.Log.Theme == "" {
		return "everforest"
	}
	return c.Log.Theme
}
