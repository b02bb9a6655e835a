// Package am loads the domgen configuration ("am" as in "I am configured
// like this") from domgen.toml files, DOMGEN_* environment variables and
// built-in defaults.
package am

import (
	"path/filepath"

	"github.com/teranos/domgen/errors"
	"github.com/teranos/domgen/idl"
)

// Config represents the domgen configuration
type Config struct {
	Input   InputConfig  `mapstructure:"input" toml:"input"`
	Output  OutputConfig `mapstructure:"output" toml:"output"`
	Flavors []string     `mapstructure:"flavors" toml:"flavors"`
	Log     LogConfig    `mapstructure:"log" toml:"log"`

	// dir is the directory of the config file relative paths resolve against
	dir string
}

// InputConfig locates the generator inputs
type InputConfig struct {
	Schema  string   `mapstructure:"schema" toml:"schema"`   // JSON schema of the API surface
	Patches []string `mapstructure:"patches" toml:"patches"` // override/removal/addition files, merged in order
	Tables  string   `mapstructure:"tables" toml:"tables"`   // YAML lookup tables (optional)
}

// OutputConfig configures where declaration files are written
type OutputConfig struct {
	Dir    string `mapstructure:"dir" toml:"dir"`
	Web    string `mapstructure:"web" toml:"web"`       // file name for the web flavor
	Worker string `mapstructure:"worker" toml:"worker"` // file name for the worker flavor
	All    string `mapstructure:"all" toml:"all"`       // file name for the all flavor
}

// LogConfig configures logging
type LogConfig struct {
	JSON  bool   `mapstructure:"json" toml:"json"`
	Theme string `mapstructure:"theme" toml:"theme"` // Color theme: gruvbox, everforest
}

// ConfigFileName is the project configuration file searched for
const ConfigFileName = "domgen.toml"

// File system constants
const (
	DefaultDirPermissions  = 0755 // Standard directory permissions (rwxr-xr-x)
	DefaultFilePermissions = 0644 // Standard file permissions (rw-r--r--)
)

// ParsedFlavors returns the configured flavors in configuration order
func (c *Config) ParsedFlavors() ([]idl.Flavor, error) {
	out := make([]idl.Flavor, 0, len(c.Flavors))
	for _, name := range c.Flavors {
		f, err := idl.ParseFlavor(name)
		if err != nil {
			return nil, errors.Wrap(err, "invalid flavors entry")
		}
		out = append(out, f)
	}
	return out, nil
}

// OutputFile returns the file name configured for flavor f
func (c *Config) OutputFile(f idl.Flavor) string {
	switch f {
	case idl.FlavorWorker:
		return c.Output.Worker
	case idl.FlavorAll:
		return c.Output.All
	default:
		return c.Output.Web
	}
}

// OutputPath returns the output file path of flavor f under dir
func (c *Config) OutputPath(dir string, f idl.Flavor) string {
	return filepath.Join(dir, c.OutputFile(f))
}

// Dir returns the directory relative input and output paths resolve against.
// Empty means the working directory.
func (c *Config) Dir() string {
	return c.dir
}

// Resolve makes a configured path absolute against the config file directory
func (c *Config) Resolve(path string) string {
	if path == "" || filepath.IsAbs(path) || c.dir == "" {
		return path
	}
	return filepath.Join(c.dir, path)
}

// InputFiles returns every configured input path, resolved
func (c *Config) InputFiles() []string {
	var files []string
	if c.Input.Schema != "" {
		files = append(files, c.Resolve(c.Input.Schema))
	}
	for _, p := range c.Input.Patches {
		files = append(files, c.Resolve(p))
	}
	if c.Input.Tables != "" {
		files = append(files, c.Resolve(c.Input.Tables))
	}
	return files
}
