package am

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/domgen/idl"
)

func TestLoad_Defaults(t *testing.T) {
	// Isolated viper instance without user/project config
	v := viper.New()
	SetDefaults(v)

	cfg, err := LoadWithViper(v)
	require.NoError(t, err)

	assert.Equal(t, "generated", cfg.Output.Dir)
	assert.Equal(t, "dom.generated.d.ts", cfg.OutputFile(idl.FlavorWeb))
	assert.Equal(t, "webworker.generated.d.ts", cfg.OutputFile(idl.FlavorWorker))
	assert.Equal(t, "dom.all.generated.d.ts", cfg.OutputFile(idl.FlavorAll))
	assert.Equal(t, []string{"web", "worker", "all"}, cfg.Flavors)
	assert.Equal(t, "everforest", cfg.GetLogTheme())
	assert.NoError(t, cfg.Validate())

	flavors, err := cfg.ParsedFlavors()
	require.NoError(t, err)
	assert.Equal(t, idl.Flavors(), flavors)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("DOMGEN_OUTPUT_DIR", "out")
	t.Setenv("DOMGEN_LOG_JSON", "true")

	cfg, err := LoadWithViper(newViper())
	require.NoError(t, err)
	assert.Equal(t, "out", cfg.Output.Dir)
	assert.True(t, cfg.Log.JSON)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)
	content := `flavors = ["web"]

[input]
schema = "idl/browser.json"
patches = ["overrides.yaml", "removals.json"]

[output]
dir = "lib"
web = "lib.dom.d.ts"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"web"}, cfg.Flavors)
	assert.Equal(t, "lib.dom.d.ts", cfg.OutputFile(idl.FlavorWeb))
	assert.Equal(t, "webworker.generated.d.ts", cfg.OutputFile(idl.FlavorWorker), "defaults fill the rest")
	assert.Equal(t, dir, cfg.Dir())
	assert.Equal(t, filepath.Join(dir, "lib"), cfg.Resolve(cfg.Output.Dir))
	assert.Equal(t, []string{
		filepath.Join(dir, "idl/browser.json"),
		filepath.Join(dir, "overrides.yaml"),
		filepath.Join(dir, "removals.json"),
	}, cfg.InputFiles())
	assert.Equal(t, "/abs/path", cfg.Resolve("/abs/path"))
}

func TestLoadFromFile_Missing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestLoad_ProjectConfigSearch(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, ConfigFileName), []byte("[output]\ndir = \"types\"\n"), 0644))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(nested))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	Reset()
	t.Cleanup(Reset)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "types", cfg.Output.Dir)
	assert.Equal(t, filepath.Join(root, ConfigFileName), ConfigFileUsed())
	assert.Equal(t, filepath.Join(root, "types"), cfg.Resolve(cfg.Output.Dir))

	again, err := Load()
	require.NoError(t, err)
	assert.Same(t, cfg, again, "configuration is cached")
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg, err := Default()
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"no schema", func(c *Config) { c.Input.Schema = "" }, "input.schema"},
		{"no output dir", func(c *Config) { c.Output.Dir = "" }, "output.dir"},
		{"no flavors", func(c *Config) { c.Flavors = nil }, "flavors cannot be empty"},
		{"unknown flavor", func(c *Config) { c.Flavors = []string{"desktop"} }, "unknown flavor"},
		{"empty file name", func(c *Config) { c.Output.Worker = "" }, "output.worker"},
		{"shared file", func(c *Config) { c.Output.All = c.Output.Web }, "both write"},
		{"bad theme", func(c *Config) { c.Log.Theme = "solarized" }, "log.theme"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", ConfigFileName)
	cfg, err := Default()
	require.NoError(t, err)
	cfg.Output.Dir = "types"

	require.NoError(t, Write(path, cfg, false))

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "types", loaded.Output.Dir)
	assert.Equal(t, cfg.Flavors, loaded.Flavors)
	assert.Equal(t, cfg.Input, loaded.Input)

	err = Write(path, cfg, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	cfg.Output.Dir = "other"
	require.NoError(t, Write(path, cfg, true))
	assert.FileExists(t, path+".back1")

	backup, err := LoadFromFile(path + ".back1")
	require.NoError(t, err)
	assert.Equal(t, "types", backup.Output.Dir)
}
