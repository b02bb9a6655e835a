package am

import "github.com/teranos/domgen/errors"

var logThemes = map[string]bool{"": true, "gruvbox": true, "everforest": true}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Input.Schema == "" {
		return errors.New("input.schema cannot be empty")
	}

	if c.Output.Dir == "" {
		return errors.New("output.dir cannot be empty")
	}

	if len(c.Flavors) == 0 {
		return errors.New("flavors cannot be empty")
	}
	flavors, err := c.ParsedFlavors()
	if err != nil {
		return err
	}

	// Two flavors writing one file would overwrite each other
	seen := make(map[string]string)
	for i, f := range flavors {
		file := c.OutputFile(f)
		if file == "" {
			return errors.Newf("output.%s cannot be empty", f)
		}
		if other, ok := seen[file]; ok && other != c.Flavors[i] {
			return errors.Newf("flavors %s and %s both write %s", other, c.Flavors[i], file)
		}
		seen[file] = c.Flavors[i]
	}

	if !logThemes[c.Log.Theme] {
		return errors.Newf("log.theme must be gruvbox or everforest, got %q", c.Log.Theme)
	}

	return nil
}
