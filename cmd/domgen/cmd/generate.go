package cmd

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/domgen/am"
	"github.com/teranos/domgen/emit"
	"github.com/teranos/domgen/errors"
	"github.com/teranos/domgen/idl"
	"github.com/teranos/domgen/logger"
	"github.com/teranos/domgen/lookup"
	"github.com/teranos/domgen/patch"
	"github.com/teranos/domgen/visibility"
)

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	dir := cfg.Resolve(cfg.Output.Dir)
	files, err := Generate(cfg, dir)
	if err != nil {
		return err
	}
	for _, f := range files {
		pterm.Success.Printfln("Wrote %s", f)
	}

	if watchInputs {
		return watch(cmd.Context(), cfg, dir)
	}
	return nil
}

// Build loads every configured input and returns a resolver over them
func Build(cfg *am.Config) (*visibility.Resolver, error) {
	schema, err := idl.LoadSchema(cfg.Resolve(cfg.Input.Schema))
	if err != nil {
		return nil, err
	}

	paths := make([]string, len(cfg.Input.Patches))
	for i, p := range cfg.Input.Patches {
		paths[i] = cfg.Resolve(p)
	}
	patches, err := patch.LoadFiles(paths...)
	if err != nil {
		return nil, err
	}

	tables := lookup.Empty()
	if cfg.Input.Tables != "" {
		tables, err = lookup.Load(cfg.Resolve(cfg.Input.Tables))
		if err != nil {
			return nil, err
		}
	}

	return visibility.New(schema, patches, tables), nil
}

// Generate writes one declaration file per configured flavor into dir and
// returns the written paths
func Generate(cfg *am.Config, dir string) ([]string, error) {
	flavors, err := cfg.ParsedFlavors()
	if err != nil {
		return nil, err
	}
	r, err := Build(cfg)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, am.DefaultDirPermissions); err != nil {
		return nil, errors.Wrapf(err, "failed to create output directory %s", dir)
	}

	log := logger.Named("generate")
	e := emit.New(r)
	files := make([]string, 0, len(flavors))
	for _, f := range flavors {
		start := time.Now()
		out, err := e.Emit(f)
		if err != nil {
			return nil, err
		}
		path := cfg.OutputPath(dir, f)
		if err := os.WriteFile(path, []byte(out), am.DefaultFilePermissions); err != nil {
			return nil, errors.Wrapf(err, "failed to write %s", path)
		}
		log.Infow("declarations written",
			logger.FieldFlavor, f.String(),
			logger.FieldFile, path,
			logger.FieldDurationMS, time.Since(start).Milliseconds())
		files = append(files, path)
	}
	return files, nil
}

// watch regenerates on every input change until interrupted
func watch(ctx context.Context, cfg *am.Config, dir string) error {
	w, err := am.NewInputWatcher(cfg.InputFiles()...)
	if err != nil {
		return err
	}
	defer w.Stop()

	w.OnChange(func(changed []string) error {
		pterm.Info.Printfln("Changed: %s", strings.Join(changed, ", "))
		files, err := Generate(cfg, dir)
		if err != nil {
			pterm.Error.Printfln("Regeneration failed: %v", err)
			return err
		}
		for _, f := range files {
			pterm.Success.Printfln("Wrote %s", f)
		}
		return nil
	})
	w.Start()

	pterm.Info.Println("Watching inputs, press Ctrl+C to stop")
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
	return nil
}
