package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"context-generator/internal/analyze"
	"context-generator/internal/common"
	"context-generator/internal/config"
	"context-generator/internal/gen"
	"context-generator/internal/plan"
)

type genConfig struct {
	*cli.Command

	Types  string `cli:"name=type desc='comma-separated record type names'"`
	Pkg    string `cli:"name=pkg desc='package to read records from' default=."`
	Output string `cli:"name=o aliases=output desc='output file name, relative to the package directory'"`
	Tag    string `cli:"name=tag desc='struct tag key holding field directives'"`
	Config string `cli:"name=config desc='YAML file with field directive overrides'"`
	Report bool   `cli:"name=report desc='print the dispatch table of every record'"`
	DryRun bool   `cli:"name=n aliases=dry-run desc='print the generated file instead of writing it'"`
	Debug  bool   `cli:"name=debug desc='log debug output and dump the plan'"`
	Color  bool   `cli:"name=color desc='color diagnostics even when stderr is not a terminal'"`

	stderr io.Writer
}

// Command returns the context-generator command.
func Command() *cli.Command {
	cfg := &genConfig{Pkg: ".", stderr: os.Stderr}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}

	return cli.NewCommandAt(&cfg.Command, "context-generator").
		WithSynopsis("context-generator -type T[,T...] [-pkg dir] [-o file] [-config file]").
		WithDescription("context-generator writes view methods for record structs.").
		WithOpts(opts...).
		WithRun(cfg.run)
}

func (cfg *genConfig) run(cc *cli.Context, args []string) error {
	args, err := cfg.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) > 0 {
		return fmt.Errorf("%w: unexpected arguments %q", cli.ErrUsage, args)
	}
	if common.IsEmpty(common.SplitList(cfg.Types)) {
		return fmt.Errorf("%w: -type is required", cli.ErrUsage)
	}

	if cc.Err != nil {
		cfg.stderr = cc.Err
	}
	ctx := cc.Go
	if ctx == nil {
		ctx = context.Background()
	}

	return cfg.generate(ctx, cc.Out)
}

// generate runs the pipeline: load, plan, report, generate, write. Reports
// and dry runs go to out.
func (cfg *genConfig) generate(ctx context.Context, out io.Writer) error {
	logger := cfg.logger()
	types := common.SplitList(cfg.Types)

	overrides, err := cfg.loadOverrides()
	if err != nil {
		return err
	}

	output := cfg.outputName(overrides, types)

	pattern := cfg.Pkg
	aopts := []analyze.Option{analyze.WithLogger(logger)}
	if dir, ok := fileSystemDir(cfg.Pkg); ok {
		// load from the directory so it resolves against its own module
		pattern = "."
		aopts = append(aopts, analyze.WithDir(dir), analyze.WithExclude(filepath.Join(dir, output)))
	}

	graph, err := analyze.NewAnalyzer(aopts...).LoadPackages(ctx, pattern)
	if err != nil {
		return err
	}

	pkgs := make([]*analyze.PackageInfo, 0, len(graph.Packages))
	for _, p := range graph.Packages {
		pkgs = append(pkgs, p)
	}
	if !common.IsSingle(pkgs) {
		return fmt.Errorf("%w: -pkg %s matched %d packages, want one", cli.ErrUsage, cfg.Pkg, len(pkgs))
	}
	pkg := pkgs[0]

	pcfg := plan.DefaultConfig()
	pcfg.Overrides = overrides
	pcfg.Logger = logger
	if tag := cfg.tagKey(overrides); tag != "" {
		pcfg.TagKey = tag
	}

	planner, err := plan.NewPlanner(graph, pkg.Path, pcfg)
	if err != nil {
		return err
	}

	p, planErr := planner.Plan(types...)
	printDiagnostics(cfg.stderr, p.Diagnostics, cfg.Debug, cfg.colored())

	if cfg.Debug {
		dumper := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, SortKeys: true}
		dumper.Fdump(cfg.stderr, p.Records, p.Imports)
	}
	if planErr != nil {
		return fmt.Errorf("planning %s: %d error(s)", pkg.Path, len(p.Diagnostics.Errors))
	}

	if cfg.Report {
		fmt.Fprint(out, plan.FormatReport(plan.GenerateReport(p)))
	}

	gcfg := gen.DefaultGeneratorConfig()
	gcfg.Filename = output
	gcfg.OutputDir = pkg.Dir
	gcfg.Logger = logger

	files, err := gen.NewGenerator(gcfg).Generate(p)
	if err != nil {
		return err
	}

	if cfg.DryRun {
		for _, f := range files {
			if _, err := out.Write(f.Content); err != nil {
				return err
			}
		}
		return nil
	}

	if err := gen.WriteFiles(files, pkg.Dir); err != nil {
		return err
	}
	for _, f := range files {
		logger.Info("wrote file", "path", filepath.Join(pkg.Dir, f.Filename), "records", len(p.Records))
	}

	return nil
}

func (cfg *genConfig) logger() *slog.Logger {
	level := slog.LevelWarn
	if cfg.Debug {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(cfg.stderr, &slog.HandlerOptions{Level: level}))
}

func (cfg *genConfig) loadOverrides() (*config.File, error) {
	if cfg.Config == "" {
		return nil, nil
	}

	f, err := config.LoadFile(cfg.Config)
	if err != nil {
		return nil, fmt.Errorf("loading overrides: %w", err)
	}

	return f, nil
}

// outputName picks the file name: the flag, then the config file, then a
// name derived from the first type.
func (cfg *genConfig) outputName(overrides *config.File, types []string) string {
	switch {
	case cfg.Output != "":
		return cfg.Output
	case overrides != nil && overrides.Output != "":
		return overrides.Output
	}

	first, _ := common.First(types)
	return gen.DefaultFilename(first)
}

func (cfg *genConfig) tagKey(overrides *config.File) string {
	if cfg.Tag != "" {
		return cfg.Tag
	}
	if overrides != nil {
		return overrides.Tag
	}

	return ""
}

func (cfg *genConfig) colored() bool {
	if cfg.Color {
		return true
	}
	f, ok := cfg.stderr.(*os.File)

	return ok && isatty.IsTerminal(f.Fd())
}

// fileSystemDir reports the directory a package pattern names, if it is a
// file system path rather than an import path.
func fileSystemDir(pattern string) (string, bool) {
	if strings.HasSuffix(pattern, "...") {
		return "", false
	}
	if pattern == "." || pattern == ".." || filepath.IsAbs(pattern) ||
		strings.HasPrefix(pattern, "./") || strings.HasPrefix(pattern, "../") {
		return pattern, true
	}

	return "", false
}
