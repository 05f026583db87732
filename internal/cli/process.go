package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pmezard/go-difflib/difflib"

	accessible "github.com/coursekit/accessible"
	"github.com/coursekit/accessible/internal/assets"
	"github.com/coursekit/accessible/internal/config"
	"github.com/coursekit/accessible/internal/fileutil"
	"github.com/coursekit/accessible/internal/metadata"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput            = errors.New("no input specified")
	ErrModeConflict       = errors.New("more than one mode selected")
	ErrInvalidExtension   = errors.New("unexpected file extension")
	ErrNotDirectory       = errors.New("not a directory")
	ErrReadSource         = errors.New("failed to read source file")
	ErrWriteOutput        = errors.New("failed to write output file")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrInvalidTimeout     = errors.New("invalid timeout")
	ErrNoMetadata         = errors.New("metadata.cfg not found")
)

// filePermissions for rewritten sources and rendered HTML.
const filePermissions = 0o644

// operation is what a run does to each file.
type operation int

const (
	opPatch operation = iota
	opRender
	opBoth
)

// selectMode picks the operation and its target from the mode flags.
// Exactly one selector must be set. The boolean reports batch mode.
func selectMode(tool Tool, f *modeFlags) (operation, string, bool, error) {
	var (
		op     operation
		target string
		batch  bool
		n      int
	)
	if f.patch != "" {
		op, target = opPatch, f.patch
		n++
	}
	if f.html != "" {
		op, target = opRender, f.html
		n++
	}
	if f.all != "" {
		op, target = opBoth, f.all
		n++
	}
	if f.batch != "" {
		op, target, batch = opBoth, f.batch, true
		n++
	}
	switch {
	case n == 0:
		return 0, "", false, fmt.Errorf("%w: use --%s, --html, --all, or --batch", ErrNoInput, tool.PatchFlag)
	case n > 1:
		return 0, "", false, fmt.Errorf("%w: use only one of --%s, --html, --all, --batch", ErrModeConflict, tool.PatchFlag)
	}
	return op, target, batch, nil
}

// runParams groups resolved settings shared across the files of one run.
type runParams struct {
	tool     Tool
	svc      *accessible.Service
	cfg      *config.Config
	op       operation
	stream   string
	output   string
	diff     bool
	noBackup bool
	// metaFor builds the metadata source consulted when a directory has
	// no metadata.cfg. The source may be nil when nothing can supply
	// values, which makes a missing file an error.
	metaFor func(dir string) metadata.Source
}

// runTool orchestrates one processing run: resolve configuration, build
// the service, then process the selected file or directory.
func runTool(ctx context.Context, tool Tool, f *runFlags, env *Environment) error {
	if err := validateWorkers(f.workers); err != nil {
		return err
	}

	envCfg := loadEnvConfig()
	warnUnknownEnvVars(env.Stderr)

	cfgName := f.common.config
	if cfgName == "" {
		cfgName = envCfg.ConfigPath
	}
	var (
		cfg *config.Config
		err error
	)
	if cfgName != "" {
		cfg, err = config.LoadConfig(cfgName)
	} else {
		cfg, err = config.LoadDefault()
	}
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	applyEnvConfig(envCfg, cfg)
	mergeFlags(f, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	op, target, batch, err := selectMode(tool, &f.mode)
	if err != nil {
		return err
	}

	timeout, err := resolveTimeoutWithEnv(f.render.timeout, envCfg.Timeout)
	if err != nil {
		return err
	}

	css, err := resolveStylesheet(cfg, env)
	if err != nil {
		return err
	}

	var stream string
	if tool.hasStreams() && op != opPatch {
		explicit := f.render.stream != "" || envCfg.Stream != ""
		stream, err = resolveStream(ctx, cfg, explicit, batch, env)
		if err != nil {
			return err
		}
	}

	params := &runParams{
		tool:     tool,
		svc:      buildService(cfg, f, timeout, css),
		cfg:      cfg,
		op:       op,
		stream:   stream,
		output:   f.out.output,
		diff:     f.out.diff,
		noBackup: f.out.noBackup || !cfg.Backup,
		metaFor:  metadataSourceFor(f, envCfg, batch, env),
	}

	if batch {
		return runBatch(ctx, params, target, cfg.Workers, f.common, env)
	}

	if err := validateSourcePath(tool, target); err != nil {
		return err
	}
	res := processFile(ctx, params, target, env)
	if res.Err != nil {
		return res.Err
	}
	printOutcome(res, f.common.quiet, f.common.verbose, env)
	return nil
}

// validateSourcePath checks that the file carries the tool's extension.
func validateSourcePath(tool Tool, path string) error {
	if ext := filepath.Ext(path); ext != tool.SourceExt {
		return fmt.Errorf("%w: want %s, got %q", ErrInvalidExtension, tool.SourceExt, ext)
	}
	return nil
}

// resolveStream picks the stream for .shn rendering. An explicit flag or
// environment value wins; otherwise an interactive single-file run asks,
// pre-selecting the configured default, and every other run takes the
// default silently.
func resolveStream(ctx context.Context, cfg *config.Config, explicit, batch bool, env *Environment) (string, error) {
	stream := cfg.Stream
	if stream == "" {
		stream = accessible.DefaultStream
	}
	if explicit || batch || !env.Interactive || env.SelectStream == nil {
		return stream, nil
	}
	return env.SelectStream(ctx, stream)
}

// resolveStylesheet loads CSS from the configured style, either a file
// path or a named asset. An empty style keeps the built-in stylesheet.
func resolveStylesheet(cfg *config.Config, env *Environment) (string, error) {
	if cfg.Style == "" {
		return "", nil
	}
	if fileutil.IsFilePath(cfg.Style) {
		data, err := os.ReadFile(cfg.Style) // #nosec G304 -- stylesheet path is user-provided
		if err != nil {
			return "", fmt.Errorf("reading stylesheet: %w", err)
		}
		return string(data), nil
	}
	loader := env.AssetLoader
	if loader == nil {
		resolver, err := assets.NewAssetResolver(cfg.Assets.BasePath)
		if err != nil {
			return "", err
		}
		loader = resolver
	}
	return loader.LoadStyle(cfg.Style)
}

// buildService assembles the accessibility service from resolved settings.
func buildService(cfg *config.Config, f *runFlags, timeout time.Duration, css string) *accessible.Service {
	opts := []accessible.Option{
		accessible.WithLanguage(cfg.Language),
		accessible.WithTimeout(timeout),
		accessible.WithHighlightStyle(cfg.Render.Highlight),
	}
	if cfg.Render.Engine != "" {
		opts = append(opts, accessible.WithEngine(accessible.Engine(cfg.Render.Engine)))
	}
	if len(cfg.Alt.Figures) > 0 || len(cfg.Alt.Folders) > 0 {
		opts = append(opts, accessible.WithAltGuesser(accessible.DefaultAltGuesser(cfg.Alt.Figures, cfg.Alt.Folders)))
	}
	if css != "" {
		opts = append(opts, accessible.WithStylesheet(css))
	}
	if cfg.Render.EmbedResources {
		opts = append(opts, accessible.WithEmbedResources())
	}
	if f.render.strict {
		opts = append(opts, accessible.WithStrictRendering())
	}
	return accessible.New(opts...)
}

// metadataSourceFor picks where metadata values come from when a directory
// has no metadata.cfg. Flag and environment values win; otherwise an
// interactive single-file run prompts. Batch runs never prompt.
func metadataSourceFor(f *runFlags, envCfg *envConfig, batch bool, env *Environment) func(dir string) metadata.Source {
	author := f.meta.author
	if author == "" {
		author = envCfg.Author
	}
	subject := f.meta.subject
	if subject == "" {
		subject = envCfg.Subject
	}
	keywords := f.meta.keywords
	if keywords == "" {
		keywords = envCfg.Keywords
	}

	if author != "" || subject != "" || keywords != "" {
		src := metadata.StaticSource{
			Author:   author,
			Subject:  subject,
			Keywords: metadata.SplitKeywords(keywords),
		}
		return func(string) metadata.Source { return src }
	}
	if env.Metadata != nil {
		return func(string) metadata.Source { return env.Metadata }
	}
	if env.Interactive && !batch {
		return func(dir string) metadata.Source { return metadata.PromptSource{Dir: dir} }
	}
	return func(string) metadata.Source { return nil }
}

// processResult holds the outcome for a single source file.
type processResult struct {
	Path     string
	Out      string // HTML path when rendered
	Patched  bool   // source rewritten in place
	Rendered bool
	Diff     string
	Warnings []string
	Err      error
	Duration time.Duration
}

// processFile runs the selected operation on one source file: read it,
// load or create the directory metadata, patch and/or render, and write
// the outputs.
func processFile(ctx context.Context, params *runParams, path string, env *Environment) processResult {
	start := env.Now()
	result := processResult{Path: path}
	done := func() processResult {
		result.Duration = env.Now().Sub(start)
		return result
	}

	data, err := os.ReadFile(path) // #nosec G304 -- user-provided source path
	if err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrReadSource, err)
		return done()
	}

	dir := filepath.Dir(path)
	src := params.metaFor(dir)
	mc, err := metadata.LoadOrCreate(ctx, dir, src)
	if err != nil {
		if src == nil && errors.Is(err, os.ErrNotExist) {
			err = fmt.Errorf("%w in %s", ErrNoMetadata, dir)
		}
		result.Err = err
		return done()
	}

	meta := accessible.Metadata{Author: mc.Author, Subject: mc.Subject, Keywords: mc.Keywords}
	title := params.cfg.Titles[filepath.Base(path)]
	source := string(data)

	if params.op == opPatch || params.op == opBoth {
		patched, err := params.svc.Patch(ctx, accessible.PatchInput{
			Source:    source,
			Kind:      params.tool.Kind,
			Meta:      meta,
			Title:     title,
			SourceDir: dir,
		})
		if err != nil {
			result.Err = err
			return done()
		}
		switch {
		case params.diff:
			result.Diff, result.Err = unifiedDiff(path, source, patched.Text)
		case patched.Changed:
			result.Err = writePatched(path, patched.Text, params.noBackup)
			result.Patched = result.Err == nil
		}
		if result.Err != nil {
			return done()
		}
		source = patched.Text
	}

	if params.op == opRender || params.op == opBoth {
		rendered, err := params.svc.Render(ctx, accessible.RenderInput{
			Source:    source,
			Kind:      params.tool.Kind,
			Meta:      meta,
			Title:     title,
			Stream:    params.stream,
			SourceDir: dir,
		})
		if err != nil {
			result.Err = err
			return done()
		}
		result.Warnings = rendered.Unsupported

		out := resolveOutputPath(path, params.output)
		if params.diff {
			var previous string
			if prev, rerr := os.ReadFile(out); rerr == nil { // #nosec G304 -- derived from source path
				previous = string(prev)
			}
			diff, derr := unifiedDiff(out, previous, rendered.HTML)
			if derr != nil {
				result.Err = derr
				return done()
			}
			result.Diff += diff
		} else {
			if err := fileutil.WriteFileAtomic(out, []byte(rendered.HTML), filePermissions); err != nil {
				result.Err = fmt.Errorf("%w: %v", ErrWriteOutput, err)
				return done()
			}
			result.Rendered = true
			result.Out = out
		}
	}

	return done()
}

// writePatched rewrites the source in place, keeping a .bak copy of the
// original unless backups are disabled.
func writePatched(path, text string, noBackup bool) error {
	if !noBackup {
		if err := fileutil.CopyFile(path, path+".bak"); err != nil {
			return fmt.Errorf("creating backup: %w", err)
		}
	}
	if err := fileutil.WriteFileAtomic(path, []byte(text), filePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return nil
}

// resolveOutputPath determines the HTML output path for a source file.
// An output ending in .html names the file itself; any other non-empty
// output is a directory.
func resolveOutputPath(inputPath, output string) string {
	stem := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	if output == "" {
		return filepath.Join(filepath.Dir(inputPath), stem+".html")
	}
	if strings.HasSuffix(output, ".html") {
		return output
	}
	return filepath.Join(output, stem+".html")
}

// unifiedDiff renders the pending change for path as a unified diff.
func unifiedDiff(path, before, after string) (string, error) {
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: path,
		ToFile:   path + " (pending)",
		Context:  3,
	})
}

// printOutcome reports one successful result through the environment
// writers.
func printOutcome(r processResult, quiet, verbose bool, env *Environment) {
	for _, w := range r.Warnings {
		fmt.Fprintf(env.Stderr, "warning: %s: %s\n", r.Path, w)
	}
	if r.Diff != "" {
		fmt.Fprint(env.Stdout, r.Diff)
		return
	}
	if quiet {
		return
	}
	if r.Patched {
		fmt.Fprintf(env.Stdout, "Patched %s\n", r.Path)
	}
	if r.Rendered {
		fmt.Fprintf(env.Stdout, "Created %s\n", r.Out)
	}
	if !r.Patched && !r.Rendered {
		fmt.Fprintf(env.Stdout, "Unchanged %s\n", r.Path)
	}
	if verbose {
		fmt.Fprintf(env.Stdout, "%s processed in %v\n", r.Path, r.Duration.Round(time.Millisecond))
	}
}
