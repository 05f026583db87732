package cli

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across modes.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// modeFlags holds the mutually exclusive mode selectors. Each flag carries
// the path it operates on.
type modeFlags struct {
	patch string // --shn or --pdf, depending on the tool
	html  string
	all   string
	batch string
}

// metadataFlags pre-supply metadata.cfg values, skipping the prompt.
type metadataFlags struct {
	author   string
	subject  string
	keywords string
}

// renderFlags holds HTML rendering flags.
type renderFlags struct {
	stream  string
	engine  string
	strict  bool
	timeout string
}

// outputFlags holds output placement and safety flags.
type outputFlags struct {
	output   string
	diff     bool
	noBackup bool
}

// runFlags holds all flags for a processing run.
type runFlags struct {
	common  commonFlags
	mode    modeFlags
	meta    metadataFlags
	render  renderFlags
	out     outputFlags
	workers int
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show per-file timing")
}

// addModeFlags adds the mode selectors. The patch flag name comes from the
// tool, so each binary keeps its historical spelling.
func addModeFlags(fs *flag.FlagSet, f *modeFlags, tool Tool) {
	fs.StringVar(&f.patch, tool.PatchFlag, "", "patch <file> in place for accessible PDF production")
	fs.StringVar(&f.html, "html", "", "render <file> to HTML with MathML")
	fs.StringVar(&f.all, "all", "", "patch <file> in place, then render it to HTML")
	fs.StringVar(&f.batch, "batch", "", "patch and render every eligible file under <dir>")
}

// addMetadataFlags adds metadata pre-supply flags to a FlagSet.
func addMetadataFlags(fs *flag.FlagSet, f *metadataFlags) {
	fs.StringVar(&f.author, "author", "", "document author (written to metadata.cfg when absent)")
	fs.StringVar(&f.subject, "subject", "", "document subject")
	fs.StringVar(&f.keywords, "keywords", "", "document keywords, comma or space separated")
}

// addRenderFlags adds rendering flags to a FlagSet. The stream flag only
// exists on the tool whose format has stream tags.
func addRenderFlags(fs *flag.FlagSet, f *renderFlags, tool Tool) {
	if tool.hasStreams() {
		fs.StringVar(&f.stream, "stream", "", "output stream: s, h, n, or c")
	}
	fs.StringVar(&f.engine, "engine", "", "HTML engine: builtin or pandoc")
	fs.BoolVar(&f.strict, "strict", false, "fail on unsupported constructs instead of marking them")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "render timeout (e.g. 30s, 2m)")
}

// addOutputFlags adds output flags to a FlagSet.
func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.StringVarP(&f.output, "output", "o", "", "HTML output path (file or directory)")
	fs.BoolVar(&f.diff, "diff", false, "print a unified diff of pending changes, write nothing")
	fs.BoolVar(&f.noBackup, "no-backup", false, "skip the .bak copy before patching in place")
}

// parseRunFlags parses processing flags and returns any positional args.
func parseRunFlags(tool Tool, args []string, errW io.Writer) (*runFlags, []string, error) {
	fs := flag.NewFlagSet(tool.Name, flag.ContinueOnError)
	fs.SetOutput(errW)
	f := &runFlags{}

	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers in batch mode (0 = auto)")

	addCommonFlags(fs, &f.common)
	addModeFlags(fs, &f.mode, tool)
	addMetadataFlags(fs, &f.meta)
	addRenderFlags(fs, &f.render, tool)
	addOutputFlags(fs, &f.out)

	fs.Usage = func() { printRunUsage(errW, tool) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
