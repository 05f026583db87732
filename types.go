package accessible

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// DocKind identifies the source document format.
type DocKind string

// Supported document kinds.
const (
	// KindSHN is the course preprocessor format: LaTeX-like, with
	// optional line-level stream tags such as <shn> routing content to
	// output streams.
	KindSHN DocKind = "shn"
	// KindTeX is plain LaTeX.
	KindTeX DocKind = "tex"
)

// Validate checks that the kind is one of the supported formats.
func (k DocKind) Validate() error {
	switch k {
	case KindSHN, KindTeX:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownKind, string(k))
}

// Stream letters used by .shn stream tags. A tag like <shn> marks a line
// for every stream whose letter it contains; untagged lines belong to all
// streams.
const (
	StreamSlides   = "s"
	StreamHandout  = "h"
	StreamNotes    = "n"
	StreamCombined = "c"
)

// DefaultStream is the stream rendered when none is selected.
const DefaultStream = StreamNotes

// ValidateStream checks that s is a single known stream letter.
func ValidateStream(s string) error {
	switch s {
	case StreamSlides, StreamHandout, StreamNotes, StreamCombined:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownStream, s)
}

// Alt-text marker literals. These are a stable on-disk format: documents
// patched by earlier releases carry them, and reviewers grep for them.
// Idempotence detection keys on MarkerPrefix, so a marker from either tool
// counts as already present, and a human edit that removes the prefix
// permanently suppresses re-insertion at that site.
const (
	MarkerPrefix = "***!!***Guess by make_accessible"
	MarkerSHN    = "***!!***Guess by make_accessible.py:"
	MarkerTeX    = "***!!***Guess by make_accessible_tex.py:"
)

// MarkerFor returns the full marker literal inserted for the given kind.
func MarkerFor(kind DocKind) string {
	if kind == KindTeX {
		return MarkerTeX
	}
	return MarkerSHN
}

// DefaultLanguage is the document language tag used when none is
// configured. It feeds both the hyperref pdflang option and the HTML lang
// attribute.
const DefaultLanguage = "en-US"

// Metadata holds the document metadata threaded through patching and
// rendering. It mirrors the per-directory metadata.cfg file: callers load
// or prompt for values and pass them explicitly.
type Metadata struct {
	Author   string
	Subject  string
	Keywords []string
}

// KeywordList returns the keywords as a single comma-separated string, the
// form expected by pdfkeywords and <meta name="keywords">.
func (m Metadata) KeywordList() string {
	return strings.Join(m.Keywords, ", ")
}

// ImageRef describes one image inclusion found in a source document,
// handed to an AltGuesser for a description.
type ImageRef struct {
	// Path is the argument of \includegraphics, as written in the source.
	Path string
	// Options is the bracketed option string, without brackets, or empty.
	Options string
	// SourceDir is the directory of the source document when known,
	// letting guessers probe the image file itself. Empty for pure
	// in-memory patching.
	SourceDir string
}

// AltGuesser produces a best-effort alt-text description for an image.
// Guesses are advisory: they are always inserted behind the marker prefix
// for human review, and only the marker contract is load-bearing.
type AltGuesser interface {
	Guess(ref ImageRef) string
}

// AltGuesserFunc adapts a function to the AltGuesser interface.
type AltGuesserFunc func(ref ImageRef) string

// Guess implements AltGuesser.
func (f AltGuesserFunc) Guess(ref ImageRef) string { return f(ref) }

// Engine selects the HTML rendering implementation.
type Engine string

// Available rendering engines.
const (
	// EngineBuiltin converts a LaTeX subset natively, with MathML output
	// for math environments. Works without external tools.
	EngineBuiltin Engine = "builtin"
	// EnginePandoc shells out to a pandoc executable for the conversion.
	EnginePandoc Engine = "pandoc"
)

// Validate checks that the engine is one of the known implementations.
func (e Engine) Validate() error {
	switch e {
	case EngineBuiltin, EnginePandoc:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownEngine, string(e))
}

// CommandRunner abstracts external command execution for the pandoc
// engine, so tests can substitute a fake and callers can add policies.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr string, err error)
}

// PatchInput carries one patch request.
type PatchInput struct {
	// Source is the full document text.
	Source string
	// Kind selects the format-specific patching rules.
	Kind DocKind
	// Meta supplies the metadata written into the preamble directives.
	Meta Metadata
	// Title overrides title resolution from the source when non-empty.
	Title string
	// SourceDir, when set, lets the alt guesser probe image files
	// referenced by the document.
	SourceDir string
}

// PatchResult reports the outcome of a patch.
type PatchResult struct {
	// Text is the patched document. Equal to the input when nothing
	// needed patching.
	Text string
	// PreamblePatched is true when the metadata preamble was inserted.
	PreamblePatched bool
	// ImagesWrapped counts \includegraphics directives newly wrapped in
	// \pdftooltip during this run.
	ImagesWrapped int
	// Changed is true when Text differs from the input source.
	Changed bool
}

// RenderInput carries one HTML render request.
type RenderInput struct {
	// Source is the full document text.
	Source string
	// Kind selects the format-specific rendering rules.
	Kind DocKind
	// Meta populates the HTML <meta> tags.
	Meta Metadata
	// Title overrides title resolution from the source when non-empty.
	Title string
	// Stream selects the .shn stream to render; DefaultStream when
	// empty. Ignored for .tex.
	Stream string
	// SourceDir, when set, lets the alt guesser probe image files for
	// images lacking a reviewed description.
	SourceDir string
}

// RenderResult reports the outcome of a render.
type RenderResult struct {
	// HTML is the standalone HTML5 document.
	HTML string
	// Unsupported lists constructs rendered as visible placeholders, in
	// source order, e.g. `environment "tikzpicture" (line 88)`. Empty on
	// a clean render.
	Unsupported []string
}

// Option configures a Service.
type Option func(*Service)

// WithAltGuesser replaces the default description heuristic.
func WithAltGuesser(g AltGuesser) Option {
	return func(s *Service) {
		if g != nil {
			s.guesser = g
		}
	}
}

// WithLanguage sets the document language tag (hyperref pdflang and HTML
// lang). The value is used verbatim; validate before passing.
func WithLanguage(lang string) Option {
	return func(s *Service) {
		if lang != "" {
			s.language = lang
		}
	}
}

// WithTimeout bounds the duration of a single render. Panics if d <= 0.
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("accessible: timeout must be positive")
	}
	return func(s *Service) {
		s.timeout = d
	}
}

// WithEngine selects the rendering engine. Unknown values are rejected by
// Render, not here, so construction never fails.
func WithEngine(e Engine) Option {
	return func(s *Service) {
		s.engine = e
	}
}

// WithCommandRunner replaces the executor used by the pandoc engine.
func WithCommandRunner(r CommandRunner) Option {
	return func(s *Service) {
		if r != nil {
			s.runner = r
		}
	}
}

// WithStrictRendering makes unsupported constructs fail the render instead
// of degrading to placeholders.
func WithStrictRendering() Option {
	return func(s *Service) {
		s.strict = true
	}
}

// WithHighlightStyle sets the chroma style used for code listings.
func WithHighlightStyle(name string) Option {
	return func(s *Service) {
		if name != "" {
			s.highlight = name
		}
	}
}

// WithStylesheet replaces the embedded stylesheet of rendered documents.
func WithStylesheet(css string) Option {
	return func(s *Service) {
		s.stylesheet = css
	}
}

// WithEmbedResources inlines referenced images into rendered HTML as data
// URIs, producing a single self-contained file. Requires
// RenderInput.SourceDir to resolve the image files.
func WithEmbedResources() Option {
	return func(s *Service) {
		s.embed = true
	}
}

// DefaultTimeout bounds a single render when no timeout option is given.
const DefaultTimeout = 2 * time.Minute

// DefaultHighlightStyle is the chroma style used for code listings when
// no highlight option is given.
const DefaultHighlightStyle = "tango"
