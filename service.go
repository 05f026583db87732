package accessible

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/coursekit/accessible/internal/alt"
	"github.com/coursekit/accessible/internal/patch"
	"github.com/coursekit/accessible/internal/render"
	"github.com/coursekit/accessible/internal/texdoc"
)

// Service orchestrates the accessibility operations: metadata patching of
// course sources and rendering to accessible HTML. A zero-configuration
// Service from New() patches and renders with the builtin engine, the
// default alt-guessing chain, and the embedded stylesheet.
type Service struct {
	guesser    AltGuesser
	language   string
	timeout    time.Duration
	engine     Engine
	runner     CommandRunner
	strict     bool
	highlight  string
	stylesheet string
	embed      bool
}

// New creates a Service with default configuration. Use options to
// customize behavior (e.g. WithEngine, WithAltGuesser).
func New(opts ...Option) *Service {
	s := &Service{
		guesser:   DefaultAltGuesser(nil, nil),
		language:  DefaultLanguage,
		timeout:   DefaultTimeout,
		engine:    EngineBuiltin,
		highlight: DefaultHighlightStyle,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// DefaultAltGuesser builds the standard guessing chain: an image-file
// probe that flags tiny rasters as decorative, then known figures, figure
// folders, a readable transform of the file stem, and finally the bare
// file name. The figures and folders maps extend the built-in tables;
// pass nil for the defaults alone.
func DefaultAltGuesser(figures, folders map[string]string) AltGuesser {
	chain := alt.ProbeGuesser{Next: alt.Default(figures, folders)}
	return AltGuesserFunc(func(ref ImageRef) string {
		return chain.Guess(alt.Ref{
			Path:      ref.Path,
			Options:   ref.Options,
			SourceDir: ref.SourceDir,
		})
	})
}

// Patch inserts the accessibility metadata preamble and wraps image
// inclusions in \pdftooltip directives carrying marker-prefixed alt-text
// guesses. The transformation is pure text: callers own file handling,
// backups, and atomic writes.
//
// Patch is idempotent. Applying it to its own output changes nothing, and
// images already inside a \pdftooltip wrapper keep their description even
// when a human has edited or emptied it.
func (s *Service) Patch(ctx context.Context, in PatchInput) (*PatchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if in.Source == "" {
		return nil, ErrEmptySource
	}
	if err := in.Kind.Validate(); err != nil {
		return nil, err
	}

	title := in.Title
	if title == "" {
		title = texdoc.Title(in.Source, texdoc.Kind(in.Kind), "")
	}

	res := patch.Apply(in.Source, patch.Meta{
		Title:    title,
		Author:   in.Meta.Author,
		Subject:  in.Meta.Subject,
		Keywords: in.Meta.KeywordList(),
		Language: s.language,
	}, patch.Config{
		Marker: MarkerFor(in.Kind),
		Guess:  s.guessFunc(in.SourceDir),
	})

	return &PatchResult{
		Text:            res.Text,
		PreamblePatched: res.PreamblePatched,
		ImagesWrapped:   res.ImagesWrapped,
		Changed:         res.Text != in.Source,
	}, nil
}

// Render converts the source document to a standalone accessible HTML
// page: metadata tags from Meta, the lang attribute, an embedded
// stylesheet, MathML for math content, and an alt attribute on every
// image. The source document is never modified.
//
// .shn input is reduced to one output stream first; in.Stream selects it
// and defaults to DefaultStream. Constructs without an HTML mapping
// degrade to visible placeholders listed in RenderResult.Unsupported
// unless the Service was built WithStrictRendering.
func (s *Service) Render(ctx context.Context, in RenderInput) (*RenderResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if in.Source == "" {
		return nil, ErrEmptySource
	}
	if err := in.Kind.Validate(); err != nil {
		return nil, err
	}
	if err := s.engine.Validate(); err != nil {
		return nil, err
	}

	source := texdoc.NormalizeNewlines(in.Source)
	if in.Kind == KindSHN {
		stream := in.Stream
		if stream == "" {
			stream = DefaultStream
		}
		if err := ValidateStream(stream); err != nil {
			return nil, err
		}
		source = texdoc.FilterStream(source, stream)
	}

	title := in.Title
	if title == "" {
		title = texdoc.Title(source, texdoc.Kind(in.Kind), "")
	}

	doc := render.Document{
		Source: source,
		Page: render.Page{
			Title:    title,
			Author:   in.Meta.Author,
			Subject:  in.Meta.Subject,
			Keywords: in.Meta.KeywordList(),
			Language: s.language,
			Style:    render.BuildStylesheet(s.stylesheet, s.highlight),
		},
		Alts:      texdoc.AltTexts(source, MarkerPrefix),
		Guess:     s.guessFunc(in.SourceDir),
		SourceDir: in.SourceDir,
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	res, err := s.renderEngine().Render(ctx, doc)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}

	if s.strict && len(res.Unsupported) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedConstruct,
			strings.Join(res.Unsupported, "; "))
	}

	return &RenderResult{
		HTML:        res.HTML,
		Unsupported: res.Unsupported,
	}, nil
}

// renderEngine builds the engine selected by configuration. Engines are
// stateless, so a fresh value per call keeps the Service safe for
// concurrent use.
func (s *Service) renderEngine() render.Engine {
	if s.engine == EnginePandoc {
		return &render.Pandoc{
			Runner:         s.runner,
			EmbedResources: s.embed,
		}
	}
	return &render.Builtin{
		HighlightStyle: s.highlight,
		EmbedImages:    s.embed,
	}
}

// guessFunc adapts the configured AltGuesser to the plain function shape
// the internal packages take, binding the source directory.
func (s *Service) guessFunc(sourceDir string) func(path, options string) string {
	return func(path, options string) string {
		return s.guesser.Guess(ImageRef{
			Path:      path,
			Options:   options,
			SourceDir: sourceDir,
		})
	}
}
