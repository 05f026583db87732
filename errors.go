package accessible

import "errors"

// Input validation errors.
var (
	ErrEmptySource   = errors.New("empty source document")
	ErrUnknownKind   = errors.New("unknown document kind")
	ErrUnknownStream = errors.New("unknown stream")
	ErrUnknownEngine = errors.New("unknown render engine")
)

// Render errors.
var (
	// ErrUnsupportedConstruct reports a source construct with no HTML or
	// MathML mapping. Under the default policy such constructs become
	// visible placeholders and the render succeeds; WithStrictRendering
	// makes the render fail with this error instead.
	ErrUnsupportedConstruct = errors.New("unsupported construct")

	// ErrRender wraps engine failures that are not tied to a single
	// construct, such as a pandoc executable that cannot be started.
	ErrRender = errors.New("html render failed")
)
