package accessible

// Notes:
// - DocKind/Engine/stream validation: accepted values and rejections
// - Marker literals: pinned byte-for-byte (stable on-disk format)
// - Metadata.KeywordList: comma-separated join
// - Options: each functional option against New() defaults

import (
	"errors"
	"testing"
	"time"
)

// ---------------------------------------------------------------------------
// Validation
// ---------------------------------------------------------------------------

func TestDocKind_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		kind    DocKind
		wantErr error
	}{
		{name: "shn", kind: KindSHN, wantErr: nil},
		{name: "tex", kind: KindTeX, wantErr: nil},
		{name: "empty", kind: DocKind(""), wantErr: ErrUnknownKind},
		{name: "pdf", kind: DocKind("pdf"), wantErr: ErrUnknownKind},
		{name: "uppercase", kind: DocKind("TEX"), wantErr: ErrUnknownKind},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.kind.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateStream(t *testing.T) {
	t.Parallel()

	for _, valid := range []string{StreamSlides, StreamHandout, StreamNotes, StreamCombined} {
		if err := ValidateStream(valid); err != nil {
			t.Errorf("ValidateStream(%q) = %v, want nil", valid, err)
		}
	}
	for _, invalid := range []string{"", "x", "sn", "N"} {
		if err := ValidateStream(invalid); !errors.Is(err, ErrUnknownStream) {
			t.Errorf("ValidateStream(%q) = %v, want ErrUnknownStream", invalid, err)
		}
	}
}

func TestEngine_Validate(t *testing.T) {
	t.Parallel()

	for _, valid := range []Engine{EngineBuiltin, EnginePandoc} {
		if err := valid.Validate(); err != nil {
			t.Errorf("Validate(%q) = %v, want nil", valid, err)
		}
	}
	for _, invalid := range []Engine{"", "latexml", "Builtin"} {
		if err := invalid.Validate(); !errors.Is(err, ErrUnknownEngine) {
			t.Errorf("Validate(%q) = %v, want ErrUnknownEngine", invalid, err)
		}
	}
}

// ---------------------------------------------------------------------------
// Markers
// ---------------------------------------------------------------------------

func TestMarkerLiterals(t *testing.T) {
	t.Parallel()

	// Patched documents on disk carry these bytes; changing them breaks
	// idempotence against files written by earlier releases.
	if MarkerSHN != "***!!***Guess by make_accessible.py:" {
		t.Errorf("MarkerSHN = %q", MarkerSHN)
	}
	if MarkerTeX != "***!!***Guess by make_accessible_tex.py:" {
		t.Errorf("MarkerTeX = %q", MarkerTeX)
	}
	if MarkerPrefix != "***!!***Guess by make_accessible" {
		t.Errorf("MarkerPrefix = %q", MarkerPrefix)
	}
}

func TestMarkerFor(t *testing.T) {
	t.Parallel()

	if got := MarkerFor(KindSHN); got != MarkerSHN {
		t.Errorf("MarkerFor(KindSHN) = %q, want MarkerSHN", got)
	}
	if got := MarkerFor(KindTeX); got != MarkerTeX {
		t.Errorf("MarkerFor(KindTeX) = %q, want MarkerTeX", got)
	}
}

// ---------------------------------------------------------------------------
// Metadata
// ---------------------------------------------------------------------------

func TestMetadata_KeywordList(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		meta Metadata
		want string
	}{
		{name: "empty", meta: Metadata{}, want: ""},
		{name: "single", meta: Metadata{Keywords: []string{"uart"}}, want: "uart"},
		{
			name: "multiple",
			meta: Metadata{Keywords: []string{"interrupts", "timers", "uart"}},
			want: "interrupts, timers, uart",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.meta.KeywordList(); got != tt.want {
				t.Errorf("KeywordList() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAltGuesserFunc(t *testing.T) {
	t.Parallel()

	var seen ImageRef
	g := AltGuesserFunc(func(ref ImageRef) string {
		seen = ref
		return "a diagram"
	})

	got := g.Guess(ImageRef{Path: "p.png", Options: "scale=2", SourceDir: "/d"})
	if got != "a diagram" {
		t.Errorf("Guess() = %q, want %q", got, "a diagram")
	}
	if seen.Path != "p.png" || seen.Options != "scale=2" || seen.SourceDir != "/d" {
		t.Errorf("Guess() forwarded ref = %+v", seen)
	}
}

// ---------------------------------------------------------------------------
// Options
// ---------------------------------------------------------------------------

func TestNew_Defaults(t *testing.T) {
	t.Parallel()

	s := New()
	if s.engine != EngineBuiltin {
		t.Errorf("default engine = %q, want %q", s.engine, EngineBuiltin)
	}
	if s.language != DefaultLanguage {
		t.Errorf("default language = %q, want %q", s.language, DefaultLanguage)
	}
	if s.timeout != DefaultTimeout {
		t.Errorf("default timeout = %v, want %v", s.timeout, DefaultTimeout)
	}
	if s.highlight != DefaultHighlightStyle {
		t.Errorf("default highlight = %q, want %q", s.highlight, DefaultHighlightStyle)
	}
	if s.guesser == nil {
		t.Error("default guesser is nil")
	}
	if s.strict {
		t.Error("strict rendering should be off by default")
	}
	if s.embed {
		t.Error("resource embedding should be off by default")
	}
}

func TestOptions(t *testing.T) {
	t.Parallel()

	guesser := AltGuesserFunc(func(ImageRef) string { return "" })
	runner := &recordingRunner{}

	s := New(
		WithAltGuesser(guesser),
		WithLanguage("de-DE"),
		WithTimeout(5*time.Second),
		WithEngine(EnginePandoc),
		WithCommandRunner(runner),
		WithStrictRendering(),
		WithHighlightStyle("monokai"),
		WithStylesheet("body { margin: 0 }"),
		WithEmbedResources(),
	)

	if s.guesser == nil {
		t.Error("WithAltGuesser not applied")
	}
	if s.language != "de-DE" {
		t.Errorf("language = %q, want de-DE", s.language)
	}
	if s.timeout != 5*time.Second {
		t.Errorf("timeout = %v, want 5s", s.timeout)
	}
	if s.engine != EnginePandoc {
		t.Errorf("engine = %q, want pandoc", s.engine)
	}
	if s.runner != runner {
		t.Error("WithCommandRunner not applied")
	}
	if !s.strict {
		t.Error("WithStrictRendering not applied")
	}
	if s.highlight != "monokai" {
		t.Errorf("highlight = %q, want monokai", s.highlight)
	}
	if s.stylesheet != "body { margin: 0 }" {
		t.Errorf("stylesheet = %q", s.stylesheet)
	}
	if !s.embed {
		t.Error("WithEmbedResources not applied")
	}
}

func TestOptions_NilAndEmptyIgnored(t *testing.T) {
	t.Parallel()

	s := New(
		WithAltGuesser(nil),
		WithLanguage(""),
		WithCommandRunner(nil),
		WithHighlightStyle(""),
	)

	if s.guesser == nil {
		t.Error("nil guesser should keep the default")
	}
	if s.language != DefaultLanguage {
		t.Errorf("empty language should keep the default, got %q", s.language)
	}
	if s.runner != nil {
		t.Error("nil runner should stay nil (engine default applies)")
	}
	if s.highlight != DefaultHighlightStyle {
		t.Errorf("empty highlight should keep the default, got %q", s.highlight)
	}
}

func TestWithTimeout_PanicsOnNonPositive(t *testing.T) {
	t.Parallel()

	for _, d := range []time.Duration{0, -time.Second} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("WithTimeout(%v) did not panic", d)
				}
			}()
			WithTimeout(d)
		}()
	}
}
