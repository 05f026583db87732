package alt

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("encoding png: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("writing png: %v", err)
	}
}

func TestProbeGuesserFlagsDecorative(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "bullet.png"), 8, 8)

	g := ProbeGuesser{Next: FallbackGuesser{}}

	got := g.Guess(Ref{Path: "bullet.png", SourceDir: dir})
	if got != "decorative image, candidate for empty alt text" {
		t.Errorf("Guess = %q", got)
	}
}

func TestProbeGuesserDelegatesForContentImages(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "diagram.png"), 640, 480)

	g := ProbeGuesser{Next: FallbackGuesser{}}

	got := g.Guess(Ref{Path: "diagram.png", SourceDir: dir})
	if got != "Figure (diagram.png)" {
		t.Errorf("Guess = %q", got)
	}
}

func TestProbeGuesserResolvesMissingExtension(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "icon.png"), 4, 4)

	g := ProbeGuesser{Next: FallbackGuesser{}}

	got := g.Guess(Ref{Path: "icon", SourceDir: dir})
	if got != "decorative image, candidate for empty alt text" {
		t.Errorf("extension-less probe failed: %q", got)
	}
}

func TestProbeGuesserUnreadableFileDelegates(t *testing.T) {
	g := ProbeGuesser{Next: FallbackGuesser{}}

	tests := []struct {
		name string
		ref  Ref
	}{
		{"no source dir", Ref{Path: "x.png"}},
		{"missing file", Ref{Path: "gone.png", SourceDir: t.TempDir()}},
		{"vector format", Ref{Path: "plot.pdf", SourceDir: t.TempDir()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.Guess(tt.ref); got == "" {
				t.Error("probe swallowed the guess instead of delegating")
			}
		})
	}
}
