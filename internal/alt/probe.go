package alt

import (
	"image"
	"os"
	"path/filepath"
	"strings"

	// Raster formats course figures show up in. DecodeConfig reads the
	// header only, so probing stays cheap even for large scans.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DecorativeMaxSide is the largest dimension, in pixels, at which a
// raster image is assumed decorative (bullets, rules, icons).
const DecorativeMaxSide = 24

// probeExtensions lists the extensions tried for extension-less
// \includegraphics arguments, in LaTeX's usual resolution order.
var probeExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tiff", ".webp"}

// ProbeGuesser inspects the image file itself when it is reachable from
// the source directory: tiny rasters are flagged as decorative so
// reviewers can empty the alt text, everything else falls through to the
// next strategy.
type ProbeGuesser struct {
	Next Guesser
	// MaxSide overrides DecorativeMaxSide when positive.
	MaxSide int
}

// Guess implements Guesser.
func (p ProbeGuesser) Guess(ref Ref) string {
	if w, h, ok := probeSize(ref); ok {
		max := p.MaxSide
		if max <= 0 {
			max = DecorativeMaxSide
		}
		if w <= max && h <= max {
			return "decorative image, candidate for empty alt text"
		}
	}
	if p.Next == nil {
		return ""
	}
	return p.Next.Guess(ref)
}

// probeSize resolves the image path against the source directory and
// decodes its header. Vector formats (.pdf, .eps) and unreadable files
// report !ok.
func probeSize(ref Ref) (w, h int, ok bool) {
	if ref.SourceDir == "" {
		return 0, 0, false
	}
	p := filepath.Join(ref.SourceDir, filepath.FromSlash(strings.ReplaceAll(ref.Path, `\`, "/")))

	candidates := []string{p}
	if filepath.Ext(p) == "" {
		candidates = candidates[:0]
		for _, ext := range probeExtensions {
			candidates = append(candidates, p+ext)
		}
	}

	for _, c := range candidates {
		f, err := os.Open(c) // #nosec G304 -- path from the scanned document
		if err != nil {
			continue
		}
		cfg, _, err := image.DecodeConfig(f)
		_ = f.Close()
		if err != nil {
			continue
		}
		return cfg.Width, cfg.Height, true
	}
	return 0, 0, false
}
