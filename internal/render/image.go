package render

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
)

// maxEmbedSize caps data URI embedding; larger files keep their path.
const maxEmbedSize = 16 << 20

// imageExtensions are tried for extensionless include paths, most
// common first.
var imageExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".svg", ".bmp", ".webp"}

// imageMIMETypes maps extensions for data URI embedding.
var imageMIMETypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".svg":  "image/svg+xml",
	".bmp":  "image/bmp",
	".webp": "image/webp",
}

// image emits an img element. The alt text comes from the reviewed
// descriptions when available, otherwise from the guesser. Embedding
// as a data URI happens in the post-processing pass.
func (w *walker) image(b *strings.Builder, path, opts string) {
	w.imageWithAlt(b, path, opts, "")
}

// imageWithAlt emits an img with an explicit description, bypassing the
// alt lookup. Used when the source wraps the graphic in a tooltip.
func (w *walker) imageWithAlt(b *strings.Builder, path, opts, alt string) {
	if alt == "" {
		alt = w.doc.altFor(path, opts)
	}
	src := resolveImageSrc(w.doc.SourceDir, path)
	b.WriteString(`<img src="` + escapeAttr(src) + `" alt="` + escapeAttr(alt) + `"/>`)
}

// resolveImageSrc completes an extensionless include path against the
// source directory, the way \includegraphics resolves its argument.
func resolveImageSrc(sourceDir, path string) string {
	src := strings.ReplaceAll(path, `\`, "/")
	if filepath.Ext(src) != "" || sourceDir == "" {
		return src
	}
	for _, ext := range imageExtensions {
		if _, err := os.Stat(filepath.Join(sourceDir, filepath.FromSlash(src+ext))); err == nil {
			return src + ext
		}
	}
	return src
}

// dataURI reads an image file and encodes it for inline embedding.
func dataURI(path string) (string, bool) {
	mimeType, ok := imageMIMETypes[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return "", false
	}
	info, err := os.Stat(path)
	if err != nil || info.Size() > maxEmbedSize {
		return "", false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data), true
}
