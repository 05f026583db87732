package texdoc

import (
	"regexp"
	"strings"
)

const tooltipOpen = `\pdftooltip{`

// includeGraphicsPattern matches an image inclusion with its optional
// bracket group and path argument.
var includeGraphicsPattern = regexp.MustCompile(`\\includegraphics(\[[^\]]*\])?\{([^}]+)\}`)

// Image is one \includegraphics directive found in a document.
type Image struct {
	// Start and End are the byte offsets of the directive in the text.
	Start, End int
	// Options is the bracket group without brackets, or "".
	Options string
	// Path is the image path argument.
	Path string
	// Wrapped is true when the directive already sits inside a
	// \pdftooltip wrapper.
	Wrapped bool
	// Alt is the tooltip description of a wrapped directive, verbatim
	// (marker prefix included when present).
	Alt string
}

// Images scans the text for image inclusions in source order.
func Images(text string) []Image {
	matches := includeGraphicsPattern.FindAllStringSubmatchIndex(text, -1)
	if matches == nil {
		return nil
	}

	imgs := make([]Image, 0, len(matches))
	for _, m := range matches {
		img := Image{
			Start: m[0],
			End:   m[1],
			Path:  text[m[4]:m[5]],
		}
		if m[2] >= 0 {
			img.Options = strings.Trim(text[m[2]:m[3]], "[]")
		}
		if insideTooltip(text, img.Start) {
			img.Wrapped = true
			if alt, ok := tooltipAlt(text, img.End); ok {
				img.Alt = alt
			}
		}
		imgs = append(imgs, img)
	}
	return imgs
}

// insideTooltip reports whether the offset lies inside the first argument
// of a \pdftooltip. It counts braces from the nearest preceding wrapper
// open: a positive depth means the wrapper's group is still open.
func insideTooltip(text string, offset int) bool {
	tip := strings.LastIndex(text[:offset], tooltipOpen)
	if tip < 0 {
		return false
	}
	depth := 0
	for _, ch := range text[tip+len(tooltipOpen)-1 : offset] {
		switch ch {
		case '{':
			depth++
		case '}':
			depth--
		}
	}
	return depth > 0
}

// tooltipAlt extracts the second \pdftooltip argument that follows a
// wrapped directive ending at offset. Reports false when the text after
// the directive does not look like the closing of a wrapper.
func tooltipAlt(text string, offset int) (string, bool) {
	i := skipSpaces(text, offset)
	if i >= len(text) || text[i] != '}' {
		return "", false
	}
	i = skipSpaces(text, i+1)
	if i >= len(text) || text[i] != '{' {
		return "", false
	}
	depth := 1
	start := i + 1
	for j := start; j < len(text); j++ {
		switch text[j] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start:j], true
			}
		}
	}
	return "", false
}

func skipSpaces(text string, i int) int {
	for i < len(text) && (text[i] == ' ' || text[i] == '\t' || text[i] == '\n' || text[i] == '\r') {
		i++
	}
	return i
}

// AltTexts collects the reviewed alt descriptions of a document, keyed by
// image path. Marker-prefixed guesses are stripped to their description
// part; wrapped images whose description is empty are omitted.
func AltTexts(text, markerPrefix string) map[string]string {
	var alts map[string]string
	for _, img := range Images(text) {
		if !img.Wrapped || img.Alt == "" {
			continue
		}
		alt := StripMarker(img.Alt, markerPrefix)
		if alt == "" {
			continue
		}
		if alts == nil {
			alts = make(map[string]string)
		}
		if _, dup := alts[img.Path]; !dup {
			alts[img.Path] = alt
		}
	}
	return alts
}

// StripMarker removes a leading alt-text marker from a description,
// returning the human-facing text. Descriptions without the prefix pass
// through unchanged.
func StripMarker(alt, markerPrefix string) string {
	if markerPrefix == "" || !strings.HasPrefix(alt, markerPrefix) {
		return strings.TrimSpace(alt)
	}
	rest := alt[len(markerPrefix):]
	if i := strings.IndexByte(rest, ':'); i >= 0 {
		rest = rest[i+1:]
	}
	return strings.TrimSpace(rest)
}

// UnwrapTooltips replaces every \pdftooltip{content}{description} with its
// content, for converters that do not understand the pdfcomment macros.
func UnwrapTooltips(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	rest := text
	for {
		tip := strings.Index(rest, tooltipOpen)
		if tip < 0 {
			b.WriteString(rest)
			return b.String()
		}
		b.WriteString(rest[:tip])

		content, end, ok := splitTooltip(rest[tip:])
		if !ok {
			// Malformed wrapper: emit it verbatim and move on.
			b.WriteString(tooltipOpen)
			rest = rest[tip+len(tooltipOpen):]
			continue
		}
		b.WriteString(content)
		rest = rest[tip+end:]
	}
}

// splitTooltip parses a wrapper starting at the beginning of text,
// returning the first argument and the offset just past the wrapper.
func splitTooltip(text string) (content string, end int, ok bool) {
	i := len(tooltipOpen)
	depth := 1
	start := i
	for ; i < len(text); i++ {
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
		}
		if depth == 0 {
			break
		}
	}
	if depth != 0 {
		return "", 0, false
	}
	content = text[start:i]

	j := skipSpaces(text, i+1)
	if j >= len(text) || text[j] != '{' {
		return "", 0, false
	}
	depth = 1
	for j++; j < len(text); j++ {
		switch text[j] {
		case '{':
			depth++
		case '}':
			depth--
		}
		if depth == 0 {
			return content, j + 1, true
		}
	}
	return "", 0, false
}

// StripTooltipSupport drops the preamble lines that load or emulate the
// pdfcomment package, leaving text digestible by plain LaTeX converters.
func StripTooltipSupport(text string) string {
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.Contains(line, "pdfcomment") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}
