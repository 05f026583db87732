// Package texdoc models the source documents the toolkit operates on:
// plain LaTeX files and the .shn preprocessor format. It provides stream
// tag handling, title resolution, image directive scanning, and the
// pdftooltip helpers shared by the patcher and the HTML renderer.
package texdoc

import (
	"regexp"
	"strings"
)

// Kind identifies the source format.
type Kind string

// Supported source formats.
const (
	KindSHN Kind = "shn"
	KindTeX Kind = "tex"
)

// streamTagPattern matches a line-leading stream tag like <shn>. Each
// letter names one output stream; the tag scopes the line to exactly
// those streams.
var streamTagPattern = regexp.MustCompile(`^<([a-z]+)>`)

// StreamTag returns the letters of the stream tag opening the line, or ""
// when the line is untagged.
func StreamTag(line string) string {
	m := streamTagPattern.FindStringSubmatch(line)
	if m == nil {
		return ""
	}
	return m[1]
}

// FilterStream extracts one output stream from .shn text: untagged lines
// pass through, tagged lines pass with the tag stripped when the tag
// contains the stream letter, and all other tagged lines are dropped.
// The result preserves the original line endings of kept lines.
func FilterStream(text, stream string) string {
	var b strings.Builder
	b.Grow(len(text))

	rest := text
	for len(rest) > 0 {
		line := rest
		if i := strings.IndexByte(rest, '\n'); i >= 0 {
			line = rest[:i+1]
			rest = rest[i+1:]
		} else {
			rest = ""
		}

		tag := StreamTag(line)
		if tag == "" {
			b.WriteString(line)
			continue
		}
		if strings.Contains(tag, stream) {
			b.WriteString(line[len(tag)+2:])
		}
	}
	return b.String()
}

// crlfOrCR matches Windows and old-Mac line endings.
var crlfOrCR = regexp.MustCompile(`\r\n?`)

// NormalizeNewlines converts CRLF and bare CR line endings to LF. Used on
// the render path only; patching preserves the source bytes outside its
// insertions.
func NormalizeNewlines(text string) string {
	return crlfOrCR.ReplaceAllString(text, "\n")
}

// documentBodyPattern brackets the LaTeX document body.
var (
	beginDocumentPattern = regexp.MustCompile(`\\begin\{document\}`)
	endDocumentPattern   = regexp.MustCompile(`\\end\{document\}`)
)

// Body returns the text between \begin{document} and \end{document}, or
// the whole input when the document environment is absent (fragments and
// .shn sources before preprocessing).
func Body(text string) string {
	rest := text[BodyStart(text):]
	end := endDocumentPattern.FindStringIndex(rest)
	if end == nil {
		return rest
	}
	return rest[:end[0]]
}

/// BodyStart returns the byte offset where Body begins within text: just
// past \begin{document}, or 0 when the document environment is absent.
// Callers use it to map body positions back to source line numbers.
func BodyStart(text string) int {
	begin := beginDocumentPattern.FindStringIndex(text)
	if begin == nil {
		return 0
	}
	return begin[1]
}

// Preamble returns the text before \begin{document}, or "" when the
// document environment is absent.
func Preamble(text string) string {
	begin := beginDocumentPattern.FindStringIndex(text)
	if begin == nil {
		return ""
	}
	return text[:begin[0]]
}
