// Package patch rewrites course material sources for accessibility. It
// inserts a hyperref metadata preamble and wraps image inclusions in
// \pdftooltip with marker-prefixed descriptions, and it is idempotent:
// applying it to its own output changes nothing.
package patch

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/coursekit/accessible/internal/texdoc"
)

// Meta carries the metadata interpolated into the preamble directives.
// All fields are plain display text; Title is escaped for LaTeX at
// insertion time.
type Meta struct {
	Title    string
	Author   string
	Subject  string
	Keywords string
	Language string
}

// Config carries the per-kind patching parameters.
type Config struct {
	// Marker is the full alt-text marker literal inserted before guessed
	// descriptions.
	Marker string
	// Guess produces a description for an image path and option string.
	// May be nil, in which case wrapped descriptions carry the marker
	// alone.
	Guess func(path, options string) string
}

// Result reports what a patch run changed.
type Result struct {
	Text            string
	PreamblePatched bool
	ImagesWrapped   int
}

// metadataPreamble is the block inserted into the document preamble.
// %[1]s is the stream tag replicated onto every line so the insertion
// survives .shn stream extraction; it is empty for plain LaTeX.
const metadataPreamble = `%[1]s\usepackage[T1]{fontenc}
%[1]s\usepackage{lmodern}
%[1]s\usepackage[utf8]{inputenc}
%[1]s\usepackage[english]{babel}
%[1]s\usepackage[pdftex,
%[1]s            pdftitle={%[2]s},
%[1]s            pdfauthor={%[3]s},
%[1]s            pdflang={%[4]s},
%[1]s            pdfsubject={%[5]s},
%[1]s            pdfkeywords={%[6]s},
%[1]s            colorlinks=true,
%[1]s            linkcolor=blue,
%[1]s            citecolor=blue,
%[1]s            urlcolor=blue,
%[1]s            unicode=true]{hyperref}
%[1]s\IfFileExists{pdfcomment.sty}{\usepackage{pdfcomment}}{\providecommand{\pdftooltip}[2]{#1}}`

var (
	// graphicxHyperrefPair matches the load order the course skeletons
	// use, a graphicx line directly followed by a bare hyperref line.
	// The graphicx load is kept and only the hyperref line gives way to
	// the metadata block.
	graphicxHyperrefPair = regexp.MustCompile(`(?m)^((<[a-z]+>)?\\usepackage(\[[^\]]*\])?\{graphicx\})[ \t]*\n(<[a-z]+>)?\\usepackage\{hyperref\}[ \t]*$`)

	// bareHyperrefLine matches a hyperref load without options, with an
	// optional stream tag. Option-carrying loads are left alone: they
	// either already hold metadata (caught by AlreadyPatched) or are a
	// deliberate local setup.
	bareHyperrefLine = regexp.MustCompile(`(?m)^(<[a-z]+>)?\\usepackage\{hyperref\}[ \t]*$`)

	documentClassPattern = regexp.MustCompile(`\\documentclass(\[[^\]]*\])?\{[^}]*\}`)
)

// AlreadyPatched reports whether the document already carries the
// accessibility preamble. The check is deliberately loose: any document
// with font encoding, lmodern, and a pdftitle option is treated as
// handled, whether by this tool or by hand.
func AlreadyPatched(text string) bool {
	return strings.Contains(text, "fontenc") &&
		strings.Contains(text, "lmodern") &&
		strings.Contains(text, "pdftitle=")
}

// Apply patches the source text: preamble first, then image wrapping.
// The transformation is pure; callers own all file handling.
func Apply(source string, meta Meta, cfg Config) Result {
	res := Result{Text: source}

	if !AlreadyPatched(source) {
		if patched, ok := insertPreamble(source, meta); ok {
			res.Text = patched
			res.PreamblePatched = true
		}
	}

	wrapped, n := WrapImages(res.Text, cfg.Marker, cfg.Guess)
	res.Text = wrapped
	res.ImagesWrapped = n
	return res
}

// insertPreamble places the metadata block into the document preamble.
// Strategies, in order: keep the graphicx half of a graphicx/hyperref
// pair and replace the hyperref line with the block, replace a lone bare
// \usepackage{hyperref} line, else insert after \documentclass.
// Documents with no anchor at all (raw .shn fragments) are returned
// unchanged.
func insertPreamble(text string, meta Meta) (string, bool) {
	block := buildPreamble(meta)

	if loc := graphicxHyperrefPair.FindStringSubmatchIndex(text); loc != nil {
		gTag, hTag := "", ""
		if loc[4] >= 0 {
			gTag = text[loc[4]:loc[5]]
		}
		if loc[8] >= 0 {
			hTag = text[loc[8]:loc[9]]
		}
		// A pair whose lines feed different streams is not the skeleton
		// form; the bare-hyperref strategy handles the hyperref line on
		// its own terms.
		if gTag == hTag {
			graphicx := text[loc[2]:loc[3]]
			return text[:loc[0]] + graphicx + "\n" + withPrefix(block, gTag) + text[loc[1]:], true
		}
	}

	if loc := bareHyperrefLine.FindStringSubmatchIndex(text); loc != nil {
		prefix := ""
		if loc[2] >= 0 {
			prefix = text[loc[2]:loc[3]]
		}
		return text[:loc[0]] + withPrefix(block, prefix) + text[loc[1]:], true
	}

	if loc := documentClassPattern.FindStringIndex(text); loc != nil {
		prefix := texdoc.StreamTag(lineContaining(text, loc[0]))
		if prefix != "" {
			prefix = "<" + prefix + ">"
		}
		return text[:loc[1]] + "\n" + withPrefix(block, prefix) + text[loc[1]:], true
	}

	return text, false
}

// buildPreamble fills the block template without a stream tag; withPrefix
// applies one afterwards so every insertion strategy shares the escape
// handling here.
func buildPreamble(meta Meta) string {
	lang := meta.Language
	if lang == "" {
		lang = "en-US"
	}
	return fmt.Sprintf(metadataPreamble,
		"",
		texdoc.EscapeForLaTeX(meta.Title),
		meta.Author,
		lang,
		meta.Subject,
		meta.Keywords,
	)
}

func withPrefix(block, prefix string) string {
	if prefix == "" {
		return block
	}
	lines := strings.Split(block, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}

func lineContaining(text string, offset int) string {
	start := strings.LastIndexByte(text[:offset], '\n') + 1
	end := strings.IndexByte(text[offset:], '\n')
	if end < 0 {
		return text[start:]
	}
	return text[start : offset+end]
}

// WrapImages wraps every bare \includegraphics directive in a \pdftooltip
// carrying the marker and a guessed description. Directives already inside
// a wrapper are left untouched, whatever their description now says: the
// wrapper is the record that a human (or an earlier run) handled the
// image, so edited or emptied descriptions are never overwritten.
func WrapImages(text, marker string, guess func(path, options string) string) (string, int) {
	imgs := texdoc.Images(text)
	if len(imgs) == 0 {
		return text, 0
	}

	var b strings.Builder
	b.Grow(len(text) + len(imgs)*64)

	last := 0
	wrapped := 0
	for _, img := range imgs {
		if img.Wrapped {
			continue
		}
		desc := marker
		if guess != nil {
			if g := guess(img.Path, img.Options); g != "" {
				desc = marker + " " + g
			}
		}
		b.WriteString(text[last:img.Start])
		b.WriteString(`\pdftooltip{`)
		b.WriteString(text[img.Start:img.End])
		b.WriteString(`}{`)
		b.WriteString(desc)
		b.WriteString(`}`)
		last = img.End
		wrapped++
	}
	b.WriteString(text[last:])
	return b.String(), wrapped
}
