// Package render turns LaTeX course documents into standalone accessible
// HTML. Two engines implement the conversion: Builtin walks a LaTeX
// subset natively with MathML output for math, and Pandoc shells out to
// a pandoc executable. Both produce a complete HTML5 document carrying
// the metadata tags, language attribute, and image alt texts.
package render

import (
	"context"
	"errors"
)

// Sentinel errors for render failures.
var (
	// ErrPandoc indicates the pandoc invocation failed.
	ErrPandoc = errors.New("pandoc conversion failed")
	// ErrPostProcess indicates the rendered HTML could not be parsed for
	// the accessibility pass.
	ErrPostProcess = errors.New("HTML post-processing failed")
)

// Page carries the document-level fields of the HTML shell.
type Page struct {
	Title    string
	Author   string
	Subject  string
	Keywords string
	Language string
	// Style is the complete stylesheet of the page.
	Style string
}

// Document is one render request.
type Document struct {
	// Source is the LaTeX text, already stream-filtered for .shn input.
	Source string
	// Page populates the HTML head and the html lang attribute.
	Page Page
	// Alts maps image include paths to reviewed descriptions extracted
	// from the source's pdftooltip wrappers.
	Alts map[string]string
	// Guess produces a description for images without a reviewed one.
	// May be nil, in which case such images get an empty alt attribute.
	Guess func(path, options string) string
	// SourceDir is the directory of the source file, used to resolve
	// relative image paths. Empty for in-memory input.
	SourceDir string
}

// Result is the outcome of a render.
type Result struct {
	// HTML is the standalone document.
	HTML string
	// Unsupported lists source constructs rendered as visible
	// placeholders, in source order. Always empty for the pandoc engine,
	// which degrades silently instead.
	Unsupported []string
}

// Engine converts one document to HTML.
type Engine interface {
	Render(ctx context.Context, doc Document) (Result, error)
}

// CommandRunner abstracts command execution to enable testing without
// real subprocesses.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (stdout string, stderr string, err error)
}

// altFor resolves the alt text for an image path: the reviewed
// description when one exists, otherwise a fresh guess.
func (d Document) altFor(path, options string) string {
	if alt, ok := d.Alts[path]; ok {
		return alt
	}
	if d.Guess != nil {
		return d.Guess(path, options)
	}
	return ""
}
