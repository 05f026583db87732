// Package accessible post-processes LaTeX-derived course materials for
// accessibility: it injects PDF metadata directives into source documents,
// wraps image inclusions with reviewable alt-text placeholders, and renders
// sources to standalone HTML with MathML for mathematical content.
//
// # Overview
//
// Two source kinds are supported: plain LaTeX (.tex) and the .shn
// preprocessor format, a LaTeX-like syntax whose lines may carry stream
// tags routing content to different output streams (slides, handout,
// notes, combined). Both kinds flow through the same two operations:
//
//   - Patch rewrites the document text, inserting a hyperref metadata
//     preamble (pdftitle, pdfauthor, pdfsubject, pdfkeywords, pdflang)
//     and wrapping bare \includegraphics directives in \pdftooltip with a
//     marker-prefixed guessed description. Patching is idempotent: running
//     it on its own output changes nothing.
//   - Render converts the document text to a standalone HTML5 document
//     with MathML formulas, metadata <meta> tags, and alt attributes on
//     every image.
//
// Both operations are pure text transformations. Reading sources, writing
// backups, and atomically replacing files belong to the caller; the
// command-line front ends in cmd/make-accessible and cmd/make-accessible-tex
// do exactly that.
//
// # Basic Usage
//
//	svc := accessible.New()
//	res, err := svc.Patch(ctx, accessible.PatchInput{
//		Source: text,
//		Kind:   accessible.KindTeX,
//		Meta: accessible.Metadata{
//			Author:   "B. Hannaford",
//			Subject:  "Embedded systems",
//			Keywords: []string{"interrupts", "timers"},
//		},
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	_ = res.Text // patched document
//
// # Alt-Text Markers
//
// Guessed descriptions are flagged with a fixed marker prefix so humans can
// find and review them. Once a reviewer removes or rewrites the prefix, the
// patcher treats that image as handled and never re-inserts the marker.
// The prefix is a stable on-disk format; see MarkerPrefix.
//
// # Rendering Engines
//
// The default engine converts a LaTeX subset natively, producing MathML for
// math environments and syntax-highlighted listings. Constructs outside the
// subset become visible placeholders and are reported in
// RenderResult.Unsupported; WithStrictRendering turns them into errors.
// EnginePandoc shells out to a pandoc executable instead, for documents
// that exceed the native subset.
//
// # Options
//
// New accepts functional options: WithAltGuesser to replace the description
// heuristic, WithLanguage for the document language tag, WithTimeout to
// bound render time, WithEngine and WithCommandRunner for engine selection,
// WithHighlightStyle and WithStylesheet for HTML presentation.
package accessible
