package render

import (
	"strings"

	"github.com/coursekit/accessible/internal/mathml"
)

// scanGroup reads the balanced braced group whose opening brace sits at
// s[open], returning the group content and the remainder of s past it.
func scanGroup(s string, open int) (content, rest string, ok bool) {
	if open >= len(s) || s[open] != '{' {
		return "", "", false
	}
	depth := 1
	for i := open + 1; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[open+1 : i], s[i+1:], true
			}
		case '\\':
			i++
		}
	}
	return "", "", false
}

// nextGroup locates the next braced group at or after i, skipping
// whitespace, and returns its content and the index past it.
func nextGroup(s string, i int) (content string, next int, ok bool) {
	for i < len(s) && (s[i] == ' ' || s[i] == '\t' || s[i] == '\n') {
		i++
	}
	content, rest, ok := scanGroup(s, i)
	if !ok {
		return "", i, false
	}
	return content, len(s) - len(rest), true
}

// optionalContent reads a [..] group at or after i, returning its
// content and the index past it. Reports the original index when no
// optional group is present.
func optionalContent(s string, i int) (string, int) {
	j := i
	for j < len(s) && (s[j] == ' ' || s[j] == '\t') {
		j++
	}
	if j >= len(s) || s[j] != '[' {
		return "", i
	}
	for k := j + 1; k < len(s); k++ {
		if s[k] == ']' {
			return s[j+1 : k], k + 1
		}
	}
	return "", i
}

// nextOptional consumes a [..] group at or after i when present.
func nextOptional(s string, i int) int {
	_, next := optionalContent(s, i)
	return next
}

// spanCommands render their single argument inside an HTML element.
var spanCommands = map[string][2]string{
	"emph":            {"<em>", "</em>"},
	"textit":          {"<em>", "</em>"},
	"textsl":          {"<em>", "</em>"},
	"textbf":          {"<strong>", "</strong>"},
	"underline":       {"<u>", "</u>"},
	"uline":           {"<u>", "</u>"},
	"textsc":          {`<span class="smallcaps">`, "</span>"},
	"textsuperscript": {"<sup>", "</sup>"},
	"textsubscript":   {"<sub>", "</sub>"},
	"mbox":            {"", ""},
	"text":            {"", ""},
	"textrm":          {"", ""},
}

// ignoredCommands are consumed without output; the value is how many
// braced arguments to swallow along with the command.
var ignoredCommands = map[string]int{
	"centering": 0, "noindent": 0, "indent": 0, "raggedright": 0,
	"raggedleft": 0, "par": 0, "newpage": 0, "clearpage": 0,
	"pagebreak": 0, "nopagebreak": 0, "smallskip": 0, "medskip": 0,
	"bigskip": 0, "hfill": 0, "vfill": 0, "hline": 0, "toprule": 0,
	"midrule": 0, "bottomrule": 0, "tableofcontents": 0, "maketitle": 0,
	"frenchspacing": 0, "sloppy": 0, "relax": 0, "leavevmode": 0,
	"tiny": 0, "scriptsize": 0, "footnotesize": 0, "small": 0,
	"normalsize": 0, "large": 0, "Large": 0, "LARGE": 0, "huge": 0,
	"Huge": 0, "bfseries": 0, "itshape": 0, "ttfamily": 0, "rmfamily": 0,
	"sffamily": 0, "upshape": 0, "mdseries": 0, "selectfont": 0,
	"title": 1, "author": 1, "date": 1, "thanks": 1,
	"vspace": 1, "hspace": 1, "vskip": 0, "hskip": 0,
	"documentclass": 1, "usepackage": 1, "input": 1, "include": 1,
	"bibliography": 1, "bibliographystyle": 1, "pagestyle": 1,
	"thispagestyle": 1, "setcounter": 2, "setlength": 2,
	"addtolength": 2, "newcommand": 2, "renewcommand": 2, "rule": 2,
	"hypersetup": 1, "graphicspath": 1, "lstset": 1, "definecolor": 3,
	"IfFileExists": 3, "providecommand": 2, "newenvironment": 3,
}

// literalCommands expand to plain text.
var literalCommands = map[string]string{
	"ldots": "…", "dots": "…", "textellipsis": "…",
	"LaTeX": "LaTeX", "TeX": "TeX",
	"textbackslash": `\`, "textasciitilde": "~", "textunderscore": "_",
	"textbar": "|", "textless": "&lt;", "textgreater": "&gt;",
	"quad": " ", "qquad": " ", "copyright": "©", "textcopyright": "©",
	"textregistered": "®", "texttrademark": "™", "S": "§", "P": "¶",
	"textdegree": "°", "textemdash": "—", "textendash": "–",
	"textquotedblleft": "“", "textquotedblright": "”", "textbullet": "•",
}

// inline renders paragraph-level text to HTML. Lines are joined by
// newlines so comments stay line-scoped and inline math can span lines.
func (w *walker) inline(s string, lineNo int) string {
	var b strings.Builder
	i := 0
	for i < len(s) {
		switch c := s[i]; c {
		case '\\':
			i = w.inlineCommand(&b, s, i, lineNo)
		case '$':
			i = w.inlineMath(&b, s, i, lineNo)
		case '%':
			for i < len(s) && s[i] != '\n' {
				i++
			}
		case '~':
			b.WriteString("&#160;")
			i++
		case '&':
			b.WriteString("&amp;")
			i++
		case '<':
			b.WriteString("&lt;")
			i++
		case '>':
			b.WriteString("&gt;")
			i++
		case '`':
			if w.noTypo > 0 {
				b.WriteByte(c)
				i++
			} else if i+1 < len(s) && s[i+1] == '`' {
				b.WriteString("“")
				i += 2
			} else {
				b.WriteString("‘")
				i++
			}
		case '\'':
			if w.noTypo > 0 {
				b.WriteByte(c)
				i++
			} else if i+1 < len(s) && s[i+1] == '\'' {
				b.WriteString("”")
				i += 2
			} else {
				b.WriteString("’")
				i++
			}
		case '-':
			n := 1
			for i+n < len(s) && s[i+n] == '-' {
				n++
			}
			switch {
			case w.noTypo > 0 || n == 1:
				b.WriteString(strings.Repeat("-", n))
			case n == 2:
				b.WriteString("–")
			default:
				b.WriteString("—")
			}
			i += n
		default:
			b.WriteByte(c)
			i++
		}
	}
	return b.String()
}

// inlineCommand handles a backslash sequence starting at s[i] and
// returns the index past everything it consumed.
func (w *walker) inlineCommand(b *strings.Builder, s string, i, lineNo int) int {
	if i+1 >= len(s) {
		return i + 1
	}
	c := s[i+1]

	// Single-character escapes and control symbols.
	if !isCommandLetter(c) {
		switch c {
		case '\\':
			next := nextOptional(s, i+2)
			b.WriteString("<br/>")
			return next
		case '(':
			return w.delimitedMath(b, s, i+2, `\)`, false, lineNo)
		case '[':
			return w.delimitedMath(b, s, i+2, `\]`, true, lineNo)
		case '&':
			b.WriteString("&amp;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case ',', ';', ':', ' ':
			b.WriteByte(' ')
		case '!', '-', '@', '/':
			// Spacing and break hints with no visual equivalent.
		default:
			b.WriteByte(c)
		}
		return i + 2
	}

	name, end := commandName(s, i+1)

	if n, ok := ignoredCommands[name]; ok {
		end = nextOptional(s, end)
		for ; n > 0; n-- {
			if _, next, ok := nextGroup(s, end); ok {
				end = nextOptional(s, next)
			}
		}
		return end
	}

	if text, ok := literalCommands[name]; ok {
		b.WriteString(text)
		return end
	}

	if tags, ok := spanCommands[name]; ok {
		arg, next, ok := nextGroup(s, end)
		if !ok {
			return end
		}
		b.WriteString(tags[0])
		b.WriteString(w.inline(arg, lineNo))
		b.WriteString(tags[1])
		return next
	}

	switch name {
	case "texttt":
		arg, next, ok := nextGroup(s, end)
		if !ok {
			return end
		}
		b.WriteString("<code>")
		w.noTypo++
		b.WriteString(w.inline(arg, lineNo))
		w.noTypo--
		b.WriteString("</code>")
		return next

	case "verb":
		return writeVerb(b, s, end)

	case "href":
		url, next, ok := nextGroup(s, end)
		if !ok {
			return end
		}
		label, next2, ok := nextGroup(s, next)
		if !ok {
			return next
		}
		b.WriteString(`<a href="` + escapeAttr(url) + `">` + w.inline(label, lineNo) + "</a>")
		return next2

	case "url":
		url, next, ok := nextGroup(s, end)
		if !ok {
			return end
		}
		b.WriteString(`<a href="` + escapeAttr(url) + `">` + escapeHTML(url) + "</a>")
		return next

	case "includegraphics":
		opts, after := optionalContent(s, end)
		path, next, ok := nextGroup(s, after)
		if !ok {
			return after
		}
		w.image(b, path, opts)
		return next

	case "pdftooltip":
		content, next, ok := nextGroup(s, end)
		if !ok {
			return end
		}
		desc, next2, ok := nextGroup(s, next)
		if !ok {
			b.WriteString(w.inline(content, lineNo))
			return next
		}
		inner := strings.TrimSpace(content)
		if strings.HasPrefix(inner, `\includegraphics`) {
			opts, after := optionalContent(inner, len(`\includegraphics`))
			if path, _, ok := nextGroup(inner, after); ok {
				w.imageWithAlt(b, path, opts, strings.TrimSpace(desc))
				return next2
			}
		}
		b.WriteString(w.inline(content, lineNo))
		return next2

	case "footnote":
		note, next, ok := nextGroup(s, end)
		if !ok {
			return end
		}
		b.WriteString(`<span class="footnote">(` + w.inline(note, lineNo) + ")</span>")
		return next

	case "label":
		target, next, ok := nextGroup(s, end)
		if !ok {
			return end
		}
		b.WriteString(`<span id="` + escapeAttr(labelSlug(target)) + `"></span>`)
		return next

	case "ref", "eqref", "pageref", "autoref", "nameref":
		target, next, ok := nextGroup(s, end)
		if !ok {
			return end
		}
		b.WriteString(`<a href="#` + escapeAttr(labelSlug(target)) + `">` + escapeHTML(target) + "</a>")
		return next

	case "cite", "citep", "citet":
		keys, next, ok := nextGroup(s, nextOptional(s, end))
		if !ok {
			return end
		}
		b.WriteString(`<span class="citation">[` + escapeHTML(keys) + "]</span>")
		return next

	case "textcolor":
		_, next, ok := nextGroup(s, end)
		if !ok {
			return end
		}
		arg, next2, ok := nextGroup(s, next)
		if !ok {
			return next
		}
		b.WriteString(w.inline(arg, lineNo))
		return next2

	case "caption":
		arg, next, ok := nextGroup(s, end)
		if !ok {
			return end
		}
		b.WriteString(`<span class="caption">` + w.inline(arg, lineNo) + "</span>")
		return next
	}

	b.WriteString(`<span class="unsupported">[unsupported: \` + escapeHTML(name) + "]</span>")
	w.record("command %q (line %d)", `\`+name, lineNo)
	return end
}

// commandName reads the letters of a command starting after the
// backslash at s[start-1], plus a trailing star.
func commandName(s string, start int) (string, int) {
	i := start
	for i < len(s) && isCommandLetter(s[i]) {
		i++
	}
	if i < len(s) && s[i] == '*' {
		i++
	}
	return s[start:i], i
}

func isCommandLetter(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

// writeVerb handles \verb<delim>text<delim>, emitting the text verbatim.
func writeVerb(b *strings.Builder, s string, i int) int {
	if i >= len(s) {
		return i
	}
	delim := s[i]
	j := i + 1
	for j < len(s) && s[j] != delim {
		j++
	}
	b.WriteString("<code>" + escapeHTML(s[i+1:j]) + "</code>")
	if j < len(s) {
		j++
	}
	return j
}

// inlineMath handles $..$ and $$..$$ starting at s[i].
func (w *walker) inlineMath(b *strings.Builder, s string, i, lineNo int) int {
	if i+1 < len(s) && s[i+1] == '$' {
		return w.delimitedMath(b, s, i+2, "$$", true, lineNo)
	}
	return w.delimitedMath(b, s, i+1, "$", false, lineNo)
}

// delimitedMath scans to the closing delimiter and converts the
// enclosed expression. Backslash escapes inside the expression never
// terminate the scan.
func (w *walker) delimitedMath(b *strings.Builder, s string, start int, closer string, display bool, lineNo int) int {
	i := start
	for i < len(s) {
		if s[i] == '\\' && !strings.HasPrefix(closer, `\`) {
			i += 2
			continue
		}
		if strings.HasPrefix(s[i:], closer) {
			break
		}
		i++
	}
	expr := s[start:min(i, len(s))]

	markup, err := mathml.Convert(expr, display)
	if err != nil {
		b.WriteString(`<span class="unsupported">[unsupported math]</span>`)
		w.record("math (line %d): %s", lineNo, unsupportedDetail(err))
	} else {
		b.WriteString(markup)
	}

	if i >= len(s) {
		return len(s)
	}
	return i + len(closer)
}

// labelSlug normalizes a \label name for use as an HTML anchor.
func labelSlug(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9':
			return r
		case r == '-' || r == '_' || r == ':' || r == '.':
			return r
		}
		return '-'
	}, name)
}

func escapeAttr(s string) string {
	s = escapeHTML(s)
	return strings.ReplaceAll(s, `"`, "&quot;")
}
