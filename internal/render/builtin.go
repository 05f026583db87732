package render

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/coursekit/accessible/internal/mathml"
	"github.com/coursekit/accessible/internal/texdoc"
)

// Builtin renders a LaTeX subset natively: sectioning, lists, listings,
// tables, figures, and math as MathML. It needs no external tools.
// Constructs outside the subset become visible placeholders and are
// reported in Result.Unsupported.
type Builtin struct {
	// HighlightStyle is the chroma style name for code listings.
	HighlightStyle string
	// EmbedImages inlines image files as data URIs when the document's
	// source directory is known.
	EmbedImages bool
}

// Render implements Engine. Supports context cancellation via the
// goroutine + select pattern since the walk itself is pure computation.
func (b *Builtin) Render(ctx context.Context, doc Document) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	type outcome struct {
		res Result
		err error
	}
	done := make(chan outcome, 1)

	go func() {
		w := &walker{doc: doc, engine: b, ids: make(map[string]int)}
		body, unsupported := w.run()
		page, err := buildPage(doc.Page, body)
		if err != nil {
			done <- outcome{err: err}
			return
		}
		final, err := postProcess(page, doc, b.EmbedImages)
		if err != nil {
			done <- outcome{err: err}
			return
		}
		done <- outcome{res: Result{HTML: final, Unsupported: unsupported}}
	}()

	select {
	case <-ctx.Done():
		return Result{}, ctx.Err()
	case o := <-done:
		return o.res, o.err
	}
}

// Block-level patterns.
var (
	beginPattern   = regexp.MustCompile(`^\\begin\{([a-zA-Z]+\*?)\}(.*)$`)
	endPattern     = regexp.MustCompile(`^\\end\{([a-zA-Z]+\*?)\}(.*)$`)
	headingPrefix  = regexp.MustCompile(`^\\(chapter|section|subsection|subsubsection|paragraph)\*?\{`)
	itemPattern    = regexp.MustCompile(`^\\item(?:\[([^\]]*)\])?\s*(.*)$`)
	captionPrefix  = regexp.MustCompile(`^\\caption\{`)
	labelDirective = regexp.MustCompile(`\\label\{[^}]*\}|\\nonumber\b|\\notag\b`)
	lstLanguage    = regexp.MustCompile(`language=([A-Za-z][A-Za-z0-9+#-]*)`)
)

// headingTags maps sectioning commands to HTML heading levels.
var headingTags = map[string]string{
	"chapter":       "h1",
	"section":       "h1",
	"subsection":    "h2",
	"subsubsection": "h3",
	"paragraph":     "h4",
}

// listTags maps list environments to their HTML container and item tags.
var listTags = map[string][2]string{
	"itemize":     {"ul", "li"},
	"enumerate":   {"ol", "li"},
	"description": {"dl", "dd"},
}

// mathEnvironments render as display MathML; the value is false for
// environments that stay inline.
var mathEnvironments = map[string]bool{
	"equation": true, "equation*": true, "align": true, "align*": true,
	"eqnarray": true, "eqnarray*": true, "displaymath": true,
	"gather": true, "gather*": true, "multline": true, "multline*": true,
	"math": false,
}

// verbatimEnvironments keep their content byte-for-byte.
var verbatimEnvironments = map[string]bool{
	"verbatim": true, "verbatim*": true, "lstlisting": true, "Verbatim": true,
}

// wrapperEnvironments open and close a plain HTML container.
var wrapperEnvironments = map[string][2]string{
	"center":    {`<div class="center">`, `</div>`},
	"quote":     {`<blockquote>`, `</blockquote>`},
	"quotation": {`<blockquote>`, `</blockquote>`},
	"abstract":  {`<div class="abstract">`, `</div>`},
	"titlepage": {`<div class="titlepage">`, `</div>`},
	"figure":    {`<figure>`, `</figure>`},
	"figure*":   {`<figure>`, `</figure>`},
	"table":     {`<figure class="table">`, `</figure>`},
	"table*":    {`<figure class="table">`, `</figure>`},
}

// listFrame is one open list environment.
type listFrame struct {
	env      string // itemize, enumerate, description
	itemOpen bool
}

// walker converts a LaTeX body to an HTML body fragment line by line.
type walker struct {
	doc    Document
	engine *Builtin

	out         strings.Builder
	para        []string
	paraLine    int
	lists       []listFrame
	wrappers    []string // close tags of open wrapper environments
	ids         map[string]int
	unsupported []string
	noTypo      int
}

// run walks the document body and returns the HTML fragment plus the
// placeholder records collected along the way.
func (w *walker) run() (string, []string) {
	src := texdoc.NormalizeNewlines(w.doc.Source)
	offset := strings.Count(src[:texdoc.BodyStart(src)], "\n")
	lines := strings.Split(texdoc.Body(src), "\n")

	i := 0
	for i < len(lines) {
		line := lines[i]
		lineNo := offset + i + 1
		trimmed := strings.TrimSpace(line)

		switch {
		case trimmed == "":
			w.flushPara()

		case strings.HasPrefix(trimmed, `\begin{`):
			i = w.beginEnvironment(lines, i, trimmed, lineNo)
			continue

		case strings.HasPrefix(trimmed, `\end{`):
			w.endEnvironment(trimmed, lineNo)

		case headingPrefix.MatchString(trimmed):
			m := headingPrefix.FindStringSubmatch(trimmed)
			title, rest, ok := scanGroup(trimmed, len(m[0])-1)
			if !ok {
				w.appendPara(line, lineNo)
				break
			}
			w.heading(headingTags[m[1]], title, lineNo)
			if rest = strings.TrimSpace(rest); rest != "" {
				w.appendPara(rest, lineNo)
			}

		case strings.HasPrefix(trimmed, `\item`):
			m := itemPattern.FindStringSubmatch(trimmed)
			w.item(m[1], lineNo)
			if m[2] != "" {
				w.appendPara(m[2], lineNo)
			}

		case captionPrefix.MatchString(trimmed):
			text, rest, ok := scanGroup(trimmed, len(`\caption{`)-1)
			if !ok {
				w.appendPara(line, lineNo)
				break
			}
			w.caption(text, lineNo)
			if rest = strings.TrimSpace(rest); rest != "" {
				w.appendPara(rest, lineNo)
			}

		case trimmed == `\maketitle`:
			w.titleBlock()

		default:
			w.appendPara(line, lineNo)
		}
		i++
	}

	w.flushPara()
	w.closeLists(0)
	for len(w.wrappers) > 0 {
		w.out.WriteString(w.popWrapper() + "\n")
	}
	return w.out.String(), w.unsupported
}

// beginEnvironment dispatches a \begin line and returns the index of the
// next line to process.
func (w *walker) beginEnvironment(lines []string, i int, trimmed string, lineNo int) int {
	m := beginPattern.FindStringSubmatch(trimmed)
	if m == nil {
		w.appendPara(lines[i], lineNo)
		return i + 1
	}
	env, rest := m[1], m[2]

	switch {
	case env == "document":
		return i + 1

	case verbatimEnvironments[env]:
		content, next := collectEnvironment(lines, i+1, env)
		w.flushPara()
		w.listing(env, rest, content)
		return next

	case isMathEnvironment(env):
		content, next := collectEnvironment(lines, i+1, env)
		w.flushPara()
		w.mathBlock(env, joinContent(rest, content), lineNo)
		return next

	case env == "tabular" || env == "tabular*":
		content, next := collectEnvironment(lines, i+1, env)
		w.flushPara()
		w.table(joinContent(stripColumnSpec(rest), content), lineNo)
		return next

	default:
		if tags, ok := listTags[env]; ok {
			w.flushPara()
			w.lists = append(w.lists, listFrame{env: env})
			w.out.WriteString("<" + tags[0] + ">\n")
			return i + 1
		}
		if wrap, ok := wrapperEnvironments[env]; ok {
			w.flushPara()
			w.out.WriteString(wrap[0] + "\n")
			w.wrappers = append(w.wrappers, wrap[1])
			if rest = strings.TrimSpace(stripPlacement(rest)); rest != "" {
				w.appendPara(rest, lineNo)
			}
			return i + 1
		}
		_, next := collectEnvironment(lines, i+1, env)
		w.flushPara()
		w.blockPlaceholder("environment " + env)
		w.record("environment %q (line %d)", env, lineNo)
		return next
	}
}

// joinContent prepends content found on the \begin line itself.
func joinContent(rest, content string) string {
	if strings.TrimSpace(rest) == "" {
		return content
	}
	return rest + "\n" + content
}

// stripColumnSpec drops the column specification group of a tabular.
func stripColumnSpec(rest string) string {
	rest = strings.TrimSpace(rest)
	if strings.HasPrefix(rest, "{") {
		if _, after, ok := scanGroup(rest, 0); ok {
			return after
		}
	}
	return rest
}

// endEnvironment closes a list or wrapper opened by beginEnvironment.
// Ends without a matching open are dropped, which also absorbs the
// \end lines of environments collected elsewhere.
func (w *walker) endEnvironment(trimmed string, lineNo int) {
	m := endPattern.FindStringSubmatch(trimmed)
	if m == nil {
		return
	}
	env := m[1]

	if _, ok := listTags[env]; ok {
		w.flushPara()
		for idx := len(w.lists) - 1; idx >= 0; idx-- {
			if w.lists[idx].env == env {
				w.closeLists(idx)
				break
			}
		}
	} else if _, ok := wrapperEnvironments[env]; ok {
		w.flushPara()
		if len(w.wrappers) > 0 {
			w.out.WriteString(w.popWrapper() + "\n")
		}
	}

	if rest := strings.TrimSpace(m[2]); rest != "" {
		w.appendPara(rest, lineNo)
	}
}

func (w *walker) popWrapper() string {
	closer := w.wrappers[len(w.wrappers)-1]
	w.wrappers = w.wrappers[:len(w.wrappers)-1]
	return closer
}

// isMathEnvironment also accepts starred forms not listed explicitly.
func isMathEnvironment(env string) bool {
	_, ok := mathEnvironments[env]
	return ok
}

// collectEnvironment gathers raw lines until the matching \end{env},
// returning the joined content and the index past the \end line.
// Same-name nesting is honored for non-verbatim environments.
func collectEnvironment(lines []string, start int, env string) (string, int) {
	depth := 1
	beginToken := `\begin{` + env + `}`
	endToken := `\end{` + env + `}`

	for i := start; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])
		if strings.HasPrefix(trimmed, beginToken) && !verbatimEnvironments[env] {
			depth++
			continue
		}
		if strings.HasPrefix(trimmed, endToken) {
			depth--
			if depth == 0 {
				return strings.Join(lines[start:i], "\n"), i + 1
			}
		}
	}
	return strings.Join(lines[start:], "\n"), len(lines)
}

// stripPlacement drops a leading float placement group like [htbp].
func stripPlacement(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "[") {
		if i := strings.IndexByte(s, ']'); i >= 0 {
			return s[i+1:]
		}
	}
	return s
}

// appendPara accumulates a paragraph line for the next flush.
func (w *walker) appendPara(line string, lineNo int) {
	if len(w.para) == 0 {
		w.paraLine = lineNo
	}
	w.para = append(w.para, line)
}

// flushPara renders the accumulated paragraph. Inside an open list item
// the content is written bare; elsewhere it gets a <p> wrapper.
// Paragraphs whose rendering is empty, such as a lone \noindent, vanish.
func (w *walker) flushPara() {
	if len(w.para) == 0 {
		return
	}
	text := strings.Join(w.para, "\n")
	w.para = w.para[:0]

	html := w.inline(text, w.paraLine)
	if strings.TrimSpace(html) == "" {
		return
	}
	if n := len(w.lists); n > 0 && w.lists[n-1].itemOpen {
		w.out.WriteString(html + "\n")
		return
	}
	w.out.WriteString("<p>" + html + "</p>\n")
}

// heading emits a heading with a stable generated ID.
func (w *walker) heading(tag, title string, lineNo int) {
	w.flushPara()
	w.closeLists(0)
	id := w.headingID(title)
	fmt.Fprintf(&w.out, "<%s id=%q>%s</%s>\n", tag, id, w.inline(title, lineNo), tag)
}

// headingID derives a unique anchor from the heading text.
func (w *walker) headingID(title string) string {
	slug := slugify(title)
	n := w.ids[slug]
	w.ids[slug] = n + 1
	if n > 0 {
		return fmt.Sprintf("%s-%d", slug, n)
	}
	return slug
}

var texCommandPattern = regexp.MustCompile(`\\[a-zA-Z]+\*?`)

// slugify reduces heading text to a lowercase hyphenated anchor.
func slugify(title string) string {
	title = texCommandPattern.ReplaceAllString(title, "")
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		case !lastHyphen:
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	slug := strings.TrimSuffix(b.String(), "-")
	if slug == "" {
		return "section"
	}
	return slug
}

// item starts a new list entry, closing the previous one.
func (w *walker) item(term string, lineNo int) {
	w.flushPara()
	if len(w.lists) == 0 {
		// Stray \item: open an implicit list rather than losing content.
		w.lists = append(w.lists, listFrame{env: "itemize"})
		w.out.WriteString("<ul>\n")
	}
	top := &w.lists[len(w.lists)-1]
	if top.itemOpen {
		w.out.WriteString("</" + listTags[top.env][1] + ">\n")
	}
	if top.env == "description" {
		w.out.WriteString("<dt>" + w.inline(term, lineNo) + "</dt>\n<dd>")
	} else {
		w.out.WriteString("<li>")
	}
	top.itemOpen = true
}

// closeLists pops list frames down to depth n.
func (w *walker) closeLists(n int) {
	for len(w.lists) > n {
		w.flushPara()
		top := w.lists[len(w.lists)-1]
		if top.itemOpen {
			w.out.WriteString("</" + listTags[top.env][1] + ">\n")
		}
		w.out.WriteString("</" + listTags[top.env][0] + ">\n")
		w.lists = w.lists[:len(w.lists)-1]
	}
}

// caption renders a \caption line: a figcaption inside an open figure,
// a captioned paragraph otherwise.
func (w *walker) caption(text string, lineNo int) {
	w.flushPara()
	if len(w.wrappers) > 0 {
		w.out.WriteString("<figcaption>" + w.inline(text, lineNo) + "</figcaption>\n")
		return
	}
	w.out.WriteString(`<p class="caption">` + w.inline(text, lineNo) + "</p>\n")
}

// titleBlock renders \maketitle from the page metadata.
func (w *walker) titleBlock() {
	w.flushPara()
	w.out.WriteString("<header>\n<h1>" + escapeHTML(w.doc.Page.Title) + "</h1>\n")
	if w.doc.Page.Author != "" {
		w.out.WriteString(`<p class="author">` + escapeHTML(w.doc.Page.Author) + "</p>\n")
	}
	w.out.WriteString("</header>\n")
}

// mathBlock renders a display math environment. Alignment environments
// hold one expression per \\ row.
func (w *walker) mathBlock(env, content string, lineNo int) {
	content = labelDirective.ReplaceAllString(content, "")
	display := mathEnvironments[env]

	rows := []string{content}
	if strings.HasPrefix(env, "align") || strings.HasPrefix(env, "eqnarray") ||
		strings.HasPrefix(env, "gather") || strings.HasPrefix(env, "multline") {
		rows = strings.Split(content, `\\`)
	}

	for _, row := range rows {
		if strings.TrimSpace(row) == "" {
			continue
		}
		markup, err := mathml.Convert(row, display)
		if err != nil {
			w.blockPlaceholder("math")
			w.record("math (line %d): %s", lineNo, unsupportedDetail(err))
			continue
		}
		w.out.WriteString(markup + "\n")
	}
}

// table renders a tabular body. A \hline directly after the first row
// marks it as the header row.
func (w *walker) table(content string, lineNo int) {
	raw := strings.Split(content, `\\`)
	headerFirst := len(raw) > 1 && hasRulePrefix(raw[1])

	var rows [][]string
	headerRow := -1
	for ri, row := range raw {
		row = strings.TrimSpace(stripRules(row))
		if row == "" {
			continue
		}
		if ri == 0 && headerFirst {
			headerRow = len(rows)
		}
		cells := strings.Split(row, "&")
		for ci := range cells {
			cells[ci] = strings.TrimSpace(cells[ci])
		}
		rows = append(rows, cells)
	}
	if len(rows) == 0 {
		return
	}

	w.out.WriteString("<table>\n")
	for ri, cells := range rows {
		tag := "td"
		if ri == headerRow {
			tag = "th"
			w.out.WriteString("<thead>\n")
		} else if ri == headerRow+1 && headerRow >= 0 {
			w.out.WriteString("</thead>\n<tbody>\n")
		}
		w.out.WriteString("<tr>")
		for _, cell := range cells {
			w.out.WriteString("<" + tag + ">" + w.inline(cell, lineNo) + "</" + tag + ">")
		}
		w.out.WriteString("</tr>\n")
	}
	if headerRow >= 0 {
		if len(rows) > headerRow+1 {
			w.out.WriteString("</tbody>\n")
		} else {
			w.out.WriteString("</thead>\n")
		}
	}
	w.out.WriteString("</table>\n")
}

// tableRules are the horizontal rule commands dropped from row content.
var tableRules = []string{`\hline`, `\toprule`, `\midrule`, `\bottomrule`}

func stripRules(row string) string {
	for _, rule := range tableRules {
		row = strings.ReplaceAll(row, rule, "")
	}
	return row
}

func hasRulePrefix(row string) bool {
	trimmed := strings.TrimSpace(row)
	for _, rule := range tableRules {
		if strings.HasPrefix(trimmed, rule) {
			return true
		}
	}
	return false
}

// blockPlaceholder emits the visible stand-in for a skipped construct.
func (w *walker) blockPlaceholder(label string) {
	w.out.WriteString(`<div class="unsupported">[unsupported: ` + escapeHTML(label) + "]</div>\n")
}

func (w *walker) record(format string, args ...any) {
	w.unsupported = append(w.unsupported, fmt.Sprintf(format, args...))
}

// unsupportedDetail strips the sentinel prefix from a mathml error,
// leaving the construct description.
func unsupportedDetail(err error) string {
	return strings.TrimPrefix(err.Error(), mathml.ErrUnsupported.Error()+": ")
}

func escapeHTML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}
