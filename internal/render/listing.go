package render

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// listing renders a verbatim or lstlisting environment. Listings that
// declare a language get chroma token markup; everything else is
// escaped verbatim.
func (w *walker) listing(env, rest, content string) {
	lang := ""
	if m := lstLanguage.FindStringSubmatch(rest); m != nil {
		lang = m[1]
	}
	if env == "lstlisting" && lang != "" {
		if markup, err := highlightListing(content, lang, w.engine.HighlightStyle); err == nil {
			w.out.WriteString(markup)
			if !strings.HasSuffix(markup, "\n") {
				w.out.WriteByte('\n')
			}
			return
		}
	}
	w.out.WriteString("<pre><code>" + escapeHTML(content) + "</code></pre>\n")
}

// highlightListing runs chroma over the code. CSS classes keep the
// palette in the stylesheet instead of inline attributes.
func highlightListing(code, lang, styleName string) (string, error) {
	lexer := lexers.Get(lang)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	it, err := lexer.Tokenise(nil, code)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.Format(&b, styles.Get(styleName), it); err != nil {
		return "", err
	}
	return b.String(), nil
}

// HighlightCSS returns the class definitions for a chroma style, for
// inclusion in the page stylesheet.
func HighlightCSS(styleName string) string {
	var b strings.Builder
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(&b, styles.Get(styleName)); err != nil {
		return ""
	}
	return b.String()
}
