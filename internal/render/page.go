package render

import (
	"bytes"
	"fmt"
	"html/template"
	"sync"

	"github.com/coursekit/accessible/internal/assets"
)

// pageData feeds the embedded page template.
type pageData struct {
	Language string
	Title    string
	Author   string
	Subject  string
	Keywords string
	Style    template.CSS
	Body     template.HTML
}

// pageTemplate loads and parses the embedded page shell once.
// Panics if the embedded asset is broken (programmer error).
var pageTemplate = sync.OnceValue(func() *template.Template {
	content, err := assets.LoadTemplate("page")
	if err != nil {
		panic("failed to load page template: " + err.Error())
	}
	tmpl, err := template.New("page").Parse(content)
	if err != nil {
		panic("failed to parse page template: " + err.Error())
	}
	return tmpl
})

// buildPage wraps a rendered body fragment in the standalone HTML5
// shell, carrying the metadata tags and language attribute.
func buildPage(p Page, body string) (string, error) {
	style := p.Style
	if style == "" {
		style = BuildStylesheet("", "")
	}

	var buf bytes.Buffer
	err := pageTemplate().Execute(&buf, pageData{
		Language: p.Language,
		Title:    p.Title,
		Author:   p.Author,
		Subject:  p.Subject,
		Keywords: p.Keywords,
		Style:    template.CSS(sanitizeCSS(style)),
		Body:     template.HTML(body),
	})
	if err != nil {
		return "", fmt.Errorf("rendering page shell: %w", err)
	}
	return buf.String(), nil
}
