package render

import (
	"fmt"
	"strings"
	"sync"

	"github.com/coursekit/accessible/internal/assets"
)

// baseStyle loads the embedded default stylesheet once. Failing to read
// an embedded asset is a packaging error, hence the panic.
var baseStyle = sync.OnceValue(func() string {
	css, err := assets.LoadStyle(assets.DefaultStyleName)
	if err != nil {
		panic(fmt.Sprintf("load embedded style %q: %v", assets.DefaultStyleName, err))
	}
	return css
})

// BuildStylesheet assembles the complete page stylesheet: the base
// rules, the chroma classes for the highlight style, then any custom
// CSS appended last so it wins the cascade.
func BuildStylesheet(custom, highlightStyle string) string {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(baseStyle()))
	b.WriteString("\n")
	if css := HighlightCSS(highlightStyle); css != "" {
		b.WriteString(css)
	}
	if custom != "" {
		b.WriteString(sanitizeCSS(custom))
		b.WriteString("\n")
	}
	return b.String()
}

// sanitizeCSS escapes sequences that could break out of a <style> block.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
