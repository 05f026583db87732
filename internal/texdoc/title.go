package texdoc

import (
	"path/filepath"
	"regexp"
	"strings"
)

// headerCommentLines caps how far into a .shn file the title scan looks.
const headerCommentLines = 10

var (
	titlePattern       = regexp.MustCompile(`\\title\{([^}]*)\}`)
	latexCommandIn     = regexp.MustCompile(`\\[a-zA-Z]+\*?`)
	headerComment      = regexp.MustCompile(`^%+\s*(.*\S)\s*$`)
	hasLetter          = regexp.MustCompile(`[a-zA-Z]`)
	streamTagPrefixCut = regexp.MustCompile(`^<[a-z]+>`)
)

// Title resolves a human-readable document title from the source text,
// falling back to the file stem when the source carries none.
//
// .tex sources use the \title{...} argument, stripped of LaTeX commands
// and grouping braces. .shn sources use the first header comment line that
// contains letters, since the preprocessor format keeps its description
// there. The returned title is unescaped display text; callers escape it
// for the context they insert it into.
func Title(text string, kind Kind, path string) string {
	var title string
	switch kind {
	case KindTeX:
		title = titleFromTeX(text)
	case KindSHN:
		title = titleFromSHN(text)
	}
	if title != "" {
		return title
	}
	return FallbackTitle(path)
}

func titleFromTeX(text string) string {
	m := titlePattern.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	t := latexCommandIn.ReplaceAllString(m[1], "")
	t = strings.NewReplacer("{", "", "}", "").Replace(t)
	return strings.TrimSpace(t)
}

func titleFromSHN(text string) string {
	lines := strings.SplitN(text, "\n", headerCommentLines+1)
	if len(lines) > headerCommentLines {
		lines = lines[:headerCommentLines]
	}
	for _, line := range lines {
		line = streamTagPrefixCut.ReplaceAllString(line, "")
		m := headerComment.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if !hasLetter.MatchString(m[1]) {
			continue
		}
		return strings.TrimSpace(m[1])
	}
	return ""
}

// FallbackTitle derives a title from the file name: the stem of the base
// name. An empty path yields "Untitled".
func FallbackTitle(path string) string {
	if path == "" {
		return "Untitled"
	}
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" {
		return "Untitled"
	}
	return stem
}

// EscapeForLaTeX escapes the characters that break a title inside LaTeX
// option values, currently underscores only.
func EscapeForLaTeX(title string) string {
	return strings.ReplaceAll(title, "_", `\_`)
}
