// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"strings"
)

// ForPandocNotFound returns hints when the pandoc executable is missing.
func ForPandocNotFound() string {
	return format("install pandoc (https://pandoc.org/installing.html) or use --engine builtin")
}

// ForTimeout returns a hint about increasing timeout for slow operations.
func ForTimeout() string {
	return format("for large documents, use --timeout flag")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/make-accessible/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	// Find a user config path (contains .config/make-accessible) to suggest
	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/make-accessible") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForMetadataMissing returns hints when metadata.cfg is absent and no
// interactive prompt is possible.
func ForMetadataMissing() string {
	return format("run in a terminal to be prompted, or pass --author, --subject, and --keywords")
}

// ForMetadataParse returns hints for malformed metadata.cfg lines.
func ForMetadataParse() string {
	return format("each line is \"keyword value\"; fix the line or delete metadata.cfg to be prompted again")
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForStyleNotFound returns hints for style not found errors.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForUnsupportedConstruct returns hints for strict-mode render failures.
func ForUnsupportedConstruct() string {
	return format("re-run without --strict to mark unsupported constructs with visible placeholders")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}
