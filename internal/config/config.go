package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/language"

	"github.com/coursekit/accessible/internal/fileutil"
	"github.com/coursekit/accessible/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidField    = errors.New("invalid config field")
)

// Field length limits so a shared or copied config cannot blow up
// generated documents.
const (
	MaxLanguageLength  = 35   // Longest registered BCP 47 tag
	MaxStyleLength     = 2048 // Style name or filesystem path
	MaxTitleLength     = 200  // Per-file display title
	MaxAltTextLength   = 500  // Figure or folder description
	MaxHighlightLength = 50   // chroma style name
	MaxWorkers         = 64   // Batch worker cap
)

// DefaultName is the config file name (without extension) searched when
// no explicit --config is given.
const DefaultName = "accessible"

// Config holds the tool configuration read from accessible.yaml. It is
// distinct from the per-directory metadata.cfg, which carries document
// metadata rather than tool behavior.
type Config struct {
	// Language is the BCP 47 document language tag (default en-US).
	Language string `yaml:"language"`
	// Backup controls writing <name>.bak before patching (default true).
	Backup bool `yaml:"backup"`
	// Stream is the default .shn output stream letter (default n).
	Stream string `yaml:"stream"`
	// Style selects the stylesheet: a built-in name or a CSS file path.
	Style string `yaml:"style"`
	// Workers bounds batch-mode concurrency; 0 picks the CPU count.
	Workers int `yaml:"workers"`
	// Titles maps source base names to display titles, overriding title
	// detection from the document text.
	Titles map[string]string `yaml:"titles"`

	Alt    AltConfig    `yaml:"alt"`
	Render RenderConfig `yaml:"render"`
	Assets AssetsConfig `yaml:"assets"`
}

// AltConfig extends the built-in alt-text guessing tables.
type AltConfig struct {
	// Figures maps image file stems to descriptions.
	Figures map[string]string `yaml:"figures"`
	// Folders maps figure directory names to descriptions.
	Folders map[string]string `yaml:"folders"`
}

// RenderConfig selects and tunes the HTML rendering engine.
type RenderConfig struct {
	// Engine is "builtin" or "pandoc" (default builtin).
	Engine string `yaml:"engine"`
	// EmbedResources inlines images as data URIs for single-file output.
	EmbedResources bool `yaml:"embedResources"`
	// Highlight is the chroma style for code listings (default tango).
	Highlight string `yaml:"highlight"`
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// DefaultConfig returns the configuration used when no file is found.
func DefaultConfig() *Config {
	return &Config{
		Language: "en-US",
		Backup:   true,
		Stream:   "n",
		Render: RenderConfig{
			Engine:    "builtin",
			Highlight: "tango",
		},
	}
}

// Validate checks field values and lengths. Called automatically by
// LoadConfig, but available for consumers who construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("language", c.Language, MaxLanguageLength); err != nil {
		return err
	}
	if c.Language != "" {
		if _, err := language.Parse(c.Language); err != nil {
			return fmt.Errorf("%w: language: %q is not a BCP 47 tag: %v", ErrInvalidField, c.Language, err)
		}
	}

	if c.Stream != "" {
		switch c.Stream {
		case "s", "h", "n", "c":
			// valid
		default:
			return fmt.Errorf("%w: stream: %q (must be s, h, n, or c)", ErrInvalidField, c.Stream)
		}
	}

	if err := validateFieldLength("style", c.Style, MaxStyleLength); err != nil {
		return err
	}

	if c.Workers < 0 || c.Workers > MaxWorkers {
		return fmt.Errorf("%w: workers: must be between 0 and %d, got %d", ErrInvalidField, MaxWorkers, c.Workers)
	}

	for name, title := range c.Titles {
		if err := validateFieldLength(fmt.Sprintf("titles[%s]", name), title, MaxTitleLength); err != nil {
			return err
		}
	}
	for stem, desc := range c.Alt.Figures {
		if err := validateFieldLength(fmt.Sprintf("alt.figures[%s]", stem), desc, MaxAltTextLength); err != nil {
			return err
		}
	}
	for folder, desc := range c.Alt.Folders {
		if err := validateFieldLength(fmt.Sprintf("alt.folders[%s]", folder), desc, MaxAltTextLength); err != nil {
			return err
		}
	}

	if c.Render.Engine != "" {
		switch c.Render.Engine {
		case "builtin", "pandoc":
			// valid
		default:
			return fmt.Errorf("%w: render.engine: %q (must be builtin or pandoc)", ErrInvalidField, c.Render.Engine)
		}
	}
	if err := validateFieldLength("render.highlight", c.Render.Highlight, MaxHighlightLength); err != nil {
		return err
	}

	if c.Assets.BasePath != "" {
		info, err := os.Stat(c.Assets.BasePath)
		if err != nil {
			if os.IsNotExist(err) {
				return fmt.Errorf("%w: assets.basePath: %q does not exist", ErrInvalidField, c.Assets.BasePath)
			}
			return fmt.Errorf("assets.basePath: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("%w: assets.basePath: %q is not a directory", ErrInvalidField, c.Assets.BasePath)
		}
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard
// locations. Returns an error if the file is not found (no silent
// fallback); use LoadDefault for the optional-file behavior.
//
// Absent keys keep their DefaultConfig values, so a one-line file
// overrides exactly one setting.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if len(bytes.TrimSpace(data)) > 0 {
		if err := yamlutil.DecodeStrict(data, cfg); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// DefaultPath reports where the default config file lives, if anywhere.
// The boolean is false when no accessible.yaml/.yml exists in the standard
// locations.
func DefaultPath() (string, bool) {
	path, err := resolveConfigPath(DefaultName)
	return path, err == nil
}

// LoadDefault loads the "accessible" config from the standard locations,
// falling back to DefaultConfig when no file exists anywhere.
func LoadDefault() (*Config, error) {
	cfg, err := LoadConfig(DefaultName)
	if err != nil {
		if errors.Is(err, ErrConfigNotFound) {
			return DefaultConfig(), nil
		}
		return nil, err
	}
	return cfg, nil
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/make-accessible/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2) // 2 locations

	// Try current directory first (both extensions)
	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	// Try user config directory (both extensions)
	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "make-accessible", name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
