package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Language != "en-US" {
		t.Errorf("Language = %q, want %q", cfg.Language, "en-US")
	}
	if !cfg.Backup {
		t.Error("Backup = false, want true")
	}
	if cfg.Stream != "n" {
		t.Errorf("Stream = %q, want %q", cfg.Stream, "n")
	}
	if cfg.Style != "" {
		t.Errorf("Style = %q, want empty", cfg.Style)
	}
	if cfg.Workers != 0 {
		t.Errorf("Workers = %d, want 0", cfg.Workers)
	}
	if cfg.Render.Engine != "builtin" {
		t.Errorf("Render.Engine = %q, want %q", cfg.Render.Engine, "builtin")
	}
	if cfg.Render.EmbedResources {
		t.Error("Render.EmbedResources = true, want false")
	}
	if cfg.Render.Highlight != "tango" {
		t.Errorf("Render.Highlight = %q, want %q", cfg.Render.Highlight, "tango")
	}
	if cfg.Assets.BasePath != "" {
		t.Errorf("Assets.BasePath = %q, want empty", cfg.Assets.BasePath)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig should validate, got: %v", err)
	}
}

func TestValidateFieldLength(t *testing.T) {
	tests := []struct {
		name      string
		fieldName string
		value     string
		maxLength int
		wantErr   bool
	}{
		{
			name:      "empty value is valid",
			fieldName: "test",
			value:     "",
			maxLength: 10,
			wantErr:   false,
		},
		{
			name:      "value at limit is valid",
			fieldName: "test",
			value:     "1234567890",
			maxLength: 10,
			wantErr:   false,
		},
		{
			name:      "value under limit is valid",
			fieldName: "test",
			value:     "12345",
			maxLength: 10,
			wantErr:   false,
		},
		{
			name:      "value over limit returns error",
			fieldName: "test.field",
			value:     "12345678901",
			maxLength: 10,
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateFieldLength(tt.fieldName, tt.value, tt.maxLength)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !errors.Is(err, ErrFieldTooLong) {
					t.Errorf("error = %v, want ErrFieldTooLong", err)
				}
			} else {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
			}
		})
	}
}

func TestConfig_Validate_Language(t *testing.T) {
	t.Parallel()

	t.Run("empty language passes (uses default)", func(t *testing.T) {
		t.Parallel()
		cfg := &Config{}
		if err := cfg.Validate(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("registered tags pass", func(t *testing.T) {
		t.Parallel()
		for _, tag := range []string{"en-US", "en", "de", "pt-BR", "zh-Hant"} {
			cfg := &Config{Language: tag}
			if err := cfg.Validate(); err != nil {
				t.Errorf("Validate(language=%q) error = %v", tag, err)
			}
		}
	})

	t.Run("malformed tag returns ErrInvalidField", func(t *testing.T) {
		t.Parallel()
		cfg := &Config{Language: "!!not a tag!!"}
		err := cfg.Validate()
		if !errors.Is(err, ErrInvalidField) {
			t.Fatalf("error = %v, want ErrInvalidField", err)
		}
		if !strings.Contains(err.Error(), "language") {
			t.Errorf("error should mention language, got: %v", err)
		}
	})

	t.Run("language too long returns ErrFieldTooLong", func(t *testing.T) {
		t.Parallel()
		cfg := &Config{Language: strings.Repeat("a", MaxLanguageLength+1)}
		err := cfg.Validate()
		if !errors.Is(err, ErrFieldTooLong) {
			t.Errorf("error = %v, want ErrFieldTooLong", err)
		}
	})
}

func TestConfig_Validate_Stream(t *testing.T) {
	t.Parallel()

	t.Run("stream letters pass", func(t *testing.T) {
		t.Parallel()
		for _, s := range []string{"", "s", "h", "n", "c"} {
			cfg := &Config{Stream: s}
			if err := cfg.Validate(); err != nil {
				t.Errorf("Validate(stream=%q) error = %v", s, err)
			}
		}
	})

	t.Run("unknown stream returns ErrInvalidField", func(t *testing.T) {
		t.Parallel()
		for _, s := range []string{"x", "sn", "N"} {
			cfg := &Config{Stream: s}
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalidField) {
				t.Errorf("Validate(stream=%q) error = %v, want ErrInvalidField", s, err)
			}
		}
	})
}

func TestConfig_Validate_Render(t *testing.T) {
	t.Parallel()

	t.Run("known engines pass", func(t *testing.T) {
		t.Parallel()
		for _, e := range []string{"", "builtin", "pandoc"} {
			cfg := &Config{Render: RenderConfig{Engine: e}}
			if err := cfg.Validate(); err != nil {
				t.Errorf("Validate(engine=%q) error = %v", e, err)
			}
		}
	})

	t.Run("unknown engine returns ErrInvalidField", func(t *testing.T) {
		t.Parallel()
		cfg := &Config{Render: RenderConfig{Engine: "latexml"}}
		err := cfg.Validate()
		if !errors.Is(err, ErrInvalidField) {
			t.Fatalf("error = %v, want ErrInvalidField", err)
		}
		if !strings.Contains(err.Error(), "render.engine") {
			t.Errorf("error should mention render.engine, got: %v", err)
		}
	})

	t.Run("render.highlight too long returns ErrFieldTooLong", func(t *testing.T) {
		t.Parallel()
		cfg := &Config{Render: RenderConfig{Highlight: strings.Repeat("a", MaxHighlightLength+1)}}
		err := cfg.Validate()
		if !errors.Is(err, ErrFieldTooLong) {
			t.Errorf("error = %v, want ErrFieldTooLong", err)
		}
	})
}

func TestConfig_Validate_Workers(t *testing.T) {
	t.Parallel()

	t.Run("workers in range pass", func(t *testing.T) {
		t.Parallel()
		for _, w := range []int{0, 1, MaxWorkers} {
			cfg := &Config{Workers: w}
			if err := cfg.Validate(); err != nil {
				t.Errorf("Validate(workers=%d) error = %v", w, err)
			}
		}
	})

	t.Run("workers out of range returns ErrInvalidField", func(t *testing.T) {
		t.Parallel()
		for _, w := range []int{-1, MaxWorkers + 1} {
			cfg := &Config{Workers: w}
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalidField) {
				t.Errorf("Validate(workers=%d) error = %v, want ErrInvalidField", w, err)
			}
		}
	})
}

func TestConfig_Validate_Maps(t *testing.T) {
	t.Parallel()

	t.Run("titles and alt maps pass", func(t *testing.T) {
		t.Parallel()
		cfg := &Config{
			Titles: map[string]string{"lecture7.shn": "Interrupts and Timers"},
			Alt: AltConfig{
				Figures: map[string]string{"vector_table": "Interrupt vector table layout"},
				Folders: map[string]string{"scopeshots": "Oscilloscope capture"},
			},
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("title value too long returns ErrFieldTooLong", func(t *testing.T) {
		t.Parallel()
		cfg := &Config{
			Titles: map[string]string{"a.tex": strings.Repeat("t", MaxTitleLength+1)},
		}
		err := cfg.Validate()
		if !errors.Is(err, ErrFieldTooLong) {
			t.Errorf("error = %v, want ErrFieldTooLong", err)
		}
	})

	t.Run("alt.figures description too long returns ErrFieldTooLong", func(t *testing.T) {
		t.Parallel()
		cfg := &Config{
			Alt: AltConfig{Figures: map[string]string{"x": strings.Repeat("d", MaxAltTextLength+1)}},
		}
		err := cfg.Validate()
		if !errors.Is(err, ErrFieldTooLong) {
			t.Errorf("error = %v, want ErrFieldTooLong", err)
		}
	})

	t.Run("alt.folders description too long returns ErrFieldTooLong", func(t *testing.T) {
		t.Parallel()
		cfg := &Config{
			Alt: AltConfig{Folders: map[string]string{"x": strings.Repeat("d", MaxAltTextLength+1)}},
		}
		err := cfg.Validate()
		if !errors.Is(err, ErrFieldTooLong) {
			t.Errorf("error = %v, want ErrFieldTooLong", err)
		}
	})
}

func TestConfig_Validate_Assets(t *testing.T) {
	t.Parallel()

	t.Run("empty basePath is valid", func(t *testing.T) {
		t.Parallel()
		cfg := &Config{Assets: AssetsConfig{BasePath: ""}}
		if err := cfg.Validate(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("valid directory basePath is valid", func(t *testing.T) {
		t.Parallel()
		tmpDir := t.TempDir()
		cfg := &Config{Assets: AssetsConfig{BasePath: tmpDir}}
		if err := cfg.Validate(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("nonexistent basePath returns error", func(t *testing.T) {
		t.Parallel()
		cfg := &Config{Assets: AssetsConfig{BasePath: "/nonexistent/path/xyz123"}}
		err := cfg.Validate()
		if err == nil {
			t.Error("expected error for nonexistent path")
		}
		if !strings.Contains(err.Error(), "does not exist") {
			t.Errorf("error should mention 'does not exist', got: %v", err)
		}
	})

	t.Run("file instead of directory returns error", func(t *testing.T) {
		t.Parallel()
		tmpDir := t.TempDir()
		filePath := filepath.Join(tmpDir, "notadir.txt")
		if err := os.WriteFile(filePath, []byte("test"), 0644); err != nil {
			t.Fatalf("failed to create test file: %v", err)
		}

		cfg := &Config{Assets: AssetsConfig{BasePath: filePath}}
		err := cfg.Validate()
		if err == nil {
			t.Error("expected error for file path")
		}
		if !strings.Contains(err.Error(), "not a directory") {
			t.Errorf("error should mention 'not a directory', got: %v", err)
		}
	})
}

func TestLoadConfig(t *testing.T) {
	t.Run("empty name returns ErrEmptyConfigName", func(t *testing.T) {
		_, err := LoadConfig("")
		if !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("error = %v, want ErrEmptyConfigName", err)
		}
	})

	t.Run("valid file path loads config", func(t *testing.T) {
		dir := t.TempDir()
		configPath := filepath.Join(dir, "test.yaml")
		content := `language: "de"
stream: "s"
render:
  engine: "pandoc"
  embedResources: true
`
		if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
			t.Fatalf("setup: %v", err)
		}

		cfg, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Language != "de" {
			t.Errorf("Language = %q, want %q", cfg.Language, "de")
		}
		if cfg.Stream != "s" {
			t.Errorf("Stream = %q, want %q", cfg.Stream, "s")
		}
		if cfg.Render.Engine != "pandoc" {
			t.Errorf("Render.Engine = %q, want %q", cfg.Render.Engine, "pandoc")
		}
		if !cfg.Render.EmbedResources {
			t.Error("Render.EmbedResources = false, want true")
		}
	})

	t.Run("absent keys keep defaults", func(t *testing.T) {
		dir := t.TempDir()
		configPath := filepath.Join(dir, "test.yaml")
		if err := os.WriteFile(configPath, []byte("style: high-contrast\n"), 0600); err != nil {
			t.Fatalf("setup: %v", err)
		}

		cfg, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Style != "high-contrast" {
			t.Errorf("Style = %q, want %q", cfg.Style, "high-contrast")
		}
		if !cfg.Backup {
			t.Error("Backup = false, want default true")
		}
		if cfg.Language != "en-US" {
			t.Errorf("Language = %q, want default %q", cfg.Language, "en-US")
		}
		if cfg.Render.Highlight != "tango" {
			t.Errorf("Render.Highlight = %q, want default %q", cfg.Render.Highlight, "tango")
		}
	})

	t.Run("explicit backup false overrides default", func(t *testing.T) {
		dir := t.TempDir()
		configPath := filepath.Join(dir, "test.yaml")
		if err := os.WriteFile(configPath, []byte("backup: false\n"), 0600); err != nil {
			t.Fatalf("setup: %v", err)
		}

		cfg, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Backup {
			t.Error("Backup = true, want false")
		}
	})

	t.Run("empty file loads defaults", func(t *testing.T) {
		dir := t.TempDir()
		configPath := filepath.Join(dir, "empty.yaml")
		if err := os.WriteFile(configPath, []byte("\n"), 0600); err != nil {
			t.Fatalf("setup: %v", err)
		}

		cfg, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if !cfg.Backup || cfg.Language != "en-US" {
			t.Errorf("empty file should load defaults, got %+v", cfg)
		}
	})

	t.Run("loads titles and alt maps", func(t *testing.T) {
		dir := t.TempDir()
		configPath := filepath.Join(dir, "test.yaml")
		content := `titles:
  lecture7.shn: "Interrupts and Timers"
  lab3.tex: "UART Lab"
alt:
  figures:
    vector_table: "Interrupt vector table layout"
  folders:
    scopeshots: "Oscilloscope capture"
`
		if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
			t.Fatalf("setup: %v", err)
		}

		cfg, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if got := cfg.Titles["lecture7.shn"]; got != "Interrupts and Timers" {
			t.Errorf("Titles[lecture7.shn] = %q, want %q", got, "Interrupts and Timers")
		}
		if got := cfg.Alt.Figures["vector_table"]; got != "Interrupt vector table layout" {
			t.Errorf("Alt.Figures[vector_table] = %q, want %q", got, "Interrupt vector table layout")
		}
		if got := cfg.Alt.Folders["scopeshots"]; got != "Oscilloscope capture" {
			t.Errorf("Alt.Folders[scopeshots] = %q, want %q", got, "Oscilloscope capture")
		}
	})

	t.Run("nonexistent file path returns ErrConfigNotFound", func(t *testing.T) {
		_, err := LoadConfig("/nonexistent/path/config.yaml")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("invalid YAML returns ErrConfigParse", func(t *testing.T) {
		dir := t.TempDir()
		configPath := filepath.Join(dir, "invalid.yaml")
		if err := os.WriteFile(configPath, []byte("style: [unclosed"), 0600); err != nil {
			t.Fatalf("setup: %v", err)
		}

		_, err := LoadConfig(configPath)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("unknown field returns ErrConfigParse in strict mode", func(t *testing.T) {
		dir := t.TempDir()
		configPath := filepath.Join(dir, "unknown.yaml")
		content := `style: "default"
unknownField: "should fail"
`
		if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
			t.Fatalf("setup: %v", err)
		}

		_, err := LoadConfig(configPath)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("invalid field value returns validation error", func(t *testing.T) {
		dir := t.TempDir()
		configPath := filepath.Join(dir, "badstream.yaml")
		if err := os.WriteFile(configPath, []byte("stream: q\n"), 0600); err != nil {
			t.Fatalf("setup: %v", err)
		}

		_, err := LoadConfig(configPath)
		if !errors.Is(err, ErrInvalidField) {
			t.Errorf("error = %v, want ErrInvalidField", err)
		}
	})

	t.Run("field too long returns ErrFieldTooLong", func(t *testing.T) {
		dir := t.TempDir()
		configPath := filepath.Join(dir, "toolong.yaml")
		longLang := strings.Repeat("a", MaxLanguageLength+1)
		content := "language: \"" + longLang + "\"\n"
		if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
			t.Fatalf("setup: %v", err)
		}

		_, err := LoadConfig(configPath)
		if !errors.Is(err, ErrFieldTooLong) {
			t.Errorf("error = %v, want ErrFieldTooLong", err)
		}
	})

	t.Run("unreadable file returns read error not ErrConfigNotFound", func(t *testing.T) {
		dir := t.TempDir()
		configPath := filepath.Join(dir, "unreadable.yaml")
		if err := os.WriteFile(configPath, []byte("style: test\n"), 0600); err != nil {
			t.Fatalf("setup: %v", err)
		}
		if err := os.Chmod(configPath, 0000); err != nil {
			t.Fatalf("setup chmod: %v", err)
		}
		defer os.Chmod(configPath, 0600)

		_, err := LoadConfig(configPath)
		if err == nil {
			t.Fatal("expected error for unreadable file")
		}
		if errors.Is(err, ErrConfigNotFound) {
			t.Error("error should not be ErrConfigNotFound for permission error")
		}
	})

	t.Run("config name resolves yaml in current directory", func(t *testing.T) {
		dir := t.TempDir()
		configPath := filepath.Join(dir, "myconfig.yaml")
		if err := os.WriteFile(configPath, []byte("style: fromname\n"), 0600); err != nil {
			t.Fatalf("setup: %v", err)
		}

		originalWd, err := os.Getwd()
		if err != nil {
			t.Fatalf("failed to get working directory: %v", err)
		}
		defer os.Chdir(originalWd)
		if err := os.Chdir(dir); err != nil {
			t.Fatalf("chdir: %v", err)
		}

		cfg, err := LoadConfig("myconfig")
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Style != "fromname" {
			t.Errorf("Style = %q, want %q", cfg.Style, "fromname")
		}
	})

	t.Run("config name resolves yml when yaml not found", func(t *testing.T) {
		dir := t.TempDir()
		configPath := filepath.Join(dir, "myconfig.yml")
		if err := os.WriteFile(configPath, []byte("style: fromyml\n"), 0600); err != nil {
			t.Fatalf("setup: %v", err)
		}

		originalWd, err := os.Getwd()
		if err != nil {
			t.Fatalf("failed to get working directory: %v", err)
		}
		defer os.Chdir(originalWd)
		if err := os.Chdir(dir); err != nil {
			t.Fatalf("chdir: %v", err)
		}

		cfg, err := LoadConfig("myconfig")
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Style != "fromyml" {
			t.Errorf("Style = %q, want %q", cfg.Style, "fromyml")
		}
	})

	t.Run("config name prefers yaml over yml", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "myconfig.yaml"), []byte("style: yaml\n"), 0600); err != nil {
			t.Fatalf("setup yaml: %v", err)
		}
		if err := os.WriteFile(filepath.Join(dir, "myconfig.yml"), []byte("style: yml\n"), 0600); err != nil {
			t.Fatalf("setup yml: %v", err)
		}

		originalWd, err := os.Getwd()
		if err != nil {
			t.Fatalf("failed to get working directory: %v", err)
		}
		defer os.Chdir(originalWd)
		if err := os.Chdir(dir); err != nil {
			t.Fatalf("chdir: %v", err)
		}

		cfg, err := LoadConfig("myconfig")
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Style != "yaml" {
			t.Errorf("Style = %q, want %q (should prefer .yaml)", cfg.Style, "yaml")
		}
	})

	t.Run("config name resolves from user config directory", func(t *testing.T) {
		userConfigDir, err := os.UserConfigDir()
		if err != nil {
			t.Skip("cannot get user config dir")
		}

		appConfigDir := filepath.Join(userConfigDir, "make-accessible")
		configPath := filepath.Join(appConfigDir, "testconfig.yaml")

		if err := os.MkdirAll(appConfigDir, 0755); err != nil {
			t.Fatalf("setup mkdir: %v", err)
		}
		if err := os.WriteFile(configPath, []byte("style: userdir\n"), 0600); err != nil {
			t.Fatalf("setup write: %v", err)
		}
		defer os.Remove(configPath)

		// Change to empty dir so local file isn't found
		dir := t.TempDir()
		originalWd, err := os.Getwd()
		if err != nil {
			t.Fatalf("failed to get working directory: %v", err)
		}
		defer os.Chdir(originalWd)
		if err := os.Chdir(dir); err != nil {
			t.Fatalf("chdir: %v", err)
		}

		cfg, err := LoadConfig("testconfig")
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Style != "userdir" {
			t.Errorf("Style = %q, want %q", cfg.Style, "userdir")
		}
	})

	t.Run("config name not found returns ErrConfigNotFound", func(t *testing.T) {
		dir := t.TempDir()
		originalWd, err := os.Getwd()
		if err != nil {
			t.Fatalf("failed to get working directory: %v", err)
		}
		defer os.Chdir(originalWd)
		if err := os.Chdir(dir); err != nil {
			t.Fatalf("chdir: %v", err)
		}

		_, err = LoadConfig("nonexistent")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})
}

func TestLoadDefault(t *testing.T) {
	t.Run("missing config falls back to defaults", func(t *testing.T) {
		dir := t.TempDir()
		originalWd, err := os.Getwd()
		if err != nil {
			t.Fatalf("failed to get working directory: %v", err)
		}
		defer os.Chdir(originalWd)
		if err := os.Chdir(dir); err != nil {
			t.Fatalf("chdir: %v", err)
		}
		t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))

		cfg, err := LoadDefault()
		if err != nil {
			t.Fatalf("LoadDefault() error = %v", err)
		}
		if !cfg.Backup || cfg.Language != "en-US" || cfg.Render.Engine != "builtin" {
			t.Errorf("LoadDefault without file should return defaults, got %+v", cfg)
		}
	})

	t.Run("accessible.yaml in working directory wins", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "accessible.yaml"), []byte("stream: h\n"), 0600); err != nil {
			t.Fatalf("setup: %v", err)
		}

		originalWd, err := os.Getwd()
		if err != nil {
			t.Fatalf("failed to get working directory: %v", err)
		}
		defer os.Chdir(originalWd)
		if err := os.Chdir(dir); err != nil {
			t.Fatalf("chdir: %v", err)
		}

		cfg, err := LoadDefault()
		if err != nil {
			t.Fatalf("LoadDefault() error = %v", err)
		}
		if cfg.Stream != "h" {
			t.Errorf("Stream = %q, want %q", cfg.Stream, "h")
		}
		if !cfg.Backup {
			t.Error("Backup = false, want default true")
		}
	})

	t.Run("broken default config is an error not a silent fallback", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "accessible.yaml"), []byte("stream: [oops"), 0600); err != nil {
			t.Fatalf("setup: %v", err)
		}

		originalWd, err := os.Getwd()
		if err != nil {
			t.Fatalf("failed to get working directory: %v", err)
		}
		defer os.Chdir(originalWd)
		if err := os.Chdir(dir); err != nil {
			t.Fatalf("chdir: %v", err)
		}

		_, err = LoadDefault()
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})
}
