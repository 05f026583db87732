// Package metadata loads and persists the per-directory metadata.cfg
// file holding the author, subject, and keywords of a course directory.
// The format is one `keyword value` pair per line; lines with keywords
// this package does not know are preserved in order and re-emitted
// verbatim, so hand-maintained entries survive a rewrite.
package metadata

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/coursekit/accessible/internal/fileutil"
)

// FileName is the metadata file looked up in the source directory.
const FileName = "metadata.cfg"

// ErrParse reports a metadata.cfg line that cannot be split into a
// keyword and a value.
var ErrParse = errors.New("metadata config parse error")

// Keywords recognized in metadata.cfg. Everything else passes through
// untouched.
const (
	keyAuthor   = "author"
	keySubject  = "subject"
	keyKeywords = "keywords"
)

// Config is the parsed metadata of one course directory.
type Config struct {
	Author   string
	Subject  string
	Keywords []string

	// lines preserves the file's structure for rewriting: known keyword
	// lines are re-emitted from the current field values, passthrough
	// lines (comments, unknown keywords) verbatim in their original
	// position.
	lines []cfgLine
}

type cfgLine struct {
	keyword string // "", for passthrough lines
	raw     string
}

// Parse reads the `keyword value` format. Blank lines and lines starting
// with # are passed through; a remaining line without both a keyword and
// a value fails with ErrParse carrying the line number.
func Parse(text string) (*Config, error) {
	rows := strings.Split(text, "\n")
	// A trailing newline produces one final empty element; dropping it
	// keeps Encode from growing the file by a blank line per rewrite.
	if len(rows) > 0 && rows[len(rows)-1] == "" {
		rows = rows[:len(rows)-1]
	}

	cfg := &Config{}
	for i, raw := range rows {
		line := strings.TrimRight(raw, "\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			cfg.lines = append(cfg.lines, cfgLine{raw: line})
			continue
		}

		keyword, value, ok := splitLine(trimmed)
		if !ok {
			return nil, fmt.Errorf("%w: line %d: %q has no value", ErrParse, i+1, trimmed)
		}

		switch keyword {
		case keyAuthor:
			cfg.Author = value
		case keySubject:
			cfg.Subject = value
		case keyKeywords:
			cfg.Keywords = SplitKeywords(value)
		default:
			cfg.lines = append(cfg.lines, cfgLine{raw: line})
			continue
		}
		cfg.lines = append(cfg.lines, cfgLine{keyword: keyword})
	}
	return cfg, nil
}

func splitLine(line string) (keyword, value string, ok bool) {
	i := strings.IndexFunc(line, unicode.IsSpace)
	if i < 0 {
		return "", "", false
	}
	keyword = line[:i]
	value = strings.TrimSpace(line[i:])
	if value == "" {
		return "", "", false
	}
	return keyword, value, true
}

// SplitKeywords splits a comma or space separated keyword list.
func SplitKeywords(value string) []string {
	fields := strings.FieldsFunc(value, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// Encode serializes the config back to the metadata.cfg format.
// Passthrough lines keep their position; known keywords are written from
// the current field values, in the original file order when the line
// existed, appended in canonical order when it did not. Empty fields are
// omitted.
func (c *Config) Encode() string {
	var b strings.Builder
	written := map[string]bool{}

	emit := func(keyword string) {
		if written[keyword] {
			return
		}
		if v := c.valueFor(keyword); v != "" {
			b.WriteString(keyword + " " + v + "\n")
		}
		written[keyword] = true
	}

	for _, ln := range c.lines {
		if ln.keyword == "" {
			b.WriteString(ln.raw + "\n")
			continue
		}
		emit(ln.keyword)
	}
	for _, keyword := range []string{keyAuthor, keySubject, keyKeywords} {
		emit(keyword)
	}
	return b.String()
}

func (c *Config) valueFor(keyword string) string {
	switch keyword {
	case keyAuthor:
		return c.Author
	case keySubject:
		return c.Subject
	case keyKeywords:
		return strings.Join(c.Keywords, ", ")
	}
	return ""
}

// Path returns the metadata.cfg path for a source directory.
func Path(dir string) string {
	return filepath.Join(dir, FileName)
}

// Load reads and parses dir/metadata.cfg. A missing file reports
// os.ErrNotExist through the error chain.
func Load(dir string) (*Config, error) {
	data, err := os.ReadFile(Path(dir))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", FileName, err)
	}
	cfg, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", Path(dir), err)
	}
	return cfg, nil
}

// Write persists the config to dir/metadata.cfg atomically.
func (c *Config) Write(dir string) error {
	if err := fileutil.WriteFileAtomic(Path(dir), []byte(c.Encode()), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", FileName, err)
	}
	return nil
}

// LoadOrCreate returns the directory's metadata, reading metadata.cfg
// when present and otherwise obtaining values from src, persisting them,
// and returning the fresh config. Parse failures are not recovered by
// prompting: a malformed file is surfaced for the user to fix rather
// than silently replaced.
func LoadOrCreate(ctx context.Context, dir string, src Source) (*Config, error) {
	cfg, err := Load(dir)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	if src == nil {
		return nil, err
	}

	cfg, err = src.Metadata(ctx)
	if err != nil {
		return nil, fmt.Errorf("collecting metadata: %w", err)
	}
	if err := cfg.Write(dir); err != nil {
		return nil, err
	}
	return cfg, nil
}
