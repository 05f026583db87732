package metadata

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
)

// Source supplies metadata values when a directory has no metadata.cfg
// yet. The terminal prompt and the pre-supplied flag values are the two
// implementations; tests use the latter so they never block on input.
type Source interface {
	Metadata(ctx context.Context) (*Config, error)
}

// StaticSource returns fixed values, for non-interactive runs and tests.
type StaticSource struct {
	Author   string
	Subject  string
	Keywords []string
}

// Metadata implements Source.
func (s StaticSource) Metadata(context.Context) (*Config, error) {
	return &Config{
		Author:   s.Author,
		Subject:  s.Subject,
		Keywords: s.Keywords,
	}, nil
}

// PromptSource collects metadata through an interactive terminal form.
type PromptSource struct {
	// Dir is shown in the form title so the user knows which directory
	// the answers will be saved for.
	Dir string
}

// Metadata implements Source. Returns huh.ErrUserAborted when the user
// cancels the form.
func (p PromptSource) Metadata(ctx context.Context) (*Config, error) {
	var author, subject, keywords string

	title := "Course metadata"
	if p.Dir != "" {
		title = fmt.Sprintf("Course metadata for %s", p.Dir)
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title(title).
				Description("No metadata.cfg found. The answers are saved there for future runs."),
			huh.NewInput().
				Title("Author").
				Description("Written to pdfauthor and <meta name=\"author\">.").
				Validate(notBlank).
				Value(&author),
			huh.NewInput().
				Title("Subject").
				Description("A one-line course or document description.").
				Value(&subject),
			huh.NewInput().
				Title("Keywords").
				Description("Comma or space separated.").
				Value(&keywords),
		),
	)

	if err := form.RunWithContext(ctx); err != nil {
		return nil, err
	}

	return &Config{
		Author:   strings.TrimSpace(author),
		Subject:  strings.TrimSpace(subject),
		Keywords: SplitKeywords(keywords),
	}, nil
}

func notBlank(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("this field is required")
	}
	return nil
}
