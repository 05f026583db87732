package cli

import (
	"context"

	"github.com/charmbracelet/huh"

	accessible "github.com/coursekit/accessible"
)

// promptStream asks which stream to render through a terminal select,
// pre-selecting initial.
func promptStream(ctx context.Context, initial string) (string, error) {
	if accessible.ValidateStream(initial) != nil {
		initial = accessible.DefaultStream
	}
	stream := initial

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Output stream").
				Description("Which stream should the rendered HTML include?").
				Options(
					huh.NewOption("notes (n)", "n"),
					huh.NewOption("slides (s)", "s"),
					huh.NewOption("handout (h)", "h"),
					huh.NewOption("combined (c)", "c"),
				).
				Value(&stream),
		),
	)

	if err := form.RunWithContext(ctx); err != nil {
		return "", err
	}
	return stream, nil
}
