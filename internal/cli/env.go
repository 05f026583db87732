package cli

import (
	"context"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/coursekit/accessible/internal/assets"
	"github.com/coursekit/accessible/internal/metadata"
)

// Environment holds injectable dependencies for testability.
// Includes I/O, time, asset loading, terminal prompts, and binary lookup.
type Environment struct {
	Now    func() time.Time
	Stdout io.Writer
	Stderr io.Writer

	// AssetLoader overrides stylesheet resolution. When nil, a resolver is
	// built from the loaded config's assets.basePath.
	AssetLoader assets.AssetLoader

	// Metadata overrides the source used when a directory has no
	// metadata.cfg. When nil, flag values or an interactive prompt apply.
	Metadata metadata.Source

	// SelectStream replaces the interactive stream prompt. The initial
	// value is the pre-selected choice.
	SelectStream func(ctx context.Context, initial string) (string, error)

	// LookPath locates executables, for the pandoc diagnostics.
	LookPath func(file string) (string, error)

	// Interactive reports whether a terminal is attached, enabling the
	// metadata and stream prompts.
	Interactive bool
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:          time.Now,
		Stdout:       os.Stdout,
		Stderr:       os.Stderr,
		SelectStream: promptStream,
		LookPath:     exec.LookPath,
		Interactive:  isTerminal(os.Stdin),
	}
}

// isTerminal reports whether f is attached to a character device.
func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
