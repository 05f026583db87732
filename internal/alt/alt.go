// Package alt produces best-effort alt-text descriptions for figures.
// Every guess ends up behind a review marker in the document, so the
// strategies here trade precision for coverage: a rough description a
// human can correct beats none at all.
package alt

import (
	"path"
	"path/filepath"
	"regexp"
	"strings"
)

// Ref identifies one image inclusion.
type Ref struct {
	// Path is the image path as written in the source document.
	Path string
	// Options is the \includegraphics option string, without brackets.
	Options string
	// SourceDir is the directory of the source document, when known.
	SourceDir string
}

// Guesser produces a description for an image, or "" to pass.
type Guesser interface {
	Guess(ref Ref) string
}

// Chain tries each guesser in order and returns the first non-empty
// description.
type Chain []Guesser

// Guess implements Guesser.
func (c Chain) Guess(ref Ref) string {
	for _, g := range c {
		if desc := g.Guess(ref); desc != "" {
			return desc
		}
	}
	return ""
}

// TableGuesser matches known figures by their lowercased file stem.
type TableGuesser struct {
	Figures map[string]string
}

// Guess implements Guesser.
func (t TableGuesser) Guess(ref Ref) string {
	if len(t.Figures) == 0 {
		return ""
	}
	return t.Figures[strings.ToLower(stem(ref.Path))]
}

// FolderGuesser matches the directory the image sits in: figure folders
// are usually dedicated to one topic, so the folder name describes every
// figure inside.
type FolderGuesser struct {
	Folders map[string]string
}

// Guess implements Guesser.
func (f FolderGuesser) Guess(ref Ref) string {
	if len(f.Folders) == 0 {
		return ""
	}
	p := strings.ReplaceAll(ref.Path, `\`, "/")
	dir := path.Dir(p)
	for dir != "." && dir != "/" && dir != "" {
		if desc, ok := f.Folders[path.Base(dir)]; ok {
			return desc + " (" + path.Base(p) + ")"
		}
		dir = path.Dir(dir)
	}
	return ""
}

var (
	separatorRun = regexp.MustCompile(`[-_]+`)
	longDigitRun = regexp.MustCompile(`\d{4,}`)
	spaceRun     = regexp.MustCompile(`\s{2,}`)
)

// NameGuesser derives a readable phrase from the file stem: separators
// become spaces and long digit runs (dates, sequence numbers) are
// dropped.
type NameGuesser struct{}

// Guess implements Guesser.
func (NameGuesser) Guess(ref Ref) string {
	readable := strings.ToLower(stem(ref.Path))
	readable = separatorRun.ReplaceAllString(readable, " ")
	readable = longDigitRun.ReplaceAllString(readable, "")
	readable = strings.TrimSpace(spaceRun.ReplaceAllString(readable, " "))
	if readable == "" {
		return ""
	}
	return "Figure: " + readable
}

// FallbackGuesser always answers, naming the file itself.
type FallbackGuesser struct{}

// Guess implements Guesser.
func (FallbackGuesser) Guess(ref Ref) string {
	return "Figure (" + filepath.Base(strings.ReplaceAll(ref.Path, `\`, "/")) + ")"
}

func stem(p string) string {
	base := path.Base(strings.ReplaceAll(p, `\`, "/"))
	return strings.TrimSuffix(base, path.Ext(base))
}

// DefaultFigures is the built-in known-figure table, extended or
// overridden through tool configuration.
func DefaultFigures() map[string]string {
	return map[string]string{
		"redditfollowadviceuw": "Screenshot of a Reddit post advising UW students to follow course advice",
		"traystack":            "Photo of a spring-loaded cafeteria tray stack, analogy for the hardware stack data structure",
		"pathfinder":           "Photo of the NASA Mars Pathfinder rover, illustrating the priority inversion bug in the 1997 Mars mission",
		"rs232_serialbits":     "Timing diagram of an RS-232 serial bit frame showing start bit, data bits, parity, and stop bits",
		"rs232_db25pinout":     "DB-25 connector pinout diagram for RS-232 serial interface",
		"includes_multi_protos": "Diagram showing a single .h header providing function " +
			"prototypes to multiple .c source files",
		"c-building": "Flowchart of the C build process: preprocessor, compiler, linker",
	}
}

// DefaultFolders is the built-in figure-folder table.
func DefaultFolders() map[string]string {
	return map[string]string{
		"hwio_figs":   "Hardware I/O diagram",
		"usb_figs":    "USB architecture diagram",
		"sched_figs":  "Scheduler diagram",
		"intro_figs":  "Introduction diagram",
		"cprog_figs":  "C programming diagram",
		"misc_figs":   "Diagram",
		"Serial_figs": "Serial communication diagram",
	}
}

// Default builds the standard guessing chain: known figures, then figure
// folders, then a readable name, then the bare filename. The figures and
// folders maps extend the built-in tables; pass nil to use them as is.
func Default(figures, folders map[string]string) Guesser {
	figs := DefaultFigures()
	for k, v := range figures {
		figs[strings.ToLower(k)] = v
	}
	dirs := DefaultFolders()
	for k, v := range folders {
		dirs[k] = v
	}
	return Chain{
		TableGuesser{Figures: figs},
		FolderGuesser{Folders: dirs},
		NameGuesser{},
		FallbackGuesser{},
	}
}
