package cli

import (
	accessible "github.com/coursekit/accessible"
)

// Tool describes one of the two binaries built from this package.
type Tool struct {
	// Name is the binary name, used in usage text and error prefixes.
	Name string
	// Kind is the document kind the tool operates on.
	Kind accessible.DocKind
	// PatchFlag is the long flag that selects patch mode and carries the
	// source path ("shn" or "pdf").
	PatchFlag string
	// SourceExt is the expected source file extension, dot included.
	SourceExt string
}

// SHNTool is the make-accessible binary: patches and renders .shn sources.
var SHNTool = Tool{
	Name:      "make-accessible",
	Kind:      accessible.KindSHN,
	PatchFlag: "shn",
	SourceExt: ".shn",
}

// TeXTool is the make-accessible-tex binary: patches and renders plain
// LaTeX sources. The patch flag is named after the artifact the patched
// source is compiled into.
var TeXTool = Tool{
	Name:      "make-accessible-tex",
	Kind:      accessible.KindTeX,
	PatchFlag: "pdf",
	SourceExt: ".tex",
}

// hasStreams reports whether the tool's format carries stream tags.
func (t Tool) hasStreams() bool {
	return t.Kind == accessible.KindSHN
}
