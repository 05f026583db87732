// Package cli implements the command-line surface shared by the
// make-accessible and make-accessible-tex binaries. The two tools differ
// only in the document kind they handle and the name of the patch-mode
// flag; everything else (flag parsing, metadata collection, batch
// processing, diagnostics) is common and lives here.
package cli
