package cli

import (
	"fmt"
	"io"
)

// printUsage prints the short top-level usage message.
func printUsage(w io.Writer, tool Tool) {
	fmt.Fprintf(w, "Usage: %s --%s <file> | --html <file> [flags]\n", tool.Name, tool.PatchFlag)
	fmt.Fprintf(w, "       %s <command>\n", tool.Name)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  doctor     Check pandoc, config, and system readiness")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Run '%s help' for the full flag reference.\n", tool.Name)
}

// printRunUsage prints the full flag reference.
func printRunUsage(w io.Writer, tool Tool) {
	patch := fmt.Sprintf("--%s <file>", tool.PatchFlag)

	fmt.Fprintf(w, "Usage: %s [mode] [flags]\n", tool.Name)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Post-process %s course sources for accessibility.\n", tool.SourceExt)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Mode (choose one):")
	fmt.Fprintf(w, "      %-21s Patch the source in place for accessible PDF production\n", patch)
	fmt.Fprintln(w, "      --html <file>         Render the source to HTML with MathML")
	fmt.Fprintln(w, "      --all <file>          Patch in place, then render to HTML")
	fmt.Fprintln(w, "      --batch <dir>         Patch and render every eligible file under dir")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Metadata:")
	fmt.Fprintln(w, "      --author <s>          Document author")
	fmt.Fprintln(w, "      --subject <s>         Document subject")
	fmt.Fprintln(w, "      --keywords <s>        Keywords, comma or space separated")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rendering:")
	if tool.hasStreams() {
		fmt.Fprintln(w, "      --stream <s>          Output stream: s, h, n, or c")
	}
	fmt.Fprintln(w, "      --engine <s>          HTML engine: builtin, pandoc")
	fmt.Fprintln(w, "      --strict              Fail on unsupported constructs")
	fmt.Fprintln(w, "  -t, --timeout <d>         Render timeout (e.g. 30s, 2m)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <path>       HTML output file or directory")
	fmt.Fprintln(w, "      --diff                Print a unified diff of pending changes, write nothing")
	fmt.Fprintln(w, "      --no-backup           Skip the .bak copy before patching")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Batch:")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show per-file timing")
}

// runHelp prints help for a specific command.
func runHelp(tool Tool, args []string, env *Environment) {
	if len(args) == 0 {
		printRunUsage(env.Stdout, tool)
		return
	}

	switch args[0] {
	case "doctor":
		fmt.Fprintf(env.Stdout, "Usage: %s doctor [--json]\n", tool.Name)
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Check pandoc availability, config resolution, and system readiness.")
	case "version":
		fmt.Fprintf(env.Stdout, "Usage: %s version\n", tool.Name)
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintf(env.Stdout, "Usage: %s help [command]\n", tool.Name)
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr, tool)
	}
}
