package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	flag "github.com/spf13/pflag"

	accessible "github.com/coursekit/accessible"
	"github.com/coursekit/accessible/internal/assets"
	"github.com/coursekit/accessible/internal/config"
	"github.com/coursekit/accessible/internal/hints"
	"github.com/coursekit/accessible/internal/metadata"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Run executes one invocation of the tool and returns its exit code.
// args is the full argv, program name included.
func Run(tool Tool, args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr, tool)
		return ExitUsage
	}

	switch args[1] {
	case "version":
		fmt.Fprintf(env.Stdout, "%s %s\n", tool.Name, Version)
		return ExitSuccess
	case "help":
		runHelp(tool, args[2:], env)
		return ExitSuccess
	case "doctor":
		return runDoctorCmd(tool, args[2:], env)
	}

	f, rest, err := parseRunFlags(tool, args[1:], env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printRunUsage(env.Stdout, tool)
			return ExitSuccess
		}
		return ExitUsage
	}
	if len(rest) > 0 {
		if isCommand(rest[0]) {
			fmt.Fprintf(env.Stderr, "command %q must come first\n", rest[0])
		} else {
			fmt.Fprintf(env.Stderr, "unknown command: %s\n", rest[0])
		}
		printUsage(env.Stderr, tool)
		return ExitUsage
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	if err := runTool(ctx, tool, f, env); err != nil {
		fmt.Fprintf(env.Stderr, "%s: %v%s\n", tool.Name, err, hintFor(err))
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// isCommand reports whether name is a built-in command word.
func isCommand(name string) bool {
	switch name {
	case "version", "help", "doctor":
		return true
	}
	return false
}

// resolveTimeoutWithEnv picks the render timeout: flag > environment > default.
func resolveTimeoutWithEnv(flagValue string, envValue time.Duration) (time.Duration, error) {
	if flagValue != "" {
		d, err := time.ParseDuration(flagValue)
		if err != nil {
			return 0, fmt.Errorf("%w %q: %v", ErrInvalidTimeout, flagValue, err)
		}
		if d <= 0 {
			return 0, fmt.Errorf("%w: must be positive, got %v", ErrInvalidTimeout, d)
		}
		return d, nil
	}
	if envValue > 0 {
		return envValue, nil
	}
	return accessible.DefaultTimeout, nil
}

// hintFor returns an actionable hint suffix for err, or "".
func hintFor(err error) string {
	switch {
	case errors.Is(err, metadata.ErrParse):
		return hints.ForMetadataParse()
	case errors.Is(err, ErrNoMetadata):
		return hints.ForMetadataMissing()
	case errors.Is(err, config.ErrConfigNotFound):
		var paths []string
		if dir, derr := os.UserConfigDir(); derr == nil {
			paths = append(paths, filepath.Join(dir, "make-accessible", config.DefaultName+".yaml"))
		}
		return hints.ForConfigNotFound(paths)
	case errors.Is(err, assets.ErrStyleNotFound):
		return hints.ForStyleNotFound([]string{"default", "high-contrast", "print"})
	case errors.Is(err, accessible.ErrUnsupportedConstruct):
		return hints.ForUnsupportedConstruct()
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, exec.ErrNotFound):
		return hints.ForPandocNotFound()
	case errors.Is(err, ErrWriteOutput):
		return hints.ForOutputDirectory()
	}
	return ""
}
