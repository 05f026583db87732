package cli

// Notes:
// - isCommand: we test command name matching.
// - Run: we test exit codes and output for the command surface. File
//   processing is covered by the tests in process_test.go.
// - resolveTimeoutWithEnv: we test duration parsing, validation, and priority.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

// ---------------------------------------------------------------------------
// TestVersion - Version variable
// ---------------------------------------------------------------------------

func TestVersion(t *testing.T) {
	t.Parallel()

	// Version variable should be set (default is "dev")
	if Version == "" {
		t.Error("Version should not be empty")
	}
}

// ---------------------------------------------------------------------------
// TestIsCommand - Command name detection
// ---------------------------------------------------------------------------

func TestIsCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"version", true},
		{"help", true},
		{"doctor", true},
		{"foo", false},
		{"", false},
		{"lecture.shn", false},
		{"Version", false}, // case sensitive
		{"DOCTOR", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got := isCommand(tt.input)
			if got != tt.want {
				t.Errorf("isCommand(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRun - Command surface exit codes and output
// ---------------------------------------------------------------------------

func TestRun(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		tool         Tool
		args         []string
		wantCode     int
		wantInStdout []string
		wantInStderr []string
	}{
		{
			name:         "no args shows usage and exits with ExitUsage",
			tool:         SHNTool,
			args:         []string{"make-accessible"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"Usage: make-accessible"},
		},
		{
			name:         "version command exits 0",
			tool:         SHNTool,
			args:         []string{"make-accessible", "version"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"make-accessible"},
		},
		{
			name:         "version command uses the tex tool name",
			tool:         TeXTool,
			args:         []string{"make-accessible-tex", "version"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"make-accessible-tex"},
		},
		{
			name:         "help command exits 0",
			tool:         SHNTool,
			args:         []string{"make-accessible", "help"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"Usage: make-accessible", "Mode (choose one):"},
		},
		{
			name:         "help doctor shows doctor help",
			tool:         SHNTool,
			args:         []string{"make-accessible", "help", "doctor"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"Usage: make-accessible doctor"},
		},
		{
			name:         "help shows the shn mode flag",
			tool:         SHNTool,
			args:         []string{"make-accessible", "help"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"--shn <file>", "--stream <s>"},
		},
		{
			name:         "tex help shows the pdf mode flag and no stream flag",
			tool:         TeXTool,
			args:         []string{"make-accessible-tex", "help"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"--pdf <file>"},
		},
		{
			name:         "unknown command exits with ExitUsage",
			tool:         SHNTool,
			args:         []string{"make-accessible", "unknown"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"unknown command: unknown"},
		},
		{
			name:         "command after flags must come first",
			tool:         SHNTool,
			args:         []string{"make-accessible", "--quiet", "doctor"},
			wantCode:     ExitUsage,
			wantInStderr: []string{`command "doctor" must come first`},
		},
		{
			name:         "help flag prints run usage to stdout",
			tool:         SHNTool,
			args:         []string{"make-accessible", "--help"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"Mode (choose one):"},
		},
		{
			name:         "unknown flag exits with ExitUsage",
			tool:         SHNTool,
			args:         []string{"make-accessible", "--frobnicate"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"unknown flag"},
		},
		{
			name:         "stream flag is rejected by the tex tool",
			tool:         TeXTool,
			args:         []string{"make-accessible-tex", "--stream", "s", "--html", "doc.tex"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"unknown flag: --stream"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var stdout, stderr bytes.Buffer
			env := &Environment{
				Now:    time.Now,
				Stdout: &stdout,
				Stderr: &stderr,
			}

			code := Run(tt.tool, tt.args, env)

			if code != tt.wantCode {
				t.Errorf("Run() = %d, want %d\nstderr: %s", code, tt.wantCode, stderr.String())
			}

			for _, want := range tt.wantInStdout {
				if !strings.Contains(stdout.String(), want) {
					t.Errorf("stdout should contain %q, got %q", want, stdout.String())
				}
			}

			for _, want := range tt.wantInStderr {
				if !strings.Contains(stderr.String(), want) {
					t.Errorf("stderr should contain %q, got %q", want, stderr.String())
				}
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestVersionOutput - Version command output format
// ---------------------------------------------------------------------------

func TestVersionOutput(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	env := &Environment{Now: time.Now, Stdout: &stdout, Stderr: &stderr}

	code := Run(SHNTool, []string{"make-accessible", "version"}, env)

	if code != ExitSuccess {
		t.Fatalf("Run() = %d, want %d", code, ExitSuccess)
	}
	want := "make-accessible " + Version + "\n"
	if stdout.String() != want {
		t.Errorf("stdout = %q, want %q", stdout.String(), want)
	}
}

// ---------------------------------------------------------------------------
// TestResolveTimeoutWithEnv - Timeout resolution with env var support
// ---------------------------------------------------------------------------

func TestResolveTimeoutWithEnv(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		flagValue string
		envValue  time.Duration
		want      time.Duration
		wantErr   bool
		errSubstr string
	}{
		{
			name:      "all empty uses default",
			flagValue: "",
			envValue:  0,
			want:      2 * time.Minute,
			wantErr:   false,
		},
		{
			name:      "flag only",
			flagValue: "2m",
			envValue:  0,
			want:      2 * time.Minute,
			wantErr:   false,
		},
		{
			name:      "env only",
			flagValue: "",
			envValue:  45 * time.Second,
			want:      45 * time.Second,
			wantErr:   false,
		},
		{
			name:      "flag overrides env",
			flagValue: "5m",
			envValue:  45 * time.Second,
			want:      5 * time.Minute,
			wantErr:   false,
		},
		{
			name:      "combined duration",
			flagValue: "1m30s",
			envValue:  0,
			want:      90 * time.Second,
			wantErr:   false,
		},
		{
			name:      "invalid flag format",
			flagValue: "abc",
			envValue:  0,
			wantErr:   true,
			errSubstr: "invalid timeout",
		},
		{
			name:      "negative duration",
			flagValue: "-5s",
			envValue:  0,
			wantErr:   true,
			errSubstr: "must be positive",
		},
		{
			name:      "zero duration",
			flagValue: "0s",
			envValue:  0,
			wantErr:   true,
			errSubstr: "must be positive",
		},
		{
			name:      "hours duration",
			flagValue: "1h",
			envValue:  0,
			want:      time.Hour,
			wantErr:   false,
		},
		{
			name:      "fractional seconds",
			flagValue: "500ms",
			envValue:  0,
			want:      500 * time.Millisecond,
			wantErr:   false,
		},
		{
			name:      "invalid flag overrides valid env",
			flagValue: "invalid",
			envValue:  time.Minute,
			wantErr:   true,
			errSubstr: "invalid timeout",
		},
		{
			name:      "zero flag overrides valid env",
			flagValue: "0s",
			envValue:  time.Minute,
			wantErr:   true,
			errSubstr: "must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := resolveTimeoutWithEnv(tt.flagValue, tt.envValue)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error, got nil")
					return
				}
				if tt.errSubstr != "" && !strings.Contains(err.Error(), tt.errSubstr) {
					t.Errorf("error should contain %q, got: %v", tt.errSubstr, err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			if got != tt.want {
				t.Errorf("resolveTimeoutWithEnv(%q, %v) = %v, want %v",
					tt.flagValue, tt.envValue, got, tt.want)
			}
		})
	}
}
