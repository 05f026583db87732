package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/coursekit/accessible/internal/config"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string     `json:"status"` // "ready", "warnings", "errors"
	Pandoc   pandocInfo `json:"pandoc"`
	Config   configInfo `json:"config"`
	Env      envInfo    `json:"environment"`
	System   systemInfo `json:"system"`
	Warnings []string   `json:"warnings,omitempty"`
	Errors   []string   `json:"errors,omitempty"`
}

// pandocInfo holds pandoc detection results.
type pandocInfo struct {
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
}

// configInfo holds config file resolution results.
type configInfo struct {
	Found bool   `json:"found"`
	Path  string `json:"path,omitempty"`
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS   string   `json:"os"`
	Arch string   `json:"arch"`
	Set  []string `json:"set_variables,omitempty"`
}

// systemInfo holds system check results.
type systemInfo struct {
	TempWritable bool `json:"temp_writable"`
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(tool Tool, args []string, env *Environment) int {
	jsonOutput := false
	for _, arg := range args {
		if arg == "--json" {
			jsonOutput = true
		}
	}

	result := runDoctor(env)

	if jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, tool, result)
	}

	if result.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(env *Environment) *doctorResult {
	result := &doctorResult{
		Status: "ready",
		Env: envInfo{
			OS:   runtime.GOOS,
			Arch: runtime.GOARCH,
		},
	}

	checkPandoc(result, env)
	checkConfig(result)
	checkEnvVars(result)
	checkSystem(result)

	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}

	return result
}

// checkPandoc locates the pandoc executable. Missing pandoc is a warning,
// not an error: the builtin engine renders without it.
func checkPandoc(result *doctorResult, env *Environment) {
	lookPath := env.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}

	path, err := lookPath("pandoc")
	if err != nil {
		result.Warnings = append(result.Warnings,
			"pandoc not found; --engine pandoc will not work (builtin engine is unaffected)")
		return
	}

	result.Pandoc.Found = true
	result.Pandoc.Path = path

	out, err := exec.Command(path, "--version").Output() // #nosec G204 -- path comes from LookPath
	if err != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("could not get pandoc version: %v", err))
		return
	}
	version, _, _ := strings.Cut(string(out), "\n")
	result.Pandoc.Version = strings.TrimSpace(version)
}

// checkConfig resolves the default config file and validates it. Having no
// config file at all is fine, the defaults apply.
func checkConfig(result *doctorResult) {
	path, found := config.DefaultPath()
	if !found {
		result.Config.Valid = true
		return
	}

	result.Config.Found = true
	result.Config.Path = path

	if _, err := config.LoadConfig(path); err != nil {
		result.Config.Error = err.Error()
		result.Errors = append(result.Errors,
			fmt.Sprintf("config %s: %v", path, err))
		return
	}
	result.Config.Valid = true
}

// checkEnvVars records which ACCESSIBLE_* variables are set.
func checkEnvVars(result *doctorResult) {
	names := make([]string, 0, len(knownEnvVars))
	for name := range knownEnvVars {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if os.Getenv(name) != "" {
			result.Env.Set = append(result.Env.Set, name)
		}
	}
}

// checkSystem verifies system requirements.
func checkSystem(result *doctorResult) {
	tmpDir := os.TempDir()
	testFile := filepath.Join(tmpDir, "make-accessible-doctor-test")
	if err := os.WriteFile(testFile, []byte("test"), 0o600); err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Temp directory not writable: %s", tmpDir))
	} else {
		_ = os.Remove(testFile)
		result.System.TempWritable = true
	}
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, tool Tool, r *doctorResult) {
	fmt.Fprintf(w, "%s doctor\n", tool.Name)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Pandoc")
	if r.Pandoc.Found {
		fmt.Fprintf(w, "  [OK] Found at %s\n", r.Pandoc.Path)
		if r.Pandoc.Version != "" {
			fmt.Fprintf(w, "  [OK] %s\n", r.Pandoc.Version)
		}
	} else {
		fmt.Fprintln(w, "  [WARN] Not found (only the builtin engine is available)")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Configuration")
	switch {
	case r.Config.Found && r.Config.Valid:
		fmt.Fprintf(w, "  [OK] %s\n", r.Config.Path)
	case r.Config.Found:
		fmt.Fprintf(w, "  [ERROR] %s: %s\n", r.Config.Path, r.Config.Error)
	default:
		fmt.Fprintln(w, "  [OK] No config file, using built-in defaults")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	for _, name := range r.Env.Set {
		fmt.Fprintf(w, "  [OK] %s is set\n", name)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "System")
	if r.System.TempWritable {
		fmt.Fprintln(w, "  [OK] Temp directory: writable")
	} else {
		fmt.Fprintln(w, "  [ERROR] Temp directory: not writable")
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case "ready":
		fmt.Fprintln(w, "Status: Ready")
	case "warnings":
		fmt.Fprintln(w, "Status: Ready with warnings")
	case "errors":
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
