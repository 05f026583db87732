package render

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/coursekit/accessible/internal/fileutil"
	"github.com/coursekit/accessible/internal/process"
	"github.com/coursekit/accessible/internal/texdoc"
)

// pandocArgs pin the conversion: LaTeX in, standalone HTML5 with MathML
// out. Resource embedding happens in the post-processing pass, after
// alt texts are attached, so the flag is absent here.
var pandocArgs = []string{"--from=latex", "--to=html5", "--mathml", "--standalone"}

// Pandoc renders by shelling out to a pandoc executable. The pdftooltip
// wrappers are unwrapped first since plain LaTeX readers do not know
// the pdfcomment macros.
type Pandoc struct {
	// Runner executes the process; a real ExecRunner when nil.
	Runner CommandRunner
	// Binary overrides the executable name, "pandoc" by default.
	Binary string
	// EmbedResources inlines images as data URIs after rendering.
	EmbedResources bool
}

// Render implements Engine.
func (p *Pandoc) Render(ctx context.Context, doc Document) (Result, error) {
	prepared := texdoc.StripTooltipSupport(texdoc.UnwrapTooltips(doc.Source))

	tmpPath, cleanup, err := fileutil.WriteTempFile(prepared, "tex")
	if err != nil {
		return Result{}, err
	}
	defer cleanup()

	args := make([]string, 0, len(pandocArgs)+2)
	args = append(args, tmpPath)
	args = append(args, pandocArgs...)
	if doc.Page.Title != "" {
		args = append(args, "--metadata=title:"+doc.Page.Title)
	}

	runner := p.Runner
	if runner == nil {
		runner = &ExecRunner{}
	}
	binary := p.Binary
	if binary == "" {
		binary = "pandoc"
	}

	stdout, stderr, err := runner.Run(ctx, binary, args...)
	if err != nil {
		if stderr != "" {
			return Result{}, fmt.Errorf("%w: %s: %v", ErrPandoc, strings.TrimSpace(stderr), err)
		}
		return Result{}, fmt.Errorf("%w: %v", ErrPandoc, err)
	}

	withStyle := injectCSS(stdout, doc.Page.Style)
	final, err := postProcess(withStyle, doc, p.EmbedResources)
	if err != nil {
		return Result{}, err
	}
	return Result{HTML: final}, nil
}

// injectCSS inserts a <style> block into HTML content. Tries </head>
// first, then <body>, then prepends.
func injectCSS(htmlContent, cssContent string) string {
	if cssContent == "" {
		return htmlContent
	}

	styleBlock := "<style>" + sanitizeCSS(cssContent) + "</style>"
	lowerHTML := strings.ToLower(htmlContent)

	if idx := strings.Index(lowerHTML, "</head>"); idx != -1 {
		return htmlContent[:idx] + styleBlock + htmlContent[idx:]
	}
	if idx := strings.Index(lowerHTML, "<body"); idx != -1 {
		if closeIdx := strings.Index(htmlContent[idx:], ">"); closeIdx != -1 {
			insertPos := idx + closeIdx + 1
			return htmlContent[:insertPos] + styleBlock + htmlContent[insertPos:]
		}
	}
	return styleBlock + htmlContent
}

// ExecRunner implements CommandRunner using os/exec. Cancellation kills
// the whole process group, reaping any filters the converter spawned.
type ExecRunner struct{}

// Run executes the command and captures both output streams.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	process.SetGroup(cmd)
	cmd.Cancel = func() error {
		if cmd.Process != nil {
			process.KillGroup(cmd.Process.Pid)
		}
		return nil
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return "", "", ctxErr
	}
	return stdout.String(), stderr.String(), err
}
