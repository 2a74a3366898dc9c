// Package ocrmypdf invokes the external ocrmypdf command-line tool, which
// drives Tesseract for recognition, Ghostscript for PDF processing and
// unpaper for page cleanup. The tool reads the input PDF, writes the OCR'ed
// output PDF itself and reports its progress on stderr.
package ocrmypdf

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/active-idle/ocrdesk/pkg/ocr"
)

// DefaultBinary is the command resolved on PATH when none is configured.
const DefaultBinary = "ocrmypdf"

// Engine runs ocrmypdf as an ocr.Engine.
type Engine struct {
	// Binary overrides the executable to run. Empty means DefaultBinary.
	Binary string
}

// New returns an engine that resolves ocrmypdf on PATH.
func New() *Engine { return &Engine{} }

func (e *Engine) binary() string {
	if e.Binary != "" {
		return e.Binary
	}
	return DefaultBinary
}

// Name identifies the engine in logs.
func (e *Engine) Name() string { return "ocrmypdf" }

// LookPath resolves the ocrmypdf executable, reporting an error when the
// tool is not installed.
func (e *Engine) LookPath() (string, error) {
	return exec.LookPath(e.binary())
}

// Version returns the version string reported by ocrmypdf --version.
func (e *Engine) Version(ctx context.Context) (string, error) {
	out, err := exec.CommandContext(ctx, e.binary(), "--version").Output()
	if err != nil {
		return "", fmt.Errorf("ocrmypdf --version: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// Args maps a request to the ocrmypdf command line. The input and output
// paths always come last.
func Args(req ocr.Request) []string {
	opts := req.Options
	args := make([]string, 0, 10)
	if opts.Deskew {
		args = append(args, "--deskew")
	}
	if opts.RotatePages {
		args = append(args, "--rotate-pages")
	}
	if opts.ForceOCR {
		args = append(args, "--force-ocr")
	}
	if opts.SkipText {
		args = append(args, "--skip-text")
	}
	if opts.RemoveBackground {
		args = append(args, "--remove-background")
	}
	if opts.CleanFinal {
		args = append(args, "--clean-final")
	}
	if opts.Language != "" {
		args = append(args, "--language", opts.Language)
	}
	return append(args, req.InputPath, req.OutputPath)
}

// Run executes ocrmypdf for the given request. Everything the tool writes to
// its stderr diagnostic channel is streamed into diag while the tool runs,
// success or failure. The output PDF is written by the tool itself; Run does
// not validate it beyond the tool's exit status.
func (e *Engine) Run(ctx context.Context, req ocr.Request, diag io.Writer) error {
	bin, err := e.LookPath()
	if err != nil {
		return fmt.Errorf("ocrmypdf is not installed: %w", err)
	}

	cmd := exec.CommandContext(ctx, bin, Args(req)...)
	cmd.Stderr = diag

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ocrmypdf failed: %w", err)
	}
	return nil
}
