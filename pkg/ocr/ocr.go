// Package ocr provides the request/result model for running an external OCR
// tool against a PDF, plus the asynchronous runner that executes it.
//
// The tool itself is a black box behind the Engine interface: it receives an
// input path, an output path and an option set, writes the OCR'ed PDF as a
// side effect and reports its progress on a diagnostics stream. Nothing in
// this package inspects or rewrites PDF content.
//
// Main types:
//
// - Options: the named OCR flags offered to the user
// - Request: one immutable invocation of the external tool
// - Engine: the contract an external tool wrapper implements
// - Runner: dispatches a single engine call on a background goroutine
package ocr

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// Options holds the named flags passed to the external OCR tool.
type Options struct {
	Deskew           bool
	RotatePages      bool
	ForceOCR         bool
	SkipText         bool
	RemoveBackground bool
	CleanFinal       bool
	Language         string
}

// DefaultOptions returns an option set with every flag off and the default
// language selected.
func DefaultOptions() Options {
	return Options{Language: DefaultLanguage}
}

// Request describes a single OCR invocation. It is created fresh per run and
// must not be modified once handed to a Runner.
type Request struct {
	InputPath  string
	OutputPath string
	Options    Options
}

// Validate checks the request before dispatch: the input must be an existing
// .pdf file, the output path must be set and the language must come from the
// catalog.
func (r Request) Validate() error {
	if r.InputPath == "" {
		return fmt.Errorf("input path is empty")
	}
	if !strings.HasSuffix(strings.ToLower(r.InputPath), ".pdf") {
		return fmt.Errorf("input %q is not a PDF file", r.InputPath)
	}
	if _, err := os.Stat(r.InputPath); err != nil {
		return fmt.Errorf("input file not accessible: %w", err)
	}
	if r.OutputPath == "" {
		return fmt.Errorf("output path is empty")
	}
	if r.Options.Language != "" && !KnownLanguage(r.Options.Language) {
		return fmt.Errorf("unknown language %q", r.Options.Language)
	}
	return nil
}

// Result reports the outcome of one invocation. It is produced once and not
// persisted anywhere.
type Result struct {
	RunID       string
	Success     bool
	Diagnostics string
	Duration    time.Duration
}

// Engine runs the external OCR call. Implementations write every piece of
// diagnostic output produced during the call to diag, whether or not the
// call succeeds, and write the output PDF as a side effect.
type Engine interface {
	Name() string
	Run(ctx context.Context, req Request, diag io.Writer) error
}

// EngineFunc adapts a plain function to the Engine interface.
type EngineFunc func(ctx context.Context, req Request, diag io.Writer) error

func (f EngineFunc) Name() string { return "func" }

func (f EngineFunc) Run(ctx context.Context, req Request, diag io.Writer) error {
	return f(ctx, req, diag)
}
