// Package app implements the interaction controller that sits between the
// presentation layer and the OCR runner. The controller owns every
// user-visible state transition, so the window code stays a thin shell and
// the whole flow can be exercised without a display.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/active-idle/ocrdesk/pkg/langscan"
	"github.com/active-idle/ocrdesk/pkg/ocr"
	"github.com/active-idle/ocrdesk/pkg/opener"
	"github.com/active-idle/ocrdesk/pkg/pdfinfo"
	"github.com/active-idle/ocrdesk/pkg/settings"
)

// Application metadata shown in the About dialog.
const (
	Version    = "1.0.0"
	ProjectURL = "https://github.com/active-idle/ocrdesk"
)

// HelpURL is opened in the browser by the help action.
const HelpURL = "https://ocrmypdf.readthedocs.io/en/latest/"

// OutputSuffix is appended to the input base name when deriving the default
// output path.
const OutputSuffix = "_OCRed"

// View is the surface the controller needs from the presentation layer.
// Every call happens on the interactive thread.
type View interface {
	SetInputPath(path string)
	SetOutputPath(path string)
	// ApplyRecord pushes a full settings record into the form.
	ApplyRecord(rec settings.Record)
	// Record snapshots the current form state.
	Record() settings.Record
	SetBusy(busy bool)
	AppendMessage(msg string)
	AppendError(msg string)
}

// Config wires the controller's collaborators. View and Runner are
// required; the remaining fields default to the production implementations.
type Config struct {
	View         View
	Runner       *ocr.Runner
	SettingsPath string

	// Dispatch marshals completion work onto the interactive thread. Nil
	// runs the work inline.
	Dispatch func(func())
	// OpenFile opens a file with the platform's default handler.
	OpenFile func(path string) error
	// OpenURL opens a URL in the external browser.
	OpenURL func(rawURL string) error
	// Inspect reads basic facts about an input PDF.
	Inspect func(path string) (pdfinfo.Info, error)

	Logger logrus.FieldLogger
}

// Controller drives one OCR session. Nothing survives an invocation except
// the running message log and the "OCR performed" flag.
type Controller struct {
	view         View
	runner       *ocr.Runner
	settingsPath string
	dispatch     func(func())
	openFile     func(string) error
	openURL      func(string) error
	inspect      func(string) (pdfinfo.Info, error)
	log          logrus.FieldLogger

	ocrPerformed bool
}

// New builds a controller from cfg, filling in defaults for the optional
// collaborators.
func New(cfg Config) *Controller {
	c := &Controller{
		view:         cfg.View,
		runner:       cfg.Runner,
		settingsPath: cfg.SettingsPath,
		dispatch:     cfg.Dispatch,
		openFile:     cfg.OpenFile,
		openURL:      cfg.OpenURL,
		inspect:      cfg.Inspect,
		log:          cfg.Logger,
	}
	if c.settingsPath == "" {
		c.settingsPath = settings.DefaultPath()
	}
	if c.dispatch == nil {
		c.dispatch = func(f func()) { f() }
	}
	if c.openFile == nil {
		c.openFile = opener.Open
	}
	if c.openURL == nil {
		c.openURL = opener.Open
	}
	if c.inspect == nil {
		c.inspect = pdfinfo.Inspect
	}
	if c.log == nil {
		silent := logrus.New()
		silent.SetOutput(io.Discard)
		c.log = silent
	}
	return c
}

// Startup loads persisted settings into the form and writes the greeting.
// A malformed settings file is reported and replaced by defaults; it never
// blocks startup.
func (c *Controller) Startup() {
	rec, err := settings.Load(c.settingsPath)
	if err != nil {
		c.log.WithError(err).Warn("settings load failed, using defaults")
		c.view.AppendError(fmt.Sprintf("Could not load settings, using defaults: %v", err))
	} else if _, statErr := os.Stat(c.settingsPath); statErr == nil {
		c.view.AppendMessage("Settings loaded.")
	}
	c.view.ApplyRecord(rec)
	c.view.AppendMessage("Please load an input file.")
	c.reportMissingLanguages()
}

// reportMissingLanguages flags catalog languages without installed
// traineddata. Discovery is optional; see pkg/langscan.
func (c *Controller) reportMissingLanguages() {
	if !langscan.Enabled() {
		return
	}
	installed, err := langscan.Installed()
	if err != nil {
		c.log.WithError(err).Warn("language discovery failed")
		return
	}
	have := make(map[string]bool, len(installed))
	for _, code := range installed {
		have[code] = true
	}
	var missing []string
	for _, l := range ocr.Languages() {
		if !have[l.Code] {
			missing = append(missing, l.Code)
		}
	}
	if len(missing) > 0 {
		c.view.AppendMessage("Language packs not installed: " + strings.Join(missing, ", "))
	}
}

// SelectInput records a browsed input file, derives the default output path
// and runs the preflight. Non-PDF paths never reach the input field.
func (c *Controller) SelectInput(path string) {
	if path == "" {
		return
	}
	if !isPDFPath(path) {
		c.view.AppendError("Not a PDF file: " + path)
		return
	}
	c.view.SetInputPath(path)
	c.view.AppendMessage("Selected input file: " + path)
	c.applyDefaultOutput(path)
	c.preflight(path)
}

// SelectOutput records a browsed output file.
func (c *Controller) SelectOutput(path string) {
	if path == "" {
		return
	}
	c.view.SetOutputPath(path)
	c.view.AppendMessage("Selected output file: " + path)
}

// DropPaths handles files dropped onto the window. The first PDF wins;
// everything else in the drop is ignored.
func (c *Controller) DropPaths(paths []string) {
	for _, p := range paths {
		if !isPDFPath(p) {
			continue
		}
		c.view.SetInputPath(p)
		c.view.AppendMessage("Dragged and dropped input file: " + p)
		c.applyDefaultOutput(p)
		c.preflight(p)
		return
	}
}

func (c *Controller) applyDefaultOutput(inputPath string) {
	out := DeriveOutputPath(inputPath)
	c.view.SetOutputPath(out)
	c.view.AppendMessage("Default output file set to: " + out)
}

func (c *Controller) preflight(path string) {
	info, err := c.inspect(path)
	if err != nil {
		c.log.WithError(err).Warn("input preflight failed")
		c.view.AppendError(fmt.Sprintf("Warning: could not inspect PDF: %v", err))
		return
	}
	c.view.AppendMessage(fmt.Sprintf("Input PDF has %d page(s).", info.Pages))
}

// Perform dispatches an OCR run for the current form state. The interactive
// thread never blocks: completion is delivered asynchronously and marshalled
// back through the dispatch function.
func (c *Controller) Perform(ctx context.Context) {
	rec := c.view.Record()
	if rec.InputFile == "" || rec.OutputFile == "" {
		c.view.AppendError("Please select both input and output files.")
		return
	}

	req := ocr.Request{
		InputPath:  rec.InputFile,
		OutputPath: rec.OutputFile,
		Options:    rec.Options(),
	}
	done, err := c.runner.Start(ctx, req)
	if err != nil {
		if errors.Is(err, ocr.ErrBusy) {
			c.view.AppendError("An OCR run is already in progress.")
		} else {
			c.view.AppendError("Cannot start OCR: " + err.Error())
		}
		return
	}

	c.view.SetBusy(true)
	go func() {
		res := <-done
		c.dispatch(func() { c.finish(res) })
	}()
}

// finish runs on the interactive thread after a run completes, success or
// failure.
func (c *Controller) finish(res ocr.Result) {
	c.view.SetBusy(false)

	rec := c.view.Record()
	if res.Success {
		c.view.AppendMessage(res.Diagnostics)
		if rec.OpenOutput {
			if err := c.openFile(rec.OutputFile); err != nil {
				c.view.AppendError(fmt.Sprintf("Could not open output file: %v", err))
			}
		}
		c.ocrPerformed = true
	} else {
		c.view.AppendError("Error during OCR process: " + res.Diagnostics)
	}

	if rec.SaveSettings {
		c.saveSettings(rec)
	}
}

// Help opens the external tool's documentation in the browser.
func (c *Controller) Help() {
	if err := c.openURL(HelpURL); err != nil {
		c.view.AppendError(fmt.Sprintf("Could not open documentation: %v", err))
		return
	}
	c.view.AppendMessage("Opened OCRmyPDF documentation in the web browser.")
}

// Shutdown persists the form state when the save-settings toggle is on.
func (c *Controller) Shutdown() {
	rec := c.view.Record()
	if rec.SaveSettings {
		c.saveSettings(rec)
	}
}

func (c *Controller) saveSettings(rec settings.Record) {
	if err := settings.Save(c.settingsPath, rec); err != nil {
		c.log.WithError(err).Error("settings save failed")
		c.view.AppendError(fmt.Sprintf("Could not save settings: %v", err))
		return
	}
	c.view.AppendMessage("Settings saved.")
}

// OCRPerformed reports whether a run succeeded during this session.
func (c *Controller) OCRPerformed() bool { return c.ocrPerformed }

// DeriveOutputPath returns the default output path for an input PDF: same
// directory, base name suffixed with OutputSuffix, .pdf extension.
func DeriveOutputPath(inputPath string) string {
	dir := filepath.Dir(inputPath)
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	return filepath.Join(dir, base+OutputSuffix+".pdf")
}

func isPDFPath(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".pdf")
}
