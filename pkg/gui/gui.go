// Package gui builds the Fyne window for ocrdesk and binds it to the
// interaction controller. It implements app.View; every piece of behavior
// lives in the controller, so this package is layout and event plumbing
// only.
package gui

import (
	"context"
	"net/url"
	"path/filepath"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/active-idle/ocrdesk/pkg/app"
	"github.com/active-idle/ocrdesk/pkg/ocr"
	"github.com/active-idle/ocrdesk/pkg/settings"
)

const windowTitle = "ocrdesk"

// UI owns the Fyne application, window and widgets.
type UI struct {
	fyneApp fyne.App
	window  fyne.Window

	inputEntry  *widget.Entry
	outputEntry *widget.Entry

	deskewCheck     *widget.Check
	rotateCheck     *widget.Check
	forceOCRCheck   *widget.Check
	skipTextCheck   *widget.Check
	removeBGCheck   *widget.Check
	cleanFinalCheck *widget.Check
	openOutputCheck *widget.Check
	saveCheck       *widget.Check
	languageSelect  *widget.Select

	ocrButton *widget.Button
	busyBar   *widget.ProgressBarInfinite

	logText   *widget.RichText
	logScroll *container.Scroll

	controller *app.Controller
}

// New creates the application window and all widgets. Bind must be called
// before Run.
func New() *UI {
	a := fyneapp.NewWithID("com.active-idle.ocrdesk")
	ui := &UI{
		fyneApp: a,
		window:  a.NewWindow(windowTitle),
	}
	ui.buildWidgets()
	ui.window.SetContent(ui.buildLayout())
	ui.window.Resize(fyne.NewSize(620, 520))
	return ui
}

// App exposes the Fyne application, e.g. for OpenURL.
func (ui *UI) App() fyne.App { return ui.fyneApp }

func (ui *UI) buildWidgets() {
	ui.inputEntry = widget.NewEntry()
	ui.outputEntry = widget.NewEntry()

	ui.deskewCheck = widget.NewCheck("Deskew pages", nil)
	ui.rotateCheck = widget.NewCheck("Rotate pages", nil)
	ui.forceOCRCheck = widget.NewCheck("Force OCR", nil)
	ui.skipTextCheck = widget.NewCheck("Skip text", nil)
	ui.removeBGCheck = widget.NewCheck("Remove background", nil)
	ui.cleanFinalCheck = widget.NewCheck("Clean final", nil)
	ui.openOutputCheck = widget.NewCheck("Open output file", nil)
	ui.saveCheck = widget.NewCheck("Save settings", nil)
	ui.languageSelect = widget.NewSelect(ocr.LanguageCodes(), nil)

	ui.ocrButton = widget.NewButton("Perform OCR", func() {
		ui.controller.Perform(context.Background())
	})

	ui.busyBar = widget.NewProgressBarInfinite()
	ui.busyBar.Stop()
	ui.busyBar.Hide()

	ui.logText = widget.NewRichText()
	ui.logText.Wrapping = fyne.TextWrapWord
	ui.logScroll = container.NewVScroll(ui.logText)
}

func (ui *UI) buildLayout() fyne.CanvasObject {
	inputBrowse := widget.NewButton("Browse", ui.browseInput)
	outputBrowse := widget.NewButton("Browse", ui.browseOutput)

	fileCard := widget.NewCard("File Selection", "", container.NewVBox(
		container.NewBorder(nil, nil, widget.NewLabel("Input PDF File:"), inputBrowse, ui.inputEntry),
		container.NewBorder(nil, nil, widget.NewLabel("Output PDF File:"), outputBrowse, ui.outputEntry),
	))

	optionsCard := widget.NewCard("Options", "", container.NewVBox(
		container.NewGridWithColumns(2,
			ui.deskewCheck, ui.openOutputCheck,
			ui.forceOCRCheck, ui.cleanFinalCheck,
			ui.removeBGCheck, ui.saveCheck,
			ui.rotateCheck, ui.skipTextCheck,
		),
		container.NewBorder(nil, nil, widget.NewLabel("Language:"), nil, ui.languageSelect),
	))

	helpButton := widget.NewButton("Help", func() { ui.controller.Help() })
	aboutButton := widget.NewButton("About", ui.showAbout)
	buttons := container.NewGridWithColumns(3, ui.ocrButton, helpButton, aboutButton)

	top := container.NewVBox(
		fileCard,
		optionsCard,
		buttons,
		ui.busyBar,
		widget.NewLabel("Messages:"),
	)
	return container.NewBorder(top, nil, nil, nil, ui.logScroll)
}

// Bind attaches the controller and wires window-level events.
func (ui *UI) Bind(c *app.Controller) {
	ui.controller = c

	ui.window.SetOnDropped(func(_ fyne.Position, uris []fyne.URI) {
		paths := make([]string, 0, len(uris))
		for _, u := range uris {
			paths = append(paths, u.Path())
		}
		c.DropPaths(paths)
	})

	ui.window.SetCloseIntercept(func() {
		c.Shutdown()
		ui.window.Close()
	})

	ui.window.Canvas().AddShortcut(
		&desktop.CustomShortcut{KeyName: fyne.KeyO, Modifier: fyne.KeyModifierControl},
		func(fyne.Shortcut) { c.Perform(context.Background()) },
	)
}

// Run shows the window and enters the event loop.
func (ui *UI) Run() {
	ui.window.ShowAndRun()
}

func (ui *UI) browseInput() {
	d := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil || rc == nil {
			return
		}
		defer rc.Close()
		ui.controller.SelectInput(rc.URI().Path())
	}, ui.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".pdf"}))
	d.Show()
}

func (ui *UI) browseOutput() {
	d := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil || wc == nil {
			return
		}
		defer wc.Close()
		ui.controller.SelectOutput(wc.URI().Path())
	}, ui.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".pdf"}))
	if ui.outputEntry.Text != "" {
		d.SetFileName(filepath.Base(ui.outputEntry.Text))
	}
	d.Show()
}

func (ui *UI) showAbout() {
	projectURL, _ := url.Parse(app.ProjectURL)
	dialog.ShowCustom("About "+windowTitle, "Close", container.NewVBox(
		widget.NewLabel("Version: "+app.Version),
		widget.NewHyperlink(app.ProjectURL, projectURL),
	), ui.window)
}

// SetInputPath implements app.View.
func (ui *UI) SetInputPath(path string) { ui.inputEntry.SetText(path) }

// SetOutputPath implements app.View.
func (ui *UI) SetOutputPath(path string) { ui.outputEntry.SetText(path) }

// ApplyRecord implements app.View.
func (ui *UI) ApplyRecord(rec settings.Record) {
	ui.inputEntry.SetText(rec.InputFile)
	ui.outputEntry.SetText(rec.OutputFile)
	ui.deskewCheck.SetChecked(rec.Deskew)
	ui.rotateCheck.SetChecked(rec.RotatePages)
	ui.forceOCRCheck.SetChecked(rec.ForceOCR)
	ui.skipTextCheck.SetChecked(rec.SkipText)
	ui.removeBGCheck.SetChecked(rec.RemoveBackground)
	ui.cleanFinalCheck.SetChecked(rec.CleanFinal)
	ui.openOutputCheck.SetChecked(rec.OpenOutput)
	ui.saveCheck.SetChecked(rec.SaveSettings)
	ui.languageSelect.SetSelected(rec.Language)
}

// Record implements app.View.
func (ui *UI) Record() settings.Record {
	return settings.Record{
		InputFile:        ui.inputEntry.Text,
		OutputFile:       ui.outputEntry.Text,
		Deskew:           ui.deskewCheck.Checked,
		RotatePages:      ui.rotateCheck.Checked,
		ForceOCR:         ui.forceOCRCheck.Checked,
		SkipText:         ui.skipTextCheck.Checked,
		RemoveBackground: ui.removeBGCheck.Checked,
		CleanFinal:       ui.cleanFinalCheck.Checked,
		Language:         ui.languageSelect.Selected,
		OpenOutput:       ui.openOutputCheck.Checked,
		SaveSettings:     ui.saveCheck.Checked,
	}
}

// SetBusy implements app.View: the perform button doubles as the in-flight
// indicator together with the infinite progress bar.
func (ui *UI) SetBusy(busy bool) {
	if busy {
		ui.ocrButton.Disable()
		ui.busyBar.Show()
		ui.busyBar.Start()
		return
	}
	ui.busyBar.Stop()
	ui.busyBar.Hide()
	ui.ocrButton.Enable()
}

// AppendMessage implements app.View.
func (ui *UI) AppendMessage(msg string) { ui.appendLog(msg, false) }

// AppendError implements app.View.
func (ui *UI) AppendError(msg string) { ui.appendLog(msg, true) }

func (ui *UI) appendLog(msg string, isError bool) {
	style := widget.RichTextStyleParagraph
	if isError {
		style.ColorName = theme.ColorNameError
	}
	ui.logText.Segments = append(ui.logText.Segments, &widget.TextSegment{
		Text:  msg,
		Style: style,
	})
	ui.logText.Refresh()
	ui.logScroll.ScrollToBottom()
}
