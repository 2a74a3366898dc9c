// ocrdesk is a desktop front-end for performing OCR on PDF files with the
// external ocrmypdf command-line tool.
//
// The window lets the user pick input and output PDFs (browse or
// drag-and-drop), configure OCR options (deskew, page rotation, language,
// and so on), run ocrmypdf in the background and follow the tool's
// diagnostic output in the message log. Settings can be persisted between
// sessions in ~/.ocrdesk.json.
//
// External tools:
//
//	ocrmypdf     OCR orchestration (pip install ocrmypdf)
//	tesseract    OCR engine (apt-get install tesseract-ocr)
//	ghostscript  PDF processing (apt-get install ghostscript)
//	unpaper      Page cleanup (apt-get install unpaper)
//
// The application takes no command-line flags; all interaction happens in
// the window.
package main

import (
	"context"
	"net/url"

	"fyne.io/fyne/v2"
	"github.com/sirupsen/logrus"

	"github.com/active-idle/ocrdesk/pkg/app"
	"github.com/active-idle/ocrdesk/pkg/gui"
	"github.com/active-idle/ocrdesk/pkg/ocr"
	"github.com/active-idle/ocrdesk/pkg/ocrmypdf"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	engine := ocrmypdf.New()
	if path, err := engine.LookPath(); err != nil {
		log.Warn("ocrmypdf not found on PATH; OCR runs will fail until it is installed")
	} else if version, verr := engine.Version(context.Background()); verr == nil {
		log.WithFields(logrus.Fields{"path": path, "version": version}).Info("found ocrmypdf")
	}

	ui := gui.New()
	controller := app.New(app.Config{
		View:     ui,
		Runner:   ocr.NewRunner(engine, log),
		Dispatch: func(f func()) { fyne.Do(f) },
		OpenURL: func(rawURL string) error {
			u, err := url.Parse(rawURL)
			if err != nil {
				return err
			}
			return ui.App().OpenURL(u)
		},
		Logger: log,
	})
	ui.Bind(controller)

	controller.Startup()
	ui.Run()
}
