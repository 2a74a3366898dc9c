package ocr

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ErrBusy is returned by Start while a previous invocation is still running.
var ErrBusy = errors.New("an OCR invocation is already in flight")

// completionNotice is appended to the diagnostics of a successful run.
const completionNotice = "OCR process completed successfully!"

// Runner executes OCR requests one at a time on a background goroutine.
//
// Each run owns a freshly allocated diagnostics buffer, so output from one
// invocation can never appear in the next. At most one invocation may be in
// flight per Runner; Start reports ErrBusy for the duration. There is no
// cancellation and no timeout: the external call's own duration governs.
type Runner struct {
	engine   Engine
	log      logrus.FieldLogger
	inFlight atomic.Bool
}

// NewRunner wraps an engine. A nil logger disables run logging.
func NewRunner(engine Engine, log logrus.FieldLogger) *Runner {
	if log == nil {
		silent := logrus.New()
		silent.SetOutput(io.Discard)
		log = silent
	}
	return &Runner{engine: engine, log: log}
}

// Busy reports whether an invocation is currently in flight.
func (r *Runner) Busy() bool { return r.inFlight.Load() }

// Start validates the request and dispatches it on a background goroutine.
// The returned channel delivers exactly one Result; it is buffered, so the
// run completes even if nobody ever receives from it.
func (r *Runner) Start(ctx context.Context, req Request) (<-chan Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if !r.inFlight.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}

	runID := uuid.NewString()
	log := r.log.WithFields(logrus.Fields{"run": runID, "engine": r.engine.Name()})
	log.WithFields(logrus.Fields{
		"input":  req.InputPath,
		"output": req.OutputPath,
	}).Info("dispatching OCR run")

	done := make(chan Result, 1)
	go func() {
		start := time.Now()
		diag := &bytes.Buffer{}
		err := r.engine.Run(ctx, req, diag)

		res := Result{RunID: runID, Duration: time.Since(start)}
		if err != nil {
			res.Diagnostics = err.Error() + strings.TrimRight(diag.String(), "\n")
			log.WithError(err).Warn("OCR run failed")
		} else {
			res.Success = true
			res.Diagnostics = successDiagnostics(diag.String())
			log.WithField("duration", res.Duration.String()).Info("OCR run finished")
		}
		// Clear the guard before delivering, so a receiver observing the
		// result can immediately start the next run.
		r.inFlight.Store(false)
		done <- res
	}()
	return done, nil
}

// successDiagnostics keeps the captured output whitespace-intact and appends
// the completion notice on its own line.
func successDiagnostics(captured string) string {
	if captured == "" {
		return completionNotice
	}
	if !strings.HasSuffix(captured, "\n") {
		captured += "\n"
	}
	return captured + completionNotice
}
