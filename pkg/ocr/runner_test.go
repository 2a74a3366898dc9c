package ocr

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func testRequest(t *testing.T) Request {
	t.Helper()
	return Request{
		InputPath:  writeTempPDF(t),
		OutputPath: filepath.Join(t.TempDir(), "out.pdf"),
		Options:    DefaultOptions(),
	}
}

func TestRunnerSuccessAppendsCompletionNotice(t *testing.T) {
	engine := EngineFunc(func(_ context.Context, _ Request, diag io.Writer) error {
		fmt.Fprintln(diag, "  scanning page 1")
		return nil
	})
	r := NewRunner(engine, nil)

	done, err := r.Start(context.Background(), testRequest(t))
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	res := <-done

	if !res.Success {
		t.Fatal("expected success")
	}
	want := "  scanning page 1\nOCR process completed successfully!"
	if res.Diagnostics != want {
		t.Fatalf("diagnostics = %q, want %q", res.Diagnostics, want)
	}
	if res.RunID == "" {
		t.Fatal("expected a run ID")
	}
}

func TestRunnerSuccessWithoutOutput(t *testing.T) {
	engine := EngineFunc(func(context.Context, Request, io.Writer) error { return nil })
	r := NewRunner(engine, nil)

	done, err := r.Start(context.Background(), testRequest(t))
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	res := <-done
	if res.Diagnostics != "OCR process completed successfully!" {
		t.Fatalf("diagnostics = %q", res.Diagnostics)
	}
}

func TestRunnerFailureKeepsPartialDiagnostics(t *testing.T) {
	engine := EngineFunc(func(_ context.Context, _ Request, diag io.Writer) error {
		fmt.Fprintln(diag, "page 1 ok")
		return errors.New("engine blew up")
	})
	r := NewRunner(engine, nil)

	done, err := r.Start(context.Background(), testRequest(t))
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	res := <-done

	if res.Success {
		t.Fatal("expected failure")
	}
	if res.Diagnostics != "engine blew uppage 1 ok" {
		t.Fatalf("diagnostics = %q", res.Diagnostics)
	}
}

func TestRunnerDiagnosticsDoNotLeakAcrossRuns(t *testing.T) {
	var calls atomic.Int32
	engine := EngineFunc(func(_ context.Context, _ Request, diag io.Writer) error {
		fmt.Fprintf(diag, "run-%d\n", calls.Add(1))
		return nil
	})
	r := NewRunner(engine, nil)

	done, err := r.Start(context.Background(), testRequest(t))
	if err != nil {
		t.Fatalf("first Start: %v", err)
	}
	first := <-done

	done, err = r.Start(context.Background(), testRequest(t))
	if err != nil {
		t.Fatalf("second Start: %v", err)
	}
	second := <-done

	if !strings.Contains(first.Diagnostics, "run-1") {
		t.Fatalf("first diagnostics = %q", first.Diagnostics)
	}
	if strings.Contains(second.Diagnostics, "run-1") {
		t.Fatalf("second run leaked first run's output: %q", second.Diagnostics)
	}
	if first.RunID == second.RunID {
		t.Fatal("expected distinct run IDs")
	}
}

func TestRunnerBusyGuard(t *testing.T) {
	block := make(chan struct{})
	engine := EngineFunc(func(context.Context, Request, io.Writer) error {
		<-block
		return nil
	})
	r := NewRunner(engine, nil)

	done, err := r.Start(context.Background(), testRequest(t))
	if err != nil {
		t.Fatalf("first Start: %v", err)
	}
	if !r.Busy() {
		t.Fatal("expected runner to be busy")
	}

	if _, err := r.Start(context.Background(), testRequest(t)); !errors.Is(err, ErrBusy) {
		t.Fatalf("second Start error = %v, want ErrBusy", err)
	}

	close(block)
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("run did not complete")
	}

	// The guard clears before the result is delivered, so the next run can
	// start immediately.
	if _, err := r.Start(context.Background(), testRequest(t)); err != nil {
		t.Fatalf("third Start after completion: %v", err)
	}
}

func TestRunnerValidatesBeforeDispatch(t *testing.T) {
	var calls atomic.Int32
	engine := EngineFunc(func(context.Context, Request, io.Writer) error {
		calls.Add(1)
		return nil
	})
	r := NewRunner(engine, nil)

	if _, err := r.Start(context.Background(), Request{}); err == nil {
		t.Fatal("expected validation error")
	}
	if r.Busy() {
		t.Fatal("runner must not be busy after a rejected request")
	}
	if calls.Load() != 0 {
		t.Fatal("engine must not run for an invalid request")
	}
}
