package pdfinfo

import (
	"os"
	"path/filepath"
	"testing"

	"codeberg.org/go-pdf/fpdf"
)

// samplePDF builds a real PDF fixture with the given number of pages.
func samplePDF(t *testing.T, pages int) string {
	t.Helper()
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetFont("Helvetica", "", 12)
	for i := 0; i < pages; i++ {
		doc.AddPage()
		doc.Cell(40, 10, "scanned page")
	}
	path := filepath.Join(t.TempDir(), "sample.pdf")
	if err := doc.OutputFileAndClose(path); err != nil {
		t.Fatalf("build fixture: %v", err)
	}
	return path
}

func TestInspectCountsPages(t *testing.T) {
	info, err := Inspect(samplePDF(t, 3))
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if info.Pages != 3 {
		t.Fatalf("pages = %d, want 3", info.Pages)
	}
}

func TestInspectSinglePage(t *testing.T) {
	info, err := Inspect(samplePDF(t, 1))
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if info.Pages != 1 {
		t.Fatalf("pages = %d, want 1", info.Pages)
	}
}

func TestInspectRejectsNonPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fake.pdf")
	if err := os.WriteFile(path, []byte("this is not a pdf"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := Inspect(path); err == nil {
		t.Fatal("expected an error for a non-PDF file")
	}
}

func TestInspectMissingFile(t *testing.T) {
	if _, err := Inspect(filepath.Join(t.TempDir(), "absent.pdf")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
