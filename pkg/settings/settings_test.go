package settings

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	rec := Record{
		InputFile:        "/docs/scan.pdf",
		OutputFile:       "/docs/scan_OCRed.pdf",
		Deskew:           true,
		RotatePages:      true,
		ForceOCR:         true,
		SkipText:         true,
		RemoveBackground: true,
		CleanFinal:       true,
		Language:         "deu",
		OpenOutput:       true,
		SaveSettings:     true,
	}

	if err := Save(path, rec); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(got, rec) {
		t.Fatalf("round trip mismatch:\n got  %+v\n want %+v", got, rec)
	}
}

func TestSaveOverwritesWholeRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")

	first := Default()
	first.Deskew = true
	first.InputFile = "/old/input.pdf"
	if err := Save(path, first); err != nil {
		t.Fatalf("first Save: %v", err)
	}

	second := Default()
	second.Language = "jpn"
	if err := Save(path, second); err != nil {
		t.Fatalf("second Save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Deskew || got.InputFile != "" {
		t.Fatalf("previous record leaked through: %+v", got)
	}
	if got.Language != "jpn" {
		t.Fatalf("language = %q, want jpn", got.Language)
	}
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	got, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("missing file must not be an error, got %v", err)
	}
	if !reflect.DeepEqual(got, Default()) {
		t.Fatalf("got %+v, want defaults", got)
	}
}

func TestLoadMalformedFilePropagatesError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	got, err := Load(path)
	if err == nil {
		t.Fatal("expected a parse error")
	}
	if !reflect.DeepEqual(got, Default()) {
		t.Fatalf("malformed file must yield defaults, got %+v", got)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte(`{"deskew": true}`), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !got.Deskew {
		t.Fatal("deskew should be set from the file")
	}
	if got.Language != "eng" {
		t.Fatalf("language = %q, want default eng", got.Language)
	}
	if got.SaveSettings || got.OpenOutput {
		t.Fatal("absent toggles must stay off")
	}
}

func TestDefault(t *testing.T) {
	d := Default()
	if d.Language != "eng" {
		t.Fatalf("default language = %q, want eng", d.Language)
	}
	d.Language = ""
	if !reflect.DeepEqual(d, Record{}) {
		t.Fatalf("unexpected non-zero defaults: %+v", d)
	}
}

func TestRecordOptions(t *testing.T) {
	rec := Record{Deskew: true, SkipText: true, Language: "fra"}
	opts := rec.Options()
	if !opts.Deskew || !opts.SkipText {
		t.Fatal("boolean flags not mapped")
	}
	if opts.ForceOCR || opts.RotatePages || opts.RemoveBackground || opts.CleanFinal {
		t.Fatal("unset flags must stay off")
	}
	if opts.Language != "fra" {
		t.Fatalf("language = %q", opts.Language)
	}
}
