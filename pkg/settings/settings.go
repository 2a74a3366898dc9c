// Package settings persists the application state between sessions as a
// single JSON snapshot. The whole record is rewritten on every save; there
// is no partial update and no versioning.
package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/active-idle/ocrdesk/pkg/ocr"
)

// FileName is the hidden settings file, named after the program.
const FileName = ".ocrdesk.json"

// Record mirrors the on-disk JSON schema: the full OCR option state plus the
// two interface toggles.
type Record struct {
	InputFile        string `json:"input_file"`
	OutputFile       string `json:"output_file"`
	Deskew           bool   `json:"deskew"`
	RotatePages      bool   `json:"rotate_pages"`
	ForceOCR         bool   `json:"force_ocr"`
	SkipText         bool   `json:"skip_text"`
	RemoveBackground bool   `json:"remove_background"`
	CleanFinal       bool   `json:"clean_final"`
	Language         string `json:"language"`
	OpenOutput       bool   `json:"open_output"`
	SaveSettings     bool   `json:"save_settings"`
}

// Default returns the documented defaults: every toggle off, empty paths,
// language "eng".
func Default() Record {
	return Record{Language: ocr.DefaultLanguage}
}

// Options converts the record's flag state to an OCR option set.
func (r Record) Options() ocr.Options {
	return ocr.Options{
		Deskew:           r.Deskew,
		RotatePages:      r.RotatePages,
		ForceOCR:         r.ForceOCR,
		SkipText:         r.SkipText,
		RemoveBackground: r.RemoveBackground,
		CleanFinal:       r.CleanFinal,
		Language:         r.Language,
	}
}

// Load reads the record at path. A missing file is not an error: the
// defaults are returned. A file that cannot be read or parsed yields the
// defaults plus the error, so the caller decides how loudly to complain.
func Load(path string) (Record, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Default(), fmt.Errorf("read settings %s: %w", path, err)
	}

	// Fields absent from the file keep their default values.
	rec := Default()
	if err := json.Unmarshal(data, &rec); err != nil {
		return Default(), fmt.Errorf("parse settings %s: %w", path, err)
	}
	return rec, nil
}

// Save serializes the full record to path, overwriting previous content.
func Save(path string, rec Record) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write settings %s: %w", path, err)
	}
	return nil
}

// DefaultPath places the settings file in the user's home directory,
// falling back to the working directory when the home directory is unknown.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return FileName
	}
	return filepath.Join(home, FileName)
}
