//go:build tesseract

// Package langscan discovers which Tesseract language packs are installed,
// so the interface can flag catalog languages with missing traineddata.
//
// This implementation queries Tesseract through gosseract and requires the
// Tesseract development libraries at build time. Build with:
//
//	go build -tags tesseract
//
// Without the tag the stub implementation reports discovery as disabled.
package langscan

import "github.com/otiai10/gosseract/v2"

// Enabled reports whether language discovery was compiled in.
func Enabled() bool { return true }

// Installed returns the Tesseract traineddata codes available on this
// system, as reported by the Tesseract runtime.
func Installed() ([]string, error) {
	return gosseract.GetAvailableLanguages()
}
