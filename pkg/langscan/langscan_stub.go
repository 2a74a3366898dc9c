//go:build !tesseract

// Package langscan discovers which Tesseract language packs are installed,
// so the interface can flag catalog languages with missing traineddata.
//
// This is the stub used when the "tesseract" build tag is not set; it keeps
// the default build free of cgo. Rebuild with -tags tesseract to enable
// discovery.
package langscan

// Enabled reports whether language discovery was compiled in.
func Enabled() bool { return false }

// Installed reports no languages when discovery is not compiled in.
func Installed() ([]string, error) { return nil, nil }
