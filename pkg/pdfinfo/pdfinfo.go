// Package pdfinfo peeks at an input PDF with a pure-Go reader to report
// basic facts before the external tool is invoked. It never modifies the
// file, and a failure here is informational only: the external tool remains
// the authority on what it can process.
package pdfinfo

import (
	"fmt"

	"github.com/ledongthuc/pdf"
)

// Info summarizes an input PDF.
type Info struct {
	Pages int
}

// Inspect opens the PDF at path and returns its page count. A file that
// does not parse as a PDF yields an error.
func Inspect(path string) (info Info, err error) {
	// The reader panics on some malformed files; surface that as an error.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("inspect %s: %v", path, r)
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return Info{}, fmt.Errorf("inspect %s: %w", path, err)
	}
	defer f.Close()

	return Info{Pages: reader.NumPage()}, nil
}
