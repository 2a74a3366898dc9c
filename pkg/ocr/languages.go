package ocr

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

// DefaultLanguage is the language selected when nothing is configured.
const DefaultLanguage = "eng"

//go:embed languages.yaml
var languagesYAML []byte

// Language pairs a Tesseract traineddata code with a display name.
type Language struct {
	Code string `yaml:"code"`
	Name string `yaml:"name"`
}

type languageCatalog struct {
	Languages []Language `yaml:"languages"`
}

var catalog languageCatalog

func init() {
	if err := yaml.Unmarshal(languagesYAML, &catalog); err != nil {
		panic(fmt.Sprintf("ocr: invalid embedded language catalog: %v", err))
	}
	if !KnownLanguage(DefaultLanguage) {
		panic("ocr: default language missing from catalog")
	}
}

// Languages returns the fixed catalog in selector order.
func Languages() []Language {
	out := make([]Language, len(catalog.Languages))
	copy(out, catalog.Languages)
	return out
}

// LanguageCodes returns just the codes, in selector order.
func LanguageCodes() []string {
	codes := make([]string, len(catalog.Languages))
	for i, l := range catalog.Languages {
		codes[i] = l.Code
	}
	return codes
}

// KnownLanguage reports whether code is part of the catalog.
func KnownLanguage(code string) bool {
	for _, l := range catalog.Languages {
		if l.Code == code {
			return true
		}
	}
	return false
}
