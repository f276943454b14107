package assets

import (
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
	"github.com/pemistahl/lingua-go"
	"github.com/russross/blackfriday/v2"
)

// TextStats summarizes an extracted markdown file.
type TextStats struct {
	Lines      int    `json:"lines"`
	Words      int    `json:"words"`
	Characters int    `json:"characters"`
	Language   string `json:"language,omitempty"`
	// LanguageCode is the ISO 639-1 code of Language.
	LanguageCode string `json:"language_code,omitempty"`
}

// Languages the detector chooses from; the benchmark corpus is European.
var Languages = []lingua.Language{
	lingua.English,
	lingua.French,
	lingua.German,
	lingua.Spanish,
	lingua.Italian,
	lingua.Portuguese,
}

var (
	detectorOnce sync.Once
	detector     lingua.LanguageDetector
)

func languageDetector() lingua.LanguageDetector {
	detectorOnce.Do(func() {
		detector = lingua.NewLanguageDetectorBuilder().
			FromLanguages(Languages...).
			Build()
	})
	return detector
}

// Stats counts lines (newline-separated segments), whitespace-separated
// words and characters, and detects the dominant language.
func Stats(text string) TextStats {
	st := TextStats{
		Lines:      strings.Count(text, "\n") + 1,
		Words:      len(strings.Fields(text)),
		Characters: utf8.RuneCountInString(text),
	}
	if st.Words == 0 {
		return st
	}
	if lang, ok := languageDetector().DetectLanguageOf(text); ok {
		st.Language = lang.String()
		st.LanguageCode = strings.ToLower(lang.IsoCode639_1().String())
	}
	return st
}

var htmlPolicy = bluemonday.UGCPolicy()

// RenderHTML renders markdown to HTML and strips anything unsafe, including
// raw HTML the extraction tools copied from the source PDF.
func RenderHTML(markdown string) string {
	unsafe := blackfriday.Run([]byte(markdown))
	return string(htmlPolicy.SanitizeBytes(unsafe))
}
