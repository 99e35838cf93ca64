// Package language guesses the language of page content so the model can be
// asked to answer in it.
package language

import (
	"strings"
	"unicode/utf8"

	"github.com/pemistahl/lingua-go"
)

// minSampleChars is the shortest text worth detecting on.
const minSampleChars = 20

// sampleChars bounds how much text is fed to the detector.
const sampleChars = 2000

var supported = []lingua.Language{
	lingua.Polish,
	lingua.English,
	lingua.German,
	lingua.French,
	lingua.Spanish,
	lingua.Italian,
	lingua.Czech,
	lingua.Slovak,
	lingua.Ukrainian,
	lingua.Russian,
}

type Detector struct {
	detector lingua.LanguageDetector
}

// NewDetector builds a detector restricted to the languages the prompt
// builder can name.
func NewDetector() *Detector {
	return &Detector{
		detector: lingua.NewLanguageDetectorBuilder().
			FromLanguages(supported...).
			Build(),
	}
}

// Detect returns the lowercase ISO 639-1 code of text's language. ok is
// false when text is too short or the detector is not confident.
func (d *Detector) Detect(text string) (string, bool) {
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) < minSampleChars {
		return "", false
	}
	if utf8.RuneCountInString(text) > sampleChars {
		text = string([]rune(text)[:sampleChars])
	}

	lang, ok := d.detector.DetectLanguageOf(text)
	if !ok {
		return "", false
	}
	return strings.ToLower(lang.IsoCode639_1().String()), true
}
