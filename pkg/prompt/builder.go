// Package prompt renders the instruction sent to the model for one page.
//
// The three answer lines requested here (CLICKBAIT, UZASADNIENIE,
// LEPSZY TYTUŁ) are parsed by pkg/render, so the labels must not change.
package prompt

import (
	"strings"

	"github.com/dtnitsch/clickbait-detector/models"
)

// Options tune the prompt without touching the response format.
type Options struct {
	// Language is an ISO-639-1 code for the answer language. Empty means Polish.
	Language string
	// CustomPrompt is appended as extra instructions when non-empty.
	CustomPrompt string
}

var languageNames = map[string]string{
	"pl": "polski",
	"en": "English",
	"de": "Deutsch",
	"fr": "français",
	"es": "español",
	"it": "italiano",
	"cs": "čeština",
	"sk": "slovenčina",
	"uk": "українська",
	"ru": "русский",
}

// LanguageName returns the display name used in the prompt for code.
func LanguageName(code string) (string, bool) {
	name, ok := languageNames[strings.ToLower(code)]
	return name, ok
}

// BuildPrompt renders the default (Polish) prompt for content.
func BuildPrompt(content models.ExtractedContent) string {
	return Build(content, Options{})
}

// Build renders the prompt for content with opts applied.
func Build(content models.ExtractedContent, opts Options) string {
	var b strings.Builder

	b.WriteString("Sprawdź, czy poniższy tytuł i nagłówek (jeśli występuje) odpowiada rzeczywistej treści artykułu, a artykuł rzetelnie opisuje wydarzenie, czy jest to clickbait.\n\n")

	b.WriteString(`TYTUŁ: "` + content.Title + "\"\n")
	if content.Header != "" && content.Header != content.Title {
		b.WriteString(`NAGŁÓWEK: "` + content.Header + "\"\n")
	}
	if content.Author != "" {
		b.WriteString("AUTOR: " + content.Author + "\n")
	}
	if content.Description != "" {
		b.WriteString(`OPIS: "` + content.Description + "\"\n")
	}

	b.WriteString("\nTREŚĆ ARTYKUŁU:\n")
	b.WriteString(content.Content)
	b.WriteString("\n\n")

	if custom := strings.TrimSpace(opts.CustomPrompt); custom != "" {
		b.WriteString("DODATKOWE INSTRUKCJE:\n")
		b.WriteString(custom)
		b.WriteString("\n\n")
	}

	b.WriteString("Odpowiedz w formacie:\n")
	b.WriteString("CLICKBAIT: [TAK/NIE]\n")
	b.WriteString("UZASADNIENIE: [krótkie uzasadnienie w 1-2 zdaniach]\n")
	b.WriteString("LEPSZY TYTUŁ: [jeśli clickbait - zaproponuj lepszy, rzetelny tytuł]\n\n")

	b.WriteString(languageInstruction(opts.Language))

	return b.String()
}

func languageInstruction(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" || code == "pl" || code == models.LanguageAuto {
		return "Odpowiadaj po polsku i bądź zwięzły."
	}

	name, ok := languageNames[code]
	if !ok {
		name = code
	}
	return "Odpowiadaj w języku: " + name + ". Etykiety CLICKBAIT, UZASADNIENIE i LEPSZY TYTUŁ oraz słowa TAK/NIE pozostaw bez tłumaczenia. Bądź zwięzły."
}
