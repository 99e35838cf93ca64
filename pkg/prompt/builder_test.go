package prompt

import (
	"strings"
	"testing"

	"github.com/dtnitsch/clickbait-detector/models"
)

func TestBuildPrompt_HeaderLine(t *testing.T) {
	tests := []struct {
		name       string
		title      string
		header     string
		wantHeader bool
	}{
		{name: "header differs from title", title: "Szok! Zobacz", header: "Ceny paliw spadły o 2%", wantHeader: true},
		{name: "header equals title", title: "Ten sam tytuł", header: "Ten sam tytuł", wantHeader: false},
		{name: "header empty", title: "Tytuł", header: "", wantHeader: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildPrompt(models.ExtractedContent{Title: tt.title, Header: tt.header, Content: "treść"})

			if !strings.Contains(got, `"`+tt.title+`"`) {
				t.Errorf("prompt does not contain the quoted title %q", tt.title)
			}
			if has := strings.Contains(got, "NAGŁÓWEK:"); has != tt.wantHeader {
				t.Errorf("header line present = %v, want %v", has, tt.wantHeader)
			}
		})
	}
}

func TestBuildPrompt_OptionalFields(t *testing.T) {
	bare := BuildPrompt(models.ExtractedContent{Title: "T"})
	if strings.Contains(bare, "AUTOR:") || strings.Contains(bare, "OPIS:") {
		t.Error("author/description lines must be omitted when empty")
	}

	full := BuildPrompt(models.ExtractedContent{Title: "T", Author: "Jan", Description: "Opis artykułu"})
	if !strings.Contains(full, "AUTOR: Jan\n") {
		t.Error("author line missing")
	}
	if !strings.Contains(full, `OPIS: "Opis artykułu"`) {
		t.Error("description line missing")
	}
}

func TestBuildPrompt_ResponseFormat(t *testing.T) {
	got := BuildPrompt(models.ExtractedContent{Title: "T", Content: "body text"})

	for _, line := range []string{
		"CLICKBAIT: [TAK/NIE]\n",
		"UZASADNIENIE: [krótkie uzasadnienie w 1-2 zdaniach]\n",
		"LEPSZY TYTUŁ: [jeśli clickbait - zaproponuj lepszy, rzetelny tytuł]\n",
		"TREŚĆ ARTYKUŁU:\nbody text\n",
	} {
		if !strings.Contains(got, line) {
			t.Errorf("prompt missing %q", line)
		}
	}
	if !strings.HasSuffix(got, "Odpowiadaj po polsku i bądź zwięzły.") {
		t.Error("default prompt should ask for a Polish answer")
	}
}

func TestBuildPrompt_Deterministic(t *testing.T) {
	c := models.ExtractedContent{Title: "T", Header: "H", Content: "C", Author: "A"}
	if BuildPrompt(c) != BuildPrompt(c) {
		t.Error("BuildPrompt is not deterministic")
	}
}

func TestBuild_Options(t *testing.T) {
	c := models.ExtractedContent{Title: "T", Content: "C"}

	custom := Build(c, Options{CustomPrompt: "  Zwróć uwagę na liczby.  "})
	if !strings.Contains(custom, "DODATKOWE INSTRUKCJE:\nZwróć uwagę na liczby.\n") {
		t.Error("custom instructions missing or not trimmed")
	}
	if strings.Index(custom, "DODATKOWE INSTRUKCJE") > strings.Index(custom, "Odpowiedz w formacie") {
		t.Error("custom instructions must come before the response format")
	}

	english := Build(c, Options{Language: "en"})
	if !strings.Contains(english, "Odpowiadaj w języku: English.") {
		t.Error("language instruction missing")
	}
	if !strings.Contains(english, "CLICKBAIT: [TAK/NIE]") {
		t.Error("labels must stay untranslated")
	}

	unknown := Build(c, Options{Language: "xx"})
	if !strings.Contains(unknown, "Odpowiadaj w języku: xx.") {
		t.Error("unknown codes are passed through verbatim")
	}

	if Build(c, Options{Language: "auto"}) != BuildPrompt(c) {
		t.Error("unresolved auto language falls back to Polish")
	}
}
