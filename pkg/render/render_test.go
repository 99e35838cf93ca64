package render

import (
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/dtnitsch/clickbait-detector/models"
)

func TestFormatVerdict(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     string
	}{
		{
			name:     "clickbait",
			response: "CLICKBAIT: TAK\nUZASADNIENIE: x",
			want:     "🚫 CLICKBAIT\nUZASADNIENIE: x",
		},
		{
			name:     "not clickbait",
			response: "CLICKBAIT: NIE\nUZASADNIENIE: y",
			want:     "✅ RZETELNY TYTUŁ\nUZASADNIENIE: y",
		},
		{
			name:     "only first occurrence replaced",
			response: "CLICKBAIT: TAK\nUZASADNIENIE: CLICKBAIT: TAK",
			want:     "🚫 CLICKBAIT\nUZASADNIENIE: CLICKBAIT: TAK",
		},
		{
			name:     "format not followed",
			response: "I think it is fine",
			want:     "I think it is fine",
		},
		{
			name:     "empty",
			response: "",
			want:     NoResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatVerdict(tt.response); got != tt.want {
				t.Errorf("FormatVerdict() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTooltip_Sanitizes(t *testing.T) {
	v := models.Verdict{
		Success:  true,
		Response: "CLICKBAIT: TAK<script>alert(1)</script> <b>bold</b> <img src=x onerror=alert(2)>",
	}

	got := Tooltip(v)
	if strings.Contains(got, "<script") || strings.Contains(got, "alert") || strings.Contains(got, "<img") {
		t.Errorf("Tooltip() kept unsafe markup: %q", got)
	}
	if !strings.Contains(got, "<b>bold</b>") {
		t.Errorf("Tooltip() dropped allowed markup: %q", got)
	}
	if !strings.HasPrefix(got, "🚫 CLICKBAIT") {
		t.Errorf("Tooltip() = %q, want verdict prefix", got)
	}
}

func TestTooltip_Error(t *testing.T) {
	got := Tooltip(models.NewErrorVerdict("fetch_error", "Nie można pobrać strony: 404"))
	if got != "❌ Błąd: Nie można pobrać strony: 404" {
		t.Errorf("Tooltip() = %q", got)
	}
}

func TestModeNotice(t *testing.T) {
	if ModeNotice(true) != "Tryb sprawdzania linków WŁĄCZONY" {
		t.Errorf("ModeNotice(true) = %q", ModeNotice(true))
	}
	if ModeNotice(false) != "Tryb sprawdzania linków WYŁĄCZONY" {
		t.Errorf("ModeNotice(false) = %q", ModeNotice(false))
	}
}

func TestTerminal(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name string
		v    models.Verdict
		want string
	}{
		{"clickbait", models.Verdict{Success: true, Response: "CLICKBAIT: TAK"}, "🚫 CLICKBAIT"},
		{"honest", models.Verdict{Success: true, Response: "CLICKBAIT: NIE"}, "✅ RZETELNY TYTUŁ"},
		{"error", models.NewErrorVerdict("api_error", "API Error: 500 - x"), "❌ Błąd: API Error: 500 - x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Terminal(tt.v); got != tt.want {
				t.Errorf("Terminal() = %q, want %q", got, tt.want)
			}
		})
	}
}
