// Package render turns verdicts into the text shown to the user.
package render

import (
	"strings"

	"github.com/fatih/color"
	"github.com/microcosm-cc/bluemonday"

	"github.com/dtnitsch/clickbait-detector/models"
)

const (
	HoverHint       = "Wciśnij Alt+C aby sprawdzić ten link"
	Checking        = "🔄 Sprawdzanie..."
	EnableFirst     = "Włącz najpierw tryb sprawdzania (Alt+Shift+C)"
	HoverFirst      = "Najedź najpierw na link"
	NoResponse      = "Brak odpowiedzi z API"
	ModeEnabled     = "Tryb sprawdzania linków WŁĄCZONY"
	ModeDisabled    = "Tryb sprawdzania linków WYŁĄCZONY"
	clickbaitLabel  = "CLICKBAIT"
	trustworthyText = "RZETELNY TYTUŁ"
)

// tooltipPolicy keeps simple emphasis from model output and drops
// everything else, including script and style content.
var tooltipPolicy = func() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("b", "strong", "i", "em", "br")
	return p
}()

// FormatVerdict prefixes the model answer with an icon and replaces the
// first verdict label with its display form.
func FormatVerdict(response string) string {
	if response == "" {
		return NoResponse
	}

	switch {
	case strings.Contains(response, models.ClickbaitYes):
		return "🚫 " + strings.Replace(response, models.ClickbaitYes, clickbaitLabel, 1)
	case strings.Contains(response, models.ClickbaitNo):
		return "✅ " + strings.Replace(response, models.ClickbaitNo, trustworthyText, 1)
	}
	return response
}

// FormatError renders a failed check.
func FormatError(message string) string {
	return "❌ Błąd: " + message
}

// FormatNotice renders a rejection that is not a check failure, such as an
// unsupported link.
func FormatNotice(message string) string {
	return "❌ " + message
}

// Tooltip returns the sanitized tooltip body for v.
func Tooltip(v models.Verdict) string {
	var text string
	if v.Error != "" {
		text = FormatError(v.Error)
	} else {
		text = FormatVerdict(v.Response)
	}
	return SanitizeHTML(text)
}

// SanitizeHTML strips markup that is unsafe to place in the tooltip.
func SanitizeHTML(text string) string {
	return tooltipPolicy.Sanitize(text)
}

// ModeNotice is the notification text for the link checking mode.
func ModeNotice(enabled bool) string {
	if enabled {
		return ModeEnabled
	}
	return ModeDisabled
}

// Terminal renders v for CLI output with the verdict line colored.
func Terminal(v models.Verdict) string {
	if v.Error != "" {
		return color.RedString(FormatError(v.Error))
	}

	text := FormatVerdict(v.Response)
	clickbait, ok := v.Clickbait()
	switch {
	case !ok:
		return text
	case clickbait:
		return color.New(color.FgRed, color.Bold).Sprint(text)
	default:
		return color.New(color.FgGreen, color.Bold).Sprint(text)
	}
}
