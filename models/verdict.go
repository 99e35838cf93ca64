package models

import "strings"

const (
	ClickbaitYes = "CLICKBAIT: TAK"
	ClickbaitNo  = "CLICKBAIT: NIE"
)

// Verdict is the outcome of one check. Either Success is set together with
// Response, or Error/ErrorType describe why the check failed.
type Verdict struct {
	Success        bool   `json:"success,omitempty" yaml:"success,omitempty"`
	Response       string `json:"response,omitempty" yaml:"response,omitempty"`
	OriginalTitle  string `json:"originalTitle,omitempty" yaml:"original_title,omitempty"`
	OriginalHeader string `json:"originalHeader,omitempty" yaml:"original_header,omitempty"`
	Cached         bool   `json:"cached,omitempty" yaml:"cached,omitempty"`

	Error     string `json:"error,omitempty" yaml:"error,omitempty"`
	ErrorType string `json:"errorType,omitempty" yaml:"error_type,omitempty"`
}

// NewErrorVerdict builds the tagged error value returned across the message boundary.
func NewErrorVerdict(errorType, message string) Verdict {
	return Verdict{Error: message, ErrorType: errorType}
}

// Clickbait reports the TAK/NIE answer found in the response. ok is false
// when the model did not follow the response format.
func (v Verdict) Clickbait() (clickbait bool, ok bool) {
	switch {
	case strings.Contains(v.Response, ClickbaitYes):
		return true, true
	case strings.Contains(v.Response, ClickbaitNo):
		return false, true
	}
	return false, false
}
