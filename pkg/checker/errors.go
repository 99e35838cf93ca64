package checker

import (
	"errors"
	"fmt"

	"github.com/dtnitsch/clickbait-detector/models"
)

// ErrorKind classifies a failed check. The values are the errorType strings
// returned across the message boundary.
type ErrorKind string

const (
	KindConfig          ErrorKind = "config_error"
	KindFetch           ErrorKind = "fetch_error"
	KindExtraction      ErrorKind = "extraction_error"
	KindAPI             ErrorKind = "api_error"
	KindNetwork         ErrorKind = "network_error"
	KindUnsupportedLink ErrorKind = "unsupported_link"
)

// User-facing messages.
const (
	MsgMissingAPIKey   = "Brak skonfigurowanego API key. Przejdź do ustawień rozszerzenia."
	MsgNoTitle         = "Nie znaleziono tytułu strony"
	MsgUnsupportedLink = "Nie można sprawdzić tego typu linku"
)

// CheckError is the single error type returned by Checker.
type CheckError struct {
	Kind       ErrorKind
	Message    string
	StatusCode int // page or API status, when there was one
	Err        error
}

func (e *CheckError) Error() string {
	return e.Message
}

func (e *CheckError) Unwrap() error {
	return e.Err
}

func newError(kind ErrorKind, err error, format string, args ...any) *CheckError {
	return &CheckError{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// KindOf returns the kind of err, or "" when err is not a CheckError.
func KindOf(err error) ErrorKind {
	var checkErr *CheckError
	if errors.As(err, &checkErr) {
		return checkErr.Kind
	}
	return ""
}

// ErrorVerdict converts err into the tagged value returned to callers.
func ErrorVerdict(err error) models.Verdict {
	var checkErr *CheckError
	if errors.As(err, &checkErr) {
		return models.NewErrorVerdict(string(checkErr.Kind), checkErr.Message)
	}
	return models.NewErrorVerdict(string(KindAPI), err.Error())
}
