package extractor

import (
	"strings"

	"github.com/dtnitsch/clickbait-detector/models"
)

// Normalize collapses every whitespace run (blank lines included) into a
// single space, trims the result and truncates it to models.MaxContentChars
// characters. Normalize(Normalize(s)) == Normalize(s).
func Normalize(input string) string {
	return truncate(strings.Join(strings.Fields(input), " "), models.MaxContentChars)
}

func truncate(s string, limit int) string {
	count := 0
	for i := range s {
		if count == limit {
			return strings.TrimRight(s[:i], " ")
		}
		count++
	}
	return s
}
