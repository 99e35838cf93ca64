package common

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	markdownLinkPattern = regexp.MustCompile(`^\[.*?\]\((https?://[^\)]+)\)$`)
	pageURLPattern      = regexp.MustCompile(`^https?://[a-zA-Z0-9][-a-zA-Z0-9.]*[a-zA-Z0-9](:[0-9]+)?(/[^\s]*)?$`)
)

// SanitizeURL cleans a pasted link: surrounding whitespace, markdown link
// syntax, and stray punctuation on either end.
func SanitizeURL(rawURL string) string {
	cleaned := strings.TrimSpace(rawURL)

	// [text](https://example.com) -> https://example.com
	if m := markdownLinkPattern.FindStringSubmatch(cleaned); len(m) > 1 {
		cleaned = m[1]
	}

	cleaned = strings.TrimRight(cleaned, `,.)}]"'>;`)
	cleaned = strings.TrimLeft(cleaned, `([<"'`)

	return strings.TrimSpace(cleaned)
}

// SplitURLs splits a comma separated --urls value and sanitizes each entry.
// Entries that are not absolute http(s) page URLs are returned in invalid.
func SplitURLs(list string) (valid, invalid []string) {
	for _, raw := range strings.Split(list, ",") {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		cleaned := SanitizeURL(raw)
		if !isPageURL(cleaned) {
			invalid = append(invalid, raw)
			continue
		}
		valid = append(valid, cleaned)
	}
	return valid, invalid
}

func isPageURL(s string) bool {
	if s == "" || strings.Contains(s, " ") || !pageURLPattern.MatchString(s) {
		return false
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != "" &&
		!strings.ContainsAny(u.Host, `{}[]<>"'`)
}
