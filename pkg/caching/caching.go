// Package caching stores successful verdicts so repeated checks of the same
// page skip the model call.
package caching

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/dtnitsch/clickbait-detector/models"
)

// Cache is a TTL store for verdicts.
type Cache interface {
	// Get returns the verdict stored under key. A miss is (zero, false, nil).
	Get(ctx context.Context, key string) (models.Verdict, bool, error)
	Set(ctx context.Context, key, sourceURL string, verdict models.Verdict) error
	// Prune drops expired entries and reports how many were removed.
	Prune(ctx context.Context) (int64, error)
	// Clear drops every entry and reports how many were removed.
	Clear(ctx context.Context) (int64, error)
}

// URLKey derives a cache key from a page URL and the settings that shape
// the answer. Host case, query parameter order and the fragment do not
// affect the key.
func URLKey(rawURL string, settings models.Settings) (string, error) {
	normalized, err := normalizeURL(rawURL)
	if err != nil {
		return "", err
	}
	return "url:" + hash(normalized+"\n"+answerVariant(settings)), nil
}

// ContentKey derives a cache key from already extracted content and the
// settings that shape the answer.
func ContentKey(content models.ExtractedContent, settings models.Settings) string {
	data, _ := json.Marshal(content) // plain string fields never fail
	return "content:" + hash(string(data)+"\n"+answerVariant(settings))
}

// answerVariant fingerprints the settings that change the request sent to
// the model. The configured language is used as is, so "auto" maps to one
// variant per page. The API key and the cache/debug flags are excluded.
func answerVariant(s models.Settings) string {
	s = s.WithDefaults()
	data, _ := json.Marshal(struct {
		Endpoint     string  `json:"e"`
		Model        string  `json:"m"`
		Language     string  `json:"l"`
		CustomPrompt string  `json:"p"`
		MaxTokens    int     `json:"t"`
		Temperature  float64 `json:"temp"`
	}{
		Endpoint:     s.APIEndpoint,
		Model:        s.Model,
		Language:     strings.ToLower(strings.TrimSpace(s.Language)),
		CustomPrompt: strings.TrimSpace(s.CustomPrompt),
		MaxTokens:    s.MaxTokens,
		Temperature:  s.Temperature,
	})
	return string(data)
}

func hash(s string) string {
	sum := sha256.Sum256([]byte(s))
	return fmt.Sprintf("%x", sum)
}

// normalizeURL creates a canonical representation of a URL for consistent hashing.
func normalizeURL(rawURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", fmt.Errorf("invalid URL: %w", err)
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)

	if u.RawQuery != "" {
		params := u.Query()
		keys := make([]string, 0, len(params))
		for k := range params {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		sortedQuery := url.Values{}
		for _, k := range keys {
			for _, v := range params[k] {
				sortedQuery.Add(k, v)
			}
		}
		u.RawQuery = sortedQuery.Encode()
	}

	u.Fragment = ""

	return u.String(), nil
}

func encodeVerdict(v models.Verdict) (string, error) {
	v.Cached = false
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to marshal verdict: %w", err)
	}
	return string(data), nil
}

func decodeVerdict(payload string) (models.Verdict, error) {
	var v models.Verdict
	if err := json.Unmarshal([]byte(payload), &v); err != nil {
		return models.Verdict{}, fmt.Errorf("failed to unmarshal verdict: %w", err)
	}
	v.Cached = true
	return v, nil
}
