// Package checker runs a clickbait check end to end: settings, cache, page
// fetch, extraction, prompt and model call.
package checker

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dtnitsch/clickbait-detector/models"
	"github.com/dtnitsch/clickbait-detector/pkg/caching"
	"github.com/dtnitsch/clickbait-detector/pkg/db"
	"github.com/dtnitsch/clickbait-detector/pkg/extractor"
	"github.com/dtnitsch/clickbait-detector/pkg/fetcher"
	"github.com/dtnitsch/clickbait-detector/pkg/llm"
	"github.com/dtnitsch/clickbait-detector/pkg/metrics"
)

// PageFetcher downloads a page as UTF-8 HTML.
type PageFetcher interface {
	GetHtmlString(ctx context.Context, url string) (string, error)
}

// Model asks the LLM for a verdict.
type Model interface {
	CallModel(ctx context.Context, settings models.Settings, content models.ExtractedContent) (models.Verdict, error)
}

// SettingsLoader returns the current settings with defaults applied.
type SettingsLoader interface {
	Load() (models.Settings, error)
}

// LanguageDetector guesses a language code for text.
type LanguageDetector interface {
	Detect(text string) (string, bool)
}

// History records finished checks.
type History interface {
	RecordCheck(c db.Check) error
}

type Checker struct {
	settings SettingsLoader
	fetcher  PageFetcher
	model    Model
	cache    caching.Cache
	detector LanguageDetector
	history  History
	logger   *slog.Logger
}

type Option func(*Checker)

// WithCache enables verdict caching for users with cacheResults on.
func WithCache(c caching.Cache) Option {
	return func(ch *Checker) { ch.cache = c }
}

// WithLanguageDetector resolves the "auto" language setting.
func WithLanguageDetector(d LanguageDetector) Option {
	return func(ch *Checker) { ch.detector = d }
}

func WithHistory(h History) Option {
	return func(ch *Checker) { ch.history = h }
}

func WithLogger(l *slog.Logger) Option {
	return func(ch *Checker) { ch.logger = l }
}

func New(settings SettingsLoader, f PageFetcher, m Model, opts ...Option) *Checker {
	c := &Checker{
		settings: settings,
		fetcher:  f,
		model:    m,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ValidateLink rejects links that cannot be fetched as pages.
func ValidateLink(rawURL string) error {
	u := strings.ToLower(strings.TrimSpace(rawURL))
	if u == "" ||
		strings.HasPrefix(u, "javascript:") ||
		strings.HasPrefix(u, "mailto:") ||
		strings.HasPrefix(u, "tel:") {
		return &CheckError{Kind: KindUnsupportedLink, Message: MsgUnsupportedLink}
	}
	return nil
}

// CheckClickbait fetches url, extracts its content and asks the model for a
// verdict. All failures are *CheckError values.
func (c *Checker) CheckClickbait(ctx context.Context, url string) (verdict models.Verdict, err error) {
	run := c.begin(url)
	defer func() { run.finish(verdict, err) }()

	if err := ValidateLink(url); err != nil {
		return models.Verdict{}, err
	}

	settings, err := c.loadSettings()
	if err != nil {
		return models.Verdict{}, err
	}
	log := run.logger(settings)

	cacheKey := ""
	if c.cachingEnabled(settings) {
		cacheKey, err = caching.URLKey(url, settings)
		if err != nil {
			log.Warn("Cannot derive cache key", "error", err)
		} else if v, ok := c.lookup(ctx, log, cacheKey); ok {
			return v, nil
		}
	}

	log.Debug("Fetching page")
	html, err := c.fetcher.GetHtmlString(ctx, url)
	if err != nil {
		return models.Verdict{}, fetchError(err)
	}

	content, err := extractor.Extract(html, url)
	if err != nil {
		return models.Verdict{}, newError(KindExtraction, err, "Nie można przetworzyć strony: %v", err)
	}

	return c.evaluate(ctx, log, settings, content, cacheKey, url)
}

// CheckContent asks the model about content the caller already extracted.
func (c *Checker) CheckContent(ctx context.Context, content models.ExtractedContent) (verdict models.Verdict, err error) {
	run := c.begin("")
	defer func() { run.finish(verdict, err) }()

	settings, err := c.loadSettings()
	if err != nil {
		return models.Verdict{}, err
	}
	log := run.logger(settings)

	content.Title = strings.TrimSpace(content.Title)
	content.Header = strings.TrimSpace(content.Header)
	content.Content = extractor.Normalize(content.Content)

	cacheKey := ""
	if c.cachingEnabled(settings) && content.Title != "" {
		cacheKey = caching.ContentKey(content, settings)
		if v, ok := c.lookup(ctx, log, cacheKey); ok {
			return v, nil
		}
	}

	return c.evaluate(ctx, log, settings, content, cacheKey, "")
}

// loadSettings reads settings and enforces the configuration preconditions
// before any network call.
func (c *Checker) loadSettings() (models.Settings, error) {
	settings, err := c.settings.Load()
	if err != nil {
		return models.Settings{}, newError(KindConfig, err, "Nie można odczytać ustawień: %v", err)
	}
	if strings.TrimSpace(settings.APIKey) == "" {
		return models.Settings{}, &CheckError{Kind: KindConfig, Message: MsgMissingAPIKey}
	}
	if err := models.ValidateEndpoint(settings.APIEndpoint); err != nil {
		return models.Settings{}, newError(KindConfig, err, "%v", err)
	}
	return settings, nil
}

func (c *Checker) evaluate(ctx context.Context, log *slog.Logger, settings models.Settings, content models.ExtractedContent, cacheKey, url string) (models.Verdict, error) {
	if content.Title == "" {
		return models.Verdict{}, &CheckError{Kind: KindExtraction, Message: MsgNoTitle}
	}

	settings.Language = c.resolveLanguage(log, settings.Language, content)

	log.Debug("Calling model", "model", settings.Model, "language", settings.Language, "title", content.Title)
	verdict, err := c.model.CallModel(ctx, settings, content)
	if err != nil {
		return models.Verdict{}, modelError(err)
	}

	if cacheKey != "" {
		if err := c.cache.Set(ctx, cacheKey, url, verdict); err != nil {
			log.Warn("Failed to store verdict in cache", "error", err)
		}
	}

	return verdict, nil
}

func (c *Checker) cachingEnabled(settings models.Settings) bool {
	return c.cache != nil && settings.CacheResults
}

func (c *Checker) lookup(ctx context.Context, log *slog.Logger, key string) (models.Verdict, bool) {
	v, ok, err := c.cache.Get(ctx, key)
	if err != nil {
		log.Warn("Cache lookup failed", "error", err)
		return models.Verdict{}, false
	}
	if ok {
		log.Debug("Cache hit")
	}
	return v, ok
}

func (c *Checker) resolveLanguage(log *slog.Logger, language string, content models.ExtractedContent) string {
	resolved := ResolveLanguage(c.detector, language, content)
	if strings.EqualFold(language, models.LanguageAuto) {
		log.Debug("Resolved prompt language", "language", resolved)
	}
	return resolved
}

// ResolveLanguage returns language unless it is "auto", in which case the
// content language is detected. Detection failure yields DefaultLanguage.
func ResolveLanguage(detector LanguageDetector, language string, content models.ExtractedContent) string {
	if !strings.EqualFold(language, models.LanguageAuto) {
		return language
	}
	if detector == nil {
		return models.DefaultLanguage
	}

	code, ok := detector.Detect(content.Title + " " + content.Content)
	if !ok {
		return models.DefaultLanguage
	}
	return code
}

func fetchError(err error) *CheckError {
	var statusErr *fetcher.StatusError
	if errors.As(err, &statusErr) {
		ce := newError(KindFetch, err, "Nie można pobrać strony: %d", statusErr.StatusCode)
		ce.StatusCode = statusErr.StatusCode
		return ce
	}
	return newError(KindFetch, err, "Nie można pobrać strony: %v", err)
}

func modelError(err error) *CheckError {
	var apiErr *llm.APIError
	if errors.As(err, &apiErr) {
		ce := newError(KindAPI, err, "%s", apiErr.Error())
		ce.StatusCode = apiErr.StatusCode
		return ce
	}
	var decodeErr *llm.DecodeError
	if errors.As(err, &decodeErr) {
		ce := newError(KindAPI, err, "%s", decodeErr.Error())
		ce.StatusCode = decodeErr.StatusCode
		return ce
	}
	var netErr *llm.NetworkError
	if errors.As(err, &netErr) {
		return newError(KindNetwork, err, "%s", netErr.Error())
	}
	return newError(KindAPI, err, "%v", err)
}

// run tracks one check for logging, metrics and history.
type run struct {
	c     *Checker
	id    string
	url   string
	start time.Time
}

func (c *Checker) begin(url string) *run {
	return &run{c: c, id: uuid.NewString(), url: url, start: time.Now()}
}

// logger returns the per-check logger. debugMode promotes debug records to info.
func (r *run) logger(settings models.Settings) *slog.Logger {
	l := r.c.logger.With("check_id", r.id)
	if r.url != "" {
		l = l.With("url", r.url)
	}
	if settings.DebugMode {
		return slog.New(promoteDebug{l.Handler()})
	}
	return l
}

func (r *run) finish(verdict models.Verdict, err error) {
	duration := time.Since(r.start)

	outcome := metrics.OutcomeSuccess
	record := db.Check{
		CheckID:   r.id,
		URL:       r.url,
		Title:     verdict.OriginalTitle,
		Success:   err == nil,
		Cached:    verdict.Cached,
		Duration:  duration,
		CheckedAt: r.start,
	}

	log := r.c.logger.With("check_id", r.id, "url", r.url, "duration_ms", duration.Milliseconds())
	if err != nil {
		kind := KindOf(err)
		outcome = string(kind)
		record.ErrorType = string(kind)
		record.ErrorMessage = err.Error()
		log.Warn("Check failed", "error_type", kind, "error", err)
	} else {
		if clickbait, ok := verdict.Clickbait(); ok {
			record.Clickbait = &clickbait
		}
		log.Info("Check finished", "cached", verdict.Cached, "title", verdict.OriginalTitle)
	}

	metrics.RecordCheck(outcome, verdict.Cached, duration)

	if r.c.history != nil {
		if herr := r.c.history.RecordCheck(record); herr != nil {
			log.Warn("Failed to record check history", "error", herr)
		}
	}
}
