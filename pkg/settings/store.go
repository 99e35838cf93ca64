// Package settings persists the user-editable configuration as string
// key/value pairs and applies defaults when reading it back.
package settings

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/dtnitsch/clickbait-detector/models"
)

// Backend is the raw key/value storage. *db.DB implements it.
type Backend interface {
	AllSettings() (map[string]string, error)
	SetSettings(values map[string]string) error
	ClearSettings() error
}

// Store reads and writes Settings through a Backend.
type Store struct {
	backend        Backend
	fallbackAPIKey string
}

type Option func(*Store)

// WithFallbackAPIKey is used when no apiKey has been stored, e.g. the
// CLICKBAIT_API_KEY environment variable.
func WithFallbackAPIKey(key string) Option {
	return func(s *Store) { s.fallbackAPIKey = key }
}

func NewStore(backend Backend, opts ...Option) *Store {
	s := &Store{backend: backend}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewMemoryStore returns a Store backed by a process-local map.
func NewMemoryStore(opts ...Option) *Store {
	return NewStore(&memoryBackend{values: make(map[string]string)}, opts...)
}

// Load returns the stored settings overlaid on the defaults. Values that
// cannot be parsed fall back to their default.
func (s *Store) Load() (models.Settings, error) {
	values, err := s.backend.AllSettings()
	if err != nil {
		return models.Settings{}, fmt.Errorf("failed to load settings: %w", err)
	}

	settings := decode(values)
	if settings.APIKey == "" {
		settings.APIKey = s.fallbackAPIKey
	}
	return settings, nil
}

// Save validates settings and stores every key, as the options form does.
func (s *Store) Save(settings models.Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	return s.backend.SetSettings(encode(settings))
}

// Set validates and stores a single key.
func (s *Store) Set(key, value string) error {
	normalized, err := ParseValue(key, value)
	if err != nil {
		return err
	}
	return s.backend.SetSettings(map[string]string{key: normalized})
}

// Reset removes every stored value so subsequent loads return defaults.
func (s *Store) Reset() error {
	return s.backend.ClearSettings()
}

// ParseValue validates value for key and returns its canonical text form.
func ParseValue(key, value string) (string, error) {
	value = strings.TrimSpace(value)

	switch key {
	case models.KeyAPIKey, models.KeyCustomPrompt:
		return value, nil
	case models.KeyAPIEndpoint:
		if value == "" {
			return "", fmt.Errorf("Endpoint API jest wymagany")
		}
		if err := models.ValidateEndpoint(value); err != nil {
			return "", err
		}
		return value, nil
	case models.KeyModel:
		if value == "" {
			return "", fmt.Errorf("Model jest wymagany")
		}
		return value, nil
	case models.KeyLanguage:
		if value == "" {
			return "", fmt.Errorf("language must not be empty")
		}
		return strings.ToLower(value), nil
	case models.KeyMaxTokens:
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return "", fmt.Errorf("maxTokens must be a positive integer, got %q", value)
		}
		return strconv.Itoa(n), nil
	case models.KeyTemperature:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f < 0 || f > 1 {
			return "", fmt.Errorf("temperature must be a number within [0, 1], got %q", value)
		}
		return strconv.FormatFloat(f, 'f', -1, 64), nil
	case models.KeyCacheResults, models.KeyDebugMode:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return "", fmt.Errorf("%s must be true or false, got %q", key, value)
		}
		return strconv.FormatBool(b), nil
	}
	return "", fmt.Errorf("unknown setting: %s", key)
}

func encode(s models.Settings) map[string]string {
	return map[string]string{
		models.KeyAPIKey:       s.APIKey,
		models.KeyAPIEndpoint:  s.APIEndpoint,
		models.KeyModel:        s.Model,
		models.KeyCustomPrompt: s.CustomPrompt,
		models.KeyLanguage:     s.Language,
		models.KeyMaxTokens:    strconv.Itoa(s.MaxTokens),
		models.KeyTemperature:  strconv.FormatFloat(s.Temperature, 'f', -1, 64),
		models.KeyCacheResults: strconv.FormatBool(s.CacheResults),
		models.KeyDebugMode:    strconv.FormatBool(s.DebugMode),
	}
}

func decode(values map[string]string) models.Settings {
	s := models.DefaultSettings()

	if v, ok := values[models.KeyAPIKey]; ok {
		s.APIKey = v
	}
	if v, ok := values[models.KeyAPIEndpoint]; ok {
		s.APIEndpoint = v
	}
	if v, ok := values[models.KeyModel]; ok {
		s.Model = v
	}
	if v, ok := values[models.KeyCustomPrompt]; ok {
		s.CustomPrompt = v
	}
	if v, ok := values[models.KeyLanguage]; ok {
		s.Language = v
	}
	if v, ok := values[models.KeyMaxTokens]; ok {
		if n, err := strconv.Atoi(v); err == nil {
			s.MaxTokens = n
		}
	}
	if v, ok := values[models.KeyTemperature]; ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			s.Temperature = f
		}
	}
	if v, ok := values[models.KeyCacheResults]; ok {
		if b, err := strconv.ParseBool(v); err == nil {
			s.CacheResults = b
		}
	}
	if v, ok := values[models.KeyDebugMode]; ok {
		if b, err := strconv.ParseBool(v); err == nil {
			s.DebugMode = b
		}
	}

	return s.WithDefaults()
}

type memoryBackend struct {
	mu     sync.Mutex
	values map[string]string
}

func (m *memoryBackend) AllSettings() (map[string]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(map[string]string, len(m.values))
	for k, v := range m.values {
		out[k] = v
	}
	return out, nil
}

func (m *memoryBackend) SetSettings(values map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for k, v := range values {
		m.values[k] = v
	}
	return nil
}

func (m *memoryBackend) ClearSettings() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values = make(map[string]string)
	return nil
}
