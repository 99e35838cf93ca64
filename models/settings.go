package models

import (
	"fmt"
	"net/url"
)

const (
	DefaultAPIEndpoint  = "https://openrouter.ai/api/v1/chat/completions"
	DefaultModel        = "microsoft/phi-3-mini-128k-instruct:free"
	DefaultLanguage     = "pl"
	DefaultMaxTokens    = 200
	DefaultTemperature  = 0.3
	DefaultCacheResults = true
	DefaultDebugMode    = false

	// LanguageAuto asks the checker to detect the page language.
	LanguageAuto = "auto"
)

// Settings store keys, shared with the extension's storage layout.
const (
	KeyAPIKey       = "apiKey"
	KeyAPIEndpoint  = "apiEndpoint"
	KeyModel        = "model"
	KeyCustomPrompt = "customPrompt"
	KeyLanguage     = "language"
	KeyMaxTokens    = "maxTokens"
	KeyTemperature  = "temperature"
	KeyCacheResults = "cacheResults"
	KeyDebugMode    = "debugMode"
)

// SettingKeys lists every persisted key in display order.
var SettingKeys = []string{
	KeyAPIKey, KeyAPIEndpoint, KeyModel, KeyCustomPrompt, KeyLanguage,
	KeyMaxTokens, KeyTemperature, KeyCacheResults, KeyDebugMode,
}

// Settings is the user configuration read by the orchestrator.
type Settings struct {
	APIKey       string  `json:"apiKey" yaml:"api_key"`
	APIEndpoint  string  `json:"apiEndpoint" yaml:"api_endpoint"`
	Model        string  `json:"model" yaml:"model"`
	CustomPrompt string  `json:"customPrompt" yaml:"custom_prompt"`
	Language     string  `json:"language" yaml:"language"`
	MaxTokens    int     `json:"maxTokens" yaml:"max_tokens"`
	Temperature  float64 `json:"temperature" yaml:"temperature"`
	CacheResults bool    `json:"cacheResults" yaml:"cache_results"`
	DebugMode    bool    `json:"debugMode" yaml:"debug_mode"`
}

// DefaultSettings is the base every stored value is overlaid on.
func DefaultSettings() Settings {
	return Settings{
		APIEndpoint:  DefaultAPIEndpoint,
		Model:        DefaultModel,
		Language:     DefaultLanguage,
		MaxTokens:    DefaultMaxTokens,
		Temperature:  DefaultTemperature,
		CacheResults: DefaultCacheResults,
		DebugMode:    DefaultDebugMode,
	}
}

// WithDefaults fills fields that hold no usable value. Booleans are left
// untouched because false is a legitimate stored value; stores apply the
// boolean defaults for absent keys.
func (s Settings) WithDefaults() Settings {
	if s.APIEndpoint == "" {
		s.APIEndpoint = DefaultAPIEndpoint
	}
	if s.Model == "" {
		s.Model = DefaultModel
	}
	if s.Language == "" {
		s.Language = DefaultLanguage
	}
	if s.MaxTokens <= 0 {
		s.MaxTokens = DefaultMaxTokens
	}
	if s.Temperature < 0 || s.Temperature > 1 {
		s.Temperature = DefaultTemperature
	}
	return s
}

// Validate applies the save-time rules of the options page.
func (s Settings) Validate() error {
	if s.APIKey == "" {
		return fmt.Errorf("API Key jest wymagany")
	}
	if s.APIEndpoint == "" {
		return fmt.Errorf("Endpoint API jest wymagany")
	}
	if err := ValidateEndpoint(s.APIEndpoint); err != nil {
		return err
	}
	if s.Model == "" {
		return fmt.Errorf("Model jest wymagany")
	}
	if s.MaxTokens <= 0 {
		return fmt.Errorf("maxTokens must be positive, got %d", s.MaxTokens)
	}
	if s.Temperature < 0 || s.Temperature > 1 {
		return fmt.Errorf("temperature must be within [0, 1], got %g", s.Temperature)
	}
	return nil
}

// ValidateEndpoint checks that endpoint is an absolute http(s) URL.
func ValidateEndpoint(endpoint string) error {
	u, err := url.Parse(endpoint)
	if err != nil {
		return fmt.Errorf("invalid API endpoint: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid API endpoint %q: scheme must be http or https", endpoint)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid API endpoint %q: missing host", endpoint)
	}
	return nil
}

// Redacted returns a copy safe to print: the API key is masked.
func (s Settings) Redacted() Settings {
	if len(s.APIKey) > 8 {
		s.APIKey = s.APIKey[:4] + "..." + s.APIKey[len(s.APIKey)-4:]
	} else if s.APIKey != "" {
		s.APIKey = "****"
	}
	return s
}
