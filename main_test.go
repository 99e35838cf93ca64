package main

import (
	"bytes"
	"encoding/json"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/dtnitsch/clickbait-detector/internal/common"
	"github.com/dtnitsch/clickbait-detector/models"
	"github.com/dtnitsch/clickbait-detector/pkg/db"
)

type testEnv struct {
	dir    string
	dbPath string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	t.Setenv(common.APIKeyEnv, "")

	exiter := cli.OsExiter
	cli.OsExiter = func(int) {}
	t.Cleanup(func() { cli.OsExiter = exiter })

	dir := t.TempDir()
	return &testEnv{dir: dir, dbPath: filepath.Join(dir, "test.db")}
}

func (e *testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	app := newApp()
	var out bytes.Buffer
	app.Writer = &out
	app.ErrWriter = io.Discard

	base := []string{"clickbait", "--quiet",
		"--config", filepath.Join(e.dir, "missing.yaml"),
		"--db", e.dbPath}
	err := app.Run(append(base, args...))
	return out.String(), err
}

func (e *testEnv) openDB(t *testing.T) *db.DB {
	t.Helper()
	database, err := db.Open(e.dbPath)
	if err != nil {
		t.Fatalf("db.Open() error = %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

func TestSettingsCommands(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "settings", "set", "apiKey", "sk-abcdefgh1234")
	if err != nil {
		t.Fatalf("settings set error = %v", err)
	}
	if strings.TrimSpace(out) != "apiKey = sk-a...1234" {
		t.Errorf("settings set output = %q", out)
	}

	if _, err := env.run(t, "settings", "set", "temperature", "0"); err != nil {
		t.Fatalf("settings set temperature error = %v", err)
	}

	out, err = env.run(t, "settings", "show", "--format", "json")
	if err != nil {
		t.Fatalf("settings show error = %v", err)
	}
	var shown models.Settings
	if err := json.Unmarshal([]byte(out), &shown); err != nil {
		t.Fatalf("settings show output is not JSON: %v\n%s", err, out)
	}
	if shown.APIKey != "sk-a...1234" {
		t.Errorf("APIKey = %q, want masked key", shown.APIKey)
	}
	if shown.Model != models.DefaultModel {
		t.Errorf("Model = %q, want default", shown.Model)
	}
	if shown.Temperature != 0 {
		t.Errorf("Temperature = %g, want 0", shown.Temperature)
	}

	out, err = env.run(t, "settings", "show", "--reveal")
	if err != nil {
		t.Fatalf("settings show --reveal error = %v", err)
	}
	if !strings.Contains(out, "api_key: sk-abcdefgh1234") {
		t.Errorf("settings show --reveal output missing key:\n%s", out)
	}

	if _, err := env.run(t, "settings", "reset"); err != nil {
		t.Fatalf("settings reset error = %v", err)
	}
	out, err = env.run(t, "settings", "show", "--format", "json")
	if err != nil {
		t.Fatalf("settings show error = %v", err)
	}
	shown = models.Settings{}
	if err := json.Unmarshal([]byte(out), &shown); err != nil {
		t.Fatalf("settings show output is not JSON: %v", err)
	}
	if shown.APIKey != "" || shown.Temperature != models.DefaultTemperature {
		t.Errorf("settings after reset = %+v", shown)
	}
}

func TestSettingsSet_Rejects(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"temperature out of range", []string{"temperature", "2"}},
		{"zero max tokens", []string{"maxTokens", "0"}},
		{"relative endpoint", []string{"apiEndpoint", "/v1/chat"}},
		{"unknown key", []string{"colour", "blue"}},
		{"missing value", []string{"model"}},
	}

	env := newTestEnv(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"settings", "set"}, tt.args...)
			if _, err := env.run(t, args...); err == nil {
				t.Errorf("settings set %v succeeded, want error", tt.args)
			}
		})
	}
}

func TestSettingsTest_RequiresAPIKey(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run(t, "settings", "test")
	if err == nil || !strings.Contains(err.Error(), "Wprowadź API Key przed testem") {
		t.Errorf("settings test error = %v", err)
	}
}

func TestHistoryCommand(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "history")
	if err != nil {
		t.Fatalf("history error = %v", err)
	}
	if !strings.Contains(out, "No checks found") {
		t.Errorf("history output = %q", out)
	}

	yes := true
	database := env.openDB(t)
	checks := []db.Check{
		{CheckID: "a", URL: "https://example.com/shock", Title: "You won't believe", Clickbait: &yes,
			Success: true, Duration: 1500 * time.Millisecond, CheckedAt: time.Now()},
		{CheckID: "b", URL: "https://example.com/gone", Success: false, ErrorType: "fetch_error",
			ErrorMessage: "Nie można pobrać strony: 404", CheckedAt: time.Now()},
	}
	for _, c := range checks {
		if err := database.RecordCheck(c); err != nil {
			t.Fatalf("RecordCheck() error = %v", err)
		}
	}

	out, err = env.run(t, "history", "--limit", "10")
	if err != nil {
		t.Fatalf("history error = %v", err)
	}
	for _, want := range []string{"https://example.com/shock", "clickbait", "1500ms", "fetch_error",
		"Nie można pobrać strony: 404", "Total: 2 checks (1 succeeded, 1 clickbait, 0 from cache)"} {
		if !strings.Contains(out, want) {
			t.Errorf("history output missing %q:\n%s", want, out)
		}
	}
}

func TestCacheCommands(t *testing.T) {
	env := newTestEnv(t)

	database := env.openDB(t)
	now := time.Now()
	if err := database.CachePut("url:fresh", "https://example.com/a", `{"success":true}`, now, now.Add(time.Hour)); err != nil {
		t.Fatalf("CachePut() error = %v", err)
	}
	if err := database.CachePut("url:stale", "https://example.com/b", `{"success":true}`, now.Add(-2*time.Hour), now.Add(-time.Hour)); err != nil {
		t.Fatalf("CachePut() error = %v", err)
	}

	out, err := env.run(t, "cache", "prune")
	if err != nil {
		t.Fatalf("cache prune error = %v", err)
	}
	if !strings.Contains(out, "Removed 1 expired verdict(s)") {
		t.Errorf("cache prune output = %q", out)
	}

	out, err = env.run(t, "cache", "clear")
	if err != nil {
		t.Fatalf("cache clear error = %v", err)
	}
	if !strings.Contains(out, "Removed 1 cached verdict(s)") {
		t.Errorf("cache clear output = %q", out)
	}
}

func TestQuickstart(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "quickstart")
	if err != nil {
		t.Fatalf("quickstart error = %v", err)
	}

	var guide map[string]any
	if err := yaml.Unmarshal([]byte(out), &guide); err != nil {
		t.Fatalf("quickstart is not valid YAML: %v", err)
	}
	for _, key := range []string{"setup", "commands", "settings", "message_channel", "error_types"} {
		if _, ok := guide[key]; !ok {
			t.Errorf("quickstart missing section %q", key)
		}
	}
}
