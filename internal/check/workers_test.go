package check

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/dtnitsch/clickbait-detector/models"
	"github.com/dtnitsch/clickbait-detector/pkg/checker"
)

type stubChecker struct {
	calls atomic.Int32
}

func (s *stubChecker) CheckClickbait(ctx context.Context, url string) (models.Verdict, error) {
	s.calls.Add(1)
	if strings.Contains(url, "fail") {
		return models.Verdict{}, &checker.CheckError{Kind: checker.KindFetch, Message: "Nie można pobrać strony: 404"}
	}
	return models.Verdict{Success: true, Response: "CLICKBAIT: NIE", OriginalTitle: "Title " + url}, nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestRun_PreservesOrder(t *testing.T) {
	urls := []string{"https://a.example", "https://fail.example", "https://c.example", "https://d.example"}
	stub := &stubChecker{}

	results := run(context.Background(), quietLogger(), stub, urls, 3)

	if len(results) != len(urls) {
		t.Fatalf("len(results) = %d, want %d", len(results), len(urls))
	}
	for i, r := range results {
		if r.URL != urls[i] {
			t.Errorf("results[%d].URL = %q, want %q", i, r.URL, urls[i])
		}
	}
	if stub.calls.Load() != int32(len(urls)) {
		t.Errorf("calls = %d, want %d", stub.calls.Load(), len(urls))
	}

	failed := results[1]
	if failed.Err == nil || failed.Verdict.ErrorType != "fetch_error" {
		t.Errorf("failed result = %+v", failed)
	}
	var checkErr *checker.CheckError
	if !errors.As(failed.Err, &checkErr) {
		t.Errorf("Err is not a CheckError: %v", failed.Err)
	}
}

func TestRun_ClampsWorkers(t *testing.T) {
	results := run(context.Background(), quietLogger(), &stubChecker{}, []string{"https://a.example"}, 0)
	if len(results) != 1 || !results[0].Verdict.Success {
		t.Errorf("results = %+v", results)
	}
}

func TestWriteResults(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	results := []Result{
		{URL: "https://a.example", Verdict: models.Verdict{Success: true, Response: "CLICKBAIT: TAK", OriginalTitle: "A"}},
		{URL: "https://b.example", Verdict: models.NewErrorVerdict("fetch_error", "Nie można pobrać strony: 404")},
	}

	var text bytes.Buffer
	if err := writeResults(&text, results, "text"); err != nil {
		t.Fatalf("writeResults(text) error = %v", err)
	}
	for _, want := range []string{"https://a.example", "Tytuł: A", "🚫 CLICKBAIT", "❌ Błąd: Nie można pobrać strony: 404"} {
		if !strings.Contains(text.String(), want) {
			t.Errorf("text output missing %q:\n%s", want, text.String())
		}
	}

	var js bytes.Buffer
	if err := writeResults(&js, results, "json"); err != nil {
		t.Fatalf("writeResults(json) error = %v", err)
	}
	var decoded []map[string]any
	if err := json.Unmarshal(js.Bytes(), &decoded); err != nil {
		t.Fatalf("json output invalid: %v", err)
	}
	if len(decoded) != 2 || decoded[0]["url"] != "https://a.example" {
		t.Errorf("json output = %v", decoded)
	}

	var ym bytes.Buffer
	if err := writeResults(&ym, results, "yaml"); err != nil {
		t.Fatalf("writeResults(yaml) error = %v", err)
	}
	var fromYAML []map[string]any
	if err := yaml.Unmarshal(ym.Bytes(), &fromYAML); err != nil {
		t.Fatalf("yaml output invalid: %v", err)
	}
	verdict, _ := fromYAML[1]["verdict"].(map[string]any)
	if verdict["error_type"] != "fetch_error" {
		t.Errorf("yaml verdict = %v", verdict)
	}
}
