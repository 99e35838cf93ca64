// Package llm calls an OpenAI-compatible chat-completion endpoint and turns
// its answer into a Verdict.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/dtnitsch/clickbait-detector/models"
	"github.com/dtnitsch/clickbait-detector/pkg/prompt"
)

const (
	// NoResponsePlaceholder is returned when a successful reply carries no
	// message content, so callers always get something to render.
	NoResponsePlaceholder = "Brak odpowiedzi z API"

	testPrompt      = `Test connection. Odpowiedz krótko: "Test OK"`
	testMaxTokens   = 20
	testTemperature = 0.1
	testNoResponse  = "Brak odpowiedzi"
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type Request struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
}

type Response struct {
	Choices []struct {
		Message *struct {
			Content *string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// content returns the first choice's message text, if any.
func (r *Response) content() (string, bool) {
	if len(r.Choices) == 0 || r.Choices[0].Message == nil || r.Choices[0].Message.Content == nil {
		return "", false
	}
	if *r.Choices[0].Message.Content == "" {
		return "", false
	}
	return *r.Choices[0].Message.Content, true
}

// APIError captures non-2xx responses with the upstream status and body.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API Error: %d - %s", e.StatusCode, e.Body)
}

// maxErrorBody caps the response body quoted in a DecodeError.
const maxErrorBody = 300

// DecodeError is a 2xx reply whose body is not a chat-completion JSON
// document, such as an HTML page served by a gateway.
type DecodeError struct {
	StatusCode int
	Body       string // truncated to maxErrorBody bytes
	Err        error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("invalid API response: %d - %s (%v)", e.StatusCode, e.Body, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func truncateBody(body []byte) string {
	if len(body) <= maxErrorBody {
		return string(body)
	}
	cut := maxErrorBody
	for cut > 0 && !utf8.RuneStart(body[cut]) {
		cut--
	}
	return string(body[:cut]) + "..."
}

// NetworkError wraps transport failures (DNS, connection refused, cancelled context).
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Client performs single-attempt chat completions. It never retries.
type Client struct {
	client  *http.Client
	referer string
}

// NewClient creates a client. A zero timeout disables the client timeout;
// requests still honor context cancellation.
func NewClient(timeout time.Duration, referer string) *Client {
	return &Client{
		client:  &http.Client{Timeout: timeout},
		referer: referer,
	}
}

// NewClientWithHTTP is NewClient with a caller-supplied transport.
func NewClientWithHTTP(httpClient *http.Client, referer string) *Client {
	return &Client{client: httpClient, referer: referer}
}

// CallModel asks the configured model whether content is clickbait.
// settings.Language must already be resolved (not "auto").
func (c *Client) CallModel(ctx context.Context, settings models.Settings, content models.ExtractedContent) (models.Verdict, error) {
	settings = settings.WithDefaults()

	text := prompt.Build(content, prompt.Options{
		Language:     settings.Language,
		CustomPrompt: settings.CustomPrompt,
	})

	answer, err := c.Complete(ctx, settings, Request{
		Model:       settings.Model,
		Messages:    []Message{{Role: "user", Content: text}},
		MaxTokens:   settings.MaxTokens,
		Temperature: settings.Temperature,
	})
	if err != nil {
		return models.Verdict{}, err
	}
	if answer == "" {
		answer = NoResponsePlaceholder
	}

	return models.Verdict{
		Success:        true,
		Response:       answer,
		OriginalTitle:  content.Title,
		OriginalHeader: content.Header,
	}, nil
}

// TestConnection sends a tiny prompt to check credentials and endpoint.
func (c *Client) TestConnection(ctx context.Context, settings models.Settings) (string, error) {
	settings = settings.WithDefaults()

	answer, err := c.Complete(ctx, settings, Request{
		Model:       settings.Model,
		Messages:    []Message{{Role: "user", Content: testPrompt}},
		MaxTokens:   testMaxTokens,
		Temperature: testTemperature,
	})
	if err != nil {
		return "", err
	}
	if answer == "" {
		answer = testNoResponse
	}
	return answer, nil
}

// Complete posts req to settings.APIEndpoint and returns the first choice's
// content, or "" when the reply has none.
func (c *Client) Complete(ctx context.Context, settings models.Settings, req Request) (string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, settings.APIEndpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+settings.APIKey)
	if c.referer != "" {
		httpReq.Header.Set("HTTP-Referer", c.referer)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &NetworkError{Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &APIError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	var parsed Response
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", &DecodeError{StatusCode: resp.StatusCode, Body: truncateBody(respBody), Err: err}
	}

	answer, _ := parsed.content()
	return answer, nil
}
