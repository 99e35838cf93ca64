package help

const ColdstartYAML = `# clickbait-detector Quick Start

setup: |
  clickbait settings set apiKey sk-or-...        # or CLICKBAIT_API_KEY in .env
  clickbait settings set model microsoft/phi-3-mini-128k-instruct:free
  clickbait settings test

commands:
  check_one: |
    clickbait check --url "https://example.com/article"

  check_many: |
    clickbait check --urls "https://a.example/x,https://b.example/y" --workers 4 --format json

  skip_cache: |
    clickbait check --url "https://example.com/article" --no-cache

  inspect_extraction: |
    clickbait extract --url "https://example.com/article" --format yaml
    clickbait extract --file saved-page.html

  inspect_prompt: |
    clickbait prompt --url "https://example.com/article"

  history: |
    clickbait history --limit 20

  cache: |
    clickbait cache prune
    clickbait cache clear

  serve: |
    clickbait serve --addr 127.0.0.1:8787

settings:
  apiKey: "Required. Bearer token for the chat-completions endpoint"
  apiEndpoint: "Absolute http(s) URL (default OpenRouter)"
  model: "Model id sent with every request"
  customPrompt: "Extra instructions appended to the prompt"
  language: "Answer language code (pl, en, ...) or auto"
  maxTokens: "Positive integer (default 200)"
  temperature: "0 to 1 (default 0.3)"
  cacheResults: "true/false (default true)"
  debugMode: "true/false, debug logs for checks"

verdict_format:
  - "CLICKBAIT: [TAK/NIE]"
  - "UZASADNIENIE: short justification"
  - "LEPSZY TYTUŁ: better title when clickbait"

message_channel:
  endpoint: "POST /api/message"
  actions:
    - checkLink {url}
    - checkLinkWithContent {content}
    - toggleLinkChecking {enabled}
    - toggle-mode
    - check-link
    - testConnection
    - getStatus
    - hoverLink
    - leaveLink
    - closeTooltip
  other_routes:
    - "GET /api/status"
    - "GET /healthz"
    - "GET /metrics"

error_types:
  config_error: "API key missing or settings invalid"
  fetch_error: "Page download failed or returned non-2xx"
  extraction_error: "No title found on the page"
  api_error: "Model endpoint returned non-2xx"
  network_error: "Model endpoint unreachable"
  unsupported_link: "javascript:, mailto: and tel: links"

error_behavior:
  - "Malformed URLs: fail fast before fetching"
  - "Failed checks are never cached"
  - "Exit codes: 0=all checks succeeded, 1=at least one failed"
`
