package extract

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/dtnitsch/clickbait-detector/internal/common"
	"github.com/dtnitsch/clickbait-detector/models"
	"github.com/dtnitsch/clickbait-detector/pkg/checker"
	"github.com/dtnitsch/clickbait-detector/pkg/extractor"
	"github.com/dtnitsch/clickbait-detector/pkg/fetcher"
	"github.com/dtnitsch/clickbait-detector/pkg/prompt"
)

// ExtractAction prints the content extracted from --url or --file.
func ExtractAction(c *cli.Context) error {
	format := strings.ToLower(c.String("format"))
	if format != "json" && format != "yaml" {
		return fmt.Errorf("unknown format %q (want json or yaml)", format)
	}

	config, err := common.LoadConfig(c)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	content, err := load(c, common.NewFetcher(config))
	if err != nil {
		return err
	}
	return writeContent(os.Stdout, content, format)
}

// PromptAction prints the prompt that would be sent to the model for
// --url or --file, using the stored language and custom prompt settings.
func PromptAction(c *cli.Context) error {
	app, err := common.OpenApp(c)
	if err != nil {
		return err
	}
	defer app.Close()

	settings, err := app.Settings.Load()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	content, err := load(c, app.Fetcher)
	if err != nil {
		return err
	}

	language := checker.ResolveLanguage(app.Detector, settings.Language, content)
	if name, ok := prompt.LanguageName(language); ok {
		app.Logger.Info("Building prompt", "language", language, "language_name", name)
	} else {
		app.Logger.Warn("Unknown prompt language, using code as given", "language", language)
	}

	fmt.Fprintln(os.Stdout, prompt.Build(content, prompt.Options{
		Language:     language,
		CustomPrompt: settings.CustomPrompt,
	}))
	return nil
}

// load reads the page from --file when given, otherwise downloads --url.
func load(c *cli.Context, f *fetcher.Fetcher) (models.ExtractedContent, error) {
	url := c.String("url")
	path := c.String("file")

	var html string
	switch {
	case path != "":
		data, err := os.ReadFile(path)
		if err != nil {
			return models.ExtractedContent{}, fmt.Errorf("failed to read file: %w", err)
		}
		html = string(data)
	case url != "":
		sanitized := common.SanitizeURL(url)
		body, err := f.GetHtmlString(c.Context, sanitized)
		if err != nil {
			return models.ExtractedContent{}, fmt.Errorf("failed to fetch %s: %w", sanitized, err)
		}
		html, url = body, sanitized
	default:
		return models.ExtractedContent{}, cli.Exit("Error: provide --url or --file", 1)
	}

	content, err := extractor.Extract(html, url)
	if err != nil {
		return models.ExtractedContent{}, fmt.Errorf("failed to extract content: %w", err)
	}
	return content, nil
}

func writeContent(w io.Writer, content models.ExtractedContent, format string) error {
	if format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(content)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(content)
}
