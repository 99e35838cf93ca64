package check

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/dtnitsch/clickbait-detector/internal/common"
	"github.com/dtnitsch/clickbait-detector/pkg/render"
)

func CheckAction(c *cli.Context) error {
	var urls []string
	if c.IsSet("url") {
		urls = append(urls, c.String("url"))
	}
	if c.IsSet("urls") {
		valid, invalid := common.SplitURLs(c.String("urls"))
		if len(invalid) > 0 {
			fmt.Fprintf(os.Stderr, "Error: %d URL(s) are malformed (even after cleanup):\n", len(invalid))
			for _, bad := range invalid {
				fmt.Fprintf(os.Stderr, "  - %s\n", bad)
			}
			return cli.Exit("", 1)
		}
		urls = append(urls, valid...)
	}

	if len(urls) == 0 {
		fmt.Fprintln(os.Stderr, "Error: No URLs provided")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, `  clickbait check --url "https://example.com/article"`)
		fmt.Fprintln(os.Stderr, `  clickbait check --urls "https://a.example/x,https://b.example/y" --workers 4`)
		return cli.Exit("", 1)
	}

	format := strings.ToLower(c.String("format"))
	if format != "text" && format != "json" && format != "yaml" {
		return fmt.Errorf("unknown format %q (want text, json or yaml)", format)
	}

	app, err := common.OpenApp(c)
	if err != nil {
		return err
	}
	defer app.Close()

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt)
	defer stop()

	results := run(ctx, app.Logger, app.Checker(!c.Bool("no-cache")), urls, c.Int("workers"))

	if err := writeResults(os.Stdout, results, format); err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	if failed > 0 {
		return cli.Exit(fmt.Sprintf("%d of %d checks failed", failed, len(results)), 1)
	}
	return nil
}

func writeResults(w io.Writer, results []Result, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(results)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(results)
	}

	for i, r := range results {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, r.URL)
		if r.Verdict.OriginalTitle != "" {
			fmt.Fprintf(w, "Tytuł: %s\n", r.Verdict.OriginalTitle)
		}
		if r.Verdict.Cached {
			fmt.Fprintln(w, "(z pamięci podręcznej)")
		}
		fmt.Fprintln(w, render.Terminal(r.Verdict))
	}
	return nil
}
