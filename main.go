package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/clickbait-detector/internal/cache"
	"github.com/dtnitsch/clickbait-detector/internal/check"
	"github.com/dtnitsch/clickbait-detector/internal/extract"
	"github.com/dtnitsch/clickbait-detector/internal/history"
	"github.com/dtnitsch/clickbait-detector/internal/serve"
	"github.com/dtnitsch/clickbait-detector/internal/settings"
	"github.com/dtnitsch/clickbait-detector/pkg/help"
)

func main() {
	// .env is optional; CLICKBAIT_API_KEY may come from the real environment.
	_ = godotenv.Load()

	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	pageFlags := []cli.Flag{
		&cli.StringFlag{Name: "url", Usage: "page URL to download"},
		&cli.StringFlag{Name: "file", Usage: "saved HTML file to read instead of downloading"},
	}

	return &cli.App{
		Name:  "clickbait",
		Usage: "Ask an LLM whether a page title is clickbait",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Value: "config.yaml", Usage: "path to the YAML config file"},
			&cli.StringFlag{Name: "db", Usage: "SQLite database path (default: next to the binary)"},
			&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "log errors only"},
			&cli.BoolFlag{Name: "debug", Usage: "log debug output"},
		},
		Commands: []*cli.Command{
			{
				Name:   "check",
				Usage:  "Check one or more URLs for clickbait",
				Action: check.CheckAction,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "url", Usage: "single URL to check"},
					&cli.StringFlag{Name: "urls", Usage: "comma-separated URLs to check"},
					&cli.IntFlag{Name: "workers", Value: 4, Usage: "concurrent checks"},
					&cli.StringFlag{Name: "format", Value: "text", Usage: "output format: text, json or yaml"},
					&cli.BoolFlag{Name: "no-cache", Usage: "skip the verdict cache"},
				},
			},
			{
				Name:   "extract",
				Usage:  "Print the content extracted from a page",
				Action: extract.ExtractAction,
				Flags: append(pageFlags,
					&cli.StringFlag{Name: "format", Value: "json", Usage: "output format: json or yaml"},
				),
			},
			{
				Name:   "prompt",
				Usage:  "Print the prompt that would be sent for a page",
				Action: extract.PromptAction,
				Flags:  pageFlags,
			},
			{
				Name:  "settings",
				Usage: "Show or change the stored settings",
				Subcommands: []*cli.Command{
					{
						Name:   "show",
						Usage:  "Print the effective settings",
						Action: settings.ShowAction,
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "format", Value: "yaml", Usage: "output format: json or yaml"},
							&cli.BoolFlag{Name: "reveal", Usage: "print the API key unmasked"},
						},
					},
					{
						Name:      "set",
						Usage:     "Store one setting",
						ArgsUsage: "KEY VALUE",
						Action:    settings.SetAction,
					},
					{
						Name:   "reset",
						Usage:  "Remove every stored setting",
						Action: settings.ResetAction,
					},
					{
						Name:   "test",
						Usage:  "Send a short test prompt with the stored settings",
						Action: settings.TestAction,
					},
				},
			},
			{
				Name:  "cache",
				Usage: "Manage the verdict cache",
				Subcommands: []*cli.Command{
					{
						Name:   "prune",
						Usage:  "Remove expired verdicts",
						Action: cache.PruneAction,
					},
					{
						Name:   "clear",
						Usage:  "Remove every cached verdict",
						Action: cache.ClearAction,
					},
				},
			},
			{
				Name:   "history",
				Usage:  "List recent checks",
				Action: history.HistoryAction,
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "limit", Value: 20, Usage: "number of checks to list (0 = all)"},
				},
			},
			{
				Name:   "serve",
				Usage:  "Serve the message channel over HTTP",
				Action: serve.ServeAction,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "addr", Usage: "listen address (default from config)"},
				},
			},
			{
				Name:  "quickstart",
				Usage: "Print a quick-start guide",
				Action: func(c *cli.Context) error {
					fmt.Fprint(c.App.Writer, help.ColdstartYAML)
					return nil
				},
			},
		},
	}
}
