package history

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/clickbait-detector/internal/common"
	"github.com/dtnitsch/clickbait-detector/pkg/db"
)

func HistoryAction(c *cli.Context) error {
	config, err := common.LoadConfig(c)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	database, err := db.Open(config.Database)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	checks, err := database.ListChecks(c.Int("limit"))
	if err != nil {
		return err
	}

	w := c.App.Writer
	if len(checks) == 0 {
		fmt.Fprintln(w, "No checks found")
		return nil
	}

	// Print table header
	fmt.Fprintf(w, "%-20s %-10s %-7s %-8s %-50s %s\n",
		"Checked", "Verdict", "Cached", "Time", "URL", "Title / Error")
	fmt.Fprintln(w, strings.Repeat("-", 120))

	for _, ch := range checks {
		detail := ch.Title
		if !ch.Success {
			detail = ch.ErrorMessage
		}
		fmt.Fprintf(w, "%-20s %-10s %-7s %-8s %-50s %s\n",
			ch.CheckedAt.Format("2006-01-02 15:04:05"),
			verdictLabel(ch),
			yesNo(ch.Cached),
			fmt.Sprintf("%dms", ch.Duration.Milliseconds()),
			truncate(ch.URL, 50),
			truncate(detail, 60),
		)
	}

	stats, err := database.Stats()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "\nTotal: %d checks (%d succeeded, %d clickbait, %d from cache)\n",
		stats.Total, stats.Succeeded, stats.Clickbait, stats.Cached)

	return nil
}

func verdictLabel(ch db.Check) string {
	switch {
	case !ch.Success:
		return ch.ErrorType
	case ch.Clickbait == nil:
		return "unknown"
	case *ch.Clickbait:
		return "clickbait"
	default:
		return "ok"
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
