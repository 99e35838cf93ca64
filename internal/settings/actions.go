package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/dtnitsch/clickbait-detector/internal/common"
	"github.com/dtnitsch/clickbait-detector/models"
	"github.com/dtnitsch/clickbait-detector/pkg/messaging"
)

// ShowAction prints the effective settings. The API key is masked unless
// --reveal is given.
func ShowAction(c *cli.Context) error {
	app, err := common.OpenApp(c)
	if err != nil {
		return err
	}
	defer app.Close()

	settings, err := app.Settings.Load()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	if !c.Bool("reveal") {
		settings = settings.Redacted()
	}

	w := c.App.Writer
	switch strings.ToLower(c.String("format")) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(settings)
	case "yaml", "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(settings)
	default:
		return fmt.Errorf("unknown format %q (want json or yaml)", c.String("format"))
	}
}

// SetAction stores one setting: clickbait settings set KEY VALUE.
func SetAction(c *cli.Context) error {
	if c.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "Usage: clickbait settings set KEY VALUE")
		fmt.Fprintf(os.Stderr, "Keys: %s\n", strings.Join(models.SettingKeys, ", "))
		return cli.Exit("", 1)
	}
	key, value := c.Args().Get(0), c.Args().Get(1)

	app, err := common.OpenApp(c)
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.Settings.Set(key, value); err != nil {
		return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
	}

	shown := value
	if key == models.KeyAPIKey {
		shown = models.Settings{APIKey: value}.Redacted().APIKey
	}
	fmt.Fprintf(c.App.Writer, "%s = %s\n", key, shown)
	return nil
}

// ResetAction removes every stored setting so defaults apply again.
func ResetAction(c *cli.Context) error {
	app, err := common.OpenApp(c)
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.Settings.Reset(); err != nil {
		return fmt.Errorf("failed to reset settings: %w", err)
	}
	fmt.Fprintln(c.App.Writer, "Settings reset to defaults")
	return nil
}

// TestAction sends the short connection-test prompt with the stored settings.
func TestAction(c *cli.Context) error {
	app, err := common.OpenApp(c)
	if err != nil {
		return err
	}
	defer app.Close()

	router := messaging.NewRouter(app.Logger)
	service := &messaging.Service{
		Checker:  app.Checker(false),
		Tester:   app.LLM,
		Settings: app.Settings,
		Mode:     &messaging.Mode{},
	}
	service.Register(router)

	resp, err := router.Dispatch(c.Context, models.Message{Action: models.ActionTestConnection})
	if err != nil {
		return err
	}
	if resp.Error != "" {
		return cli.Exit(resp.Error, 1)
	}
	fmt.Fprintln(c.App.Writer, resp.TestMessage)
	return nil
}
