package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/thermwatch/thermwatch/internal/errors"
	"github.com/thermwatch/thermwatch/internal/prefs"
)

// initCommand creates the preference file interactively.
func initCommand(force bool) error {
	path, err := prefs.DefaultPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); err == nil && !force {
		var overwrite bool
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Preferences already exist at %s. Overwrite?", path)).
					Value(&overwrite),
			),
		)
		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Try running with --force to overwrite")
		}
		if !overwrite {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	p := prefs.Default()
	serverURL := p.ServerURL
	intervalMs := strconv.Itoa(p.RefreshIntervalMs)
	theme := p.Theme

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("API server").
				Description("Base URL of the dashboard API").
				Placeholder(prefs.DefaultServerURL).
				Value(&serverURL).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("server URL is required")
					}
					if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
						return fmt.Errorf("server URL must start with http:// or https://")
					}
					return nil
				}),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Refresh interval (milliseconds)").
				Description("How often to pull a fresh snapshot; 0 for manual refresh only").
				Placeholder("30000").
				Value(&intervalMs).
				Validate(func(s string) error {
					n, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil || n < 0 {
						return fmt.Errorf("use a whole number of milliseconds, 0 or greater")
					}
					return nil
				}),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Theme").
				Options(
					huh.NewOption("Auto (match terminal)", prefs.ThemeAuto),
					huh.NewOption("Light", prefs.ThemeLight),
					huh.NewOption("Dark", prefs.ThemeDark),
				).
				Value(&theme),
		),
	)

	if err := form.Run(); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to get user input",
			"Check terminal compatibility, or edit "+path+" directly")
	}

	p.ServerURL = strings.TrimRight(strings.TrimSpace(serverURL), "/")
	p.RefreshIntervalMs, _ = strconv.Atoi(strings.TrimSpace(intervalMs))
	p.Theme = theme

	store, err := prefs.NewSession(path, p)
	if err != nil {
		return err
	}
	if err := store.Update(p); err != nil {
		return err
	}

	fmt.Printf("✓ Preferences written to %s\n", path)
	fmt.Println("Run 'thermwatch' to start the dashboard.")
	return nil
}
