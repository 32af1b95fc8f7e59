package cli

import (
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/thermwatch/thermwatch/internal/api"
	"github.com/thermwatch/thermwatch/internal/dash"
	"github.com/thermwatch/thermwatch/internal/engine"
	"github.com/thermwatch/thermwatch/internal/errors"
	"github.com/thermwatch/thermwatch/internal/logger"
	"github.com/thermwatch/thermwatch/internal/prefs"
)

// dashboardCommand starts the TUI. Flags override the preference file for
// this session only; persistent changes go through init or config set.
func dashboardCommand(server, interval, theme string, forceTour bool) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New(errors.ErrRender,
			"Standard output is not a terminal",
			"Run thermwatch in an interactive terminal, or use 'thermwatch snapshot' for scripting")
	}

	store, err := prefs.LoadDefault()
	if err != nil {
		return err
	}

	cur := store.Current()
	if server != "" {
		cur.ServerURL = server
	}
	if theme != "" {
		cur.Theme = theme
	}

	refresh := time.Duration(cur.RefreshIntervalMs) * time.Millisecond
	if interval != "" {
		refresh, err = parseInterval(interval)
		if err != nil {
			return err
		}
	}

	if forceTour {
		// Reset the completion flag in memory only; finishing the tour
		// persists it again.
		cur.OnboardingComplete = false
	}

	// Session overrides live in memory; keys changed from the dashboard
	// (theme, cadence) still persist without dragging the overrides along.
	sessionStore, err := store.WithSession(cur)
	if err != nil {
		return err
	}

	log := logger.NewFileLogger("dash")
	client := api.NewClient(cur.ServerURL)

	// Notify can fire on the update-loop goroutine (manual refresh key)
	// and before Run starts (fire-on-change), so Send must not block the
	// caller.
	var p *tea.Program
	sched := engine.NewScheduler(func() {
		go p.Send(dash.CycleMsg())
	})

	model := dash.NewModel(dash.Config{
		Store:     sessionStore,
		Client:    client,
		Scheduler: sched,
		Logger:    log,
	})

	p = tea.NewProgram(model, tea.WithAltScreen())

	sched.Start(refresh)
	_, err = p.Run()
	sched.Stop()

	if err != nil {
		return errors.WrapWithCode(err, errors.ErrRender,
			"Dashboard terminated unexpectedly",
			"Check the log under ~/.local/state/thermwatch/")
	}
	return nil
}

// parseInterval accepts either a Go duration ("10s", "1m") or "0".
func parseInterval(s string) (time.Duration, error) {
	if s == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return 0, errors.New(errors.ErrConfig,
			"Invalid refresh interval: "+s,
			"Use a duration like 10s or 1m, or 0 for manual refresh")
	}
	return d, nil
}
