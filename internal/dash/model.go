package dash

import (
	"context"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/thermwatch/thermwatch/internal/api"
	"github.com/thermwatch/thermwatch/internal/engine"
	"github.com/thermwatch/thermwatch/internal/logger"
	"github.com/thermwatch/thermwatch/internal/prefs"
)

// ViewMode is the current display mode of the dashboard.
type ViewMode int

const (
	ViewList ViewMode = iota
	ViewDetail
)

// intervalLadder holds the refresh cadences the +/- keys step through.
// Zero means manual refresh only.
var intervalLadder = []time.Duration{
	0,
	5 * time.Second,
	10 * time.Second,
	30 * time.Second,
	time.Minute,
	5 * time.Minute,
}

// cycleMsg asks for one reconciliation cycle. Sent by the scheduler.
type cycleMsg struct{}

// CycleMsg builds the message the scheduler injects per cycle. Exported
// so the CLI can wire Program.Send as the scheduler callback.
func CycleMsg() tea.Msg {
	return cycleMsg{}
}

// snapshotMsg carries the result of the primary dashboard fetch.
type snapshotMsg struct {
	snap *api.Snapshot
	err  error
}

// seriesMsg carries the result of one per-device series fetch.
type seriesMsg struct {
	id       string
	readings []api.Reading
	err      error
}

// periodMsg carries the fleet sensor cadence probe result.
type periodMsg struct {
	period int
	err    error
}

// Config wires the model's collaborators.
type Config struct {
	Store     *prefs.Store
	Client    *api.Client
	Scheduler *engine.Scheduler
	Logger    logger.Logger
}

// Model is the Bubble Tea model for the dashboard.
type Model struct {
	store  *prefs.Store
	client *api.Client
	sched  *engine.Scheduler
	eng    *engine.Engine
	log    logger.Logger

	styles Styles
	width  int
	height int

	selected   int
	viewMode   ViewMode
	showHelp   bool
	quitting   bool
	refreshing bool
	lastUpdate time.Time
	period     int

	detail *deviceDetail
	tour   *tour
}

// NewModel creates the dashboard model. The scheduler is owned by the
// caller; the model only adjusts its cadence and triggers pulls.
func NewModel(cfg Config) Model {
	if cfg.Logger == nil {
		cfg.Logger = logger.Noop()
	}

	theme := ResolveTheme(cfg.Store.Current().Theme)
	return Model{
		store:  cfg.Store,
		client: cfg.Client,
		sched:  cfg.Scheduler,
		eng:    engine.New(NewVisualFactory(), theme, cfg.Logger),
		log:    cfg.Logger,
		styles: NewStyles(theme),
	}
}

// Engine exposes the engine for tests.
func (m Model) Engine() *engine.Engine {
	return m.eng
}

// Init probes the sensor cadence; refresh cycles come from the scheduler.
func (m Model) Init() tea.Cmd {
	return m.fetchPeriodCmd()
}

// Update routes messages through the engine and keyboard handling.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.detail != nil {
			m.detail.resize(msg.Width, msg.Height)
		}
		return m, nil

	case tea.KeyMsg:
		if handled, cmd := m.HandleKeyMsg(msg); handled {
			return m, cmd
		}
		if m.detail != nil {
			var cmd tea.Cmd
			m.detail.vp, cmd = m.detail.vp.Update(msg)
			return m, cmd
		}
		return m, nil

	case cycleMsg:
		m.refreshing = true
		return m, m.fetchSnapshotCmd()

	case snapshotMsg:
		return m.applySnapshotMsg(msg)

	case seriesMsg:
		if msg.err != nil {
			m.eng.SeriesFailed(msg.id, msg.err)
			return m, nil
		}
		m.eng.ApplySeries(msg.id, msg.readings)
		if m.detail != nil && m.detail.id == msg.id {
			m.detail.setContent(m.detailContent(msg.id))
		}
		return m, nil

	case periodMsg:
		if msg.err == nil {
			m.period = msg.period
		} else {
			m.log.Debug("sensor config probe failed: %v", msg.err)
		}
		return m, nil
	}

	if m.detail != nil {
		var cmd tea.Cmd
		m.detail.vp, cmd = m.detail.vp.Update(msg)
		return m, cmd
	}
	return m, nil
}

// applySnapshotMsg runs one reconciliation cycle and schedules the
// per-device series fetches the plan calls for.
func (m Model) applySnapshotMsg(msg snapshotMsg) (tea.Model, tea.Cmd) {
	m.refreshing = false

	if msg.err != nil {
		m.eng.HandleFailure(msg.err)
		return m, nil
	}

	plan := m.eng.ApplySnapshot(msg.snap)
	m.lastUpdate = time.Now()
	m.clampSelection()

	ids := append([]string{}, plan.ToCreate...)
	ids = append(ids, plan.ToUpdate...)
	cmds := make([]tea.Cmd, 0, len(ids)+1)
	for _, id := range ids {
		cmds = append(cmds, m.fetchSeriesCmd(id))
	}

	// The tour may only begin once the regions it points at exist.
	if m.tour == nil && !m.store.Current().OnboardingComplete && m.eng.FirstRebuildDone() {
		m.tour = newTour(m.styles)
	}

	return m, tea.Batch(cmds...)
}

// fetchSnapshotCmd performs the primary fetch off the update loop.
func (m Model) fetchSnapshotCmd() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		snap, err := client.FetchDashboard(context.Background())
		return snapshotMsg{snap: snap, err: err}
	}
}

// fetchSeriesCmd fetches one device's series. The result may land after
// the device's visual is gone; the engine's liveness check discards it.
func (m Model) fetchSeriesCmd(id string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		readings, err := client.FetchReadings(context.Background(), id)
		return seriesMsg{id: id, readings: readings, err: err}
	}
}

// fetchPeriodCmd probes the fleet's expected send cadence once at startup.
func (m Model) fetchPeriodCmd() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		cfg, err := client.FetchSensorConfig(context.Background())
		if err != nil {
			return periodMsg{err: err}
		}
		return periodMsg{period: cfg.Period}
	}
}

// devices returns the roster of the last applied snapshot in wire order.
func (m Model) devices() []api.Device {
	snap := m.eng.Snapshot()
	if snap == nil {
		return nil
	}
	return snap.Devices
}

func (m *Model) clampSelection() {
	n := len(m.devices())
	if n == 0 {
		m.selected = 0
		return
	}
	if m.selected >= n {
		m.selected = n - 1
	}
}

// currentInterval returns the active refresh cadence.
func (m Model) currentInterval() time.Duration {
	return m.sched.Interval()
}

// stepInterval moves the cadence to the adjacent ladder rung and persists
// the new value. An off-ladder cadence (an --interval flag) steps to the
// nearest rung in the requested direction. Fire-on-change: the scheduler
// pulls immediately.
func (m *Model) stepInterval(delta int) {
	cur := m.currentInterval()

	var next time.Duration
	if delta > 0 {
		next = intervalLadder[len(intervalLadder)-1]
		for _, d := range intervalLadder {
			if d > cur {
				next = d
				break
			}
		}
	} else {
		next = intervalLadder[0]
		for i := len(intervalLadder) - 1; i >= 0; i-- {
			if intervalLadder[i] < cur {
				next = intervalLadder[i]
				break
			}
		}
	}

	if next == cur {
		return
	}
	m.sched.SetInterval(next)
	if err := m.store.Set("refresh_interval_ms", formatMs(next)); err != nil {
		m.log.Warn("could not persist refresh interval: %v", err)
	}
}

// cycleTheme advances the persisted theme preference and restyles every
// live visual in place.
func (m *Model) cycleTheme() {
	next := NextThemePref(m.store.Current().Theme)
	if err := m.store.Set("theme", next); err != nil {
		m.log.Warn("could not persist theme: %v", err)
	}

	resolved := ResolveTheme(next)
	m.styles = NewStyles(resolved)
	m.eng.SetTheme(resolved)
	if m.tour != nil {
		m.tour.styles = m.styles
	}
}

// finishTour dismisses the tour and persists completion.
func (m *Model) finishTour() {
	m.tour = nil
	if err := m.store.Set("onboarding_complete", "true"); err != nil {
		m.log.Warn("could not persist onboarding flag: %v", err)
	}
}

func formatMs(d time.Duration) string {
	ms := d.Milliseconds()
	if ms < 0 {
		ms = 0
	}
	return strconv.FormatInt(ms, 10)
}
