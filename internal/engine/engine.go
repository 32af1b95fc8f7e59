package engine

import (
	"github.com/thermwatch/thermwatch/internal/api"
	"github.com/thermwatch/thermwatch/internal/logger"
)

// DeviceSeries is the two-channel payload a per-device visual receives.
// Absent samples are filtered per channel, never interpolated.
type DeviceSeries struct {
	Contact    []api.SeriesPoint
	NonContact []api.SeriesPoint
}

// NewDeviceSeries splits chronological readings into the two channels,
// dropping samples whose value is absent.
func NewDeviceSeries(readings []api.Reading) DeviceSeries {
	var s DeviceSeries
	for _, r := range readings {
		if r.ContactTemp != nil {
			s.Contact = append(s.Contact, api.SeriesPoint{Timestamp: r.Timestamp, Value: *r.ContactTemp})
		}
		if r.NonContactTemp != nil {
			s.NonContact = append(s.NonContact, api.SeriesPoint{Timestamp: r.Timestamp, Value: *r.NonContactTemp})
		}
	}
	return s
}

// Engine owns the rendered-set ground truth and applies reconciliation
// plans through its Manager. One Engine instance carries all
// process-level dashboard state: the rendered id set, the current theme,
// and the first-cycle flag. All methods must be called from the single
// goroutine that drives the update loop.
//
// Payloads pushed through UpdateSeries per key:
//
//	KeyStats      api.Statistics
//	KeyRoster     []api.Device
//	KeyAggregate  []api.SeriesPoint
//	DeviceKey(id) DeviceSeries
type Engine struct {
	mgr      *Manager
	rendered IDSet
	snapshot *api.Snapshot
	firstErr error
	log      logger.Logger
}

// New creates an engine whose visuals come from factory.
func New(factory VisualFactory, theme Theme, log logger.Logger) *Engine {
	if log == nil {
		log = logger.Noop()
	}
	return &Engine{
		mgr: NewManager(factory, theme, log),
		log: log,
	}
}

// Manager exposes the lifecycle manager, primarily so the view layer can
// look up live visuals for rendering.
func (e *Engine) Manager() *Manager {
	return e.mgr
}

// FirstRebuildDone reports whether at least one snapshot has been fully
// applied. The guided tour is gated on this: the regions it points at must
// exist before it starts.
func (e *Engine) FirstRebuildDone() bool {
	return e.rendered != nil
}

// Snapshot returns the most recently applied snapshot, or nil before the
// first successful cycle. On a failed cycle this keeps returning the last
// good snapshot.
func (e *Engine) Snapshot() *api.Snapshot {
	return e.snapshot
}

// RenderedIDs returns the ids of the most recently applied snapshot's
// devices in lexical order. Empty before the first successful cycle.
func (e *Engine) RenderedIDs() []string {
	if e.rendered == nil {
		return nil
	}
	return e.rendered.Sorted()
}

// Err returns the failure blocking the first render, or nil once any
// snapshot has been applied.
func (e *Engine) Err() error {
	return e.firstErr
}

// ApplySnapshot reconciles the snapshot against the rendered set and
// applies the resulting plan: destroys before creates on a full rebuild,
// then refreshes the singleton regions unconditionally. The returned plan
// tells the caller which devices need a follow-up series fetch (ToCreate
// and ToUpdate).
func (e *Engine) ApplySnapshot(snap *api.Snapshot) Plan {
	plan := Reconcile(e.rendered, snap.DeviceIDs())

	if plan.FullRebuild {
		for _, id := range plan.ToDestroy {
			e.mgr.Destroy(DeviceKey(id))
		}
		for _, id := range plan.ToCreate {
			e.mgr.CreateOrGet(DeviceKey(id))
		}
		e.log.Info("full rebuild: %d destroyed, %d created",
			len(plan.ToDestroy), len(plan.ToCreate))
	}

	e.mgr.CreateOrGet(KeyStats).UpdateSeries(snap.Statistics)
	e.mgr.CreateOrGet(KeyRoster).UpdateSeries(snap.Devices)
	e.mgr.CreateOrGet(KeyAggregate).UpdateSeries(snap.AggregateChart.Points())

	e.rendered = NewIDSet(snap.DeviceIDs()...)
	e.snapshot = snap
	e.firstErr = nil
	return plan
}

// HandleFailure records a failed primary fetch. Before the first
// successful cycle the failure is fatal for rendering: it is stored and
// shown in place of the dashboard, and true is returned. Afterwards the
// failure is logged and swallowed; the last good state stays visible and
// false is returned.
func (e *Engine) HandleFailure(err error) bool {
	if !e.FirstRebuildDone() {
		e.firstErr = err
		e.log.Error("initial fetch failed: %v", err)
		return true
	}
	e.log.Warn("refresh failed, keeping last good state: %v", err)
	return false
}

// ApplySeries delivers a per-device series result. Returns false when the
// device's visual no longer exists, which discards results that complete
// after their device left the fleet.
func (e *Engine) ApplySeries(deviceID string, readings []api.Reading) bool {
	key := DeviceKey(deviceID)
	if !e.mgr.Live(key) {
		e.log.Debug("discarding series for departed device %s", deviceID)
		return false
	}
	return e.mgr.UpdateSeries(key, NewDeviceSeries(readings))
}

// SeriesFailed records a failed per-device series fetch. Isolated per
// device: the chart keeps whatever it was showing and other devices are
// unaffected.
func (e *Engine) SeriesFailed(deviceID string, err error) {
	e.log.Warn("series fetch failed for %s: %v", deviceID, err)
}

// SetTheme restyles every live visual in place. Data state is untouched.
func (e *Engine) SetTheme(theme Theme) {
	e.mgr.ApplyThemeAll(theme)
}
