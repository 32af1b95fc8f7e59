package engine

import (
	"sort"
	"strings"

	"github.com/thermwatch/thermwatch/internal/logger"
)

// Theme is the resolved color scheme applied to every live visual. The
// "auto" preference is resolved to one of these before it reaches the
// engine.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Visual handle keys. Singleton regions live under "region/" and are never
// swept by DestroyAll(DevicePrefix); per-device visuals live under
// DevicePrefix keyed by device id.
const (
	KeyStats     = "region/stats"
	KeyRoster    = "region/roster"
	KeyAggregate = "region/aggregate"

	DevicePrefix = "device/"
)

// DeviceKey returns the visual handle key for a device id.
func DeviceKey(id string) string {
	return DevicePrefix + id
}

// Visual is the capability interface every on-screen region implements.
// The engine depends only on this contract, never on a concrete widget.
type Visual interface {
	// UpdateSeries replaces the visual's data in place. The payload type
	// is region-specific; see Engine for what each key receives.
	UpdateSeries(data interface{})
	// ApplyTheme restyles the visual without touching its data.
	ApplyTheme(theme Theme)
	// Destroy releases whatever the visual holds. Called exactly once.
	Destroy()
}

// VisualFactory constructs the visual for a key. Called by the Manager
// only when no live handle exists for that key.
type VisualFactory func(key string, theme Theme) Visual

// Manager owns the key to visual-handle map and is the single source of
// truth for which visuals are live. All methods must be called from the
// goroutine that owns the engine; the Manager does not lock.
type Manager struct {
	factory VisualFactory
	theme   Theme
	visuals map[string]Visual
	log     logger.Logger
}

// NewManager creates an empty manager using factory for construction.
func NewManager(factory VisualFactory, theme Theme, log logger.Logger) *Manager {
	if log == nil {
		log = logger.Noop()
	}
	return &Manager{
		factory: factory,
		theme:   theme,
		visuals: make(map[string]Visual),
		log:     log,
	}
}

// CreateOrGet returns the live visual for key, constructing it on first
// use. Idempotent: a second call before Destroy returns the same handle
// and never constructs a second underlying resource.
func (m *Manager) CreateOrGet(key string) Visual {
	if v, ok := m.visuals[key]; ok {
		return v
	}
	v := m.factory(key, m.theme)
	m.visuals[key] = v
	m.log.Debug("created visual %s", key)
	return v
}

// Get returns the live visual for key without creating one.
func (m *Manager) Get(key string) (Visual, bool) {
	v, ok := m.visuals[key]
	return v, ok
}

// Live reports whether a visual currently exists for key.
func (m *Manager) Live(key string) bool {
	_, ok := m.visuals[key]
	return ok
}

// UpdateSeries applies data to the visual for key if it is live. Returns
// false when no visual exists, which is how results that arrive after
// their visual was destroyed get discarded.
func (m *Manager) UpdateSeries(key string, data interface{}) bool {
	v, ok := m.visuals[key]
	if !ok {
		return false
	}
	v.UpdateSeries(data)
	return true
}

// Destroy releases the visual for key and forgets it. Destroying an
// absent key is a no-op.
func (m *Manager) Destroy(key string) {
	v, ok := m.visuals[key]
	if !ok {
		return
	}
	v.Destroy()
	delete(m.visuals, key)
	m.log.Debug("destroyed visual %s", key)
}

// DestroyAll destroys every visual whose key starts with prefix, in
// lexical key order. Called with DevicePrefix it sweeps the per-device
// charts and leaves the singleton regions alone.
func (m *Manager) DestroyAll(prefix string) {
	keys := make([]string, 0, len(m.visuals))
	for key := range m.visuals {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	for _, key := range keys {
		m.Destroy(key)
	}
}

// ApplyThemeAll restyles every live visual in place. No visual is
// destroyed; theme is a display concern and must not perturb data state.
func (m *Manager) ApplyThemeAll(theme Theme) {
	m.theme = theme
	for _, v := range m.visuals {
		v.ApplyTheme(theme)
	}
}

// Theme returns the theme new visuals are constructed with.
func (m *Manager) Theme() Theme {
	return m.theme
}

// Len returns the number of live visuals.
func (m *Manager) Len() int {
	return len(m.visuals)
}
