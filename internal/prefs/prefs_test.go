package prefs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	s, err := Load(path)
	require.NoError(t, err)
	return s
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	s := tempStore(t)

	p := s.Current()
	assert.Equal(t, DefaultServerURL, p.ServerURL)
	assert.Equal(t, DefaultRefreshIntervalMs, p.RefreshIntervalMs)
	assert.Equal(t, ThemeAuto, p.Theme)
	assert.False(t, p.OnboardingComplete)
}

func TestLoad_PartialFileMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("theme: dark\n"), 0o600))

	s, err := Load(path)
	require.NoError(t, err)

	p := s.Current()
	assert.Equal(t, ThemeDark, p.Theme)
	assert.Equal(t, DefaultRefreshIntervalMs, p.RefreshIntervalMs)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("theme: [unclosed\n"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_RejectsBadValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("theme: neon\n"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestStore_SetGetRoundTrip(t *testing.T) {
	s := tempStore(t)

	require.NoError(t, s.Set("refresh_interval_ms", "5000"))
	require.NoError(t, s.Set("theme", "light"))
	require.NoError(t, s.Set("onboarding_complete", "true"))

	// Re-load from disk to prove persistence.
	reloaded, err := Load(s.Path())
	require.NoError(t, err)

	got, err := reloaded.Get("refresh_interval_ms")
	require.NoError(t, err)
	assert.Equal(t, "5000", got)

	got, err = reloaded.Get("theme")
	require.NoError(t, err)
	assert.Equal(t, "light", got)

	got, err = reloaded.Get("onboarding_complete")
	require.NoError(t, err)
	assert.Equal(t, "true", got)
}

func TestStore_SetZeroIntervalMeansManual(t *testing.T) {
	s := tempStore(t)

	require.NoError(t, s.Set("refresh_interval_ms", "0"))
	assert.Equal(t, 0, s.Current().RefreshIntervalMs)
}

func TestStore_SetRejectsInvalid(t *testing.T) {
	s := tempStore(t)

	assert.Error(t, s.Set("refresh_interval_ms", "-1"))
	assert.Error(t, s.Set("refresh_interval_ms", "soon"))
	assert.Error(t, s.Set("theme", "sepia"))
	assert.Error(t, s.Set("no_such_key", "x"))

	// Failed sets must not clobber current state.
	assert.Equal(t, DefaultRefreshIntervalMs, s.Current().RefreshIntervalMs)
}

func TestStore_SetTrimsTrailingSlash(t *testing.T) {
	s := tempStore(t)

	require.NoError(t, s.Set("server_url", "http://sensors.local:8000/"))
	assert.Equal(t, "http://sensors.local:8000", s.Current().ServerURL)
}

func TestWithSession_OverridesStayOffDisk(t *testing.T) {
	s := tempStore(t)
	require.NoError(t, s.Set("server_url", "http://sensors.local:8000"))

	p := s.Current()
	p.ServerURL = "http://session-only:9999"
	p.Theme = ThemeDark
	session, err := s.WithSession(p)
	require.NoError(t, err)
	assert.Equal(t, "http://session-only:9999", session.Current().ServerURL)

	// Persisting an unrelated key must not drag the overrides along.
	require.NoError(t, session.Set("refresh_interval_ms", "5000"))

	reloaded, err := Load(s.Path())
	require.NoError(t, err)
	assert.Equal(t, "http://sensors.local:8000", reloaded.Current().ServerURL)
	assert.Equal(t, ThemeAuto, reloaded.Current().Theme)
	assert.Equal(t, 5000, reloaded.Current().RefreshIntervalMs)

	// The session keeps its overrides and sees the persisted change.
	assert.Equal(t, "http://session-only:9999", session.Current().ServerURL)
	assert.Equal(t, 5000, session.Current().RefreshIntervalMs)
}

func TestWithSession_SettingOverriddenKeyPersistsIt(t *testing.T) {
	s := tempStore(t)

	p := s.Current()
	p.Theme = ThemeDark
	session, err := s.WithSession(p)
	require.NoError(t, err)

	require.NoError(t, session.Set("theme", ThemeLight))

	reloaded, err := Load(s.Path())
	require.NoError(t, err)
	assert.Equal(t, ThemeLight, reloaded.Current().Theme)
}

func TestUpdate_RejectsEmptyServerURL(t *testing.T) {
	s := tempStore(t)

	p := s.Current()
	p.ServerURL = "  "
	assert.Error(t, s.Update(p))
}
