package dash

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/thermwatch/thermwatch/internal/api"
	"github.com/thermwatch/thermwatch/internal/engine"
	"github.com/thermwatch/thermwatch/internal/prefs"
)

func TestStatusPresentation(t *testing.T) {
	s := NewStyles(engine.ThemeDark)

	tests := []struct {
		name   string
		status api.Status
		label  string
	}{
		{"active", api.StatusActive, "active"},
		{"warning", api.StatusWarning, "warning"},
		{"inactive", api.StatusInactive, "inactive"},
		{"unknown degrades to inactive", api.Status("rebooting"), "inactive"},
		{"absent degrades to inactive", api.Status(""), "inactive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := s.StatusPresentation(tt.status)
			assert.Equal(t, tt.label, p.Label)
			assert.NotEmpty(t, p.Glyph)
		})
	}
}

func TestSectionHelpers_Width(t *testing.T) {
	s := NewStyles(engine.ThemeDark)
	const width = 60

	assert.Equal(t, width, lipgloss.Width(s.SectionHeader("Devices", "3 devices", width)))
	assert.Equal(t, width, lipgloss.Width(s.SectionContentLine("row content", width)))
	assert.Equal(t, width, lipgloss.Width(s.SectionFooter(width)))
}

func TestResolveTheme(t *testing.T) {
	assert.Equal(t, engine.ThemeLight, ResolveTheme(prefs.ThemeLight))
	assert.Equal(t, engine.ThemeDark, ResolveTheme(prefs.ThemeDark))
	// auto depends on the terminal; it must still resolve to a concrete theme.
	resolved := ResolveTheme(prefs.ThemeAuto)
	assert.Contains(t, []engine.Theme{engine.ThemeLight, engine.ThemeDark}, resolved)
}

func TestNextThemePref_Cycles(t *testing.T) {
	assert.Equal(t, prefs.ThemeLight, NextThemePref(prefs.ThemeAuto))
	assert.Equal(t, prefs.ThemeDark, NextThemePref(prefs.ThemeLight))
	assert.Equal(t, prefs.ThemeAuto, NextThemePref(prefs.ThemeDark))
}

func TestPaletteFor(t *testing.T) {
	assert.NotEqual(t, PaletteFor(engine.ThemeDark).Background, PaletteFor(engine.ThemeLight).Background)
}
