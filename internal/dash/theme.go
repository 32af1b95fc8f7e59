package dash

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/thermwatch/thermwatch/internal/engine"
	"github.com/thermwatch/thermwatch/internal/prefs"
)

// Palette holds every color the dashboard draws with. One palette exists
// per resolved theme; widgets rebuild their styles from it on theme change.
type Palette struct {
	Background lipgloss.Color
	Surface    lipgloss.Color
	Border     lipgloss.Color

	TextPrimary   lipgloss.Color
	TextSecondary lipgloss.Color
	TextMuted     lipgloss.Color

	Accent lipgloss.Color

	// Status colors shared by roster badges and stat highlights.
	Healthy  lipgloss.Color
	Warning  lipgloss.Color
	Critical lipgloss.Color

	// Per-channel series colors.
	Contact    lipgloss.Color
	NonContact lipgloss.Color
	Aggregate  lipgloss.Color
}

var darkPalette = Palette{
	Background:    lipgloss.Color("#0A0A0F"),
	Surface:       lipgloss.Color("#12121A"),
	Border:        lipgloss.Color("#2A2A4A"),
	TextPrimary:   lipgloss.Color("#FFFFFF"),
	TextSecondary: lipgloss.Color("#B4B4D0"),
	TextMuted:     lipgloss.Color("#6B6B8D"),
	Accent:        lipgloss.Color("#FF2E97"),
	Healthy:       lipgloss.Color("#39FF14"),
	Warning:       lipgloss.Color("#FFAA00"),
	Critical:      lipgloss.Color("#FF0055"),
	Contact:       lipgloss.Color("#00FFFF"),
	NonContact:    lipgloss.Color("#BF40FF"),
	Aggregate:     lipgloss.Color("#00FFFF"),
}

var lightPalette = Palette{
	Background:    lipgloss.Color("#FAFAFA"),
	Surface:       lipgloss.Color("#F0F0F5"),
	Border:        lipgloss.Color("#C8C8DC"),
	TextPrimary:   lipgloss.Color("#1A1A2E"),
	TextSecondary: lipgloss.Color("#4A4A68"),
	TextMuted:     lipgloss.Color("#8A8AA8"),
	Accent:        lipgloss.Color("#C2185B"),
	Healthy:       lipgloss.Color("#1B8A2F"),
	Warning:       lipgloss.Color("#B07400"),
	Critical:      lipgloss.Color("#C2003F"),
	Contact:       lipgloss.Color("#00838F"),
	NonContact:    lipgloss.Color("#6A1B9A"),
	Aggregate:     lipgloss.Color("#00838F"),
}

// PaletteFor returns the palette for a resolved theme.
func PaletteFor(theme engine.Theme) Palette {
	if theme == engine.ThemeLight {
		return lightPalette
	}
	return darkPalette
}

// ResolveTheme maps a theme preference (auto, light, dark) to a concrete
// engine theme. "auto" asks the terminal for its background color.
func ResolveTheme(pref string) engine.Theme {
	switch pref {
	case prefs.ThemeLight:
		return engine.ThemeLight
	case prefs.ThemeDark:
		return engine.ThemeDark
	default:
		if termenv.HasDarkBackground() {
			return engine.ThemeDark
		}
		return engine.ThemeLight
	}
}

// NextThemePref cycles the persisted preference: auto, light, dark, auto.
func NextThemePref(pref string) string {
	switch pref {
	case prefs.ThemeAuto:
		return prefs.ThemeLight
	case prefs.ThemeLight:
		return prefs.ThemeDark
	default:
		return prefs.ThemeAuto
	}
}
