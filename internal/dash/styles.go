package dash

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/thermwatch/thermwatch/internal/api"
	"github.com/thermwatch/thermwatch/internal/engine"
)

// Styles bundles the lipgloss styles for one resolved theme. Rebuilt
// whenever the theme changes; widgets hold a Styles value, never raw colors.
type Styles struct {
	Palette Palette

	Header     lipgloss.Style
	Footer     lipgloss.Style
	Card       lipgloss.Style
	CardActive lipgloss.Style

	Title      lipgloss.Style
	Label      lipgloss.Style
	Value      lipgloss.Style
	Muted      lipgloss.Style
	DeviceName lipgloss.Style
	ErrorText  lipgloss.Style

	border lipgloss.Style
}

// NewStyles builds the style set for a theme.
func NewStyles(theme engine.Theme) Styles {
	p := PaletteFor(theme)
	return Styles{
		Palette: p,
		Header: lipgloss.NewStyle().
			Foreground(p.TextPrimary).
			Bold(true).
			Padding(0, 1),
		Footer: lipgloss.NewStyle().
			Foreground(p.TextMuted).
			Padding(0, 1),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Border).
			Padding(0, 1).
			MarginRight(1),
		CardActive: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Accent).
			Padding(0, 1).
			MarginRight(1),
		Title:      lipgloss.NewStyle().Foreground(p.Accent).Bold(true),
		Label:      lipgloss.NewStyle().Foreground(p.TextSecondary),
		Value:      lipgloss.NewStyle().Foreground(p.TextPrimary),
		Muted:      lipgloss.NewStyle().Foreground(p.TextMuted),
		DeviceName: lipgloss.NewStyle().Foreground(p.TextPrimary).Bold(true),
		ErrorText:  lipgloss.NewStyle().Foreground(p.Critical),
		border:     lipgloss.NewStyle().Foreground(p.Border),
	}
}

// StatusPresentation is the fixed badge mapping for a device status.
type StatusPresentation struct {
	Glyph string
	Label string
	Style lipgloss.Style
}

// Status glyphs.
const (
	glyphActive   = "◉"
	glyphWarning  = "◔"
	glyphInactive = "◌"
)

// StatusPresentation maps a device status to its badge. Unknown or absent
// statuses degrade to the inactive presentation rather than failing.
func (s Styles) StatusPresentation(status api.Status) StatusPresentation {
	switch status {
	case api.StatusActive:
		return StatusPresentation{
			Glyph: glyphActive,
			Label: "active",
			Style: lipgloss.NewStyle().Foreground(s.Palette.Healthy),
		}
	case api.StatusWarning:
		return StatusPresentation{
			Glyph: glyphWarning,
			Label: "warning",
			Style: lipgloss.NewStyle().Foreground(s.Palette.Warning),
		}
	default:
		return StatusPresentation{
			Glyph: glyphInactive,
			Label: "inactive",
			Style: lipgloss.NewStyle().Foreground(s.Palette.TextMuted),
		}
	}
}

// SectionHeader renders the top border of a section with the title on the
// left and a value on the right:
//
//	╭─ Title ────────────────────────────────────── Value ╮
func (s Styles) SectionHeader(title, value string, width int) string {
	if width < 10 {
		width = 10
	}

	leftWidth := 3 + lipgloss.Width(title) + 1
	rightWidth := 1 + lipgloss.Width(value) + 2

	fillWidth := width - leftWidth - rightWidth
	if fillWidth < 1 {
		fillWidth = 1
	}
	middle := strings.Repeat("─", fillWidth)

	valueStyle := lipgloss.NewStyle().Foreground(s.Palette.Contact).Bold(true)

	return s.border.Render("╭─ ") +
		s.Title.Render(title) +
		s.border.Render(" "+middle+" ") +
		valueStyle.Render(value) +
		s.border.Render(" ╮")
}

// SectionContentLine renders one bordered, padded content line:
//
//	│ content                                              │
func (s Styles) SectionContentLine(content string, width int) string {
	if width < 4 {
		width = 4
	}

	innerWidth := width - 4
	padding := innerWidth - lipgloss.Width(content)
	if padding < 0 {
		padding = 0
	}

	return s.border.Render("│") + " " + content + strings.Repeat(" ", padding) + " " + s.border.Render("│")
}

// SectionFooter renders the bottom border of a section.
func (s Styles) SectionFooter(width int) string {
	if width < 2 {
		width = 2
	}
	return s.border.Render("╰" + strings.Repeat("─", width-2) + "╯")
}
