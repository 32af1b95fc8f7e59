package dash

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/thermwatch/thermwatch/internal/api"
	"github.com/thermwatch/thermwatch/internal/engine"
)

// NewVisualFactory returns the factory the engine uses to construct the
// terminal widgets. Keys decide the concrete type: the three singleton
// regions each get their own widget, everything else is a per-device
// chart.
func NewVisualFactory() engine.VisualFactory {
	return func(key string, theme engine.Theme) engine.Visual {
		switch key {
		case engine.KeyStats:
			return newStatsPanel(theme)
		case engine.KeyRoster:
			return newRosterTable(theme)
		case engine.KeyAggregate:
			return newAggregateChart(theme)
		default:
			return newDeviceChart(strings.TrimPrefix(key, engine.DevicePrefix), theme)
		}
	}
}

// statsPanel renders the fleet KPI cards.
type statsPanel struct {
	styles  Styles
	printer *message.Printer
	stats   api.Statistics
	have    bool
}

func newStatsPanel(theme engine.Theme) *statsPanel {
	return &statsPanel{
		styles:  NewStyles(theme),
		printer: message.NewPrinter(language.English),
	}
}

func (p *statsPanel) UpdateSeries(data interface{}) {
	if stats, ok := data.(api.Statistics); ok {
		p.stats = stats
		p.have = true
	}
}

func (p *statsPanel) ApplyTheme(theme engine.Theme) {
	p.styles = NewStyles(theme)
}

func (p *statsPanel) Destroy() {
	p.have = false
}

// Render lays the four KPI cards out in one row. Numbers are
// locale-formatted; an absent throttled IP renders as an explicit "none"
// rather than an empty card.
func (p *statsPanel) Render() string {
	if !p.have {
		return ""
	}

	dosIP := "none"
	dosStyle := p.styles.Muted
	if p.stats.RecentDOSIP != nil {
		dosIP = *p.stats.RecentDOSIP
		dosStyle = p.styles.ErrorText
	}

	cards := []string{
		p.card("Devices", p.printer.Sprintf("%d", p.stats.TotalDevices), p.styles.Value),
		p.card("Active", p.printer.Sprintf("%d", p.stats.ActiveDevices), p.activeStyle()),
		p.card("Readings (24h)", p.printer.Sprintf("%d", p.stats.ReadingsLast24h), p.styles.Value),
		p.card("Throttled IP", dosIP, dosStyle),
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func (p *statsPanel) card(label, value string, valueStyle lipgloss.Style) string {
	body := p.styles.Label.Render(label) + "\n" + valueStyle.Bold(true).Render(value)
	return p.styles.Card.Render(body)
}

func (p *statsPanel) activeStyle() lipgloss.Style {
	if p.stats.TotalDevices > 0 && p.stats.ActiveDevices == 0 {
		return p.styles.ErrorText
	}
	return lipgloss.NewStyle().Foreground(p.styles.Palette.Healthy)
}

// rosterTable renders the device list with status badges.
type rosterTable struct {
	styles  Styles
	devices []api.Device
}

func newRosterTable(theme engine.Theme) *rosterTable {
	return &rosterTable{styles: NewStyles(theme)}
}

func (r *rosterTable) UpdateSeries(data interface{}) {
	if devices, ok := data.([]api.Device); ok {
		r.devices = devices
	}
}

func (r *rosterTable) ApplyTheme(theme engine.Theme) {
	r.styles = NewStyles(theme)
}

func (r *rosterTable) Destroy() {
	r.devices = nil
}

// Devices returns the roster content in snapshot order.
func (r *rosterTable) Devices() []api.Device {
	return r.devices
}

// Render draws the roster section. selected highlights one row; pass -1
// for no selection. Zero devices renders an explicit empty-state line.
func (r *rosterTable) Render(width, selected int) string {
	count := fmt.Sprintf("%d devices", len(r.devices))
	lines := []string{r.styles.SectionHeader("Devices", count, width)}

	if len(r.devices) == 0 {
		lines = append(lines,
			r.styles.SectionContentLine(r.styles.Muted.Render("No devices are reporting"), width))
	}

	for i, d := range r.devices {
		lines = append(lines, r.styles.SectionContentLine(r.row(d, i == selected), width))
	}

	lines = append(lines, r.styles.SectionFooter(width))
	return strings.Join(lines, "\n")
}

func (r *rosterTable) row(d api.Device, selected bool) string {
	badge := r.styles.StatusPresentation(d.Status)

	nameStyle := r.styles.DeviceName
	marker := "  "
	if selected {
		nameStyle = nameStyle.Foreground(r.styles.Palette.Accent)
		marker = r.styles.Title.Render("❯ ")
	}

	reading := r.styles.Muted.Render("no readings")
	if d.LatestReading != nil {
		reading = r.styles.Value.Render(formatReading(*d.LatestReading))
	}

	return marker +
		badge.Style.Render(badge.Glyph) + " " +
		nameStyle.Render(padRight(d.IPAddress, 16)) + " " +
		badge.Style.Render(padRight(badge.Label, 9)) + " " +
		r.styles.Label.Render(humanizeSince(d.LastSeen)) + "  " +
		reading
}

// formatReading shows whichever channels are present.
func formatReading(r api.Reading) string {
	parts := make([]string, 0, 2)
	if r.ContactTemp != nil {
		parts = append(parts, fmt.Sprintf("contact %.1f°C", *r.ContactTemp))
	}
	if r.NonContactTemp != nil {
		parts = append(parts, fmt.Sprintf("ir %.1f°C", *r.NonContactTemp))
	}
	if len(parts) == 0 {
		return "no temperature"
	}
	return strings.Join(parts, "  ")
}

// humanizeSince renders a compact age like "42s ago" or "3m ago".
func humanizeSince(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds ago", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// aggregateChart renders the fleet-average temperature chart. The widget
// is created once on the first rebuild and keeps its identity across
// cycles; updates replace the series data in place.
type aggregateChart struct {
	styles Styles
	points []api.SeriesPoint
}

func newAggregateChart(theme engine.Theme) *aggregateChart {
	return &aggregateChart{styles: NewStyles(theme)}
}

func (a *aggregateChart) UpdateSeries(data interface{}) {
	if pts, ok := data.([]api.SeriesPoint); ok {
		a.points = pts
	}
}

func (a *aggregateChart) ApplyTheme(theme engine.Theme) {
	a.styles = NewStyles(theme)
}

func (a *aggregateChart) Destroy() {
	a.points = nil
}

// Points returns the current series.
func (a *aggregateChart) Points() []api.SeriesPoint {
	return a.points
}

// Render draws the aggregate section with the braille chart and the
// current range in the header.
func (a *aggregateChart) Render(width, height int) string {
	rangeLabel := ""
	if len(a.points) > 0 {
		vals := seriesValues(a.points)
		lo, hi := vals[0], vals[0]
		for _, v := range vals {
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
		rangeLabel = fmt.Sprintf("%.1f–%.1f°C", lo, hi)
	}

	lines := []string{a.styles.SectionHeader("Fleet average temperature", rangeLabel, width)}

	if len(a.points) == 0 {
		lines = append(lines,
			a.styles.SectionContentLine(a.styles.Muted.Render("No readings in the last 24 hours"), width))
	} else {
		chart := RenderBrailleChart(seriesValues(a.points), width-4, height, a.styles.Palette.Aggregate)
		for _, row := range strings.Split(chart, "\n") {
			lines = append(lines, a.styles.SectionContentLine(row, width))
		}
	}

	lines = append(lines, a.styles.SectionFooter(width))
	return strings.Join(lines, "\n")
}

// deviceChart renders one device's two-channel series card.
type deviceChart struct {
	id     string
	styles Styles
	series engine.DeviceSeries
	have   bool
}

func newDeviceChart(id string, theme engine.Theme) *deviceChart {
	return &deviceChart{id: id, styles: NewStyles(theme)}
}

func (d *deviceChart) UpdateSeries(data interface{}) {
	if series, ok := data.(engine.DeviceSeries); ok {
		d.series = series
		d.have = true
	}
}

func (d *deviceChart) ApplyTheme(theme engine.Theme) {
	d.styles = NewStyles(theme)
}

func (d *deviceChart) Destroy() {
	d.series = engine.DeviceSeries{}
	d.have = false
}

// ID returns the device this chart belongs to.
func (d *deviceChart) ID() string {
	return d.id
}

// Series returns the applied series data.
func (d *deviceChart) Series() engine.DeviceSeries {
	return d.series
}

// Render draws the device card: name plus one sparkline per channel.
// Shows a waiting line until the first series result lands.
func (d *deviceChart) Render(width int, selected bool) string {
	inner := width - 4
	if inner < 8 {
		inner = 8
	}

	var body strings.Builder
	body.WriteString(d.styles.DeviceName.Render(d.id))
	body.WriteString("\n")

	if !d.have || (len(d.series.Contact) == 0 && len(d.series.NonContact) == 0) {
		body.WriteString(d.styles.Muted.Render("waiting for readings"))
	} else {
		body.WriteString(d.channel("contact", d.series.Contact, d.styles.Palette.Contact, inner))
		body.WriteString("\n")
		body.WriteString(d.channel("ir     ", d.series.NonContact, d.styles.Palette.NonContact, inner))
	}

	card := d.styles.Card
	if selected {
		card = d.styles.CardActive
	}
	return card.Width(width).Render(body.String())
}

func (d *deviceChart) channel(label string, pts []api.SeriesPoint, color lipgloss.Color, width int) string {
	if len(pts) == 0 {
		return d.styles.Label.Render(label) + " " + d.styles.Muted.Render("no data")
	}
	latest := pts[len(pts)-1].Value
	sparkWidth := width - len(label) - 9
	if sparkWidth < 4 {
		sparkWidth = 4
	}
	return d.styles.Label.Render(label) + " " +
		RenderSparkline(seriesValues(pts), sparkWidth, color) + " " +
		d.styles.Value.Render(fmt.Sprintf("%5.1f°C", latest))
}
