package dash

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/thermwatch/thermwatch/internal/api"
	"github.com/thermwatch/thermwatch/internal/engine"
)

// deviceDetail is the scrollable full-screen view for one device.
type deviceDetail struct {
	id string
	vp viewport.Model
}

// openDetail switches to the detail view for the selected device and
// re-pulls its series so the view is fresh.
func (m *Model) openDetail() tea.Cmd {
	devices := m.devices()
	if m.selected >= len(devices) {
		return nil
	}
	id := devices[m.selected].IPAddress

	d := &deviceDetail{id: id}
	d.vp = viewport.New(m.width, m.detailHeight())
	d.vp.SetContent(m.detailContent(id))

	m.detail = d
	m.viewMode = ViewDetail
	return m.fetchSeriesCmd(id)
}

func (m Model) detailHeight() int {
	h := m.height - 4
	if h < 5 {
		h = 5
	}
	return h
}

func (d *deviceDetail) resize(width, height int) {
	d.vp.Width = width
	d.vp.Height = height - 4
	if d.vp.Height < 5 {
		d.vp.Height = 5
	}
}

func (d *deviceDetail) setContent(content string) {
	d.vp.SetContent(content)
}

// detailContent builds the detail body: large two-channel charts plus the
// recent readings in reverse chronological order.
func (m Model) detailContent(id string) string {
	var b strings.Builder

	var device *api.Device
	devices := m.devices()
	for i := range devices {
		if devices[i].IPAddress == id {
			device = &devices[i]
			break
		}
	}
	if device != nil {
		badge := m.styles.StatusPresentation(device.Status)
		b.WriteString(badge.Style.Render(badge.Glyph+" "+badge.Label) + "   " +
			m.styles.Label.Render("last seen "+humanizeSince(device.LastSeen)) + "\n\n")
	}

	var series engine.DeviceSeries
	if v, ok := m.eng.Manager().Get(engine.DeviceKey(id)); ok {
		if chart, ok := v.(*deviceChart); ok {
			series = chart.Series()
		}
	}

	chartWidth := m.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}

	b.WriteString(m.detailChannel("Contact temperature", series.Contact, m.styles.Palette.Contact, chartWidth))
	b.WriteString("\n")
	b.WriteString(m.detailChannel("Non-contact temperature", series.NonContact, m.styles.Palette.NonContact, chartWidth))
	b.WriteString("\n")

	b.WriteString(m.styles.Title.Render("Recent readings") + "\n")
	if len(series.Contact) == 0 && len(series.NonContact) == 0 {
		b.WriteString(m.styles.Muted.Render("No readings yet") + "\n")
	} else {
		b.WriteString(m.readingRows(series))
	}

	return b.String()
}

func (m Model) detailChannel(title string, pts []api.SeriesPoint, color lipgloss.Color, width int) string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render(title) + "\n")
	if len(pts) == 0 {
		b.WriteString(m.styles.Muted.Render("No data") + "\n")
		return b.String()
	}

	b.WriteString(RenderBrailleChart(seriesValues(pts), width, 4, color))
	b.WriteString("\n")
	latest := pts[len(pts)-1]
	b.WriteString(m.styles.Label.Render(
		fmt.Sprintf("latest %.1f°C at %s, %d samples",
			latest.Value, latest.Timestamp.Format("15:04:05"), len(pts))) + "\n")
	return b.String()
}

// readingRows merges the two channels back into per-timestamp rows,
// newest first.
func (m Model) readingRows(series engine.DeviceSeries) string {
	type row struct {
		ts      string
		contact string
		ir      string
	}
	byTS := make(map[string]*row)
	order := make([]string, 0)

	add := func(pts []api.SeriesPoint, set func(*row, string)) {
		for _, p := range pts {
			key := p.Timestamp.Format("2006-01-02 15:04:05")
			r, ok := byTS[key]
			if !ok {
				r = &row{ts: key, contact: "-", ir: "-"}
				byTS[key] = r
				order = append(order, key)
			}
			set(r, fmt.Sprintf("%.1f", p.Value))
		}
	}
	add(series.Contact, func(r *row, v string) { r.contact = v })
	add(series.NonContact, func(r *row, v string) { r.ir = v })

	// The timestamp format sorts lexically in chronological order.
	sort.Strings(order)

	var b strings.Builder
	b.WriteString(m.styles.Label.Render(padRight("timestamp", 21)+padRight("contact", 9)+"ir") + "\n")
	for i := len(order) - 1; i >= 0; i-- {
		r := byTS[order[i]]
		b.WriteString(m.styles.Value.Render(padRight(r.ts, 21)+padRight(r.contact, 9)+r.ir) + "\n")
	}
	return b.String()
}
