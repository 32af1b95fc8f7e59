package dash

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/thermwatch/thermwatch/internal/engine"
)

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 {
		return "Loading..."
	}

	// A failure before anything rendered replaces the dashboard.
	if err := m.eng.Err(); err != nil {
		return m.renderStartupError(err)
	}
	if !m.eng.FirstRebuildDone() {
		return m.renderConnecting()
	}

	if m.tour != nil {
		return m.tour.Render(m.width, m.height)
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.viewMode == ViewDetail && m.detail != nil {
		return m.renderDetail()
	}

	return m.renderList()
}

func (m Model) renderConnecting() string {
	msg := m.styles.Label.Render("Connecting to " + m.client.BaseURL() + "...")
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, msg)
}

func (m Model) renderStartupError(err error) string {
	body := m.styles.ErrorText.Render("Cannot reach the dashboard API") + "\n\n" +
		m.styles.Value.Render(err.Error()) + "\n" +
		m.styles.Muted.Render("r: retry  +/-: change cadence  q: quit")
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.styles.Palette.Critical).
		Padding(1, 2).
		Render(body)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m Model) renderList() string {
	var sections []string

	sections = append(sections, m.renderHeader())

	mgr := m.eng.Manager()
	if v, ok := mgr.Get(engine.KeyStats); ok {
		if panel, ok := v.(*statsPanel); ok {
			sections = append(sections, panel.Render())
		}
	}
	if v, ok := mgr.Get(engine.KeyAggregate); ok {
		if chart, ok := v.(*aggregateChart); ok {
			sections = append(sections, chart.Render(m.contentWidth(), 4))
		}
	}
	if v, ok := mgr.Get(engine.KeyRoster); ok {
		if roster, ok := v.(*rosterTable); ok {
			sections = append(sections, roster.Render(m.contentWidth(), m.selected))
		}
	}

	if grid := m.renderDeviceGrid(); grid != "" {
		sections = append(sections, grid)
	}

	sections = append(sections, m.renderFooter())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) contentWidth() int {
	w := m.width - 2
	if w < 40 {
		w = 40
	}
	return w
}

func (m Model) renderHeader() string {
	title := m.styles.Title.Render("thermwatch")

	interval := "manual"
	if d := m.currentInterval(); d > 0 {
		interval = d.String()
	}
	parts := []string{"refresh " + interval}

	if m.period > 0 {
		parts = append(parts, fmt.Sprintf("sensor cadence %ds", m.period))
	}
	if !m.lastUpdate.IsZero() {
		parts = append(parts, "updated "+m.lastUpdate.Format("15:04:05"))
	}
	if m.refreshing {
		parts = append(parts, "pulling...")
	}

	return m.styles.Header.Render(title + "  " + m.styles.Label.Render(strings.Join(parts, " · ")))
}

// renderDeviceGrid lays the per-device cards out two per row, in
// snapshot order.
func (m Model) renderDeviceGrid() string {
	devices := m.devices()
	if len(devices) == 0 {
		return ""
	}

	cols := 2
	if m.width < 100 {
		cols = 1
	}
	cardWidth := (m.contentWidth() / cols) - 2
	if cardWidth < 30 {
		cardWidth = 30
	}

	mgr := m.eng.Manager()
	cards := make([]string, 0, len(devices))
	for i, d := range devices {
		v, ok := mgr.Get(engine.DeviceKey(d.IPAddress))
		if !ok {
			continue
		}
		chart, ok := v.(*deviceChart)
		if !ok {
			continue
		}
		cards = append(cards, chart.Render(cardWidth, i == m.selected))
	}

	var rows []string
	for i := 0; i < len(cards); i += cols {
		end := i + cols
		if end > len(cards) {
			end = len(cards)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards[i:end]...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) renderDetail() string {
	header := m.styles.Header.Render(
		m.styles.Title.Render("thermwatch") + "  " +
			m.styles.DeviceName.Render(m.detail.id))
	footer := m.styles.Footer.Render("esc: back  j/k: scroll  q: quit")
	return lipgloss.JoinVertical(lipgloss.Left, header, m.detail.vp.View(), footer)
}

func (m Model) renderFooter() string {
	return m.styles.Footer.Render(
		"r: refresh  +/-: cadence  enter: detail  t: theme  T: tour  ?: help  q: quit")
}

func (m Model) renderHelp() string {
	rows := [][2]string{
		{"r", "pull a fresh snapshot now"},
		{"+ / -", "speed up / slow down the refresh cadence"},
		{"j / k, ↓ / ↑", "move the device selection"},
		{"enter", "open the selected device's detail view"},
		{"esc", "close detail, help, or skip the tour"},
		{"t", "cycle theme: auto, light, dark"},
		{"T", "restart the first-run tour"},
		{"?", "toggle this help"},
		{"q", "quit"},
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Keys") + "\n\n")
	for _, r := range rows {
		b.WriteString(m.styles.Value.Render(padRight(r[0], 14)) + m.styles.Label.Render(r[1]) + "\n")
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.styles.Palette.Border).
		Padding(1, 2).
		Render(b.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
