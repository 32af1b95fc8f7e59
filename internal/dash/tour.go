package dash

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// tourStep is one page of the first-run tour.
type tourStep struct {
	title string
	body  string
}

var tourSteps = []tourStep{
	{
		title: "Welcome to thermwatch",
		body: "This dashboard follows your sensor fleet live.\n" +
			"It pulls a fresh snapshot on a schedule and keeps\n" +
			"every panel in sync without redrawing what hasn't changed.",
	},
	{
		title: "Fleet statistics",
		body: "The cards along the top show totals for the whole fleet:\n" +
			"device count, how many reported recently, and reading volume\n" +
			"over the last 24 hours.",
	},
	{
		title: "Device roster",
		body: "Every device appears here with a status badge.\n" +
			"Move with j/k or the arrow keys, press enter for a\n" +
			"detailed view with full charts and recent readings.",
	},
	{
		title: "Temperature charts",
		body: "The fleet average chart covers the last 24 hours.\n" +
			"Each device card plots both channels: contact and\n" +
			"non-contact (infrared).",
	},
	{
		title: "Refresh control",
		body: "Press + and - to change the refresh cadence, r to pull now.\n" +
			"A cadence of \"manual\" disables the timer entirely.\n" +
			"Press t to switch themes, ? for all keys.",
	},
}

// tour is the first-run overlay. It only exists after the first full
// rebuild, so every region it describes is on screen behind it.
type tour struct {
	styles Styles
	step   int
}

func newTour(styles Styles) *tour {
	return &tour{styles: styles}
}

// advance moves to the next step; false means the tour is finished.
func (t *tour) advance() bool {
	t.step++
	return t.step < len(tourSteps)
}

// Render draws the current step as a centered box.
func (t *tour) Render(width, height int) string {
	step := tourSteps[t.step]

	progress := fmt.Sprintf("%d/%d", t.step+1, len(tourSteps))
	hint := "enter: next  esc: skip"
	if t.step == len(tourSteps)-1 {
		hint = "enter: finish"
	}

	content := t.styles.Title.Render(step.title) + "\n\n" +
		t.styles.Value.Render(step.body) + "\n\n" +
		t.styles.Muted.Render(progress+"   "+hint)

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.styles.Palette.Accent).
		Padding(1, 2).
		Render(content)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
