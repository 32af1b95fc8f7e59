package dash

import tea "github.com/charmbracelet/bubbletea"

// Key bindings as constants for consistency.
const (
	KeyQuit        = "q"
	KeyQuitAlt     = "ctrl+c"
	KeyRefresh     = "r"
	KeyFaster      = "+"
	KeyFasterAlt   = "="
	KeySlower      = "-"
	KeyTheme       = "t"
	KeyTour        = "T"
	KeySelectPrev  = "up"
	KeySelectPrevK = "k"
	KeySelectNext  = "down"
	KeySelectNextJ = "j"
	KeyExpand      = "enter"
	KeyCollapse    = "esc"
	KeyToggleHelp  = "?"
)

// HandleKeyMsg processes keyboard input. Returns true if the key was
// handled, false otherwise.
func (m *Model) HandleKeyMsg(msg tea.KeyMsg) (bool, tea.Cmd) {
	key := msg.String()

	// The tour swallows everything except quit until dismissed.
	if m.tour != nil {
		switch key {
		case KeyQuit, KeyQuitAlt:
			m.quitting = true
			m.sched.Stop()
			return true, tea.Quit
		case KeyExpand:
			if !m.tour.advance() {
				m.finishTour()
			}
			return true, nil
		case KeyCollapse:
			m.finishTour()
			return true, nil
		}
		return true, nil
	}

	if key == KeyToggleHelp {
		m.showHelp = !m.showHelp
		return true, nil
	}
	if m.showHelp && key == KeyCollapse {
		m.showHelp = false
		return true, nil
	}

	// Detail view: Esc returns to the list, everything else except quit
	// and refresh falls through to the viewport for scrolling.
	if m.viewMode == ViewDetail {
		switch key {
		case KeyCollapse:
			m.viewMode = ViewList
			m.detail = nil
			return true, nil
		case KeyQuit, KeyQuitAlt:
			m.quitting = true
			m.sched.Stop()
			return true, tea.Quit
		case KeyRefresh:
			m.sched.TriggerNow()
			return true, nil
		}
		return false, nil
	}

	switch key {
	case KeyQuit, KeyQuitAlt:
		m.quitting = true
		m.sched.Stop()
		return true, tea.Quit

	case KeyRefresh:
		m.sched.TriggerNow()
		return true, nil

	case KeyFaster, KeyFasterAlt:
		m.stepInterval(1)
		return true, nil

	case KeySlower:
		m.stepInterval(-1)
		return true, nil

	case KeyTheme:
		m.cycleTheme()
		return true, nil

	case KeyTour:
		if m.eng.FirstRebuildDone() {
			m.tour = newTour(m.styles)
		}
		return true, nil

	case KeySelectPrev, KeySelectPrevK:
		if m.selected > 0 {
			m.selected--
		}
		return true, nil

	case KeySelectNext, KeySelectNextJ:
		if m.selected < len(m.devices())-1 {
			m.selected++
		}
		return true, nil

	case KeyExpand:
		if m.viewMode == ViewList && len(m.devices()) > 0 {
			return true, m.openDetail()
		}
		return true, nil

	case KeyCollapse:
		m.viewMode = ViewList
		m.detail = nil
		return true, nil
	}

	return false, nil
}
