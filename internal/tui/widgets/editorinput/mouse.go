package editorinput

import (
	tea "github.com/charmbracelet/bubbletea"

	"draftinput/internal/richtext"
	"draftinput/internal/tui/state"
)

func (m Model) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < m.opt.Width && y < m.Height()
}

func isWheel(b tea.MouseButton) bool {
	switch b {
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown, tea.MouseButtonWheelLeft, tea.MouseButtonWheelRight:
		return true
	}
	return false
}

func (m Model) updateMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionRelease:
		m.dragging = false
		return m, nil
	case tea.MouseActionMotion:
		if m.dragging {
			m.dragTo(msg.X, msg.Y)
		}
		return m, nil
	case tea.MouseActionPress:
	default:
		return m, nil
	}

	inside := m.inBounds(msg.X, msg.Y)
	if isWheel(msg.Button) {
		var cmd tea.Cmd
		if inside && m.Mode() == state.ModeEdit {
			m.viewport, cmd = m.viewport.Update(msg)
		}
		return m, cmd
	}
	if msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	if !inside {
		cmd := m.Blur()
		return m, cmd
	}

	switch m.Mode() {
	case state.ModeDisplay:
		m.beginEdit()
	case state.ModeEdit:
		return m.pressEdit(msg)
	case state.ModeDefaultInline:
		m.focused = true
		m.pressInline(msg)
		m.syncViewport(true)
	}
	return m, nil
}

// textOrigin is where text row 0 is drawn and which row is at the top.
func (m Model) textOrigin() (x, y, first int) {
	switch m.Mode() {
	case state.ModeDefaultInline:
		return 0, m.controls(nil).Height(), 0
	case state.ModeEdit:
		return frame, 1 + m.controls(nil).Height(), m.viewport.YOffset
	}
	return frame, 1, 0
}

func (m Model) offsetAtPoint(x, y int) int {
	ox, oy, first := m.textOrigin()
	rows := layoutRows(m.state, m.textWidth())
	return offsetAt(rows, y-oy+first, x-ox)
}

func (m *Model) placeCaret(msg tea.MouseMsg) {
	off := m.offsetAtPoint(msg.X, msg.Y)
	sel := richtext.Selection{Anchor: off, Focus: off}
	if msg.Shift {
		sel.Anchor = m.state.Selection().Anchor
	}
	m.state = m.state.Select(sel)
	m.dragging = true
}

func (m *Model) dragTo(x, y int) {
	if !m.editable() {
		m.dragging = false
		return
	}
	off := m.offsetAtPoint(x, y)
	m.state = m.state.Select(richtext.Selection{Anchor: m.state.Selection().Anchor, Focus: off})
	m.syncViewport(true)
}

// pressControls routes a press on the controls row to the button under x.
func (m *Model) pressControls(x int) {
	var picked richtext.InlineStyle
	hit := false
	m.controls(func(st richtext.InlineStyle) {
		picked, hit = st, true
	}).Press(x)
	if hit {
		m.ToggleInlineStyle(picked)
	}
}

func (m Model) pressEdit(msg tea.MouseMsg) (Model, tea.Cmd) {
	m.focused = true
	ctrlH := m.controls(nil).Height()
	textTop := 1 + ctrlH
	bottom := textTop + m.viewport.Height
	buttonsY := bottom + 1

	switch {
	case msg.Y == 1:
		if !m.session.Loading {
			m.pressControls(msg.X - frame)
		}
	case msg.Y >= textTop && msg.Y < bottom:
		if !m.session.Loading {
			m.placeCaret(msg)
		}
	case msg.Y == buttonsY:
		switch {
		case msg.X >= saveStart && msg.X < saveEnd:
			cmd := m.saveWithLoading()
			return m, cmd
		case msg.X >= cancelStart && msg.X < cancelEnd:
			m.cancel()
			return m, nil
		}
	}
	m.syncViewport(true)
	return m, nil
}

func (m *Model) pressInline(msg tea.MouseMsg) {
	switch {
	case msg.Y == 0:
		m.pressControls(msg.X)
	case msg.Y < m.controls(nil).Height():
		// divider
	default:
		m.placeCaret(msg)
	}
}
