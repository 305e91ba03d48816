package tui

import (
	"errors"
	"fmt"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	spinner "github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"crystalview/internal/render"
	"crystalview/internal/viewer"
)

const (
	rotateStep = 15.0 // degrees per key press
	dragStep   = 4.0  // degrees per cell dragged
	zoomStep   = 1.2
	wheelStep  = 1.1
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.l.SetSize(sidebarWidth-2, m.listHeight())
		return m, nil
	case pageMsg:
		return m.handlePage(msg), nil
	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	case tea.MouseMsg:
		return m.handleMouse(msg), nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handlePage(msg pageMsg) Model {
	if msg.seq != m.seq {
		m.logger.Debug("stale page dropped", zap.String("id", msg.id), zap.Int("seq", msg.seq))
		return m
	}
	m.loading = false
	if msg.err != nil {
		// no partial rendering: the previous page goes away with the failure
		m.page = nil
		m.showSites = false
		m.statusErr = true
		var fe *viewer.FetchError
		if errors.As(msg.err, &fe) {
			m.status = fe.Message()
		} else {
			m.status = msg.err.Error()
		}
		return m
	}
	m.page = msg.page
	m.status = msg.page.Status()
	m.statusErr = false
	m.refreshSites()
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// while the list filter is active every key belongs to it
	if m.showSidebar && m.l.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	if m.inputMode {
		switch msg.String() {
		case "esc":
			m.inputMode = false
			m.ti.Blur()
			return m, nil
		case "enter":
			id := strings.TrimSpace(m.ti.Value())
			m.inputMode = false
			m.ti.Blur()
			if id == "" {
				m.status = "enter a material ID"
				m.statusErr = true
				return m, nil
			}
			return m.fetch(id)
		}
		var cmd tea.Cmd
		m.ti, cmd = m.ti.Update(msg)
		return m, cmd
	}
	if m.showSites {
		switch msg.String() {
		case "esc", "t":
			m.showSites = false
			return m, nil
		case "ctrl+c", "q":
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.tbl, cmd = m.tbl.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "/", "i":
		m.inputMode = true
		m.ti.CursorEnd()
		cmd := m.ti.Focus()
		return m, cmd
	case "enter":
		if m.showSidebar {
			return m.selectItem()
		}
		return m, nil
	case "tab":
		m.showSidebar = !m.showSidebar
		m.l.SetSize(sidebarWidth-2, m.listHeight())
		return m, nil
	case "1":
		m.mode = pane3D
		m.setStatus("view: 3D")
	case "2":
		m.mode = pane2D
		m.setStatus("view: 2D")
	case "3":
		m.mode = paneBoth
		m.setStatus("view: 3D + 2D")
	case "+", "=":
		m.cam = m.cam.Scale(zoomStep)
		m.setStatus(fmt.Sprintf("zoom: %.2fx", m.cam.Zoom))
	case "-", "_":
		m.cam = m.cam.Scale(1 / zoomStep)
		m.setStatus(fmt.Sprintf("zoom: %.2fx", m.cam.Zoom))
	case "r":
		m.cam = render.DefaultCamera()
		m.setStatus("camera reset")
	case "f":
		if id := m.currentID(); id != "" {
			return m.fetchWith(m.active, id)
		}
		return m, nil
	case "t":
		if m.page != nil {
			m.showSites = true
			m.setStatus(fmt.Sprintf("sites: %d", len(m.page.Structure.Sites)))
		}
	case "?":
		m.helpVisible = !m.helpVisible
	case "left", "h":
		m.cam = m.cam.Rotate(-rotateStep, 0)
	case "right", "l":
		m.cam = m.cam.Rotate(rotateStep, 0)
	case "k":
		m.cam = m.cam.Rotate(0, rotateStep)
	case "j":
		m.cam = m.cam.Rotate(0, -rotateStep)
	case "up", "down":
		if !m.showSidebar {
			if msg.String() == "up" {
				m.cam = m.cam.Rotate(0, rotateStep)
			} else {
				m.cam = m.cam.Rotate(0, -rotateStep)
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	default:
		if m.showSidebar {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) Model {
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.cam = m.cam.Scale(wheelStep)
	case msg.Button == tea.MouseButtonWheelDown:
		m.cam = m.cam.Scale(1 / wheelStep)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if msg.X >= m.mainOriginX() {
			m.dragging = true
			m.lastX, m.lastY = msg.X, msg.Y
		}
	case msg.Action == tea.MouseActionMotion && m.dragging:
		dx, dy := msg.X-m.lastX, msg.Y-m.lastY
		m.cam = m.cam.Rotate(float64(dx)*dragStep, float64(-dy)*dragStep)
		m.lastX, m.lastY = msg.X, msg.Y
	case msg.Action == tea.MouseActionRelease:
		m.dragging = false
	}
	return m
}

// currentID is the identifier of the shown or pending page.
func (m Model) currentID() string {
	if m.page != nil {
		return m.page.ID
	}
	if m.pending != "" {
		return m.pending
	}
	return strings.TrimSpace(m.ti.Value())
}

func (m Model) mainOriginX() int {
	if m.showSidebar {
		return sidebarWidth + 1
	}
	return 0
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}
