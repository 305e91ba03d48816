package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"crystalview/internal/render"
)

const (
	headerHeight = 2
	footerHeight = 1
	sidebarFixed = 6 // label, input, status, blank and borders above the list
)

func (m Model) contentHeight() int {
	return max(4, m.height-headerHeight-footerHeight)
}

func (m Model) listHeight() int {
	return max(3, m.contentHeight()-sidebarFixed)
}

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	contentHeight := m.contentHeight()
	contentWidth := max(20, m.width)

	header := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(" ✨ 3D Crystal Structure Viewer "),
		dimStyle.Render(" Enter a Materials Project ID to fetch and visualize its crystal structure."),
	)

	mainWidth := contentWidth
	var body string
	if m.showSidebar {
		mainWidth = max(10, contentWidth-sidebarWidth-1)
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.sidebarView(contentHeight), " ", m.mainView(mainWidth, contentHeight))
	} else {
		body = m.mainView(mainWidth, contentHeight)
	}

	ui := lipgloss.JoinVertical(lipgloss.Left, header, body, m.footerView(contentWidth))
	return appStyle.Width(contentWidth).Height(m.height).Render(ui)
}

func (m Model) sidebarView(h int) string {
	w := sidebarWidth
	status := dimStyle.Render(m.status)
	switch {
	case m.loading:
		status = m.spin.View() + " " + dimStyle.Render("fetching "+m.pending)
	case m.statusErr:
		status = errStyle.Render("❌ " + m.status)
	case m.page != nil && m.status == m.page.Status():
		status = okStyle.Render("✅ " + m.status)
	}
	m.l.SetSize(w-2, m.listHeight())
	parts := []string{
		headingStyle.Render("Material ID"),
		m.ti.View(),
		lipgloss.NewStyle().Width(w - 2).Render(status),
		"",
		m.l.View(),
	}
	return lipgloss.NewStyle().Width(w).Height(h).Render(strings.Join(parts, "\n"))
}

func (m Model) mainView(w, h int) string {
	if m.page == nil {
		var msg string
		switch {
		case m.loading:
			msg = m.spin.View() + " Fetching " + m.pending + "…"
		case m.statusErr:
			msg = boxStyle.BorderForeground(errFg).Render(errStyle.Render("❌ " + m.status))
		default:
			msg = dimStyle.Render("Press / to enter a material ID, or pick one from the list.")
		}
		return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, msg)
	}

	props := m.page.Properties
	lines := []string{headingStyle.Render("🔬 " + props.Header())}
	for _, l := range props.Lines() {
		lines = append(lines, "  "+l)
	}
	lines = append(lines, "")
	info := strings.Join(lines, "\n")
	plotH := max(6, h-len(lines))

	var pane string
	switch {
	case m.showSites:
		tw := min(w, tableWidth()+4)
		m.tbl.SetWidth(tw - 4)
		m.tbl.SetHeight(max(3, plotH-3))
		pane = boxStyle.Width(tw).Render(m.tbl.View())
	case m.mode == pane3D:
		pane = render.Plot3D(m.page.Scene3D, m.cam, render.Frame{Width: w, Height: plotH})
	case m.mode == pane2D:
		pane = render.Plot2D(m.page.Scene2D, render.Frame{Width: w, Height: plotH})
	case w >= 90:
		half := (w - 1) / 2
		pane = lipgloss.JoinHorizontal(lipgloss.Top,
			render.Plot3D(m.page.Scene3D, m.cam, render.Frame{Width: half, Height: plotH}),
			" ",
			render.Plot2D(m.page.Scene2D, render.Frame{Width: w - half - 1, Height: plotH}),
		)
	default:
		top := plotH / 2
		pane = lipgloss.JoinVertical(lipgloss.Left,
			render.Plot3D(m.page.Scene3D, m.cam, render.Frame{Width: w, Height: top}),
			render.Plot2D(m.page.Scene2D, render.Frame{Width: w, Height: plotH - top}),
		)
	}
	return lipgloss.NewStyle().Width(w).Height(h).MaxHeight(h).Render(info + "\n" + pane)
}

func (m Model) footerView(w int) string {
	if !m.helpVisible {
		return lipgloss.NewStyle().Width(w).Render("")
	}
	return lipgloss.NewStyle().Width(w).MaxHeight(1).Render(m.renderHelp())
}

func (m Model) renderHelp() string {
	keys := []string{
		"/ material ID",
		"Enter open",
		"←→↑↓ rotate",
		"drag rotate",
		"+/- zoom",
		"r reset",
		"1/2/3 panes",
		"t sites",
		"f refetch",
		"Tab sidebar",
		"? help",
		"q quit",
	}
	if m.showSites {
		keys = []string{"↑↓ scroll", "t/Esc close", "q quit"}
	}
	if m.inputMode {
		keys = []string{"Enter fetch", "Esc cancel"}
	}
	return dimStyle.Render("  " + strings.Join(keys, "  "))
}
