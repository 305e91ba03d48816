package tui

import (
	"fmt"
	"strconv"

	table "github.com/charmbracelet/bubbles/table"
)

var siteColumns = []table.Column{
	{Title: "#", Width: 4},
	{Title: "Species", Width: 8},
	{Title: "x (Å)", Width: 9},
	{Title: "y (Å)", Width: 9},
	{Title: "z (Å)", Width: 9},
	{Title: "a", Width: 7},
	{Title: "b", Width: 7},
	{Title: "c", Width: 7},
}

// refreshSites rebuilds the sites table from the current page.
func (m *Model) refreshSites() {
	// clear rows first so a column change never sees mismatched rows
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(siteColumns)
	if m.page == nil {
		return
	}
	rows := make([]table.Row, 0, len(m.page.Structure.Sites))
	for i, s := range m.page.Structure.Sites {
		rows = append(rows, table.Row{
			strconv.Itoa(i + 1),
			s.Species,
			fmt.Sprintf("%.4f", s.Cart[0]),
			fmt.Sprintf("%.4f", s.Cart[1]),
			fmt.Sprintf("%.4f", s.Cart[2]),
			fmt.Sprintf("%.4f", s.Frac[0]),
			fmt.Sprintf("%.4f", s.Frac[1]),
			fmt.Sprintf("%.4f", s.Frac[2]),
		})
	}
	m.tbl.SetRows(rows)
	m.tbl.GotoTop()
}

func tableWidth() int {
	w := 0
	for _, c := range siteColumns {
		w += c.Width + 2
	}
	return w
}
