package render

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Frame is the terminal area a plot is drawn into, in cells.
type Frame struct {
	Width  int
	Height int
	Plain  bool // no ANSI colors
}

const (
	minPlotW = 12
	minPlotH = 6
	siteRune = '●'
)

var (
	titleColor = lipgloss.Color(accent)
	dimColor   = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#6B7280"}
)

func (f Frame) title(s string) string {
	if f.Plain {
		return s
	}
	return lipgloss.NewStyle().Foreground(titleColor).Bold(true).Render(s)
}

func (f Frame) dim(s string) string {
	if f.Plain {
		return s
	}
	return lipgloss.NewStyle().Foreground(dimColor).Render(s)
}

func center(s string, w int) string {
	n := len([]rune(s))
	if n >= w {
		return string([]rune(s)[:w])
	}
	left := (w - n) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", w-n-left)
}

// Plot3D draws a 3D scene through cam: a title row, the plot and a row with
// the axis titles and camera angles.
func Plot3D(sc Scene3D, cam Camera, f Frame) string {
	w, h := max(f.Width, minPlotW), max(f.Height, minPlotH)
	ph := h - 2
	cv := newCanvas(w, ph)

	type projected struct {
		u, v, depth float64
	}
	var box BBox
	pts := make([]projected, len(sc.Points))
	for i, p := range sc.Points {
		u, v, d := cam.Project(p.Position)
		pts[i] = projected{u, v, d}
		box.extend(u, v)
	}
	segs := make([][2]projected, len(sc.Segments))
	for i, s := range sc.Segments {
		u0, v0, d0 := cam.Project(s.From)
		u1, v1, d1 := cam.Project(s.To)
		segs[i] = [2]projected{{u0, v0, d0}, {u1, v1, d1}}
		box.extend(u0, v0)
		box.extend(u1, v1)
	}
	vp := uniformViewport(box, w*2, ph*4, cam.zoom())

	for i, s := range segs {
		x0, y0 := vp.micro(s[0].u, s[0].v)
		x1, y1 := vp.micro(s[1].u, s[1].v)
		cv.drawLine(x0, y0, x1, y1, sc.Segments[i].Color, 0)
	}

	// far sites first so nearer markers and labels win
	order := make([]int, len(pts))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return pts[order[a]].depth > pts[order[b]].depth })
	for _, i := range order {
		p := sc.Points[i]
		mx, my := vp.micro(pts[i].u, pts[i].v)
		cx, cy := mx/2, my/4
		cv.put(cx, cy, siteRune, p.Marker.Color)
		if p.Label != "" {
			cv.text(cx-len([]rune(p.Label))/2, cy-1, p.Label, p.Marker.Color)
		}
	}

	rows := make([]string, 0, h)
	rows = append(rows, f.title(center(sc.Layout.Title, w)))
	rows = append(rows, cv.lines(f.Plain)...)
	axes := fmt.Sprintf("%s · %s · %s   yaw %.0f° pitch %.0f° zoom %.1fx",
		sc.Layout.X.Title, sc.Layout.Y.Title, sc.Layout.Z.Title, cam.Yaw, cam.Pitch, cam.zoom())
	rows = append(rows, f.dim(center(axes, w)))
	return strings.Join(rows, "\n")
}

// Plot2D draws a 2D scene with tick labels, dashed gridlines and a legend
// column to the right of the plot area.
func Plot2D(sc Scene2D, f Frame) string {
	w, h := max(f.Width, minPlotW+8), max(f.Height, minPlotH+2)

	legendW := 0
	for _, e := range sc.Entries {
		legendW = max(legendW, len([]rune(e.Label))+3)
	}
	if legendW > 0 {
		legendW = min(legendW, w/4)
	}
	const tickW = 5
	pw := w - tickW - 1 - legendW
	if legendW > 0 {
		pw--
	}
	pw = max(pw, 4)
	ph := h - 4
	// the x label shares the tick row when it fits, else takes its own row
	xl := sc.Layout.XLabel + " →"
	xlInline := tickW+1+pw+2+3+len([]rune(xl)) <= w
	if !xlInline {
		ph--
	}
	ph = max(ph, 1)

	var box BBox
	box = box.include(0, 1)
	for _, p := range sc.Points {
		box.extend(p.X, p.Y)
	}
	vp := stretchViewport(box, pw*2, ph*4)
	cv := newCanvas(pw, ph)

	xt, yt := ticks(box.MinX, box.MaxX), ticks(box.MinY, box.MaxY)
	gridCol := Gray
	for _, t := range xt {
		x0, y0 := vp.micro(t, box.MinY)
		x1, y1 := vp.micro(t, box.MaxY)
		cv.drawLine(x0, y0, x1, y1, gridCol, 2)
	}
	for _, t := range yt {
		x0, y0 := vp.micro(box.MinX, t)
		x1, y1 := vp.micro(box.MaxX, t)
		cv.drawLine(x0, y0, x1, y1, gridCol, 2)
	}
	for _, p := range sc.Points {
		mx, my := vp.micro(p.X, p.Y)
		cv.put(mx/2, my/4, siteRune, p.Marker.Color)
	}

	yLabels := make(map[int]string, len(yt))
	for _, t := range yt {
		_, my := vp.micro(box.MinX, t)
		yLabels[my/4] = fmt.Sprintf("%4.2f", t)
	}
	legend := legendLines(sc.Entries, ph, legendW, f.Plain)

	rows := make([]string, 0, h)
	rows = append(rows, f.title(center(sc.Layout.Title, w)))
	rows = append(rows, f.dim("↑ "+sc.Layout.YLabel))
	plot := cv.lines(f.Plain)
	for y := 0; y < ph; y++ {
		row := fmt.Sprintf("%*s", tickW-1, yLabels[y]) + " │" + plot[y]
		if legendW > 0 {
			row += " " + legend[y]
		}
		rows = append(rows, row)
	}

	axis := []rune(strings.Repeat(" ", tickW) + "└" + strings.Repeat("─", pw))
	tickRow := []rune(strings.Repeat(" ", tickW+1+pw+4))
	for _, t := range xt {
		mx, _ := vp.micro(t, box.MinY)
		label := fmt.Sprintf("%.2f", t)
		at := tickW + 1 + mx/2 - len(label)/2
		if at+len(label) > len(tickRow) {
			at = len(tickRow) - len(label)
		}
		copy(tickRow[max(at, 0):], []rune(label))
	}
	rows = append(rows, string(axis))
	last := strings.TrimRight(string(tickRow), " ")
	if xlInline {
		rows = append(rows, last+"   "+f.dim(xl))
	} else {
		rows = append(rows, last, f.dim(fmt.Sprintf("%*s", w, xl)))
	}
	return strings.Join(rows, "\n")
}

func legendLines(entries []LegendEntry, rows, width int, plain bool) []string {
	out := make([]string, rows)
	for i := range out {
		out[i] = strings.Repeat(" ", width)
	}
	for i, e := range entries {
		if i >= rows {
			break
		}
		if i == rows-1 && len(entries) > rows {
			out[i] = center("…", width)
			break
		}
		label := []rune(e.Label)
		if len(label) > width-2 {
			label = label[:max(width-2, 0)]
		}
		pad := strings.Repeat(" ", max(width-2-len(label), 0))
		marker := string(siteRune)
		if !plain {
			marker = lipgloss.NewStyle().Foreground(e.Color.Terminal()).Render(marker)
		}
		out[i] = marker + " " + string(label) + pad
	}
	return out
}

// ticks returns five evenly spaced values across [lo, hi].
func ticks(lo, hi float64) []float64 {
	out := make([]float64, 5)
	for i := range out {
		out[i] = lo + (hi-lo)*float64(i)/4
		if math.Abs(out[i]) < 1e-12 {
			out[i] = 0
		}
	}
	return out
}
