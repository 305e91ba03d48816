package render

import (
	"fmt"
	"html"
	"math"
	"sort"
	"strings"
)

const svgHeader = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="100%%" role="img" aria-label="%s">`

// SVG3D renders a 3D scene through cam as an SVG document of w×h user units.
func SVG3D(sc Scene3D, cam Camera, w, h int) string {
	var b strings.Builder
	fmt.Fprintf(&b, svgHeader, w, h, html.EscapeString(sc.Layout.Title))
	m := sc.Layout.Margin
	plotTop := m.T + 10
	fmt.Fprintf(&b, `<rect x="%d" y="%d" width="%d" height="%d" fill="%s"/>`,
		m.L, plotTop, w-m.L-m.R, h-plotTop-m.B-24, sc.Layout.X.Background)
	fmt.Fprintf(&b, `<text x="%d" y="%d" text-anchor="middle" font-size="%d" fill="%s">%s</text>`,
		w/2, m.T-6, sc.Layout.TitleFont.Size, sc.Layout.TitleFont.Color, html.EscapeString(sc.Layout.Title))

	var box BBox
	type proj struct{ u, v, d float64 }
	pts := make([]proj, len(sc.Points))
	for i, p := range sc.Points {
		u, v, d := cam.Project(p.Position)
		pts[i] = proj{u, v, d}
		box.extend(u, v)
	}
	for _, s := range sc.Segments {
		u0, v0, _ := cam.Project(s.From)
		u1, v1, _ := cam.Project(s.To)
		box.extend(u0, v0)
		box.extend(u1, v1)
	}
	areaW, areaH := w-m.L-m.R, h-plotTop-m.B-24
	vp := uniformViewport(box, areaW, areaH, cam.zoom())
	at := func(u, v float64) (int, int) {
		x, y := vp.micro(u, v)
		return x + m.L, y + plotTop
	}

	for _, s := range sc.Segments {
		u0, v0, _ := cam.Project(s.From)
		u1, v1, _ := cam.Project(s.To)
		x0, y0 := at(u0, v0)
		x1, y1 := at(u1, v1)
		fmt.Fprintf(&b, `<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="%s" stroke-width="%g"/>`,
			x0, y0, x1, y1, s.Color, s.Width)
	}
	order := make([]int, len(pts))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, c int) bool { return pts[order[a]].d > pts[order[c]].d })
	for _, i := range order {
		p := sc.Points[i]
		x, y := at(pts[i].u, pts[i].v)
		r := p.Marker.Size / 2
		fmt.Fprintf(&b, `<circle cx="%d" cy="%d" r="%g" fill="%s" fill-opacity="%g"/>`,
			x, y, r, p.Marker.Color, p.Marker.Opacity)
		fmt.Fprintf(&b, `<text x="%d" y="%g" text-anchor="middle" font-size="12">%s</text>`,
			x, float64(y)-r-3, html.EscapeString(p.Label))
	}
	fmt.Fprintf(&b, `<text x="%d" y="%d" text-anchor="middle" font-size="12" fill="#555">%s · %s · %s</text>`,
		w/2, h-8, html.EscapeString(sc.Layout.X.Title), html.EscapeString(sc.Layout.Y.Title), html.EscapeString(sc.Layout.Z.Title))
	b.WriteString(`</svg>`)
	return b.String()
}

// SVG2D renders a 2D scene as an SVG document. The legend is placed to the
// right of the axes, outside the plot area.
func SVG2D(sc Scene2D, w, h int) string {
	const (
		left, top, bottom = 70, 40, 56
		legendW           = 140
	)
	pw, ph := w-left-legendW-20, h-top-bottom
	var b strings.Builder
	fmt.Fprintf(&b, svgHeader, w, h, html.EscapeString(sc.Layout.Title))
	fmt.Fprintf(&b, `<text x="%d" y="%d" text-anchor="middle" font-size="%d" fill="%s">%s</text>`,
		left+pw/2, top-14, sc.Layout.TitleFont.Size, sc.Layout.TitleFont.Color, html.EscapeString(sc.Layout.Title))

	var box BBox
	box = box.include(0, 1)
	for _, p := range sc.Points {
		box.extend(p.X, p.Y)
	}
	vp := stretchViewport(box, pw, ph)
	at := func(x, y float64) (int, int) {
		mx, my := vp.micro(x, y)
		return mx + left, my + top
	}

	g := sc.Layout.Grid
	dash := ""
	if g.Style == "--" {
		dash = ` stroke-dasharray="4 3"`
	}
	for _, t := range ticks(box.MinX, box.MaxX) {
		x0, y0 := at(t, box.MinY)
		_, y1 := at(t, box.MaxY)
		fmt.Fprintf(&b, `<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="%s" stroke-width="%g"%s/>`, x0, y0, x0, y1, g.Color, g.Width, dash)
		fmt.Fprintf(&b, `<text x="%d" y="%d" text-anchor="middle" font-size="11">%.2f</text>`, x0, y0+16, t)
	}
	for _, t := range ticks(box.MinY, box.MaxY) {
		x0, y0 := at(box.MinX, t)
		x1, _ := at(box.MaxX, t)
		fmt.Fprintf(&b, `<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="%s" stroke-width="%g"%s/>`, x0, y0, x1, y0, g.Color, g.Width, dash)
		fmt.Fprintf(&b, `<text x="%d" y="%d" text-anchor="end" font-size="11">%.2f</text>`, x0-6, y0+4, t)
	}
	fmt.Fprintf(&b, `<rect x="%d" y="%d" width="%d" height="%d" fill="none" stroke="#333"/>`, left, top, pw, ph)

	r := math.Sqrt(100 / math.Pi)
	for _, p := range sc.Points {
		x, y := at(p.X, p.Y)
		fmt.Fprintf(&b, `<circle cx="%d" cy="%d" r="%.2f" fill="%s" fill-opacity="%g" stroke="%s"><title>%s</title></circle>`,
			x, y, r, p.Marker.Color, p.Marker.Opacity, p.Marker.EdgeColor, html.EscapeString(p.Label))
	}

	lf := sc.Layout.LabelFont.Size
	fmt.Fprintf(&b, `<text x="%d" y="%d" text-anchor="middle" font-size="%d">%s</text>`,
		left+pw/2, h-12, lf, html.EscapeString(sc.Layout.XLabel))
	fmt.Fprintf(&b, `<text x="18" y="%d" text-anchor="middle" font-size="%d" transform="rotate(-90 18 %d)">%s</text>`,
		top+ph/2, lf, top+ph/2, html.EscapeString(sc.Layout.YLabel))

	lx := left + pw + 20
	fs := sc.Layout.Legend.FontSize
	maxRows := (ph - 8) / (fs + 6)
	fmt.Fprintf(&b, `<rect x="%d" y="%d" width="%d" height="%d" fill="white" stroke="#ccc"/>`,
		lx, top, legendW-10, min(len(sc.Entries), maxRows)*(fs+6)+8)
	for i, e := range sc.Entries {
		if i >= maxRows {
			break
		}
		y := top + 4 + (i+1)*(fs+6) - 4
		fmt.Fprintf(&b, `<circle cx="%d" cy="%d" r="4" fill="%s"/>`, lx+10, y-fs/3, e.Color)
		fmt.Fprintf(&b, `<text x="%d" y="%d" font-size="%d">%s</text>`, lx+20, y, fs, html.EscapeString(e.Label))
	}
	b.WriteString(`</svg>`)
	return b.String()
}
