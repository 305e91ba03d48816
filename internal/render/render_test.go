package render

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crystalview/internal/crystal"
)

func loadMP66(t *testing.T) *crystal.Structure {
	t.Helper()
	s, err := crystal.LoadFile(filepath.Join("..", "crystal", "testdata", "mp-66.json"))
	require.NoError(t, err)
	return s
}

func mixedStructure() *crystal.Structure {
	lat := crystal.NewLattice(crystal.Vec3{4, 0, 0}, crystal.Vec3{0, 5, 0}, crystal.Vec3{0, 0, 6})
	site := func(sp string, f crystal.Vec3) crystal.Site {
		return crystal.Site{Species: sp, Frac: f, Cart: lat.Cartesian(f)}
	}
	return &crystal.Structure{
		Lattice: lat,
		Sites: []crystal.Site{
			site("C", crystal.Vec3{0, 0, 0}),
			site("O", crystal.Vec3{0.5, 0.5, 0.5}),
			site("Na", crystal.Vec3{0.1, 0.2, 0.9}),
			site("H", crystal.Vec3{0.75, 0.25, 0.1}),
			site("Cl", crystal.Vec3{0.3, 0.6, 0.4}),
		},
	}
}

func TestSpeciesColor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		species string
		want    Color
	}{
		{"C", Red},
		{"O", Blue},
		{"Si", Green},
		{"H", Yellow},
		{"Na", Gray},
		{"si", Gray},
		{"", Gray},
		{"O2-", Gray},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.species, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, SpeciesColor(tt.species))
			assert.Equal(t, SpeciesColor(tt.species), SpeciesColor(tt.species))
		})
	}
}

func TestRender3D_MP66(t *testing.T) {
	t.Parallel()

	s := loadMP66(t)
	sc := Render3D(s)

	require.Len(t, sc.Points, 2)
	for i, p := range sc.Points {
		assert.Equal(t, "Si", p.Label)
		assert.Equal(t, Green, p.Marker.Color)
		assert.Equal(t, s.Sites[i].Cart, p.Position)
	}
	require.Len(t, sc.Segments, 9)
	zero := 0
	for _, seg := range sc.Segments {
		if seg.Length() == 0 {
			zero++
		}
		assert.Equal(t, Blue, seg.Color)
	}
	assert.Equal(t, 3, zero)
	assert.Equal(t, "3D Crystal Structure", sc.Layout.Title)
	assert.Equal(t, "data", sc.Layout.AspectMode)
	assert.Equal(t, "X-Axis", sc.Layout.X.Title)
	assert.Equal(t, "rgb(240,240,240)", sc.Layout.Z.Background)
}

func TestLatticeSegments_OrderedPairs(t *testing.T) {
	t.Parallel()

	l := crystal.NewLattice(crystal.Vec3{1, 0, 0}, crystal.Vec3{0, 2, 0}, crystal.Vec3{0, 0, 3})
	segs := LatticeSegments(l)
	require.Len(t, segs, 9)
	k := 0
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			assert.Equal(t, l.Matrix[i], segs[k].From, "pair (%d,%d)", i, j)
			assert.Equal(t, l.Matrix[j], segs[k].To, "pair (%d,%d)", i, j)
			k++
		}
	}
	// (0,1) and (1,0) cover the same edge
	assert.InDelta(t, segs[1].Length(), segs[3].Length(), 1e-12)
}

func TestRender3D_PointsPerSite(t *testing.T) {
	t.Parallel()

	s := mixedStructure()
	sc := Render3D(s)
	require.Len(t, sc.Points, len(s.Sites))
	assert.Len(t, sc.Segments, 9)
	want := []Color{Red, Blue, Gray, Yellow, Gray}
	for i, p := range sc.Points {
		assert.Equal(t, want[i], p.Marker.Color, p.Label)
		assert.Equal(t, s.Sites[i].Species, p.Label)
	}
}

func TestRender2D_FractionalXY(t *testing.T) {
	t.Parallel()

	s := mixedStructure()
	sc := Render2D(s)
	require.Len(t, sc.Points, len(s.Sites))
	require.Len(t, sc.Entries, len(s.Sites))
	for i, p := range sc.Points {
		assert.Equal(t, s.Sites[i].Frac[0], p.X)
		assert.Equal(t, s.Sites[i].Frac[1], p.Y)
		assert.Equal(t, SpeciesColor(s.Sites[i].Species), p.Marker.Color)
		assert.Equal(t, s.Sites[i].Species, sc.Entries[i].Label)
	}
	assert.Equal(t, "Fractional Coordinate X", sc.Layout.XLabel)
	assert.Equal(t, [2]float64{1.4, 1.0}, sc.Layout.Legend.Anchor)
}

func TestRender2D_MP66(t *testing.T) {
	t.Parallel()

	sc := Render2D(loadMP66(t))
	require.Len(t, sc.Points, 2)
	assert.Equal(t, Point2{X: 0.25, Y: 0.25, Label: "Si", Marker: Marker{Size: 100, Opacity: 0.7, Color: Green, EdgeColor: Black}}, sc.Points[0])
	assert.Equal(t, 0.0, sc.Points[1].X)
	assert.Equal(t, Green, sc.Points[1].Marker.Color)
}

func TestRender_Idempotent(t *testing.T) {
	t.Parallel()

	s := mixedStructure()
	var g Geometry
	if diff := cmp.Diff(g.Render3D(s), g.Render3D(s)); diff != "" {
		t.Errorf("Render3D not idempotent (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(g.Render2D(s), g.Render2D(s)); diff != "" {
		t.Errorf("Render2D not idempotent (-first +second):\n%s", diff)
	}
}

func TestCamera_Rotate(t *testing.T) {
	t.Parallel()

	c := DefaultCamera().Rotate(340, 100)
	assert.InDelta(t, 10, c.Yaw, 1e-9)
	assert.Equal(t, 90.0, c.Pitch)
	c = c.Rotate(-20, -200)
	assert.InDelta(t, 350, c.Yaw, 1e-9)
	assert.Equal(t, -90.0, c.Pitch)
	assert.Equal(t, 20.0, Camera{Zoom: 10}.Scale(5).Zoom)
}

func TestCamera_ProjectTopDown(t *testing.T) {
	t.Parallel()

	c := Camera{Pitch: 90}
	u, v, _ := c.Project(crystal.Vec3{1, 2, 3})
	assert.InDelta(t, 1, u, 1e-9)
	assert.InDelta(t, 2, v, 1e-9)
}

func TestPlot3D_Plain(t *testing.T) {
	t.Parallel()

	out := Plot3D(Render3D(loadMP66(t)), DefaultCamera(), Frame{Width: 60, Height: 20, Plain: true})
	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 20)
	assert.Contains(t, lines[0], "3D Crystal Structure")
	assert.Contains(t, out, "Si")
	assert.Contains(t, out, "●")
	assert.Contains(t, lines[len(lines)-1], "X-Axis")
	assert.NotContains(t, out, "\x1b[")
}

func TestPlot2D_Plain(t *testing.T) {
	t.Parallel()

	out := Plot2D(Render2D(loadMP66(t)), Frame{Width: 60, Height: 20, Plain: true})
	assert.Contains(t, out, "2D Lattice Projection")
	assert.Contains(t, out, "Fractional Coordinate X")
	assert.Contains(t, out, "Fractional Coordinate Y")
	// two sites plus two legend entries
	assert.Equal(t, 4, strings.Count(out, "●"))
	assert.Contains(t, out, "1.00")
}

func TestPlot_TinyFrame(t *testing.T) {
	t.Parallel()

	s := mixedStructure()
	assert.NotPanics(t, func() {
		Plot3D(Render3D(s), DefaultCamera(), Frame{})
		Plot2D(Render2D(s), Frame{Width: 1, Height: 1})
	})
}

func TestSVG(t *testing.T) {
	t.Parallel()

	s := mixedStructure()
	svg3 := SVG3D(Render3D(s), DefaultCamera(), 640, 480)
	assert.True(t, strings.HasPrefix(svg3, "<svg"))
	assert.Equal(t, len(s.Sites), strings.Count(svg3, "<circle"))
	assert.Equal(t, 9, strings.Count(svg3, "<line"))
	assert.Contains(t, svg3, `fill="gray"`)

	svg2 := SVG2D(Render2D(s), 640, 420)
	assert.Equal(t, len(s.Sites), strings.Count(svg2, `stroke="black"><title>`))
	assert.Contains(t, svg2, "2D Lattice Projection")
	assert.Contains(t, svg2, `stroke-dasharray`)
}
