package render

import "crystalview/internal/crystal"

const (
	accent       = "#4CAF50"
	axisShade    = "rgb(240,240,240)"
	latticeColor = Blue
)

// Geometry maps structures to scenes. It holds no state.
type Geometry struct{}

func (Geometry) Render3D(s *crystal.Structure) Scene3D { return Render3D(s) }
func (Geometry) Render2D(s *crystal.Structure) Scene2D { return Render2D(s) }

// Render3D emits one labeled point per site at its cartesian position and
// the lattice segments of LatticeSegments.
func Render3D(s *crystal.Structure) Scene3D {
	sc := Scene3D{
		Points:   make([]Point3, 0, len(s.Sites)),
		Segments: LatticeSegments(s.Lattice),
		Layout:   layout3(),
	}
	for _, site := range s.Sites {
		sc.Points = append(sc.Points, Point3{
			Position:     site.Cart,
			Label:        site.Species,
			TextPosition: "top center",
			Marker:       Marker{Size: 10, Opacity: 0.8, Color: SpeciesColor(site.Species)},
		})
	}
	return sc
}

// LatticeSegments returns a segment from row i to row j of the lattice
// matrix for every ordered pair (i, j) in {0,1,2}². That is 9 segments: the
// three i == j ones have zero length and every other edge appears twice.
// This is neither the three lattice vectors drawn from the origin nor the
// 12 edges of the cell.
//
// TODO: settle whether the vector frame or the cell wireframe was intended
// and draw that instead.
func LatticeSegments(l crystal.Lattice) []Segment {
	segs := make([]Segment, 0, 9)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			segs = append(segs, Segment{
				From:  l.Matrix[i],
				To:    l.Matrix[j],
				Color: latticeColor,
				Width: 2,
			})
		}
	}
	return segs
}

func layout3() Layout3 {
	axis := func(title string) Axis3 {
		return Axis3{Title: title, ShowBackground: true, Background: axisShade}
	}
	return Layout3{
		Title:      "3D Crystal Structure",
		TitleFont:  Font{Size: 20, Color: accent},
		X:          axis("X-Axis"),
		Y:          axis("Y-Axis"),
		Z:          axis("Z-Axis"),
		AspectMode: "data",
		Margin:     Margin{T: 30},
	}
}

// Render2D plots every site at its fractional (x, y); z is dropped. Each
// point gets its own legend entry.
func Render2D(s *crystal.Structure) Scene2D {
	sc := Scene2D{
		Points:  make([]Point2, 0, len(s.Sites)),
		Entries: make([]LegendEntry, 0, len(s.Sites)),
		Layout: Layout2{
			Title:     "2D Lattice Projection",
			TitleFont: Font{Size: 16, Color: accent},
			XLabel:    "Fractional Coordinate X",
			YLabel:    "Fractional Coordinate Y",
			LabelFont: Font{Size: 14},
			Grid:      Grid{Color: "lightgray", Style: "--", Width: 0.5},
			Legend:    Legend{Location: "upper right", Anchor: [2]float64{1.4, 1.0}, FontSize: 10},
		},
	}
	for _, site := range s.Sites {
		c := SpeciesColor(site.Species)
		sc.Points = append(sc.Points, Point2{
			X:      site.Frac[0],
			Y:      site.Frac[1],
			Label:  site.Species,
			Marker: Marker{Size: 100, Opacity: 0.7, Color: c, EdgeColor: Black},
		})
		sc.Entries = append(sc.Entries, LegendEntry{Label: site.Species, Color: c})
	}
	return sc
}
