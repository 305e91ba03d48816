package crystal

import (
	"fmt"
	"math"
)

// Vec3 is a point or direction in 3D space.
type Vec3 [3]float64

func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v[0] + o[0], v[1] + o[1], v[2] + o[2]} }
func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v[0] - o[0], v[1] - o[1], v[2] - o[2]} }
func (v Vec3) Scale(f float64) Vec3 { return Vec3{v[0] * f, v[1] * f, v[2] * f} }
func (v Vec3) Dot(o Vec3) float64   { return v[0]*o[0] + v[1]*o[1] + v[2]*o[2] }
func (v Vec3) Norm() float64        { return math.Sqrt(v.Dot(v)) }

func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v[1]*o[2] - v[2]*o[1],
		v[2]*o[0] - v[0]*o[2],
		v[0]*o[1] - v[1]*o[0],
	}
}

// Site is one atom of a structure.
type Site struct {
	Species string // element symbol used for labels and colors
	Cart    Vec3   // cartesian coordinates in Å
	Frac    Vec3   // fractional coordinates, nominally in [0,1)
	// Occupancy maps element to occupancy; ordered sites hold one entry at 1.
	Occupancy map[string]float64
}

// Structure is a resolved crystal structure record.
type Structure struct {
	MaterialID string
	Formula    string
	SpaceGroup SpaceGroup
	Lattice    Lattice
	Sites      []Site
}

// SpaceGroup is the symmetry classification of a structure.
type SpaceGroup struct {
	Symbol        string
	Number        int
	CrystalSystem string
}

// String renders the label as "Fd-3m (227)".
func (g SpaceGroup) String() string {
	switch {
	case g.Symbol == "":
		return "unknown"
	case g.Number == 0:
		return g.Symbol
	}
	return fmt.Sprintf("%s (%d)", g.Symbol, g.Number)
}

// Composition sums site occupancies per element in first-seen order.
func (s *Structure) Composition() Composition {
	var c Composition
	for _, site := range s.Sites {
		if len(site.Occupancy) == 0 {
			c = c.add(site.Species, 1)
			continue
		}
		for _, el := range sortedElements(site.Occupancy) {
			c = c.add(el, site.Occupancy[el])
		}
	}
	return c
}

// DisplayFormula returns the record formula, falling back to the reduced
// formula of the composition.
func (s *Structure) DisplayFormula() string {
	if s.Formula != "" {
		return s.Formula
	}
	return s.Composition().ReducedFormula()
}

// CartCoords returns the cartesian coordinates of every site, in order.
func (s *Structure) CartCoords() []Vec3 {
	out := make([]Vec3, len(s.Sites))
	for i, site := range s.Sites {
		out[i] = site.Cart
	}
	return out
}

// Species returns the species label of every site, in order.
func (s *Structure) Species() []string {
	out := make([]string, len(s.Sites))
	for i, site := range s.Sites {
		out[i] = site.Species
	}
	return out
}
