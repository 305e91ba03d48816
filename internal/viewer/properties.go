package viewer

import (
	"fmt"

	"crystalview/internal/crystal"
)

// Properties are the scalar values shown above the plots.
type Properties struct {
	MaterialID    string  `json:"material_id"`
	Formula       string  `json:"formula"`
	A             float64 `json:"a"`
	B             float64 `json:"b"`
	C             float64 `json:"c"`
	Alpha         float64 `json:"alpha"`
	Beta          float64 `json:"beta"`
	Gamma         float64 `json:"gamma"`
	SpaceGroup    string  `json:"space_group"`
	CrystalSystem string  `json:"crystal_system,omitempty"`
	Composition   string  `json:"composition"`
	NumSites      int     `json:"num_sites"`
	Volume        float64 `json:"volume"`
}

// NewProperties derives Properties from s.
func NewProperties(s *crystal.Structure) Properties {
	p := Properties{
		MaterialID:    s.MaterialID,
		Formula:       s.DisplayFormula(),
		SpaceGroup:    s.SpaceGroup.String(),
		CrystalSystem: s.SpaceGroup.CrystalSystem,
		Composition:   s.Composition().String(),
		NumSites:      len(s.Sites),
		Volume:        s.Lattice.Volume(),
	}
	p.A, p.B, p.C = s.Lattice.ABC()
	p.Alpha, p.Beta, p.Gamma = s.Lattice.Angles()
	return p
}

// Header is the page heading for the material.
func (p Properties) Header() string {
	return "Properties of Material: " + p.MaterialID
}

// ABC formats the lattice lengths as a tuple.
func (p Properties) ABC() string {
	return triple(p.A, p.B, p.C)
}

// Angles formats the lattice angles as a tuple.
func (p Properties) Angles() string {
	return triple(p.Alpha, p.Beta, p.Gamma)
}

// Lines returns the property lines in display order.
func (p Properties) Lines() []string {
	return []string{
		"Formula: " + p.Formula,
		"Lattice Parameters (a, b, c): " + p.ABC(),
		"Lattice Angles (α, β, γ): " + p.Angles(),
		"Space Group: " + p.SpaceGroup,
		"Composition: " + p.Composition,
	}
}

func triple(x, y, z float64) string {
	return fmt.Sprintf("(%.4f, %.4f, %.4f)", x, y, z)
}
