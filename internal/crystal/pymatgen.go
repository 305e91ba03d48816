package crystal

import (
	"encoding/json"
	"fmt"
)

// Wire shapes of pymatgen's Structure.as_dict().
type structureDoc struct {
	Lattice struct {
		Matrix [][]float64 `json:"matrix"`
	} `json:"lattice"`
	Sites []siteDoc `json:"sites"`
}

type siteDoc struct {
	Species []struct {
		Element string  `json:"element"`
		Occu    float64 `json:"occu"`
	} `json:"species"`
	ABC   []float64 `json:"abc"`
	XYZ   []float64 `json:"xyz"`
	Label string    `json:"label"`
}

// DecodeStructure parses a pymatgen structure document. Sites without
// cartesian coordinates get them from frac · matrix, and sites with only
// cartesian coordinates get fractional ones from the inverse lattice.
func DecodeStructure(data []byte) (*Structure, error) {
	var doc structureDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode structure: %w", err)
	}
	lat, err := latticeFromRows(doc.Lattice.Matrix)
	if err != nil {
		return nil, err
	}
	if len(doc.Sites) == 0 {
		return nil, ErrNoSites
	}
	s := &Structure{Lattice: lat, Sites: make([]Site, 0, len(doc.Sites))}
	for i, sd := range doc.Sites {
		site, err := sd.site(lat)
		if err != nil {
			return nil, fmt.Errorf("site %d: %w", i, err)
		}
		s.Sites = append(s.Sites, site)
	}
	return s, nil
}

func (sd siteDoc) site(lat Lattice) (Site, error) {
	site := Site{Occupancy: make(map[string]float64, len(sd.Species))}
	for _, sp := range sd.Species {
		occ := sp.Occu
		if occ == 0 {
			occ = 1
		}
		site.Occupancy[sp.Element] += occ
	}
	switch {
	case len(site.Occupancy) > 0:
		site.Species = sortedElements(site.Occupancy)[0]
	case sd.Label != "":
		site.Species = sd.Label
		site.Occupancy[sd.Label] = 1
	default:
		return Site{}, ErrNoSpecies
	}

	frac, hasFrac := vec3(sd.ABC)
	cart, hasCart := vec3(sd.XYZ)
	switch {
	case hasFrac && hasCart:
		site.Frac, site.Cart = frac, cart
	case hasFrac:
		site.Frac, site.Cart = frac, lat.Cartesian(frac)
	case hasCart:
		f, err := lat.Fractional(cart)
		if err != nil {
			return Site{}, err
		}
		site.Frac, site.Cart = f, cart
	default:
		return Site{}, fmt.Errorf("no coordinates")
	}
	return site, nil
}

func latticeFromRows(rows [][]float64) (Lattice, error) {
	if len(rows) != 3 {
		return Lattice{}, ErrNoLattice
	}
	var l Lattice
	for i, r := range rows {
		v, ok := vec3(r)
		if !ok {
			return Lattice{}, ErrNoLattice
		}
		l.Matrix[i] = v
	}
	return l, nil
}

func vec3(a []float64) (Vec3, bool) {
	if len(a) != 3 {
		return Vec3{}, false
	}
	return Vec3{a[0], a[1], a[2]}, true
}

// EncodeStructure writes s as a pymatgen-compatible document.
func EncodeStructure(s *Structure) ([]byte, error) {
	type species struct {
		Element string  `json:"element"`
		Occu    float64 `json:"occu"`
	}
	type site struct {
		Species []species `json:"species"`
		ABC     Vec3      `json:"abc"`
		XYZ     Vec3      `json:"xyz"`
		Label   string    `json:"label"`
	}
	doc := struct {
		Module  string `json:"@module"`
		Class   string `json:"@class"`
		Lattice struct {
			Matrix [3]Vec3 `json:"matrix"`
		} `json:"lattice"`
		Sites []site `json:"sites"`
	}{Module: "pymatgen.core.structure", Class: "Structure"}
	doc.Lattice.Matrix = s.Lattice.Matrix
	for _, st := range s.Sites {
		out := site{ABC: st.Frac, XYZ: st.Cart, Label: st.Species}
		if len(st.Occupancy) == 0 {
			out.Species = []species{{Element: st.Species, Occu: 1}}
		}
		for _, el := range sortedElements(st.Occupancy) {
			out.Species = append(out.Species, species{Element: el, Occu: st.Occupancy[el]})
		}
		doc.Sites = append(doc.Sites, out)
	}
	return json.MarshalIndent(doc, "", "  ")
}
