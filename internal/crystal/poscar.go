package crystal

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParsePOSCAR parses a VASP POSCAR/CONTCAR document. Files without the
// VASP 5 species line take their symbols from the comment line.
func ParsePOSCAR(text string) (*Structure, error) {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	next := 0
	line := func() (string, bool) {
		for next < len(lines) {
			l := strings.TrimSpace(lines[next])
			next++
			if l != "" {
				return l, true
			}
		}
		return "", false
	}
	comment, ok := line()
	if !ok {
		return nil, errors.New("poscar: empty")
	}
	scaleLine, ok := line()
	if !ok {
		return nil, errors.New("poscar: missing scale")
	}
	scale, err := strconv.ParseFloat(strings.Fields(scaleLine)[0], 64)
	if err != nil {
		return nil, fmt.Errorf("poscar scale: %w", err)
	}
	var rows [][]float64
	for i := 0; i < 3; i++ {
		l, ok := line()
		if !ok {
			return nil, ErrNoLattice
		}
		v, err := parseFloats(l, 3)
		if err != nil {
			return nil, fmt.Errorf("poscar lattice row %d: %w", i+1, err)
		}
		rows = append(rows, v)
	}
	lat, err := latticeFromRows(rows)
	if err != nil {
		return nil, err
	}
	if scale < 0 {
		// negative scale is the target cell volume
		scale = math.Cbrt(-scale / lat.Volume())
	}
	for i := range lat.Matrix {
		lat.Matrix[i] = lat.Matrix[i].Scale(scale)
	}

	l, ok := line()
	if !ok {
		return nil, ErrNoSites
	}
	var symbols []string
	if _, err := strconv.Atoi(strings.Fields(l)[0]); err != nil {
		symbols = strings.Fields(l)
		if l, ok = line(); !ok {
			return nil, ErrNoSites
		}
	} else {
		symbols = strings.Fields(comment)
	}
	var counts []int
	for _, f := range strings.Fields(l) {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("poscar counts: %w", err)
		}
		counts = append(counts, n)
	}
	if len(symbols) < len(counts) {
		return nil, fmt.Errorf("poscar: %d counts but %d species", len(counts), len(symbols))
	}

	mode, ok := line()
	if !ok {
		return nil, ErrNoSites
	}
	if strings.HasPrefix(strings.ToUpper(mode), "S") {
		if mode, ok = line(); !ok {
			return nil, ErrNoSites
		}
	}
	cartesian := strings.ContainsAny(mode[:1], "CcKk")

	s := &Structure{Lattice: lat}
	for i, n := range counts {
		for j := 0; j < n; j++ {
			l, ok := line()
			if !ok {
				return nil, fmt.Errorf("poscar: expected %d sites, got %d", total(counts), len(s.Sites))
			}
			v, err := parseFloats(l, 3)
			if err != nil {
				return nil, fmt.Errorf("poscar site %d: %w", len(s.Sites)+1, err)
			}
			p := Vec3{v[0], v[1], v[2]}
			site := Site{Species: symbols[i], Occupancy: map[string]float64{symbols[i]: 1}}
			if cartesian {
				site.Cart = p.Scale(scale)
				if site.Frac, err = lat.Fractional(site.Cart); err != nil {
					return nil, err
				}
			} else {
				site.Frac = p
				site.Cart = lat.Cartesian(p)
			}
			s.Sites = append(s.Sites, site)
		}
	}
	if len(s.Sites) == 0 {
		return nil, ErrNoSites
	}
	return s, nil
}

func parseFloats(l string, n int) ([]float64, error) {
	parts := strings.Fields(l)
	if len(parts) < n {
		return nil, fmt.Errorf("want %d numbers, got %q", n, l)
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		f, err := strconv.ParseFloat(parts[i], 64)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}

func total(counts []int) int {
	n := 0
	for _, c := range counts {
		n += c
	}
	return n
}
