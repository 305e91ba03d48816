package crystal

import "errors"

var (
	// ErrNoSites is returned when a structure document has no sites.
	ErrNoSites = errors.New("structure has no sites")

	// ErrNoLattice is returned when the lattice matrix is missing or not 3×3.
	ErrNoLattice = errors.New("structure lattice matrix missing or not 3x3")

	// ErrSingularLattice is returned when a conversion needs the inverse of
	// a lattice with zero determinant.
	ErrSingularLattice = errors.New("lattice matrix is singular")

	// ErrNoSpecies is returned for a site with neither species nor label.
	ErrNoSpecies = errors.New("site has no species")

	// ErrUnsupportedFormat is returned by LoadFile for unknown file types.
	ErrUnsupportedFormat = errors.New("unsupported structure file")
)
