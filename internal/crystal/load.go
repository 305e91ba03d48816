package crystal

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LoadFile reads a structure from disk. Supported: pymatgen JSON (.json)
// and VASP POSCAR/CONTCAR (.vasp, .poscar, or the bare file names).
func LoadFile(path string) (*Structure, error) {
	data, err := os.ReadFile(path) //nolint:gosec // user-selected structure file
	if err != nil {
		return nil, err
	}
	var s *Structure
	switch format(path) {
	case "json":
		s, err = DecodeStructure(data)
	case "poscar":
		s, err = ParsePOSCAR(string(data))
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Base(path))
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return s, nil
}

// Supported reports whether LoadFile understands path.
func Supported(path string) bool {
	return format(path) != ""
}

func format(path string) string {
	base := strings.ToUpper(filepath.Base(path))
	switch ext := strings.ToLower(filepath.Ext(path)); {
	case ext == ".json":
		return "json"
	case ext == ".vasp" || ext == ".poscar":
		return "poscar"
	case strings.HasPrefix(base, "POSCAR") || strings.HasPrefix(base, "CONTCAR"):
		return "poscar"
	}
	return ""
}
