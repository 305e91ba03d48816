package mp

import (
	"context"
	"path/filepath"
	"strings"

	"crystalview/internal/crystal"
)

// FileProvider serves a structure from a local file instead of the API.
// The requested ID only names the record.
type FileProvider struct {
	Path string
}

// Structure loads the file on every call; the file may change between
// evaluations.
func (p FileProvider) Structure(ctx context.Context, id string) (*crystal.Structure, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s, err := crystal.LoadFile(p.Path)
	if err != nil {
		return nil, err
	}
	s.MaterialID = strings.TrimSpace(id)
	if s.MaterialID == "" {
		s.MaterialID = filepath.Base(p.Path)
	}
	return s, nil
}
