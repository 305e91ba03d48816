package mp

import (
	"context"

	"crystalview/internal/crystal"
)

// Provider resolves a material identifier to a structure.
type Provider interface {
	Structure(ctx context.Context, id string) (*crystal.Structure, error)
}

var (
	_ Provider = (*Client)(nil)
	_ Provider = FileProvider{}
)
