package viewer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"crystalview/internal/crystal"
	"crystalview/internal/mp"
	"crystalview/internal/render"
)

// Status messages shown next to the identifier input.
const (
	StatusFetched = "Material fetched successfully!"
	statusPrefix  = "Error fetching material: "
)

// Renderer builds the two scenes of a page.
type Renderer interface {
	Render3D(s *crystal.Structure) render.Scene3D
	Render2D(s *crystal.Structure) render.Scene2D
}

// Page is the result of one successful evaluation.
type Page struct {
	ID         string
	Structure  *crystal.Structure
	Properties Properties
	Scene3D    render.Scene3D
	Scene2D    render.Scene2D
}

// Status is the message shown after a successful fetch.
func (p *Page) Status() string { return StatusFetched }

// FetchError reports that the provider could not resolve an identifier.
type FetchError struct {
	ID  string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %q: %v", e.ID, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Message is the user-facing text of the error.
func (e *FetchError) Message() string {
	return statusPrefix + e.Err.Error()
}

// Evaluator runs evaluations against a provider.
type Evaluator struct {
	provider mp.Provider
	renderer Renderer
	logger   *zap.Logger
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithRenderer replaces the default geometry renderer.
func WithRenderer(r Renderer) Option {
	return func(e *Evaluator) {
		e.renderer = r
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Evaluator) {
		if l != nil {
			e.logger = l
		}
	}
}

// New returns an Evaluator reading structures from p.
func New(p mp.Provider, opts ...Option) *Evaluator {
	e := &Evaluator{
		provider: p,
		renderer: render.Geometry{},
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate fetches id and builds its page. A provider failure returns a
// *FetchError and nothing is rendered.
func (e *Evaluator) Evaluate(ctx context.Context, id string) (*Page, error) {
	id = strings.TrimSpace(id)
	start := time.Now()

	s, err := e.provider.Structure(ctx, id)
	if err != nil {
		e.logger.Warn("fetch failed", zap.String("id", id), zap.Error(err))
		return nil, &FetchError{ID: id, Err: err}
	}
	if s.MaterialID == "" {
		s.MaterialID = id
	}

	page := &Page{
		ID:         id,
		Structure:  s,
		Properties: NewProperties(s),
		Scene3D:    e.renderer.Render3D(s),
		Scene2D:    e.renderer.Render2D(s),
	}
	e.logger.Debug("page evaluated",
		zap.String("id", id),
		zap.Int("sites", len(s.Sites)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return page, nil
}
