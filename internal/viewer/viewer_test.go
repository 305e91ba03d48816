package viewer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"crystalview/internal/crystal"
	"crystalview/internal/mp"
	"crystalview/internal/render"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var mp66 = mp.FileProvider{Path: filepath.Join("..", "crystal", "testdata", "mp-66.json")}

// countingRenderer records how often each scene is built.
type countingRenderer struct {
	calls3D atomic.Int32
	calls2D atomic.Int32
}

func (r *countingRenderer) Render3D(s *crystal.Structure) render.Scene3D {
	r.calls3D.Add(1)
	return render.Render3D(s)
}

func (r *countingRenderer) Render2D(s *crystal.Structure) render.Scene2D {
	r.calls2D.Add(1)
	return render.Render2D(s)
}

type failingProvider struct{ err error }

func (p failingProvider) Structure(context.Context, string) (*crystal.Structure, error) {
	return nil, p.err
}

// routedProvider fails for ids listed in fail and serves mp-66 otherwise.
type routedProvider struct {
	mu   sync.Mutex
	seen []string
	fail map[string]bool
}

func (p *routedProvider) Structure(ctx context.Context, id string) (*crystal.Structure, error) {
	p.mu.Lock()
	p.seen = append(p.seen, id)
	p.mu.Unlock()
	if p.fail[id] {
		return nil, fmt.Errorf("material %s not found", id)
	}
	return mp66.Structure(ctx, id)
}

func TestEvaluate_Success(t *testing.T) {
	t.Parallel()

	r := &countingRenderer{}
	page, err := New(mp66, WithRenderer(r)).Evaluate(context.Background(), " mp-66 ")
	require.NoError(t, err)

	assert.Equal(t, int32(1), r.calls3D.Load())
	assert.Equal(t, int32(1), r.calls2D.Load())
	assert.Equal(t, "mp-66", page.ID)
	assert.Equal(t, StatusFetched, page.Status())
	assert.Len(t, page.Scene3D.Points, 2)
	assert.Len(t, page.Scene3D.Segments, 9)
	assert.Len(t, page.Scene2D.Points, 2)

	assert.Equal(t, []string{
		"Formula: Si",
		"Lattice Parameters (a, b, c): (3.8670, 3.8670, 3.8670)",
		"Lattice Angles (α, β, γ): (60.0000, 60.0000, 60.0000)",
		"Space Group: unknown",
		"Composition: Si2",
	}, page.Properties.Lines())
	assert.Equal(t, "Properties of Material: mp-66", page.Properties.Header())
	assert.Equal(t, 2, page.Properties.NumSites)
	assert.InDelta(t, 40.89, page.Properties.Volume, 0.01)
}

func TestEvaluate_FetchFailureRendersNothing(t *testing.T) {
	t.Parallel()

	cause := errors.New("REST query returned with error status code 404")
	r := &countingRenderer{}
	page, err := New(failingProvider{err: cause}, WithRenderer(r)).Evaluate(context.Background(), "mp-0")

	assert.Nil(t, page)
	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "mp-0", fe.ID)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Error fetching material: REST query returned with error status code 404", fe.Message())
	assert.Zero(t, r.calls3D.Load())
	assert.Zero(t, r.calls2D.Load())
}

func TestEvaluate_ContextCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(mp66).Evaluate(ctx, "mp-66")
	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEvaluateAll_KeepsOrder(t *testing.T) {
	t.Parallel()

	p := &routedProvider{fail: map[string]bool{"mp-2": true, "mp-4": true}}
	ids := []string{"mp-1", "mp-2", "mp-3", "mp-4", "mp-5"}
	results := New(p).EvaluateAll(context.Background(), ids, 2)

	require.Len(t, results, len(ids))
	for i, r := range results {
		assert.Equal(t, ids[i], r.ID)
		if p.fail[r.ID] {
			assert.Nil(t, r.Page)
			var fe *FetchError
			assert.ErrorAs(t, r.Err, &fe)
			continue
		}
		require.NoError(t, r.Err)
		assert.Equal(t, r.ID, r.Page.Properties.MaterialID)
	}
	assert.ElementsMatch(t, ids, p.seen)
	assert.False(t, Failed(results))
}

func TestEvaluateAll_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	results := New(mp66).EvaluateAll(ctx, []string{"a", "b"}, 0)
	assert.True(t, Failed(results))
	for _, r := range results {
		assert.ErrorIs(t, r.Err, context.Canceled)
	}
}

func TestFailed(t *testing.T) {
	t.Parallel()

	assert.False(t, Failed(nil))
	assert.True(t, Failed([]Result{{Err: errors.New("x")}}))
	assert.False(t, Failed([]Result{{Err: errors.New("x")}, {}}))
}

func TestWriteMarkdown(t *testing.T) {
	t.Parallel()

	p := &routedProvider{fail: map[string]bool{"mp-404": true}}
	results := New(p).EvaluateAll(context.Background(), []string{"mp-66", "mp-404"}, 2)

	var buf bytes.Buffer
	require.NoError(t, WriteMarkdown(&buf, results, DefaultReportOptions()))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "# Crystal Structure Report"))
	assert.Contains(t, out, "## Properties of Material: mp-66")
	assert.Contains(t, out, "| Space Group")
	assert.Contains(t, out, "(3.8670, 3.8670, 3.8670)")
	assert.Contains(t, out, "```text")
	assert.Contains(t, out, "3D Crystal Structure")
	assert.Contains(t, out, "2D Lattice Projection")
	assert.Contains(t, out, "## Material: mp-404")
	assert.Contains(t, out, "Error fetching material: material mp-404 not found")
	assert.NotContains(t, out, "\x1b[")
}
