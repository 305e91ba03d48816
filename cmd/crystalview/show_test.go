package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crystalview/internal/crystal"
)

func TestShow_Plain(t *testing.T) {
	t.Parallel()

	cfg := writeConfig(t, "concurrency: 2\n")
	out, _, err := execute(t, "--config", cfg, "show", "--file", mp66File, "--plain", "mp-66")
	require.NoError(t, err)

	assert.Contains(t, out, "Properties of Material: mp-66")
	assert.Contains(t, out, "Formula: Si")
	assert.Contains(t, out, "Lattice Angles (α, β, γ): (60.0000, 60.0000, 60.0000)")
	assert.Contains(t, out, "3D Crystal Structure")
	assert.Contains(t, out, "2D Lattice Projection")
	assert.NotContains(t, out, "\x1b[")
}

func TestShow_MarkdownBatch(t *testing.T) {
	t.Parallel()

	cfg := writeConfig(t, "")
	out, _, err := execute(t, "--config", cfg, "show", "--file", poscarFile, "--markdown", "a", "b", "c")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "# Crystal Structure Report"))
	ia := strings.Index(out, "Properties of Material: a")
	ib := strings.Index(out, "Properties of Material: b")
	ic := strings.Index(out, "Properties of Material: c")
	require.True(t, ia >= 0 && ib >= 0 && ic >= 0)
	assert.Less(t, ia, ib)
	assert.Less(t, ib, ic)
	assert.Contains(t, out, "Li1 Co1 O2")
}

func TestShow_Glamour(t *testing.T) {
	t.Parallel()

	cfg := writeConfig(t, "")
	out, _, err := execute(t, "--config", cfg, "show", "--file", mp66File, "--width", "60", "--height", "12")
	require.NoError(t, err)
	assert.Contains(t, out, "Crystal Structure Report")
	assert.Contains(t, out, "Si2")
}

func TestShow_FetchFailure(t *testing.T) {
	t.Parallel()

	cfg := writeConfig(t, "")
	missing := filepath.Join(t.TempDir(), "missing.json")
	_, _, err := execute(t, "--config", cfg, "show", "--file", missing)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Error fetching material")
}

func TestShow_NoAPIKey(t *testing.T) {
	t.Setenv("MP_API_KEY", "")
	t.Setenv("PMG_MAPI_KEY", "")

	cfg := writeConfig(t, "")
	_, stderr, err := execute(t, "--config", cfg, "show", "mp-66", "mp-149")
	assert.ErrorIs(t, err, errAllFailed)
	assert.Contains(t, stderr, "material failed")
}

func TestShow_Export(t *testing.T) {
	t.Parallel()

	cfg := writeConfig(t, "")
	dst := filepath.Join(t.TempDir(), "out.json")
	_, _, err := execute(t, "--config", cfg, "show", "--file", poscarFile, "--export", dst)
	require.NoError(t, err)

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	require.True(t, json.Valid(data))
	s, err := crystal.DecodeStructure(data)
	require.NoError(t, err)
	assert.Equal(t, []string{"Li", "Co", "O", "O"}, s.Species())

	_, _, err = execute(t, "--config", cfg, "show", "--file", poscarFile, "--export", dst, "a", "b")
	assert.ErrorContains(t, err, "exactly one")
}
