package tui

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crystalview/internal/config"
	"crystalview/internal/crystal"
	"crystalview/internal/mp"
	"crystalview/internal/render"
	"crystalview/internal/viewer"
)

var mp66 = mp.FileProvider{Path: filepath.Join("..", "crystal", "testdata", "mp-66.json")}

type failingProvider struct{}

func (failingProvider) Structure(context.Context, string) (*crystal.Structure, error) {
	return nil, errors.New("material not found")
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestModel(t *testing.T, p mp.Provider) Model {
	t.Helper()
	m := New(viewer.New(p), Options{
		Materials: config.DefaultMaterials(),
		Dir:       filepath.Join("..", "crystal", "testdata"),
	})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return next.(Model)
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

// evaluate runs the pending fetch synchronously and feeds the result back.
func evaluate(t *testing.T, m Model) Model {
	t.Helper()
	msg := m.fetchCmd(m.active, m.seq, m.pending)()
	m, _ = update(t, m, msg)
	return m
}

func TestNew_Items(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, mp66)
	require.Len(t, m.items, 10)
	first := m.items[0].(materialItem)
	assert.Equal(t, "Graphene", first.Title())
	assert.Equal(t, "mp-53", first.id)

	files := []string{m.items[8].(materialItem).title, m.items[9].(materialItem).title}
	assert.Equal(t, []string{"POSCAR.LiCoO2", "mp-66.json"}, files)
	assert.NotEmpty(t, m.items[9].(materialItem).path)
}

func TestInit_FetchesInitialID(t *testing.T) {
	t.Parallel()

	m := New(viewer.New(mp66), Options{InitialID: "mp-66", Dir: t.TempDir()})
	assert.True(t, m.loading)
	assert.NotNil(t, m.Init())

	m = evaluate(t, m)
	require.NotNil(t, m.page)
	assert.False(t, m.loading)
	assert.Equal(t, viewer.StatusFetched, m.status)
	assert.Len(t, m.tbl.Rows(), 2)

	idle := New(viewer.New(mp66), Options{Dir: t.TempDir()})
	assert.Nil(t, idle.Init())
}

func TestInputSubmit(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, mp66)
	m, _ = update(t, m, runes("/"))
	require.True(t, m.inputMode)

	m, _ = update(t, m, runes("mp-66"))
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.False(t, m.inputMode)
	assert.True(t, m.loading)
	assert.Equal(t, "mp-66", m.pending)

	m = evaluate(t, m)
	require.NotNil(t, m.page)
	view := m.View()
	assert.Contains(t, view, "Properties of Material: mp-66")
	assert.Contains(t, view, "Formula: Si")
	assert.Contains(t, view, "3D Crystal Structure")
	assert.Contains(t, view, "2D Lattice Projection")
}

func TestInputEmptyAndEscape(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, mp66)
	m, _ = update(t, m, runes("/"))
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.True(t, m.statusErr)

	m, _ = update(t, m, runes("/"))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.inputMode)
	assert.False(t, m.loading)
}

func TestFetchFailureClearsPage(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, mp66)
	m, _ = m.fetch("mp-66")
	m = evaluate(t, m)
	require.NotNil(t, m.page)

	m.ev = viewer.New(failingProvider{})
	m, _ = m.fetch("mp-0")
	m = evaluate(t, m)
	assert.Nil(t, m.page)
	assert.True(t, m.statusErr)
	assert.Equal(t, "Error fetching material: material not found", m.status)

	view := m.View()
	assert.Contains(t, view, "Error fetching material")
	assert.NotContains(t, view, "Lattice Parameters")
	assert.NotContains(t, view, "2D Lattice Projection")
}

func TestStalePageDropped(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, mp66)
	m, _ = m.fetch("mp-66")
	stale := m.fetchCmd(m.active, m.seq, "mp-66")()
	m, _ = m.fetch("mp-149")

	m, _ = update(t, m, stale)
	assert.Nil(t, m.page)
	assert.True(t, m.loading)
	assert.Equal(t, "mp-149", m.pending)
}

func TestCameraKeys(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, mp66)
	start := m.cam

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.InDelta(t, start.Yaw+rotateStep, m.cam.Yaw, 1e-9)

	m, _ = update(t, m, runes("k"))
	assert.InDelta(t, start.Pitch+rotateStep, m.cam.Pitch, 1e-9)

	m, _ = update(t, m, runes("+"))
	assert.InDelta(t, zoomStep, m.cam.Zoom, 1e-9)

	m, _ = update(t, m, runes("r"))
	assert.Equal(t, render.DefaultCamera(), m.cam)

	// with the sidebar hidden up/down tilt the camera
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	require.False(t, m.showSidebar)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.InDelta(t, start.Pitch-rotateStep, m.cam.Pitch, 1e-9)
}

func TestMouseDragRotates(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, mp66)
	x := sidebarWidth + 10
	m, _ = update(t, m, tea.MouseMsg{X: x, Y: 10, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	require.True(t, m.dragging)
	m, _ = update(t, m, tea.MouseMsg{X: x + 2, Y: 10, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	assert.InDelta(t, render.DefaultCamera().Yaw+2*dragStep, m.cam.Yaw, 1e-9)
	m, _ = update(t, m, tea.MouseMsg{X: x + 2, Y: 10, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	assert.False(t, m.dragging)

	m, _ = update(t, m, tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp})
	assert.InDelta(t, wheelStep, m.cam.Zoom, 1e-9)

	// presses over the sidebar do not start a drag
	m, _ = update(t, m, tea.MouseMsg{X: 2, Y: 10, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.False(t, m.dragging)
}

func TestPaneModesAndSites(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, mp66)
	m, _ = m.fetch("mp-66")
	m = evaluate(t, m)

	m, _ = update(t, m, runes("1"))
	assert.Equal(t, pane3D, m.mode)
	assert.NotContains(t, m.View(), "2D Lattice Projection")
	assert.Contains(t, m.View(), "yaw 30°")

	m, _ = update(t, m, runes("2"))
	assert.Equal(t, pane2D, m.mode)
	assert.NotContains(t, m.View(), "yaw 30°")

	m, _ = update(t, m, runes("t"))
	require.True(t, m.showSites)
	assert.Contains(t, m.View(), "Species")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.showSites)
}

func TestSelectLocalFile(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, mp66)
	m.l.Select(8)
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, "POSCAR.LiCoO2", m.pending)

	m = evaluate(t, m)
	require.NotNil(t, m.page)
	assert.Equal(t, "POSCAR.LiCoO2", m.page.Properties.MaterialID)
	assert.Len(t, m.page.Structure.Sites, 4)
}

func TestQuit(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, mp66)
	_, cmd := update(t, m, runes("q"))
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestViewEmptyBeforeSize(t *testing.T) {
	t.Parallel()

	m := New(viewer.New(mp66), Options{Dir: t.TempDir()})
	assert.Empty(t, m.View())
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	assert.True(t, strings.Contains(m.View(), "3D Crystal Structure Viewer"))
}
