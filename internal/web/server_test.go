package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"crystalview/internal/config"
	"crystalview/internal/crystal"
	"crystalview/internal/mp"
	"crystalview/internal/viewer"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// testProvider serves mp-66 and fails for every other id.
type testProvider struct{}

func (testProvider) Structure(ctx context.Context, id string) (*crystal.Structure, error) {
	if id != "mp-66" {
		return nil, fmt.Errorf("<b>%s</b> not found", id)
	}
	return mp.FileProvider{Path: filepath.Join("..", "crystal", "testdata", "mp-66.json")}.Structure(ctx, id)
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	s := New(viewer.New(testProvider{}), Options{DefaultID: "mp-66", Materials: config.DefaultMaterials()})
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)
	return srv
}

var client = &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	resp, err := client.Get(url) //nolint:noctx // test helper
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestIndex(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	resp, body := get(t, srv.URL+"/")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	assert.Contains(t, body, "Properties of Material: mp-66")
	assert.Contains(t, body, "Formula: Si")
	assert.Contains(t, body, viewer.StatusFetched)
	assert.Equal(t, 2, strings.Count(body, "<svg"))
	assert.Contains(t, body, "Silicon Carbide (SiC)")
	assert.Contains(t, body, "yaw=45")
}

func TestIndex_FetchError(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	resp, body := get(t, srv.URL+"/?id=mp-0")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Error fetching material: mp-0 not found")
	assert.NotContains(t, body, "<b>mp-0</b>")
	assert.NotContains(t, body, "<svg")
	assert.NotContains(t, body, "Properties of Material")
}

func TestIndex_Camera(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	_, body := get(t, srv.URL+"/?id=mp-66&yaw=90&pitch=200&zoom=bad")
	assert.Contains(t, body, "pitch=75")
	assert.Contains(t, body, "yaw=105")
}

func TestStructureAPI(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	resp, body := get(t, srv.URL+"/api/structures/mp-66")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var got struct {
		Properties viewer.Properties `json:"properties"`
		Scene3D    struct {
			Points   []json.RawMessage `json:"points"`
			Segments []json.RawMessage `json:"segments"`
		} `json:"scene3d"`
		Scene2D struct {
			Points []json.RawMessage `json:"points"`
		} `json:"scene2d"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &got))
	assert.Equal(t, "mp-66", got.Properties.MaterialID)
	assert.Equal(t, "Si", got.Properties.Formula)
	assert.Len(t, got.Scene3D.Points, 2)
	assert.Len(t, got.Scene3D.Segments, 9)
	assert.Len(t, got.Scene2D.Points, 2)
}

func TestStructureAPI_FetchError(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	resp, body := get(t, srv.URL+"/api/structures/mp-0")
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	var got map[string]string
	require.NoError(t, json.Unmarshal([]byte(body), &got))
	assert.Contains(t, got["error"], "Error fetching material")
}

func TestHealth(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	resp, body := get(t, srv.URL+"/healthz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, body)
}

func TestServe_Shutdown(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	s := New(viewer.New(testProvider{}), Options{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.serve(ctx, ln) }()

	resp, body := get(t, "http://"+ln.Addr().String()+"/healthz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "ok")

	cancel()
	require.NoError(t, <-done)
}

func TestServe_ListenError(t *testing.T) {
	t.Parallel()

	err := New(viewer.New(testProvider{}), Options{}).Serve(context.Background(), "256.0.0.1:bad")
	require.Error(t, err)
	assert.False(t, errors.Is(err, context.Canceled))
}
