package web

import (
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"crystalview/internal/config"
	"crystalview/internal/render"
	"crystalview/internal/viewer"
)

const (
	svgWidth  = 720
	svgHeight = 540
	rotateBy  = 15.0
)

type indexData struct {
	ID         string
	Materials  []config.Material
	Status     string
	Error      template.HTML
	Header     string
	Properties []string
	Plot3D     template.HTML
	Plot2D     template.HTML
	Controls   []control
}

type control struct {
	Label string
	Href  string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.URL.Query().Get("id"))
	if id == "" {
		id = s.defaultID
	}
	data := indexData{ID: id, Materials: s.materials}

	page, err := s.ev.Evaluate(r.Context(), id)
	if err != nil {
		var fe *viewer.FetchError
		if !errors.As(err, &fe) {
			// anything but a fetch failure is unhandled; Recoverer answers 500
			panic(err)
		}
		data.Error = template.HTML(s.policy.Sanitize(fe.Message())) //nolint:gosec // sanitized by bluemonday
		s.render(w, data)
		return
	}

	cam := cameraFromQuery(r.URL.Query())
	data.Status = page.Status()
	data.Header = page.Properties.Header()
	data.Properties = page.Properties.Lines()
	// the SVG writer escapes every text node it emits
	data.Plot3D = template.HTML(render.SVG3D(page.Scene3D, cam, svgWidth, svgHeight)) //nolint:gosec // generated markup
	data.Plot2D = template.HTML(render.SVG2D(page.Scene2D, svgWidth, svgHeight))      //nolint:gosec // generated markup
	data.Controls = controls(id, cam)
	s.render(w, data)
}

func (s *Server) render(w http.ResponseWriter, data indexData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, "index.html", data); err != nil {
		s.logger.Error("render page", zap.Error(err))
	}
}

type structureResponse struct {
	Properties viewer.Properties `json:"properties"`
	Scene3D    render.Scene3D    `json:"scene3d"`
	Scene2D    render.Scene2D    `json:"scene2d"`
}

func (s *Server) handleStructure(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	page, err := s.ev.Evaluate(r.Context(), id)
	if err != nil {
		var fe *viewer.FetchError
		if errors.As(err, &fe) {
			writeJSON(w, http.StatusBadGateway, map[string]string{"error": fe.Message()})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, structureResponse{
		Properties: page.Properties,
		Scene3D:    page.Scene3D,
		Scene2D:    page.Scene2D,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// cameraFromQuery reads yaw, pitch and zoom, keeping defaults for missing or
// malformed values.
func cameraFromQuery(q url.Values) render.Camera {
	cam := render.DefaultCamera()
	parse := func(key string, dst *float64) {
		if v, err := strconv.ParseFloat(q.Get(key), 64); err == nil {
			*dst = v
		}
	}
	parse("yaw", &cam.Yaw)
	parse("pitch", &cam.Pitch)
	parse("zoom", &cam.Zoom)
	return cam.Rotate(0, 0).Scale(1)
}

func controls(id string, cam render.Camera) []control {
	link := func(label string, c render.Camera) control {
		q := url.Values{}
		q.Set("id", id)
		q.Set("yaw", strconv.FormatFloat(c.Yaw, 'f', -1, 64))
		q.Set("pitch", strconv.FormatFloat(c.Pitch, 'f', -1, 64))
		q.Set("zoom", strconv.FormatFloat(c.Zoom, 'f', -1, 64))
		return control{Label: label, Href: "/?" + q.Encode()}
	}
	return []control{
		link("⟲ yaw", cam.Rotate(-rotateBy, 0)),
		link("⟳ yaw", cam.Rotate(rotateBy, 0)),
		link("▲ pitch", cam.Rotate(0, rotateBy)),
		link("▼ pitch", cam.Rotate(0, -rotateBy)),
		link("＋ zoom", cam.Scale(1.2)),
		link("－ zoom", cam.Scale(1/1.2)),
		link("reset", render.DefaultCamera()),
	}
}
