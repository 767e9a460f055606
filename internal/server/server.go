package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"

	"github.com/ladybug-tools/daylightgrid/pkg/grid"
	"github.com/ladybug-tools/daylightgrid/pkg/metrics"
	"github.com/ladybug-tools/daylightgrid/pkg/study"
	"github.com/ladybug-tools/daylightgrid/pkg/validation"
)

// Server exposes a loaded study over HTTP for interactive inspection.
type Server struct {
	projectPath string
	port        int

	mu   sync.Mutex
	cfg  *study.Config
	grid *grid.AnalysisGrid
}

// New creates a server for the given project directory.
func New(projectPath string, port int) *Server {
	return &Server{
		projectPath: projectPath,
		port:        port,
	}
}

// Start loads the project and launches the HTTP server.
func (s *Server) Start() error {
	if err := s.load(); err != nil {
		return err
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/grid", s.handleGrid)
	mux.HandleFunc("GET /api/config", s.handleConfig)
	mux.HandleFunc("GET /api/validation", s.handleValidation)
	mux.HandleFunc("GET /api/metrics", s.handleMetrics)
	mux.HandleFunc("GET /api/sda", s.handleSDA)
	mux.HandleFunc("GET /api/ase", s.handleASE)
	mux.HandleFunc("POST /api/reload", s.handleReload)
	mux.HandleFunc("GET /", s.handleIndex)

	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("daylightgrid server starting on http://localhost%s", addr)
	log.Printf("Project: %s", s.projectPath)

	return http.ListenAndServe(addr, mux)
}

// load reads the study config and rebuilds the grid from disk.
func (s *Server) load() error {
	cfg, err := study.LoadProject(s.projectPath)
	if err != nil {
		return fmt.Errorf("loading study: %w", err)
	}
	g, err := study.BuildGrid(cfg)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.cfg = cfg
	s.grid = g
	s.mu.Unlock()

	log.Printf("Loaded grid %q: %d points, state %s", g.Name(), g.Len(), g.State())
	return nil
}

func (s *Server) snapshot() (*study.Config, *grid.AnalysisGrid) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg, s.grid
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	_, g := s.snapshot()
	w.Header().Set("Content-Type", "text/html")
	fmt.Fprintf(w, `<!DOCTYPE html>
<html><head><title>daylightgrid</title></head>
<body style="margin:0;background:#111;color:#fff;font-family:system-ui;display:flex;align-items:center;justify-content:center;height:100vh">
<div style="text-align:center">
<h1>daylightgrid</h1>
<p>%s</p>
<p>See /api/grid, /api/metrics, /api/sda, /api/ase.</p>
</div>
</body></html>`, g)
}

func (s *Server) handleGrid(w http.ResponseWriter, _ *http.Request) {
	_, g := s.snapshot()
	data, err := g.ToJSON()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func (s *Server) handleConfig(w http.ResponseWriter, _ *http.Request) {
	cfg, _ := s.snapshot()
	writeJSON(w, cfg)
}

func (s *Server) handleValidation(w http.ResponseWriter, _ *http.Request) {
	cfg, _ := s.snapshot()
	report := validation.ValidateSchema(cfg)
	report.Merge(validation.ValidateFiles(cfg))
	writeJSON(w, report)
}

func (s *Server) handleMetrics(w http.ResponseWriter, _ *http.Request) {
	cfg, g := s.snapshot()
	opts, err := study.MetricOptionsFrom(cfg, g)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	res, err := g.AnnualMetrics(opts)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, map[string]any{
		"grid":    g.Name(),
		"results": res,
		"summary": map[string]any{
			"da":  metrics.Summarize(res.DA),
			"cda": metrics.Summarize(res.CDA),
		},
	})
}

func (s *Server) handleSDA(w http.ResponseWriter, _ *http.Request) {
	cfg, g := s.snapshot()
	opts, err := study.MetricOptionsFrom(cfg, g)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	res, err := g.SpatialDaylightAutonomy(opts)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, res)
}

func (s *Server) handleASE(w http.ResponseWriter, _ *http.Request) {
	cfg, g := s.snapshot()
	opts, err := study.MetricOptionsFrom(cfg, g)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	res, err := g.AnnualSunlightExposure(opts)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, res)
}

func (s *Server) handleReload(w http.ResponseWriter, _ *http.Request) {
	if err := s.load(); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	_, g := s.snapshot()
	writeJSON(w, map[string]any{
		"status": "reloaded",
		"grid":   g.Name(),
		"points": g.Len(),
		"state":  g.State().String(),
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
