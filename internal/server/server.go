package server

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"github.com/str04/stock-scanner/internal/recorder"
	"github.com/str04/stock-scanner/internal/scan"
)

// Defaults are the scan parameters used when a request omits them.
type Defaults struct {
	MinReturn             float64
	Years                 int
	PatternYears          int
	AppreciationThreshold float64
	SuccessThreshold      float64
}

// Server exposes the scan engine and its history over HTTP.
type Server struct {
	Engine   *scan.Engine
	Recorder recorder.Recorder
	History  *recorder.CSVRecorder
	Defaults Defaults
}

// New creates the HTTP surface over an engine, a recorder, and the CSV
// history used for listing and downloads.
func New(engine *scan.Engine, rec recorder.Recorder, history *recorder.CSVRecorder, defaults Defaults) *Server {
	return &Server{Engine: engine, Recorder: rec, History: history, Defaults: defaults}
}

// Router builds the route table.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/", s.handleIndex)
	r.Get("/scan", s.handleReturnScan)
	r.Get("/pattern", s.handlePatternScan)
	r.Get("/download/{name}", s.handleDownload)

	return r
}

type historyEntry struct {
	FileName string `json:"file_name"`
	URL      string `json:"url"`
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	names, err := s.History.History()
	if err != nil {
		s.renderError(w, r, http.StatusInternalServerError, err)
		return
	}
	entries := make([]historyEntry, 0, len(names))
	for _, n := range names {
		entries = append(entries, historyEntry{FileName: n, URL: "/download/" + n})
	}
	render.JSON(w, r, map[string]interface{}{
		"message": "Welcome to the Stock Scanner API.",
		"history": entries,
	})
}

func (s *Server) handleReturnScan(w http.ResponseWriter, r *http.Request) {
	p := scan.ReturnParams{
		MinReturn: s.Defaults.MinReturn,
		Years:     s.Defaults.Years,
		Tickers:   splitTickers(r.URL.Query().Get("tickers")),
	}
	var err error
	if p.MinReturn, err = floatParam(r, "min_return", p.MinReturn); err != nil {
		s.renderError(w, r, http.StatusBadRequest, err)
		return
	}
	if p.Years, err = intParam(r, "years", p.Years); err != nil {
		s.renderError(w, r, http.StatusBadRequest, err)
		return
	}

	set, err := s.Engine.RunReturnScan(p)
	if err != nil {
		s.renderError(w, r, http.StatusBadGateway, err)
		return
	}
	if err := s.Recorder.Record(set); err != nil {
		log.Printf("[ERROR] record scan %s: %v", set.ID, err)
	}

	render.JSON(w, r, map[string]interface{}{
		"status":  "success",
		"scan_id": set.ID,
		"data":    set.Returns,
		"skipped": len(set.Skips),
	})
}

func (s *Server) handlePatternScan(w http.ResponseWriter, r *http.Request) {
	p := scan.PatternParams{
		Threshold:        s.Defaults.AppreciationThreshold,
		SuccessThreshold: s.Defaults.SuccessThreshold,
		Years:            s.Defaults.PatternYears,
		Tickers:          splitTickers(r.URL.Query().Get("tickers")),
	}
	var err error
	if p.Threshold, err = floatParam(r, "threshold", p.Threshold); err != nil {
		s.renderError(w, r, http.StatusBadRequest, err)
		return
	}
	if p.SuccessThreshold, err = floatParam(r, "success_threshold", p.SuccessThreshold); err != nil {
		s.renderError(w, r, http.StatusBadRequest, err)
		return
	}

	set, err := s.Engine.RunPatternScan(p)
	if err != nil {
		s.renderError(w, r, http.StatusBadGateway, err)
		return
	}
	if err := s.Recorder.Record(set); err != nil {
		log.Printf("[ERROR] record scan %s: %v", set.ID, err)
	}

	render.JSON(w, r, map[string]interface{}{
		"status":  "success",
		"scan_id": set.ID,
		"data":    set.Occurrences,
		"summary": set.Summary,
		"skipped": len(set.Skips),
	})
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	path, err := s.History.FilePath(name)
	if err != nil {
		s.renderError(w, r, http.StatusNotFound, fmt.Errorf("file not found"))
		return
	}
	w.Header().Set("Content-Disposition", "attachment; filename="+name)
	w.Header().Set("Content-Type", "text/csv")
	http.ServeFile(w, r, path)
}

func (s *Server) renderError(w http.ResponseWriter, r *http.Request, status int, err error) {
	log.Printf("[ERROR] %s %s: %v", r.Method, r.URL.Path, err)
	render.Status(r, status)
	render.JSON(w, r, map[string]interface{}{
		"status":  "error",
		"message": err.Error(),
	})
}

func splitTickers(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	return strings.Split(raw, ",")
}

func floatParam(r *http.Request, key string, def float64) (float64, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", key, v)
	}
	return f, nil
}

func intParam(r *http.Request, key string, def int) (int, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s %q", key, v)
	}
	return n, nil
}
