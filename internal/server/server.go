package server

import (
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"

	"sales-insights-go/internal/dashboard"
	"sales-insights-go/internal/dataset"
	"sales-insights-go/internal/export"
	"sales-insights-go/internal/ingest"
	"sales-insights-go/internal/insights"
	"sales-insights-go/internal/logger"
	"sales-insights-go/internal/types"
)

// Snapshot is one complete, immutable load pass: the Dataset, its warnings,
// and the derived view models. The server always serves a whole snapshot;
// there is no partial progress.
type Snapshot struct {
	Dataset    *dataset.Dataset     `json:"-"`
	Warnings   []types.Warning      `json:"warnings,omitempty"`
	Overview   dataset.Overview     `json:"overview"`
	Highlights []insights.Highlight `json:"highlights"`
	LoadedAt   time.Time            `json:"loaded_at"`
	LoadError  string               `json:"load_error,omitempty"`
}

// Server serves the dashboard and JSON API over one atomic snapshot.
type Server struct {
	dataDir string
	variant dashboard.Variant
	log     *logger.Logger
	snap    atomic.Pointer[Snapshot]
}

func New(dataDir string, variant dashboard.Variant) *Server {
	s := &Server{dataDir: dataDir, variant: variant, log: logger.New()}
	// never serve a nil snapshot
	s.snap.Store(&Snapshot{Dataset: dataset.Aggregate(nil), LoadedAt: time.Now()})
	return s
}

// Reload runs a fresh load+aggregate pass and swaps it in. A fatal ingestion
// error leaves an empty dataset in place with the error recorded on the
// snapshot, per the no-partial-success policy.
func (s *Server) Reload() (*Snapshot, error) {
	log := s.log.WithComponent("server").WithField("data_dir", s.dataDir)

	records, warnings, err := ingest.Load(s.dataDir)
	if err != nil {
		snap := &Snapshot{
			Dataset:   dataset.Aggregate(nil),
			LoadedAt:  time.Now(),
			LoadError: err.Error(),
		}
		snap.Overview = dataset.Summarize(snap.Dataset, nil)
		snap.Highlights = insights.Generate(snap.Dataset)
		s.snap.Store(snap)
		return snap, err
	}

	ds := dataset.Aggregate(records)
	snap := &Snapshot{
		Dataset:    ds,
		Warnings:   warnings,
		Overview:   dataset.Summarize(ds, warnings),
		Highlights: insights.Generate(ds),
		LoadedAt:   time.Now(),
	}
	s.snap.Store(snap)
	log.WithField("records", len(records)).WithField("warnings", len(warnings)).Info("snapshot refreshed")
	return snap, nil
}

// Snapshot returns the currently served snapshot.
func (s *Server) Snapshot() *Snapshot {
	return s.snap.Load()
}

// Routes wires all handlers onto a fresh mux.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		logger.New().WithRequest(r).Info("health check")
		w.Write([]byte("ok"))
	})

	mux.HandleFunc("GET /api/dataset", func(w http.ResponseWriter, r *http.Request) {
		snap := s.Snapshot()
		writeJSON(w, r, map[string]any{
			"dataset":  snap.Dataset,
			"warnings": snap.Warnings,
		})
	})

	mux.HandleFunc("GET /api/summary", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, s.Snapshot())
	})

	mux.HandleFunc("GET /api/folders", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, s.Snapshot().Overview.Folders)
	})

	mux.HandleFunc("GET /api/folders/{name}", func(w http.ResponseWriter, r *http.Request) {
		name := r.PathValue("name")
		fv, ok := dataset.FolderDetail(s.Snapshot().Dataset, name)
		if !ok {
			http.Error(w, "unknown folder", http.StatusNotFound)
			return
		}
		writeJSON(w, r, fv)
	})

	mux.HandleFunc("GET /api/export", func(w http.ResponseWriter, r *http.Request) {
		reqLog := logger.New().WithRequest(r).WithField("handler", "export")
		snap := s.Snapshot()
		f, err := export.WriteWorkbook(snap.Dataset, snap.Overview)
		if err != nil {
			reqLog.WithError(err).Error("workbook build failed")
			http.Error(w, "export failed", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="sales-insights.xlsx"`)
		if err := f.Write(w); err != nil {
			reqLog.WithError(err).Error("workbook write failed")
		}
	})

	mux.HandleFunc("POST /api/reload", func(w http.ResponseWriter, r *http.Request) {
		reqLog := logger.New().WithRequest(r).WithField("handler", "reload")
		reqLog.Info("reload requested")
		snap, err := s.Reload()
		if err != nil {
			reqLog.WithError(err).Error("reload failed")
			w.WriteHeader(http.StatusInternalServerError)
		}
		writeJSON(w, r, map[string]any{
			"records":    len(snap.Dataset.Rows),
			"warnings":   len(snap.Warnings),
			"load_error": snap.LoadError,
		})
	})

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		reqLog := logger.New().WithRequest(r).WithField("handler", "dashboard")
		snap := s.Snapshot()
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		err := dashboard.Render(w, dashboard.PageData{
			Variant:    s.variant,
			Overview:   snap.Overview,
			Highlights: snap.Highlights,
			LoadError:  snap.LoadError,
		})
		if err != nil {
			reqLog.WithError(err).Error("dashboard render failed")
		}
	})

	return mux
}

func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		logger.New().WithRequest(r).WithError(err).Error("failed to write response")
	}
}
