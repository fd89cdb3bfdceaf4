package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/anthonyjmartinez/connchk/internal/history"
	"github.com/anthonyjmartinez/connchk/internal/probe"
	"github.com/anthonyjmartinez/connchk/internal/target"
)

// CheckRunner is what the server needs from the runner.
type CheckRunner interface {
	Run(ctx context.Context, targets []target.Target) ([]probe.CheckResult, error)
}

// History is the optional run store; a nil Server.History disables the
// /api/runs routes' content, not the routes.
type History interface {
	SaveRun(ctx context.Context, startedAt time.Time, results []probe.CheckResult) (int64, error)
	Recent(ctx context.Context, limit int) ([]history.RunSummary, error)
	Results(ctx context.Context, runID int64) ([]probe.CheckResult, error)
}

type Server struct {
	Logger  *zap.Logger
	Runner  CheckRunner
	History History
}

func NewServer(l *zap.Logger, r CheckRunner, h History) *Server {
	return &Server{Logger: l, Runner: r, History: h}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.AllowAll().Handler)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Post("/api/checks", s.handleRunChecks)
	r.Get("/api/runs", s.handleListRuns)
	r.Get("/api/runs/{id}", s.handleGetRun)

	return r
}

type checksPayload struct {
	Targets []target.Target `json:"targets"`
}

func (s *Server) handleRunChecks(w http.ResponseWriter, r *http.Request) {
	var p checksPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil || len(p.Targets) == 0 {
		http.Error(w, "bad payload", http.StatusBadRequest)
		return
	}

	started := time.Now().UTC()
	results, err := s.Runner.Run(r.Context(), p.Targets)
	if err != nil {
		// Only validation fails a whole run; probe failures come back as
		// results.
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	for i := range results {
		res := &results[i]
		if res.Success || res.StatusCode != 0 {
			continue
		}
		// No response at all: classify the name so the caller can tell a
		// dead host from a dead record.
		host := probe.ExtractHost(p.Targets[res.Index].Addr)
		dns := probe.CheckDNS(host)
		s.Logger.Info("dns_check",
			zap.String("host", dns.Host),
			zap.String("class", dns.Class),
			zap.String("resolver_error", dns.ResolverError),
		)
		if dns.Class != "RESOLVES" {
			res.Message = res.Message + " dns=" + dns.Class
		}
	}

	var runID int64
	if s.History != nil {
		if runID, err = s.History.SaveRun(r.Context(), started, results); err != nil {
			s.Logger.Warn("history_save_error", zap.Error(err))
		}
	}

	s.Logger.Info("checks_run",
		zap.Int("targets", len(results)),
		zap.Int64("run_id", runID),
	)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"run_id":  runID,
		"results": results,
	})
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if s.History == nil {
		_ = json.NewEncoder(w).Encode([]history.RunSummary{})
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	runs, err := s.History.Recent(r.Context(), limit)
	if err != nil {
		http.Error(w, "list error", http.StatusInternalServerError)
		return
	}
	if runs == nil {
		runs = []history.RunSummary{}
	}
	_ = json.NewEncoder(w).Encode(runs)
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	if s.History == nil {
		http.Error(w, "history disabled", http.StatusNotFound)
		return
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "bad run id", http.StatusBadRequest)
		return
	}
	results, err := s.History.Results(r.Context(), id)
	if err != nil {
		http.Error(w, "lookup error", http.StatusInternalServerError)
		return
	}
	if len(results) == 0 {
		http.Error(w, "no such run", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(results)
}
