// Package httpapi exposes a read-only status surface: the registry and the
// latest cycle outcome. The registry is fixed for the process lifetime, so
// there are no mutating routes.
package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/hamed0406/pingreport/internal/domain"
	"github.com/hamed0406/pingreport/internal/repo"
)

type Server struct {
	Logger   *zap.Logger
	Targets  []domain.Target
	Outcomes repo.OutcomeStore
}

func NewServer(l *zap.Logger, targets []domain.Target, outcomes repo.OutcomeStore) *Server {
	return &Server{Logger: l, Targets: targets, Outcomes: outcomes}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.AllowAll().Handler)
	r.Use(rateLimit(120, 60)) // 120 req/min, burst 60, per client IP

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/api/targets", s.handleTargets)
	r.Get("/api/report", s.handleReport)

	return r
}

func (s *Server) handleTargets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Targets)
}

type hostStatus struct {
	Name       string    `json:"name"`
	Address    string    `json:"address"`
	Reachable  bool      `json:"reachable"`
	AvgSeconds *float64  `json:"avg_response_seconds,omitempty"`
	CheckedAt  time.Time `json:"checked_at"`
}

type reportStatus struct {
	StartedAt      time.Time    `json:"started_at"`
	AllUnreachable bool         `json:"all_unreachable"`
	Hosts          []hostStatus `json:"hosts"`
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	outcome, err := s.Outcomes.Latest(r.Context())
	if err != nil {
		s.Logger.Warn("report_read_error", zap.Error(err))
		http.Error(w, "report unavailable", http.StatusInternalServerError)
		return
	}
	if outcome == nil {
		http.Error(w, "no cycle completed yet", http.StatusNotFound)
		return
	}

	resp := reportStatus{
		StartedAt:      outcome.StartedAt,
		AllUnreachable: outcome.AllUnreachable,
		Hosts:          make([]hostStatus, 0, len(outcome.Summaries)),
	}
	for _, sum := range outcome.Summaries {
		h := hostStatus{
			Name:      sum.Target.Name,
			Address:   sum.Target.Address,
			Reachable: sum.Reachable,
			CheckedAt: sum.CheckedAt,
		}
		if sum.AvgLatency != nil {
			sec := sum.AvgLatency.Seconds()
			h.AvgSeconds = &sec
		}
		resp.Hosts = append(resp.Hosts, h)
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
