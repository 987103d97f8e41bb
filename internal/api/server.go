// Package api exposes the goal, task, and rebalance services over HTTP.
//
// Identity arrives in the X-Forwarded-Email header (set by the fronting
// proxy); X-Dev-Email and a configured dev fallback cover local runs.
// Responses and error bodies are JSON throughout.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/goalpost-app/goalpost/internal/repository"
	"github.com/goalpost-app/goalpost/internal/service"
)

type Server struct {
	goals   service.GoalService
	tasks   service.TaskService
	balance service.RebalanceService
	logger  *slog.Logger
	devUser string
}

type Option func(*Server)

// WithDevUser sets the identity assumed when no auth header is present.
// Leave unset in production; requests without identity then get 401.
func WithDevUser(email string) Option {
	return func(s *Server) { s.devUser = email }
}

func NewServer(
	goals service.GoalService,
	tasks service.TaskService,
	balance service.RebalanceService,
	logger *slog.Logger,
	opts ...Option,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		goals:   goals,
		tasks:   tasks,
		balance: balance,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler builds the full route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealth)

	mux.HandleFunc("POST /api/goals", s.withUser(s.handleCreateGoal))
	mux.HandleFunc("POST /api/goals/plan", s.withUser(s.handlePreviewPlan))
	mux.HandleFunc("GET /api/goals", s.withUser(s.handleListGoals))
	mux.HandleFunc("GET /api/goals/{id}", s.withUser(s.handleGetGoal))
	mux.HandleFunc("GET /api/goals/{id}/tasks", s.withUser(s.handleGoalTasks))
	mux.HandleFunc("POST /api/goals/{id}/archive", s.withUser(s.handleArchiveGoal))
	mux.HandleFunc("DELETE /api/goals/{id}", s.withUser(s.handleDeleteGoal))

	mux.HandleFunc("POST /api/tasks", s.withUser(s.handleCreateTask))
	mux.HandleFunc("GET /api/tasks/week/{date}", s.withUser(s.handleTasksForWeek))
	mux.HandleFunc("PATCH /api/tasks/{id}/status", s.withUser(s.handleTaskStatus))
	mux.HandleFunc("POST /api/tasks/{id}/move", s.withUser(s.handleMoveTask))
	mux.HandleFunc("DELETE /api/tasks/{id}", s.withUser(s.handleDeleteTask))

	mux.HandleFunc("POST /api/rebalance/calculate", s.withUser(s.handleRebalanceCalculate))
	mux.HandleFunc("POST /api/rebalance/apply", s.withUser(s.handleRebalanceApply))

	return s.logRequests(mux)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// userHandler is a request handler with resolved identity.
type userHandler func(w http.ResponseWriter, r *http.Request, userID string)

func (s *Server) withUser(h userHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get("X-Forwarded-Email")
		if userID == "" {
			userID = r.Header.Get("X-Dev-Email")
		}
		if userID == "" {
			userID = s.devUser
		}
		if userID == "" {
			writeError(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		h(w, r, userID)
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("http_request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

type errorResponse struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail})
}

// writeServiceError maps service failures onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	if errors.Is(err, repository.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body: "+err.Error())
		return false
	}
	return true
}

const dateLayout = "2006-01-02"

func parseDateParam(s string) (time.Time, error) {
	return time.ParseInLocation(dateLayout, s, time.UTC)
}
