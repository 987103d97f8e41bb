package api

import (
	"net/http"

	"github.com/goalpost-app/goalpost/internal/rebalance"
)

type rebalanceCalculateRequest struct {
	CurrentWeekHours float64 `json:"current_week_hours"`
	FutureWeekHours  float64 `json:"future_week_hours"`
}

// validate enforces the boundary limits: current-week hours may be zero
// (drain the week entirely) but never negative, future-week hours must be
// positive, and neither exceeds the hours in a week.
func (r rebalanceCalculateRequest) validate() string {
	if r.CurrentWeekHours < 0 || r.CurrentWeekHours > 168 {
		return "current_week_hours must be between 0 and 168"
	}
	if r.FutureWeekHours <= 0 || r.FutureWeekHours > 168 {
		return "future_week_hours must be greater than 0 and at most 168"
	}
	return ""
}

func (s *Server) handleRebalanceCalculate(w http.ResponseWriter, r *http.Request, userID string) {
	body := rebalanceCalculateRequest{CurrentWeekHours: 10, FutureWeekHours: 10}
	if !decodeBody(w, r, &body) {
		return
	}
	if msg := body.validate(); msg != "" {
		writeError(w, http.StatusUnprocessableEntity, msg)
		return
	}
	plan, err := s.balance.Calculate(r.Context(), userID, body.CurrentWeekHours, body.FutureWeekHours)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

type rebalanceApplyRequest struct {
	Changes []rebalance.Change `json:"changes"`
}

func (s *Server) handleRebalanceApply(w http.ResponseWriter, r *http.Request, userID string) {
	var body rebalanceApplyRequest
	if !decodeBody(w, r, &body) {
		return
	}
	result, err := s.balance.Apply(r.Context(), userID, body.Changes)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}
