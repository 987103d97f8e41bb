package api

import (
	"net/http"

	"github.com/goalpost-app/goalpost/internal/domain"
	"github.com/goalpost-app/goalpost/internal/week"
)

type taskResponse struct {
	ID          string `json:"id"`
	GoalID      string `json:"goal_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	WeekStart   string `json:"week_start"`
	WeekEnd     string `json:"week_end"`
	YearWeek    string `json:"year_week"`
	TargetCount int    `json:"target_count"`
	ActualCount int    `json:"actual_count"`
	Status      string `json:"status"`
	Priority    int    `json:"priority"`
	SortOrder   int    `json:"sort_order"`
}

func toTaskResponse(t *domain.Task) taskResponse {
	return taskResponse{
		ID:          t.ID,
		GoalID:      t.GoalID,
		Title:       t.Title,
		Description: t.Description,
		WeekStart:   t.WeekStart.Format(dateLayout),
		WeekEnd:     t.WeekEnd.Format(dateLayout),
		YearWeek:    t.YearWeek,
		TargetCount: t.TargetCount,
		ActualCount: t.ActualCount,
		Status:      string(t.Status),
		Priority:    t.Priority,
		SortOrder:   t.SortOrder,
	}
}

type taskCreateRequest struct {
	GoalID      string `json:"goal_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	WeekStart   string `json:"week_start"`
	TargetCount int    `json:"target_count"`
	Priority    int    `json:"priority"`
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request, userID string) {
	var body taskCreateRequest
	if !decodeBody(w, r, &body) {
		return
	}
	weekStart, err := parseDateParam(body.WeekStart)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid week_start, expected YYYY-MM-DD")
		return
	}
	t := &domain.Task{
		GoalID:      body.GoalID,
		UserID:      userID,
		Title:       body.Title,
		Description: body.Description,
		WeekStart:   weekStart,
		TargetCount: body.TargetCount,
		Priority:    body.Priority,
	}
	if err := s.tasks.Create(r.Context(), t); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTaskResponse(t))
}

// handleTasksForWeek lists the tasks of the week containing the path date.
// Any day of the week works; the service snaps it to Monday.
func (s *Server) handleTasksForWeek(w http.ResponseWriter, r *http.Request, userID string) {
	day, err := parseDateParam(r.PathValue("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
		return
	}
	tasks, err := s.tasks.ListByWeek(r.Context(), userID, day)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	resp := make([]taskResponse, 0, len(tasks))
	for _, t := range tasks {
		resp = append(resp, toTaskResponse(t))
	}
	writeJSON(w, http.StatusOK, resp)
}

type taskStatusRequest struct {
	Status string `json:"status"`
}

func (s *Server) handleTaskStatus(w http.ResponseWriter, r *http.Request, userID string) {
	var body taskStatusRequest
	if !decodeBody(w, r, &body) {
		return
	}
	if !domain.ValidTaskStatuses[body.Status] {
		writeError(w, http.StatusBadRequest, "Invalid task status: "+body.Status)
		return
	}
	t, err := s.tasks.UpdateStatus(r.Context(), userID, r.PathValue("id"), domain.TaskStatus(body.Status))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTaskResponse(t))
}

type taskMoveRequest struct {
	NewWeekStart string `json:"new_week_start"`
}

// handleMoveTask reassigns a task to the week containing new_week_start.
func (s *Server) handleMoveTask(w http.ResponseWriter, r *http.Request, userID string) {
	var body taskMoveRequest
	if !decodeBody(w, r, &body) {
		return
	}
	day, err := parseDateParam(body.NewWeekStart)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid new_week_start, expected YYYY-MM-DD")
		return
	}
	t, err := s.tasks.GetByID(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	monday := week.StartOf(day)
	t.WeekStart = monday
	t.WeekEnd = week.EndOf(monday)
	t.YearWeek = week.Label(monday)
	if err := s.tasks.Update(r.Context(), t); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTaskResponse(t))
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request, userID string) {
	if err := s.tasks.Delete(r.Context(), userID, r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Task deleted"})
}
