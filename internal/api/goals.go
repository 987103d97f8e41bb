package api

import (
	"net/http"

	"github.com/goalpost-app/goalpost/internal/dissect"
	"github.com/goalpost-app/goalpost/internal/domain"
	"github.com/goalpost-app/goalpost/internal/service"
)

type goalCreateRequest struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	TargetCount     int      `json:"target_count"`
	StartDate       string   `json:"start_date"`
	EndDate         string   `json:"end_date"`
	Priority        int      `json:"priority"`
	Tags            []string `json:"tags"`
	WeeklyHours     int      `json:"weekly_hours"`
	ExperienceLevel string   `json:"experience_level"`
}

func (r goalCreateRequest) toServiceRequest(w http.ResponseWriter) (service.CreateGoalRequest, bool) {
	start, err := parseDateParam(r.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid start_date, expected YYYY-MM-DD")
		return service.CreateGoalRequest{}, false
	}
	end, err := parseDateParam(r.EndDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid end_date, expected YYYY-MM-DD")
		return service.CreateGoalRequest{}, false
	}
	return service.CreateGoalRequest{
		Title:           r.Title,
		Description:     r.Description,
		TargetCount:     r.TargetCount,
		StartDate:       start,
		EndDate:         end,
		Priority:        r.Priority,
		Tags:            r.Tags,
		WeeklyHours:     r.WeeklyHours,
		ExperienceLevel: r.ExperienceLevel,
	}, true
}

type goalResponse struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	TargetCount  int      `json:"target_count"`
	CurrentCount int      `json:"current_count"`
	StartDate    string   `json:"start_date"`
	EndDate      string   `json:"end_date"`
	Priority     int      `json:"priority"`
	Status       string   `json:"status"`
	Color        string   `json:"color"`
	Tags         []string `json:"tags"`
}

func toGoalResponse(g *domain.Goal) goalResponse {
	tags := g.Tags
	if tags == nil {
		tags = []string{}
	}
	return goalResponse{
		ID:           g.ID,
		Title:        g.Title,
		Description:  g.Description,
		TargetCount:  g.TargetCount,
		CurrentCount: g.CurrentCount,
		StartDate:    g.StartDate.Format(dateLayout),
		EndDate:      g.EndDate.Format(dateLayout),
		Priority:     g.Priority,
		Status:       string(g.Status),
		Color:        g.Color,
		Tags:         tags,
	}
}

type goalCreateResponse struct {
	Goal      goalResponse   `json:"goal"`
	Tasks     []taskResponse `json:"tasks"`
	AIPlanned bool           `json:"ai_planned"`
}

func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request, userID string) {
	var body goalCreateRequest
	if !decodeBody(w, r, &body) {
		return
	}
	req, ok := body.toServiceRequest(w)
	if !ok {
		return
	}
	result, err := s.goals.Create(r.Context(), userID, req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	resp := goalCreateResponse{
		Goal:      toGoalResponse(result.Goal),
		Tasks:     make([]taskResponse, 0, len(result.Tasks)),
		AIPlanned: result.AIPlanned,
	}
	for _, t := range result.Tasks {
		resp.Tasks = append(resp.Tasks, toTaskResponse(t))
	}
	writeJSON(w, http.StatusCreated, resp)
}

type plannedTaskResponse struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	WeekStart   string `json:"week_start"`
	YearWeek    string `json:"year_week"`
	Hours       int    `json:"hours"`
}

type planPreviewResponse struct {
	dissect.Plan
	Tasks []plannedTaskResponse `json:"tasks"`
}

func (s *Server) handlePreviewPlan(w http.ResponseWriter, r *http.Request, userID string) {
	var body goalCreateRequest
	if !decodeBody(w, r, &body) {
		return
	}
	req, ok := body.toServiceRequest(w)
	if !ok {
		return
	}
	plan, err := s.goals.PreviewPlan(r.Context(), userID, req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	resp := planPreviewResponse{
		Plan:  *plan,
		Tasks: make([]plannedTaskResponse, 0, len(plan.Tasks)),
	}
	for _, t := range plan.Tasks {
		resp.Tasks = append(resp.Tasks, plannedTaskResponse{
			Title:       t.Title,
			Description: t.Description,
			WeekStart:   t.WeekStart.Format(dateLayout),
			YearWeek:    t.YearWeek,
			Hours:       t.TargetCount,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListGoals(w http.ResponseWriter, r *http.Request, userID string) {
	includeArchived := r.URL.Query().Get("include_archived") == "true"
	goals, err := s.goals.List(r.Context(), userID, includeArchived)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	resp := make([]goalResponse, 0, len(goals))
	for _, g := range goals {
		resp = append(resp, toGoalResponse(g))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetGoal(w http.ResponseWriter, r *http.Request, userID string) {
	g, err := s.goals.GetByID(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toGoalResponse(g))
}

func (s *Server) handleGoalTasks(w http.ResponseWriter, r *http.Request, userID string) {
	tasks, err := s.tasks.ListByGoal(r.Context(), userID, r.PathValue("id"))
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

func (s *Server) handleArchiveGoal(w http.ResponseWriter, r *http.Request, userID string) {
	if err := s.goals.Archive(r.Context(), userID, r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Goal archived"})
}

func (s *Server) handleDeleteGoal(w http.ResponseWriter, r *http.Request, userID string) {
	if err := s.goals.Delete(r.Context(), userID, r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Goal deleted"})
}
