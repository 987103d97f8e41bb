package service

import (
	"context"
	"fmt"
	"time"

	"github.com/goalpost-app/goalpost/internal/db"
	"github.com/goalpost-app/goalpost/internal/dissect"
	"github.com/goalpost-app/goalpost/internal/domain"
	"github.com/goalpost-app/goalpost/internal/repository"
	"github.com/goalpost-app/goalpost/internal/week"
	"github.com/google/uuid"
)

// goalColors is the palette cycled through for new goals so each goal
// renders distinctly.
var goalColors = []string{
	"#22c55e", // green
	"#3b82f6", // blue
	"#f59e0b", // amber
	"#ef4444", // red
	"#8b5cf6", // purple
	"#ec4899", // pink
	"#06b6d4", // cyan
	"#f97316", // orange
	"#14b8a6", // teal
	"#6366f1", // indigo
	"#84cc16", // lime
	"#d946ef", // fuchsia
	"#eab308", // yellow
	"#0ea5e9", // sky
	"#a855f7", // violet
	"#10b981", // emerald
}

type goalService struct {
	goals    repository.GoalRepo
	tasks    repository.TaskRepo
	uow      db.UnitOfWork
	agent    *dissect.Agent // nil disables AI planning
	observer UseCaseObserver
}

func NewGoalService(
	goals repository.GoalRepo,
	tasks repository.TaskRepo,
	uow db.UnitOfWork,
	agent *dissect.Agent,
	observers ...UseCaseObserver,
) GoalService {
	return &goalService{
		goals:    goals,
		tasks:    tasks,
		uow:      uow,
		agent:    agent,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *goalService) Create(ctx context.Context, userID string, req CreateGoalRequest) (*CreateGoalResult, error) {
	start := time.Now()

	if err := validateGoalRequest(userID, &req); err != nil {
		return nil, err
	}

	planned, aiPlanned := s.planTasks(ctx, req)
	if len(planned) == 0 {
		return nil, fmt.Errorf("goal window contains no schedulable weeks")
	}

	now := time.Now().UTC()
	goal := &domain.Goal{
		ID:           uuid.New().String(),
		UserID:       userID,
		Title:        req.Title,
		Description:  req.Description,
		TargetCount:  plannedTotal(planned),
		CurrentCount: 0,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Priority:     req.Priority,
		Status:       domain.GoalActive,
		Color:        s.nextColor(ctx, userID),
		Tags:         req.Tags,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	tasks := make([]*domain.Task, 0, len(planned))
	for _, p := range planned {
		tasks = append(tasks, &domain.Task{
			ID:          uuid.New().String(),
			GoalID:      goal.ID,
			UserID:      userID,
			Title:       p.Title,
			Description: p.Description,
			WeekStart:   p.WeekStart,
			WeekEnd:     p.WeekEnd,
			YearWeek:    p.YearWeek,
			TargetCount: p.TargetCount,
			Status:      domain.TaskNew,
			Priority:    req.Priority,
			SortOrder:   p.SortOrder,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}

	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txGoals := repository.NewSQLiteGoalRepo(tx)
		txTasks := repository.NewSQLiteTaskRepo(tx)

		if err := txGoals.Create(ctx, goal); err != nil {
			return fmt.Errorf("creating goal: %w", err)
		}
		for _, t := range tasks {
			if err := txTasks.Create(ctx, t); err != nil {
				return fmt.Errorf("creating task '%s': %w", t.Title, err)
			}
		}
		return nil
	})

	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      "goal_create",
		Duration:  time.Since(start),
		Success:   err == nil,
		Err:       err,
		StartedAt: start,
		Fields: map[string]any{
			"tasks":      len(tasks),
			"ai_planned": aiPlanned,
		},
	})
	if err != nil {
		return nil, err
	}

	return &CreateGoalResult{Goal: goal, Tasks: tasks, AIPlanned: aiPlanned}, nil
}

func (s *goalService) PreviewPlan(ctx context.Context, userID string, req CreateGoalRequest) (*dissect.Plan, error) {
	if err := validateGoalRequest(userID, &req); err != nil {
		return nil, err
	}
	if s.agent == nil {
		return nil, fmt.Errorf("AI planning is not enabled")
	}
	return s.agent.Dissect(ctx, dissect.Request{
		Title:           req.Title,
		Description:     req.Description,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		WeeklyHours:     req.WeeklyHours,
		ExperienceLevel: req.ExperienceLevel,
	})
}

func (s *goalService) GetByID(ctx context.Context, userID, goalID string) (*domain.Goal, error) {
	return s.goals.GetByID(ctx, userID, goalID)
}

func (s *goalService) List(ctx context.Context, userID string, includeArchived bool) ([]*domain.Goal, error) {
	return s.goals.List(ctx, userID, includeArchived)
}

func (s *goalService) Update(ctx context.Context, g *domain.Goal) error {
	g.UpdatedAt = time.Now().UTC()
	return s.goals.Update(ctx, g)
}

func (s *goalService) Archive(ctx context.Context, userID, goalID string) error {
	g, err := s.goals.GetByID(ctx, userID, goalID)
	if err != nil {
		return err
	}
	g.Status = domain.GoalArchived
	g.UpdatedAt = time.Now().UTC()
	return s.goals.Update(ctx, g)
}

func (s *goalService) Delete(ctx context.Context, userID, goalID string) error {
	// Tasks go with the goal via ON DELETE CASCADE.
	return s.goals.Delete(ctx, userID, goalID)
}

// planTasks prefers the AI planner and falls back to the even splitter on
// any failure, so goal creation works with no model running.
func (s *goalService) planTasks(ctx context.Context, req CreateGoalRequest) ([]dissect.PlannedTask, bool) {
	if s.agent != nil {
		plan, err := s.agent.Dissect(ctx, dissect.Request{
			Title:           req.Title,
			Description:     req.Description,
			StartDate:       req.StartDate,
			EndDate:         req.EndDate,
			WeeklyHours:     req.WeeklyHours,
			ExperienceLevel: req.ExperienceLevel,
		})
		if err == nil && len(plan.Tasks) > 0 {
			return plan.Tasks, true
		}
	}

	target := req.TargetCount
	if target <= 0 {
		target = len(week.Between(req.StartDate, req.EndDate))
	}
	return dissect.PlanEvenly(req.Title, target, req.StartDate, req.EndDate), false
}

func (s *goalService) nextColor(ctx context.Context, userID string) string {
	existing, err := s.goals.List(ctx, userID, true)
	if err != nil {
		return goalColors[0]
	}
	return goalColors[len(existing)%len(goalColors)]
}

func plannedTotal(tasks []dissect.PlannedTask) int {
	total := 0
	for _, t := range tasks {
		total += t.TargetCount
	}
	return total
}

func validateGoalRequest(userID string, req *CreateGoalRequest) error {
	if userID == "" {
		return fmt.Errorf("user id is required")
	}
	if req.Title == "" {
		return fmt.Errorf("goal title is required")
	}
	if req.EndDate.Before(req.StartDate) {
		return fmt.Errorf("goal end date precedes start date")
	}
	if req.Priority == 0 {
		req.Priority = domain.PriorityMedium
	}
	if req.Priority < domain.PriorityUrgent || req.Priority > domain.PriorityOptional {
		return fmt.Errorf("priority must be between 1 and 5")
	}
	return nil
}
