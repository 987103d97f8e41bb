package service

import (
	"context"
	"fmt"
	"time"

	"github.com/goalpost-app/goalpost/internal/db"
	"github.com/goalpost-app/goalpost/internal/domain"
	"github.com/goalpost-app/goalpost/internal/repository"
	"github.com/goalpost-app/goalpost/internal/week"
	"github.com/google/uuid"
)

type taskService struct {
	tasks    repository.TaskRepo
	goals    repository.GoalRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewTaskService(tasks repository.TaskRepo, goals repository.GoalRepo, uow db.UnitOfWork, observers ...UseCaseObserver) TaskService {
	return &taskService{
		tasks:    tasks,
		goals:    goals,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *taskService) Create(ctx context.Context, t *domain.Task) error {
	if t.UserID == "" {
		return fmt.Errorf("user id is required")
	}
	if t.Title == "" {
		return fmt.Errorf("task title is required")
	}

	// The parent goal must exist and belong to the same user.
	if _, err := s.goals.GetByID(ctx, t.UserID, t.GoalID); err != nil {
		return fmt.Errorf("looking up goal: %w", err)
	}

	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if t.Status == "" {
		t.Status = domain.TaskNew
	}
	if t.Priority == 0 {
		t.Priority = domain.PriorityMedium
	}
	if t.TargetCount <= 0 {
		t.TargetCount = 1
	}

	// Snap whatever date came in onto the week grid.
	t.WeekStart = week.StartOf(t.WeekStart)
	t.WeekEnd = week.EndOf(t.WeekStart)
	t.YearWeek = week.Label(t.WeekStart)

	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now
	return s.tasks.Create(ctx, t)
}

func (s *taskService) GetByID(ctx context.Context, userID, taskID string) (*domain.Task, error) {
	return s.tasks.GetByID(ctx, userID, taskID)
}

func (s *taskService) ListByGoal(ctx context.Context, userID, goalID string) ([]*domain.Task, error) {
	return s.tasks.ListByGoal(ctx, userID, goalID)
}

func (s *taskService) ListByWeek(ctx context.Context, userID string, weekStart time.Time) ([]*domain.Task, error) {
	return s.tasks.ListByWeek(ctx, userID, week.StartOf(weekStart))
}

func (s *taskService) Update(ctx context.Context, t *domain.Task) error {
	t.UpdatedAt = time.Now().UTC()
	return s.tasks.Update(ctx, t)
}

func (s *taskService) UpdateStatus(ctx context.Context, userID, taskID string, status domain.TaskStatus) (*domain.Task, error) {
	start := time.Now()

	if !domain.ValidTaskStatuses[string(status)] {
		return nil, fmt.Errorf("invalid task status %q", status)
	}

	var updated *domain.Task
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTasks := repository.NewSQLiteTaskRepo(tx)
		txGoals := repository.NewSQLiteGoalRepo(tx)

		task, err := txTasks.GetByID(ctx, userID, taskID)
		if err != nil {
			return err
		}

		task.Status = status
		task.UpdatedAt = time.Now().UTC()

		// Completing a task books its remaining units onto the goal.
		if status == domain.TaskDone {
			diff := task.TargetCount - task.ActualCount
			task.ActualCount = task.TargetCount
			if diff != 0 {
				goal, err := txGoals.GetByID(ctx, userID, task.GoalID)
				if err != nil {
					return err
				}
				goal.CurrentCount += diff
				if err := txGoals.Update(ctx, goal); err != nil {
					return err
				}
			}
		}

		if err := txTasks.Update(ctx, task); err != nil {
			return err
		}
		updated = task
		return nil
	})

	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      "task_update_status",
		Duration:  time.Since(start),
		Success:   err == nil,
		Err:       err,
		StartedAt: start,
		Fields:    map[string]any{"status": string(status)},
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *taskService) Delete(ctx context.Context, userID, taskID string) error {
	return s.tasks.Delete(ctx, userID, taskID)
}
