package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goalpost-app/goalpost/internal/rebalance"
	"github.com/goalpost-app/goalpost/internal/repository"
	"github.com/goalpost-app/goalpost/internal/week"
)

type rebalanceService struct {
	tasks    repository.TaskRepo
	observer UseCaseObserver
	now      func() time.Time // injectable for tests
}

func NewRebalanceService(tasks repository.TaskRepo, observers ...UseCaseObserver) RebalanceService {
	return &rebalanceService{
		tasks:    tasks,
		observer: useCaseObserverOrNoop(observers),
		now:      time.Now,
	}
}

func (s *rebalanceService) Calculate(ctx context.Context, userID string, currentWeekHours, futureWeekHours float64) (*rebalance.Plan, error) {
	start := time.Now()

	if userID == "" {
		return nil, fmt.Errorf("user id is required")
	}
	if currentWeekHours < 0 {
		return nil, fmt.Errorf("current week hours must not be negative")
	}
	if futureWeekHours <= 0 {
		return nil, fmt.Errorf("future week hours must be positive")
	}

	pending, err := s.tasks.ListPending(ctx, userID)
	if err != nil {
		s.observeCalculate(ctx, start, 0, 0, err)
		return nil, fmt.Errorf("loading pending tasks: %w", err)
	}

	snapshot := make([]rebalance.Task, 0, len(pending))
	for _, p := range pending {
		deadline := p.GoalDeadline
		snapshot = append(snapshot, rebalance.Task{
			ID:           p.Task.ID,
			GoalID:       p.Task.GoalID,
			Title:        p.Task.Title,
			WeekStart:    p.Task.WeekStart,
			WeekEnd:      p.Task.WeekEnd,
			YearWeek:     p.Task.YearWeek,
			TargetCount:  p.Task.TargetCount,
			Status:       p.Task.Status,
			Priority:     p.Task.Priority,
			GoalTitle:    p.GoalTitle,
			GoalDeadline: &deadline,
			GoalPriority: p.GoalPriority,
		})
	}

	plan := rebalance.Calculate(rebalance.Input{
		Tasks:            snapshot,
		Today:            s.now(),
		CurrentWeekHours: currentWeekHours,
		FutureWeekHours:  futureWeekHours,
	})

	s.observeCalculate(ctx, start, len(snapshot), len(plan.Changes), nil)
	return &plan, nil
}

func (s *rebalanceService) Apply(ctx context.Context, userID string, changes []rebalance.Change) (*rebalance.ApplyResult, error) {
	start := time.Now()

	if userID == "" {
		return nil, fmt.Errorf("user id is required")
	}

	result := &rebalance.ApplyResult{
		Applied: []rebalance.AppliedChange{},
		Errors:  []rebalance.ApplyError{},
	}

	for _, ch := range changes {
		if ch.Action != rebalance.ActionMove {
			continue
		}

		if ch.TargetWeekStart == "" {
			result.Errors = append(result.Errors, rebalance.ApplyError{
				TaskID: ch.TaskID, Error: "No target week start",
			})
			continue
		}

		weekStart, err := time.ParseInLocation("2006-01-02", ch.TargetWeekStart, time.UTC)
		if err != nil {
			result.Errors = append(result.Errors, rebalance.ApplyError{
				TaskID: ch.TaskID, Error: fmt.Sprintf("Invalid target week start %q", ch.TargetWeekStart),
			})
			continue
		}

		weekEnd := week.EndOf(weekStart)
		yearWeek := week.Label(weekStart)

		if _, err := s.tasks.GetByID(ctx, userID, ch.TaskID); err != nil {
			msg := err.Error()
			if errors.Is(err, repository.ErrNotFound) {
				msg = "Task not found"
			}
			result.Errors = append(result.Errors, rebalance.ApplyError{TaskID: ch.TaskID, Error: msg})
			continue
		}

		if err := s.tasks.UpdateWeek(ctx, userID, ch.TaskID, weekStart, weekEnd, yearWeek); err != nil {
			result.Errors = append(result.Errors, rebalance.ApplyError{TaskID: ch.TaskID, Error: err.Error()})
			continue
		}

		direction := ch.Direction
		if direction == "" {
			direction = rebalance.Push
		}
		result.Applied = append(result.Applied, rebalance.AppliedChange{
			TaskID:    ch.TaskID,
			TaskTitle: ch.TaskTitle,
			FromWeek:  ch.FromWeek,
			ToWeek:    yearWeek,
			Direction: direction,
		})
	}

	result.Success = len(result.Errors) == 0
	result.TotalApplied = len(result.Applied)
	result.TotalErrors = len(result.Errors)

	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      "rebalance_apply",
		Duration:  time.Since(start),
		Success:   result.Success,
		StartedAt: start,
		Fields: map[string]any{
			"applied": result.TotalApplied,
			"errors":  result.TotalErrors,
		},
	})
	return result, nil
}

func (s *rebalanceService) observeCalculate(ctx context.Context, start time.Time, analyzed, proposed int, err error) {
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      "rebalance_calculate",
		Duration:  time.Since(start),
		Success:   err == nil,
		Err:       err,
		StartedAt: start,
		Fields: map[string]any{
			"tasks_analyzed": analyzed,
			"changes":        proposed,
		},
	})
}
