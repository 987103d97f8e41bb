package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/goalpost-app/goalpost/internal/db"
	"github.com/goalpost-app/goalpost/internal/domain"
)

// taskColumns is the canonical SELECT column list for tasks.
const taskColumns = `task_id, goal_id, user_id, title, description,
		week_start, week_end, year_week, target_count, actual_count,
		status, priority, sort_order, created_at, updated_at`

// taskColumnsAliased is the same list prefixed with "t." for join queries.
const taskColumnsAliased = `t.task_id, t.goal_id, t.user_id, t.title, t.description,
		t.week_start, t.week_end, t.year_week, t.target_count, t.actual_count,
		t.status, t.priority, t.sort_order, t.created_at, t.updated_at`

// SQLiteTaskRepo implements TaskRepo over a SQLite database or transaction.
type SQLiteTaskRepo struct {
	db db.DBTX
}

func NewSQLiteTaskRepo(dbtx db.DBTX) *SQLiteTaskRepo {
	return &SQLiteTaskRepo{db: dbtx}
}

func (r *SQLiteTaskRepo) Create(ctx context.Context, t *domain.Task) error {
	query := `INSERT INTO tasks (` + taskColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.GoalID,
		t.UserID,
		t.Title,
		t.Description,
		t.WeekStart.Format(dateLayout),
		t.WeekEnd.Format(dateLayout),
		t.YearWeek,
		t.TargetCount,
		t.ActualCount,
		string(t.Status),
		t.Priority,
		t.SortOrder,
		t.CreatedAt.Format(time.RFC3339),
		t.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) GetByID(ctx context.Context, userID, taskID string) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE task_id = ? AND user_id = ?`
	row := r.db.QueryRowContext(ctx, query, taskID, userID)
	return scanTask(row)
}

func (r *SQLiteTaskRepo) ListByGoal(ctx context.Context, userID, goalID string) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks
		WHERE goal_id = ? AND user_id = ?
		ORDER BY week_start, sort_order`
	rows, err := r.db.QueryContext(ctx, query, goalID, userID)
	if err != nil {
		return nil, fmt.Errorf("listing tasks by goal: %w", err)
	}
	defer rows.Close()
	return scanTasks(rows)
}

func (r *SQLiteTaskRepo) ListByWeek(ctx context.Context, userID string, weekStart time.Time) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks
		WHERE user_id = ? AND week_start = ?
		ORDER BY priority, sort_order`
	rows, err := r.db.QueryContext(ctx, query, userID, weekStart.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("listing tasks by week: %w", err)
	}
	defer rows.Close()
	return scanTasks(rows)
}

func (r *SQLiteTaskRepo) ListPending(ctx context.Context, userID string) ([]PendingTask, error) {
	query := `SELECT ` + taskColumnsAliased + `,
			g.title AS goal_title, g.end_date AS goal_deadline, g.priority AS goal_priority
		FROM tasks t
		JOIN goals g ON t.goal_id = g.goal_id
		WHERE t.user_id = ?
		  AND t.status NOT IN ('DONE', 'CANCELLED')
		  AND g.status = 'ACTIVE'
		ORDER BY t.week_start, t.priority DESC
		LIMIT 300`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing pending tasks: %w", err)
	}
	defer rows.Close()

	var pending []PendingTask
	for rows.Next() {
		var p PendingTask
		var t domain.Task
		var weekStart, weekEnd, status, createdAt, updatedAt, goalDeadline string

		err := rows.Scan(
			&t.ID, &t.GoalID, &t.UserID, &t.Title, &t.Description,
			&weekStart, &weekEnd, &t.YearWeek, &t.TargetCount, &t.ActualCount,
			&status, &t.Priority, &t.SortOrder, &createdAt, &updatedAt,
			&p.GoalTitle, &goalDeadline, &p.GoalPriority,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning pending task: %w", err)
		}

		t.WeekStart = parseDate(weekStart)
		t.WeekEnd = parseDate(weekEnd)
		t.Status = domain.TaskStatus(status)
		t.CreatedAt = parseTimestamp(createdAt)
		t.UpdatedAt = parseTimestamp(updatedAt)
		p.Task = t
		p.GoalDeadline = parseDate(goalDeadline)
		pending = append(pending, p)
	}
	return pending, rows.Err()
}

func (r *SQLiteTaskRepo) Update(ctx context.Context, t *domain.Task) error {
	query := `UPDATE tasks SET
		title = ?, description = ?, week_start = ?, week_end = ?, year_week = ?,
		target_count = ?, actual_count = ?, status = ?, priority = ?, sort_order = ?,
		updated_at = ?
		WHERE task_id = ? AND user_id = ?`
	res, err := r.db.ExecContext(ctx, query,
		t.Title,
		t.Description,
		t.WeekStart.Format(dateLayout),
		t.WeekEnd.Format(dateLayout),
		t.YearWeek,
		t.TargetCount,
		t.ActualCount,
		string(t.Status),
		t.Priority,
		t.SortOrder,
		nowUTC(),
		t.ID,
		t.UserID,
	)
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}
	return requireRow(res)
}

func (r *SQLiteTaskRepo) UpdateWeek(ctx context.Context, userID, taskID string, weekStart, weekEnd time.Time, yearWeek string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET week_start = ?, week_end = ?, year_week = ?, updated_at = ?
		 WHERE task_id = ? AND user_id = ?`,
		weekStart.Format(dateLayout),
		weekEnd.Format(dateLayout),
		yearWeek,
		nowUTC(),
		taskID,
		userID,
	)
	if err != nil {
		return fmt.Errorf("moving task: %w", err)
	}
	return requireRow(res)
}

func (r *SQLiteTaskRepo) Delete(ctx context.Context, userID, taskID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM tasks WHERE task_id = ? AND user_id = ?`, taskID, userID)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	return requireRow(res)
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var t domain.Task
	var weekStart, weekEnd, status, createdAt, updatedAt string

	err := row.Scan(
		&t.ID, &t.GoalID, &t.UserID, &t.Title, &t.Description,
		&weekStart, &weekEnd, &t.YearWeek, &t.TargetCount, &t.ActualCount,
		&status, &t.Priority, &t.SortOrder, &createdAt, &updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning task: %w", err)
	}

	t.WeekStart = parseDate(weekStart)
	t.WeekEnd = parseDate(weekEnd)
	t.Status = domain.TaskStatus(status)
	t.CreatedAt = parseTimestamp(createdAt)
	t.UpdatedAt = parseTimestamp(updatedAt)
	return &t, nil
}

func scanTasks(rows *sql.Rows) ([]*domain.Task, error) {
	var tasks []*domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}
