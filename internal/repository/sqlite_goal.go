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

// goalColumns is the canonical SELECT column list for goals.
const goalColumns = `goal_id, user_id, title, description, target_count, current_count,
		start_date, end_date, priority, status, color, tags, created_at, updated_at`

// SQLiteGoalRepo implements GoalRepo over a SQLite database or transaction.
type SQLiteGoalRepo struct {
	db db.DBTX
}

func NewSQLiteGoalRepo(dbtx db.DBTX) *SQLiteGoalRepo {
	return &SQLiteGoalRepo{db: dbtx}
}

func (r *SQLiteGoalRepo) Create(ctx context.Context, g *domain.Goal) error {
	query := `INSERT INTO goals (` + goalColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		g.ID,
		g.UserID,
		g.Title,
		g.Description,
		g.TargetCount,
		g.CurrentCount,
		g.StartDate.Format(dateLayout),
		g.EndDate.Format(dateLayout),
		g.Priority,
		string(g.Status),
		g.Color,
		joinTags(g.Tags),
		g.CreatedAt.Format(time.RFC3339),
		g.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting goal: %w", err)
	}
	return nil
}

func (r *SQLiteGoalRepo) GetByID(ctx context.Context, userID, goalID string) (*domain.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE goal_id = ? AND user_id = ?`
	row := r.db.QueryRowContext(ctx, query, goalID, userID)
	return scanGoal(row)
}

func (r *SQLiteGoalRepo) List(ctx context.Context, userID string, includeArchived bool) ([]*domain.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE user_id = ?`
	if !includeArchived {
		query += ` AND status != 'ARCHIVED'`
	}
	query += ` ORDER BY priority, end_date`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing goals: %w", err)
	}
	defer rows.Close()

	var goals []*domain.Goal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

func (r *SQLiteGoalRepo) Update(ctx context.Context, g *domain.Goal) error {
	query := `UPDATE goals SET
		title = ?, description = ?, target_count = ?, current_count = ?,
		start_date = ?, end_date = ?, priority = ?, status = ?, color = ?, tags = ?,
		updated_at = ?
		WHERE goal_id = ? AND user_id = ?`
	res, err := r.db.ExecContext(ctx, query,
		g.Title,
		g.Description,
		g.TargetCount,
		g.CurrentCount,
		g.StartDate.Format(dateLayout),
		g.EndDate.Format(dateLayout),
		g.Priority,
		string(g.Status),
		g.Color,
		joinTags(g.Tags),
		nowUTC(),
		g.ID,
		g.UserID,
	)
	if err != nil {
		return fmt.Errorf("updating goal: %w", err)
	}
	return requireRow(res)
}

func (r *SQLiteGoalRepo) Delete(ctx context.Context, userID, goalID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM goals WHERE goal_id = ? AND user_id = ?`, goalID, userID)
	if err != nil {
		return fmt.Errorf("deleting goal: %w", err)
	}
	return requireRow(res)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGoal(row rowScanner) (*domain.Goal, error) {
	var g domain.Goal
	var startDate, endDate, status, tags, createdAt, updatedAt string

	err := row.Scan(
		&g.ID,
		&g.UserID,
		&g.Title,
		&g.Description,
		&g.TargetCount,
		&g.CurrentCount,
		&startDate,
		&endDate,
		&g.Priority,
		&status,
		&g.Color,
		&tags,
		&createdAt,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning goal: %w", err)
	}

	g.StartDate = parseDate(startDate)
	g.EndDate = parseDate(endDate)
	g.Status = domain.GoalStatus(status)
	g.Tags = splitTags(tags)
	g.CreatedAt = parseTimestamp(createdAt)
	g.UpdatedAt = parseTimestamp(updatedAt)
	return &g, nil
}

// requireRow converts a zero-row UPDATE/DELETE into ErrNotFound.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
