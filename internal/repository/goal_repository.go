package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ymoney/networth-backend/internal/apperrors"
	"github.com/ymoney/networth-backend/internal/model"
)

// GoalRepository provides data access methods for the goal table.
type GoalRepository struct {
	db *sql.DB
}

// NewGoalRepository creates a new GoalRepository with the provided database connection.
func NewGoalRepository(db *sql.DB) *GoalRepository {
	return &GoalRepository{db: db}
}

// GetGoals retrieves all goals, optionally filtered by goal type.
func (r *GoalRepository) GetGoals(goalType string) ([]model.Goal, error) {
	query := `
		SELECT id, name, target_amount, goal_type, currency, description, created_at
		FROM goal
	`
	var args []any

	if goalType != "" {
		query += ` WHERE goal_type = ?`
		args = append(args, goalType)
	}
	query += ` ORDER BY created_at ASC`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query goal table: %w", err)
	}
	defer rows.Close()

	goals := []model.Goal{}

	for rows.Next() {
		g, err := scanGoal(rows.Scan)
		if err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating goal table: %w", err)
	}

	return goals, nil
}

// GetGoal retrieves a single goal by ID.
// Returns apperrors.ErrGoalNotFound if it does not exist.
func (r *GoalRepository) GetGoal(goalID string) (model.Goal, error) {
	query := `
		SELECT id, name, target_amount, goal_type, currency, description, created_at
		FROM goal
		WHERE id = ?
	`

	row := r.db.QueryRow(query, goalID)
	g, err := scanGoal(row.Scan)
	if err == sql.ErrNoRows {
		return model.Goal{}, apperrors.ErrGoalNotFound
	}
	if err != nil {
		return model.Goal{}, err
	}

	return g, nil
}

// CreateGoal inserts a new goal and returns it with its generated ID.
func (r *GoalRepository) CreateGoal(g model.Goal) (model.Goal, error) {
	if g.ID == "" {
		g.ID = uuid.New().String()
	}
	if g.Currency == "" {
		g.Currency = "TWD"
	}
	g.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO goal (id, name, target_amount, goal_type, currency, description, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		g.ID,
		g.Name,
		g.TargetAmount,
		g.GoalType,
		g.Currency,
		nullString(g.Description),
		g.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return model.Goal{}, fmt.Errorf("failed to insert goal: %w", err)
	}

	return g, nil
}

// UpdateGoal updates the mutable fields of a goal.
// Returns apperrors.ErrGoalNotFound if no row was updated.
func (r *GoalRepository) UpdateGoal(g model.Goal) error {
	query := `
		UPDATE goal
		SET name = ?, target_amount = ?, goal_type = ?, currency = ?, description = ?
		WHERE id = ?
	`

	result, err := r.db.Exec(query,
		g.Name,
		g.TargetAmount,
		g.GoalType,
		g.Currency,
		nullString(g.Description),
		g.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update goal: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrGoalNotFound
	}

	return nil
}

// DeleteGoal removes a goal by ID.
func (r *GoalRepository) DeleteGoal(goalID string) error {
	result, err := r.db.Exec(`DELETE FROM goal WHERE id = ?`, goalID)
	if err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrGoalNotFound
	}

	return nil
}

func scanGoal(scan func(dest ...any) error) (model.Goal, error) {
	var g model.Goal
	var description sql.NullString
	var createdAtStr sql.NullString

	err := scan(
		&g.ID,
		&g.Name,
		&g.TargetAmount,
		&g.GoalType,
		&g.Currency,
		&description,
		&createdAtStr,
	)
	if err == sql.ErrNoRows {
		return model.Goal{}, err
	}
	if err != nil {
		return model.Goal{}, fmt.Errorf("failed to scan goal table results: %w", err)
	}

	g.Description = description.String
	if createdAtStr.Valid {
		if g.CreatedAt, err = ParseTime(createdAtStr.String); err != nil {
			return model.Goal{}, fmt.Errorf("failed to parse created_at: %w", err)
		}
	}

	return g, nil
}
