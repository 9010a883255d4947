package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Freeeeeet/regatta_bot/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TaskRepository работает с задачами восхождений.
// Задачи - единственная изменяемая часть сгенерированного расписания
type TaskRepository struct {
	pool *pgxpool.Pool
}

func NewTaskRepository(pool *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{pool: pool}
}

// GetByID получает задачу по ID
func (r *TaskRepository) GetByID(ctx context.Context, id string) (*model.ClimbTask, error) {
	query := `
		SELECT id, schedule_id, peak_id, peak_name, climber_names, status, created_at, updated_at
		FROM climb_tasks
		WHERE id = $1
	`

	var task model.ClimbTask
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&task.ID,
		&task.ScheduleID,
		&task.PeakID,
		&task.PeakName,
		&task.ClimberNames,
		&task.Status,
		&task.CreatedAt,
		&task.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get task by id: %w", err)
	}

	return &task, nil
}

// UpdateStatus обновляет статус задачи и метку updated_at
func (r *TaskRepository) UpdateStatus(ctx context.Context, id string, status model.TaskStatus, updatedAt time.Time) error {
	query := `
		UPDATE climb_tasks
		SET status = $1, updated_at = $2
		WHERE id = $3
	`

	result, err := r.pool.Exec(ctx, query, status, updatedAt, id)
	if err != nil {
		return fmt.Errorf("update task status: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("task not found")
	}

	return nil
}
