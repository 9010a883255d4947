package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Freeeeeet/regatta_bot/internal/model"
	"github.com/Freeeeeet/regatta_bot/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RaceRepository хранит расписания многоэтапных гонок:
// участки, восхождения и задачи сохраняются вместе с агрегатом
type RaceRepository struct {
	pool *pgxpool.Pool
}

func NewRaceRepository(pool *pgxpool.Pool) *RaceRepository {
	return &RaceRepository{pool: pool}
}

// Create сохраняет агрегат целиком в одной транзакции
func (r *RaceRepository) Create(ctx context.Context, s *model.RaceSchedule) error {
	crewJSON, err := json.Marshal(s.Crew)
	if err != nil {
		return fmt.Errorf("marshal crew: %w", err)
	}

	return base.InTx(ctx, r.pool, func(tx pgx.Tx) error {
		query := `
			INSERT INTO race_schedules (id, chat_id, race_name, race_start, watch_length_hours, crew, total_hours, notes, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`

		_, err := tx.Exec(ctx, query,
			s.ID,
			s.ChatID,
			s.RaceName,
			s.RaceStart,
			s.WatchLengthHours,
			crewJSON,
			s.TotalHours,
			s.Notes,
			s.CreatedAt,
			s.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert race schedule: %w", err)
		}

		if err := insertLegs(ctx, tx, s.ID, s.Legs); err != nil {
			return err
		}
		if err := insertActivities(ctx, tx, s.ID, s.Activities); err != nil {
			return err
		}
		if err := insertTasks(ctx, tx, s.ID, s.Tasks); err != nil {
			return err
		}

		return nil
	})
}

func insertLegs(ctx context.Context, tx pgx.Tx, scheduleID string, legs []model.Leg) error {
	query := `
		INSERT INTO race_legs (schedule_id, number, name, start_location, end_location, duration_hours, start_time, end_time, boat_status, available_ids, peak_id, watch_blocks)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	for _, leg := range legs {
		blocksJSON, err := json.Marshal(leg.WatchBlocks)
		if err != nil {
			return fmt.Errorf("marshal watch blocks: %w", err)
		}

		_, err = tx.Exec(ctx, query,
			scheduleID,
			leg.Number,
			leg.Name,
			leg.StartLocation,
			leg.EndLocation,
			leg.DurationHours,
			leg.StartTime,
			leg.EndTime,
			leg.BoatStatus,
			leg.AvailableIDs,
			leg.PeakID,
			blocksJSON,
		)
		if err != nil {
			return fmt.Errorf("insert leg %d: %w", leg.Number, err)
		}
	}
	return nil
}

func insertActivities(ctx context.Context, tx pgx.Tx, scheduleID string, activities []model.Activity) error {
	query := `
		INSERT INTO race_activities (schedule_id, peak_id, peak_name, after_leg, start_time, end_time, duration_hours, climber_ids, boat_crew_ids, boat_status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	for _, a := range activities {
		_, err := tx.Exec(ctx, query,
			scheduleID,
			a.PeakID,
			a.PeakName,
			a.AfterLeg,
			a.StartTime,
			a.EndTime,
			a.DurationHours,
			a.ClimberIDs,
			a.BoatCrewIDs,
			a.BoatStatus,
			a.Notes,
		)
		if err != nil {
			return fmt.Errorf("insert activity %s: %w", a.PeakID, err)
		}
	}
	return nil
}

func insertTasks(ctx context.Context, tx pgx.Tx, scheduleID string, tasks []model.ClimbTask) error {
	query := `
		INSERT INTO climb_tasks (id, schedule_id, peak_id, peak_name, climber_names, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	for _, task := range tasks {
		_, err := tx.Exec(ctx, query,
			task.ID,
			scheduleID,
			task.PeakID,
			task.PeakName,
			task.ClimberNames,
			task.Status,
			task.CreatedAt,
			task.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert task %s: %w", task.PeakID, err)
		}
	}
	return nil
}

// GetByID собирает агрегат: расписание, участки, восхождения, задачи
func (r *RaceRepository) GetByID(ctx context.Context, id string) (*model.RaceSchedule, error) {
	query := `
		SELECT id, chat_id, race_name, race_start, watch_length_hours, crew, total_hours, notes, created_at, updated_at
		FROM race_schedules
		WHERE id = $1
	`

	var s model.RaceSchedule
	var crewJSON []byte
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&s.ID,
		&s.ChatID,
		&s.RaceName,
		&s.RaceStart,
		&s.WatchLengthHours,
		&crewJSON,
		&s.TotalHours,
		&s.Notes,
		&s.CreatedAt,
		&s.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get race schedule by id: %w", err)
	}

	if err := json.Unmarshal(crewJSON, &s.Crew); err != nil {
		return nil, fmt.Errorf("unmarshal crew: %w", err)
	}

	if s.Legs, err = r.getLegs(ctx, id); err != nil {
		return nil, err
	}
	if s.Activities, err = r.getActivities(ctx, id); err != nil {
		return nil, err
	}
	if s.Tasks, err = r.GetTasks(ctx, id); err != nil {
		return nil, err
	}

	return &s, nil
}

// GetByChatID получает расписания гонок чата без вложенных списков
func (r *RaceRepository) GetByChatID(ctx context.Context, chatID int64) ([]*model.RaceSchedule, error) {
	query := `
		SELECT id, chat_id, race_name, race_start, watch_length_hours, crew, total_hours, notes, created_at, updated_at
		FROM race_schedules
		WHERE chat_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, chatID)
	if err != nil {
		return nil, fmt.Errorf("get race schedules by chat: %w", err)
	}
	defer rows.Close()

	var schedules []*model.RaceSchedule
	for rows.Next() {
		var s model.RaceSchedule
		var crewJSON []byte
		err := rows.Scan(
			&s.ID,
			&s.ChatID,
			&s.RaceName,
			&s.RaceStart,
			&s.WatchLengthHours,
			&crewJSON,
			&s.TotalHours,
			&s.Notes,
			&s.CreatedAt,
			&s.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan race schedule: %w", err)
		}
		if err := json.Unmarshal(crewJSON, &s.Crew); err != nil {
			return nil, fmt.Errorf("unmarshal crew: %w", err)
		}
		schedules = append(schedules, &s)
	}

	return schedules, nil
}

// Delete удаляет расписание гонки (вложенные сущности каскадом)
func (r *RaceRepository) Delete(ctx context.Context, id string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM race_schedules WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete race schedule: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("race schedule not found")
	}

	return nil
}

func (r *RaceRepository) getLegs(ctx context.Context, scheduleID string) ([]model.Leg, error) {
	query := `
		SELECT number, name, start_location, end_location, duration_hours, start_time, end_time, boat_status, available_ids, peak_id, watch_blocks
		FROM race_legs
		WHERE schedule_id = $1
		ORDER BY number
	`

	rows, err := r.pool.Query(ctx, query, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("get legs: %w", err)
	}
	defer rows.Close()

	var legs []model.Leg
	for rows.Next() {
		var leg model.Leg
		var blocksJSON []byte
		err := rows.Scan(
			&leg.Number,
			&leg.Name,
			&leg.StartLocation,
			&leg.EndLocation,
			&leg.DurationHours,
			&leg.StartTime,
			&leg.EndTime,
			&leg.BoatStatus,
			&leg.AvailableIDs,
			&leg.PeakID,
			&blocksJSON,
		)
		if err != nil {
			return nil, fmt.Errorf("scan leg: %w", err)
		}
		if err := json.Unmarshal(blocksJSON, &leg.WatchBlocks); err != nil {
			return nil, fmt.Errorf("unmarshal watch blocks: %w", err)
		}
		legs = append(legs, leg)
	}

	return legs, nil
}

func (r *RaceRepository) getActivities(ctx context.Context, scheduleID string) ([]model.Activity, error) {
	query := `
		SELECT peak_id, peak_name, after_leg, start_time, end_time, duration_hours, climber_ids, boat_crew_ids, boat_status, notes
		FROM race_activities
		WHERE schedule_id = $1
		ORDER BY after_leg
	`

	rows, err := r.pool.Query(ctx, query, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("get activities: %w", err)
	}
	defer rows.Close()

	var activities []model.Activity
	for rows.Next() {
		var a model.Activity
		err := rows.Scan(
			&a.PeakID,
			&a.PeakName,
			&a.AfterLeg,
			&a.StartTime,
			&a.EndTime,
			&a.DurationHours,
			&a.ClimberIDs,
			&a.BoatCrewIDs,
			&a.BoatStatus,
			&a.Notes,
		)
		if err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		activities = append(activities, a)
	}

	return activities, nil
}

// GetTasks получает задачи восхождений расписания
func (r *RaceRepository) GetTasks(ctx context.Context, scheduleID string) ([]model.ClimbTask, error) {
	query := `
		SELECT id, schedule_id, peak_id, peak_name, climber_names, status, created_at, updated_at
		FROM climb_tasks
		WHERE schedule_id = $1
		ORDER BY created_at
	`

	rows, err := r.pool.Query(ctx, query, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("get tasks: %w", err)
	}
	defer rows.Close()

	var tasks []model.ClimbTask
	for rows.Next() {
		var task model.ClimbTask
		err := rows.Scan(
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
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, task)
	}

	return tasks, nil
}
