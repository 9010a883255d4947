package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Freeeeeet/regatta_bot/internal/model"
	"github.com/Freeeeeet/regatta_bot/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ScheduleRepository хранит простые вахтенные расписания
type ScheduleRepository struct {
	pool *pgxpool.Pool
}

func NewScheduleRepository(pool *pgxpool.Pool) *ScheduleRepository {
	return &ScheduleRepository{pool: pool}
}

// Create сохраняет расписание вместе с блоками в одной транзакции
func (r *ScheduleRepository) Create(ctx context.Context, s *model.WatchSchedule) error {
	crewJSON, err := json.Marshal(s.Crew)
	if err != nil {
		return fmt.Errorf("marshal crew: %w", err)
	}

	return base.InTx(ctx, r.pool, func(tx pgx.Tx) error {
		query := `
			INSERT INTO watch_schedules (id, chat_id, race_name, system, race_start, duration_hours, starting_group, crew, notes, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		`

		_, err := tx.Exec(ctx, query,
			s.ID,
			s.ChatID,
			s.RaceName,
			s.System,
			s.RaceStart,
			s.DurationHours,
			s.StartingGroup,
			crewJSON,
			s.Notes,
			s.CreatedAt,
			s.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert schedule: %w", err)
		}

		blockQuery := `
			INSERT INTO watch_blocks (schedule_id, position, start_time, end_time, watch_group, crew_names, duration_hours)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`
		for i, block := range s.Blocks {
			_, err := tx.Exec(ctx, blockQuery,
				s.ID,
				i,
				block.StartTime,
				block.EndTime,
				block.Group,
				block.CrewNames,
				block.DurationHours,
			)
			if err != nil {
				return fmt.Errorf("insert block %d: %w", i, err)
			}
		}

		return nil
	})
}

// GetByID получает расписание с блоками
func (r *ScheduleRepository) GetByID(ctx context.Context, id string) (*model.WatchSchedule, error) {
	query := `
		SELECT id, chat_id, race_name, system, race_start, duration_hours, starting_group, crew, notes, created_at, updated_at
		FROM watch_schedules
		WHERE id = $1
	`

	var s model.WatchSchedule
	var crewJSON []byte
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&s.ID,
		&s.ChatID,
		&s.RaceName,
		&s.System,
		&s.RaceStart,
		&s.DurationHours,
		&s.StartingGroup,
		&crewJSON,
		&s.Notes,
		&s.CreatedAt,
		&s.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get schedule by id: %w", err)
	}

	if err := json.Unmarshal(crewJSON, &s.Crew); err != nil {
		return nil, fmt.Errorf("unmarshal crew: %w", err)
	}

	blocks, err := r.getBlocks(ctx, id)
	if err != nil {
		return nil, err
	}
	s.Blocks = blocks

	return &s, nil
}

// GetByChatID получает все расписания чата, новые первыми
func (r *ScheduleRepository) GetByChatID(ctx context.Context, chatID int64) ([]*model.WatchSchedule, error) {
	query := `
		SELECT id, chat_id, race_name, system, race_start, duration_hours, starting_group, crew, notes, created_at, updated_at
		FROM watch_schedules
		WHERE chat_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, chatID)
	if err != nil {
		return nil, fmt.Errorf("get schedules by chat: %w", err)
	}
	defer rows.Close()

	var schedules []*model.WatchSchedule
	for rows.Next() {
		var s model.WatchSchedule
		var crewJSON []byte
		err := rows.Scan(
			&s.ID,
			&s.ChatID,
			&s.RaceName,
			&s.System,
			&s.RaceStart,
			&s.DurationHours,
			&s.StartingGroup,
			&crewJSON,
			&s.Notes,
			&s.CreatedAt,
			&s.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan schedule: %w", err)
		}
		if err := json.Unmarshal(crewJSON, &s.Crew); err != nil {
			return nil, fmt.Errorf("unmarshal crew: %w", err)
		}
		schedules = append(schedules, &s)
	}

	return schedules, nil
}

// Delete удаляет расписание (блоки удалятся каскадом)
func (r *ScheduleRepository) Delete(ctx context.Context, id string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM watch_schedules WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete schedule: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("schedule not found")
	}

	return nil
}

// GetUpcomingChanges получает смены вахт, начинающиеся в окне [from, to)
// Первый блок расписания сменой не считается
func (r *ScheduleRepository) GetUpcomingChanges(ctx context.Context, from, to time.Time) ([]model.WatchChange, error) {
	query := `
		SELECT b.schedule_id, s.chat_id, s.race_name, b.position, b.start_time, b.end_time, b.watch_group, b.crew_names, b.duration_hours
		FROM watch_blocks b
		JOIN watch_schedules s ON s.id = b.schedule_id
		WHERE b.start_time >= $1
		  AND b.start_time < $2
		  AND b.position > 0
		ORDER BY b.start_time
	`

	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("get upcoming changes: %w", err)
	}
	defer rows.Close()

	var changes []model.WatchChange
	for rows.Next() {
		var c model.WatchChange
		err := rows.Scan(
			&c.ScheduleID,
			&c.ChatID,
			&c.RaceName,
			&c.Position,
			&c.Block.StartTime,
			&c.Block.EndTime,
			&c.Block.Group,
			&c.Block.CrewNames,
			&c.Block.DurationHours,
		)
		if err != nil {
			return nil, fmt.Errorf("scan watch change: %w", err)
		}
		changes = append(changes, c)
	}

	return changes, nil
}

// getBlocks получает блоки расписания в исходном порядке
func (r *ScheduleRepository) getBlocks(ctx context.Context, scheduleID string) ([]model.TimeBlock, error) {
	query := `
		SELECT start_time, end_time, watch_group, crew_names, duration_hours
		FROM watch_blocks
		WHERE schedule_id = $1
		ORDER BY position
	`

	rows, err := r.pool.Query(ctx, query, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("get blocks: %w", err)
	}
	defer rows.Close()

	var blocks []model.TimeBlock
	for rows.Next() {
		var b model.TimeBlock
		err := rows.Scan(
			&b.StartTime,
			&b.EndTime,
			&b.Group,
			&b.CrewNames,
			&b.DurationHours,
		)
		if err != nil {
			return nil, fmt.Errorf("scan block: %w", err)
		}
		blocks = append(blocks, b)
	}

	return blocks, nil
}
