package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/regatta_bot/internal/clock"
	"github.com/Freeeeeet/regatta_bot/internal/model"
	"github.com/Freeeeeet/regatta_bot/internal/race"
	"github.com/Freeeeeet/regatta_bot/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ScheduleService собирает и хранит простые вахтенные расписания
type ScheduleService struct {
	scheduleRepo *repository.ScheduleRepository
	clock        clock.Clock
	logger       *zap.Logger
}

func NewScheduleService(scheduleRepo *repository.ScheduleRepository, clk clock.Clock, logger *zap.Logger) *ScheduleService {
	return &ScheduleService{
		scheduleRepo: scheduleRepo,
		clock:        clk,
		logger:       logger,
	}
}

// WatchScheduleParams входные данные мастера вахтенного расписания
type WatchScheduleParams struct {
	ChatID        int64
	RaceName      string
	System        model.WatchSystem
	RaceStart     time.Time
	DurationHours float64
	Crew          []model.CrewMember
	StartingGroup model.WatchGroup
	Notes         string
}

// CreateWatchSchedule проверяет экипаж, генерирует блоки и сохраняет
// расписание. Генератор чистый, все метки "сейчас" берутся из clock
func (s *ScheduleService) CreateWatchSchedule(ctx context.Context, params WatchScheduleParams) (*model.WatchSchedule, error) {
	if validation := race.ValidateCrewAssignment(params.Crew); !validation.Valid {
		return nil, &ValidationError{Reason: validation.Error}
	}

	if params.DurationHours <= 0 {
		return nil, &ValidationError{Reason: "длительность должна быть больше нуля"}
	}

	if params.StartingGroup == "" {
		params.StartingGroup = model.WatchGroupA
	}

	now := s.clock.Now()
	schedule := &model.WatchSchedule{
		ID:            uuid.NewString(),
		ChatID:        params.ChatID,
		RaceName:      params.RaceName,
		System:        params.System,
		RaceStart:     params.RaceStart,
		DurationHours: params.DurationHours,
		StartingGroup: params.StartingGroup,
		Crew:          params.Crew,
		Blocks:        race.GenerateWatchBlocks(params.System, params.RaceStart, params.DurationHours, params.Crew, params.StartingGroup),
		Notes:         params.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.scheduleRepo.Create(ctx, schedule); err != nil {
		return nil, fmt.Errorf("create watch schedule: %w", err)
	}

	s.logger.Info("Watch schedule created",
		zap.String("schedule_id", schedule.ID),
		zap.Int64("chat_id", params.ChatID),
		zap.String("race_name", params.RaceName),
		zap.String("system", string(params.System)),
		zap.Int("blocks", len(schedule.Blocks)),
	)

	return schedule, nil
}

// Regenerate создаёт новое расписание из входных данных существующего.
// Агрегат никогда не изменяется на месте: пересоздание даёт новый id
func (s *ScheduleService) Regenerate(ctx context.Context, scheduleID string) (*model.WatchSchedule, error) {
	existing, err := s.scheduleRepo.GetByID(ctx, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("get schedule: %w", err)
	}

	if existing == nil {
		return nil, fmt.Errorf("schedule not found")
	}

	return s.CreateWatchSchedule(ctx, WatchScheduleParams{
		ChatID:        existing.ChatID,
		RaceName:      existing.RaceName,
		System:        existing.System,
		RaceStart:     existing.RaceStart,
		DurationHours: existing.DurationHours,
		Crew:          existing.Crew,
		StartingGroup: existing.StartingGroup,
		Notes:         existing.Notes,
	})
}

// GetByID получает расписание по ID
func (s *ScheduleService) GetByID(ctx context.Context, id string) (*model.WatchSchedule, error) {
	return s.scheduleRepo.GetByID(ctx, id)
}

// GetByChatID получает все расписания чата
func (s *ScheduleService) GetByChatID(ctx context.Context, chatID int64) ([]*model.WatchSchedule, error) {
	return s.scheduleRepo.GetByChatID(ctx, chatID)
}

// Delete удаляет расписание
func (s *ScheduleService) Delete(ctx context.Context, id string) error {
	if err := s.scheduleRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Watch schedule deleted", zap.String("schedule_id", id))
	return nil
}

// UpcomingWatchChanges возвращает смены вахт в ближайшем окне
func (s *ScheduleService) UpcomingWatchChanges(ctx context.Context, window time.Duration) ([]model.WatchChange, error) {
	now := s.clock.Now()
	return s.scheduleRepo.GetUpcomingChanges(ctx, now, now.Add(window))
}
