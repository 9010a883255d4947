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

// RaceService собирает и хранит расписания многоэтапных гонок
type RaceService struct {
	raceRepo *repository.RaceRepository
	taskRepo *repository.TaskRepository
	topology *race.Topology
	clock    clock.Clock
	logger   *zap.Logger
}

func NewRaceService(
	raceRepo *repository.RaceRepository,
	taskRepo *repository.TaskRepository,
	topology *race.Topology,
	clk clock.Clock,
	logger *zap.Logger,
) *RaceService {
	return &RaceService{
		raceRepo: raceRepo,
		taskRepo: taskRepo,
		topology: topology,
		clock:    clk,
		logger:   logger,
	}
}

// Topology возвращает топологию гонки для мастера назначений
func (s *RaceService) Topology() *race.Topology {
	return s.topology
}

// RaceScheduleParams входные данные мастера многоэтапной гонки
type RaceScheduleParams struct {
	ChatID           int64
	RaceName         string
	RaceStart        time.Time
	DurationOverride map[int]float64
	Crew             []model.CrewMember
	Assignments      map[string][]string // id вершины -> id альпинистов
	WatchLengthHours float64
	Notes            string
}

// CreateRaceSchedule генерирует и сохраняет расписание гонки.
// Генератор отбрасывает некорректные куски входа молча; сервис
// логирует каждый отброшенный id, чтобы деградация была видна
func (s *RaceService) CreateRaceSchedule(ctx context.Context, params RaceScheduleParams) (*model.RaceSchedule, error) {
	if len(params.Crew) == 0 {
		return nil, &ValidationError{Reason: "экипаж не задан"}
	}

	s.logDroppedAssignments(params)

	out := race.BuildRaceSchedule(race.Input{
		Topology:         s.topology,
		RaceStart:        params.RaceStart,
		DurationOverride: params.DurationOverride,
		Crew:             params.Crew,
		Assignments:      params.Assignments,
		WatchLengthHours: params.WatchLengthHours,
	})

	now := s.clock.Now()
	scheduleID := uuid.NewString()

	tasks := out.Tasks
	for i := range tasks {
		tasks[i].ID = uuid.NewString()
		tasks[i].ScheduleID = scheduleID
		tasks[i].CreatedAt = now
		tasks[i].UpdatedAt = now
	}

	schedule := &model.RaceSchedule{
		ID:               scheduleID,
		ChatID:           params.ChatID,
		RaceName:         params.RaceName,
		RaceStart:        params.RaceStart,
		WatchLengthHours: params.WatchLengthHours,
		Crew:             params.Crew,
		Legs:             out.Legs,
		Activities:       out.Activities,
		Tasks:            tasks,
		TotalHours:       out.TotalHours,
		Notes:            params.Notes,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.raceRepo.Create(ctx, schedule); err != nil {
		return nil, fmt.Errorf("create race schedule: %w", err)
	}

	s.logger.Info("Race schedule created",
		zap.String("schedule_id", scheduleID),
		zap.Int64("chat_id", params.ChatID),
		zap.String("race_name", params.RaceName),
		zap.Int("legs", len(schedule.Legs)),
		zap.Int("activities", len(schedule.Activities)),
		zap.Int("tasks", len(schedule.Tasks)),
		zap.Float64("total_hours", schedule.TotalHours),
	)

	return schedule, nil
}

// Regenerate создаёт новое расписание из входных данных существующего
func (s *RaceService) Regenerate(ctx context.Context, scheduleID string) (*model.RaceSchedule, error) {
	existing, err := s.raceRepo.GetByID(ctx, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("get race schedule: %w", err)
	}

	if existing == nil {
		return nil, fmt.Errorf("race schedule not found")
	}

	assignments := make(map[string][]string)
	for _, m := range existing.Crew {
		for _, peakID := range m.PeakIDs {
			assignments[peakID] = append(assignments[peakID], m.ID)
		}
	}

	overrides := make(map[int]float64)
	for _, leg := range existing.Legs {
		overrides[leg.Number] = leg.DurationHours
	}

	return s.CreateRaceSchedule(ctx, RaceScheduleParams{
		ChatID:           existing.ChatID,
		RaceName:         existing.RaceName,
		RaceStart:        existing.RaceStart,
		DurationOverride: overrides,
		Crew:             existing.Crew,
		Assignments:      assignments,
		WatchLengthHours: existing.WatchLengthHours,
		Notes:            existing.Notes,
	})
}

// GetByID получает расписание гонки по ID
func (s *RaceService) GetByID(ctx context.Context, id string) (*model.RaceSchedule, error) {
	return s.raceRepo.GetByID(ctx, id)
}

// GetByChatID получает все расписания гонок чата
func (s *RaceService) GetByChatID(ctx context.Context, chatID int64) ([]*model.RaceSchedule, error) {
	return s.raceRepo.GetByChatID(ctx, chatID)
}

// Delete удаляет расписание гонки
func (s *RaceService) Delete(ctx context.Context, id string) error {
	if err := s.raceRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Race schedule deleted", zap.String("schedule_id", id))
	return nil
}

// AdvanceTaskStatus переводит задачу восхождения к следующему статусу:
// pending -> in_progress -> completed
func (s *RaceService) AdvanceTaskStatus(ctx context.Context, taskID string) (*model.ClimbTask, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}

	if task == nil {
		return nil, fmt.Errorf("task not found")
	}

	if task.Status == model.TaskStatusCompleted {
		return task, nil
	}

	next := task.Status.Next()
	now := s.clock.Now()

	if err := s.taskRepo.UpdateStatus(ctx, taskID, next, now); err != nil {
		return nil, fmt.Errorf("advance task status: %w", err)
	}

	task.Status = next
	task.UpdatedAt = now

	s.logger.Info("Climb task status advanced",
		zap.String("task_id", taskID),
		zap.String("peak", task.PeakName),
		zap.String("status", string(next)),
	)

	return task, nil
}

// logDroppedAssignments логирует назначения, которые генератор отбросит
func (s *RaceService) logDroppedAssignments(params RaceScheduleParams) {
	known := make(map[string]bool, len(params.Crew))
	for _, m := range params.Crew {
		known[m.ID] = true
	}

	for peakID, ids := range params.Assignments {
		if _, ok := s.topology.PeakByID(peakID); !ok {
			s.logger.Warn("Unknown peak in assignments, dropping",
				zap.String("peak_id", peakID))
			continue
		}
		for _, id := range ids {
			if !known[id] {
				s.logger.Warn("Unknown crew id in assignments, dropping",
					zap.String("peak_id", peakID),
					zap.String("crew_id", id))
			}
		}
	}
}
