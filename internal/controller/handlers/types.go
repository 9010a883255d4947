package handlers

import (
	"github.com/Freeeeeet/regatta_bot/internal/controller/state"
	"github.com/Freeeeeet/regatta_bot/internal/service"
	"go.uber.org/zap"
)

// Handlers содержит все зависимости для обработки команд
type Handlers struct {
	userService     *service.UserService
	scheduleService *service.ScheduleService
	raceService     *service.RaceService
	stateManager    *state.Manager
	logger          *zap.Logger
}

// NewHandlers создаёт новый обработчик команд
func NewHandlers(
	userService *service.UserService,
	scheduleService *service.ScheduleService,
	raceService *service.RaceService,
	stateManager *state.Manager,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		userService:     userService,
		scheduleService: scheduleService,
		raceService:     raceService,
		stateManager:    stateManager,
		logger:          logger,
	}
}
