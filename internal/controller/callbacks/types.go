package callbacks

import (
	"github.com/Freeeeeet/regatta_bot/internal/controller/state"
	"github.com/Freeeeeet/regatta_bot/internal/service"
	"go.uber.org/zap"
)

// Handler содержит зависимости всех callback handlers
type Handler struct {
	ScheduleService *service.ScheduleService
	RaceService     *service.RaceService
	StateManager    *state.Manager
	Logger          *zap.Logger
}

// NewHandler создаёт новый обработчик callbacks с зависимостями
func NewHandler(
	scheduleService *service.ScheduleService,
	raceService *service.RaceService,
	stateManager *state.Manager,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		ScheduleService: scheduleService,
		RaceService:     raceService,
		StateManager:    stateManager,
		Logger:          logger,
	}
}
