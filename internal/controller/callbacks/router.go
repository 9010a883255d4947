package callbacks

import (
	"context"
	"strings"

	"github.com/Freeeeeet/regatta_bot/internal/controller/callbacks/common"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// ========================
// Callback Data Patterns
// ========================

// Мастер вахтенного расписания
const (
	WatchSystemSelect = "watch_system:" // watch_system:4x4
	WatchGroupSelect  = "watch_group:"  // watch_group:A
)

// Мастер расписания гонки
const (
	RaceConfirm = "race_confirm"
	RaceCancel  = "race_cancel"
)

// Вахтенные расписания
const (
	ViewWatch    = "view_watch:"    // view_watch:uuid
	ShareWatch   = "share_watch:"   // share_watch:uuid
	RegenWatch   = "regen_watch:"   // regen_watch:uuid
	DeleteWatch  = "delete_watch:"  // delete_watch:uuid
	ConfirmWatch = "confirm_watch:" // confirm_watch:uuid (подтверждение удаления)
)

// Расписания гонок
const (
	ViewRace    = "view_race:"    // view_race:uuid
	ShareRace   = "share_race:"   // share_race:uuid
	RaceImage   = "race_image:"   // race_image:uuid
	RaceTasks   = "race_tasks:"   // race_tasks:uuid
	RegenRace   = "regen_race:"   // regen_race:uuid
	DeleteRace  = "delete_race:"  // delete_race:uuid
	ConfirmRace = "confirm_race:" // confirm_race:uuid (подтверждение удаления)
)

// Задачи восхождений
const (
	TaskAdvance = "task_advance:" // task_advance:uuid
)

// ========================
// Main Callback Router
// ========================

// HandleCallbackQuery точка входа для всех callback queries
func (h *Handler) HandleCallbackQuery(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}
	h.Route(ctx, b, update.CallbackQuery)
}

// Route распределяет callback query по соответствующим обработчикам
func (h *Handler) Route(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	data := callback.Data

	h.Logger.Info("Routing callback",
		zap.String("data", data),
		zap.Int64("user_id", callback.From.ID))

	switch {
	// ===== Мастер вахтенного расписания =====
	case strings.HasPrefix(data, WatchSystemSelect):
		h.HandleWatchSystemSelect(ctx, b, callback)
	case strings.HasPrefix(data, WatchGroupSelect):
		h.HandleWatchGroupSelect(ctx, b, callback)

	// ===== Мастер расписания гонки =====
	case data == RaceConfirm:
		h.HandleRaceConfirm(ctx, b, callback)
	case data == RaceCancel:
		h.HandleRaceCancel(ctx, b, callback)

	// ===== Вахтенные расписания =====
	case strings.HasPrefix(data, ViewWatch):
		h.HandleViewWatch(ctx, b, callback)
	case strings.HasPrefix(data, ShareWatch):
		h.HandleShareWatch(ctx, b, callback)
	case strings.HasPrefix(data, RegenWatch):
		h.HandleRegenWatch(ctx, b, callback)
	case strings.HasPrefix(data, DeleteWatch):
		h.HandleDeleteWatch(ctx, b, callback)
	case strings.HasPrefix(data, ConfirmWatch):
		h.HandleConfirmDeleteWatch(ctx, b, callback)

	// ===== Расписания гонок =====
	case strings.HasPrefix(data, ViewRace):
		h.HandleViewRace(ctx, b, callback)
	case strings.HasPrefix(data, ShareRace):
		h.HandleShareRace(ctx, b, callback)
	case strings.HasPrefix(data, RaceImage):
		h.HandleRaceImage(ctx, b, callback)
	case strings.HasPrefix(data, RaceTasks):
		h.HandleRaceTasks(ctx, b, callback)
	case strings.HasPrefix(data, RegenRace):
		h.HandleRegenRace(ctx, b, callback)
	case strings.HasPrefix(data, DeleteRace):
		h.HandleDeleteRace(ctx, b, callback)
	case strings.HasPrefix(data, ConfirmRace):
		h.HandleConfirmDeleteRace(ctx, b, callback)

	// ===== Задачи восхождений =====
	case strings.HasPrefix(data, TaskAdvance):
		h.HandleTaskAdvance(ctx, b, callback)

	case data == "noop":
		common.AnswerCallback(ctx, b, callback.ID, "")

	default:
		h.Logger.Warn("Unknown callback", zap.String("data", data))
		common.AnswerCallback(ctx, b, callback.ID, "")
	}
}
