package callbacks

import (
	"context"
	"errors"
	"time"

	"github.com/Freeeeeet/regatta_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/regatta_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/regatta_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/regatta_bot/internal/controller/state"
	"github.com/Freeeeeet/regatta_bot/internal/model"
	"github.com/Freeeeeet/regatta_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// HandleWatchSystemSelect шаг мастера: выбрана система вахт
func (h *Handler) HandleWatchSystemSelect(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	telegramID := callback.From.ID

	system, err := common.ParseIDFromCallback(callback.Data)
	if err != nil || (system != "4x4" && system != "3x3") {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrInvalidFormat))
		return
	}

	// Без активного мастера кнопка устарела
	if h.StateManager.GetString(telegramID, "race_name") == "" {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Мастер не активен. Начните заново: /newwatch")
		return
	}

	h.StateManager.SetData(telegramID, "watch_system", system)
	h.StateManager.SetState(telegramID, state.StateNewWatchCrewA)

	common.AnswerCallback(ctx, b, callback.ID, "")

	msg := common.GetMessageFromCallback(callback)
	if msg == nil {
		return
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: msg.Chat.ID,
		Text: "👥 Введите имена вахты A через запятую\n" +
			"(например: Анна, Борис, Вера):",
	})
}

// HandleWatchGroupSelect финальный шаг мастера: выбрана стартовая вахта,
// расписание генерируется и сохраняется
func (h *Handler) HandleWatchGroupSelect(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	telegramID := callback.From.ID

	groupRaw, err := common.ParseIDFromCallback(callback.Data)
	if err != nil || (groupRaw != "A" && groupRaw != "B") {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrInvalidFormat))
		return
	}

	msg := common.GetMessageFromCallback(callback)
	if msg == nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrNoMessage))
		return
	}

	params, ok := h.collectWatchParams(telegramID, msg.Chat.ID, model.WatchGroup(groupRaw))
	if !ok {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Данные мастера не найдены. Начните заново: /newwatch")
		h.StateManager.ClearState(telegramID)
		return
	}

	schedule, err := h.ScheduleService.CreateWatchSchedule(ctx, params)
	if err != nil {
		var validationErr *service.ValidationError
		if errors.As(err, &validationErr) {
			common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ "+validationErr.Reason)
			return
		}
		h.Logger.Error("Failed to create watch schedule", zap.Error(err))
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Не удалось сохранить расписание. Попробуйте позже.")
		return
	}

	h.StateManager.ClearState(telegramID)
	common.AnswerCallback(ctx, b, callback.ID, "✅ Расписание создано")

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      msg.Chat.ID,
		Text:        formatting.FormatWatchScheduleShare(schedule, schedule.RaceName),
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: watchScheduleKeyboard(schedule.ID),
	})
}

// collectWatchParams собирает параметры расписания из данных мастера
func (h *Handler) collectWatchParams(telegramID, chatID int64, startingGroup model.WatchGroup) (service.WatchScheduleParams, bool) {
	data := h.StateManager.GetAllData(telegramID)
	if data == nil {
		return service.WatchScheduleParams{}, false
	}

	raceName, _ := data["race_name"].(string)
	raceStart, okStart := data["race_start"].(time.Time)
	durationHours, okDuration := data["duration_hours"].(float64)
	systemRaw, _ := data["watch_system"].(string)
	crewA, okCrewA := data["crew_a"].([]string)
	crewB, okCrewB := data["crew_b"].([]string)

	if raceName == "" || !okStart || !okDuration || systemRaw == "" || !okCrewA || !okCrewB {
		return service.WatchScheduleParams{}, false
	}

	crew := make([]model.CrewMember, 0, len(crewA)+len(crewB))
	for _, name := range crewA {
		crew = append(crew, model.CrewMember{
			ID:    uuid.NewString(),
			Name:  name,
			Group: model.WatchGroupA,
			Role:  model.CrewRoleSailor,
		})
	}
	for _, name := range crewB {
		crew = append(crew, model.CrewMember{
			ID:    uuid.NewString(),
			Name:  name,
			Group: model.WatchGroupB,
			Role:  model.CrewRoleSailor,
		})
	}

	return service.WatchScheduleParams{
		ChatID:        chatID,
		RaceName:      raceName,
		System:        model.WatchSystem(systemRaw),
		RaceStart:     raceStart,
		DurationHours: durationHours,
		Crew:          crew,
		StartingGroup: startingGroup,
	}, true
}

// HandleViewWatch показывает вахтенное расписание
func (h *Handler) HandleViewWatch(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	schedule, msg, ok := h.loadWatchFromCallback(ctx, b, callback)
	if !ok {
		return
	}

	common.AnswerCallback(ctx, b, callback.ID, "")

	b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:      msg.Chat.ID,
		MessageID:   msg.ID,
		Text:        formatting.FormatWatchScheduleShare(schedule, schedule.RaceName),
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: watchScheduleKeyboard(schedule.ID),
	})
}

// HandleShareWatch отправляет текст расписания отдельным сообщением,
// удобным для пересылки экипажу
func (h *Handler) HandleShareWatch(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	schedule, msg, ok := h.loadWatchFromCallback(ctx, b, callback)
	if !ok {
		return
	}

	common.AnswerCallback(ctx, b, callback.ID, "📤 Текст готов к пересылке")

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    msg.Chat.ID,
		Text:      formatting.FormatWatchScheduleShare(schedule, schedule.RaceName),
		ParseMode: models.ParseModeHTML,
	})
}

// HandleRegenWatch пересоздаёт расписание с теми же входными данными.
// Существующий агрегат не изменяется: создаётся новый с новым id
func (h *Handler) HandleRegenWatch(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	scheduleID, err := common.ParseIDFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrInvalidFormat))
		return
	}

	msg := common.GetMessageFromCallback(callback)
	if msg == nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrNoMessage))
		return
	}

	schedule, err := h.ScheduleService.Regenerate(ctx, scheduleID)
	if err != nil {
		h.Logger.Error("Failed to regenerate watch schedule", zap.Error(err))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrScheduleNotFound))
		return
	}

	common.AnswerCallback(ctx, b, callback.ID, "🔄 Расписание пересоздано")

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      msg.Chat.ID,
		Text:        formatting.FormatWatchScheduleShare(schedule, schedule.RaceName),
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: watchScheduleKeyboard(schedule.ID),
	})
}

// HandleDeleteWatch спрашивает подтверждение удаления
func (h *Handler) HandleDeleteWatch(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	schedule, msg, ok := h.loadWatchFromCallback(ctx, b, callback)
	if !ok {
		return
	}

	common.AnswerCallback(ctx, b, callback.ID, "")

	kb := keyboard.NewBuilder().
		Row(
			keyboard.Button("✅ Да, удалить", ConfirmWatch+schedule.ID),
			keyboard.Button("❌ Отмена", ViewWatch+schedule.ID),
		).
		Build()

	b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:      msg.Chat.ID,
		MessageID:   msg.ID,
		Text:        "🗑 Удалить расписание «" + schedule.RaceName + "»?",
		ReplyMarkup: kb,
	})
}

// HandleConfirmDeleteWatch удаляет расписание после подтверждения
func (h *Handler) HandleConfirmDeleteWatch(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	scheduleID, err := common.ParseIDFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrInvalidFormat))
		return
	}

	msg := common.GetMessageFromCallback(callback)
	if msg == nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrNoMessage))
		return
	}

	if err := h.ScheduleService.Delete(ctx, scheduleID); err != nil {
		h.Logger.Error("Failed to delete watch schedule", zap.Error(err))
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Не удалось удалить расписание")
		return
	}

	common.AnswerCallback(ctx, b, callback.ID, "🗑 Удалено")

	b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:      msg.Chat.ID,
		MessageID:   msg.ID,
		Text:        "🗑 Расписание удалено.\n\nСписок оставшихся: /myraces",
		ReplyMarkup: keyboard.Empty(),
	})
}

// loadWatchFromCallback общий код загрузки расписания из callback data
func (h *Handler) loadWatchFromCallback(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) (*model.WatchSchedule, *models.Message, bool) {
	scheduleID, err := common.ParseIDFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrInvalidFormat))
		return nil, nil, false
	}

	msg := common.GetMessageFromCallback(callback)
	if msg == nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrNoMessage))
		return nil, nil, false
	}

	schedule, err := h.ScheduleService.GetByID(ctx, scheduleID)
	if err != nil {
		h.Logger.Error("Failed to load watch schedule",
			zap.Error(err),
			zap.String("schedule_id", scheduleID))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return nil, nil, false
	}
	if schedule == nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrScheduleNotFound))
		return nil, nil, false
	}

	return schedule, msg, true
}

// watchScheduleKeyboard кнопки под сообщением с вахтенным расписанием
func watchScheduleKeyboard(scheduleID string) *models.InlineKeyboardMarkup {
	return keyboard.NewBuilder().
		Row(keyboard.Button("📤 Текст для экипажа", ShareWatch+scheduleID)).
		Row(
			keyboard.Button("🔄 Пересоздать", RegenWatch+scheduleID),
			keyboard.Button("🗑 Удалить", DeleteWatch+scheduleID),
		).
		Build()
}
