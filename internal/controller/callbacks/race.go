package callbacks

import (
	"bytes"
	"context"
	"errors"
	"time"

	"github.com/Freeeeeet/regatta_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/regatta_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/regatta_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/regatta_bot/internal/model"
	"github.com/Freeeeeet/regatta_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleRaceConfirm финальный шаг мастера гонки: генерация и сохранение
func (h *Handler) HandleRaceConfirm(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	telegramID := callback.From.ID

	msg := common.GetMessageFromCallback(callback)
	if msg == nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrNoMessage))
		return
	}

	params, ok := h.collectRaceParams(telegramID, msg.Chat.ID)
	if !ok {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Данные мастера не найдены. Начните заново: /newrace")
		h.StateManager.ClearState(telegramID)
		return
	}

	schedule, err := h.RaceService.CreateRaceSchedule(ctx, params)
	if err != nil {
		var validationErr *service.ValidationError
		if errors.As(err, &validationErr) {
			common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ "+validationErr.Reason)
			return
		}
		h.Logger.Error("Failed to create race schedule", zap.Error(err))
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Не удалось сохранить расписание. Попробуйте позже.")
		return
	}

	h.StateManager.ClearState(telegramID)
	common.AnswerCallback(ctx, b, callback.ID, "✅ Расписание создано")

	b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:      msg.Chat.ID,
		MessageID:   msg.ID,
		Text:        formatting.FormatRaceScheduleShare(schedule, schedule.RaceName),
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: raceScheduleKeyboard(schedule.ID),
	})
}

// HandleRaceCancel отменяет мастер гонки
func (h *Handler) HandleRaceCancel(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	h.StateManager.ClearState(callback.From.ID)
	common.AnswerCallback(ctx, b, callback.ID, "Отменено")

	msg := common.GetMessageFromCallback(callback)
	if msg == nil {
		return
	}

	b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:      msg.Chat.ID,
		MessageID:   msg.ID,
		Text:        "✅ Операция отменена.\n\nИспользуйте /help для просмотра доступных команд.",
		ReplyMarkup: keyboard.Empty(),
	})
}

// collectRaceParams собирает параметры гонки из данных мастера
func (h *Handler) collectRaceParams(telegramID, chatID int64) (service.RaceScheduleParams, bool) {
	data := h.StateManager.GetAllData(telegramID)
	if data == nil {
		return service.RaceScheduleParams{}, false
	}

	raceName, _ := data["race_name"].(string)
	raceStart, okStart := data["race_start"].(time.Time)
	crew, okCrew := data["crew"].([]model.CrewMember)
	overrides, okOverrides := data["overrides"].(map[int]float64)
	watchLen, okWatchLen := data["watch_length_hours"].(float64)

	if raceName == "" || !okStart || !okCrew || !okOverrides || !okWatchLen {
		return service.RaceScheduleParams{}, false
	}

	assignments := make(map[string][]string)
	for _, m := range crew {
		for _, peakID := range m.PeakIDs {
			assignments[peakID] = append(assignments[peakID], m.ID)
		}
	}

	return service.RaceScheduleParams{
		ChatID:           chatID,
		RaceName:         raceName,
		RaceStart:        raceStart,
		DurationOverride: overrides,
		Crew:             crew,
		Assignments:      assignments,
		WatchLengthHours: watchLen,
	}, true
}

// HandleViewRace показывает расписание гонки
func (h *Handler) HandleViewRace(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	schedule, msg, ok := h.loadRaceFromCallback(ctx, b, callback)
	if !ok {
		return
	}

	common.AnswerCallback(ctx, b, callback.ID, "")

	b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:      msg.Chat.ID,
		MessageID:   msg.ID,
		Text:        formatting.FormatRaceScheduleShare(schedule, schedule.RaceName),
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: raceScheduleKeyboard(schedule.ID),
	})
}

// HandleShareRace отправляет текст расписания отдельным сообщением
func (h *Handler) HandleShareRace(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	schedule, msg, ok := h.loadRaceFromCallback(ctx, b, callback)
	if !ok {
		return
	}

	common.AnswerCallback(ctx, b, callback.ID, "📤 Текст готов к пересылке")

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    msg.Chat.ID,
		Text:      formatting.FormatRaceScheduleShare(schedule, schedule.RaceName),
		ParseMode: models.ParseModeHTML,
	})
}

// HandleRaceImage рисует и отправляет временную шкалу гонки
func (h *Handler) HandleRaceImage(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	schedule, msg, ok := h.loadRaceFromCallback(ctx, b, callback)
	if !ok {
		return
	}

	imageData, err := common.GenerateRaceImage(schedule)
	if err != nil {
		h.Logger.Error("Failed to render race image",
			zap.Error(err),
			zap.String("schedule_id", schedule.ID))
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Не удалось построить картинку")
		return
	}

	common.AnswerCallback(ctx, b, callback.ID, "")

	b.SendPhoto(ctx, &bot.SendPhotoParams{
		ChatID:    msg.Chat.ID,
		Photo:     &models.InputFileUpload{Filename: "race.png", Data: bytes.NewReader(imageData)},
		Caption:   "🏔 " + schedule.RaceName,
		ParseMode: models.ParseModeHTML,
	})
}

// HandleRegenRace пересоздаёт расписание гонки с теми же входными данными
func (h *Handler) HandleRegenRace(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
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

	schedule, err := h.RaceService.Regenerate(ctx, scheduleID)
	if err != nil {
		h.Logger.Error("Failed to regenerate race schedule", zap.Error(err))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrRaceNotFound))
		return
	}

	common.AnswerCallback(ctx, b, callback.ID, "🔄 Расписание пересоздано")

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      msg.Chat.ID,
		Text:        formatting.FormatRaceScheduleShare(schedule, schedule.RaceName),
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: raceScheduleKeyboard(schedule.ID),
	})
}

// HandleDeleteRace спрашивает подтверждение удаления
func (h *Handler) HandleDeleteRace(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	schedule, msg, ok := h.loadRaceFromCallback(ctx, b, callback)
	if !ok {
		return
	}

	common.AnswerCallback(ctx, b, callback.ID, "")

	kb := keyboard.NewBuilder().
		Row(
			keyboard.Button("✅ Да, удалить", ConfirmRace+schedule.ID),
			keyboard.Button("❌ Отмена", ViewRace+schedule.ID),
		).
		Build()

	b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:      msg.Chat.ID,
		MessageID:   msg.ID,
		Text:        "🗑 Удалить расписание гонки «" + schedule.RaceName + "» вместе с задачами?",
		ReplyMarkup: kb,
	})
}

// HandleConfirmDeleteRace удаляет расписание гонки после подтверждения
func (h *Handler) HandleConfirmDeleteRace(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
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

	if err := h.RaceService.Delete(ctx, scheduleID); err != nil {
		h.Logger.Error("Failed to delete race schedule", zap.Error(err))
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Не удалось удалить расписание")
		return
	}

	common.AnswerCallback(ctx, b, callback.ID, "🗑 Удалено")

	b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:      msg.Chat.ID,
		MessageID:   msg.ID,
		Text:        "🗑 Расписание гонки удалено.\n\nСписок оставшихся: /myraces",
		ReplyMarkup: keyboard.Empty(),
	})
}

// loadRaceFromCallback общий код загрузки расписания гонки из callback data
func (h *Handler) loadRaceFromCallback(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) (*model.RaceSchedule, *models.Message, bool) {
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

	schedule, err := h.RaceService.GetByID(ctx, scheduleID)
	if err != nil {
		h.Logger.Error("Failed to load race schedule",
			zap.Error(err),
			zap.String("schedule_id", scheduleID))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return nil, nil, false
	}
	if schedule == nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrRaceNotFound))
		return nil, nil, false
	}

	return schedule, msg, true
}

// raceScheduleKeyboard кнопки под сообщением с расписанием гонки
func raceScheduleKeyboard(scheduleID string) *models.InlineKeyboardMarkup {
	return keyboard.NewBuilder().
		Row(
			keyboard.Button("📤 Текст для экипажа", ShareRace+scheduleID),
			keyboard.Button("🖼 Картинка", RaceImage+scheduleID),
		).
		Row(keyboard.Button("🧗 Задачи восхождений", RaceTasks+scheduleID)).
		Row(
			keyboard.Button("🔄 Пересоздать", RegenRace+scheduleID),
			keyboard.Button("🗑 Удалить", DeleteRace+scheduleID),
		).
		Build()
}
