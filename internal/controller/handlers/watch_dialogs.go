package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/Freeeeeet/regatta_bot/internal/controller/callbacks"
	"github.com/Freeeeeet/regatta_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/regatta_bot/internal/controller/state"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Шаги мастера вахтенного расписания: название -> старт -> длительность ->
// система вахт (кнопки) -> вахта A -> вахта B -> стартовая вахта (кнопки)

func (h *Handlers) handleWatchNameStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	name := strings.TrimSpace(update.Message.Text)

	if len(name) < RaceNameMinLength || len(name) > RaceNameMaxLength {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text: fmt.Sprintf("❌ Название должно быть от %d до %d символов.\n\n"+
				"Попробуйте ещё раз или отправьте /cancel для отмены.",
				RaceNameMinLength, RaceNameMaxLength),
		})
		return
	}

	h.stateManager.SetData(telegramID, "race_name", name)
	h.stateManager.SetState(telegramID, state.StateNewWatchStart)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text: "📅 Введите дату и время старта в формате <b>ДД.ММ.ГГГГ ЧЧ:ММ</b>\n" +
			"(например, 07.01.2025 10:00):",
		ParseMode: models.ParseModeHTML,
	})
}

func (h *Handlers) handleWatchStartStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID

	raceStart, err := parseStartTime(update.Message.Text)
	if err != nil {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text: "❌ Неверный формат даты!\n\n" +
				"Используйте формат <b>ДД.ММ.ГГГГ ЧЧ:ММ</b> (например, 07.01.2025 10:00)\n\n" +
				"Попробуйте ещё раз или отправьте /cancel для отмены.",
			ParseMode: models.ParseModeHTML,
		})
		return
	}

	h.stateManager.SetData(telegramID, "race_start", raceStart)
	h.stateManager.SetState(telegramID, state.StateNewWatchDuration)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   "⏱ Введите оценку длительности гонки в часах (например, 10 или 12.5):",
	})
}

func (h *Handlers) handleWatchDurationStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID

	hours, err := parseHours(update.Message.Text)
	if err != nil || hours < MinDurationHours || hours > MaxDurationHours {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text: fmt.Sprintf("❌ Длительность должна быть числом от %.1f до %d часов.\n\n"+
				"Попробуйте ещё раз или отправьте /cancel для отмены.",
				MinDurationHours, MaxDurationHours),
		})
		return
	}

	h.stateManager.SetData(telegramID, "duration_hours", hours)

	// Система вахт выбирается кнопками, дальше мастер продолжит callback
	kb := keyboard.NewBuilder().
		Row(
			keyboard.Button("4 часа / 4 часа", callbacks.WatchSystemSelect+"4x4"),
			keyboard.Button("3 часа / 3 часа", callbacks.WatchSystemSelect+"3x3"),
		).
		Build()

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      update.Message.Chat.ID,
		Text:        "⚓️ Выберите систему вахт:",
		ReplyMarkup: kb,
	})
}

func (h *Handlers) handleWatchCrewAStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID

	names := parseCrewNames(update.Message.Text)
	if len(names) == 0 || len(names) > MaxCrewSize {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text: "❌ Введите имена вахты A через запятую\n" +
				"(например: Анна, Борис, Вера):",
		})
		return
	}

	h.stateManager.SetData(telegramID, "crew_a", names)
	h.stateManager.SetState(telegramID, state.StateNewWatchCrewB)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   "👥 Теперь введите имена вахты B через запятую:",
	})
}

func (h *Handlers) handleWatchCrewBStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID

	names := parseCrewNames(update.Message.Text)
	if len(names) == 0 || len(names) > MaxCrewSize {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text: "❌ Введите имена вахты B через запятую\n" +
				"(например: Глеб, Дарья):",
		})
		return
	}

	h.stateManager.SetData(telegramID, "crew_b", names)

	h.logger.Info("Watch wizard crew collected",
		zap.Int64("telegram_id", telegramID),
		zap.Int("crew_b", len(names)))

	kb := keyboard.NewBuilder().
		Row(
			keyboard.Button("Вахта A", callbacks.WatchGroupSelect+"A"),
			keyboard.Button("Вахта B", callbacks.WatchGroupSelect+"B"),
		).
		Build()

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      update.Message.Chat.ID,
		Text:        "🚩 Какая вахта заступает первой?",
		ReplyMarkup: kb,
	})
}
