package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/Freeeeeet/regatta_bot/internal/controller/callbacks"
	"github.com/Freeeeeet/regatta_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/regatta_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/regatta_bot/internal/controller/state"
	"github.com/Freeeeeet/regatta_bot/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Шаги мастера расписания гонки: название -> старт -> экипаж ->
// переопределения участков -> длина вахты -> подтверждение (кнопки)

func (h *Handlers) handleRaceNameStep(ctx context.Context, b *bot.Bot, update *models.Update) {
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
	h.stateManager.SetState(telegramID, state.StateNewRaceStart)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text: "📅 Введите дату и время старта в формате <b>ДД.ММ.ГГГГ ЧЧ:ММ</b>\n" +
			"(например, 25.01.2025 08:30):",
		ParseMode: models.ParseModeHTML,
	})
}

func (h *Handlers) handleRaceStartStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID

	raceStart, err := parseStartTime(update.Message.Text)
	if err != nil {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text: "❌ Неверный формат даты!\n\n" +
				"Используйте формат <b>ДД.ММ.ГГГГ ЧЧ:ММ</b> (например, 25.01.2025 08:30)\n\n" +
				"Попробуйте ещё раз или отправьте /cancel для отмены.",
			ParseMode: models.ParseModeHTML,
		})
		return
	}

	h.stateManager.SetData(telegramID, "race_start", raceStart)
	h.stateManager.SetState(telegramID, state.StateNewRaceCrew)

	topo := h.raceService.Topology()
	var peaks strings.Builder
	for _, leg := range topo.Legs {
		if leg.PeakID == "" {
			continue
		}
		peak, _ := topo.PeakByID(leg.PeakID)
		peaks.WriteString(fmt.Sprintf("• <code>%s</code> - %s\n", peak.ID, peak.Name))
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text: "👥 Введите экипаж, по одному человеку на строку.\n\n" +
			"Формат: <b>Имя - роль - вершины</b>\n" +
			"Роли: матрос, альпинист, оба\n\n" +
			"Вершины:\n" + peaks.String() + "\n" +
			"Пример:\n" +
			"<code>Анна - матрос\n" +
			"Борис - альпинист - violet_hill, lantau_peak\n" +
			"Вера - оба - ma_on_shan, mt_stenhouse</code>",
		ParseMode: models.ParseModeHTML,
	})
}

func (h *Handlers) handleRaceCrewStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID

	crew, err := parseRaceCrewLines(update.Message.Text, h.raceService.Topology())
	if err != nil {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text: "❌ " + err.Error() + "\n\n" +
				"Попробуйте ещё раз или отправьте /cancel для отмены.",
		})
		return
	}

	h.stateManager.SetData(telegramID, "crew", crew)
	h.stateManager.SetState(telegramID, state.StateNewRaceOverrides)

	topo := h.raceService.Topology()
	var defaults strings.Builder
	for _, leg := range topo.Legs {
		defaults.WriteString(fmt.Sprintf("%d. %s - %s\n",
			leg.Number, leg.Name, formatting.FormatHours(leg.DefaultHours)))
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text: "⏱ Длительности участков по умолчанию:\n\n" + defaults.String() + "\n" +
			"Чтобы переопределить, введите пары <b>номер=часы</b> через запятую\n" +
			"(например, <code>2=4.5,5=6</code>) или «-», чтобы оставить как есть:",
		ParseMode: models.ParseModeHTML,
	})
}

func (h *Handlers) handleRaceOverridesStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID

	overrides, err := parseOverrides(update.Message.Text, h.raceService.Topology())
	if err != nil {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text: "❌ " + err.Error() + "\n\n" +
				"Попробуйте ещё раз или отправьте /cancel для отмены.",
		})
		return
	}

	h.stateManager.SetData(telegramID, "overrides", overrides)
	h.stateManager.SetState(telegramID, state.StateNewRaceWatchLen)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text: "⚓️ Введите длину вахты в часах для длинных участков\n" +
			"(например, 4) или «-» для значения по умолчанию:",
	})
}

func (h *Handlers) handleRaceWatchLenStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	text := strings.TrimSpace(update.Message.Text)

	watchLen := 4.0
	if text != "-" && text != "" {
		hours, err := parseHours(text)
		if err != nil || hours < MinWatchLengthHours || hours > MaxWatchLengthHours {
			b.SendMessage(ctx, &bot.SendMessageParams{
				ChatID: update.Message.Chat.ID,
				Text: fmt.Sprintf("❌ Длина вахты должна быть числом от %d до %d часов.\n\n"+
					"Попробуйте ещё раз или отправьте /cancel для отмены.",
					MinWatchLengthHours, MaxWatchLengthHours),
			})
			return
		}
		watchLen = hours
	}

	h.stateManager.SetData(telegramID, "watch_length_hours", watchLen)

	// Сводка для подтверждения
	raceName := h.stateManager.GetString(telegramID, "race_name")
	crewData, _ := h.stateManager.GetData(telegramID, "crew")
	crew, _ := crewData.([]model.CrewMember)

	summary := fmt.Sprintf(
		"🏔 <b>%s</b>\n\n"+
			"Экипаж (%d):\n%s\n"+
			"Длина вахты: %s\n\n"+
			"Создать расписание?",
		raceName,
		len(crew),
		formatCrewSummary(crew),
		formatting.FormatHours(watchLen),
	)

	kb := keyboard.NewBuilder().
		Row(
			keyboard.Button("✅ Создать", callbacks.RaceConfirm),
			keyboard.Button("❌ Отменить", callbacks.RaceCancel),
		).
		Build()

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      update.Message.Chat.ID,
		Text:        summary,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: kb,
	})
}
