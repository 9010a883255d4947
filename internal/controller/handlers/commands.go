package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/Freeeeeet/regatta_bot/internal/controller/callbacks"
	"github.com/Freeeeeet/regatta_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/regatta_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/regatta_bot/internal/controller/state"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleStart обрабатывает команду /start
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	user := update.Message.From

	// Регистрируем пользователя
	registeredUser, err := h.userService.RegisterUser(
		ctx,
		user.ID,
		user.Username,
		user.FirstName,
		user.LastName,
		user.LanguageCode,
	)

	if err != nil {
		h.logger.Error("Failed to register user", zap.Error(err))
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   "❌ Произошла ошибка при регистрации. Попробуйте позже.",
		})
		return
	}

	welcomeText := fmt.Sprintf(
		"👋 Привет, %s!\n\n"+
			"Это Regatta Bot - бот для генерации вахтенных расписаний парусных гонок.\n\n"+
			"Доступные команды:\n"+
			"/newwatch - Создать вахтенное расписание\n"+
			"/newrace - Создать расписание гонки Four Peaks\n"+
			"/myraces - Мои расписания\n"+
			"/help - Справка",
		registeredUser.FirstName,
	)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   welcomeText,
	})
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	helpText := "⛵️ Справка по командам:\n\n" +
		"/newwatch - Вахтенное расписание: две вахты сменяются\n" +
		"по системе 4/4 или 3/3 от старта до финиша\n\n" +
		"/newrace - Расписание гонки Four Peaks: участки,\n" +
		"восхождения, доступность экипажа и вахты на длинных участках\n\n" +
		"/myraces - Список сохранённых расписаний\n" +
		"/cancel - Отменить текущий мастер\n" +
		"/help - Показать эту справку"

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   helpText,
	})
}

// HandleCancel обрабатывает команду /cancel - отмена текущего мастера
func (h *Handlers) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	telegramID := update.Message.From.ID
	currentState := h.stateManager.GetState(telegramID)

	if currentState == state.StateNone {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   "❌ Нет активных операций для отмены.",
		})
		return
	}

	h.stateManager.ClearState(telegramID)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   "✅ Операция отменена.\n\nИспользуйте /help для просмотра доступных команд.",
	})
}

// HandleNewWatch запускает мастер вахтенного расписания
func (h *Handlers) HandleNewWatch(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	telegramID := update.Message.From.ID
	h.stateManager.ClearState(telegramID)
	h.stateManager.SetState(telegramID, state.StateNewWatchName)
	h.stateManager.SetData(telegramID, "chat_id", update.Message.Chat.ID)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text: "⛵️ Создаём вахтенное расписание.\n\n" +
			"Введите название гонки:",
	})
}

// HandleNewRace запускает мастер расписания гонки
func (h *Handlers) HandleNewRace(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	telegramID := update.Message.From.ID
	h.stateManager.ClearState(telegramID)
	h.stateManager.SetState(telegramID, state.StateNewRaceName)
	h.stateManager.SetData(telegramID, "chat_id", update.Message.Chat.ID)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text: "🏔 Создаём расписание гонки Four Peaks.\n\n" +
			"Введите название гонки:",
	})
}

// HandleMyRaces показывает сохранённые расписания чата
func (h *Handlers) HandleMyRaces(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	chatID := update.Message.Chat.ID

	watchSchedules, err := h.scheduleService.GetByChatID(ctx, chatID)
	if err != nil {
		h.logger.Error("Failed to load watch schedules", zap.Error(err))
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "❌ Не удалось загрузить расписания. Попробуйте позже.",
		})
		return
	}

	raceSchedules, err := h.raceService.GetByChatID(ctx, chatID)
	if err != nil {
		h.logger.Error("Failed to load race schedules", zap.Error(err))
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "❌ Не удалось загрузить расписания. Попробуйте позже.",
		})
		return
	}

	if len(watchSchedules) == 0 && len(raceSchedules) == 0 {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text: "📭 Пока нет сохранённых расписаний.\n\n" +
				"Создайте первое: /newwatch или /newrace",
		})
		return
	}

	kb := keyboard.NewBuilder()
	for _, s := range watchSchedules {
		label := fmt.Sprintf("⚓️ %s (%s)", s.RaceName, formatting.FormatDate(s.RaceStart))
		kb.Row(keyboard.Button(label, callbacks.ViewWatch+s.ID))
	}
	for _, s := range raceSchedules {
		label := fmt.Sprintf("🏔 %s (%s)", s.RaceName, formatting.FormatDate(s.RaceStart))
		kb.Row(keyboard.Button(label, callbacks.ViewRace+s.ID))
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        "📋 Ваши расписания:",
		ReplyMarkup: kb.Build(),
	})
}

// HandleTextMessage обрабатывает текстовые сообщения в зависимости от состояния пользователя
func (h *Handlers) HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}

	// Игнорируем команды (они обрабатываются другими handlers)
	if strings.HasPrefix(update.Message.Text, "/") {
		return
	}

	telegramID := update.Message.From.ID
	currentState := h.stateManager.GetState(telegramID)

	if currentState == state.StateNone {
		return
	}

	h.logger.Info("Handling dialog step",
		zap.Int64("telegram_id", telegramID),
		zap.String("state", string(currentState)))

	switch currentState {
	case state.StateNewWatchName:
		h.handleWatchNameStep(ctx, b, update)
	case state.StateNewWatchStart:
		h.handleWatchStartStep(ctx, b, update)
	case state.StateNewWatchDuration:
		h.handleWatchDurationStep(ctx, b, update)
	case state.StateNewWatchCrewA:
		h.handleWatchCrewAStep(ctx, b, update)
	case state.StateNewWatchCrewB:
		h.handleWatchCrewBStep(ctx, b, update)
	case state.StateNewRaceName:
		h.handleRaceNameStep(ctx, b, update)
	case state.StateNewRaceStart:
		h.handleRaceStartStep(ctx, b, update)
	case state.StateNewRaceCrew:
		h.handleRaceCrewStep(ctx, b, update)
	case state.StateNewRaceOverrides:
		h.handleRaceOverridesStep(ctx, b, update)
	case state.StateNewRaceWatchLen:
		h.handleRaceWatchLenStep(ctx, b, update)
	default:
		h.logger.Warn("Unknown state", zap.String("state", string(currentState)))
	}
}
