package controller

import (
	"context"

	"github.com/Freeeeeet/regatta_bot/internal/controller/callbacks"
	"github.com/Freeeeeet/regatta_bot/internal/controller/handlers"
	"github.com/Freeeeeet/regatta_bot/internal/controller/state"
	"github.com/Freeeeeet/regatta_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

type BotController struct {
	bot             *bot.Bot
	handlers        *handlers.Handlers
	callbackHandler *callbacks.Handler
	logger          *zap.Logger
}

func NewBotController(
	botInstance *bot.Bot,
	userService *service.UserService,
	scheduleService *service.ScheduleService,
	raceService *service.RaceService,
	logger *zap.Logger,
) *BotController {
	stateManager := state.NewManager()

	cmdHandlers := handlers.NewHandlers(
		userService,
		scheduleService,
		raceService,
		stateManager,
		logger,
	)

	callbackHandler := callbacks.NewHandler(
		scheduleService,
		raceService,
		stateManager,
		logger,
	)

	return &BotController{
		bot:             botInstance,
		handlers:        cmdHandlers,
		callbackHandler: callbackHandler,
		logger:          logger,
	}
}

// RegisterHandlers регистрирует все обработчики команд
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, c.handlers.HandleStart)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, c.handlers.HandleHelp)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/cancel", bot.MatchTypeExact, c.handlers.HandleCancel)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/newwatch", bot.MatchTypeExact, c.handlers.HandleNewWatch)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/newrace", bot.MatchTypeExact, c.handlers.HandleNewRace)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/myraces", bot.MatchTypeExact, c.handlers.HandleMyRaces)

	// Обработчик текстовых сообщений (для мастеров с состояниями)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "", bot.MatchTypePrefix, c.handlers.HandleTextMessage)

	// Обработчик нажатий на inline кнопки
	c.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, c.callbackHandler.HandleCallbackQuery)

	return c.setCommands(ctx)
}

// setCommands устанавливает список команд в меню бота
func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "start", Description: "🚀 Начать работу с ботом"},
		{Command: "help", Description: "❓ Справка по командам"},
		{Command: "newwatch", Description: "⚓️ Новое вахтенное расписание"},
		{Command: "newrace", Description: "🏔 Новое расписание гонки"},
		{Command: "myraces", Description: "📋 Мои расписания"},
		{Command: "cancel", Description: "✖️ Отменить текущий мастер"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})

	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("✅ Bot commands menu set")
	return nil
}

// Start запускает бота
func (c *BotController) Start(ctx context.Context) error {
	c.logger.Info("Starting bot...")
	c.bot.Start(ctx)
	return nil
}
