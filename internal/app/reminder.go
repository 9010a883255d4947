package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Freeeeeet/regatta_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

const reminderTickInterval = time.Minute

// Reminder управляет фоновыми напоминаниями о сменах вахт
type Reminder struct {
	scheduleService *service.ScheduleService
	bot             *bot.Bot
	logger          *zap.Logger
	window          time.Duration
	stopChan        chan struct{}
	notified        map[string]bool // schedule_id:position -> уже отправлено
}

// NewReminder создаёт новый фоновый планировщик напоминаний
func NewReminder(scheduleService *service.ScheduleService, b *bot.Bot, window time.Duration, logger *zap.Logger) *Reminder {
	return &Reminder{
		scheduleService: scheduleService,
		bot:             b,
		logger:          logger,
		window:          window,
		stopChan:        make(chan struct{}),
		notified:        make(map[string]bool),
	}
}

// Start запускает фоновые напоминания
func (r *Reminder) Start(ctx context.Context) {
	r.logger.Info("Starting watch change reminders")
	go r.run(ctx)
}

// Stop останавливает фоновые напоминания
func (r *Reminder) Stop() {
	r.logger.Info("Stopping watch change reminders")
	close(r.stopChan)
}

func (r *Reminder) run(ctx context.Context) {
	// Первый проход сразу при старте
	r.notifyUpcoming(ctx)

	ticker := time.NewTicker(reminderTickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.notifyUpcoming(ctx)
		case <-r.stopChan:
			r.logger.Info("Watch change reminders stopped")
			return
		case <-ctx.Done():
			r.logger.Info("Watch change reminders cancelled")
			return
		}
	}
}

// notifyUpcoming отправляет напоминание о каждой смене вахты в окне
func (r *Reminder) notifyUpcoming(ctx context.Context) {
	changes, err := r.scheduleService.UpcomingWatchChanges(ctx, r.window)
	if err != nil {
		r.logger.Error("Failed to load upcoming watch changes", zap.Error(err))
		return
	}

	for _, change := range changes {
		key := fmt.Sprintf("%s:%d", change.ScheduleID, change.Position)
		if r.notified[key] {
			continue
		}

		text := fmt.Sprintf(
			"⏰ <b>%s</b>\n\n"+
				"Смена вахты в %s: заступает вахта %s\n"+
				"👥 %s",
			change.RaceName,
			change.Block.StartTime.Format("15:04"),
			change.Block.Group,
			strings.Join(change.Block.CrewNames, ", "),
		)

		_, err := r.bot.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:    change.ChatID,
			Text:      text,
			ParseMode: models.ParseModeHTML,
		})
		if err != nil {
			r.logger.Error("Failed to send watch change reminder",
				zap.Error(err),
				zap.Int64("chat_id", change.ChatID))
			continue
		}

		r.notified[key] = true

		r.logger.Info("Watch change reminder sent",
			zap.String("schedule_id", change.ScheduleID),
			zap.Int("position", change.Position),
			zap.String("group", string(change.Block.Group)))
	}
}
