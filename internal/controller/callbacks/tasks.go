package callbacks

import (
	"context"
	"fmt"
	"strings"

	"github.com/Freeeeeet/regatta_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/regatta_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/regatta_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/regatta_bot/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleRaceTasks показывает задачи восхождений гонки
func (h *Handler) HandleRaceTasks(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	schedule, msg, ok := h.loadRaceFromCallback(ctx, b, callback)
	if !ok {
		return
	}

	common.AnswerCallback(ctx, b, callback.ID, "")
	h.renderTaskList(ctx, b, msg.Chat.ID, msg.ID, schedule)
}

// HandleTaskAdvance переводит задачу к следующему статусу и обновляет список
func (h *Handler) HandleTaskAdvance(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	taskID, err := common.ParseIDFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrInvalidFormat))
		return
	}

	msg := common.GetMessageFromCallback(callback)
	if msg == nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrNoMessage))
		return
	}

	task, err := h.RaceService.AdvanceTaskStatus(ctx, taskID)
	if err != nil {
		h.Logger.Error("Failed to advance climb task",
			zap.Error(err),
			zap.String("task_id", taskID))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrTaskNotFound))
		return
	}

	display := formatting.GetTaskStatusDisplay(task.Status)
	common.AnswerCallback(ctx, b, callback.ID, display.Emoji+" "+task.PeakName+": "+display.Text)

	schedule, err := h.RaceService.GetByID(ctx, task.ScheduleID)
	if err != nil || schedule == nil {
		h.Logger.Error("Failed to reload race schedule after task advance",
			zap.Error(err),
			zap.String("schedule_id", task.ScheduleID))
		return
	}

	h.renderTaskList(ctx, b, msg.Chat.ID, msg.ID, schedule)
}

// renderTaskList рисует список задач с кнопками смены статуса
func (h *Handler) renderTaskList(ctx context.Context, b *bot.Bot, chatID int64, messageID int, schedule *model.RaceSchedule) {
	if len(schedule.Tasks) == 0 {
		b.EditMessageText(ctx, &bot.EditMessageTextParams{
			ChatID:    chatID,
			MessageID: messageID,
			Text:      "🧗 В этой гонке нет назначенных восхождений.",
			ReplyMarkup: keyboard.NewBuilder().
				Row(keyboard.Button("⬅️ К расписанию", ViewRace+schedule.ID)).
				Build(),
		})
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🧗 <b>Восхождения: %s</b>\n\n", schedule.RaceName))
	for i := range schedule.Tasks {
		sb.WriteString(formatting.FormatTaskInfo(&schedule.Tasks[i]))
		sb.WriteString("\n")
	}

	kb := keyboard.NewBuilder()
	for _, task := range schedule.Tasks {
		if task.Status == model.TaskStatusCompleted {
			continue
		}
		next := formatting.GetTaskStatusDisplay(task.Status.Next())
		label := fmt.Sprintf("%s %s → %s", next.Emoji, task.PeakName, next.Text)
		kb.Row(keyboard.Button(label, TaskAdvance+task.ID))
	}
	kb.Row(keyboard.Button("⬅️ К расписанию", ViewRace+schedule.ID))

	b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:      chatID,
		MessageID:   messageID,
		Text:        sb.String(),
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: kb.Build(),
	})
}
