package formatting

import (
	"fmt"
	"strings"

	"github.com/Freeeeeet/regatta_bot/internal/model"
)

// FormatWatchScheduleShare форматирует простое вахтенное расписание
// для отправки экипажу. Чистое форматирование, без бизнес-логики
func FormatWatchScheduleShare(s *model.WatchSchedule, raceName string) string {
	if raceName == "" {
		raceName = s.RaceName
	}

	var b strings.Builder

	fmt.Fprintf(&b, "⛵ <b>%s</b>\n\n", raceName)
	fmt.Fprintf(&b, "🕐 Старт: %s\n", FormatDateTime(s.RaceStart))
	fmt.Fprintf(&b, "⏱ Расчётная длительность: %s\n", FormatHours(s.DurationHours))
	fmt.Fprintf(&b, "🔁 Система вахт: %s\n\n", watchSystemDisplay(s.System))

	b.WriteString("👥 Экипаж:\n")
	for _, group := range []model.WatchGroup{model.WatchGroupA, model.WatchGroupB} {
		var names []string
		for _, m := range s.Crew {
			if m.Group == group {
				names = append(names, m.Name)
			}
		}
		fmt.Fprintf(&b, "  Вахта %s: %s\n", group, strings.Join(names, ", "))
	}

	b.WriteString("\n📋 Вахты:\n")
	b.WriteString(formatBlocks(s.Blocks, ""))

	if s.Notes != "" {
		fmt.Fprintf(&b, "\n📝 %s\n", s.Notes)
	}

	return b.String()
}

// FormatRaceScheduleShare форматирует расписание многоэтапной гонки:
// шапка, экипаж по ролям, участки с вахтами и восхождениями
func FormatRaceScheduleShare(s *model.RaceSchedule, raceName string) string {
	if raceName == "" {
		raceName = s.RaceName
	}

	byID := make(map[string]model.CrewMember, len(s.Crew))
	for _, m := range s.Crew {
		byID[m.ID] = m
	}

	var b strings.Builder

	fmt.Fprintf(&b, "🏔 <b>%s</b>\n\n", raceName)
	fmt.Fprintf(&b, "🕐 Старт: %s\n", FormatDateTime(s.RaceStart))
	fmt.Fprintf(&b, "⏱ Всего: %s (участки + восхождения)\n\n", FormatHours(s.TotalHours))

	b.WriteString("👥 Экипаж:\n")
	for _, m := range s.Crew {
		fmt.Fprintf(&b, "  • %s — %s\n", m.Name, GetRoleDisplay(m.Role))
	}
	b.WriteString("\n")

	activityByLeg := make(map[int]*model.Activity)
	for i := range s.Activities {
		activityByLeg[s.Activities[i].AfterLeg] = &s.Activities[i]
	}

	for _, leg := range s.Legs {
		fmt.Fprintf(&b, "➡️ <b>Участок %d. %s</b>\n", leg.Number, leg.Name)
		fmt.Fprintf(&b, "   %s | %s\n", FormatTimeRange(leg.StartTime, leg.EndTime), FormatHours(leg.DurationHours))

		var names []string
		for _, id := range leg.AvailableIDs {
			if m, ok := byID[id]; ok {
				names = append(names, m.Name)
			}
		}
		fmt.Fprintf(&b, "   Доступны: %s\n", strings.Join(names, ", "))

		if len(leg.WatchBlocks) > 0 {
			b.WriteString(formatBlocks(leg.WatchBlocks, "   "))
		}

		if a, ok := activityByLeg[leg.Number]; ok {
			status := GetBoatStatusDisplay(a.BoatStatus)
			fmt.Fprintf(&b, "   🧗 <b>%s</b> %s\n", a.PeakName, FormatTimeRange(a.StartTime, a.EndTime))

			var climbers []string
			for _, id := range a.ClimberIDs {
				if m, ok := byID[id]; ok {
					climbers = append(climbers, m.Name)
				}
			}
			fmt.Fprintf(&b, "   Восходят: %s\n", strings.Join(climbers, ", "))
			fmt.Fprintf(&b, "   Лодка: %s %s\n", status.Emoji, status.Text)
			b.WriteString(climbChecklist)
		}

		b.WriteString("\n")
	}

	if s.Notes != "" {
		fmt.Fprintf(&b, "📝 %s\n", s.Notes)
	}

	return b.String()
}

// Чек-лист ручной фиксации времени для каждого восхождения
const climbChecklist = "   ☐ Записать время высадки\n" +
	"   ☐ Записать время на вершине\n" +
	"   ☐ Записать время возвращения на борт\n"

// FormatTaskInfo форматирует задачу восхождения
func FormatTaskInfo(task *model.ClimbTask) string {
	display := GetTaskStatusDisplay(task.Status)

	return fmt.Sprintf(
		"%s <b>%s</b>\n\n"+
			"🧗 Альпинисты: %s\n"+
			"📊 Статус: %s\n"+
			"🕐 Обновлено: %s",
		display.Emoji,
		task.PeakName,
		strings.Join(task.ClimberNames, ", "),
		display.Text,
		FormatDateTime(task.UpdatedAt),
	)
}

// formatBlocks форматирует список вахтенных блоков с отступом
func formatBlocks(blocks []model.TimeBlock, indent string) string {
	var b strings.Builder
	for _, block := range blocks {
		fmt.Fprintf(&b, "%s  %s — вахта %s (%s)\n",
			indent,
			FormatTimeRange(block.StartTime, block.EndTime),
			block.Group,
			strings.Join(block.CrewNames, ", "),
		)
	}
	return b.String()
}

// watchSystemDisplay возвращает человекочитаемое название системы вахт
func watchSystemDisplay(system model.WatchSystem) string {
	switch system {
	case model.WatchSystem3x3:
		return "3 через 3"
	case model.WatchSystem4x4:
		return "4 через 4"
	default:
		return string(system)
	}
}
