package formatting

import "github.com/Freeeeeet/regatta_bot/internal/model"

// StatusDisplay содержит emoji и текст для отображения статуса
type StatusDisplay struct {
	Emoji string
	Text  string
}

// GetTaskStatusDisplay возвращает emoji и текст для статуса задачи восхождения
func GetTaskStatusDisplay(status model.TaskStatus) StatusDisplay {
	switch status {
	case model.TaskStatusPending:
		return StatusDisplay{Emoji: "⏳", Text: "Ожидает"}
	case model.TaskStatusInProgress:
		return StatusDisplay{Emoji: "🧗", Text: "Восхождение идёт"}
	case model.TaskStatusCompleted:
		return StatusDisplay{Emoji: "✅", Text: "Завершено"}
	default:
		return StatusDisplay{Emoji: "❓", Text: "Неизвестно"}
	}
}

// GetBoatStatusDisplay возвращает emoji и текст для статуса лодки
func GetBoatStatusDisplay(status model.BoatStatus) StatusDisplay {
	switch status {
	case model.BoatStatusSailing:
		return StatusDisplay{Emoji: "⛵", Text: "Под парусами"}
	case model.BoatStatusHoveTo:
		return StatusDisplay{Emoji: "⚓", Text: "В дрейфе"}
	case model.BoatStatusRepositioning:
		return StatusDisplay{Emoji: "🔄", Text: "Перегон к точке подбора"}
	default:
		return StatusDisplay{Emoji: "❓", Text: "Неизвестно"}
	}
}

// GetRoleDisplay возвращает название роли участника
func GetRoleDisplay(role model.CrewRole) string {
	switch role {
	case model.CrewRoleSailor:
		return "матрос"
	case model.CrewRoleClimber:
		return "альпинист"
	case model.CrewRoleBoth:
		return "матрос+альпинист"
	default:
		return string(role)
	}
}
