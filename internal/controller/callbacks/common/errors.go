package common

import "errors"

// Общие ошибки для обработчиков
var (
	ErrScheduleNotFound = errors.New("schedule not found")
	ErrRaceNotFound     = errors.New("race schedule not found")
	ErrTaskNotFound     = errors.New("climb task not found")
	ErrNoMessage        = errors.New("no message in callback")
	ErrInvalidFormat    = errors.New("invalid callback format")
)

// ErrorMessage возвращает пользовательское сообщение для ошибки
func ErrorMessage(err error) string {
	switch {
	case errors.Is(err, ErrScheduleNotFound):
		return "❌ Расписание не найдено"
	case errors.Is(err, ErrRaceNotFound):
		return "❌ Расписание гонки не найдено"
	case errors.Is(err, ErrTaskNotFound):
		return "❌ Задача не найдена"
	case errors.Is(err, ErrNoMessage):
		return "❌ Ошибка обработки сообщения"
	case errors.Is(err, ErrInvalidFormat):
		return "❌ Неверный формат данных"
	default:
		return "❌ Произошла ошибка"
	}
}
