package handlers

// Константы валидации для мастеров расписаний
const (
	// Название гонки
	RaceNameMinLength = 2
	RaceNameMaxLength = 100

	// Оценка длительности (в часах)
	MinDurationHours = 0.5
	MaxDurationHours = 240 // 10 суток

	// Размер экипажа
	MaxCrewSize = 20

	// Длина вахты на длинных участках (в часах)
	MinWatchLengthHours = 1
	MaxWatchLengthHours = 12
)

// StartTimeLayout формат ввода даты и времени старта
const StartTimeLayout = "02.01.2006 15:04"
