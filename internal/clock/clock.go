package clock

import "time"

// Clock источник текущего времени
// Генераторы расписаний детерминированы, "сейчас" нужно только для
// меток created_at/updated_at и напоминаний
type Clock interface {
	Now() time.Time
}

// System системные часы
type System struct{}

func (System) Now() time.Time {
	return time.Now()
}

// Fixed часы с фиксированным временем для тестов
type Fixed struct {
	T time.Time
}

func (f Fixed) Now() time.Time {
	return f.T
}
