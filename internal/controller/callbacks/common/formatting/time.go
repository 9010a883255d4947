package formatting

import (
	"fmt"
	"math"
	"time"
)

// FormatDateTime форматирует дату и время
func FormatDateTime(t time.Time) string {
	return t.Format("02.01.2006 15:04")
}

// FormatDate форматирует только дату
func FormatDate(t time.Time) string {
	return t.Format("02.01.2006")
}

// FormatTime форматирует только время
func FormatTime(t time.Time) string {
	return t.Format("15:04")
}

// FormatTimeRange форматирует диапазон времени
func FormatTimeRange(start, end time.Time) string {
	if start.Day() != end.Day() || start.Month() != end.Month() {
		return fmt.Sprintf("%s - %s", start.Format("02.01 15:04"), end.Format("02.01 15:04"))
	}
	return fmt.Sprintf("%s-%s", start.Format("15:04"), end.Format("15:04"))
}

// FormatHours форматирует длительность в дробных часах
// Например: 4 -> "4 ч", 2.5 -> "2 ч 30 мин", 0.75 -> "45 мин"
func FormatHours(hours float64) string {
	totalMinutes := int(math.Round(hours * 60))
	h := totalMinutes / 60
	m := totalMinutes % 60

	if h == 0 {
		return fmt.Sprintf("%d мин", m)
	}
	if m == 0 {
		return fmt.Sprintf("%d ч", h)
	}
	return fmt.Sprintf("%d ч %d мин", h, m)
}
