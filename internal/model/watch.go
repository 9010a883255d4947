package model

import "time"

// WatchSystem система вахт: фиксированная длительность "на вахте/отдых"
type WatchSystem string

const (
	WatchSystem4x4 WatchSystem = "4x4" // 4 часа на вахте / 4 часа отдых
	WatchSystem3x3 WatchSystem = "3x3" // 3 часа на вахте / 3 часа отдых
)

// BlockHours возвращает длину одного вахтенного блока в часах
func (s WatchSystem) BlockHours() float64 {
	switch s {
	case WatchSystem3x3:
		return 3
	default:
		return 4
	}
}

// TimeBlock вахтенный блок: полуоткрытый интервал [StartTime, EndTime)
// Блоки одного расписания непрерывны и не пересекаются
type TimeBlock struct {
	StartTime     time.Time  `json:"start_time"`
	EndTime       time.Time  `json:"end_time"`
	Group         WatchGroup `json:"group"`
	CrewNames     []string   `json:"crew_names"`
	DurationHours float64    `json:"duration_hours"` // дробное значение для усечённого последнего блока
}

// WatchChange предстоящая смена вахты для напоминаний
type WatchChange struct {
	ScheduleID string    `json:"schedule_id"`
	ChatID     int64     `json:"chat_id"`
	RaceName   string    `json:"race_name"`
	Block      TimeBlock `json:"block"`
	Position   int       `json:"position"`
}

// WatchSchedule простое вахтенное расписание
type WatchSchedule struct {
	ID             string      `json:"id"` // uuid
	ChatID         int64       `json:"chat_id"`
	RaceName       string      `json:"race_name"`
	System         WatchSystem `json:"system"`
	RaceStart      time.Time   `json:"race_start"`
	DurationHours  float64     `json:"duration_hours"`
	StartingGroup  WatchGroup  `json:"starting_group"`
	Crew           []CrewMember `json:"crew"`
	Blocks         []TimeBlock `json:"blocks"`
	Notes          string      `json:"notes"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}
