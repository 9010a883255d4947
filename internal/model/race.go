package model

import "time"

// BoatStatus что делает лодка на участке или во время восхождения
type BoatStatus string

const (
	BoatStatusSailing       BoatStatus = "sailing"
	BoatStatusHoveTo        BoatStatus = "hove_to"
	BoatStatusRepositioning BoatStatus = "repositioning"
)

// Leg участок гонки между двумя точками
// Абсолютные метки времени зависят от всех предыдущих участков и восхождений
type Leg struct {
	Number        int         `json:"number"`
	Name          string      `json:"name"`
	StartLocation string      `json:"start_location"`
	EndLocation   string      `json:"end_location"`
	DurationHours float64     `json:"duration_hours"`
	StartTime     time.Time   `json:"start_time"`
	EndTime       time.Time   `json:"end_time"`
	BoatStatus    BoatStatus  `json:"boat_status"`
	AvailableIDs  []string    `json:"available_ids"` // id доступного экипажа
	PeakID        string      `json:"peak_id"`       // вершина после участка, "" если нет
	WatchBlocks   []TimeBlock `json:"watch_blocks"`  // внутренние вахты для длинных участков
}

// Activity восхождение между двумя участками
// Инвариант: StartTime == EndTime предыдущего участка
type Activity struct {
	PeakID         string     `json:"peak_id"`
	PeakName       string     `json:"peak_name"`
	AfterLeg       int        `json:"after_leg"`
	StartTime      time.Time  `json:"start_time"`
	EndTime        time.Time  `json:"end_time"`
	DurationHours  float64    `json:"duration_hours"`
	ClimberIDs     []string   `json:"climber_ids"`
	BoatCrewIDs    []string   `json:"boat_crew_ids"`
	BoatStatus     BoatStatus `json:"boat_status"` // статус лодки во время восхождения
	Notes          string     `json:"notes"`
}

// RaceSchedule расписание многоэтапной гонки (участки + восхождения)
type RaceSchedule struct {
	ID               string       `json:"id"` // uuid
	ChatID           int64        `json:"chat_id"`
	RaceName         string       `json:"race_name"`
	RaceStart        time.Time    `json:"race_start"`
	WatchLengthHours float64      `json:"watch_length_hours"`
	Crew             []CrewMember `json:"crew"`
	Legs             []Leg        `json:"legs"`
	Activities       []Activity   `json:"activities"`
	Tasks            []ClimbTask  `json:"tasks"`
	TotalHours       float64      `json:"total_hours"`
	Notes            string       `json:"notes"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`
}
