package model

import "time"

// TaskStatus статус задачи восхождения
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"     // Ожидает
	TaskStatusInProgress TaskStatus = "in_progress" // Восхождение идёт
	TaskStatusCompleted  TaskStatus = "completed"   // Завершено
)

// Next возвращает следующий статус в цепочке pending -> in_progress -> completed
func (s TaskStatus) Next() TaskStatus {
	switch s {
	case TaskStatusPending:
		return TaskStatusInProgress
	case TaskStatusInProgress:
		return TaskStatusCompleted
	default:
		return TaskStatusCompleted
	}
}

// ClimbTask задача отслеживания восхождения
// Единственная сущность, которая изменяется после генерации расписания
type ClimbTask struct {
	ID           string     `json:"id"` // uuid
	ScheduleID   string     `json:"schedule_id"`
	PeakID       string     `json:"peak_id"`
	PeakName     string     `json:"peak_name"`
	ClimberNames []string   `json:"climber_names"`
	Status       TaskStatus `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
