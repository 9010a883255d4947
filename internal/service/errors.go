package service

// ValidationError ошибка проверки входных данных расписания.
// Reason показывается пользователю как есть
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}
