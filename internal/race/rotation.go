package race

import (
	"time"

	"github.com/Freeeeeet/regatta_bot/internal/model"
)

// GenerateWatchBlocks генерирует чередующиеся вахтенные блоки, покрывающие
// estimatedHours начиная с startTime. Последний блок усекается, чтобы
// не выйти за пределы гонки. При estimatedHours <= 0 блоков нет.
// Функция чистая: время берётся только из параметров
func GenerateWatchBlocks(system model.WatchSystem, startTime time.Time, estimatedHours float64, crew []model.CrewMember, startingGroup model.WatchGroup) []model.TimeBlock {
	return generateBlocks(system.BlockHours(), startTime, estimatedHours, crew, startingGroup)
}

// generateBlocks общий цикл ротации, параметризованный длиной вахты
// Используется и для простого расписания, и для вахт внутри участка
func generateBlocks(blockHours float64, startTime time.Time, estimatedHours float64, crew []model.CrewMember, startingGroup model.WatchGroup) []model.TimeBlock {
	if blockHours <= 0 || estimatedHours <= 0 {
		return nil
	}

	if startingGroup != model.WatchGroupA && startingGroup != model.WatchGroupB {
		startingGroup = model.WatchGroupA
	}

	var blocks []model.TimeBlock
	elapsed := 0.0
	current := startTime
	activeGroup := startingGroup

	for elapsed < estimatedHours {
		duration := blockHours
		if remaining := estimatedHours - elapsed; remaining < duration {
			duration = remaining
		}

		end := current.Add(hoursToDuration(duration))
		blocks = append(blocks, model.TimeBlock{
			StartTime:     current,
			EndTime:       end,
			Group:         activeGroup,
			CrewNames:     groupNames(crew, activeGroup),
			DurationHours: duration,
		})

		current = end
		elapsed += duration
		activeGroup = activeGroup.Opposite()
	}

	return blocks
}

// groupNames возвращает имена экипажа вахтенной группы
func groupNames(crew []model.CrewMember, group model.WatchGroup) []string {
	var names []string
	for _, m := range crew {
		if m.Group == group {
			names = append(names, m.Name)
		}
	}
	return names
}

// hoursToDuration переводит дробные часы в time.Duration
func hoursToDuration(hours float64) time.Duration {
	return time.Duration(hours * float64(time.Hour))
}

// ValidationResult результат проверки распределения экипажа по вахтам
type ValidationResult struct {
	Valid bool
	Error string
}

// ValidateCrewAssignment проверяет, что обе вахты укомплектованы.
// Проверка выполняется до сборки расписания: сам генератор пустые
// вахты не отлавливает
func ValidateCrewAssignment(crew []model.CrewMember) ValidationResult {
	if len(crew) == 0 {
		return ValidationResult{Error: "экипаж не задан"}
	}

	hasA := false
	hasB := false
	for _, m := range crew {
		switch m.Group {
		case model.WatchGroupA:
			hasA = true
		case model.WatchGroupB:
			hasB = true
		}
	}

	if !hasA {
		return ValidationResult{Error: "вахта A пустая"}
	}
	if !hasB {
		return ValidationResult{Error: "вахта B пустая"}
	}

	return ValidationResult{Valid: true}
}
