package handlers

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Freeeeeet/regatta_bot/internal/model"
	"github.com/Freeeeeet/regatta_bot/internal/race"
	"github.com/google/uuid"
)

// parseStartTime разбирает дату и время старта в локальной тайм-зоне
func parseStartTime(text string) (time.Time, error) {
	t, err := time.ParseInLocation(StartTimeLayout, strings.TrimSpace(text), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("неверный формат даты")
	}
	return t, nil
}

// parseHours разбирает число часов, допускает дробные значения
func parseHours(text string) (float64, error) {
	hours, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(text), ",", "."), 64)
	if err != nil {
		return 0, fmt.Errorf("не получилось разобрать число")
	}
	return hours, nil
}

// parseCrewNames разбирает список имён через запятую
func parseCrewNames(text string) []string {
	parts := strings.Split(text, ",")
	names := make([]string, 0, len(parts))
	for _, part := range parts {
		name := strings.TrimSpace(part)
		if name != "" {
			names = append(names, name)
		}
	}
	return names
}

// Отображение ролей при вводе экипажа гонки
var roleByInput = map[string]model.CrewRole{
	"матрос":    model.CrewRoleSailor,
	"альпинист": model.CrewRoleClimber,
	"оба":       model.CrewRoleBoth,
}

// parseRaceCrewLines разбирает экипаж гонки построчно.
// Формат строки: "Имя - роль[ - вершины через запятую]",
// например "Борис - альпинист - violet_hill, lantau_peak"
func parseRaceCrewLines(text string, topo *race.Topology) ([]model.CrewMember, error) {
	lines := strings.Split(text, "\n")
	crew := make([]model.CrewMember, 0, len(lines))

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		parts := strings.Split(line, "-")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		if len(parts) < 2 || parts[0] == "" {
			return nil, fmt.Errorf("не получилось разобрать строку «%s»", line)
		}

		role, ok := roleByInput[strings.ToLower(parts[1])]
		if !ok {
			return nil, fmt.Errorf("неизвестная роль «%s» (ожидается: матрос, альпинист или оба)", parts[1])
		}

		var peakIDs []string
		if len(parts) >= 3 && parts[2] != "" {
			for _, raw := range strings.Split(parts[2], ",") {
				peakID := strings.TrimSpace(raw)
				if peakID == "" {
					continue
				}
				if _, known := topo.PeakByID(peakID); !known {
					return nil, fmt.Errorf("неизвестная вершина «%s»", peakID)
				}
				peakIDs = append(peakIDs, peakID)
			}
		}

		if role == model.CrewRoleSailor && len(peakIDs) > 0 {
			return nil, fmt.Errorf("матрос «%s» не может быть назначен на вершины", parts[0])
		}
		if role != model.CrewRoleSailor && len(peakIDs) == 0 {
			return nil, fmt.Errorf("у альпиниста «%s» не указаны вершины", parts[0])
		}

		// Вахтенные группы чередуются по позиции в списке
		group := model.WatchGroupA
		if len(crew)%2 == 1 {
			group = model.WatchGroupB
		}

		crew = append(crew, model.CrewMember{
			ID:      uuid.NewString(),
			Name:    parts[0],
			Group:   group,
			Role:    role,
			PeakIDs: peakIDs,
		})
	}

	if len(crew) == 0 {
		return nil, fmt.Errorf("экипаж пуст")
	}
	if len(crew) > MaxCrewSize {
		return nil, fmt.Errorf("слишком большой экипаж (максимум %d человек)", MaxCrewSize)
	}

	return crew, nil
}

// buildAssignments собирает назначения на вершины из экипажа
func buildAssignments(crew []model.CrewMember) map[string][]string {
	assignments := make(map[string][]string)
	for _, m := range crew {
		for _, peakID := range m.PeakIDs {
			assignments[peakID] = append(assignments[peakID], m.ID)
		}
	}
	return assignments
}

// parseOverrides разбирает переопределения длительности участков
// вида "2=4.5,5=6". Прочерк означает "без переопределений"
func parseOverrides(text string, topo *race.Topology) (map[int]float64, error) {
	text = strings.TrimSpace(text)
	overrides := make(map[int]float64)
	if text == "-" || text == "" {
		return overrides, nil
	}

	maxLeg := 0
	for _, leg := range topo.Legs {
		if leg.Number > maxLeg {
			maxLeg = leg.Number
		}
	}

	for _, raw := range strings.Split(text, ",") {
		pair := strings.SplitN(strings.TrimSpace(raw), "=", 2)
		if len(pair) != 2 {
			return nil, fmt.Errorf("не получилось разобрать «%s»", raw)
		}
		legNumber, err := strconv.Atoi(strings.TrimSpace(pair[0]))
		if err != nil || legNumber < 1 || legNumber > maxLeg {
			return nil, fmt.Errorf("нет участка с номером «%s»", pair[0])
		}
		hours, err := parseHours(pair[1])
		if err != nil || hours <= 0 {
			return nil, fmt.Errorf("неверная длительность для участка %d", legNumber)
		}
		overrides[legNumber] = hours
	}

	return overrides, nil
}

// formatCrewSummary строит краткую сводку экипажа для подтверждения
func formatCrewSummary(crew []model.CrewMember) string {
	var sb strings.Builder
	for _, m := range crew {
		sb.WriteString("• ")
		sb.WriteString(m.Name)
		if len(m.PeakIDs) > 0 {
			peaks := make([]string, len(m.PeakIDs))
			copy(peaks, m.PeakIDs)
			sort.Strings(peaks)
			sb.WriteString(" (")
			sb.WriteString(strings.Join(peaks, ", "))
			sb.WriteString(")")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
