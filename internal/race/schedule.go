package race

import (
	"time"

	"github.com/Freeeeeet/regatta_bot/internal/model"
)

// Пороги для внутренних вахт на участке
const (
	MinLegHoursForWatches = 4.0 // короткие участки идут всем составом
	MinCrewForWatches     = 2
)

// Input входные данные генератора многоэтапной гонки
type Input struct {
	Topology         *Topology
	RaceStart        time.Time
	DurationOverride map[int]float64     // номер участка -> часы, пусто = значение из шаблона
	Crew             []model.CrewMember
	Assignments      map[string][]string // id вершины -> id назначенных альпинистов
	WatchLengthHours float64
}

// Output результат генерации: участки, восхождения, задачи
// Метки времени детерминированы: зависят только от RaceStart и длительностей
type Output struct {
	Legs       []model.Leg
	Activities []model.Activity
	Tasks      []model.ClimbTask
	TotalHours float64
}

// BuildRaceSchedule генерирует расписание многоэтапной гонки.
// Четыре шага выполняются строго по порядку: каждый зависит от
// накопленного времени предыдущего.
// Некорректные куски входа (неизвестные id, вершины без альпинистов)
// отбрасываются молча - наполовину заполненный мастер всё равно
// получает предпросмотр; границу отвечает сервисный слой
func BuildRaceSchedule(in Input) Output {
	legs := generateLegs(in)
	activities := generateActivities(in, legs)
	tasks := generateClimbTasks(in)
	attachLegWatches(in, legs)

	total := 0.0
	for _, leg := range legs {
		total += leg.DurationHours
	}
	for _, a := range activities {
		total += a.DurationHours
	}

	return Output{
		Legs:       legs,
		Activities: activities,
		Tasks:      tasks,
		TotalHours: total,
	}
}

// generateLegs проходит шаблон участков по порядку, протягивая
// накопленное время через участки и восхождения
func generateLegs(in Input) []model.Leg {
	var legs []model.Leg
	current := in.RaceStart

	for _, tpl := range in.Topology.Legs {
		hours := tpl.DefaultHours
		if override, ok := in.DurationOverride[tpl.Number]; ok && override > 0 {
			hours = override
		}

		available := CrewAvailableForLeg(in.Topology, tpl.Number, in.Crew, in.Assignments)

		leg := model.Leg{
			Number:        tpl.Number,
			Name:          tpl.Name,
			StartLocation: tpl.StartLocation,
			EndLocation:   tpl.EndLocation,
			DurationHours: hours,
			StartTime:     current,
			EndTime:       current.Add(hoursToDuration(hours)),
			BoatStatus:    model.BoatStatusSailing,
			AvailableIDs:  memberIDs(available),
			PeakID:        tpl.PeakID,
		}
		legs = append(legs, leg)

		current = leg.EndTime

		// Перед следующим участком лодка ждёт восхождение
		if tpl.PeakID != "" {
			if peak, ok := in.Topology.PeakByID(tpl.PeakID); ok {
				current = current.Add(hoursToDuration(peak.ClimbHours))
			}
		}
	}

	return legs
}

// generateActivities создаёт восхождение для каждого участка с вершиной
// и хотя бы одним назначенным альпинистом
func generateActivities(in Input, legs []model.Leg) []model.Activity {
	var activities []model.Activity

	for _, leg := range legs {
		if leg.PeakID == "" {
			continue
		}
		climbers := resolveMembers(in.Crew, in.Assignments[leg.PeakID])
		if len(climbers) == 0 {
			continue
		}

		peak, ok := in.Topology.PeakByID(leg.PeakID)
		if !ok {
			continue
		}

		tpl := legTemplate(in.Topology, leg.Number)
		status := model.BoatStatusHoveTo
		if tpl != nil && tpl.BoatStatusDuringClimb != "" {
			status = tpl.BoatStatusDuringClimb
		}

		activities = append(activities, model.Activity{
			PeakID:        peak.ID,
			PeakName:      peak.Name,
			AfterLeg:      leg.Number,
			StartTime:     leg.EndTime, // восхождение начинается сразу после участка
			EndTime:       leg.EndTime.Add(hoursToDuration(peak.ClimbHours)),
			DurationHours: peak.ClimbHours,
			ClimberIDs:    memberIDs(climbers),
			BoatCrewIDs:   complementIDs(in.Crew, climbers),
			BoatStatus:    status,
			Notes:         peak.Location,
		})
	}

	return activities
}

// generateClimbTasks создаёт по одной задаче на вершину с альпинистами.
// Нераспознанные id просто пропускаются
func generateClimbTasks(in Input) []model.ClimbTask {
	var tasks []model.ClimbTask

	for _, tpl := range in.Topology.Legs {
		if tpl.PeakID == "" {
			continue
		}
		climbers := resolveMembers(in.Crew, in.Assignments[tpl.PeakID])
		if len(climbers) == 0 {
			continue
		}

		peak, ok := in.Topology.PeakByID(tpl.PeakID)
		if !ok {
			continue
		}

		var names []string
		for _, m := range climbers {
			names = append(names, m.Name)
		}

		tasks = append(tasks, model.ClimbTask{
			PeakID:       peak.ID,
			PeakName:     peak.Name,
			ClimberNames: names,
			Status:       model.TaskStatusPending,
		})
	}

	return tasks
}

// attachLegWatches встраивает вахтенную ротацию в достаточно длинные
// участки. Доступный экипаж делится на две группы по чётности позиции
// в списке, а не по ролям
func attachLegWatches(in Input, legs []model.Leg) {
	if in.WatchLengthHours <= 0 {
		return
	}

	byID := make(map[string]model.CrewMember, len(in.Crew))
	for _, m := range in.Crew {
		byID[m.ID] = m
	}

	for i := range legs {
		leg := &legs[i]
		if leg.DurationHours < MinLegHoursForWatches || len(leg.AvailableIDs) < MinCrewForWatches {
			continue
		}

		watchCrew := make([]model.CrewMember, 0, len(leg.AvailableIDs))
		for idx, id := range leg.AvailableIDs {
			m, ok := byID[id]
			if !ok {
				continue
			}
			if idx%2 == 0 {
				m.Group = model.WatchGroupA
			} else {
				m.Group = model.WatchGroupB
			}
			watchCrew = append(watchCrew, m)
		}

		leg.WatchBlocks = generateBlocks(in.WatchLengthHours, leg.StartTime, leg.DurationHours, watchCrew, model.WatchGroupA)
	}
}

// resolveMembers находит участников по id, отбрасывая неизвестные
func resolveMembers(crew []model.CrewMember, ids []string) []model.CrewMember {
	var members []model.CrewMember
	for _, id := range ids {
		for _, m := range crew {
			if m.ID == id {
				members = append(members, m)
				break
			}
		}
	}
	return members
}

// complementIDs возвращает id экипажа, не входящего в climbers
func complementIDs(crew, climbers []model.CrewMember) []string {
	onPeak := make(map[string]bool, len(climbers))
	for _, m := range climbers {
		onPeak[m.ID] = true
	}

	var ids []string
	for _, m := range crew {
		if !onPeak[m.ID] {
			ids = append(ids, m.ID)
		}
	}
	return ids
}

func memberIDs(members []model.CrewMember) []string {
	var ids []string
	for _, m := range members {
		ids = append(ids, m.ID)
	}
	return ids
}
