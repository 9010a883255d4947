package race

import "github.com/Freeeeeet/regatta_bot/internal/model"

// CrewAvailableForLeg возвращает экипаж, доступный на участке legNumber.
// Матросы доступны всегда; альпинисты исключаются по флагам шаблона
// участка: отдых перед назначенным восхождением и восстановление после
func CrewAvailableForLeg(topo *Topology, legNumber int, crew []model.CrewMember, assignments map[string][]string) []model.CrewMember {
	tpl := legTemplate(topo, legNumber)
	if tpl == nil {
		return crew
	}

	precedingPeak := topo.PrecedingPeakID(legNumber)
	followingPeak := tpl.PeakID

	var available []model.CrewMember
	for _, m := range crew {
		if !m.IsClimber() {
			available = append(available, m)
			continue
		}

		if tpl.ExcludeFollowingClimbers && followingPeak != "" && assignedTo(assignments, followingPeak, m.ID) {
			continue
		}
		if tpl.ExcludePrecedingClimbers && precedingPeak != "" && assignedTo(assignments, precedingPeak, m.ID) {
			continue
		}

		available = append(available, m)
	}

	return available
}

func legTemplate(topo *Topology, legNumber int) *LegTemplate {
	for i := range topo.Legs {
		if topo.Legs[i].Number == legNumber {
			return &topo.Legs[i]
		}
	}
	return nil
}

// assignedTo проверяет назначение участника на вершину по карте назначений
func assignedTo(assignments map[string][]string, peakID, memberID string) bool {
	for _, id := range assignments[peakID] {
		if id == memberID {
			return true
		}
	}
	return false
}
