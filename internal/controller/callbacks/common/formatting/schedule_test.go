package formatting

import (
	"strings"
	"testing"
	"time"

	"github.com/Freeeeeet/regatta_bot/internal/model"
	"github.com/Freeeeeet/regatta_bot/internal/race"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatHours(t *testing.T) {
	assert.Equal(t, "4 ч", FormatHours(4))
	assert.Equal(t, "2 ч 30 мин", FormatHours(2.5))
	assert.Equal(t, "45 мин", FormatHours(0.75))
}

func TestFormatWatchScheduleShare(t *testing.T) {
	start := time.Date(2025, 1, 7, 10, 0, 0, 0, time.UTC)
	crew := []model.CrewMember{
		{ID: "1", Name: "Аня", Group: model.WatchGroupA, Role: model.CrewRoleSailor},
		{ID: "2", Name: "Вера", Group: model.WatchGroupB, Role: model.CrewRoleSailor},
	}

	s := &model.WatchSchedule{
		RaceName:      "Ночная гонка",
		System:        model.WatchSystem4x4,
		RaceStart:     start,
		DurationHours: 10,
		StartingGroup: model.WatchGroupA,
		Crew:          crew,
		Blocks:        race.GenerateWatchBlocks(model.WatchSystem4x4, start, 10, crew, model.WatchGroupA),
		Notes:         "Стартуем от яхт-клуба",
	}

	text := FormatWatchScheduleShare(s, "")

	assert.Contains(t, text, "Ночная гонка")
	assert.Contains(t, text, "4 через 4")
	assert.Contains(t, text, "Вахта A: Аня")
	assert.Contains(t, text, "Вахта B: Вера")
	assert.Contains(t, text, "Стартуем от яхт-клуба")
	// Три блока: 4 + 4 + усечённый 2
	assert.Equal(t, 3, strings.Count(text, "— вахта"))
}

func TestFormatRaceScheduleShare_ChecklistPerClimb(t *testing.T) {
	topo := race.FourPeaks()
	crew := []model.CrewMember{
		{ID: "s1", Name: "Шкипер", Group: model.WatchGroupA, Role: model.CrewRoleSailor},
		{ID: "s2", Name: "Рулевой", Group: model.WatchGroupB, Role: model.CrewRoleSailor},
		{ID: "c1", Name: "Альпинист", Group: model.WatchGroupA, Role: model.CrewRoleClimber, PeakIDs: []string{race.PeakVioletHill}},
	}
	assignments := map[string][]string{race.PeakVioletHill: {"c1"}}

	out := race.BuildRaceSchedule(race.Input{
		Topology:         topo,
		RaceStart:        time.Date(2025, 1, 18, 8, 0, 0, 0, time.UTC),
		Crew:             crew,
		Assignments:      assignments,
		WatchLengthHours: 3,
	})

	s := &model.RaceSchedule{
		RaceName:   "Four Peaks",
		RaceStart:  time.Date(2025, 1, 18, 8, 0, 0, 0, time.UTC),
		Crew:       crew,
		Legs:       out.Legs,
		Activities: out.Activities,
		Tasks:      out.Tasks,
		TotalHours: out.TotalHours,
	}

	text := FormatRaceScheduleShare(s, "")

	require.Contains(t, text, "Four Peaks")
	assert.Contains(t, text, "Участок 1")
	assert.Contains(t, text, "Участок 5")
	assert.Contains(t, text, "Violet Hill")
	assert.Contains(t, text, "Восходят: Альпинист")
	// Одно восхождение - один чек-лист
	assert.Equal(t, 1, strings.Count(text, "Записать время высадки"))
}

func TestFormatTaskInfo(t *testing.T) {
	task := &model.ClimbTask{
		PeakName:     "Lantau Peak",
		ClimberNames: []string{"Альпинист-1", "Универсал"},
		Status:       model.TaskStatusInProgress,
		UpdatedAt:    time.Date(2025, 1, 18, 14, 30, 0, 0, time.UTC),
	}

	text := FormatTaskInfo(task)

	assert.Contains(t, text, "Lantau Peak")
	assert.Contains(t, text, "Альпинист-1, Универсал")
	assert.Contains(t, text, "Восхождение идёт")
}
