package race

import (
	"testing"
	"time"

	"github.com/Freeeeeet/regatta_bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRaceSchedule_LegChaining(t *testing.T) {
	topo := FourPeaks()
	crew, assignments := fourPeaksCrew()
	start := time.Date(2025, 1, 18, 8, 0, 0, 0, time.UTC)

	out := BuildRaceSchedule(Input{
		Topology:         topo,
		RaceStart:        start,
		Crew:             crew,
		Assignments:      assignments,
		WatchLengthHours: 3,
	})

	require.Len(t, out.Legs, 5)
	assert.Equal(t, start, out.Legs[0].StartTime)

	// Каждый участок начинается после предыдущего плюс восхождение
	for i := 1; i < len(out.Legs); i++ {
		prev := out.Legs[i-1]
		expected := prev.EndTime
		if prev.PeakID != "" {
			peak, ok := topo.PeakByID(prev.PeakID)
			require.True(t, ok)
			expected = expected.Add(time.Duration(peak.ClimbHours * float64(time.Hour)))
		}
		assert.Equal(t, expected, out.Legs[i].StartTime, "участок %d", out.Legs[i].Number)
	}
}

func TestBuildRaceSchedule_ActivitiesAnchoredToLegEnd(t *testing.T) {
	topo := FourPeaks()
	crew, assignments := fourPeaksCrew()
	start := time.Date(2025, 1, 18, 8, 0, 0, 0, time.UTC)

	out := BuildRaceSchedule(Input{
		Topology:         topo,
		RaceStart:        start,
		Crew:             crew,
		Assignments:      assignments,
		WatchLengthHours: 3,
	})

	require.Len(t, out.Activities, 4)

	legByNumber := make(map[int]model.Leg)
	for _, leg := range out.Legs {
		legByNumber[leg.Number] = leg
	}

	for _, a := range out.Activities {
		leg, ok := legByNumber[a.AfterLeg]
		require.True(t, ok)
		assert.Equal(t, leg.EndTime, a.StartTime, "восхождение %s", a.PeakName)
		assert.Equal(t, a.StartTime.Add(time.Duration(a.DurationHours*float64(time.Hour))), a.EndTime)
	}
}

func TestBuildRaceSchedule_BoatStatusDuringClimbs(t *testing.T) {
	topo := FourPeaks()
	crew, assignments := fourPeaksCrew()

	out := BuildRaceSchedule(Input{
		Topology:         topo,
		RaceStart:        time.Date(2025, 1, 18, 8, 0, 0, 0, time.UTC),
		Crew:             crew,
		Assignments:      assignments,
		WatchLengthHours: 3,
	})

	statuses := make(map[string]model.BoatStatus)
	for _, a := range out.Activities {
		statuses[a.PeakID] = a.BoatStatus
	}

	// Во время Mt Stenhouse лодка перегоняется, на остальных - дрейф
	assert.Equal(t, model.BoatStatusRepositioning, statuses[PeakStenhouse])
	assert.Equal(t, model.BoatStatusHoveTo, statuses[PeakVioletHill])
	assert.Equal(t, model.BoatStatusHoveTo, statuses[PeakMaOnShan])
	assert.Equal(t, model.BoatStatusHoveTo, statuses[PeakLantau])
}

func TestBuildRaceSchedule_ClimberComplementOnBoat(t *testing.T) {
	topo := FourPeaks()
	crew, assignments := fourPeaksCrew()

	out := BuildRaceSchedule(Input{
		Topology:    topo,
		RaceStart:   time.Date(2025, 1, 18, 8, 0, 0, 0, time.UTC),
		Crew:        crew,
		Assignments: assignments,
	})

	for _, a := range out.Activities {
		assert.Len(t, a.ClimberIDs, len(assignments[a.PeakID]))
		assert.Equal(t, len(crew), len(a.ClimberIDs)+len(a.BoatCrewIDs), "восхождение %s", a.PeakName)
		for _, climberID := range a.ClimberIDs {
			assert.NotContains(t, a.BoatCrewIDs, climberID)
		}
	}
}

func TestBuildRaceSchedule_TasksPendingWithResolvedNames(t *testing.T) {
	topo := FourPeaks()
	crew, assignments := fourPeaksCrew()
	// Нераспознанный id должен быть отброшен без ошибки
	assignments[PeakLantau] = append(assignments[PeakLantau], "ghost")

	out := BuildRaceSchedule(Input{
		Topology:    topo,
		RaceStart:   time.Date(2025, 1, 18, 8, 0, 0, 0, time.UTC),
		Crew:        crew,
		Assignments: assignments,
	})

	require.Len(t, out.Tasks, 4)
	for _, task := range out.Tasks {
		assert.Equal(t, model.TaskStatusPending, task.Status)
		assert.NotContains(t, task.ClimberNames, "ghost")
	}

	var lantau model.ClimbTask
	for _, task := range out.Tasks {
		if task.PeakID == PeakLantau {
			lantau = task
		}
	}
	assert.Equal(t, []string{"Альпинист-1"}, lantau.ClimberNames)
}

func TestBuildRaceSchedule_NoClimbersNoActivity(t *testing.T) {
	topo := FourPeaks()
	crew, _ := fourPeaksCrew()

	out := BuildRaceSchedule(Input{
		Topology:    topo,
		RaceStart:   time.Date(2025, 1, 18, 8, 0, 0, 0, time.UTC),
		Crew:        crew,
		Assignments: map[string][]string{},
	})

	assert.Empty(t, out.Activities)
	assert.Empty(t, out.Tasks)
	// Участки генерируются в любом случае
	assert.Len(t, out.Legs, 5)
}

func TestBuildRaceSchedule_DurationOverrides(t *testing.T) {
	topo := FourPeaks()
	crew, assignments := fourPeaksCrew()

	out := BuildRaceSchedule(Input{
		Topology:         topo,
		RaceStart:        time.Date(2025, 1, 18, 8, 0, 0, 0, time.UTC),
		DurationOverride: map[int]float64{1: 2.5, 4: 7},
		Crew:             crew,
		Assignments:      assignments,
	})

	assert.InDelta(t, 2.5, out.Legs[0].DurationHours, 1e-9)
	assert.InDelta(t, 7.0, out.Legs[3].DurationHours, 1e-9)
	// Остальные участки из шаблона
	assert.InDelta(t, 5.0, out.Legs[1].DurationHours, 1e-9)
}

func TestBuildRaceSchedule_TotalHours(t *testing.T) {
	topo := FourPeaks()
	crew, assignments := fourPeaksCrew()

	out := BuildRaceSchedule(Input{
		Topology:         topo,
		RaceStart:        time.Date(2025, 1, 18, 8, 0, 0, 0, time.UTC),
		Crew:             crew,
		Assignments:      assignments,
		WatchLengthHours: 3,
	})

	legSum := 0.0
	for _, leg := range out.Legs {
		legSum += leg.DurationHours
	}
	actSum := 0.0
	for _, a := range out.Activities {
		actSum += a.DurationHours
	}

	assert.InDelta(t, legSum+actSum, out.TotalHours, 1e-9)
}

func TestBuildRaceSchedule_WithinLegWatches(t *testing.T) {
	topo := FourPeaks()
	crew, assignments := fourPeaksCrew()
	start := time.Date(2025, 1, 18, 8, 0, 0, 0, time.UTC)

	out := BuildRaceSchedule(Input{
		Topology:         topo,
		RaceStart:        start,
		Crew:             crew,
		Assignments:      assignments,
		WatchLengthHours: 2,
	})

	for _, leg := range out.Legs {
		if leg.DurationHours < MinLegHoursForWatches || len(leg.AvailableIDs) < MinCrewForWatches {
			assert.Empty(t, leg.WatchBlocks, "участок %d", leg.Number)
			continue
		}

		require.NotEmpty(t, leg.WatchBlocks, "участок %d", leg.Number)
		assert.Equal(t, leg.StartTime, leg.WatchBlocks[0].StartTime)
		assert.Equal(t, leg.EndTime, leg.WatchBlocks[len(leg.WatchBlocks)-1].EndTime)
		assert.Equal(t, model.WatchGroupA, leg.WatchBlocks[0].Group)

		sum := 0.0
		for _, b := range leg.WatchBlocks {
			sum += b.DurationHours
		}
		assert.InDelta(t, leg.DurationHours, sum, 1e-9)
	}
}

func TestBuildRaceSchedule_ShortLegsWithoutPeaks(t *testing.T) {
	// Пять участков по 3 часа без вершин: финиш ровно через 15 часов,
	// внутренние вахты нигде не появляются (3ч < порога 4ч)
	topo := &Topology{
		Peaks: map[string]Peak{},
		Legs: []LegTemplate{
			{Number: 1, Name: "Участок 1", DefaultHours: 3},
			{Number: 2, Name: "Участок 2", DefaultHours: 3},
			{Number: 3, Name: "Участок 3", DefaultHours: 3},
			{Number: 4, Name: "Участок 4", DefaultHours: 3},
			{Number: 5, Name: "Участок 5", DefaultHours: 3},
		},
	}
	crew, _ := fourPeaksCrew()
	start := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	out := BuildRaceSchedule(Input{
		Topology:         topo,
		RaceStart:        start,
		Crew:             crew,
		Assignments:      map[string][]string{},
		WatchLengthHours: 3,
	})

	require.Len(t, out.Legs, 5)
	assert.Equal(t, start.Add(15*time.Hour), out.Legs[4].EndTime)
	for _, leg := range out.Legs {
		assert.Empty(t, leg.WatchBlocks, "участок %d", leg.Number)
	}
}

func TestBuildRaceSchedule_Idempotent(t *testing.T) {
	topo := FourPeaks()
	crew, assignments := fourPeaksCrew()

	in := Input{
		Topology:         topo,
		RaceStart:        time.Date(2025, 1, 18, 8, 0, 0, 0, time.UTC),
		Crew:             crew,
		Assignments:      assignments,
		WatchLengthHours: 3,
	}

	assert.Equal(t, BuildRaceSchedule(in), BuildRaceSchedule(in))
}
