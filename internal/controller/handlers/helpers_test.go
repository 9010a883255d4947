package handlers

import (
	"testing"
	"time"

	"github.com/Freeeeeet/regatta_bot/internal/model"
	"github.com/Freeeeeet/regatta_bot/internal/race"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStartTime(t *testing.T) {
	parsed, err := parseStartTime("07.01.2025 10:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 7, 10, 0, 0, 0, time.Local), parsed)

	_, err = parseStartTime("2025-01-07 10:00")
	assert.Error(t, err)

	_, err = parseStartTime("завтра")
	assert.Error(t, err)
}

func TestParseHours(t *testing.T) {
	hours, err := parseHours("12.5")
	require.NoError(t, err)
	assert.Equal(t, 12.5, hours)

	// Запятая как десятичный разделитель тоже принимается
	hours, err = parseHours("4,5")
	require.NoError(t, err)
	assert.Equal(t, 4.5, hours)

	_, err = parseHours("десять")
	assert.Error(t, err)
}

func TestParseCrewNames(t *testing.T) {
	names := parseCrewNames("Анна, Борис ,  Вера")
	assert.Equal(t, []string{"Анна", "Борис", "Вера"}, names)

	assert.Empty(t, parseCrewNames("  , ,"))
}

func TestParseRaceCrewLines(t *testing.T) {
	topo := race.FourPeaks()

	crew, err := parseRaceCrewLines(
		"Анна - матрос\n"+
			"Борис - альпинист - violet_hill, lantau_peak\n"+
			"Вера - оба - ma_on_shan",
		topo,
	)
	require.NoError(t, err)
	require.Len(t, crew, 3)

	assert.Equal(t, "Анна", crew[0].Name)
	assert.Equal(t, model.CrewRoleSailor, crew[0].Role)
	assert.Empty(t, crew[0].PeakIDs)

	assert.Equal(t, model.CrewRoleClimber, crew[1].Role)
	assert.Equal(t, []string{race.PeakVioletHill, race.PeakLantau}, crew[1].PeakIDs)

	assert.Equal(t, model.CrewRoleBoth, crew[2].Role)

	// Вахтенные группы чередуются по позиции
	assert.Equal(t, model.WatchGroupA, crew[0].Group)
	assert.Equal(t, model.WatchGroupB, crew[1].Group)
	assert.Equal(t, model.WatchGroupA, crew[2].Group)

	// У каждого участника свой id
	assert.NotEqual(t, crew[0].ID, crew[1].ID)
}

func TestParseRaceCrewLinesErrors(t *testing.T) {
	topo := race.FourPeaks()

	_, err := parseRaceCrewLines("Анна - штурман", topo)
	assert.ErrorContains(t, err, "неизвестная роль")

	_, err = parseRaceCrewLines("Борис - альпинист - everest", topo)
	assert.ErrorContains(t, err, "неизвестная вершина")

	// Матрос не может иметь вершины
	_, err = parseRaceCrewLines("Анна - матрос - violet_hill", topo)
	assert.Error(t, err)

	// Альпинист без вершин
	_, err = parseRaceCrewLines("Борис - альпинист", topo)
	assert.Error(t, err)

	_, err = parseRaceCrewLines("   \n  ", topo)
	assert.ErrorContains(t, err, "экипаж пуст")
}

func TestBuildAssignments(t *testing.T) {
	crew := []model.CrewMember{
		{ID: "c1", Role: model.CrewRoleClimber, PeakIDs: []string{race.PeakVioletHill, race.PeakLantau}},
		{ID: "c2", Role: model.CrewRoleBoth, PeakIDs: []string{race.PeakVioletHill}},
		{ID: "s1", Role: model.CrewRoleSailor},
	}

	assignments := buildAssignments(crew)

	assert.Equal(t, []string{"c1", "c2"}, assignments[race.PeakVioletHill])
	assert.Equal(t, []string{"c1"}, assignments[race.PeakLantau])
	assert.NotContains(t, assignments, race.PeakMaOnShan)
}

func TestParseOverrides(t *testing.T) {
	topo := race.FourPeaks()

	overrides, err := parseOverrides("2=4.5, 5=6", topo)
	require.NoError(t, err)
	assert.Equal(t, map[int]float64{2: 4.5, 5: 6}, overrides)

	// Прочерк и пустая строка означают "без переопределений"
	overrides, err = parseOverrides("-", topo)
	require.NoError(t, err)
	assert.Empty(t, overrides)

	_, err = parseOverrides("9=3", topo)
	assert.ErrorContains(t, err, "нет участка")

	_, err = parseOverrides("2=-1", topo)
	assert.Error(t, err)

	_, err = parseOverrides("2:4", topo)
	assert.Error(t, err)
}
