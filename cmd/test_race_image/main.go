package main

import (
	"fmt"
	"os"
	"time"

	"github.com/Freeeeeet/regatta_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/regatta_bot/internal/model"
	"github.com/Freeeeeet/regatta_bot/internal/race"
)

func main() {
	// Тестовое расписание гонки Four Peaks
	start := time.Date(2025, 1, 25, 8, 30, 0, 0, time.Local)

	crew := []model.CrewMember{
		{ID: "s1", Name: "Анна", Group: model.WatchGroupA, Role: model.CrewRoleSailor},
		{ID: "s2", Name: "Борис", Group: model.WatchGroupB, Role: model.CrewRoleSailor},
		{ID: "c1", Name: "Вера", Group: model.WatchGroupA, Role: model.CrewRoleClimber,
			PeakIDs: []string{race.PeakVioletHill, race.PeakLantau}},
		{ID: "c2", Name: "Глеб", Group: model.WatchGroupB, Role: model.CrewRoleBoth,
			PeakIDs: []string{race.PeakMaOnShan, race.PeakStenhouse}},
	}

	assignments := map[string][]string{
		race.PeakVioletHill: {"c1"},
		race.PeakMaOnShan:   {"c2"},
		race.PeakLantau:     {"c1"},
		race.PeakStenhouse:  {"c2"},
	}

	out := race.BuildRaceSchedule(race.Input{
		Topology:         race.FourPeaks(),
		RaceStart:        start,
		Crew:             crew,
		Assignments:      assignments,
		WatchLengthHours: 4,
	})

	schedule := &model.RaceSchedule{
		ID:         "test",
		RaceName:   "Four Peaks Race 2025",
		RaceStart:  start,
		Crew:       crew,
		Legs:       out.Legs,
		Activities: out.Activities,
		TotalHours: out.TotalHours,
	}

	imageData, err := common.GenerateRaceImage(schedule)
	if err != nil {
		fmt.Printf("❌ Ошибка генерации: %v\n", err)
		os.Exit(1)
	}

	filename := "race_test.png"
	if err := os.WriteFile(filename, imageData, 0644); err != nil {
		fmt.Printf("❌ Ошибка записи файла: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Картинка сохранена: %s (%d байт)\n", filename, len(imageData))
	fmt.Printf("   Участков: %d, восхождений: %d, всего часов: %.1f\n",
		len(out.Legs), len(out.Activities), out.TotalHours)
}
