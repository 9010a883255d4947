package race

import (
	"testing"
	"time"

	"github.com/Freeeeeet/regatta_bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCrew() []model.CrewMember {
	return []model.CrewMember{
		{ID: "1", Name: "Аня", Group: model.WatchGroupA, Role: model.CrewRoleSailor},
		{ID: "2", Name: "Борис", Group: model.WatchGroupA, Role: model.CrewRoleSailor},
		{ID: "3", Name: "Вера", Group: model.WatchGroupB, Role: model.CrewRoleSailor},
		{ID: "4", Name: "Глеб", Group: model.WatchGroupB, Role: model.CrewRoleSailor},
	}
}

func TestGenerateWatchBlocks_TruncatedFinalBlock(t *testing.T) {
	start := time.Date(2025, 1, 7, 10, 0, 0, 0, time.UTC)

	blocks := GenerateWatchBlocks(model.WatchSystem4x4, start, 10, testCrew(), model.WatchGroupA)

	require.Len(t, blocks, 3)

	assert.Equal(t, start, blocks[0].StartTime)
	assert.Equal(t, start.Add(4*time.Hour), blocks[0].EndTime)
	assert.Equal(t, model.WatchGroupA, blocks[0].Group)

	assert.Equal(t, start.Add(4*time.Hour), blocks[1].StartTime)
	assert.Equal(t, start.Add(8*time.Hour), blocks[1].EndTime)
	assert.Equal(t, model.WatchGroupB, blocks[1].Group)

	// Последний блок усечён до 2 часов
	assert.Equal(t, start.Add(8*time.Hour), blocks[2].StartTime)
	assert.Equal(t, start.Add(10*time.Hour), blocks[2].EndTime)
	assert.Equal(t, model.WatchGroupA, blocks[2].Group)
	assert.InDelta(t, 2.0, blocks[2].DurationHours, 1e-9)
}

func TestGenerateWatchBlocks_CoversEstimatedDuration(t *testing.T) {
	start := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	for _, hours := range []float64{0.5, 3, 7.5, 12, 48} {
		blocks := GenerateWatchBlocks(model.WatchSystem3x3, start, hours, testCrew(), model.WatchGroupB)
		require.NotEmpty(t, blocks)

		sum := 0.0
		for _, b := range blocks {
			sum += b.DurationHours
		}
		assert.InDelta(t, hours, sum, 1e-9)

		assert.Equal(t, start, blocks[0].StartTime)
		assert.Equal(t, start.Add(time.Duration(hours*float64(time.Hour))), blocks[len(blocks)-1].EndTime)
	}
}

func TestGenerateWatchBlocks_GroupsAlternate(t *testing.T) {
	start := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	blocks := GenerateWatchBlocks(model.WatchSystem4x4, start, 26, testCrew(), model.WatchGroupB)

	require.NotEmpty(t, blocks)
	assert.Equal(t, model.WatchGroupB, blocks[0].Group)

	for i := 1; i < len(blocks); i++ {
		assert.NotEqual(t, blocks[i-1].Group, blocks[i].Group, "блоки %d и %d", i-1, i)
		assert.Equal(t, blocks[i-1].EndTime, blocks[i].StartTime, "блоки должны быть непрерывны")
	}
}

func TestGenerateWatchBlocks_ExactMultipleHasNoShortBlock(t *testing.T) {
	start := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	blocks := GenerateWatchBlocks(model.WatchSystem4x4, start, 12, testCrew(), model.WatchGroupA)

	require.Len(t, blocks, 3)
	for _, b := range blocks {
		assert.InDelta(t, 4.0, b.DurationHours, 1e-9)
	}
}

func TestGenerateWatchBlocks_ZeroDuration(t *testing.T) {
	start := time.Now()

	assert.Empty(t, GenerateWatchBlocks(model.WatchSystem4x4, start, 0, testCrew(), model.WatchGroupA))
	assert.Empty(t, GenerateWatchBlocks(model.WatchSystem4x4, start, -3, testCrew(), model.WatchGroupA))
}

func TestGenerateWatchBlocks_Idempotent(t *testing.T) {
	start := time.Date(2025, 6, 1, 6, 0, 0, 0, time.UTC)

	first := GenerateWatchBlocks(model.WatchSystem3x3, start, 11, testCrew(), model.WatchGroupA)
	second := GenerateWatchBlocks(model.WatchSystem3x3, start, 11, testCrew(), model.WatchGroupA)

	assert.Equal(t, first, second)
}

func TestGenerateWatchBlocks_CrewNamesFromActiveGroup(t *testing.T) {
	start := time.Date(2025, 1, 7, 10, 0, 0, 0, time.UTC)

	blocks := GenerateWatchBlocks(model.WatchSystem4x4, start, 8, testCrew(), model.WatchGroupA)

	require.Len(t, blocks, 2)
	assert.Equal(t, []string{"Аня", "Борис"}, blocks[0].CrewNames)
	assert.Equal(t, []string{"Вера", "Глеб"}, blocks[1].CrewNames)
}

func TestValidateCrewAssignment(t *testing.T) {
	t.Run("пустой экипаж", func(t *testing.T) {
		result := ValidateCrewAssignment(nil)
		assert.False(t, result.Valid)
		assert.Equal(t, "экипаж не задан", result.Error)
	})

	t.Run("вахта B пустая", func(t *testing.T) {
		crew := []model.CrewMember{
			{ID: "1", Name: "Аня", Group: model.WatchGroupA},
			{ID: "2", Name: "Борис", Group: model.WatchGroupA},
		}
		result := ValidateCrewAssignment(crew)
		assert.False(t, result.Valid)
		assert.Equal(t, "вахта B пустая", result.Error)
	})

	t.Run("вахта A пустая", func(t *testing.T) {
		crew := []model.CrewMember{
			{ID: "1", Name: "Вера", Group: model.WatchGroupB},
		}
		result := ValidateCrewAssignment(crew)
		assert.False(t, result.Valid)
		assert.Equal(t, "вахта A пустая", result.Error)
	})

	t.Run("обе вахты укомплектованы", func(t *testing.T) {
		result := ValidateCrewAssignment(testCrew())
		assert.True(t, result.Valid)
		assert.Empty(t, result.Error)
	})
}
