package race

import (
	"testing"

	"github.com/Freeeeeet/regatta_bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fourPeaksCrew() ([]model.CrewMember, map[string][]string) {
	crew := []model.CrewMember{
		{ID: "s1", Name: "Шкипер", Group: model.WatchGroupA, Role: model.CrewRoleSailor},
		{ID: "s2", Name: "Рулевой", Group: model.WatchGroupB, Role: model.CrewRoleSailor},
		{ID: "c1", Name: "Альпинист-1", Group: model.WatchGroupA, Role: model.CrewRoleClimber, PeakIDs: []string{PeakVioletHill, PeakLantau}},
		{ID: "c2", Name: "Альпинист-2", Group: model.WatchGroupB, Role: model.CrewRoleClimber, PeakIDs: []string{PeakMaOnShan, PeakStenhouse}},
		{ID: "c3", Name: "Универсал", Group: model.WatchGroupA, Role: model.CrewRoleBoth, PeakIDs: []string{PeakVioletHill}},
	}
	assignments := map[string][]string{
		PeakVioletHill: {"c1", "c3"},
		PeakMaOnShan:   {"c2"},
		PeakLantau:     {"c1"},
		PeakStenhouse:  {"c2"},
	}
	return crew, assignments
}

func availableIDs(members []model.CrewMember) []string {
	var ids []string
	for _, m := range members {
		ids = append(ids, m.ID)
	}
	return ids
}

func TestCrewAvailableForLeg_SailorsAlwaysAvailable(t *testing.T) {
	topo := FourPeaks()
	crew, assignments := fourPeaksCrew()

	for leg := 1; leg <= 5; leg++ {
		ids := availableIDs(CrewAvailableForLeg(topo, leg, crew, assignments))
		assert.Contains(t, ids, "s1", "участок %d", leg)
		assert.Contains(t, ids, "s2", "участок %d", leg)
	}
}

func TestCrewAvailableForLeg_Leg1ExcludesFirstClimbers(t *testing.T) {
	topo := FourPeaks()
	crew, assignments := fourPeaksCrew()

	ids := availableIDs(CrewAvailableForLeg(topo, 1, crew, assignments))

	// Назначенные на Violet Hill отдыхают перед восхождением
	assert.NotContains(t, ids, "c1")
	assert.NotContains(t, ids, "c3")
	assert.Contains(t, ids, "c2")
}

func TestCrewAvailableForLeg_Leg2NoExclusions(t *testing.T) {
	topo := FourPeaks()
	crew, assignments := fourPeaksCrew()

	ids := availableIDs(CrewAvailableForLeg(topo, 2, crew, assignments))

	require.Len(t, ids, len(crew))
}

func TestCrewAvailableForLeg_Leg3ExcludesPickupClimbers(t *testing.T) {
	topo := FourPeaks()
	crew, assignments := fourPeaksCrew()

	ids := availableIDs(CrewAvailableForLeg(topo, 3, crew, assignments))

	// После pickup на Ma On Shan альпинист восстанавливается
	assert.NotContains(t, ids, "c2")
	assert.Contains(t, ids, "c1")
	assert.Contains(t, ids, "c3")
}

func TestCrewAvailableForLeg_Leg4ExcludesBothSides(t *testing.T) {
	topo := FourPeaks()
	crew, assignments := fourPeaksCrew()

	ids := availableIDs(CrewAvailableForLeg(topo, 4, crew, assignments))

	// Восходившие на Lantau Peak и идущие на Mt Stenhouse недоступны
	assert.NotContains(t, ids, "c1")
	assert.NotContains(t, ids, "c2")
	assert.Contains(t, ids, "c3")
}

func TestCrewAvailableForLeg_Leg5NoExclusions(t *testing.T) {
	topo := FourPeaks()
	crew, assignments := fourPeaksCrew()

	ids := availableIDs(CrewAvailableForLeg(topo, 5, crew, assignments))

	require.Len(t, ids, len(crew))
}

func TestCrewAvailableForLeg_UnknownLegReturnsEveryone(t *testing.T) {
	topo := FourPeaks()
	crew, assignments := fourPeaksCrew()

	ids := availableIDs(CrewAvailableForLeg(topo, 42, crew, assignments))

	assert.Len(t, ids, len(crew))
}
