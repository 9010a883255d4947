package race

import "github.com/Freeeeeet/regatta_bot/internal/model"

// Peak вершина из каталога гонки
type Peak struct {
	ID         string
	Name       string
	Location   string
	ClimbHours float64 // оценка длительности восхождения
}

// LegTemplate шаблон участка гонки
// Правила доступности экипажа заданы данными, а не ветками кода:
// флаги исключений и статус лодки во время восхождения лежат в таблице
type LegTemplate struct {
	Number        int
	Name          string
	StartLocation string
	EndLocation   string
	DefaultHours  float64
	PeakID        string // вершина после участка, "" если нет

	// Кто недоступен на участке
	ExcludePrecedingClimbers bool // восходившие на вершину перед участком (отдых после)
	ExcludeFollowingClimbers bool // назначенные на вершину после участка (отдых перед)

	// Статус лодки во время восхождения после участка
	BoatStatusDuringClimb model.BoatStatus
}

// Topology топология гонки: упорядоченные участки и каталог вершин
type Topology struct {
	Legs  []LegTemplate
	Peaks map[string]Peak
}

// PeakByID возвращает вершину из каталога
func (t *Topology) PeakByID(id string) (Peak, bool) {
	p, ok := t.Peaks[id]
	return p, ok
}

// PrecedingPeakID возвращает вершину, восхождение на которую было
// непосредственно перед участком legNumber
func (t *Topology) PrecedingPeakID(legNumber int) string {
	for _, leg := range t.Legs {
		if leg.Number == legNumber-1 {
			return leg.PeakID
		}
	}
	return ""
}

// FollowingPeakID возвращает вершину сразу после участка legNumber
func (t *Topology) FollowingPeakID(legNumber int) string {
	for _, leg := range t.Legs {
		if leg.Number == legNumber {
			return leg.PeakID
		}
	}
	return ""
}

// Идентификаторы вершин гонки Four Peaks
const (
	PeakVioletHill = "violet_hill"
	PeakMaOnShan   = "ma_on_shan"
	PeakLantau     = "lantau_peak"
	PeakStenhouse  = "mt_stenhouse"
)

// FourPeaks возвращает топологию гонки Four Peaks: пять участков,
// четыре вершины. Ma On Shan - "pickup" восхождение (экипаж забирают
// после участка 3), на Mt Stenhouse лодка перегоняется к точке подбора,
// на остальных вершинах ложится в дрейф
func FourPeaks() *Topology {
	return &Topology{
		Peaks: map[string]Peak{
			PeakVioletHill: {ID: PeakVioletHill, Name: "Violet Hill", Location: "Repulse Bay", ClimbHours: 2},
			PeakMaOnShan:   {ID: PeakMaOnShan, Name: "Ma On Shan", Location: "Three Fathoms Cove", ClimbHours: 3},
			PeakLantau:     {ID: PeakLantau, Name: "Lantau Peak", Location: "Silvermine Bay", ClimbHours: 4},
			PeakStenhouse:  {ID: PeakStenhouse, Name: "Mt Stenhouse", Location: "Lamma Island", ClimbHours: 3},
		},
		Legs: []LegTemplate{
			{
				Number: 1, Name: "Старт - Repulse Bay",
				StartLocation: "Shelter Cove", EndLocation: "Repulse Bay",
				DefaultHours: 3, PeakID: PeakVioletHill,
				ExcludeFollowingClimbers: true, // назначенные на Violet Hill отдыхают перед первым восхождением
				BoatStatusDuringClimb:    model.BoatStatusHoveTo,
			},
			{
				Number: 2, Name: "Repulse Bay - Three Fathoms Cove",
				StartLocation: "Repulse Bay", EndLocation: "Three Fathoms Cove",
				DefaultHours: 5, PeakID: PeakMaOnShan,
				BoatStatusDuringClimb: model.BoatStatusHoveTo,
			},
			{
				Number: 3, Name: "Three Fathoms Cove - Silvermine Bay",
				StartLocation: "Three Fathoms Cove", EndLocation: "Silvermine Bay",
				DefaultHours: 6, PeakID: PeakLantau,
				ExcludePrecedingClimbers: true, // восходившие на Ma On Shan восстанавливаются после pickup
				BoatStatusDuringClimb:    model.BoatStatusHoveTo,
			},
			{
				Number: 4, Name: "Silvermine Bay - Lamma",
				StartLocation: "Silvermine Bay", EndLocation: "Lamma Island",
				DefaultHours: 4, PeakID: PeakStenhouse,
				ExcludePrecedingClimbers: true, // длинный восстановительный участок
				ExcludeFollowingClimbers: true,
				BoatStatusDuringClimb:    model.BoatStatusRepositioning, // перегон к точке подбора на Lamma
			},
			{
				Number: 5, Name: "Lamma - Финиш",
				StartLocation: "Lamma Island", EndLocation: "Kellett Island",
				DefaultHours: 4,
				// Без исключений: отдых на последнем участке дают внутренние вахты
			},
		},
	}
}
