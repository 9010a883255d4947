package model

// WatchGroup одна из двух вахтенных групп экипажа
type WatchGroup string

const (
	WatchGroupA WatchGroup = "A"
	WatchGroupB WatchGroup = "B"
)

// Opposite возвращает противоположную вахтенную группу
func (g WatchGroup) Opposite() WatchGroup {
	if g == WatchGroupA {
		return WatchGroupB
	}
	return WatchGroupA
}

// CrewRole роль участника экипажа в гонке
type CrewRole string

const (
	CrewRoleSailor  CrewRole = "sailor"  // Только на лодке
	CrewRoleClimber CrewRole = "climber" // Только восхождения
	CrewRoleBoth    CrewRole = "both"    // И на лодке, и восхождения
)

// CrewMember участник экипажа
// Инвариант: у роли sailor список PeakIDs всегда пустой
type CrewMember struct {
	ID      string     `json:"id"` // uuid
	Name    string     `json:"name"`
	Group   WatchGroup `json:"group"`
	Role    CrewRole   `json:"role"`
	PeakIDs []string   `json:"peak_ids"` // назначенные вершины
}

// IsClimber проверяет, участвует ли член экипажа в восхождениях
func (m *CrewMember) IsClimber() bool {
	return m.Role == CrewRoleClimber || m.Role == CrewRoleBoth
}

// AssignedTo проверяет, назначен ли участник на вершину
func (m *CrewMember) AssignedTo(peakID string) bool {
	for _, id := range m.PeakIDs {
		if id == peakID {
			return true
		}
	}
	return false
}
