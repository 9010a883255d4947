package state

// UserState представляет текущий шаг пользователя в диалоге
type UserState string

const (
	StateNone UserState = "" // Нет активного состояния

	// Шаги создания вахтенного расписания (/newwatch)
	StateNewWatchName     UserState = "new_watch_name"
	StateNewWatchStart    UserState = "new_watch_start"
	StateNewWatchDuration UserState = "new_watch_duration"
	StateNewWatchCrewA    UserState = "new_watch_crew_a"
	StateNewWatchCrewB    UserState = "new_watch_crew_b"

	// Шаги создания расписания гонки (/newrace)
	StateNewRaceName      UserState = "new_race_name"
	StateNewRaceStart     UserState = "new_race_start"
	StateNewRaceCrew      UserState = "new_race_crew"
	StateNewRaceOverrides UserState = "new_race_overrides"
	StateNewRaceWatchLen  UserState = "new_race_watch_len"
)

// UserData хранит временные данные пользователя во время диалога
type UserData struct {
	State UserState
	Data  map[string]interface{}
}
