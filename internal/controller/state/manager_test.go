package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestManagerStateTransitions(t *testing.T) {
	sm := NewManager()

	assert.Equal(t, StateNone, sm.GetState(1))

	sm.SetState(1, StateNewWatchName)
	assert.Equal(t, StateNewWatchName, sm.GetState(1))

	// Состояния изолированы по пользователям
	assert.Equal(t, StateNone, sm.GetState(2))

	// Установка StateNone удаляет запись вместе с данными
	sm.SetData(1, "race_name", "Four Peaks")
	sm.SetState(1, StateNone)
	assert.Equal(t, StateNone, sm.GetState(1))
	_, ok := sm.GetData(1, "race_name")
	assert.False(t, ok)
}

func TestManagerData(t *testing.T) {
	sm := NewManager()

	sm.SetState(1, StateNewRaceCrew)
	sm.SetData(1, "race_name", "Rolex Fastnet")
	sm.SetData(1, "duration_hours", 48.0)

	assert.Equal(t, "Rolex Fastnet", sm.GetString(1, "race_name"))

	hours, ok := sm.GetData(1, "duration_hours")
	assert.True(t, ok)
	assert.Equal(t, 48.0, hours)

	// GetAllData возвращает копию
	data := sm.GetAllData(1)
	data["race_name"] = "changed"
	assert.Equal(t, "Rolex Fastnet", sm.GetString(1, "race_name"))

	sm.ClearState(1)
	assert.Nil(t, sm.GetAllData(1))
	assert.Equal(t, "", sm.GetString(1, "race_name"))
}
