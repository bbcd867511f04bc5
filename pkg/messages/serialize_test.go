package messages

import (
	"encoding/json"
	"testing"
	"time"

	gametypes "github.com/cbodonnell/pixelquest/pkg/game/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeDeserializeGameState(t *testing.T) {
	tests := []struct {
		name  string
		state *gametypes.GameState
	}{
		{
			name:  "Empty game state",
			state: gametypes.NewGameState(),
		},
		{
			name: "Full game state",
			state: &gametypes.GameState{
				Version:    7,
				Player:     &gametypes.Player{ID: "p1", Name: "Ada"},
				CurrentMap: "forest",
				Level:      3,
				Experience: 120,
				Currency:   40,
				Inventory:  []gametypes.Item{{ID: "potion", Name: "Potion", Quantity: 2}},
				Quests:     []gametypes.Quest{{ID: "q1", Name: "Coins", Completed: true}},
				Skills:     []gametypes.Skill{{ID: "dash", Name: "Dash", Level: 1}},
				Stats:      map[string]int{"strength": 4},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := SerializeGameState(tt.state)
			require.NoError(t, err)

			got, err := DeserializeGameState(b)
			require.NoError(t, err)
			assert.Equal(t, tt.state, got)
		})
	}
}

func TestSerializeNilGameState(t *testing.T) {
	_, err := SerializeGameState(nil)
	assert.Error(t, err)
}

func TestDeserializeGarbage(t *testing.T) {
	_, err := DeserializeGameState([]byte("not zstd"))
	assert.Error(t, err)
}

func TestNewEventMessage(t *testing.T) {
	now := time.UnixMilli(1700000000000)
	m, err := NewEventMessage("coinCollected", map[string]int{"id": 3}, now)
	require.NoError(t, err)
	assert.Equal(t, MessageTypeEvent, m.Type)
	assert.Equal(t, "coinCollected", m.Name)
	assert.JSONEq(t, `{"id":3}`, string(m.Data))
	assert.Equal(t, int64(1700000000000), m.Timestamp)

	m, err = NewEventMessage("ready", nil, now)
	require.NoError(t, err)
	assert.Nil(t, m.Data)

	_, err = NewEventMessage("bad", func() {}, now)
	assert.Error(t, err)
}

func TestNewErrorMessage(t *testing.T) {
	m := NewErrorMessage("boom", time.UnixMilli(5))
	var msg string
	require.NoError(t, json.Unmarshal(m.Data, &msg))
	assert.Equal(t, MessageTypeError, m.Type)
	assert.Equal(t, "boom", msg)
}
