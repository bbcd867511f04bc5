package game

import (
	"testing"

	"github.com/cbodonnell/pixelquest/pkg/game/constants"
	"github.com/cbodonnell/pixelquest/pkg/game/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelForExperience(t *testing.T) {
	tests := []struct {
		name       string
		experience int64
		want       int
	}{
		{name: "negative", experience: -10, want: 1},
		{name: "zero", experience: 0, want: 1},
		{name: "just below", experience: constants.ExperiencePerLevel - 1, want: 1},
		{name: "first level up", experience: constants.ExperiencePerLevel, want: 2},
		{name: "several", experience: 5 * constants.ExperiencePerLevel, want: 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LevelForExperience(tt.experience))
		})
	}
}

func TestCoinReward(t *testing.T) {
	state := types.NewGameState()
	state.Experience = constants.ExperiencePerLevel - constants.CoinExperience

	next := state.Apply(CoinReward(state))

	assert.Equal(t, constants.CoinValue, next.Currency)
	assert.Equal(t, constants.ExperiencePerLevel, next.Experience)
	assert.Equal(t, 2, next.Level)
	assert.Equal(t, []types.Item{{ID: CoinItemID, Name: "Gold Coin", Quantity: 1}}, next.Inventory)

	next = next.Apply(CoinReward(next))
	assert.Equal(t, 2, next.Inventory[0].Quantity)
	assert.Empty(t, state.Inventory)
}

func TestCoinRewardKeepsHigherLevel(t *testing.T) {
	state := types.NewGameState()
	state.Level = 10
	level := CoinReward(state).Level
	require.NotNil(t, level)
	assert.Equal(t, 10, *level)
}

func TestAddItem(t *testing.T) {
	inventory := []types.Item{{ID: "potion", Quantity: 1}}

	got := AddItem(inventory, types.Item{ID: "potion", Quantity: 2})
	assert.Equal(t, []types.Item{{ID: "potion", Quantity: 3}}, got)
	assert.Equal(t, 1, inventory[0].Quantity)

	got = AddItem(nil, types.Item{ID: "sword", Quantity: 1})
	assert.Equal(t, []types.Item{{ID: "sword", Quantity: 1}}, got)
}

func TestCoinPositions(t *testing.T) {
	assert.Nil(t, CoinPositions(640, 480, 32, 0))

	positions := CoinPositions(640, 480, 32, 5)
	require.Len(t, positions, 5)
	for _, p := range positions {
		assert.GreaterOrEqual(t, p.X, 32.0)
		assert.GreaterOrEqual(t, p.Y, 32.0)
		assert.LessOrEqual(t, p.X+constants.CoinSize, 640.0-32)
		assert.LessOrEqual(t, p.Y+constants.CoinSize, 480.0-32)
	}
	assert.NotEqual(t, positions[0], positions[1])
	assert.Equal(t, "coin-3", CoinID(3))
}

func TestNewGame(t *testing.T) {
	state := types.NewGameState()
	state.Currency = 99
	state.Inventory = []types.Item{{ID: "sword", Quantity: 1}}
	state.Stats = map[string]int{"coins": 4}

	next := state.Apply(NewGame("Ada"))

	require.NotNil(t, next.Player)
	assert.Equal(t, "Ada", next.Player.Name)
	assert.NotEmpty(t, next.Player.ID)
	assert.Equal(t, StartingMap, next.CurrentMap)
	assert.Equal(t, 1, next.Level)
	assert.Zero(t, next.Currency)
	assert.Empty(t, next.Inventory)
	assert.Empty(t, next.Stats)
	assert.Len(t, next.Quests, 1)
}

func TestCompleteQuest(t *testing.T) {
	state := types.NewGameState().Apply(NewGame("Ada"))
	id := state.Quests[0].ID

	patch, ok := CompleteQuest(state, id)
	require.True(t, ok)
	next := state.Apply(patch)
	assert.True(t, next.Quests[0].Completed)
	assert.False(t, state.Quests[0].Completed)

	_, ok = CompleteQuest(next, id)
	assert.False(t, ok)
	_, ok = CompleteQuest(next, "missing")
	assert.False(t, ok)
}
