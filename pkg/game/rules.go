// Package game holds the gameplay rules of the demo map: coin rewards,
// levelling and coin placement.
package game

import (
	"fmt"
	"slices"

	"github.com/cbodonnell/pixelquest/pkg/game/constants"
	"github.com/cbodonnell/pixelquest/pkg/game/types"
	"github.com/cbodonnell/pixelquest/pkg/kinematic"
	"github.com/google/uuid"
)

// CoinItemID is the inventory item granted alongside each collected coin.
const CoinItemID = "coin"

const (
	// StartingMap is the map a new game begins on.
	StartingMap = "meadow"
	// FirstCoinsQuest is completed by collecting every coin on the map.
	FirstCoinsQuest = "first-coins"
)

// NewGame returns the patch that resets the state for a fresh game played
// by the named player.
func NewGame(playerName string) types.StatePatch {
	level := 1
	var experience, currency int64
	currentMap := StartingMap
	return types.StatePatch{
		Player:     &types.Player{ID: uuid.NewString(), Name: playerName},
		CurrentMap: &currentMap,
		Level:      &level,
		Experience: &experience,
		Currency:   &currency,
		Inventory:  []types.Item{},
		Quests:     []types.Quest{{ID: FirstCoinsQuest, Name: "Collect every coin"}},
		Skills:     []types.Skill{},
		Stats:      map[string]int{},
	}
}

// LevelForExperience returns the level reached with the given experience.
func LevelForExperience(experience int64) int {
	if experience < 0 {
		return 1
	}
	return 1 + int(experience/constants.ExperiencePerLevel)
}

// CoinReward returns the patch applied when the player collects a coin.
func CoinReward(state *types.GameState) types.StatePatch {
	currency := state.Currency + constants.CoinValue
	experience := state.Experience + constants.CoinExperience
	level := max(state.Level, LevelForExperience(experience))
	return types.StatePatch{
		Currency:   &currency,
		Experience: &experience,
		Level:      &level,
		Inventory:  AddItem(state.Inventory, types.Item{ID: CoinItemID, Name: "Gold Coin", Quantity: 1}),
	}
}

// AddItem returns a new inventory with item added, stacking onto an
// existing entry with the same id.
func AddItem(inventory []types.Item, item types.Item) []types.Item {
	next := slices.Clone(inventory)
	if next == nil {
		next = []types.Item{}
	}
	for i := range next {
		if next[i].ID == item.ID {
			next[i].Quantity += item.Quantity
			return next
		}
	}
	return append(next, item)
}

// CoinPositions lays count coins out on a grid inside the playable area,
// keeping margin pixels away from every edge.
func CoinPositions(width, height, margin float64, count int) []kinematic.Vector {
	if count <= 0 {
		return nil
	}
	cols := 1
	for cols*cols < count {
		cols++
	}
	rows := (count + cols - 1) / cols

	areaW := width - 2*margin - constants.CoinSize
	areaH := height - 2*margin - constants.CoinSize
	positions := make([]kinematic.Vector, 0, count)
	for i := 0; i < count; i++ {
		col, row := i%cols, i/cols
		positions = append(positions, kinematic.Vector{
			X: margin + areaW*float64(col+1)/float64(cols+1),
			Y: margin + areaH*float64(row+1)/float64(rows+1),
		})
	}
	return positions
}

// CompleteQuest returns the patch marking the quest id completed. ok is
// false when the quest is unknown or already completed.
func CompleteQuest(state *types.GameState, id string) (types.StatePatch, bool) {
	i := slices.IndexFunc(state.Quests, func(q types.Quest) bool { return q.ID == id })
	if i < 0 || state.Quests[i].Completed {
		return types.StatePatch{}, false
	}
	quests := slices.Clone(state.Quests)
	quests[i].Completed = true
	return types.StatePatch{Quests: quests}, true
}

// CoinID names the coin at index i.
func CoinID(i int) string {
	return fmt.Sprintf("coin-%d", i)
}
