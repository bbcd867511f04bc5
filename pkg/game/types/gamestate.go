package types

import (
	"maps"
	"slices"
)

// GameState is the shared gameplay record kept in the engine registry.
type GameState struct {
	// Version increases by one on every applied patch
	Version uint64 `json:"version"`
	// Player is the local player, nil until one is chosen
	Player *Player `json:"player"`
	// CurrentMap is the id of the loaded map, empty when none is loaded
	CurrentMap string         `json:"currentMap"`
	Level      int            `json:"level"`
	Experience int64          `json:"experience"`
	Currency   int64          `json:"currency"`
	Inventory  []Item         `json:"inventory"`
	Quests     []Quest        `json:"quests"`
	Skills     []Skill        `json:"skills"`
	Stats      map[string]int `json:"stats"`
}

type Player struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Item struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type Quest struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Completed bool   `json:"completed"`
}

type Skill struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Level int    `json:"level"`
}

// NewGameState returns the empty state used when the registry holds none.
func NewGameState() *GameState {
	return &GameState{
		Level:     1,
		Inventory: []Item{},
		Quests:    []Quest{},
		Skills:    []Skill{},
		Stats:     map[string]int{},
	}
}

// Copy returns a deep copy of the state.
func (g *GameState) Copy() *GameState {
	newGameState := *g
	if g.Player != nil {
		player := *g.Player
		newGameState.Player = &player
	}
	newGameState.Inventory = slices.Clone(g.Inventory)
	newGameState.Quests = slices.Clone(g.Quests)
	newGameState.Skills = slices.Clone(g.Skills)
	newGameState.Stats = maps.Clone(g.Stats)
	return &newGameState
}

// StatePatch is a shallow update of the game state. Nil fields are left
// unchanged; present fields replace the current value wholesale.
type StatePatch struct {
	Player     *Player        `json:"player,omitempty"`
	CurrentMap *string        `json:"currentMap,omitempty"`
	Level      *int           `json:"level,omitempty"`
	Experience *int64         `json:"experience,omitempty"`
	Currency   *int64         `json:"currency,omitempty"`
	Inventory  []Item         `json:"inventory,omitempty"`
	Quests     []Quest        `json:"quests,omitempty"`
	Skills     []Skill        `json:"skills,omitempty"`
	Stats      map[string]int `json:"stats,omitempty"`
}

// Apply returns a new state with the patch merged in and the version bumped.
func (g *GameState) Apply(p StatePatch) *GameState {
	next := g.Copy()
	next.Version++
	if p.Player != nil {
		player := *p.Player
		next.Player = &player
	}
	if p.CurrentMap != nil {
		next.CurrentMap = *p.CurrentMap
	}
	if p.Level != nil {
		next.Level = *p.Level
	}
	if p.Experience != nil {
		next.Experience = *p.Experience
	}
	if p.Currency != nil {
		next.Currency = *p.Currency
	}
	if p.Inventory != nil {
		next.Inventory = slices.Clone(p.Inventory)
	}
	if p.Quests != nil {
		next.Quests = slices.Clone(p.Quests)
	}
	if p.Skills != nil {
		next.Skills = slices.Clone(p.Skills)
	}
	if p.Stats != nil {
		next.Stats = maps.Clone(p.Stats)
	}
	return next
}

// MergeStats returns a new state where each given stat is set and every
// other stat is kept.
func (g *GameState) MergeStats(stats map[string]int) *GameState {
	next := g.Copy()
	next.Version++
	if next.Stats == nil {
		next.Stats = make(map[string]int, len(stats))
	}
	for k, v := range stats {
		next.Stats[k] = v
	}
	return next
}
