package constants

const (
	// GameStateRegistryKey is the registry key holding the shared game state
	GameStateRegistryKey = "gameState"
	// DefaultSaveSlot is the repository slot used when none is configured
	DefaultSaveSlot = "default"
)

// Event names emitted on the game event bus.
const (
	// EventGameStateChanged carries the full *types.GameState after every update
	EventGameStateChanged = "gameStateChanged"
	// EventCoinCollected carries the coin id
	EventCoinCollected = "coinCollected"
	// EventInventoryToggled carries whether the inventory is now open
	EventInventoryToggled = "inventoryToggled"
)

// Scene keys of the built-in scene units.
const (
	SceneBoot      = "Boot"
	ScenePreload   = "Preload"
	SceneMenu      = "Menu"
	SceneGame      = "Game"
	SceneHUD       = "HUD"
	SceneInventory = "Inventory"
	ScenePause     = "Pause"
)

const (
	// PlayerSpeed is the speed at which the player walks
	PlayerSpeed float64 = 250.0
	// Player Height
	PlayerHeight float64 = 32.0
	// Player Width
	PlayerWidth float64 = 32.0
	// CoinSize is the width and height of a coin
	CoinSize float64 = 16.0
	// CoinValue is the currency granted per coin
	CoinValue int64 = 10
	// CoinExperience is the experience granted per coin
	CoinExperience int64 = 5
	// ExperiencePerLevel is the experience needed for each level
	ExperiencePerLevel int64 = 50
)
