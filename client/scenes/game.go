package scenes

import (
	"fmt"
	"image/color"
	"math"

	"github.com/cbodonnell/pixelquest/client/animations"
	"github.com/cbodonnell/pixelquest/client/input"
	"github.com/cbodonnell/pixelquest/client/objects"
	"github.com/cbodonnell/pixelquest/pkg/engine"
	"github.com/cbodonnell/pixelquest/pkg/game"
	"github.com/cbodonnell/pixelquest/pkg/game/constants"
	"github.com/cbodonnell/pixelquest/pkg/host"
	"github.com/cbodonnell/pixelquest/pkg/kinematic"
	"github.com/cbodonnell/pixelquest/pkg/log"
)

const (
	tagPlayer = "player"
	tagCoin   = "coin"

	defaultCoinCount = 9
	coinMargin       = 64.0
	rewardTextTTL    = 0.8
)

var (
	floorColor = color.RGBA{34, 60, 40, 255}
	wallColor  = color.RGBA{80, 80, 90, 255}
)

// GameScene is the playable map: the player walks around and collects
// coins, which feeds the shared game state.
type GameScene struct {
	*BaseScene

	player    *objects.BodyObject
	coins     map[string]*objects.BodyObject
	coinCount int
	collected engine.ListenerID
}

var _ Scene = &GameScene{}

func NewGameScene(h *host.Host) *GameScene {
	return &GameScene{
		BaseScene: NewBaseScene(h, constants.SceneGame),
	}
}

// Init builds the map. data["coins"] overrides the number of coins.
func (s *GameScene) Init(data engine.Data) error {
	if err := s.BaseScene.Init(data); err != nil {
		return err
	}
	s.coinCount = defaultCoinCount
	if n, ok := data["coins"].(int); ok && n > 0 {
		s.coinCount = n
	}

	width, height := s.Engine.Physics().Size()
	w, h := float64(width), float64(height)

	if err := s.Root.AddChild("floor", objects.NewLevelObject("floor", objects.NewLevelObjectOptions{
		W: w, H: h, Color: floorColor, ZIndex: -2, Render: s.Render,
	})); err != nil {
		return fmt.Errorf("failed to add floor: %v", err)
	}
	for _, b := range s.Engine.Physics().Bodies() {
		if !b.Static || b.Sensor {
			continue
		}
		id := fmt.Sprintf("wall-%.0f-%.0f", b.Position.X, b.Position.Y)
		if err := s.Root.AddChild(id, objects.NewLevelObject(id, objects.NewLevelObjectOptions{
			X: b.Position.X, Y: b.Position.Y, W: b.Width, H: b.Height, Color: wallColor, ZIndex: -1, Render: s.Render,
		})); err != nil {
			return fmt.Errorf("failed to add wall: %v", err)
		}
	}

	body := s.Engine.Physics().AddBody((w-constants.PlayerWidth)/2, (h-constants.PlayerHeight)/2, constants.PlayerWidth, constants.PlayerHeight, false, tagPlayer)
	s.player = objects.NewBodyObject(tagPlayer, objects.NewBodyObjectOptions{
		World:  s.Engine.Physics(),
		Body:   body,
		Image:  s.Texture(TexturePlayer),
		Color:  color.RGBA{0, 255, 60, 255},
		ZIndex: 2,
		Render: s.Render,
	})
	if err := s.Root.AddChild(s.player.GetID(), s.player); err != nil {
		return fmt.Errorf("failed to add player: %v", err)
	}

	if err := s.spawnCoins(); err != nil {
		return err
	}

	s.collected = s.Host.OnGameEvent(constants.EventCoinCollected, s.onCoinCollected)
	log.Debug("Game scene ready with %d coins", s.coinCount)
	return nil
}

func (s *GameScene) spawnCoins() error {
	width, height := s.Engine.Physics().Size()
	s.coins = make(map[string]*objects.BodyObject, s.coinCount)
	for i, pos := range game.CoinPositions(float64(width), float64(height), coinMargin, s.coinCount) {
		id := game.CoinID(i)
		body := s.Engine.Physics().AddSensor(pos.X, pos.Y, constants.CoinSize, constants.CoinSize, tagCoin, id)
		coin := objects.NewBodyObject(id, objects.NewBodyObjectOptions{
			World:     s.Engine.Physics(),
			Body:      body,
			Animation: s.coinAnimation(),
			Color:     color.RGBA{255, 215, 0, 255},
			ZIndex:    1,
			Render:    s.Render,
		})
		if err := s.Root.AddChild(id, coin); err != nil {
			return fmt.Errorf("failed to add coin %s: %v", id, err)
		}
		s.coins[id] = coin
	}
	return nil
}

func (s *GameScene) coinAnimation() *animations.Animation {
	strip := s.Texture(TextureCoin)
	if strip == nil {
		return nil
	}
	size := int(constants.CoinSize)
	return animations.NewAnimation(animations.NewAnimationOptions{
		Image:         strip,
		FrameWidth:    size,
		FrameHeight:   size,
		FrameCount:    strip.Bounds().Dx() / size,
		FrameDuration: CoinFrameDuration,
	})
}

func (s *GameScene) Destroy() error {
	if s.Engine != nil {
		s.Engine.Events().Off(constants.EventCoinCollected, s.collected)
	}
	s.collected = engine.NilListenerID
	s.player = nil
	s.coins = nil
	return s.BaseScene.Destroy()
}

func (s *GameScene) Update(dt float64) error {
	if !s.Active() {
		return nil
	}

	if input.IsPauseJustPressed() {
		s.Host.LaunchScene(constants.ScenePause, nil)
		s.Host.PauseScene(constants.SceneGame)
		return nil
	}
	if input.IsInventoryJustPressed() {
		s.toggleInventory()
	}

	s.player.Body().Velocity = playerVelocity(input.Movement())

	for _, hit := range s.Engine.Physics().Overlapping(s.player.Body(), tagCoin) {
		for id, coin := range s.coins {
			if coin.Body() != hit {
				continue
			}
			s.collect(id)
		}
	}

	if len(s.coins) == 0 {
		s.completeRound()
		if err := s.spawnCoins(); err != nil {
			return err
		}
	}

	return s.BaseScene.Update(dt)
}

// playerVelocity scales the input direction to the walking speed without
// letting diagonals go faster.
func playerVelocity(dir kinematic.Vector) kinematic.Vector {
	length := math.Hypot(dir.X, dir.Y)
	if length == 0 {
		return kinematic.Vector{}
	}
	if length > 1 {
		dir = dir.Scale(1 / length)
	}
	return dir.Scale(constants.PlayerSpeed)
}

func (s *GameScene) toggleInventory() {
	open := !s.Engine.Scenes().IsActive(constants.SceneInventory)
	if open {
		s.Host.LaunchScene(constants.SceneInventory, nil)
	} else {
		s.Host.StopScene(constants.SceneInventory)
	}
	s.Host.EmitGameEvent(constants.EventInventoryToggled, open)
}

func (s *GameScene) collect(id string) {
	coin := s.coins[id]
	delete(s.coins, id)
	pos := coin.Body().Center()
	if err := s.Root.RemoveChild(id); err != nil {
		log.Error("Failed to remove coin %s: %v", id, err)
	}
	effectID := "reward-" + id
	if err := s.Root.AddChild(effectID, objects.NewTextEffect(effectID, objects.NewTextEffectOptions{
		Text:   fmt.Sprintf("+%d", constants.CoinValue),
		X:      pos.X,
		Y:      pos.Y,
		Color:  color.RGBA{255, 215, 0, 255},
		Scroll: true,
		TTL:    rewardTextTTL,
		ZIndex: 3,
	})); err != nil {
		log.Warn("Failed to add reward text: %v", err)
	}
	s.Host.EmitGameEvent(constants.EventCoinCollected, id)
}

// onCoinCollected applies the coin reward to the shared state.
func (s *GameScene) onCoinCollected(data any) {
	id, _ := data.(string)
	state := s.Host.GameState()
	if state == nil {
		return
	}
	s.Host.UpdateGameState(game.CoinReward(state))
	s.Host.UpdateStats(map[string]int{"coins": state.Stats["coins"] + 1})
	log.Debug("Collected %s", id)
}

func (s *GameScene) completeRound() {
	state := s.Host.GameState()
	if state == nil {
		return
	}
	if patch, ok := game.CompleteQuest(state, game.FirstCoinsQuest); ok {
		s.Host.UpdateGameState(patch)
		log.Info("Quest %s completed", game.FirstCoinsQuest)
	}
}
