package scenes

import (
	"github.com/cbodonnell/pixelquest/client/objects"
	"github.com/cbodonnell/pixelquest/client/render"
	"github.com/cbodonnell/pixelquest/pkg/engine"
	"github.com/cbodonnell/pixelquest/pkg/game/constants"
	"github.com/cbodonnell/pixelquest/pkg/host"
	"github.com/hajimehoshi/ebiten/v2"
)

// Registry keys of the textures built by the preload scene.
const (
	TexturePlayer = "texture.player"
	TextureCoin   = "texture.coin"
)

type Scene interface {
	engine.Scene

	// Scene specific methods
	GetRoot() objects.GameObject
	Draw(screen *ebiten.Image)
}

// BaseScene drives an object tree rebuilt every time the scene starts.
type BaseScene struct {
	Host *host.Host
	// Engine is the engine the scene was started on. Scenes use it instead
	// of the host while stopping, when the host may already have let go of it.
	Engine *engine.Engine
	Root   *objects.SortedZIndexObject
	Render render.Options

	key string
}

func NewBaseScene(h *host.Host, key string) *BaseScene {
	return &BaseScene{
		Host:   h,
		Render: render.NewOptions(h.Config().Render),
		key:    key,
	}
}

func (s *BaseScene) GetRoot() objects.GameObject {
	return s.Root
}

func (s *BaseScene) Init(data engine.Data) error {
	s.Engine = s.Host.Game()
	if s.Engine == nil {
		return host.ErrNotInitialized
	}
	s.Root = objects.NewSortedZIndexObject(s.key + "-root")
	return objects.InitTree(s.Root)
}

func (s *BaseScene) Destroy() error {
	if s.Root == nil {
		return nil
	}
	root := s.Root
	s.Root = nil
	return objects.DestroyTree(root)
}

func (s *BaseScene) Update(dt float64) error {
	if s.Root == nil {
		return nil
	}
	return objects.UpdateTree(s.Root, dt)
}

func (s *BaseScene) Draw(screen *ebiten.Image) {
	if s.Root == nil {
		return
	}
	objects.DrawTree(s.Root, screen)
}

// Active reports whether the scene is between Init and Destroy.
func (s *BaseScene) Active() bool {
	return s.Root != nil
}

// Texture returns the registry image stored under key, or nil.
func (s *BaseScene) Texture(key string) *ebiten.Image {
	if s.Engine == nil {
		return nil
	}
	v, ok := s.Engine.Registry().Get(key)
	if !ok {
		return nil
	}
	img, _ := v.(*ebiten.Image)
	return img
}

// Register adds a factory for every built-in scene to h.
func Register(h *host.Host) {
	h.RegisterScene(constants.SceneBoot, func() (engine.Scene, error) { return NewBootScene(h), nil })
	h.RegisterScene(constants.ScenePreload, func() (engine.Scene, error) { return NewPreloadScene(h), nil })
	h.RegisterScene(constants.SceneMenu, func() (engine.Scene, error) { return NewMenuScene(h), nil })
	h.RegisterScene(constants.SceneGame, func() (engine.Scene, error) { return NewGameScene(h), nil })
	h.RegisterScene(constants.SceneHUD, func() (engine.Scene, error) { return NewHUDScene(h), nil })
	h.RegisterScene(constants.SceneInventory, func() (engine.Scene, error) { return NewInventoryScene(h), nil })
	h.RegisterScene(constants.ScenePause, func() (engine.Scene, error) { return NewPauseScene(h), nil })
}
