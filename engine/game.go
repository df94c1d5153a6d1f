package engine

import (
	"github.com/spaghettifunk/pageflip/engine/assets"
	"github.com/spaghettifunk/pageflip/engine/core"
	"github.com/spaghettifunk/pageflip/engine/flip"
	"github.com/spaghettifunk/pageflip/engine/renderer/metadata"
)

// Game is the application side of the engine. Every callback is
// optional. PageFlip, Input and Bus are filled in by New, Assets by
// Initialize when an asset directory is available.
type Game struct {
	ApplicationConfig *ApplicationConfig
	PageFlip          *flip.PageFlip
	Input             *core.Input
	Bus               *core.EventBus
	Assets            *assets.AssetManager
	State             interface{}
	FnInitialize      Initialize
	FnUpdate          Update
	FnRender          Render
	FnOnResize        OnResize
	FnCanFlip         CanFlip
	FnOnFlipFinished  OnFlipFinished
	FnShutdown        Shutdown
}

type Initialize func() error

// Update runs before the frame is built; set missing page textures here.
type Update func(deltaTime float64) error

// Render sees the draw batches before they reach the backend.
type Render func(packet *metadata.RenderPacket, deltaTime float64) error
type OnResize func(width uint32, height uint32) error

// CanFlip reports which directions the current page allows.
type CanFlip func() (forward bool, backward bool)

// OnFlipFinished runs once an animation has stopped in state.
type OnFlipFinished func(state flip.State) error
type Shutdown func() error
