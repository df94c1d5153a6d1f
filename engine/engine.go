package engine

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spaghettifunk/pageflip/engine/assets"
	"github.com/spaghettifunk/pageflip/engine/config"
	"github.com/spaghettifunk/pageflip/engine/core"
	"github.com/spaghettifunk/pageflip/engine/flip"
	"github.com/spaghettifunk/pageflip/engine/renderer"
	"github.com/spaghettifunk/pageflip/engine/resources"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
	// Engine has released everything
	EngineStageShutdown
)

func (s Stage) String() string {
	switch s {
	case EngineStageUninitialized:
		return "uninitialized"
	case EngineStageInitializing:
		return "initializing"
	case EngineStageInitialized:
		return "initialized"
	case EngineStageRunning:
		return "running"
	case EngineStageShuttingDown:
		return "shutting-down"
	case EngineStageShutdown:
		return "shutdown"
	}
	return "unknown"
}

// Engine runs the frame loop around one page flip: pointer events drive
// the gesture, every frame is handed to the renderer, and a finished
// animation is reported to the game.
type Engine struct {
	currentStage Stage
	gameInstance *Game
	isRunning    bool
	isSuspended  bool
	assetManager *assets.AssetManager
	renderer     *renderer.Renderer
	pageFlip     *flip.PageFlip
	bus          *core.EventBus
	input        *core.Input
	manualTime   *core.ManualTime
	clock        *core.Clock
	width        uint32
	height       uint32
	lastTime     float64
	frameNumber  uint64
	animating    bool
}

func New(g *Game, backend renderer.RendererBackend) (*Engine, error) {
	if g == nil || g.ApplicationConfig == nil {
		return nil, fmt.Errorf("%w: game without application config", core.ErrNullParameter)
	}
	if backend == nil {
		return nil, fmt.Errorf("%w: renderer backend", core.ErrNullParameter)
	}
	app := g.ApplicationConfig
	if app.Config == nil {
		app.Config = config.DefaultConfig()
	}

	var source core.TimeSource
	var manual *core.ManualTime
	if app.FixedStep {
		manual = core.NewManualTime(0)
		source = manual
	} else {
		source = core.SystemTime()
	}

	opts := append([]flip.Option{flip.WithTimeSource(source)}, app.Config.Options()...)
	pf := flip.New(opts...)
	bus := core.NewEventBus()
	input := core.NewInput(bus)

	var am *assets.AssetManager
	if app.AssetsDir != "" {
		var err error
		if am, err = assets.NewAssetManager(); err != nil {
			core.LogError(err.Error())
			return nil, err
		}
	}

	g.PageFlip = pf
	g.Input = input
	g.Bus = bus

	return &Engine{
		currentStage: EngineStageUninitialized,
		gameInstance: g,
		isRunning:    true,
		assetManager: am,
		renderer:     renderer.New(backend),
		pageFlip:     pf,
		bus:          bus,
		input:        input,
		manualTime:   manual,
		clock:        core.NewClock(source),
		width:        app.StartWidth,
		height:       app.StartHeight,
	}, nil
}

func (e *Engine) Initialize() error {
	e.currentStage = EngineStageInitializing
	app := e.gameInstance.ApplicationConfig
	core.SetLogLevel(app.LogLevel)

	// register some events
	e.bus.Register(core.EVENT_CODE_APPLICATION_QUIT, e, e.onEvent)
	e.bus.Register(core.EVENT_CODE_POINTER_PRESSED, e, e.onPointer)
	e.bus.Register(core.EVENT_CODE_POINTER_MOVED, e, e.onPointer)
	e.bus.Register(core.EVENT_CODE_POINTER_RELEASED, e, e.onPointer)
	e.bus.Register(core.EVENT_CODE_RESIZED, e, e.onResized)
	e.bus.Register(core.EVENT_CODE_ASSET_RELOADED, e, e.onAssetReloaded)
	e.bus.Register(core.EVENT_CODE_FLIP_FINISHED, e, e.onFlipFinished)

	if e.assetManager != nil {
		if _, err := os.Stat(app.AssetsDir); err != nil {
			core.LogWarn("no asset directory %s, running without assets", app.AssetsDir)
			e.assetManager.Close()
			e.assetManager = nil
		} else if err := e.assetManager.Initialize(app.AssetsDir, app.WatchAssets); err != nil {
			return err
		}
		e.gameInstance.Assets = e.assetManager
	}

	if err := e.renderer.Initialize(app.Name, e.width, e.height); err != nil {
		return err
	}

	e.pageFlip.OnSurfaceCreated()
	if status := e.pageFlip.OnSurfaceChanged(int(e.width), int(e.height)); !status.OK() {
		return e.pageFlip.LastError().Err()
	}
	if err := app.Config.Apply(e.pageFlip); err != nil {
		return err
	}
	if status := e.pageFlip.SetGradientLightTexture(renderer.NewGradientLight()); !status.OK() {
		return e.pageFlip.LastError().Err()
	}

	if fn := e.gameInstance.FnInitialize; fn != nil {
		if err := fn(); err != nil {
			return err
		}
	}
	if fn := e.gameInstance.FnOnResize; fn != nil {
		if err := fn(e.width, e.height); err != nil {
			return err
		}
	}
	e.currentStage = EngineStageInitialized
	core.LogInfo("engine initialized with a %dx%d surface", e.width, e.height)
	return nil
}

// Run steps frames until the game quits, MaxFrames is reached or ctx is
// done. Without a fixed step the loop sleeps off what is left of each
// frame.
func (e *Engine) Run(ctx context.Context) error {
	if e.currentStage != EngineStageInitialized {
		return fmt.Errorf("%w: engine is %s", core.ErrUninitialized, e.currentStage)
	}
	e.currentStage = EngineStageRunning
	e.clock.Start()
	e.clock.Update()
	e.lastTime = e.clock.Elapsed()

	app := e.gameInstance.ApplicationConfig
	targetFrame := time.Duration(app.frameMillis()) * time.Millisecond

	for e.isRunning {
		if app.MaxFrames > 0 && e.frameNumber >= app.MaxFrames {
			break
		}
		frameStart := time.Now()
		if err := e.Step(); err != nil {
			core.LogError(err.Error())
			return err
		}

		remaining := targetFrame - time.Since(frameStart)
		if app.FixedStep || remaining <= 0 {
			select {
			case <-ctx.Done():
				core.LogInfo("run cancelled after %d frames", e.frameNumber)
				return nil
			default:
			}
			continue
		}
		// If there is time left, give it back to the OS.
		select {
		case <-ctx.Done():
			core.LogInfo("run cancelled after %d frames", e.frameNumber)
			return nil
		case <-time.After(remaining):
		}
	}
	return nil
}

// Step runs one frame: game update, texture recycling, drawing, then one
// animation tick for the next frame.
func (e *Engine) Step() error {
	if e.manualTime != nil {
		e.manualTime.Advance(e.gameInstance.ApplicationConfig.frameMillis())
	}
	e.clock.Update()
	currentTime := e.clock.Elapsed()
	delta := currentTime - e.lastTime
	e.lastTime = currentTime

	e.pumpAssets()
	if e.isSuspended {
		return nil
	}

	if fn := e.gameInstance.FnUpdate; fn != nil {
		if err := fn(delta); err != nil {
			return fmt.Errorf("game update failed: %w", err)
		}
	}

	e.renderer.DeleteUnusedTextures(e.pageFlip.RecycleTextures())
	packet := e.renderer.BuildPacket(e.pageFlip.Frame(), delta)
	if fn := e.gameInstance.FnRender; fn != nil {
		if err := fn(packet, delta); err != nil {
			return fmt.Errorf("game render failed: %w", err)
		}
	}
	if err := e.renderer.DrawFrame(packet); err != nil {
		return err
	}

	if e.animating {
		e.animate()
	}

	// NOTE: Input update/state copying should always be handled
	// after any input should be recorded; I.E. before this line.
	e.input.Update()
	e.frameNumber++
	return nil
}

func (e *Engine) animate() {
	if e.pageFlip.Animating() {
		return
	}
	e.animating = false
	e.bus.Fire(core.EventContext{
		Type: core.EVENT_CODE_FLIP_FINISHED,
		Data: int(e.pageFlip.State()),
	})
}

// pumpAssets forwards pending asset changes to the bus.
func (e *Engine) pumpAssets() {
	if e.assetManager == nil {
		return
	}
	for {
		select {
		case name, ok := <-e.assetManager.Reloaded():
			if !ok {
				return
			}
			e.bus.Fire(core.EventContext{Type: core.EVENT_CODE_ASSET_RELOADED, Data: name})
		default:
			return
		}
	}
}

func (e *Engine) Shutdown() error {
	e.currentStage = EngineStageShuttingDown
	var errs []error
	if fn := e.gameInstance.FnShutdown; fn != nil {
		errs = append(errs, fn())
	}
	e.renderer.DeleteUnusedTextures(e.pageFlip.RecycleTextures())
	errs = append(errs, e.renderer.Shutdown())
	if e.assetManager != nil {
		errs = append(errs, e.assetManager.Close())
	}
	e.bus.Shutdown()
	e.isRunning = false
	e.currentStage = EngineStageShutdown
	return errors.Join(errs...)
}

func (e *Engine) Stage() Stage {
	return e.currentStage
}

func (e *Engine) PageFlip() *flip.PageFlip {
	return e.pageFlip
}

func (e *Engine) Renderer() *renderer.Renderer {
	return e.renderer
}

func (e *Engine) Bus() *core.EventBus {
	return e.bus
}

func (e *Engine) Input() *core.Input {
	return e.input
}

func (e *Engine) Assets() *assets.AssetManager {
	return e.assetManager
}

func (e *Engine) Metrics() *core.Metrics {
	return e.renderer.Metrics()
}

// FrameNumber returns how many frames have been stepped.
func (e *Engine) FrameNumber() uint64 {
	return e.frameNumber
}

// IsAnimating reports whether a flip animation is still running.
func (e *Engine) IsAnimating() bool {
	return e.animating
}

// ApplicationGetFramebufferSize returns the width and height (in this order)
// of the application Framebuffer
func (e *Engine) GetFramebufferSize() (uint32, uint32) {
	return e.width, e.height
}

func (e *Engine) onEvent(context core.EventContext) bool {
	switch context.Type {
	case core.EVENT_CODE_APPLICATION_QUIT:
		core.LogInfo("EVENT_CODE_APPLICATION_QUIT received, shutting down.")
		e.isRunning = false
		return true
	}
	return false
}

func (e *Engine) canFlip() (bool, bool) {
	if fn := e.gameInstance.FnCanFlip; fn != nil {
		return fn()
	}
	return true, true
}

// onPointer feeds the page flip. Presses and moves are ignored while an
// animation runs, and a drag that leaves a forward flipping page is
// released on the spot.
func (e *Engine) onPointer(context core.EventContext) bool {
	pe, ok := context.Data.(*core.PointerEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return false
	}
	pf := e.pageFlip

	switch context.Type {
	case core.EVENT_CODE_POINTER_PRESSED:
		if !pf.IsAnimating() && pf.HasFirstPage() {
			pf.OnFingerDown(pe.X, pe.Y)
		}
	case core.EVENT_CODE_POINTER_MOVED:
		switch {
		case pf.IsAnimating():
		case pf.CanAnimate(pe.X, pe.Y):
			e.release(pe.X, pe.Y, pe.Duration)
		default:
			forward, backward := e.canFlip()
			pf.OnFingerMove(pe.X, pe.Y, forward, backward)
		}
	case core.EVENT_CODE_POINTER_RELEASED:
		e.release(pe.X, pe.Y, pe.Duration)
	}
	return true
}

func (e *Engine) release(x, y float32, duration int) {
	if e.pageFlip.IsAnimating() {
		return
	}
	if duration <= 0 {
		duration = e.gameInstance.ApplicationConfig.Config.Flip.Duration
	}
	forward, backward := e.canFlip()
	if e.pageFlip.OnFingerUp(x, y, duration, forward, backward) {
		e.animating = true
	}
}

func (e *Engine) onResized(context core.EventContext) bool {
	re, ok := context.Data.(*core.ResizeEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return false
	}
	width, height := uint32(max(re.Width, 0)), uint32(max(re.Height, 0))
	if width == e.width && height == e.height {
		return false
	}
	e.width = width
	e.height = height
	core.LogDebug("Window resize: %d, %d", width, height)

	// Handle minimization
	if width == 0 || height == 0 {
		core.LogInfo("Window minimized, suspending application.")
		e.isSuspended = true
		return true
	}
	if e.isSuspended {
		core.LogInfo("Window restored, resuming application.")
		e.isSuspended = false
	}

	e.pageFlip.Abort()
	e.animating = false
	if status := e.pageFlip.OnSurfaceChanged(re.Width, re.Height); !status.OK() {
		core.LogError("resize rejected: %s", e.pageFlip.LastError().Err())
		return true
	}
	if err := e.renderer.OnResize(width, height); err != nil {
		core.LogError(err.Error())
	}
	if fn := e.gameInstance.FnOnResize; fn != nil {
		if err := fn(width, height); err != nil {
			core.LogError(err.Error())
		}
	}
	return true
}

// onAssetReloaded re-applies the config asset; other listeners still see
// every reload.
func (e *Engine) onAssetReloaded(context core.EventContext) bool {
	name, ok := context.Data.(string)
	if !ok || e.assetManager == nil {
		return false
	}
	app := e.gameInstance.ApplicationConfig
	if name != app.ConfigAsset {
		return false
	}
	res, err := e.assetManager.LoadAsset(name, resources.ResourceTypeConfig, nil)
	if err != nil {
		core.LogError("failed to reload %s: %s", name, err)
		return false
	}
	cfg := res.Data.(*config.Config)
	if e.pageFlip.State().IsFlipping() {
		core.LogWarn("config %s changed during a flip, applying it anyway", name)
	}
	if err := cfg.Apply(e.pageFlip); err != nil {
		core.LogError("failed to apply %s: %s", name, err)
		return false
	}
	if err := cfg.ApplyLogging(); err != nil {
		core.LogWarn(err.Error())
	}
	app.Config = cfg
	core.LogInfo("applied config %s", name)
	return false
}

func (e *Engine) onFlipFinished(context core.EventContext) bool {
	state, ok := context.Data.(int)
	if !ok {
		return false
	}
	core.LogDebug("flip finished in %s", flip.State(state))
	if fn := e.gameInstance.FnOnFlipFinished; fn != nil {
		if err := fn(flip.State(state)); err != nil {
			core.LogError(err.Error())
		}
	}
	return false
}
