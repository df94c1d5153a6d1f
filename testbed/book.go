package testbed

import (
	"runtime"

	"github.com/spaghettifunk/pageflip/engine"
	"github.com/spaghettifunk/pageflip/engine/core"
	"github.com/spaghettifunk/pageflip/engine/flip"
	"github.com/spaghettifunk/pageflip/engine/renderer/metadata"
	"github.com/spaghettifunk/pageflip/engine/resources"
	"github.com/spaghettifunk/pageflip/engine/systems"
)

// painted pages kept around the current one
const cacheLimit = 12

// FlipRecord is one finished flip.
type FlipRecord struct {
	Frame  uint64
	State  flip.State
	PageNo int
	Spread bool
}

// Book is a numbered book of painted pages. A single page shows pageNo;
// a spread shows pageNo on the left and pageNo+1 on the right.
type Book struct {
	*engine.Game

	pageNo   int
	maxPages int
	frame    uint64

	painter *PagePainter
	cache   *PageCache
	jobs    *systems.JobSystem
	player  *Player
	// fire a quit once the script has played
	quitWhenDone bool

	history []FlipRecord
}

func NewBook(app *engine.ApplicationConfig) *Book {
	cfg := app.Config
	b := &Book{
		Game:     &engine.Game{ApplicationConfig: app},
		pageNo:   max(cfg.Book.FirstPage, 1),
		maxPages: cfg.Book.Pages,
	}

	b.FnInitialize = b.Initialize
	b.FnUpdate = b.Update
	b.FnOnResize = b.OnResize
	b.FnCanFlip = b.CanFlip
	b.FnOnFlipFinished = b.OnFlipFinished
	b.FnShutdown = b.Shutdown
	return b
}

// Play feeds script to the book, one step per frame. With quit set the
// application quits once the script is done.
func (b *Book) Play(script Script, quit bool) {
	b.player = NewPlayer(script)
	b.quitWhenDone = quit
}

func (b *Book) Initialize() error {
	core.LogInfo("opening a book of %d pages at page %d", b.maxPages, b.pageNo)

	painter, err := NewPagePainter(b.maxPages, b.backgrounds())
	if err != nil {
		return err
	}
	jobs, err := systems.NewJobSystem(min(runtime.NumCPU(), 4), cacheLimit)
	if err != nil {
		return err
	}
	b.painter = painter
	b.jobs = jobs
	b.cache = NewPageCache(painter, jobs, cacheLimit)
	return nil
}

// backgrounds loads every image asset, in name order.
func (b *Book) backgrounds() []*metadata.PixelBuffer {
	if b.Assets == nil {
		return nil
	}
	var out []*metadata.PixelBuffer
	for _, name := range b.Assets.Assets(resources.ResourceTypeImage) {
		res, err := b.Assets.LoadAsset(name, resources.ResourceTypeImage, nil)
		if err != nil {
			core.LogWarn("skipping background %s: %s", name, err)
			continue
		}
		out = append(out, res.Data.(*metadata.PixelBuffer))
	}
	core.LogDebug("loaded %d page backgrounds", len(out))
	return out
}

// IsSpread reports whether two pages are shown side by side.
func (b *Book) IsSpread() bool {
	pf := b.PageFlip
	return pf.HasSecondPage() && pf.SurfaceWidth() > pf.SurfaceHeight()
}

func (b *Book) PageNo() int {
	return b.pageNo
}

func (b *Book) History() []FlipRecord {
	return b.history
}

func (b *Book) Cache() *PageCache {
	return b.cache
}

func (b *Book) page(number int, spread bool) *metadata.PixelBuffer {
	pf := b.PageFlip
	return b.cache.Get(number, pf.PageWidth(flip.FirstPage), pf.PageHeight(flip.FirstPage), spread)
}

func (b *Book) set(status core.Status) {
	if !status.OK() {
		core.LogError("failed to set page texture: %s", b.PageFlip.LastError().Err())
	}
}

func (b *Book) Update(deltaTime float64) error {
	b.frame++
	if b.player != nil {
		b.player.Advance(b.Input, b.PageFlip.IsAnimating())
		if b.player.Done() && b.quitWhenDone {
			b.quitWhenDone = false
			b.Bus.Fire(core.EventContext{Type: core.EVENT_CODE_APPLICATION_QUIT})
		}
	}
	if !b.PageFlip.HasFirstPage() {
		return nil
	}
	if b.IsSpread() {
		b.updateSpread()
	} else {
		b.updateSingle()
	}
	return nil
}

// updateSingle sets the page under a forward fold, or steps back a page
// when a backward flip moved the shown one under the fold.
func (b *Book) updateSingle() {
	pf := b.PageFlip
	state := pf.State()
	switch {
	case state == flip.StateForward:
		if !pf.IsSecondTextureSet(flip.FirstPage) {
			b.set(pf.SetSecondTexture(flip.FirstPage, b.page(b.pageNo+1, false)))
		}
	case state.IsFlipping():
		if !pf.IsFirstTextureSet(flip.FirstPage) {
			b.pageNo--
			b.set(pf.SetFirstTexture(flip.FirstPage, b.page(b.pageNo, false)))
		}
	default:
		if !pf.IsFirstTextureSet(flip.FirstPage) {
			b.set(pf.SetFirstTexture(flip.FirstPage, b.page(b.pageNo, false)))
		}
	}
	b.prefetch(false, b.pageNo-1, b.pageNo+1)
}

// updateSpread keeps both faces set and, while folding, the back of the
// folded page and the page it reveals.
func (b *Book) updateSpread() {
	pf := b.PageFlip
	left := pf.IsLeftPage(flip.FirstPage)
	n := b.pageNo

	if !pf.IsFirstTextureSet(flip.FirstPage) {
		b.set(pf.SetFirstTexture(flip.FirstPage, b.page(pick(left, n, n+1), true)))
	}
	if !pf.IsFirstTextureSet(flip.SecondPage) {
		b.set(pf.SetFirstTexture(flip.SecondPage, b.page(pick(pf.IsLeftPage(flip.SecondPage), n, n+1), true)))
	}
	if pf.State().IsFlipping() {
		if !pf.IsBackTextureSet(flip.FirstPage) {
			b.set(pf.SetBackTexture(flip.FirstPage, b.page(pick(left, n-1, n+2), true)))
		}
		if !pf.IsSecondTextureSet(flip.FirstPage) {
			b.set(pf.SetSecondTexture(flip.FirstPage, b.page(pick(left, n-2, n+3), true)))
		}
	}
	b.prefetch(true, n-2, n-1, n+2, n+3)
}

func pick(left bool, ifLeft, ifRight int) int {
	if left {
		return ifLeft
	}
	return ifRight
}

func (b *Book) prefetch(spread bool, numbers ...int) {
	pf := b.PageFlip
	b.cache.Prefetch(numbers, pf.PageWidth(flip.FirstPage), pf.PageHeight(flip.FirstPage), spread)
}

// CanFlip allows a forward flip until the last page and a backward one
// after the first. A spread only flips forward, toward either side.
func (b *Book) CanFlip() (bool, bool) {
	if b.PageFlip.HasFirstPage() && b.IsSpread() {
		if b.PageFlip.IsLeftPage(flip.FirstPage) {
			return b.pageNo > 1, false
		}
		return b.pageNo+2 <= b.maxPages, false
	}
	return b.pageNo < b.maxPages, b.pageNo > 1
}

func (b *Book) OnFlipFinished(state flip.State) error {
	spread := b.IsSpread()
	if state == flip.StateEndAfterForward {
		pf := b.PageFlip
		if spread {
			if status := pf.SwapTexturesWithPage(); !status.OK() {
				return pf.LastError().Err()
			}
			if pf.IsLeftPage(flip.FirstPage) {
				b.pageNo -= 2
			} else {
				b.pageNo += 2
			}
		} else {
			if status := pf.SetFirstTextureWithSecond(); !status.OK() {
				return pf.LastError().Err()
			}
			b.pageNo++
		}
	}
	b.history = append(b.history, FlipRecord{
		Frame:  b.frame,
		State:  state,
		PageNo: b.pageNo,
		Spread: spread,
	})
	core.LogInfo("flip ended in %s, now at page %d", state, b.pageNo)
	return nil
}

func (b *Book) OnResize(width uint32, height uint32) error {
	if b.cache != nil {
		b.cache.Reset()
	}
	return nil
}

func (b *Book) Shutdown() error {
	if b.jobs == nil {
		return nil
	}
	return b.jobs.Shutdown()
}
