package flip

import (
	"github.com/spaghettifunk/pageflip/engine/core"
	"github.com/spaghettifunk/pageflip/engine/easing"
	"github.com/spaghettifunk/pageflip/engine/math"
	"github.com/spaghettifunk/pageflip/engine/renderer/metadata"
	"github.com/spaghettifunk/pageflip/engine/vertex"
)

const (
	// default pixel size of a mesh step
	MeshVertexPixels = 10
	// the mesh count a fold aims for before the divisor is halved again
	MeshCountThreshold = 20

	minPageCurlAngle  = 5
	maxPageCurlAngle  = 65
	pageCurlAngleDiff = maxPageCurlAngle - minPageCurlAngle
	// real division: the full curl angle holds up to 1-65/90, about 0.278
	// of the half height, then narrows linearly
	maxCurlAngleRatio = float32(maxPageCurlAngle) / 90

	DefaultSemiPerimeterRatio      float32 = 0.8
	DefaultWidthRatioOfClickToFlip float32 = 0.5
	widthRatioOfRestoreFlip        float32 = 0.4
	backwardCommitRatio            float32 = 0.5

	forwardMoveScale  float32 = 1.2
	backwardMoveScale float32 = 1.1
	// share of the half width a press has to travel before it flips
	beginMoveRatio float32 = 0.05
	// a release closer than this to the press is a click
	clickDistance float32 = 2
	// backward and restore animations stop this close to the origin
	animationStopDistance float32 = 10

	// vertex slots of the quarter circle shadow at the top edge of a fold
	foldTopEdgeShadowVexCount = 22
)

var (
	minPageCurlTan   = math.KTan(math.DegToRad(minPageCurlAngle))
	maxPageCurlTan   = math.KTan(math.DegToRad(maxPageCurlAngle))
	forwardClickTan  = math.KTan(math.K_PI / 6)
	backwardClickTan = math.KTan(math.K_PI / 20)

	DefaultEdgeShadowColor = vertex.ShadowColor{StartColor: 0.1, StartAlpha: 0.25, EndColor: 0.3, EndAlpha: 0}
	DefaultBaseShadowColor = vertex.ShadowColor{StartColor: 0.05, StartAlpha: 0.4, EndColor: 0.3, EndAlpha: 0}
	DefaultEdgeShadowWidth = vertex.NewShadowWidth(5, 30, 0.25)
	DefaultBaseShadowWidth = vertex.NewShadowWidth(2, 40, 0.4)
)

// PageMode selects between one page and a two page spread.
type PageMode int

const (
	SinglePageMode PageMode = iota
	// AutoPageMode shows two pages when the surface is wider than tall.
	AutoPageMode
)

func (m PageMode) String() string {
	if m == AutoPageMode {
		return "auto"
	}
	return "single"
}

// PageIndex addresses a page by its current role.
type PageIndex int

const (
	FirstPage PageIndex = iota
	SecondPage
)

// PageFlip simulates a page curling around a cylinder under a pointer.
// It is not safe for concurrent use: input handlers, Animating and
// Frame must run on one goroutine.
type PageFlip struct {
	viewport Viewport
	pages    [2]*Page
	// slot of the first page in pages
	active int
	mode   PageMode
	state  State

	pixelsOfMesh            int
	maxMeshCount            int
	semiPerimeterRatio      float32
	clickToFlip             bool
	widthRatioOfClickToFlip float32

	// gesture session
	touch      math.Vec2
	lastTouch  math.Vec2
	startTouch math.Vec2
	middle     math.Vec2
	xFold      math.Vec2
	xFold0     math.Vec2
	xFold1     math.Vec2
	yFold      math.Vec2
	yFold0     math.Vec2
	yFold1     math.Vec2
	maxT2OTan  float32
	maxT2DTan  float32
	k          float32
	lenT2O     float32
	radius     float32
	meshCount  int
	vertical   bool
	hasFold    bool

	edgeShadowWidth vertex.ShadowWidth
	baseShadowWidth vertex.ShadowWidth
	front           *vertex.Buffer
	backOfFold      *vertex.BackOfFold
	edgeShadow      *vertex.ShadowBuffer
	baseShadow      *vertex.ShadowBuffer

	gradientLight    metadata.Texture
	gradientLightSet bool
	// handles of destroyed pages or replaced light textures
	orphaned []metadata.Texture

	scroller *easing.Scroller
	lastErr  core.LastError
}

// New creates a page flip with the default configuration. Options are
// applied in order; a rejected option is logged and recorded in
// LastError.
func New(opts ...Option) *PageFlip {
	p := &PageFlip{
		state:                   StateEndIdle,
		mode:                    SinglePageMode,
		pixelsOfMesh:            MeshVertexPixels,
		semiPerimeterRatio:      DefaultSemiPerimeterRatio,
		clickToFlip:             true,
		widthRatioOfClickToFlip: DefaultWidthRatioOfClickToFlip,
		edgeShadowWidth:         DefaultEdgeShadowWidth,
		baseShadowWidth:         DefaultBaseShadowWidth,
		front:                   &vertex.Buffer{},
		backOfFold:              vertex.NewBackOfFold(),
		edgeShadow:              vertex.NewShadowBuffer(foldTopEdgeShadowVexCount, DefaultEdgeShadowColor),
		baseShadow:              vertex.NewShadowBuffer(0, DefaultBaseShadowColor),
		scroller:                easing.NewScroller(nil, nil),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// OnSurfaceCreated resets the interaction state for a new surface.
func (p *PageFlip) OnSurfaceCreated() core.Status {
	p.state = StateEndIdle
	p.vertical = false
	p.hasFold = false
	p.scroller.Abort()
	return core.StatusOK
}

// OnSurfaceChanged rebuilds the viewport, the mesh buffers and the
// pages for a surface of width×height pixels.
func (p *PageFlip) OnSurfaceChanged(width, height int) core.Status {
	if width <= 0 || height <= 0 {
		core.LogWarn("surface %dx%d rejected", width, height)
		return p.lastErr.Set(core.StatusInvalidParameter, "surface size %dx%d", width, height)
	}
	p.viewport.Set(float32(width), float32(height))
	if p.viewport.Width <= 0 {
		return p.lastErr.Set(core.StatusInvalidParameter, "margins leave no room on a %d wide surface", width)
	}
	if err := p.computeMaxMeshCount(); err != nil {
		core.LogError("allocating mesh buffers: %s", err)
		return p.lastErr.Set(core.StatusError, "%s", err)
	}
	p.createPages()
	core.LogDebug("surface changed to %dx%d, max mesh count %d, %d page(s)", width, height, p.maxMeshCount, p.pageCount())
	return core.StatusOK
}

// EnableAutoPage switches between single and auto page mode. It returns
// true when the pages were recreated, in which case every texture has to
// be set again.
func (p *PageFlip) EnableAutoPage(isAuto bool) bool {
	mode := SinglePageMode
	if isAuto {
		mode = AutoPageMode
	}
	if p.mode == mode {
		return false
	}
	p.mode = mode
	if !p.hasSurface() {
		return false
	}
	if (mode == AutoPageMode && p.viewport.SurfaceWidth > p.viewport.SurfaceHeight && p.second() == nil) ||
		(mode == SinglePageMode && p.second() != nil) {
		p.createPages()
		return true
	}
	return false
}

func (p *PageFlip) IsAutoPageEnabled() bool {
	return p.mode == AutoPageMode
}

// SetMargins reserves surface pixels on the left and right of the pages.
func (p *PageFlip) SetMargins(left, right float32) core.Status {
	if left < 0 || right < 0 {
		return p.lastErr.Set(core.StatusInvalidParameter, "margins %.1f, %.1f", left, right)
	}
	if p.hasSurface() && p.viewport.SurfaceWidth-left-right <= 0 {
		return p.lastErr.Set(core.StatusInvalidParameter, "margins %.1f, %.1f exceed surface width", left, right)
	}
	p.viewport.SetMargins(left, right)
	if p.hasSurface() {
		p.createPages()
	}
	return core.StatusOK
}

func (p *PageFlip) hasSurface() bool {
	return p.viewport.SurfaceWidth > 0 && p.viewport.SurfaceHeight > 0
}

func (p *PageFlip) createPages() {
	for i, page := range p.pages {
		if page == nil {
			continue
		}
		page.Textures.RecycleAll()
		p.orphaned = append(p.orphaned, page.Textures.Drain()...)
		p.pages[i] = nil
	}
	p.active = 0
	p.hasFold = false

	v := p.viewport
	if p.mode == AutoPageMode && v.SurfaceWidth > v.SurfaceHeight {
		p.pages[0] = NewPage(v.Left, 0, v.Top, v.Bottom)
		p.pages[1] = NewPage(0, v.Right, v.Top, v.Bottom)
	} else {
		p.pages[0] = NewPage(v.Left, v.Right, v.Top, v.Bottom)
	}
}

func (p *PageFlip) first() *Page {
	return p.pages[p.active]
}

func (p *PageFlip) second() *Page {
	return p.pages[1-p.active]
}

// swapPages makes the second page the first one.
func (p *PageFlip) swapPages() {
	p.active = 1 - p.active
}

func (p *PageFlip) pageCount() int {
	n := 0
	for _, page := range p.pages {
		if page != nil {
			n++
		}
	}
	return n
}

// Page returns the page currently in the given role.
func (p *PageFlip) Page(i PageIndex) (*Page, core.Status) {
	switch i {
	case FirstPage:
		if p.first() == nil {
			return nil, p.lastErr.Set(core.StatusNullPage, "no page, call OnSurfaceChanged first")
		}
		return p.first(), core.StatusOK
	case SecondPage:
		if p.second() == nil {
			return nil, p.lastErr.Set(core.StatusNoSecondPage, "single page mode")
		}
		return p.second(), core.StatusOK
	}
	return nil, p.lastErr.Set(core.StatusInvalidParameter, "page index %d", i)
}

func (p *PageFlip) HasFirstPage() bool {
	return p.first() != nil
}

func (p *PageFlip) HasSecondPage() bool {
	return p.second() != nil
}

func (p *PageFlip) State() State {
	return p.state
}

func (p *PageFlip) Viewport() Viewport {
	return p.viewport
}

func (p *PageFlip) SurfaceWidth() int {
	return int(p.viewport.SurfaceWidth)
}

func (p *PageFlip) SurfaceHeight() int {
	return int(p.viewport.SurfaceHeight)
}

func (p *PageFlip) PixelsOfMesh() int {
	return p.pixelsOfMesh
}

// MaxMeshCount is the mesh count the buffers are sized for. It follows
// the longer side of the surface, not the shorter one, so a fold along
// either axis fits.
func (p *PageFlip) MaxMeshCount() int {
	return p.maxMeshCount
}

// MeshCount is the mesh count of the last fold.
func (p *PageFlip) MeshCount() int {
	return p.meshCount
}

// Radius is the cylinder radius of the last fold.
func (p *PageFlip) Radius() float32 {
	return p.radius
}

func (p *PageFlip) IsVertical() bool {
	return p.vertical
}

// StartTouch is the press point in the centered coordinate system.
func (p *PageFlip) StartTouch() math.Vec2 {
	return p.startTouch
}

// Touch is the current fold corner in the centered coordinate system.
func (p *PageFlip) Touch() math.Vec2 {
	return p.touch
}

// Scroller exposes the animation session, mainly for inspection.
func (p *PageFlip) Scroller() *easing.Scroller {
	return p.scroller
}

func (p *PageFlip) PageWidth(i PageIndex) int {
	page, status := p.Page(i)
	if !status.OK() {
		return 0
	}
	return int(page.Width)
}

func (p *PageFlip) PageHeight(i PageIndex) int {
	page, status := p.Page(i)
	if !status.OK() {
		return 0
	}
	return int(page.Height)
}

func (p *PageFlip) IsLeftPage(i PageIndex) bool {
	page, status := p.Page(i)
	return status.OK() && page.IsLeftPage()
}

func (p *PageFlip) IsRightPage(i PageIndex) bool {
	page, status := p.Page(i)
	return status.OK() && page.IsRightPage()
}

func (p *PageFlip) IsTextureSet(i PageIndex, slot TextureSlot) bool {
	page, status := p.Page(i)
	return status.OK() && page.Textures.IsSet(slot)
}

func (p *PageFlip) IsFirstTextureSet(i PageIndex) bool {
	return p.IsTextureSet(i, FirstTexture)
}

func (p *PageFlip) IsSecondTextureSet(i PageIndex) bool {
	return p.IsTextureSet(i, SecondTexture)
}

func (p *PageFlip) IsBackTextureSet(i PageIndex) bool {
	return p.IsTextureSet(i, BackTexture)
}

// LastError describes the most recent failure of this instance.
func (p *PageFlip) LastError() *core.LastError {
	return &p.lastErr
}

// SetTexture decodes nothing: pb must hold RGB24 or RGBA32 pixels. A nil
// buffer releases the back texture and is an error for the others.
func (p *PageFlip) SetTexture(i PageIndex, slot TextureSlot, pb *metadata.PixelBuffer) core.Status {
	page, status := p.Page(i)
	if !status.OK() {
		return status
	}
	status = page.Textures.Set(slot, pb)
	if !status.OK() {
		if status == core.StatusUnsupportedPixelFormat {
			core.LogError("%s texture of page %d: %s", slot, i, status)
		}
		return p.lastErr.Set(status, "%s texture of page %d", slot, i)
	}
	return core.StatusOK
}

func (p *PageFlip) SetFirstTexture(i PageIndex, pb *metadata.PixelBuffer) core.Status {
	return p.SetTexture(i, FirstTexture, pb)
}

func (p *PageFlip) SetSecondTexture(i PageIndex, pb *metadata.PixelBuffer) core.Status {
	return p.SetTexture(i, SecondTexture, pb)
}

func (p *PageFlip) SetBackTexture(i PageIndex, pb *metadata.PixelBuffer) core.Status {
	return p.SetTexture(i, BackTexture, pb)
}

// SetFirstTextureWithSecond promotes the revealed page of the first page,
// usually after a forward flip ended in single page mode.
func (p *PageFlip) SetFirstTextureWithSecond() core.Status {
	page, status := p.Page(FirstPage)
	if !status.OK() {
		return status
	}
	page.Textures.SetFirstTextureWithSecond()
	return core.StatusOK
}

func (p *PageFlip) SetSecondTextureWithFirst() core.Status {
	page, status := p.Page(FirstPage)
	if !status.OK() {
		return status
	}
	page.Textures.SetSecondTextureWithFirst()
	return core.StatusOK
}

// SwapTexturesWithPage rotates the textures of a spread after a forward
// flip ended in two page mode.
func (p *PageFlip) SwapTexturesWithPage() core.Status {
	first, status := p.Page(FirstPage)
	if !status.OK() {
		return status
	}
	second, status := p.Page(SecondPage)
	if !status.OK() {
		return p.lastErr.Set(core.StatusNullPage, "swapping textures needs two pages")
	}
	second.Textures.SwapWith(first.Textures)
	return core.StatusOK
}

// SetGradientLightTexture sets the lookup texture that lights the back
// of a fold by the sine of its curl angle.
func (p *PageFlip) SetGradientLightTexture(pb *metadata.PixelBuffer) core.Status {
	if pb == nil || pb.Data == nil {
		return p.lastErr.Set(core.StatusNullParameter, "gradient light texture")
	}
	if err := pb.Validate(); err != nil {
		return p.lastErr.Set(statusOf(err), "gradient light texture: %s", err)
	}
	if p.gradientLightSet {
		p.orphaned = append(p.orphaned, p.gradientLight)
	}
	p.gradientLight = metadata.NewTexture(core.IdentifierAquireNewID(), metadata.GRADIENT_LIGHT_TEXTURE_NAME, pb)
	p.gradientLightSet = true
	return core.StatusOK
}

func (p *PageFlip) GradientLightTexture() (metadata.Texture, bool) {
	return p.gradientLight, p.gradientLightSet
}

// RecycleTextures returns every handle that was replaced since the last
// call. The caller releases them once the GPU no longer uses them.
func (p *PageFlip) RecycleTextures() []metadata.Texture {
	out := p.orphaned
	p.orphaned = nil
	for _, page := range p.pages {
		if page != nil {
			out = append(out, page.Textures.Drain()...)
		}
	}
	return out
}

func statusOf(err error) core.Status {
	if se, ok := err.(*core.Error); ok {
		return se.Status
	}
	return core.StatusError
}
