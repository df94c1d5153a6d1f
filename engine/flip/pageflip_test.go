package flip

import (
	m "math"
	"testing"

	"github.com/spaghettifunk/pageflip/engine/core"
	"github.com/spaghettifunk/pageflip/engine/math"
	"github.com/spaghettifunk/pageflip/engine/renderer/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slices"
)

// newSinglePage returns a flip on a 600x800 surface: one page spanning
// x in [-300, 300) and y in [-400, 400).
func newSinglePage(t *testing.T) (*PageFlip, *core.ManualTime) {
	t.Helper()
	clock := core.NewManualTime(0)
	p := New(WithTimeSource(clock))
	require.Equal(t, core.StatusOK, p.OnSurfaceCreated())
	require.Equal(t, core.StatusOK, p.OnSurfaceChanged(600, 800))
	return p, clock
}

func solidPixels(w, h int, c uint8) *metadata.PixelBuffer {
	pb := metadata.NewPixelBuffer(w, h, metadata.PixelFormatRGBA32)
	for i := range pb.Data {
		pb.Data[i] = c
	}
	return pb
}

func assertVec2(t *testing.T, want, got math.Vec2) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-3, "x")
	assert.InDelta(t, want.Y, got.Y, 1e-3, "y")
}

// runAnimation ticks until the animation stops, failing after limit ticks.
func runAnimation(t *testing.T, p *PageFlip, clock *core.ManualTime, limit int) int {
	t.Helper()
	ticks := 0
	for p.Animating() {
		clock.Advance(16)
		ticks++
		require.Less(t, ticks, limit, "animation did not stop")
	}
	return ticks
}

func TestMaxMeshCount(t *testing.T) {
	p := New()
	require.Equal(t, core.StatusOK, p.OnSurfaceChanged(300, 300))
	assert.Equal(t, 30, p.MaxMeshCount())

	require.Equal(t, core.StatusOK, p.OnSurfaceChanged(310, 200))
	assert.Equal(t, 32, p.MaxMeshCount(), "31 rounds up to even")
}

func TestMeshSubdivisions(t *testing.T) {
	tests := []struct {
		length int
		want   int
	}{
		{length: 192, want: 38},
		{length: 960, want: 96},
		{length: 100, want: 20},
		{length: 45, want: 22},
	}
	for _, tt := range tests {
		got := meshSubdivisions(tt.length, MeshVertexPixels)
		assert.Equal(t, tt.want, got, "length %d", tt.length)
		assert.Zero(t, got%2)
		assert.GreaterOrEqual(t, got, MeshCountThreshold)
	}
	// too short to reach the threshold even at one pixel per mesh
	assert.Equal(t, 8, meshSubdivisions(7, MeshVertexPixels))
}

func TestTanOfCurlAngle(t *testing.T) {
	p, _ := newSinglePage(t)
	assert.Equal(t, maxPageCurlTan, p.tanOfCurlAngle(100))
	assert.Equal(t, minPageCurlTan, p.tanOfCurlAngle(700))
	// 400 / 400 gives 65 - 60 = 5 degrees
	assert.InDelta(t, m.Tan(5*m.Pi/180), p.tanOfCurlAngle(400), 1e-5)
	assert.InDelta(t, m.Tan(35*m.Pi/180), p.tanOfCurlAngle(200), 1e-5)
}

func TestSurfaceChangedRejectsEmptySurface(t *testing.T) {
	p := New()
	assert.Equal(t, core.StatusInvalidParameter, p.OnSurfaceChanged(0, 100))
	assert.Equal(t, core.StatusInvalidParameter, p.LastError().Status())
	assert.False(t, p.HasFirstPage())
}

func TestQueriesBeforeSurface(t *testing.T) {
	p := New()
	_, status := p.Page(FirstPage)
	assert.Equal(t, core.StatusNullPage, status)
	assert.False(t, p.OnFingerDown(10, 10))
	assert.Equal(t, core.StatusUninit, p.LastError().Status())
	assert.False(t, p.Animating())
	assert.Zero(t, p.PageWidth(FirstPage))
}

func TestSinglePageLayout(t *testing.T) {
	p, _ := newSinglePage(t)
	assert.False(t, p.HasSecondPage())
	assert.Equal(t, 600, p.PageWidth(FirstPage))
	assert.Equal(t, 800, p.PageHeight(FirstPage))

	_, status := p.Page(SecondPage)
	assert.Equal(t, core.StatusNoSecondPage, status)
	assert.Equal(t, core.StatusNoSecondPage, p.LastError().Status())

	f := p.Frame()
	assert.False(t, f.Folding)
	require.Len(t, f.Pages, 1)
	assert.Equal(t, math.Rect{Left: -300, Right: 300, Top: 400, Bottom: -400}, f.Pages[0].Rect)
}

func TestAutoPageCreatesSpread(t *testing.T) {
	p := New(WithAutoPage(true))
	require.Equal(t, core.StatusOK, p.OnSurfaceChanged(800, 600))
	require.True(t, p.HasSecondPage())
	assert.True(t, p.IsLeftPage(FirstPage))
	assert.True(t, p.IsRightPage(SecondPage))

	// pressing the right page makes it the first one
	assert.True(t, p.OnFingerDown(700, 300))
	assert.True(t, p.IsRightPage(FirstPage))
	assert.True(t, p.IsLeftPage(SecondPage))

	assert.True(t, p.EnableAutoPage(false), "pages are recreated")
	assert.False(t, p.HasSecondPage())
	assert.False(t, p.EnableAutoPage(false))
}

type foldSnapshot struct {
	back, front, edge, base      []float32
	backCount, frontCount, split int
	edgeCount, baseCount         int
}

func snapshotFold(f FoldFrame) foldSnapshot {
	return foldSnapshot{
		back:       slices.Clone(f.BackPositions),
		front:      slices.Clone(f.FrontPositions),
		edge:       slices.Clone(f.EdgeShadow.Vertices),
		base:       slices.Clone(f.BaseShadow.Vertices),
		backCount:  f.BackCount,
		frontCount: f.FrontCount,
		split:      f.FrontSplit,
		edgeCount:  f.EdgeShadow.Count,
		baseCount:  f.BaseShadow.Count,
	}
}

func TestSpreadMoveAcrossPagesIsIgnored(t *testing.T) {
	clock := core.NewManualTime(0)
	p := New(WithTimeSource(clock), WithAutoPage(true))
	require.Equal(t, core.StatusOK, p.OnSurfaceCreated())
	require.Equal(t, core.StatusOK, p.OnSurfaceChanged(1000, 700))
	require.True(t, p.HasSecondPage())

	require.True(t, p.OnFingerDown(950, 600))
	require.True(t, p.IsRightPage(FirstPage))

	rejected := 0
	for x := float32(940); x >= 100; x -= 10 {
		before := p.State()
		touch := p.Touch()
		fold := snapshotFold(p.Frame().Fold)

		if p.OnFingerMove(x, 560, true, false) || before != StateForward {
			continue
		}
		rejected++
		assert.Equal(t, StateForward, p.State(), "x %v", x)
		assert.Equal(t, touch, p.Touch(), "x %v", x)
		assert.Equal(t, fold, snapshotFold(p.Frame().Fold), "x %v", x)
	}
	require.Positive(t, rejected, "no move crossed into the left page")
	assert.Equal(t, StateForward, p.State())

	require.True(t, p.OnFingerUp(100, 560, 300, true, false))
	assert.Equal(t, StateForward, p.State())
	runAnimation(t, p, clock, 200)
	assert.Equal(t, StateEndAfterForward, p.State())
}

func TestFingerDown(t *testing.T) {
	p, _ := newSinglePage(t)

	assert.False(t, p.OnFingerDown(-10, 100))
	assert.Equal(t, StateEndIdle, p.State(), "rejected press leaves the state alone")

	assert.True(t, p.OnFingerDown(100, 100))
	assert.Equal(t, StateBegin, p.State())
	assert.Equal(t, math.NewVec2(-200, 300), p.StartTouch())
	assert.Equal(t, p.StartTouch(), p.Touch())
}

func TestSmallMoveKeepsBegin(t *testing.T) {
	p, _ := newSinglePage(t)
	require.True(t, p.OnFingerDown(500, 700))
	assert.False(t, p.OnFingerMove(490, 700, true, true))
	assert.Equal(t, StateBegin, p.State())
	assert.False(t, p.Frame().Folding)
}

func TestForwardMoveVertical(t *testing.T) {
	p, _ := newSinglePage(t)
	require.True(t, p.OnFingerDown(500, 700))
	require.True(t, p.OnFingerMove(300, 700, true, true))

	assert.Equal(t, StateForward, p.State())
	assert.True(t, p.IsVertical())
	// dx is scaled by 1.2 so the corner leads the finger
	assertVec2(t, math.NewVec2(60, 400), p.Touch())
	assert.InDelta(t, 240*0.8/m.Pi, p.Radius(), 1e-3)
	assert.Equal(t, 19, p.MeshCount())

	page, status := p.Page(FirstPage)
	require.Equal(t, core.StatusOK, status)
	assert.Equal(t, CornerRightTop, page.OriginCorner())
	assert.Equal(t, FoldYClipped, page.FoldCase())

	f := p.Frame()
	require.True(t, f.Folding)
	assert.Empty(t, f.Pages)
	assert.Equal(t, 2*(19+1)+2, f.Fold.BackCount)
	assert.Equal(t, 8, f.Fold.FrontCount)
	assert.Equal(t, 4, f.Fold.FrontSplit)
	assert.Equal(t, 4, f.Fold.EdgeShadow.Count)
	assert.Equal(t, 4, f.Fold.BaseShadow.Count)
	assert.Len(t, f.Fold.BackPositions, f.Fold.BackCount*4)
	assert.Len(t, f.Fold.FrontTexCoords, f.Fold.FrontCount*2)
}

func TestCurlRadius(t *testing.T) {
	p, _ := newSinglePage(t)
	require.True(t, p.OnFingerDown(500, 700))
	// 100 / 1.2 pixels of travel puts the corner 100 units from the origin
	require.True(t, p.OnFingerMove(500-100/1.2, 700, true, true))
	assert.InDelta(t, 25.46, p.Radius(), 0.01)
}

func TestForwardMoveSlope(t *testing.T) {
	p, _ := newSinglePage(t)
	require.True(t, p.OnFingerDown(500, 700))
	require.True(t, p.OnFingerMove(300, 600, true, true))

	assert.Equal(t, StateForward, p.State())
	assert.False(t, p.IsVertical())
	assertVec2(t, math.NewVec2(60, -300), p.Touch())

	page, _ := p.Page(FirstPage)
	assert.Equal(t, CornerRightBottom, page.OriginCorner())

	f := p.Frame()
	require.True(t, f.Folding)
	assert.Greater(t, f.Fold.BackCount, 2*p.MeshCount())
	assert.Greater(t, f.Fold.FrontSplit, 0)
	assert.LessOrEqual(t, f.Fold.FrontSplit, f.Fold.FrontCount)
	assert.Greater(t, f.Fold.EdgeShadow.Count, foldTopEdgeShadowVexCount)
	assert.Equal(t, float32(-0.5), f.Fold.BaseShadow.Z)
	for i, v := range f.Fold.BackPositions {
		assert.False(t, m.IsNaN(float64(v)) || m.IsInf(float64(v), 0), "back float %d is %v", i, v)
	}
	for i, v := range f.Fold.FrontPositions {
		assert.False(t, m.IsNaN(float64(v)) || m.IsInf(float64(v), 0), "front float %d is %v", i, v)
	}
}

func TestReleaseNearOriginRestores(t *testing.T) {
	p, clock := newSinglePage(t)
	require.True(t, p.OnFingerDown(500, 700))
	require.True(t, p.OnFingerMove(300, 700, true, true))

	require.True(t, p.OnFingerUp(400, 700, 300, true, true))
	assert.Equal(t, StateRestore, p.State())
	assert.Equal(t, float32(300), p.Scroller().FinalX())
	assert.Equal(t, float32(400), p.Scroller().FinalY())

	clock.Advance(300)
	assert.False(t, p.Animating())
	assert.Equal(t, StateEndAfterRestore, p.State())
	assert.False(t, p.IsAnimating())
}

func TestForwardFlipRunsToEnd(t *testing.T) {
	p, clock := newSinglePage(t)
	require.True(t, p.OnFingerDown(500, 700))
	require.True(t, p.OnFingerMove(300, 700, true, true))
	assert.True(t, p.CanAnimate(-10, 700))
	assert.False(t, p.CanAnimate(100, 700))

	require.True(t, p.OnFingerUp(100, 700, 400, true, true))
	assert.Equal(t, StateForward, p.State())
	assert.Equal(t, float32(-900), p.Scroller().FinalX())

	ticks := runAnimation(t, p, clock, 100)
	assert.Greater(t, ticks, 1)
	assert.Equal(t, StateEndAfterForward, p.State())
	assert.False(t, p.Frame().Folding)
}

func TestBackwardFlip(t *testing.T) {
	p, clock := newSinglePage(t)
	require.Equal(t, core.StatusOK, p.SetFirstTexture(FirstPage, solidPixels(4, 4, 200)))

	require.True(t, p.OnFingerDown(100, 400))
	require.True(t, p.OnFingerMove(300, 400, true, true))
	assert.Equal(t, StateBackward, p.State())
	// the shown page moves under the fold
	assert.False(t, p.IsFirstTextureSet(FirstPage))
	assert.True(t, p.IsSecondTextureSet(FirstPage))
	assertVec2(t, math.NewVec2(-30, 400), p.Touch())

	require.True(t, p.OnFingerUp(400, 400, 200, true, true))
	assert.Equal(t, StateBackward, p.State())
	assert.Equal(t, float32(300), p.Scroller().FinalX())

	runAnimation(t, p, clock, 100)
	assert.Equal(t, StateEndAfterBackward, p.State())
}

func TestBackwardReleasedEarlyTurnsForward(t *testing.T) {
	p, _ := newSinglePage(t)
	require.True(t, p.OnFingerDown(100, 400))
	require.True(t, p.OnFingerMove(300, 400, true, true))
	require.True(t, p.OnFingerUp(250, 400, 200, true, true))
	assert.Equal(t, StateForward, p.State())
	assert.Equal(t, float32(-900), p.Scroller().FinalX())
}

func TestClickToFlip(t *testing.T) {
	t.Run("forward", func(t *testing.T) {
		p, _ := newSinglePage(t)
		require.True(t, p.OnFingerDown(550, 400))
		require.True(t, p.OnFingerUp(550, 400, 0, true, true))
		assert.Equal(t, StateForward, p.State())
		s := p.Scroller()
		assert.Equal(t, float32(150), s.StartX())
		assert.InDelta(t, 400-150*m.Tan(m.Pi/6), s.StartY(), 1e-3)
		assert.Equal(t, float32(-900), s.FinalX())
		assert.Equal(t, float32(400), s.FinalY())
	})
	t.Run("backward", func(t *testing.T) {
		p, _ := newSinglePage(t)
		require.True(t, p.OnFingerDown(100, 400))
		require.True(t, p.OnFingerUp(100, 400, 0, true, true))
		assert.Equal(t, StateBackward, p.State())
		s := p.Scroller()
		assert.Equal(t, float32(-300), s.StartX())
		assert.Equal(t, float32(295), s.FinalX())
	})
	t.Run("disabled", func(t *testing.T) {
		p, _ := newSinglePage(t)
		p.EnableClickToFlip(false)
		require.True(t, p.OnFingerDown(550, 400))
		assert.False(t, p.OnFingerUp(550, 400, 0, true, true))
		assert.Equal(t, StateEndIdle, p.State())
	})
	t.Run("cannot flip", func(t *testing.T) {
		p, _ := newSinglePage(t)
		require.True(t, p.OnFingerDown(550, 400))
		assert.False(t, p.OnFingerUp(550, 400, 0, false, false))
		assert.Equal(t, StateEndIdle, p.State())
	})
}

func TestAbortEndsFlip(t *testing.T) {
	p, _ := newSinglePage(t)
	require.True(t, p.OnFingerDown(500, 700))
	require.True(t, p.OnFingerMove(300, 700, true, true))
	require.True(t, p.OnFingerUp(100, 700, 400, true, true))
	require.True(t, p.IsAnimating())

	p.Abort()
	assert.False(t, p.IsAnimating())
	assert.Equal(t, StateEndAfterForward, p.State())
}

func TestSettersRoundTrip(t *testing.T) {
	p := New()

	assert.Equal(t, core.StatusOK, p.SetShadowWidthOfFoldEdges(5, 60, 0.3))
	assert.Equal(t, core.StatusInvalidParameter, p.SetShadowWidthOfFoldEdges(5, 60, 1.5))
	assert.Equal(t, core.StatusInvalidParameter, p.LastError().Status())
	assert.Equal(t, float32(0.3), p.ShadowWidthOfFoldEdges().Ratio)
	assert.Equal(t, float32(60), p.ShadowWidthOfFoldEdges().Max)

	assert.Equal(t, core.StatusOK, p.SetShadowWidthOfFoldBase(5, 80, 0.4))
	assert.Equal(t, core.StatusInvalidParameter, p.SetShadowWidthOfFoldBase(50, 10, 0.4))
	assert.Equal(t, float32(80), p.ShadowWidthOfFoldBase().Max)

	assert.Equal(t, core.StatusOK, p.SetShadowColorOfFoldEdges(0.2, 0.3, 0.4, 0))
	assert.Equal(t, core.StatusInvalidParameter, p.SetShadowColorOfFoldEdges(0.2, 1.3, 0.4, 0))
	assert.Equal(t, float32(0.3), p.ShadowColorOfFoldEdges().StartAlpha)
	assert.Equal(t, core.StatusInvalidParameter, p.SetShadowColorOfFoldBase(-1, 0, 0, 0))
	assert.Equal(t, DefaultBaseShadowColor, p.ShadowColorOfFoldBase())

	assert.Equal(t, core.StatusOK, p.SetMaskAlphaOfFoldInt(51))
	assert.InDelta(t, 0.2, p.MaskAlphaOfFold(), 1e-6)
	assert.Equal(t, core.StatusInvalidParameter, p.SetMaskAlphaOfFoldInt(300))
	assert.InDelta(t, 0.2, p.MaskAlphaOfFold(), 1e-6)
	assert.Equal(t, core.StatusOK, p.SetMaskAlphaOfFold(0.75))
	assert.Equal(t, float32(0.75), p.MaskAlphaOfFold())

	assert.Equal(t, core.StatusInvalidParameter, p.SetSemiPerimeterRatio(0))
	assert.Equal(t, DefaultSemiPerimeterRatio, p.SemiPerimeterRatio())
	assert.Equal(t, core.StatusInvalidParameter, p.SetPixelsOfMesh(0))
	assert.Equal(t, MeshVertexPixels, p.PixelsOfMesh())
	assert.Equal(t, core.StatusInvalidParameter, p.SetWidthRatioOfClickToFlip(0.6))
	assert.Equal(t, core.StatusOK, p.SetWidthRatioOfClickToFlip(0.3))
	assert.Equal(t, float32(0.3), p.WidthRatioOfClickToFlip())
}

func TestPixelsOfMeshResizesBuffers(t *testing.T) {
	p, _ := newSinglePage(t)
	assert.Equal(t, 80, p.MaxMeshCount())
	require.Equal(t, core.StatusOK, p.SetPixelsOfMesh(5))
	assert.Equal(t, 160, p.MaxMeshCount())
}

func TestTextureSetters(t *testing.T) {
	p, _ := newSinglePage(t)

	assert.Equal(t, core.StatusNullParameter, p.SetFirstTexture(FirstPage, nil))
	assert.Equal(t, core.StatusNoSecondPage, p.SetFirstTexture(SecondPage, solidPixels(2, 2, 1)))

	bad := solidPixels(2, 2, 1)
	bad.Format = metadata.PixelFormatUnknown
	assert.Equal(t, core.StatusUnsupportedPixelFormat, p.SetSecondTexture(FirstPage, bad))

	require.Equal(t, core.StatusOK, p.SetFirstTexture(FirstPage, solidPixels(6, 6, 10)))
	require.Equal(t, core.StatusOK, p.SetFirstTexture(FirstPage, solidPixels(6, 6, 20)))
	require.Equal(t, core.StatusOK, p.SetBackTexture(FirstPage, solidPixels(6, 6, 30)))
	require.Equal(t, core.StatusOK, p.SetBackTexture(FirstPage, nil))
	assert.False(t, p.IsBackTextureSet(FirstPage))

	recycled := p.RecycleTextures()
	assert.Len(t, recycled, 2, "replaced first texture and released back texture")
	assert.Empty(t, p.RecycleTextures())

	require.Equal(t, core.StatusOK, p.SetGradientLightTexture(solidPixels(256, 1, 0)))
	_, ok := p.GradientLightTexture()
	assert.True(t, ok)
	assert.Equal(t, core.StatusNullParameter, p.SetGradientLightTexture(nil))

	// recreating the pages hands their textures back
	require.Equal(t, core.StatusOK, p.OnSurfaceChanged(300, 300))
	assert.Len(t, p.RecycleTextures(), 1)
}

func TestSwapTexturesNeedsSpread(t *testing.T) {
	p, _ := newSinglePage(t)
	assert.Equal(t, core.StatusNullPage, p.SwapTexturesWithPage())
	assert.Equal(t, core.StatusOK, p.SetFirstTextureWithSecond())
}

func TestMarginsShrinkPages(t *testing.T) {
	p, _ := newSinglePage(t)
	require.Equal(t, core.StatusOK, p.SetMargins(20, 40))
	// both margins are taken off the width and again off the page edges
	assert.Equal(t, 480, p.PageWidth(FirstPage))
	assert.Equal(t, core.StatusInvalidParameter, p.SetMargins(-1, 0))
	assert.Equal(t, core.StatusInvalidParameter, p.SetMargins(300, 300))
}
