package flip

import (
	"errors"

	"github.com/spaghettifunk/pageflip/engine/containers"
	"github.com/spaghettifunk/pageflip/engine/core"
	"github.com/spaghettifunk/pageflip/engine/renderer/metadata"
)

// TextureSlot names one of the three textures of a page.
type TextureSlot int

const (
	// FirstTexture is the page currently shown.
	FirstTexture TextureSlot = iota
	// SecondTexture is revealed under the fold.
	SecondTexture
	// BackTexture is drawn on the back of the fold. Without it the
	// first texture is mirrored there.
	BackTexture

	textureSlotCount
)

func (s TextureSlot) String() string {
	switch s {
	case FirstTexture:
		return "first"
	case SecondTexture:
		return "second"
	case BackTexture:
		return "back"
	}
	return "unknown"
}

// recycleCapacity covers one frame of churn: three slots on two pages.
const recycleCapacity = int(textureSlotCount) << 1

// number of pixels per square AverageColor samples for the mask color
const maskColorSamples = 30

type pageTexture struct {
	handle    metadata.Texture
	set       bool
	maskColor [3]float32
}

// Textures owns the texture slots of a page. Handles that get replaced
// are not released right away: they wait on a recycle list until the
// renderer drains it at a frame boundary.
type Textures struct {
	slots    [textureSlotCount]pageTexture
	recycler *containers.RingQueue[metadata.Texture]
	overflow []metadata.Texture
}

func NewTextures() *Textures {
	return &Textures{
		recycler: containers.NewRingQueue[metadata.Texture](recycleCapacity),
	}
}

func (t *Textures) recycle(slot TextureSlot) {
	tex := &t.slots[slot]
	if !tex.set {
		return
	}
	tex.set = false
	if err := t.recycler.Enqueue(tex.handle); err != nil {
		if errors.Is(err, containers.ErrQueueFull) {
			core.LogWarn("texture recycle list is full, keeping %s until the next drain", tex.handle.Name)
		}
		t.overflow = append(t.overflow, tex.handle)
	}
}

// Set creates a handle from pb and stores it in slot. A nil buffer is
// only valid for the back texture, where it releases the slot.
func (t *Textures) Set(slot TextureSlot, pb *metadata.PixelBuffer) core.Status {
	if slot < FirstTexture || slot >= textureSlotCount {
		return core.StatusInvalidParameter
	}
	if pb == nil || pb.Data == nil {
		if slot == BackTexture {
			t.recycle(BackTexture)
			return core.StatusOK
		}
		return core.StatusNullParameter
	}
	if err := pb.Validate(); err != nil {
		var se *core.Error
		if errors.As(err, &se) {
			return se.Status
		}
		return core.StatusError
	}

	handle := metadata.NewTexture(
		core.IdentifierAquireNewID(),
		core.NewTextureName(metadata.PAGE_TEXTURE_PREFIX),
		pb,
	)
	t.recycle(slot)
	t.slots[slot] = pageTexture{
		handle:    handle,
		set:       true,
		maskColor: maskColorOf(AverageColor(pb, maskColorSamples)),
	}
	return core.StatusOK
}

// SetFirstTextureWithSecond shows the page that was under the fold.
func (t *Textures) SetFirstTextureWithSecond() {
	t.recycle(FirstTexture)
	t.slots[FirstTexture] = t.slots[SecondTexture]
	t.slots[SecondTexture].set = false
}

// SetSecondTextureWithFirst moves the shown page under the fold, used
// when a backward flip starts.
func (t *Textures) SetSecondTextureWithFirst() {
	t.recycle(SecondTexture)
	t.slots[SecondTexture] = t.slots[FirstTexture]
	t.slots[FirstTexture].set = false
}

// SwapWith hands textures over between the two pages of a spread after
// a forward flip finished. The receiver is the page that stays, other is
// the page that was turned.
func (t *Textures) SwapWith(other *Textures) {
	t.recycle(SecondTexture)
	t.slots[SecondTexture] = t.slots[FirstTexture]
	t.recycle(BackTexture)
	t.slots[BackTexture] = other.slots[FirstTexture]
	t.slots[FirstTexture] = other.slots[BackTexture]
	other.slots[BackTexture].set = false
	other.slots[FirstTexture] = other.slots[SecondTexture]
	other.slots[SecondTexture].set = false
}

// RecycleAll moves every set slot onto the recycle list.
func (t *Textures) RecycleAll() {
	for slot := FirstTexture; slot < textureSlotCount; slot++ {
		t.recycle(slot)
	}
}

// Drain empties the recycle list, oldest first. The caller owns the
// returned handles and must release them.
func (t *Textures) Drain() []metadata.Texture {
	out := t.recycler.Drain()
	if len(t.overflow) > 0 {
		out = append(out, t.overflow...)
		t.overflow = nil
	}
	return out
}

func (t *Textures) Pending() int {
	return t.recycler.Len() + len(t.overflow)
}

func (t *Textures) IsSet(slot TextureSlot) bool {
	return t.slots[slot].set
}

func (t *Textures) IsFirstTextureSet() bool {
	return t.slots[FirstTexture].set
}

func (t *Textures) IsSecondTextureSet() bool {
	return t.slots[SecondTexture].set
}

func (t *Textures) IsBackTextureSet() bool {
	return t.slots[BackTexture].set
}

// Texture returns the handle of slot, the zero handle when unset.
func (t *Textures) Texture(slot TextureSlot) metadata.Texture {
	if !t.slots[slot].set {
		return metadata.Texture{}
	}
	return t.slots[slot].handle
}

// BackTextureOrFirst returns what the back of the fold shows.
func (t *Textures) BackTextureOrFirst() metadata.Texture {
	if t.slots[BackTexture].set {
		return t.slots[BackTexture].handle
	}
	return t.Texture(FirstTexture)
}

func (t *Textures) MaskColorOfFirstTexture() [3]float32 {
	return t.slots[FirstTexture].maskColor
}
