package metadata

/** @brief The name prefix of page textures. */
const PAGE_TEXTURE_PREFIX string = "page"

/** @brief The name of the gradient light texture used on the back of a fold. */
const GRADIENT_LIGHT_TEXTURE_NAME string = "gradient_light"

type TextureFlag int

const (
	/** @brief Indicates if the texture has transparency. */
	TextureFlagHasTransparency TextureFlag = 0x1
	/** @brief Indicates the texture was uploaded by a backend. */
	TextureFlagUploaded TextureFlag = 0x2
)

/** @brief Holds bit flags for textures.. */
type TextureFlagBits uint8

/**
 * @brief Represents a texture handle. Handles are plain values: the page
 * flip core creates them from pixel buffers and a backend uploads the
 * pixels the first time it sees an ID.
 */
type Texture struct {
	/** @brief The unique texture identifier. 0 means no texture. */
	ID uint32
	/** @brief The texture Width. */
	Width uint32
	/** @brief The texture Height. */
	Height uint32
	/** @brief The number of channels in the texture. */
	ChannelCount uint8
	/** @brief Holds various Flags for this texture. */
	Flags TextureFlagBits
	/** @brief The texture Generation. Incremented every time the data is reloaded. */
	Generation uint32
	/** @brief The texture Name. */
	Name string
	/** @brief The source pixels, kept until a backend uploads them. */
	Pixels *PixelBuffer
	/** @brief Backend specific data. */
	InternalData interface{}
}

// NewTexture builds a handle for pb with the given id and name.
func NewTexture(id uint32, name string, pb *PixelBuffer) Texture {
	t := Texture{
		ID:           id,
		Name:         name,
		Width:        uint32(pb.Width),
		Height:       uint32(pb.Height),
		ChannelCount: uint8(pb.Format.BytesPerPixel()),
		Pixels:       pb,
	}
	if pb.Format == PixelFormatRGBA32 {
		t.Flags |= TextureFlagBits(TextureFlagHasTransparency)
	}
	return t
}

func (t Texture) IsValid() bool {
	return t.ID != 0
}
