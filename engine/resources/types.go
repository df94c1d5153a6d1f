package resources

type ResourceType int

/** @brief Pre-defined resource types. */
const (
	/** @brief Files the asset manager does not index. */
	ResourceTypeNone ResourceType = iota
	/** @brief Page images: png, jpeg, gif, bmp and webp. */
	ResourceTypeImage
	/** @brief Engine configuration in TOML or YAML. */
	ResourceTypeConfig
)

func (t ResourceType) String() string {
	switch t {
	case ResourceTypeImage:
		return "image"
	case ResourceTypeConfig:
		return "config"
	}
	return "none"
}

/**
 * @brief A generic structure for a resource. All resource loaders
 * load data into these.
 */
type Resource struct {
	/** @brief The name of the resource, its path relative to the asset directory. */
	Name string
	/** @brief The full file path of the resource. */
	FullPath string
	/** @brief The resource type. */
	Type ResourceType
	/** @brief The size of the file in bytes. */
	DataSize uint64
	/** @brief The resource data, a *metadata.PixelBuffer or a *config.Config. */
	Data interface{}
}

/** @brief Parameters used when loading an image. */
type ImageResourceParams struct {
	/** @brief Target width, 0 keeps the source size. */
	Width int
	/** @brief Target height, 0 keeps the source size. */
	Height int
	/** @brief Indicates if the image should be flipped on the y-axis when loaded. */
	FlipY bool
}
