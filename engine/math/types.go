package math

// Vec2 represents a 2D vector
type Vec2 struct {
	X, Y float32
}

/**
 * @brief A point of a page mesh: a position in the centered
 * coordinate system plus its texture coordinate.
 */
type Point struct {
	/** @brief The x coordinate. */
	X float32
	/** @brief The y coordinate. */
	Y float32
	/** @brief The z coordinate, 0 for a flat page. */
	Z float32
	/** @brief The texture x coordinate in [0, 1]. */
	TexX float32
	/** @brief The texture y coordinate in [0, 1]. */
	TexY float32
}

/**
 * @brief An axis aligned rectangle in the centered coordinate
 * system, Y grows upward so Top > Bottom.
 */
type Rect struct {
	Left   float32
	Right  float32
	Top    float32
	Bottom float32
}
