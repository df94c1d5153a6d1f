package math

import (
	m "math"
)

const (
	/** @brief An approximate representation of PI. */
	K_PI float32 = 3.14159265358979323846
	/** @brief An approximate representation of PI multiplied by 2. */
	K_PI_2 float32 = 2.0 * K_PI
	/** @brief An approximate representation of PI divided by 2. */
	K_HALF_PI float32 = 0.5 * K_PI
	/** @brief One divided by an approximate representation of PI. */
	K_ONE_OVER_PI float32 = 1.0 / K_PI
	/** @brief A multiplier used to convert degrees to radians. */
	K_DEG2RAD_MULTIPLIER float32 = K_PI / 180.0
	/** @brief A multiplier used to convert radians to degrees. */
	K_RAD2DEG_MULTIPLIER float32 = 180.0 / K_PI
	/** @brief The multiplier to convert seconds to milliseconds. */
	K_SEC_TO_MS_MULTIPLIER float32 = 1000.0
	/** @brief The multiplier to convert milliseconds to seconds. */
	K_MS_TO_SEC_MULTIPLIER float32 = 0.001
	/** @brief Smallest positive number where 1.0 + FLOAT_EPSILON != 0 */
	K_FLOAT_EPSILON float32 = 1.192092896e-07
)

/**
 * Note that these are here in order to keep the geometry code in
 * float32 without converting at every call site.
 */
func KSin(x float32) float32 {
	return float32(m.Sin(float64(x)))
}

func KCos(x float32) float32 {
	return float32(m.Cos(float64(x)))
}

func KTan(x float32) float32 {
	return float32(m.Tan(float64(x)))
}

func KSqrt(x float32) float32 {
	return float32(m.Sqrt(float64(x)))
}

func KAbs(x float32) float32 {
	return float32(m.Abs(float64(x)))
}

func KExp(x float32) float32 {
	return float32(m.Exp(float64(x)))
}

func KPow(x, y float32) float32 {
	return float32(m.Pow(float64(x), float64(y)))
}

func KFloor(x float32) float32 {
	return float32(m.Floor(float64(x)))
}

func KCeil(x float32) float32 {
	return float32(m.Ceil(float64(x)))
}

func KRound(x float32) float32 {
	return float32(m.Round(float64(x)))
}

func KHypot(x, y float32) float32 {
	return float32(m.Hypot(float64(x), float64(y)))
}

// ------------------------------------------
// Vector 2
// ------------------------------------------

/**
 * @brief Creates and returns a new 2-element vector using the supplied values.
 *
 * @param x The x value.
 * @param y The y value.
 * @return A new 2-element vector.
 */
func NewVec2(x, y float32) Vec2 {
	return Vec2{
		X: x,
		Y: y,
	}
}

/**
 * @brief Creates and returns a 2-component vector with all components set to 0.0f.
 */
func NewVec2Zero() Vec2 {
	return Vec2{X: 0.0, Y: 0.0}
}

/**
 * @brief Adds other to the vector and returns a copy of the result.
 */
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{v.X + other.X, v.Y + other.Y}
}

/**
 * @brief Subtracts other from the vector and returns a copy of the result.
 */
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{v.X - other.X, v.Y - other.Y}
}

/**
 * @brief Multiplies every component by scalar and returns a copy of the result.
 */
func (v Vec2) MulScalar(scalar float32) Vec2 {
	return Vec2{v.X * scalar, v.Y * scalar}
}

/**
 * @brief Returns the squared length of the provided vector.
 */
func (v Vec2) LengthSquared() float32 {
	return v.X*v.X + v.Y*v.Y
}

/**
 * @brief Returns the length of the provided vector.
 */
func (v Vec2) Length() float32 {
	return KSqrt(v.LengthSquared())
}

/**
 * @brief Compares all elements of v and other and ensures the difference
 * is less than tolerance.
 */
func (v Vec2) Compare(other Vec2, tolerance float32) bool {
	if KAbs(v.X-other.X) > tolerance {
		return false
	}
	if KAbs(v.Y-other.Y) > tolerance {
		return false
	}
	return true
}

/**
 * @brief Returns the distance between v and other.
 */
func (v Vec2) Distance(other Vec2) float32 {
	return v.Sub(other).Length()
}

/**
 * @brief Returns the point halfway between v and other.
 */
func (v Vec2) Midpoint(other Vec2) Vec2 {
	return Vec2{(v.X + other.X) * 0.5, (v.Y + other.Y) * 0.5}
}

// ------------------------------------------
// Angles
// ------------------------------------------

/**
 * @brief Converts provided degrees to radians.
 */
func DegToRad(degrees float32) float32 {
	return degrees * K_DEG2RAD_MULTIPLIER
}

/**
 * @brief Converts provided radians to degrees.
 */
func RadToDeg(radians float32) float32 {
	return radians * K_RAD2DEG_MULTIPLIER
}
