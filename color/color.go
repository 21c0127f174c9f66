/*
Package color implements RGB color values parameterized by a color depth.

A color depth is an encoding scheme for a single channel intensity, defined
by a storage type and a maximum intensity value. Two depths are provided:
TrueColor stores intensities as uint8 with a maximum of 255, and HDR stores
intensities as float32 normalized to a maximum of 1.0. Conversion between
depths goes through the normalized [0, 1] range and truncates when narrowing
to an integer storage type.
*/
package color

// Component is the set of channel storage types used by the supported color
// depths.
type Component interface {
	~uint8 | ~float32
}

// Depth describes a color depth over the storage type T. The two
// implementations are TrueColor and HDR; both are zero-size and safe to
// instantiate from a type parameter.
type Depth[T Component] interface {
	// Max returns the maximum intensity value.
	Max() T

	// Clamp returns x limited to the range [0, Max].
	Clamp(x T) T

	// IsValue reports whether x is a valid intensity, i.e. 0 <= x <= Max.
	IsValue(x T) bool

	// Normalize returns x scaled to the range [0, 1].
	Normalize(x T) float64

	// FromNormalized returns v, which must be in [0, 1], scaled to the
	// range [0, Max]. Integer storage types truncate.
	FromNormalized(v float64) T

	// ComponentSize returns the storage size of one intensity in bytes.
	ComponentSize() int
}

// TrueColor is the 8-bit color depth; intensities are uint8 values in
// [0, 255]. Every uint8 is a valid intensity.
type TrueColor struct{}

func (TrueColor) Max() uint8 { return 255 }

func (TrueColor) Clamp(x uint8) uint8 { return x }

func (TrueColor) IsValue(x uint8) bool { return true }

func (TrueColor) Normalize(x uint8) float64 { return float64(x) / 255 }

func (TrueColor) FromNormalized(v float64) uint8 { return uint8(v * 255) }

func (TrueColor) ComponentSize() int { return 1 }

// HDR is the normalized floating-point color depth; intensities are float32
// values in [0, 1].
type HDR struct{}

func (HDR) Max() float32 { return 1 }

func (HDR) Clamp(x float32) float32 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

func (HDR) IsValue(x float32) bool { return x >= 0 && x <= 1 }

func (HDR) Normalize(x float32) float64 { return float64(x) }

func (HDR) FromNormalized(v float64) float32 { return float32(v) }

func (HDR) ComponentSize() int { return 4 }

// Convert re-encodes the intensity x from the depth D1 to the depth D2.
// The result is the normalized value of x scaled to D2's maximum, truncated
// when D2 uses integer storage. Narrowing conversions quantize; widening
// ones are exact.
func Convert[T2 Component, D2 Depth[T2], T1 Component, D1 Depth[T1]](x T1) T2 {
	var (
		from D1
		to   D2
	)
	return to.FromNormalized(from.Normalize(x))
}
