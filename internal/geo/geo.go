package geo

import (
	"fmt"
	"math"
)

// Axis selects the valid range and hemisphere letters for a coordinate.
type Axis string

const (
	AxisLatitude  Axis = "lat"
	AxisLongitude Axis = "lng"
)

// Direction is a hemisphere letter paired with an encoded magnitude.
type Direction string

const (
	DirNorth Direction = "N"
	DirSouth Direction = "S"
	DirEast  Direction = "E"
	DirWest  Direction = "W"
)

// Encoded is the ledger's only supported coordinate representation: a
// non-negative fixed-point magnitude in hundredths of a degree plus a
// hemisphere letter. The ledger's numeric type carries no fractional
// precision, so anything below 0.01 degrees is dropped at encode time.
type Encoded struct {
	Magnitude int64
	Direction Direction
}

// RangeError reports a decimal-degree value outside the axis bounds.
type RangeError struct {
	Axis  Axis
	Value float64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("geo: %v out of range for axis %q", e.Value, e.Axis)
}

// maxDegrees returns the inclusive upper bound of the unsigned magnitude
// for the axis: 90 for latitude, 180 for longitude.
func maxDegrees(axis Axis) float64 {
	if axis == AxisLatitude {
		return 90
	}
	return 180
}

// Encode converts an unsigned decimal-degree magnitude into the ledger's
// fixed-point form. The caller supplies the hemisphere letter separately;
// it is not derived from sign because the ledger pairs a non-negative
// magnitude with an explicit letter.
func Encode(decimalDegrees float64, axis Axis) (int64, error) {
	if axis != AxisLatitude && axis != AxisLongitude {
		return 0, fmt.Errorf("geo: unknown axis %q", axis)
	}
	if math.IsNaN(decimalDegrees) || math.IsInf(decimalDegrees, 0) {
		return 0, &RangeError{Axis: axis, Value: decimalDegrees}
	}
	if decimalDegrees < 0 || decimalDegrees > maxDegrees(axis) {
		return 0, &RangeError{Axis: axis, Value: decimalDegrees}
	}
	return int64(math.Round(decimalDegrees * 100)), nil
}

// Decode converts a fixed-point magnitude back into decimal degrees. A zero
// magnitude is valid under any letter; 0°S is not normalized to 0°N, so
// callers must not treat the letter as significant at the equator or the
// prime meridian.
func Decode(magnitude int64, direction Direction) (float64, Direction) {
	return float64(magnitude) / 100, direction
}

// ValidDirection reports whether d is a legal hemisphere letter for axis.
func ValidDirection(d Direction, axis Axis) bool {
	switch axis {
	case AxisLatitude:
		return d == DirNorth || d == DirSouth
	case AxisLongitude:
		return d == DirEast || d == DirWest
	}
	return false
}
