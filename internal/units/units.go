// Package units converts planner quantities, which are always SI
// internally, into display units for the command-line tools.
package units

import (
	"fmt"
	"math"
	"slices"
	"strings"
)

// Speed units.
const (
	MPS  = "mps"
	MPH  = "mph"
	KMPH = "kmph"
	KPH  = "kph"
)

// Angle units.
const (
	Radians = "rad"
	Degrees = "deg"
)

// ValidUnits contains all valid speed unit values.
var ValidUnits = []string{MPS, MPH, KMPH, KPH}

// ValidAngleUnits contains all valid angle unit values.
var ValidAngleUnits = []string{Radians, Degrees}

// IsValid checks if the given speed unit is known.
func IsValid(unit string) bool {
	return slices.Contains(ValidUnits, unit)
}

// IsValidAngle checks if the given angle unit is known.
func IsValidAngle(unit string) bool {
	return slices.Contains(ValidAngleUnits, unit)
}

// GetValidUnitsString returns a comma-separated list of speed units for
// error messages.
func GetValidUnitsString() string {
	return strings.Join(ValidUnits, ", ")
}

// ConvertSpeed converts a speed from m/s to the target units. Unknown
// units leave the value in m/s.
func ConvertSpeed(speedMPS float64, targetUnits string) float64 {
	switch targetUnits {
	case MPH:
		return speedMPS * 2.2369362920544
	case KMPH, KPH:
		return speedMPS * 3.6
	default:
		return speedMPS
	}
}

// ConvertAcceleration converts m/s² into target speed units per second.
func ConvertAcceleration(accMPS2 float64, targetUnits string) float64 {
	return ConvertSpeed(accMPS2, targetUnits)
}

// ConvertAngle converts radians to the target angle units.
func ConvertAngle(rad float64, targetUnits string) float64 {
	if targetUnits == Degrees {
		return rad * 180 / math.Pi
	}
	return rad
}

// ParseUnits validates a speed and angle unit pair from flags.
func ParseUnits(speed, angle string) error {
	if !IsValid(speed) {
		return fmt.Errorf("invalid speed units %q (want one of %s)", speed, GetValidUnitsString())
	}
	if !IsValidAngle(angle) {
		return fmt.Errorf("invalid angle units %q (want one of %s)", angle, strings.Join(ValidAngleUnits, ", "))
	}
	return nil
}
