package calculator

import "fmt"

// VolumeUnit is the unit every volume in this package is expressed in.
const VolumeUnit = "ul"

// FormatVolume renders v with one decimal place and the volume unit, e.g. "102.0 ul".
func FormatVolume(v float64) string {
	return fmt.Sprintf("%.1f %s", v, VolumeUnit)
}
