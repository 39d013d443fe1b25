package pptx

import "math"

// EMU (English Metric Units) conversions.
// 1 inch = 914400 EMU, 1 point = 12700 EMU.

const (
	emuPerInch  = 914400
	emuPerPoint = 12700
	// maxEMU caps conversions to keep downstream arithmetic overflow-free.
	maxEMU = math.MaxInt64 / 2
)

// Inch converts inches to EMU, clamped to the safe range.
func Inch(n float64) int64 {
	return clampEMU(n * emuPerInch)
}

// Point converts typographic points to EMU.
func Point(n float64) int64 {
	return clampEMU(n * emuPerPoint)
}

// EMUToInch converts EMU to inches.
func EMUToInch(emu int64) float64 {
	return float64(emu) / emuPerInch
}

// EMUToPoint converts EMU to points.
func EMUToPoint(emu int64) float64 {
	return float64(emu) / emuPerPoint
}

func clampEMU(v float64) int64 {
	if v > float64(maxEMU) {
		return maxEMU
	}
	if v < -float64(maxEMU) {
		return -maxEMU
	}
	return int64(v)
}
