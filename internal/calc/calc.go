// Package calc implements the material-quantity formulas used by the
// calculator bot. All functions are pure: geometric inputs in, a base
// quantity and a reserve-inflated quantity out.
package calc

import "math"

// DefaultReserve is the reserve margin (percent) applied when the caller
// does not ask for a specific one.
const DefaultReserve = 10.0

// Quantity holds a computed material volume in cubic meters.
type Quantity struct {
	Base        float64
	WithReserve float64
}

// ScreedVolume computes the floor screed volume for the given area (m²)
// and layer thickness (cm).
func ScreedVolume(area, thicknessCM, reserve float64) Quantity {
	base := round2(area * thicknessCM / 100)
	return Quantity{
		Base:        base,
		WithReserve: round2(base * (1 + reserve/100)),
	}
}

// PlasterVolume computes the plaster volume for the given area (m²)
// and layer thickness (mm).
func PlasterVolume(area, thicknessMM, reserve float64) Quantity {
	base := round2(area * thicknessMM / 1000)
	return Quantity{
		Base:        base,
		WithReserve: round2(base * (1 + reserve/100)),
	}
}

// ConcreteVolume computes the concrete volume for a rectangular pour
// of the given dimensions (m).
func ConcreteVolume(length, width, height, reserve float64) Quantity {
	base := round2(length * width * height)
	return Quantity{
		Base:        base,
		WithReserve: round2(base * (1 + reserve/100)),
	}
}

// TileCount computes how many tiles of size a×b (cm) cover the given
// area (m²). Counts are truncated to whole tiles; the reserve-inflated
// count is never smaller than the base count.
func TileCount(area, tileACM, tileBCM, reserve float64) (count, withReserve int) {
	tileArea := (tileACM / 100) * (tileBCM / 100)
	count = int(area / tileArea)
	withReserve = int(float64(count) * (1 + reserve/100))
	if withReserve < count {
		withReserve = count
	}
	return count, withReserve
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
