package layers

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/interp"
)

// Cumulative converts a thickness scheme (mm per layer) into cumulative depths at the
// bottom of each layer.
func Cumulative(thickness []float64) []float64 {
	if len(thickness) == 0 {
		return nil
	}
	return floats.CumSum(make([]float64, len(thickness)), thickness)
}

// Depth returns the total depth of a thickness scheme.
func Depth(thickness []float64) float64 {
	return floats.Sum(thickness)
}

// Remap converts values defined on fromThickness onto toThickness.
//
// Each target layer takes the value linearly interpolated at its cumulative bottom
// depth between the two bracketing source layer bottoms. Targets deeper than the
// source profile interpolate towards belowProfile, which is placed at the bottom of
// the target profile. Targets shallower than the first source bottom take the first
// source value. A single-layer source maps its value onto every target layer.
func Remap(values, fromThickness, toThickness []float64, belowProfile float64) []float64 {
	if len(toThickness) == 0 {
		return nil
	}
	n := min(len(values), len(fromThickness))
	if n == 0 {
		return Filled(len(toThickness), belowProfile)
	}
	if n == 1 {
		return Filled(len(toThickness), values[0])
	}

	toDepths := Cumulative(toThickness)
	xs, ys := knots(Cumulative(fromThickness[:n]), values[:n])
	if bottom := toDepths[len(toDepths)-1]; bottom > xs[len(xs)-1] {
		xs = append(xs, bottom)
		ys = append(ys, belowProfile)
	}
	if len(xs) == 1 {
		return Filled(len(toThickness), ys[0])
	}

	var pl interp.PiecewiseLinear
	// knots guarantees strictly increasing xs, so Fit cannot fail.
	_ = pl.Fit(xs, ys)

	out := make([]float64, len(toDepths))
	for i, d := range toDepths {
		out[i] = pl.Predict(d)
	}
	return out
}

// knots drops source points that do not increase the depth (zero thickness layers),
// keeping the first value seen at each depth.
func knots(depths, values []float64) ([]float64, []float64) {
	xs := make([]float64, 0, len(depths)+1)
	ys := make([]float64, 0, len(depths)+1)
	for i, d := range depths {
		if len(xs) > 0 && d <= xs[len(xs)-1] {
			continue
		}
		xs = append(xs, d)
		ys = append(ys, values[i])
	}
	return xs, ys
}
