package roof

import "math"

// solverIterations is enough bisection steps to pin the rise well below
// 1 mm over the search interval.
const solverIterations = 32

// SolveRise finds the rafter rise such that the highest sheathing point
// lands on the crest target:
//
//	rise + cos(theta(rise)) * sheathing == max(crest-eaves, sheathing)
//
// where theta(rise) = atan2(rise, halfSpan). The left side is strictly
// increasing in rise, so bisection over [0, target+2000] converges.
// A crest below eaves+sheathing clamps up to eaves+sheathing.
func SolveRise(eaves, crest, halfSpan, sheathing float64) float64 {
	target := math.Max(crest-eaves, sheathing)

	f := func(rise float64) float64 {
		theta := math.Atan2(rise, halfSpan)
		return rise + math.Cos(theta)*sheathing
	}

	lo, hi := 0.0, target+2000
	for i := 0; i < solverIterations; i++ {
		mid := (lo + hi) / 2
		if f(mid) < target {
			lo = mid
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2
}

// LegacyRise is the fallback heuristic used when no eaves/crest pair is
// configured: a fifth of the span, clamped to [200, 900].
func LegacyRise(span float64) float64 {
	return math.Min(900, math.Max(200, 0.20*span))
}
