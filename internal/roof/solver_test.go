package roof

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// sheathedCrest is the solver's objective: the world height of the highest
// sheathing point for a given rise.
func sheathedCrest(rise, halfSpan, sheathing float64) float64 {
	theta := math.Atan2(rise, halfSpan)
	return rise + math.Cos(theta)*sheathing
}

func TestSolveRise_HitsCrestTarget(t *testing.T) {
	cases := []struct {
		name         string
		eaves, crest float64
		halfSpan     float64
	}{
		{"default apex", 1850, 2500, 1500},
		{"low crest", 1850, 2200, 1500},
		{"shallow", 2000, 2200, 2000},
		{"steep", 1800, 3000, 1200},
		{"wide span", 1850, 2500, 3000},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rise := SolveRise(tc.eaves, tc.crest, tc.halfSpan, OSBThickness)
			target := tc.crest - tc.eaves

			// The sheathed crest must land on the target well within a
			// millimetre.
			assert.InDelta(t, target, sheathedCrest(rise, tc.halfSpan, OSBThickness), 1.0)

			// The rise itself is below the raw target by roughly the
			// sheathing thickness.
			assert.Less(t, rise, target)
			assert.Greater(t, rise, target-2*OSBThickness)
		})
	}
}

func TestSolveRise_MonotonicInCrest(t *testing.T) {
	prev := -1.0
	for crest := 2000.0; crest <= 3500; crest += 100 {
		rise := SolveRise(1850, crest, 1500, OSBThickness)
		assert.Greater(t, rise, prev, "rise must grow with the crest target")
		prev = rise
	}
}

func TestSolveRise_CrestBelowEavesClampsFlat(t *testing.T) {
	// A crest at or below the eaves cannot be honored; the target clamps
	// to the sheathing thickness and the rise collapses to zero.
	rise := SolveRise(2500, 2400, 1500, OSBThickness)
	assert.InDelta(t, 0, rise, 1.0)
}

func TestLegacyRise_ClampedFifthOfSpan(t *testing.T) {
	assert.InDelta(t, 200, LegacyRise(500), 1e-9, "small spans clamp to 200")
	assert.InDelta(t, 200, LegacyRise(1000), 1e-9, "boundary span")
	assert.InDelta(t, 600, LegacyRise(3000), 1e-9, "fifth of the span in range")
	assert.InDelta(t, 900, LegacyRise(4500), 1e-9, "boundary span")
	assert.InDelta(t, 900, LegacyRise(9000), 1e-9, "wide spans clamp to 900")
}
