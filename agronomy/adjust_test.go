package agronomy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSPADAdjustment(t *testing.T) {
	cases := []struct {
		spad float64
		want float64
	}{
		{55, -20},
		{44.001, -20},
		{44, -20}, // boundary closed on the trim side
		{43.999, 0},
		{42, 0},
		{40, 0},
		{39.999, 20},
		{25, 20},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, SPADAdjustment(tc.spad), "spad=%g", tc.spad)
	}
}

func TestSoilNAdjustment(t *testing.T) {
	cases := []struct {
		no3, nh4 float64
		want     float64
	}{
		{0, 0, 30},
		{0, 10, 30},  // total exactly 10 still credits
		{5, 5, 30},   // same boundary, split across sources
		{5, 5.001, 0},
		{10, 10, 0}, // strict interior
		{15, 24.999, 0},
		{20, 20, -30}, // total exactly 40 trims
		{40, 40, -30},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, SoilNAdjustment(tc.no3, tc.nh4), "no3=%g nh4=%g", tc.no3, tc.nh4)
	}
}

func TestClampRate(t *testing.T) {
	assert.Equal(t, 0.0, ClampRate(-15))
	assert.Equal(t, 0.0, ClampRate(0))
	assert.Equal(t, 117.2, ClampRate(117.2))
	assert.Equal(t, 220.0, ClampRate(220))
	assert.Equal(t, 220.0, ClampRate(233.4))
}

func TestCombineStaysInRange(t *testing.T) {
	bases := []float64{-100, 0, 50, 183.38, 220, 400}
	adjs := []float64{-30, -20, 0, 20, 30}
	for _, b := range bases {
		for _, s := range adjs {
			for _, o := range adjs {
				got := Combine(b, s, o)
				assert.GreaterOrEqual(t, got, MinRate)
				assert.LessOrEqual(t, got, MaxRate)
			}
		}
	}
	// Interior sums pass through untouched.
	assert.Equal(t, 160.0, Combine(150, -20, 30))
}
