package agronomy

// Sensor-based rate adjustments, kg N/ha. Both tables are step functions
// with closed boundaries on the adjustment side: a SPAD of exactly 44
// trims the rate, a soil total of exactly 10 or 40 adjusts, only the
// strict interior maps to zero.

// SPADAdjustment maps a chlorophyll meter reading to an additive rate
// adjustment. High readings mean the canopy already has enough nitrogen.
func SPADAdjustment(spad float64) float64 {
	switch {
	case spad >= 44:
		return -20
	case spad >= 40:
		return 0
	default:
		return +20
	}
}

// SoilNAdjustment maps residual soil nitrogen (nitrate + ammonium, ppm)
// to an additive rate adjustment.
func SoilNAdjustment(no3, nh4 float64) float64 {
	total := no3 + nh4
	switch {
	case total >= 40:
		return -30
	case total <= 10:
		return +30
	default:
		return 0
	}
}

// ClampRate bounds a rate to the valid application range [MinRate, MaxRate].
func ClampRate(n float64) float64 {
	if n < MinRate {
		return MinRate
	}
	if n > MaxRate {
		return MaxRate
	}
	return n
}

// Combine sums a base optimum with the two sensor adjustments and clamps
// the result. This is the only place bounds are enforced; no rounding
// happens here (formatting is a display concern).
func Combine(base, adjSPAD, adjSoil float64) float64 {
	return ClampRate(base + adjSPAD + adjSoil)
}
