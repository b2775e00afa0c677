// Package agronomy implements the cotton nitrogen decision model for the
// NFREC Quincy trials: quadratic lint yield and biomass response curves
// calibrated per season, agronomic and economic optimum-N solvers, sensor
// based rate adjustments, and the NFUE efficiency metric. Everything here
// is a pure function of its inputs; there is no state to share or reset.
package agronomy

import "fmt"

// quadratic holds one fitted response curve y = a*n^2 + b*n + c.
type quadratic struct {
	a, b, c float64
}

func (q quadratic) at(n float64) float64 { return q.a*n*n + q.b*n + q.c }

// responseModel bundles the two fitted curves for one season.
type responseModel struct {
	yield   quadratic // kg lint/ha
	biomass quadratic // kg/ha
}

// responseModels is keyed by harvest year. Coefficients are trial
// constants, not fitted at runtime.
var responseModels = map[int]responseModel{
	2023: {
		yield:   quadratic{a: -0.0281, b: 10.306, c: 605.08},
		biomass: quadratic{a: -0.1274, b: 44.332, c: 8360.9},
	},
	2024: {
		yield:   quadratic{a: -0.0335, b: 6.8355, c: 1104.6},
		biomass: quadratic{a: -0.1471, b: 62.958, c: 2597.7},
	},
}

// DefaultYear is the season used for any year without a calibrated model.
// Falling back to the latest calibration (rather than erroring) is a
// deliberate product choice carried over from the field tool; clients can
// list calibrated seasons via Seasons to avoid relying on it.
const DefaultYear = 2024

// MinRate and MaxRate bound the valid application range in kg N/ha.
const (
	MinRate = 0.0
	MaxRate = 220.0
)

// CurvePoints is the sample count used for yield curve output.
const CurvePoints = 200

func modelFor(year int) responseModel {
	if m, ok := responseModels[year]; ok {
		return m
	}
	return responseModels[DefaultYear]
}

// Seasons returns the calibrated years in ascending order.
func Seasons() []int {
	return []int{2023, 2024}
}

// Calibrated reports whether year has its own coefficient set.
func Calibrated(year int) bool {
	_, ok := responseModels[year]
	return ok
}

// YieldCoefficients returns the (a, b, c) triple of the lint yield curve
// for year, applying the default-season fallback.
func YieldCoefficients(year int) (a, b, c float64) {
	q := modelFor(year).yield
	return q.a, q.b, q.c
}

// LintYield evaluates the lint yield curve (kg lint/ha) at nitrogen rate
// n (kg N/ha). The curve itself is defined for any n; callers stay within
// [MinRate, MaxRate].
func LintYield(n float64, year int) float64 {
	return modelFor(year).yield.at(n)
}

// Biomass evaluates the above-ground biomass curve (kg/ha) at rate n.
func Biomass(n float64, year int) float64 {
	return modelFor(year).biomass.at(n)
}

// LintYieldSeries evaluates the yield curve element-wise over rates.
func LintYieldSeries(rates []float64, year int) []float64 {
	q := modelFor(year).yield
	out := make([]float64, len(rates))
	for i, n := range rates {
		out[i] = q.at(n)
	}
	return out
}

// AgronomicOptimumN returns the rate maximizing lint yield (AONR), the
// vertex -b/(2a) of the yield parabola. The result is not clamped; the
// recommendation combiner clamps once after adjustments.
func AgronomicOptimumN(year int) float64 {
	q := modelFor(year).yield
	return -q.b / (2 * q.a)
}

// EconomicOptimumN returns the rate maximizing profit (EONR), where
// marginal lint revenue equals marginal nitrogen cost, floored at zero.
// lintPrice must be positive; a zero or negative price has no defined
// optimum and is reported as an error rather than an Inf/NaN result.
func EconomicOptimumN(year int, lintPrice, nCost float64) (float64, error) {
	if lintPrice <= 0 {
		return 0, fmt.Errorf("economic optimum: lint price must be positive, got %g", lintPrice)
	}
	q := modelFor(year).yield
	n := (nCost - q.b*lintPrice) / (2 * q.a * lintPrice)
	if n < 0 {
		return 0, nil
	}
	return n, nil
}

// NFUE returns the nitrogen fertilizer use efficiency at rate n: marginal
// lint gained per kg N relative to the unfertilized baseline. Zero for
// n <= 0, where the ratio is undefined.
func NFUE(n float64, year int) float64 {
	if n <= 0 {
		return 0
	}
	return (LintYield(n, year) - LintYield(0, year)) / n
}

// Profit returns lint revenue minus nitrogen cost at rate n, $/ha.
func Profit(n float64, year int, lintPrice, nCost float64) float64 {
	return lintPrice*LintYield(n, year) - nCost*n
}
