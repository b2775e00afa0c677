package agronomy

import (
	"fmt"

	"github.com/montanaflynn/stats"
)

// Goal selects which optimum seeds the recommendation.
type Goal string

const (
	GoalYield  Goal = "AONR" // maximize lint yield
	GoalProfit Goal = "EONR" // maximize profit
)

// ParseGoal validates a goal string.
func ParseGoal(s string) (Goal, error) {
	switch Goal(s) {
	case GoalYield, GoalProfit:
		return Goal(s), nil
	default:
		return "", fmt.Errorf("unknown goal %q (want AONR or EONR)", s)
	}
}

// Inputs is one immutable snapshot of everything the model consumes.
type Inputs struct {
	Year      int
	CurrentN  float64 // kg N/ha already applied, [0,220]
	SPAD      float64 // chlorophyll meter reading
	NO3       float64 // soil nitrate, ppm
	NH4       float64 // soil ammonium, ppm
	LintPrice float64 // $/kg lint, must be > 0
	NCost     float64 // $/kg N
	Goal      Goal
}

// Outcome holds the derived metrics at one nitrogen rate.
type Outcome struct {
	RateKgHa float64 `json:"rateKgHa"`
	YieldKg  float64 `json:"yieldKg"`
	Profit   float64 `json:"profit"`
	NFUE     float64 `json:"nfue"`
}

// Curve is the sampled yield response over [MinRate, MaxRate] plus the
// summary bounds a plot needs for its axes.
type Curve struct {
	Rates     []float64 `json:"rates"`
	Yields    []float64 `json:"yields"`
	YieldMin  float64   `json:"yieldMin"`
	YieldMax  float64   `json:"yieldMax"`
	YieldMean float64   `json:"yieldMean"`
}

// Assessment is the full output snapshot of one evaluation pass.
type Assessment struct {
	Year        int     `json:"year"`
	Calibrated  bool    `json:"calibrated"` // false when the default-season fallback applied
	Goal        Goal    `json:"goal"`
	AONR        float64 `json:"aonr"`
	EONR        float64 `json:"eonr"`
	BaseOptimum float64 `json:"baseOptimum"`
	AdjSPAD     float64 `json:"adjSpad"`
	AdjSoil     float64 `json:"adjSoil"`
	FinalN      float64 `json:"finalN"`

	Current     Outcome `json:"current"`
	Recommended Outcome `json:"recommended"`

	Curve Curve `json:"curve"`
}

// Evaluate runs the whole pipeline once: both optima, sensor adjustments,
// the combined and clamped recommendation, and the outcome comparison at
// the current and recommended rates. It is reentrant; concurrent what-if
// calls are safe.
func Evaluate(in Inputs) (*Assessment, error) {
	if _, err := ParseGoal(string(in.Goal)); err != nil {
		return nil, err
	}

	aonr := AgronomicOptimumN(in.Year)
	eonr, err := EconomicOptimumN(in.Year, in.LintPrice, in.NCost)
	if err != nil {
		return nil, err
	}

	base := aonr
	if in.Goal == GoalProfit {
		base = eonr
	}

	adjSPAD := SPADAdjustment(in.SPAD)
	adjSoil := SoilNAdjustment(in.NO3, in.NH4)
	finalN := Combine(base, adjSPAD, adjSoil)
	currentN := ClampRate(in.CurrentN)

	out := &Assessment{
		Year:        in.Year,
		Calibrated:  Calibrated(in.Year),
		Goal:        in.Goal,
		AONR:        aonr,
		EONR:        eonr,
		BaseOptimum: base,
		AdjSPAD:     adjSPAD,
		AdjSoil:     adjSoil,
		FinalN:      finalN,
		Current:     outcomeAt(currentN, in),
		Recommended: outcomeAt(finalN, in),
		Curve:       SampleYieldCurve(in.Year),
	}
	return out, nil
}

func outcomeAt(n float64, in Inputs) Outcome {
	return Outcome{
		RateKgHa: n,
		YieldKg:  LintYield(n, in.Year),
		Profit:   Profit(n, in.Year, in.LintPrice, in.NCost),
		NFUE:     NFUE(n, in.Year),
	}
}

// SampleYieldCurve samples the yield response over the valid rate range
// at CurvePoints evenly spaced rates, endpoints included.
func SampleYieldCurve(year int) Curve {
	rates := make([]float64, CurvePoints)
	step := (MaxRate - MinRate) / float64(CurvePoints-1)
	for i := range rates {
		rates[i] = MinRate + float64(i)*step
	}
	yields := LintYieldSeries(rates, year)

	// Summary stats for plot axes. Errors only occur on empty input,
	// which cannot happen with a fixed sample count.
	lo, _ := stats.Min(yields)
	hi, _ := stats.Max(yields)
	mean, _ := stats.Mean(yields)

	return Curve{
		Rates:     rates,
		Yields:    yields,
		YieldMin:  lo,
		YieldMax:  hi,
		YieldMean: mean,
	}
}
