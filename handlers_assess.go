package main

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"cottondss/agronomy"
	"cottondss/models"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Reference economics used for the seasons listing, the 2023/2024 trial
// defaults.
const (
	refLintPrice = 1.43 // $/kg lint
	refNCost     = 1.5  // $/kg N
)

// handleAssess runs one evaluation pass of the decision model and
// returns the full output snapshot. Nothing is stored.
func (a *App) handleAssess(w http.ResponseWriter, r *http.Request) {
	var req assessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	a.assess(w, inputsFromReq(req))
}

// handleAssessField is the same computation seeded from the field card:
// when the request omits currentN the latest recorded application is
// used, and its season becomes the default year.
func (a *App) handleAssessField(w http.ResponseWriter, r *http.Request) {
	uid := mustUserID(r)
	idStr := chi.URLParam(r, "id")
	oid, err := primitive.ObjectIDFromHex(idStr)
	if err != nil {
		http.Error(w, "bad id", http.StatusBadRequest)
		return
	}

	var req fieldAssessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var f models.Field
	if err := a.fields.FindOne(ctx, bson.M{"_id": oid, "ownerId": uid}).Decode(&f); err != nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	a.assess(w, inputsFromReq(mergeFieldAssess(req, &f)))
}

// mergeFieldAssess overlays request values on the field card defaults:
// a missing currentN falls back to the latest recorded application, and
// that season becomes the default year.
func mergeFieldAssess(req fieldAssessReq, f *models.Field) assessReq {
	merged := assessReq{
		Year:      req.Year,
		SPAD:      req.SPAD,
		NO3:       req.NO3,
		NH4:       req.NH4,
		LintPrice: req.LintPrice,
		NCost:     req.NCost,
		Goal:      req.Goal,
	}
	if req.CurrentN != nil {
		merged.CurrentN = *req.CurrentN
	} else if app, ok := f.LatestApplication(); ok {
		merged.CurrentN = app.RateKgHa
		if merged.Year == 0 {
			merged.Year = app.Year
		}
	}
	return merged
}

// handleSeasons lists the calibrated seasons with their yield curve
// coefficients and both optima at reference economics, so clients do
// not hardcode the year list.
func (a *App) handleSeasons(w http.ResponseWriter, _ *http.Request) {
	out := make([]seasonResp, 0, 2)
	for _, year := range agronomy.Seasons() {
		ca, cb, cc := agronomy.YieldCoefficients(year)
		eonr, err := agronomy.EconomicOptimumN(year, refLintPrice, refNCost)
		if err != nil {
			http.Error(w, "model error", http.StatusInternalServerError)
			return
		}
		out = append(out, seasonResp{
			Year:          year,
			YieldCoeffs:   coeffTriple{A: ca, B: cb, C: cc},
			AONR:          agronomy.AgronomicOptimumN(year),
			EONRReference: eonr,
			RefLintPrice:  refLintPrice,
			RefNCost:      refNCost,
		})
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(out)
}

func (a *App) assess(w http.ResponseWriter, in agronomy.Inputs) {
	out, err := agronomy.Evaluate(in)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(out)
}

// inputsFromReq clamps request values to the instrument/slider ranges.
// Clamping is the only validation applied to readings; price and goal
// problems surface as errors from Evaluate.
func inputsFromReq(req assessReq) agronomy.Inputs {
	return agronomy.Inputs{
		Year:      req.Year,
		CurrentN:  agronomy.ClampRate(req.CurrentN),
		SPAD:      clampRange(req.SPAD, 25, 55),
		NO3:       clampRange(req.NO3, 0, 80),
		NH4:       clampRange(req.NH4, 0, 80),
		LintPrice: req.LintPrice,
		NCost:     max(req.NCost, 0),
		Goal:      agronomy.Goal(req.Goal),
	}
}

func clampRange(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
