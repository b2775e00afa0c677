package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cottondss/agronomy"
	"cottondss/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testApp builds an App without a Mongo connection; the public assess
// and seasons endpoints never touch the database.
func testApp() *App {
	return &App{cfg: Config{JWTSecret: "test"}}
}

func postJSON(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAssessEndpoint(t *testing.T) {
	h := testApp().routes()

	rec := postJSON(t, h, "/api/assess", `{
		"year": 2023, "currentN": 100, "spad": 42, "no3": 5, "nh4": 2,
		"lintPrice": 1.43, "nCost": 1.5, "goal": "AONR"
	}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var out agronomy.Assessment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.InDelta(t, 183.38, out.AONR, 0.01)
	assert.Equal(t, 0.0, out.AdjSPAD)
	assert.Equal(t, 30.0, out.AdjSoil)
	assert.InDelta(t, 213.38, out.FinalN, 0.01)
	assert.Len(t, out.Curve.Rates, agronomy.CurvePoints)
}

func TestAssessEndpointClampsReadings(t *testing.T) {
	h := testApp().routes()

	// SPAD below the instrument range clamps to 25 -> deficiency credit;
	// currentN above the application range clamps to 220.
	rec := postJSON(t, h, "/api/assess", `{
		"year": 2024, "currentN": 900, "spad": 2, "no3": 20, "nh4": 0,
		"lintPrice": 1.0, "nCost": 1.0, "goal": "EONR"
	}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var out agronomy.Assessment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, 20.0, out.AdjSPAD)
	assert.Equal(t, 220.0, out.Current.RateKgHa)
}

func TestAssessEndpointBadInput(t *testing.T) {
	h := testApp().routes()

	rec := postJSON(t, h, "/api/assess", `{"year":2023,"lintPrice":1.43,"nCost":1.5,"goal":"BEST"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postJSON(t, h, "/api/assess", `{"year":2023,"lintPrice":0,"nCost":1.5,"goal":"EONR"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postJSON(t, h, "/api/assess", `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSeasonsEndpoint(t *testing.T) {
	h := testApp().routes()

	req := httptest.NewRequest(http.MethodGet, "/api/seasons", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var out []seasonResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Len(t, out, 2)
	assert.Equal(t, 2023, out[0].Year)
	assert.Equal(t, 2024, out[1].Year)
	assert.InDelta(t, -0.0281, out[0].YieldCoeffs.A, 1e-9)
	assert.InDelta(t, 183.38, out[0].AONR, 0.01)
	assert.GreaterOrEqual(t, out[1].EONRReference, 0.0)
}

func TestProtectedRoutesNeedToken(t *testing.T) {
	h := testApp().routes()

	req := httptest.NewRequest(http.MethodGet, "/api/fields/", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = postJSON(t, h, "/api/fields/abc/assess", `{}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMergeFieldAssess(t *testing.T) {
	f := &models.Field{Applications: []models.NitrogenEntry{
		{Year: 2023, RateKgHa: 90},
		{Year: 2024, RateKgHa: 110},
	}}

	// currentN omitted: latest application seeds rate and year.
	merged := mergeFieldAssess(fieldAssessReq{
		SPAD: 42, NO3: 20, NH4: 0, LintPrice: 1.43, NCost: 1.5, Goal: "AONR",
	}, f)
	assert.Equal(t, 110.0, merged.CurrentN)
	assert.Equal(t, 2024, merged.Year)

	// Explicit values win over the card.
	n := 73.0
	merged = mergeFieldAssess(fieldAssessReq{
		Year: 2023, CurrentN: &n,
		SPAD: 42, NO3: 20, NH4: 0, LintPrice: 1.43, NCost: 1.5, Goal: "AONR",
	}, f)
	assert.Equal(t, 73.0, merged.CurrentN)
	assert.Equal(t, 2023, merged.Year)

	// Empty card: zero currentN, year passes through.
	merged = mergeFieldAssess(fieldAssessReq{Year: 2024, Goal: "EONR"}, &models.Field{})
	assert.Equal(t, 0.0, merged.CurrentN)
	assert.Equal(t, 2024, merged.Year)
}
