package main

// Request/response DTOs. Keep them minimal and explicit.

type registerReq struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResp struct {
	Token string `json:"token"`
}

type createFieldReq struct {
	Name      string   `json:"name"`
	AreaHa    *float64 `json:"areaHa,omitempty"`
	Variety   string   `json:"variety,omitempty"`
	SoilNotes string   `json:"soilNotes,omitempty"`
	Notes     string   `json:"notes,omitempty"`

	Applications []NitrogenEntryReq `json:"applications,omitempty"`
}

type NitrogenEntryReq struct {
	Year     int     `json:"year"`
	RateKgHa float64 `json:"rateKgHa"`
	Notes    string  `json:"notes,omitempty"`
}

// assessReq is one input snapshot for the decision model. Units:
// kg N/ha, ppm, $/kg. Out-of-range values are clamped, not rejected.
type assessReq struct {
	Year      int     `json:"year"`
	CurrentN  float64 `json:"currentN"`
	SPAD      float64 `json:"spad"`
	NO3       float64 `json:"no3"`
	NH4       float64 `json:"nh4"`
	LintPrice float64 `json:"lintPrice"`
	NCost     float64 `json:"nCost"`
	Goal      string  `json:"goal"` // "AONR" | "EONR"
}

// fieldAssessReq is assessReq with optionals that fall back to the
// field's stored registry data.
type fieldAssessReq struct {
	Year      int      `json:"year,omitempty"`
	CurrentN  *float64 `json:"currentN,omitempty"`
	SPAD      float64  `json:"spad"`
	NO3       float64  `json:"no3"`
	NH4       float64  `json:"nh4"`
	LintPrice float64  `json:"lintPrice"`
	NCost     float64  `json:"nCost"`
	Goal      string   `json:"goal"`
}

type seasonResp struct {
	Year          int      `json:"year"`
	YieldCoeffs   coeffTriple `json:"yieldCoeffs"`
	AONR          float64  `json:"aonr"`
	EONRReference float64  `json:"eonrReference"` // at reference economics below
	RefLintPrice  float64  `json:"refLintPrice"`
	RefNCost      float64  `json:"refNCost"`
}

type coeffTriple struct {
	A float64 `json:"a"`
	B float64 `json:"b"`
	C float64 `json:"c"`
}
