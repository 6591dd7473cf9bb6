// Package models defines the scoring engine's request and result contracts.
// The result shape is identical for the economic and food domains so callers
// can handle both uniformly, even though the input schemas differ.
package models

// Classification values shared by both domains. The food domain adds
// Critical above High Risk; the economic domain tops out at High Risk.
const (
	ClassLowRisk      = "Low Risk"
	ClassModerateRisk = "Moderate Risk"
	ClassHighRisk     = "High Risk"
	ClassCritical     = "Critical"
)

// Error sentinel classifications. A degraded result is structurally
// indistinguishable from a successful one; callers detect failure by the
// classification prefix, never by a thrown error.
const (
	ClassErrModelNotLoaded  = "Error: Model not loaded"
	ClassErrInvalidArtifact = "Error: Invalid model artifact"
	ClassErrFeatureMismatch = "Error: Feature count mismatch"
	ClassErrMissingFeature  = "Error: Missing feature"
	ClassErrGeneric         = "Error"
)

// Indicator is one of the top contributing features for a scored instance:
// the feature label, its signed contribution to the prediction, and the value
// actually fed to the model.
type Indicator struct {
	Name   string  `json:"name"`
	Impact float64 `json:"impact"`
	Value  float64 `json:"value"`
}

// ScoringResult is the engine's output contract. Probability is a percentage
// in [0, 100] rounded to two decimals. FeatureOrder is a diagnostic echo of
// the exact order the feature vector was built in; reordering silently
// corrupts predictions, so the order used is always observable.
type ScoringResult struct {
	Country        string      `json:"country"`
	Probability    float64     `json:"probability"`
	Classification string      `json:"classification"`
	TopIndicators  []Indicator `json:"topIndicators"`
	IsHighRisk     bool        `json:"isHighRisk"`
	FeatureOrder   []string    `json:"featureOrder,omitempty"`
}

// EconomicRequest carries the lag-aware economic schema. Lag fields are
// optional: a nil lag falls back to the current-period value of the same
// indicator.
type EconomicRequest struct {
	Country        string
	GDPGrowth      float64
	Inflation      float64
	Unemployment   float64
	DomesticCredit float64
	Exports        float64
	Imports        float64
	GDPGrowthLag   *float64
	InflationLag   *float64
}

// EconomicRequestV2 carries the level-based economic schema with no lags;
// every field is required.
type EconomicRequestV2 struct {
	Country           string
	GDPGrowth         float64
	Inflation         float64
	Unemployment      float64
	DomesticCredit    float64
	Exports           float64
	Imports           float64
	GDPPerCapita      float64
	GrossFixedCapital float64
}

// FoodRequest carries the lag-aware food schema. All four lag fields are
// accepted, but legacy food models only consult the cereal yield lag; the
// other three are part of the request contract and nothing else.
type FoodRequest struct {
	Country             string
	CerealYield         float64
	FoodImports         float64
	FoodProductionIndex float64
	GDPGrowth           float64
	GDPPerCapita        float64
	Inflation           float64
	PopulationGrowth    float64
	CerealYieldLag      *float64
	FoodImportsLag      *float64
	FoodProductionLag   *float64
	GDPGrowthLag        *float64
}

// FoodRequestV2 carries the level-based food schema with no lags.
type FoodRequestV2 struct {
	Country             string
	CerealYield         float64
	FoodImports         float64
	FoodProductionIndex float64
	GDPGrowth           float64
	GDPPerCapita        float64
	Inflation           float64
	PopulationGrowth    float64
	GDPCurrent          float64
}
