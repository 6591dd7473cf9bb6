// Package scoring turns named macro-economic indicators into a crisis risk
// assessment: an ordered feature vector, a model probability, a risk
// classification and the top contributing indicators. Scoring is total; any
// failure surfaces as a degraded result, never as an error to the caller.
package scoring

import (
	"errors"

	"crisiswatch/internal/scoring/models"
)

// Domain selects which crisis model and feature schema a request targets.
type Domain string

const (
	DomainEconomic Domain = "economic"
	DomainFood     Domain = "food"
)

// Feature labels, verbatim from the training pipelines. Vectors are keyed by
// these strings; a typo here means a missing feature at scoring time.
const (
	LabelGDPGrowthAnnual = "GDP growth annual %"
	LabelInflationCPI    = "Inflation, consumer prices annual %"
	LabelUnemployment    = "Unemployment, total % of labor force"
	LabelDomesticCredit  = "Domestic credit to private sector %"
	LabelExports         = "Exports of goods and services %"
	LabelImports         = "Imports of goods and services %"
	LabelGDPGrowthLag    = "GDP growth lag1"
	LabelInflationLag    = "Inflation lag1"

	LabelCerealYield       = "Cereal yield kg/hectare"
	LabelFoodImports       = "Food imports %"
	LabelFoodProduction    = "Food production index"
	LabelFoodGDPGrowth     = "GDP growth %"
	LabelGDPPerCapita      = "GDP per capita USD"
	LabelFoodInflation     = "Inflation %"
	LabelPopulationGrowth  = "Population growth %"
	LabelCerealYieldLag    = "Cereal yield lag1"
	LabelFoodImportsLag    = "Food imports lag1"
	LabelFoodProductionLag = "Food production lag1"

	LabelGrossFixedCapital = "Gross fixed capital formation %"
	LabelGDPCurrent        = "GDP current USD"
)

// economicLegacyOrder is the hardcoded vector layout for legacy economic
// artifacts, which carry no feature_names of their own.
var economicLegacyOrder = []string{
	LabelGDPGrowthAnnual,
	LabelInflationCPI,
	LabelUnemployment,
	LabelDomesticCredit,
	LabelExports,
	LabelImports,
	LabelGDPGrowthLag,
	LabelInflationLag,
}

// foodLegacyOrder is the hardcoded layout for legacy food artifacts. Only the
// cereal yield lag made it into the trained vector; the other lag indicators
// are accepted on requests but never scored.
var foodLegacyOrder = []string{
	LabelCerealYield,
	LabelFoodImports,
	LabelFoodProduction,
	LabelFoodGDPGrowth,
	LabelGDPPerCapita,
	LabelFoodInflation,
	LabelPopulationGrowth,
	LabelCerealYieldLag,
}

func legacyOrder(domain Domain) []string {
	if domain == DomainFood {
		return foodLegacyOrder
	}
	return economicLegacyOrder
}

// Lag fallback tables map each lag label to the current-period label whose
// value stands in when the previous-period observation was not supplied. The
// GDP growth lag label is shared between the two schemas but falls back to a
// different base indicator in each, so the tables are per domain.
var economicLagFallbacks = map[string]string{
	LabelGDPGrowthLag: LabelGDPGrowthAnnual,
	LabelInflationLag: LabelInflationCPI,
}

var foodLagFallbacks = map[string]string{
	LabelCerealYieldLag:    LabelCerealYield,
	LabelFoodImportsLag:    LabelFoodImports,
	LabelFoodProductionLag: LabelFoodProduction,
	LabelGDPGrowthLag:      LabelFoodGDPGrowth,
}

func fallbackTable(domain Domain) map[string]string {
	if domain == DomainFood {
		return foodLagFallbacks
	}
	return economicLagFallbacks
}

// Scoring failure modes. These drive both the degraded-result classification
// sentinels and the failure reason label on metrics.
var (
	ErrArtifactUnavailable  = errors.New("model not loaded")
	ErrInvalidArtifact      = errors.New("invalid model artifact")
	ErrFeatureCountMismatch = errors.New("feature count mismatch")
	ErrMissingFeature       = errors.New("missing feature")
)

// classify maps a crisis probability percentage to a risk label and the
// high-risk flag. Thresholds are domain calibrated: the food model runs hot,
// so its bands sit higher and it gains a Critical tier, yet its high-risk
// alert trips at 70 while the economic one waits for 80. Classification uses
// the unrounded percentage so display rounding cannot move a value across a
// band edge.
func classify(domain Domain, percentage float64) (string, bool) {
	if domain == DomainFood {
		switch {
		case percentage >= 85:
			return models.ClassCritical, true
		case percentage >= 70:
			return models.ClassHighRisk, true
		case percentage >= 50:
			return models.ClassModerateRisk, false
		default:
			return models.ClassLowRisk, false
		}
	}
	switch {
	case percentage >= 80:
		return models.ClassHighRisk, true
	case percentage >= 50:
		return models.ClassModerateRisk, false
	default:
		return models.ClassLowRisk, false
	}
}
