package scoring

import (
	"errors"

	"crisiswatch/internal/scoring/models"
)

// assemble builds a successful scoring result. TopIndicators is always
// non-nil so the JSON field serializes as a list even when attribution
// produced nothing.
func assemble(country string, percentage float64, classification string, highRisk bool, top []models.Indicator, order []string) models.ScoringResult {
	if top == nil {
		top = []models.Indicator{}
	}
	return models.ScoringResult{
		Country:        country,
		Probability:    percentage,
		Classification: classification,
		TopIndicators:  top,
		IsHighRisk:     highRisk,
		FeatureOrder:   order,
	}
}

// degraded builds the result for a failed scoring attempt: zero probability,
// no indicators, not high risk, and a classification that names the failure.
// The shape is identical to a success so callers need no error branch.
func degraded(country string, err error) models.ScoringResult {
	return models.ScoringResult{
		Country:        country,
		Probability:    0,
		Classification: classificationFor(err),
		TopIndicators:  []models.Indicator{},
		IsHighRisk:     false,
	}
}

func classificationFor(err error) string {
	switch {
	case errors.Is(err, ErrArtifactUnavailable):
		return models.ClassErrModelNotLoaded
	case errors.Is(err, ErrInvalidArtifact):
		return models.ClassErrInvalidArtifact
	case errors.Is(err, ErrFeatureCountMismatch):
		return models.ClassErrFeatureMismatch
	case errors.Is(err, ErrMissingFeature):
		return models.ClassErrMissingFeature
	default:
		return models.ClassErrGeneric
	}
}

// failureReason maps a scoring error to a low-cardinality metrics label.
func failureReason(err error) string {
	switch {
	case errors.Is(err, ErrArtifactUnavailable):
		return "model_not_loaded"
	case errors.Is(err, ErrInvalidArtifact):
		return "invalid_artifact"
	case errors.Is(err, ErrFeatureCountMismatch):
		return "feature_count_mismatch"
	case errors.Is(err, ErrMissingFeature):
		return "missing_feature"
	default:
		return "internal"
	}
}
