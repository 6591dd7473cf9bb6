package scoring

import (
	"fmt"
	"math"

	"crisiswatch/internal/artifact"
)

// topIndicatorCount is how many contributing features a result reports.
const topIndicatorCount = 3

// score runs the classifier on a built vector and returns the crisis
// percentage (rounded to two decimals), the risk classification and the
// high-risk flag. The vector length is checked against the artifact before
// the classifier is ever invoked; a mismatched vector must not reach the
// model.
func score(domain Domain, art *artifact.Artifact, vec *FeatureVector) (float64, string, bool, error) {
	if art == nil {
		return 0, "", false, ErrArtifactUnavailable
	}
	if art.Classifier == nil {
		return 0, "", false, fmt.Errorf("%w: artifact has no classifier", ErrInvalidArtifact)
	}
	if expected, ok := art.ExpectedFeatureCount(); ok && expected != len(vec.Values) {
		return 0, "", false, fmt.Errorf("%w: vector has %d features, model expects %d",
			ErrFeatureCountMismatch, len(vec.Values), expected)
	}

	raw, err := positiveClassProbability(art.Classifier, vec.Values)
	if err != nil {
		// The vector already matched the declared feature count, so a
		// prediction error means the artifact itself is unsound.
		return 0, "", false, fmt.Errorf("%w: %v", ErrInvalidArtifact, err)
	}

	percentage := raw * 100
	classification, highRisk := classify(domain, percentage)
	return round2(percentage), classification, highRisk, nil
}

// positiveClassProbability prefers calibrated probabilities and takes the
// crisis class (index 1); a single-class output or a classifier without a
// probability surface degrades to the point prediction.
func positiveClassProbability(c artifact.Classifier, vector []float64) (float64, error) {
	if pc, ok := c.(artifact.ProbabilityClassifier); ok {
		probs, err := pc.PredictProbabilities(vector)
		if err != nil {
			return 0, err
		}
		if len(probs) > 1 {
			return probs[1], nil
		}
		if len(probs) == 1 {
			return probs[0], nil
		}
	}
	return c.Predict(vector)
}

// round2 rounds half away from zero to two decimals. Display only;
// classification always happens on the unrounded value.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
