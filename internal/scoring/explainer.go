package scoring

import (
	"fmt"
	"math"
	"sort"

	"crisiswatch/internal/artifact"
	"crisiswatch/internal/scoring/models"
)

// explain computes the top contributing indicators for a scored vector.
// Attribution is strictly best effort: any failure returns an empty list and
// an error for logging, and the caller ships the result without indicators.
func explain(art *artifact.Artifact, vec *FeatureVector, topN int) ([]models.Indicator, error) {
	attributor, ok := art.Classifier.(artifact.Attributor)
	if !ok {
		return nil, fmt.Errorf("classifier does not expose attributions")
	}

	raw, err := attributor.Attribute(vec.Values)
	if err != nil {
		return nil, fmt.Errorf("compute attributions: %w", err)
	}

	contribs, err := normalizeAttribution(raw, len(vec.Values))
	if err != nil {
		return nil, err
	}

	return topIndicators(vec, contribs, topN), nil
}

// normalizeAttribution collapses every attribution layout the artifact
// generations produce into one per-feature contribution vector for the
// positive class. This adapter is the single place shape knowledge lives.
func normalizeAttribution(raw artifact.AttributionValues, featureCount int) ([]float64, error) {
	var row []float64

	switch v := raw.(type) {
	case artifact.InstanceMatrix:
		// (instances, features): one shared matrix, first instance.
		if len(v) == 0 {
			return nil, fmt.Errorf("attribution matrix is empty")
		}
		row = v[0]

	case artifact.ClassMatrices:
		// One (instances, features) matrix per class; take the positive
		// class, or the only class for single-output models.
		if len(v) == 0 {
			return nil, fmt.Errorf("attribution class list is empty")
		}
		m := v[0]
		if len(v) > 1 {
			m = v[1]
		}
		if len(m) == 0 {
			return nil, fmt.Errorf("attribution matrix for class is empty")
		}
		row = m[0]

	case artifact.ClassTensor:
		// (instances, features, classes): slice the positive class out of
		// the first instance.
		if len(v) == 0 || len(v[0]) == 0 {
			return nil, fmt.Errorf("attribution tensor is empty")
		}
		instance := v[0]
		class := 0
		if len(instance[0]) > 1 {
			class = 1
		}
		row = make([]float64, len(instance))
		for f, perClass := range instance {
			if class >= len(perClass) {
				return nil, fmt.Errorf("attribution tensor has ragged class axis")
			}
			row[f] = perClass[class]
		}

	default:
		return nil, fmt.Errorf("unrecognized attribution shape %T", raw)
	}

	if len(row) != featureCount {
		return nil, fmt.Errorf("attribution has %d features, vector has %d", len(row), featureCount)
	}
	return row, nil
}

// topIndicators pairs contributions with their labels and values, then picks
// the topN by absolute impact. The sort is stable over vector position so
// tied contributions keep a deterministic order.
func topIndicators(vec *FeatureVector, contribs []float64, topN int) []models.Indicator {
	indicators := make([]models.Indicator, len(contribs))
	for i, impact := range contribs {
		indicators[i] = models.Indicator{
			Name:   vec.Order[i],
			Impact: impact,
			Value:  vec.Values[i],
		}
	}

	sort.SliceStable(indicators, func(i, j int) bool {
		return math.Abs(indicators[i].Impact) > math.Abs(indicators[j].Impact)
	})

	if len(indicators) > topN {
		indicators = indicators[:topN]
	}
	return indicators
}
