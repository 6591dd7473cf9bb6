package artifact

import (
	"fmt"
	"math"
)

// Supported ensemble kinds. Gradient-boosted ensembles hold scalar leaf
// values in margin space; forest ensembles hold per-class probability
// distributions at every node.
const (
	ModelGradientBoosting = "gradient_boosting"
	ModelRandomForest     = "random_forest"
)

// Node is a single split or leaf in a decision tree. Internal nodes carry the
// expected value of their subtree so path attribution can measure how much
// each split moved the prediction. A node with Left < 0 is a leaf.
type Node struct {
	Feature   int       `json:"feature"`
	Threshold float64   `json:"threshold"`
	Left      int       `json:"left"`
	Right     int       `json:"right"`
	Value     float64   `json:"value"`
	Values    []float64 `json:"values,omitempty"`
}

func (n Node) leaf() bool {
	return n.Left < 0
}

// Tree is a flat node array; index 0 is the root.
type Tree struct {
	Nodes []Node `json:"nodes"`
}

// TreeEnsemble is the concrete classifier behind every deployed artifact. It
// implements Classifier, ProbabilityClassifier, FeatureCounter and
// Attributor.
type TreeEnsemble struct {
	ModelType   string  `json:"model_type"`
	NumFeatures int     `json:"feature_count"`
	Classes     int     `json:"classes"`
	BaseValue   float64 `json:"base_value"`
	// Stacked controls the attribution output layout for forest models.
	// Newer artifact generations emit one stacked (instances, features,
	// classes) tensor instead of a matrix per class.
	Stacked bool   `json:"stacked_outputs"`
	Trees   []Tree `json:"trees"`
}

// Validate checks structural integrity after decoding. Predictions on an
// invalid ensemble would silently misbehave, so loading rejects it up front.
func (e *TreeEnsemble) Validate() error {
	switch e.ModelType {
	case ModelGradientBoosting, ModelRandomForest:
	default:
		return fmt.Errorf("unknown model type %q", e.ModelType)
	}
	if e.NumFeatures <= 0 {
		return fmt.Errorf("feature count must be positive, got %d", e.NumFeatures)
	}
	if len(e.Trees) == 0 {
		return fmt.Errorf("ensemble has no trees")
	}
	if e.ModelType == ModelRandomForest && e.Classes < 1 {
		return fmt.Errorf("forest model declares %d classes", e.Classes)
	}
	for ti, tree := range e.Trees {
		if len(tree.Nodes) == 0 {
			return fmt.Errorf("tree %d has no nodes", ti)
		}
		for ni, n := range tree.Nodes {
			if n.leaf() {
				if e.ModelType == ModelRandomForest && len(n.Values) != e.Classes {
					return fmt.Errorf("tree %d node %d: leaf holds %d class values, want %d", ti, ni, len(n.Values), e.Classes)
				}
				continue
			}
			if n.Left >= len(tree.Nodes) || n.Right < 0 || n.Right >= len(tree.Nodes) {
				return fmt.Errorf("tree %d node %d: child index out of range", ti, ni)
			}
			if n.Feature < 0 || n.Feature >= e.NumFeatures {
				return fmt.Errorf("tree %d node %d: split feature %d out of range", ti, ni, n.Feature)
			}
			if e.ModelType == ModelRandomForest && len(n.Values) != e.Classes {
				return fmt.Errorf("tree %d node %d: node holds %d class values, want %d", ti, ni, len(n.Values), e.Classes)
			}
		}
	}
	return nil
}

// FeatureCount reports the number of features the ensemble was trained on.
func (e *TreeEnsemble) FeatureCount() int {
	return e.NumFeatures
}

func (e *TreeEnsemble) checkVector(vector []float64) error {
	if len(vector) != e.NumFeatures {
		return fmt.Errorf("vector has %d features, model expects %d", len(vector), e.NumFeatures)
	}
	return nil
}

// descend walks a tree for the vector and returns the leaf node index.
func descend(tree Tree, vector []float64) int {
	idx := 0
	for !tree.Nodes[idx].leaf() {
		n := tree.Nodes[idx]
		if vector[n.Feature] <= n.Threshold {
			idx = n.Left
		} else {
			idx = n.Right
		}
	}
	return idx
}

// PredictProbabilities returns per-class probabilities for the vector. For
// two-class models the slice is [P(no crisis), P(crisis)].
func (e *TreeEnsemble) PredictProbabilities(vector []float64) ([]float64, error) {
	if err := e.checkVector(vector); err != nil {
		return nil, err
	}

	if e.ModelType == ModelGradientBoosting {
		margin := e.BaseValue
		for _, tree := range e.Trees {
			margin += tree.Nodes[descend(tree, vector)].Value
		}
		p := sigmoid(margin)
		return []float64{1 - p, p}, nil
	}

	// Forest: average the leaf class distributions across trees.
	dist := make([]float64, e.Classes)
	for _, tree := range e.Trees {
		leaf := tree.Nodes[descend(tree, vector)]
		for c, v := range leaf.Values {
			dist[c] += v
		}
	}
	for c := range dist {
		dist[c] /= float64(len(e.Trees))
	}
	return dist, nil
}

// Predict returns the hard class label as a float, matching what a point
// prediction looks like when no probability function is exposed.
func (e *TreeEnsemble) Predict(vector []float64) (float64, error) {
	probs, err := e.PredictProbabilities(vector)
	if err != nil {
		return 0, err
	}
	best := 0
	for c := 1; c < len(probs); c++ {
		if probs[c] > probs[best] {
			best = c
		}
	}
	return float64(best), nil
}

// Attribute computes per-feature signed contributions for the single vector
// by path attribution: every split the vector passes through moves the
// expected prediction, and that movement is credited to the split feature.
// Contributions for a tree sum to leaf value minus root value, so across the
// ensemble they explain exactly how the prediction departs from the base.
//
// The output shape depends on the artifact generation, mirroring the wild
// variety the explainer has to cope with: margin models emit a single
// (1, features) matrix, forest models a matrix per class, and stacked forest
// artifacts one (1, features, classes) tensor.
func (e *TreeEnsemble) Attribute(vector []float64) (AttributionValues, error) {
	if err := e.checkVector(vector); err != nil {
		return nil, err
	}

	if e.ModelType == ModelGradientBoosting {
		contribs := make([]float64, e.NumFeatures)
		for _, tree := range e.Trees {
			idx := 0
			for !tree.Nodes[idx].leaf() {
				n := tree.Nodes[idx]
				next := n.Left
				if vector[n.Feature] > n.Threshold {
					next = n.Right
				}
				contribs[n.Feature] += tree.Nodes[next].Value - n.Value
				idx = next
			}
		}
		return InstanceMatrix{contribs}, nil
	}

	// Forest: accumulate per-class movement along each decision path, then
	// average across trees like the prediction does.
	perClass := make([][]float64, e.Classes)
	for c := range perClass {
		perClass[c] = make([]float64, e.NumFeatures)
	}
	for _, tree := range e.Trees {
		idx := 0
		for !tree.Nodes[idx].leaf() {
			n := tree.Nodes[idx]
			next := n.Left
			if vector[n.Feature] > n.Threshold {
				next = n.Right
			}
			for c := 0; c < e.Classes; c++ {
				perClass[c][n.Feature] += (tree.Nodes[next].Values[c] - n.Values[c]) / float64(len(e.Trees))
			}
			idx = next
		}
	}

	if e.Stacked {
		instance := make([][]float64, e.NumFeatures)
		for f := 0; f < e.NumFeatures; f++ {
			instance[f] = make([]float64, e.Classes)
			for c := 0; c < e.Classes; c++ {
				instance[f][c] = perClass[c][f]
			}
		}
		return ClassTensor{instance}, nil
	}

	out := make(ClassMatrices, e.Classes)
	for c := range perClass {
		out[c] = InstanceMatrix{perClass[c]}
	}
	return out, nil
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}
