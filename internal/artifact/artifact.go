// Package artifact loads and adapts trained model artifacts.
//
// An artifact is an opaque, previously trained binary classifier (a tree
// ensemble) plus, depending on the generation that produced it, an ordered
// list of the feature names it was trained on. The scoring engine treats the
// classifier as a probability-producing function with an attribution
// function; it never inspects tree internals.
package artifact

// Variant distinguishes the two on-disk artifact schemas that coexist in
// deployments.
type Variant string

const (
	// VariantBundled artifacts carry an explicit feature-name list alongside
	// the classifier.
	VariantBundled Variant = "bundled"
	// VariantLegacy artifacts are a bare classifier; the feature order is
	// implied by a hardcoded per-domain constant known to the vectorizer.
	VariantLegacy Variant = "legacy"
)

// Classifier is the minimal model contract: a point prediction for a single
// feature vector.
type Classifier interface {
	Predict(vector []float64) (float64, error)
}

// ProbabilityClassifier is implemented by models that expose per-class
// probabilities. The scorer prefers this over the point prediction when
// available.
type ProbabilityClassifier interface {
	PredictProbabilities(vector []float64) ([]float64, error)
}

// FeatureCounter is implemented by models that declare how many features they
// were trained on. When exposed, the vector length passed to the model must
// match exactly; a mismatch is a hard error, never silently truncated or
// padded.
type FeatureCounter interface {
	FeatureCount() int
}

// Attributor is implemented by models that can explain a single prediction
// with per-feature signed contribution values.
type Attributor interface {
	Attribute(vector []float64) (AttributionValues, error)
}

// AttributionValues is the raw output of an attribution computation. The
// shape varies with the model generation that produced the artifact, so three
// concrete shapes exist; the explainer normalizes all of them into one
// per-instance contribution vector before any ranking happens.
type AttributionValues interface {
	attributionShape()
}

// InstanceMatrix holds contributions as (instances, features). Produced by
// margin-based models where a single value per feature explains the
// prediction.
type InstanceMatrix [][]float64

// ClassMatrices holds one (instances, features) matrix per class. The
// positive-class matrix is the one that explains a crisis probability.
type ClassMatrices []InstanceMatrix

// ClassTensor holds contributions as (instances, features, classes), the
// stacked layout emitted by newer artifact generations.
type ClassTensor [][][]float64

func (InstanceMatrix) attributionShape() {}
func (ClassMatrices) attributionShape()  {}
func (ClassTensor) attributionShape()    {}

// Artifact is a loaded model plus its variant metadata. Loaded once at
// process start and read-only thereafter, so concurrent scoring calls can
// share it without locking.
type Artifact struct {
	Variant    Variant
	Classifier Classifier
	// FeatureOrder is the explicit feature-name list for bundled artifacts.
	// Empty for legacy artifacts.
	FeatureOrder []string
}

// ExpectedFeatureCount reports the classifier's declared feature count, if it
// declares one.
func (a *Artifact) ExpectedFeatureCount() (int, bool) {
	if fc, ok := a.Classifier.(FeatureCounter); ok {
		return fc.FeatureCount(), true
	}
	return 0, false
}
