package scoring

import (
	"fmt"

	"crisiswatch/internal/artifact"
	"crisiswatch/internal/scoring/models"
)

// FeatureVector is an ordered numeric vector plus the label order it was
// built in. The order travels with the values so it can be echoed on results.
type FeatureVector struct {
	Values []float64
	Order  []string
}

// BuildVector assembles the model input vector for a domain from named
// indicator values. Bundled artifacts dictate their own feature order;
// legacy artifacts fall back to the domain's hardcoded layout. Lag labels
// missing from the input default to the current-period value of the same
// indicator before assembly, so a request without history still scores.
func BuildVector(domain Domain, inputs map[string]float64, art *artifact.Artifact) (*FeatureVector, error) {
	order := legacyOrder(domain)
	if art != nil && art.Variant == artifact.VariantBundled && len(art.FeatureOrder) > 0 {
		order = art.FeatureOrder
	}

	resolved := applyLagFallback(domain, inputs)

	values := make([]float64, len(order))
	for i, label := range order {
		v, ok := resolved[label]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingFeature, label)
		}
		values[i] = v
	}
	return &FeatureVector{Values: values, Order: order}, nil
}

// applyLagFallback returns a copy of inputs with absent lag labels filled
// from their base indicator. The input map is never mutated. Fallback is per
// label: supplying one lag does not disable defaulting for the others.
func applyLagFallback(domain Domain, inputs map[string]float64) map[string]float64 {
	resolved := make(map[string]float64, len(inputs)+2)
	for label, v := range inputs {
		resolved[label] = v
	}
	for lag, base := range fallbackTable(domain) {
		if _, ok := resolved[lag]; ok {
			continue
		}
		if v, ok := resolved[base]; ok {
			resolved[lag] = v
		}
	}
	return resolved
}

// economicInputs maps the lag-aware economic request onto feature labels.
// Nil lags are simply omitted; BuildVector fills them in.
func economicInputs(req models.EconomicRequest) map[string]float64 {
	inputs := map[string]float64{
		LabelGDPGrowthAnnual: req.GDPGrowth,
		LabelInflationCPI:    req.Inflation,
		LabelUnemployment:    req.Unemployment,
		LabelDomesticCredit:  req.DomesticCredit,
		LabelExports:         req.Exports,
		LabelImports:         req.Imports,
	}
	if req.GDPGrowthLag != nil {
		inputs[LabelGDPGrowthLag] = *req.GDPGrowthLag
	}
	if req.InflationLag != nil {
		inputs[LabelInflationLag] = *req.InflationLag
	}
	return inputs
}

func economicInputsV2(req models.EconomicRequestV2) map[string]float64 {
	return map[string]float64{
		LabelGDPGrowthAnnual:   req.GDPGrowth,
		LabelInflationCPI:      req.Inflation,
		LabelUnemployment:      req.Unemployment,
		LabelDomesticCredit:    req.DomesticCredit,
		LabelExports:           req.Exports,
		LabelImports:           req.Imports,
		LabelGDPPerCapita:      req.GDPPerCapita,
		LabelGrossFixedCapital: req.GrossFixedCapital,
	}
}

func foodInputs(req models.FoodRequest) map[string]float64 {
	inputs := map[string]float64{
		LabelCerealYield:      req.CerealYield,
		LabelFoodImports:      req.FoodImports,
		LabelFoodProduction:   req.FoodProductionIndex,
		LabelFoodGDPGrowth:    req.GDPGrowth,
		LabelGDPPerCapita:     req.GDPPerCapita,
		LabelFoodInflation:    req.Inflation,
		LabelPopulationGrowth: req.PopulationGrowth,
	}
	if req.CerealYieldLag != nil {
		inputs[LabelCerealYieldLag] = *req.CerealYieldLag
	}
	if req.FoodImportsLag != nil {
		inputs[LabelFoodImportsLag] = *req.FoodImportsLag
	}
	if req.FoodProductionLag != nil {
		inputs[LabelFoodProductionLag] = *req.FoodProductionLag
	}
	if req.GDPGrowthLag != nil {
		inputs[LabelGDPGrowthLag] = *req.GDPGrowthLag
	}
	return inputs
}

func foodInputsV2(req models.FoodRequestV2) map[string]float64 {
	return map[string]float64{
		LabelCerealYield:      req.CerealYield,
		LabelFoodImports:      req.FoodImports,
		LabelFoodProduction:   req.FoodProductionIndex,
		LabelFoodGDPGrowth:    req.GDPGrowth,
		LabelGDPPerCapita:     req.GDPPerCapita,
		LabelFoodInflation:    req.Inflation,
		LabelPopulationGrowth: req.PopulationGrowth,
		LabelGDPCurrent:       req.GDPCurrent,
	}
}
