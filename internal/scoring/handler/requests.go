package handler

import "crisiswatch/internal/scoring/models"

// Request DTOs use pointer fields so absent and zero-valued inputs are
// distinguishable; 0.0 is a legitimate value for every indicator.

type economicAnalyzeRequest struct {
	Country           *string  `json:"country"`
	GDPGrowth         *float64 `json:"gdpGrowth"`
	Inflation         *float64 `json:"inflation"`
	Unemployment      *float64 `json:"unemployment"`
	DomesticCredit    *float64 `json:"domesticCredit"`
	Exports           *float64 `json:"exports"`
	Imports           *float64 `json:"imports"`
	GDPPerCapita      *float64 `json:"gdpPerCapita"`
	GrossFixedCapital *float64 `json:"grossFixedCapital"`
}

var economicRequiredFields = []string{
	"country", "gdpGrowth", "inflation", "unemployment",
	"domesticCredit", "exports", "imports", "gdpPerCapita", "grossFixedCapital",
}

func (r *economicAnalyzeRequest) missing() []string {
	missing := []string{}
	for _, f := range []struct {
		name string
		set  bool
	}{
		{"country", r.Country != nil},
		{"gdpGrowth", r.GDPGrowth != nil},
		{"inflation", r.Inflation != nil},
		{"unemployment", r.Unemployment != nil},
		{"domesticCredit", r.DomesticCredit != nil},
		{"exports", r.Exports != nil},
		{"imports", r.Imports != nil},
		{"gdpPerCapita", r.GDPPerCapita != nil},
		{"grossFixedCapital", r.GrossFixedCapital != nil},
	} {
		if !f.set {
			missing = append(missing, f.name)
		}
	}
	return missing
}

func (r *economicAnalyzeRequest) toDomain() models.EconomicRequestV2 {
	return models.EconomicRequestV2{
		Country:           *r.Country,
		GDPGrowth:         *r.GDPGrowth,
		Inflation:         *r.Inflation,
		Unemployment:      *r.Unemployment,
		DomesticCredit:    *r.DomesticCredit,
		Exports:           *r.Exports,
		Imports:           *r.Imports,
		GDPPerCapita:      *r.GDPPerCapita,
		GrossFixedCapital: *r.GrossFixedCapital,
	}
}

type foodAnalyzeRequest struct {
	Country             *string  `json:"country"`
	CerealYield         *float64 `json:"cerealYield"`
	FoodImports         *float64 `json:"foodImports"`
	FoodProductionIndex *float64 `json:"foodProductionIndex"`
	GDPGrowth           *float64 `json:"gdpGrowth"`
	GDPPerCapita        *float64 `json:"gdpPerCapita"`
	Inflation           *float64 `json:"inflation"`
	PopulationGrowth    *float64 `json:"populationGrowth"`
	GDPCurrent          *float64 `json:"gdpCurrent"`
}

var foodRequiredFields = []string{
	"country", "cerealYield", "foodImports", "foodProductionIndex",
	"gdpGrowth", "gdpPerCapita", "inflation", "populationGrowth", "gdpCurrent",
}

func (r *foodAnalyzeRequest) missing() []string {
	missing := []string{}
	for _, f := range []struct {
		name string
		set  bool
	}{
		{"country", r.Country != nil},
		{"cerealYield", r.CerealYield != nil},
		{"foodImports", r.FoodImports != nil},
		{"foodProductionIndex", r.FoodProductionIndex != nil},
		{"gdpGrowth", r.GDPGrowth != nil},
		{"gdpPerCapita", r.GDPPerCapita != nil},
		{"inflation", r.Inflation != nil},
		{"populationGrowth", r.PopulationGrowth != nil},
		{"gdpCurrent", r.GDPCurrent != nil},
	} {
		if !f.set {
			missing = append(missing, f.name)
		}
	}
	return missing
}

func (r *foodAnalyzeRequest) toDomain() models.FoodRequestV2 {
	return models.FoodRequestV2{
		Country:             *r.Country,
		CerealYield:         *r.CerealYield,
		FoodImports:         *r.FoodImports,
		FoodProductionIndex: *r.FoodProductionIndex,
		GDPGrowth:           *r.GDPGrowth,
		GDPPerCapita:        *r.GDPPerCapita,
		Inflation:           *r.Inflation,
		PopulationGrowth:    *r.PopulationGrowth,
		GDPCurrent:          *r.GDPCurrent,
	}
}
