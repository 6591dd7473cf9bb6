// Command analyze scores a single country from the command line, using the
// same artifacts and engine as the server. Handy for sanity-checking a model
// file before deploying it.
//
// Usage:
//
//	analyze economic <country> <gdpGrowth> <inflation> <unemployment> <domesticCredit> <exports> <imports>
//	analyze food <country> <cerealYield> <foodImports> <foodProductionIndex> <gdpGrowth> <gdpPerCapita> <inflation> <populationGrowth>
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"crisiswatch/internal/artifact"
	"crisiswatch/internal/platform/config"
	"crisiswatch/internal/scoring"
	"crisiswatch/internal/scoring/models"
	scoringmetrics "crisiswatch/internal/scoring/metrics"
)

func main() {
	if len(os.Args) < 2 {
		usage()
	}
	domain := os.Args[1]
	args := os.Args[2:]

	cfg := config.FromEnv()
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	store := artifact.NewStore(cfg.ModelDir, log)
	artifacts := scoring.Artifacts{}
	switch domain {
	case "economic":
		artifacts.Economic, _ = store.Load("economic")
	case "food":
		artifacts.Food, _ = store.Load("food")
	default:
		usage()
	}

	service := scoring.NewService(artifacts, log, scoringmetrics.New())

	var result models.ScoringResult
	switch domain {
	case "economic":
		if len(args) != 7 {
			usage()
		}
		v := parseFloats(args[1:])
		result = service.ScoreEconomic(context.Background(), models.EconomicRequest{
			Country:        args[0],
			GDPGrowth:      v[0],
			Inflation:      v[1],
			Unemployment:   v[2],
			DomesticCredit: v[3],
			Exports:        v[4],
			Imports:        v[5],
		})
	case "food":
		if len(args) != 8 {
			usage()
		}
		v := parseFloats(args[1:])
		result = service.ScoreFood(context.Background(), models.FoodRequest{
			Country:             args[0],
			CerealYield:         v[0],
			FoodImports:         v[1],
			FoodProductionIndex: v[2],
			GDPGrowth:           v[3],
			GDPPerCapita:        v[4],
			Inflation:           v[5],
			PopulationGrowth:    v[6],
		})
	}

	out, err := json.Marshal(result)
	if err != nil {
		fail(fmt.Sprintf("encode result: %v", err))
	}
	fmt.Println(string(out))
}

func parseFloats(args []string) []float64 {
	out := make([]float64, len(args))
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			fail(fmt.Sprintf("argument %q is not a number", a))
		}
		out[i] = v
	}
	return out
}

// fail emits a JSON error so script consumers get machine-readable output on
// both paths.
func fail(message string) {
	out, _ := json.Marshal(map[string]string{"error": message})
	fmt.Fprintln(os.Stderr, string(out))
	os.Exit(1)
}

func usage() {
	fail("usage: analyze economic <country> <gdpGrowth> <inflation> <unemployment> <domesticCredit> <exports> <imports> | analyze food <country> <cerealYield> <foodImports> <foodProductionIndex> <gdpGrowth> <gdpPerCapita> <inflation> <populationGrowth>")
}
