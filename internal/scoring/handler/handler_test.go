package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"

	"crisiswatch/internal/scoring/models"
)

type stubService struct {
	economic models.EconomicRequestV2
	food     models.FoodRequestV2
	result   models.ScoringResult
}

func (s *stubService) ScoreEconomicV2(_ context.Context, req models.EconomicRequestV2) models.ScoringResult {
	s.economic = req
	return s.result
}

func (s *stubService) ScoreFoodV2(_ context.Context, req models.FoodRequestV2) models.ScoringResult {
	s.food = req
	return s.result
}

type HandlerSuite struct {
	suite.Suite
	service *stubService
	router  chi.Router
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	s.service = &stubService{
		result: models.ScoringResult{
			Country:        "Argentina",
			Probability:    82.34,
			Classification: "High Risk",
			TopIndicators:  []models.Indicator{},
			IsHighRisk:     true,
		},
	}
	s.router = chi.NewRouter()
	New(s.service, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))).Register(s.router)
}

func (s *HandlerSuite) post(path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

const validEconomicBody = `{
	"country": "Argentina",
	"gdpGrowth": -4.17,
	"inflation": 26.95,
	"unemployment": 15.06,
	"domesticCredit": 32.5,
	"exports": 3.4,
	"imports": 45.0,
	"gdpPerCapita": 8500,
	"grossFixedCapital": 14.2
}`

func (s *HandlerSuite) TestAnalyzeEconomic() {
	rec := s.post("/api/analyze/economic", validEconomicBody)

	s.Require().Equal(http.StatusOK, rec.Code)
	s.Equal("Argentina", s.service.economic.Country)
	s.Equal(-4.17, s.service.economic.GDPGrowth)
	s.Equal(14.2, s.service.economic.GrossFixedCapital)

	var result models.ScoringResult
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &result))
	s.Equal(82.34, result.Probability)
	s.True(result.IsHighRisk)
}

func (s *HandlerSuite) TestAnalyzeEconomicMissingFields() {
	rec := s.post("/api/analyze/economic", `{"country": "Argentina", "gdpGrowth": 1.0}`)

	s.Require().Equal(http.StatusBadRequest, rec.Code)

	var resp struct {
		Error    string   `json:"error"`
		Missing  []string `json:"missing"`
		Required []string `json:"required"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal("Missing required fields", resp.Error)
	s.Contains(resp.Missing, "inflation")
	s.NotContains(resp.Missing, "gdpGrowth")
	s.Len(resp.Required, 9)
}

func (s *HandlerSuite) TestAnalyzeEconomicZeroIsAValue() {
	body := strings.Replace(validEconomicBody, "-4.17", "0", 1)
	rec := s.post("/api/analyze/economic", body)

	s.Require().Equal(http.StatusOK, rec.Code)
	s.Zero(s.service.economic.GDPGrowth)
}

func (s *HandlerSuite) TestAnalyzeEconomicMalformedJSON() {
	rec := s.post("/api/analyze/economic", `{"country": "Argentina", "gdpGrowth": "not a number"`)

	s.Require().Equal(http.StatusBadRequest, rec.Code)

	var resp struct {
		Error string `json:"error"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal("Invalid input values", resp.Error)
}

func (s *HandlerSuite) TestAnalyzeFood() {
	rec := s.post("/api/analyze/food", `{
		"country": "Yemen",
		"cerealYield": 1500,
		"foodImports": 12,
		"foodProductionIndex": 98,
		"gdpGrowth": 2.1,
		"gdpPerCapita": 1800,
		"inflation": 7.4,
		"populationGrowth": 2.9,
		"gdpCurrent": 21000000000
	}`)

	s.Require().Equal(http.StatusOK, rec.Code)
	s.Equal("Yemen", s.service.food.Country)
	s.Equal(1500.0, s.service.food.CerealYield)
}

func (s *HandlerSuite) TestAnalyzeFoodMissingFields() {
	rec := s.post("/api/analyze/food", `{"country": "Yemen"}`)

	s.Require().Equal(http.StatusBadRequest, rec.Code)

	var resp struct {
		Missing  []string `json:"missing"`
		Required []string `json:"required"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Len(resp.Missing, 8)
	s.Contains(resp.Required, "gdpCurrent")
}

func (s *HandlerSuite) TestDegradedResultStillTwoHundred() {
	s.service.result = models.ScoringResult{
		Country:        "Argentina",
		Classification: "Error: Model not loaded",
		TopIndicators:  []models.Indicator{},
	}

	rec := s.post("/api/analyze/economic", validEconomicBody)

	s.Require().Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "Error: Model not loaded")
	s.Contains(rec.Body.String(), `"topIndicators":[]`)
}
