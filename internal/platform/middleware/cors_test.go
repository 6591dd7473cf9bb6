package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/suite"
)

type CORSSuite struct {
	suite.Suite
	handler http.Handler
}

func TestCORSSuite(t *testing.T) {
	suite.Run(t, new(CORSSuite))
}

func (s *CORSSuite) SetupTest() {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	s.handler = CORS([]string{"http://localhost:5173"})(inner)
}

func (s *CORSSuite) TestAllowedOrigin() {
	req := httptest.NewRequest(http.MethodGet, "/api/news", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	s.Equal(http.StatusOK, rec.Code)
	s.Equal("http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
	s.Equal("true", rec.Header().Get("Access-Control-Allow-Credentials"))
}

func (s *CORSSuite) TestUnknownOriginGetsNoHeaders() {
	req := httptest.NewRequest(http.MethodGet, "/api/news", nil)
	req.Header.Set("Origin", "http://evil.example.com")
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	s.Equal(http.StatusOK, rec.Code)
	s.Empty(rec.Header().Get("Access-Control-Allow-Origin"))
}

func (s *CORSSuite) TestPreflightShortCircuits() {
	req := httptest.NewRequest(http.MethodOptions, "/api/analyze/economic", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	s.Equal(http.StatusNoContent, rec.Code)
	s.Equal("http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}
