package scoring

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/semaphore"

	"crisiswatch/internal/artifact"
	"crisiswatch/internal/scoring/models"
	"crisiswatch/pkg/requestcontext"
)

// Artifacts holds the per-domain model artifacts loaded at startup. A nil
// entry means the domain's model is unavailable and every score for it
// degrades.
type Artifacts struct {
	Economic *artifact.Artifact
	Food     *artifact.Artifact
}

type metricsRecorder interface {
	IncrementScored(domain string)
	IncrementFailure(domain, reason string)
	IncrementAttributionFailure(domain string)
	IncrementHighRisk(domain string)
	ObserveDuration(domain string, d time.Duration)
}

// Service is the scoring engine facade. All entry points are total: they
// always return a well-formed result, degrading on any internal failure.
type Service struct {
	artifacts Artifacts
	logger    *slog.Logger
	metrics   metricsRecorder
	tracer    trace.Tracer
	// sem bounds concurrent tree walks to the CPU count; scoring is pure
	// computation and unbounded parallelism just causes scheduler churn.
	sem *semaphore.Weighted
}

func NewService(artifacts Artifacts, logger *slog.Logger, metrics metricsRecorder) *Service {
	return &Service{
		artifacts: artifacts,
		logger:    logger,
		metrics:   metrics,
		tracer:    otel.Tracer("crisiswatch/scoring"),
		sem:       semaphore.NewWeighted(int64(runtime.GOMAXPROCS(0))),
	}
}

// ScoreEconomic scores the lag-aware economic schema.
func (s *Service) ScoreEconomic(ctx context.Context, req models.EconomicRequest) models.ScoringResult {
	return s.score(ctx, DomainEconomic, req.Country, economicInputs(req))
}

// ScoreEconomicV2 scores the level-based economic schema.
func (s *Service) ScoreEconomicV2(ctx context.Context, req models.EconomicRequestV2) models.ScoringResult {
	return s.score(ctx, DomainEconomic, req.Country, economicInputsV2(req))
}

// ScoreFood scores the lag-aware food schema.
func (s *Service) ScoreFood(ctx context.Context, req models.FoodRequest) models.ScoringResult {
	return s.score(ctx, DomainFood, req.Country, foodInputs(req))
}

// ScoreFoodV2 scores the level-based food schema.
func (s *Service) ScoreFoodV2(ctx context.Context, req models.FoodRequestV2) models.ScoringResult {
	return s.score(ctx, DomainFood, req.Country, foodInputsV2(req))
}

func (s *Service) artifactFor(domain Domain) *artifact.Artifact {
	if domain == DomainFood {
		return s.artifacts.Food
	}
	return s.artifacts.Economic
}

func (s *Service) score(ctx context.Context, domain Domain, country string, inputs map[string]float64) models.ScoringResult {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "scoring.score", trace.WithAttributes(
		attribute.String("scoring.domain", string(domain)),
		attribute.String("scoring.country", country),
	))
	defer span.End()

	s.metrics.IncrementScored(string(domain))

	if err := s.sem.Acquire(ctx, 1); err != nil {
		return s.fail(ctx, domain, country, err)
	}
	defer s.sem.Release(1)

	art := s.artifactFor(domain)
	if art == nil {
		return s.fail(ctx, domain, country, ErrArtifactUnavailable)
	}

	vec, err := BuildVector(domain, inputs, art)
	if err != nil {
		return s.fail(ctx, domain, country, err)
	}

	percentage, classification, highRisk, err := score(domain, art, vec)
	if err != nil {
		return s.fail(ctx, domain, country, err)
	}

	top, err := explain(art, vec, topIndicatorCount)
	if err != nil {
		// Attribution failure is not a scoring failure; the result ships
		// without indicators.
		s.metrics.IncrementAttributionFailure(string(domain))
		s.logger.WarnContext(ctx, "attribution failed",
			"request_id", requestcontext.RequestID(ctx),
			"domain", domain,
			"country", country,
			"error", err,
		)
	}

	if highRisk {
		s.metrics.IncrementHighRisk(string(domain))
	}
	s.metrics.ObserveDuration(string(domain), time.Since(start))
	s.logger.InfoContext(ctx, "country scored",
		"request_id", requestcontext.RequestID(ctx),
		"domain", domain,
		"country", country,
		"probability", percentage,
		"classification", classification,
		"high_risk", highRisk,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return assemble(country, percentage, classification, highRisk, top, vec.Order)
}

func (s *Service) fail(ctx context.Context, domain Domain, country string, err error) models.ScoringResult {
	s.metrics.IncrementFailure(string(domain), failureReason(err))
	s.logger.ErrorContext(ctx, "scoring degraded",
		"request_id", requestcontext.RequestID(ctx),
		"domain", domain,
		"country", country,
		"error", err,
	)
	return degraded(country, err)
}
