package service

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/kharel/fintrack-bff-go/internal/domain"
	"github.com/kharel/fintrack-bff-go/internal/infra/cache"
	"github.com/kharel/fintrack-bff-go/internal/infra/observability"
	"github.com/kharel/fintrack-bff-go/internal/port"
)

var rateTracer = otel.Tracer("service/rates")

// RateService resolves currency conversion rates: same-currency pairs
// short-circuit at 1.0, fetched rates are cached, and when the direct
// pair is unavailable the reverse pair is inverted as a fallback.
type RateService struct {
	source  port.RateSource
	cache   *cache.InMemory[float64]
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewRateService creates a new rate service.
func NewRateService(source port.RateSource, rateCache *cache.InMemory[float64], metrics *observability.Metrics, logger *zap.Logger) *RateService {
	return &RateService{
		source:  source,
		cache:   rateCache,
		metrics: metrics,
		logger:  logger,
	}
}

// GetRate returns the from→to conversion rate.
func (s *RateService) GetRate(ctx context.Context, from, to string) (*domain.RateResponse, error) {
	ctx, span := rateTracer.Start(ctx, "RateService.GetRate")
	defer span.End()

	from = strings.ToUpper(strings.TrimSpace(from))
	to = strings.ToUpper(strings.TrimSpace(to))
	span.SetAttributes(
		attribute.String("currency.from", from),
		attribute.String("currency.to", to),
	)

	if from == "" || to == "" {
		return nil, &domain.ErrValidation{Field: "from/to", Message: "both currency codes are required"}
	}

	if from == to {
		return &domain.RateResponse{From: from, To: to, Rate: 1.0}, nil
	}

	key := "rate:" + from + ":" + to
	if rate, ok := s.cache.Get(key); ok {
		s.metrics.IncrCacheHit("rates")
		return &domain.RateResponse{From: from, To: to, Rate: rate}, nil
	}
	s.metrics.IncrCacheMiss("rates")

	rate, err := s.source.GetRate(ctx, from, to)
	if err != nil {
		// Direct pair unavailable: try the reverse pair and invert.
		reverse, revErr := s.source.GetRate(ctx, to, from)
		if revErr != nil || reverse == 0 {
			s.metrics.IncrExternalError("rates-api")
			return nil, err
		}
		s.logger.Debug("rate resolved via reverse pair",
			zap.String("from", from),
			zap.String("to", to),
		)
		rate = 1 / reverse
	}

	s.cache.Set(key, rate)
	return &domain.RateResponse{From: from, To: to, Rate: rate}, nil
}
