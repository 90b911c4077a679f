package service_test

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kharel/fintrack-bff-go/internal/infra/cache"
	"github.com/kharel/fintrack-bff-go/internal/infra/observability"
	"github.com/kharel/fintrack-bff-go/internal/service"
)

func newRateService(source *stubRates) *service.RateService {
	return service.NewRateService(source, cache.New[float64](time.Minute), observability.NewMetrics(), zap.NewNop())
}

func TestRateSameCurrency(t *testing.T) {
	source := &stubRates{}
	svc := newRateService(source)

	resp, err := svc.GetRate(context.Background(), "usd", "USD")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Rate != 1.0 {
		t.Errorf("rate = %v, want 1.0", resp.Rate)
	}
	if source.calls != 0 {
		t.Errorf("same-currency pair must not hit the source, got %d calls", source.calls)
	}
}

func TestRateCaching(t *testing.T) {
	source := &stubRates{rates: map[string]float64{"USD:EUR": 0.9}}
	svc := newRateService(source)

	for i := 0; i < 3; i++ {
		resp, err := svc.GetRate(context.Background(), "USD", "EUR")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.Rate != 0.9 {
			t.Errorf("rate = %v, want 0.9", resp.Rate)
		}
	}
	if source.calls != 1 {
		t.Errorf("expected 1 source call, got %d", source.calls)
	}
}

func TestRateReverseFallback(t *testing.T) {
	// Only EUR→USD exists; USD→EUR must come back inverted.
	source := &stubRates{rates: map[string]float64{"EUR:USD": 2.0}}
	svc := newRateService(source)

	resp, err := svc.GetRate(context.Background(), "USD", "EUR")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Rate != 0.5 {
		t.Errorf("rate = %v, want 0.5", resp.Rate)
	}
}

func TestRateUnknownPair(t *testing.T) {
	svc := newRateService(&stubRates{})

	if _, err := svc.GetRate(context.Background(), "USD", "XYZ"); err == nil {
		t.Error("expected an error for an unknown pair")
	}
	if _, err := svc.GetRate(context.Background(), "", "EUR"); err == nil {
		t.Error("expected a validation error for a missing code")
	}
}
