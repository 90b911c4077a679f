// Package client holds HTTP clients for external APIs.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/kharel/fintrack-bff-go/internal/domain"
	"github.com/kharel/fintrack-bff-go/internal/infra/resilience"
)

var tracer = otel.Tracer("client")

// RatesClient fetches currency conversion rates from the external
// exchange-rate API. Implements port.RateSource.
type RatesClient struct {
	httpClient *http.Client
	baseURL    string
	cb         *gobreaker.CircuitBreaker
	cfg        resilience.Config
}

// NewRatesClient creates a new RatesClient.
func NewRatesClient(httpClient *http.Client, baseURL string, cb *gobreaker.CircuitBreaker, cfg resilience.Config) *RatesClient {
	return &RatesClient{
		httpClient: httpClient,
		baseURL:    baseURL,
		cb:         cb,
		cfg:        cfg,
	}
}

// ratesResponse is the shape of GET {base}/latest/{from}: a base currency
// plus a map of rates keyed by currency code.
type ratesResponse struct {
	Base  string             `json:"base"`
	Rates map[string]float64 `json:"rates"`
}

// GetRate fetches the from→to conversion rate with retry, circuit breaker,
// and tracing. Unknown currency codes surface as ErrNotFound.
func (c *RatesClient) GetRate(ctx context.Context, from, to string) (float64, error) {
	ctx, span := tracer.Start(ctx, "RatesClient.GetRate")
	defer span.End()
	span.SetAttributes(
		attribute.String("currency.from", from),
		attribute.String("currency.to", to),
	)

	from = strings.ToUpper(from)
	to = strings.ToUpper(to)

	var rate float64

	result, err := c.cb.Execute(func() (any, error) {
		innerErr := resilience.RetryWithBackoff(ctx, c.cfg, func() error {
			url := fmt.Sprintf("%s/%s", c.baseURL, from)
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
			if err != nil {
				return err
			}

			resp, err := c.httpClient.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode == http.StatusNotFound {
				return resilience.Permanent(&domain.ErrNotFound{Resource: "currency", ID: from})
			}
			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("rates API returned status %d", resp.StatusCode)
			}

			var rr ratesResponse
			if err := json.NewDecoder(resp.Body).Decode(&rr); err != nil {
				return err
			}

			r, ok := rr.Rates[to]
			if !ok {
				return resilience.Permanent(&domain.ErrNotFound{Resource: "currency", ID: to})
			}
			rate = r
			return nil
		})
		if innerErr != nil {
			return nil, innerErr
		}
		return rate, nil
	})

	if err != nil {
		return 0, &domain.ErrExternalService{Service: "rates-api", Err: err}
	}

	return result.(float64), nil
}
