package service

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/kharel/fintrack-bff-go/internal/domain"
	"github.com/kharel/fintrack-bff-go/internal/engine"
	"github.com/kharel/fintrack-bff-go/internal/infra/cache"
	"github.com/kharel/fintrack-bff-go/internal/infra/observability"
	"github.com/kharel/fintrack-bff-go/internal/port"
)

var invTracer = otel.Tracer("service/investments")

// InvestmentService handles investment lifecycle, valuation history, and
// projected-return previews.
type InvestmentService struct {
	store           port.FinanceStore
	derived         *cache.InMemory[*domain.Dashboard]
	metrics         *observability.Metrics
	logger          *zap.Logger
	defaultCurrency string
}

// NewInvestmentService creates a new investment service.
func NewInvestmentService(store port.FinanceStore, derived *cache.InMemory[*domain.Dashboard], metrics *observability.Metrics, logger *zap.Logger, defaultCurrency string) *InvestmentService {
	return &InvestmentService{
		store:           store,
		derived:         derived,
		metrics:         metrics,
		logger:          logger,
		defaultCurrency: defaultCurrency,
	}
}

// List returns the user's investments, optionally filtered by status.
func (s *InvestmentService) List(ctx context.Context, userID, status string) ([]domain.Investment, error) {
	ctx, span := invTracer.Start(ctx, "InvestmentService.List")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", userID))

	return s.store.ListInvestments(ctx, userID, status)
}

// Get returns a single investment with its valuation history.
func (s *InvestmentService) Get(ctx context.Context, userID, investmentID string) (*domain.Investment, []domain.ROIEntry, error) {
	ctx, span := invTracer.Start(ctx, "InvestmentService.Get")
	defer span.End()

	inv, err := s.store.GetInvestment(ctx, userID, investmentID)
	if err != nil {
		return nil, nil, err
	}

	entries, err := s.store.ListROIEntries(ctx, investmentID)
	if err != nil {
		return nil, nil, err
	}

	return inv, entries, nil
}

// Create validates and stores a new investment. The current value defaults
// to the initial amount and the realized ROI is derived, never accepted
// from the client.
func (s *InvestmentService) Create(ctx context.Context, userID string, req *domain.CreateInvestmentRequest) (*domain.Investment, error) {
	ctx, span := invTracer.Start(ctx, "InvestmentService.Create")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", userID))

	if req.Name == "" {
		return nil, &domain.ErrValidation{Field: "name", Message: "required"}
	}
	if req.InitialAmount <= 0 || math.IsNaN(req.InitialAmount) || math.IsInf(req.InitialAmount, 0) {
		return nil, &domain.ErrValidation{Field: "initial_amount", Message: "must be a positive finite number"}
	}
	if req.InvestmentType == "" {
		return nil, &domain.ErrValidation{Field: "investment_type", Message: "required"}
	}

	purchaseDate := time.Now().UTC()
	if req.PurchaseDate != "" {
		parsed, err := time.Parse("2006-01-02", req.PurchaseDate)
		if err != nil {
			return nil, &domain.ErrValidation{Field: "purchase_date", Message: "expected YYYY-MM-DD"}
		}
		purchaseDate = parsed
	}

	currency := req.Currency
	if currency == "" {
		currency = s.defaultCurrency
	}

	current := req.CurrentValue
	if current == 0 {
		current = req.InitialAmount
	}

	inv := &domain.Investment{
		ID:             uuid.NewString(),
		UserID:         userID,
		Name:           req.Name,
		Platform:       req.Platform,
		InvestmentType: req.InvestmentType,
		InitialAmount:  req.InitialAmount,
		CurrentValue:   current,
		ExpectedROI:    req.ExpectedROI,
		ActualROI:      engine.ActualROI(req.InitialAmount, current),
		Currency:       currency,
		PurchaseDate:   purchaseDate,
		MaturityDate:   req.MaturityDate,
		Status:         "active",
		Notes:          req.Notes,
	}

	created, err := s.store.CreateInvestment(ctx, inv)
	if err != nil {
		return nil, err
	}

	s.derived.DeletePrefix(userID + ":")
	s.logger.Info("investment created",
		zap.String("user_id", userID),
		zap.String("investment_id", created.ID),
		zap.String("investment_type", created.InvestmentType),
	)
	return created, nil
}

// RecordROI appends a valuation point and rolls the investment's current
// value and realized ROI forward to it.
func (s *InvestmentService) RecordROI(ctx context.Context, userID, investmentID string, req *domain.ROIEntryRequest) (*domain.ROIEntry, error) {
	ctx, span := invTracer.Start(ctx, "InvestmentService.RecordROI")
	defer span.End()
	span.SetAttributes(attribute.String("investment.id", investmentID))

	if req.RecordedValue <= 0 || math.IsNaN(req.RecordedValue) || math.IsInf(req.RecordedValue, 0) {
		return nil, &domain.ErrValidation{Field: "recorded_value", Message: "must be a positive finite number"}
	}

	inv, err := s.store.GetInvestment(ctx, userID, investmentID)
	if err != nil {
		return nil, err
	}

	entryDate := time.Now().UTC()
	if req.EntryDate != "" {
		parsed, err := time.Parse("2006-01-02", req.EntryDate)
		if err != nil {
			return nil, &domain.ErrValidation{Field: "entry_date", Message: "expected YYYY-MM-DD"}
		}
		entryDate = parsed
	}

	roi := engine.ActualROI(inv.InitialAmount, req.RecordedValue)

	entry, err := s.store.CreateROIEntry(ctx, &domain.ROIEntry{
		ID:            uuid.NewString(),
		InvestmentID:  investmentID,
		RecordedValue: req.RecordedValue,
		ROIPercentage: roi,
		EntryDate:     entryDate,
		Note:          req.Note,
	})
	if err != nil {
		return nil, err
	}

	inv.CurrentValue = req.RecordedValue
	inv.ActualROI = roi
	if _, err := s.store.UpdateInvestment(ctx, userID, investmentID, inv); err != nil {
		return nil, err
	}

	s.derived.DeletePrefix(userID + ":")
	return entry, nil
}

// Preview computes the simple one-year projected return for an investment
// form being edited. Display path: bad input degrades to zeros.
func (s *InvestmentService) Preview(ctx context.Context, req *domain.InvestmentPreviewRequest) *domain.InvestmentPreviewResponse {
	_, span := invTracer.Start(ctx, "InvestmentService.Preview")
	defer span.End()

	ret := engine.ProjectedReturn(req.Principal, req.ROIPercentage)
	s.metrics.IncrEngineEvaluation("projection")

	value := req.Principal + ret
	if math.IsNaN(value) || math.IsInf(value, 0) {
		value = 0
	}

	return &domain.InvestmentPreviewResponse{
		ProjectedReturn: ret,
		ProjectedValue:  value,
	}
}
