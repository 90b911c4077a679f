// Package service provides the business logic layer (use cases) between
// the HTTP handlers and the stores, orchestrating the derivation engine
// over fetched snapshots.
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

var txTracer = otel.Tracer("service/transactions")

// TransactionService handles transaction CRUD plus the summary and balance
// read models derived from the transaction snapshot.
type TransactionService struct {
	store           port.FinanceStore
	derived         *cache.InMemory[*domain.Dashboard]
	metrics         *observability.Metrics
	logger          *zap.Logger
	defaultCurrency string
}

// NewTransactionService creates a new transaction service. The derived
// cache is shared with the dashboard service; mutations here evict it.
func NewTransactionService(store port.FinanceStore, derived *cache.InMemory[*domain.Dashboard], metrics *observability.Metrics, logger *zap.Logger, defaultCurrency string) *TransactionService {
	return &TransactionService{
		store:           store,
		derived:         derived,
		metrics:         metrics,
		logger:          logger,
		defaultCurrency: defaultCurrency,
	}
}

// List returns the user's transactions with optional filters.
func (s *TransactionService) List(ctx context.Context, userID string, filter port.TransactionFilter) ([]domain.Transaction, error) {
	ctx, span := txTracer.Start(ctx, "TransactionService.List")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", userID))

	return s.store.ListTransactions(ctx, userID, filter)
}

// Get returns a single transaction.
func (s *TransactionService) Get(ctx context.Context, userID, transactionID string) (*domain.Transaction, error) {
	ctx, span := txTracer.Start(ctx, "TransactionService.Get")
	defer span.End()

	return s.store.GetTransaction(ctx, userID, transactionID)
}

func (s *TransactionService) validate(req *domain.CreateTransactionRequest) error {
	if req.Amount == 0 || math.IsNaN(req.Amount) || math.IsInf(req.Amount, 0) {
		return &domain.ErrValidation{Field: "amount", Message: "must be a non-zero finite number"}
	}
	if req.Category == "" {
		return &domain.ErrValidation{Field: "category", Message: "required"}
	}
	switch domain.TransactionKind(req.TransactionType) {
	case "", domain.KindRegular, domain.KindLoan, domain.KindLoanRepayment,
		domain.KindInvestment, domain.KindInvestmentReturn:
	default:
		return &domain.ErrValidation{Field: "transaction_type", Message: "unknown transaction type"}
	}
	return nil
}

func (s *TransactionService) fromRequest(userID string, req *domain.CreateTransactionRequest) (*domain.Transaction, error) {
	date := time.Now().UTC()
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			return nil, &domain.ErrValidation{Field: "date", Message: "expected YYYY-MM-DD"}
		}
		date = parsed
	}

	currency := req.Currency
	if currency == "" {
		currency = s.defaultCurrency
	}

	return &domain.Transaction{
		UserID:              userID,
		Amount:              req.Amount,
		Currency:            currency,
		Date:                date,
		Category:            req.Category,
		Note:                req.Note,
		TransactionType:     domain.TransactionKind(req.TransactionType),
		InterestRate:        req.InterestRate,
		ROIPercentage:       req.ROIPercentage,
		Deadline:            req.Deadline,
		Status:              req.Status,
		LinkedTransactionID: req.LinkedTransactionID,
	}, nil
}

// Create validates and stores a new transaction. Writes are strict: an
// unknown transaction_type is rejected here even though reads normalize
// it to regular.
func (s *TransactionService) Create(ctx context.Context, userID string, req *domain.CreateTransactionRequest) (*domain.Transaction, error) {
	ctx, span := txTracer.Start(ctx, "TransactionService.Create")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", userID))

	if err := s.validate(req); err != nil {
		return nil, err
	}

	tx, err := s.fromRequest(userID, req)
	if err != nil {
		return nil, err
	}
	tx.ID = uuid.NewString()

	created, err := s.store.CreateTransaction(ctx, tx)
	if err != nil {
		return nil, err
	}

	s.derived.DeletePrefix(userID + ":")
	s.logger.Info("transaction created",
		zap.String("user_id", userID),
		zap.String("transaction_id", created.ID),
		zap.String("category", created.Category),
	)
	return created, nil
}

// Update validates and stores changes to an existing transaction.
func (s *TransactionService) Update(ctx context.Context, userID, transactionID string, req *domain.CreateTransactionRequest) (*domain.Transaction, error) {
	ctx, span := txTracer.Start(ctx, "TransactionService.Update")
	defer span.End()
	span.SetAttributes(attribute.String("transaction.id", transactionID))

	if err := s.validate(req); err != nil {
		return nil, err
	}

	tx, err := s.fromRequest(userID, req)
	if err != nil {
		return nil, err
	}

	updated, err := s.store.UpdateTransaction(ctx, userID, transactionID, tx)
	if err != nil {
		return nil, err
	}

	s.derived.DeletePrefix(userID + ":")
	return updated, nil
}

// Delete removes a transaction.
func (s *TransactionService) Delete(ctx context.Context, userID, transactionID string) error {
	ctx, span := txTracer.Start(ctx, "TransactionService.Delete")
	defer span.End()
	span.SetAttributes(attribute.String("transaction.id", transactionID))

	if err := s.store.DeleteTransaction(ctx, userID, transactionID); err != nil {
		return err
	}

	s.derived.DeletePrefix(userID + ":")
	return nil
}

// Summary recomputes the period summary from the full snapshot. Always a
// fresh fetch and a fresh computation; summaries are never stored.
func (s *TransactionService) Summary(ctx context.Context, userID string, period domain.Period) (*domain.PeriodSummary, error) {
	ctx, span := txTracer.Start(ctx, "TransactionService.Summary")
	defer span.End()
	span.SetAttributes(
		attribute.String("user.id", userID),
		attribute.String("period", string(period)),
	)

	switch period {
	case domain.PeriodMonth, domain.PeriodWeek, domain.PeriodYear, domain.PeriodAll:
	default:
		return nil, &domain.ErrValidation{Field: "period", Message: "must be month, week, year, or all"}
	}

	txns, err := s.store.ListTransactions(ctx, userID, port.TransactionFilter{})
	if err != nil {
		return nil, err
	}

	summary := engine.Summarize(txns, time.Now().UTC(), period, "")
	s.metrics.IncrEngineEvaluation("summary")
	return &summary, nil
}

// Balance recomputes the signed total balance from the full snapshot.
func (s *TransactionService) Balance(ctx context.Context, userID string) (*domain.BalanceResponse, error) {
	ctx, span := txTracer.Start(ctx, "TransactionService.Balance")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", userID))

	txns, err := s.store.ListTransactions(ctx, userID, port.TransactionFilter{})
	if err != nil {
		return nil, err
	}

	currency := s.defaultCurrency
	if len(txns) > 0 {
		currency = txns[0].Currency
	}

	s.metrics.IncrEngineEvaluation("balance")
	return &domain.BalanceResponse{
		Balance:  engine.Balance(txns),
		Currency: currency,
	}, nil
}
