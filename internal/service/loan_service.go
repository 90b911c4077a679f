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

var loanTracer = otel.Tracer("service/loans")

// LoanService handles loan lifecycle and amortization previews.
type LoanService struct {
	store           port.FinanceStore
	derived         *cache.InMemory[*domain.Dashboard]
	metrics         *observability.Metrics
	logger          *zap.Logger
	defaultCurrency string
}

// NewLoanService creates a new loan service.
func NewLoanService(store port.FinanceStore, derived *cache.InMemory[*domain.Dashboard], metrics *observability.Metrics, logger *zap.Logger, defaultCurrency string) *LoanService {
	return &LoanService{
		store:           store,
		derived:         derived,
		metrics:         metrics,
		logger:          logger,
		defaultCurrency: defaultCurrency,
	}
}

// List returns the user's loans with optional status/loan_type filters.
func (s *LoanService) List(ctx context.Context, userID string, filter port.LoanFilter) ([]domain.Loan, error) {
	ctx, span := loanTracer.Start(ctx, "LoanService.List")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", userID))

	if filter.Status != "" && filter.Status != domain.LoanOutstanding && filter.Status != domain.LoanPaid {
		return nil, &domain.ErrValidation{Field: "status", Message: "must be outstanding or paid"}
	}
	if filter.LoanType != "" && filter.LoanType != domain.LoanGiven && filter.LoanType != domain.LoanTaken {
		return nil, &domain.ErrValidation{Field: "loan_type", Message: "must be given or taken"}
	}

	return s.store.ListLoans(ctx, userID, filter)
}

// Get returns a single loan.
func (s *LoanService) Get(ctx context.Context, userID, loanID string) (*domain.Loan, error) {
	ctx, span := loanTracer.Start(ctx, "LoanService.Get")
	defer span.End()

	return s.store.GetLoan(ctx, userID, loanID)
}

func (s *LoanService) fromRequest(userID string, req *domain.CreateLoanRequest) (*domain.Loan, error) {
	if req.LoanType != domain.LoanGiven && req.LoanType != domain.LoanTaken {
		return nil, &domain.ErrValidation{Field: "loan_type", Message: "must be given or taken"}
	}
	if req.Amount <= 0 {
		return nil, &domain.ErrValidation{Field: "amount", Message: "must be positive"}
	}

	status := req.Status
	if status == "" {
		status = domain.LoanOutstanding
	}
	if status != domain.LoanOutstanding && status != domain.LoanPaid {
		return nil, &domain.ErrValidation{Field: "status", Message: "must be outstanding or paid"}
	}

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

	return &domain.Loan{
		UserID:       userID,
		LoanType:     req.LoanType,
		Amount:       req.Amount,
		Currency:     currency,
		Contact:      req.Contact,
		Status:       status,
		Date:         date,
		Deadline:     req.Deadline,
		InterestRate: req.InterestRate,
	}, nil
}

// Create validates and stores a new loan. When an interest rate is set the
// amortization inputs are checked strictly up front, so a loan that cannot
// be projected is rejected rather than stored with garbage numbers.
func (s *LoanService) Create(ctx context.Context, userID string, req *domain.CreateLoanRequest) (*domain.Loan, error) {
	ctx, span := loanTracer.Start(ctx, "LoanService.Create")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", userID))

	loan, err := s.fromRequest(userID, req)
	if err != nil {
		return nil, err
	}

	if loan.InterestRate != nil && loan.Deadline != nil {
		months := engine.MonthsUntil(time.Now().UTC(), *loan.Deadline)
		if _, err := engine.AmortizeStrict(loan.Amount, *loan.InterestRate, months); err != nil {
			return nil, err
		}
	}

	loan.ID = uuid.NewString()

	created, err := s.store.CreateLoan(ctx, loan)
	if err != nil {
		return nil, err
	}

	s.derived.DeletePrefix(userID + ":")
	s.logger.Info("loan created",
		zap.String("user_id", userID),
		zap.String("loan_id", created.ID),
		zap.String("loan_type", created.LoanType),
	)
	return created, nil
}

// Update validates and stores changes to an existing loan.
func (s *LoanService) Update(ctx context.Context, userID, loanID string, req *domain.CreateLoanRequest) (*domain.Loan, error) {
	ctx, span := loanTracer.Start(ctx, "LoanService.Update")
	defer span.End()
	span.SetAttributes(attribute.String("loan.id", loanID))

	loan, err := s.fromRequest(userID, req)
	if err != nil {
		return nil, err
	}

	updated, err := s.store.UpdateLoan(ctx, userID, loanID, loan)
	if err != nil {
		return nil, err
	}

	s.derived.DeletePrefix(userID + ":")
	return updated, nil
}

// Delete removes a loan.
func (s *LoanService) Delete(ctx context.Context, userID, loanID string) error {
	ctx, span := loanTracer.Start(ctx, "LoanService.Delete")
	defer span.End()
	span.SetAttributes(attribute.String("loan.id", loanID))

	if err := s.store.DeleteLoan(ctx, userID, loanID); err != nil {
		return err
	}

	s.derived.DeletePrefix(userID + ":")
	return nil
}

// Preview computes an amortization preview for a loan form being edited.
// This is the display path: bad input degrades to zeros instead of
// erroring, so the form stays live while the user types.
func (s *LoanService) Preview(ctx context.Context, req *domain.LoanPreviewRequest) *domain.LoanPreviewResponse {
	_, span := loanTracer.Start(ctx, "LoanService.Preview")
	defer span.End()

	months := req.Months
	if months < 1 {
		if req.Deadline != nil {
			months = engine.MonthsUntil(time.Now().UTC(), *req.Deadline)
		} else {
			months = 1
		}
	}

	p := engine.AmortizeMonths(req.Principal, req.InterestRate, months)
	s.metrics.IncrEngineEvaluation("amortization")

	interest := p.TotalRepayment - req.Principal
	if math.IsNaN(interest) || math.IsInf(interest, 0) {
		interest = 0
	}

	return &domain.LoanPreviewResponse{
		MonthlyPayment: p.MonthlyPayment,
		TotalRepayment: p.TotalRepayment,
		TotalInterest:  interest,
		Months:         p.Months,
	}
}
