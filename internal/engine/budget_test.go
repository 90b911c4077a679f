package engine_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/kharel/fintrack-bff-go/internal/domain"
	"github.com/kharel/fintrack-bff-go/internal/engine"
)

func deadline(t time.Time) *time.Time { return &t }

func TestDailyBudget(t *testing.T) {
	// March 15th: 31 days in month, 17 remaining including today.
	txns := []domain.Transaction{
		{Amount: 3000, Date: day(1)},
		{Amount: -500, Date: day(5)},
		{Amount: -200, Date: day(10)},
		// non-regular kinds stay out of the monthly income/expense figures
		{Amount: 1000, Date: day(2), TransactionType: domain.KindLoan},
		{Amount: 400, Date: day(3), TransactionType: domain.KindInvestment},
		// other months ignored
		{Amount: -999, Date: time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC)},
	}
	loans := []domain.Loan{
		{LoanType: domain.LoanTaken, Status: domain.LoanOutstanding, Amount: 300, Deadline: deadline(day(25))},
		// wrong type, status, or month: all excluded
		{LoanType: domain.LoanGiven, Status: domain.LoanOutstanding, Amount: 100, Deadline: deadline(day(20))},
		{LoanType: domain.LoanTaken, Status: domain.LoanPaid, Amount: 100, Deadline: deadline(day(20))},
		{LoanType: domain.LoanTaken, Status: domain.LoanOutstanding, Amount: 100, Deadline: deadline(time.Date(2024, time.April, 2, 0, 0, 0, 0, time.UTC))},
		{LoanType: domain.LoanTaken, Status: domain.LoanOutstanding, Amount: 100},
	}

	b := engine.DailyBudget(txns, loans, now)

	if b.DaysInMonth != 31 || b.RemainingDays != 17 {
		t.Errorf("days = %d/%d, want 31/17", b.DaysInMonth, b.RemainingDays)
	}
	if b.MonthlyIncome != 3000 {
		t.Errorf("MonthlyIncome = %v, want 3000", b.MonthlyIncome)
	}
	if b.MonthlyExpenses != 700 {
		t.Errorf("MonthlyExpenses = %v, want 700", b.MonthlyExpenses)
	}
	if b.UpcomingLoanPayments != 300 {
		t.Errorf("UpcomingLoanPayments = %v, want 300", b.UpcomingLoanPayments)
	}
	if b.RemainingBudget != 2000 {
		t.Errorf("RemainingBudget = %v, want 2000", b.RemainingBudget)
	}
	want := 2000.0 / 17
	if math.Abs(b.DailyBudget-want) > 1e-9 {
		t.Errorf("DailyBudget = %v, want %v", b.DailyBudget, want)
	}
}

func TestDailyBudget_NeverNegative(t *testing.T) {
	txns := []domain.Transaction{
		{Amount: 100, Date: day(1)},
		{Amount: -900, Date: day(2)},
	}
	loans := []domain.Loan{
		{LoanType: domain.LoanTaken, Status: domain.LoanOutstanding, Amount: 500, Deadline: deadline(day(28))},
	}
	b := engine.DailyBudget(txns, loans, now)
	if b.DailyBudget != 0 {
		t.Errorf("DailyBudget = %v, want 0 for a deficit month", b.DailyBudget)
	}
	if b.RemainingBudget != -1300 {
		t.Errorf("RemainingBudget = %v, want -1300", b.RemainingBudget)
	}
}

func TestDailyBudget_LastDayOfMonth(t *testing.T) {
	lastDay := time.Date(2024, time.March, 31, 9, 0, 0, 0, time.UTC)
	txns := []domain.Transaction{{Amount: 310, Date: day(1)}}
	b := engine.DailyBudget(txns, nil, lastDay)
	if b.RemainingDays != 1 {
		t.Fatalf("RemainingDays = %d, want 1", b.RemainingDays)
	}
	if b.DailyBudget != 310 {
		t.Errorf("DailyBudget = %v, want 310", b.DailyBudget)
	}
}

func TestDailyBudget_NaNInputCoerced(t *testing.T) {
	txns := []domain.Transaction{{Amount: math.NaN(), Date: day(1)}}
	b := engine.DailyBudget(txns, nil, now)
	if b.MonthlyIncome != 0 || b.DailyBudget != 0 {
		t.Errorf("NaN input leaked: %+v", b)
	}
}

func TestDailyBudgetStrict_RejectsNaN(t *testing.T) {
	txns := []domain.Transaction{{Amount: math.NaN(), Date: day(1)}}
	_, err := engine.DailyBudgetStrict(txns, nil, now)
	var verr *domain.ErrValidation
	if err == nil {
		t.Fatal("expected validation error for NaN amount")
	}
	if !errors.As(err, &verr) {
		t.Fatalf("expected *domain.ErrValidation, got %T", err)
	}
}
