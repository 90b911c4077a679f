package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"go.opentelemetry.io/otel/attribute"

	"github.com/kharel/fintrack-bff-go/internal/domain"
	"github.com/kharel/fintrack-bff-go/internal/port"
)

// loanRow maps the loans table columns.
type loanRow struct {
	ID           string   `json:"id"`
	UserID       string   `json:"user_id"`
	LoanType     string   `json:"loan_type"`
	Amount       float64  `json:"amount"`
	Currency     string   `json:"currency"`
	Contact      string   `json:"contact"`
	Status       string   `json:"status"`
	Date         string   `json:"date"`
	Deadline     string   `json:"deadline"`
	InterestRate *float64 `json:"interest_rate"`
	CreatedAt    string   `json:"created_at"`
}

func (r loanRow) toDomain() domain.Loan {
	return domain.Loan{
		ID:           r.ID,
		UserID:       r.UserID,
		LoanType:     r.LoanType,
		Amount:       r.Amount,
		Currency:     r.Currency,
		Contact:      r.Contact,
		Status:       r.Status,
		Date:         parseDate(r.Date),
		Deadline:     parseDatePtr(r.Deadline),
		InterestRate: r.InterestRate,
		CreatedAt:    parseDate(r.CreatedAt),
	}
}

func loanPayload(l *domain.Loan) map[string]any {
	data := map[string]any{
		"id":        l.ID,
		"user_id":   l.UserID,
		"loan_type": l.LoanType,
		"amount":    l.Amount,
		"currency":  l.Currency,
		"status":    l.Status,
		"date":      formatDate(l.Date),
	}
	if l.Contact != "" {
		data["contact"] = l.Contact
	}
	if l.Deadline != nil {
		data["deadline"] = formatDatePtr(l.Deadline)
	}
	if l.InterestRate != nil {
		data["interest_rate"] = *l.InterestRate
	}
	return data
}

// ListLoans fetches a user's loans with optional status/loan_type filters.
func (c *Client) ListLoans(ctx context.Context, userID string, filter port.LoanFilter) ([]domain.Loan, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListLoans")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", userID))

	path := fmt.Sprintf("loans?user_id=eq.%s&order=date.desc", escape(userID))
	if filter.Status != "" {
		path += fmt.Sprintf("&status=eq.%s", escape(filter.Status))
	}
	if filter.LoanType != "" {
		path += fmt.Sprintf("&loan_type=eq.%s", escape(filter.LoanType))
	}

	var loans []domain.Loan

	err := c.execute(ctx, func() error {
		body, err := c.doRequest(ctx, http.MethodGet, path)
		if err != nil {
			return err
		}

		if body == nil || string(body) == "[]" {
			loans = []domain.Loan{}
			return nil
		}

		var rows []loanRow
		if err := json.Unmarshal(body, &rows); err != nil {
			return fmt.Errorf("failed to decode loans: %w", err)
		}

		loans = make([]domain.Loan, 0, len(rows))
		for _, r := range rows {
			loans = append(loans, r.toDomain())
		}
		return nil
	})

	if err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/loans", Err: err}
	}

	return loans, nil
}

// GetLoan fetches a single loan owned by the user.
func (c *Client) GetLoan(ctx context.Context, userID, loanID string) (*domain.Loan, error) {
	ctx, span := tracer.Start(ctx, "Supabase.GetLoan")
	defer span.End()
	span.SetAttributes(attribute.String("loan.id", loanID))

	var loan *domain.Loan

	err := c.execute(ctx, func() error {
		path := fmt.Sprintf("loans?id=eq.%s&user_id=eq.%s&limit=1", escape(loanID), escape(userID))
		body, err := c.doRequest(ctx, http.MethodGet, path)
		if err != nil {
			return err
		}

		if body == nil || string(body) == "[]" {
			return &domain.ErrNotFound{Resource: "loan", ID: loanID}
		}

		var rows []loanRow
		if err := json.Unmarshal(body, &rows); err != nil {
			return fmt.Errorf("failed to decode loan: %w", err)
		}
		if len(rows) == 0 {
			return &domain.ErrNotFound{Resource: "loan", ID: loanID}
		}

		l := rows[0].toDomain()
		loan = &l
		return nil
	})

	if err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/loans", Err: err}
	}

	return loan, nil
}

// CreateLoan inserts a loan and returns the stored row.
func (c *Client) CreateLoan(ctx context.Context, l *domain.Loan) (*domain.Loan, error) {
	ctx, span := tracer.Start(ctx, "Supabase.CreateLoan")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", l.UserID))

	var created *domain.Loan

	err := c.execute(ctx, func() error {
		body, err := c.doPost(ctx, "loans", loanPayload(l))
		if err != nil {
			return err
		}

		var rows []loanRow
		if err := json.Unmarshal(body, &rows); err != nil {
			return fmt.Errorf("failed to decode created loan: %w", err)
		}
		if len(rows) == 0 {
			return fmt.Errorf("insert returned no representation")
		}

		row := rows[0].toDomain()
		created = &row
		return nil
	})

	if err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/loans", Err: err}
	}

	return created, nil
}

// UpdateLoan patches a loan owned by the user and returns the updated row.
func (c *Client) UpdateLoan(ctx context.Context, userID, loanID string, l *domain.Loan) (*domain.Loan, error) {
	ctx, span := tracer.Start(ctx, "Supabase.UpdateLoan")
	defer span.End()
	span.SetAttributes(attribute.String("loan.id", loanID))

	var updated *domain.Loan

	err := c.execute(ctx, func() error {
		path := fmt.Sprintf("loans?id=eq.%s&user_id=eq.%s", escape(loanID), escape(userID))
		data := loanPayload(l)
		delete(data, "id")
		delete(data, "user_id")

		body, err := c.doPatch(ctx, path, data)
		if err != nil {
			return err
		}

		if body == nil || string(body) == "[]" {
			return &domain.ErrNotFound{Resource: "loan", ID: loanID}
		}

		var rows []loanRow
		if err := json.Unmarshal(body, &rows); err != nil {
			return fmt.Errorf("failed to decode updated loan: %w", err)
		}
		if len(rows) == 0 {
			return &domain.ErrNotFound{Resource: "loan", ID: loanID}
		}

		row := rows[0].toDomain()
		updated = &row
		return nil
	})

	if err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/loans", Err: err}
	}

	return updated, nil
}

// DeleteLoan removes a loan owned by the user.
func (c *Client) DeleteLoan(ctx context.Context, userID, loanID string) error {
	ctx, span := tracer.Start(ctx, "Supabase.DeleteLoan")
	defer span.End()
	span.SetAttributes(attribute.String("loan.id", loanID))

	if _, err := c.GetLoan(ctx, userID, loanID); err != nil {
		return err
	}

	err := c.execute(ctx, func() error {
		path := fmt.Sprintf("loans?id=eq.%s&user_id=eq.%s", escape(loanID), escape(userID))
		return c.doDelete(ctx, path)
	})

	if err != nil {
		return &domain.ErrExternalService{Service: "supabase/loans", Err: err}
	}

	return nil
}
