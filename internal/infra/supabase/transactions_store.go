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

// transactionRow maps the transactions table columns.
type transactionRow struct {
	ID                  string   `json:"id"`
	UserID              string   `json:"user_id"`
	Amount              float64  `json:"amount"`
	Currency            string   `json:"currency"`
	Date                string   `json:"date"`
	Category            string   `json:"category"`
	Note                string   `json:"note"`
	TransactionType     string   `json:"transaction_type"`
	InterestRate        *float64 `json:"interest_rate"`
	ROIPercentage       *float64 `json:"roi_percentage"`
	Deadline            string   `json:"deadline"`
	Status              string   `json:"status"`
	LinkedTransactionID string   `json:"linked_transaction_id"`
	CreatedAt           string   `json:"created_at"`
	UpdatedAt           string   `json:"updated_at"`
}

func (r transactionRow) toDomain() domain.Transaction {
	return domain.Transaction{
		ID:                  r.ID,
		UserID:              r.UserID,
		Amount:              r.Amount,
		Currency:            r.Currency,
		Date:                parseDate(r.Date),
		Category:            r.Category,
		Note:                r.Note,
		TransactionType:     domain.TransactionKind(r.TransactionType),
		InterestRate:        r.InterestRate,
		ROIPercentage:       r.ROIPercentage,
		Deadline:            parseDatePtr(r.Deadline),
		Status:              r.Status,
		LinkedTransactionID: r.LinkedTransactionID,
		CreatedAt:           parseDate(r.CreatedAt),
		UpdatedAt:           parseDate(r.UpdatedAt),
	}
}

func transactionPayload(t *domain.Transaction) map[string]any {
	data := map[string]any{
		"id":       t.ID,
		"user_id":  t.UserID,
		"amount":   t.Amount,
		"currency": t.Currency,
		"date":     formatDate(t.Date),
		"category": t.Category,
	}
	if t.Note != "" {
		data["note"] = t.Note
	}
	if t.TransactionType != "" {
		data["transaction_type"] = string(t.TransactionType)
	}
	if t.InterestRate != nil {
		data["interest_rate"] = *t.InterestRate
	}
	if t.ROIPercentage != nil {
		data["roi_percentage"] = *t.ROIPercentage
	}
	if t.Deadline != nil {
		data["deadline"] = formatDatePtr(t.Deadline)
	}
	if t.Status != "" {
		data["status"] = t.Status
	}
	if t.LinkedTransactionID != "" {
		data["linked_transaction_id"] = t.LinkedTransactionID
	}
	return data
}

// ListTransactions fetches a user's transactions, newest first, applying
// the optional category/date-range/limit filters server-side.
func (c *Client) ListTransactions(ctx context.Context, userID string, filter port.TransactionFilter) ([]domain.Transaction, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListTransactions")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", userID))

	path := fmt.Sprintf("transactions?user_id=eq.%s&order=date.desc", escape(userID))
	if filter.Category != "" {
		path += fmt.Sprintf("&category=eq.%s", escape(filter.Category))
	}
	if !filter.StartDate.IsZero() {
		path += fmt.Sprintf("&date=gte.%s", formatDate(filter.StartDate))
	}
	if !filter.EndDate.IsZero() {
		path += fmt.Sprintf("&date=lte.%s", formatDate(filter.EndDate))
	}
	if filter.Limit > 0 {
		path += fmt.Sprintf("&limit=%d", filter.Limit)
	}

	var transactions []domain.Transaction

	err := c.execute(ctx, func() error {
		body, err := c.doRequest(ctx, http.MethodGet, path)
		if err != nil {
			return err
		}

		if body == nil || string(body) == "[]" {
			transactions = []domain.Transaction{}
			return nil
		}

		var rows []transactionRow
		if err := json.Unmarshal(body, &rows); err != nil {
			return fmt.Errorf("failed to decode transactions: %w", err)
		}

		transactions = make([]domain.Transaction, 0, len(rows))
		for _, r := range rows {
			transactions = append(transactions, r.toDomain())
		}
		return nil
	})

	if err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/transactions", Err: err}
	}

	return transactions, nil
}

// GetTransaction fetches a single transaction owned by the user.
func (c *Client) GetTransaction(ctx context.Context, userID, transactionID string) (*domain.Transaction, error) {
	ctx, span := tracer.Start(ctx, "Supabase.GetTransaction")
	defer span.End()
	span.SetAttributes(attribute.String("transaction.id", transactionID))

	var tx *domain.Transaction

	err := c.execute(ctx, func() error {
		path := fmt.Sprintf("transactions?id=eq.%s&user_id=eq.%s&limit=1", escape(transactionID), escape(userID))
		body, err := c.doRequest(ctx, http.MethodGet, path)
		if err != nil {
			return err
		}

		if body == nil || string(body) == "[]" {
			return &domain.ErrNotFound{Resource: "transaction", ID: transactionID}
		}

		var rows []transactionRow
		if err := json.Unmarshal(body, &rows); err != nil {
			return fmt.Errorf("failed to decode transaction: %w", err)
		}
		if len(rows) == 0 {
			return &domain.ErrNotFound{Resource: "transaction", ID: transactionID}
		}

		t := rows[0].toDomain()
		tx = &t
		return nil
	})

	if err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/transactions", Err: err}
	}

	return tx, nil
}

// CreateTransaction inserts a transaction and returns the stored row.
func (c *Client) CreateTransaction(ctx context.Context, t *domain.Transaction) (*domain.Transaction, error) {
	ctx, span := tracer.Start(ctx, "Supabase.CreateTransaction")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", t.UserID))

	var created *domain.Transaction

	err := c.execute(ctx, func() error {
		body, err := c.doPost(ctx, "transactions", transactionPayload(t))
		if err != nil {
			return err
		}

		var rows []transactionRow
		if err := json.Unmarshal(body, &rows); err != nil {
			return fmt.Errorf("failed to decode created transaction: %w", err)
		}
		if len(rows) == 0 {
			return fmt.Errorf("insert returned no representation")
		}

		row := rows[0].toDomain()
		created = &row
		return nil
	})

	if err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/transactions", Err: err}
	}

	return created, nil
}

// UpdateTransaction patches a transaction owned by the user and returns
// the updated row.
func (c *Client) UpdateTransaction(ctx context.Context, userID, transactionID string, t *domain.Transaction) (*domain.Transaction, error) {
	ctx, span := tracer.Start(ctx, "Supabase.UpdateTransaction")
	defer span.End()
	span.SetAttributes(attribute.String("transaction.id", transactionID))

	var updated *domain.Transaction

	err := c.execute(ctx, func() error {
		path := fmt.Sprintf("transactions?id=eq.%s&user_id=eq.%s", escape(transactionID), escape(userID))
		data := transactionPayload(t)
		delete(data, "id")
		delete(data, "user_id")

		body, err := c.doPatch(ctx, path, data)
		if err != nil {
			return err
		}

		if body == nil || string(body) == "[]" {
			return &domain.ErrNotFound{Resource: "transaction", ID: transactionID}
		}

		var rows []transactionRow
		if err := json.Unmarshal(body, &rows); err != nil {
			return fmt.Errorf("failed to decode updated transaction: %w", err)
		}
		if len(rows) == 0 {
			return &domain.ErrNotFound{Resource: "transaction", ID: transactionID}
		}

		row := rows[0].toDomain()
		updated = &row
		return nil
	})

	if err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/transactions", Err: err}
	}

	return updated, nil
}

// DeleteTransaction removes a transaction owned by the user. Missing rows
// report ErrNotFound so the API can answer 404.
func (c *Client) DeleteTransaction(ctx context.Context, userID, transactionID string) error {
	ctx, span := tracer.Start(ctx, "Supabase.DeleteTransaction")
	defer span.End()
	span.SetAttributes(attribute.String("transaction.id", transactionID))

	if _, err := c.GetTransaction(ctx, userID, transactionID); err != nil {
		return err
	}

	err := c.execute(ctx, func() error {
		path := fmt.Sprintf("transactions?id=eq.%s&user_id=eq.%s", escape(transactionID), escape(userID))
		return c.doDelete(ctx, path)
	})

	if err != nil {
		return &domain.ErrExternalService{Service: "supabase/transactions", Err: err}
	}

	return nil
}
