package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"go.opentelemetry.io/otel/attribute"

	"github.com/kharel/fintrack-bff-go/internal/domain"
)

// investmentRow maps the investments table columns.
type investmentRow struct {
	ID             string   `json:"id"`
	UserID         string   `json:"user_id"`
	Name           string   `json:"name"`
	Platform       string   `json:"platform"`
	InvestmentType string   `json:"investment_type"`
	InitialAmount  float64  `json:"initial_amount"`
	CurrentValue   float64  `json:"current_value"`
	ExpectedROI    *float64 `json:"expected_roi"`
	ActualROI      float64  `json:"actual_roi"`
	Currency       string   `json:"currency"`
	PurchaseDate   string   `json:"purchase_date"`
	MaturityDate   string   `json:"maturity_date"`
	Status         string   `json:"status"`
	Notes          string   `json:"notes"`
	CreatedAt      string   `json:"created_at"`
}

func (r investmentRow) toDomain() domain.Investment {
	return domain.Investment{
		ID:             r.ID,
		UserID:         r.UserID,
		Name:           r.Name,
		Platform:       r.Platform,
		InvestmentType: r.InvestmentType,
		InitialAmount:  r.InitialAmount,
		CurrentValue:   r.CurrentValue,
		ExpectedROI:    r.ExpectedROI,
		ActualROI:      r.ActualROI,
		Currency:       r.Currency,
		PurchaseDate:   parseDate(r.PurchaseDate),
		MaturityDate:   parseDatePtr(r.MaturityDate),
		Status:         r.Status,
		Notes:          r.Notes,
		CreatedAt:      parseDate(r.CreatedAt),
	}
}

func investmentPayload(inv *domain.Investment) map[string]any {
	data := map[string]any{
		"id":              inv.ID,
		"user_id":         inv.UserID,
		"name":            inv.Name,
		"investment_type": inv.InvestmentType,
		"initial_amount":  inv.InitialAmount,
		"current_value":   inv.CurrentValue,
		"actual_roi":      inv.ActualROI,
		"currency":        inv.Currency,
		"purchase_date":   formatDate(inv.PurchaseDate),
		"status":          inv.Status,
	}
	if inv.Platform != "" {
		data["platform"] = inv.Platform
	}
	if inv.ExpectedROI != nil {
		data["expected_roi"] = *inv.ExpectedROI
	}
	if inv.MaturityDate != nil {
		data["maturity_date"] = formatDatePtr(inv.MaturityDate)
	}
	if inv.Notes != "" {
		data["notes"] = inv.Notes
	}
	return data
}

// ListInvestments fetches a user's investments, optionally by status.
func (c *Client) ListInvestments(ctx context.Context, userID string, status string) ([]domain.Investment, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListInvestments")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", userID))

	path := fmt.Sprintf("investments?user_id=eq.%s&order=purchase_date.desc", escape(userID))
	if status != "" {
		path += fmt.Sprintf("&status=eq.%s", escape(status))
	}

	var investments []domain.Investment

	err := c.execute(ctx, func() error {
		body, err := c.doRequest(ctx, http.MethodGet, path)
		if err != nil {
			return err
		}

		if body == nil || string(body) == "[]" {
			investments = []domain.Investment{}
			return nil
		}

		var rows []investmentRow
		if err := json.Unmarshal(body, &rows); err != nil {
			return fmt.Errorf("failed to decode investments: %w", err)
		}

		investments = make([]domain.Investment, 0, len(rows))
		for _, r := range rows {
			investments = append(investments, r.toDomain())
		}
		return nil
	})

	if err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/investments", Err: err}
	}

	return investments, nil
}

// GetInvestment fetches a single investment owned by the user.
func (c *Client) GetInvestment(ctx context.Context, userID, investmentID string) (*domain.Investment, error) {
	ctx, span := tracer.Start(ctx, "Supabase.GetInvestment")
	defer span.End()
	span.SetAttributes(attribute.String("investment.id", investmentID))

	var inv *domain.Investment

	err := c.execute(ctx, func() error {
		path := fmt.Sprintf("investments?id=eq.%s&user_id=eq.%s&limit=1", escape(investmentID), escape(userID))
		body, err := c.doRequest(ctx, http.MethodGet, path)
		if err != nil {
			return err
		}

		if body == nil || string(body) == "[]" {
			return &domain.ErrNotFound{Resource: "investment", ID: investmentID}
		}

		var rows []investmentRow
		if err := json.Unmarshal(body, &rows); err != nil {
			return fmt.Errorf("failed to decode investment: %w", err)
		}
		if len(rows) == 0 {
			return &domain.ErrNotFound{Resource: "investment", ID: investmentID}
		}

		i := rows[0].toDomain()
		inv = &i
		return nil
	})

	if err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/investments", Err: err}
	}

	return inv, nil
}

// CreateInvestment inserts an investment and returns the stored row.
func (c *Client) CreateInvestment(ctx context.Context, inv *domain.Investment) (*domain.Investment, error) {
	ctx, span := tracer.Start(ctx, "Supabase.CreateInvestment")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", inv.UserID))

	var created *domain.Investment

	err := c.execute(ctx, func() error {
		body, err := c.doPost(ctx, "investments", investmentPayload(inv))
		if err != nil {
			return err
		}

		var rows []investmentRow
		if err := json.Unmarshal(body, &rows); err != nil {
			return fmt.Errorf("failed to decode created investment: %w", err)
		}
		if len(rows) == 0 {
			return fmt.Errorf("insert returned no representation")
		}

		row := rows[0].toDomain()
		created = &row
		return nil
	})

	if err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/investments", Err: err}
	}

	return created, nil
}

// UpdateInvestment patches an investment owned by the user.
func (c *Client) UpdateInvestment(ctx context.Context, userID, investmentID string, inv *domain.Investment) (*domain.Investment, error) {
	ctx, span := tracer.Start(ctx, "Supabase.UpdateInvestment")
	defer span.End()
	span.SetAttributes(attribute.String("investment.id", investmentID))

	var updated *domain.Investment

	err := c.execute(ctx, func() error {
		path := fmt.Sprintf("investments?id=eq.%s&user_id=eq.%s", escape(investmentID), escape(userID))
		data := investmentPayload(inv)
		delete(data, "id")
		delete(data, "user_id")

		body, err := c.doPatch(ctx, path, data)
		if err != nil {
			return err
		}

		if body == nil || string(body) == "[]" {
			return &domain.ErrNotFound{Resource: "investment", ID: investmentID}
		}

		var rows []investmentRow
		if err := json.Unmarshal(body, &rows); err != nil {
			return fmt.Errorf("failed to decode updated investment: %w", err)
		}
		if len(rows) == 0 {
			return &domain.ErrNotFound{Resource: "investment", ID: investmentID}
		}

		row := rows[0].toDomain()
		updated = &row
		return nil
	})

	if err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/investments", Err: err}
	}

	return updated, nil
}

// --- ROI entries ---

// roiEntryRow maps the roi_entries table columns.
type roiEntryRow struct {
	ID            string  `json:"id"`
	InvestmentID  string  `json:"investment_id"`
	RecordedValue float64 `json:"recorded_value"`
	ROIPercentage float64 `json:"roi_percentage"`
	EntryDate     string  `json:"entry_date"`
	Note          string  `json:"note"`
}

func (r roiEntryRow) toDomain() domain.ROIEntry {
	return domain.ROIEntry{
		ID:            r.ID,
		InvestmentID:  r.InvestmentID,
		RecordedValue: r.RecordedValue,
		ROIPercentage: r.ROIPercentage,
		EntryDate:     parseDate(r.EntryDate),
		Note:          r.Note,
	}
}

// ListROIEntries fetches the valuation history for an investment,
// newest first.
func (c *Client) ListROIEntries(ctx context.Context, investmentID string) ([]domain.ROIEntry, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListROIEntries")
	defer span.End()
	span.SetAttributes(attribute.String("investment.id", investmentID))

	var entries []domain.ROIEntry

	err := c.execute(ctx, func() error {
		path := fmt.Sprintf("roi_entries?investment_id=eq.%s&order=entry_date.desc", escape(investmentID))
		body, err := c.doRequest(ctx, http.MethodGet, path)
		if err != nil {
			return err
		}

		if body == nil || string(body) == "[]" {
			entries = []domain.ROIEntry{}
			return nil
		}

		var rows []roiEntryRow
		if err := json.Unmarshal(body, &rows); err != nil {
			return fmt.Errorf("failed to decode roi entries: %w", err)
		}

		entries = make([]domain.ROIEntry, 0, len(rows))
		for _, r := range rows {
			entries = append(entries, r.toDomain())
		}
		return nil
	})

	if err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/roi_entries", Err: err}
	}

	return entries, nil
}

// CreateROIEntry inserts a valuation point and returns the stored row.
func (c *Client) CreateROIEntry(ctx context.Context, entry *domain.ROIEntry) (*domain.ROIEntry, error) {
	ctx, span := tracer.Start(ctx, "Supabase.CreateROIEntry")
	defer span.End()
	span.SetAttributes(attribute.String("investment.id", entry.InvestmentID))

	var created *domain.ROIEntry

	err := c.execute(ctx, func() error {
		data := map[string]any{
			"id":             entry.ID,
			"investment_id":  entry.InvestmentID,
			"recorded_value": entry.RecordedValue,
			"roi_percentage": entry.ROIPercentage,
			"entry_date":     formatDate(entry.EntryDate),
		}
		if entry.Note != "" {
			data["note"] = entry.Note
		}

		body, err := c.doPost(ctx, "roi_entries", data)
		if err != nil {
			return err
		}

		var rows []roiEntryRow
		if err := json.Unmarshal(body, &rows); err != nil {
			return fmt.Errorf("failed to decode created roi entry: %w", err)
		}
		if len(rows) == 0 {
			return fmt.Errorf("insert returned no representation")
		}

		row := rows[0].toDomain()
		created = &row
		return nil
	})

	if err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/roi_entries", Err: err}
	}

	return created, nil
}
