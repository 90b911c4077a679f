package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"go.opentelemetry.io/otel/attribute"

	"github.com/kharel/fintrack-bff-go/internal/domain"
)

// categoryRow maps the categories table columns.
type categoryRow struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Color  string `json:"color"`
	Icon   string `json:"icon"`
	Type   string `json:"type"`
}

func (r categoryRow) toDomain() domain.Category {
	return domain.Category{
		ID:     r.ID,
		UserID: r.UserID,
		Name:   r.Name,
		Color:  r.Color,
		Icon:   r.Icon,
		Type:   domain.CategoryType(r.Type),
	}
}

// ListCategories fetches the user's custom categories. Merging with the
// built-in defaults happens in the service layer.
func (c *Client) ListCategories(ctx context.Context, userID string) ([]domain.Category, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListCategories")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", userID))

	var categories []domain.Category

	err := c.execute(ctx, func() error {
		path := fmt.Sprintf("categories?user_id=eq.%s&order=name.asc", escape(userID))
		body, err := c.doRequest(ctx, http.MethodGet, path)
		if err != nil {
			return err
		}

		if body == nil || string(body) == "[]" {
			categories = []domain.Category{}
			return nil
		}

		var rows []categoryRow
		if err := json.Unmarshal(body, &rows); err != nil {
			return fmt.Errorf("failed to decode categories: %w", err)
		}

		categories = make([]domain.Category, 0, len(rows))
		for _, r := range rows {
			categories = append(categories, r.toDomain())
		}
		return nil
	})

	if err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/categories", Err: err}
	}

	return categories, nil
}

// CreateCategory inserts a custom category and returns the stored row.
func (c *Client) CreateCategory(ctx context.Context, cat *domain.Category) (*domain.Category, error) {
	ctx, span := tracer.Start(ctx, "Supabase.CreateCategory")
	defer span.End()
	span.SetAttributes(attribute.String("category.name", cat.Name))

	var created *domain.Category

	err := c.execute(ctx, func() error {
		data := map[string]any{
			"id":      cat.ID,
			"user_id": cat.UserID,
			"name":    cat.Name,
			"color":   cat.Color,
			"type":    string(cat.Type),
		}
		if cat.Icon != "" {
			data["icon"] = cat.Icon
		}

		body, err := c.doPost(ctx, "categories", data)
		if err != nil {
			return err
		}

		var rows []categoryRow
		if err := json.Unmarshal(body, &rows); err != nil {
			return fmt.Errorf("failed to decode created category: %w", err)
		}
		if len(rows) == 0 {
			return fmt.Errorf("insert returned no representation")
		}

		row := rows[0].toDomain()
		created = &row
		return nil
	})

	if err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/categories", Err: err}
	}

	return created, nil
}

// DeleteCategory removes a custom category by name.
func (c *Client) DeleteCategory(ctx context.Context, userID, name string) error {
	ctx, span := tracer.Start(ctx, "Supabase.DeleteCategory")
	defer span.End()
	span.SetAttributes(attribute.String("category.name", name))

	err := c.execute(ctx, func() error {
		path := fmt.Sprintf("categories?user_id=eq.%s&name=eq.%s", escape(userID), escape(name))
		return c.doDelete(ctx, path)
	})

	if err != nil {
		return &domain.ErrExternalService{Service: "supabase/categories", Err: err}
	}

	return nil
}
