package core

import (
	"context"
	"fmt"

	"github.com/edvin/tradelink/internal/model"
)

type CategoryService struct {
	db DB
}

func NewCategoryService(db DB) *CategoryService {
	return &CategoryService{db: db}
}

// ListActive returns the categories offered as catalog filters, ordered by name.
func (s *CategoryService) ListActive(ctx context.Context) ([]model.Category, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, name, description, image_url, is_active, created_at
		 FROM categories WHERE is_active = true ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.ImageURL, &c.IsActive, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}
	return categories, nil
}
