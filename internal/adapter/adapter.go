package adapter

import (
	"context"

	"github.com/dustin/jearn-categorizer/internal/categorize"
	"github.com/dustin/jearn-categorizer/internal/category"
)

// CategoryServiceToLabelSource adapts category.Service to categorize.LabelSource
type CategoryServiceToLabelSource struct {
	service category.Service
}

// NewCategoryServiceToLabelSource creates a new adapter
func NewCategoryServiceToLabelSource(s category.Service) categorize.LabelSource {
	return &CategoryServiceToLabelSource{
		service: s,
	}
}

func (a *CategoryServiceToLabelSource) ListLabels(ctx context.Context) ([]*categorize.Label, error) {
	categories, err := a.service.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	// Convert category.Category to categorize.Label
	labels := make([]*categorize.Label, len(categories))
	for i, c := range categories {
		labels[i] = &categorize.Label{
			ID:     c.ID.String(),
			Name:   c.Name,
			JName:  c.JName,
			MyName: c.MyName,
		}
	}
	return labels, nil
}
