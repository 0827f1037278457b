package adapter

import (
	"context"
	"errors"
	"testing"

	"github.com/dustin/jearn-categorizer/internal/category"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Mock category service for testing
type mockCategoryService struct {
	categories []*category.Category
	err        error
}

func (m *mockCategoryService) ListCategories(ctx context.Context) ([]*category.Category, error) {
	return m.categories, m.err
}

func (m *mockCategoryService) GetByID(ctx context.Context, id uuid.UUID) (*category.Category, error) {
	return nil, category.ErrCategoryNotFound
}

func (m *mockCategoryService) GetByName(ctx context.Context, name string) (*category.Category, error) {
	return nil, category.ErrCategoryNotFound
}

func (m *mockCategoryService) CreateCategory(ctx context.Context, req *category.CreateCategoryRequest) (*category.Category, error) {
	return nil, m.err
}

func (m *mockCategoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return m.err
}

func TestCategoryServiceToLabelSource_ListLabels(t *testing.T) {
	jname := "数学"
	id := uuid.New()
	mock := &mockCategoryService{categories: []*category.Category{
		{ID: id, Name: "Math", JName: &jname},
	}}

	labels, err := NewCategoryServiceToLabelSource(mock).ListLabels(context.Background())

	require.NoError(t, err)
	require.Len(t, labels, 1)
	assert.Equal(t, id.String(), labels[0].ID)
	assert.Equal(t, "Math", labels[0].Name)
	assert.Equal(t, "数学", *labels[0].JName)
	assert.Nil(t, labels[0].MyName)
}

func TestCategoryServiceToLabelSource_Empty(t *testing.T) {
	labels, err := NewCategoryServiceToLabelSource(&mockCategoryService{}).ListLabels(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, labels)
	assert.Empty(t, labels)
}

func TestCategoryServiceToLabelSource_Error(t *testing.T) {
	mock := &mockCategoryService{err: errors.New("database error")}

	labels, err := NewCategoryServiceToLabelSource(mock).ListLabels(context.Background())

	assert.Error(t, err)
	assert.Nil(t, labels)
	assert.Contains(t, err.Error(), "database error")
}
