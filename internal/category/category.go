package category

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryExists   = errors.New("category already exists")
	ErrInvalidCategory  = errors.New("invalid category")
)

// Category is a label the classifier can predict, with its display names.
// Name matches a pipeline class case-insensitively and is unique ignoring
// case; JName and MyName are the Japanese and Myanmar display names.
type Category struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `json:"name" gorm:"not null;size:100;uniqueIndex:idx_categories_name_lower,expression:LOWER(name)"`
	JName     *string   `json:"jname" gorm:"column:jname;size:200"`
	MyName    *string   `json:"myname" gorm:"column:myname;size:200"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// Repository defines the interface for category data access
type Repository interface {
	FindAll(ctx context.Context) ([]*Category, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)
	FindByName(ctx context.Context, name string) (*Category, error)
	Create(ctx context.Context, category *Category) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Service defines the interface for category business logic
type Service interface {
	ListCategories(ctx context.Context) ([]*Category, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Category, error)
	GetByName(ctx context.Context, name string) (*Category, error)
	CreateCategory(ctx context.Context, req *CreateCategoryRequest) (*Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
}

// CreateCategoryRequest represents category creation request
type CreateCategoryRequest struct {
	Name   string `json:"name" binding:"required,max=100"`
	JName  string `json:"jname" binding:"max=200"`
	MyName string `json:"myname" binding:"max=200"`
}

// CategoryListResponse represents the full category list
type CategoryListResponse struct {
	Categories []*Category `json:"categories"`
	Count      int         `json:"count"`
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "categories"
}
