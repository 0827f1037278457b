package category

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/jearn-categorizer/pkg/logger"
	"github.com/google/uuid"
)

// service implements the Service interface
type service struct {
	repo   Repository
	logger *logger.Logger
}

// NewService creates a new category service
func NewService(repo Repository, log *logger.Logger) Service {
	return &service{
		repo:   repo,
		logger: log.WithComponent("category-service"),
	}
}

// NormalizeName lowercases and trims a category or class label
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func (s *service) ListCategories(ctx context.Context) ([]*Category, error) {
	categories, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list categories: " + err.Error())
		return nil, err
	}
	if categories == nil {
		categories = make([]*Category, 0)
	}
	return categories, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*Category, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) GetByName(ctx context.Context, name string) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidCategory)
	}
	return s.repo.FindByName(ctx, name)
}

func (s *service) CreateCategory(ctx context.Context, req *CreateCategoryRequest) (*Category, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidCategory)
	}

	s.logger.Info("Creating category: " + name)

	existing, err := s.repo.FindByName(ctx, name)
	if err != nil && !errors.Is(err, ErrCategoryNotFound) {
		return nil, err
	}
	if existing != nil {
		s.logger.Info("Category creation skipped - already exists: " + name)
		return nil, ErrCategoryExists
	}

	// display names default to the English name
	jname := strings.TrimSpace(req.JName)
	if jname == "" {
		jname = name
	}
	myname := strings.TrimSpace(req.MyName)
	if myname == "" {
		myname = name
	}

	category := &Category{
		ID:        uuid.New(),
		Name:      name,
		JName:     &jname,
		MyName:    &myname,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	// the LOWER(name) index catches a concurrent create that passed the lookup
	if err := s.repo.Create(ctx, category); err != nil {
		if errors.Is(err, ErrCategoryExists) {
			s.logger.Info("Category creation skipped - already exists: " + name)
			return nil, err
		}
		s.logger.Error("Failed to create category " + name + ": " + err.Error())
		return nil, err
	}

	s.logger.Info("Category created successfully: " + name + " (ID: " + category.ID.String() + ")")

	return category, nil
}

func (s *service) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	s.logger.Info("Deleting category " + id.String())

	if err := s.repo.Delete(ctx, id); err != nil {
		if !errors.Is(err, ErrCategoryNotFound) {
			s.logger.Error("Failed to delete category " + id.String() + ": " + err.Error())
		}
		return err
	}

	s.logger.Info("Category deleted successfully: " + id.String())
	return nil
}
