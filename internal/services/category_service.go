package services

import (
	"context"
	"errors"

	"github.com/rushi-mungse/product-microservice/internal/apperrors"
	"github.com/rushi-mungse/product-microservice/internal/models"
	"github.com/rushi-mungse/product-microservice/internal/repository"
)

const msgCategoryNotFound = "Product category not found!"

// CategoryService owns the category workflows.
type CategoryService struct {
	repo repository.CategoryRepository
}

// NewCategoryService returns a CategoryService backed by repo.
func NewCategoryService(repo repository.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

// List returns every category.
func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	return s.repo.FindAll(ctx)
}

// Create stores a new category with an already validated name.
func (s *CategoryService) Create(ctx context.Context, name string) (*models.Category, error) {
	c := &models.Category{Name: name}
	if err := s.repo.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Update renames the category. Only the name is mutable.
func (s *CategoryService) Update(ctx context.Context, id int64, name string) (*models.Category, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, msgCategoryNotFound)
	}
	c.Name = name
	if err := s.repo.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Delete removes the category or reports "Product category not found!".
func (s *CategoryService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFound(err, msgCategoryNotFound)
	}
	return nil
}

// notFound swaps a missing-row error for the client-facing one and passes
// anything else through.
func notFound(err error, msg string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NotFound(msg)
	}
	return err
}
