package repository

import (
	"context"
	"errors"

	"github.com/rushi-mungse/product-microservice/internal/models"
	"gorm.io/gorm"
)

// ErrNotFound is returned when no row matches the requested id.
var ErrNotFound = errors.New("record not found")

// CategoryRepository defines data-access operations for categories.
type CategoryRepository interface {
	FindAll(ctx context.Context) ([]models.Category, error)
	FindByID(ctx context.Context, id int64) (*models.Category, error)
	// Save inserts c when its id is zero and updates the row otherwise.
	Save(ctx context.Context, c *models.Category) error
	Delete(ctx context.Context, id int64) error
}

// ProductRepository defines data-access operations for products.
type ProductRepository interface {
	FindAll(ctx context.Context) ([]models.Product, error)
	FindByID(ctx context.Context, id int64) (*models.Product, error)
	Save(ctx context.Context, p *models.Product) error
	Delete(ctx context.Context, id int64) error
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
