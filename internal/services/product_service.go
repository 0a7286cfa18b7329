package services

import (
	"context"
	"fmt"

	"github.com/rushi-mungse/product-microservice/internal/apperrors"
	"github.com/rushi-mungse/product-microservice/internal/models"
	"github.com/rushi-mungse/product-microservice/internal/repository"
	"github.com/rushi-mungse/product-microservice/internal/storage"
)

const msgProductNotFound = "Product not found!"

// ErrImageMissing is returned when a product is created without an image.
var ErrImageMissing = apperrors.BadRequest("Product image not found")

// ProductService owns the product workflows and their image uploads.
type ProductService struct {
	repo     repository.ProductRepository
	uploader storage.Uploader
}

// NewProductService returns a ProductService storing rows in repo and images via uploader.
func NewProductService(repo repository.ProductRepository, uploader storage.Uploader) *ProductService {
	return &ProductService{repo: repo, uploader: uploader}
}

// List returns every product.
func (s *ProductService) List(ctx context.Context) ([]models.Product, error) {
	return s.repo.FindAll(ctx)
}

// Get returns one product or a 400 "Product not found!".
func (s *ProductService) Get(ctx context.Context, id int64) (*models.Product, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, msgProductNotFound)
	}
	return p, nil
}

// Create uploads the image at imagePath and stores the product with the
// resulting URL. An image is mandatory.
func (s *ProductService) Create(ctx context.Context, f models.ProductFields, imagePath string) (*models.Product, error) {
	if imagePath == "" {
		return nil, ErrImageMissing
	}
	url, err := s.uploader.Upload(ctx, imagePath)
	if err != nil {
		return nil, fmt.Errorf("upload product image: %w", err)
	}

	p := &models.Product{ImageURL: url}
	f.Apply(p)
	if err := s.repo.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Update replaces every mutable field of the product. The image is
// re-uploaded only when imagePath is set, otherwise imageUrl is kept.
func (s *ProductService) Update(ctx context.Context, id int64, f models.ProductFields, imagePath string) (*models.Product, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, msgProductNotFound)
	}
	if imagePath != "" {
		url, err := s.uploader.Upload(ctx, imagePath)
		if err != nil {
			return nil, fmt.Errorf("upload product image: %w", err)
		}
		p.ImageURL = url
	}

	f.Apply(p)
	if err := s.repo.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes the row. The uploaded image stays in the asset store.
func (s *ProductService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFound(err, msgProductNotFound)
	}
	return nil
}
