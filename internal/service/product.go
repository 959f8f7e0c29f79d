package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/sakif/storefront-api/internal/apperror"
	"github.com/sakif/storefront-api/internal/model"
	"github.com/sakif/storefront-api/internal/repository"
)

// ProductService serves read-only queries over the catalog.
type ProductService struct {
	repo   repository.ProductRepository
	logger *slog.Logger
}

// NewProductService creates a new ProductService.
func NewProductService(repo repository.ProductRepository, logger *slog.Logger) *ProductService {
	return &ProductService{
		repo:   repo,
		logger: logger,
	}
}

// List returns every product. There is no pagination.
func (s *ProductService) List(ctx context.Context) ([]model.Product, error) {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		s.logger.Error("failed to list products", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing products: %w", err)
	}
	return products, nil
}

// GetByID looks a product up by the id exactly as the caller supplied it.
//
// An id that does not parse as a base-10 integer ("abc", "7.0", " 7") is
// reported as apperror.ErrNotFound like any other missing product; it is
// never coerced to a nearby row. Only a
// failing query is a real error.
func (s *ProductService) GetByID(ctx context.Context, rawID string) (*model.Product, error) {
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return nil, apperror.NotFound("product", rawID)
	}

	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		// NotFound is a normal outcome; only real failures get logged.
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, err
		}
		s.logger.Error("failed to get product", slog.Int64("id", id), slog.String("error", err.Error()))
		return nil, fmt.Errorf("getting product %d: %w", id, err)
	}

	return product, nil
}

// Search returns products whose title, description or category contains
// term. The empty term matches everything, the same as List.
func (s *ProductService) Search(ctx context.Context, term string) ([]model.Product, error) {
	products, err := s.repo.SearchProducts(ctx, term)
	if err != nil {
		s.logger.Error("failed to search products",
			slog.String("term", term),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("searching products: %w", err)
	}
	return products, nil
}
