// Package repository declares the storage interfaces the services depend on.
// internal/repository/sqlite provides the implementation.
package repository

import (
	"context"

	"github.com/sakif/storefront-api/internal/model"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	CountUsers(ctx context.Context) (int, error)
}

type ProductRepository interface {
	// CreateProducts writes every product in one batch: all rows or none.
	CreateProducts(ctx context.Context, products []*model.Product) (int, error)
	ListProducts(ctx context.Context) ([]model.Product, error)
	GetProductByID(ctx context.Context, id int64) (*model.Product, error)
	// SearchProducts returns products whose title, description or category
	// contains term. An empty term matches every product.
	SearchProducts(ctx context.Context, term string) ([]model.Product, error)
}
