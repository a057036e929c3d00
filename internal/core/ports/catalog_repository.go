package ports

import (
	"context"

	"github.com/mateosvilasboas/infog2-crud/internal/core/domain"
)

// ListProductsFilter carries pagination for the public product listing.
type ListProductsFilter struct {
	Offset int
	Limit  int
}

// CatalogRepository defines persistence operations for products and orders.
type CatalogRepository interface {
	CreateProduct(ctx context.Context, p *domain.Product) (*domain.Product, error)
	FindProductByID(ctx context.Context, id uint) (*domain.Product, error)
	ListProducts(ctx context.Context, filter ListProductsFilter) ([]*domain.Product, error)

	// CreateOrder atomically decrements product stock for every item, fills
	// item unit prices and the order total, and persists the order. The whole
	// transaction fails with domain.ErrInsufficientStock when any product
	// would go below zero stock, or domain.ErrProductNotFound for unknown
	// product references.
	CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error)

	FindOrderByID(ctx context.Context, id uint) (*domain.Order, error)

	// ListOrders returns orders for one client, or every order when
	// clientID is zero.
	ListOrders(ctx context.Context, clientID uint) ([]*domain.Order, error)

	// UpdateOrderStatus persists a status change. When restock is true the
	// order's item quantities are returned to product stock in the same
	// transaction.
	UpdateOrderStatus(ctx context.Context, order *domain.Order, restock bool) error
}
