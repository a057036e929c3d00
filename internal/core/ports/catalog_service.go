package ports

import (
	"context"
	"time"

	"github.com/mateosvilasboas/infog2-crud/internal/core/domain"
)

// CreateProductInput carries all data needed to create a catalog product.
type CreateProductInput struct {
	Name           string
	Description    string
	Price          float64
	Barcode        string
	Section        string
	Stock          int
	ExpirationDate time.Time
}

// OrderItemInput is one product line of a new order.
type OrderItemInput struct {
	ProductID uint
	Quantity  int
}

// CatalogService defines product and order use cases.
type CatalogService interface {
	CreateProduct(ctx context.Context, input CreateProductInput) (*domain.Product, error)
	GetProduct(ctx context.Context, id uint) (*domain.Product, error)
	ListProducts(ctx context.Context, offset, limit int) ([]*domain.Product, error)

	CreateOrder(ctx context.Context, clientID uint, items []OrderItemInput) (*domain.Order, error)
	GetOrder(ctx context.Context, id, callerID uint, role string) (*domain.Order, error)
	ListOrders(ctx context.Context, callerID uint, role string) ([]*domain.Order, error)
	CompleteOrder(ctx context.Context, id uint) (*domain.Order, error)
	CancelOrder(ctx context.Context, id, callerID uint, role string) (*domain.Order, error)
}
