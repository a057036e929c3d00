package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mateosvilasboas/infog2-crud/internal/core/domain"
	"github.com/mateosvilasboas/infog2-crud/internal/core/ports"
)

// CatalogRepository implements ports.CatalogRepository on GORM.
type CatalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) CreateProduct(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	m := productToModel(p)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, fmt.Errorf("insert product: %w", err)
	}
	return m.toDomain(), nil
}

func (r *CatalogRepository) FindProductByID(ctx context.Context, id uint) (*domain.Product, error) {
	var m productModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}
	return m.toDomain(), nil
}

func (r *CatalogRepository) ListProducts(ctx context.Context, filter ports.ListProductsFilter) ([]*domain.Product, error) {
	var models []productModel
	err := r.db.WithContext(ctx).
		Order("id").Offset(filter.Offset).Limit(filter.Limit).
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	products := make([]*domain.Product, 0, len(models))
	for i := range models {
		products = append(products, models[i].toDomain())
	}
	return products, nil
}

// CreateOrder inserts the order and decrements stock in one transaction.
// The stock update is guarded (stock >= quantity), so two concurrent orders
// can never drive stock negative; the loser gets ErrInsufficientStock.
func (r *CatalogRepository) CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	var created orderModel

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		total := 0.0
		items := make([]orderProductModel, 0, len(order.Items))

		for _, item := range order.Items {
			var p productModel
			if err := tx.First(&p, item.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return domain.ErrProductNotFound
				}
				return fmt.Errorf("load product: %w", err)
			}

			res := tx.Model(&productModel{}).
				Where("id = ? AND stock >= ?", item.ProductID, item.Quantity).
				UpdateColumn("stock", gorm.Expr("stock - ?", item.Quantity))
			if res.Error != nil {
				return fmt.Errorf("decrement stock: %w", res.Error)
			}
			if res.RowsAffected == 0 {
				return domain.ErrInsufficientStock
			}

			total += p.Price * float64(item.Quantity)
			items = append(items, orderProductModel{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				UnitPrice: p.Price,
			})
		}

		created = orderModel{
			ClientID: order.ClientID,
			Status:   string(order.Status),
			Total:    total,
		}
		if err := tx.Create(&created).Error; err != nil {
			return fmt.Errorf("insert order: %w", err)
		}

		for i := range items {
			items[i].OrderID = created.ID
		}
		if err := tx.Create(&items).Error; err != nil {
			return fmt.Errorf("insert order items: %w", err)
		}
		created.Items = items

		return nil
	})
	if err != nil {
		return nil, err
	}

	return created.toDomain(), nil
}

func (r *CatalogRepository) FindOrderByID(ctx context.Context, id uint) (*domain.Order, error) {
	var m orderModel
	err := r.db.WithContext(ctx).Preload("Items").First(&m, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("find order: %w", err)
	}
	return m.toDomain(), nil
}

func (r *CatalogRepository) ListOrders(ctx context.Context, clientID uint) ([]*domain.Order, error) {
	q := r.db.WithContext(ctx).Preload("Items").Order("id")
	if clientID != 0 {
		q = q.Where("client_id = ?", clientID)
	}

	var models []orderModel
	if err := q.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	orders := make([]*domain.Order, 0, len(models))
	for i := range models {
		orders = append(orders, models[i].toDomain())
	}
	return orders, nil
}

func (r *CatalogRepository) UpdateOrderStatus(ctx context.Context, order *domain.Order, restock bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&orderModel{}).
			Where("id = ?", order.ID).
			Update("status", string(order.Status)).Error
		if err != nil {
			return fmt.Errorf("update order status: %w", err)
		}

		if !restock {
			return nil
		}
		for _, item := range order.Items {
			err := tx.Model(&productModel{}).
				Where("id = ?", item.ProductID).
				UpdateColumn("stock", gorm.Expr("stock + ?", item.Quantity)).Error
			if err != nil {
				return fmt.Errorf("restore stock: %w", err)
			}
		}
		return nil
	})
}

var _ ports.CatalogRepository = (*CatalogRepository)(nil)
