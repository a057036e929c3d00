package service

import (
	"context"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/mateosvilasboas/infog2-crud/internal/core/domain"
	"github.com/mateosvilasboas/infog2-crud/internal/core/ports"
)

// CatalogService implements product and order use cases.
type CatalogService struct {
	repo   ports.CatalogRepository
	events ports.EventPublisher
	logger zerolog.Logger
}

func NewCatalogService(repo ports.CatalogRepository, events ports.EventPublisher, logger zerolog.Logger) *CatalogService {
	return &CatalogService{repo: repo, events: events, logger: logger}
}

func (s *CatalogService) CreateProduct(ctx context.Context, input ports.CreateProductInput) (*domain.Product, error) {
	section := domain.ProductSection(input.Section)
	if !domain.ValidSection(section) {
		return nil, domain.ErrInvalidSection
	}
	if input.Stock < 0 {
		return nil, domain.ErrInsufficientStock
	}

	product := &domain.Product{
		Name:           input.Name,
		Description:    input.Description,
		Price:          input.Price,
		Barcode:        input.Barcode,
		Section:        section,
		Stock:          input.Stock,
		ExpirationDate: input.ExpirationDate,
	}

	created, err := s.repo.CreateProduct(ctx, product)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Uint("product_id", created.ID).Str("section", string(created.Section)).Msg("product created")
	return created, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id uint) (*domain.Product, error) {
	return s.repo.FindProductByID(ctx, id)
}

func (s *CatalogService) ListProducts(ctx context.Context, offset, limit int) ([]*domain.Product, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.ListProducts(ctx, ports.ListProductsFilter{Offset: offset, Limit: limit})
}

// CreateOrder places a pending order for the client. Stock is decremented
// atomically by the repository; any shortage rejects the whole order.
func (s *CatalogService) CreateOrder(ctx context.Context, clientID uint, items []ports.OrderItemInput) (*domain.Order, error) {
	if len(items) == 0 {
		return nil, domain.ErrEmptyOrder
	}

	order := &domain.Order{
		ClientID: clientID,
		Status:   domain.OrderPending,
		Items:    make([]domain.OrderItem, 0, len(items)),
	}
	for _, item := range items {
		if item.Quantity < 1 {
			return nil, domain.ErrInvalidQuantity
		}
		order.Items = append(order.Items, domain.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	created, err := s.repo.CreateOrder(ctx, order)
	if err != nil {
		s.logger.Error().Err(err).Uint("client_id", clientID).Msg("failed to create order")
		return nil, err
	}

	s.logger.Info().Uint("order_id", created.ID).Uint("client_id", clientID).Float64("total", created.Total).Msg("order created")
	s.publish(ports.LifecycleEvent{
		Kind:    ports.EventOrderCreated,
		Subject: subjectForOrder(created),
		UserID:  clientID,
		OrderID: created.ID,
		At:      time.Now().UTC(),
	})

	return created, nil
}

// GetOrder returns one order. Clients may only read their own orders.
func (s *CatalogService) GetOrder(ctx context.Context, id, callerID uint, role string) (*domain.Order, error) {
	order, err := s.repo.FindOrderByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if role != domain.RoleAdmin && order.ClientID != callerID {
		return nil, domain.ErrForbidden
	}
	return order, nil
}

// ListOrders scopes the listing to the caller unless the caller is an admin.
func (s *CatalogService) ListOrders(ctx context.Context, callerID uint, role string) ([]*domain.Order, error) {
	if role == domain.RoleAdmin {
		return s.repo.ListOrders(ctx, 0)
	}
	return s.repo.ListOrders(ctx, callerID)
}

// CompleteOrder transitions a pending order to completed.
func (s *CatalogService) CompleteOrder(ctx context.Context, id uint) (*domain.Order, error) {
	order, err := s.repo.FindOrderByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !order.Status.CanTransitionTo(domain.OrderCompleted) {
		return nil, domain.ErrInvalidTransition
	}

	order.Status = domain.OrderCompleted
	if err := s.repo.UpdateOrderStatus(ctx, order, false); err != nil {
		return nil, err
	}

	s.logger.Info().Uint("order_id", order.ID).Msg("order completed")
	return order, nil
}

// CancelOrder transitions a pending order to canceled and restores stock.
// Only the owning client or an admin may cancel.
func (s *CatalogService) CancelOrder(ctx context.Context, id, callerID uint, role string) (*domain.Order, error) {
	order, err := s.repo.FindOrderByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if role != domain.RoleAdmin && order.ClientID != callerID {
		return nil, domain.ErrForbidden
	}
	if !order.Status.CanTransitionTo(domain.OrderCanceled) {
		return nil, domain.ErrInvalidTransition
	}

	order.Status = domain.OrderCanceled
	if err := s.repo.UpdateOrderStatus(ctx, order, true); err != nil {
		return nil, err
	}

	s.logger.Info().Uint("order_id", order.ID).Msg("order canceled, stock restored")
	s.publish(ports.LifecycleEvent{
		Kind:    ports.EventOrderCanceled,
		Subject: subjectForOrder(order),
		UserID:  order.ClientID,
		OrderID: order.ID,
		At:      time.Now().UTC(),
	})

	return order, nil
}

func (s *CatalogService) publish(event ports.LifecycleEvent) {
	if s.events != nil {
		s.events.Publish(event)
	}
}

// subjectForOrder shards order events by owner so that one client's order
// events keep their relative order.
func subjectForOrder(order *domain.Order) string {
	return "client:" + strconv.FormatUint(uint64(order.ClientID), 10)
}
