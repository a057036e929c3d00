package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/mateosvilasboas/infog2-crud/internal/core/domain"
	"github.com/mateosvilasboas/infog2-crud/internal/core/ports"
)

type stubCatalogRepo struct {
	products    map[uint]*domain.Product
	orders      map[uint]*domain.Order
	nextProduct uint
	nextOrder   uint
}

func newStubCatalogRepo() *stubCatalogRepo {
	return &stubCatalogRepo{
		products:    make(map[uint]*domain.Product),
		orders:      make(map[uint]*domain.Order),
		nextProduct: 1,
		nextOrder:   1,
	}
}

func (r *stubCatalogRepo) CreateProduct(_ context.Context, p *domain.Product) (*domain.Product, error) {
	stored := *p
	stored.ID = r.nextProduct
	r.nextProduct++
	r.products[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (r *stubCatalogRepo) FindProductByID(_ context.Context, id uint) (*domain.Product, error) {
	if p, ok := r.products[id]; ok {
		found := *p
		return &found, nil
	}
	return nil, domain.ErrProductNotFound
}

func (r *stubCatalogRepo) ListProducts(_ context.Context, filter ports.ListProductsFilter) ([]*domain.Product, error) {
	out := make([]*domain.Product, 0, len(r.products))
	for id := uint(1); id < r.nextProduct; id++ {
		if p, ok := r.products[id]; ok {
			found := *p
			out = append(out, &found)
		}
	}
	if filter.Offset >= len(out) {
		return nil, nil
	}
	out = out[filter.Offset:]
	if filter.Limit < len(out) {
		out = out[:filter.Limit]
	}
	return out, nil
}

// CreateOrder mirrors the transactional semantics of the real repository:
// validate everything first, then apply, so a failure leaves stock untouched.
func (r *stubCatalogRepo) CreateOrder(_ context.Context, order *domain.Order) (*domain.Order, error) {
	for _, item := range order.Items {
		product, ok := r.products[item.ProductID]
		if !ok {
			return nil, domain.ErrProductNotFound
		}
		if product.Stock < item.Quantity {
			return nil, domain.ErrInsufficientStock
		}
	}

	stored := *order
	stored.ID = r.nextOrder
	r.nextOrder++
	stored.Total = 0
	stored.Items = make([]domain.OrderItem, len(order.Items))
	for i, item := range order.Items {
		product := r.products[item.ProductID]
		product.Stock -= item.Quantity
		item.OrderID = stored.ID
		item.UnitPrice = product.Price
		stored.Items[i] = item
		stored.Total += product.Price * float64(item.Quantity)
	}
	stored.CreatedAt = time.Now().UTC()
	r.orders[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (r *stubCatalogRepo) FindOrderByID(_ context.Context, id uint) (*domain.Order, error) {
	if o, ok := r.orders[id]; ok {
		found := *o
		return &found, nil
	}
	return nil, domain.ErrOrderNotFound
}

func (r *stubCatalogRepo) ListOrders(_ context.Context, clientID uint) ([]*domain.Order, error) {
	out := make([]*domain.Order, 0)
	for id := uint(1); id < r.nextOrder; id++ {
		o, ok := r.orders[id]
		if !ok {
			continue
		}
		if clientID != 0 && o.ClientID != clientID {
			continue
		}
		found := *o
		out = append(out, &found)
	}
	return out, nil
}

func (r *stubCatalogRepo) UpdateOrderStatus(_ context.Context, order *domain.Order, restock bool) error {
	stored, ok := r.orders[order.ID]
	if !ok {
		return domain.ErrOrderNotFound
	}
	stored.Status = order.Status
	if restock {
		for _, item := range stored.Items {
			if product, ok := r.products[item.ProductID]; ok {
				product.Stock += item.Quantity
			}
		}
	}
	return nil
}

func newCatalogService(repo *stubCatalogRepo) *CatalogService {
	return NewCatalogService(repo, &capturingPublisher{}, zerolog.Nop())
}

func seedProduct(t *testing.T, repo *stubCatalogRepo, price float64, stock int) *domain.Product {
	t.Helper()
	product, err := repo.CreateProduct(context.Background(), &domain.Product{
		Name:    "sabonete",
		Price:   price,
		Barcode: "789100000001",
		Section: domain.SectionHigiene,
		Stock:   stock,
	})
	if err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return product
}

func TestCatalogService_CreateProduct_InvalidSection(t *testing.T) {
	svc := newCatalogService(newStubCatalogRepo())

	_, err := svc.CreateProduct(context.Background(), ports.CreateProductInput{
		Name:    "livro",
		Price:   10,
		Barcode: "789100000002",
		Section: "papelaria",
		Stock:   3,
	})
	if !errors.Is(err, domain.ErrInvalidSection) {
		t.Fatalf("expected ErrInvalidSection, got %v", err)
	}
}

func TestCatalogService_CreateProduct_NegativeStock(t *testing.T) {
	svc := newCatalogService(newStubCatalogRepo())

	_, err := svc.CreateProduct(context.Background(), ports.CreateProductInput{
		Name:    "arroz",
		Price:   8,
		Barcode: "789100000003",
		Section: string(domain.SectionAlimentacao),
		Stock:   -1,
	})
	if !errors.Is(err, domain.ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
}

func TestCatalogService_CreateOrder_ComputesTotalAndDecrementsStock(t *testing.T) {
	repo := newStubCatalogRepo()
	product := seedProduct(t, repo, 2.5, 10)
	svc := newCatalogService(repo)

	order, err := svc.CreateOrder(context.Background(), 7, []ports.OrderItemInput{
		{ProductID: product.ID, Quantity: 4},
	})
	if err != nil {
		t.Fatalf("CreateOrder returned error: %v", err)
	}
	if order.ID != 1 {
		t.Errorf("order id = %d, want 1", order.ID)
	}
	if order.Status != domain.OrderPending {
		t.Errorf("status = %s, want pending", order.Status)
	}
	if order.Total != 10 {
		t.Errorf("total = %v, want 10", order.Total)
	}
	if len(order.Items) != 1 || order.Items[0].UnitPrice != 2.5 {
		t.Errorf("items not filled: %+v", order.Items)
	}
	if repo.products[product.ID].Stock != 6 {
		t.Errorf("stock = %d, want 6", repo.products[product.ID].Stock)
	}
}

func TestCatalogService_CreateOrder_EmptyOrder(t *testing.T) {
	svc := newCatalogService(newStubCatalogRepo())

	if _, err := svc.CreateOrder(context.Background(), 7, nil); !errors.Is(err, domain.ErrEmptyOrder) {
		t.Fatalf("expected ErrEmptyOrder, got %v", err)
	}
}

func TestCatalogService_CreateOrder_InvalidQuantity(t *testing.T) {
	repo := newStubCatalogRepo()
	product := seedProduct(t, repo, 2.5, 10)
	svc := newCatalogService(repo)

	_, err := svc.CreateOrder(context.Background(), 7, []ports.OrderItemInput{
		{ProductID: product.ID, Quantity: 0},
	})
	if !errors.Is(err, domain.ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
	if repo.products[product.ID].Stock != 10 {
		t.Fatalf("invalid order must not touch stock")
	}
}

func TestCatalogService_CreateOrder_InsufficientStock(t *testing.T) {
	repo := newStubCatalogRepo()
	product := seedProduct(t, repo, 2.5, 3)
	svc := newCatalogService(repo)

	_, err := svc.CreateOrder(context.Background(), 7, []ports.OrderItemInput{
		{ProductID: product.ID, Quantity: 5},
	})
	if !errors.Is(err, domain.ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
	if repo.products[product.ID].Stock != 3 {
		t.Fatalf("failed order must not touch stock")
	}
}

func TestCatalogService_GetOrder_ForeignClientForbidden(t *testing.T) {
	repo := newStubCatalogRepo()
	product := seedProduct(t, repo, 1, 10)
	svc := newCatalogService(repo)

	order, err := svc.CreateOrder(context.Background(), 7, []ports.OrderItemInput{{ProductID: product.ID, Quantity: 1}})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	if _, err := svc.GetOrder(context.Background(), order.ID, 8, domain.RoleClient); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := svc.GetOrder(context.Background(), order.ID, 8, domain.RoleAdmin); err != nil {
		t.Fatalf("admin read failed: %v", err)
	}
	if _, err := svc.GetOrder(context.Background(), order.ID, 7, domain.RoleClient); err != nil {
		t.Fatalf("owner read failed: %v", err)
	}
}

func TestCatalogService_ListOrders_Scoping(t *testing.T) {
	repo := newStubCatalogRepo()
	product := seedProduct(t, repo, 1, 10)
	svc := newCatalogService(repo)

	if _, err := svc.CreateOrder(context.Background(), 7, []ports.OrderItemInput{{ProductID: product.ID, Quantity: 1}}); err != nil {
		t.Fatalf("create order: %v", err)
	}
	if _, err := svc.CreateOrder(context.Background(), 8, []ports.OrderItemInput{{ProductID: product.ID, Quantity: 1}}); err != nil {
		t.Fatalf("create order: %v", err)
	}

	mine, err := svc.ListOrders(context.Background(), 7, domain.RoleClient)
	if err != nil {
		t.Fatalf("list orders: %v", err)
	}
	if len(mine) != 1 || mine[0].ClientID != 7 {
		t.Fatalf("client must only see own orders, got %+v", mine)
	}

	all, err := svc.ListOrders(context.Background(), 7, domain.RoleAdmin)
	if err != nil {
		t.Fatalf("list orders: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("admin must see every order, got %d", len(all))
	}
}

func TestCatalogService_CompleteOrder(t *testing.T) {
	repo := newStubCatalogRepo()
	product := seedProduct(t, repo, 1, 10)
	svc := newCatalogService(repo)

	order, err := svc.CreateOrder(context.Background(), 7, []ports.OrderItemInput{{ProductID: product.ID, Quantity: 2}})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	completed, err := svc.CompleteOrder(context.Background(), order.ID)
	if err != nil {
		t.Fatalf("complete order: %v", err)
	}
	if completed.Status != domain.OrderCompleted {
		t.Fatalf("status = %s, want completed", completed.Status)
	}
	if repo.products[product.ID].Stock != 8 {
		t.Fatalf("completing must not restock")
	}

	// Completed is terminal.
	if _, err := svc.CompleteOrder(context.Background(), order.ID); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestCatalogService_CancelOrder_RestoresStock(t *testing.T) {
	repo := newStubCatalogRepo()
	product := seedProduct(t, repo, 1, 10)
	svc := newCatalogService(repo)

	order, err := svc.CreateOrder(context.Background(), 7, []ports.OrderItemInput{{ProductID: product.ID, Quantity: 4}})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if repo.products[product.ID].Stock != 6 {
		t.Fatalf("stock after order = %d, want 6", repo.products[product.ID].Stock)
	}

	canceled, err := svc.CancelOrder(context.Background(), order.ID, 7, domain.RoleClient)
	if err != nil {
		t.Fatalf("cancel order: %v", err)
	}
	if canceled.Status != domain.OrderCanceled {
		t.Fatalf("status = %s, want canceled", canceled.Status)
	}
	if repo.products[product.ID].Stock != 10 {
		t.Fatalf("stock after cancel = %d, want 10", repo.products[product.ID].Stock)
	}
}

func TestCatalogService_CancelOrder_ForeignClientForbidden(t *testing.T) {
	repo := newStubCatalogRepo()
	product := seedProduct(t, repo, 1, 10)
	svc := newCatalogService(repo)

	order, err := svc.CreateOrder(context.Background(), 7, []ports.OrderItemInput{{ProductID: product.ID, Quantity: 1}})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	if _, err := svc.CancelOrder(context.Background(), order.ID, 8, domain.RoleClient); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := svc.CancelOrder(context.Background(), order.ID, 8, domain.RoleAdmin); err != nil {
		t.Fatalf("admin cancel failed: %v", err)
	}
}

func TestCatalogService_CancelOrder_CompletedIsInvalid(t *testing.T) {
	repo := newStubCatalogRepo()
	product := seedProduct(t, repo, 1, 10)
	svc := newCatalogService(repo)

	order, err := svc.CreateOrder(context.Background(), 7, []ports.OrderItemInput{{ProductID: product.ID, Quantity: 1}})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if _, err := svc.CompleteOrder(context.Background(), order.ID); err != nil {
		t.Fatalf("complete order: %v", err)
	}

	if _, err := svc.CancelOrder(context.Background(), order.ID, 7, domain.RoleClient); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}
