package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/mateosvilasboas/infog2-crud/internal/api"
	"github.com/mateosvilasboas/infog2-crud/internal/api/handler"
	"github.com/mateosvilasboas/infog2-crud/internal/core/domain"
	"github.com/mateosvilasboas/infog2-crud/internal/core/ports"
)

// newEcho builds an echo instance with the production validator and error
// handler wired, so handler tests exercise the full status code mapping.
func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = api.NewHTTPErrorHandler(zerolog.Nop())
	return e
}

// identity is injected in place of the JWT middleware for handler tests.
type identity struct {
	userID   uint
	role     string
	jti      string
	tokenExp time.Time
}

func withIdentity(ident identity) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("user_id", ident.userID)
			c.Set("role", ident.role)
			if ident.jti != "" {
				c.Set("jti", ident.jti)
				c.Set("token_exp", ident.tokenExp)
			}
			return next(c)
		}
	}
}

func doJSON(t *testing.T, e *echo.Echo, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

func assertError(t *testing.T, rec *httptest.ResponseRecorder, status int, message string) {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("status = %d, want %d (body: %s)", rec.Code, status, rec.Body.String())
	}
	var body map[string]string
	decodeBody(t, rec, &body)
	if message != "" && body["error"] != message {
		t.Fatalf("error = %q, want %q", body["error"], message)
	}
}

// --- service stubs ---

type stubUserService struct {
	registerFn       func(ctx context.Context, input ports.RegisterUserInput) (*domain.User, error)
	listFn           func(ctx context.Context, input ports.ListUsersInput) ([]*domain.User, error)
	softDeleteFn     func(ctx context.Context, id uint, role string) error
	updateSelfFn     func(ctx context.Context, callerID, targetID uint, input ports.UpdateUserInput) (*domain.User, error)
	softDeleteSelfFn func(ctx context.Context, callerID, targetID uint) error
}

func (s *stubUserService) Register(ctx context.Context, input ports.RegisterUserInput) (*domain.User, error) {
	return s.registerFn(ctx, input)
}

func (s *stubUserService) List(ctx context.Context, input ports.ListUsersInput) ([]*domain.User, error) {
	return s.listFn(ctx, input)
}

func (s *stubUserService) SoftDelete(ctx context.Context, id uint, role string) error {
	return s.softDeleteFn(ctx, id, role)
}

func (s *stubUserService) UpdateSelf(ctx context.Context, callerID, targetID uint, input ports.UpdateUserInput) (*domain.User, error) {
	return s.updateSelfFn(ctx, callerID, targetID, input)
}

func (s *stubUserService) SoftDeleteSelf(ctx context.Context, callerID, targetID uint) error {
	return s.softDeleteSelfFn(ctx, callerID, targetID)
}

type stubAuthService struct {
	loginFn  func(ctx context.Context, email, password string) (string, *domain.User, error)
	logoutFn func(ctx context.Context, jti string, expiresAt time.Time) error
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	return s.logoutFn(ctx, jti, expiresAt)
}

type stubCatalogService struct {
	createProductFn func(ctx context.Context, input ports.CreateProductInput) (*domain.Product, error)
	getProductFn    func(ctx context.Context, id uint) (*domain.Product, error)
	listProductsFn  func(ctx context.Context, offset, limit int) ([]*domain.Product, error)
	createOrderFn   func(ctx context.Context, clientID uint, items []ports.OrderItemInput) (*domain.Order, error)
	getOrderFn      func(ctx context.Context, id, callerID uint, role string) (*domain.Order, error)
	listOrdersFn    func(ctx context.Context, callerID uint, role string) ([]*domain.Order, error)
	completeOrderFn func(ctx context.Context, id uint) (*domain.Order, error)
	cancelOrderFn   func(ctx context.Context, id, callerID uint, role string) (*domain.Order, error)
}

func (s *stubCatalogService) CreateProduct(ctx context.Context, input ports.CreateProductInput) (*domain.Product, error) {
	return s.createProductFn(ctx, input)
}

func (s *stubCatalogService) GetProduct(ctx context.Context, id uint) (*domain.Product, error) {
	return s.getProductFn(ctx, id)
}

func (s *stubCatalogService) ListProducts(ctx context.Context, offset, limit int) ([]*domain.Product, error) {
	return s.listProductsFn(ctx, offset, limit)
}

func (s *stubCatalogService) CreateOrder(ctx context.Context, clientID uint, items []ports.OrderItemInput) (*domain.Order, error) {
	return s.createOrderFn(ctx, clientID, items)
}

func (s *stubCatalogService) GetOrder(ctx context.Context, id, callerID uint, role string) (*domain.Order, error) {
	return s.getOrderFn(ctx, id, callerID, role)
}

func (s *stubCatalogService) ListOrders(ctx context.Context, callerID uint, role string) ([]*domain.Order, error) {
	return s.listOrdersFn(ctx, callerID, role)
}

func (s *stubCatalogService) CompleteOrder(ctx context.Context, id uint) (*domain.Order, error) {
	return s.completeOrderFn(ctx, id)
}

func (s *stubCatalogService) CancelOrder(ctx context.Context, id, callerID uint, role string) (*domain.Order, error) {
	return s.cancelOrderFn(ctx, id, callerID, role)
}

func sampleUser() *domain.User {
	return &domain.User{
		ID:    1,
		Name:  "alice",
		Email: "alice@example.com",
		CPF:   "52998224725",
		Role:  domain.RoleClient,
	}
}
