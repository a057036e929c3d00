package postgres

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/mateosvilasboas/infog2-crud/internal/core/domain"
)

// userModel is the persisted shape of a user. One table holds admins and
// clients; role is the discriminator, so email and cpf uniqueness spans the
// whole identity space. gorm.DeletedAt keeps soft-deleted rows out of
// default queries.
type userModel struct {
	ID           uint   `gorm:"primaryKey"`
	Name         string `gorm:"size:255;index"`
	Email        string `gorm:"size:255;uniqueIndex"`
	CPF          string `gorm:"column:cpf;size:11;uniqueIndex"`
	PasswordHash string `gorm:"size:255"`
	Role         string `gorm:"size:20;index;default:'client'"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (userModel) TableName() string { return "users" }

func (m *userModel) toDomain() *domain.User {
	u := &domain.User{
		ID:           m.ID,
		Name:         m.Name,
		Email:        m.Email,
		CPF:          m.CPF,
		PasswordHash: m.PasswordHash,
		Role:         m.Role,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	if m.DeletedAt.Valid {
		t := m.DeletedAt.Time
		u.DeletedAt = &t
	}
	return u
}

func userToModel(u *domain.User) *userModel {
	m := &userModel{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		CPF:          u.CPF,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
	if u.DeletedAt != nil {
		m.DeletedAt = gorm.DeletedAt{Time: *u.DeletedAt, Valid: true}
	}
	return m
}

type productModel struct {
	ID             uint   `gorm:"primaryKey"`
	Name           string `gorm:"size:255;index"`
	Description    string `gorm:"type:text"`
	Price          float64
	Barcode        string `gorm:"size:12"`
	Section        string `gorm:"size:20;index"`
	Stock          int    `gorm:"check:stock >= 0"`
	ExpirationDate datatypes.Date
	CreatedAt      time.Time
}

func (productModel) TableName() string { return "products" }

func (m *productModel) toDomain() *domain.Product {
	return &domain.Product{
		ID:             m.ID,
		Name:           m.Name,
		Description:    m.Description,
		Price:          m.Price,
		Barcode:        m.Barcode,
		Section:        domain.ProductSection(m.Section),
		Stock:          m.Stock,
		ExpirationDate: time.Time(m.ExpirationDate),
		CreatedAt:      m.CreatedAt,
	}
}

func productToModel(p *domain.Product) *productModel {
	return &productModel{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		Price:          p.Price,
		Barcode:        p.Barcode,
		Section:        string(p.Section),
		Stock:          p.Stock,
		ExpirationDate: datatypes.Date(p.ExpirationDate),
		CreatedAt:      p.CreatedAt,
	}
}

type orderModel struct {
	ID        uint    `gorm:"primaryKey"`
	ClientID  uint    `gorm:"index"`
	Status    string  `gorm:"size:20;index;default:'pending'"`
	Total     float64 `gorm:"default:0"`
	Items     []orderProductModel `gorm:"foreignKey:OrderID"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (orderModel) TableName() string { return "orders" }

// orderProductModel is the many-to-many join between orders and products.
// The composite key is (order_id, product_id); quantity is at least 1.
type orderProductModel struct {
	OrderID   uint `gorm:"primaryKey"`
	ProductID uint `gorm:"primaryKey"`
	Quantity  int  `gorm:"default:1;check:quantity >= 1"`
	UnitPrice float64
}

func (orderProductModel) TableName() string { return "orders_products" }

func (m *orderModel) toDomain() *domain.Order {
	order := &domain.Order{
		ID:        m.ID,
		ClientID:  m.ClientID,
		Status:    domain.OrderStatus(m.Status),
		Total:     m.Total,
		Items:     make([]domain.OrderItem, 0, len(m.Items)),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	for _, item := range m.Items {
		order.Items = append(order.Items, domain.OrderItem{
			OrderID:   item.OrderID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	return order
}
