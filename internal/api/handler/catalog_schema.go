package handler

import (
	"time"

	"github.com/mateosvilasboas/infog2-crud/internal/core/domain"
)

type createProductRequest struct {
	Name           string    `json:"name"            validate:"required"`
	Description    string    `json:"description"     validate:"required"`
	Price          float64   `json:"price"           validate:"required,gt=0"`
	Barcode        string    `json:"barcode"         validate:"required,len=12"`
	Section        string    `json:"section"         validate:"required,oneof=higiene alimentacao vestuario"`
	Stock          int       `json:"stock"           validate:"gte=0"`
	ExpirationDate time.Time `json:"expiration_date" validate:"required"`
}

type productResponse struct {
	ID             uint    `json:"id"`
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	Price          float64 `json:"price"`
	Barcode        string  `json:"barcode"`
	Section        string  `json:"section"`
	Stock          int     `json:"stock"`
	ExpirationDate string  `json:"expiration_date"`
}

type productListResponse struct {
	Products []productResponse `json:"products"`
}

func toProductResponse(p *domain.Product) productResponse {
	return productResponse{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		Price:          p.Price,
		Barcode:        p.Barcode,
		Section:        string(p.Section),
		Stock:          p.Stock,
		ExpirationDate: p.ExpirationDate.Format("2006-01-02"),
	}
}

type orderItemRequest struct {
	ProductID uint `json:"product_id" validate:"required"`
	Quantity  int  `json:"quantity"   validate:"required,min=1"`
}

type createOrderRequest struct {
	Items []orderItemRequest `json:"items" validate:"required,min=1,dive"`
}

type orderItemResponse struct {
	ProductID uint    `json:"product_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

type orderResponse struct {
	ID       uint                `json:"id"`
	ClientID uint                `json:"client_id"`
	Status   string              `json:"status"`
	Total    float64             `json:"total"`
	Items    []orderItemResponse `json:"items"`
}

type orderListResponse struct {
	Orders []orderResponse `json:"orders"`
}

func toOrderResponse(o *domain.Order) orderResponse {
	resp := orderResponse{
		ID:       o.ID,
		ClientID: o.ClientID,
		Status:   string(o.Status),
		Total:    o.Total,
		Items:    make([]orderItemResponse, 0, len(o.Items)),
	}
	for _, item := range o.Items {
		resp.Items = append(resp.Items, orderItemResponse{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	return resp
}
