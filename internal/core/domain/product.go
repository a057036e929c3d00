package domain

import (
	"errors"
	"time"
)

// ProductSection categorizes catalog products.
type ProductSection string

const (
	SectionHigiene     ProductSection = "higiene"
	SectionAlimentacao ProductSection = "alimentacao"
	SectionVestuario   ProductSection = "vestuario"
)

// ValidSection reports whether s names a known product section.
func ValidSection(s ProductSection) bool {
	switch s {
	case SectionHigiene, SectionAlimentacao, SectionVestuario:
		return true
	}
	return false
}

var ErrProductNotFound = errors.New("product not found")
var ErrInvalidSection = errors.New("invalid product section")
var ErrInsufficientStock = errors.New("insufficient stock")

// Product is a catalog entry. Stock never goes negative; the repository
// enforces the same constraint at the database level.
type Product struct {
	ID             uint           `json:"id"`
	Name           string         `json:"name"`
	Description    string         `json:"description"`
	Price          float64        `json:"price"`
	Barcode        string         `json:"barcode"`
	Section        ProductSection `json:"section"`
	Stock          int            `json:"stock"`
	ExpirationDate time.Time      `json:"expiration_date"`
	CreatedAt      time.Time      `json:"created_at"`
}
