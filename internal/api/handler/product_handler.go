package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mateosvilasboas/infog2-crud/internal/core/ports"
)

// ProductHandler exposes the catalog product endpoints.
type ProductHandler struct {
	catalogService ports.CatalogService
}

func NewProductHandler(catalogService ports.CatalogService) *ProductHandler {
	return &ProductHandler{catalogService: catalogService}
}

// Create adds a product to the catalog (admin only).
//
// @Summary      Create a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createProductRequest  true  "Product details"
// @Success      201   {object}  productResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	var req createProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	product, err := h.catalogService.CreateProduct(c.Request().Context(), ports.CreateProductInput{
		Name:           req.Name,
		Description:    req.Description,
		Price:          req.Price,
		Barcode:        req.Barcode,
		Section:        req.Section,
		Stock:          req.Stock,
		ExpirationDate: req.ExpirationDate,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toProductResponse(product))
}

// List returns catalog products with offset/limit pagination.
//
// @Summary      List products
// @Tags         products
// @Produce      json
// @Success      200  {object}  productListResponse
// @Router       /products [get]
func (h *ProductHandler) List(c echo.Context) error {
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	products, err := h.catalogService.ListProducts(c.Request().Context(), offset, limit)
	if err != nil {
		return err
	}

	resp := productListResponse{Products: make([]productResponse, 0, len(products))}
	for _, p := range products {
		resp.Products = append(resp.Products, toProductResponse(p))
	}
	return c.JSON(http.StatusOK, resp)
}

// Get returns one product by id.
//
// @Summary      Get a product
// @Tags         products
// @Produce      json
// @Param        id  path  int  true  "Product id"
// @Success      200  {object}  productResponse
// @Failure      404  {object}  errorResponse
// @Router       /products/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	product, err := h.catalogService.GetProduct(c.Request().Context(), uint(id))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toProductResponse(product))
}
