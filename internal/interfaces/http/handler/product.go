package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/inventra/frontend/internal/application/catalog"
	"github.com/inventra/frontend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// ProductHandler serves the product management page.
type ProductHandler struct {
	BaseHandler
	products   *catalogapp.ProductService
	categories *catalogapp.CategoryService
}

// NewProductHandler creates a ProductHandler.
func NewProductHandler(base BaseHandler, products *catalogapp.ProductService, categories *catalogapp.CategoryService) *ProductHandler {
	return &ProductHandler{BaseHandler: base, products: products, categories: categories}
}

// RegisterRoutes mounts the product routes.
func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/products", h.List)
	rg.POST("/products", h.Create)
	rg.POST("/products/:id/deactivate", h.Deactivate)
}

type productForm struct {
	SKU          string `form:"sku"`
	Name         string `form:"name"`
	Unit         string `form:"unit"`
	CategoryID   string `form:"categoryId"`
	CostPrice    string `form:"costPrice"`
	SellingPrice string `form:"sellingPrice"`
	LowStockAt   string `form:"lowStockAt"`
}

type productsPage struct {
	View
	Products   []catalog.Product
	Categories []catalog.Category
	Search     string
}

// List renders the product table with the search filter applied.
func (h *ProductHandler) List(c *gin.Context) {
	sess := currentSession(c)
	search := c.Query("q")

	products, err := h.products.List(c.Request.Context(), sess.Token, search)
	if err != nil {
		h.failure(c, err, "/")
		return
	}
	categories, err := h.categories.List(c.Request.Context(), sess.Token)
	if err != nil {
		h.failure(c, err, "/")
		return
	}

	h.render(c, http.StatusOK, "products", productsPage{
		View:       h.view(c, "Products"),
		Products:   products,
		Categories: categories,
		Search:     search,
	})
}

// Create handles the new-product form.
func (h *ProductHandler) Create(c *gin.Context) {
	sess := currentSession(c)

	var form productForm
	_ = c.ShouldBind(&form)

	input, err := form.toInput()
	if err != nil {
		h.failure(c, err, "/products")
		return
	}

	if _, err := h.products.Create(c.Request.Context(), sess.Token, input); err != nil {
		h.failure(c, err, "/products")
		return
	}
	h.flash(c, "success", "Product "+input.Name+" created")
	c.Redirect(http.StatusSeeOther, "/products")
}

// Deactivate handles the deactivate action on a product row.
func (h *ProductHandler) Deactivate(c *gin.Context) {
	sess := currentSession(c)

	if err := h.products.Deactivate(c.Request.Context(), sess.Token, c.Param("id")); err != nil {
		h.failure(c, err, "/products")
		return
	}
	h.flash(c, "success", "Product deactivated")
	c.Redirect(http.StatusSeeOther, "/products")
}

func (f productForm) toInput() (catalog.NewProductInput, error) {
	costPrice, err := parsePrice(f.CostPrice)
	if err != nil {
		return catalog.NewProductInput{}, err
	}
	sellingPrice, err := parsePrice(f.SellingPrice)
	if err != nil {
		return catalog.NewProductInput{}, err
	}
	lowStockAt := 0
	if f.LowStockAt != "" {
		if lowStockAt, err = strconv.Atoi(f.LowStockAt); err != nil || lowStockAt < 0 {
			return catalog.NewProductInput{}, errInvalidForm("Low-stock threshold must be a non-negative number")
		}
	}
	return catalog.NewProductInput{
		SKU:          f.SKU,
		Name:         f.Name,
		Unit:         f.Unit,
		CategoryID:   f.CategoryID,
		CostPrice:    costPrice,
		SellingPrice: sellingPrice,
		LowStockAt:   lowStockAt,
	}, nil
}

func parsePrice(raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil || d.IsNegative() {
		return decimal.Zero, errInvalidForm("Prices must be non-negative numbers")
	}
	return d, nil
}
