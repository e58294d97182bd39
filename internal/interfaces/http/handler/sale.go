package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/inventra/frontend/internal/application/refdata"
	saleapp "github.com/inventra/frontend/internal/application/sale"
	"github.com/inventra/frontend/internal/domain/catalog"
	"github.com/inventra/frontend/internal/domain/inventory"
	"github.com/inventra/frontend/internal/infrastructure/printing"
	"github.com/shopspring/decimal"
)

// SaleHandler serves the point-of-sale page: product picker, cart editing,
// checkout, and the printable receipt.
type SaleHandler struct {
	BaseHandler
	carts    *saleapp.CartStore
	checkout *saleapp.CheckoutService
	invoices *saleapp.InvoiceService
	refdata  *refdata.Provider
	receipts *printing.ReceiptRenderer
}

// NewSaleHandler creates a SaleHandler.
func NewSaleHandler(base BaseHandler, carts *saleapp.CartStore, checkout *saleapp.CheckoutService, invoices *saleapp.InvoiceService, ref *refdata.Provider, receipts *printing.ReceiptRenderer) *SaleHandler {
	return &SaleHandler{
		BaseHandler: base,
		carts:       carts,
		checkout:    checkout,
		invoices:    invoices,
		refdata:     ref,
		receipts:    receipts,
	}
}

// RegisterRoutes mounts the point-of-sale routes.
func (h *SaleHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/sale", h.Page)
	rg.POST("/sale/items", h.AddItem)
	rg.POST("/sale/items/:productId/quantity", h.SetQuantity)
	rg.POST("/sale/items/:productId/remove", h.RemoveItem)
	rg.POST("/sale/note", h.SetNote)
	rg.POST("/sale/checkout", h.Checkout)
	rg.GET("/sale/receipt/:publicId", h.Receipt)
}

type salePage struct {
	View
	Products []catalog.Product
	Branches []inventory.Branch
	Cart     saleapp.Snapshot
	Total    decimal.Decimal
	Search   string
	BranchID string
}

// Page renders the point-of-sale screen: sellable products on one side,
// the session's cart on the other.
func (h *SaleHandler) Page(c *gin.Context) {
	sess := currentSession(c)
	search := c.Query("q")

	products, err := h.refdata.Products(c.Request.Context(), sess.Token)
	if err != nil {
		h.failure(c, err, "/")
		return
	}
	sellable := products[:0:0]
	for _, p := range products {
		if p.IsActive {
			sellable = append(sellable, p)
		}
	}
	branches, err := h.refdata.Branches(c.Request.Context(), sess.Token)
	if err != nil {
		h.failure(c, err, "/")
		return
	}

	snap := h.carts.Snapshot(sess.ID)
	h.render(c, http.StatusOK, "sale", salePage{
		View:     h.view(c, "New sale"),
		Products: sellable,
		Branches: branches,
		Cart:     snap,
		Total:    snap.Total,
		Search:   search,
		BranchID: c.Query("branchId"),
	})
}

// AddItem puts one unit of a product into the cart, snapshotting its
// current price. Adding the same product again bumps the quantity.
func (h *SaleHandler) AddItem(c *gin.Context) {
	sess := currentSession(c)

	product, err := h.refdata.ProductByID(c.Request.Context(), sess.Token, c.PostForm("productId"))
	if err != nil {
		h.failure(c, err, "/sale")
		return
	}
	if !product.IsActive {
		h.failure(c, errInvalidForm("Product is not sellable"), "/sale")
		return
	}
	h.carts.Add(sess.ID, product)
	c.Redirect(http.StatusSeeOther, "/sale")
}

// SetQuantity applies a quantity edit. Invalid input leaves the line as it
// was; zero removes it.
func (h *SaleHandler) SetQuantity(c *gin.Context) {
	sess := currentSession(c)
	h.carts.SetQuantityInput(sess.ID, c.Param("productId"), c.PostForm("quantity"))
	c.Redirect(http.StatusSeeOther, "/sale")
}

// RemoveItem drops a line from the cart.
func (h *SaleHandler) RemoveItem(c *gin.Context) {
	sess := currentSession(c)
	h.carts.Remove(sess.ID, c.Param("productId"))
	c.Redirect(http.StatusSeeOther, "/sale")
}

// SetNote stores the draft note shown on the final invoice.
func (h *SaleHandler) SetNote(c *gin.Context) {
	sess := currentSession(c)
	h.carts.SetNote(sess.ID, c.PostForm("note"))
	c.Redirect(http.StatusSeeOther, "/sale")
}

// Checkout submits the cart. Success lands on the printable receipt;
// failure returns to the sale page with the backend's message and the cart
// intact.
func (h *SaleHandler) Checkout(c *gin.Context) {
	sess := currentSession(c)

	invoice, err := h.checkout.Checkout(c.Request.Context(), sess.Token, sess.ID, c.PostForm("branchId"))
	if err != nil {
		h.failure(c, err, "/sale")
		return
	}
	c.Redirect(http.StatusSeeOther, "/sale/receipt/"+invoice.PublicID)
}

// Receipt renders the printable receipt for a completed sale.
func (h *SaleHandler) Receipt(c *gin.Context) {
	sess := currentSession(c)

	invoice, err := h.invoices.Get(c.Request.Context(), sess.Token, c.Param("publicId"))
	if err != nil {
		h.failure(c, err, "/sale")
		return
	}
	html, err := h.receipts.Render(invoice)
	if err != nil {
		h.failure(c, err, "/sale")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}
