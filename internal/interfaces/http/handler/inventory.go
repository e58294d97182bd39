package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	inventoryapp "github.com/inventra/frontend/internal/application/inventory"
	"github.com/inventra/frontend/internal/application/refdata"
	"github.com/inventra/frontend/internal/domain/catalog"
	"github.com/inventra/frontend/internal/domain/inventory"
)

// InventoryHandler serves the stock levels page, the movement form, and
// the transaction history page.
type InventoryHandler struct {
	BaseHandler
	inventory *inventoryapp.Service
	branches  *inventoryapp.BranchService
	refdata   *refdata.Provider
}

// NewInventoryHandler creates an InventoryHandler.
func NewInventoryHandler(base BaseHandler, inv *inventoryapp.Service, branches *inventoryapp.BranchService, ref *refdata.Provider) *InventoryHandler {
	return &InventoryHandler{BaseHandler: base, inventory: inv, branches: branches, refdata: ref}
}

// RegisterRoutes mounts the inventory routes.
func (h *InventoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/inventory", h.Levels)
	rg.POST("/inventory/movements", h.Movement)
	rg.GET("/inventory/transactions", h.Transactions)
}

type inventoryPage struct {
	View
	Branches []inventory.Branch
	Products []catalog.Product
	Levels   []inventory.StockLevel
	BranchID string
	Search   string
}

// Levels renders stock levels for the selected branch. With no branch
// selected only the selector renders; no backend inventory call is made.
func (h *InventoryHandler) Levels(c *gin.Context) {
	sess := currentSession(c)
	branchID := c.Query("branchId")
	search := c.Query("q")

	branches, err := h.branches.List(c.Request.Context(), sess.Token)
	if err != nil {
		h.failure(c, err, "/")
		return
	}
	products, err := h.refdata.Products(c.Request.Context(), sess.Token)
	if err != nil {
		h.failure(c, err, "/")
		return
	}

	page := inventoryPage{
		View:     h.view(c, "Inventory"),
		Branches: branches,
		Products: products,
		BranchID: branchID,
		Search:   search,
	}
	if branchID != "" {
		levels, err := h.inventory.Levels(c.Request.Context(), sess.Token, branchID, search)
		if err != nil {
			h.failure(c, err, "/inventory")
			return
		}
		page.Levels = levels
	}
	h.render(c, http.StatusOK, "inventory", page)
}

type movementForm struct {
	Type      string `form:"type"`
	BranchID  string `form:"branchId"`
	ProductID string `form:"productId"`
	Quantity  string `form:"quantity"`
	Note      string `form:"note"`
}

// Movement handles the receive/adjust/sale/damage form.
func (h *InventoryHandler) Movement(c *gin.Context) {
	sess := currentSession(c)

	var form movementForm
	_ = c.ShouldBind(&form)

	back := "/inventory"
	if form.BranchID != "" {
		back = "/inventory?branchId=" + form.BranchID
	}

	qty, err := strconv.Atoi(form.Quantity)
	if err != nil {
		h.failure(c, errInvalidForm("Quantity must be a positive integer"), back)
		return
	}

	_, err = h.inventory.Movement(c.Request.Context(), sess.Token, form.Type, inventory.MovementInput{
		BranchID:  form.BranchID,
		ProductID: form.ProductID,
		Quantity:  qty,
		Note:      form.Note,
	})
	if err != nil {
		h.failure(c, err, back)
		return
	}
	h.flash(c, "success", "Stock movement recorded")
	c.Redirect(http.StatusSeeOther, back)
}

type transactionsPage struct {
	View
	Branches     []inventory.Branch
	Products     []catalog.Product
	Transactions []inventory.Transaction
	BranchID     string
	ProductID    string
}

// Transactions renders the movement history for the selected branch.
func (h *InventoryHandler) Transactions(c *gin.Context) {
	sess := currentSession(c)
	branchID := c.Query("branchId")
	productID := c.Query("productId")

	branches, err := h.branches.List(c.Request.Context(), sess.Token)
	if err != nil {
		h.failure(c, err, "/")
		return
	}
	products, err := h.refdata.Products(c.Request.Context(), sess.Token)
	if err != nil {
		h.failure(c, err, "/")
		return
	}

	page := transactionsPage{
		View:      h.view(c, "Stock history"),
		Branches:  branches,
		Products:  products,
		BranchID:  branchID,
		ProductID: productID,
	}
	if branchID != "" {
		txns, err := h.inventory.Transactions(c.Request.Context(), sess.Token, branchID, productID)
		if err != nil {
			h.failure(c, err, "/inventory/transactions")
			return
		}
		page.Transactions = txns
	}
	h.render(c, http.StatusOK, "transactions", page)
}
