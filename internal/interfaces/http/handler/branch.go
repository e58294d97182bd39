package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	inventoryapp "github.com/inventra/frontend/internal/application/inventory"
	"github.com/inventra/frontend/internal/domain/inventory"
)

// BranchHandler serves the branch management page. The create form only
// renders for managers; the backend rejects the call for anyone else.
type BranchHandler struct {
	BaseHandler
	branches *inventoryapp.BranchService
}

// NewBranchHandler creates a BranchHandler.
func NewBranchHandler(base BaseHandler, branches *inventoryapp.BranchService) *BranchHandler {
	return &BranchHandler{BaseHandler: base, branches: branches}
}

// RegisterRoutes mounts the branch routes.
func (h *BranchHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/branches", h.List)
	rg.POST("/branches", h.Create)
}

type branchesPage struct {
	View
	Branches []inventory.Branch
}

// List renders the branch table.
func (h *BranchHandler) List(c *gin.Context) {
	sess := currentSession(c)

	branches, err := h.branches.List(c.Request.Context(), sess.Token)
	if err != nil {
		h.failure(c, err, "/")
		return
	}
	h.render(c, http.StatusOK, "branches", branchesPage{
		View:     h.view(c, "Branches"),
		Branches: branches,
	})
}

type branchForm struct {
	Name    string `form:"name"`
	Address string `form:"address"`
	Phone   string `form:"phone"`
}

// Create handles the new-branch form.
func (h *BranchHandler) Create(c *gin.Context) {
	sess := currentSession(c)

	var form branchForm
	_ = c.ShouldBind(&form)

	_, err := h.branches.Create(c.Request.Context(), sess.Token, inventory.Branch{
		Name:    form.Name,
		Address: form.Address,
		Phone:   form.Phone,
	})
	if err != nil {
		h.failure(c, err, "/branches")
		return
	}
	h.flash(c, "success", "Branch created")
	c.Redirect(http.StatusSeeOther, "/branches")
}
