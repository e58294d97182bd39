package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/inventra/frontend/internal/application/catalog"
	"github.com/inventra/frontend/internal/domain/catalog"
)

// CategoryHandler serves the category management page.
type CategoryHandler struct {
	BaseHandler
	categories *catalogapp.CategoryService
}

// NewCategoryHandler creates a CategoryHandler.
func NewCategoryHandler(base BaseHandler, categories *catalogapp.CategoryService) *CategoryHandler {
	return &CategoryHandler{BaseHandler: base, categories: categories}
}

// RegisterRoutes mounts the category routes.
func (h *CategoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/categories", h.List)
	rg.POST("/categories", h.Create)
}

type categoriesPage struct {
	View
	Categories []catalog.Category
}

// List renders the category table.
func (h *CategoryHandler) List(c *gin.Context) {
	sess := currentSession(c)

	categories, err := h.categories.List(c.Request.Context(), sess.Token)
	if err != nil {
		h.failure(c, err, "/")
		return
	}
	h.render(c, http.StatusOK, "categories", categoriesPage{
		View:       h.view(c, "Categories"),
		Categories: categories,
	})
}

// Create handles the new-category form.
func (h *CategoryHandler) Create(c *gin.Context) {
	sess := currentSession(c)

	name := c.PostForm("name")
	if _, err := h.categories.Create(c.Request.Context(), sess.Token, name); err != nil {
		h.failure(c, err, "/categories")
		return
	}
	h.flash(c, "success", "Category created")
	c.Redirect(http.StatusSeeOther, "/categories")
}
