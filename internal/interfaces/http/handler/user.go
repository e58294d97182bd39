package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	authapp "github.com/inventra/frontend/internal/application/auth"
	identityapp "github.com/inventra/frontend/internal/application/identity"
	"github.com/inventra/frontend/internal/domain/identity"
	"go.uber.org/zap"
)

// UserHandler serves the user administration page. The router mounts all
// of it behind the manager gate.
type UserHandler struct {
	BaseHandler
	users *identityapp.UserService
	auth  *authapp.Service
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(base BaseHandler, users *identityapp.UserService, auth *authapp.Service) *UserHandler {
	return &UserHandler{BaseHandler: base, users: users, auth: auth}
}

// RegisterRoutes mounts the user routes.
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/users", h.List)
	rg.POST("/users", h.Create)
	rg.POST("/users/:id", h.Update)
	rg.POST("/users/:id/reset-password", h.ResetPassword)
}

type usersPage struct {
	View
	Users []identity.User
}

// List renders the user table.
func (h *UserHandler) List(c *gin.Context) {
	sess := currentSession(c)

	users, err := h.users.List(c.Request.Context(), sess.Token)
	if err != nil {
		h.failure(c, err, "/")
		return
	}
	h.render(c, http.StatusOK, "users", usersPage{
		View:  h.view(c, "Users"),
		Users: users,
	})
}

type newUserForm struct {
	Name     string `form:"name"`
	Email    string `form:"email"`
	Password string `form:"password"`
	Role     string `form:"role"`
}

// Create handles the new-user form.
func (h *UserHandler) Create(c *gin.Context) {
	sess := currentSession(c)

	var form newUserForm
	_ = c.ShouldBind(&form)

	_, err := h.users.Create(c.Request.Context(), sess.Token, identityapp.NewUserInput{
		Name:     form.Name,
		Email:    form.Email,
		Password: form.Password,
		Role:     form.Role,
	})
	if err != nil {
		h.failure(c, err, "/users")
		return
	}
	h.flash(c, "success", "User created")
	c.Redirect(http.StatusSeeOther, "/users")
}

type updateUserForm struct {
	Name     string `form:"name"`
	Role     string `form:"role"`
	IsActive string `form:"isActive"`
}

// Update handles the edit form on a user row.
func (h *UserHandler) Update(c *gin.Context) {
	sess := currentSession(c)

	var form updateUserForm
	_ = c.ShouldBind(&form)

	input := identityapp.UpdateUserInput{Name: form.Name, Role: form.Role}
	if form.IsActive != "" {
		active := form.IsActive == "true" || form.IsActive == "on"
		input.IsActive = &active
	}

	if _, err := h.users.Update(c.Request.Context(), sess.Token, c.Param("id"), input); err != nil {
		h.failure(c, err, "/users")
		return
	}

	// Editing yourself must be visible immediately, not at next sign-in.
	if c.Param("id") == sess.User.ID {
		if _, err := h.auth.RefreshUser(c.Request.Context(), sess); err != nil {
			h.logger.Warn("failed to refresh session identity", zap.Error(err))
		}
	}
	h.flash(c, "success", "User updated")
	c.Redirect(http.StatusSeeOther, "/users")
}

// ResetPassword handles the password reset form on a user row.
func (h *UserHandler) ResetPassword(c *gin.Context) {
	sess := currentSession(c)

	err := h.users.ResetPassword(c.Request.Context(), sess.Token, c.Param("id"), c.PostForm("password"))
	if err != nil {
		h.failure(c, err, "/users")
		return
	}
	h.flash(c, "success", "Password reset")
	c.Redirect(http.StatusSeeOther, "/users")
}
