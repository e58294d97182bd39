package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	authapp "github.com/inventra/frontend/internal/application/auth"
	"github.com/inventra/frontend/internal/application/refdata"
	saleapp "github.com/inventra/frontend/internal/application/sale"
	"github.com/inventra/frontend/internal/infrastructure/session"
	"github.com/inventra/frontend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

// AuthHandler serves the login page and the login/logout actions.
type AuthHandler struct {
	BaseHandler
	auth    *authapp.Service
	carts   *saleapp.CartStore
	refdata *refdata.Provider
	codec   *session.CookieCodec
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(base BaseHandler, auth *authapp.Service, carts *saleapp.CartStore, ref *refdata.Provider, codec *session.CookieCodec) *AuthHandler {
	return &AuthHandler{BaseHandler: base, auth: auth, carts: carts, refdata: ref, codec: codec}
}

// RegisterRoutes implements router.RouteRegistrar. Login routes carry no
// session middleware; logout works with or without a valid session.
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/login", h.LoginPage)
	rg.POST("/login", h.Login)
	rg.POST("/logout", h.Logout)
}

var _ router.RouteRegistrar = (*AuthHandler)(nil)

type loginForm struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

type loginPage struct {
	View
	Email string
	Error string
}

// LoginPage renders the sign-in form.
func (h *AuthHandler) LoginPage(c *gin.Context) {
	h.render(c, http.StatusOK, "login", loginPage{View: h.view(c, "Sign in")})
}

// Login exchanges the submitted credentials for a session. On failure the
// form re-renders with the backend's message and the email preserved.
func (h *AuthHandler) Login(c *gin.Context) {
	var form loginForm
	_ = c.ShouldBind(&form)

	sess, err := h.auth.Login(c.Request.Context(), form.Email, form.Password)
	if err != nil {
		h.render(c, http.StatusOK, "login", loginPage{
			View:  h.view(c, "Sign in"),
			Email: form.Email,
			Error: errorMessage(err),
		})
		return
	}

	value, err := h.codec.Encode(sess.ID)
	if err != nil {
		h.logger.Error("failed to sign session cookie", zap.Error(err))
		h.render(c, http.StatusOK, "login", loginPage{
			View:  h.view(c, "Sign in"),
			Email: form.Email,
			Error: "Could not start a session. Please try again.",
		})
		return
	}
	h.codec.SetCookie(c.Writer, value)
	c.Redirect(http.StatusSeeOther, "/")
}

// Logout drops the session, its cart, and the shared reference cache, then
// clears the cookie. Safe to call signed out.
func (h *AuthHandler) Logout(c *gin.Context) {
	if cookie, err := c.Cookie(h.codec.CookieName()); err == nil {
		if sessionID, err := h.codec.Decode(cookie); err == nil {
			h.auth.Logout(c.Request.Context(), sessionID)
			h.carts.Clear(sessionID)
		}
	}
	h.refdata.Invalidate()
	h.codec.ClearCookie(c.Writer)
	c.Redirect(http.StatusSeeOther, "/login")
}
