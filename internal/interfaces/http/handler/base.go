// Package handler renders the HTML pages of the Inventra frontend. Every
// handler reads the resolved session from the request context, forwards the
// work to an application service with the session's token, and renders the
// result; no business rule lives here.
package handler

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/inventra/frontend/internal/domain/identity"
	"github.com/inventra/frontend/internal/domain/shared"
	"github.com/inventra/frontend/internal/infrastructure/apiclient"
	"github.com/inventra/frontend/internal/infrastructure/session"
	"github.com/inventra/frontend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

const flashCookie = "inventra_flash"

// Flash is a one-shot message shown on the next rendered page.
type Flash struct {
	Kind    string
	Message string
}

// View carries the fields every page template reads.
type View struct {
	Title    string
	Path     string
	SignedIn bool
	User     identity.User
	Flash    *Flash
}

// BaseHandler provides rendering, flash, and error plumbing shared by all
// page handlers.
type BaseHandler struct {
	renderer *PageRenderer
	logger   *zap.Logger
}

// NewBaseHandler creates the shared handler base.
func NewBaseHandler(renderer *PageRenderer, log *zap.Logger) BaseHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return BaseHandler{renderer: renderer, logger: log}
}

func currentSession(c *gin.Context) *session.Session {
	return middleware.GetSession(c)
}

// view builds the common template fields from the request, consuming any
// pending flash message.
func (h *BaseHandler) view(c *gin.Context, title string) View {
	v := View{
		Title: title,
		Path:  c.Request.URL.Path,
		Flash: h.popFlash(c),
	}
	if sess := currentSession(c); sess != nil {
		v.SignedIn = true
		v.User = sess.User
	}
	return v
}

// render executes a page template. A template failure is a programming
// error; it logs and degrades to a plain 500.
func (h *BaseHandler) render(c *gin.Context, status int, page string, data any) {
	c.Status(status)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := h.renderer.Render(c.Writer, page, data); err != nil {
		h.logger.Error("page render failed", zap.String("page", page), zap.Error(err))
		c.String(http.StatusInternalServerError, "internal error")
	}
}

// flash queues a one-shot message for the next page load.
func (h *BaseHandler) flash(c *gin.Context, kind, message string) {
	c.SetCookie(flashCookie, url.QueryEscape(kind+"|"+message), 60, "/", "", false, true)
}

func (h *BaseHandler) popFlash(c *gin.Context) *Flash {
	raw, err := c.Cookie(flashCookie)
	if err != nil || raw == "" {
		return nil
	}
	c.SetCookie(flashCookie, "", -1, "/", "", false, true)

	decoded, err := url.QueryUnescape(raw)
	if err != nil {
		return nil
	}
	kind, message, ok := strings.Cut(decoded, "|")
	if !ok {
		return nil
	}
	return &Flash{Kind: kind, Message: message}
}

// failure surfaces an error as a flash message and sends the user back to
// fallback. Backend-provided messages pass through verbatim.
func (h *BaseHandler) failure(c *gin.Context, err error, fallback string) {
	h.flash(c, "error", errorMessage(err))
	c.Redirect(http.StatusSeeOther, fallback)
}

// errInvalidForm wraps a form-level validation failure so failure renders
// the message verbatim.
func errInvalidForm(message string) error {
	return shared.NewDomainError("INVALID_INPUT", message)
}

func errorMessage(err error) string {
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Message
	}
	return "Something went wrong. Please try again."
}
