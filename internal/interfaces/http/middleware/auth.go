package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/inventra/frontend/internal/application/auth"
	"github.com/inventra/frontend/internal/infrastructure/session"
	"go.uber.org/zap"
)

// Session context key.
const sessionKey = "session"

// GetSession returns the resolved session set by RequireSession, or nil.
func GetSession(c *gin.Context) *session.Session {
	if v, ok := c.Get(sessionKey); ok {
		if sess, ok := v.(*session.Session); ok {
			return sess
		}
	}
	return nil
}

// RequireSession gates every signed-in page. A request with no cookie, a
// cookie that fails verification, or a session id the store does not know
// is redirected to /login before anything touches the backend.
func RequireSession(authSvc *auth.Service, codec *session.CookieCodec, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(codec.CookieName())
		if err != nil {
			redirectToLogin(c)
			return
		}

		sessionID, err := codec.Decode(cookie)
		if err != nil {
			log.Debug("rejecting session cookie", zap.Error(err))
			codec.ClearCookie(c.Writer)
			redirectToLogin(c)
			return
		}

		sess, err := authSvc.Resolve(c.Request.Context(), sessionID)
		if err != nil {
			codec.ClearCookie(c.Writer)
			redirectToLogin(c)
			return
		}

		c.Set(sessionKey, sess)
		c.Next()
	}
}

// RequireManager gates manager-only pages. Must run after RequireSession.
// The backend re-checks the role on every API call; this only keeps the
// navigation honest.
func RequireManager() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := GetSession(c)
		if sess == nil {
			redirectToLogin(c)
			return
		}
		if !sess.User.IsManager() {
			c.Redirect(http.StatusSeeOther, "/")
			c.Abort()
			return
		}
		c.Next()
	}
}

func redirectToLogin(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, "/login")
	c.Abort()
}
