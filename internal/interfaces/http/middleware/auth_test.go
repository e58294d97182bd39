package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/inventra/frontend/internal/application/auth"
	"github.com/inventra/frontend/internal/domain/identity"
	"github.com/inventra/frontend/internal/infrastructure/apiclient"
	"github.com/inventra/frontend/internal/infrastructure/config"
	"github.com/inventra/frontend/internal/infrastructure/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fixture struct {
	engine       *gin.Engine
	store        *session.MemoryStore
	codec        *session.CookieCodec
	backendCalls *atomic.Int64
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	var backendCalls atomic.Int64
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		backendCalls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	t.Cleanup(backend.Close)

	client, err := apiclient.New(apiclient.Config{BaseURL: backend.URL}, zap.NewNop())
	require.NoError(t, err)

	store := session.NewMemoryStore(time.Hour)
	t.Cleanup(store.Close)
	codec := session.NewCookieCodec(config.SessionConfig{
		CookieName: "inventra_session",
		Secret:     "0123456789abcdef0123456789abcdef",
		TTL:        time.Hour,
	})
	authSvc := auth.NewService(client, store, zap.NewNop())

	engine := gin.New()
	protected := engine.Group("/", RequireSession(authSvc, codec, zap.NewNop()))
	protected.GET("/dashboard", func(c *gin.Context) {
		sess := GetSession(c)
		require.NotNil(t, sess)
		c.String(http.StatusOK, "hello "+sess.User.Name)
	})
	manager := protected.Group("/", RequireManager())
	manager.GET("/reports", func(c *gin.Context) {
		c.String(http.StatusOK, "reports")
	})

	return &fixture{engine: engine, store: store, codec: codec, backendCalls: &backendCalls}
}

func (f *fixture) signIn(t *testing.T, role string) *http.Cookie {
	t.Helper()
	sess := &session.Session{
		ID:        session.NewSessionID(),
		Token:     "tok-123",
		User:      identity.User{ID: "u1", Name: "Alex", Role: role, IsActive: true},
		CreatedAt: time.Now(),
	}
	require.NoError(t, f.store.Put(context.Background(), sess))
	value, err := f.codec.Encode(sess.ID)
	require.NoError(t, err)
	return &http.Cookie{Name: "inventra_session", Value: value}
}

func TestRequireSessionRedirectsWithoutBackendCall(t *testing.T) {
	f := newFixture(t)

	cases := []struct {
		name   string
		cookie *http.Cookie
	}{
		{"no cookie", nil},
		{"garbage cookie", &http.Cookie{Name: "inventra_session", Value: "not-a-token"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
			if tc.cookie != nil {
				req.AddCookie(tc.cookie)
			}
			rec := httptest.NewRecorder()
			f.engine.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusSeeOther, rec.Code)
			assert.Equal(t, "/login", rec.Header().Get("Location"))
			assert.Zero(t, f.backendCalls.Load())
		})
	}
}

func TestRequireSessionUnknownSessionID(t *testing.T) {
	f := newFixture(t)

	// Valid signature over a session id the store never saw.
	value, err := f.codec.Encode(session.NewSessionID())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: "inventra_session", Value: value})
	rec := httptest.NewRecorder()
	f.engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
	assert.Zero(t, f.backendCalls.Load())
}

func TestRequireSessionPassesThrough(t *testing.T) {
	f := newFixture(t)
	cookie := f.signIn(t, identity.RoleCashier)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	f.engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Alex")
}

func TestRequireManager(t *testing.T) {
	f := newFixture(t)

	t.Run("cashier redirected home", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/reports", nil)
		req.AddCookie(f.signIn(t, identity.RoleCashier))
		rec := httptest.NewRecorder()
		f.engine.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/", rec.Header().Get("Location"))
	})

	t.Run("manager allowed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/reports", nil)
		req.AddCookie(f.signIn(t, identity.RoleManager))
		rec := httptest.NewRecorder()
		f.engine.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
