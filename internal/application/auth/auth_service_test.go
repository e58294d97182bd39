package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/inventra/frontend/internal/domain/shared"
	"github.com/inventra/frontend/internal/infrastructure/apiclient"
	"github.com/inventra/frontend/internal/infrastructure/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newBackend(t *testing.T, calls *atomic.Int64) http.Handler {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token":"tok-123"}`))
	})
	mux.HandleFunc("GET /auth/me", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		require.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"user":{"id":"u1","name":"Alex","email":"alex@shop.test","role":"MANAGER","isActive":true}}`))
	})
	return mux
}

func newService(t *testing.T, handler http.Handler) (*Service, *session.MemoryStore, *atomic.Int64) {
	t.Helper()
	var calls atomic.Int64
	if handler == nil {
		handler = newBackend(t, &calls)
	}
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client, err := apiclient.New(apiclient.Config{BaseURL: srv.URL}, zap.NewNop())
	require.NoError(t, err)
	store := session.NewMemoryStore(time.Hour)
	t.Cleanup(store.Close)
	return NewService(client, store, zap.NewNop()), store, &calls
}

func TestLogin(t *testing.T) {
	svc, store, _ := newService(t, nil)

	sess, err := svc.Login(context.Background(), "alex@shop.test", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "tok-123", sess.Token)
	assert.Equal(t, "u1", sess.User.ID)
	assert.Equal(t, "MANAGER", sess.User.Role)
	assert.NotEmpty(t, sess.ID)

	stored, err := store.Get(context.Background(), sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sess.Token, stored.Token)
}

func TestLoginEmptyCredentialsSkipsNetwork(t *testing.T) {
	svc, _, calls := newService(t, nil)

	for _, tc := range []struct{ email, password string }{
		{"", "secret123"},
		{"alex@shop.test", ""},
		{"   ", "secret123"},
	} {
		_, err := svc.Login(context.Background(), tc.email, tc.password)
		require.Error(t, err)
		var derr *shared.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, "INVALID_CREDENTIALS", derr.Code)
	}
	assert.Zero(t, calls.Load())
}

func TestLoginBackendRejection(t *testing.T) {
	svc, _, _ := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Invalid email or password"}`))
	}))

	_, err := svc.Login(context.Background(), "alex@shop.test", "wrong")
	var apiErr *apiclient.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiclient.IsUnauthorized(err))
	assert.Equal(t, "Invalid email or password", apiErr.Message)
}

func TestResolve(t *testing.T) {
	svc, _, _ := newService(t, nil)

	sess, err := svc.Login(context.Background(), "alex@shop.test", "secret123")
	require.NoError(t, err)

	t.Run("known session", func(t *testing.T) {
		got, err := svc.Resolve(context.Background(), sess.ID)
		require.NoError(t, err)
		assert.Equal(t, sess.Token, got.Token)
	})

	t.Run("unknown session", func(t *testing.T) {
		_, err := svc.Resolve(context.Background(), "nope")
		assert.ErrorIs(t, err, shared.ErrUnauthorized)
	})

	t.Run("empty id", func(t *testing.T) {
		_, err := svc.Resolve(context.Background(), "")
		assert.ErrorIs(t, err, shared.ErrUnauthorized)
	})
}

func TestLogout(t *testing.T) {
	svc, _, _ := newService(t, nil)

	sess, err := svc.Login(context.Background(), "alex@shop.test", "secret123")
	require.NoError(t, err)

	svc.Logout(context.Background(), sess.ID)

	_, err = svc.Resolve(context.Background(), sess.ID)
	assert.ErrorIs(t, err, shared.ErrUnauthorized)

	// Logging out twice or with no session must not panic.
	svc.Logout(context.Background(), sess.ID)
	svc.Logout(context.Background(), "")
}
