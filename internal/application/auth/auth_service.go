// Package auth signs users in against the Inventra backend and manages
// their browser sessions.
package auth

import (
	"context"
	"strings"
	"time"

	"github.com/inventra/frontend/internal/domain/identity"
	"github.com/inventra/frontend/internal/domain/shared"
	"github.com/inventra/frontend/internal/infrastructure/apiclient"
	"github.com/inventra/frontend/internal/infrastructure/session"
	"go.uber.org/zap"
)

// Service handles login, logout, and session resolution.
type Service struct {
	api      *apiclient.Client
	sessions session.Store
	logger   *zap.Logger
}

// NewService creates an auth service.
func NewService(api *apiclient.Client, sessions session.Store, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{api: api, sessions: sessions, logger: log}
}

type loginResponse struct {
	Token string `json:"token"`
}

type meResponse struct {
	User identity.User `json:"user"`
}

// Login exchanges credentials for a backend token, resolves the signed-in
// identity, and opens a session. Empty credentials are rejected before any
// network call.
func (s *Service) Login(ctx context.Context, email, password string) (*session.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Email and password are required")
	}

	resp, err := s.api.Post(ctx, "", "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}
	login, err := apiclient.Decode[loginResponse](resp)
	if err != nil {
		return nil, err
	}
	if login.Token == "" {
		return nil, shared.NewDomainError("LOGIN_FAILED", "Backend returned no token")
	}

	user, err := s.fetchUser(ctx, login.Token)
	if err != nil {
		return nil, err
	}

	sess := &session.Session{
		ID:        session.NewSessionID(),
		Token:     login.Token,
		User:      user,
		CreatedAt: time.Now(),
	}
	if err := s.sessions.Put(ctx, sess); err != nil {
		// A broken session store degrades to signed-out, never a crash.
		s.logger.Warn("failed to persist session", zap.Error(err))
		return nil, shared.ErrSessionUnavailable
	}

	s.logger.Info("user signed in",
		zap.String("user_id", user.ID),
		zap.String("role", user.Role),
	)
	return sess, nil
}

// Logout drops the session. Errors are swallowed; a failed delete leaves
// an orphan entry that the store TTL reclaims.
func (s *Service) Logout(ctx context.Context, sessionID string) {
	if sessionID == "" {
		return
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		s.logger.Warn("failed to delete session", zap.Error(err))
	}
}

// Resolve loads the session for a verified session id. Store failures and
// missing entries both come back as ErrUnauthorized so callers treat them
// uniformly as "not signed in".
func (s *Service) Resolve(ctx context.Context, sessionID string) (*session.Session, error) {
	if sessionID == "" {
		return nil, shared.ErrUnauthorized
	}
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, shared.ErrUnauthorized
	}
	return sess, nil
}

// RefreshUser re-fetches the signed-in identity and updates the cached copy.
// Used when a page needs identity fresher than the login-time snapshot.
func (s *Service) RefreshUser(ctx context.Context, sess *session.Session) (identity.User, error) {
	user, err := s.fetchUser(ctx, sess.Token)
	if err != nil {
		return identity.User{}, err
	}
	sess.User = user
	if err := s.sessions.Put(ctx, sess); err != nil {
		s.logger.Warn("failed to update session", zap.Error(err))
	}
	return user, nil
}

func (s *Service) fetchUser(ctx context.Context, token string) (identity.User, error) {
	resp, err := s.api.Get(ctx, token, "/auth/me", nil)
	if err != nil {
		return identity.User{}, err
	}
	me, err := apiclient.Decode[meResponse](resp)
	if err != nil {
		return identity.User{}, err
	}
	return me.User, nil
}
