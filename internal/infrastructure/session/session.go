// Package session holds the per-browser session: the backend bearer token
// and the cached identity of the signed-in user. The browser only ever sees
// a signed session id; the token itself never leaves the server.
//
// Store failures are swallowed by callers into "no session": a broken store
// degrades to the signed-out state rather than failing the page.
package session

import (
	"context"
	"time"

	"github.com/inventra/frontend/internal/domain/identity"
)

// Session is one signed-in browser session.
type Session struct {
	ID        string        `json:"id"`
	Token     string        `json:"token"`
	User      identity.User `json:"user"`
	CreatedAt time.Time     `json:"createdAt"`
}

// Store persists sessions. Implementations expire entries after the
// configured TTL.
type Store interface {
	// Put saves or replaces a session.
	Put(ctx context.Context, s *Session) error
	// Get loads a session by id, returning shared.ErrNotFound for missing
	// or expired entries.
	Get(ctx context.Context, id string) (*Session, error)
	// Delete removes a session. Deleting an absent session is a no-op.
	Delete(ctx context.Context, id string) error
}
