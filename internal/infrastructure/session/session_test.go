package session

import (
	"context"
	"testing"
	"time"

	"github.com/inventra/frontend/internal/domain/identity"
	"github.com/inventra/frontend/internal/domain/shared"
	"github.com/inventra/frontend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	defer store.Close()
	ctx := context.Background()

	sess := &Session{
		ID:    NewSessionID(),
		Token: "bearer-token",
		User:  identity.User{ID: "u1", Name: "Alice", Role: identity.RoleManager},
	}
	require.NoError(t, store.Put(ctx, sess))

	got, err := store.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "bearer-token", got.Token)
	assert.Equal(t, "Alice", got.User.Name)

	// The store hands out copies, not aliases.
	got.Token = "mutated"
	again, err := store.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "bearer-token", again.Token)
}

func TestMemoryStoreMissing(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	defer store.Close()

	_, err := store.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestMemoryStoreDelete(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	defer store.Close()
	ctx := context.Background()

	sess := &Session{ID: "s1", Token: "tok"}
	require.NoError(t, store.Put(ctx, sess))
	require.NoError(t, store.Delete(ctx, "s1"))

	_, err := store.Get(ctx, "s1")
	assert.ErrorIs(t, err, shared.ErrNotFound)

	// Deleting again is a no-op.
	assert.NoError(t, store.Delete(ctx, "s1"))
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore(10 * time.Millisecond)
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, &Session{ID: "s1", Token: "tok"}))
	time.Sleep(30 * time.Millisecond)

	_, err := store.Get(ctx, "s1")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestCookieCodecRoundTrip(t *testing.T) {
	codec := NewCookieCodec(config.SessionConfig{
		CookieName: "inventra_session",
		Secret:     "0123456789abcdef0123456789abcdef",
		TTL:        time.Hour,
	})

	sid := NewSessionID()
	value, err := codec.Encode(sid)
	require.NoError(t, err)

	got, err := codec.Decode(value)
	require.NoError(t, err)
	assert.Equal(t, sid, got)
}

func TestCookieCodecRejectsTampering(t *testing.T) {
	codec := NewCookieCodec(config.SessionConfig{
		CookieName: "inventra_session",
		Secret:     "0123456789abcdef0123456789abcdef",
		TTL:        time.Hour,
	})
	other := NewCookieCodec(config.SessionConfig{
		CookieName: "inventra_session",
		Secret:     "ffffffffffffffffffffffffffffffff",
		TTL:        time.Hour,
	})

	value, err := other.Encode("sid-1")
	require.NoError(t, err)

	_, err = codec.Decode(value)
	assert.Error(t, err, "a cookie signed with a different key must not verify")

	_, err = codec.Decode("garbage")
	assert.Error(t, err)
}

func TestCookieCodecExpiry(t *testing.T) {
	codec := NewCookieCodec(config.SessionConfig{
		CookieName: "inventra_session",
		Secret:     "0123456789abcdef0123456789abcdef",
		TTL:        -time.Minute,
	})

	value, err := codec.Encode("sid-1")
	require.NoError(t, err)

	_, err = codec.Decode(value)
	assert.Error(t, err, "an expired cookie must not verify")
}

func TestNewStoreFallsBackToMemory(t *testing.T) {
	// Port 1 is never a Redis server; the factory must fall back silently.
	store := NewStore(config.RedisConfig{Host: "127.0.0.1", Port: 1}, time.Hour, zap.NewNop())
	_, ok := store.(*MemoryStore)
	assert.True(t, ok)
	if ms, isMem := store.(*MemoryStore); isMem {
		ms.Close()
	}
}
