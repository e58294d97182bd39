package session

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/inventra/frontend/internal/infrastructure/config"
)

const cookieIssuer = "inventra-frontend"

// CookieCodec signs session ids into the browser cookie and verifies them
// back. The cookie value is an HMAC-signed JWT carrying only the session id;
// a tampered or expired cookie decodes to "no session".
type CookieCodec struct {
	cfg    config.SessionConfig
	secret []byte
}

type sessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// NewCookieCodec creates a codec. When no secret is configured (development)
// a random per-process key is generated, which invalidates cookies across
// restarts.
func NewCookieCodec(cfg config.SessionConfig) *CookieCodec {
	secret := []byte(cfg.Secret)
	if len(secret) == 0 {
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			secret = []byte(hex.EncodeToString([]byte(time.Now().String())))
		}
	}
	return &CookieCodec{cfg: cfg, secret: secret}
}

// NewSessionID generates a fresh session id.
func NewSessionID() string {
	return uuid.NewString()
}

// Encode signs a session id into a cookie value.
func (c *CookieCodec) Encode(sessionID string) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cookieIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.cfg.TTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// Decode verifies a cookie value and returns the session id it carries.
func (c *CookieCodec) Decode(value string) (string, error) {
	token, err := jwt.ParseWithClaims(value, &sessionClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return c.secret, nil
	}, jwt.WithIssuer(cookieIssuer))
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(*sessionClaims)
	if !ok || claims.SessionID == "" {
		return "", fmt.Errorf("cookie carries no session id")
	}
	return claims.SessionID, nil
}

// SetCookie writes the signed session cookie on the response.
func (c *CookieCodec) SetCookie(w http.ResponseWriter, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.cfg.CookieName,
		Value:    value,
		Domain:   c.cfg.CookieDomain,
		Path:     "/",
		MaxAge:   int(c.cfg.TTL.Seconds()),
		HttpOnly: true,
		Secure:   c.cfg.Secure,
		SameSite: sameSite(c.cfg.SameSite),
	})
}

// ClearCookie expires the session cookie on the response.
func (c *CookieCodec) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.cfg.CookieName,
		Value:    "",
		Domain:   c.cfg.CookieDomain,
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.cfg.Secure,
		SameSite: sameSite(c.cfg.SameSite),
	})
}

// CookieName returns the configured cookie name.
func (c *CookieCodec) CookieName() string {
	return c.cfg.CookieName
}

func sameSite(mode string) http.SameSite {
	switch mode {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
