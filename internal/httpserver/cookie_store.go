package httpserver

import (
	"context"
	"encoding/base64"
	"net/http"
	"time"

	"storefront/internal/cart"
	"github.com/gin-gonic/gin"
)

const guestCartMaxAge = int(30 * 24 * time.Hour / time.Second)

// cookieStore keeps the guest cart snapshot in a cookie named after
// cart.GuestCartKey, base64-encoded so the JSON survives cookie value rules.
type cookieStore struct {
	c *gin.Context
}

func newCookieStore(c *gin.Context) cookieStore {
	return cookieStore{c: c}
}

func (s cookieStore) Load(_ context.Context) ([]byte, error) {
	raw, err := s.c.Cookie(cart.GuestCartKey)
	if err != nil {
		// http.ErrNoCookie: no guest cart yet
		return nil, nil
	}
	return base64.RawURLEncoding.DecodeString(raw)
}

func (s cookieStore) Save(_ context.Context, data []byte) error {
	s.c.SetSameSite(http.SameSiteLaxMode)
	s.c.SetCookie(cart.GuestCartKey, base64.RawURLEncoding.EncodeToString(data), guestCartMaxAge, "/", "", false, true)
	return nil
}

func (s cookieStore) Clear(_ context.Context) error {
	s.c.SetSameSite(http.SameSiteLaxMode)
	s.c.SetCookie(cart.GuestCartKey, "", -1, "/", "", false, true)
	return nil
}
