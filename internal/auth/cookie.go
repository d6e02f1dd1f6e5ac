package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SessionCookieName is the cookie that carries the signed session token.
const SessionCookieName = "session_token"

// CookieManager attaches, reads, and clears the session cookie on a single
// request's response. It holds no per-request state, so one instance is
// shared safely across concurrent requests.
type CookieManager struct {
	maxAge int
	secure bool
}

// NewCookieManager configures the cookie attributes. secure should be true
// only in production deployments, where the site is served over TLS.
func NewCookieManager(maxAge int, secure bool) *CookieManager {
	return &CookieManager{maxAge: maxAge, secure: secure}
}

// Attach sets the session cookie on the outgoing response.
func (m *CookieManager) Attach(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, token, m.maxAge, "/", "", m.secure, true)
}

// Read extracts the session token from the incoming request, if present.
func (m *CookieManager) Read(c *gin.Context) (string, bool) {
	token, err := c.Cookie(SessionCookieName)
	if err != nil || token == "" {
		return "", false
	}
	return token, true
}

// Clear instructs the client to delete the session cookie.
func (m *CookieManager) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, "", -1, "/", "", m.secure, true)
}
