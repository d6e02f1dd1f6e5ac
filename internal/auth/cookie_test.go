package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, rec
}

func findSessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == SessionCookieName {
			return ck
		}
	}
	return nil
}

func TestCookieManagerAttach(t *testing.T) {
	t.Run("sets secure attributes", func(t *testing.T) {
		c, rec := testContext(t)
		NewCookieManager(604800, true).Attach(c, "tok-value")

		ck := findSessionCookie(t, rec)
		require.NotNil(t, ck)
		assert.Equal(t, "tok-value", ck.Value)
		assert.True(t, ck.HttpOnly)
		assert.True(t, ck.Secure)
		assert.Equal(t, "/", ck.Path)
		assert.Equal(t, 604800, ck.MaxAge)
	})

	t.Run("secure off outside production", func(t *testing.T) {
		c, rec := testContext(t)
		NewCookieManager(604800, false).Attach(c, "tok-value")

		ck := findSessionCookie(t, rec)
		require.NotNil(t, ck)
		assert.False(t, ck.Secure)
		assert.True(t, ck.HttpOnly)
	})
}

func TestCookieManagerRead(t *testing.T) {
	m := NewCookieManager(604800, false)

	t.Run("reads present cookie", func(t *testing.T) {
		c, _ := testContext(t)
		c.Request.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "tok-value"})

		token, ok := m.Read(c)
		assert.True(t, ok)
		assert.Equal(t, "tok-value", token)
	})

	t.Run("absent cookie reports not ok", func(t *testing.T) {
		c, _ := testContext(t)
		_, ok := m.Read(c)
		assert.False(t, ok)
	})
}

func TestCookieManagerClear(t *testing.T) {
	c, rec := testContext(t)
	NewCookieManager(604800, false).Clear(c)

	ck := findSessionCookie(t, rec)
	require.NotNil(t, ck)
	assert.Empty(t, ck.Value)
	assert.Negative(t, ck.MaxAge)
}
