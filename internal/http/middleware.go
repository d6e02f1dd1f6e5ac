package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const subjectKey = "auth.subject"

// sessionResolver attaches the caller's subject id to the request context
// when a valid session cookie is present. Anonymous requests pass through
// untouched; nothing here rejects.
func (h *Handler) sessionResolver() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := h.cookies.Read(c); ok {
			if subject, ok := h.auth.CurrentSubject(token); ok {
				c.Set(subjectKey, subject)
			}
		}
		c.Next()
	}
}

// requireSession aborts with 401 unless the request carries a valid session.
func (h *Handler) requireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := currentSubject(c); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.Next()
	}
}

// currentSubject returns the resolved subject id for the request, if any.
func currentSubject(c *gin.Context) (string, bool) {
	subject, ok := c.Get(subjectKey)
	if !ok {
		return "", false
	}
	id, ok := subject.(string)
	return id, ok && id != ""
}

// corsMiddleware reflects only allow-listed origins. Credentialed CORS with
// a reflected wildcard would let any site ride the session cookie.
func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		if origin != "" {
			allowed[origin] = struct{}{}
		}
	}
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if _, ok := allowed[origin]; ok {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
