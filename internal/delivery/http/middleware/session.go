package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gdugdh24/mirrorfit-backend/internal/domain"
	"github.com/gin-gonic/gin"
)

// SessionIDKey is the gin context key holding the verified session ID.
const SessionIDKey = "session_id"

// TokenVerifier resolves a session token to a live session ID.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (string, error)
}

type SessionMiddleware struct {
	verifier   TokenVerifier
	cookieName string
}

func NewSessionMiddleware(verifier TokenVerifier, cookieName string) *SessionMiddleware {
	return &SessionMiddleware{
		verifier:   verifier,
		cookieName: cookieName,
	}
}

// RequireSession accepts the token from a Bearer header or the session cookie.
func (m *SessionMiddleware) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			token, _ = c.Cookie(m.cookieName)
		}
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "session token required",
			})
			return
		}

		id, err := m.verifier.VerifyToken(c.Request.Context(), token)
		if err != nil {
			msg := "invalid session token"
			if errors.Is(err, domain.ErrSessionNotFound) {
				msg = "session expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": msg,
			})
			return
		}

		c.Set(SessionIDKey, id)
		c.Next()
	}
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
