// README: Session middleware; resolves the caller's session key and profile.
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"tripplanner/internal/modules/session"
)

const (
	sessionKeyHeader = "X-Session-Key"

	ctxSessionKey = "sessionKey"
	ctxProfile    = "sessionProfile"
)

// Session attaches the caller's session key and, when signed in, the stored
// profile to the request context. It never rejects: handlers decide whether a
// signed-out caller is acceptable.
func Session(sessions *session.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(sessionKeyHeader)
		if key == "" {
			if auth := c.GetHeader("Authorization"); strings.HasPrefix(auth, "Bearer ") {
				key = strings.TrimPrefix(auth, "Bearer ")
			}
		}
		if key == "" {
			c.Next()
			return
		}
		c.Set(ctxSessionKey, key)

		if profile, err := sessions.Current(c.Request.Context(), key); err == nil {
			c.Set(ctxProfile, profile)
		}
		c.Next()
	}
}

// SessionKey returns the caller's session key, if any.
func SessionKey(c *gin.Context) (string, bool) {
	v, ok := c.Get(ctxSessionKey)
	if !ok {
		return "", false
	}
	key, ok := v.(string)
	return key, ok
}

// Profile returns the signed-in profile, if any.
func Profile(c *gin.Context) (session.UserProfile, bool) {
	v, ok := c.Get(ctxProfile)
	if !ok {
		return session.UserProfile{}, false
	}
	p, ok := v.(session.UserProfile)
	return p, ok
}
