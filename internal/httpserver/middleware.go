package httpserver

import (
	"github.com/gin-gonic/gin"
	"storefront-api/internal/service/session"
)

const sessionTokenKey = "sessionToken"

// sessionMiddleware reads the cart session cookie, issuing a fresh token (and
// cookie) when none exists or the value does not validate. Every /api route
// downstream can rely on a token being present.
func sessionMiddleware(sessions sessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(session.CookieName)
		if err != nil || !sessions.Valid(token) {
			token = sessions.Issue()
			c.SetCookie(session.CookieName, token, sessions.TTLSeconds(), "/", "", false, true)
		}
		c.Set(sessionTokenKey, token)
		c.Next()
	}
}

func sessionToken(c *gin.Context) string {
	return c.GetString(sessionTokenKey)
}
