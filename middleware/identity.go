package middleware

import (
	"context"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tebele-dev/tailor-made-couture/models"
	"github.com/tebele-dev/tailor-made-couture/services"
)

const (
	TokenCookie      = "token"
	userContextKey   = "user"
	sessionIDKey     = "session_id"
	bearerPrefix     = "Bearer "
	consentCookieAge = int(services.ConsentMaxAge / time.Second)
)

// IdentityResolver turns a request token into the signed-in user.
type IdentityResolver interface {
	ParseToken(token string) (*services.SessionClaims, error)
	Hydrate(ctx context.Context, sessionID string) *models.User
}

// Identity attaches the session user to the context. Requests without a
// valid token continue as anonymous visitors.
func Identity(resolver IdentityResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			if v, err := c.Cookie(TokenCookie); err == nil {
				token = v
			}
		}
		if token == "" {
			c.Next()
			return
		}

		claims, err := resolver.ParseToken(token)
		if err != nil {
			c.Next()
			return
		}
		if user := resolver.Hydrate(c.Request.Context(), claims.SessionID); user.IsAuthenticated() {
			c.Set(userContextKey, user)
			c.Set(sessionIDKey, claims.SessionID)
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if !strings.HasPrefix(h, bearerPrefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(h, bearerPrefix))
}

// CurrentUser returns the signed-in user, or nil for an anonymous visitor.
func CurrentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(userContextKey); ok {
		if u, ok := v.(*models.User); ok {
			return u
		}
	}
	return nil
}

func SessionID(c *gin.Context) string {
	return c.GetString(sessionIDKey)
}

// SetUser stores the identity directly. Tests and login handlers use it.
func SetUser(c *gin.Context, user *models.User, sessionID string) {
	c.Set(userContextKey, user)
	c.Set(sessionIDKey, sessionID)
}

type ginCookieJar struct {
	c *gin.Context
}

// Cookies adapts the request cookies for the consent service.
func Cookies(c *gin.Context) services.CookieJar {
	return ginCookieJar{c: c}
}

func (j ginCookieJar) Get(name string) (string, bool) {
	v, err := j.c.Cookie(name)
	if err != nil {
		return "", false
	}
	return v, true
}

func (j ginCookieJar) Set(name, value string) {
	j.c.SetCookie(name, value, consentCookieAge, "/", "", false, false)
}
