package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	AuthCookie = "auth-token"
	LoginPath  = "/login"
	HomePath   = "/"
)

// TokenValidator reports whether a non-empty cookie value is an acceptable
// session token. A nil validator accepts any non-empty value.
type TokenValidator func(token string) bool

var exemptPrefixes = []string{"/api/", "/static/"}

func isExempt(path string) bool {
	if path == "/favicon.ico" {
		return true
	}
	for _, p := range exemptPrefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

func hasSession(c *gin.Context, validate TokenValidator) bool {
	token, err := c.Cookie(AuthCookie)
	if err != nil || token == "" {
		return false
	}
	return validate == nil || validate(token)
}

// AuthGate guards page routes. API and static paths pass through; the login
// page bounces signed-in users home; everything else needs a session.
// With a nil validator any non-empty cookie is a session; validate adds the
// signature and expiry check on top of that presence check.
func AuthGate(validate TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if isExempt(path) {
			c.Next()
			return
		}

		signedIn := hasSession(c, validate)
		if path == LoginPath {
			if signedIn {
				c.Redirect(http.StatusTemporaryRedirect, HomePath)
				c.Abort()
				return
			}
			c.Next()
			return
		}

		if !signedIn {
			c.Redirect(http.StatusTemporaryRedirect, LoginPath)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireSession rejects API requests that carry no valid session cookie.
func RequireSession(validate TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !hasSession(c, validate) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		c.Next()
	}
}
