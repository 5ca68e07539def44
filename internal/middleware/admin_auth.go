package middleware

import (
	"crypto/subtle"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"intake/internal/config"
	"intake/internal/pkg/response"
)

// AdminAuth protects the admin surface with HTTP basic auth against an
// injected username -> credential map. Values are bcrypt hashes; a value that
// does not look like one is compared as plaintext in constant time (dev
// setups — config validation forbids those in prod).
func AdminAuth(credentials map[string]string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, pass, ok := c.Request.BasicAuth()
		if !ok {
			challenge(c, "missing_credentials")
			return
		}

		secret, known := credentials[user]
		if !known {
			// Burn a comparison so unknown users cost the same as bad
			// passwords.
			_ = bcrypt.CompareHashAndPassword(
				[]byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"),
				[]byte(pass),
			)
			challenge(c, "unknown_user")
			return
		}

		if !credentialMatches(secret, pass) {
			challenge(c, "bad_password")
			return
		}

		c.Set("admin_user", user)
		c.Next()
	}
}

func credentialMatches(secret, supplied string) bool {
	if config.IsBcryptHash(secret) {
		return bcrypt.CompareHashAndPassword([]byte(secret), []byte(supplied)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(secret), []byte(supplied)) == 1
}

func challenge(c *gin.Context, reason string) {
	logAuthFailure(c, http.StatusUnauthorized, reason)
	c.Header("WWW-Authenticate", `Basic realm="intake admin"`)
	response.AbortError(c, http.StatusUnauthorized, response.CodeUnauthorized, "Admin credentials required")
}

func logAuthFailure(c *gin.Context, status int, reason string) {
	log.Printf("auth_failure status=%d path=%s client_ip=%s request_id=%s reason=%s",
		status, c.Request.URL.Path, c.ClientIP(), RequestIDFrom(c), reason)
}
