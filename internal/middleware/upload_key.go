package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"intake/internal/pkg/response"
)

// UploadKeyHeader carries the shared secret on ingest requests.
const UploadKeyHeader = "X-API-Key"

// UploadKeyAuth gates the ingest endpoint on a static shared secret. A
// missing or wrong key means no write happens at all.
func UploadKeyAuth(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if key == "" {
			logAuthFailure(c, http.StatusInternalServerError, "key_not_configured")
			response.AbortError(c, http.StatusInternalServerError, response.CodeInternal, "Upload key is not configured")
			return
		}

		supplied := c.GetHeader(UploadKeyHeader)
		if supplied == "" {
			logAuthFailure(c, http.StatusUnauthorized, "missing_key")
			response.AbortError(c, http.StatusUnauthorized, response.CodeUnauthorized, "API key required")
			return
		}

		if subtle.ConstantTimeCompare([]byte(supplied), []byte(key)) != 1 {
			logAuthFailure(c, http.StatusUnauthorized, "invalid_key")
			response.AbortError(c, http.StatusUnauthorized, response.CodeUnauthorized, "Invalid API key")
			return
		}

		c.Next()
	}
}
