package record

import "github.com/gin-gonic/gin"

// RegisterRoutes wires the record endpoints. adminAuth guards the browse
// surface, uploadAuth guards ingest; neither is applied to anything else.
func RegisterRoutes(r *gin.Engine, h *Handler, adminAuth, uploadAuth gin.HandlerFunc) {
	admin := r.Group("/", adminAuth)
	{
		admin.GET("", h.List)
		admin.GET("/user/:id", h.Detail)
		admin.GET("/api/data/:id", h.RawData)
		admin.GET("/screenshot/:id", h.Screenshot)
		admin.POST("/api/cleanup", h.Cleanup)
	}

	r.POST("/api/upload", uploadAuth, h.Upload)
}
