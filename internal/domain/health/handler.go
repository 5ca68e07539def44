package health

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"intake/internal/database"
)

// Handler reports liveness: the database check runs a trivial query, the
// schema field reflects whether bootstrap migration succeeded at startup.
type Handler struct {
	db          *gorm.DB
	schemaReady func() bool
}

func NewHandler(db *gorm.DB, schemaReady func() bool) *Handler {
	return &Handler{db: db, schemaReady: schemaReady}
}

func (h *Handler) Check(c *gin.Context) {
	dbStatus := "up"
	if err := database.Ping(h.db.WithContext(c.Request.Context())); err != nil {
		dbStatus = "down"
	}

	schemaStatus := "ready"
	if h.schemaReady == nil || !h.schemaReady() {
		schemaStatus = "failed"
	}

	status := "ok"
	code := http.StatusOK
	if dbStatus == "down" || schemaStatus == "failed" {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status":   status,
		"database": dbStatus,
		"schema":   schemaStatus,
	})
}

func RegisterRoutes(r *gin.Engine, h *Handler) {
	r.GET("/health", h.Check)
}
