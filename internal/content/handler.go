package content

import (
	"errors"
	"log"
	"net/http"

	"portsanantonio/internal/middleware"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// --------------------------------------------------
// GET /api/footer
// --------------------------------------------------
func (h *Handler) GetFooter(c *gin.Context) {
	footer, err := h.service.GetFooter(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, footer)
}

// --------------------------------------------------
// Staff: PUT /api/admin/footer
// --------------------------------------------------
func (h *Handler) SaveFooter(c *gin.Context) {
	var footer Footer
	if err := c.ShouldBindJSON(&footer); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.service.SaveFooter(c.Request.Context(), &footer, middleware.CurrentEmail(c)); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, footer)
}

// --------------------------------------------------
// GET /api/legal/:type
// --------------------------------------------------
func (h *Handler) GetLegal(c *gin.Context) {
	t, err := ParseLegalType(c.Param("type"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	page, err := h.service.GetLegal(c.Request.Context(), t)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// --------------------------------------------------
// Staff: PUT /api/admin/legal/:type
// --------------------------------------------------
func (h *Handler) SaveLegal(c *gin.Context) {
	t, err := ParseLegalType(c.Param("type"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var page LegalPage
	if err := c.ShouldBindJSON(&page); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.service.SaveLegal(c.Request.Context(), t, &page, middleware.CurrentEmail(c)); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ErrInvalidContent), errors.Is(err, ErrUnknownLegalType):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Printf("[CONTENT] internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
