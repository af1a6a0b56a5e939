package analytics

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// MaxBatchBytes caps the ingest request body.
const MaxBatchBytes = 256 << 10

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// --------------------------------------------------
// POST /api/analytics/batch
// Accepts any content type: navigator.sendBeacon posts text/plain.
// --------------------------------------------------
func (h *Handler) IngestBatch(c *gin.Context) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, MaxBatchBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "batch too large"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read body"})
		return
	}

	var batch Batch
	if err := json.Unmarshal(body, &batch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	accepted, err := h.service.Ingest(c.Request.Context(), &batch)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"accepted": accepted})
}

// --------------------------------------------------
// Staff: GET /api/admin/analytics/summary?from=YYYY-MM-DD&to=YYYY-MM-DD
// --------------------------------------------------
func (h *Handler) Summary(c *gin.Context) {
	from, to := h.service.DefaultRange()

	if v := c.Query("from"); v != "" {
		t, err := time.Parse(dayLayout, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "from must be YYYY-MM-DD"})
			return
		}
		from = t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse(dayLayout, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "to must be YYYY-MM-DD"})
			return
		}
		to = t
	}

	summary, err := h.service.Summary(c.Request.Context(), from, to)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidBatch), errors.Is(err, ErrInvalidRange):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Printf("[ANALYTICS] internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
