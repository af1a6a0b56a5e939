package jobs

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

//
// --------------------------------------------------
// GET /api/jobs
// --------------------------------------------------
//

func (h *Handler) ListOpen() gin.HandlerFunc {
	return func(c *gin.Context) {
		postings, err := h.service.ListOpen(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"jobs": postings})
	}
}

//
// --------------------------------------------------
// GET /api/jobs/:id
// --------------------------------------------------
//

func (h *Handler) GetOpen() gin.HandlerFunc {
	return func(c *gin.Context) {
		posting, err := h.service.GetOpen(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}

		c.JSON(http.StatusOK, posting)
	}
}

//
// --------------------------------------------------
// Staff: GET /api/admin/jobs
// --------------------------------------------------
//

func (h *Handler) ListAll() gin.HandlerFunc {
	return func(c *gin.Context) {
		postings, err := h.service.ListAll(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"jobs": postings})
	}
}

//
// --------------------------------------------------
// Staff: POST /api/admin/jobs
// --------------------------------------------------
//

func (h *Handler) Create() gin.HandlerFunc {
	return func(c *gin.Context) {
		var posting Posting
		if err := c.ShouldBindJSON(&posting); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		if err := h.service.Create(c.Request.Context(), &posting); err != nil {
			writeError(c, err)
			return
		}

		c.JSON(http.StatusCreated, posting)
	}
}

//
// --------------------------------------------------
// Staff: PUT /api/admin/jobs/:id
// --------------------------------------------------
//

func (h *Handler) Update() gin.HandlerFunc {
	return func(c *gin.Context) {
		var posting Posting
		if err := c.ShouldBindJSON(&posting); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		if err := h.service.Update(c.Request.Context(), c.Param("id"), &posting); err != nil {
			writeError(c, err)
			return
		}

		c.JSON(http.StatusOK, posting)
	}
}

//
// --------------------------------------------------
// Staff: DELETE /api/admin/jobs/:id
// --------------------------------------------------
//

func (h *Handler) Delete() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
			writeError(c, err)
			return
		}

		c.Status(http.StatusNoContent)
	}
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ErrInvalidPosting):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Printf("[JOBS] internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
