package github

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"
)

// ContentRoot is the only directory the CMS may write to.
const ContentRoot = "content/"

var ErrInvalidPath = errors.New("path must be a relative file under content/")

// ValidatePath accepts relative paths under content/ without ".." segments.
func ValidatePath(p string) error {
	if p == "" || strings.HasPrefix(p, "/") || strings.Contains(p, "\\") {
		return ErrInvalidPath
	}
	for _, seg := range strings.Split(p, "/") {
		if seg == ".." || seg == "." {
			return ErrInvalidPath
		}
	}
	if path.Clean(p) != p || !strings.HasPrefix(p, ContentRoot) || p == ContentRoot {
		return ErrInvalidPath
	}
	return nil
}

type Handler struct {
	client *Client
}

// NewHandler accepts a nil client; every request then answers 503.
func NewHandler(client *Client) *Handler {
	return &Handler{client: client}
}

type autoCommitRequest struct {
	Path    string `json:"path" binding:"required"`
	Content string `json:"content" binding:"required"`
	Message string `json:"message"`
}

// --------------------------------------------------
// ADMIN: POST /api/admin/auto-commit
// --------------------------------------------------
func (h *Handler) AutoCommit(c *gin.Context) {
	if h.client == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": ErrNotConfigured.Error()})
		return
	}

	var req autoCommitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "path and content are required"})
		return
	}

	if err := ValidatePath(req.Path); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Message == "" {
		req.Message = fmt.Sprintf("Update %s", req.Path)
	}

	result, err := h.client.CommitFile(c.Request.Context(), req.Path, []byte(req.Content), req.Message)
	if err != nil {
		log.Printf("[GITHUB] commit %s failed: %v", req.Path, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "commit failed"})
		return
	}

	log.Printf("[GITHUB] committed %s sha=%s unchanged=%v", result.Path, result.CommitSHA, result.Unchanged)
	c.JSON(http.StatusOK, result)
}
