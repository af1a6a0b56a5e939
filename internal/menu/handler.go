package menu

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

type AdminHandler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func NewAdminHandler(service *Service) *AdminHandler {
	return &AdminHandler{service: service}
}

// --------------------------------------------------
// GET /api/menu/dishes?search=&category=&diet=&available=&price=
// --------------------------------------------------
func (h *Handler) ListDishes(c *gin.Context) {
	filters, err := ParseFilterState(c.Request.URL.Query())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dishes, err := h.service.ListDishes(c.Request.Context(), filters)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"dishes":  dishes,
		"count":   len(dishes),
		"filters": filters,
	})
}

// --------------------------------------------------
// GET /api/menu/dishes/:id
// --------------------------------------------------
func (h *Handler) GetDish(c *gin.Context) {
	dish, err := h.service.GetDish(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dish)
}

// --------------------------------------------------
// GET /api/menu/categories
// --------------------------------------------------
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.service.ListCategories(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// --------------------------------------------------
// POST /api/cart/quote
// --------------------------------------------------
func (h *Handler) QuoteCart(c *gin.Context) {
	var req struct {
		Lines []CartLine `json:"lines"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	quote, err := h.service.QuoteCart(c.Request.Context(), req.Lines)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, quote)
}

// --------------------------------------------------
// Staff: POST /api/admin/dishes
// --------------------------------------------------
func (h *AdminHandler) CreateDish(c *gin.Context) {
	var dish Dish
	if err := c.ShouldBindJSON(&dish); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.service.CreateDish(c.Request.Context(), &dish); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dish)
}

// --------------------------------------------------
// Staff: PUT /api/admin/dishes/:id
// --------------------------------------------------
func (h *AdminHandler) UpdateDish(c *gin.Context) {
	var dish Dish
	if err := c.ShouldBindJSON(&dish); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.service.UpdateDish(c.Request.Context(), c.Param("id"), &dish); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dish)
}

// --------------------------------------------------
// Staff: DELETE /api/admin/dishes/:id
// --------------------------------------------------
func (h *AdminHandler) DeleteDish(c *gin.Context) {
	if err := h.service.DeleteDish(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// --------------------------------------------------
// Staff: POST /api/admin/dishes/:id/image (multipart "image")
// --------------------------------------------------
func (h *AdminHandler) UploadImage(c *gin.Context) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image is required"})
		return
	}
	defer file.Close()

	url, err := h.service.UploadDishImage(
		c.Request.Context(),
		c.Param("id"),
		file,
		header.Filename,
	)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":       c.Param("id"),
		"imageUrl": url,
	})
}

// --------------------------------------------------
// Staff: PUT /api/admin/categories/:id
// --------------------------------------------------
func (h *AdminHandler) UpsertCategory(c *gin.Context) {
	var category Category
	if err := c.ShouldBindJSON(&category); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	category.ID = c.Param("id")

	if err := h.service.UpsertCategory(c.Request.Context(), &category); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, category)
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrDishNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ErrDishExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, ErrCategoryNotFound),
		errors.Is(err, ErrInvalidDish),
		errors.Is(err, ErrInvalidCategory),
		errors.Is(err, ErrInvalidImage),
		errors.Is(err, ErrInvalidFilter):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, ErrEmptyCart),
		errors.Is(err, ErrInvalidQuantity),
		errors.Is(err, ErrUnknownCartDishID),
		errors.Is(err, ErrDishUnavailable),
		errors.Is(err, ErrVariantRequired),
		errors.Is(err, ErrUnknownVariant),
		errors.Is(err, ErrDishWithoutPrice):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, ErrStorageDisabled):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		log.Printf("[MENU] internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
