package handlers

import (
	"net/http"

	"digitalstore_back_end/internal/models"
	"digitalstore_back_end/internal/store"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	categories store.CategoryStore
}

func NewCategoryHandler(categories store.CategoryStore) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.categories.FindAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var req struct {
		NameEs string `json:"name_es" binding:"required"`
		NameEn string `json:"name_en" binding:"required"`
		Slug   string `json:"slug" binding:"required"`
		Color  string `json:"color"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "name_es, name_en and slug are required"})
		return
	}

	ctx := c.Request.Context()

	if _, err := h.categories.FindBySlug(ctx, req.Slug); err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Category already exists"})
		return
	} else if err != store.ErrNotFound {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		return
	}

	category := &models.Category{
		NameEs: req.NameEs,
		NameEn: req.NameEn,
		Slug:   req.Slug,
		Color:  req.Color,
	}
	if category.Color == "" {
		category.Color = "#808080"
	}

	if err := h.categories.Create(ctx, category); err != nil {
		if err == store.ErrDuplicate {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Category already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, category)
}

func (h *CategoryHandler) Update(c *gin.Context) {
	var req struct {
		NameEs string `json:"name_es"`
		NameEn string `json:"name_en"`
		Slug   string `json:"slug"`
		Color  string `json:"color"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	ctx := c.Request.Context()

	category, err := h.categories.FindByID(ctx, c.Param("id"))
	if err != nil {
		if err == store.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"message": "Category not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		return
	}

	if req.NameEs != "" {
		category.NameEs = req.NameEs
	}
	if req.NameEn != "" {
		category.NameEn = req.NameEn
	}
	if req.Slug != "" {
		category.Slug = req.Slug
	}
	if req.Color != "" {
		category.Color = req.Color
	}

	if err := h.categories.Update(ctx, category); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	if err := h.categories.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if err == store.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"message": "Category not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category removed"})
}
