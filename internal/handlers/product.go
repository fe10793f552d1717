package handlers

import (
	"log"
	"net/http"
	"strconv"

	"digitalstore_back_end/internal/models"
	"digitalstore_back_end/internal/services"
	"digitalstore_back_end/internal/store"

	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	products   store.ProductStore
	categories store.CategoryStore
	uploader   services.Uploader
	search     *services.Search
}

func NewProductHandler(products store.ProductStore, categories store.CategoryStore, uploader services.Uploader, search *services.Search) *ProductHandler {
	return &ProductHandler{products: products, categories: categories, uploader: uploader, search: search}
}

func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.products.FindAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) Get(c *gin.Context) {
	product, err := h.products.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if err == store.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, product)
}

// Search looks products up by free text, through Elasticsearch when
// configured and a Mongo regex otherwise.
func (h *ProductHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Query parameter q is required"})
		return
	}

	ctx := c.Request.Context()

	if h.search.Enabled() {
		products, err := h.search.QueryProducts(ctx, query)
		if err == nil {
			c.JSON(http.StatusOK, products)
			return
		}
		log.Println("⚠️  Elasticsearch query failed, falling back to MongoDB:", err)
	}

	products, err := h.products.Search(ctx, query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, products)
}

// resolveImage picks the uploaded file over an explicit imageUrl field.
func (h *ProductHandler) resolveImage(c *gin.Context) (string, error) {
	file, err := c.FormFile("image")
	if err == nil {
		return h.uploader.Upload(c.Request.Context(), c, file)
	}
	return c.PostForm("imageUrl"), nil
}

// Create adds a product from a multipart form (admin only).
func (h *ProductHandler) Create(c *gin.Context) {
	nameEn := c.PostForm("nameEn")
	nameEs := c.PostForm("nameEs")
	categoryID := c.PostForm("category")
	if nameEn == "" || nameEs == "" || categoryID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "nameEn, nameEs and category are required"})
		return
	}

	price, err := strconv.ParseFloat(c.PostForm("price"), 64)
	if err != nil || price <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Price must be a positive number"})
		return
	}

	ctx := c.Request.Context()

	// The category reference is validated here, at the boundary; nothing
	// downstream ever has to guess its shape.
	category, err := h.categories.FindByID(ctx, categoryID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Unknown category"})
		return
	}

	imagePath, err := h.resolveImage(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	product := &models.Product{
		Name:        models.LocalizedString{En: nameEn, Es: nameEs},
		Description: models.LocalizedString{En: c.PostForm("descriptionEn"), Es: c.PostForm("descriptionEs")},
		Price:       price,
		Category:    category.ID,
		Images:      []string{},
	}
	if imagePath != "" {
		product.Images = []string{imagePath}
	}

	if err := h.products.Create(ctx, product); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		return
	}

	h.search.IndexProduct(ctx, *product)
	c.JSON(http.StatusCreated, product)
}

// Update modifies only the fields present in the form (admin only).
func (h *ProductHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	product, err := h.products.FindByID(ctx, c.Param("id"))
	if err != nil {
		if err == store.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		return
	}

	nameEn, nameEs := c.PostForm("nameEn"), c.PostForm("nameEs")
	if nameEn != "" && nameEs != "" {
		product.Name = models.LocalizedString{En: nameEn, Es: nameEs}
	}
	descEn, descEs := c.PostForm("descriptionEn"), c.PostForm("descriptionEs")
	if descEn != "" && descEs != "" {
		product.Description = models.LocalizedString{En: descEn, Es: descEs}
	}
	if priceStr := c.PostForm("price"); priceStr != "" {
		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil || price <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Price must be a positive number"})
			return
		}
		product.Price = price
	}
	if categoryID := c.PostForm("category"); categoryID != "" {
		category, err := h.categories.FindByID(ctx, categoryID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Unknown category"})
			return
		}
		product.Category = category.ID
	}

	imagePath, err := h.resolveImage(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if imagePath != "" {
		product.Images = []string{imagePath}
	}

	if err := h.products.Update(ctx, product); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		return
	}

	h.search.IndexProduct(ctx, *product)
	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	if err := h.products.Delete(ctx, id); err != nil {
		if err == store.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		return
	}

	h.search.RemoveProduct(ctx, id)
	c.JSON(http.StatusOK, gin.H{"message": "Product removed"})
}
