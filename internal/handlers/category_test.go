package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"digitalstore_back_end/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func categoryRouter(categories *fakeCategoryStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewCategoryHandler(categories)
	r := gin.New()
	r.GET("/api/categories", h.List)
	r.POST("/api/categories", h.Create)
	r.PUT("/api/categories/:id", h.Update)
	r.DELETE("/api/categories/:id", h.Delete)
	return r
}

func TestCreateCategory(t *testing.T) {
	categories := newFakeCategoryStore()
	r := categoryRouter(categories)

	w := postJSON(r, "/api/categories", gin.H{
		"name_es": "Electrónica", "name_en": "Electronics", "slug": "electronics", "color": "#ff8800",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created models.Category
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "electronics", created.Slug)
	assert.Equal(t, "#ff8800", created.Color)
	assert.False(t, created.ID.IsZero())
}

func TestCreateCategoryDefaultsColor(t *testing.T) {
	categories := newFakeCategoryStore()
	r := categoryRouter(categories)

	w := postJSON(r, "/api/categories", gin.H{
		"name_es": "Hogar", "name_en": "Home", "slug": "home",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Category
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "#808080", created.Color)
}

func TestCreateCategoryDuplicateSlug(t *testing.T) {
	categories := newFakeCategoryStore()
	r := categoryRouter(categories)

	w := postJSON(r, "/api/categories", gin.H{
		"name_es": "Electrónica", "name_en": "Electronics", "slug": "electronics",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(r, "/api/categories", gin.H{
		"name_es": "Otra", "name_en": "Other", "slug": "electronics",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Category already exists", decodeBody(t, w)["message"])
}

func TestUpdateCategoryPartial(t *testing.T) {
	categories := newFakeCategoryStore()
	r := categoryRouter(categories)

	w := postJSON(r, "/api/categories", gin.H{
		"name_es": "Electrónica", "name_en": "Electronics", "slug": "electronics",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created models.Category
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = putJSON(r, "/api/categories/"+created.ID.Hex(), gin.H{"color": "#00ff00"})
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.Category
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "#00ff00", updated.Color)
	// Untouched fields survive a partial update.
	assert.Equal(t, "Electronics", updated.NameEn)
	assert.Equal(t, "electronics", updated.Slug)
}

func TestCategoryNotFound(t *testing.T) {
	categories := newFakeCategoryStore()
	r := categoryRouter(categories)
	missing := primitive.NewObjectID().Hex()

	w := putJSON(r, "/api/categories/"+missing, gin.H{"color": "#000000"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Category not found", decodeBody(t, w)["message"])

	req := httptest.NewRequest(http.MethodDelete, "/api/categories/"+missing, nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteCategory(t *testing.T) {
	categories := newFakeCategoryStore()
	r := categoryRouter(categories)

	w := postJSON(r, "/api/categories", gin.H{
		"name_es": "Electrónica", "name_en": "Electronics", "slug": "electronics",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created models.Category
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	req := httptest.NewRequest(http.MethodDelete, "/api/categories/"+created.ID.Hex(), nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	listed, err := categories.FindAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, listed)
}
