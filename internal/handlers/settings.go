package handlers

import (
	"net/http"

	"digitalstore_back_end/internal/services"
	"digitalstore_back_end/internal/store"

	"github.com/gin-gonic/gin"
)

type SettingsHandler struct {
	settings store.SettingsStore
	uploader services.Uploader
}

func NewSettingsHandler(settings store.SettingsStore, uploader services.Uploader) *SettingsHandler {
	return &SettingsHandler{settings: settings, uploader: uploader}
}

// Get returns the store configuration, creating the default document on
// first call.
func (h *SettingsHandler) Get(c *gin.Context) {
	settings, err := h.settings.Get(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching settings", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, settings)
}

// Update changes the store name and/or hero image (admin only).
func (h *SettingsHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	settings, err := h.settings.Get(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching settings", "error": err.Error()})
		return
	}

	if storeName := c.PostForm("storeName"); storeName != "" {
		settings.StoreName = storeName
	}

	if file, err := c.FormFile("heroImage"); err == nil {
		path, err := h.uploader.Upload(ctx, c, file)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		settings.HeroImage = path
	}

	if err := h.settings.Update(ctx, settings); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error updating settings", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, settings)
}
