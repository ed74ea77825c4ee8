package handler

import (
	application "github.com/debtledger/backend/internal/application/settings"
	"github.com/gin-gonic/gin"
)

// SettingsHandler handles the company settings endpoints
type SettingsHandler struct {
	BaseHandler
	settingsService *application.Service
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *application.Service) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// Get returns the company settings
func (h *SettingsHandler) Get(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	settings, err := h.settingsService.Get(c.Request.Context(), actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, settings)
}

// Update creates or replaces the company settings
func (h *SettingsHandler) Update(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var req application.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	settings, err := h.settingsService.Update(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, settings)
}
