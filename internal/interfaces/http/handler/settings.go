package handler

import (
	"github.com/gin-gonic/gin"
	settingsapp "github.com/idcashier/backend/internal/application/settings"
)

// SettingsHandler handles the store settings
type SettingsHandler struct {
	BaseHandler
	settingsService *settingsapp.Service
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(settingsService *settingsapp.Service) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// Get godoc
// @Summary      Store settings
// @Description  Returns the defaults until the owner saves settings for the first time
// @Tags         settings
// @Produce      json
// @Success      200 {object} dto.Response{data=settingsapp.SettingsResponse}
// @Security     BearerAuth
// @Router       /settings [get]
func (h *SettingsHandler) Get(c *gin.Context) {
	tc, ok := h.tenant(c)
	if !ok {
		return
	}

	st, err := h.settingsService.Get(c.Request.Context(), tc.TenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, st)
}

// Update godoc
// @Summary      Save store settings
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        request body settingsapp.SettingsRequest true "Settings"
// @Success      200 {object} dto.Response{data=settingsapp.SettingsResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /settings [put]
func (h *SettingsHandler) Update(c *gin.Context) {
	tc, ok := h.tenant(c)
	if !ok {
		return
	}
	var req settingsapp.SettingsRequest
	if !h.bindJSON(c, &req) {
		return
	}

	st, err := h.settingsService.Update(c.Request.Context(), tc.TenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, st)
}
