package controller

import (
	"net/http"

	"github.com/aig-studio/artist-image-generator/common"
	"github.com/aig-studio/artist-image-generator/common/config"
	"github.com/aig-studio/artist-image-generator/common/logger"
	"github.com/gin-gonic/gin"
)

func (h *Handlers) GetStatus(c *gin.Context) {
	ctx := c.Request.Context()
	settings, err := h.Store.LoadSettings(ctx)
	if err != nil {
		logger.Errorf(ctx, "failed to load settings: %s", err.Error())
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "",
		"data": gin.H{
			"version":       common.Version,
			"start_time":    common.StartTime,
			"system_name":   config.SystemName,
			"is_setting_up": settings.IsSettingUp(),
			"license_state": h.Gate.State(ctx),
		},
	})
}
