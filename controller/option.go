package controller

import (
	"net/http"
	"strings"

	"github.com/aig-studio/artist-image-generator/common/helper"
	"github.com/aig-studio/artist-image-generator/common/logger"
	"github.com/aig-studio/artist-image-generator/model"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type settingsRequest struct {
	OpenAIAPIKey string `json:"artist_image_generator_openai_api_key_0" validate:"omitempty,max=512,printascii"`
	LicenseKey   string `json:"artist_image_generator_aig_licence_key_0" validate:"omitempty,max=256,printascii"`
}

func maskedSettings(settings model.Settings) gin.H {
	return gin.H{
		model.FieldOpenAIAPIKey: helper.Mask(settings.OpenAIAPIKey),
		model.FieldLicenseKey:   helper.Mask(settings.LicenseKey),
	}
}

func (h *Handlers) GetSettings(c *gin.Context) {
	ctx := c.Request.Context()
	settings, err := h.Store.LoadSettings(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}
	data := maskedSettings(settings)
	data["valid_licence"] = h.Gate.IsEditAllowed(ctx)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "",
		"data":    data,
	})
}

// UpdateSettings stores the API key as given. The license key is only stored once the license
// server accepted and activated it. Saving without a license key locks edit again.
func (h *Handlers) UpdateSettings(c *gin.Context) {
	ctx := c.Request.Context()
	var req settingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "invalid settings payload",
		})
		return
	}
	req.OpenAIAPIKey = strings.TrimSpace(req.OpenAIAPIKey)
	req.LicenseKey = strings.TrimSpace(req.LicenseKey)
	if err := validate.Struct(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}

	sanitized := model.Settings{OpenAIAPIKey: req.OpenAIAPIKey}
	message := ""
	if req.LicenseKey != "" {
		if err := h.Gate.ValidateLicense(ctx, req.LicenseKey, true); err != nil {
			logger.Warnf(ctx, "license key %s dropped: %s", helper.Mask(req.LicenseKey), err.Error())
			message = err.Error()
		} else {
			sanitized.LicenseKey = req.LicenseKey
		}
	}
	if sanitized.LicenseKey == "" {
		if err := h.Gate.ClearLicense(ctx); err != nil {
			logger.Errorf(ctx, "failed to clear license: %s", err.Error())
		}
	}

	if err := h.Store.SaveSettings(ctx, sanitized); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": message == "",
		"message": message,
		"data":    maskedSettings(sanitized),
	})
}
