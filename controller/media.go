package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/aig-studio/artist-image-generator/common/logger"
	"github.com/aig-studio/artist-image-generator/model"
	"github.com/gin-gonic/gin"
)

type addToMediaRequest struct {
	Url         string `form:"url" json:"url" binding:"required,url"`
	Description string `form:"description" json:"description"`
}

// AddToMedia answers only success or failure; the reason stays in the logs.
func (h *Handlers) AddToMedia(c *gin.Context) {
	ctx := c.Request.Context()
	var req addToMediaRequest
	if err := c.ShouldBind(&req); err != nil {
		logger.Warnf(ctx, "invalid media request: %s", err.Error())
		c.JSON(http.StatusOK, gin.H{"success": false})
		return
	}
	id, err := h.Importer.Import(ctx, req.Url, req.Description)
	if err != nil {
		logger.Errorf(ctx, "media import failed: %s", err.Error())
		c.JSON(http.StatusOK, gin.H{"success": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"attachment_id": id,
		},
	})
}

func (h *Handlers) GetMedia(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "invalid media id",
		})
		return
	}
	media, err := h.Media.GetById(c.Request.Context(), id)
	if errors.Is(err, model.ErrMediaNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "",
		"data":    media,
	})
}
