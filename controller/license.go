package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handlers) GetLicense(c *gin.Context) {
	ctx := c.Request.Context()
	state := h.Gate.State(ctx)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "",
		"data": gin.H{
			"valid_licence": h.Gate.IsEditAllowed(ctx),
			"state":         state,
		},
	})
}

func (h *Handlers) RevalidateLicense(c *gin.Context) {
	ctx := c.Request.Context()
	if err := h.Gate.Revalidate(ctx); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "",
		"data": gin.H{
			"valid_licence": h.Gate.IsEditAllowed(ctx),
			"state":         h.Gate.State(ctx),
		},
	})
}
