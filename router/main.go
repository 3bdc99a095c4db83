package router

import (
	"fmt"

	"github.com/aig-studio/artist-image-generator/common/config"
	"github.com/aig-studio/artist-image-generator/common/logger"
	"github.com/aig-studio/artist-image-generator/controller"
	"github.com/gin-contrib/static"
	"github.com/gin-gonic/gin"
)

// SetRouter mounts the API. uploadDir is served under UPLOAD_BASE_URL when media is stored locally.
func SetRouter(router *gin.Engine, h *controller.Handlers, uploadDir string) {
	if uploadDir != "" {
		router.Use(static.Serve(config.UploadBaseURL, static.LocalFile(uploadDir, false)))
		logger.SysLog(fmt.Sprintf("serving local media from %s at %s", uploadDir, config.UploadBaseURL))
	}
	SetApiRouter(router, h)
}
