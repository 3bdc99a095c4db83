package router

import (
	"github.com/aig-studio/artist-image-generator/controller"
	"github.com/aig-studio/artist-image-generator/middleware"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

func SetApiRouter(router *gin.Engine, h *controller.Handlers) {
	apiRouter := router.Group("/api")
	apiRouter.Use(middleware.CORS())
	apiRouter.Use(gzip.Gzip(gzip.DefaultCompression))
	{
		apiRouter.GET("/status", h.GetStatus)

		adminRoute := apiRouter.Group("/")
		adminRoute.Use(middleware.AdminAuth())
		{
			adminRoute.GET("/images", h.GetImagePage)
			adminRoute.POST("/images", h.PostImageRequest)

			adminRoute.POST("/media", h.AddToMedia)
			adminRoute.GET("/media/:id", h.GetMedia)

			adminRoute.GET("/settings", h.GetSettings)
			adminRoute.PUT("/settings", h.UpdateSettings)

			adminRoute.GET("/license", h.GetLicense)
			adminRoute.POST("/license/revalidate", h.RevalidateLicense)
		}
	}
}
