package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/aig-studio/artist-image-generator/common"
	"github.com/aig-studio/artist-image-generator/common/config"
	"github.com/aig-studio/artist-image-generator/common/logger"
	"github.com/aig-studio/artist-image-generator/common/storage"
	"github.com/aig-studio/artist-image-generator/controller"
	"github.com/aig-studio/artist-image-generator/middleware"
	"github.com/aig-studio/artist-image-generator/model"
	"github.com/aig-studio/artist-image-generator/relay/channel/lmfwc"
	"github.com/aig-studio/artist-image-generator/relay/channel/openai"
	relaycontroller "github.com/aig-studio/artist-image-generator/relay/controller"
	"github.com/aig-studio/artist-image-generator/router"
	"github.com/aig-studio/artist-image-generator/service"
	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real environment variables win
	_ = godotenv.Load()
	common.ParseFlags()
	config.Reload()

	logger.SetupLogger()
	logger.SysLog(fmt.Sprintf("%s %s started", config.SystemName, common.Version))
	if os.Getenv("GIN_MODE") != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	if config.DebugEnabled {
		logger.SysLog("running in debug mode")
	}
	if err := config.Validate(); err != nil {
		logger.FatalLog("invalid configuration: " + err.Error())
	}

	var err error
	model.DB, err = model.InitDB("SQL_DSN")
	if err != nil {
		logger.FatalLog("failed to initialize database: " + err.Error())
	}
	if err = common.InitRedisClient(); err != nil {
		logger.FatalLog("failed to initialize Redis: " + err.Error())
	}
	defer func() {
		if err := shutdown(); err != nil {
			logger.SysError("shutdown: " + err.Error())
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mediaStorage, err := storage.New(ctx)
	if err != nil {
		logger.FatalLog("failed to initialize media storage: " + err.Error())
	}
	logger.SysLog("media storage: " + mediaStorage.Name())

	httpClient := service.GetHttpClient()
	optionStore := model.NewOptionStore(model.DB)
	mediaStore := model.NewMediaStore(model.DB)
	gate := service.NewLicenseGate(optionStore, &lmfwc.Client{
		Server:         config.LicenseServer,
		CustomerKey:    config.LicenseCustomerKey,
		CustomerSecret: config.LicenseCustomerSecret,
		ProductIds:     config.LicenseProductIds,
		HTTPClient:     httpClient,
	})
	relay := relaycontroller.NewImageRelay(openai.NewAdaptor(config.OpenAIBaseURL, httpClient))
	importer := service.NewMediaImporter(mediaStorage, mediaStore, httpClient)

	scheduler := service.NewCronScheduler()
	if err = service.RegisterLicenseRevalidation(scheduler, gate, config.LicenseCheckSpec); err != nil {
		logger.FatalLog(err.Error())
	}
	scheduler.Start()
	defer scheduler.Stop()

	server := gin.New()
	server.Use(middleware.PanicRecover())
	server.Use(middleware.RequestId())
	middleware.SetUpLogger(server)

	uploadDir := ""
	if local, ok := mediaStorage.(*storage.LocalStorage); ok {
		uploadDir = local.Dir()
	}
	handlers := controller.NewHandlers(relay, gate, optionStore, importer, mediaStore)
	router.SetRouter(server, handlers, uploadDir)

	var port = os.Getenv("PORT")
	if port == "" {
		port = strconv.Itoa(*common.Port)
	}
	httpServer := &http.Server{
		Addr:         ":" + port,
		Handler:      server,
		ReadTimeout:  config.HTTPReadTimeout,
		WriteTimeout: config.HTTPWriteTimeout,
	}
	go func() {
		logger.SysLog("listening on :" + port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.FatalLog("failed to start HTTP server: " + err.Error())
		}
	}()

	<-ctx.Done()
	logger.SysLog("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.SysError("http server shutdown: " + err.Error())
	}
}

func shutdown() error {
	var result *multierror.Error
	if err := model.CloseDB(); err != nil {
		result = multierror.Append(result, fmt.Errorf("close database: %w", err))
	}
	if err := common.CloseRedisClient(); err != nil {
		result = multierror.Append(result, fmt.Errorf("close redis: %w", err))
	}
	return result.ErrorOrNil()
}
