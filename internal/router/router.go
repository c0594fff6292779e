package router

import (
	docs "voxrelay/cmd/docs"
	"voxrelay/config"
	"voxrelay/internal/middleware"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var ProviderSet = wire.NewSet(
	NewRouter,
	NewHealthRouter,
	NewProxyRouter,
)

// 透過依賴注入將 middleware 與各組路由掛上 gin.Engine
func NewRouter(
	config *config.Configuration,
	traceEntry *middleware.TraceEntry,
	recovery *middleware.Recovery,
	logger *middleware.Logger,
	responseMiddleware *middleware.Response,
	healthRouter *HealthRouter,
	proxyRouter *ProxyRouter,
) *gin.Engine {

	switch config.App.Env {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
	router := gin.New()
	// 路徑存在但方法不符時回 405（而非 404）
	router.HandleMethodNotAllowed = true

	router.Use(middleware.AppVersion(config))
	router.Use(traceEntry.Handler())
	// Recovery 必須在 Logger 之前：request id 由它產生
	router.Use(recovery.ErrorHandler())
	router.Use(logger.LoggerHandler())
	router.Use(responseMiddleware.FormatHandler())

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if config.App.SwaggerEnabled {
		router.GET("/swagger/*any", func(c *gin.Context) {
			docs.SwaggerInfo.Host = c.Request.Host
			if config.App.Env == "production" {
				docs.SwaggerInfo.Schemes = []string{"https"}
			}
		}, ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	healthRouter.RegisterHealthRoutes(router)
	proxyRouter.RegisterRoutes(router)

	if config.App.PprofEnabled {
		pprof.Register(router)
	}
	return router
}
