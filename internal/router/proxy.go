package router

import (
	"net/http"

	"voxrelay/internal/core"
	"voxrelay/internal/handler"
	"voxrelay/internal/handler/proxy"
	"voxrelay/internal/middleware"

	"github.com/gin-gonic/gin"
)

// ProxyRouter 對外 /api 端點
type ProxyRouter struct {
	chatHandler     *proxy.ChatHandler
	audioHandler    *proxy.AudioHandler
	statusHandler   *handler.StatusHandler
	settingsHandler *handler.SettingsHandler
	cors            *middleware.Cors
	proxyToken      *middleware.ProxyToken
}

func NewProxyRouter(
	chatHandler *proxy.ChatHandler,
	audioHandler *proxy.AudioHandler,
	statusHandler *handler.StatusHandler,
	settingsHandler *handler.SettingsHandler,
	cors *middleware.Cors,
	proxyToken *middleware.ProxyToken,
) *ProxyRouter {
	return &ProxyRouter{
		chatHandler:     chatHandler,
		audioHandler:    audioHandler,
		statusHandler:   statusHandler,
		settingsHandler: settingsHandler,
		cors:            cors,
		proxyToken:      proxyToken,
	}
}

func (proxyRouter *ProxyRouter) RegisterRoutes(engine *gin.Engine) {
	api := engine.Group("/api")

	chat := api.Group("/chat")
	chat.Use(proxyRouter.cors.Handler(core.EndpointChat))
	{
		chat.OPTIONS("", handler.Preflight)
		chat.POST("", proxyRouter.proxyToken.Guard(core.EndpointChat, http.StatusInternalServerError), proxyRouter.chatHandler.Chat)
	}

	// token 未設定但模式為 required 時回 503
	transcribe := api.Group("/transcribe")
	transcribe.Use(proxyRouter.cors.Handler(core.EndpointTranscribe))
	{
		transcribe.OPTIONS("", handler.Preflight)
		transcribe.POST("", proxyRouter.proxyToken.Guard(core.EndpointTranscribe, http.StatusServiceUnavailable), proxyRouter.audioHandler.Transcribe)
	}

	status := api.Group("/status")
	status.Use(proxyRouter.cors.Handler(core.EndpointStatus))
	{
		status.OPTIONS("", handler.Preflight)
		status.GET("", proxyRouter.statusHandler.Status)
	}

	settings := api.Group("/openai-settings")
	settings.Use(proxyRouter.cors.Handler(core.EndpointSettings))
	settings.Use(proxyRouter.proxyToken.GuardWrites(core.EndpointSettings, http.StatusInternalServerError))
	{
		settings.OPTIONS("", handler.Preflight)
		settings.GET("", proxyRouter.settingsHandler.Get)
		settings.POST("", proxyRouter.settingsHandler.Update)
		settings.DELETE("", proxyRouter.settingsHandler.Delete)
	}
}
