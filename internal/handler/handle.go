package handler

import (
	"net/http"

	"voxrelay/internal/handler/proxy"

	"github.com/gin-gonic/gin"
	"github.com/google/wire"
)

// ProviderSet Provider对象集合
var ProviderSet = wire.NewSet(
	proxy.NewChatHandler,
	proxy.NewAudioHandler,
	NewStatusHandler,
	NewSettingsHandler,
	NewHealthHandler,
)

// Preflight OPTIONS 一律 204 無 body（CORS header 由 middleware 設定）
func Preflight(c *gin.Context) {
	c.AbortWithStatus(http.StatusNoContent)
}
