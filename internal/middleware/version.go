package middleware

import (
	"voxrelay/config"

	"github.com/gin-gonic/gin"
)

const HeaderAppVersion = "X-App-Version"

// AppVersion 每個回應帶上服務版本；需在註冊路由前掛上
func AppVersion(conf *config.Configuration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if v := conf.App.Version; v != "" {
			c.Header(HeaderAppVersion, v)
		}
		c.Next()
	}
}
