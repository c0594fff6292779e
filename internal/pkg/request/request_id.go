package request

import (
	"voxrelay/internal/core"

	"github.com/gin-gonic/gin"
)

// ID 取得 Recovery middleware 產生的 request id
func ID(c *gin.Context) string {
	return c.GetString(core.ContextRequestIDKey)
}
