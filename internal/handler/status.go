package handler

import (
	"time"

	"voxrelay/internal/pkg/response"
	"voxrelay/internal/service"
	"voxrelay/internal/telemetry"

	"github.com/gin-gonic/gin"
)

type StatusHandler struct {
	trace         *telemetry.Trace
	secretService *service.SecretService
	now           func() time.Time
}

func NewStatusHandler(trace *telemetry.Trace, secretService *service.SecretService) *StatusHandler {
	return &StatusHandler{trace: trace, secretService: secretService, now: time.Now}
}

// Status 回報金鑰是否已設定
// @Summary 服務狀態
// @Tags Status
// @Produce json
// @Success 200 {object} dto.StatusPayload
// @Failure 500 {object} response.ErrorResponse "讀取儲存失敗"
// @Router /api/status [get]
func (handler *StatusHandler) Status(c *gin.Context) {
	ctx, _, end := handler.trace.WithSpan(c)
	defer end(nil)

	status, err := handler.secretService.Status(ctx, handler.now())
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, status)
}
