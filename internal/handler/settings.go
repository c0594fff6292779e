package handler

import (
	"io"

	"voxrelay/internal/pkg/response"
	"voxrelay/internal/service"
	"voxrelay/internal/telemetry"

	cErr "voxrelay/internal/pkg/error"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const maxSettingsBody = 64 << 10

type SettingsHandler struct {
	trace         *telemetry.Trace
	logger        *zap.Logger
	secretService *service.SecretService
}

func NewSettingsHandler(
	trace *telemetry.Trace,
	logger *zap.Logger,
	secretService *service.SecretService,
) *SettingsHandler {
	return &SettingsHandler{
		trace:         trace,
		logger:        logger,
		secretService: secretService,
	}
}

// Get 目前金鑰設定（只回傳遮罩後的預覽）
// @Summary 取得金鑰設定
// @Tags Settings
// @Produce json
// @Success 200 {object} dto.SettingsView
// @Failure 500 {object} response.ErrorResponse "讀取儲存失敗"
// @Router /api/openai-settings [get]
func (handler *SettingsHandler) Get(c *gin.Context) {
	ctx, _, end := handler.trace.WithSpan(c)
	defer end(nil)

	view, err := handler.secretService.View(ctx)
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, view)
}

// Update 儲存金鑰
// @Summary 儲存金鑰
// @Description 接受 JSON、urlencoded 或純文字；金鑰由環境變數提供時回傳 405。
// @Tags Settings
// @Accept json
// @Accept x-www-form-urlencoded
// @Accept plain
// @Produce json
// @Param payload body dto.UpdateSecretDto true "金鑰"
// @Security ProxyToken
// @Success 200 {object} dto.SettingsView
// @Failure 400 {object} response.ErrorResponse "apiKey is required"
// @Failure 401 {object} response.ErrorResponse "Unauthorized"
// @Failure 405 {object} response.ErrorResponse "金鑰由環境變數管理"
// @Failure 500 {object} response.ErrorResponse "寫入失敗"
// @Router /api/openai-settings [post]
func (handler *SettingsHandler) Update(c *gin.Context) {
	ctx, _, end := handler.trace.WithSpan(c)
	defer end(nil)

	if handler.secretService.EnvironmentManaged() {
		err := cErr.MethodNotAllowed("OpenAI API key is managed by the environment and cannot be changed.")
		end(err)
		response.AbortWithError(c, err)
		return
	}

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxSettingsBody))
	if err != nil {
		handler.logger.Warn("read settings body failed", zap.Error(err))
		body = nil
	}
	update := service.ParseSettingsUpdate(c.GetHeader("Content-Type"), body)
	if verr := service.ValidateSettingsUpdate(update); verr != nil {
		end(verr)
		response.AbortWithError(c, verr)
		return
	}

	view, err := handler.secretService.Save(ctx, update.APIKey, service.ActorHTTP)
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, view)
}

// Delete 清除儲存的金鑰
// @Summary 清除金鑰
// @Tags Settings
// @Produce json
// @Security ProxyToken
// @Success 200 {object} dto.SettingsView
// @Failure 401 {object} response.ErrorResponse "Unauthorized"
// @Failure 405 {object} response.ErrorResponse "金鑰由環境變數管理"
// @Failure 500 {object} response.ErrorResponse "刪除失敗"
// @Router /api/openai-settings [delete]
func (handler *SettingsHandler) Delete(c *gin.Context) {
	ctx, _, end := handler.trace.WithSpan(c)
	defer end(nil)

	view, err := handler.secretService.Clear(ctx, service.ActorHTTP)
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, view)
}
