package proxy

import (
	"errors"
	"net/http"

	"voxrelay/config"
	"voxrelay/internal/core"
	fluentdModel "voxrelay/internal/database/fluentd/model"
	"voxrelay/internal/database/fluentd/repository"
	cErr "voxrelay/internal/pkg/error"
	"voxrelay/internal/pkg/request"
	"voxrelay/internal/pkg/response"
	"voxrelay/internal/service"
	"voxrelay/internal/service/audio"
	"voxrelay/internal/telemetry"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

type AudioHandler struct {
	trace         *telemetry.Trace
	registry      *service.Registry
	secretService *service.SecretService
	logger        *zap.Logger
	config        *config.Configuration
	usage         usageLogger
}

func NewAudioHandler(
	trace *telemetry.Trace,
	registry *service.Registry,
	secretService *service.SecretService,
	logger *zap.Logger,
	config *config.Configuration,
	logRepository *repository.LogRepository,
) *AudioHandler {
	return &AudioHandler{
		trace:         trace,
		registry:      registry,
		secretService: secretService,
		logger:        logger,
		config:        config,
		usage:         usageLogger{logger: logger, config: config, logRepository: logRepository},
	}
}

// Transcribe 語音轉文字
// @Summary 語音轉文字
// @Description 重新組裝 multipart 後送往上游（response_format=verbose_json），回傳 {text, duration, language}。
// @Tags Transcribe
// @Accept multipart/form-data
// @Produce json
// @Param file        formData file   true  "音訊檔"
// @Param language    formData string false "ISO-639-1 語言代碼"
// @Param prompt      formData string false "提示詞"
// @Param temperature formData string false "0 ~ 1"
// @Security ProxyToken
// @Success 200 {object} audio.TranscriptionResult
// @Failure 400 {object} response.ErrorResponse "缺少檔案或檔案為空"
// @Failure 401 {object} response.ErrorResponse "Unauthorized"
// @Failure 500 {object} response.ErrorResponse "未設定金鑰或上游無法連線"
// @Failure 502 {object} response.ErrorResponse "上游回應格式錯誤"
// @Failure 503 {object} response.ErrorResponse "proxy token 未設定"
// @Router /api/transcribe [post]
func (handler *AudioHandler) Transcribe(c *gin.Context) {
	ctx, span, end := handler.trace.WithSpan(c)
	defer end(nil)
	span.SetAttributes(attribute.String("ai.provider", string(core.ProviderOpenAI)))

	audioService, ok := handler.registry.GetAudio(core.ProviderOpenAI)
	if !ok {
		err := cErr.InternalServer("audio provider not registered")
		end(err)
		response.AbortWithError(c, err)
		return
	}

	secret, err := handler.secretService.RequireKey(ctx)
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		end(err)
		if errors.Is(err, http.ErrMissingFile) {
			response.AbortWithError(c, cErr.MissingFile("Missing audio file."))
			return
		}
		response.AbortWithError(c, cErr.BadRequestBody("Expected multipart/form-data with a file field."))
		return
	}
	upload, err := audio.NormalizeUpload(fileHeader)
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}

	opts := audio.Options{
		Language:    c.PostForm("language"),
		Prompt:      c.PostForm("prompt"),
		Temperature: c.PostForm("temperature"),
	}
	result, err := audioService.AudioTranscriptionsV1(ctx, upload, opts, secret.Key)
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}

	//fluentd 紀錄
	entry := fluentdModel.AIUsageLog{
		RequestID:  request.ID(c),
		Model:      handler.config.OpenAI.TranscriptionModelOrDefault(),
		Endpoint:   c.Request.URL.Path,
		StatusCode: http.StatusOK,
		AudioBytes: upload.Size,
	}
	if result.Duration != nil {
		entry.AudioSeconds = *result.Duration
	}
	handler.usage.log(ctx, entry, secret)

	response.Success(c, result)
}
