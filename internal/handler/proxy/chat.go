package proxy

import (
	"io"
	"net/http"

	"voxrelay/config"
	"voxrelay/internal/core"
	fluentdModel "voxrelay/internal/database/fluentd/model"
	"voxrelay/internal/database/fluentd/repository"
	cErr "voxrelay/internal/pkg/error"
	"voxrelay/internal/pkg/request"
	"voxrelay/internal/pkg/response"
	"voxrelay/internal/service"
	"voxrelay/internal/service/chat"
	"voxrelay/internal/telemetry"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

type ChatHandler struct {
	trace         *telemetry.Trace
	registry      *service.Registry
	secretService *service.SecretService
	logger        *zap.Logger
	config        *config.Configuration
	usage         usageLogger
}

func NewChatHandler(
	trace *telemetry.Trace,
	registry *service.Registry,
	secretService *service.SecretService,
	logger *zap.Logger,
	config *config.Configuration,
	logRepository *repository.LogRepository,
) *ChatHandler {
	return &ChatHandler{
		trace:         trace,
		registry:      registry,
		secretService: secretService,
		logger:        logger,
		config:        config,
		usage:         usageLogger{logger: logger, config: config, logRepository: logRepository},
	}
}

// Chat 轉送聊天請求
// @Summary 聊天生成
// @Description model 由伺服器固定；temperature 未給時為 0.6，max_tokens / response_format 型別不符時忽略。成功時原樣回傳上游 JSON。
// @Tags Chat
// @Accept json
// @Produce json
// @Param payload body chat.ChatRequestDoc true "聊天請求內容"
// @Security ProxyToken
// @Success 200 {object} map[string]any "上游 chat completion 回應"
// @Failure 400 {object} response.ErrorResponse "messages 不是陣列"
// @Failure 401 {object} response.ErrorResponse "Unauthorized"
// @Failure 500 {object} response.ErrorResponse "未設定金鑰或上游無法連線"
// @Router /api/chat [post]
func (handler *ChatHandler) Chat(c *gin.Context) {
	ctx, span, end := handler.trace.WithSpan(c)
	defer end(nil)
	span.SetAttributes(attribute.String("ai.provider", string(core.ProviderOpenAI)))

	chatService, ok := handler.registry.GetChat(core.ProviderOpenAI)
	if !ok {
		err := cErr.InternalServer("chat provider not registered")
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
	span.SetAttributes(attribute.String("secret.source", string(secret.Source)))

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		end(err)
		response.AbortWithError(c, cErr.BadRequestBody("Unable to read request body."))
		return
	}
	req, err := chat.NormalizeRequest(body)
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}

	result, err := chatService.ChatCompletionsV1(ctx, req, secret.Key)
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}

	//fluentd 紀錄
	usage := parseChatUsage(result.Body)
	model := usage.Model
	if model == "" {
		model = handler.config.OpenAI.ChatModelOrDefault()
	}
	handler.usage.log(ctx, fluentdModel.AIUsageLog{
		RequestID:        request.ID(c),
		Model:            model,
		Endpoint:         c.Request.URL.Path,
		StatusCode:       http.StatusOK,
		TokensPrompt:     usage.Usage.PromptTokens,
		TokensCompletion: usage.Usage.CompletionTokens,
		TokensTotal:      usage.Usage.TotalTokens,
	}, secret)

	response.Raw(c, http.StatusOK, result.ContentType, result.Body)
}
