package middleware

import (
	"net/http"

	"voxrelay/config"
	"voxrelay/internal/core"
	cErr "voxrelay/internal/pkg/error"
	"voxrelay/internal/pkg/response"
	"voxrelay/internal/telemetry"
	"voxrelay/utils/proxytoken"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ProxyToken struct {
	logger *zap.Logger
	trace  *telemetry.Trace
	metric *telemetry.Metric
	config *config.Configuration
}

func NewProxyToken(
	logger *zap.Logger,
	trace *telemetry.Trace,
	metric *telemetry.Metric,
	config *config.Configuration,
) *ProxyToken {
	return &ProxyToken{
		logger: logger,
		trace:  trace,
		metric: metric,
		config: config,
	}
}

// Mode 端點的 guard 模式，未設定時：chat off、transcribe optional、settings optional
func (middleware *ProxyToken) Mode(endpoint core.Endpoint) proxytoken.Mode {
	switch endpoint {
	case core.EndpointChat:
		return proxytoken.ParseMode(middleware.config.Guard.Chat, proxytoken.ModeOff)
	case core.EndpointTranscribe:
		return proxytoken.ParseMode(middleware.config.Guard.Transcribe, proxytoken.ModeOptional)
	case core.EndpointSettings:
		return proxytoken.ParseMode(middleware.config.Guard.Settings, proxytoken.ModeOptional)
	default:
		return proxytoken.ModeOff
	}
}

// Guard 比對共享 token；token 本身不寫入 log 或 trace
func (middleware *ProxyToken) Guard(endpoint core.Endpoint, misconfiguredStatus int) gin.HandlerFunc {
	mode := middleware.Mode(endpoint)
	return func(c *gin.Context) {
		if mode == proxytoken.ModeOff {
			c.Next()
			return
		}
		_, span, end := middleware.trace.WithSpan(c.Request.Context(), string(core.SpanProxyTokenGuard))

		provided, from := proxytoken.Extract(c.Request)
		decision := proxytoken.Evaluate(mode, provided, middleware.config.OpenAI.ProxyToken)
		meta := core.TraceGuardMeta{
			Endpoint: string(endpoint),
			Mode:     string(mode),
			Where:    from,
			Decision: decision.String(),
			ClientIP: c.ClientIP(),
		}
		middleware.trace.ApplyTraceAttributes(span, meta)

		var cause error
		switch decision {
		case proxytoken.Authorized:
			end(nil)
			c.Next()
			return
		case proxytoken.Misconfigured:
			middleware.logger.Error("proxy token is not configured",
				zap.String("endpoint", string(endpoint)),
				zap.String("mode", string(mode)),
			)
			cause = cErr.ProxyTokenMissing(misconfiguredStatus)
		default:
			middleware.logger.Warn("proxy token rejected",
				zap.String("endpoint", string(endpoint)),
				zap.String("from", from),
				zap.String("client_ip", c.ClientIP()),
			)
			cause = cErr.Unauthorized("Unauthorized", cErr.INVALID_PROXY_TOKEN)
		}
		middleware.metric.ObserveGuardRejected(endpoint, decision.String())
		end(cause)
		response.AbortWithError(c, cause)
	}
}

// GuardWrites 只檢查會改變狀態的方法
func (middleware *ProxyToken) GuardWrites(endpoint core.Endpoint, misconfiguredStatus int) gin.HandlerFunc {
	guard := middleware.Guard(endpoint, misconfiguredStatus)
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
		default:
			guard(c)
		}
	}
}
