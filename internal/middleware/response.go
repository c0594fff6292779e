package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"voxrelay/config"
	"voxrelay/internal/core"
	"voxrelay/internal/database/fluentd/model"
	"voxrelay/internal/database/fluentd/repository"
	cErr "voxrelay/internal/pkg/error"
	"voxrelay/internal/pkg/request"
	"voxrelay/internal/pkg/response"
	"voxrelay/internal/telemetry"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Response struct {
	logger            *zap.Logger
	trace             *telemetry.Trace
	metric            *telemetry.Metric
	config            *config.Configuration
	fluentdRepository *repository.LogRepository
}

func NewResponse(
	logger *zap.Logger,
	trace *telemetry.Trace,
	metric *telemetry.Metric,
	config *config.Configuration,
	fluentdRepository *repository.LogRepository,
) *Response {
	return &Response{
		logger:            logger,
		trace:             trace,
		metric:            metric,
		config:            config,
		fluentdRepository: fluentdRepository,
	}
}

// FormatHandler 將 handler 以 c.Set("data") 放入的資料直接輸出為 JSON（不加外層包裝）
func (middleware *Response) FormatHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		endpoint := c.FullPath()
		if skipObservability(endpoint) {
			c.Next()
			return
		}

		requestTime := time.Now()
		if startTime, exists := c.Get("requestDuration"); exists {
			if t, ok := startTime.(time.Time); ok {
				requestTime = t
			}
		} else {
			c.Set("requestDuration", requestTime)
		}

		// 執行下游
		c.Next()

		// 若已經有錯誤交由 Recovery 處理，或已經寫出回應，就不要再動了
		if len(c.Errors) > 0 {
			return
		}
		ctx, span, end := middleware.trace.WithSpan(c.Request.Context(), string(core.SpanResponseMiddleware))
		defer end(nil)

		statusCode := c.Writer.Status()
		data, hasData := c.Get("data")
		if !c.Writer.Written() {
			if !hasData {
				// 沒有任何 handler 寫出：404 / 405 交給 Recovery 統一輸出
				if statusCode >= http.StatusBadRequest {
					response.AbortWithError(c, cErr.MapHttpStatusToError(statusCode, http.StatusText(statusCode)))
					return
				}
				data = map[string]any{}
			}
			if statusCode < http.StatusOK || statusCode >= http.StatusBadRequest {
				statusCode = http.StatusOK
			}
			jsonBytes, err := json.Marshal(data)
			if err != nil {
				response.AbortWithError(c, cErr.InternalServer("marshal response failed"))
				return
			}
			c.Data(statusCode, "application/json; charset=utf-8", jsonBytes)
		}

		duration := time.Since(requestTime)
		requestID := request.ID(c)
		traceID := span.SpanContext().TraceID()
		spanID := span.SpanContext().SpanID()

		middleware.trace.ApplyTraceAttributes(span, core.TraceResponseMeta{
			Path:       c.Request.URL.Path,
			Method:     c.Request.Method,
			Status:     statusCode,
			Message:    "OK",
			DurationMs: float64(duration.Milliseconds()),
			Data:       safePreviewJSON(data, 2000),
		})

		middleware.logger.Info("[Response] OK",
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
			zap.Int("status", statusCode),
			zap.Duration("duration", duration),
			zap.String("requestId", requestID),
			zap.String("spanId", fmt.Sprintf("%x", spanID[:])),
			zap.String("traceId", fmt.Sprintf("%x", traceID[:])),
		)

		//fluentd
		if err := middleware.fluentdRepository.LogResponse(ctx, model.ResponseLog{
			RequestID:   requestID,
			ProjectName: middleware.config.App.Name,
			StatusCode:  statusCode,
			Body:        safePreviewJSON(data, 2000),
			ResponseTS:  time.Now().UTC().Format(repository.LogTimeLayout),
		}); err != nil {
			middleware.logger.Warn("send response log failed", zap.Error(err))
		}

		// Metrics
		if middleware.metric.ProxySuccessTotal != nil && middleware.metric.HttpRequestDuration != nil {
			middleware.metric.ProxySuccessTotal.
				WithLabelValues(endpoint, strconv.Itoa(statusCode)).
				Inc()
			middleware.metric.HttpRequestDuration.
				WithLabelValues(endpoint).
				Observe(duration.Seconds())
		}
	}
}

// safePreviewJSON 會把資料序列化為 JSON 字串（UTF-8），並限制長度。
func safePreviewJSON(data any, max int) string {
	if data == nil {
		return ""
	}
	b, err := json.Marshal(data)
	if err != nil {
		return fmt.Sprintf("[marshal error: %v]", err)
	}
	out := string(b)
	if len(out) > max {
		return out[:max] + "…"
	}
	return out
}
