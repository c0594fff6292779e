package middleware

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"runtime/debug"
	"time"
	"unicode/utf8"

	"voxrelay/config"
	"voxrelay/internal/core"
	"voxrelay/internal/database/fluentd/model"
	"voxrelay/internal/database/fluentd/repository"
	cErr "voxrelay/internal/pkg/error"
	res "voxrelay/internal/pkg/response"
	"voxrelay/internal/telemetry"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Recovery struct {
	logger            *zap.Logger
	trace             *telemetry.Trace
	metric            *telemetry.Metric
	config            *config.Configuration
	fluentdRepository *repository.LogRepository
}

func NewRecovery(
	logger *zap.Logger,
	trace *telemetry.Trace,
	metric *telemetry.Metric,
	config *config.Configuration,
	fluentdRepository *repository.LogRepository,
) *Recovery {
	return &Recovery{
		logger:            logger,
		trace:             trace,
		metric:            metric,
		config:            config,
		fluentdRepository: fluentdRepository,
	}
}

func (middleware *Recovery) ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestTime := time.Now()
		if startTime, exists := c.Get("requestDuration"); exists {
			if t, ok := startTime.(time.Time); ok {
				requestTime = t
			}
		}
		id, err := uuid.NewV7()
		if err != nil {
			id = uuid.New()
		}
		requestID := id.String()
		c.Set(core.ContextRequestIDKey, requestID)
		c.Header(core.HeaderRequestID, requestID)

		// ---- panic recover 必須在 c.Next() 之前註冊 ----
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			duration := time.Since(requestTime)

			ctx, span, end := middleware.trace.WithSpan(c.Request.Context(), string(core.SpanRecoveryMiddleware))
			meta := core.TracePanicMeta{
				Path:       c.Request.URL.Path,
				Method:     c.Request.Method,
				ClientIP:   c.ClientIP(),
				UserAgent:  c.Request.UserAgent(),
				DurationMs: float64(duration.Milliseconds()),
				Message:    toSafeString(fmt.Sprint(rec)),
				Stack:      toSafeStack(debug.Stack()),
				Status:     http.StatusInternalServerError,
			}
			middleware.trace.ApplyTraceAttributes(span, meta)

			middleware.logger.Error("[PANIC] Recovered",
				zap.String("path", meta.Path),
				zap.String("method", meta.Method),
				zap.String("client_ip", meta.ClientIP),
				zap.String("user_agent", meta.UserAgent),
				zap.Duration("duration", duration),
				zap.String("panic", meta.Message),
				zap.String("stacktrace", meta.Stack),
				zap.String("requestId", requestID),
			)

			appErr := cErr.InternalServer("unexpected panic")
			end(appErr)
			// 尚未回寫才輸出
			if !c.Writer.Written() {
				res.FailByErr(c, requestID, appErr)
			}
			middleware.logResponse(ctx, requestID, cErr.INTERNAL_ERROR, http.StatusInternalServerError, meta.Message)
			middleware.observeFail("panic", c.FullPath(), duration)
			c.Abort()
		}()

		// 執行下游
		c.Next()

		// ---- 統一處理非 panic 的 gin errors（若尚未回寫）----
		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		duration := time.Since(requestTime)
		ctx, span, end := middleware.trace.WithSpan(c.Request.Context(), string(core.SpanRecoveryMiddleware))

		// 找第一個 *cErr.Error
		for _, e := range c.Errors {
			appErr := cErr.From(e.Err)
			if appErr == nil {
				continue
			}
			middleware.trace.ApplyTraceAttributes(span, core.TraceErrorMeta{
				Code:       appErr.ErrorCode(),
				Message:    appErr.Error(),
				Detail:     appErr.ErrorDesc(),
				DurationMs: float64(duration.Milliseconds()),
				Status:     appErr.HttpCode(),
			})
			middleware.logger.Warn(appErr.Error(),
				zap.Int("code", appErr.ErrorCode()),
				zap.Int("status", appErr.HttpCode()),
				zap.String("data", appErr.ErrorDesc()),
				zap.Duration("duration", duration),
				zap.String("requestId", requestID),
			)
			end(appErr)
			res.FailByErr(c, requestID, appErr)
			middleware.logResponse(ctx, requestID, appErr.ErrorCode(), appErr.HttpCode(), appErr.ErrorDesc())
			middleware.observeFail(appErr.Error(), c.FullPath(), duration)
			c.Abort()
			return
		}

		// 其餘未知錯誤
		unknown := c.Errors.String()
		middleware.trace.ApplyTraceAttributes(span, core.TraceErrorMeta{
			Code:       cErr.INTERNAL_ERROR,
			Message:    "unknown-error",
			Detail:     toSafeString(unknown),
			DurationMs: float64(duration.Milliseconds()),
			Status:     http.StatusInternalServerError,
		})
		middleware.logger.Warn("[ERROR] unknown",
			zap.String("error", unknown),
			zap.Duration("duration", duration),
			zap.String("requestId", requestID),
		)
		end(c.Errors.Last())
		res.Fail(c, requestID, http.StatusInternalServerError, cErr.INTERNAL_ERROR, "unknown-error", "Internal server error")
		middleware.logResponse(ctx, requestID, cErr.INTERNAL_ERROR, http.StatusInternalServerError, toSafeString(unknown))
		middleware.observeFail("unknown", c.FullPath(), duration)
		c.Abort()
	}
}

func (middleware *Recovery) logResponse(ctx context.Context, requestID string, code, status int, message string) {
	err := middleware.fluentdRepository.LogResponse(ctx, model.ResponseLog{
		RequestID:   requestID,
		ProjectName: middleware.config.App.Name,
		Code:        code,
		StatusCode:  status,
		Error:       message,
		ResponseTS:  time.Now().UTC().Format(repository.LogTimeLayout),
	})
	if err != nil {
		middleware.logger.Warn("send response log failed", zap.Error(err))
	}
}

func (middleware *Recovery) observeFail(reason, endpoint string, duration time.Duration) {
	if middleware.metric.ProxyFailTotal != nil && middleware.metric.HttpRequestDuration != nil {
		middleware.metric.ProxyFailTotal.WithLabelValues(reason).Inc()
		middleware.metric.HttpRequestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
	}
}

// ---- helpers ----

func toSafeString(s string) string {
	const max = 8000
	if utf8.ValidString(s) {
		if len(s) > max {
			return s[:max] + "…"
		}
		return s
	}
	b := []byte(s)
	if len(b) > max {
		b = b[:max]
	}
	return "b64:" + base64.StdEncoding.EncodeToString(b)
}

func toSafeStack(b []byte) string {
	const max = 16000
	if utf8.Valid(b) {
		if len(b) > max {
			return string(b[:max]) + "…"
		}
		return string(b)
	}
	if len(b) > max {
		b = b[:max]
	}
	return "b64:" + base64.StdEncoding.EncodeToString(b)
}
